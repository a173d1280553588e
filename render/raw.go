package render

import (
	"fmt"
	"strings"

	"github.com/asciitab/tabulator/model"
)

// Raw emits the header, then every system's stored original lines verbatim
// with trailing whitespace trimmed. It never re-derives the grid from the
// model, which keeps parse-render-parse stable.
func Raw(score *model.Score) string {
	out := headerLines(score)

	for _, section := range score.Sections {
		if section.Timestamp != "" {
			out = append(out, section.Timestamp)
		}
		if section.TimeSignature != nil {
			out = append(out, section.TimeSignature.String())
		}
		for _, system := range section.Systems {
			for _, ln := range system.RawLines {
				out = append(out, strings.TrimRight(ln, " \t"))
			}
			out = append(out, "")
		}
	}

	return joinLines(out)
}

func headerLines(score *model.Score) []string {
	out := []string{
		"title: " + score.Title,
		"artist: " + score.Artist,
	}
	if score.Capo != nil {
		out = append(out, fmt.Sprintf("capo: %d", *score.Capo))
	}
	return append(out, "")
}

func joinLines(out []string) string {
	for len(out) > 0 && out[len(out)-1] == "" {
		out = out[:len(out)-1]
	}
	return strings.Join(out, "\n") + "\n"
}
