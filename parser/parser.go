package parser

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/asciitab/tabulator/model"
)

// ParseError is a hard parse failure. No partial score accompanies one; soft
// problems become diagnostics on the returned score instead.
type ParseError struct {
	Msg string
}

func (e *ParseError) Error() string { return e.Msg }

var (
	headerTitleRe  = regexp.MustCompile(`(?i)^title:\s*(.+)$`)
	headerArtistRe = regexp.MustCompile(`(?i)^artist:\s*(.+)$`)
	headerCapoRe   = regexp.MustCompile(`(?i)^capo:\s*(\d+)\s*$`)
	headerFieldRe  = regexp.MustCompile(`(?i)^\s*(title|artist|capo)\s*:`)
)

// Parse interprets ASCII tablature text into a structured score. It fails
// hard only on a missing title/artist header or a system block with zero
// string lines; everything else degrades to diagnostics.
func Parse(text string) (*model.Score, error) {
	lines := splitLines(text)
	score, idx, err := parseHeader(lines)
	if err != nil {
		return nil, err
	}
	sections, warnings, err := parseSections(lines[idx:])
	if err != nil {
		return nil, err
	}
	score.Sections = sections
	score.SetWarnings(warnings)
	return score, nil
}

func splitLines(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	return strings.Split(text, "\n")
}

func parseHeader(lines []string) (*model.Score, int, error) {
	var title, artist string
	var capo *int
	i := 0
	for i < len(lines) {
		line := strings.TrimSpace(lines[i])
		if line == "" {
			i++
			continue
		}
		if m := headerTitleRe.FindStringSubmatch(line); m != nil {
			title = strings.TrimSpace(m[1])
			i++
			continue
		}
		if m := headerArtistRe.FindStringSubmatch(line); m != nil {
			artist = strings.TrimSpace(m[1])
			i++
			continue
		}
		if m := headerCapoRe.FindStringSubmatch(line); m != nil {
			n, _ := strconv.Atoi(m[1])
			capo = &n
			i++
			continue
		}
		break // end of header block
	}
	if title == "" || artist == "" {
		return nil, 0, &ParseError{Msg: "missing mandatory header fields: 'title:' and/or 'artist:'"}
	}
	return &model.Score{Title: title, Artist: artist, Capo: capo}, i, nil
}

// parseSections walks the post-header lines. Timestamp lines delimit
// sections; a time-signature line persists until overridden. Line numbers in
// diagnostics are relative to the first post-header line.
func parseSections(lines []string) ([]*model.Section, []model.ParseWarning, error) {
	i := 0
	var warnings []model.ParseWarning
	var sections []*model.Section
	currentTS := model.TimeSignature{Numerator: 4, Denominator: 4}
	current := &model.Section{}

	flush := func() {
		if len(current.Systems) > 0 {
			sections = append(sections, current)
		}
		current = &model.Section{}
	}

	for i < len(lines) {
		raw := lines[i]
		if strings.TrimSpace(raw) == "" {
			i++
			continue
		}

		if m := timestampRe.FindStringSubmatch(raw); m != nil {
			flush()
			mm, _ := strconv.Atoi(m[1])
			ss, _ := strconv.Atoi(m[2])
			current.Timestamp = fmt.Sprintf("%d:%02d", mm, ss)
			i++
			continue
		}

		if m := tsRe.FindStringSubmatch(raw); m != nil {
			num, _ := strconv.Atoi(m[1])
			den, _ := strconv.Atoi(m[2])
			currentTS = model.TimeSignature{Numerator: num, Denominator: den}
			if current.TimeSignature == nil {
				ts := currentTS
				current.TimeSignature = &ts
			}
			i++
			continue
		}

		block, consumed := collectSystemBlock(lines, i)
		if consumed == 0 {
			warnings = append(warnings, model.ParseWarning{
				LineNo:  i + 1,
				Message: fmt.Sprintf("Unrecognized line skipped: %q", raw),
			})
			i++
			continue
		}

		system, err := parseSystemBlock(block, currentTS, &warnings)
		if err != nil {
			return nil, nil, err
		}
		current.Systems = append(current.Systems, system)
		i += consumed
	}

	flush()
	return sections, warnings, nil
}
