package render

import (
	"bytes"
	"math"
	"math/big"
	"strconv"
	"strings"

	"github.com/asciitab/tabulator/model"
)

// FromModel reconstructs tablature text from the structured score: per
// measure a fixed-width grid with '-' fill, note tokens at mapped columns,
// and a duration line when the measure's events look rhythm-driven.
// Proportional column mapping is lossy, so round trips are approximate for
// duration-driven systems and exact for unknown-rhythm ones.
func FromModel(score *model.Score) string {
	out := headerLines(score)

	for _, section := range score.Sections {
		if section.Timestamp != "" {
			out = append(out, section.Timestamp)
		}
		if section.TimeSignature != nil {
			out = append(out, section.TimeSignature.String())
		}
		for _, system := range section.Systems {
			out = append(out, renderSystem(system)...)
			out = append(out, "")
		}
	}

	return joinLines(out)
}

func renderSystem(system *model.System) []string {
	labels := system.Tuning.Labels
	n := len(labels)

	type renderedMeasure struct {
		m    *model.Measure
		grid [][]byte
		dur  []byte // nil when the measure is not rhythm-driven
	}

	rendered := make([]renderedMeasure, 0, len(system.Measures))
	durationLinePresent := false
	for _, m := range system.Measures {
		grid, dur := renderMeasure(m, n)
		rendered = append(rendered, renderedMeasure{m: m, grid: grid, dur: dur})
		if dur != nil {
			durationLinePresent = true
		}
	}

	stringLines := make([]string, n)
	durLine := ""

	for _, rm := range rendered {
		left := string(rm.m.BarlineLeft)
		right := string(rm.m.BarlineRight)
		for si := 0; si < n; si++ {
			stringLines[si] += left + string(rm.grid[si]) + right
		}
		if durationLinePresent {
			durLine += strings.Repeat(" ", len(left))
			if rm.dur != nil {
				durLine += string(rm.dur)
			} else {
				durLine += strings.Repeat(" ", len(rm.grid[0]))
			}
			durLine += strings.Repeat(" ", len(right))
		}
	}

	var out []string
	if durationLinePresent {
		out = append(out, "   "+strings.TrimRight(durLine, " "))
	}
	for si := 0; si < n; si++ {
		out = append(out, labels[si]+stringLines[si])
	}
	return out
}

func renderMeasure(m *model.Measure, nStrings int) ([][]byte, []byte) {
	width := m.RawColumns
	if width <= 0 {
		width = inferMeasureWidth(m)
	}

	grid := make([][]byte, nStrings)
	for i := range grid {
		grid[i] = bytes.Repeat([]byte{'-'}, width)
	}

	var durationLine []byte
	if hasRhythmMode(m) {
		durationLine = bytes.Repeat([]byte{' '}, width)
	}

	colMap := makeTimeToColMapper(m, width)

	for _, ev := range m.Events {
		switch e := ev.(type) {
		case *model.RestEvent:
			if durationLine != nil {
				placeToken(durationLine, colMap(e.Start), durationSymbolFor(e.Duration))
			}
		case *model.NoteEvent:
			c := colMap(e.Start)
			placeNote(grid, e.StringIndex, c, e)
			if durationLine != nil {
				placeToken(durationLine, c, durationSymbolFor(e.Duration))
			}
		case *model.ChordEvent:
			c := colMap(e.Start)
			for _, ne := range e.Notes {
				placeNote(grid, ne.StringIndex, c, ne)
			}
			if durationLine != nil {
				placeToken(durationLine, c, durationSymbolFor(e.Duration))
			}
		}
	}

	return grid, durationLine
}

func placeNote(grid [][]byte, stringIndex, col int, ne *model.NoteEvent) {
	if stringIndex < 0 || stringIndex >= len(grid) {
		return
	}
	row := grid[stringIndex]
	if col < 0 || col >= len(row) {
		return
	}

	if ne.Fret == nil {
		placeToken(row, col, "x")
		return
	}

	token := strconv.Itoa(*ne.Fret)
	if ne.Ghost {
		token = "(" + token + ")"
	}
	placeToken(row, col, token)
}

// placeToken overlays a token on the row, clipping at both bounds.
func placeToken(row []byte, col int, token string) {
	for i := 0; i < len(token); i++ {
		idx := col + i
		if idx >= 0 && idx < len(row) {
			row[idx] = token[i]
		}
	}
}

func inferMeasureWidth(m *model.Measure) int {
	n := 3 * len(m.Events)
	if n < 16 {
		n = 16
	}
	if n > 96 {
		n = 96
	}
	return n
}

var columnModeLimit = big.NewRat(64, 1)

// hasRhythmMode distinguishes the two time encodings: rhythm-driven starts
// are small beat fractions, unknown-rhythm starts are raw column indexes and
// routinely run past 64.
func hasRhythmMode(m *model.Measure) bool {
	if len(m.Events) == 0 {
		return false
	}
	for _, ev := range m.Events {
		if ev.EventStart().Cmp(columnModeLimit) >= 0 {
			return false
		}
	}
	return true
}

func makeTimeToColMapper(m *model.Measure, width int) func(*big.Rat) int {
	if !hasRhythmMode(m) {
		// starts already encode literal column indexes
		return func(t *big.Rat) int {
			return int(new(big.Int).Quo(t.Num(), t.Denom()).Int64())
		}
	}

	total := new(big.Rat)
	for _, ev := range m.Events {
		total.Add(total, ev.EventDuration())
	}
	if total.Sign() <= 0 {
		total = big.NewRat(4, 1)
	}

	return func(t *big.Rat) int {
		x, _ := new(big.Rat).Quo(t, total).Float64()
		c := int(math.Round(x * float64(width-1)))
		if c < 0 {
			c = 0
		}
		if c > width-1 {
			c = width - 1
		}
		return c
	}
}

func durationSymbolFor(d *big.Rat) string {
	switch d.RatString() {
	case "4":
		return "W"
	case "2":
		return "H"
	case "1":
		return "Q"
	case "1/2":
		return "E"
	case "1/4":
		return "S"
	case "1/8":
		return "T"
	case "1/16":
		return "X"
	}
	return "Q" // fallback for durations with no single symbol
}
