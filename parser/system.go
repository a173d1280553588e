package parser

import (
	"regexp"
	"strings"

	"github.com/asciitab/tabulator/model"
)

// Alternation order is load-bearing: longer tokens win over shorter ones at
// the same position ("||o" is repeat-start, never double plus a stray "o").
var barTokenRe = regexp.MustCompile(`\|\|o|o\|\||\|\||\*\||\|`)

type barToken struct {
	start int
	end   int
	tok   string
}

func findBarTokens(s string) []barToken {
	var out []barToken
	for _, loc := range barTokenRe.FindAllStringIndex(s, -1) {
		out = append(out, barToken{start: loc[0], end: loc[1], tok: s[loc[0]:loc[1]]})
	}
	return out
}

func barlineFromToken(tok string) model.Barline {
	switch tok {
	case "||o":
		return model.BarlineRepeatStart
	case "o||":
		return model.BarlineRepeatEnd
	case "||":
		return model.BarlineDouble
	case "*|":
		return model.BarlineDoubleEnding
	}
	return model.BarlineSingle
}

func parseSystemBlock(block []blockLine, effectiveTS model.TimeSignature, warnings *[]model.ParseWarning) (*model.System, error) {
	var stringLines, preLines []blockLine
	for _, bl := range block {
		if isStringLine(bl.text) {
			stringLines = append(stringLines, bl)
		} else {
			preLines = append(preLines, bl)
		}
	}

	if len(stringLines) == 0 {
		return nil, &ParseError{Msg: "zero detected string lines in a system"}
	}

	// tuning labels and grid contents; labeled lines keep their first '|'
	// in the content so columns line up with unlabeled lines
	labels := make([]string, 0, len(stringLines))
	contents := make([]string, 0, len(stringLines))
	for _, sl := range stringLines {
		if loc := stringLabeledRe.FindStringSubmatchIndex(sl.text); loc != nil {
			label := sl.text[loc[2]:loc[3]]
			if loc[4] >= 0 {
				label += sl.text[loc[4]:loc[5]]
			}
			labels = append(labels, strings.ToUpper(label))
			contents = append(contents, sl.text[loc[1]-1:])
		} else {
			labels = append(labels, "?")
			contents = append(contents, strings.TrimLeft(sl.text, " \t"))
		}
	}

	// fully unlabeled 6-string grids default to standard tuning so pitch
	// assignment has something to work with
	allUnlabeled := true
	for _, l := range labels {
		if l != "?" {
			allUnlabeled = false
			break
		}
	}
	if allUnlabeled && len(labels) == 6 {
		labels = []string{"E", "B", "G", "D", "A", "E"}
	}

	width := 0
	for _, c := range contents {
		if len(c) > width {
			width = len(c)
		}
	}
	for i, c := range contents {
		contents[i] = padRight(c, width)
	}

	// first pre-line carrying duration symbols becomes the duration line
	durationLine := ""
	for _, pl := range preLines {
		if containsDurationSymbol(pl.text) {
			durationLine = padRight(pl.text, width)
			break
		}
	}

	var annotations []model.AnnotationSpan
	var tuplets []model.TupletSpan
	for _, pl := range preLines {
		if strings.Contains(pl.text, "PM") {
			for _, loc := range pmRe.FindAllStringIndex(pl.text, -1) {
				annotations = append(annotations, model.AnnotationSpan{Type: "PM", StartCol: loc[0], EndCol: loc[1] - 1})
			}
		}
		for _, loc := range tripletRe.FindAllStringIndex(pl.text, -1) {
			tuplets = append(tuplets, model.TupletSpan{Actual: 3, Normal: 2, StartCol: loc[0], EndCol: loc[1] - 1})
		}
	}

	// segment measures off the reference (first) string line
	ref := contents[0]
	bars := findBarTokens(ref)
	if len(bars) < 2 {
		// no usable barlines: the whole line becomes one synthetic measure
		bars = []barToken{
			{start: 0, end: 1, tok: "|"},
			{start: width - 1, end: width, tok: "|"},
		}
	}

	refPositions := make([]int, 0, len(bars))
	for _, b := range bars {
		refPositions = append(refPositions, b.start)
	}
	for si := 1; si < len(contents); si++ {
		other := findBarTokens(contents[si])
		otherPositions := make([]int, 0, len(other))
		for _, b := range other {
			otherPositions = append(otherPositions, b.start)
		}
		if len(otherPositions) > 0 && !equalInts(otherPositions, refPositions) {
			*warnings = append(*warnings, model.ParseWarning{
				LineNo:  stringLines[si].lineNo,
				Message: "Inconsistent barline positions across strings (best-effort parsing).",
			})
		}
	}

	tuning := model.Tuning{Labels: labels}
	var measures []*model.Measure
	for j := 0; j+1 < len(bars); j++ {
		left, right := bars[j], bars[j+1]
		mStart, mEnd := left.end, right.start
		slices := make([]string, len(contents))
		for k, c := range contents {
			slices[k] = sliceCols(c, mStart, mEnd)
		}
		hasDur := durationLine != ""
		durSlice := ""
		if hasDur {
			durSlice = sliceCols(durationLine, mStart, mEnd)
		}

		measure := &model.Measure{
			BarlineLeft:   barlineFromToken(left.tok),
			BarlineRight:  barlineFromToken(right.tok),
			TimeSignature: effectiveTS,
			RawColumns:    len(slices[0]),
		}
		parseMeasureEvents(measure, slices, durSlice, hasDur, tuning)
		measures = append(measures, measure)
	}

	rawLines := make([]string, 0, len(block))
	for _, pl := range preLines {
		rawLines = append(rawLines, pl.text)
	}
	for _, sl := range stringLines {
		rawLines = append(rawLines, sl.text)
	}

	return &model.System{
		Tuning:       tuning,
		Measures:     measures,
		Annotations:  annotations,
		Tuplets:      tuplets,
		DurationLine: durationLine,
		RawLines:     rawLines,
	}, nil
}

func padRight(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}

func sliceCols(s string, a, b int) string {
	if a > len(s) {
		a = len(s)
	}
	if b > len(s) {
		b = len(s)
	}
	if b < a {
		b = a
	}
	return s[a:b]
}

func equalInts(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
