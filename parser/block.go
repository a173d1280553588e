package parser

import (
	"regexp"
	"strings"
)

// durationSymbols is the duration-line alphabet. Uppercase A is deliberately
// absent: only lowercase "a" marks a grace note.
const durationSymbols = "WHQESTXawhqestx"

var (
	tsRe              = regexp.MustCompile(`^\s*(\d+)\s*/\s*(\d+)\s*$`)
	timestampRe       = regexp.MustCompile(`^\s*(\d+):(\d{2})\s*$`)
	stringLabeledRe   = regexp.MustCompile(`^\s*([A-Ga-g])([#b])?\s*\|`)
	stringUnlabeledRe = regexp.MustCompile(`^\s*\|`)
	tripletRe         = regexp.MustCompile(`[|│]\s*[-–—−]+\s*3\s*[-–—−]+\s*[|│]`)
	pmRe              = regexp.MustCompile(`PM[-\s]*\|`)
)

type blockLine struct {
	lineNo int
	text   string
}

// isStringLine decides whether a line is part of the fret grid. Triplet and
// palm-mute markers take precedence over the generic bare-"|" rule; a line is
// never classified both ways.
func isStringLine(line string) bool {
	if stringLabeledRe.MatchString(line) {
		return true
	}
	if stringUnlabeledRe.MatchString(line) {
		s := strings.TrimSpace(line)
		if tripletRe.MatchString(s) {
			return false
		}
		if strings.HasPrefix(s, "PM") {
			return false
		}
		return true
	}
	return false
}

func containsDurationSymbol(s string) bool {
	return strings.ContainsAny(s, durationSymbols)
}

func isAnnotationOrDuration(line string) bool {
	s := strings.TrimSpace(line)
	if s == "" {
		return false
	}
	if tsRe.MatchString(s) || timestampRe.MatchString(s) {
		return true
	}
	if strings.Contains(s, "PM") {
		return true
	}
	if tripletRe.MatchString(s) {
		return true
	}
	return containsDurationSymbol(s)
}

// collectSystemBlock gathers a system-ish block starting at lines[start]:
// leading annotation/duration lines, then one or more string lines, possibly
// with more annotation lines interleaved. Returns the block and the count of
// lines consumed; (nil, 0) means no system starts here.
func collectSystemBlock(lines []string, start int) ([]blockLine, int) {
	var block []blockLine
	i := start

	// leading annotation/duration lines; blank lines and timestamps never
	// open a system
	for i < len(lines) {
		s := lines[i]
		if strings.TrimSpace(s) == "" {
			return nil, 0
		}
		if timestampRe.MatchString(s) {
			return nil, 0
		}
		if isStringLine(s) {
			break
		}
		if isAnnotationOrDuration(s) || tsRe.MatchString(strings.TrimSpace(s)) {
			block = append(block, blockLine{lineNo: i + 1, text: s})
			i++
			continue
		}
		// unknown line before any strings: not a system start
		return nil, 0
	}

	stringCount := 0
	for i < len(lines) {
		s := lines[i]
		if strings.TrimSpace(s) == "" {
			break
		}
		if timestampRe.MatchString(s) {
			break
		}
		if headerFieldRe.MatchString(s) {
			break
		}

		if isStringLine(s) {
			stringCount++
			block = append(block, blockLine{lineNo: i + 1, text: s})
			i++
			continue
		}

		if isAnnotationOrDuration(s) || tsRe.MatchString(strings.TrimSpace(s)) {
			block = append(block, blockLine{lineNo: i + 1, text: s})
			i++
			continue
		}

		break
	}

	if stringCount == 0 {
		return nil, 0
	}
	return block, len(block)
}

func countStringLines(block []blockLine) int {
	n := 0
	for _, bl := range block {
		if isStringLine(bl.text) {
			n++
		}
	}
	return n
}
