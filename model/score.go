package model

import "fmt"

type TimeSignature struct {
	Numerator   int
	Denominator int
}

func (ts TimeSignature) String() string {
	return fmt.Sprintf("%d/%d", ts.Numerator, ts.Denominator)
}

type Barline string

const (
	BarlineSingle       Barline = "|"
	BarlineDouble       Barline = "||"
	BarlineRepeatStart  Barline = "||o"
	BarlineRepeatEnd    Barline = "o||"
	BarlineDoubleEnding Barline = "*|"
)

type ParseWarning struct {
	LineNo  int
	Message string
}

// TupletSpan marks a column range covered by a tuplet indicator like "|-3-|".
// Stored for reproduction only; it does not alter event timing.
type TupletSpan struct {
	Actual   int
	Normal   int
	StartCol int
	EndCol   int // inclusive
}

// AnnotationSpan marks a column range covered by a textual annotation,
// currently only palm-mute ("PM") markers.
type AnnotationSpan struct {
	Type     string
	StartCol int
	EndCol   int // inclusive
}

// Tuning holds open-string labels top line to bottom line, e.g.
// ["E","B","G","D","A","E"] for a standard 6-string.
type Tuning struct {
	Labels []string
}

type Measure struct {
	BarlineLeft   Barline
	BarlineRight  Barline
	TimeSignature TimeSignature
	Events        []Event
	// RawColumns is the character width of this measure's sliced content,
	// 0 when the measure was not built from a text grid.
	RawColumns int
}

// System is a simultaneous group of string lines sharing one bar structure.
type System struct {
	Tuning      Tuning
	Measures    []*Measure
	Annotations []AnnotationSpan
	Tuplets     []TupletSpan
	// DurationLine is the detected rhythm line padded to grid width,
	// empty when the system parsed in unknown-rhythm mode.
	DurationLine string
	// RawLines preserves the original text for pass-through rendering.
	RawLines []string
}

type Section struct {
	Timestamp     string // "mm:ss", empty when the section had no timestamp line
	TimeSignature *TimeSignature
	Systems       []*System
}

type Score struct {
	Title    string
	Artist   string
	Capo     *int
	Sections []*Section

	warnings []ParseWarning
}

// Diagnostics returns a copy of the soft parse diagnostics in document order.
func (s *Score) Diagnostics() []ParseWarning {
	out := make([]ParseWarning, len(s.warnings))
	copy(out, s.warnings)
	return out
}

// AddWarning appends a diagnostic. Structural data is never mutated after the
// parse returns; diagnostics are the one additive exception.
func (s *Score) AddWarning(lineNo int, message string) {
	s.warnings = append(s.warnings, ParseWarning{LineNo: lineNo, Message: message})
}

func (s *Score) SetWarnings(ws []ParseWarning) {
	s.warnings = ws
}
