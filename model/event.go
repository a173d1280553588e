package model

import "math/big"

// Rat builds an exact rational beat value. All event times stay rational
// until the tempo-scaling step in export.
func Rat(num, den int64) *big.Rat {
	return big.NewRat(num, den)
}

// Event is the closed set of things that can occupy a rhythmic slot in a
// measure: a single note, a chord, or a rest. Start and duration are in
// quarter-note beats.
type Event interface {
	EventStart() *big.Rat
	EventDuration() *big.Rat
	event()
}

type NoteEvent struct {
	Start       *big.Rat
	Duration    *big.Rat
	StringIndex int  // 0-based, top-to-bottom
	Fret        *int // nil for a muted/non-pitched hit
	Techniques  []Technique
	Tie         *TieInfo
	Grace       bool
	Pitch       *int // nil until pitch assignment, stays nil when Fret is nil
	Ghost       bool
}

func (e *NoteEvent) EventStart() *big.Rat    { return e.Start }
func (e *NoteEvent) EventDuration() *big.Rat { return e.Duration }
func (e *NoteEvent) event()                  {}

// ChordEvent wraps simultaneous notes across strings. Notes is never empty
// and all notes share the chord's start and duration.
type ChordEvent struct {
	Start    *big.Rat
	Duration *big.Rat
	Notes    []*NoteEvent
}

func (e *ChordEvent) EventStart() *big.Rat    { return e.Start }
func (e *ChordEvent) EventDuration() *big.Rat { return e.Duration }
func (e *ChordEvent) event()                  {}

type RestEvent struct {
	Start    *big.Rat
	Duration *big.Rat
}

func (e *RestEvent) EventStart() *big.Rat    { return e.Start }
func (e *RestEvent) EventDuration() *big.Rat { return e.Duration }
func (e *RestEvent) event()                  {}

// TieInfo marks a note as continued from the previous event on the same
// string. Continuity is a flag, not a link to the prior event.
type TieInfo struct {
	Continued bool
}

// DurationToken is one recognized symbol from a duration line, e.g. "+H.",
// "q", "Wx2".
type DurationToken struct {
	Raw      string
	Symbol   string // one of W H Q E S T X a, case preserved
	Dotted   int    // 0..2
	Tie      bool
	Staccato bool // lowercase symbol
	Grace    bool // symbol "a"
	// MultibarRests is the n of a "Wxn" multi-measure rest, 0 when absent.
	MultibarRests int
}
