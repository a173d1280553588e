package model

// Technique is the closed set of inline playing-technique markers a note can
// carry. Exhaustive handling happens via type switches over these variants.
type Technique interface {
	technique()
}

type HammerOn struct {
	FromFret *int
	ToFret   *int
}

type PullOff struct {
	FromFret *int
	ToFret   *int
}

type SlideIn struct {
	Direction string // "/" or "\"
}

type Vibrato struct{}

type Muted struct{}

// UnknownTechnique is a forward-compatibility fallback for inline markers the
// tokenizer does not recognize. The parser does not currently emit it.
type UnknownTechnique struct {
	Raw string
}

func (HammerOn) technique()         {}
func (PullOff) technique()          {}
func (SlideIn) technique()          {}
func (Vibrato) technique()          {}
func (Muted) technique()            {}
func (UnknownTechnique) technique() {}
