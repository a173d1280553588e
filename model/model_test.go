package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTimeSignatureString(t *testing.T) {
	assert := assert.New(t)
	assert.Equal("4/4", TimeSignature{Numerator: 4, Denominator: 4}.String())
	assert.Equal("6/8", TimeSignature{Numerator: 6, Denominator: 8}.String())
}

func TestBarlineTokens(t *testing.T) {
	assert := assert.New(t)
	assert.Equal(Barline("|"), BarlineSingle)
	assert.Equal(Barline("||"), BarlineDouble)
	assert.Equal(Barline("||o"), BarlineRepeatStart)
	assert.Equal(Barline("o||"), BarlineRepeatEnd)
	assert.Equal(Barline("*|"), BarlineDoubleEnding)
}

func TestEventAccessors(t *testing.T) {
	assert := assert.New(t)

	fret := 3
	note := &NoteEvent{Start: Rat(1, 2), Duration: Rat(1, 4), StringIndex: 2, Fret: &fret}
	chord := &ChordEvent{Start: Rat(0, 1), Duration: Rat(1, 1), Notes: []*NoteEvent{note}}
	rest := &RestEvent{Start: Rat(3, 2), Duration: Rat(1, 2)}

	var events []Event
	events = append(events, note, chord, rest)

	assert.Equal("1/2", events[0].EventStart().RatString())
	assert.Equal("1/4", events[0].EventDuration().RatString())
	assert.Equal("0", events[1].EventStart().RatString())
	assert.Equal("1/2", events[2].EventDuration().RatString())

	// zero values of the optional note fields mean "absent"
	assert.Nil(note.Tie)
	assert.Nil(note.Pitch)
	assert.False(note.Ghost)
	assert.Empty(note.Techniques)
}

func TestDiagnosticsAreCopied(t *testing.T) {
	assert := assert.New(t)

	score := &Score{Title: "T", Artist: "A"}
	score.AddWarning(3, "first")
	score.AddWarning(7, "second")

	diags := score.Diagnostics()
	assert.Len(diags, 2)
	diags[0].Message = "mutated"
	assert.Equal("first", score.Diagnostics()[0].Message)

	score.SetWarnings(nil)
	assert.Empty(score.Diagnostics())
}

func TestTechniqueVariants(t *testing.T) {
	from, to := 1, 3
	techniques := []Technique{
		HammerOn{FromFret: &from, ToFret: &to},
		PullOff{FromFret: &to, ToFret: &from},
		SlideIn{Direction: "/"},
		Vibrato{},
		Muted{},
		UnknownTechnique{Raw: "?"},
	}
	assert.Len(t, techniques, 6)
}
