package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/asciitab/tabulator/model"
)

func TestCollectSystemBlock(t *testing.T) {
	assert := assert.New(t)

	lines := []string{
		"   Q E",
		"E|0--|",
		"B|1--|",
		"",
		"1:23",
		"X not a system line",
	}

	block, consumed := collectSystemBlock(lines, 0)
	assert.Equal(3, consumed)
	assert.Equal(2, countStringLines(block))

	_, consumed = collectSystemBlock(lines, 3)
	assert.Equal(0, consumed)

	_, consumed = collectSystemBlock(lines, 4)
	assert.Equal(0, consumed)

	_, consumed = collectSystemBlock(lines, 5)
	assert.Equal(0, consumed)

	// unknown line before any strings rejects the block early
	_, consumed = collectSystemBlock([]string{"%%%%", "E|0|"}, 0)
	assert.Equal(0, consumed)

	// annotations interleave after strings; a timestamp ends the block
	mixed, consumed := collectSystemBlock([]string{"E|0--|", "PM---|", "1:23", "B|1--|"}, 0)
	assert.Equal(2, consumed)
	assert.Equal(1, countStringLines(mixed))

	_, consumed = collectSystemBlock([]string{"E|0--|", "title: stop"}, 0)
	assert.Equal(1, consumed)

	_, consumed = collectSystemBlock([]string{"E|0--|", "%%%%"}, 0)
	assert.Equal(1, consumed)
}

func TestLineClassifiersAndBarlineHelpers(t *testing.T) {
	assert := assert.New(t)

	assert.True(isStringLine("E|---0---|"))
	assert.True(isStringLine("|---0---|"))
	assert.False(isStringLine("|-3-|"))
	assert.False(isStringLine("PM---|"))

	assert.True(isAnnotationOrDuration("6/8"))
	assert.True(isAnnotationOrDuration("1:23"))
	assert.True(isAnnotationOrDuration("PM----|"))
	assert.True(isAnnotationOrDuration("|-3-|"))
	assert.True(isAnnotationOrDuration("  Q E S"))
	assert.True(isAnnotationOrDuration("  Q|E|S"))
	assert.False(isAnnotationOrDuration("zzzz"))

	var toks []string
	for _, b := range findBarTokens("||o x o|| y || z *| w |") {
		toks = append(toks, b.tok)
	}
	assert.Equal([]string{"||o", "o||", "||", "*|", "|"}, toks)

	assert.Equal(model.BarlineRepeatStart, barlineFromToken("||o"))
	assert.Equal(model.BarlineRepeatEnd, barlineFromToken("o||"))
	assert.Equal(model.BarlineDouble, barlineFromToken("||"))
	assert.Equal(model.BarlineDoubleEnding, barlineFromToken("*|"))
	assert.Equal(model.BarlineSingle, barlineFromToken("|"))
}

func TestParseSystemBlockWithoutStringLinesErrors(t *testing.T) {
	var warnings []model.ParseWarning
	_, err := parseSystemBlock(
		[]blockLine{{1, "Q E E"}, {2, "PM--|"}},
		model.TimeSignature{Numerator: 4, Denominator: 4},
		&warnings,
	)
	assert.Error(t, err)
}

func TestParseSystemBlockUnlabeledDefaultsAndSyntheticBars(t *testing.T) {
	assert := assert.New(t)

	unlabeled := []blockLine{
		{1, "|0----"},
		{2, "|-----"},
		{3, "|-----"},
		{4, "|-----"},
		{5, "|-----"},
		{6, "|-----"},
	}
	var warnings []model.ParseWarning
	system, err := parseSystemBlock(unlabeled, model.TimeSignature{Numerator: 4, Denominator: 4}, &warnings)
	assert.NoError(err)
	assert.Len(warnings, 5)
	assert.Equal([]string{"E", "B", "G", "D", "A", "E"}, system.Tuning.Labels)
	assert.Len(system.Measures, 1)
}

func TestDurationTokenParsingAndConversion(t *testing.T) {
	assert := assert.New(t)

	tok, _ := maybeParseDurationAt("Q", 2)
	assert.Nil(tok)
	tok, _ = maybeParseDurationAt("+", 0)
	assert.Nil(tok)
	tok, _ = maybeParseDurationAt("?", 0)
	assert.Nil(tok)

	tok, consumed := maybeParseDurationAt("+E..", 0)
	assert.Equal("+E..", tok.Raw)
	assert.True(tok.Tie)
	assert.Equal(2, tok.Dotted)
	assert.Equal(4, consumed)

	tok, consumed = maybeParseDurationAt("Wx3", 0)
	assert.Equal(3, tok.MultibarRests)
	assert.Equal(3, consumed)

	// a dotted W keeps its dots but never takes a multibar suffix
	tok, consumed = maybeParseDurationAt("+W..x2", 0)
	assert.Equal("+W..", tok.Raw)
	assert.Equal(0, tok.MultibarRests)
	assert.Equal(4, consumed)

	parsed := parseDurationToken("+wx2")
	assert.True(parsed.Tie)
	assert.True(parsed.Staccato)
	assert.Equal(2, parsed.MultibarRests)

	ts := model.TimeSignature{Numerator: 4, Denominator: 4}

	dur := durationTokenBeats(&model.DurationToken{Raw: "Q.", Symbol: "Q", Dotted: 1}, ts)
	assert.Equal("3/2", dur.RatString())

	dur = durationTokenBeats(&model.DurationToken{Raw: "Q..", Symbol: "Q", Dotted: 2}, ts)
	assert.Equal("7/4", dur.RatString())

	dur = durationTokenBeats(&model.DurationToken{Raw: "q", Symbol: "q", Staccato: true}, ts)
	assert.Equal("1/2", dur.RatString())

	dur = durationTokenBeats(
		&model.DurationToken{Raw: "Wx2", Symbol: "W", MultibarRests: 2},
		model.TimeSignature{Numerator: 3, Denominator: 4},
	)
	assert.Equal("6", dur.RatString())

	// grace notes carry no rhythmic length
	dur = durationTokenBeats(&model.DurationToken{Raw: "a", Symbol: "a", Staccato: true, Grace: true}, ts)
	assert.Equal(0, dur.Sign())
}

func TestParseNoteAt(t *testing.T) {
	assert := assert.New(t)

	note, techniques, consumed := parseNoteAt("123", 10)
	assert.Nil(note)
	assert.Empty(techniques)
	assert.Equal(0, consumed)

	note, techniques, consumed = parseNoteAt("/12", 0)
	assert.Equal(12, *note.fret)
	assert.Equal(model.SlideIn{Direction: "/"}, techniques[0])
	assert.Equal(3, consumed)

	note, techniques, consumed = parseNoteAt(`\7`, 0)
	assert.Equal(7, *note.fret)
	assert.Equal(model.SlideIn{Direction: `\`}, techniques[0])
	assert.Equal(2, consumed)

	note, techniques, consumed = parseNoteAt("1h3", 0)
	assert.Equal(3, *note.fret)
	assert.IsType(model.HammerOn{}, techniques[0])
	assert.Equal(3, consumed)

	note, techniques, consumed = parseNoteAt("4p2", 0)
	assert.Equal(2, *note.fret)
	assert.IsType(model.PullOff{}, techniques[0])
	assert.Equal(3, consumed)

	note, techniques, consumed = parseNoteAt("9~", 0)
	assert.Equal(9, *note.fret)
	assert.IsType(model.Vibrato{}, techniques[0])
	assert.Equal(1, consumed)

	note, techniques, consumed = parseNoteAt("(7)", 0)
	assert.Equal(7, *note.fret)
	assert.True(note.ghost)
	assert.Empty(techniques)
	assert.Equal(3, consumed)

	note, techniques, consumed = parseNoteAt("x", 0)
	assert.Nil(note.fret)
	assert.IsType(model.Muted{}, techniques[0])
	assert.Equal(1, consumed)

	note, _, _ = parseNoteAt("-", 0)
	assert.Nil(note)
}

func TestPitchAssignment(t *testing.T) {
	assert := assert.New(t)

	fret2 := 2
	fret3 := 3
	measure := &model.Measure{
		BarlineLeft:   model.BarlineSingle,
		BarlineRight:  model.BarlineSingle,
		TimeSignature: model.TimeSignature{Numerator: 4, Denominator: 4},
		Events: []model.Event{
			&model.NoteEvent{Start: model.Rat(0, 1), Duration: model.Rat(1, 1), StringIndex: 0, Fret: &fret2},
			&model.NoteEvent{Start: model.Rat(0, 1), Duration: model.Rat(1, 1), StringIndex: 99, Fret: &fret2},
			&model.ChordEvent{
				Start:    model.Rat(0, 1),
				Duration: model.Rat(1, 1),
				Notes: []*model.NoteEvent{
					{Start: model.Rat(0, 1), Duration: model.Rat(1, 1), StringIndex: 1, Fret: &fret3},
					{Start: model.Rat(0, 1), Duration: model.Rat(1, 1), StringIndex: 1},
				},
			},
		},
	}
	assignPitches(measure, model.Tuning{Labels: []string{"E", "B"}})

	assert.Equal(66, *measure.Events[0].(*model.NoteEvent).Pitch)
	assert.Nil(measure.Events[1].(*model.NoteEvent).Pitch)
	chord := measure.Events[2].(*model.ChordEvent)
	assert.Equal(74, *chord.Notes[0].Pitch)
	assert.Nil(chord.Notes[1].Pitch)

	open := tuningToOpenMidi([]string{"E", "Bb", "Q", "G#", "Db", "A"})
	assert.Equal(64, open[0])
	assert.Equal(58, open[1])
	assert.Equal(52, open[2]) // unknown label falls back to E at this string's octave
	assert.Len(tuningToOpenMidi([]string{"E", "A", "D"}), 3)
}

func TestParseMeasureEventsBothModes(t *testing.T) {
	assert := assert.New(t)

	unknown := &model.Measure{
		BarlineLeft:   model.BarlineSingle,
		BarlineRight:  model.BarlineSingle,
		TimeSignature: model.TimeSignature{Numerator: 4, Denominator: 4},
	}
	parseMeasureEvents(unknown, []string{"0-(2)-x-"}, "", false, model.Tuning{Labels: []string{"E"}})

	var sawGhost, sawMuted bool
	for _, ev := range unknown.Events {
		ne, ok := ev.(*model.NoteEvent)
		assert.True(ok) // unknown-rhythm mode only ever emits notes
		if ne.Ghost {
			sawGhost = true
		}
		if ne.Fret == nil {
			sawMuted = true
		}
	}
	assert.True(sawGhost)
	assert.True(sawMuted)

	driven := &model.Measure{
		BarlineLeft:   model.BarlineSingle,
		BarlineRight:  model.BarlineSingle,
		TimeSignature: model.TimeSignature{Numerator: 4, Denominator: 4},
	}
	parseMeasureEvents(driven, []string{"0---"}, "QQQQ", true, model.Tuning{Labels: []string{"E"}})

	assert.Len(driven.Events, 4)
	rests := 0
	for _, ev := range driven.Events {
		if _, ok := ev.(*model.RestEvent); ok {
			rests++
		}
	}
	assert.Equal(3, rests)
}
