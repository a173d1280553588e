package parser

import (
	"math/big"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/asciitab/tabulator/model"
)

var (
	noteNumRe  = regexp.MustCompile(`^\d+`)
	ghostRe    = regexp.MustCompile(`^\((\d+)\)`)
	multibarRe = regexp.MustCompile(`^x\d+`)
)

// parseMeasureEvents fills a measure's event list from its sliced string
// rows. With no duration line the measure parses in unknown-rhythm mode:
// column position is time, every hit lasts one beat, and no rests or chords
// are formed. With a duration line the rhythm symbols drive timing and each
// recognized token yields exactly one Note, Chord, or Rest event.
func parseMeasureEvents(measure *model.Measure, stringSlices []string, durSlice string, hasDur bool, tuning model.Tuning) {
	if !hasDur {
		var events []*model.NoteEvent
		for si, row := range stringSlices {
			c := 0
			for c < len(row) {
				ch := row[c]
				if isDigit(ch) {
					digits := noteNumRe.FindString(row[c:])
					fret, _ := strconv.Atoi(digits)
					f := fret
					events = append(events, &model.NoteEvent{
						Start:       model.Rat(int64(c), 1),
						Duration:    model.Rat(1, 1),
						StringIndex: si,
						Fret:        &f,
					})
					c += len(digits)
					continue
				}
				if ch == '(' {
					if m := ghostRe.FindStringSubmatch(row[c:]); m != nil {
						fret, _ := strconv.Atoi(m[1])
						f := fret
						events = append(events, &model.NoteEvent{
							Start:       model.Rat(int64(c), 1),
							Duration:    model.Rat(1, 1),
							StringIndex: si,
							Fret:        &f,
							Ghost:       true,
						})
						c += len(m[0])
						continue
					}
				}
				if ch == 'x' || ch == 'X' {
					events = append(events, &model.NoteEvent{
						Start:       model.Rat(int64(c), 1),
						Duration:    model.Rat(1, 1),
						StringIndex: si,
						Techniques:  []model.Technique{model.Muted{}},
					})
					c++
					continue
				}
				c++
			}
		}

		sort.SliceStable(events, func(i, j int) bool {
			if cmp := events[i].Start.Cmp(events[j].Start); cmp != 0 {
				return cmp < 0
			}
			return events[i].StringIndex < events[j].StringIndex
		})
		for _, e := range events {
			measure.Events = append(measure.Events, e)
		}
		assignPitches(measure, tuning)
		return
	}

	time := new(big.Rat)
	col := 0
	for col < len(durSlice) {
		tok, consumed := maybeParseDurationAt(durSlice, col)
		if tok == nil {
			col++
			continue
		}
		durBeats := durationTokenBeats(tok, measure.TimeSignature)

		var notesAtCol []*model.NoteEvent
		for si, row := range stringSlices {
			note, techniques, _ := parseNoteAt(row, col)
			if note == nil {
				continue
			}
			ne := &model.NoteEvent{
				Start:       copyRat(time),
				Duration:    copyRat(durBeats),
				StringIndex: si,
				Fret:        note.fret,
				Techniques:  techniques,
				Grace:       tok.Grace,
				Ghost:       note.ghost,
			}
			if tok.Tie {
				ne.Tie = &model.TieInfo{Continued: true}
			}
			notesAtCol = append(notesAtCol, ne)
		}

		switch len(notesAtCol) {
		case 0:
			measure.Events = append(measure.Events, &model.RestEvent{Start: copyRat(time), Duration: copyRat(durBeats)})
		case 1:
			measure.Events = append(measure.Events, notesAtCol[0])
		default:
			measure.Events = append(measure.Events, &model.ChordEvent{Start: copyRat(time), Duration: copyRat(durBeats), Notes: notesAtCol})
		}

		time.Add(time, durBeats)
		col += consumed
	}

	assignPitches(measure, tuning)
}

type noteToken struct {
	fret  *int
	ghost bool
}

// parseNoteAt recognizes a note token starting exactly at row[col]: fret
// digits, a slide-in prefix, inline legato, a ghost note, or a mute. Returns
// nil when nothing starts there.
func parseNoteAt(row string, col int) (*noteToken, []model.Technique, int) {
	if col >= len(row) {
		return nil, nil, 0
	}

	ch := row[col]

	// slide-in marker immediately before digits: "/8" or "\7"
	if (ch == '/' || ch == '\\') && col+1 < len(row) && isDigit(row[col+1]) {
		digits := noteNumRe.FindString(row[col+1:])
		fret, _ := strconv.Atoi(digits)
		return &noteToken{fret: &fret}, []model.Technique{model.SlideIn{Direction: string(ch)}}, 1 + len(digits)
	}

	if isDigit(ch) {
		digits := noteNumRe.FindString(row[col:])
		fret, _ := strconv.Atoi(digits)
		var techniques []model.Technique
		consumed := len(digits)

		// inline legato like "0h3" or "1p0": the destination fret is what
		// sounds at this rhythmic slot, the technique keeps both endpoints
		end := col + consumed
		if end < len(row) {
			nxt := row[end]
			if (nxt == 'h' || nxt == 'p') && end+1 < len(row) && isDigit(row[end+1]) {
				destDigits := noteNumRe.FindString(row[end+1:])
				from := fret
				to, _ := strconv.Atoi(destDigits)
				if nxt == 'h' {
					techniques = append(techniques, model.HammerOn{FromFret: &from, ToFret: &to})
				} else {
					techniques = append(techniques, model.PullOff{FromFret: &from, ToFret: &to})
				}
				fret = to
				consumed = end + 1 + len(destDigits) - col
			}
		}

		// a "~" immediately after the token span is vibrato on this note
		if col+consumed < len(row) && row[col+consumed] == '~' {
			techniques = append(techniques, model.Vibrato{})
		}

		return &noteToken{fret: &fret}, techniques, consumed
	}

	if ch == '(' {
		if m := ghostRe.FindStringSubmatch(row[col:]); m != nil {
			fret, _ := strconv.Atoi(m[1])
			return &noteToken{fret: &fret, ghost: true}, nil, len(m[0])
		}
	}

	if ch == 'x' || ch == 'X' {
		return &noteToken{}, []model.Technique{model.Muted{}}, 1
	}

	return nil, nil, 0
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

func copyRat(r *big.Rat) *big.Rat {
	return new(big.Rat).Set(r)
}

func isDurationSymbol(b byte) bool {
	return strings.IndexByte(durationSymbols, b) >= 0
}
