package export

import (
	"math/big"
	"sort"

	"github.com/asciitab/tabulator/model"
)

const defaultVelocity = 90

// ToMidiEvents flattens a score into tempo-scaled note on/off markers with
// absolute times in seconds. Event times stay rational until this boundary.
// Rests are skipped, as are notes without a resolved pitch. The result is
// ordered by (time, on before off, pitch); reimplementations of consumers
// rely on exactly this ordering.
func ToMidiEvents(score *model.Score, tempoBPM float64) []model.MidiEvent {
	secPerBeat := 60.0 / tempoBPM
	var events []model.MidiEvent
	absBeats := new(big.Rat)

	appendNote := func(ne *model.NoteEvent) {
		if ne.Pitch == nil {
			return
		}
		on := new(big.Rat).Add(absBeats, ne.Start)
		off := new(big.Rat).Add(on, ne.Duration)
		tOn, _ := on.Float64()
		tOff, _ := off.Float64()
		events = append(events,
			model.MidiEvent{TimeSec: tOn * secPerBeat, Type: model.MidiNoteOn, Pitch: *ne.Pitch, Velocity: defaultVelocity},
			model.MidiEvent{TimeSec: tOff * secPerBeat, Type: model.MidiNoteOff, Pitch: *ne.Pitch, Velocity: defaultVelocity},
		)
	}

	for _, section := range score.Sections {
		for _, system := range section.Systems {
			for _, measure := range system.Measures {
				for _, ev := range measure.Events {
					switch e := ev.(type) {
					case *model.NoteEvent:
						appendNote(e)
					case *model.ChordEvent:
						for _, ne := range e.Notes {
							appendNote(ne)
						}
					}
				}

				// advance the absolute cursor by the measure's summed
				// duration; zero-length measures do not advance it
				total := new(big.Rat)
				for _, ev := range measure.Events {
					total.Add(total, ev.EventDuration())
				}
				if total.Sign() > 0 {
					absBeats.Add(absBeats, total)
				}
			}
		}
	}

	sort.SliceStable(events, func(i, j int) bool {
		if events[i].TimeSec != events[j].TimeSec {
			return events[i].TimeSec < events[j].TimeSec
		}
		if events[i].Type != events[j].Type {
			return events[i].Type == model.MidiNoteOn
		}
		return events[i].Pitch < events[j].Pitch
	})
	return events
}
