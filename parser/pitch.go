package parser

import (
	"strings"

	"github.com/asciitab/tabulator/model"
)

var noteSemitones = map[string]int{
	"C": 0, "C#": 1, "DB": 1,
	"D": 2, "D#": 3, "EB": 3,
	"E": 4,
	"F": 5, "F#": 6, "GB": 6,
	"G": 7, "G#": 8, "AB": 8,
	"A": 9, "A#": 10, "BB": 10,
	"B": 11,
}

// tuningToOpenMidi maps string labels to open-string MIDI pitches. Octaves
// are positional: a 6-string grid gets the conventional E4 B3 G3 D3 A2 E2
// skeleton; any other string count sits in octave 4. Alternate tunings change
// pitch class per string but keep the positional octaves.
func tuningToOpenMidi(labels []string) []int {
	octaves := make([]int, len(labels))
	if len(labels) == 6 {
		copy(octaves, []int{4, 3, 3, 3, 2, 2})
	} else {
		for i := range octaves {
			octaves[i] = 4
		}
	}

	out := make([]int, 0, len(labels))
	for i, lab := range labels {
		name := strings.ToUpper(strings.TrimSpace(lab))
		key := "E"
		if len(name) >= 2 && (name[1] == '#' || name[1] == 'B') {
			key = name[:2]
		} else if len(name) >= 1 {
			key = name[:1]
		}
		semitone, ok := noteSemitones[key]
		if !ok {
			semitone = noteSemitones["E"]
		}
		out = append(out, 12*(octaves[i]+1)+semitone)
	}
	return out
}

// assignPitches resolves each note's pitch as open pitch plus fret. Notes
// without a fret stay pitchless, as do notes whose string index falls outside
// the tuning.
func assignPitches(measure *model.Measure, tuning model.Tuning) {
	open := tuningToOpenMidi(tuning.Labels)
	for _, ev := range measure.Events {
		switch e := ev.(type) {
		case *model.NoteEvent:
			assignNotePitch(e, open)
		case *model.ChordEvent:
			for _, ne := range e.Notes {
				assignNotePitch(ne, open)
			}
		}
	}
}

func assignNotePitch(ne *model.NoteEvent, open []int) {
	if ne.Fret == nil {
		ne.Pitch = nil
		return
	}
	if ne.StringIndex >= 0 && ne.StringIndex < len(open) {
		p := open[ne.StringIndex] + *ne.Fret
		ne.Pitch = &p
	}
}
