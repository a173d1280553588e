package export

import (
	"io"
	"math"
	"os"

	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"

	"github.com/asciitab/tabulator/model"
)

const ticksPerQuarter = 960

// ToSMF renders the flattened timeline as a single-track standard MIDI file
// with one tempo event at tick zero.
func ToSMF(score *model.Score, tempoBPM float64) *smf.SMF {
	events := ToMidiEvents(score, tempoBPM)

	var track smf.Track
	track = append(track, smf.Event{Delta: 0, Message: smf.MetaTempo(tempoBPM)})

	secPerTick := 60.0 / tempoBPM / ticksPerQuarter
	var lastTick uint32
	for _, ev := range events {
		tick := uint32(math.Round(ev.TimeSec / secPerTick))
		delta := tick - lastTick
		lastTick = tick

		var msg midi.Message
		if ev.Type == model.MidiNoteOn {
			msg = midi.NoteOn(uint8(ev.Channel), uint8(ev.Pitch), uint8(ev.Velocity))
		} else {
			msg = midi.NoteOff(uint8(ev.Channel), uint8(ev.Pitch))
		}
		track = append(track, smf.Event{Delta: delta, Message: smf.Message(msg)})
	}
	track.Close(0)

	var out smf.SMF
	out.TimeFormat = smf.MetricTicks(ticksPerQuarter)
	out.Tracks = append(out.Tracks, track)
	return &out
}

func WriteSMF(w io.Writer, score *model.Score, tempoBPM float64) error {
	_, err := ToSMF(score, tempoBPM).WriteTo(w)
	return err
}

func WriteSMFFile(path string, score *model.Score, tempoBPM float64) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return WriteSMF(f, score, tempoBPM)
}
