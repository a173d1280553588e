package model

const (
	MidiNoteOn  = "note_on"
	MidiNoteOff = "note_off"
)

// MidiEvent is a tempo-resolved on/off marker with absolute time in seconds.
type MidiEvent struct {
	TimeSec  float64
	Type     string // MidiNoteOn | MidiNoteOff
	Pitch    int
	Velocity int
	Channel  int
}
