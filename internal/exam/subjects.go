package exam

// Exam types.
const (
	TYT = "tyt"
	AYT = "ayt"
)

// Subject is one scored section of an exam. Questions is the fixed question
// count, which also caps correct+incorrect at entry.
type Subject struct {
	Key       string
	Name      string
	Questions int
}

// TYTSubjects are the four TYT sections with their official question counts.
var TYTSubjects = []Subject{
	{Key: "turkce", Name: "Türkçe", Questions: 40},
	{Key: "sosyal", Name: "Sosyal Bilimler", Questions: 20},
	{Key: "matematik", Name: "Matematik", Questions: 40},
	{Key: "fen", Name: "Fen Bilimleri", Questions: 20},
}

// aytQuestions is the per-subject question count shared by all AYT sections.
const aytQuestions = 40

// Track is the AYT field category deciding which two subjects count.
type Track string

const (
	TrackQuant  Track = "quant"
	TrackEqual  Track = "equal"
	TrackVerbal Track = "verbal"
)

// Tracks lists the selectable AYT tracks.
var Tracks = []Track{TrackQuant, TrackEqual, TrackVerbal}

// Subjects returns the two AYT subjects scored for the track.
func (t Track) Subjects() []Subject {
	switch t {
	case TrackQuant:
		return []Subject{
			{Key: "matematik", Name: "Matematik", Questions: aytQuestions},
			{Key: "fen", Name: "Fen Bilimleri", Questions: aytQuestions},
		}
	case TrackEqual:
		return []Subject{
			{Key: "turkce-sosyal-1", Name: "Türkçe-Sosyal 1", Questions: aytQuestions},
			{Key: "matematik", Name: "Matematik", Questions: aytQuestions},
		}
	case TrackVerbal:
		return []Subject{
			{Key: "turkce-sosyal-1", Name: "Türkçe-Sosyal 1", Questions: aytQuestions},
			{Key: "sosyal-2", Name: "Sosyal Bilimler 2", Questions: aytQuestions},
		}
	}
	return nil
}

// Valid reports whether t is a known track.
func (t Track) Valid() bool {
	switch t {
	case TrackQuant, TrackEqual, TrackVerbal:
		return true
	}
	return false
}
