package captions

// Cue is a caption line with its display time span in seconds.
type Cue struct {
	Text  string
	Start float64
	End   float64
}

// WordTiming is a single spoken word's time span, produced by the
// speech-recognition tier and used for highlight animation.
type WordTiming struct {
	Word  string
	Start float64
	End   float64
}
