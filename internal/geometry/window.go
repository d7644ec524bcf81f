package geometry

// Window bounds the active duration of a transition in frame indices.
// Both ends are inclusive.
type Window struct {
	In  int `yaml:"in"`
	Out int `yaml:"out"`
}

// Progress returns the normalized position of pos inside the window.
// The result is deliberately unclamped: frames before In or after Out
// extrapolate the animation.
func (w Window) Progress(pos int) float64 {
	return float64(pos-w.In) / float64(w.Out-w.In+1)
}

// FieldDelta is half the progress travelled between pos and pos+1. The
// second field of an interlaced frame samples the animation at
// progress+delta, approximating intra-frame motion.
func (w Window) FieldDelta(pos int) float64 {
	return (w.Progress(pos+1) - w.Progress(pos)) / 2
}
