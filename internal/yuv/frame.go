// Package yuv holds the packed 4:2:2 frame representation and the
// field-aware alpha blend that composites one frame over another.
package yuv

// Frame is a packed 4:2:2 image: two bytes per horizontal sample, a luma
// byte followed by one alternating chroma byte (Y0 U Y1 V). The layout is
// byte-compatible with yuyv422 rawvideo.
type Frame struct {
	W, H int
	Pix  []byte // len == W*H*2
}

// NewFrame allocates a zeroed frame. Zero bytes are not a valid black in
// this layout; use Fill for a defined background.
func NewFrame(w, h int) *Frame {
	return &Frame{W: w, H: h, Pix: make([]byte, w*h*2)}
}

// Stride is the byte length of one row.
func (f *Frame) Stride() int {
	return f.W * 2
}

// Row returns the packed bytes of row y. The slice aliases the frame's
// pixel data; writes through it mutate the frame.
func (f *Frame) Row(y int) []byte {
	s := f.Stride()
	return f.Pix[y*s : (y+1)*s]
}

// Fill sets every sample to the given luma and chroma values. Chroma 128 is
// neutral (gray).
func (f *Frame) Fill(luma, chroma byte) {
	for i := 0; i < len(f.Pix); i += 2 {
		f.Pix[i] = luma
		f.Pix[i+1] = chroma
	}
}

// Clone returns an independent copy of the frame.
func (f *Frame) Clone() *Frame {
	c := &Frame{W: f.W, H: f.H, Pix: make([]byte, len(f.Pix))}
	copy(c.Pix, f.Pix)
	return c
}
