// Package source implements frame suppliers for the transition: flat
// colors, decoded still images, PDF pages and generated QR watermarks. All
// of them hand out packed 4:2:2 frames; resampling happens here, not in
// the compositor.
package source

import (
	"github.com/osokin/composite/internal/system"
	"github.com/osokin/composite/internal/yuv"
)

// Solid supplies frames filled with a single luma/chroma value. Used for
// backgrounds and in tests.
type Solid struct {
	W, H       int
	Luma       byte
	Chroma     byte
	SAR        float64 // sample aspect ratio, 0 means square pixels
	Interlaced bool
}

func (s *Solid) Image(requestedW, requestedH int) (*yuv.Frame, error) {
	w, h := requestedW, requestedH
	if w <= 0 || h <= 0 {
		w, h = s.W, s.H
	}
	f := system.GetFrame(w, h)
	f.Fill(s.Luma, s.Chroma)
	return f, nil
}

func (s *Solid) AlphaMask() []byte {
	return nil
}

func (s *Solid) RealSize() (int, int) {
	return s.W, s.H
}

func (s *Solid) AspectRatio() float64 {
	if s.SAR == 0 {
		return 1
	}
	return s.SAR
}

func (s *Solid) Progressive() bool {
	return !s.Interlaced
}
