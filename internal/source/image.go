package source

import (
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"

	"github.com/osokin/composite/internal/transition"
	"github.com/osokin/composite/internal/yuv"
)

// ImageSource supplies a decoded still image, resampled on demand to the
// requested size. The alpha mask returned by AlphaMask matches the most
// recent Image call.
type ImageSource struct {
	img        image.Image
	alpha      []byte
	W, H       int // size served for native-size requests; 0 means the decoded size
	SAR        float64
	Interlaced bool
}

func NewImageSource(path string) (*ImageSource, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, err
	}
	return &ImageSource{img: img}, nil
}

// NewImageSourceFrom wraps an already decoded image.
func NewImageSourceFrom(img image.Image) *ImageSource {
	return &ImageSource{img: img}
}

func (s *ImageSource) Image(requestedW, requestedH int) (*yuv.Frame, error) {
	w, h := requestedW, requestedH
	if w <= 0 || h <= 0 {
		if s.W > 0 && s.H > 0 {
			w, h = s.W, s.H
		} else {
			b := s.img.Bounds()
			w, h = b.Dx(), b.Dy()
		}
	}
	frame, alpha := toFrame(resample(s.img, w, h))
	s.alpha = alpha
	return frame, nil
}

func (s *ImageSource) AlphaMask() []byte {
	return s.alpha
}

func (s *ImageSource) RealSize() (int, int) {
	b := s.img.Bounds()
	return b.Dx(), b.Dy()
}

func (s *ImageSource) AspectRatio() float64 {
	if s.SAR == 0 {
		return 1
	}
	return s.SAR
}

func (s *ImageSource) Progressive() bool {
	return !s.Interlaced
}

// View returns an independent view sharing the decoded image, so each
// concurrent worker gets its own alpha mask state.
func (s *ImageSource) View() transition.Source {
	c := *s
	c.alpha = nil
	return &c
}
