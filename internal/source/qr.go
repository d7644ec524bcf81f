package source

import (
	"image/color"

	qrcode "github.com/skip2/go-qrcode"

	"github.com/osokin/composite/internal/transition"
	"github.com/osokin/composite/internal/yuv"
)

// QRSource generates a QR code watermark. The overlay is luma only with
// neutral chroma; the alpha mask covers the dark modules so only the code
// itself lands on the background.
type QRSource struct {
	code  *qrcode.QRCode
	size  int
	alpha []byte
}

// NewQRSource encodes content at the given native size in pixels.
func NewQRSource(content string, size int) (*QRSource, error) {
	code, err := qrcode.New(content, qrcode.Medium)
	if err != nil {
		return nil, err
	}
	if size <= 0 {
		size = 256
	}
	return &QRSource{code: code, size: size}, nil
}

func (s *QRSource) Image(requestedW, requestedH int) (*yuv.Frame, error) {
	w, h := requestedW, requestedH
	if w <= 0 || h <= 0 {
		w, h = s.size, s.size
	}

	img := resample(s.code.Image(s.size), w, h)
	b := img.Bounds()
	frame := yuv.NewFrame(w, h)
	alpha := make([]byte, w*h)

	for y := 0; y < h; y++ {
		row := frame.Row(y)
		for x := 0; x < w; x++ {
			g := color.GrayModel.Convert(img.At(b.Min.X+x, b.Min.Y+y)).(color.Gray)
			row[x*2] = 16
			row[x*2+1] = 128
			if g.Y < 128 {
				// dark module
				alpha[y*w+x] = 255
			}
		}
	}

	s.alpha = alpha
	return frame, nil
}

func (s *QRSource) AlphaMask() []byte {
	return s.alpha
}

func (s *QRSource) RealSize() (int, int) {
	return s.size, s.size
}

func (s *QRSource) AspectRatio() float64 {
	return 1
}

func (s *QRSource) Progressive() bool {
	return true
}

// View returns an independent view sharing the encoded code.
func (s *QRSource) View() transition.Source {
	c := *s
	c.alpha = nil
	return &c
}
