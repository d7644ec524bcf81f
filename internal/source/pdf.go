package source

import (
	"github.com/gen2brain/go-fitz"

	"github.com/osokin/composite/internal/transition"
	"github.com/osokin/composite/internal/yuv"
)

// PDFSource renders one page of a PDF document as overlay artwork.
type PDFSource struct {
	path       string
	page       int
	dpi        int
	realW      int
	realH      int
	alpha      []byte
	SAR        float64
	Interlaced bool
}

// NewPDFSource opens the document once to read the page bounds; rendering
// happens per Image call with a fresh document handle, which keeps the
// source safe for use from a single worker at a time without holding
// native resources open.
func NewPDFSource(path string, page, dpi int) (*PDFSource, error) {
	doc, err := fitz.New(path)
	if err != nil {
		return nil, err
	}
	defer doc.Close()

	bound, err := doc.Bound(page)
	if err != nil {
		return nil, err
	}

	if dpi <= 0 {
		dpi = 72
	}
	return &PDFSource{
		path:  path,
		page:  page,
		dpi:   dpi,
		realW: bound.Dx() * dpi / 72,
		realH: bound.Dy() * dpi / 72,
	}, nil
}

func (s *PDFSource) Image(requestedW, requestedH int) (*yuv.Frame, error) {
	doc, err := fitz.New(s.path)
	if err != nil {
		return nil, err
	}
	defer doc.Close()

	img, err := doc.ImageDPI(s.page, float64(s.dpi))
	if err != nil {
		return nil, err
	}

	w, h := requestedW, requestedH
	if w <= 0 || h <= 0 {
		w, h = s.realW, s.realH
	}
	frame, alpha := toFrame(resample(img, w, h))
	s.alpha = alpha
	return frame, nil
}

func (s *PDFSource) AlphaMask() []byte {
	return s.alpha
}

func (s *PDFSource) RealSize() (int, int) {
	return s.realW, s.realH
}

func (s *PDFSource) AspectRatio() float64 {
	if s.SAR == 0 {
		return 1
	}
	return s.SAR
}

func (s *PDFSource) Progressive() bool {
	return !s.Interlaced
}

// View returns an independent view for one concurrent worker.
func (s *PDFSource) View() transition.Source {
	c := *s
	c.alpha = nil
	return &c
}
