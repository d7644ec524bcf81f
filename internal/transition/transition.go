// Package transition sequences one composite per output frame: it
// interpolates the configured geometry, plans the overlay's fit, fetches
// the overlay pre-rendered at its final size and blends it onto the
// background, once per field for interlaced output.
package transition

import (
	"fmt"

	"github.com/osokin/composite/internal/config"
	"github.com/osokin/composite/internal/fit"
	"github.com/osokin/composite/internal/geometry"
	"github.com/osokin/composite/internal/yuv"
)

// Source supplies frames to the transition. Image may resample or decode;
// a zero requested size asks for the source's native size. AlphaMask
// returns the mask matching the most recently returned image, or nil when
// the source is fully opaque.
type Source interface {
	Image(requestedW, requestedH int) (*yuv.Frame, error)
	AlphaMask() []byte
	RealSize() (w, h int)
	AspectRatio() float64
	Progressive() bool
}

// Transition holds the parsed, immutable configuration of one composite.
type Transition struct {
	start       geometry.Spec
	end         geometry.Spec
	halign      int
	valign      int
	distort     bool
	progressive bool
	window      geometry.Window
	outputAR    float64
}

// New parses the configuration once. nw and nh are the normalized
// dimensions the geometry strings are expressed against; outputAR is the
// display aspect ratio of the output. Geometry parsing never fails, so
// neither does construction.
func New(cfg config.Transition, nw, nh int, outputAR float64) *Transition {
	startSpec := cfg.Start
	if startSpec == "" {
		startSpec = config.DefaultStart
	}
	start := geometry.Parse(startSpec, nil, nw, nh)
	end := geometry.Parse(cfg.End, &start, nw, nh)
	return &Transition{
		start:       start,
		end:         end,
		halign:      geometry.ParseAlign(cfg.HAlign),
		valign:      geometry.ParseAlign(cfg.VAlign),
		distort:     cfg.Distort,
		progressive: cfg.Progressive,
		window:      cfg.Window,
		outputAR:    outputAR,
	}
}

// Window exposes the transition's frame window.
func (t *Transition) Window() geometry.Window {
	return t.window
}

// Process composites the overlay onto the background for the output frame
// at pos. The background buffer is fetched from bg, mutated in place and
// returned; a nil overlay source, a degenerate placement or an overlay
// fetch failure all pass the background through unmodified. The caller
// must hold exclusive write access to the background for the duration of
// the call.
func (t *Transition) Process(bg, overlay Source, pos int) (*yuv.Frame, error) {
	frame, err := bg.Image(0, 0)
	if err != nil {
		return nil, fmt.Errorf("background fetch: %w", err)
	}
	if overlay == nil {
		return frame, nil
	}

	progress := t.window.Progress(pos)
	delta := t.window.FieldDelta(pos)

	// Plan the fit once per frame, at the frame's own progress. The
	// committed scaled size is reused for both fields; only position and
	// mix are resampled per field.
	plan := geometry.Interpolate(t.start, t.end, progress)
	realW, realH := overlay.RealSize()
	fit.Plan(&plan, fit.Source{
		RealWidth:   realW,
		RealHeight:  realH,
		AspectRatio: overlay.AspectRatio(),
	}, t.outputAR, t.distort)
	sw, sh := plan.SW, plan.SH

	reqW, reqH := fit.RequestSize(plan, frame.W, frame.H)
	if skip := degenerate(plan, t.halign, t.valign, frame, reqW, reqH); skip {
		return frame, nil
	}

	src, err := overlay.Image(reqW, reqH)
	if err != nil {
		// Skip compositing for this frame; the background stands.
		return frame, nil
	}
	alpha := overlay.AlphaMask()

	// One field for progressive content, signalled either by the
	// background frame or by the transition's own override.
	fields := 2
	if t.progressive || bg.Progressive() {
		fields = 1
	}

	for field := 0; field < fields; field++ {
		fieldPos := progress + float64(field)*delta
		g := geometry.Interpolate(t.start, t.end, fieldPos)
		g.SW, g.SH = sw, sh
		fit.Align(&g, t.halign, t.valign)

		f := field
		if fields == 1 {
			f = yuv.Progressive
		}
		yuv.Composite(frame, src, alpha, g, f)
	}

	return frame, nil
}

// degenerate reports whether the planned placement cannot touch the
// destination at all, so the overlay fetch can be skipped.
func degenerate(plan geometry.Resolved, halign, valign int, dst *yuv.Frame, reqW, reqH int) bool {
	if reqW <= 0 || reqH <= 0 {
		return true
	}
	a := plan
	fit.Align(&a, halign, valign)
	x := int(a.X*float64(dst.W)/float64(a.NW) + 0.5)
	y := int(a.Y*float64(dst.H)/float64(a.NH) + 0.5)
	x -= x % 2
	return (x < 0 && -x >= reqW) || (y < 0 && -y >= reqH)
}
