package fit

import (
	"testing"

	"github.com/osokin/composite/internal/geometry"
)

func TestPlanSkinnyPixels(t *testing.T) {
	// PAL-shaped output: sample aspect below 1, the input stretches
	// vertically to fill the bounding rectangle.
	g := geometry.Resolved{NW: 720, NH: 576, W: 720, H: 576, SW: 720, SH: 576}
	src := Source{RealWidth: 720, RealHeight: 480, AspectRatio: 4.0 / 3.0}

	Plan(&g, src, 4.0/3.0, false)

	if g.SW != 720 || g.SH != 576 {
		t.Errorf("expected 720x576, got %gx%g", g.SW, g.SH)
	}
}

func TestPlanFatPixels(t *testing.T) {
	// NTSC-shaped output: sample aspect above 1, the input stretches
	// horizontally and is then clamped back to the box.
	g := geometry.Resolved{NW: 720, NH: 480, W: 720, H: 480, SW: 720, SH: 480}
	src := Source{RealWidth: 720, RealHeight: 576, AspectRatio: 4.0 / 3.0}

	Plan(&g, src, 4.0/3.0, false)

	if g.SW != 720 || g.SH != 480 {
		t.Errorf("expected 720x480, got %gx%g", g.SW, g.SH)
	}
}

func TestPlanDistortSkips(t *testing.T) {
	g := geometry.Resolved{NW: 100, NH: 100, W: 30, H: 70, SW: 0, SH: 0}
	src := Source{RealWidth: 640, RealHeight: 480, AspectRatio: 1}

	Plan(&g, src, 1, true)

	if g.SW != g.W || g.SH != g.H {
		t.Errorf("distort should keep the box size, got %gx%g", g.SW, g.SH)
	}
}

func TestPlanNeverExceedsBox(t *testing.T) {
	boxes := []struct{ w, h float64 }{
		{100, 100}, {50, 80}, {33, 7}, {640, 360}, {1, 1},
	}
	sources := []Source{
		{RealWidth: 640, RealHeight: 480, AspectRatio: 1},
		{RealWidth: 1920, RealHeight: 1080, AspectRatio: 16.0 / 9.0},
		{RealWidth: 320, RealHeight: 200, AspectRatio: 0.9},
	}

	for _, box := range boxes {
		for _, src := range sources {
			g := geometry.Resolved{NW: 720, NH: 576, W: box.w, H: box.h, SW: box.w, SH: box.h}
			Plan(&g, src, 4.0/3.0, false)

			if g.SW > g.W || g.SH > g.H {
				t.Errorf("box %gx%g src %dx%d: committed %gx%g exceeds box",
					box.w, box.h, src.RealWidth, src.RealHeight, g.SW, g.SH)
			}
		}
	}
}

// TestPlanCommitGuard documents the silent fallback: when integer
// truncation leaves the clamped size marginally over the box, as with this
// extrapolated negative box, scaling is skipped and the box dimensions
// stand unchanged.
func TestPlanCommitGuard(t *testing.T) {
	g := geometry.Resolved{NW: 100, NH: 100, W: -5.5, H: 50, SW: 0, SH: 0}
	src := Source{RealWidth: 100, RealHeight: 100, AspectRatio: 1}

	Plan(&g, src, 1, false)

	if g.SW != g.W || g.SH != g.H {
		t.Errorf("guard should fall back to the box size, got %gx%g", g.SW, g.SH)
	}
}

// TestPlanEmptySourceExtrapolatedBox pairs a source reporting no real size
// with a box extrapolated negative by an unclamped progress. The ratio
// clamp has no ratio to work with and must fall back to the box size
// instead of dividing by zero.
func TestPlanEmptySourceExtrapolatedBox(t *testing.T) {
	g := geometry.Resolved{NW: 100, NH: 100, W: -5.5, H: 50, SW: 0, SH: 0}
	src := Source{RealWidth: 0, RealHeight: 0, AspectRatio: 1}

	Plan(&g, src, 1, false)

	if g.SW != g.W || g.SH != g.H {
		t.Errorf("empty source should fall back to the box size, got %gx%g", g.SW, g.SH)
	}
}

func TestAlign(t *testing.T) {
	g := geometry.Resolved{NW: 100, NH: 100, X: 10, Y: 10, W: 100, H: 50, SW: 60, SH: 30}

	Align(&g, geometry.AlignCenter, geometry.AlignEnd)

	if g.X != 30.5 {
		t.Errorf("x: expected 30.5, got %g", g.X)
	}
	if g.Y != 30.5 {
		t.Errorf("y: expected 30.5, got %g", g.Y)
	}
}

func TestAlignStartKeepsPosition(t *testing.T) {
	g := geometry.Resolved{NW: 100, NH: 100, X: 10, Y: 20, W: 100, H: 50, SW: 60, SH: 30}

	Align(&g, geometry.AlignStart, geometry.AlignStart)

	// Only the rounding bias is applied.
	if g.X != 10.5 || g.Y != 20.5 {
		t.Errorf("expected 10.5,20.5, got %g,%g", g.X, g.Y)
	}
}

func TestRequestSize(t *testing.T) {
	g := geometry.Resolved{NW: 100, NH: 100, SW: 50, SH: 25}

	w, h := RequestSize(g, 200, 100)
	if w != 100 || h != 25 {
		t.Errorf("expected 100x25, got %dx%d", w, h)
	}
}
