// Package fit sizes an overlay inside its animated bounding box while
// preserving the overlay's picture shape on the output display.
package fit

import (
	"github.com/osokin/composite/internal/geometry"
)

// Source describes the overlay's native sampling characteristics.
type Source struct {
	RealWidth   int
	RealHeight  int
	AspectRatio float64 // sample aspect ratio of the overlay pixels
}

// Plan computes the scaled footprint of the overlay inside the bounding box
// carried by g and commits it to g.SW/g.SH. The overlay's pixel aspect is
// normalized against the output display aspect, then the result is
// uniformly clamped to the box. The scaled size is committed only when it
// fits the box; when integer truncation leaves it marginally over (which
// happens with extrapolated or degenerate boxes) the box dimensions stand
// unscaled. When distort is set the box dimensions are used as-is.
func Plan(g *geometry.Resolved, src Source, outputAR float64, distort bool) {
	g.SW = g.W
	g.SH = g.H
	if distort {
		return
	}

	boundW := int(g.W)
	boundH := int(g.H)
	sw := src.RealWidth
	sh := src.RealHeight

	// Sample aspect of the output: skinny pixels stretch the input
	// vertically, fat pixels stretch it horizontally. Maximizes usage of
	// the bounding rectangle by always requesting the larger image.
	outputSAR := float64(g.NW) / float64(g.NH) / outputAR
	if outputSAR < 1 {
		// derived from: inputSAR / outputSAR * realHeight
		sh = int(float64(src.RealWidth) / src.AspectRatio / outputSAR)
	} else {
		// derived from: outputSAR / inputSAR * realWidth
		sw = int(outputSAR * float64(src.RealHeight) * src.AspectRatio)
	}

	// Clamp to the bounding box, preserving the ratio. An empty source
	// has no ratio to preserve and would divide by zero against an
	// extrapolated negative box; it falls through to the commit guard.
	if sw > boundW && sw > 0 {
		sh = sh * boundW / sw
		sw = boundW
	}
	if sh > boundH && sh > 0 {
		sw = sw * boundH / sh
		sh = boundH
	}

	if float64(sw) <= g.W && float64(sh) <= g.H {
		g.SW = float64(sw)
		g.SH = float64(sh)
	}
}

// Align shifts the position inside the bounding box according to the
// committed scaled size, with the same half-up rounding bias used for
// coordinate interpolation.
func Align(g *geometry.Resolved, halign, valign int) {
	g.X += (g.W-g.SW)*float64(halign)/2 + 0.5
	g.Y += (g.H-g.SH)*float64(valign)/2 + 0.5
}

// RequestSize converts the committed scaled size from normalized units to
// destination pixels, for requesting the overlay image pre-rendered at its
// final size.
func RequestSize(g geometry.Resolved, dstW, dstH int) (int, int) {
	return int(g.SW) * dstW / g.NW, int(g.SH) * dstH / g.NH
}
