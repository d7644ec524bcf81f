package yuv

import (
	"github.com/osokin/composite/internal/geometry"
)

// Field selectors for Composite.
const (
	Progressive = -1 // blend every row
	LowerField  = 0  // rows of even parity
	UpperField  = 1  // rows of odd parity
)

// Composite blends src over dst in place, weighted by the geometry's mix
// and the optional per-pixel alpha mask. alpha, when non-nil, carries one
// byte per src pixel at src's full resolution. The geometry's position is
// interpreted in normalized space and converted to dst pixels here; the
// overlay is clipped against all four dst edges. field selects which rows
// are written for interlaced output.
//
// The return value reports whether any blending was attempted: degenerate
// sources and placements entirely off-screen are normal no-ops, never
// errors.
func Composite(dst, src *Frame, alpha []byte, g geometry.Resolved, field int) bool {
	weight := g.Mix / 100
	xSrc, ySrc := 0, 0
	wSrc, hSrc := src.W, src.H

	// Adjust to consumer scale. Truncation after the +0.5 bias rounds
	// half up; x is forced even to keep chroma pairs aligned.
	x := int(g.X*float64(dst.W)/float64(g.NW) + 0.5)
	y := int(g.Y*float64(dst.H)/float64(g.NH) + 0.5)
	x -= x % 2

	if wSrc <= 0 || hSrc <= 0 {
		return false
	}
	if (x < 0 && -x >= wSrc) || (y < 0 && -y >= hSrc) {
		return false
	}

	// Crop the overlay off the left edge of the frame, or beyond the
	// right edge.
	if x < 0 {
		xSrc = -x
		wSrc -= xSrc
		x = 0
	} else if x+wSrc > dst.W {
		wSrc = dst.W - x
	}

	// Same for top and bottom.
	if y < 0 {
		ySrc = -y
		hSrc -= ySrc
	} else if y+hSrc > dst.H {
		hSrc = dst.H - y
	}

	yDst := y
	if yDst < 0 {
		yDst = 0
	}

	// Assuming lower field first: field 0 writes rows of even parity,
	// field 1 rows of odd parity. When the start row lands on the wrong
	// field, shift one row towards the interior of the frame.
	if field > Progressive && yDst%2 != field {
		if yDst == 0 {
			yDst++
		} else {
			yDst--
		}
	}

	// On the second field the first usable src row belongs to the other
	// field; skip it.
	if field == UpperField {
		ySrc++
		hSrc--
	}

	step := 1
	if field > Progressive {
		step = 2
	}

	for i := 0; i < hSrc; i += step {
		sy := ySrc + i
		dy := yDst + i
		if sy >= src.H || dy >= dst.H {
			break
		}

		srow := src.Row(sy)
		drow := dst.Row(dy)

		si := xSrc * 2
		di := x * 2
		ai := sy*src.W + xSrc
		for j := 0; j < wSrc; j++ {
			a := float64(255)
			if alpha != nil {
				a = float64(alpha[ai+j])
			}
			v := weight * a / 255

			// Truncating narrow on purpose: the blend carries no
			// rounding bias, unlike the coordinate math above.
			drow[di] = uint8(float64(srow[si])*v + float64(drow[di])*(1-v))
			drow[di+1] = uint8(float64(srow[si+1])*v + float64(drow[di+1])*(1-v))
			si += 2
			di += 2
		}
	}

	return true
}
