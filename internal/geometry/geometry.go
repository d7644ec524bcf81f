package geometry

import (
	"fmt"
	"strconv"
)

// Spec holds one geometry keyframe in the normalized coordinate space.
// Coordinates are resolution independent: they are expressed against the
// normalized dimensions NW x NH rather than any actual buffer size.
type Spec struct {
	NW, NH int // normalized (bounding) dimensions
	X, Y   float64
	W, H   float64
	Mix    float64 // overall blend weight, 0-100
}

// Resolved is the outcome of interpolation and fit planning for one output
// field. X, Y, W, H remain in normalized units; SW and SH carry the
// aspect-corrected size committed by the fit planner (they default to W, H).
type Resolved struct {
	NW, NH int
	X, Y   float64
	W, H   float64
	SW, SH float64
	Mix    float64
}

// scanFloat reads the longest numeric literal prefix of s. It returns the
// parsed value and the number of bytes consumed; malformed text consumes
// nothing and yields 0.
func scanFloat(s string) (float64, int) {
	i := 0
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		i++
	}
	digits := false
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
		digits = true
	}
	if i < len(s) && s[i] == '.' {
		i++
		for i < len(s) && s[i] >= '0' && s[i] <= '9' {
			i++
			digits = true
		}
	}
	if !digits {
		return 0, 0
	}
	// optional exponent
	if j := i; j < len(s) && (s[j] == 'e' || s[j] == 'E') {
		j++
		if j < len(s) && (s[j] == '+' || s[j] == '-') {
			j++
		}
		k := j
		for k < len(s) && s[k] >= '0' && s[k] <= '9' {
			k++
		}
		if k > j {
			i = k
		}
	}
	v, err := strconv.ParseFloat(s[:i], 64)
	if err != nil {
		return 0, 0
	}
	return v, i
}

// parseValue consumes one field from the remainder of a geometry string.
// A '%' suffix scales the literal against normalization. The field's
// delimiter (and any stray '%') is consumed along with the value. An
// exhausted string keeps def; malformed numeric text resolves to 0.
func parseValue(s *string, normalization float64, delim byte, def float64) float64 {
	if *s == "" {
		return def
	}
	str := *s
	value, n := scanFloat(str)
	if n < len(str) && str[n] == '%' {
		value = value / 100 * normalization
	}
	for n < len(str) && (str[n] == delim || str[n] == '%') {
		n++
	}
	*s = str[n:]
	return value
}

// Parse reads a geometry string with the syntax X[%],Y[%]:W[%]xH[%]:MIX[%].
// Values with a '%' suffix are taken relative to the normalized dimensions
// (or 100 for mix); bare values are already in normalized units. Trailing
// fields may be omitted and inherit from defaults. When defaults is nil the
// position defaults to 0, the size to the bounding dimensions and mix to
// 100. Parsing never fails: malformed fields resolve to 0.
func Parse(spec string, defaults *Spec, nw, nh int) Spec {
	g := Spec{NW: nw, NH: nh}
	if defaults != nil {
		g.X = defaults.X
		g.Y = defaults.Y
		g.W = defaults.W
		g.H = defaults.H
		g.Mix = defaults.Mix
	} else {
		g.W = float64(nw)
		g.H = float64(nh)
		g.Mix = 100
	}

	if spec == "" {
		return g
	}

	s := spec
	g.X = parseValue(&s, float64(nw), ',', g.X)
	g.Y = parseValue(&s, float64(nh), ':', g.Y)
	g.W = parseValue(&s, float64(nw), 'x', g.W)
	g.H = parseValue(&s, float64(nh), ':', g.H)
	g.Mix = parseValue(&s, 100, ' ', g.Mix)
	return g
}

// String renders the spec in the same syntax Parse accepts, with all values
// in normalized units.
func (g Spec) String() string {
	return fmt.Sprintf("%g,%g:%gx%g:%g", g.X, g.Y, g.W, g.H, g.Mix)
}

// Alignment values for each axis.
const (
	AlignStart  = 0 // left / top
	AlignCenter = 1
	AlignEnd    = 2 // right / bottom
)

// ParseAlign maps an alignment token to one of the Align constants.
// An empty token means start; a token with a leading digit is parsed as a
// literal integer; 'c' and 'm' mean center; 'r' and 'b' mean end. Anything
// else falls back to start.
func ParseAlign(token string) int {
	if token == "" {
		return 0
	}
	c := token[0]
	switch {
	case c >= '0' && c <= '9':
		n := 1
		for n < len(token) && token[n] >= '0' && token[n] <= '9' {
			n++
		}
		v, err := strconv.Atoi(token[:n])
		if err != nil {
			return 0
		}
		return v
	case c == 'c' || c == 'm':
		return 1
	case c == 'r' || c == 'b':
		return 2
	}
	return 0
}

// lerp performs linear interpolation between a and b
func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// Interpolate blends two geometry keyframes at progress t. The position
// receives a +0.5 bias so the later truncating conversion to pixel
// coordinates rounds half up; size and mix carry no bias. SW and SH start
// out equal to the interpolated size until the fit planner commits a scaled
// size.
func Interpolate(start, end Spec, t float64) Resolved {
	w := lerp(start.W, end.W, t)
	h := lerp(start.H, end.H, t)
	return Resolved{
		NW:  start.NW,
		NH:  start.NH,
		X:   lerp(start.X, end.X, t) + 0.5,
		Y:   lerp(start.Y, end.Y, t) + 0.5,
		W:   w,
		H:   h,
		SW:  w,
		SH:  h,
		Mix: lerp(start.Mix, end.Mix, t),
	}
}
