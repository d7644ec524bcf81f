package source

import (
	"image"
	"image/color"

	xdraw "golang.org/x/image/draw"

	"github.com/osokin/composite/internal/yuv"
)

// resample scales img to w x h. The source image is returned untouched when
// it already has the requested size.
func resample(img image.Image, w, h int) image.Image {
	b := img.Bounds()
	if b.Dx() == w && b.Dy() == h {
		return img
	}
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), img, b, xdraw.Src, nil)
	return dst
}

// toFrame converts an image to the packed 4:2:2 layout, along with an alpha
// mask of one byte per pixel. The mask is nil when the image is fully
// opaque. Chroma is taken per sample: U from even columns, V from odd ones,
// forming the Y0 U Y1 V byte pattern.
func toFrame(img image.Image) (*yuv.Frame, []byte) {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	f := yuv.NewFrame(w, h)
	mask := make([]byte, w*h)
	opaque := true

	for y := 0; y < h; y++ {
		row := f.Row(y)
		for x := 0; x < w; x++ {
			r, g, bl, a := img.At(b.Min.X+x, b.Min.Y+y).RGBA()
			yy, cb, cr := color.RGBToYCbCr(uint8(r>>8), uint8(g>>8), uint8(bl>>8))
			row[x*2] = yy
			if x%2 == 0 {
				row[x*2+1] = cb
			} else {
				row[x*2+1] = cr
			}
			mask[y*w+x] = byte(a >> 8)
			if a>>8 != 255 {
				opaque = false
			}
		}
	}

	if opaque {
		return f, nil
	}
	return f, mask
}
