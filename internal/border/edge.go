package border

import (
	"fmt"
	"image"
	"image/color"
)

// Edge selects the side of an image a border is measured from.
type Edge int

const (
	Left Edge = iota
	Top
	Right
	Bottom
)

// Edges lists every edge in measurement order.
var Edges = [...]Edge{Left, Top, Right, Bottom}

func (e Edge) String() string {
	switch e {
	case Left:
		return "left"
	case Top:
		return "top"
	case Right:
		return "right"
	case Bottom:
		return "bottom"
	default:
		return fmt.Sprintf("Edge(%d)", int(e))
	}
}

// MeasureBorder counts how many consecutive strips, starting at the given
// edge and moving inward, consist entirely of pixels equal to ref.
//
// Parameters:
//   - img: The image to scan. Only read.
//   - ref: Reference color. StripBorder always passes the top-left pixel.
//   - edge: Which side to start from.
//
// Strip n for each edge is:
//   - Left: column n, full height
//   - Top: row n, full width
//   - Right: column width-1-n, full height
//   - Bottom: row height-1-n, full width
//
// The scan stops at the first strip containing a different pixel, or once it
// has covered the whole extent of the image in that direction. The result is
// therefore in [0, width] for Left and Right and in [0, height] for Top and
// Bottom. An empty image measures 0.
func MeasureBorder(img *image.NRGBA, ref color.NRGBA, edge Edge) int {
	b := img.Bounds()

	extent := b.Dx()
	if edge == Top || edge == Bottom {
		extent = b.Dy()
	}

	n := 0
	for n < extent && uniform(img, ref, edge.strip(b, n)) {
		n++
	}
	return n
}

// strip returns the 1-pixel-thick rectangle n strips inward from the edge.
func (e Edge) strip(b image.Rectangle, n int) image.Rectangle {
	switch e {
	case Left:
		return image.Rect(b.Min.X+n, b.Min.Y, b.Min.X+n+1, b.Max.Y)
	case Top:
		return image.Rect(b.Min.X, b.Min.Y+n, b.Max.X, b.Min.Y+n+1)
	case Right:
		return image.Rect(b.Max.X-n-1, b.Min.Y, b.Max.X-n, b.Max.Y)
	case Bottom:
		return image.Rect(b.Min.X, b.Max.Y-n-1, b.Max.X, b.Max.Y-n)
	}
	panic(fmt.Sprintf("border: unknown edge %d", int(e)))
}

// uniform reports whether every pixel of r equals ref.
func uniform(img *image.NRGBA, ref color.NRGBA, r image.Rectangle) bool {
	for y := r.Min.Y; y < r.Max.Y; y++ {
		i := img.PixOffset(r.Min.X, y)
		for x := r.Min.X; x < r.Max.X; x++ {
			if img.Pix[i+0] != ref.R || img.Pix[i+1] != ref.G ||
				img.Pix[i+2] != ref.B || img.Pix[i+3] != ref.A {
				return false
			}
			i += 4
		}
	}
	return true
}
