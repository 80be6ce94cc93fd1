package border

import (
	"errors"
	"fmt"
	"image"
	"image/color"

	"github.com/anthonynsimon/bild/parallel"
	"github.com/disintegration/imaging"
)

// MaxPixels bounds the area of a padded result; 512 MiB as NRGBA.
const MaxPixels = 1 << 27

// ErrTooLarge is returned by CheckSize when padding would produce an image
// larger than MaxPixels.
var ErrTooLarge = errors.New("padded image too large")

// CheckSize returns ErrTooLarge if padding an image with the given bounds by
// width pixels would exceed MaxPixels. The stripped interior is never larger
// than the source, so callers check the source bounds before Normalize.
func CheckSize(bounds image.Rectangle, width int) error {
	if width < 0 {
		width = 0
	}
	w, h := bounds.Dx(), bounds.Dy()
	if width > MaxPixels/2 || w > MaxPixels || h > MaxPixels {
		return fmt.Errorf("%dx%d padded by %d: %w", w, h, width, ErrTooLarge)
	}

	pw, ph := w+2*width, h+2*width
	if pw > MaxPixels || ph > MaxPixels || (ph > 0 && pw > MaxPixels/ph) {
		return fmt.Errorf("%dx%d padded by %d: %w", w, h, width, ErrTooLarge)
	}
	return nil
}

// Pad returns a new image that is img surrounded by width pixels of c on
// every side. A width of 0 yields a copy of img; negative widths count as 0.
// Pad allocates whatever the width asks for; see CheckSize.
func Pad(img image.Image, c color.NRGBA, width int) *image.NRGBA {
	if width < 0 {
		width = 0
	}

	src, ok := img.(*image.NRGBA)
	if !ok {
		src = imaging.Clone(img)
	}

	w, h := src.Bounds().Dx(), src.Bounds().Dy()
	dst := imaging.New(w+2*width, h+2*width, c)
	if w == 0 || h == 0 {
		return dst
	}

	rowLen := w * 4
	parallel.Line(h, func(start, end int) {
		for y := start; y < end; y++ {
			si := src.PixOffset(src.Rect.Min.X, src.Rect.Min.Y+y)
			di := dst.PixOffset(width, width+y)
			copy(dst.Pix[di:di+rowLen], src.Pix[si:si+rowLen])
		}
	})
	return dst
}

// Normalize strips the frame from img and pads the interior with width
// pixels of the frame color (white when no frame was found).
func Normalize(img image.Image, width int) (*image.NRGBA, Frame) {
	interior, f := Strip(img)
	return Pad(interior, f.Color, width), f
}
