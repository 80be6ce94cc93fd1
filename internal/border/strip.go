package border

import (
	"image"
	"image/color"
	"sync"

	"github.com/disintegration/imaging"
	"github.com/sirupsen/logrus"

	"github.com/ironsheep/rpad/internal/logger"
)

// White is the padding color used when an image has no frame.
var White = color.NRGBA{R: 255, G: 255, B: 255, A: 255}

// Frame describes the monochromatic border found around an image.
type Frame struct {
	// Left, Top, Right and Bottom are the number of pixels to crop from each
	// edge. They are the raw edge measurements except for a completely uniform
	// image, where they are clamped to leave one interior row and column.
	Left   int `json:"left"`
	Top    int `json:"top"`
	Right  int `json:"right"`
	Bottom int `json:"bottom"`

	// Color is the padding color: the frame color when Found, White otherwise.
	Color color.NRGBA `json:"-"`

	// Found is true only when every edge measured at least one uniform strip.
	Found bool `json:"found"`
}

// Interior returns the part of bounds left after removing the frame. Without
// a frame, bounds is returned unchanged.
func (f Frame) Interior(bounds image.Rectangle) image.Rectangle {
	if !f.Found {
		return bounds
	}
	return image.Rect(
		bounds.Min.X+f.Left,
		bounds.Min.Y+f.Top,
		bounds.Max.X-f.Right,
		bounds.Max.Y-f.Bottom,
	)
}

// DetectFrame measures the border of img without cropping it.
func DetectFrame(img image.Image) Frame {
	return detectFrame(imaging.Clone(img))
}

func detectFrame(src *image.NRGBA) Frame {
	b := src.Bounds()
	if b.Empty() {
		return Frame{Color: White}
	}

	// The top-left pixel is the only one guaranteed to exist.
	ref := src.NRGBAAt(b.Min.X, b.Min.Y)

	// Edges are independent read-only scans.
	var counts [len(Edges)]int
	var wg sync.WaitGroup
	for i, e := range Edges {
		wg.Add(1)
		go func(i int, e Edge) {
			defer wg.Done()
			counts[i] = MeasureBorder(src, ref, e)
		}(i, e)
	}
	wg.Wait()

	f := Frame{
		Left:   counts[Left],
		Top:    counts[Top],
		Right:  counts[Right],
		Bottom: counts[Bottom],
	}
	if f.Left == 0 || f.Top == 0 || f.Right == 0 || f.Bottom == 0 {
		f.Color = White
		return f
	}

	f.Found = true
	f.Color = ref
	f.Left, f.Right = clampPair(f.Left, f.Right, b.Dx())
	f.Top, f.Bottom = clampPair(f.Top, f.Bottom, b.Dy())
	return f
}

// clampPair keeps at least one row or column between two opposing borders.
// The sum only reaches extent when the whole axis is uniform.
func clampPair(a, b, extent int) (int, int) {
	if a+b < extent {
		return a, b
	}
	a = (extent - 1) / 2
	return a, extent - 1 - a
}

// StripBorder removes the monochromatic frame from img.
//
// Returns:
//   - *image.NRGBA: The interior when a frame was found, otherwise an
//     unmodified copy of img. Always a new buffer with its origin at (0,0).
//   - color.NRGBA: The frame color, or White when there is no frame.
//
// A missing frame is not an error. It is reported as an informational log
// entry and the caller pads with white.
func StripBorder(img image.Image) (*image.NRGBA, color.NRGBA) {
	interior, f := Strip(img)
	return interior, f.Color
}

// Strip is StripBorder returning the full Frame instead of only its color.
func Strip(img image.Image) (*image.NRGBA, Frame) {
	src := imaging.Clone(img)
	f := detectFrame(src)

	if !f.Found {
		logger.WithFields(logrus.Fields{
			"left":   f.Left,
			"top":    f.Top,
			"right":  f.Right,
			"bottom": f.Bottom,
		}).Info("no monochromic border, padding with white")
		return src, f
	}

	logger.WithFields(logrus.Fields{
		"left":   f.Left,
		"top":    f.Top,
		"right":  f.Right,
		"bottom": f.Bottom,
		"color":  f.Color,
	}).Debug("border detected")

	return imaging.Crop(src, f.Interior(src.Bounds())), f
}
