package imaging

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// RGBAColor represents a non-premultiplied RGBA color with 8-bit components.
//
// The alpha component represents opacity:
//   - 0 = fully transparent
//   - 255 = fully opaque
type RGBAColor struct {
	R uint8 `json:"r"` // Red component (0-255)
	G uint8 `json:"g"` // Green component (0-255)
	B uint8 `json:"b"` // Blue component (0-255)
	A uint8 `json:"a"` // Alpha/opacity component (0-255)
}

// HSLColor represents a color in HSL (Hue, Saturation, Lightness) color space.
type HSLColor struct {
	H int `json:"h"` // Hue: 0-360 degrees (0=red, 120=green, 240=blue)
	S int `json:"s"` // Saturation: 0-100 percent (0=gray, 100=vivid)
	L int `json:"l"` // Lightness: 0-100 percent (0=black, 50=normal, 100=white)
}

// ColorResult contains a color value in multiple representations.
//
// RGBA is authoritative: it is what the border pipeline compares. Hex and
// HSL are for humans and ignore alpha.
type ColorResult struct {
	Hex  string    `json:"hex"`  // Hex format "#RRGGBB" (no alpha)
	RGBA RGBAColor `json:"rgba"` // RGBA components with alpha
	HSL  HSLColor  `json:"hsl"`  // HSL representation
}

// NewColorResult describes c in every representation.
func NewColorResult(c color.Color) ColorResult {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)

	// Built from the straight channels; colorful.MakeColor would divide by
	// alpha a second time.
	cf := colorful.Color{
		R: float64(n.R) / 255.0,
		G: float64(n.G) / 255.0,
		B: float64(n.B) / 255.0,
	}
	h, s, l := cf.Hsl()

	return ColorResult{
		Hex:  strings.ToUpper(cf.Hex()),
		RGBA: RGBAColor{R: n.R, G: n.G, B: n.B, A: n.A},
		HSL: HSLColor{
			H: int(math.Round(h)) % 360,
			S: int(math.Round(s * 100)),
			L: int(math.Round(l * 100)),
		},
	}
}

// SampleColor extracts the color value at a specific pixel coordinate.
//
// Coordinates are 0-based with origin at top-left:
//   - Valid X range: 0 to width-1
//   - Valid Y range: 0 to height-1
//
// The top-left pixel is the reference color for border detection, so
// sampling (0,0) shows what a frame would have to match.
func SampleColor(img image.Image, x, y int) (*ColorResult, error) {
	bounds := img.Bounds()
	if x < 0 || x >= bounds.Dx() || y < 0 || y >= bounds.Dy() {
		return nil, fmt.Errorf("coordinates (%d,%d) outside image bounds", x, y)
	}

	result := NewColorResult(img.At(bounds.Min.X+x, bounds.Min.Y+y))
	return &result, nil
}
