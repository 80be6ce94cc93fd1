package border

import (
	"bytes"
	"image"
	"image/color"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ironsheep/rpad/internal/logger"
)

var (
	black = color.NRGBA{0, 0, 0, 255}
	red   = color.NRGBA{255, 0, 0, 255}
	blue  = color.NRGBA{0, 0, 255, 255}
)

// framedImage builds a w x h image filled with inner and surrounded by a
// frame of the given per-edge thickness.
func framedImage(w, h, left, top, right, bottom int, frame, inner color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := inner
			if x < left || x >= w-right || y < top || y >= h-bottom {
				c = frame
			}
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

func solidImage(w, h int, c color.NRGBA) *image.NRGBA {
	return framedImage(w, h, 0, 0, 0, 0, c, c)
}

// distinctImage returns an image in which no two pixels share a color.
func distinctImage(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			i := y*w + x
			img.SetNRGBA(x, y, color.NRGBA{uint8(i * 7), uint8(i * 3), uint8(255 - i), 255})
		}
	}
	return img
}

func captureLog(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	logger.SetOutput(&buf)
	t.Cleanup(func() { logger.SetOutput(os.Stderr) })
	return &buf
}

func assertUniform(t *testing.T, img *image.NRGBA, r image.Rectangle, want color.NRGBA) {
	t.Helper()
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			if got := img.NRGBAAt(x, y); got != want {
				t.Fatalf("pixel (%d,%d): got %v, want %v", x, y, got, want)
			}
		}
	}
}

func TestEdgeString(t *testing.T) {
	assert.Equal(t, "left", Left.String())
	assert.Equal(t, "top", Top.String())
	assert.Equal(t, "right", Right.String())
	assert.Equal(t, "bottom", Bottom.String())
	assert.Equal(t, "Edge(9)", Edge(9).String())
}

func TestMeasureBorder(t *testing.T) {
	img := framedImage(20, 16, 1, 2, 3, 4, black, red)

	tests := []struct {
		edge Edge
		want int
	}{
		{Left, 1},
		{Top, 2},
		{Right, 3},
		{Bottom, 4},
	}

	for _, tt := range tests {
		t.Run(tt.edge.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, MeasureBorder(img, black, tt.edge))
		})
	}
}

func TestMeasureBorder_ReferenceMismatch(t *testing.T) {
	img := framedImage(10, 10, 2, 2, 2, 2, black, red)
	for _, e := range Edges {
		assert.Zero(t, MeasureBorder(img, blue, e), e.String())
	}
}

func TestMeasureBorder_UniformImageIsBounded(t *testing.T) {
	tests := []struct {
		name string
		w, h int
	}{
		{"square", 8, 8},
		{"wide", 12, 3},
		{"single column", 1, 7},
		{"single row", 7, 1},
		{"single pixel", 1, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img := solidImage(tt.w, tt.h, blue)
			assert.Equal(t, tt.w, MeasureBorder(img, blue, Left))
			assert.Equal(t, tt.w, MeasureBorder(img, blue, Right))
			assert.Equal(t, tt.h, MeasureBorder(img, blue, Top))
			assert.Equal(t, tt.h, MeasureBorder(img, blue, Bottom))
		})
	}
}

func TestMeasureBorder_AlphaMatters(t *testing.T) {
	img := framedImage(6, 6, 1, 1, 1, 1, black, red)
	img.SetNRGBA(0, 3, color.NRGBA{0, 0, 0, 254})

	assert.Zero(t, MeasureBorder(img, black, Left))
	assert.Equal(t, 1, MeasureBorder(img, black, Top))
}

func TestMeasureBorder_OffsetOrigin(t *testing.T) {
	full := framedImage(12, 12, 3, 3, 3, 3, black, red)
	sub := full.SubImage(image.Rect(1, 1, 11, 11)).(*image.NRGBA)

	for _, e := range Edges {
		assert.Equal(t, 2, MeasureBorder(sub, black, e), e.String())
	}
}

func TestStripBorder_BlackFrame(t *testing.T) {
	img := framedImage(10, 10, 2, 2, 2, 2, black, red)

	interior, c := StripBorder(img)

	require.NotNil(t, interior)
	assert.Equal(t, black, c)
	assert.Equal(t, image.Rect(0, 0, 6, 6), interior.Bounds())
	assertUniform(t, interior, interior.Bounds(), red)
}

func TestStripBorder_AsymmetricFrame(t *testing.T) {
	img := framedImage(30, 20, 1, 5, 7, 2, blue, red)
	img.SetNRGBA(10, 10, black)

	interior, c := StripBorder(img)

	assert.Equal(t, blue, c)
	assert.Equal(t, 22, interior.Bounds().Dx())
	assert.Equal(t, 13, interior.Bounds().Dy())
	assert.Equal(t, black, interior.NRGBAAt(9, 5))
}

func TestStripBorder_NoFrame(t *testing.T) {
	tests := []struct {
		name string
		img  *image.NRGBA
	}{
		{"all distinct", distinctImage(5, 5)},
		{"missing right", framedImage(10, 10, 2, 2, 0, 2, black, red)},
		{"missing bottom", framedImage(10, 10, 2, 2, 2, 0, black, red)},
		{"corner only", func() *image.NRGBA {
			img := solidImage(4, 4, red)
			img.SetNRGBA(0, 0, black)
			return img
		}()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := captureLog(t)

			interior, c := StripBorder(tt.img)

			assert.Equal(t, White, c)
			assert.Equal(t, tt.img.Bounds(), interior.Bounds())
			assert.Equal(t, tt.img.Pix, interior.Pix)
			assert.Contains(t, buf.String(), "no monochromic border, padding with white")
		})
	}
}

func TestStripBorder_ReturnsNewBuffer(t *testing.T) {
	img := distinctImage(5, 5)
	interior, _ := StripBorder(img)

	interior.SetNRGBA(0, 0, black)
	assert.NotEqual(t, black, img.NRGBAAt(0, 0))
}

func TestStripBorder_UniformImage(t *testing.T) {
	tests := []struct {
		name string
		w, h int
	}{
		{"even square", 10, 10},
		{"odd rectangle", 9, 4},
		{"single column", 1, 6},
		{"single pixel", 1, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img := solidImage(tt.w, tt.h, blue)

			f := DetectFrame(img)
			assert.True(t, f.Found)
			assert.Equal(t, tt.w-1, f.Left+f.Right)
			assert.Equal(t, tt.h-1, f.Top+f.Bottom)

			interior, c := StripBorder(img)
			assert.Equal(t, blue, c)
			assert.Equal(t, image.Rect(0, 0, 1, 1), interior.Bounds())
			assert.Equal(t, blue, interior.NRGBAAt(0, 0))
		})
	}
}

func TestStripBorder_NonNRGBAInput(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 8, 8))
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			c := color.RGBA{0, 0, 0, 255}
			if x >= 1 && x < 7 && y >= 1 && y < 7 {
				c = color.RGBA{0, 200, 0, 255}
			}
			src.SetRGBA(x, y, c)
		}
	}

	interior, c := StripBorder(src)

	assert.Equal(t, black, c)
	assert.Equal(t, image.Rect(0, 0, 6, 6), interior.Bounds())
	assert.Equal(t, color.NRGBA{0, 200, 0, 255}, interior.NRGBAAt(3, 3))
}

func TestDetectFrame(t *testing.T) {
	f := DetectFrame(framedImage(20, 16, 1, 2, 3, 4, black, red))

	assert.True(t, f.Found)
	assert.Equal(t, Frame{Left: 1, Top: 2, Right: 3, Bottom: 4, Color: black, Found: true}, f)
	assert.Equal(t, image.Rect(1, 2, 17, 12), f.Interior(image.Rect(0, 0, 20, 16)))
}

func TestDetectFrame_NoFrameKeepsMeasurements(t *testing.T) {
	f := DetectFrame(framedImage(10, 10, 2, 3, 0, 1, black, red))

	assert.False(t, f.Found)
	assert.Equal(t, White, f.Color)
	assert.Equal(t, 2, f.Left)
	assert.Equal(t, 3, f.Top)
	assert.Zero(t, f.Right)

	bounds := image.Rect(0, 0, 10, 10)
	assert.Equal(t, bounds, f.Interior(bounds))
}

func TestDetectFrame_Empty(t *testing.T) {
	f := DetectFrame(image.NewNRGBA(image.Rect(0, 0, 0, 0)))
	assert.False(t, f.Found)
	assert.Equal(t, White, f.Color)
}

func TestPad(t *testing.T) {
	interior := solidImage(6, 6, red)

	out := Pad(interior, black, 3)

	require.Equal(t, image.Rect(0, 0, 12, 12), out.Bounds())
	assertUniform(t, out, image.Rect(3, 3, 9, 9), red)
	assertUniform(t, out, image.Rect(0, 0, 12, 3), black)
	assertUniform(t, out, image.Rect(0, 9, 12, 12), black)
	assertUniform(t, out, image.Rect(0, 3, 3, 9), black)
	assertUniform(t, out, image.Rect(9, 3, 12, 9), black)
}

func TestPad_CopiesEveryPixel(t *testing.T) {
	src := distinctImage(7, 5)

	for _, width := range []int{0, 1, 4, 30} {
		out := Pad(src, blue, width)

		require.Equal(t, 7+2*width, out.Bounds().Dx())
		require.Equal(t, 5+2*width, out.Bounds().Dy())
		for y := 0; y < 5; y++ {
			for x := 0; x < 7; x++ {
				if got, want := out.NRGBAAt(x+width, y+width), src.NRGBAAt(x, y); got != want {
					t.Fatalf("width %d: pixel (%d,%d): got %v, want %v", width, x, y, got, want)
				}
			}
		}
	}
}

func TestPad_ZeroWidthIsCopy(t *testing.T) {
	src := distinctImage(5, 4)

	out := Pad(src, White, 0)

	assert.Equal(t, src.Bounds(), out.Bounds())
	assert.Equal(t, src.Pix, out.Pix)

	out.SetNRGBA(0, 0, black)
	assert.NotEqual(t, black, src.NRGBAAt(0, 0))
}

func TestPad_NegativeWidth(t *testing.T) {
	src := distinctImage(3, 3)
	out := Pad(src, White, -5)
	assert.Equal(t, src.Pix, out.Pix)
}

func TestPad_SubImage(t *testing.T) {
	full := distinctImage(10, 10)
	sub := full.SubImage(image.Rect(2, 3, 6, 8))

	out := Pad(sub, black, 1)

	require.Equal(t, image.Rect(0, 0, 6, 7), out.Bounds())
	assert.Equal(t, full.NRGBAAt(2, 3), out.NRGBAAt(1, 1))
	assert.Equal(t, full.NRGBAAt(5, 7), out.NRGBAAt(4, 5))
	assert.Equal(t, black, out.NRGBAAt(5, 6))
}

func TestPad_EmptyInterior(t *testing.T) {
	out := Pad(image.NewNRGBA(image.Rect(0, 0, 0, 0)), black, 2)
	assert.Equal(t, image.Rect(0, 0, 4, 4), out.Bounds())
	assertUniform(t, out, out.Bounds(), black)
}

func TestNormalize_ReplacesFrame(t *testing.T) {
	img := framedImage(10, 10, 2, 2, 2, 2, black, red)

	out, f := Normalize(img, 3)

	assert.True(t, f.Found)
	require.Equal(t, image.Rect(0, 0, 12, 12), out.Bounds())
	assertUniform(t, out, image.Rect(3, 3, 9, 9), red)
	assert.Equal(t, black, out.NRGBAAt(0, 0))
	assert.Equal(t, black, out.NRGBAAt(11, 11))
}

func TestNormalize_NoFramePadsWhite(t *testing.T) {
	buf := captureLog(t)

	out, f := Normalize(distinctImage(5, 5), 30)

	assert.False(t, f.Found)
	assert.Equal(t, image.Rect(0, 0, 65, 65), out.Bounds())
	assert.Equal(t, White, out.NRGBAAt(0, 0))
	assert.Equal(t, White, out.NRGBAAt(64, 64))
	assert.Equal(t, 1, strings.Count(buf.String(), "no monochromic border"))
}

func TestNormalize_UnevenMarginsBecomeEven(t *testing.T) {
	img := framedImage(40, 30, 3, 9, 12, 1, White, blue)

	out, _ := Normalize(img, 5)

	// Interior is 25x20.
	require.Equal(t, image.Rect(0, 0, 35, 30), out.Bounds())
	for _, e := range Edges {
		assert.Equal(t, 5, MeasureBorder(out, White, e), e.String())
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	img := framedImage(18, 14, 4, 1, 2, 3, black, red)

	once, _ := Normalize(img, 2)
	twice, _ := Normalize(once, 2)

	assert.Equal(t, once.Bounds(), twice.Bounds())
	assert.Equal(t, once.Pix, twice.Pix)
}

func TestStripThenPadZeroRoundTrip(t *testing.T) {
	img := framedImage(16, 12, 2, 1, 3, 2, blue, red)
	img.SetNRGBA(5, 5, black)

	interior, c := StripBorder(img)
	out := Pad(interior, c, 0)

	assert.Equal(t, interior.Bounds(), out.Bounds())
	assert.Equal(t, interior.Pix, out.Pix)
}

func TestCheckSize(t *testing.T) {
	tests := []struct {
		name    string
		bounds  image.Rectangle
		width   int
		wantErr bool
	}{
		{"default padding", image.Rect(0, 0, 10, 10), 30, false},
		{"negative counts as zero", image.Rect(0, 0, 10, 10), -4, false},
		{"exactly the limit", image.Rect(0, 0, 1<<14, 1<<13), 0, false},
		{"one past the limit", image.Rect(0, 0, 1<<14, 1<<13), 1, true},
		{"huge padding", image.Rect(0, 0, 10, 10), 1 << 40, true},
		{"area overflow", image.Rect(0, 0, 10, 10), MaxPixels / 2, true},
		{"empty image", image.Rectangle{}, 3, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckSize(tt.bounds, tt.width)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrTooLarge)
				return
			}
			assert.NoError(t, err)
		})
	}
}
