package imaging

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"
	"github.com/sirupsen/logrus"

	"github.com/ironsheep/rpad/internal/logger"
)

// ErrUnsupportedFormat is returned when an output path has an extension that
// cannot be encoded.
var ErrUnsupportedFormat = errors.New("unsupported output format")

// ErrOutputDirUnavailable is returned when an output directory does not exist
// or is not a directory.
var ErrOutputDirUnavailable = errors.New("output path not available")

// Save encodes img to path, choosing the format from the file extension.
//
// PNG, BMP and TIFF reproduce every pixel exactly. JPEG (written at quality
// 100) and GIF (palette quantized) do not; they are still written, with a
// warning.
func Save(img image.Image, path string) error {
	format, err := outputFormat(path)
	if err != nil {
		return err
	}
	if img.Bounds().Empty() {
		return fmt.Errorf("%s: %w", path, ErrEmptyImage)
	}

	var opts []imaging.EncodeOption
	switch format {
	case imaging.JPEG:
		opts = append(opts, imaging.JPEGQuality(100))
		fallthrough
	case imaging.GIF:
		logger.WithFields(logrus.Fields{
			"path":   path,
			"format": format.String(),
		}).Warn("output format is lossy, pixel values will not be preserved exactly")
	case imaging.PNG:
		opts = append(opts, imaging.PNGCompressionLevel(png.BestCompression))
	}

	if err := imaging.Save(img, path, opts...); err != nil {
		return fmt.Errorf("failed to save image: %w", err)
	}
	return nil
}

// CheckOutputFormat returns ErrUnsupportedFormat if Save cannot encode to
// path. Callers use it to reject a destination before processing.
func CheckOutputFormat(path string) error {
	_, err := outputFormat(path)
	return err
}

// CheckOutputDir returns ErrOutputDirUnavailable unless dir is an existing
// directory.
func CheckOutputDir(dir string) error {
	st, err := os.Stat(dir)
	if err != nil || !st.IsDir() {
		return fmt.Errorf("%w: %s", ErrOutputDirUnavailable, dir)
	}
	return nil
}

func outputFormat(path string) (imaging.Format, error) {
	format, err := imaging.FormatFromFilename(path)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", path, ErrUnsupportedFormat)
	}
	return format, nil
}

// OutputPath places the base name of input inside dir.
func OutputPath(input, dir string) string {
	return filepath.Join(dir, filepath.Base(input))
}

// EncodedImage is an image serialized as base64 PNG for JSON transport.
type EncodedImage struct {
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	ImageBase64 string `json:"image_base64"`
	MimeType    string `json:"mime_type"`
}

// EncodePNGBase64 encodes img as PNG and wraps it for JSON transport.
func EncodePNGBase64(img image.Image) (*EncodedImage, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("failed to encode image: %w", err)
	}

	return &EncodedImage{
		Width:       img.Bounds().Dx(),
		Height:      img.Bounds().Dy(),
		ImageBase64: base64.StdEncoding.EncodeToString(buf.Bytes()),
		MimeType:    "image/png",
	}, nil
}
