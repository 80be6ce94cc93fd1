package imaging

import (
	"errors"
	"fmt"
	"image"
	_ "image/gif"  // Register GIF format decoder
	_ "image/jpeg" // Register JPEG format decoder
	_ "image/png"  // Register PNG format decoder
	"os"
	"path/filepath"
	"strings"
	"sync"

	_ "golang.org/x/image/bmp"  // Register BMP format decoder
	_ "golang.org/x/image/tiff" // Register TIFF format decoder
	_ "golang.org/x/image/webp" // Register WebP format decoder
)

// ErrEmptyImage is returned for images with zero width or height. The border
// pipeline needs at least the top-left pixel.
var ErrEmptyImage = errors.New("image has zero width or height")

// ImageCache holds decoded images by path so the MCP tools can inspect the
// same file repeatedly without decoding it again. Cached images are shared
// and must not be modified; the border functions only read their input.
//
// An entry is not refreshed when its file changes. A caller that writes over
// a cached path must Evict it.
type ImageCache struct {
	mu     sync.RWMutex
	images map[string]image.Image
}

// NewImageCache returns an empty cache.
func NewImageCache() *ImageCache {
	return &ImageCache{
		images: make(map[string]image.Image),
	}
}

// Load returns the cached image for path, decoding and caching it on a miss.
// Errors are those of Decode; failures are not cached.
func (c *ImageCache) Load(path string) (image.Image, error) {
	if img, ok := c.cached(path); ok {
		return img, nil
	}

	img, err := Decode(path)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.images[path] = img
	c.mu.Unlock()

	return img, nil
}

func (c *ImageCache) cached(path string) (image.Image, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	img, ok := c.images[path]
	return img, ok
}

// Clear drops every entry.
func (c *ImageCache) Clear() {
	c.mu.Lock()
	c.images = make(map[string]image.Image)
	c.mu.Unlock()
}

// Evict drops the entry for path, if any.
func (c *ImageCache) Evict(path string) {
	c.mu.Lock()
	delete(c.images, path)
	c.mu.Unlock()
}

// Decode reads and decodes the image at path without caching it.
func Decode(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image: %w", err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}
	if img.Bounds().Empty() {
		return nil, fmt.Errorf("%s: %w", path, ErrEmptyImage)
	}
	return img, nil
}

// ImageInfo describes an image file as border detection sees it.
type ImageInfo struct {
	Width  int `json:"width"`
	Height int `json:"height"`

	// Format is implied by the file extension; see FormatName.
	Format        string `json:"format"`
	FileSizeBytes int64  `json:"file_size_bytes"`

	// Opaque is false when some pixel is translucent. Alpha is compared
	// along with color, so a change in alpha alone ends a border.
	Opaque bool `json:"opaque"`

	// Reference is the top-left pixel: the color a frame has to match.
	Reference ColorResult `json:"reference"`
}

// LoadImageInfo loads path through the cache and describes it.
func LoadImageInfo(cache *ImageCache, path string) (*ImageInfo, error) {
	img, err := cache.Load(path)
	if err != nil {
		return nil, err
	}

	stat, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}

	b := img.Bounds()
	opaque := false
	if o, ok := img.(interface{ Opaque() bool }); ok {
		opaque = o.Opaque()
	}

	return &ImageInfo{
		Width:         b.Dx(),
		Height:        b.Dy(),
		Format:        FormatName(path),
		FileSizeBytes: stat.Size(),
		Opaque:        opaque,
		Reference:     NewColorResult(img.At(b.Min.X, b.Min.Y)),
	}, nil
}

// FormatName maps a file extension to a format name.
func FormatName(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		return "png"
	case ".jpg", ".jpeg":
		return "jpeg"
	case ".gif":
		return "gif"
	case ".bmp":
		return "bmp"
	case ".tif", ".tiff":
		return "tiff"
	case ".webp":
		return "webp"
	default:
		return "unknown"
	}
}

// DimensionsResult is the size of an image in pixels.
type DimensionsResult struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// GetDimensions reports the size of the image at path. A cached image
// answers from memory; otherwise only the file header is read and nothing is
// added to the cache.
func GetDimensions(cache *ImageCache, path string) (*DimensionsResult, error) {
	if img, ok := cache.cached(path); ok {
		b := img.Bounds()
		return &DimensionsResult{Width: b.Dx(), Height: b.Dy()}, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image: %w", err)
	}
	defer f.Close()

	cfg, _, err := image.DecodeConfig(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image header: %w", err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, fmt.Errorf("%s: %w", path, ErrEmptyImage)
	}
	return &DimensionsResult{Width: cfg.Width, Height: cfg.Height}, nil
}
