// Package imaging is the file boundary around the border pipeline.
//
// It decodes images from disk, encodes results back to disk or to base64
// PNG, and renders colors for reports. The border package itself never
// touches files; everything that can fail on I/O lives here.
//
// # Supported Formats
//
// Decoding: PNG, JPEG, GIF (first frame), BMP, TIFF and WebP.
// Encoding: PNG, BMP and TIFF are lossless. JPEG and GIF are accepted but
// cannot reproduce pixels exactly, so Save logs a warning for them. WebP
// cannot be written.
//
// # Thread Safety
//
// The ImageCache type is safe for concurrent use. All other functions are
// stateless.
//
// # Error Handling
//
// Functions return errors for:
//   - File I/O errors during loading or saving
//   - Files that do not decode as a supported image
//   - Images with zero width or height (ErrEmptyImage)
//   - Output paths with an extension that cannot be encoded (ErrUnsupportedFormat)
//   - Coordinates outside image bounds
package imaging
