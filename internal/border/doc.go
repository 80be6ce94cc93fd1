// Package border detects and normalizes monochromatic frames around images.
//
// A frame is a band of pixels along all four edges of an image that share
// exactly the color of the top-left pixel. The band may have a different
// thickness on each edge. The package removes such a frame and replaces it
// with padding of a uniform width, so that images with sloppy, uneven margins
// come out with identical margins on every side.
//
// # Pipeline
//
// The work is split into three pure steps:
//
//  1. MeasureBorder counts the uniform strips (1-pixel rows or columns) from
//     one edge inward.
//  2. StripBorder measures all four edges, decides whether a frame exists and
//     crops it off. When any edge has no uniform strip, there is no frame: the
//     image is returned uncropped together with opaque white.
//  3. Pad allocates a new image, fills it with the padding color and copies
//     the interior into its center.
//
// Normalize runs StripBorder and Pad in sequence.
//
// # Color Comparison
//
// Pixels are compared as non-premultiplied 8-bit RGBA. Any image.Image is
// converted to *image.NRGBA first. Two pixels match only when all four
// channels are equal; there is no tolerance.
//
// # Ownership
//
// Every function returns a freshly allocated image. Inputs are only read, so
// the functions are safe to call concurrently on the same source image.
//
// # Degenerate Images
//
// Scans never run past the opposite edge. A completely uniform image measures
// its full width and height on every edge; the crop is then clamped so that a
// single interior row and column remain, and the result is a square of the
// frame color.
package border
