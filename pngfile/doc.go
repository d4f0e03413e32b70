// Package pngfile decodes a restricted subset of the PNG format into flat
// 8-bit RGB pixel data.
//
// The supported subset covers the images this library is built to convert:
// 8-bit samples, no interlacing, and the truecolor, indexed-color, and
// truecolor-with-alpha color types. Alpha and palette information is resolved
// during decoding, so callers always receive a plain RGB buffer:
//
//	img, err := pngfile.Decode(data)
//	if err != nil {
//	    // handle error
//	}
//	// img.Pix is img.Width*img.Height*3 bytes of row-major RGB
//
// Pixels with partial transparency are blended over a white background.
// Fully transparent pixels become white. For truecolor images that declare a
// single transparent color, every exactly matching pixel is replaced with
// white after decoding.
//
// # Errors
//
// Decode reports failures through sentinel errors that can be tested with
// errors.Is:
//
//   - [ErrSignature] - the input does not start with the PNG signature
//   - [ErrUnsupportedFormat] - a valid PNG outside the supported subset
//   - [ErrMissingData] - no pixel data, or an indexed image without a palette
//   - [ErrMalformedChunk] - a structurally invalid chunk
//   - [ErrPaletteIndex] - a pixel references a palette entry that does not exist
//   - [ErrFilterType] - a scanline declares an unknown filter type
//
// Chunk CRCs are read but not verified, matching the tolerant behavior of
// many PNG consumers.
package pngfile
