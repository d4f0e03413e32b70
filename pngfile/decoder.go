package pngfile

import (
	"bytes"
	"compress/zlib"
	"fmt"
	"io"

	"github.com/tsawler/pngpdf/logging"
)

// Image is a decoded PNG reduced to flat 8-bit RGB samples.
type Image struct {
	// Width and Height are the image dimensions in pixels.
	Width  int
	Height int
	// Pix holds Width*Height*3 bytes of row-major RGB data. Palette and
	// alpha information from the source image is already resolved.
	Pix []byte
}

// Decode parses a PNG byte stream and returns its pixels as flat 8-bit RGB.
// Only 8-bit, non-interlaced truecolor, indexed-color, and
// truecolor-with-alpha images are supported; anything else fails with one of
// the package's sentinel errors. Decoding is deterministic: the same input
// always yields a byte-identical pixel buffer.
func Decode(data []byte) (*Image, error) {
	raw, err := parseChunks(data)
	if err != nil {
		return nil, err
	}
	h := raw.header

	decompressed, err := zlibDecompress(raw.idat)
	if err != nil {
		return nil, fmt.Errorf("pngfile: decompressing image data: %w", err)
	}

	bpp := h.ColorType.channels()
	rowBytes := h.Width * bpp
	if len(decompressed) < h.Height*(rowBytes+1) {
		return nil, fmt.Errorf("%w: pixel data truncated (%d bytes, want %d)",
			ErrMissingData, len(decompressed), h.Height*(rowBytes+1))
	}

	logging.Logger().Debug("decoding PNG",
		"width", h.Width, "height", h.Height,
		"colorType", h.ColorType.String(), "palette", len(raw.palette))

	comp := newCompositor(raw)

	// Filters 2-4 predict from the previous reconstructed scanline, so rows
	// are processed strictly in order, swapping two private row buffers.
	prev := make([]byte, rowBytes)
	row := make([]byte, rowBytes)
	offset := 0
	for y := 0; y < h.Height; y++ {
		filterType := decompressed[offset]
		offset++
		copy(row, decompressed[offset:offset+rowBytes])
		offset += rowBytes

		if err := defilterRow(filterType, row, prev, bpp); err != nil {
			return nil, fmt.Errorf("row %d: %w", y, err)
		}
		if err := comp.writeRow(row); err != nil {
			return nil, fmt.Errorf("row %d: %w", y, err)
		}
		prev, row = row, prev
	}

	return &Image{Width: h.Width, Height: h.Height, Pix: comp.finish()}, nil
}

// zlibDecompress inflates the concatenated IDAT payloads using the standard
// library.
func zlibDecompress(data []byte) ([]byte, error) {
	reader, err := zlib.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	defer reader.Close()

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, reader); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
