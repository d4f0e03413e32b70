package pngfile

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"math"
)

// Sentinel errors reported by Decode. Wrap details with fmt.Errorf and test
// with errors.Is.
var (
	// ErrSignature indicates the input does not begin with the PNG signature.
	ErrSignature = errors.New("pngfile: not a PNG file")
	// ErrUnsupportedFormat indicates a valid PNG outside the supported subset
	// (bit depth, interlacing, color type, or encoding flags).
	ErrUnsupportedFormat = errors.New("pngfile: unsupported PNG variant")
	// ErrMissingData indicates the file carries no pixel data, or an
	// indexed-color image has no palette.
	ErrMissingData = errors.New("pngfile: missing image data")
	// ErrMalformedChunk indicates a structurally invalid chunk.
	ErrMalformedChunk = errors.New("pngfile: malformed chunk")
	// ErrPaletteIndex indicates a pixel references a palette entry beyond the
	// palette's bounds.
	ErrPaletteIndex = errors.New("pngfile: palette index out of range")
	// ErrFilterType indicates a scanline declares a filter type outside 0-4.
	ErrFilterType = errors.New("pngfile: unknown scanline filter type")
)

// pngSignature is the fixed 8-byte magic at the start of every PNG file.
var pngSignature = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}

// ColorType identifies the pixel encoding declared in the image header.
type ColorType int

const (
	// Truecolor images store three 8-bit samples per pixel (RGB).
	Truecolor ColorType = 2
	// Indexed images store one 8-bit palette index per pixel.
	Indexed ColorType = 3
	// TruecolorAlpha images store four 8-bit samples per pixel (RGBA).
	TruecolorAlpha ColorType = 6
)

// String returns the string representation of the color type.
func (c ColorType) String() string {
	switch c {
	case Truecolor:
		return "Truecolor"
	case Indexed:
		return "Indexed"
	case TruecolorAlpha:
		return "TruecolorAlpha"
	default:
		return fmt.Sprintf("ColorType(%d)", int(c))
	}
}

// channels returns the number of bytes per pixel in the filtered scanline
// data. Valid only for the supported color types.
func (c ColorType) channels() int {
	switch c {
	case Indexed:
		return 1
	case Truecolor:
		return 3
	default:
		return 4
	}
}

// Header holds the structural parameters parsed from the IHDR chunk. It is
// populated once and never mutated afterwards.
type Header struct {
	Width        int
	Height       int
	BitDepth     int
	ColorType    ColorType
	Compression  int
	FilterMethod int
	Interlace    int
}

// rawImage collects everything the chunk walk produces: the header, the
// optional palette and transparency payloads, and the concatenated
// (still compressed) pixel data.
type rawImage struct {
	header    Header
	sawHeader bool
	palette   [][3]byte
	trns      []byte
	idat      []byte
}

// parseChunks walks the chunk stream and populates a rawImage. The walk uses
// a single explicit cursor: each iteration reads a 4-byte big-endian length,
// a 4-byte type tag, the payload, and 4 trailing CRC bytes that are consumed
// without verification. Unknown tags are skipped; IEND ends the walk.
func parseChunks(data []byte) (*rawImage, error) {
	if len(data) < len(pngSignature) || !bytes.Equal(data[:len(pngSignature)], pngSignature) {
		return nil, ErrSignature
	}

	raw := &rawImage{}
	pos := len(pngSignature)

	for pos < len(data) {
		if len(data)-pos < 8 {
			return nil, fmt.Errorf("%w: truncated chunk at offset %d", ErrMalformedChunk, pos)
		}
		length := int(binary.BigEndian.Uint32(data[pos : pos+4]))
		tag := string(data[pos+4 : pos+8])
		pos += 8

		if length < 0 || len(data)-pos < length+4 {
			return nil, fmt.Errorf("%w: %s payload overruns input", ErrMalformedChunk, tag)
		}
		payload := data[pos : pos+length]
		pos += length + 4 // payload plus CRC, which is not checked

		switch tag {
		case "IHDR":
			if err := raw.parseHeader(payload); err != nil {
				return nil, err
			}
		case "IDAT":
			raw.idat = append(raw.idat, payload...)
		case "PLTE":
			if err := raw.parsePalette(payload); err != nil {
				return nil, err
			}
		case "tRNS":
			raw.trns = append([]byte(nil), payload...)
		case "IEND":
			return raw, raw.validate()
		}
	}

	return raw, raw.validate()
}

// parseHeader decodes the fixed 13-byte IHDR payload.
func (r *rawImage) parseHeader(payload []byte) error {
	if len(payload) != 13 {
		return fmt.Errorf("%w: IHDR payload is %d bytes, want 13", ErrMalformedChunk, len(payload))
	}
	r.header = Header{
		Width:        int(binary.BigEndian.Uint32(payload[0:4])),
		Height:       int(binary.BigEndian.Uint32(payload[4:8])),
		BitDepth:     int(payload[8]),
		ColorType:    ColorType(payload[9]),
		Compression:  int(payload[10]),
		FilterMethod: int(payload[11]),
		Interlace:    int(payload[12]),
	}
	if r.header.Width == 0 || r.header.Height == 0 {
		return fmt.Errorf("%w: zero image dimension %dx%d", ErrMalformedChunk, r.header.Width, r.header.Height)
	}
	r.sawHeader = true
	return nil
}

// parsePalette decodes the PLTE payload into RGB triples.
func (r *rawImage) parsePalette(payload []byte) error {
	if len(payload)%3 != 0 {
		return fmt.Errorf("%w: PLTE payload is %d bytes, not a multiple of 3", ErrMalformedChunk, len(payload))
	}
	entries := len(payload) / 3
	if entries == 0 || entries > 256 {
		return fmt.Errorf("%w: invalid palette size %d", ErrMalformedChunk, entries)
	}
	r.palette = make([][3]byte, entries)
	for i := range r.palette {
		copy(r.palette[i][:], payload[i*3:i*3+3])
	}
	return nil
}

// validate enforces the supported subset after the chunk walk completes.
func (r *rawImage) validate() error {
	if !r.sawHeader {
		return fmt.Errorf("%w: missing IHDR", ErrMalformedChunk)
	}
	if len(r.idat) == 0 {
		return fmt.Errorf("%w: no IDAT chunks", ErrMissingData)
	}

	h := r.header
	// Bound the pixel count so the scanline and buffer size arithmetic
	// downstream cannot overflow; both dimensions are non-zero here.
	if h.Width > math.MaxInt32/h.Height {
		return fmt.Errorf("%w: image dimensions %dx%d too large", ErrUnsupportedFormat, h.Width, h.Height)
	}
	if h.BitDepth != 8 {
		return fmt.Errorf("%w: bit depth %d", ErrUnsupportedFormat, h.BitDepth)
	}
	if h.Interlace != 0 {
		return fmt.Errorf("%w: interlaced image", ErrUnsupportedFormat)
	}
	if h.Compression != 0 || h.FilterMethod != 0 {
		return fmt.Errorf("%w: compression method %d, filter method %d",
			ErrUnsupportedFormat, h.Compression, h.FilterMethod)
	}
	switch h.ColorType {
	case Truecolor, Indexed, TruecolorAlpha:
	default:
		return fmt.Errorf("%w: color type %d", ErrUnsupportedFormat, int(h.ColorType))
	}
	if h.ColorType == Indexed && len(r.palette) == 0 {
		return fmt.Errorf("%w: indexed image has no palette", ErrMissingData)
	}
	return nil
}
