package pngfile

import "fmt"

// compositor flattens reconstructed scanlines into an 8-bit RGB buffer,
// resolving palette lookups and alpha along the way. Rows must be written in
// order; finish returns the completed buffer.
type compositor struct {
	header  Header
	palette [][3]byte

	// alpha maps palette indices to alpha values for indexed images. Entries
	// not listed in the transparency chunk stay fully opaque.
	alpha []byte

	// key is the exact transparent color for truecolor images, if declared.
	key *[3]byte

	pix []byte
	off int
}

// newCompositor prepares the output buffer and the transparency lookup for
// the image described by raw.
func newCompositor(raw *rawImage) *compositor {
	h := raw.header
	c := &compositor{
		header:  h,
		palette: raw.palette,
		pix:     make([]byte, h.Width*h.Height*3),
	}

	switch h.ColorType {
	case Indexed:
		c.alpha = make([]byte, len(raw.palette))
		for i := range c.alpha {
			c.alpha[i] = 255
		}
		for i, a := range raw.trns {
			if i < len(c.alpha) {
				c.alpha[i] = a
			}
		}
	case Truecolor:
		if len(raw.trns) >= 3 {
			c.key = &[3]byte{raw.trns[0], raw.trns[1], raw.trns[2]}
		}
	}

	return c
}

// writeRow composites one reconstructed scanline into the output buffer.
func (c *compositor) writeRow(row []byte) error {
	switch c.header.ColorType {
	case Truecolor:
		// Already RGB; copy through unchanged.
		copy(c.pix[c.off:], row)
		c.off += len(row)

	case TruecolorAlpha:
		for px := 0; px < c.header.Width; px++ {
			r, g, b, a := row[px*4], row[px*4+1], row[px*4+2], row[px*4+3]
			c.writePixel(r, g, b, a)
		}

	case Indexed:
		for px := 0; px < c.header.Width; px++ {
			index := int(row[px])
			if index >= len(c.palette) {
				return fmt.Errorf("%w: index %d, palette has %d entries",
					ErrPaletteIndex, index, len(c.palette))
			}
			entry := c.palette[index]
			c.writePixel(entry[0], entry[1], entry[2], c.alpha[index])
		}
	}

	return nil
}

// writePixel emits one RGB pixel, blending partially transparent colors over
// a white background.
func (c *compositor) writePixel(r, g, b, a byte) {
	switch a {
	case 255:
		c.pix[c.off] = r
		c.pix[c.off+1] = g
		c.pix[c.off+2] = b
	case 0:
		c.pix[c.off] = 255
		c.pix[c.off+1] = 255
		c.pix[c.off+2] = 255
	default:
		c.pix[c.off] = blendOverWhite(r, a)
		c.pix[c.off+1] = blendOverWhite(g, a)
		c.pix[c.off+2] = blendOverWhite(b, a)
	}
	c.off += 3
}

// blendOverWhite blends one channel of a partially transparent pixel over a
// white background, rounding half-up on ties.
func blendOverWhite(channel, alpha byte) byte {
	return byte((int(channel)*int(alpha) + 255*(255-int(alpha)) + 127) / 255)
}

// finish applies the truecolor transparency key, if any, and returns the
// completed RGB buffer. The key substitution is a global pass replacing every
// pixel that exactly matches the declared color with white, so opaque pixels
// that happen to share that color are whitened as well.
func (c *compositor) finish() []byte {
	if c.key != nil {
		for base := 0; base < len(c.pix); base += 3 {
			if c.pix[base] == c.key[0] && c.pix[base+1] == c.key[1] && c.pix[base+2] == c.key[2] {
				c.pix[base] = 255
				c.pix[base+1] = 255
				c.pix[base+2] = 255
			}
		}
	}
	return c.pix
}
