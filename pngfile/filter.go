package pngfile

import "fmt"

// Scanline filter types from the PNG specification. Each reconstructed row
// begins with one of these in the decompressed stream.
const (
	filterNone    = 0
	filterSub     = 1
	filterUp      = 2
	filterAverage = 3
	filterPaeth   = 4
)

// defilterRow reverses one scanline filter in place. row holds the filtered
// payload for the current scanline (without the leading filter-type byte) and
// prev holds the fully reconstructed previous scanline, or all zeros for the
// first row. bpp is the number of bytes per pixel, which is the lookback
// distance for the Sub, Average, and Paeth filters. All additions wrap
// modulo 256.
func defilterRow(filterType byte, row, prev []byte, bpp int) error {
	switch filterType {
	case filterNone:
		// Row is already the reconstructed data.

	case filterSub:
		// Each byte is predicted from the byte bpp positions to its left.
		for i := bpp; i < len(row); i++ {
			row[i] += row[i-bpp]
		}

	case filterUp:
		// Each byte is predicted from the byte directly above it.
		for i := range row {
			row[i] += prev[i]
		}

	case filterAverage:
		// Each byte is predicted from the floor of the mean of its left and
		// up neighbors; missing neighbors count as zero.
		for i := range row {
			var left byte
			if i >= bpp {
				left = row[i-bpp]
			}
			row[i] += byte((int(left) + int(prev[i])) / 2)
		}

	case filterPaeth:
		// Each byte is predicted by the Paeth function of its left, up, and
		// upper-left neighbors; missing neighbors count as zero.
		for i := range row {
			var left, upLeft byte
			if i >= bpp {
				left = row[i-bpp]
				upLeft = prev[i-bpp]
			}
			row[i] += paethPredictor(left, prev[i], upLeft)
		}

	default:
		return fmt.Errorf("%w: %d", ErrFilterType, filterType)
	}

	return nil
}

// paethPredictor implements the Paeth predictor from the PNG specification.
// It selects the neighbor (left, above, or upper-left) closest to the linear
// prediction left+above-upperLeft, breaking ties in that order.
func paethPredictor(a, b, c byte) byte {
	// a = left, b = above, c = upper left
	p := int(a) + int(b) - int(c)
	pa := abs(p - int(a))
	pb := abs(p - int(b))
	pc := abs(p - int(c))

	if pa <= pb && pa <= pc {
		return a
	} else if pb <= pc {
		return b
	}
	return c
}

// abs returns the absolute value of an integer.
func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
