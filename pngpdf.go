// Package pngpdf converts PNG images into compact single-page PDF documents
// without any external image or PDF dependency.
//
// Basic usage:
//
//	result, err := pngpdf.Open("figure.png").Run()
//	if err != nil {
//	    // handle error
//	}
//	fmt.Printf("%s: %d -> %d bytes\n", result.Source, result.OriginalSize, result.ConvertedSize)
//
// With options:
//
//	result, err := pngpdf.Open("figure.png").
//	    DryRun().
//	    Run()
//
// For callers that already hold the PNG bytes, [Convert] performs the raw
// conversion without touching the filesystem.
//
// Only 8-bit, non-interlaced truecolor, indexed-color, and
// truecolor-with-alpha PNGs are supported; this covers the figures the tool
// was built for. The lower-level pngfile and pdfwriter packages are also
// available.
package pngpdf

import (
	"fmt"

	"github.com/tsawler/pngpdf/logging"
	"github.com/tsawler/pngpdf/pdfwriter"
	"github.com/tsawler/pngpdf/pngfile"
)

// Result holds the outcome of converting one PNG byte stream.
type Result struct {
	// PDF is the complete output document.
	PDF []byte
	// Width and Height are the image dimensions in pixels, which are also
	// the page dimensions in PDF units.
	Width  int
	Height int
}

// Convert decodes a PNG from data and builds a minimal single-page PDF
// embedding it. The conversion is deterministic and shares no state with
// other calls, so separate conversions may run concurrently.
func Convert(data []byte) (*Result, error) {
	img, err := pngfile.Decode(data)
	if err != nil {
		return nil, err
	}

	pdf, err := pdfwriter.Build(img.Pix, img.Width, img.Height)
	if err != nil {
		return nil, fmt.Errorf("building document: %w", err)
	}

	logging.Logger().Debug("converted image",
		"width", img.Width, "height", img.Height,
		"pngBytes", len(data), "pdfBytes", len(pdf))

	return &Result{PDF: pdf, Width: img.Width, Height: img.Height}, nil
}
