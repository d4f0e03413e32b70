package pngpdf

import (
	"fmt"
	"os"
	"path/filepath"
)

// Converter provides a fluent interface for converting a PNG file on disk.
// Each configuration method returns a new Converter instance, making it safe
// to share a partially configured Converter between goroutines.
type Converter struct {
	filename string
	options  ConvertOptions
}

// Open prepares a conversion of the named PNG file. Nothing is read until
// the terminal [Converter.Run] call.
//
// Example:
//
//	result, err := pngpdf.Open("figure.png").Run()
func Open(filename string) *Converter {
	return &Converter{
		filename: filename,
		options:  defaultOptions(),
	}
}

// clone creates a copy of the Converter with a copy of its options, so chain
// methods never mutate the receiver.
func (c *Converter) clone() *Converter {
	return &Converter{
		filename: c.filename,
		options:  c.options.clone(),
	}
}

// DryRun converts without writing the PDF or modifying the source file. The
// returned FileResult still reports the converted size.
func (c *Converter) DryRun() *Converter {
	next := c.clone()
	next.options.dryRun = true
	return next
}

// RemoveOriginal deletes the source PNG after the PDF has been written
// successfully. It has no effect during a dry run.
func (c *Converter) RemoveOriginal() *Converter {
	next := c.clone()
	next.options.removeOriginal = true
	return next
}

// FileResult reports the outcome of converting one file.
type FileResult struct {
	// Source is the input PNG path.
	Source string
	// Output is the PDF path the conversion targets, whether or not it was
	// written.
	Output string
	// OriginalSize and ConvertedSize are the byte sizes of the source PNG
	// and the produced PDF.
	OriginalSize  int64
	ConvertedSize int64
	// Applied reports whether the PDF was actually written.
	Applied bool
}

// Run performs the conversion. In the default mode it writes the PDF next to
// the source file, replacing the .png suffix with .pdf. A dry run skips all
// filesystem writes. The source file is only ever deleted after the PDF has
// been written.
func (c *Converter) Run() (*FileResult, error) {
	data, err := os.ReadFile(c.filename)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", c.filename, err)
	}

	result, err := Convert(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", c.filename, err)
	}

	out := &FileResult{
		Source:        c.filename,
		Output:        pdfPath(c.filename),
		OriginalSize:  int64(len(data)),
		ConvertedSize: int64(len(result.PDF)),
	}

	if c.options.dryRun {
		return out, nil
	}

	if err := os.WriteFile(out.Output, result.PDF, 0644); err != nil {
		return nil, fmt.Errorf("writing %s: %w", out.Output, err)
	}
	out.Applied = true

	if c.options.removeOriginal {
		if err := os.Remove(c.filename); err != nil {
			return nil, fmt.Errorf("removing %s: %w", c.filename, err)
		}
	}

	return out, nil
}

// pdfPath replaces the file's extension with .pdf.
func pdfPath(filename string) string {
	ext := filepath.Ext(filename)
	return filename[:len(filename)-len(ext)] + ".pdf"
}
