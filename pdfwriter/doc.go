// Package pdfwriter serializes flat RGB pixel data into a minimal
// single-page PDF document.
//
// The document always contains the same five objects: a catalog, a pages
// node, one page, one image XObject holding the Flate-compressed pixels, and
// a content stream that paints the image across the full page at one PDF
// unit per pixel:
//
//	pdf, err := pdfwriter.Build(rgb, width, height)
//
// The output is a complete classic-xref PDF 1.4 file: header, numbered
// objects, cross-reference table, trailer, and startxref. Every offset in
// the cross-reference table points at the first byte of the corresponding
// "<n> 0 obj" marker.
package pdfwriter
