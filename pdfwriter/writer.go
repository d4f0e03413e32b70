package pdfwriter

import (
	"bytes"
	"compress/zlib"
	"fmt"
	"io"
	"sync"
)

// header is the fixed file preamble: the version line followed by a comment
// of high bytes marking the file as binary.
var header = []byte("%PDF-1.4\n%\xff\xff\xff\xff\n")

// zlibWriters pools zlib writers so parallel conversions amortize the
// allocation of the compressor's internal state.
var zlibWriters = sync.Pool{
	New: func() any {
		return zlib.NewWriter(io.Discard)
	},
}

// Build assembles a minimal single-page PDF embedding the given RGB pixel
// buffer. rgb must hold exactly width*height*3 bytes of row-major 8-bit RGB
// samples, as produced by pngfile.Decode; any other length is an internal
// invariant violation and fails.
func Build(rgb []byte, width, height int) ([]byte, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("pdfwriter: invalid image size %dx%d", width, height)
	}
	if len(rgb) != width*height*3 {
		return nil, fmt.Errorf("pdfwriter: pixel buffer is %d bytes, want %d for %dx%d RGB",
			len(rgb), width*height*3, width, height)
	}

	imageStream, err := compress(rgb)
	if err != nil {
		return nil, fmt.Errorf("pdfwriter: compressing image data: %w", err)
	}
	contents := []byte(fmt.Sprintf("q %d 0 0 %d 0 0 cm /Im0 Do Q", width, height))

	// The object graph is fixed; object numbers are 1-based positions in
	// this slice.
	objects := [][]byte{
		[]byte("<< /Type /Catalog /Pages 2 0 R >>"),
		[]byte("<< /Type /Pages /Kids [3 0 R] /Count 1 >>"),
		pageObject(width, height),
		imageObject(width, height, imageStream),
		streamObject(fmt.Sprintf("<< /Length %d >>", len(contents)), contents),
	}

	var out bytes.Buffer
	out.Grow(len(header) + len(imageStream) + 1024)
	out.Write(header)

	// offsets[i] records where the "<i+1> 0 obj" marker begins; the xref
	// table below must reproduce these positions exactly.
	offsets := make([]int, 0, len(objects))
	for i, body := range objects {
		offsets = append(offsets, out.Len())
		fmt.Fprintf(&out, "%d 0 obj\n", i+1)
		out.Write(body)
		out.WriteString("\nendobj\n")
	}

	xrefStart := out.Len()
	fmt.Fprintf(&out, "xref\n0 %d\n", len(objects)+1)
	out.WriteString("0000000000 65535 f \n")
	for _, offset := range offsets {
		fmt.Fprintf(&out, "%010d 00000 n \n", offset)
	}
	fmt.Fprintf(&out, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF",
		len(objects)+1, xrefStart)

	return out.Bytes(), nil
}

// pageObject builds the page dictionary: media box sized one unit per pixel,
// the image as XObject resource Im0, and object 5 as the content stream.
func pageObject(width, height int) []byte {
	return []byte(fmt.Sprintf(
		"<< /Type /Page /Parent 2 0 R /Resources << /XObject << /Im0 4 0 R >> /ProcSet [/PDF /ImageC] >> /MediaBox [0 0 %d %d] /Contents 5 0 R >>",
		width, height))
}

// imageObject builds the image XObject holding the compressed pixel stream.
func imageObject(width, height int, stream []byte) []byte {
	dict := fmt.Sprintf(
		"<< /Type /XObject /Subtype /Image /Width %d /Height %d /ColorSpace /DeviceRGB /BitsPerComponent 8 /Filter /FlateDecode /Length %d >>",
		width, height, len(stream))
	return streamObject(dict, stream)
}

// streamObject frames a stream body with its dictionary and the literal
// stream/endstream markers.
func streamObject(dict string, body []byte) []byte {
	var buf bytes.Buffer
	buf.Grow(len(dict) + len(body) + 20)
	buf.WriteString(dict)
	buf.WriteString("\nstream\n")
	buf.Write(body)
	buf.WriteString("\nendstream")
	return buf.Bytes()
}

// compress deflates data with a pooled zlib writer.
func compress(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	buf.Grow(len(data) / 4)

	w := zlibWriters.Get().(*zlib.Writer)
	defer zlibWriters.Put(w)
	w.Reset(&buf)

	if _, err := w.Write(data); err != nil {
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
