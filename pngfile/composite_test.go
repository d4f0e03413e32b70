package pngfile

import (
	"bytes"
	"errors"
	"testing"
)

// TestBlendOverWhite verifies the half-up rounding of the blend, including
// the literal case channel=200, alpha=128 -> 227.
func TestBlendOverWhite(t *testing.T) {
	tests := []struct {
		channel, alpha, want byte
	}{
		{200, 128, 227}, // (200*128 + 255*127 + 127) / 255 = 227
		{0, 128, 127},
		{255, 128, 255},
		{200, 255, 200},
		{100, 1, 254}, // nearly transparent is nearly white
	}

	for _, tt := range tests {
		if got := blendOverWhite(tt.channel, tt.alpha); got != tt.want {
			t.Errorf("blendOverWhite(%d, %d) = %d, want %d", tt.channel, tt.alpha, got, tt.want)
		}
	}
}

// TestCompositeTruecolor verifies that 3-channel rows copy through unchanged.
func TestCompositeTruecolor(t *testing.T) {
	raw := &rawImage{header: Header{Width: 2, Height: 1, ColorType: Truecolor}}
	comp := newCompositor(raw)

	if err := comp.writeRow([]byte{1, 2, 3, 4, 5, 6}); err != nil {
		t.Fatalf("writeRow failed: %v", err)
	}

	if got := comp.finish(); !bytes.Equal(got, []byte{1, 2, 3, 4, 5, 6}) {
		t.Errorf("got %v, want [1 2 3 4 5 6]", got)
	}
}

// TestCompositeTruecolorAlpha verifies the opaque fast path, the transparent
// fast path, and the blend over white.
func TestCompositeTruecolorAlpha(t *testing.T) {
	raw := &rawImage{header: Header{Width: 3, Height: 1, ColorType: TruecolorAlpha}}
	comp := newCompositor(raw)

	row := []byte{
		10, 20, 30, 255, // opaque: copied
		1, 2, 3, 0, // transparent: white
		200, 100, 50, 128, // blended over white
	}
	if err := comp.writeRow(row); err != nil {
		t.Fatalf("writeRow failed: %v", err)
	}

	want := []byte{
		10, 20, 30,
		255, 255, 255,
		227, 177, 152,
	}
	if got := comp.finish(); !bytes.Equal(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

// TestCompositeIndexed verifies palette resolution with a transparency map:
// index 0 stays opaque black, index 1 has alpha 0 and becomes white.
func TestCompositeIndexed(t *testing.T) {
	raw := &rawImage{
		header:  Header{Width: 2, Height: 1, ColorType: Indexed},
		palette: [][3]byte{{0, 0, 0}, {255, 255, 255}},
		trns:    []byte{255, 0},
	}
	comp := newCompositor(raw)

	if err := comp.writeRow([]byte{0, 1}); err != nil {
		t.Fatalf("writeRow failed: %v", err)
	}

	want := []byte{0, 0, 0, 255, 255, 255}
	if got := comp.finish(); !bytes.Equal(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

// TestCompositeIndexedDefaultsOpaque verifies that palette entries without a
// transparency value stay fully opaque.
func TestCompositeIndexedDefaultsOpaque(t *testing.T) {
	raw := &rawImage{
		header:  Header{Width: 2, Height: 1, ColorType: Indexed},
		palette: [][3]byte{{10, 20, 30}, {40, 50, 60}},
		trns:    []byte{0}, // only entry 0 listed
	}
	comp := newCompositor(raw)

	if err := comp.writeRow([]byte{0, 1}); err != nil {
		t.Fatalf("writeRow failed: %v", err)
	}

	want := []byte{255, 255, 255, 40, 50, 60}
	if got := comp.finish(); !bytes.Equal(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

// TestCompositeIndexedOutOfRange verifies that a palette index beyond the
// palette fails with ErrPaletteIndex.
func TestCompositeIndexedOutOfRange(t *testing.T) {
	raw := &rawImage{
		header:  Header{Width: 1, Height: 1, ColorType: Indexed},
		palette: [][3]byte{{0, 0, 0}},
	}
	comp := newCompositor(raw)

	err := comp.writeRow([]byte{1})
	if !errors.Is(err, ErrPaletteIndex) {
		t.Errorf("got %v, want ErrPaletteIndex", err)
	}
}

// TestCompositeColorKey verifies the truecolor post-pass: pixels exactly
// matching the declared transparent color become white, even when the match
// comes from an opaque pixel that legitimately has that color.
func TestCompositeColorKey(t *testing.T) {
	raw := &rawImage{
		header: Header{Width: 3, Height: 1, ColorType: Truecolor},
		trns:   []byte{10, 20, 30},
	}
	comp := newCompositor(raw)

	if err := comp.writeRow([]byte{10, 20, 30, 10, 20, 31, 10, 20, 30}); err != nil {
		t.Fatalf("writeRow failed: %v", err)
	}

	want := []byte{255, 255, 255, 10, 20, 31, 255, 255, 255}
	if got := comp.finish(); !bytes.Equal(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

// TestCompositeColorKeyOtherModes verifies that the key substitution never
// runs for non-truecolor images.
func TestCompositeColorKeyOtherModes(t *testing.T) {
	raw := &rawImage{
		header:  Header{Width: 1, Height: 1, ColorType: Indexed},
		palette: [][3]byte{{10, 20, 30}},
		trns:    []byte{255},
	}
	comp := newCompositor(raw)

	if err := comp.writeRow([]byte{0}); err != nil {
		t.Fatalf("writeRow failed: %v", err)
	}

	if got := comp.finish(); !bytes.Equal(got, []byte{10, 20, 30}) {
		t.Errorf("got %v, want [10 20 30]", got)
	}
}
