package raster

import "testing"

func pixel(r, g, b, a uint8) []byte {
	return []byte{r, g, b, a}
}

func flat(pixels ...[]byte) []byte {
	var out []byte
	for _, p := range pixels {
		out = append(out, p...)
	}
	return out
}

// TestQuantizeEmptyInput yields an empty palette and index sequence.
func TestQuantizeEmptyInput(t *testing.T) {
	result := Quantize(nil, 16)
	if len(result.Palette) != 0 || len(result.Indices) != 0 {
		t.Fatalf("expected empty result, got %d colors and %d indices", len(result.Palette), len(result.Indices))
	}
}

// TestQuantizeExactPalette assigns one slot per distinct color in
// first-occurrence order when the distinct count fits the target.
func TestQuantizeExactPalette(t *testing.T) {
	red := pixel(255, 0, 0, 255)
	green := pixel(0, 255, 0, 255)
	blue := pixel(0, 0, 255, 255)
	result := Quantize(flat(red, green, red, blue, green, red), 8)

	if len(result.Palette) != 3 {
		t.Fatalf("expected 3 palette entries, got %d", len(result.Palette))
	}
	wantPalette := []RGBA{{255, 0, 0, 255}, {0, 255, 0, 255}, {0, 0, 255, 255}}
	for i, want := range wantPalette {
		if result.Palette[i] != want {
			t.Fatalf("palette[%d] = %v, want %v", i, result.Palette[i], want)
		}
	}
	wantIndices := []int{0, 1, 0, 2, 1, 0}
	for i, want := range wantIndices {
		if result.Indices[i] != want {
			t.Fatalf("indices[%d] = %d, want %d", i, result.Indices[i], want)
		}
	}
}

// TestQuantizeTransparentPixelGetsIndexZero reserves palette slot 0 for the
// canonical transparent color whenever any transparent pixel exists.
func TestQuantizeTransparentPixelGetsIndexZero(t *testing.T) {
	opaque := pixel(200, 10, 10, 255)
	clear := pixel(90, 90, 90, 0)
	faint := pixel(30, 30, 30, AlphaThreshold)
	result := Quantize(flat(opaque, clear, faint), 8)

	if result.Palette[0] != (RGBA{0, 0, 0, 0}) {
		t.Fatalf("palette[0] = %v, want canonical transparent", result.Palette[0])
	}
	if result.Indices[1] != 0 || result.Indices[2] != 0 {
		t.Fatalf("transparent pixels mapped to %d and %d, want 0", result.Indices[1], result.Indices[2])
	}
	if result.Indices[0] == 0 {
		t.Fatalf("opaque pixel must not map to the transparent slot")
	}
}

// TestQuantizeMedianCutReachesTarget reduces a wide color set to exactly the
// requested palette size with every pixel mapped in range.
func TestQuantizeMedianCutReachesTarget(t *testing.T) {
	var input []byte
	for i := 0; i < 64; i++ {
		input = append(input, pixel(uint8(i*4), uint8(255-i*4), uint8(i*2), 255)...)
	}
	const target = 4
	result := Quantize(input, target)

	if len(result.Palette) != target {
		t.Fatalf("expected %d palette entries, got %d", target, len(result.Palette))
	}
	if len(result.Indices) != 64 {
		t.Fatalf("expected 64 indices, got %d", len(result.Indices))
	}
	for i, idx := range result.Indices {
		if idx < 0 || idx >= target {
			t.Fatalf("indices[%d] = %d out of range", i, idx)
		}
	}
}

// TestQuantizeRepeatedColorsShareIndex maps equal input pixels to the same
// palette index regardless of position.
func TestQuantizeRepeatedColorsShareIndex(t *testing.T) {
	a := pixel(10, 20, 30, 255)
	b := pixel(240, 220, 200, 255)
	result := Quantize(flat(a, b, a, b, a), 2)
	if result.Indices[0] != result.Indices[2] || result.Indices[2] != result.Indices[4] {
		t.Fatalf("repeated color mapped to differing indices: %v", result.Indices)
	}
	if result.Indices[0] == result.Indices[1] {
		t.Fatalf("distinct colors collapsed to one index")
	}
}
