package document

import (
	"testing"

	apperrors "github.com/pixelsmith/pixelsmith/internal/errors"
)

// TestPackCelKeyRoundTrips ensures packed keys parse back exactly.
func TestPackCelKeyRoundTrips(t *testing.T) {
	cases := []struct {
		layerID    int
		frameIndex int
	}{
		{1, 0},
		{42, 17},
		{0, 0},
		{-3, 5},
	}
	for _, tc := range cases {
		key := PackCelKey(tc.layerID, tc.frameIndex)
		layerID, frameIndex, ok := ParseCelKey(key)
		if !ok {
			t.Fatalf("key %q did not parse", key)
		}
		if layerID != tc.layerID || frameIndex != tc.frameIndex {
			t.Fatalf("key %q parsed to (%d,%d), want (%d,%d)", key, layerID, frameIndex, tc.layerID, tc.frameIndex)
		}
	}
}

// TestParseCelKeyRejectsMalformedKeys covers every rejected key shape.
func TestParseCelKeyRejectsMalformedKeys(t *testing.T) {
	for _, key := range []string{"", "5", "5/", "/3", "1/2/3", "a/2", "1/b", "1 /2"} {
		if _, _, ok := ParseCelKey(key); ok {
			t.Fatalf("key %q should not parse", key)
		}
	}
}

// TestCelTypeRequiresExactlyOnePayload rejects empty and ambiguous cels.
func TestCelTypeRequiresExactlyOnePayload(t *testing.T) {
	if _, err := (Cel{}).Type(); !apperrors.IsCode(err, apperrors.CodeInvalidArgument) {
		t.Fatalf("empty cel: expected INVALID_ARGUMENT, got %v", err)
	}

	ambiguous := Cel{
		Image:   &ImageCel{Pixels: [][]int{{0}}},
		Tilemap: &TilemapCel{Tiles: [][]int{{-1}}},
	}
	if _, err := ambiguous.Type(); !apperrors.IsCode(err, apperrors.CodeInvalidArgument) {
		t.Fatalf("ambiguous cel: expected INVALID_ARGUMENT, got %v", err)
	}

	typ, err := (Cel{Link: "1/0"}).Type()
	if err != nil {
		t.Fatalf("link cel: %v", err)
	}
	if typ != CelLink {
		t.Fatalf("link cel typed as %s", typ)
	}
}

// TestValidateCelChecksPayloadContent covers palette-range and link-key
// validation inside a payload.
func TestValidateCelChecksPayloadContent(t *testing.T) {
	bad := Cel{Image: &ImageCel{Pixels: [][]int{{0, 300}}}}
	if err := validateCel(bad); !apperrors.IsCode(err, apperrors.CodeOutOfRange) {
		t.Fatalf("oversized pixel index: expected OUT_OF_RANGE, got %v", err)
	}
	if err := validateCel(Cel{Link: "nope"}); !apperrors.IsCode(err, apperrors.CodeInvalidArgument) {
		t.Fatalf("malformed link: expected INVALID_ARGUMENT, got %v", err)
	}
	both := Shape{Name: "hit", Rect: &Rect{Width: 2, Height: 2}, Polygon: []Vertex{{0, 0}}}
	if err := validateCel(Cel{Shape: &ShapeCel{Shapes: []Shape{both}}}); !apperrors.IsCode(err, apperrors.CodeInvalidArgument) {
		t.Fatalf("ambiguous shape: expected INVALID_ARGUMENT, got %v", err)
	}
}

// TestValidateCelRejectsRaggedGrids requires every pixel and tile row to
// have the same length.
func TestValidateCelRejectsRaggedGrids(t *testing.T) {
	ragged := Cel{Image: &ImageCel{Pixels: [][]int{{0, 0, 0}, {0}, {0, 0, 0}}}}
	if err := validateCel(ragged); !apperrors.IsCode(err, apperrors.CodeInvalidArgument) {
		t.Fatalf("ragged pixel grid: expected INVALID_ARGUMENT, got %v", err)
	}

	raggedTiles := Cel{Tilemap: &TilemapCel{Tiles: [][]int{{-1, 2}, {-1}}}}
	if err := validateCel(raggedTiles); !apperrors.IsCode(err, apperrors.CodeInvalidArgument) {
		t.Fatalf("ragged tile grid: expected INVALID_ARGUMENT, got %v", err)
	}

	rect := Cel{Image: &ImageCel{Pixels: [][]int{{0, 0}, {0, 0}}}}
	if err := validateCel(rect); err != nil {
		t.Fatalf("rectangular grid rejected: %v", err)
	}
}
