// Package document holds the pixel-art document model: palette, layers,
// frames, cels, tags, and the Asset aggregate that owns them. All mutation
// goes through Asset methods so the command engine can rely on captured
// snapshots staying unshared.
package document

// Color is an RGBA 4-tuple with integer channels in 0-255.
type Color [4]int

// TransparentBlack is the color an unset palette slot reads as.
var TransparentBlack = Color{0, 0, 0, 0}

// ValidColor reports whether every channel is an integer in 0-255.
func ValidColor(c Color) bool {
	for _, ch := range c {
		if ch < 0 || ch > 255 {
			return false
		}
	}
	return true
}

// ValidPaletteIndex reports whether index addresses one of the 256 palette
// slots.
func ValidPaletteIndex(index int) bool {
	return index >= 0 && index < PaletteSize
}
