package document

import (
	"fmt"

	apperrors "github.com/pixelsmith/pixelsmith/internal/errors"
)

// PaletteSize is the fixed logical capacity of a palette.
const PaletteSize = 256

// Palette is an indexed table of up to 256 RGBA colors. Slots left unset
// read as transparent black.
type Palette struct {
	slots [PaletteSize]*Color
}

// PaletteEntry pairs a palette index with a color for bulk updates.
type PaletteEntry struct {
	Index int   `json:"index"`
	Color Color `json:"color"`
}

// NewPalette creates an empty palette with every slot unset.
func NewPalette() *Palette {
	return &Palette{}
}

// Color returns the color at index, or transparent black when the slot is
// unset.
func (p *Palette) Color(index int) (Color, error) {
	if !ValidPaletteIndex(index) {
		return Color{}, apperrors.New(apperrors.CodeOutOfRange, fmt.Sprintf("palette index %d out of range", index))
	}
	if p.slots[index] == nil {
		return TransparentBlack, nil
	}
	return *p.slots[index], nil
}

// IsSet reports whether the slot at index holds an explicit color.
func (p *Palette) IsSet(index int) bool {
	return ValidPaletteIndex(index) && p.slots[index] != nil
}

// Set stores a color at index after validating both.
func (p *Palette) Set(index int, c Color) error {
	if !ValidPaletteIndex(index) {
		return apperrors.New(apperrors.CodeOutOfRange, fmt.Sprintf("palette index %d out of range", index))
	}
	if !ValidColor(c) {
		return apperrors.New(apperrors.CodeInvalidArgument, fmt.Sprintf("color %v has channels outside 0-255", c))
	}
	stored := c
	p.slots[index] = &stored
	return nil
}

// SetBulk applies a batch of entries as a single validated unit: either
// every entry is valid and all are applied, or none are.
func (p *Palette) SetBulk(entries []PaletteEntry) error {
	for _, e := range entries {
		if !ValidPaletteIndex(e.Index) {
			return apperrors.New(apperrors.CodeOutOfRange, fmt.Sprintf("palette index %d out of range", e.Index))
		}
		if !ValidColor(e.Color) {
			return apperrors.New(apperrors.CodeInvalidArgument, fmt.Sprintf("color %v has channels outside 0-255", e.Color))
		}
	}
	for _, e := range entries {
		stored := e.Color
		p.slots[e.Index] = &stored
	}
	return nil
}

// Swap exchanges the slots at i and j, including their unset state.
func (p *Palette) Swap(i, j int) error {
	if !ValidPaletteIndex(i) || !ValidPaletteIndex(j) {
		return apperrors.New(apperrors.CodeOutOfRange, fmt.Sprintf("palette swap %d,%d out of range", i, j))
	}
	p.slots[i], p.slots[j] = p.slots[j], p.slots[i]
	return nil
}

// Data returns the ordered slot sequence with nil marking unset slots.
func (p *Palette) Data() []*Color {
	out := make([]*Color, PaletteSize)
	for i, slot := range p.slots {
		if slot != nil {
			c := *slot
			out[i] = &c
		}
	}
	return out
}

// PaletteFromData rebuilds a palette from an ordered slot sequence. Unset
// markers (nil entries) are preserved; at most PaletteSize entries are
// accepted and every set entry must be a valid color.
func PaletteFromData(data []*Color) (*Palette, error) {
	if len(data) > PaletteSize {
		return nil, apperrors.New(apperrors.CodeInvalidArgument, fmt.Sprintf("palette holds %d entries, capacity is %d", len(data), PaletteSize))
	}
	p := NewPalette()
	for i, slot := range data {
		if slot == nil {
			continue
		}
		if !ValidColor(*slot) {
			return nil, apperrors.New(apperrors.CodeInvalidArgument, fmt.Sprintf("palette entry %d has channels outside 0-255", i))
		}
		c := *slot
		p.slots[i] = &c
	}
	return p, nil
}

// clone deep-copies the palette.
func (p *Palette) clone() *Palette {
	out := NewPalette()
	for i, slot := range p.slots {
		if slot != nil {
			c := *slot
			out.slots[i] = &c
		}
	}
	return out
}
