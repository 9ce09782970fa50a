package document

import (
	"fmt"
	"strconv"
	"strings"

	apperrors "github.com/pixelsmith/pixelsmith/internal/errors"
)

// CelType discriminates the cel payload variants.
type CelType string

const (
	// CelImage is a palette-indexed pixel grid with a 2D offset.
	CelImage CelType = "image"
	// CelTilemap is a tile-index grid where -1 marks an empty cell.
	CelTilemap CelType = "tilemap"
	// CelShape is a list of named rects and polygons.
	CelShape CelType = "shape"
	// CelLink references another cel by key.
	CelLink CelType = "link"
)

// ImageCel is a pixel grid of palette indices plus its placement offset.
type ImageCel struct {
	Pixels  [][]int `json:"pixels"`
	OffsetX int     `json:"offset_x"`
	OffsetY int     `json:"offset_y"`
}

// TilemapCel is a grid of tile indices; -1 marks an empty cell.
type TilemapCel struct {
	Tiles [][]int `json:"tiles"`
}

// ShapeCel is a list of vector shapes.
type ShapeCel struct {
	Shapes []Shape `json:"shapes"`
}

// Cel is the content at one (layer, frame) intersection. Exactly one
// payload field is set; decoders reject ambiguous or empty cels.
type Cel struct {
	Image   *ImageCel   `json:"image,omitempty"`
	Tilemap *TilemapCel `json:"tilemap,omitempty"`
	Shape   *ShapeCel   `json:"shape,omitempty"`
	Link    string      `json:"link,omitempty"`
}

// PackCelKey builds the "<layerID>/<frameIndex>" key addressing a cel.
func PackCelKey(layerID, frameIndex int) string {
	return strconv.Itoa(layerID) + "/" + strconv.Itoa(frameIndex)
}

// ParseCelKey splits a cel key back into its layer id and frame index.
// It requires exactly two integer-parsable segments and reports ok=false
// for any other shape.
func ParseCelKey(key string) (layerID, frameIndex int, ok bool) {
	parts := strings.Split(key, "/")
	if len(parts) != 2 {
		return 0, 0, false
	}
	layerID, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, false
	}
	frameIndex, err = strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, false
	}
	return layerID, frameIndex, true
}

// Type returns the cel's payload variant, failing when zero or more than
// one payload is present.
func (c Cel) Type() (CelType, error) {
	var found []CelType
	if c.Image != nil {
		found = append(found, CelImage)
	}
	if c.Tilemap != nil {
		found = append(found, CelTilemap)
	}
	if c.Shape != nil {
		found = append(found, CelShape)
	}
	if c.Link != "" {
		found = append(found, CelLink)
	}
	switch len(found) {
	case 1:
		return found[0], nil
	case 0:
		return "", apperrors.New(apperrors.CodeInvalidArgument, "cel carries no payload")
	default:
		return "", apperrors.New(apperrors.CodeInvalidArgument, fmt.Sprintf("cel carries %d payloads, want exactly one", len(found)))
	}
}

// validateCel checks payload exclusivity plus the payload's own shape.
func validateCel(c Cel) error {
	typ, err := c.Type()
	if err != nil {
		return err
	}
	switch typ {
	case CelImage:
		if err := rectangularGrid(c.Image.Pixels); err != nil {
			return err
		}
		for _, row := range c.Image.Pixels {
			for _, index := range row {
				if !ValidPaletteIndex(index) {
					return apperrors.New(apperrors.CodeOutOfRange, fmt.Sprintf("pixel index %d out of palette range", index))
				}
			}
		}
	case CelTilemap:
		if err := rectangularGrid(c.Tilemap.Tiles); err != nil {
			return err
		}
	case CelShape:
		for _, shape := range c.Shape.Shapes {
			if err := validateShape(shape); err != nil {
				return err
			}
		}
	case CelLink:
		if _, _, ok := ParseCelKey(c.Link); !ok {
			return apperrors.New(apperrors.CodeInvalidArgument, fmt.Sprintf("link cel key %q is malformed", c.Link))
		}
	}
	return nil
}

// rectangularGrid rejects ragged grids. The paint verbs index every row by
// the width of the first one.
func rectangularGrid(grid [][]int) error {
	if len(grid) == 0 {
		return nil
	}
	width := len(grid[0])
	for i, row := range grid {
		if len(row) != width {
			return apperrors.New(apperrors.CodeInvalidArgument,
				fmt.Sprintf("grid row %d has %d cells, want %d", i, len(row), width))
		}
	}
	return nil
}

// celMatchesLayer reports whether the payload variant is acceptable on the
// given layer type. Link cels are accepted on any cel-bearing layer since
// they defer to their target.
func celMatchesLayer(typ CelType, layer LayerType) bool {
	switch typ {
	case CelLink:
		return layer != LayerGroup
	case CelImage:
		return layer == LayerImage
	case CelTilemap:
		return layer == LayerTilemap
	case CelShape:
		return layer == LayerShape
	default:
		return false
	}
}

func copyIntGrid(grid [][]int) [][]int {
	if grid == nil {
		return nil
	}
	out := make([][]int, len(grid))
	for i, row := range grid {
		out[i] = make([]int, len(row))
		copy(out[i], row)
	}
	return out
}

func copyCel(c Cel) Cel {
	out := c
	if c.Image != nil {
		img := *c.Image
		img.Pixels = copyIntGrid(c.Image.Pixels)
		out.Image = &img
	}
	if c.Tilemap != nil {
		tm := *c.Tilemap
		tm.Tiles = copyIntGrid(c.Tilemap.Tiles)
		out.Tilemap = &tm
	}
	if c.Shape != nil {
		sc := ShapeCel{Shapes: make([]Shape, len(c.Shape.Shapes))}
		for i, s := range c.Shape.Shapes {
			sc.Shapes[i] = copyShape(s)
		}
		out.Shape = &sc
	}
	return out
}

func copyCels(cels map[string]Cel) map[string]Cel {
	out := make(map[string]Cel, len(cels))
	for key, cel := range cels {
		out[key] = copyCel(cel)
	}
	return out
}
