package document

import (
	"fmt"
	"strings"

	apperrors "github.com/pixelsmith/pixelsmith/internal/errors"
)

// LayerType discriminates the layer variants.
type LayerType string

const (
	// LayerImage holds palette-indexed pixel cels.
	LayerImage LayerType = "image"
	// LayerTilemap holds tile-index grid cels.
	LayerTilemap LayerType = "tilemap"
	// LayerShape holds vector shape cels and carries collision metadata.
	LayerShape LayerType = "shape"
	// LayerGroup groups other layers and holds no cels of its own.
	LayerGroup LayerType = "group"
)

// ValidLayerType reports whether t names a known layer variant.
func ValidLayerType(t LayerType) bool {
	switch t {
	case LayerImage, LayerTilemap, LayerShape, LayerGroup:
		return true
	default:
		return false
	}
}

// Layer is one entry in an asset's ordered layer list.
type Layer struct {
	ID       int       `json:"id"`
	Name     string    `json:"name"`
	Type     LayerType `json:"type"`
	ParentID *int      `json:"parent_id,omitempty"`
	Visible  bool      `json:"visible"`
	Opacity  int       `json:"opacity"`

	// Shape layers only.
	Role         string `json:"role,omitempty"`
	PhysicsLayer int    `json:"physics_layer,omitempty"`
}

// AddLayerInput describes a layer to add to an asset.
type AddLayerInput struct {
	Name         string
	Type         LayerType
	ParentID     *int
	Opacity      *int // defaults to 255
	Role         string
	PhysicsLayer int
}

// NormalizeAddLayerInput trims and validates layer input.
func NormalizeAddLayerInput(input AddLayerInput) (AddLayerInput, error) {
	input.Name = strings.TrimSpace(input.Name)
	if input.Name == "" {
		return AddLayerInput{}, apperrors.New(apperrors.CodeInvalidArgument, "layer name is required")
	}
	if !ValidLayerType(input.Type) {
		return AddLayerInput{}, apperrors.New(apperrors.CodeInvalidArgument, fmt.Sprintf("unknown layer type %q", input.Type))
	}
	if input.Opacity != nil && (*input.Opacity < 0 || *input.Opacity > 255) {
		return AddLayerInput{}, apperrors.New(apperrors.CodeOutOfRange, fmt.Sprintf("layer opacity %d out of range", *input.Opacity))
	}
	return input, nil
}

// validateLayer checks a rehydrated layer record.
func validateLayer(l Layer) error {
	if strings.TrimSpace(l.Name) == "" {
		return apperrors.New(apperrors.CodeInvalidArgument, fmt.Sprintf("layer %d has no name", l.ID))
	}
	if !ValidLayerType(l.Type) {
		return apperrors.New(apperrors.CodeInvalidArgument, fmt.Sprintf("layer %d has unknown type %q", l.ID, l.Type))
	}
	if l.Opacity < 0 || l.Opacity > 255 {
		return apperrors.New(apperrors.CodeOutOfRange, fmt.Sprintf("layer %d opacity %d out of range", l.ID, l.Opacity))
	}
	return nil
}

func copyLayer(l Layer) Layer {
	out := l
	if l.ParentID != nil {
		parent := *l.ParentID
		out.ParentID = &parent
	}
	return out
}

func copyLayers(layers []Layer) []Layer {
	out := make([]Layer, len(layers))
	for i, l := range layers {
		out[i] = copyLayer(l)
	}
	return out
}
