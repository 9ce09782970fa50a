package document

import (
	"fmt"

	apperrors "github.com/pixelsmith/pixelsmith/internal/errors"
)

// AssetData is the full structural snapshot of an asset, shaped the way
// the on-disk envelope stores it. Palette entries are positional with nil
// marking an unset slot.
type AssetData struct {
	Name        string         `json:"name"`
	Width       int            `json:"width"`
	Height      int            `json:"height"`
	Perspective string         `json:"perspective,omitempty"`
	Palette     []*Color       `json:"palette"`
	Layers      []Layer        `json:"layers"`
	Frames      []Frame        `json:"frames"`
	Cels        map[string]Cel `json:"cels"`
	Tags        []Tag          `json:"tags"`
}

// Data returns the document's full structural snapshot as a deep copy.
// Serializing it does not clear the dirty flag; callers on the save path
// pair it with ClearDirty.
func (a *Asset) Data() AssetData {
	return AssetData{
		Name:        a.name,
		Width:       a.width,
		Height:      a.height,
		Perspective: a.perspective,
		Palette:     a.palette.Data(),
		Layers:      copyLayers(a.layers),
		Frames:      copyFrames(a.frames),
		Cels:        copyCels(a.cels),
		Tags:        copyTags(a.tags),
	}
}

// FromData rehydrates an asset from structural data, validating every
// entity, cel key, and cross-reference. The result starts clean.
func FromData(data AssetData) (*Asset, error) {
	if data.Name == "" {
		return nil, apperrors.New(apperrors.CodeInvalidArgument, "asset name is required")
	}
	if data.Width <= 0 || data.Height <= 0 {
		return nil, apperrors.New(apperrors.CodeInvalidArgument, fmt.Sprintf("asset size %dx%d must be positive", data.Width, data.Height))
	}

	palette, err := PaletteFromData(data.Palette)
	if err != nil {
		return nil, err
	}

	a := &Asset{
		name:        data.Name,
		width:       data.Width,
		height:      data.Height,
		perspective: data.Perspective,
		palette:     palette,
		cels:        make(map[string]Cel, len(data.Cels)),
		nextLayerID: 1,
	}

	seenLayers := make(map[int]bool, len(data.Layers))
	for _, layer := range data.Layers {
		if err := validateLayer(layer); err != nil {
			return nil, err
		}
		if seenLayers[layer.ID] {
			return nil, apperrors.New(apperrors.CodeInvalidArgument, fmt.Sprintf("duplicate layer id %d", layer.ID))
		}
		seenLayers[layer.ID] = true
		if layer.ID >= a.nextLayerID {
			a.nextLayerID = layer.ID + 1
		}
		a.layers = append(a.layers, copyLayer(layer))
	}

	if len(data.Frames) == 0 {
		return nil, apperrors.New(apperrors.CodeInvalidArgument, "asset needs at least one frame")
	}
	for i, frame := range data.Frames {
		if frame.Index != i {
			return nil, apperrors.New(apperrors.CodeInvalidArgument, fmt.Sprintf("frame at position %d carries index %d", i, frame.Index))
		}
		if frame.DurationMS < 0 {
			return nil, apperrors.New(apperrors.CodeInvalidArgument, fmt.Sprintf("frame %d duration %dms must not be negative", i, frame.DurationMS))
		}
		a.frames = append(a.frames, frame)
	}

	for key, cel := range data.Cels {
		layerID, frameIndex, ok := ParseCelKey(key)
		if !ok || PackCelKey(layerID, frameIndex) != key {
			return nil, apperrors.New(apperrors.CodeInvalidArgument, fmt.Sprintf("cel key %q is malformed", key))
		}
		at := a.layerIndex(layerID)
		if at < 0 {
			return nil, apperrors.New(apperrors.CodeNotFound, fmt.Sprintf("cel %s references missing layer %d", key, layerID))
		}
		if frameIndex < 0 || frameIndex >= len(a.frames) {
			return nil, apperrors.New(apperrors.CodeOutOfRange, fmt.Sprintf("cel %s references frame %d outside %d frames", key, frameIndex, len(a.frames)))
		}
		if err := validateCel(cel); err != nil {
			return nil, err
		}
		typ, err := cel.Type()
		if err != nil {
			return nil, err
		}
		if !celMatchesLayer(typ, a.layers[at].Type) {
			return nil, apperrors.New(apperrors.CodeTypeMismatch, fmt.Sprintf("cel %s payload %s does not fit %s layer", key, typ, a.layers[at].Type))
		}
		a.cels[key] = copyCel(cel)
	}

	for _, tag := range data.Tags {
		if err := validateTagShape(tag); err != nil {
			return nil, err
		}
		if tag.Frames != nil {
			if tag.Frames.From > tag.Frames.To || tag.Frames.From < 0 || tag.Frames.To >= len(a.frames) {
				return nil, apperrors.New(apperrors.CodeOutOfRange, fmt.Sprintf("tag %q range %d-%d is invalid for %d frames", tag.Name, tag.Frames.From, tag.Frames.To, len(a.frames)))
			}
		}
		if tag.Layers != nil {
			for _, id := range tag.Layers.LayerIDs {
				if a.layerIndex(id) < 0 {
					return nil, apperrors.New(apperrors.CodeNotFound, fmt.Sprintf("tag %q references missing layer %d", tag.Name, id))
				}
			}
		}
		a.tags = append(a.tags, copyTag(tag))
	}

	return a, nil
}
