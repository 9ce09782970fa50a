package document

import (
	"fmt"
	"strings"

	apperrors "github.com/pixelsmith/pixelsmith/internal/errors"
)

// Asset is one editable pixel-art document. All fields are private: every
// mutation goes through a validating method that fails before touching any
// state, and accessors hand out deep copies so captured undo snapshots
// cannot be aliased from outside.
type Asset struct {
	name        string
	width       int
	height      int
	perspective string
	palette     *Palette
	layers      []Layer
	frames      []Frame
	cels        map[string]Cel
	tags        []Tag
	dirty       bool
	nextLayerID int
}

// NewAsset scaffolds a fresh document with one image layer and one frame.
func NewAsset(name string, width, height int, perspective string) (*Asset, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperrors.New(apperrors.CodeInvalidArgument, "asset name is required")
	}
	if width <= 0 || height <= 0 {
		return nil, apperrors.New(apperrors.CodeInvalidArgument, fmt.Sprintf("asset size %dx%d must be positive", width, height))
	}
	a := &Asset{
		name:        name,
		width:       width,
		height:      height,
		perspective: perspective,
		palette:     NewPalette(),
		cels:        make(map[string]Cel),
		nextLayerID: 1,
	}
	a.layers = append(a.layers, Layer{
		ID:      a.takeLayerID(),
		Name:    "background",
		Type:    LayerImage,
		Visible: true,
		Opacity: 255,
	})
	a.frames = append(a.frames, Frame{Index: 0, DurationMS: DefaultFrameDurationMS})
	return a, nil
}

func (a *Asset) takeLayerID() int {
	id := a.nextLayerID
	a.nextLayerID++
	return id
}

func (a *Asset) markDirty() {
	a.dirty = true
}

// Name returns the asset's logical name.
func (a *Asset) Name() string { return a.name }

// Width returns the canvas width in pixels.
func (a *Asset) Width() int { return a.width }

// Height returns the canvas height in pixels.
func (a *Asset) Height() int { return a.height }

// Perspective returns the free-text perspective label.
func (a *Asset) Perspective() string { return a.perspective }

// Dirty reports whether the document has unsaved changes.
func (a *Asset) Dirty() bool { return a.dirty }

// ClearDirty marks the document as saved. Only the serialize-for-save path
// calls this.
func (a *Asset) ClearDirty() { a.dirty = false }

// SetName renames the asset.
func (a *Asset) SetName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return apperrors.New(apperrors.CodeInvalidArgument, "asset name is required")
	}
	a.name = name
	a.markDirty()
	return nil
}

// Layers returns the ordered layer list as a deep copy.
func (a *Asset) Layers() []Layer {
	return copyLayers(a.layers)
}

// Layer returns the layer with the given id.
func (a *Asset) Layer(id int) (Layer, error) {
	at := a.layerIndex(id)
	if at < 0 {
		return Layer{}, apperrors.New(apperrors.CodeNotFound, fmt.Sprintf("layer %d not found", id))
	}
	return copyLayer(a.layers[at]), nil
}

func (a *Asset) layerIndex(id int) int {
	for i, l := range a.layers {
		if l.ID == id {
			return i
		}
	}
	return -1
}

// Frames returns the ordered frame list as a copy.
func (a *Asset) Frames() []Frame {
	return copyFrames(a.frames)
}

// FrameCount returns the number of frames.
func (a *Asset) FrameCount() int { return len(a.frames) }

// Tags returns the tag list as a deep copy.
func (a *Asset) Tags() []Tag {
	return copyTags(a.tags)
}

// Cels returns the full cel map as a deep copy.
func (a *Asset) Cels() map[string]Cel {
	return copyCels(a.cels)
}

// PaletteColor returns the palette color at index.
func (a *Asset) PaletteColor(index int) (Color, error) {
	return a.palette.Color(index)
}

// PaletteData returns the ordered palette slots with nil marking unset.
func (a *Asset) PaletteData() []*Color {
	return a.palette.Data()
}

// SetPaletteColor stores one palette color.
func (a *Asset) SetPaletteColor(index int, c Color) error {
	if err := a.palette.Set(index, c); err != nil {
		return err
	}
	a.markDirty()
	return nil
}

// SetPaletteColors applies a batch of palette entries as one validated unit.
func (a *Asset) SetPaletteColors(entries []PaletteEntry) error {
	if err := a.palette.SetBulk(entries); err != nil {
		return err
	}
	a.markDirty()
	return nil
}

// SwapPaletteColors exchanges two palette slots.
func (a *Asset) SwapPaletteColors(i, j int) error {
	if err := a.palette.Swap(i, j); err != nil {
		return err
	}
	a.markDirty()
	return nil
}

// AddLayer appends a new layer and returns it with its generated id.
func (a *Asset) AddLayer(input AddLayerInput) (Layer, error) {
	normalized, err := NormalizeAddLayerInput(input)
	if err != nil {
		return Layer{}, err
	}
	opacity := 255
	if normalized.Opacity != nil {
		opacity = *normalized.Opacity
	}
	layer := Layer{
		ID:           a.takeLayerID(),
		Name:         normalized.Name,
		Type:         normalized.Type,
		ParentID:     normalized.ParentID,
		Visible:      true,
		Opacity:      opacity,
		Role:         normalized.Role,
		PhysicsLayer: normalized.PhysicsLayer,
	}
	a.layers = append(a.layers, copyLayer(layer))
	a.markDirty()
	return layer, nil
}

// RemoveLayer deletes a layer, every cel keyed to it, and its id from every
// layer tag; layer tags left referencing nothing are dropped.
func (a *Asset) RemoveLayer(id int) error {
	at := a.layerIndex(id)
	if at < 0 {
		return apperrors.New(apperrors.CodeNotFound, fmt.Sprintf("layer %d not found", id))
	}
	a.layers = append(a.layers[:at], a.layers[at+1:]...)

	for key := range a.cels {
		layerID, _, ok := ParseCelKey(key)
		if ok && layerID == id {
			delete(a.cels, key)
		}
	}

	kept := a.tags[:0]
	for _, tag := range a.tags {
		if tag.Layers == nil {
			kept = append(kept, tag)
			continue
		}
		ids := tag.Layers.LayerIDs[:0]
		for _, layerID := range tag.Layers.LayerIDs {
			if layerID != id {
				ids = append(ids, layerID)
			}
		}
		tag.Layers.LayerIDs = ids
		if len(ids) > 0 {
			kept = append(kept, tag)
		}
	}
	a.tags = kept

	a.markDirty()
	return nil
}

// ReorderLayerInput describes a layer move. NewParentID nil leaves the
// parent untouched unless ClearParent is set. Parent ids are not checked
// against existing group layers.
type ReorderLayerInput struct {
	ID          int
	NewIndex    int
	NewParentID *int
	ClearParent bool
}

// ReorderLayer moves a layer to a new list position and optionally assigns
// a new parent group.
func (a *Asset) ReorderLayer(input ReorderLayerInput) error {
	at := a.layerIndex(input.ID)
	if at < 0 {
		return apperrors.New(apperrors.CodeNotFound, fmt.Sprintf("layer %d not found", input.ID))
	}
	if input.NewIndex < 0 || input.NewIndex >= len(a.layers) {
		return apperrors.New(apperrors.CodeOutOfRange, fmt.Sprintf("layer index %d out of range", input.NewIndex))
	}

	layer := a.layers[at]
	switch {
	case input.ClearParent:
		layer.ParentID = nil
	case input.NewParentID != nil:
		parent := *input.NewParentID
		layer.ParentID = &parent
	}

	a.layers = append(a.layers[:at], a.layers[at+1:]...)
	a.layers = append(a.layers[:input.NewIndex], append([]Layer{layer}, a.layers[input.NewIndex:]...)...)
	a.markDirty()
	return nil
}

// AddFrame appends a frame and returns it.
func (a *Asset) AddFrame(durationMS int) (Frame, error) {
	if durationMS < 0 {
		return Frame{}, apperrors.New(apperrors.CodeInvalidArgument, fmt.Sprintf("frame duration %dms must not be negative", durationMS))
	}
	if durationMS == 0 {
		durationMS = DefaultFrameDurationMS
	}
	frame := Frame{Index: len(a.frames), DurationMS: durationMS}
	a.frames = append(a.frames, frame)
	a.markDirty()
	return frame, nil
}

// RemoveFrame deletes the frame at index. Cels on later frames are re-keyed
// to their shifted index, and frame tags overlapping the removed index are
// truncated, dropping any tag whose range becomes empty.
func (a *Asset) RemoveFrame(index int) error {
	if index < 0 || index >= len(a.frames) {
		return apperrors.New(apperrors.CodeOutOfRange, fmt.Sprintf("frame %d out of range", index))
	}
	if len(a.frames) == 1 {
		return apperrors.New(apperrors.CodeInvalidArgument, "asset must keep at least one frame")
	}

	a.frames = append(a.frames[:index], a.frames[index+1:]...)
	for i := range a.frames {
		a.frames[i].Index = i
	}

	rekeyed := make(map[string]Cel, len(a.cels))
	for key, cel := range a.cels {
		layerID, frameIndex, ok := ParseCelKey(key)
		if !ok {
			rekeyed[key] = cel
			continue
		}
		switch {
		case frameIndex == index:
			// dropped with its frame
		case frameIndex > index:
			rekeyed[PackCelKey(layerID, frameIndex-1)] = cel
		default:
			rekeyed[key] = cel
		}
	}
	a.cels = rekeyed

	kept := a.tags[:0]
	for _, tag := range a.tags {
		if tag.Frames == nil {
			kept = append(kept, tag)
			continue
		}
		if tag.Frames.From > index {
			tag.Frames.From--
		}
		if tag.Frames.To >= index {
			tag.Frames.To--
		}
		if tag.Frames.To >= tag.Frames.From {
			kept = append(kept, tag)
		}
	}
	a.tags = kept

	a.markDirty()
	return nil
}

// SetCel stores a cel at (layerID, frameIndex). The payload variant must
// match the owning layer's type.
func (a *Asset) SetCel(layerID, frameIndex int, cel Cel) error {
	at := a.layerIndex(layerID)
	if at < 0 {
		return apperrors.New(apperrors.CodeNotFound, fmt.Sprintf("layer %d not found", layerID))
	}
	if frameIndex < 0 || frameIndex >= len(a.frames) {
		return apperrors.New(apperrors.CodeOutOfRange, fmt.Sprintf("frame %d out of range", frameIndex))
	}
	if err := validateCel(cel); err != nil {
		return err
	}
	typ, err := cel.Type()
	if err != nil {
		return err
	}
	layer := a.layers[at]
	if !celMatchesLayer(typ, layer.Type) {
		return apperrors.WithMetadata(apperrors.CodeTypeMismatch,
			fmt.Sprintf("%s cel does not fit %s layer %d", typ, layer.Type, layerID),
			map[string]string{"cel_type": string(typ), "layer_type": string(layer.Type)})
	}
	a.cels[PackCelKey(layerID, frameIndex)] = copyCel(cel)
	a.markDirty()
	return nil
}

// Cel returns a deep copy of the cel at (layerID, frameIndex).
func (a *Asset) Cel(layerID, frameIndex int) (Cel, error) {
	cel, ok := a.cels[PackCelKey(layerID, frameIndex)]
	if !ok {
		return Cel{}, apperrors.New(apperrors.CodeNotFound, fmt.Sprintf("cel %s not found", PackCelKey(layerID, frameIndex)))
	}
	return copyCel(cel), nil
}

// RemoveCel deletes the cel at (layerID, frameIndex).
func (a *Asset) RemoveCel(layerID, frameIndex int) error {
	key := PackCelKey(layerID, frameIndex)
	if _, ok := a.cels[key]; !ok {
		return apperrors.New(apperrors.CodeNotFound, fmt.Sprintf("cel %s not found", key))
	}
	delete(a.cels, key)
	a.markDirty()
	return nil
}

// AddTag appends a tag. Frame tags require a range inside the frame list;
// layer tags require every referenced layer to exist. Tag names are unique.
func (a *Asset) AddTag(tag Tag) error {
	if err := validateTagShape(tag); err != nil {
		return err
	}
	for _, existing := range a.tags {
		if existing.Name == tag.Name {
			return apperrors.New(apperrors.CodeInvalidArgument, fmt.Sprintf("tag %q already exists", tag.Name))
		}
	}
	if tag.Frames != nil {
		if tag.Frames.From > tag.Frames.To {
			return apperrors.New(apperrors.CodeInvalidArgument, fmt.Sprintf("tag %q range %d-%d is inverted", tag.Name, tag.Frames.From, tag.Frames.To))
		}
		if tag.Frames.From < 0 || tag.Frames.To >= len(a.frames) {
			return apperrors.New(apperrors.CodeOutOfRange, fmt.Sprintf("tag %q range %d-%d exceeds %d frames", tag.Name, tag.Frames.From, tag.Frames.To, len(a.frames)))
		}
	}
	if tag.Layers != nil {
		if len(tag.Layers.LayerIDs) == 0 {
			return apperrors.New(apperrors.CodeInvalidArgument, fmt.Sprintf("tag %q references no layers", tag.Name))
		}
		for _, id := range tag.Layers.LayerIDs {
			if a.layerIndex(id) < 0 {
				return apperrors.New(apperrors.CodeNotFound, fmt.Sprintf("tag %q references missing layer %d", tag.Name, id))
			}
		}
	}
	a.tags = append(a.tags, copyTag(tag))
	a.markDirty()
	return nil
}

// RemoveTag deletes the tag with the given name.
func (a *Asset) RemoveTag(name string) error {
	for i, tag := range a.tags {
		if tag.Name == name {
			a.tags = append(a.tags[:i], a.tags[i+1:]...)
			a.markDirty()
			return nil
		}
	}
	return apperrors.New(apperrors.CodeNotFound, fmt.Sprintf("tag %q not found", name))
}

// Resize changes the canvas size and reallocates every image cel's pixel
// grid: content overlapping the old bounds is kept, pixels outside the new
// bounds are discarded, and new area is padded with palette index 0.
// Discarded pixels stay recoverable only through the command history.
func (a *Asset) Resize(newWidth, newHeight int) error {
	if newWidth <= 0 || newHeight <= 0 {
		return apperrors.New(apperrors.CodeInvalidArgument, fmt.Sprintf("asset size %dx%d must be positive", newWidth, newHeight))
	}
	for key, cel := range a.cels {
		if cel.Image == nil {
			continue
		}
		grid := make([][]int, newHeight)
		for y := range grid {
			grid[y] = make([]int, newWidth)
			if y < len(cel.Image.Pixels) {
				copy(grid[y], cel.Image.Pixels[y])
			}
		}
		img := *cel.Image
		img.Pixels = grid
		cel.Image = &img
		a.cels[key] = cel
	}
	a.width = newWidth
	a.height = newHeight
	a.markDirty()
	return nil
}
