package document

// FieldName names one of the asset's restorable top-level sub-states.
type FieldName string

const (
	FieldLayers  FieldName = "layers"
	FieldFrames  FieldName = "frames"
	FieldCels    FieldName = "cels"
	FieldTags    FieldName = "tags"
	FieldPalette FieldName = "palette"
	FieldSize    FieldName = "size"
	FieldTitle   FieldName = "name"
)

// Size pairs the canvas dimensions for capture and restore.
type Size struct {
	Width  int
	Height int
}

// Fields is a deep-copied subset of an asset's top-level sub-states. Nil
// members were not captured and are left untouched on restore.
type Fields struct {
	Layers  *[]Layer
	Frames  *[]Frame
	Cels    *map[string]Cel
	Tags    *[]Tag
	Palette *[]*Color
	Size    *Size
	Name    *string
}

// CaptureFields deep-copies the named sub-states for the command engine's
// snapshot commands.
func (a *Asset) CaptureFields(names ...FieldName) Fields {
	var f Fields
	for _, name := range names {
		switch name {
		case FieldLayers:
			layers := copyLayers(a.layers)
			f.Layers = &layers
		case FieldFrames:
			frames := copyFrames(a.frames)
			f.Frames = &frames
		case FieldCels:
			cels := copyCels(a.cels)
			f.Cels = &cels
		case FieldTags:
			tags := copyTags(a.tags)
			f.Tags = &tags
		case FieldPalette:
			palette := a.palette.Data()
			f.Palette = &palette
		case FieldSize:
			size := Size{Width: a.width, Height: a.height}
			f.Size = &size
		case FieldTitle:
			name := a.name
			f.Name = &name
		}
	}
	return f
}

// RestoreFields overwrites the captured sub-states wholesale. It bypasses
// the validating mutation API and is reserved for the command engine's
// undo and redo paths; external callers must never use it.
func (a *Asset) RestoreFields(f Fields) {
	if f.Layers != nil {
		a.layers = copyLayers(*f.Layers)
		for _, l := range a.layers {
			if l.ID >= a.nextLayerID {
				a.nextLayerID = l.ID + 1
			}
		}
	}
	if f.Frames != nil {
		a.frames = copyFrames(*f.Frames)
	}
	if f.Cels != nil {
		a.cels = copyCels(*f.Cels)
	}
	if f.Tags != nil {
		a.tags = copyTags(*f.Tags)
	}
	if f.Palette != nil {
		if palette, err := PaletteFromData(*f.Palette); err == nil {
			a.palette = palette
		}
	}
	if f.Size != nil {
		a.width = f.Size.Width
		a.height = f.Size.Height
	}
	if f.Name != nil {
		a.name = *f.Name
	}
	a.markDirty()
}

// CaptureCel deep-copies a single cel, or nil when the slot is empty.
// Reserved for the command engine.
func (a *Asset) CaptureCel(layerID, frameIndex int) *Cel {
	cel, ok := a.cels[PackCelKey(layerID, frameIndex)]
	if !ok {
		return nil
	}
	copied := copyCel(cel)
	return &copied
}

// RestoreCel overwrites a single cel slot, clearing it when cel is nil.
// Reserved for the command engine.
func (a *Asset) RestoreCel(layerID, frameIndex int, cel *Cel) {
	key := PackCelKey(layerID, frameIndex)
	if cel == nil {
		delete(a.cels, key)
	} else {
		a.cels[key] = copyCel(*cel)
	}
	a.markDirty()
}
