package workspace

import (
	"fmt"
	"strings"

	"github.com/pixelsmith/pixelsmith/internal/document"
	apperrors "github.com/pixelsmith/pixelsmith/internal/errors"
	"github.com/pixelsmith/pixelsmith/internal/history"
	"github.com/pixelsmith/pixelsmith/internal/raster"
)

// pushFields wraps a mutation in a snapshot command over the named asset
// sub-states and records it on the shared history. Callers hold s.mu.
func (s *Session) pushFields(a *document.Asset, names []document.FieldName, action func() error) error {
	cmd := history.NewSnapshot(
		func() document.Fields { return a.CaptureFields(names...) },
		a.RestoreFields,
		action,
	)
	return s.history.Push(cmd)
}

// pushCel wraps a mutation of a single cel slot. Callers hold s.mu.
func (s *Session) pushCel(a *document.Asset, layerID, frameIndex int, action func() error) error {
	cmd := history.NewSnapshot(
		func() *document.Cel { return a.CaptureCel(layerID, frameIndex) },
		func(c *document.Cel) { a.RestoreCel(layerID, frameIndex, c) },
		action,
	)
	return s.history.Push(cmd)
}

// AddLayer appends a layer to a loaded asset as an undoable command.
func (s *Session) AddLayer(assetName string, input document.AddLayerInput) (document.Layer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, err := s.asset(assetName)
	if err != nil {
		return document.Layer{}, err
	}
	var layer document.Layer
	err = s.pushFields(a, []document.FieldName{document.FieldLayers}, func() error {
		var err error
		layer, err = a.AddLayer(input)
		return err
	})
	return layer, err
}

// RemoveLayer deletes a layer, its cels, and its tag references as one
// undoable command.
func (s *Session) RemoveLayer(assetName string, layerID int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, err := s.asset(assetName)
	if err != nil {
		return err
	}
	fields := []document.FieldName{document.FieldLayers, document.FieldCels, document.FieldTags}
	return s.pushFields(a, fields, func() error {
		return a.RemoveLayer(layerID)
	})
}

// ReorderLayer moves a layer within the stack as an undoable command.
func (s *Session) ReorderLayer(assetName string, input document.ReorderLayerInput) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, err := s.asset(assetName)
	if err != nil {
		return err
	}
	return s.pushFields(a, []document.FieldName{document.FieldLayers}, func() error {
		return a.ReorderLayer(input)
	})
}

// AddFrame appends a frame as an undoable command.
func (s *Session) AddFrame(assetName string, durationMS int) (document.Frame, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, err := s.asset(assetName)
	if err != nil {
		return document.Frame{}, err
	}
	var frame document.Frame
	err = s.pushFields(a, []document.FieldName{document.FieldFrames}, func() error {
		var err error
		frame, err = a.AddFrame(durationMS)
		return err
	})
	return frame, err
}

// RemoveFrame deletes a frame, re-keys later cels, and truncates frame tags
// as one undoable command.
func (s *Session) RemoveFrame(assetName string, index int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, err := s.asset(assetName)
	if err != nil {
		return err
	}
	fields := []document.FieldName{document.FieldFrames, document.FieldCels, document.FieldTags}
	return s.pushFields(a, fields, func() error {
		return a.RemoveFrame(index)
	})
}

// SetCel stores a cel as an undoable command.
func (s *Session) SetCel(assetName string, layerID, frameIndex int, cel document.Cel) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, err := s.asset(assetName)
	if err != nil {
		return err
	}
	return s.pushCel(a, layerID, frameIndex, func() error {
		return a.SetCel(layerID, frameIndex, cel)
	})
}

// RemoveCel clears a cel slot as an undoable command.
func (s *Session) RemoveCel(assetName string, layerID, frameIndex int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, err := s.asset(assetName)
	if err != nil {
		return err
	}
	return s.pushCel(a, layerID, frameIndex, func() error {
		return a.RemoveCel(layerID, frameIndex)
	})
}

// AddTag appends a tag as an undoable command.
func (s *Session) AddTag(assetName string, tag document.Tag) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, err := s.asset(assetName)
	if err != nil {
		return err
	}
	return s.pushFields(a, []document.FieldName{document.FieldTags}, func() error {
		return a.AddTag(tag)
	})
}

// RemoveTag deletes a tag as an undoable command.
func (s *Session) RemoveTag(assetName, tagName string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, err := s.asset(assetName)
	if err != nil {
		return err
	}
	return s.pushFields(a, []document.FieldName{document.FieldTags}, func() error {
		return a.RemoveTag(tagName)
	})
}

// ResizeAsset changes the canvas size as an undoable command. Pixels
// discarded by a shrink are held in the command's snapshot, so undo
// restores them exactly.
func (s *Session) ResizeAsset(assetName string, width, height int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, err := s.asset(assetName)
	if err != nil {
		return err
	}
	fields := []document.FieldName{document.FieldSize, document.FieldCels}
	return s.pushFields(a, fields, func() error {
		return a.Resize(width, height)
	})
}

// SetPaletteColor stores one palette color as an undoable command.
func (s *Session) SetPaletteColor(assetName string, index int, c document.Color) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, err := s.asset(assetName)
	if err != nil {
		return err
	}
	return s.pushFields(a, []document.FieldName{document.FieldPalette}, func() error {
		return a.SetPaletteColor(index, c)
	})
}

// SetPaletteColors applies a batch of palette entries as one undoable
// command.
func (s *Session) SetPaletteColors(assetName string, entries []document.PaletteEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, err := s.asset(assetName)
	if err != nil {
		return err
	}
	return s.pushFields(a, []document.FieldName{document.FieldPalette}, func() error {
		return a.SetPaletteColors(entries)
	})
}

// SwapPaletteColors exchanges two palette slots as an undoable command.
func (s *Session) SwapPaletteColors(assetName string, i, j int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, err := s.asset(assetName)
	if err != nil {
		return err
	}
	return s.pushFields(a, []document.FieldName{document.FieldPalette}, func() error {
		return a.SwapPaletteColors(i, j)
	})
}

// RenameAsset renames a loaded asset under both the document and the
// session map, following the project registry entry when one matches. The
// inverse restores the old name. Both directions resolve the document by
// its current name, so the command fails once the asset is unloaded.
func (s *Session) RenameAsset(oldName, newName string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := s.asset(oldName); err != nil {
		return err
	}
	newName = strings.TrimSpace(newName)
	if newName == "" {
		return apperrors.New(apperrors.CodeInvalidArgument, "asset name is required")
	}
	if newName == oldName {
		return nil
	}
	if _, ok := s.assets[newName]; ok {
		return apperrors.New(apperrors.CodeInvalidArgument, fmt.Sprintf("asset %q is already loaded", newName))
	}

	rename := func(from, to string) error {
		doc, ok := s.assets[from]
		if !ok {
			return apperrors.New(apperrors.CodeNotLoaded, fmt.Sprintf("asset %q is not loaded", from))
		}
		if _, ok := s.assets[to]; ok {
			return apperrors.New(apperrors.CodeInvalidArgument, fmt.Sprintf("asset %q is already loaded", to))
		}
		if err := doc.SetName(to); err != nil {
			return err
		}
		delete(s.assets, from)
		s.assets[to] = doc
		if s.selection != nil && s.selection.Asset == from {
			s.selection.Asset = to
		}
		if s.registry != nil {
			if err := s.registry.RenameAsset(from, to); err != nil && !apperrors.IsCode(err, apperrors.CodeNotFound) {
				return err
			}
		}
		return nil
	}
	cmd := history.NewInversePair(
		func() error { return rename(oldName, newName) },
		func() error { return rename(newName, oldName) },
	)
	return s.history.Push(cmd)
}

// editableImageCel returns a deep copy of the image cel at the slot, or a
// blank canvas-sized cel when the slot is empty. The owning layer must be
// an image layer and the frame must exist.
func (s *Session) editableImageCel(a *document.Asset, layerID, frameIndex int) (document.Cel, error) {
	layer, err := a.Layer(layerID)
	if err != nil {
		return document.Cel{}, err
	}
	if layer.Type != document.LayerImage {
		return document.Cel{}, apperrors.WithMetadata(apperrors.CodeTypeMismatch,
			fmt.Sprintf("layer %d is a %s layer, painting needs an image layer", layerID, layer.Type),
			map[string]string{"layer_type": string(layer.Type)})
	}
	if frameIndex < 0 || frameIndex >= a.FrameCount() {
		return document.Cel{}, apperrors.New(apperrors.CodeOutOfRange, fmt.Sprintf("frame %d out of range", frameIndex))
	}

	cel, err := a.Cel(layerID, frameIndex)
	if err == nil {
		if cel.Image == nil {
			return document.Cel{}, apperrors.New(apperrors.CodeTypeMismatch,
				fmt.Sprintf("cel %s is not an image cel", document.PackCelKey(layerID, frameIndex)))
		}
		return cel, nil
	}
	if !apperrors.IsCode(err, apperrors.CodeNotFound) {
		return document.Cel{}, err
	}

	grid := make([][]int, a.Height())
	for y := range grid {
		grid[y] = make([]int, a.Width())
	}
	return document.Cel{Image: &document.ImageCel{Pixels: grid}}, nil
}

// paintCel runs a paint closure over the editable grid and commits the
// result as one undoable cel command. Callers hold s.mu.
func (s *Session) paintCel(a *document.Asset, layerID, frameIndex int, paint func(grid [][]int) error) error {
	cel, err := s.editableImageCel(a, layerID, frameIndex)
	if err != nil {
		return err
	}
	return s.pushCel(a, layerID, frameIndex, func() error {
		if err := paint(cel.Image.Pixels); err != nil {
			return err
		}
		return a.SetCel(layerID, frameIndex, cel)
	})
}

// DrawPixels sets a palette index at each given point, skipping points
// outside the cel grid.
func (s *Session) DrawPixels(assetName string, layerID, frameIndex int, points []raster.Point, index int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, err := s.asset(assetName)
	if err != nil {
		return err
	}
	if !document.ValidPaletteIndex(index) {
		return apperrors.New(apperrors.CodeOutOfRange, fmt.Sprintf("palette index %d out of range", index))
	}
	if len(points) == 0 {
		return nil
	}
	return s.paintCel(a, layerID, frameIndex, func(grid [][]int) error {
		plotPoints(grid, points, index)
		return nil
	})
}

// DrawLine rasterizes a line between two real endpoints and paints it with
// one palette index.
func (s *Session) DrawLine(assetName string, layerID, frameIndex int, x0, y0, x1, y1 float64, index int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, err := s.asset(assetName)
	if err != nil {
		return err
	}
	if !document.ValidPaletteIndex(index) {
		return apperrors.New(apperrors.CodeOutOfRange, fmt.Sprintf("palette index %d out of range", index))
	}
	return s.paintCel(a, layerID, frameIndex, func(grid [][]int) error {
		plotPoints(grid, raster.Line(x0, y0, x1, y1), index)
		return nil
	})
}

// FillRegion flood-fills the connected region around a start point with one
// palette index.
func (s *Session) FillRegion(assetName string, layerID, frameIndex int, x, y float64, index int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, err := s.asset(assetName)
	if err != nil {
		return err
	}
	if !document.ValidPaletteIndex(index) {
		return apperrors.New(apperrors.CodeOutOfRange, fmt.Sprintf("palette index %d out of range", index))
	}
	return s.paintCel(a, layerID, frameIndex, func(grid [][]int) error {
		height := len(grid)
		width := 0
		if height > 0 {
			width = len(grid[0])
		}
		region := raster.Fill(x, y, width, height, func(px, py int) int {
			return grid[py][px]
		})
		if len(region) == 0 {
			return apperrors.New(apperrors.CodeOutOfRange, fmt.Sprintf("fill start (%g,%g) outside the cel", x, y))
		}
		for _, p := range region {
			grid[p.Y][p.X] = index
		}
		return nil
	})
}

// ClearPixels resets the given points to palette index 0.
func (s *Session) ClearPixels(assetName string, layerID, frameIndex int, points []raster.Point) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, err := s.asset(assetName)
	if err != nil {
		return err
	}
	if len(points) == 0 {
		return nil
	}
	return s.paintCel(a, layerID, frameIndex, func(grid [][]int) error {
		plotPoints(grid, points, 0)
		return nil
	})
}

// CopyRect copies a rectangle of palette indices into the session
// clipboard. The rectangle is clipped to the cel grid; reading mutates
// nothing and records no command.
func (s *Session) CopyRect(assetName string, layerID, frameIndex, x, y, width, height int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, err := s.asset(assetName)
	if err != nil {
		return err
	}
	if width <= 0 || height <= 0 {
		return apperrors.New(apperrors.CodeInvalidArgument, fmt.Sprintf("copy size %dx%d must be positive", width, height))
	}
	cel, err := s.editableImageCel(a, layerID, frameIndex)
	if err != nil {
		return err
	}

	grid := cel.Image.Pixels
	gridHeight := len(grid)
	gridWidth := 0
	if gridHeight > 0 {
		gridWidth = len(grid[0])
	}
	left, top := max(x, 0), max(y, 0)
	right, bottom := min(x+width, gridWidth), min(y+height, gridHeight)
	if left >= right || top >= bottom {
		return apperrors.New(apperrors.CodeOutOfRange, fmt.Sprintf("copy rect %d,%d %dx%d lies outside the cel", x, y, width, height))
	}

	block := Clipboard{Width: right - left, Height: bottom - top}
	block.Pixels = make([][]int, block.Height)
	for row := 0; row < block.Height; row++ {
		block.Pixels[row] = make([]int, block.Width)
		copy(block.Pixels[row], grid[top+row][left:right])
	}
	s.clipboard = &block
	return nil
}

// PasteClipboard stamps the clipboard block at (x,y) as an undoable
// command, skipping pixels that land outside the cel grid.
func (s *Session) PasteClipboard(assetName string, layerID, frameIndex, x, y int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, err := s.asset(assetName)
	if err != nil {
		return err
	}
	if s.clipboard == nil {
		return apperrors.New(apperrors.CodeNotFound, "clipboard is empty")
	}
	block := s.clipboard
	return s.paintCel(a, layerID, frameIndex, func(grid [][]int) error {
		for row, pixels := range block.Pixels {
			for col, index := range pixels {
				setPixel(grid, x+col, y+row, index)
			}
		}
		return nil
	})
}

// ImportImage quantizes raw RGBA pixels to the asset palette and stores the
// indexed result as the cel at (layerID, frameIndex). The palette rewrite
// and the cel write undo together.
func (s *Session) ImportImage(assetName string, layerID, frameIndex int, rgba []byte, imgWidth, imgHeight, maxColors int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, err := s.asset(assetName)
	if err != nil {
		return err
	}
	if imgWidth <= 0 || imgHeight <= 0 {
		return apperrors.New(apperrors.CodeInvalidArgument, fmt.Sprintf("image size %dx%d must be positive", imgWidth, imgHeight))
	}
	if len(rgba) != imgWidth*imgHeight*4 {
		return apperrors.New(apperrors.CodeInvalidArgument,
			fmt.Sprintf("pixel payload holds %d bytes, %dx%d needs %d", len(rgba), imgWidth, imgHeight, imgWidth*imgHeight*4))
	}
	layer, err := a.Layer(layerID)
	if err != nil {
		return err
	}
	if layer.Type != document.LayerImage {
		return apperrors.New(apperrors.CodeTypeMismatch,
			fmt.Sprintf("layer %d is a %s layer, import needs an image layer", layerID, layer.Type))
	}
	if frameIndex < 0 || frameIndex >= a.FrameCount() {
		return apperrors.New(apperrors.CodeOutOfRange, fmt.Sprintf("frame %d out of range", frameIndex))
	}
	if maxColors <= 0 || maxColors > document.PaletteSize {
		maxColors = document.PaletteSize
	}

	result := raster.Quantize(rgba, maxColors)
	entries := make([]document.PaletteEntry, len(result.Palette))
	for i, c := range result.Palette {
		entries[i] = document.PaletteEntry{
			Index: i,
			Color: document.Color{int(c[0]), int(c[1]), int(c[2]), int(c[3])},
		}
	}
	grid := make([][]int, imgHeight)
	for row := range grid {
		grid[row] = result.Indices[row*imgWidth : (row+1)*imgWidth]
	}

	fields := []document.FieldName{document.FieldPalette, document.FieldCels}
	return s.pushFields(a, fields, func() error {
		if err := a.SetPaletteColors(entries); err != nil {
			return err
		}
		return a.SetCel(layerID, frameIndex, document.Cel{Image: &document.ImageCel{Pixels: grid}})
	})
}

// plotPoints sets index at every in-bounds point.
func plotPoints(grid [][]int, points []raster.Point, index int) {
	for _, p := range points {
		setPixel(grid, p.X, p.Y, index)
	}
}

func setPixel(grid [][]int, x, y, index int) {
	if y < 0 || y >= len(grid) || x < 0 || x >= len(grid[y]) {
		return
	}
	grid[y][x] = index
}
