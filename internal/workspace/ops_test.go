package workspace

import (
	"testing"

	"github.com/pixelsmith/pixelsmith/internal/document"
	apperrors "github.com/pixelsmith/pixelsmith/internal/errors"
	"github.com/pixelsmith/pixelsmith/internal/project"
)

// TestDrawPixelsUndoRedo paints, reverts, and reapplies one stroke.
func TestDrawPixelsUndoRedo(t *testing.T) {
	session, _ := newTestSession(t, "hero")

	if err := session.DrawPixels("hero", backgroundLayer, 0, []point{{X: 1, Y: 2}, {X: 2, Y: 2}}, 5); err != nil {
		t.Fatalf("draw: %v", err)
	}
	if got := pixelAt(t, session, "hero", backgroundLayer, 0, 1, 2); got != 5 {
		t.Fatalf("pixel = %d, want 5", got)
	}

	if err := session.Undo(); err != nil {
		t.Fatalf("undo: %v", err)
	}
	a, err := session.Asset("hero")
	if err != nil {
		t.Fatalf("asset: %v", err)
	}
	if _, err := a.Cel(backgroundLayer, 0); !apperrors.IsCode(err, apperrors.CodeNotFound) {
		t.Fatalf("undo should clear the created cel, got %v", err)
	}

	if err := session.Redo(); err != nil {
		t.Fatalf("redo: %v", err)
	}
	if got := pixelAt(t, session, "hero", backgroundLayer, 0, 2, 2); got != 5 {
		t.Fatalf("pixel after redo = %d, want 5", got)
	}
}

// TestDrawPixelsSkipsOutOfBounds clips stray points instead of failing.
func TestDrawPixelsSkipsOutOfBounds(t *testing.T) {
	session, _ := newTestSession(t, "hero")
	if err := session.DrawPixels("hero", backgroundLayer, 0, []point{{X: 0, Y: 0}, {X: -1, Y: 0}, {X: 9, Y: 9}}, 2); err != nil {
		t.Fatalf("draw: %v", err)
	}
	if got := pixelAt(t, session, "hero", backgroundLayer, 0, 0, 0); got != 2 {
		t.Fatalf("pixel = %d, want 2", got)
	}
}

// TestDrawPixelsRejectsBadIndex refuses palette indices outside 0-255
// before recording anything.
func TestDrawPixelsRejectsBadIndex(t *testing.T) {
	session, _ := newTestSession(t, "hero")
	if err := session.DrawPixels("hero", backgroundLayer, 0, []point{{X: 0, Y: 0}}, 256); !apperrors.IsCode(err, apperrors.CodeOutOfRange) {
		t.Fatalf("expected OUT_OF_RANGE, got %v", err)
	}
	if depth := session.Info().UndoDepth; depth != 0 {
		t.Fatalf("failed draw must not be recorded, depth = %d", depth)
	}
}

// TestDrawOnShapeLayerFails reports TYPE_MISMATCH for non-image layers.
func TestDrawOnShapeLayerFails(t *testing.T) {
	session, _ := newTestSession(t, "hero")
	layer, err := session.AddLayer("hero", document.AddLayerInput{Name: "collision", Type: document.LayerShape})
	if err != nil {
		t.Fatalf("add layer: %v", err)
	}
	if err := session.DrawPixels("hero", layer.ID, 0, []point{{X: 0, Y: 0}}, 1); !apperrors.IsCode(err, apperrors.CodeTypeMismatch) {
		t.Fatalf("expected TYPE_MISMATCH, got %v", err)
	}
}

// TestDrawLinePaintsRun rasterizes a diagonal onto the cel.
func TestDrawLinePaintsRun(t *testing.T) {
	session, _ := newTestSession(t, "hero")
	if err := session.DrawLine("hero", backgroundLayer, 0, 0, 0, 3, 3, 7); err != nil {
		t.Fatalf("draw line: %v", err)
	}
	for i := 0; i < 4; i++ {
		if got := pixelAt(t, session, "hero", backgroundLayer, 0, i, i); got != 7 {
			t.Fatalf("pixel (%d,%d) = %d, want 7", i, i, got)
		}
	}
}

// TestFillRegionStopsAtBoundary floods only the connected region around
// the start point.
func TestFillRegionStopsAtBoundary(t *testing.T) {
	session, _ := newTestSession(t, "hero")

	// Vertical wall at x=2 splits the canvas.
	wall := []point{{X: 2, Y: 0}, {X: 2, Y: 1}, {X: 2, Y: 2}, {X: 2, Y: 3}}
	if err := session.DrawPixels("hero", backgroundLayer, 0, wall, 9); err != nil {
		t.Fatalf("draw wall: %v", err)
	}
	if err := session.FillRegion("hero", backgroundLayer, 0, 0, 0, 4); err != nil {
		t.Fatalf("fill: %v", err)
	}

	if got := pixelAt(t, session, "hero", backgroundLayer, 0, 1, 3); got != 4 {
		t.Fatalf("left side pixel = %d, want 4", got)
	}
	if got := pixelAt(t, session, "hero", backgroundLayer, 0, 3, 0); got != 0 {
		t.Fatalf("right side pixel = %d, want untouched 0", got)
	}
	if got := pixelAt(t, session, "hero", backgroundLayer, 0, 2, 1); got != 9 {
		t.Fatalf("wall pixel = %d, want 9", got)
	}
}

// TestFillRegionOutsideCanvas rejects a start point off the grid.
func TestFillRegionOutsideCanvas(t *testing.T) {
	session, _ := newTestSession(t, "hero")
	if err := session.FillRegion("hero", backgroundLayer, 0, 10, 10, 1); !apperrors.IsCode(err, apperrors.CodeOutOfRange) {
		t.Fatalf("expected OUT_OF_RANGE, got %v", err)
	}
	if depth := session.Info().UndoDepth; depth != 0 {
		t.Fatalf("failed fill must not be recorded, depth = %d", depth)
	}
}

// TestClearPixelsResetsToZero erases drawn pixels undoably.
func TestClearPixelsResetsToZero(t *testing.T) {
	session, _ := newTestSession(t, "hero")
	if err := session.DrawPixels("hero", backgroundLayer, 0, []point{{X: 1, Y: 1}}, 6); err != nil {
		t.Fatalf("draw: %v", err)
	}
	if err := session.ClearPixels("hero", backgroundLayer, 0, []point{{X: 1, Y: 1}}); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if got := pixelAt(t, session, "hero", backgroundLayer, 0, 1, 1); got != 0 {
		t.Fatalf("pixel = %d, want 0", got)
	}
	if err := session.Undo(); err != nil {
		t.Fatalf("undo: %v", err)
	}
	if got := pixelAt(t, session, "hero", backgroundLayer, 0, 1, 1); got != 6 {
		t.Fatalf("pixel after undo = %d, want 6", got)
	}
}

// TestCopyPasteRoundTrip copies a block and stamps it elsewhere. Copy is a
// read and records no command; paste does.
func TestCopyPasteRoundTrip(t *testing.T) {
	session, _ := newTestSession(t, "hero")
	if err := session.DrawPixels("hero", backgroundLayer, 0, []point{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 0, Y: 1}, {X: 1, Y: 1}}, 3); err != nil {
		t.Fatalf("draw: %v", err)
	}

	if err := session.CopyRect("hero", backgroundLayer, 0, 0, 0, 2, 2); err != nil {
		t.Fatalf("copy: %v", err)
	}
	if depth := session.Info().UndoDepth; depth != 1 {
		t.Fatalf("copy must not record a command, depth = %d", depth)
	}
	block := session.ClipboardBlock()
	if block == nil || block.Width != 2 || block.Height != 2 {
		t.Fatalf("clipboard = %+v", block)
	}

	if err := session.PasteClipboard("hero", backgroundLayer, 0, 2, 2); err != nil {
		t.Fatalf("paste: %v", err)
	}
	if got := pixelAt(t, session, "hero", backgroundLayer, 0, 3, 3); got != 3 {
		t.Fatalf("pasted pixel = %d, want 3", got)
	}
	if err := session.Undo(); err != nil {
		t.Fatalf("undo paste: %v", err)
	}
	if got := pixelAt(t, session, "hero", backgroundLayer, 0, 3, 3); got != 0 {
		t.Fatalf("pixel after undo = %d, want 0", got)
	}
}

// TestCopyRectClipsToCanvas trims the copied block at the grid edge.
func TestCopyRectClipsToCanvas(t *testing.T) {
	session, _ := newTestSession(t, "hero")
	if err := session.DrawPixels("hero", backgroundLayer, 0, []point{{X: 3, Y: 3}}, 8); err != nil {
		t.Fatalf("draw: %v", err)
	}
	if err := session.CopyRect("hero", backgroundLayer, 0, 3, 3, 4, 4); err != nil {
		t.Fatalf("copy: %v", err)
	}
	block := session.ClipboardBlock()
	if block.Width != 1 || block.Height != 1 || block.Pixels[0][0] != 8 {
		t.Fatalf("clipped block = %+v", block)
	}

	if err := session.CopyRect("hero", backgroundLayer, 0, 10, 10, 2, 2); !apperrors.IsCode(err, apperrors.CodeOutOfRange) {
		t.Fatalf("fully outside copy: expected OUT_OF_RANGE, got %v", err)
	}
}

// TestPasteWithEmptyClipboard fails cleanly.
func TestPasteWithEmptyClipboard(t *testing.T) {
	session, _ := newTestSession(t, "hero")
	if err := session.PasteClipboard("hero", backgroundLayer, 0, 0, 0); !apperrors.IsCode(err, apperrors.CodeNotFound) {
		t.Fatalf("expected NOT_FOUND, got %v", err)
	}
}

// TestResizeShrinkUndoRestoresDiscardedPixels shrinks the canvas past a
// drawn pixel and gets it back on undo.
func TestResizeShrinkUndoRestoresDiscardedPixels(t *testing.T) {
	session, _ := newTestSession(t, "hero")
	if err := session.DrawPixels("hero", backgroundLayer, 0, []point{{X: 3, Y: 3}}, 7); err != nil {
		t.Fatalf("draw: %v", err)
	}
	if err := session.ResizeAsset("hero", 2, 2); err != nil {
		t.Fatalf("resize: %v", err)
	}

	a, err := session.Asset("hero")
	if err != nil {
		t.Fatalf("asset: %v", err)
	}
	if a.Width() != 2 || a.Height() != 2 {
		t.Fatalf("size after shrink = %dx%d", a.Width(), a.Height())
	}
	cel, err := a.Cel(backgroundLayer, 0)
	if err != nil {
		t.Fatalf("cel: %v", err)
	}
	if len(cel.Image.Pixels) != 2 || len(cel.Image.Pixels[0]) != 2 {
		t.Fatalf("grid after shrink = %dx%d", len(cel.Image.Pixels[0]), len(cel.Image.Pixels))
	}

	if err := session.Undo(); err != nil {
		t.Fatalf("undo: %v", err)
	}
	a, err = session.Asset("hero")
	if err != nil {
		t.Fatalf("asset after undo: %v", err)
	}
	if a.Width() != 4 || a.Height() != 4 {
		t.Fatalf("size after undo = %dx%d", a.Width(), a.Height())
	}
	if got := pixelAt(t, session, "hero", backgroundLayer, 0, 3, 3); got != 7 {
		t.Fatalf("discarded pixel after undo = %d, want 7", got)
	}
}

// TestSharedHistoryOrdersAcrossAssets undoes edits in reverse order no
// matter which document they touched.
func TestSharedHistoryOrdersAcrossAssets(t *testing.T) {
	session, _ := newTestSession(t, "hero", "slime")

	if err := session.DrawPixels("hero", backgroundLayer, 0, []point{{X: 0, Y: 0}}, 1); err != nil {
		t.Fatalf("draw hero: %v", err)
	}
	if err := session.DrawPixels("slime", backgroundLayer, 0, []point{{X: 0, Y: 0}}, 2); err != nil {
		t.Fatalf("draw slime: %v", err)
	}

	if err := session.Undo(); err != nil {
		t.Fatalf("first undo: %v", err)
	}
	if got := pixelAt(t, session, "hero", backgroundLayer, 0, 0, 0); got != 1 {
		t.Fatalf("hero pixel after slime undo = %d, want 1", got)
	}
	slime, err := session.Asset("slime")
	if err != nil {
		t.Fatalf("slime: %v", err)
	}
	if _, err := slime.Cel(backgroundLayer, 0); !apperrors.IsCode(err, apperrors.CodeNotFound) {
		t.Fatalf("slime cel should be reverted, got %v", err)
	}

	if err := session.Undo(); err != nil {
		t.Fatalf("second undo: %v", err)
	}
	hero, err := session.Asset("hero")
	if err != nil {
		t.Fatalf("hero: %v", err)
	}
	if _, err := hero.Cel(backgroundLayer, 0); !apperrors.IsCode(err, apperrors.CodeNotFound) {
		t.Fatalf("hero cel should be reverted, got %v", err)
	}
}

// TestStructuralVerbsUndo walks a layer and frame edit through undo.
func TestStructuralVerbsUndo(t *testing.T) {
	session, _ := newTestSession(t, "hero")

	layer, err := session.AddLayer("hero", document.AddLayerInput{Name: "detail", Type: document.LayerImage})
	if err != nil {
		t.Fatalf("add layer: %v", err)
	}
	if _, err := session.AddFrame("hero", 80); err != nil {
		t.Fatalf("add frame: %v", err)
	}
	if err := session.DrawPixels("hero", layer.ID, 1, []point{{X: 0, Y: 0}}, 1); err != nil {
		t.Fatalf("draw: %v", err)
	}
	if err := session.RemoveLayer("hero", layer.ID); err != nil {
		t.Fatalf("remove layer: %v", err)
	}

	a, err := session.Asset("hero")
	if err != nil {
		t.Fatalf("asset: %v", err)
	}
	if len(a.Layers()) != 1 || len(a.Cels()) != 0 {
		t.Fatalf("after remove: %d layers, %d cels", len(a.Layers()), len(a.Cels()))
	}

	if err := session.Undo(); err != nil {
		t.Fatalf("undo remove: %v", err)
	}
	a, _ = session.Asset("hero")
	if len(a.Layers()) != 2 {
		t.Fatalf("layers after undo = %d, want 2", len(a.Layers()))
	}
	if got := pixelAt(t, session, "hero", layer.ID, 1, 0, 0); got != 1 {
		t.Fatalf("cascaded cel should return with its layer, pixel = %d", got)
	}
}

// TestRemoveFrameFailureNotRecorded keeps a failed removal off the stacks.
func TestRemoveFrameFailureNotRecorded(t *testing.T) {
	session, _ := newTestSession(t, "hero")
	if err := session.RemoveFrame("hero", 0); !apperrors.IsCode(err, apperrors.CodeInvalidArgument) {
		t.Fatalf("removing the last frame: expected INVALID_ARGUMENT, got %v", err)
	}
	if depth := session.Info().UndoDepth; depth != 0 {
		t.Fatalf("failed removal recorded, depth = %d", depth)
	}
}

// TestPaletteVerbsUndo batches palette writes into single commands.
func TestPaletteVerbsUndo(t *testing.T) {
	session, _ := newTestSession(t, "hero")

	entries := []document.PaletteEntry{
		{Index: 1, Color: document.Color{255, 0, 0, 255}},
		{Index: 2, Color: document.Color{0, 255, 0, 255}},
	}
	if err := session.SetPaletteColors("hero", entries); err != nil {
		t.Fatalf("set colors: %v", err)
	}
	if err := session.SwapPaletteColors("hero", 1, 2); err != nil {
		t.Fatalf("swap: %v", err)
	}

	a, _ := session.Asset("hero")
	if c, _ := a.PaletteColor(1); c != (document.Color{0, 255, 0, 255}) {
		t.Fatalf("slot 1 after swap = %v", c)
	}
	if err := session.Undo(); err != nil {
		t.Fatalf("undo swap: %v", err)
	}
	a, _ = session.Asset("hero")
	if c, _ := a.PaletteColor(1); c != (document.Color{255, 0, 0, 255}) {
		t.Fatalf("slot 1 after undo = %v", c)
	}
}

// TestImportImageQuantizesWithTransparency imports RGBA pixels, reserving
// palette index 0 for transparency, and undoes palette and cel together.
func TestImportImageQuantizesWithTransparency(t *testing.T) {
	session, _ := newTestSession(t, "hero")

	// 2x2: transparent, red, red, blue.
	rgba := []byte{
		0, 0, 0, 0,
		255, 0, 0, 255,
		255, 0, 0, 255,
		0, 0, 255, 255,
	}
	if err := session.ImportImage("hero", backgroundLayer, 0, rgba, 2, 2, 16); err != nil {
		t.Fatalf("import: %v", err)
	}

	a, _ := session.Asset("hero")
	if c, _ := a.PaletteColor(0); c != document.TransparentBlack {
		t.Fatalf("slot 0 = %v, want transparent", c)
	}
	cel, err := a.Cel(backgroundLayer, 0)
	if err != nil {
		t.Fatalf("cel: %v", err)
	}
	if cel.Image.Pixels[0][0] != 0 {
		t.Fatalf("transparent pixel index = %d, want 0", cel.Image.Pixels[0][0])
	}
	if cel.Image.Pixels[0][1] != cel.Image.Pixels[1][0] {
		t.Fatal("equal colors should share a palette index")
	}
	if cel.Image.Pixels[0][1] == cel.Image.Pixels[1][1] {
		t.Fatal("distinct colors should get distinct indices")
	}

	if err := session.Undo(); err != nil {
		t.Fatalf("undo: %v", err)
	}
	a, _ = session.Asset("hero")
	if _, err := a.Cel(backgroundLayer, 0); !apperrors.IsCode(err, apperrors.CodeNotFound) {
		t.Fatalf("cel should revert with the palette, got %v", err)
	}
	if a.PaletteData()[1] != nil {
		t.Fatal("palette slot should revert to unset")
	}
}

// TestImportImageRejectsShortPayload validates the byte count up front.
func TestImportImageRejectsShortPayload(t *testing.T) {
	session, _ := newTestSession(t, "hero")
	if err := session.ImportImage("hero", backgroundLayer, 0, []byte{1, 2, 3}, 2, 2, 4); !apperrors.IsCode(err, apperrors.CodeInvalidArgument) {
		t.Fatalf("expected INVALID_ARGUMENT, got %v", err)
	}
}

// TestRenameAssetFollowsSelectionAndRegistry renames under the session
// map, selection, and registry entry, and undoes all three.
func TestRenameAssetFollowsSelectionAndRegistry(t *testing.T) {
	session, _ := newTestSession(t, "hero")

	registry, err := project.NewRegistry("dungeon")
	if err != nil {
		t.Fatalf("new registry: %v", err)
	}
	if err := registry.RegisterAsset("hero", project.AssetEntry{Type: "sprite", Path: "sprites/hero.json"}); err != nil {
		t.Fatalf("register: %v", err)
	}
	session.OpenProject(registry)
	if err := session.Select("hero", nil, nil); err != nil {
		t.Fatalf("select: %v", err)
	}

	if err := session.RenameAsset("hero", "knight"); err != nil {
		t.Fatalf("rename: %v", err)
	}
	if _, err := session.Asset("knight"); err != nil {
		t.Fatalf("renamed asset missing: %v", err)
	}
	if sel := session.Selection(); sel == nil || sel.Asset != "knight" {
		t.Fatalf("selection after rename = %+v", sel)
	}
	if _, err := registry.Info("knight"); err != nil {
		t.Fatalf("registry entry after rename: %v", err)
	}

	if err := session.Undo(); err != nil {
		t.Fatalf("undo rename: %v", err)
	}
	if _, err := session.Asset("hero"); err != nil {
		t.Fatalf("undo should restore the old name: %v", err)
	}
	if _, err := registry.Info("hero"); err != nil {
		t.Fatalf("registry entry after undo: %v", err)
	}
}

// TestSetCelTypeMismatch refuses payloads that do not fit the layer.
func TestSetCelTypeMismatch(t *testing.T) {
	session, _ := newTestSession(t, "hero")
	cel := document.Cel{Tilemap: &document.TilemapCel{Tiles: [][]int{{0}}}}
	if err := session.SetCel("hero", backgroundLayer, 0, cel); !apperrors.IsCode(err, apperrors.CodeTypeMismatch) {
		t.Fatalf("expected TYPE_MISMATCH, got %v", err)
	}
}

// TestSetCelRejectsRaggedGrid keeps uneven pixel rows out of the document
// so the paint verbs can index every row by the first one's width.
func TestSetCelRejectsRaggedGrid(t *testing.T) {
	session, _ := newTestSession(t, "hero")
	ragged := document.Cel{Image: &document.ImageCel{Pixels: [][]int{{0, 0, 0}, {0}, {0, 0, 0}}}}
	if err := session.SetCel("hero", backgroundLayer, 0, ragged); !apperrors.IsCode(err, apperrors.CodeInvalidArgument) {
		t.Fatalf("expected INVALID_ARGUMENT, got %v", err)
	}
	if depth := session.Info().UndoDepth; depth != 0 {
		t.Fatalf("failed cel set must not be recorded, depth = %d", depth)
	}
	if err := session.FillRegion("hero", backgroundLayer, 0, 0, 0, 5); err != nil {
		t.Fatalf("fill after rejected cel: %v", err)
	}
	if got := pixelAt(t, session, "hero", backgroundLayer, 0, 3, 3); got != 5 {
		t.Fatalf("pixel = %d, want 5", got)
	}
}

// TestRenameUndoAfterUnloadFails keeps an unloaded document from being
// resurrected when the rename command is undone.
func TestRenameUndoAfterUnloadFails(t *testing.T) {
	session, _ := newTestSession(t, "hero")
	if err := session.RenameAsset("hero", "knight"); err != nil {
		t.Fatalf("rename: %v", err)
	}
	if _, err := session.UnloadAsset("knight"); err != nil {
		t.Fatalf("unload: %v", err)
	}

	if err := session.Undo(); !apperrors.IsCode(err, apperrors.CodeNotLoaded) {
		t.Fatalf("expected NOT_LOADED, got %v", err)
	}
	if _, err := session.Asset("hero"); !apperrors.IsCode(err, apperrors.CodeNotLoaded) {
		t.Fatalf("undo must not resurrect the document, got %v", err)
	}
	if depth := session.Info().UndoDepth; depth != 1 {
		t.Fatalf("failed undo must leave the stack intact, depth = %d", depth)
	}
}
