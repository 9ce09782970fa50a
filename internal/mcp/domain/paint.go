package domain

import (
	"context"
	"encoding/base64"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/pixelsmith/pixelsmith/internal/document"
	"github.com/pixelsmith/pixelsmith/internal/workspace"
)

func paintResult(asset string, layerID, frameIndex int) PaintResult {
	return PaintResult{Asset: asset, Key: document.PackCelKey(layerID, frameIndex)}
}

// DrawPixelsInput represents the MCP tool input for plotting pixels.
type DrawPixelsInput struct {
	Asset      string       `json:"asset" jsonschema:"asset name"`
	LayerID    int          `json:"layer_id" jsonschema:"image layer id"`
	FrameIndex int          `json:"frame_index" jsonschema:"frame index"`
	Points     []PointInput `json:"points" jsonschema:"points to paint; out-of-bounds points are skipped"`
	Index      int          `json:"index" jsonschema:"palette index to paint"`
}

// PaintResult represents the MCP tool output shared by the paint tools.
type PaintResult struct {
	Asset string `json:"asset"`
	Key   string `json:"key" jsonschema:"painted cel key as layerID/frameIndex"`
}

// DrawPixelsTool defines the MCP tool schema for plotting pixels.
func DrawPixelsTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "draw_pixels",
		Description: "Sets a palette index at each given point on an image cel, creating the cel when absent",
	}
}

// DrawPixelsHandler plots pixels as an undoable command.
func DrawPixelsHandler(session *workspace.Session) mcp.ToolHandlerFor[DrawPixelsInput, PaintResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input DrawPixelsInput) (*mcp.CallToolResult, PaintResult, error) {
		_, span := startSpan(ctx, "draw_pixels")
		defer span.End()

		if err := session.DrawPixels(input.Asset, input.LayerID, input.FrameIndex, toRasterPoints(input.Points), input.Index); err != nil {
			return nil, PaintResult{}, toolError("draw pixels", err)
		}
		return nil, paintResult(input.Asset, input.LayerID, input.FrameIndex), nil
	}
}

// ClearPixelsInput represents the MCP tool input for clearing pixels.
type ClearPixelsInput struct {
	Asset      string       `json:"asset" jsonschema:"asset name"`
	LayerID    int          `json:"layer_id" jsonschema:"image layer id"`
	FrameIndex int          `json:"frame_index" jsonschema:"frame index"`
	Points     []PointInput `json:"points" jsonschema:"points to clear; out-of-bounds points are skipped"`
}

// ClearPixelsTool defines the MCP tool schema for clearing pixels.
func ClearPixelsTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "clear_pixels",
		Description: "Resets the given points on an image cel to palette index 0",
	}
}

// ClearPixelsHandler clears pixels as an undoable command.
func ClearPixelsHandler(session *workspace.Session) mcp.ToolHandlerFor[ClearPixelsInput, PaintResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input ClearPixelsInput) (*mcp.CallToolResult, PaintResult, error) {
		_, span := startSpan(ctx, "clear_pixels")
		defer span.End()

		if err := session.ClearPixels(input.Asset, input.LayerID, input.FrameIndex, toRasterPoints(input.Points)); err != nil {
			return nil, PaintResult{}, toolError("clear pixels", err)
		}
		return nil, paintResult(input.Asset, input.LayerID, input.FrameIndex), nil
	}
}

// DrawLineInput represents the MCP tool input for drawing a line.
type DrawLineInput struct {
	Asset      string  `json:"asset" jsonschema:"asset name"`
	LayerID    int     `json:"layer_id" jsonschema:"image layer id"`
	FrameIndex int     `json:"frame_index" jsonschema:"frame index"`
	X0         float64 `json:"x0" jsonschema:"start x"`
	Y0         float64 `json:"y0" jsonschema:"start y"`
	X1         float64 `json:"x1" jsonschema:"end x"`
	Y1         float64 `json:"y1" jsonschema:"end y"`
	Index      int     `json:"index" jsonschema:"palette index to paint"`
}

// DrawLineTool defines the MCP tool schema for drawing lines.
func DrawLineTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "draw_line",
		Description: "Rasterizes an 8-connected line between two points and paints it with one palette index",
	}
}

// DrawLineHandler draws a line as an undoable command.
func DrawLineHandler(session *workspace.Session) mcp.ToolHandlerFor[DrawLineInput, PaintResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input DrawLineInput) (*mcp.CallToolResult, PaintResult, error) {
		_, span := startSpan(ctx, "draw_line")
		defer span.End()

		if err := session.DrawLine(input.Asset, input.LayerID, input.FrameIndex, input.X0, input.Y0, input.X1, input.Y1, input.Index); err != nil {
			return nil, PaintResult{}, toolError("draw line", err)
		}
		return nil, paintResult(input.Asset, input.LayerID, input.FrameIndex), nil
	}
}

// FillRegionInput represents the MCP tool input for flood filling.
type FillRegionInput struct {
	Asset      string  `json:"asset" jsonschema:"asset name"`
	LayerID    int     `json:"layer_id" jsonschema:"image layer id"`
	FrameIndex int     `json:"frame_index" jsonschema:"frame index"`
	X          float64 `json:"x" jsonschema:"fill start x"`
	Y          float64 `json:"y" jsonschema:"fill start y"`
	Index      int     `json:"index" jsonschema:"palette index to fill with"`
}

// FillRegionTool defines the MCP tool schema for flood filling.
func FillRegionTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "fill_region",
		Description: "Flood-fills the 4-connected region of matching pixels around a start point",
	}
}

// FillRegionHandler flood-fills as an undoable command.
func FillRegionHandler(session *workspace.Session) mcp.ToolHandlerFor[FillRegionInput, PaintResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input FillRegionInput) (*mcp.CallToolResult, PaintResult, error) {
		_, span := startSpan(ctx, "fill_region")
		defer span.End()

		if err := session.FillRegion(input.Asset, input.LayerID, input.FrameIndex, input.X, input.Y, input.Index); err != nil {
			return nil, PaintResult{}, toolError("fill region", err)
		}
		return nil, paintResult(input.Asset, input.LayerID, input.FrameIndex), nil
	}
}

// CopyRectInput represents the MCP tool input for copying a block.
type CopyRectInput struct {
	Asset      string `json:"asset" jsonschema:"asset name"`
	LayerID    int    `json:"layer_id" jsonschema:"image layer id"`
	FrameIndex int    `json:"frame_index" jsonschema:"frame index"`
	X          int    `json:"x" jsonschema:"rect left"`
	Y          int    `json:"y" jsonschema:"rect top"`
	Width      int    `json:"width" jsonschema:"rect width"`
	Height     int    `json:"height" jsonschema:"rect height"`
}

// CopyRectResult represents the MCP tool output for copying a block.
type CopyRectResult struct {
	Width  int `json:"width" jsonschema:"clipboard block width after clipping"`
	Height int `json:"height" jsonschema:"clipboard block height after clipping"`
}

// CopyRectTool defines the MCP tool schema for copying a block.
func CopyRectTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "copy_rect",
		Description: "Copies a rectangle of palette indices into the session clipboard; records no command",
	}
}

// CopyRectHandler copies a block into the clipboard.
func CopyRectHandler(session *workspace.Session) mcp.ToolHandlerFor[CopyRectInput, CopyRectResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input CopyRectInput) (*mcp.CallToolResult, CopyRectResult, error) {
		_, span := startSpan(ctx, "copy_rect")
		defer span.End()

		if err := session.CopyRect(input.Asset, input.LayerID, input.FrameIndex, input.X, input.Y, input.Width, input.Height); err != nil {
			return nil, CopyRectResult{}, toolError("copy rect", err)
		}
		block := session.ClipboardBlock()
		return nil, CopyRectResult{Width: block.Width, Height: block.Height}, nil
	}
}

// PasteClipboardInput represents the MCP tool input for pasting the
// clipboard.
type PasteClipboardInput struct {
	Asset      string `json:"asset" jsonschema:"asset name"`
	LayerID    int    `json:"layer_id" jsonschema:"image layer id"`
	FrameIndex int    `json:"frame_index" jsonschema:"frame index"`
	X          int    `json:"x" jsonschema:"paste left"`
	Y          int    `json:"y" jsonschema:"paste top"`
}

// PasteClipboardTool defines the MCP tool schema for pasting the clipboard.
func PasteClipboardTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "paste_clipboard",
		Description: "Stamps the clipboard block onto an image cel; pixels outside the cel are skipped",
	}
}

// PasteClipboardHandler pastes the clipboard as an undoable command.
func PasteClipboardHandler(session *workspace.Session) mcp.ToolHandlerFor[PasteClipboardInput, PaintResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input PasteClipboardInput) (*mcp.CallToolResult, PaintResult, error) {
		_, span := startSpan(ctx, "paste_clipboard")
		defer span.End()

		if err := session.PasteClipboard(input.Asset, input.LayerID, input.FrameIndex, input.X, input.Y); err != nil {
			return nil, PaintResult{}, toolError("paste clipboard", err)
		}
		return nil, paintResult(input.Asset, input.LayerID, input.FrameIndex), nil
	}
}

// ImportImageInput represents the MCP tool input for importing RGBA pixels.
type ImportImageInput struct {
	Asset      string `json:"asset" jsonschema:"asset name"`
	LayerID    int    `json:"layer_id" jsonschema:"image layer id"`
	FrameIndex int    `json:"frame_index" jsonschema:"frame index"`
	RGBA       string `json:"rgba" jsonschema:"base64-encoded RGBA bytes, four per pixel, row-major"`
	Width      int    `json:"width" jsonschema:"image width in pixels"`
	Height     int    `json:"height" jsonschema:"image height in pixels"`
	MaxColors  int    `json:"max_colors,omitempty" jsonschema:"palette budget, defaults to 256"`
}

// ImportImageResult represents the MCP tool output for importing pixels.
type ImportImageResult struct {
	Asset   string `json:"asset"`
	Key     string `json:"key" jsonschema:"written cel key"`
	Palette int    `json:"palette" jsonschema:"number of palette entries produced"`
}

// ImportImageTool defines the MCP tool schema for importing RGBA pixels.
func ImportImageTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "import_image",
		Description: "Quantizes raw RGBA pixels into the asset palette and writes the indexed cel; palette and cel undo together",
	}
}

// ImportImageHandler imports RGBA pixels as one undoable command.
func ImportImageHandler(session *workspace.Session) mcp.ToolHandlerFor[ImportImageInput, ImportImageResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input ImportImageInput) (*mcp.CallToolResult, ImportImageResult, error) {
		_, span := startSpan(ctx, "import_image")
		defer span.End()

		rgba, err := base64.StdEncoding.DecodeString(input.RGBA)
		if err != nil {
			return nil, ImportImageResult{}, toolError("import image: decode rgba", err)
		}
		if err := session.ImportImage(input.Asset, input.LayerID, input.FrameIndex, rgba, input.Width, input.Height, input.MaxColors); err != nil {
			return nil, ImportImageResult{}, toolError("import image", err)
		}

		a, err := session.Asset(input.Asset)
		if err != nil {
			return nil, ImportImageResult{}, toolError("import image", err)
		}
		set := 0
		for _, slot := range a.PaletteData() {
			if slot != nil {
				set++
			}
		}
		return nil, ImportImageResult{
			Asset:   input.Asset,
			Key:     paintResult(input.Asset, input.LayerID, input.FrameIndex).Key,
			Palette: set,
		}, nil
	}
}
