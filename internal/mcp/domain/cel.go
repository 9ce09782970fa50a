package domain

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/pixelsmith/pixelsmith/internal/document"
	"github.com/pixelsmith/pixelsmith/internal/workspace"
)

// CelSetInput represents the MCP tool input for storing a cel. Exactly one
// payload field must be set, and it must fit the owning layer's type.
type CelSetInput struct {
	Asset      string               `json:"asset" jsonschema:"asset name"`
	LayerID    int                  `json:"layer_id" jsonschema:"layer id"`
	FrameIndex int                  `json:"frame_index" jsonschema:"frame index"`
	Image      *document.ImageCel   `json:"image,omitempty" jsonschema:"image payload: palette-index grid plus offset"`
	Tilemap    *document.TilemapCel `json:"tilemap,omitempty" jsonschema:"tilemap payload: tile-index grid, -1 is empty"`
	Shape      *document.ShapeCel   `json:"shape,omitempty" jsonschema:"shape payload: named rects and polygons"`
	Link       string               `json:"link,omitempty" jsonschema:"link payload: target cel key layerID/frameIndex"`
}

// CelSetResult represents the MCP tool output for storing a cel.
type CelSetResult struct {
	Asset string `json:"asset"`
	Key   string `json:"key" jsonschema:"cel key as layerID/frameIndex"`
	Type  string `json:"type" jsonschema:"cel payload variant"`
}

// CelSetTool defines the MCP tool schema for storing cels.
func CelSetTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "cel_set",
		Description: "Stores a cel at a layer and frame; the payload variant must match the layer type",
	}
}

// CelSetHandler stores a cel as an undoable command.
func CelSetHandler(session *workspace.Session) mcp.ToolHandlerFor[CelSetInput, CelSetResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input CelSetInput) (*mcp.CallToolResult, CelSetResult, error) {
		_, span := startSpan(ctx, "cel_set")
		defer span.End()

		cel := document.Cel{
			Image:   input.Image,
			Tilemap: input.Tilemap,
			Shape:   input.Shape,
			Link:    input.Link,
		}
		if err := session.SetCel(input.Asset, input.LayerID, input.FrameIndex, cel); err != nil {
			return nil, CelSetResult{}, toolError("cel set", err)
		}
		typ, err := cel.Type()
		if err != nil {
			return nil, CelSetResult{}, toolError("cel set", err)
		}
		return nil, CelSetResult{
			Asset: input.Asset,
			Key:   document.PackCelKey(input.LayerID, input.FrameIndex),
			Type:  string(typ),
		}, nil
	}
}

// CelRemoveInput represents the MCP tool input for removing a cel.
type CelRemoveInput struct {
	Asset      string `json:"asset" jsonschema:"asset name"`
	LayerID    int    `json:"layer_id" jsonschema:"layer id"`
	FrameIndex int    `json:"frame_index" jsonschema:"frame index"`
}

// CelRemoveResult represents the MCP tool output for removing a cel.
type CelRemoveResult struct {
	Asset string `json:"asset"`
	Key   string `json:"key" jsonschema:"removed cel key"`
}

// CelRemoveTool defines the MCP tool schema for removing cels.
func CelRemoveTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "cel_remove",
		Description: "Clears the cel at a layer and frame",
	}
}

// CelRemoveHandler removes a cel as an undoable command.
func CelRemoveHandler(session *workspace.Session) mcp.ToolHandlerFor[CelRemoveInput, CelRemoveResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input CelRemoveInput) (*mcp.CallToolResult, CelRemoveResult, error) {
		_, span := startSpan(ctx, "cel_remove")
		defer span.End()

		if err := session.RemoveCel(input.Asset, input.LayerID, input.FrameIndex); err != nil {
			return nil, CelRemoveResult{}, toolError("cel remove", err)
		}
		return nil, CelRemoveResult{
			Asset: input.Asset,
			Key:   document.PackCelKey(input.LayerID, input.FrameIndex),
		}, nil
	}
}
