package domain

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/pixelsmith/pixelsmith/internal/document"
	"github.com/pixelsmith/pixelsmith/internal/workspace"
)

// LayerAddInput represents the MCP tool input for adding a layer.
type LayerAddInput struct {
	Asset        string `json:"asset" jsonschema:"asset name"`
	Name         string `json:"name" jsonschema:"layer name"`
	Type         string `json:"type" jsonschema:"layer type (image, tilemap, shape, group)"`
	ParentID     *int   `json:"parent_id,omitempty" jsonschema:"optional parent group layer id"`
	Opacity      *int   `json:"opacity,omitempty" jsonschema:"opacity 0-255, defaults to 255"`
	Role         string `json:"role,omitempty" jsonschema:"shape layers: role label such as collision"`
	PhysicsLayer int    `json:"physics_layer,omitempty" jsonschema:"shape layers: physics layer number"`
}

// LayerAddTool defines the MCP tool schema for adding layers.
func LayerAddTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "layer_add",
		Description: "Appends a layer to an asset",
	}
}

// LayerAddHandler adds a layer as an undoable command.
func LayerAddHandler(session *workspace.Session) mcp.ToolHandlerFor[LayerAddInput, document.Layer] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input LayerAddInput) (*mcp.CallToolResult, document.Layer, error) {
		_, span := startSpan(ctx, "layer_add")
		defer span.End()

		layer, err := session.AddLayer(input.Asset, document.AddLayerInput{
			Name:         input.Name,
			Type:         document.LayerType(input.Type),
			ParentID:     input.ParentID,
			Opacity:      input.Opacity,
			Role:         input.Role,
			PhysicsLayer: input.PhysicsLayer,
		})
		if err != nil {
			return nil, document.Layer{}, toolError("layer add", err)
		}
		return nil, layer, nil
	}
}

// LayerRemoveInput represents the MCP tool input for removing a layer.
type LayerRemoveInput struct {
	Asset   string `json:"asset" jsonschema:"asset name"`
	LayerID int    `json:"layer_id" jsonschema:"layer id"`
}

// LayerRemoveResult represents the MCP tool output for removing a layer.
type LayerRemoveResult struct {
	Asset   string `json:"asset"`
	LayerID int    `json:"layer_id"`
	Layers  int    `json:"layers" jsonschema:"remaining layer count"`
}

// LayerRemoveTool defines the MCP tool schema for removing layers.
func LayerRemoveTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "layer_remove",
		Description: "Deletes a layer together with its cels and its layer-tag references",
	}
}

// LayerRemoveHandler removes a layer as an undoable command.
func LayerRemoveHandler(session *workspace.Session) mcp.ToolHandlerFor[LayerRemoveInput, LayerRemoveResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input LayerRemoveInput) (*mcp.CallToolResult, LayerRemoveResult, error) {
		_, span := startSpan(ctx, "layer_remove")
		defer span.End()

		if err := session.RemoveLayer(input.Asset, input.LayerID); err != nil {
			return nil, LayerRemoveResult{}, toolError("layer remove", err)
		}
		summary, err := assetSummary(session, input.Asset)
		if err != nil {
			return nil, LayerRemoveResult{}, toolError("layer remove", err)
		}
		return nil, LayerRemoveResult{Asset: input.Asset, LayerID: input.LayerID, Layers: summary.Layers}, nil
	}
}

// LayerReorderInput represents the MCP tool input for moving a layer.
type LayerReorderInput struct {
	Asset       string `json:"asset" jsonschema:"asset name"`
	LayerID     int    `json:"layer_id" jsonschema:"layer id"`
	NewIndex    int    `json:"new_index" jsonschema:"target position in the layer list"`
	NewParentID *int   `json:"new_parent_id,omitempty" jsonschema:"optional new parent group layer id"`
	ClearParent bool   `json:"clear_parent,omitempty" jsonschema:"detach the layer from its parent group"`
}

// LayerReorderResult represents the MCP tool output for moving a layer.
type LayerReorderResult struct {
	Asset  string           `json:"asset"`
	Layers []document.Layer `json:"layers" jsonschema:"layer list after the move"`
}

// LayerReorderTool defines the MCP tool schema for moving layers.
func LayerReorderTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "layer_reorder",
		Description: "Moves a layer to a new position in the stack, optionally changing its parent group",
	}
}

// LayerReorderHandler moves a layer as an undoable command.
func LayerReorderHandler(session *workspace.Session) mcp.ToolHandlerFor[LayerReorderInput, LayerReorderResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input LayerReorderInput) (*mcp.CallToolResult, LayerReorderResult, error) {
		_, span := startSpan(ctx, "layer_reorder")
		defer span.End()

		err := session.ReorderLayer(input.Asset, document.ReorderLayerInput{
			ID:          input.LayerID,
			NewIndex:    input.NewIndex,
			NewParentID: input.NewParentID,
			ClearParent: input.ClearParent,
		})
		if err != nil {
			return nil, LayerReorderResult{}, toolError("layer reorder", err)
		}
		a, err := session.Asset(input.Asset)
		if err != nil {
			return nil, LayerReorderResult{}, toolError("layer reorder", err)
		}
		return nil, LayerReorderResult{Asset: input.Asset, Layers: a.Layers()}, nil
	}
}
