package domain

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/pixelsmith/pixelsmith/internal/document"
	"github.com/pixelsmith/pixelsmith/internal/workspace"
)

// TagFramesInput describes a frame-range tag payload.
type TagFramesInput struct {
	From      int    `json:"from" jsonschema:"first frame index, inclusive"`
	To        int    `json:"to" jsonschema:"last frame index, inclusive"`
	Direction string `json:"direction" jsonschema:"playback direction (forward, reverse, pingpong)"`
	Facing    string `json:"facing,omitempty" jsonschema:"optional facing label"`
}

// TagAddInput represents the MCP tool input for adding a tag. Exactly one
// of frames or layer_ids must be given.
type TagAddInput struct {
	Asset    string          `json:"asset" jsonschema:"asset name"`
	Name     string          `json:"name" jsonschema:"tag name, unique per asset"`
	Frames   *TagFramesInput `json:"frames,omitempty" jsonschema:"frame-range payload"`
	LayerIDs []int           `json:"layer_ids,omitempty" jsonschema:"layer-set payload"`
}

// TagAddTool defines the MCP tool schema for adding tags.
func TagAddTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "tag_add",
		Description: "Adds a named frame-range or layer-set tag to an asset",
	}
}

// TagAddHandler adds a tag as an undoable command.
func TagAddHandler(session *workspace.Session) mcp.ToolHandlerFor[TagAddInput, document.Tag] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input TagAddInput) (*mcp.CallToolResult, document.Tag, error) {
		_, span := startSpan(ctx, "tag_add")
		defer span.End()

		tag := document.Tag{Name: input.Name}
		if input.Frames != nil {
			tag.Frames = &document.FrameTag{
				From:      input.Frames.From,
				To:        input.Frames.To,
				Direction: document.PlaybackDirection(input.Frames.Direction),
				Facing:    input.Frames.Facing,
			}
		}
		if len(input.LayerIDs) > 0 {
			tag.Layers = &document.LayerTag{LayerIDs: input.LayerIDs}
		}
		if err := session.AddTag(input.Asset, tag); err != nil {
			return nil, document.Tag{}, toolError("tag add", err)
		}
		return nil, tag, nil
	}
}

// TagRemoveInput represents the MCP tool input for removing a tag.
type TagRemoveInput struct {
	Asset string `json:"asset" jsonschema:"asset name"`
	Name  string `json:"name" jsonschema:"tag name"`
}

// TagRemoveResult represents the MCP tool output for removing a tag.
type TagRemoveResult struct {
	Asset string `json:"asset"`
	Tags  int    `json:"tags" jsonschema:"remaining tag count"`
}

// TagRemoveTool defines the MCP tool schema for removing tags.
func TagRemoveTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "tag_remove",
		Description: "Deletes a named tag from an asset",
	}
}

// TagRemoveHandler removes a tag as an undoable command.
func TagRemoveHandler(session *workspace.Session) mcp.ToolHandlerFor[TagRemoveInput, TagRemoveResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input TagRemoveInput) (*mcp.CallToolResult, TagRemoveResult, error) {
		_, span := startSpan(ctx, "tag_remove")
		defer span.End()

		if err := session.RemoveTag(input.Asset, input.Name); err != nil {
			return nil, TagRemoveResult{}, toolError("tag remove", err)
		}
		summary, err := assetSummary(session, input.Asset)
		if err != nil {
			return nil, TagRemoveResult{}, toolError("tag remove", err)
		}
		return nil, TagRemoveResult{Asset: input.Asset, Tags: summary.Tags}, nil
	}
}
