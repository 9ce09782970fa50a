package domain

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/pixelsmith/pixelsmith/internal/document"
	"github.com/pixelsmith/pixelsmith/internal/workspace"
)

// FrameAddInput represents the MCP tool input for adding a frame.
type FrameAddInput struct {
	Asset      string `json:"asset" jsonschema:"asset name"`
	DurationMS int    `json:"duration_ms,omitempty" jsonschema:"frame duration in milliseconds, defaults to 100"`
}

// FrameAddTool defines the MCP tool schema for adding frames.
func FrameAddTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "frame_add",
		Description: "Appends an animation frame to an asset",
	}
}

// FrameAddHandler adds a frame as an undoable command.
func FrameAddHandler(session *workspace.Session) mcp.ToolHandlerFor[FrameAddInput, document.Frame] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input FrameAddInput) (*mcp.CallToolResult, document.Frame, error) {
		_, span := startSpan(ctx, "frame_add")
		defer span.End()

		frame, err := session.AddFrame(input.Asset, input.DurationMS)
		if err != nil {
			return nil, document.Frame{}, toolError("frame add", err)
		}
		return nil, frame, nil
	}
}

// FrameRemoveInput represents the MCP tool input for removing a frame.
type FrameRemoveInput struct {
	Asset string `json:"asset" jsonschema:"asset name"`
	Index int    `json:"index" jsonschema:"frame index"`
}

// FrameRemoveResult represents the MCP tool output for removing a frame.
type FrameRemoveResult struct {
	Asset  string `json:"asset"`
	Frames int    `json:"frames" jsonschema:"remaining frame count"`
}

// FrameRemoveTool defines the MCP tool schema for removing frames.
func FrameRemoveTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "frame_remove",
		Description: "Deletes a frame, shifting later cels down and truncating overlapping frame tags",
	}
}

// FrameRemoveHandler removes a frame as an undoable command.
func FrameRemoveHandler(session *workspace.Session) mcp.ToolHandlerFor[FrameRemoveInput, FrameRemoveResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input FrameRemoveInput) (*mcp.CallToolResult, FrameRemoveResult, error) {
		_, span := startSpan(ctx, "frame_remove")
		defer span.End()

		if err := session.RemoveFrame(input.Asset, input.Index); err != nil {
			return nil, FrameRemoveResult{}, toolError("frame remove", err)
		}
		summary, err := assetSummary(session, input.Asset)
		if err != nil {
			return nil, FrameRemoveResult{}, toolError("frame remove", err)
		}
		return nil, FrameRemoveResult{Asset: input.Asset, Frames: summary.Frames}, nil
	}
}
