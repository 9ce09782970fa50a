package domain

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/pixelsmith/pixelsmith/internal/workspace"
)

// HistoryInput represents the empty MCP tool input for undo and redo.
type HistoryInput struct{}

// HistoryResult represents the MCP tool output for undo and redo.
type HistoryResult struct {
	UndoDepth int `json:"undo_depth" jsonschema:"commands left to undo"`
	RedoDepth int `json:"redo_depth" jsonschema:"commands left to redo"`
}

// UndoTool defines the MCP tool schema for undo.
func UndoTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "undo",
		Description: "Reverts the newest command on the shared history, whichever asset it touched",
	}
}

// UndoHandler reverts the newest command.
func UndoHandler(session *workspace.Session) mcp.ToolHandlerFor[HistoryInput, HistoryResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, _ HistoryInput) (*mcp.CallToolResult, HistoryResult, error) {
		_, span := startSpan(ctx, "undo")
		defer span.End()

		if err := session.Undo(); err != nil {
			return nil, HistoryResult{}, toolError("undo", err)
		}
		info := session.Info()
		return nil, HistoryResult{UndoDepth: info.UndoDepth, RedoDepth: info.RedoDepth}, nil
	}
}

// RedoTool defines the MCP tool schema for redo.
func RedoTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "redo",
		Description: "Reapplies the newest undone command on the shared history",
	}
}

// RedoHandler reapplies the newest undone command.
func RedoHandler(session *workspace.Session) mcp.ToolHandlerFor[HistoryInput, HistoryResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, _ HistoryInput) (*mcp.CallToolResult, HistoryResult, error) {
		_, span := startSpan(ctx, "redo")
		defer span.End()

		if err := session.Redo(); err != nil {
			return nil, HistoryResult{}, toolError("redo", err)
		}
		info := session.Info()
		return nil, HistoryResult{UndoDepth: info.UndoDepth, RedoDepth: info.RedoDepth}, nil
	}
}
