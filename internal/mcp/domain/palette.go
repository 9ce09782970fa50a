package domain

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/pixelsmith/pixelsmith/internal/document"
	apperrors "github.com/pixelsmith/pixelsmith/internal/errors"
	"github.com/pixelsmith/pixelsmith/internal/workspace"
)

// PaletteEntryInput pairs a palette index with an RGBA color.
type PaletteEntryInput struct {
	Index int   `json:"index" jsonschema:"palette slot 0-255"`
	Color []int `json:"color" jsonschema:"RGBA channels, four values 0-255"`
}

// PaletteSetInput represents the MCP tool input for writing palette slots.
type PaletteSetInput struct {
	Asset   string              `json:"asset" jsonschema:"asset name"`
	Entries []PaletteEntryInput `json:"entries" jsonschema:"slots to write; applied atomically"`
}

// PaletteSetResult represents the MCP tool output for writing palette slots.
type PaletteSetResult struct {
	Asset   string `json:"asset"`
	Written int    `json:"written" jsonschema:"number of slots written"`
}

// PaletteSetTool defines the MCP tool schema for writing palette slots.
func PaletteSetTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "palette_set",
		Description: "Writes a batch of palette slots atomically as one undoable command",
	}
}

// PaletteSetHandler writes palette slots as an undoable command.
func PaletteSetHandler(session *workspace.Session) mcp.ToolHandlerFor[PaletteSetInput, PaletteSetResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input PaletteSetInput) (*mcp.CallToolResult, PaletteSetResult, error) {
		_, span := startSpan(ctx, "palette_set")
		defer span.End()

		entries := make([]document.PaletteEntry, len(input.Entries))
		for i, e := range input.Entries {
			if len(e.Color) != 4 {
				return nil, PaletteSetResult{}, toolError("palette set",
					apperrors.New(apperrors.CodeInvalidArgument, fmt.Sprintf("entry %d has %d channels, want 4", i, len(e.Color))))
			}
			entries[i] = document.PaletteEntry{
				Index: e.Index,
				Color: document.Color{e.Color[0], e.Color[1], e.Color[2], e.Color[3]},
			}
		}
		if err := session.SetPaletteColors(input.Asset, entries); err != nil {
			return nil, PaletteSetResult{}, toolError("palette set", err)
		}
		return nil, PaletteSetResult{Asset: input.Asset, Written: len(entries)}, nil
	}
}

// PaletteSwapInput represents the MCP tool input for swapping palette slots.
type PaletteSwapInput struct {
	Asset string `json:"asset" jsonschema:"asset name"`
	From  int    `json:"from" jsonschema:"first palette slot"`
	To    int    `json:"to" jsonschema:"second palette slot"`
}

// PaletteSwapResult represents the MCP tool output for swapping palette
// slots.
type PaletteSwapResult struct {
	Asset string `json:"asset"`
	From  int    `json:"from"`
	To    int    `json:"to"`
}

// PaletteSwapTool defines the MCP tool schema for swapping palette slots.
func PaletteSwapTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "palette_swap",
		Description: "Exchanges two palette slots, including their unset state",
	}
}

// PaletteSwapHandler swaps palette slots as an undoable command.
func PaletteSwapHandler(session *workspace.Session) mcp.ToolHandlerFor[PaletteSwapInput, PaletteSwapResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input PaletteSwapInput) (*mcp.CallToolResult, PaletteSwapResult, error) {
		_, span := startSpan(ctx, "palette_swap")
		defer span.End()

		if err := session.SwapPaletteColors(input.Asset, input.From, input.To); err != nil {
			return nil, PaletteSwapResult{}, toolError("palette swap", err)
		}
		return nil, PaletteSwapResult{Asset: input.Asset, From: input.From, To: input.To}, nil
	}
}
