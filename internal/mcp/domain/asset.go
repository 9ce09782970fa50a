package domain

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/pixelsmith/pixelsmith/internal/document"
	"github.com/pixelsmith/pixelsmith/internal/workspace"
)

// AssetCreateInput represents the MCP tool input for creating an asset.
type AssetCreateInput struct {
	Name        string `json:"name" jsonschema:"asset name"`
	Width       int    `json:"width" jsonschema:"canvas width in pixels"`
	Height      int    `json:"height" jsonschema:"canvas height in pixels"`
	Perspective string `json:"perspective,omitempty" jsonschema:"optional perspective label such as side or top-down"`
}

// AssetCreateTool defines the MCP tool schema for creating assets.
func AssetCreateTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "asset_create",
		Description: "Creates a new asset document with one image layer and one frame and loads it into the session",
	}
}

// AssetCreateHandler scaffolds a fresh asset in the session.
func AssetCreateHandler(session *workspace.Session) mcp.ToolHandlerFor[AssetCreateInput, workspace.AssetInfo] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input AssetCreateInput) (*mcp.CallToolResult, workspace.AssetInfo, error) {
		_, span := startSpan(ctx, "asset_create")
		defer span.End()

		if err := session.CreateAsset(input.Name, input.Width, input.Height, input.Perspective); err != nil {
			return nil, workspace.AssetInfo{}, toolError("asset create", err)
		}
		summary, err := assetSummary(session, input.Name)
		if err != nil {
			return nil, workspace.AssetInfo{}, toolError("asset create", err)
		}
		return nil, summary, nil
	}
}

// AssetNameInput addresses a single asset by name.
type AssetNameInput struct {
	Name string `json:"name" jsonschema:"asset name"`
}

// AssetLoadTool defines the MCP tool schema for loading assets.
func AssetLoadTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "asset_load",
		Description: "Loads an asset document from the asset store into the session",
	}
}

// AssetLoadHandler reads an asset from the store.
func AssetLoadHandler(session *workspace.Session) mcp.ToolHandlerFor[AssetNameInput, workspace.AssetInfo] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input AssetNameInput) (*mcp.CallToolResult, workspace.AssetInfo, error) {
		ctx, span := startSpan(ctx, "asset_load")
		defer span.End()

		if err := session.LoadAsset(ctx, input.Name); err != nil {
			return nil, workspace.AssetInfo{}, toolError("asset load", err)
		}
		summary, err := assetSummary(session, input.Name)
		if err != nil {
			return nil, workspace.AssetInfo{}, toolError("asset load", err)
		}
		return nil, summary, nil
	}
}

// AssetUnloadResult represents the MCP tool output for unloading an asset.
type AssetUnloadResult struct {
	Name       string `json:"name" jsonschema:"asset name"`
	HadUnsaved bool   `json:"had_unsaved" jsonschema:"true when the asset had unsaved changes"`
}

// AssetUnloadTool defines the MCP tool schema for unloading assets.
func AssetUnloadTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "asset_unload",
		Description: "Removes an asset document from the session, reporting whether changes were unsaved",
	}
}

// AssetUnloadHandler drops an asset from the session.
func AssetUnloadHandler(session *workspace.Session) mcp.ToolHandlerFor[AssetNameInput, AssetUnloadResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input AssetNameInput) (*mcp.CallToolResult, AssetUnloadResult, error) {
		_, span := startSpan(ctx, "asset_unload")
		defer span.End()

		hadUnsaved, err := session.UnloadAsset(input.Name)
		if err != nil {
			return nil, AssetUnloadResult{}, toolError("asset unload", err)
		}
		return nil, AssetUnloadResult{Name: input.Name, HadUnsaved: hadUnsaved}, nil
	}
}

// AssetSaveInput represents the MCP tool input for saving assets.
type AssetSaveInput struct {
	Name string `json:"name,omitempty" jsonschema:"asset name; omit to save every dirty asset"`
}

// AssetSaveResult represents the MCP tool output for saving assets.
type AssetSaveResult struct {
	Saved []string `json:"saved" jsonschema:"names of the saved assets"`
}

// AssetSaveTool defines the MCP tool schema for saving assets.
func AssetSaveTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "asset_save",
		Description: "Writes one named asset, or every dirty asset, through the asset store",
	}
}

// AssetSaveHandler saves one or all dirty assets.
func AssetSaveHandler(session *workspace.Session) mcp.ToolHandlerFor[AssetSaveInput, AssetSaveResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input AssetSaveInput) (*mcp.CallToolResult, AssetSaveResult, error) {
		ctx, span := startSpan(ctx, "asset_save")
		defer span.End()

		if input.Name != "" {
			if err := session.Save(ctx, input.Name); err != nil {
				return nil, AssetSaveResult{}, toolError("asset save", err)
			}
			return nil, AssetSaveResult{Saved: []string{input.Name}}, nil
		}
		saved, err := session.SaveAll(ctx)
		if err != nil {
			return nil, AssetSaveResult{}, toolError("asset save", err)
		}
		if saved == nil {
			saved = []string{}
		}
		return nil, AssetSaveResult{Saved: saved}, nil
	}
}

// AssetInfoInput represents the MCP tool input for the info tool.
type AssetInfoInput struct {
	Name string `json:"name,omitempty" jsonschema:"asset name; omit for a whole-session summary"`
}

// AssetDetail represents the detailed MCP tool output for one asset.
type AssetDetail struct {
	Name        string           `json:"name"`
	Width       int              `json:"width"`
	Height      int              `json:"height"`
	Perspective string           `json:"perspective,omitempty"`
	Layers      []document.Layer `json:"layers"`
	Frames      []document.Frame `json:"frames"`
	Tags        []document.Tag   `json:"tags"`
	Cels        []string         `json:"cels" jsonschema:"cel keys as layerID/frameIndex"`
	Dirty       bool             `json:"dirty"`
}

// AssetInfoResult represents the MCP tool output for the info tool.
type AssetInfoResult struct {
	Session *workspace.Info `json:"session,omitempty"`
	Asset   *AssetDetail    `json:"asset,omitempty"`
}

// AssetInfoTool defines the MCP tool schema for inspecting state.
func AssetInfoTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "asset_info",
		Description: "Describes one asset in detail, or summarizes the whole session when no name is given",
	}
}

// AssetInfoHandler reports session or per-asset state.
func AssetInfoHandler(session *workspace.Session) mcp.ToolHandlerFor[AssetInfoInput, AssetInfoResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input AssetInfoInput) (*mcp.CallToolResult, AssetInfoResult, error) {
		_, span := startSpan(ctx, "asset_info")
		defer span.End()

		if input.Name == "" {
			info := session.Info()
			return nil, AssetInfoResult{Session: &info}, nil
		}
		a, err := session.Asset(input.Name)
		if err != nil {
			return nil, AssetInfoResult{}, toolError("asset info", err)
		}
		cels := a.Cels()
		keys := make([]string, 0, len(cels))
		for key := range cels {
			keys = append(keys, key)
		}
		detail := AssetDetail{
			Name:        a.Name(),
			Width:       a.Width(),
			Height:      a.Height(),
			Perspective: a.Perspective(),
			Layers:      a.Layers(),
			Frames:      a.Frames(),
			Tags:        a.Tags(),
			Cels:        keys,
			Dirty:       a.Dirty(),
		}
		return nil, AssetInfoResult{Asset: &detail}, nil
	}
}

// AssetResizeInput represents the MCP tool input for resizing an asset.
type AssetResizeInput struct {
	Name   string `json:"name" jsonschema:"asset name"`
	Width  int    `json:"width" jsonschema:"new canvas width in pixels"`
	Height int    `json:"height" jsonschema:"new canvas height in pixels"`
}

// AssetResizeTool defines the MCP tool schema for resizing assets.
func AssetResizeTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "asset_resize",
		Description: "Resizes the canvas, padding new area with palette index 0; undo restores discarded pixels",
	}
}

// AssetResizeHandler resizes the canvas as an undoable command.
func AssetResizeHandler(session *workspace.Session) mcp.ToolHandlerFor[AssetResizeInput, workspace.AssetInfo] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input AssetResizeInput) (*mcp.CallToolResult, workspace.AssetInfo, error) {
		_, span := startSpan(ctx, "asset_resize")
		defer span.End()

		if err := session.ResizeAsset(input.Name, input.Width, input.Height); err != nil {
			return nil, workspace.AssetInfo{}, toolError("asset resize", err)
		}
		summary, err := assetSummary(session, input.Name)
		if err != nil {
			return nil, workspace.AssetInfo{}, toolError("asset resize", err)
		}
		return nil, summary, nil
	}
}

// AssetRenameInput represents the MCP tool input for renaming an asset.
type AssetRenameInput struct {
	Name    string `json:"name" jsonschema:"current asset name"`
	NewName string `json:"new_name" jsonschema:"new asset name"`
}

// AssetRenameTool defines the MCP tool schema for renaming assets.
func AssetRenameTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "asset_rename",
		Description: "Renames a loaded asset, following the selection and project registry entry",
	}
}

// AssetRenameHandler renames an asset as an undoable command.
func AssetRenameHandler(session *workspace.Session) mcp.ToolHandlerFor[AssetRenameInput, workspace.AssetInfo] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input AssetRenameInput) (*mcp.CallToolResult, workspace.AssetInfo, error) {
		_, span := startSpan(ctx, "asset_rename")
		defer span.End()

		if err := session.RenameAsset(input.Name, input.NewName); err != nil {
			return nil, workspace.AssetInfo{}, toolError("asset rename", err)
		}
		summary, err := assetSummary(session, input.NewName)
		if err != nil {
			return nil, workspace.AssetInfo{}, toolError("asset rename", err)
		}
		return nil, summary, nil
	}
}

// AssetSelectInput represents the MCP tool input for setting the selection.
type AssetSelectInput struct {
	Name       string `json:"name" jsonschema:"asset name"`
	LayerID    *int   `json:"layer_id,omitempty" jsonschema:"optional layer id"`
	FrameIndex *int   `json:"frame_index,omitempty" jsonschema:"optional frame index"`
}

// AssetSelectResult represents the MCP tool output for setting the selection.
type AssetSelectResult struct {
	Asset      string `json:"asset"`
	LayerID    *int   `json:"layer_id,omitempty"`
	FrameIndex *int   `json:"frame_index,omitempty"`
}

// AssetSelectTool defines the MCP tool schema for setting the selection.
func AssetSelectTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "asset_select",
		Description: "Points the session selection at an asset, optionally down to a layer and frame",
	}
}

// AssetSelectHandler sets the active selection.
func AssetSelectHandler(session *workspace.Session) mcp.ToolHandlerFor[AssetSelectInput, AssetSelectResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input AssetSelectInput) (*mcp.CallToolResult, AssetSelectResult, error) {
		_, span := startSpan(ctx, "asset_select")
		defer span.End()

		if err := session.Select(input.Name, input.LayerID, input.FrameIndex); err != nil {
			return nil, AssetSelectResult{}, toolError("asset select", err)
		}
		sel := session.Selection()
		return nil, AssetSelectResult{Asset: sel.Asset, LayerID: sel.LayerID, FrameIndex: sel.FrameIndex}, nil
	}
}
