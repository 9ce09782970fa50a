package service

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/pixelsmith/pixelsmith/internal/mcp/domain"
	"github.com/pixelsmith/pixelsmith/internal/storage"
	"github.com/pixelsmith/pixelsmith/internal/workspace"
)

func registerProjectTools(mcpServer *mcp.Server, session *workspace.Session, projects storage.RegistryStore) {
	mcp.AddTool(mcpServer, domain.ProjectOpenTool(), domain.ProjectOpenHandler(session, projects))
}

func registerAssetTools(mcpServer *mcp.Server, session *workspace.Session) {
	mcp.AddTool(mcpServer, domain.AssetCreateTool(), domain.AssetCreateHandler(session))
	mcp.AddTool(mcpServer, domain.AssetLoadTool(), domain.AssetLoadHandler(session))
	mcp.AddTool(mcpServer, domain.AssetUnloadTool(), domain.AssetUnloadHandler(session))
	mcp.AddTool(mcpServer, domain.AssetSaveTool(), domain.AssetSaveHandler(session))
	mcp.AddTool(mcpServer, domain.AssetInfoTool(), domain.AssetInfoHandler(session))
	mcp.AddTool(mcpServer, domain.AssetResizeTool(), domain.AssetResizeHandler(session))
	mcp.AddTool(mcpServer, domain.AssetRenameTool(), domain.AssetRenameHandler(session))
	mcp.AddTool(mcpServer, domain.AssetSelectTool(), domain.AssetSelectHandler(session))
}

func registerStructureTools(mcpServer *mcp.Server, session *workspace.Session) {
	mcp.AddTool(mcpServer, domain.LayerAddTool(), domain.LayerAddHandler(session))
	mcp.AddTool(mcpServer, domain.LayerRemoveTool(), domain.LayerRemoveHandler(session))
	mcp.AddTool(mcpServer, domain.LayerReorderTool(), domain.LayerReorderHandler(session))
	mcp.AddTool(mcpServer, domain.FrameAddTool(), domain.FrameAddHandler(session))
	mcp.AddTool(mcpServer, domain.FrameRemoveTool(), domain.FrameRemoveHandler(session))
	mcp.AddTool(mcpServer, domain.TagAddTool(), domain.TagAddHandler(session))
	mcp.AddTool(mcpServer, domain.TagRemoveTool(), domain.TagRemoveHandler(session))
	mcp.AddTool(mcpServer, domain.CelSetTool(), domain.CelSetHandler(session))
	mcp.AddTool(mcpServer, domain.CelRemoveTool(), domain.CelRemoveHandler(session))
	mcp.AddTool(mcpServer, domain.PaletteSetTool(), domain.PaletteSetHandler(session))
	mcp.AddTool(mcpServer, domain.PaletteSwapTool(), domain.PaletteSwapHandler(session))
}

func registerPaintTools(mcpServer *mcp.Server, session *workspace.Session) {
	mcp.AddTool(mcpServer, domain.DrawPixelsTool(), domain.DrawPixelsHandler(session))
	mcp.AddTool(mcpServer, domain.ClearPixelsTool(), domain.ClearPixelsHandler(session))
	mcp.AddTool(mcpServer, domain.DrawLineTool(), domain.DrawLineHandler(session))
	mcp.AddTool(mcpServer, domain.FillRegionTool(), domain.FillRegionHandler(session))
	mcp.AddTool(mcpServer, domain.CopyRectTool(), domain.CopyRectHandler(session))
	mcp.AddTool(mcpServer, domain.PasteClipboardTool(), domain.PasteClipboardHandler(session))
	mcp.AddTool(mcpServer, domain.ImportImageTool(), domain.ImportImageHandler(session))
}

func registerHistoryTools(mcpServer *mcp.Server, session *workspace.Session) {
	mcp.AddTool(mcpServer, domain.UndoTool(), domain.UndoHandler(session))
	mcp.AddTool(mcpServer, domain.RedoTool(), domain.RedoHandler(session))
}
