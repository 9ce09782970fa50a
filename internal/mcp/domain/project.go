package domain

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	apperrors "github.com/pixelsmith/pixelsmith/internal/errors"
	"github.com/pixelsmith/pixelsmith/internal/project"
	"github.com/pixelsmith/pixelsmith/internal/storage"
	"github.com/pixelsmith/pixelsmith/internal/workspace"
)

// ProjectOpenInput represents the MCP tool input for opening a project.
type ProjectOpenInput struct {
	Name string `json:"name" jsonschema:"project name"`
}

// ProjectOpenResult represents the MCP tool output for opening a project.
type ProjectOpenResult struct {
	Name    string `json:"name" jsonschema:"project name"`
	Assets  int    `json:"assets" jsonschema:"number of registered assets"`
	Created bool   `json:"created" jsonschema:"true when the project was created on open"`
}

// ProjectOpenTool defines the MCP tool schema for opening projects.
func ProjectOpenTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "project_open",
		Description: "Opens a project registry, creating it when missing, and binds the session to it",
	}
}

// ProjectOpenHandler loads or creates a project registry and binds the
// session to it.
func ProjectOpenHandler(session *workspace.Session, projects storage.RegistryStore) mcp.ToolHandlerFor[ProjectOpenInput, ProjectOpenResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input ProjectOpenInput) (*mcp.CallToolResult, ProjectOpenResult, error) {
		ctx, span := startSpan(ctx, "project_open")
		defer span.End()

		created := false
		registry, err := projects.GetProject(ctx, input.Name)
		if apperrors.IsCode(err, apperrors.CodeNotFound) {
			fresh, newErr := project.NewRegistry(input.Name)
			if newErr != nil {
				return nil, ProjectOpenResult{}, toolError("project open", newErr)
			}
			if putErr := projects.PutProject(ctx, *fresh); putErr != nil {
				return nil, ProjectOpenResult{}, toolError("project open", putErr)
			}
			registry = *fresh
			created = true
		} else if err != nil {
			return nil, ProjectOpenResult{}, toolError("project open", err)
		}

		session.OpenProject(&registry)
		return nil, ProjectOpenResult{
			Name:    registry.Name,
			Assets:  len(registry.Assets),
			Created: created,
		}, nil
	}
}
