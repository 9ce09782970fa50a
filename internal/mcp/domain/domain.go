// Package domain defines the MCP tool schemas and handlers that expose the
// workspace session to orchestrating clients.
package domain

import (
	"context"
	"errors"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	apperrors "github.com/pixelsmith/pixelsmith/internal/errors"
	"github.com/pixelsmith/pixelsmith/internal/raster"
	"github.com/pixelsmith/pixelsmith/internal/workspace"
)

// tracerName identifies tool dispatch spans.
const tracerName = "pixelsmith/mcp"

// startSpan opens a tracing span around one tool invocation. The span is a
// no-op unless telemetry was set up at startup.
func startSpan(ctx context.Context, tool string) (context.Context, trace.Span) {
	return otel.Tracer(tracerName).Start(ctx, tool)
}

// toolError shapes a failed operation for the tool caller. Domain errors
// become gRPC statuses carrying the code and metadata as an ErrorInfo
// detail; anything else passes through wrapped.
func toolError(op string, err error) error {
	var domainErr *apperrors.Error
	if errors.As(err, &domainErr) {
		return fmt.Errorf("%s: %w", op, domainErr.ToGRPCStatus())
	}
	return fmt.Errorf("%s: %w", op, err)
}

// PointInput is one grid coordinate in tool arguments.
type PointInput struct {
	X int `json:"x" jsonschema:"x coordinate"`
	Y int `json:"y" jsonschema:"y coordinate"`
}

func toRasterPoints(points []PointInput) []raster.Point {
	out := make([]raster.Point, len(points))
	for i, p := range points {
		out[i] = raster.Point{X: p.X, Y: p.Y}
	}
	return out
}

// assetSummary builds the per-asset summary returned by asset tools.
func assetSummary(session *workspace.Session, name string) (workspace.AssetInfo, error) {
	a, err := session.Asset(name)
	if err != nil {
		return workspace.AssetInfo{}, err
	}
	return workspace.AssetInfo{
		Name:   a.Name(),
		Width:  a.Width(),
		Height: a.Height(),
		Layers: len(a.Layers()),
		Frames: a.FrameCount(),
		Cels:   len(a.Cels()),
		Tags:   len(a.Tags()),
		Dirty:  a.Dirty(),
	}, nil
}
