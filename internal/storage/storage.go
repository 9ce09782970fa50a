// Package storage defines the persistence boundary the editing core
// delegates to: asset document envelopes and project registries.
package storage

import (
	"context"
	"time"

	"github.com/pixelsmith/pixelsmith/internal/document"
	"github.com/pixelsmith/pixelsmith/internal/project"
)

// EnvelopeVersion tags the on-disk asset document format.
const EnvelopeVersion = 1

// Envelope wraps an asset document with its file-format version and
// timestamps.
type Envelope struct {
	Version    int                `json:"version"`
	CreatedAt  time.Time          `json:"created_at"`
	ModifiedAt time.Time          `json:"modified_at"`
	Asset      document.AssetData `json:"asset"`
}

// PaletteFile is the standalone palette file shape.
type PaletteFile struct {
	Name   string            `json:"name"`
	Colors []*document.Color `json:"colors"`
}

// AssetStore persists asset documents and palettes.
type AssetStore interface {
	SaveAsset(ctx context.Context, data document.AssetData) error
	LoadAsset(ctx context.Context, name string) (document.AssetData, error)
	SavePalette(ctx context.Context, file PaletteFile) error
	LoadPalette(ctx context.Context, name string) (PaletteFile, error)
}

// RegistryStore persists project registries.
type RegistryStore interface {
	PutProject(ctx context.Context, registry project.Registry) error
	GetProject(ctx context.Context, name string) (project.Registry, error)
	ListProjects(ctx context.Context) ([]string, error)
	DeleteProject(ctx context.Context, name string) error
}
