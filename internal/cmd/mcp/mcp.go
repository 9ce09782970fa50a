// Package mcp parses MCP command flags and wires the stores, session, and
// server together.
package mcp

import (
	"context"
	"flag"
	"log"
	"time"

	"github.com/pixelsmith/pixelsmith/internal/mcp/service"
	"github.com/pixelsmith/pixelsmith/internal/platform/config"
	"github.com/pixelsmith/pixelsmith/internal/platform/otel"
	"github.com/pixelsmith/pixelsmith/internal/storage/assetdir"
	"github.com/pixelsmith/pixelsmith/internal/storage/sqlite"
	"github.com/pixelsmith/pixelsmith/internal/workspace"
)

// envKeys lists the environment variables the MCP command reads.
var envKeys = []string{
	"PIXELSMITH_ASSET_DIR",
	"PIXELSMITH_REGISTRY_DB",
	"PIXELSMITH_HISTORY_DEPTH",
	"PIXELSMITH_MCP_TRANSPORT",
}

// Config holds MCP command configuration.
type Config struct {
	AssetDir     string `env:"PIXELSMITH_ASSET_DIR"     envDefault:"assets"`
	RegistryDB   string `env:"PIXELSMITH_REGISTRY_DB"   envDefault:"pixelsmith.db"`
	HistoryDepth int    `env:"PIXELSMITH_HISTORY_DEPTH" envDefault:"100"`
	Transport    string `env:"PIXELSMITH_MCP_TRANSPORT" envDefault:"stdio"`
}

// ParseConfig parses environment and flags into a Config. Flags win over
// environment values.
func ParseConfig(fs *flag.FlagSet, args []string, lookupEnv func(string) (string, bool)) (Config, error) {
	environment := make(map[string]string, len(envKeys))
	for _, key := range envKeys {
		if value, ok := lookupEnv(key); ok {
			environment[key] = value
		}
	}

	var cfg Config
	if err := config.ParseEnvFrom(&cfg, environment); err != nil {
		return Config{}, err
	}

	fs.StringVar(&cfg.AssetDir, "asset-dir", cfg.AssetDir, "directory holding asset document files")
	fs.StringVar(&cfg.RegistryDB, "registry-db", cfg.RegistryDB, "path of the project registry SQLite database")
	fs.IntVar(&cfg.HistoryDepth, "history-depth", cfg.HistoryDepth, "undo history depth cap")
	fs.StringVar(&cfg.Transport, "transport", cfg.Transport, "transport type: stdio")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run starts the Pixelsmith MCP server and blocks until the context ends.
func Run(ctx context.Context, cfg Config) error {
	shutdown, err := otel.Setup(ctx, "pixelsmith-mcp")
	if err != nil {
		return err
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			log.Printf("otel shutdown: %v", err)
		}
	}()

	assets, err := assetdir.Open(cfg.AssetDir)
	if err != nil {
		return err
	}
	projects, err := sqlite.Open(cfg.RegistryDB)
	if err != nil {
		return err
	}
	defer func() {
		if err := projects.Close(); err != nil {
			log.Printf("close registry store: %v", err)
		}
	}()

	session := workspace.NewSession(assets, cfg.HistoryDepth)
	log.Printf("serving MCP over %s (assets %s, registry %s)", cfg.Transport, cfg.AssetDir, cfg.RegistryDB)
	return service.Run(ctx, session, projects, service.Config{
		Transport: service.TransportKind(cfg.Transport),
	})
}
