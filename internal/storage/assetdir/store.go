// Package assetdir stores asset documents and palettes as JSON envelopes
// in a flat directory, one file per logical name.
package assetdir

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pixelsmith/pixelsmith/internal/document"
	apperrors "github.com/pixelsmith/pixelsmith/internal/errors"
	"github.com/pixelsmith/pixelsmith/internal/storage"
)

// Store writes asset and palette files under a base directory.
type Store struct {
	dir   string
	clock func() time.Time
}

// Open prepares an asset directory store, creating the directory when
// missing.
func Open(dir string) (*Store, error) {
	if strings.TrimSpace(dir) == "" {
		return nil, fmt.Errorf("asset directory is required")
	}
	dir = filepath.Clean(dir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create asset directory: %w", err)
	}
	return &Store{dir: dir, clock: time.Now}, nil
}

func (s *Store) assetPath(name string) string {
	return filepath.Join(s.dir, name+".json")
}

func (s *Store) palettePath(name string) string {
	return filepath.Join(s.dir, name+".palette.json")
}

// validName rejects names that would escape the directory.
func validName(name string) error {
	if strings.TrimSpace(name) == "" {
		return apperrors.New(apperrors.CodeInvalidArgument, "asset name is required")
	}
	if name != filepath.Base(name) || strings.ContainsAny(name, `/\`) {
		return apperrors.New(apperrors.CodeInvalidArgument, fmt.Sprintf("asset name %q must not contain path separators", name))
	}
	return nil
}

// SaveAsset writes the document envelope, preserving the original
// creation timestamp on rewrite.
func (s *Store) SaveAsset(ctx context.Context, data document.AssetData) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := validName(data.Name); err != nil {
		return err
	}

	now := s.clock().UTC()
	envelope := storage.Envelope{
		Version:    storage.EnvelopeVersion,
		CreatedAt:  now,
		ModifiedAt: now,
		Asset:      data,
	}
	if existing, err := s.readEnvelope(data.Name); err == nil {
		envelope.CreatedAt = existing.CreatedAt
	}

	payload, err := json.MarshalIndent(envelope, "", "  ")
	if err != nil {
		return fmt.Errorf("encode asset %s: %w", data.Name, err)
	}
	if err := writeFileAtomic(s.assetPath(data.Name), payload); err != nil {
		return fmt.Errorf("write asset %s: %w", data.Name, err)
	}
	return nil
}

// LoadAsset reads and unwraps the document envelope for a logical name.
func (s *Store) LoadAsset(ctx context.Context, name string) (document.AssetData, error) {
	if err := ctx.Err(); err != nil {
		return document.AssetData{}, err
	}
	if err := validName(name); err != nil {
		return document.AssetData{}, err
	}
	envelope, err := s.readEnvelope(name)
	if err != nil {
		return document.AssetData{}, err
	}
	return envelope.Asset, nil
}

func (s *Store) readEnvelope(name string) (storage.Envelope, error) {
	payload, err := os.ReadFile(s.assetPath(name))
	if os.IsNotExist(err) {
		return storage.Envelope{}, apperrors.New(apperrors.CodeNotFound, fmt.Sprintf("asset file %q not found", name))
	}
	if err != nil {
		return storage.Envelope{}, fmt.Errorf("read asset %s: %w", name, err)
	}
	var envelope storage.Envelope
	if err := json.Unmarshal(payload, &envelope); err != nil {
		return storage.Envelope{}, apperrors.Wrap(apperrors.CodeInvalidArgument, fmt.Sprintf("asset file %q is malformed", name), err)
	}
	return envelope, nil
}

// SavePalette writes a standalone palette file.
func (s *Store) SavePalette(ctx context.Context, file storage.PaletteFile) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := validName(file.Name); err != nil {
		return err
	}
	if len(file.Colors) > document.PaletteSize {
		return apperrors.New(apperrors.CodeInvalidArgument, fmt.Sprintf("palette %q holds %d entries, capacity is %d", file.Name, len(file.Colors), document.PaletteSize))
	}
	payload, err := json.MarshalIndent(file, "", "  ")
	if err != nil {
		return fmt.Errorf("encode palette %s: %w", file.Name, err)
	}
	if err := writeFileAtomic(s.palettePath(file.Name), payload); err != nil {
		return fmt.Errorf("write palette %s: %w", file.Name, err)
	}
	return nil
}

// LoadPalette reads a standalone palette file.
func (s *Store) LoadPalette(ctx context.Context, name string) (storage.PaletteFile, error) {
	if err := ctx.Err(); err != nil {
		return storage.PaletteFile{}, err
	}
	if err := validName(name); err != nil {
		return storage.PaletteFile{}, err
	}
	payload, err := os.ReadFile(s.palettePath(name))
	if os.IsNotExist(err) {
		return storage.PaletteFile{}, apperrors.New(apperrors.CodeNotFound, fmt.Sprintf("palette file %q not found", name))
	}
	if err != nil {
		return storage.PaletteFile{}, fmt.Errorf("read palette %s: %w", name, err)
	}
	var file storage.PaletteFile
	if err := json.Unmarshal(payload, &file); err != nil {
		return storage.PaletteFile{}, apperrors.Wrap(apperrors.CodeInvalidArgument, fmt.Sprintf("palette file %q is malformed", name), err)
	}
	return file, nil
}

// writeFileAtomic writes via a temp file and rename so readers never see a
// partial document.
func writeFileAtomic(path string, payload []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".pixelsmith-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(payload); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return err
	}
	return os.Rename(tmpName, path)
}
