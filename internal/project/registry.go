// Package project holds the project registry: the mapping from logical
// asset names to files or named variants, with project-level conventions
// and defaults.
package project

import (
	"fmt"
	"strings"

	apperrors "github.com/pixelsmith/pixelsmith/internal/errors"
)

// AssetEntry describes one registered asset. Exactly one of Path and
// Variants is set.
type AssetEntry struct {
	Type      string            `json:"type"`
	Path      string            `json:"path,omitempty"`
	Variants  map[string]string `json:"variants,omitempty"`
	RecolorOf string            `json:"recolor_of,omitempty"`
}

// Registry maps logical asset names to entries for one project.
type Registry struct {
	Name        string                `json:"name"`
	Assets      map[string]AssetEntry `json:"assets"`
	Conventions map[string]string     `json:"conventions,omitempty"`
	Defaults    map[string]any        `json:"defaults,omitempty"`
}

// NewRegistry creates an empty registry for the named project.
func NewRegistry(name string) (*Registry, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperrors.New(apperrors.CodeInvalidArgument, "project name is required")
	}
	return &Registry{
		Name:   name,
		Assets: make(map[string]AssetEntry),
	}, nil
}

// validateEntry checks the path-or-variants exclusivity and the type label.
func validateEntry(name string, entry AssetEntry) error {
	if strings.TrimSpace(entry.Type) == "" {
		return apperrors.New(apperrors.CodeInvalidArgument, fmt.Sprintf("asset %q needs a type label", name))
	}
	hasPath := strings.TrimSpace(entry.Path) != ""
	hasVariants := len(entry.Variants) > 0
	if hasPath == hasVariants {
		return apperrors.New(apperrors.CodeInvalidArgument, fmt.Sprintf("asset %q must carry exactly one of path or variants", name))
	}
	return nil
}

// Info returns the entry registered under the logical name.
func (r *Registry) Info(name string) (AssetEntry, error) {
	entry, ok := r.Assets[name]
	if !ok {
		return AssetEntry{}, apperrors.New(apperrors.CodeNotFound, fmt.Sprintf("asset %q is not registered", name))
	}
	return copyEntry(entry), nil
}

// RegisterAsset adds or replaces the entry for a logical name.
func (r *Registry) RegisterAsset(name string, entry AssetEntry) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return apperrors.New(apperrors.CodeInvalidArgument, "asset name is required")
	}
	if err := validateEntry(name, entry); err != nil {
		return err
	}
	if r.Assets == nil {
		r.Assets = make(map[string]AssetEntry)
	}
	r.Assets[name] = copyEntry(entry)
	return nil
}

// RemoveAsset deletes the entry for a logical name.
func (r *Registry) RemoveAsset(name string) error {
	if _, ok := r.Assets[name]; !ok {
		return apperrors.New(apperrors.CodeNotFound, fmt.Sprintf("asset %q is not registered", name))
	}
	delete(r.Assets, name)
	return nil
}

// RenameAsset moves an entry to a new logical name.
func (r *Registry) RenameAsset(oldName, newName string) error {
	newName = strings.TrimSpace(newName)
	if newName == "" {
		return apperrors.New(apperrors.CodeInvalidArgument, "new asset name is required")
	}
	entry, ok := r.Assets[oldName]
	if !ok {
		return apperrors.New(apperrors.CodeNotFound, fmt.Sprintf("asset %q is not registered", oldName))
	}
	if _, exists := r.Assets[newName]; exists {
		return apperrors.New(apperrors.CodeInvalidArgument, fmt.Sprintf("asset %q is already registered", newName))
	}
	delete(r.Assets, oldName)
	r.Assets[newName] = entry
	return nil
}

func copyEntry(entry AssetEntry) AssetEntry {
	out := entry
	if entry.Variants != nil {
		out.Variants = make(map[string]string, len(entry.Variants))
		for k, v := range entry.Variants {
			out.Variants[k] = v
		}
	}
	return out
}
