// Package workspace implements the long-lived editing session: loaded
// documents, the active project binding, selection, clipboard, and the one
// command history shared across every document.
package workspace

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/pixelsmith/pixelsmith/internal/document"
	apperrors "github.com/pixelsmith/pixelsmith/internal/errors"
	"github.com/pixelsmith/pixelsmith/internal/history"
	"github.com/pixelsmith/pixelsmith/internal/project"
	"github.com/pixelsmith/pixelsmith/internal/storage"
)

// Selection points at the asset, and optionally the layer and frame, that
// editing tools default to.
type Selection struct {
	Asset      string
	LayerID    *int
	FrameIndex *int
}

// Clipboard is a rectangular block of palette indices.
type Clipboard struct {
	Width  int
	Height int
	Pixels [][]int
}

// Session is the single-writer editing session. Every exported method
// locks, so the MCP layer can call in from the SDK's goroutines; documents
// and history stay lock-free internals. Sessions are constructed
// explicitly; nothing in this package holds global state.
type Session struct {
	mu        sync.Mutex
	store     storage.AssetStore
	assets    map[string]*document.Asset
	registry  *project.Registry
	selection *Selection
	clipboard *Clipboard
	history   *history.History
}

// NewSession creates a session backed by the given asset store.
// historyDepth caps the undo stack; non-positive values use the default.
func NewSession(store storage.AssetStore, historyDepth int) *Session {
	return &Session{
		store:   store,
		assets:  make(map[string]*document.Asset),
		history: history.New(historyDepth),
	}
}

// Reset drops every loaded document, the project binding, selection,
// clipboard, and history. Intended for test isolation.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.assets = make(map[string]*document.Asset)
	s.registry = nil
	s.selection = nil
	s.clipboard = nil
	s.history.Reset()
}

// OpenProject binds the session to a project registry, replacing any
// previous binding.
func (s *Session) OpenProject(registry *project.Registry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.registry = registry
}

// Project returns the active project registry.
func (s *Session) Project() (*project.Registry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.registry == nil {
		return nil, apperrors.New(apperrors.CodeNotLoaded, "no project is open")
	}
	return s.registry, nil
}

// Asset returns the loaded document with the given name.
func (s *Session) Asset(name string) (*document.Asset, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.asset(name)
}

// asset is the lock-held lookup shared by the editing verbs.
func (s *Session) asset(name string) (*document.Asset, error) {
	a, ok := s.assets[name]
	if !ok {
		return nil, apperrors.New(apperrors.CodeNotLoaded, fmt.Sprintf("asset %q is not loaded", name))
	}
	return a, nil
}

// CreateAsset scaffolds a fresh document and loads it into the session.
func (s *Session) CreateAsset(name string, width, height int, perspective string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.assets[name]; ok {
		return apperrors.New(apperrors.CodeInvalidArgument, fmt.Sprintf("asset %q is already loaded", name))
	}
	a, err := document.NewAsset(name, width, height, perspective)
	if err != nil {
		return err
	}
	a.ClearDirty()
	s.assets[name] = a
	return nil
}

// LoadAsset reads a document from the store and adds it to the session.
func (s *Session) LoadAsset(ctx context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.assets[name]; ok {
		return apperrors.New(apperrors.CodeInvalidArgument, fmt.Sprintf("asset %q is already loaded", name))
	}
	data, err := s.store.LoadAsset(ctx, name)
	if err != nil {
		return err
	}
	a, err := document.FromData(data)
	if err != nil {
		return err
	}
	s.assets[name] = a
	return nil
}

// UnloadAsset removes a document, clears a selection that targeted it, and
// reports whether the removed document had unsaved changes. Selections on
// other assets are left untouched.
func (s *Session) UnloadAsset(name string) (hadUnsaved bool, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.assets[name]
	if !ok {
		return false, apperrors.New(apperrors.CodeNotLoaded, fmt.Sprintf("asset %q is not loaded", name))
	}
	hadUnsaved = a.Dirty()
	delete(s.assets, name)
	if s.selection != nil && s.selection.Asset == name {
		s.selection = nil
	}
	return hadUnsaved, nil
}

// Save serializes one document through the store and clears its dirty
// flag.
func (s *Session) Save(ctx context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, err := s.asset(name)
	if err != nil {
		return err
	}
	if err := s.store.SaveAsset(ctx, a.Data()); err != nil {
		return err
	}
	a.ClearDirty()
	return nil
}

// SaveAll serializes every dirty document and returns their names in
// lexical order.
func (s *Session) SaveAll(ctx context.Context) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var saved []string
	for name, a := range s.assets {
		if !a.Dirty() {
			continue
		}
		if err := s.store.SaveAsset(ctx, a.Data()); err != nil {
			return saved, err
		}
		a.ClearDirty()
		saved = append(saved, name)
	}
	sort.Strings(saved)
	return saved, nil
}

// Undo reverts the newest command on the shared history, which may target
// any loaded document.
func (s *Session) Undo() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.history.Undo()
}

// Redo reapplies the newest undone command on the shared history.
func (s *Session) Redo() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.history.Redo()
}

// Select points the active selection at a loaded asset, optionally down to
// a layer and frame.
func (s *Session) Select(assetName string, layerID, frameIndex *int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, err := s.asset(assetName)
	if err != nil {
		return err
	}
	if layerID != nil {
		if _, err := a.Layer(*layerID); err != nil {
			return err
		}
	}
	if frameIndex != nil && (*frameIndex < 0 || *frameIndex >= a.FrameCount()) {
		return apperrors.New(apperrors.CodeOutOfRange, fmt.Sprintf("frame %d out of range", *frameIndex))
	}
	sel := Selection{Asset: assetName}
	if layerID != nil {
		id := *layerID
		sel.LayerID = &id
	}
	if frameIndex != nil {
		index := *frameIndex
		sel.FrameIndex = &index
	}
	s.selection = &sel
	return nil
}

// ClearSelection drops the active selection.
func (s *Session) ClearSelection() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selection = nil
}

// Selection returns a copy of the active selection, or nil when none.
func (s *Session) Selection() *Selection {
	s.mu.Lock()
	defer s.mu.Unlock()
	return copySelection(s.selection)
}

func copySelection(sel *Selection) *Selection {
	if sel == nil {
		return nil
	}
	out := Selection{Asset: sel.Asset}
	if sel.LayerID != nil {
		id := *sel.LayerID
		out.LayerID = &id
	}
	if sel.FrameIndex != nil {
		index := *sel.FrameIndex
		out.FrameIndex = &index
	}
	return &out
}

// ClipboardBlock returns a deep copy of the clipboard contents, or nil
// when the clipboard is empty.
func (s *Session) ClipboardBlock() *Clipboard {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.clipboard == nil {
		return nil
	}
	out := Clipboard{Width: s.clipboard.Width, Height: s.clipboard.Height}
	out.Pixels = make([][]int, len(s.clipboard.Pixels))
	for i, row := range s.clipboard.Pixels {
		out.Pixels[i] = make([]int, len(row))
		copy(out.Pixels[i], row)
	}
	return &out
}

// AssetInfo summarizes one loaded document.
type AssetInfo struct {
	Name   string `json:"name"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Layers int    `json:"layers"`
	Frames int    `json:"frames"`
	Cels   int    `json:"cels"`
	Tags   int    `json:"tags"`
	Dirty  bool   `json:"dirty"`
}

// Info summarizes the whole session.
type Info struct {
	Project   string      `json:"project,omitempty"`
	Assets    []AssetInfo `json:"assets"`
	Selection *Selection  `json:"selection,omitempty"`
	UndoDepth int         `json:"undo_depth"`
	RedoDepth int         `json:"redo_depth"`
	Clipboard bool        `json:"clipboard"`
}

// Info returns the session summary.
func (s *Session) Info() Info {
	s.mu.Lock()
	defer s.mu.Unlock()
	info := Info{
		Assets:    []AssetInfo{},
		Selection: copySelection(s.selection),
		UndoDepth: s.history.UndoDepth(),
		RedoDepth: s.history.RedoDepth(),
		Clipboard: s.clipboard != nil,
	}
	if s.registry != nil {
		info.Project = s.registry.Name
	}
	names := make([]string, 0, len(s.assets))
	for name := range s.assets {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		a := s.assets[name]
		info.Assets = append(info.Assets, AssetInfo{
			Name:   a.Name(),
			Width:  a.Width(),
			Height: a.Height(),
			Layers: len(a.Layers()),
			Frames: a.FrameCount(),
			Cels:   len(a.Cels()),
			Tags:   len(a.Tags()),
			Dirty:  a.Dirty(),
		})
	}
	return info
}
