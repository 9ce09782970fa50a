// Package sqlite provides a SQLite-backed project registry store.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	apperrors "github.com/pixelsmith/pixelsmith/internal/errors"
	"github.com/pixelsmith/pixelsmith/internal/platform/storage/sqlitemigrate"
	"github.com/pixelsmith/pixelsmith/internal/project"
	"github.com/pixelsmith/pixelsmith/internal/storage/sqlite/migrations"
	_ "modernc.org/sqlite"
)

// Store persists project registries in SQLite.
type Store struct {
	sqlDB *sql.DB
}

// Open opens a SQLite registry store and applies embedded migrations.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	dsn := filepath.Clean(path) + "?_journal_mode=WAL&_foreign_keys=ON&_busy_timeout=5000&_synchronous=NORMAL"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if err := sqlitemigrate.ApplyMigrations(sqlDB, migrations.FS, ""); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return &Store{sqlDB: sqlDB}, nil
}

// Close closes the SQLite handle.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// PutProject inserts or replaces one registry record.
func (s *Store) PutProject(ctx context.Context, registry project.Registry) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	name := strings.TrimSpace(registry.Name)
	if name == "" {
		return apperrors.New(apperrors.CodeInvalidArgument, "project name is required")
	}
	payload, err := json.Marshal(registry)
	if err != nil {
		return fmt.Errorf("encode registry: %w", err)
	}
	now := time.Now().UTC().UnixMilli()
	_, err = s.sqlDB.ExecContext(ctx,
		`INSERT INTO projects (name, registry, created_at, updated_at)
		 VALUES (?, ?, ?, ?)
		 ON CONFLICT(name) DO UPDATE SET registry = excluded.registry, updated_at = excluded.updated_at`,
		name, string(payload), now, now,
	)
	if err != nil {
		return fmt.Errorf("put project: %w", err)
	}
	return nil
}

// GetProject loads one registry record by project name.
func (s *Store) GetProject(ctx context.Context, name string) (project.Registry, error) {
	if err := ctx.Err(); err != nil {
		return project.Registry{}, err
	}
	if s == nil || s.sqlDB == nil {
		return project.Registry{}, fmt.Errorf("storage is not configured")
	}
	var payload string
	err := s.sqlDB.QueryRowContext(ctx,
		`SELECT registry FROM projects WHERE name = ?`, name,
	).Scan(&payload)
	if err == sql.ErrNoRows {
		return project.Registry{}, apperrors.New(apperrors.CodeNotFound, fmt.Sprintf("project %q not found", name))
	}
	if err != nil {
		return project.Registry{}, fmt.Errorf("get project: %w", err)
	}
	var registry project.Registry
	if err := json.Unmarshal([]byte(payload), &registry); err != nil {
		return project.Registry{}, fmt.Errorf("decode registry: %w", err)
	}
	return registry, nil
}

// ListProjects returns every stored project name in lexical order.
func (s *Store) ListProjects(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s == nil || s.sqlDB == nil {
		return nil, fmt.Errorf("storage is not configured")
	}
	rows, err := s.sqlDB.QueryContext(ctx, `SELECT name FROM projects ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scan project name: %w", err)
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate projects: %w", err)
	}
	return names, nil
}

// DeleteProject removes one registry record.
func (s *Store) DeleteProject(ctx context.Context, name string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	result, err := s.sqlDB.ExecContext(ctx, `DELETE FROM projects WHERE name = ?`, name)
	if err != nil {
		return fmt.Errorf("delete project: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete project result: %w", err)
	}
	if affected == 0 {
		return apperrors.New(apperrors.CodeNotFound, fmt.Sprintf("project %q not found", name))
	}
	return nil
}
