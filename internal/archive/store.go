package archive

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/i3keep/i3keep/internal/errdefs"
)

// Layout is one archived layout document. Target records what was saved:
// "tree", or "workspace <name>" / "output <name>".
type Layout struct {
	ID        string    `yaml:"id"         json:"id"`
	Name      string    `yaml:"name"       json:"name"`
	Target    string    `yaml:"target"     json:"target"`
	Leaves    int       `yaml:"leaves"     json:"leaves"`
	Body      string    `yaml:"-"          json:"-"`
	CreatedAt time.Time `yaml:"created_at" json:"created_at"`
}

// New assembles an archive entry with a fresh ID and timestamp.
func New(name, target, body string, leaves int) Layout {
	return Layout{
		ID:        uuid.NewString(),
		Name:      name,
		Target:    target,
		Leaves:    leaves,
		Body:      body,
		CreatedAt: time.Now().UTC(),
	}
}

// Store reads and writes archived layouts.
type Store struct {
	db *sql.DB
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// Save inserts one archived layout.
func (s *Store) Save(ctx context.Context, l Layout) error {
	query := `INSERT INTO layouts (id, name, target, leaves, body, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`
	_, err := s.db.ExecContext(ctx, query,
		l.ID, l.Name, l.Target, l.Leaves, l.Body,
		l.CreatedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting layout: %w", err)
	}
	return nil
}

// List returns all archived layouts, newest first.
func (s *Store) List(ctx context.Context) ([]Layout, error) {
	query := `SELECT id, name, target, leaves, body, created_at
		FROM layouts ORDER BY created_at DESC, id`
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing layouts: %w", err)
	}
	defer rows.Close()
	return scanLayouts(rows)
}

// Get resolves ref to a single archived layout. It tries an exact ID first,
// then an ID prefix or exact name, so `archive show 3f2a` and
// `archive show mail` both work.
func (s *Store) Get(ctx context.Context, ref string) (Layout, error) {
	query := `SELECT id, name, target, leaves, body, created_at
		FROM layouts WHERE id = ?`
	l, err := scanLayout(s.db.QueryRowContext(ctx, query, ref))
	if err == nil {
		return l, nil
	}
	if !errdefs.Is(err, errdefs.CodeNotFound) {
		return Layout{}, err
	}

	matches, err := s.matchRef(ctx, ref)
	if err != nil {
		return Layout{}, err
	}
	switch len(matches) {
	case 0:
		return Layout{}, errdefs.New(errdefs.CodeNotFound, "no archived layout matches %q", ref)
	case 1:
		return matches[0], nil
	default:
		return Layout{}, errdefs.New(errdefs.CodeInvalidInput,
			"%q matches %d archived layouts; use the full id", ref, len(matches))
	}
}

// Delete removes an archived layout by exact ID.
func (s *Store) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM layouts WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting layout: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting layout: %w", err)
	}
	if n == 0 {
		return errdefs.New(errdefs.CodeNotFound, "no archived layout with id %q", id)
	}
	return nil
}

func (s *Store) matchRef(ctx context.Context, ref string) ([]Layout, error) {
	query := `SELECT id, name, target, leaves, body, created_at
		FROM layouts WHERE id LIKE ? OR name = ? ORDER BY created_at DESC, id`
	rows, err := s.db.QueryContext(ctx, query, ref+"%", ref)
	if err != nil {
		return nil, fmt.Errorf("matching layouts: %w", err)
	}
	defer rows.Close()
	return scanLayouts(rows)
}

func scanLayout(row *sql.Row) (Layout, error) {
	var l Layout
	var createdAtStr string
	err := row.Scan(&l.ID, &l.Name, &l.Target, &l.Leaves, &l.Body, &createdAtStr)
	if err != nil {
		if err == sql.ErrNoRows {
			return Layout{}, errdefs.New(errdefs.CodeNotFound, "layout not found")
		}
		return Layout{}, fmt.Errorf("scanning layout: %w", err)
	}
	return populateLayout(l, createdAtStr)
}

func scanLayouts(rows *sql.Rows) ([]Layout, error) {
	var layouts []Layout
	for rows.Next() {
		var l Layout
		var createdAtStr string
		if err := rows.Scan(&l.ID, &l.Name, &l.Target, &l.Leaves, &l.Body, &createdAtStr); err != nil {
			return nil, fmt.Errorf("scanning layout row: %w", err)
		}
		populated, err := populateLayout(l, createdAtStr)
		if err != nil {
			return nil, err
		}
		layouts = append(layouts, populated)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating layouts: %w", err)
	}
	return layouts, nil
}

func populateLayout(l Layout, createdAtStr string) (Layout, error) {
	createdAt, err := time.Parse(time.RFC3339, createdAtStr)
	if err != nil {
		return Layout{}, fmt.Errorf("parsing created_at: %w", err)
	}
	l.CreatedAt = createdAt
	return l, nil
}
