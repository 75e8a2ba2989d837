// Package postgres looks up profiles in a PostgreSQL table.
package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"gliblio/internal/profilelink/models"
	"gliblio/pkg/platform/sentinel"
)

// Table names the table and columns holding handle → identity rows.
type Table struct {
	Name         string // optionally schema-qualified, e.g. "public.profiles"
	HandleColumn string
	IDColumn     string
}

// DefaultTable matches the profiles table used by the mobile app backend.
var DefaultTable = Table{Name: "profiles", HandleColumn: "username", IDColumn: "id"}

// PostgresStore finds profiles with a single bounded query.
type PostgresStore struct {
	db    *sql.DB
	query string
}

// NewPostgres constructs a PostgreSQL-backed profile store. Empty fields in
// table fall back to DefaultTable.
func NewPostgres(db *sql.DB, table Table) *PostgresStore {
	if table.Name == "" {
		table.Name = DefaultTable.Name
	}
	if table.HandleColumn == "" {
		table.HandleColumn = DefaultTable.HandleColumn
	}
	if table.IDColumn == "" {
		table.IDColumn = DefaultTable.IDColumn
	}
	return &PostgresStore{db: db, query: buildQuery(table)}
}

func buildQuery(t Table) string {
	name := pgx.Identifier(strings.Split(t.Name, ".")).Sanitize()
	handleCol := pgx.Identifier{t.HandleColumn}.Sanitize()
	idCol := pgx.Identifier{t.IDColumn}.Sanitize()
	// LIMIT 2 is enough to tell a unique match from an ambiguous one.
	return fmt.Sprintf("SELECT %s::text FROM %s WHERE %s = $1 LIMIT 2", idCol, name, handleCol)
}

func (s *PostgresStore) FindByHandle(ctx context.Context, handle string) (*models.Profile, error) {
	rows, err := s.db.QueryContext(ctx, s.query, handle)
	if err != nil {
		return nil, fmt.Errorf("find profile by handle: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan profile: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate profiles: %w", err)
	}

	switch len(ids) {
	case 0:
		return nil, sentinel.ErrNotFound
	case 1:
		return &models.Profile{Handle: handle, IdentityID: ids[0]}, nil
	default:
		return nil, fmt.Errorf("handle %q matches multiple profiles: %w", handle, sentinel.ErrConflict)
	}
}

func (s *PostgresStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}
