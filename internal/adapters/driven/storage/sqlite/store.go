package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/custodia-labs/lore/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/custodia-labs/lore/internal/core/domain"
	"github.com/custodia-labs/lore/internal/core/ports/driven"
)

// Ensure Store implements the interface.
var _ driven.ContentIndex = (*Store)(nil)

const itemColumns = "i.id, i.kind, i.title, i.synopsis, i.body, i.featured"

// Store is a SQLite-based content index.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore creates a new SQLite store at the specified data directory.
// If dataDir is empty, defaults to ~/.lore/data/index.db.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".lore", "data")
	}

	// Ensure directory exists
	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "index.db")

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling foreign keys: %w", err)
	}

	s := &Store{
		db:   db,
		path: dbPath,
	}

	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// migrate applies every *.up.sql file newer than the recorded version.
func (s *Store) migrate(fsys fs.FS) error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	var upFiles []string
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasSuffix(name, ".up.sql") {
			upFiles = append(upFiles, name)
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		// Extract version number (e.g., "001_initial.up.sql" -> 1)
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue
		}
		if version <= currentVersion {
			continue
		}

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}

		tx, err := s.db.Begin()
		if err != nil {
			return fmt.Errorf("beginning migration %s: %w", name, err)
		}
		if _, err := tx.Exec(string(content)); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("executing migration %s: %w", name, err)
		}
		if _, err := tx.Exec("INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("recording migration %s: %w", name, err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("committing migration %s: %w", name, err)
		}
	}

	return nil
}

// Import replaces the indexed items with items and returns how many were stored.
// Items without an ID and repeated IDs are skipped.
func (s *Store) Import(ctx context.Context, items []*domain.ContentRef) (int, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("beginning import: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, table := range []string{"items_fts", "item_tags", "items"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return 0, fmt.Errorf("clearing %s: %w", table, err)
		}
	}

	seen := make(map[string]bool, len(items))
	stored := 0
	for _, item := range items {
		if item == nil || item.ID == "" || seen[item.ID] {
			continue
		}
		seen[item.ID] = true

		if err := insertItem(ctx, tx, item, stored); err != nil {
			return 0, err
		}
		stored++
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing import: %w", err)
	}
	return stored, nil
}

func insertItem(ctx context.Context, tx *sql.Tx, item *domain.ContentRef, position int) error {
	_, err := tx.ExecContext(ctx, `
		INSERT INTO items (id, kind, title, synopsis, body, featured, position)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, item.ID, item.Kind.String(), item.Title, item.Synopsis, item.Body, item.Featured, position)
	if err != nil {
		return fmt.Errorf("inserting item %s: %w", item.ID, err)
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO items_fts (id, title, synopsis, body) VALUES (?, ?, ?, ?)
	`, item.ID, item.Title, item.Synopsis, item.Body)
	if err != nil {
		return fmt.Errorf("indexing item %s: %w", item.ID, err)
	}

	for child, tags := range [][]string{item.Tags, item.ChildTags} {
		for pos, tag := range tags {
			_, err := tx.ExecContext(ctx, `
				INSERT OR IGNORE INTO item_tags (item_id, tag, child, position) VALUES (?, ?, ?, ?)
			`, item.ID, tag, child, pos)
			if err != nil {
				return fmt.Errorf("tagging item %s: %w", item.ID, err)
			}
		}
	}
	return nil
}

// Count returns the number of indexed items.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM items").Scan(&n); err != nil {
		return 0, fmt.Errorf("counting items: %w", err)
	}
	return n, nil
}

// Query returns one page of items matching spec in import order.
func (s *Store) Query(ctx context.Context, spec domain.QuerySpec) (domain.QueryResult, error) {
	if err := spec.Validate(); err != nil {
		return domain.QueryResult{}, err
	}
	offset, err := spec.Cursor.Offset()
	if err != nil {
		return domain.QueryResult{}, err
	}

	var (
		query string
		args  []any
	)
	switch {
	case len(spec.Tags) > 0:
		query = "SELECT " + itemColumns + " FROM items i WHERE i.id IN " +
			"(SELECT item_id FROM item_tags WHERE child = 0 AND tag IN (" + placeholders(len(spec.Tags)) + "))"
		for _, tag := range spec.Tags {
			args = append(args, tag)
		}
	case matchExpr(spec.Text) != "":
		query = "SELECT " + itemColumns + " FROM items_fts f JOIN items i ON i.id = f.id WHERE items_fts MATCH ?"
		args = append(args, matchExpr(spec.Text))
	default:
		query = "SELECT " + itemColumns + " FROM items i"
	}

	// Fetch one extra row to learn whether another page exists.
	limit := -1
	if spec.Limit > 0 {
		limit = spec.Limit + 1
	}
	query += " ORDER BY i.position LIMIT ? OFFSET ?"
	args = append(args, limit, offset)

	items, err := s.queryItems(ctx, query, args...)
	if err != nil {
		return domain.QueryResult{}, err
	}

	res := domain.QueryResult{Items: items}
	if spec.Limit > 0 && len(items) > spec.Limit {
		res.Items = items[:spec.Limit]
		res.Next = domain.OffsetCursor(offset + spec.Limit)
	}
	return res, nil
}

// Get retrieves a single item by ID.
func (s *Store) Get(ctx context.Context, id string) (*domain.ContentRef, error) {
	items, err := s.queryItems(ctx, "SELECT "+itemColumns+" FROM items i WHERE i.id = ?", id)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, domain.ErrNotFound
	}
	return items[0], nil
}

func (s *Store) queryItems(ctx context.Context, query string, args ...any) ([]*domain.ContentRef, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, queryError(ctx, err)
	}
	defer rows.Close()

	var items []*domain.ContentRef
	byID := make(map[string]*domain.ContentRef)
	for rows.Next() {
		item := &domain.ContentRef{}
		var kind string
		if err := rows.Scan(&item.ID, &kind, &item.Title, &item.Synopsis, &item.Body, &item.Featured); err != nil {
			return nil, queryError(ctx, err)
		}
		item.Kind = domain.ContentKind(kind)
		items = append(items, item)
		byID[item.ID] = item
	}
	if err := rows.Err(); err != nil {
		return nil, queryError(ctx, err)
	}

	if err := s.loadTags(ctx, byID); err != nil {
		return nil, err
	}
	return items, nil
}

func (s *Store) loadTags(ctx context.Context, byID map[string]*domain.ContentRef) error {
	if len(byID) == 0 {
		return nil
	}

	args := make([]any, 0, len(byID))
	for id := range byID {
		args = append(args, id)
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT item_id, tag, child FROM item_tags
		WHERE item_id IN (`+placeholders(len(args))+`)
		ORDER BY item_id, child, position
	`, args...)
	if err != nil {
		return queryError(ctx, err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			id, tag string
			child   bool
		)
		if err := rows.Scan(&id, &tag, &child); err != nil {
			return queryError(ctx, err)
		}
		item := byID[id]
		if child {
			item.ChildTags = append(item.ChildTags, tag)
		} else {
			item.Tags = append(item.Tags, tag)
		}
	}
	return queryError(ctx, rows.Err())
}

// queryError reports cancellation as the context error so callers can
// tell it apart from real failures.
func queryError(ctx context.Context, err error) error {
	if err == nil {
		return nil
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ErrNotFound
	}
	return fmt.Errorf("%w: %w", domain.ErrIndexUnavailable, err)
}

// matchExpr turns free text into an FTS5 expression requiring every term
// as a prefix. Returns "" when the text has no terms.
func matchExpr(text string) string {
	terms := strings.Fields(text)
	if len(terms) == 0 {
		return ""
	}
	quoted := make([]string, len(terms))
	for i, term := range terms {
		quoted[i] = `"` + strings.ReplaceAll(term, `"`, `""`) + `"*`
	}
	return strings.Join(quoted, " ")
}

func placeholders(n int) string {
	if n <= 0 {
		return ""
	}
	return strings.Repeat("?, ", n-1) + "?"
}
