package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/custodia-labs/folio/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/custodia-labs/folio/internal/core/domain"
	"github.com/custodia-labs/folio/internal/core/ports/driven"
)

// DatabaseFile is the name of the library database inside the data directory.
const DatabaseFile = "library.db"

// Store is the SQLite-backed library. NovelStore and BookmarkStore
// return views sharing one connection pool.
type Store struct {
	db   *sql.DB
	path string
}

// Ensure Store implements the novel store interface.
var _ driven.NovelStore = (*Store)(nil)

// DefaultDataDir returns ~/.folio/data.
func DefaultDataDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}
	return filepath.Join(home, ".folio", "data"), nil
}

// NewStore opens (creating if needed) the library database in dataDir.
// An empty dataDir means DefaultDataDir.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		dir, err := DefaultDataDir()
		if err != nil {
			return nil, err
		}
		dataDir = dir
	}

	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, DatabaseFile)

	// Pragmas in the DSN apply to every pooled connection. The sqlite time
	// format keeps timestamps sortable as text.
	dsn := dbPath + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)&_time_format=sqlite"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{db: db, path: dbPath}
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

// NovelStore returns the store as a driven.NovelStore.
func (s *Store) NovelStore() driven.NovelStore {
	return s
}

// BookmarkStore returns a BookmarkStore backed by this store.
func (s *Store) BookmarkStore() driven.BookmarkStore {
	return &bookmarkStore{store: s}
}

// migrate applies every embedded up migration newer than the recorded
// schema version, each in its own transaction.
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

	var current int
	if err := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations").Scan(&current); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	var upFiles []string
	for _, entry := range entries {
		if strings.HasSuffix(entry.Name(), ".up.sql") {
			upFiles = append(upFiles, entry.Name())
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		// "001_initial.up.sql" is version 1.
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil || version <= current {
			continue
		}

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}
		if err := s.apply(version, string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}
	}
	return nil
}

func (s *Store) apply(version int, script string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	if _, err := tx.Exec(script); err != nil {
		return err
	}
	if _, err := tx.Exec("INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
		return err
	}
	return tx.Commit()
}

// ==================== Novels ====================

const novelColumns = `id, slug, title, author, description, status, source_url,
	chapter_count, imported, imported_at, created_at, updated_at`

// SaveNovel stores or updates a novel, keyed by slug.
func (s *Store) SaveNovel(ctx context.Context, novel *domain.Novel) error {
	if novel == nil || novel.Slug == "" {
		return domain.ErrInvalidInput
	}

	now := time.Now().UTC()
	created := novel.CreatedAt
	if created.IsZero() {
		created = now
	}
	updated := novel.UpdatedAt
	if updated.IsZero() {
		updated = now
	}
	status := novel.Status
	if status == "" {
		status = domain.NovelStatusCompleted
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO novels (`+novelColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(slug) DO UPDATE SET
			title = excluded.title,
			author = excluded.author,
			description = excluded.description,
			status = excluded.status,
			source_url = excluded.source_url,
			chapter_count = excluded.chapter_count,
			imported = excluded.imported,
			imported_at = excluded.imported_at,
			updated_at = excluded.updated_at
	`, novel.ID, novel.Slug, novel.Title, novel.Author, novel.Description, string(status),
		novel.SourceURL, novel.ChapterCount, novel.Imported, nullTime(novel.ImportedAt),
		created, updated)
	if err != nil {
		return fmt.Errorf("saving novel: %w", err)
	}
	return nil
}

// GetNovel retrieves a novel by slug.
func (s *Store) GetNovel(ctx context.Context, slug string) (*domain.Novel, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+novelColumns+" FROM novels WHERE slug = ?", slug)
	novel, err := scanNovel(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return novel, nil
}

// SlugExists reports whether a novel uses slug.
func (s *Store) SlugExists(ctx context.Context, slug string) (bool, error) {
	var n int
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM novels WHERE slug = ?", slug).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("checking slug: %w", err)
	}
	return n > 0, nil
}

// ListNovels returns one page of matching novels, newest update first.
func (s *Store) ListNovels(ctx context.Context, opts domain.ListOptions) ([]domain.Novel, int, error) {
	opts = opts.Normalised()

	where := ""
	var args []any
	if search := strings.TrimSpace(opts.Search); search != "" {
		pattern := "%" + escapeLike(strings.ToLower(search)) + "%"
		where = ` WHERE lower(title) LIKE ? ESCAPE '\' OR lower(description) LIKE ? ESCAPE '\'
			OR lower(author) LIKE ? ESCAPE '\'`
		args = []any{pattern, pattern, pattern}
	}

	var total int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM novels"+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("counting novels: %w", err)
	}

	rows, err := s.db.QueryContext(ctx,
		"SELECT "+novelColumns+" FROM novels"+where+" ORDER BY updated_at DESC, slug LIMIT ? OFFSET ?",
		append(args, opts.Limit, opts.Offset())...)
	if err != nil {
		return nil, 0, fmt.Errorf("querying novels: %w", err)
	}
	defer rows.Close()

	novels := []domain.Novel{}
	for rows.Next() {
		novel, err := scanNovel(rows)
		if err != nil {
			return nil, 0, err
		}
		novels = append(novels, *novel)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterating novels: %w", err)
	}
	return novels, total, nil
}

// DeleteNovel removes a novel with its chapters and bookmark.
func (s *Store) DeleteNovel(ctx context.Context, slug string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	for _, stmt := range []string{
		"DELETE FROM bookmarks WHERE novel_slug = ?",
		"DELETE FROM chapters WHERE novel_slug = ?",
		"DELETE FROM novels WHERE slug = ?",
	} {
		if _, err := tx.ExecContext(ctx, stmt, slug); err != nil {
			return fmt.Errorf("deleting novel: %w", err)
		}
	}
	return tx.Commit()
}

// scanner is satisfied by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanNovel(row scanner) (*domain.Novel, error) {
	var novel domain.Novel
	var status string
	var importedAt sql.NullTime
	if err := row.Scan(&novel.ID, &novel.Slug, &novel.Title, &novel.Author, &novel.Description,
		&status, &novel.SourceURL, &novel.ChapterCount, &novel.Imported, &importedAt,
		&novel.CreatedAt, &novel.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning novel: %w", err)
	}
	novel.Status = domain.NovelStatus(status)
	if importedAt.Valid {
		novel.ImportedAt = importedAt.Time
	}
	return &novel, nil
}

// ==================== Chapters ====================

const chapterColumns = `id, novel_slug, slug, title, content, number, imported, metadata,
	created_at, updated_at`

// SaveChapters stores or updates chapters in one transaction, keyed by
// novel slug and chapter slug. The novel must already exist.
func (s *Store) SaveChapters(ctx context.Context, chapters []domain.Chapter) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO chapters (`+chapterColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(novel_slug, slug) DO UPDATE SET
			title = excluded.title,
			content = excluded.content,
			number = excluded.number,
			imported = excluded.imported,
			metadata = excluded.metadata,
			updated_at = excluded.updated_at
	`)
	if err != nil {
		return fmt.Errorf("preparing statement: %w", err)
	}
	defer stmt.Close()

	now := time.Now().UTC()
	for i := range chapters {
		ch := chapters[i]
		if ch.NovelSlug == "" || ch.Slug == "" {
			return domain.ErrInvalidInput
		}
		if ch.CreatedAt.IsZero() {
			ch.CreatedAt = now
		}
		if ch.UpdatedAt.IsZero() {
			ch.UpdatedAt = now
		}
		metadata := ch.Metadata
		if metadata == nil {
			metadata = map[string]any{}
		}
		metadataJSON, err := json.Marshal(metadata)
		if err != nil {
			return fmt.Errorf("marshalling metadata: %w", err)
		}

		if _, err := stmt.ExecContext(ctx, ch.ID, ch.NovelSlug, ch.Slug, ch.Title, ch.Content,
			ch.Number, ch.Imported, string(metadataJSON), ch.CreatedAt, ch.UpdatedAt); err != nil {
			return fmt.Errorf("saving chapter %s: %w", ch.Slug, err)
		}
	}
	return tx.Commit()
}

// GetChapters returns the chapters of a novel ordered by number. Chapters
// sharing a number keep the order they were first saved in.
func (s *Store) GetChapters(ctx context.Context, novelSlug string) ([]domain.Chapter, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT "+chapterColumns+" FROM chapters WHERE novel_slug = ? ORDER BY number, rowid", novelSlug)
	if err != nil {
		return nil, fmt.Errorf("querying chapters: %w", err)
	}
	defer rows.Close()

	chapters := []domain.Chapter{}
	for rows.Next() {
		ch, err := scanChapter(rows)
		if err != nil {
			return nil, err
		}
		chapters = append(chapters, *ch)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating chapters: %w", err)
	}
	return chapters, nil
}

// GetChapter retrieves a single chapter.
func (s *Store) GetChapter(ctx context.Context, novelSlug, chapterSlug string) (*domain.Chapter, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT "+chapterColumns+" FROM chapters WHERE novel_slug = ? AND slug = ?", novelSlug, chapterSlug)
	ch, err := scanChapter(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	return ch, err
}

func scanChapter(row scanner) (*domain.Chapter, error) {
	var ch domain.Chapter
	var metadataJSON string
	if err := row.Scan(&ch.ID, &ch.NovelSlug, &ch.Slug, &ch.Title, &ch.Content, &ch.Number,
		&ch.Imported, &metadataJSON, &ch.CreatedAt, &ch.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning chapter: %w", err)
	}

	metadata, err := decodeMetadata(metadataJSON)
	if err != nil {
		return nil, err
	}
	ch.Metadata = metadata
	return &ch, nil
}

// decodeMetadata unmarshals chapter metadata. JSON has one number type, so
// whole numbers come back as int to match what processors wrote.
func decodeMetadata(raw string) (map[string]any, error) {
	metadata := map[string]any{}
	if raw == "" {
		return metadata, nil
	}
	if err := json.Unmarshal([]byte(raw), &metadata); err != nil {
		return nil, fmt.Errorf("unmarshalling metadata: %w", err)
	}
	for k, v := range metadata {
		if f, ok := v.(float64); ok && f == math.Trunc(f) && math.Abs(f) < math.MaxInt32 {
			metadata[k] = int(f)
		}
	}
	return metadata, nil
}

// ==================== Bookmarks ====================

// bookmarkStore implements driven.BookmarkStore.
type bookmarkStore struct {
	store *Store
}

var _ driven.BookmarkStore = (*bookmarkStore)(nil)

// Save stores or replaces the bookmark for its novel.
func (b *bookmarkStore) Save(ctx context.Context, bookmark domain.Bookmark) error {
	if bookmark.NovelSlug == "" {
		return domain.ErrInvalidInput
	}
	if bookmark.UpdatedAt.IsZero() {
		bookmark.UpdatedAt = time.Now().UTC()
	}

	_, err := b.store.db.ExecContext(ctx, `
		INSERT INTO bookmarks (novel_slug, chapter_slug, page, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(novel_slug) DO UPDATE SET
			chapter_slug = excluded.chapter_slug,
			page = excluded.page,
			updated_at = excluded.updated_at
	`, bookmark.NovelSlug, bookmark.ChapterSlug, bookmark.Page, bookmark.UpdatedAt)
	if err != nil {
		return fmt.Errorf("saving bookmark: %w", err)
	}
	return nil
}

// Get retrieves the bookmark for a novel.
func (b *bookmarkStore) Get(ctx context.Context, novelSlug string) (*domain.Bookmark, error) {
	var bookmark domain.Bookmark
	err := b.store.db.QueryRowContext(ctx, `
		SELECT novel_slug, chapter_slug, page, updated_at FROM bookmarks WHERE novel_slug = ?
	`, novelSlug).Scan(&bookmark.NovelSlug, &bookmark.ChapterSlug, &bookmark.Page, &bookmark.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scanning bookmark: %w", err)
	}
	return &bookmark, nil
}

// Delete removes the bookmark for a novel.
func (b *bookmarkStore) Delete(ctx context.Context, novelSlug string) error {
	if _, err := b.store.db.ExecContext(ctx, "DELETE FROM bookmarks WHERE novel_slug = ?", novelSlug); err != nil {
		return fmt.Errorf("deleting bookmark: %w", err)
	}
	return nil
}

// ==================== Helpers ====================

// nullTime converts a zero time to NULL.
func nullTime(t time.Time) sql.NullTime {
	return sql.NullTime{Time: t, Valid: !t.IsZero()}
}

// escapeLike escapes LIKE wildcards so search text matches literally.
func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
