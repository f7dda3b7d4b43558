package headkit

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/oklog/ulid/v2"
	_ "modernc.org/sqlite"
)

// Store wraps a SQLite database holding page records and uploaded images.
type Store struct {
	db *sql.DB
}

// NewStore opens (or creates) the SQLite database at path, ensures the data
// directory exists, and creates the schema.
func NewStore(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// WAL lets readers proceed while the admin API writes; busy_timeout makes
	// writers wait instead of failing with SQLITE_BUSY.
	if _, err := db.Exec(`
		PRAGMA journal_mode=WAL;
		PRAGMA busy_timeout=5000;
		PRAGMA synchronous=NORMAL;
		PRAGMA cache_size=-8000;
	`); err != nil {
		db.Close()
		return nil, err
	}
	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(4)
	s := &Store{db: db}
	if err := s.ensureSchema(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) ensureSchema() error {
	_, err := s.db.Exec(`
CREATE TABLE IF NOT EXISTS pages (
    path TEXT PRIMARY KEY,
    config TEXT NOT NULL,
    body TEXT NOT NULL DEFAULT '',
    published INTEGER NOT NULL DEFAULT 1,
    revision TEXT NOT NULL,
    updated_at TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS images (
    filename TEXT PRIMARY KEY,
    original_name TEXT NOT NULL,
    width INTEGER NOT NULL,
    height INTEGER NOT NULL,
    size INTEGER NOT NULL,
    uploaded_at TEXT NOT NULL
);
`)
	return err
}

const pageColumns = `path, config, body, published, revision, updated_at`

type scanner interface {
	Scan(dest ...any) error
}

func scanPage(row scanner) (Page, error) {
	var p Page
	var config, updated string
	var published int
	if err := row.Scan(&p.Path, &config, &p.Body, &published, &p.Revision, &updated); err != nil {
		return Page{}, err
	}
	if err := json.Unmarshal([]byte(config), &p.Config); err != nil {
		return Page{}, fmt.Errorf("decode config of %s: %w", p.Path, err)
	}
	p.Published = published == 1
	p.UpdatedAt, _ = time.Parse(time.RFC3339Nano, updated)
	return p, nil
}

func (s *Store) queryPages(query string, args ...any) ([]Page, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var pages []Page
	for rows.Next() {
		p, err := scanPage(rows)
		if err != nil {
			return nil, err
		}
		pages = append(pages, p)
	}
	return pages, rows.Err()
}

// ListPages returns all published pages ordered by path.
func (s *Store) ListPages() ([]Page, error) {
	return s.queryPages(`SELECT ` + pageColumns + ` FROM pages WHERE published = 1 ORDER BY path`)
}

// ListAllPages returns every page (published and drafts) ordered by path.
func (s *Store) ListAllPages() ([]Page, error) {
	return s.queryPages(`SELECT ` + pageColumns + ` FROM pages ORDER BY path`)
}

// GetPage returns a single published page by path.
func (s *Store) GetPage(path string) (Page, error) {
	return scanPage(s.db.QueryRow(`SELECT `+pageColumns+` FROM pages WHERE path = ? AND published = 1`, path))
}

// GetPageAny returns a page by path regardless of published status (for admin).
func (s *Store) GetPageAny(path string) (Page, error) {
	return scanPage(s.db.QueryRow(`SELECT `+pageColumns+` FROM pages WHERE path = ?`, path))
}

// SavePage upserts a page and stamps it with a fresh revision. The stored
// record is returned.
func (s *Store) SavePage(p Page) (Page, error) {
	config, err := json.Marshal(p.Config)
	if err != nil {
		return Page{}, fmt.Errorf("encode config of %s: %w", p.Path, err)
	}
	p.Revision = ulid.Make().String()
	p.UpdatedAt = time.Now().UTC()
	published := 0
	if p.Published {
		published = 1
	}
	_, err = s.db.Exec(`INSERT OR REPLACE INTO pages (`+pageColumns+`) VALUES (?, ?, ?, ?, ?, ?)`,
		p.Path, string(config), p.Body, published, p.Revision, p.UpdatedAt.Format(time.RFC3339Nano))
	if err != nil {
		return Page{}, err
	}
	return p, nil
}

// DeletePage removes a page by path.
func (s *Store) DeletePage(path string) error {
	_, err := s.db.Exec(`DELETE FROM pages WHERE path = ?`, path)
	return err
}

// SaveImage records an uploaded image.
func (s *Store) SaveImage(img Image) error {
	_, err := s.db.Exec(`INSERT OR REPLACE INTO images (filename, original_name, width, height, size, uploaded_at) VALUES (?, ?, ?, ?, ?, ?)`,
		img.Filename, img.OriginalName, img.Width, img.Height, img.Size, img.UploadedAt)
	return err
}

// ListImages returns uploaded images, newest first.
func (s *Store) ListImages() ([]Image, error) {
	rows, err := s.db.Query(`SELECT filename, original_name, width, height, size, uploaded_at FROM images ORDER BY uploaded_at DESC, filename`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var images []Image
	for rows.Next() {
		var img Image
		if err := rows.Scan(&img.Filename, &img.OriginalName, &img.Width, &img.Height, &img.Size, &img.UploadedAt); err != nil {
			return nil, err
		}
		images = append(images, img)
	}
	return images, rows.Err()
}

// HasImage reports whether an image with filename is recorded.
func (s *Store) HasImage(filename string) (bool, error) {
	var n int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM images WHERE filename = ?`, filename).Scan(&n)
	return n > 0, err
}

// DeleteImage removes an image record.
func (s *Store) DeleteImage(filename string) error {
	_, err := s.db.Exec(`DELETE FROM images WHERE filename = ?`, filename)
	return err
}
