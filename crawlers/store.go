package crawlers

import (
	"crypto/rand"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
	_ "modernc.org/sqlite"
)

// timeLayout keeps stored timestamps lexically ordered.
const timeLayout = "2006-01-02T15:04:05Z"

// Store provides database operations for crawler visits.
type Store struct {
	db   *sql.DB
	salt string
}

// NewStore opens (or creates) the crawler database at dbPath.
func NewStore(dbPath string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create crawlers dir: %w", err)
	}
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open crawlers db: %w", err)
	}

	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(4)
	db.SetConnMaxLifetime(time.Hour)

	if _, err := db.Exec("PRAGMA journal_mode=WAL; PRAGMA busy_timeout=5000;"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enable WAL: %w", err)
	}

	s := &Store{db: db}
	if err := s.ensureSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ensure schema: %w", err)
	}
	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) ensureSchema() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS bot_visits (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			bot_name TEXT NOT NULL,
			ip_hash TEXT NOT NULL,
			user_agent TEXT NOT NULL,
			path TEXT NOT NULL,
			timestamp TEXT NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_bot_visits_timestamp ON bot_visits(timestamp);
		CREATE INDEX IF NOT EXISTS idx_bot_visits_name ON bot_visits(bot_name);

		CREATE TABLE IF NOT EXISTS settings (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);
	`)
	return err
}

// GetSetting retrieves a setting value by key. Returns empty string if not found.
func (s *Store) GetSetting(key string) (string, error) {
	var val string
	err := s.db.QueryRow(`SELECT value FROM settings WHERE key = ?`, key).Scan(&val)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	return val, err
}

// SetSetting stores a setting value by key (upsert).
func (s *Store) SetSetting(key, value string) error {
	_, err := s.db.Exec(`INSERT INTO settings (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value`, key, value)
	return err
}

// InitSalt loads or generates the persistent salt used by HashIP.
// Call it once before recording visits.
func (s *Store) InitSalt() error {
	v, err := s.GetSetting("hash_salt")
	if err != nil {
		return fmt.Errorf("read hash salt: %w", err)
	}
	if v == "" {
		b := make([]byte, 32)
		if _, err := rand.Read(b); err != nil {
			return fmt.Errorf("generate salt: %w", err)
		}
		v = hex.EncodeToString(b)
		if err := s.SetSetting("hash_salt", v); err != nil {
			return fmt.Errorf("store hash salt: %w", err)
		}
	}
	s.salt = v
	return nil
}

// HashIP creates a salted SHA-256 hash of an IP address.
func (s *Store) HashIP(ip string) string {
	h := sha256.Sum256([]byte(s.salt + ip))
	return hex.EncodeToString(h[:])[:16]
}

// SaveVisit stores a crawler visit.
func (s *Store) SaveVisit(v *Visit) error {
	res, err := s.db.Exec(`INSERT INTO bot_visits (bot_name, ip_hash, user_agent, path, timestamp) VALUES (?, ?, ?, ?, ?)`,
		v.BotName, v.IPHash, v.UserAgent, v.Path, v.Timestamp.UTC().Format(timeLayout))
	if err != nil {
		return fmt.Errorf("save bot visit: %w", err)
	}
	v.ID, _ = res.LastInsertId()
	return nil
}

// Stats returns aggregated crawler activity between from and to.
func (s *Store) Stats(from, to time.Time) (*Stats, error) {
	lo, hi := from.UTC().Format(timeLayout), to.UTC().Format(timeLayout)
	stats := &Stats{
		Period:      from.Format("2006-01-02") + " to " + to.Format("2006-01-02"),
		TopBots:     []DimensionStat{},
		TopPages:    []PageStat{},
		DailyVisits: []DailyVisit{},
	}

	if err := s.db.QueryRow(`SELECT COUNT(*) FROM bot_visits WHERE timestamp >= ? AND timestamp <= ?`, lo, hi).
		Scan(&stats.TotalVisits); err != nil {
		return nil, fmt.Errorf("count bot visits: %w", err)
	}

	err := s.each(`SELECT bot_name, COUNT(*) AS n FROM bot_visits WHERE timestamp >= ? AND timestamp <= ?
		GROUP BY bot_name ORDER BY n DESC, bot_name LIMIT 20`, []any{lo, hi}, func(rows *sql.Rows) error {
		var d DimensionStat
		if err := rows.Scan(&d.Name, &d.Count); err != nil {
			return err
		}
		stats.TopBots = append(stats.TopBots, d)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("top bots: %w", err)
	}

	err = s.each(`SELECT path, COUNT(*) AS n FROM bot_visits WHERE timestamp >= ? AND timestamp <= ?
		GROUP BY path ORDER BY n DESC, path LIMIT 20`, []any{lo, hi}, func(rows *sql.Rows) error {
		var p PageStat
		if err := rows.Scan(&p.Path, &p.Visits); err != nil {
			return err
		}
		stats.TopPages = append(stats.TopPages, p)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("top bot pages: %w", err)
	}

	err = s.each(`SELECT substr(timestamp, 1, 10) AS day, COUNT(*) FROM bot_visits WHERE timestamp >= ? AND timestamp <= ?
		GROUP BY day ORDER BY day`, []any{lo, hi}, func(rows *sql.Rows) error {
		var d DailyVisit
		if err := rows.Scan(&d.Date, &d.Visits); err != nil {
			return err
		}
		stats.DailyVisits = append(stats.DailyVisits, d)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("daily bot visits: %w", err)
	}

	return stats, nil
}

func (s *Store) each(query string, args []any, fn func(*sql.Rows) error) error {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		if err := fn(rows); err != nil {
			return err
		}
	}
	return rows.Err()
}

// CleanupOldVisits removes visits older than the retention period and
// returns how many were deleted.
func (s *Store) CleanupOldVisits(retentionDays int) (int64, error) {
	cutoff := time.Now().UTC().AddDate(0, 0, -retentionDays).Format(timeLayout)
	res, err := s.db.Exec(`DELETE FROM bot_visits WHERE timestamp < ?`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("cleanup bot_visits: %w", err)
	}
	return res.RowsAffected()
}

// StartCleanupScheduler runs periodic cleanup of old visits. Returns a stop function.
func (s *Store) StartCleanupScheduler(logger echo.Logger, retentionDays int, interval time.Duration) func() {
	ticker := time.NewTicker(interval)
	done := make(chan struct{})

	go func() {
		for {
			select {
			case <-ticker.C:
				n, err := s.CleanupOldVisits(retentionDays)
				if err != nil {
					logger.Errorf("crawlers: %v", err)
					continue
				}
				if n > 0 {
					logger.Infof("crawlers: removed %d visits older than %d days", n, retentionDays)
				}
			case <-done:
				ticker.Stop()
				return
			}
		}
	}()

	var once sync.Once
	return func() { once.Do(func() { close(done) }) }
}
