package catalog

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/llehouerou/localplay/internal/player"
)

const schemaVersion = 1

// Index is the media index: one row per audio file found under the
// library directories, with its tags and decoded length.
type Index struct {
	db *sql.DB
}

// OpenIndex opens or creates the index database at path.
func OpenIndex(path string) (*Index, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	if err := initSchema(db); err != nil {
		db.Close()
		return nil, err
	}
	return &Index{db: db}, nil
}

func (ix *Index) Close() error {
	return ix.db.Close()
}

func initSchema(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_version (
			version INTEGER PRIMARY KEY
		);

		CREATE TABLE IF NOT EXISTS media_tracks (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			path TEXT NOT NULL UNIQUE,
			mtime INTEGER NOT NULL,
			title TEXT NOT NULL,
			artist TEXT NOT NULL DEFAULT '',
			album TEXT NOT NULL DEFAULT '',
			duration_ms INTEGER NOT NULL,
			added_at INTEGER NOT NULL,
			updated_at INTEGER NOT NULL
		);
	`)
	if err != nil {
		return err
	}
	_, err = db.Exec(`INSERT OR IGNORE INTO schema_version (version) VALUES (?)`, schemaVersion)
	return err
}

// ScanStats summarizes one Refresh.
type ScanStats struct {
	Added   int
	Updated int
	Removed int
	// Skipped counts audio files that could not be decoded.
	Skipped int
}

type discovered struct {
	path  string
	mtime int64
}

// Refresh scans sources and brings the index in line with what is on disk.
// Unchanged files (same mtime) are not re-read. Rows for files that are no
// longer found are removed.
func (ix *Index) Refresh(ctx context.Context, sources []string) (ScanStats, error) {
	var stats ScanStats

	files, err := discover(ctx, sources)
	if err != nil {
		return stats, err
	}

	existing, err := ix.mtimes(ctx)
	if err != nil {
		return stats, err
	}

	now := time.Now().Unix()
	seen := make(map[string]bool, len(files))
	err = withTx(ctx, ix.db, func(tx *sql.Tx) error {
		for _, f := range files {
			if err := ctx.Err(); err != nil {
				return err
			}
			mtime, known := existing[f.path]
			if known && mtime == f.mtime {
				seen[f.path] = true
				continue
			}

			length, err := probe(f.path)
			if err != nil {
				stats.Skipped++
				continue
			}
			seen[f.path] = true
			t := readTags(f.path)

			if known {
				_, err = tx.ExecContext(ctx, `
					UPDATE media_tracks
					SET mtime = ?, title = ?, artist = ?, album = ?, duration_ms = ?, updated_at = ?
					WHERE path = ?`,
					f.mtime, t.Title, t.Artist, t.Album, length.Milliseconds(), now, f.path)
				stats.Updated++
			} else {
				_, err = tx.ExecContext(ctx, `
					INSERT INTO media_tracks (path, mtime, title, artist, album, duration_ms, added_at, updated_at)
					VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
					f.path, f.mtime, t.Title, t.Artist, t.Album, length.Milliseconds(), now, now)
				stats.Added++
			}
			if err != nil {
				return fmt.Errorf("index %s: %w", f.path, err)
			}
		}

		for path := range existing {
			if seen[path] {
				continue
			}
			if _, err := tx.ExecContext(ctx, `DELETE FROM media_tracks WHERE path = ?`, path); err != nil {
				return err
			}
			stats.Removed++
		}
		return nil
	})
	return stats, err
}

// Tracks lists the indexed files ordered by path.
func (ix *Index) Tracks(ctx context.Context) ([]Track, error) {
	rows, err := ix.db.QueryContext(ctx, `
		SELECT id, path, title, artist, album, duration_ms
		FROM media_tracks
		ORDER BY path`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tracks []Track
	for rows.Next() {
		var t Track
		var ms int64
		if err := rows.Scan(&t.ID, &t.Locator, &t.Title, &t.Artist, &t.Album, &ms); err != nil {
			return nil, err
		}
		t.Duration = time.Duration(ms) * time.Millisecond
		tracks = append(tracks, t)
	}
	return tracks, rows.Err()
}

// Count returns the number of indexed files.
func (ix *Index) Count(ctx context.Context) (int, error) {
	var n int
	err := ix.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM media_tracks`).Scan(&n)
	return n, err
}

func (ix *Index) mtimes(ctx context.Context) (map[string]int64, error) {
	rows, err := ix.db.QueryContext(ctx, `SELECT path, mtime FROM media_tracks`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[string]int64)
	for rows.Next() {
		var path string
		var mtime int64
		if err := rows.Scan(&path, &mtime); err != nil {
			return nil, err
		}
		out[path] = mtime
	}
	return out, rows.Err()
}

// discover walks the sources for audio files. Unreadable entries are
// skipped so one bad directory does not hide the rest of the library.
func discover(ctx context.Context, sources []string) ([]discovered, error) {
	var files []discovered
	for _, src := range sources {
		err := filepath.WalkDir(src, func(path string, d os.DirEntry, walkErr error) error {
			if err := ctx.Err(); err != nil {
				return err
			}
			if walkErr != nil {
				return nil //nolint:nilerr // keep scanning
			}
			if d.IsDir() || !player.IsMusicFile(path) {
				return nil
			}
			info, err := d.Info()
			if err != nil {
				return nil //nolint:nilerr // keep scanning
			}
			files = append(files, discovered{path: path, mtime: info.ModTime().Unix()})
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	return files, nil
}

func probe(path string) (time.Duration, error) {
	src, err := player.Resolver{}.Resolve(path)
	if err != nil {
		return 0, err
	}
	return player.Probe(src)
}

func withTx(ctx context.Context, db *sql.DB, fn func(tx *sql.Tx) error) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	if err := fn(tx); err != nil {
		return err
	}
	return tx.Commit()
}
