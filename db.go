// db.go
//
// SQLite helpers for the destinations dataset.
// Responsibilities:
//   - Opening a dataset database: read-only for serving/playing, read-write
//     (created if missing, WAL journaling) for `import`.
//   - Choosing the dataset source from configuration.
//   - Seeding a database from a JSON/YAML dataset file.

package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog/log"

	"github.com/neo7812/Globetrotter/internal/config"
	"github.com/neo7812/Globetrotter/internal/destinations"
)

// openDB opens a SQLite dataset file. Read-only handles refuse to create
// missing files.
func openDB(ctx context.Context, path string, readOnly bool) (*sql.DB, error) {
	var dsn string
	if readOnly {
		if _, err := os.Stat(path); err != nil {
			return nil, fmt.Errorf("dataset db: %w", err)
		}
		dsn = "file:" + path + "?mode=ro&_busy_timeout=5000"
	} else {
		// Ensure directory exists for ./data/dest.db, etc.
		if dir := filepath.Dir(path); dir != "." && dir != "" {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("mkdir %s: %w", dir, err)
			}
		}
		dsn = path + "?_busy_timeout=5000&_journal_mode=WAL"
	}

	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, err
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	return db, nil
}

// loadStore picks the dataset source: DATASET_DB, then DATASET_PATH, then
// the embedded dataset.
func loadStore(ctx context.Context, cfg *config.Config) (*destinations.Store, error) {
	switch {
	case cfg.DatasetDB != "":
		db, err := openDB(ctx, cfg.DatasetDB, true)
		if err != nil {
			return nil, err
		}
		defer db.Close()
		s, err := destinations.LoadSQL(ctx, db)
		if err != nil {
			return nil, err
		}
		log.Info().Str("db", cfg.DatasetDB).Int("destinations", s.Len()).Msg("dataset loaded")
		return s, nil
	case cfg.DatasetPath != "":
		s, err := destinations.LoadFile(cfg.DatasetPath)
		if err != nil {
			return nil, err
		}
		log.Info().Str("path", cfg.DatasetPath).Int("destinations", s.Len()).Msg("dataset loaded")
		return s, nil
	default:
		s, err := destinations.LoadEmbedded()
		if err != nil {
			return nil, err
		}
		log.Info().Int("destinations", s.Len()).Msg("embedded dataset loaded")
		return s, nil
	}
}

// importDataset validates the file at from and writes it into the database
// at to.
func importDataset(ctx context.Context, from, to string) error {
	var (
		s   *destinations.Store
		err error
	)
	if from == "" {
		s, err = destinations.LoadEmbedded()
	} else {
		s, err = destinations.LoadFile(from)
	}
	if err != nil {
		return err
	}

	db, err := openDB(ctx, to, false)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := destinations.SaveSQL(ctx, db, s); err != nil {
		return fmt.Errorf("import into %s: %w", to, err)
	}
	log.Info().Str("db", to).Int("destinations", s.Len()).Msg("dataset imported")
	return nil
}
