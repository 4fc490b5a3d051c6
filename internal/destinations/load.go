// internal/destinations/load.go
//
// Loaders for the curator's dataset.
//
// Sources (first match wins at the call site, see loadStore in db.go):
//   1. SQLite database with a `destinations` table (LoadSQL).
//   2. JSON or YAML file on disk (LoadFile), format chosen by extension.
//   3. The dataset embedded in the binary (LoadEmbedded).
//
// Every loader validates through NewStore, so a bad dataset fails at startup
// rather than mid-round.

package destinations

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/neo7812/Globetrotter/assets"
)

// Format names a dataset encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// Schema creates the table LoadSQL reads. List columns hold JSON arrays.
const Schema = `CREATE TABLE IF NOT EXISTS destinations (
	id       INTEGER PRIMARY KEY,
	city     TEXT NOT NULL UNIQUE,
	country  TEXT NOT NULL DEFAULT '',
	clues    TEXT NOT NULL DEFAULT '[]',
	fun_fact TEXT NOT NULL DEFAULT '[]',
	trivia   TEXT NOT NULL DEFAULT '[]'
);`

// Parse decodes a dataset (an array of destination records).
func Parse(data []byte, format Format) ([]Destination, error) {
	var out []Destination
	switch format {
	case FormatJSON:
		if err := json.Unmarshal(data, &out); err != nil {
			return nil, fmt.Errorf("decode json dataset: %w", err)
		}
	case FormatYAML:
		if err := yaml.Unmarshal(data, &out); err != nil {
			return nil, fmt.Errorf("decode yaml dataset: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported dataset format %q", format)
	}
	return out, nil
}

// FormatFromPath picks the dataset format from a file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	}
	return "", fmt.Errorf("unsupported dataset file %q (want .json, .yaml or .yml)", path)
}

// LoadFile reads and validates a dataset file.
func LoadFile(path string) (*Store, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read dataset %s: %w", path, err)
	}
	items, err := Parse(data, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return NewStore(items)
}

// LoadEmbedded returns the dataset bundled with the binary.
func LoadEmbedded() (*Store, error) {
	items, err := Parse(assets.Destinations(), FormatJSON)
	if err != nil {
		return nil, fmt.Errorf("embedded dataset: %w", err)
	}
	return NewStore(items)
}

// LoadSQL reads every row of the destinations table ordered by id.
func LoadSQL(ctx context.Context, db *sql.DB) (*Store, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT id, city, country, clues, fun_fact, trivia FROM destinations ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query destinations: %w", err)
	}
	defer rows.Close()

	var items []Destination
	for rows.Next() {
		var (
			d                      Destination
			clues, funFact, trivia string
		)
		if err := rows.Scan(&d.ID, &d.City, &d.Country, &clues, &funFact, &trivia); err != nil {
			return nil, fmt.Errorf("scan destination: %w", err)
		}
		if err := decodeList(clues, &d.Clues); err != nil {
			return nil, fmt.Errorf("destination %d: clues: %w", d.ID, err)
		}
		if err := decodeList(funFact, &d.FunFact); err != nil {
			return nil, fmt.Errorf("destination %d: fun_fact: %w", d.ID, err)
		}
		if err := decodeList(trivia, &d.Trivia); err != nil {
			return nil, fmt.Errorf("destination %d: trivia: %w", d.ID, err)
		}
		items = append(items, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate destinations: %w", err)
	}
	return NewStore(items)
}

// decodeList parses a JSON array column; an empty column is an empty list.
func decodeList(raw string, dst *[]string) error {
	if strings.TrimSpace(raw) == "" {
		*dst = nil
		return nil
	}
	return json.Unmarshal([]byte(raw), dst)
}
