package destinations

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const jsonDataset = `[
  {"id": 1, "city": "Paris", "country": "France",
   "clues": ["tower", "love"], "fun_fact": ["ff"], "trivia": ["tv"]},
  {"id": 2, "city": "Tokyo", "country": "Japan",
   "clues": ["crossing", "anime"], "fun_fact": [], "trivia": []}
]`

const yamlDataset = `
- id: 1
  city: Cairo
  country: Egypt
  clues: [pyramids, river]
  fun_fact: [victorious]
  trivia: [museum]
- id: 2
  city: Lima
  country: Peru
  clues: [mist, kings]
`

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadFile(t *testing.T) {
	t.Run("json", func(t *testing.T) {
		s, err := LoadFile(writeFile(t, "destinations.json", jsonDataset))
		require.NoError(t, err)
		require.Equal(t, 2, s.Len())
		assert.Equal(t, "Paris", s.At(0).City)
		assert.Equal(t, []string{"ff"}, s.At(0).FunFact)
		assert.Equal(t, FunFactPlaceholder, s.At(1).FirstFunFact())
	})

	t.Run("yaml", func(t *testing.T) {
		s, err := LoadFile(writeFile(t, "destinations.yml", yamlDataset))
		require.NoError(t, err)
		require.Equal(t, 2, s.Len())
		assert.Equal(t, "Lima", s.At(1).City)
		assert.Equal(t, TriviaPlaceholder, s.At(1).FirstTrivia())
	})

	t.Run("unknown extension", func(t *testing.T) {
		_, err := LoadFile(writeFile(t, "destinations.csv", "id,city"))
		assert.ErrorContains(t, err, "unsupported dataset file")
	})

	t.Run("malformed json", func(t *testing.T) {
		_, err := LoadFile(writeFile(t, "destinations.json", "{"))
		assert.ErrorContains(t, err, "decode json dataset")
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadFile(filepath.Join(t.TempDir(), "nope.json"))
		assert.ErrorIs(t, err, os.ErrNotExist)
	})
}

func TestLoadEmbedded(t *testing.T) {
	s, err := LoadEmbedded()
	require.NoError(t, err)
	assert.GreaterOrEqual(t, s.Len(), 4, "bundled dataset must support a full option set")
}

func TestLoadSQL(t *testing.T) {
	ctx := context.Background()
	db, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	_, err = db.ExecContext(ctx, Schema)
	require.NoError(t, err)

	_, err = db.ExecContext(ctx, `INSERT INTO destinations (id, city, country, clues, fun_fact, trivia) VALUES
		(2, 'Oslo', 'Norway', '["fjord","sculptures"]', '["tree"]', ''),
		(1, 'Rome', 'Italy', '["colosseum","vatican"]', '[]', '["wolf"]')`)
	require.NoError(t, err)

	s, err := LoadSQL(ctx, db)
	require.NoError(t, err)
	require.Equal(t, 2, s.Len())
	assert.Equal(t, "Rome", s.At(0).City, "rows are ordered by id")
	assert.Equal(t, []string{"fjord", "sculptures"}, s.At(1).Clues)
	assert.Equal(t, FunFactPlaceholder, s.At(0).FirstFunFact())
	assert.Equal(t, TriviaPlaceholder, s.At(1).FirstTrivia())
}

func TestLoadSQLEmptyTable(t *testing.T) {
	ctx := context.Background()
	db, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	_, err = db.ExecContext(ctx, Schema)
	require.NoError(t, err)

	_, err = LoadSQL(ctx, db)
	assert.ErrorIs(t, err, ErrEmptyStore)
}
