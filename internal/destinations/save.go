package destinations

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
)

// SaveSQL creates the destinations table if needed and upserts every item
// of s inside one transaction.
func SaveSQL(ctx context.Context, db *sql.DB, s *Store) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, Schema); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	stmt, err := tx.PrepareContext(ctx, `INSERT INTO destinations (id, city, country, clues, fun_fact, trivia)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET city=excluded.city, country=excluded.country,
			clues=excluded.clues, fun_fact=excluded.fun_fact, trivia=excluded.trivia`)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, d := range s.All() {
		clues, _ := json.Marshal(nonNil(d.Clues))
		funFact, _ := json.Marshal(nonNil(d.FunFact))
		trivia, _ := json.Marshal(nonNil(d.Trivia))
		if _, err := stmt.ExecContext(ctx, d.ID, d.City, d.Country, string(clues), string(funFact), string(trivia)); err != nil {
			return fmt.Errorf("insert destination %d: %w", d.ID, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

func nonNil(list []string) []string {
	if list == nil {
		return []string{}
	}
	return list
}
