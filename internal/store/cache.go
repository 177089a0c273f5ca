// Package store is a sqlite-backed cache of rewrite results, keyed by a
// hash of the sentence and the model that produced the rewrite. It lives
// at the service boundary: the analysis pipeline itself stays stateless.
package store

import (
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

const schemaSQL = `
CREATE TABLE IF NOT EXISTS rewrites (
    id INTEGER PRIMARY KEY,
    input_hash TEXT NOT NULL,
    model TEXT NOT NULL,
    input TEXT NOT NULL,
    output TEXT NOT NULL,
    created_at TEXT NOT NULL,
    UNIQUE(input_hash, model)
);
`

type Cache struct {
	conn *sql.DB
}

func Open(path string) (*Cache, error) {
	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if _, err := conn.Exec(schemaSQL); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	return &Cache{conn: conn}, nil
}

func (c *Cache) Close() error {
	return c.conn.Close()
}

// Get returns the cached rewrite for a sentence/model pair, if present.
func (c *Cache) Get(sentence, model string) (string, bool, error) {
	row := c.conn.QueryRow(
		`SELECT output FROM rewrites WHERE input_hash = ? AND model = ?`,
		hashInput(sentence), model,
	)
	var output string
	switch err := row.Scan(&output); err {
	case nil:
		return output, true, nil
	case sql.ErrNoRows:
		return "", false, nil
	default:
		return "", false, fmt.Errorf("scan rewrite: %w", err)
	}
}

// Put stores a rewrite, replacing any earlier entry for the same pair.
func (c *Cache) Put(sentence, model, output string) error {
	_, err := c.conn.Exec(
		`INSERT INTO rewrites(input_hash, model, input, output, created_at) VALUES(?,?,?,?,?)
		 ON CONFLICT(input_hash, model) DO UPDATE SET output = excluded.output, created_at = excluded.created_at`,
		hashInput(sentence), model, sentence, output, time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("insert rewrite: %w", err)
	}
	return nil
}

// Count reports how many rewrites are cached.
func (c *Cache) Count() (int, error) {
	row := c.conn.QueryRow(`SELECT COUNT(*) FROM rewrites`)
	var count int
	if err := row.Scan(&count); err != nil {
		return 0, fmt.Errorf("scan count: %w", err)
	}
	return count, nil
}

func hashInput(sentence string) string {
	sum := sha256.Sum256([]byte(sentence))
	return hex.EncodeToString(sum[:])
}
