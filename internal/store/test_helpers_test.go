package store

import (
	"database/sql"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/roach88/ordermode/internal/ir"
	"github.com/roach88/ordermode/internal/session"
)

// createTestStore creates a new store in a temp directory for testing.
func createTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// createTestAttempt creates an attempt header with one anchor hint.
func createTestAttempt(id, puzzleID string) session.Attempt {
	pos := 2
	return session.Attempt{
		ID:           id,
		PuzzleID:     puzzleID,
		Baseline:     []string{"a", "b", "c", "d"},
		RawOrdering:  []string{"d", "c", "b", "a"},
		InitialHints: []ir.HintRecord{{Type: ir.HintAnchor, EventID: "c", Position: &pos}},
	}
}

// createTestEntry creates a move entry.
func createTestEntry(attemptID string, seq int64, eventID string, target int) session.Entry {
	return session.Entry{
		AttemptID: attemptID,
		Seq:       seq,
		Action:    ir.ActionRecord{Type: ir.ActionMove, EventID: eventID, TargetIndex: target},
		StateHash: "hash-" + eventID,
	}
}

func getTableColumns(t *testing.T, db *sql.DB, table string) []string {
	t.Helper()

	rows, err := db.Query("PRAGMA table_info(" + table + ")")
	if err != nil {
		t.Fatalf("failed to get table info for %q: %v", table, err)
	}
	defer rows.Close()

	var columns []string
	for rows.Next() {
		var cid int
		var name, ctype string
		var notnull, pk int
		var dfltValue any
		if err := rows.Scan(&cid, &name, &ctype, &notnull, &dfltValue, &pk); err != nil {
			t.Fatalf("failed to scan column info: %v", err)
		}
		columns = append(columns, name)
	}
	return columns
}

func getTableIndexes(t *testing.T, db *sql.DB, table string) []string {
	t.Helper()

	rows, err := db.Query("SELECT name FROM sqlite_master WHERE type='index' AND tbl_name=?", table)
	if err != nil {
		t.Fatalf("failed to get indexes for %q: %v", table, err)
	}
	defer rows.Close()

	var indexes []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			t.Fatalf("failed to scan index name: %v", err)
		}
		indexes = append(indexes, name)
	}
	return indexes
}

// verifyPragma checks that a pragma is set to the expected value.
func (s *Store) verifyPragma(name, expected string) error {
	var value string
	if err := s.db.QueryRow(fmt.Sprintf("PRAGMA %s", name)).Scan(&value); err != nil {
		return fmt.Errorf("failed to query %s: %w", name, err)
	}
	if value != expected {
		return fmt.Errorf("%s = %q, expected %q", name, value, expected)
	}
	return nil
}
