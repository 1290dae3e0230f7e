package correctvt

import (
	"context"
	"database/sql"
	"path/filepath"
	"sort"
	"testing"
	"time"

	"github.com/viant/entity-corrector/corrector"
	"github.com/viant/entity-corrector/engine"
	"github.com/viant/entity-corrector/store"
)

func TestEntityCorrectMatch(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "entity_correct.sqlite")
	db, err := engine.Open(dbPath)
	if err != nil {
		t.Fatalf("engine.Open failed: %v", err)
	}
	defer db.Close()
	// Register modules on this DB before any SQL opens a pooled connection.
	if err := Register(db, corrector.WithMaxSize(50)); err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if _, err := db.Exec(`PRAGMA journal_mode=WAL; PRAGMA busy_timeout=5000;`); err != nil {
		t.Fatalf("PRAGMA setup failed: %v", err)
	}

	ctx := context.Background()
	s, err := store.NewSQLiteStore(ctx, db, "phrases")
	if err != nil {
		t.Fatalf("NewSQLiteStore failed: %v", err)
	}
	if _, err := s.AddEntities(ctx, []string{
		"the cat ate the bag",
		"the cbt ate the bag",
		"don't cry for me",
		"the dog ate the cat",
		"the",
		"then",
	}); err != nil {
		t.Fatalf("AddEntities failed: %v", err)
	}

	if _, err := db.Exec(`CREATE VIRTUAL TABLE fix USING entity_correct(phrases, index=tree)`); err != nil {
		t.Fatalf("CREATE VIRTUAL TABLE failed: %v", err)
	}

	if _, err := db.Exec(`CREATE VIRTUAL TABLE bad_fix USING entity_correct(phrases, max_size=5O)`); err == nil {
		t.Fatalf("expected CREATE VIRTUAL TABLE with malformed max_size to fail")
	}

	qctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	rows, err := db.QueryContext(qctx, `SELECT value, distance FROM fix WHERE value MATCH ?`, "the cbt ate the bag")
	if err != nil {
		t.Fatalf("MATCH query failed: %v", err)
	}
	defer rows.Close()

	got := map[string]int{}
	for rows.Next() {
		var value string
		var distance int
		if err := rows.Scan(&value, &distance); err != nil {
			t.Fatalf("scan failed: %v", err)
		}
		got[value] = distance
	}
	if err := rows.Err(); err != nil {
		t.Fatalf("rows.Err: %v", err)
	}
	if len(got) != 2 || got["the cat ate the bag"] != 1 || got["the cbt ate the bag"] != 0 {
		t.Fatalf("unexpected corrections: %v", got)
	}

	// without MATCH the table lists the normalized corpus
	all, err := db.QueryContext(qctx, `SELECT value FROM fix`)
	if err != nil {
		t.Fatalf("scan query failed: %v", err)
	}
	defer all.Close()
	var values []string
	for all.Next() {
		var v string
		if err := all.Scan(&v); err != nil {
			t.Fatalf("scan failed: %v", err)
		}
		values = append(values, v)
	}
	sort.Strings(values)
	if len(values) != 6 || values[0] != "don't cry for me" {
		t.Fatalf("unexpected corpus listing: %v", values)
	}

	// new corpus rows are visible only after an admin rebuild
	if _, err := s.AddEntities(ctx, []string{"the cbt ate the bog"}); err != nil {
		t.Fatalf("AddEntities failed: %v", err)
	}
	if got := matchCount(t, qctx, db); got != 2 {
		t.Fatalf("expected cached corrector to return 2 rows, got %d", got)
	}
	if _, err := db.Exec(`CREATE VIRTUAL TABLE fix_admin USING entity_correct_admin`); err != nil {
		t.Fatalf("CREATE VIRTUAL TABLE admin failed: %v", err)
	}
	var op string
	if err := db.QueryRowContext(qctx, `SELECT op FROM fix_admin WHERE op MATCH ?`, "fix").Scan(&op); err != nil {
		t.Fatalf("admin rebuild failed: %v", err)
	}
	if op != "rebuilt:7" {
		t.Fatalf("unexpected admin result: %q", op)
	}
	if got := matchCount(t, qctx, db); got != 3 {
		t.Fatalf("expected rebuilt corrector to return 3 rows, got %d", got)
	}
	if err := db.QueryRowContext(qctx, `SELECT op FROM fix_admin WHERE op MATCH ?`, "missing").Scan(&op); err == nil {
		t.Fatalf("expected error for unknown table")
	}
}

func matchCount(t *testing.T, ctx context.Context, db *sql.DB) int {
	t.Helper()
	var n int
	if err := db.QueryRowContext(ctx, `SELECT count(*) FROM fix WHERE value MATCH ?`, "the cbt ate the bag").Scan(&n); err != nil {
		t.Fatalf("count query failed: %v", err)
	}
	return n
}
