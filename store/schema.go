package store

import (
	"context"
	"database/sql"
	"fmt"
	"regexp"
)

// DefaultTable is the table used when none is given.
const DefaultTable = "entities"

var identifier = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*(\.[A-Za-z_][A-Za-z0-9_]*)?$`)

// ValidTable reports whether name is safe to interpolate as a table name
// (optionally schema qualified, e.g. main.entities).
func ValidTable(name string) bool { return identifier.MatchString(name) }

func schemaDDL(table string) string {
	return fmt.Sprintf(`
CREATE TABLE IF NOT EXISTS %s (
    id    INTEGER PRIMARY KEY AUTOINCREMENT,
    value TEXT NOT NULL
);`, table)
}

// EnsureSchema creates the entity table in db if it does not already exist.
func EnsureSchema(ctx context.Context, db *sql.DB, table string) error {
	if !ValidTable(table) {
		return fmt.Errorf("store: invalid table name %q", table)
	}
	_, err := db.ExecContext(ctx, schemaDDL(table))
	return err
}
