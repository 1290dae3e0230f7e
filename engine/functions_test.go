package engine

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/viant/entity-corrector/vector"
)

func TestRegisterDistanceFunctionsAndUse(t *testing.T) {
	// Register globally before first connection so functions are available.
	require.NoError(t, RegisterDistanceFunctions())
	require.NoError(t, RegisterDistanceFunctions(), "registration is idempotent")

	db, err := Open(":memory:")
	require.NoError(t, err)
	defer db.Close()

	var d int64
	require.NoError(t, db.QueryRow(`SELECT edit_distance(?, ?)`, "the cat ate the bag", "The Cbt ate the bag").Scan(&d))
	assert.Equal(t, int64(1), d)

	require.NoError(t, db.QueryRow(`SELECT edit_distance('ca', 'abc')`).Scan(&d))
	assert.Equal(t, int64(2), d)

	a := vector.EncodeBlob(vector.Vector{1, 2, 3, 0})
	b := vector.EncodeBlob(vector.Vector{1, 3, 2, 0})
	require.NoError(t, db.QueryRow(`SELECT edit_distance(?, ?)`, a, b).Scan(&d))
	assert.Equal(t, int64(1), d)

	var null sql.NullInt64
	require.NoError(t, db.QueryRow(`SELECT edit_distance(NULL, 'x')`).Scan(&null))
	assert.False(t, null.Valid)

	err = db.QueryRow(`SELECT edit_distance(?, 'x')`, a).Scan(&d)
	assert.Error(t, err)
}

func TestOrderByEditDistance(t *testing.T) {
	require.NoError(t, RegisterDistanceFunctions())
	db, err := Open(":memory:")
	require.NoError(t, err)
	defer db.Close()

	_, err = db.Exec(`CREATE TABLE words(w TEXT)`)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO words(w) VALUES ('then'), ('cat'), ('the')`)
	require.NoError(t, err)

	rows, err := db.Query(`SELECT w FROM words ORDER BY edit_distance(w, 'teh'), w`)
	require.NoError(t, err)
	defer rows.Close()
	var got []string
	for rows.Next() {
		var w string
		require.NoError(t, rows.Scan(&w))
		got = append(got, w)
	}
	require.NoError(t, rows.Err())
	assert.Equal(t, []string{"the", "then", "cat"}, got)
}
