package commands

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/viant/entity-corrector/engine"
	"github.com/viant/entity-corrector/errors"
	"github.com/viant/entity-corrector/store"
)

var testCorpus = []string{
	"the cat ate the bag",
	"the cbt ate the bag",
	"Atlanta",
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func corpusFile(t *testing.T) string {
	return writeFile(t, "entities.txt", strings.Join(testCorpus, "\n")+"\n\n")
}

func run(t *testing.T, args ...string) ([]string, error) {
	t.Helper()
	var out bytes.Buffer
	root := NewRootCmd()
	root.SetOut(&out)
	root.SetErr(&bytes.Buffer{})
	root.SetArgs(args)
	err := root.Execute()
	text := strings.TrimRight(out.String(), "\n")
	if text == "" {
		return nil, err
	}
	return strings.Split(text, "\n"), err
}

func TestCorrectCommand(t *testing.T) {
	path := corpusFile(t)

	lines, err := run(t, "--entities", path, "correct", "the cbt ate the bag")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"the cat ate the bag", "the cbt ate the bag"}, lines)

	lines, err = run(t, "--entities", path, "--index", "correct", "ATLNTA", "nothing like it")
	require.NoError(t, err)
	assert.Equal(t, []string{"ATLNTA\tatlanta"}, lines)
}

func TestNearCommand(t *testing.T) {
	path := corpusFile(t)

	lines, err := run(t, "--entities", path, "near", "atlnta", "--radius", "2")
	require.NoError(t, err)
	assert.Equal(t, []string{"atlanta"}, lines)

	lines, err = run(t, "--entities", path, "--index", "near", "the cat ate the ba", "--radius", "1")
	require.NoError(t, err)
	assert.Equal(t, []string{"the cat ate the bag"}, lines)

	lines, err = run(t, "--entities", path, "--index", "near", "the cat ate the ba", "--radius", "2", "--linear")
	require.NoError(t, err)
	assert.Equal(t, []string{"the cat ate the bag", "the cbt ate the bag"}, lines)

	_, err = run(t, "--entities", path, "near", "x", "--radius", "-1")
	assert.Error(t, err)
}

func TestKnnCommand(t *testing.T) {
	path := corpusFile(t)

	_, err := run(t, "--entities", path, "knn", "atlnta")
	require.Error(t, err)
	assert.True(t, errors.IsConfiguration(err))
	assert.NotEmpty(t, errors.GetAllHints(err))

	lines, err := run(t, "--entities", path, "--index", "knn", "atlnta", "-k", "2")
	require.NoError(t, err)
	require.Len(t, lines, 2)
	assert.Equal(t, "2\tatlanta", lines[0])

	lines, err = run(t, "--entities", path, "--index", "knn", "atlnta", "-k", "10")
	require.NoError(t, err)
	assert.Len(t, lines, len(testCorpus))
}

func TestConfigFileAndEnv(t *testing.T) {
	path := corpusFile(t)
	config := writeFile(t, "entitycorrect.toml", "entities = \""+filepath.ToSlash(path)+"\"\nuse_index = true\nmetric = \"euclidean\"\n")

	lines, err := run(t, "--config", config, "knn", "atlnta", "-k", "1")
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.True(t, strings.HasSuffix(lines[0], "\tatlanta"), lines[0])

	t.Setenv("ENTITYCORRECT_USE_INDEX", "true")
	lines, err = run(t, "--entities", path, "knn", "atlnta", "-k", "1")
	require.NoError(t, err)
	assert.Equal(t, []string{"2\tatlanta"}, lines)
}

func TestDatabaseCorpus(t *testing.T) {
	dsn := filepath.Join(t.TempDir(), "corpus.sqlite")
	db, err := engine.Open(dsn)
	require.NoError(t, err)
	ctx := context.Background()
	s, err := store.NewSQLiteStore(ctx, db, "cities")
	require.NoError(t, err)
	_, err = s.AddEntities(ctx, []string{"atlanta", "boston", "austin"})
	require.NoError(t, err)
	require.NoError(t, db.Close())

	lines, err := run(t, "--db", dsn, "--table", "cities", "correct", "bostn")
	require.NoError(t, err)
	assert.Equal(t, []string{"boston"}, lines)
}

func TestLoadSettings(t *testing.T) {
	_, err := LoadSettings("", nil)
	require.Error(t, err)
	assert.True(t, errors.IsValidation(err))
	assert.Contains(t, errors.FlattenHints(err), "--entities")

	config := writeFile(t, "c.toml", "entities = \"a.txt\"\n")
	s, err := LoadSettings(config, nil)
	require.NoError(t, err)
	assert.Equal(t, "a.txt", s.Entities)
	assert.Equal(t, store.DefaultTable, s.Table)
	assert.Equal(t, 50, s.MaxSize)
	assert.False(t, s.UseIndex)

	bad := writeFile(t, "bad.toml", "entities = \"a.txt\"\nmax_size = 0\n")
	_, err = LoadSettings(bad, nil)
	require.Error(t, err)
	assert.True(t, errors.IsValidation(err))

	both := writeFile(t, "both.toml", "entities = \"a.txt\"\ndb = \"x.sqlite\"\n")
	_, err = LoadSettings(both, nil)
	assert.True(t, errors.IsValidation(err))

	_, err = LoadSettings(filepath.Join(t.TempDir(), "missing.toml"), nil)
	assert.Error(t, err)
}

func TestReadEntitiesFile(t *testing.T) {
	path := writeFile(t, "e.txt", "  alpha \n\n beta\n")
	got, err := readEntitiesFile(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"alpha", "beta"}, got)

	_, err = readEntitiesFile(filepath.Join(t.TempDir(), "none.txt"))
	assert.Error(t, err)
}
