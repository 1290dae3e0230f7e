package commands

import (
	"bufio"
	"context"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/viant/entity-corrector/corrector"
	"github.com/viant/entity-corrector/engine"
	"github.com/viant/entity-corrector/errors"
	"github.com/viant/entity-corrector/internal/logger"
	"github.com/viant/entity-corrector/store"
)

// readEntitiesFile returns the non-blank lines of path.
func readEntitiesFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "open entities file %s", path)
	}
	defer f.Close()

	var out []string
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		out = append(out, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrapf(err, "read entities file %s", path)
	}
	return out, nil
}

func readEntitiesTable(ctx context.Context, dsn, table string) ([]string, error) {
	db, err := engine.Open(dsn)
	if err != nil {
		return nil, errors.Wrapf(err, "open database %s", dsn)
	}
	defer db.Close()
	s, err := store.NewSQLiteStore(ctx, db, table)
	if err != nil {
		return nil, err
	}
	return s.Entities(ctx)
}

// loadCorpus reads the configured corpus source.
func loadCorpus(ctx context.Context, s *Settings) ([]string, string, error) {
	if s.DB != "" {
		entities, err := readEntitiesTable(ctx, s.DB, s.Table)
		return entities, s.DB + "#" + s.Table, err
	}
	entities, err := readEntitiesFile(s.Entities)
	return entities, s.Entities, err
}

// newCorrector loads the corpus and builds a corrector from settings.
func newCorrector(ctx context.Context, s *Settings, log *zap.SugaredLogger) (*corrector.Corrector, error) {
	started := time.Now()
	entities, source, err := loadCorpus(ctx, s)
	if err != nil {
		log.Errorw("failed to load corpus", logger.FieldSource, source, logger.FieldError, err)
		return nil, err
	}
	log.Debugw("loaded corpus",
		logger.FieldSource, source,
		logger.FieldEntities, len(entities),
		logger.FieldDurationMS, time.Since(started).Milliseconds(),
	)
	cfg := s.Config
	c, err := corrector.New(entities, corrector.WithConfig(&cfg), corrector.WithLogger(log))
	if err != nil {
		log.Errorw("failed to build corrector", logger.FieldSource, source, logger.FieldError, err)
		return nil, err
	}
	return c, nil
}
