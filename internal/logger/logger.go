// Package logger builds the structured loggers used by the command line tool.
package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Standard field names for structured logging.
const (
	FieldEntities   = "entities"
	FieldVocabulary = "vocabulary"
	FieldMaxSize    = "max_size"
	FieldMode       = "mode"
	FieldMetric     = "metric"
	FieldQuery      = "query"
	FieldRadius     = "radius"
	FieldK          = "k"
	FieldResults    = "results"
	FieldSource     = "source"
	FieldDurationMS = "duration_ms"
	FieldError      = "error"
)

// New returns a console logger at debug level when verbose, otherwise a JSON
// logger that only reports warnings and above. Both write to stderr so that
// results on stdout stay machine readable.
func New(verbose bool) (*zap.SugaredLogger, error) {
	var config zap.Config
	if verbose {
		config = zap.NewDevelopmentConfig()
		config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	} else {
		config = zap.NewProductionConfig()
		config.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
		config.EncoderConfig.TimeKey = "time"
		config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	}
	config.OutputPaths = []string{"stderr"}
	config.ErrorOutputPaths = []string{"stderr"}

	l, err := config.Build()
	if err != nil {
		return nil, err
	}
	return l.Sugar(), nil
}

// Nop returns a logger that discards everything.
func Nop() *zap.SugaredLogger { return zap.NewNop().Sugar() }
