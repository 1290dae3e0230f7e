package corrector

import (
	"go.uber.org/zap"

	"github.com/viant/entity-corrector/errors"
	"github.com/viant/entity-corrector/metric"
	"github.com/viant/entity-corrector/vector"
)

// Mode selects the search strategy backing a Corrector.
type Mode string

const (
	ModeLinear  Mode = "linear"
	ModeIndexed Mode = "indexed"
)

// Config captures construction settings. It can be decoded from TOML or any
// source viper supports.
type Config struct {
	// MaxSize is the encoded vector length; longer strings are truncated.
	MaxSize int `mapstructure:"max_size" toml:"max_size"`

	// UseIndex builds the metric tree and enables KNearest/WithinRadius.
	UseIndex bool `mapstructure:"use_index" toml:"use_index"`

	// Metric names the vector-space distance ("damerau" or "euclidean").
	Metric metric.Name `mapstructure:"metric" toml:"metric"`
}

// DefaultConfig returns the settings used when no option is given.
func DefaultConfig() *Config {
	return &Config{
		MaxSize: vector.DefaultMaxSize,
		Metric:  metric.NameDamerau,
	}
}

// Validate checks the config for construction.
func (c *Config) Validate() error {
	if c.MaxSize <= 0 {
		return errors.NewValidation("max_size", "must be positive, got %d", c.MaxSize)
	}
	if c.Metric.Function() == nil {
		return errors.NewValidation("metric", "unsupported metric %q", c.Metric)
	}
	return nil
}

// Mode returns the mode implied by UseIndex.
func (c *Config) Mode() Mode {
	if c.UseIndex {
		return ModeIndexed
	}
	return ModeLinear
}

type options struct {
	config Config
	logger *zap.SugaredLogger
}

// Option customises construction.
type Option func(*options)

// WithMaxSize sets the encoded vector length.
func WithMaxSize(n int) Option { return func(o *options) { o.config.MaxSize = n } }

// WithIndex selects indexed mode when enabled.
func WithIndex(enabled bool) Option { return func(o *options) { o.config.UseIndex = enabled } }

// WithMetric selects the vector-space distance.
func WithMetric(name metric.Name) Option { return func(o *options) { o.config.Metric = name } }

// WithConfig replaces all settings with cfg.
func WithConfig(cfg *Config) Option {
	return func(o *options) {
		if cfg != nil {
			o.config = *cfg
		}
	}
}

// WithLogger sets the logger used during construction.
func WithLogger(logger *zap.SugaredLogger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}
