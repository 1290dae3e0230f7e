package commands

import (
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/viant/entity-corrector/corrector"
	"github.com/viant/entity-corrector/errors"
	"github.com/viant/entity-corrector/metric"
	"github.com/viant/entity-corrector/store"
	"github.com/viant/entity-corrector/vector"
)

// EnvPrefix scopes environment overrides, e.g. ENTITYCORRECT_MAX_SIZE.
const EnvPrefix = "ENTITYCORRECT"

// Settings is the resolved command line configuration.
type Settings struct {
	corrector.Config `mapstructure:",squash"`

	Entities string `mapstructure:"entities"`
	DB       string `mapstructure:"db"`
	Table    string `mapstructure:"table"`
	Verbose  bool   `mapstructure:"verbose"`
}

// flag name -> config key
var flagKeys = map[string]string{
	"entities": "entities",
	"db":       "db",
	"table":    "table",
	"max-size": "max_size",
	"index":    "use_index",
	"metric":   "metric",
	"verbose":  "verbose",
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("entities", "")
	v.SetDefault("db", "")
	v.SetDefault("table", store.DefaultTable)
	v.SetDefault("max_size", vector.DefaultMaxSize)
	v.SetDefault("use_index", false)
	v.SetDefault("metric", string(metric.NameDamerau))
	v.SetDefault("verbose", false)
}

// LoadSettings resolves settings with precedence flags > environment >
// config file > defaults.
func LoadSettings(configPath string, flags *pflag.FlagSet) (*Settings, error) {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
		v.SetConfigType("toml")
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Wrapf(err, "read config %s", configPath)
		}
	}
	if flags != nil {
		for name, key := range flagKeys {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, errors.Wrapf(err, "bind flag %s", name)
				}
			}
		}
	}

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return nil, errors.Wrap(err, "unmarshal config")
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Validate checks corpus source and corrector settings.
func (s *Settings) Validate() error {
	if s.Entities == "" && s.DB == "" {
		return errors.WithHint(
			errors.NewValidation("entities", "no corpus source"),
			"pass --entities FILE or --db DSN")
	}
	if s.Entities != "" && s.DB != "" {
		return errors.NewValidation("entities", "--entities and --db are mutually exclusive")
	}
	if s.DB != "" && !store.ValidTable(s.Table) {
		return errors.NewValidation("table", "invalid table name %q", s.Table)
	}
	return s.Config.Validate()
}
