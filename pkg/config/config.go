package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/subosito/gotenv"

	"github.com/yurifrl/residentledger/pkg/ledger"
)

const envPrefix = "RLEDGER"

type Config struct {
	Log    LogConfig    `mapstructure:"log"`
	Store  StoreConfig  `mapstructure:"store"`
	Import ImportConfig `mapstructure:"import"`
	Ledger LedgerConfig `mapstructure:"ledger"`
}

type LogConfig struct {
	Level string `mapstructure:"level" validate:"oneof=debug info warn error"`
}

type StoreConfig struct {
	Driver string `mapstructure:"driver" validate:"oneof=memory file postgres"`
	Path   string `mapstructure:"path" validate:"required_if=Driver file"`
	DSN    string `mapstructure:"dsn" validate:"required_if=Driver postgres"`
}

type ImportConfig struct {
	HeaderScanRows   int  `mapstructure:"header_scan_rows" validate:"min=1"`
	UpdateExisting   bool `mapstructure:"update_existing"`
	MaxDisplayErrors int  `mapstructure:"max_display_errors" validate:"min=0"`
}

type LedgerConfig struct {
	PeriodStartMonth int    `mapstructure:"period_start_month" validate:"min=1,max=12"`
	PeriodBasis      string `mapstructure:"period_basis" validate:"oneof=import receipt"`
}

func (c *Config) LogLevel() log.Level {
	level, err := log.ParseLevel(c.Log.Level)
	if err != nil {
		return log.InfoLevel
	}
	return level
}

func (c *Config) Periods() ledger.Periods {
	return ledger.Periods{
		Basis:      ledger.PeriodBasis(c.Ledger.PeriodBasis),
		StartMonth: time.Month(c.Ledger.PeriodStartMonth),
	}
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("store.driver", "file")
	v.SetDefault("store.path", "ledger.json")
	v.SetDefault("import.header_scan_rows", 10)
	v.SetDefault("import.update_existing", true)
	v.SetDefault("import.max_display_errors", 20)
	v.SetDefault("ledger.period_start_month", 6)
	v.SetDefault("ledger.period_basis", string(ledger.BasisImport))
}

// flagKeys maps command-line flags onto config keys.
var flagKeys = map[string]string{
	"log-level":       "log.level",
	"store":           "store.driver",
	"store-path":      "store.path",
	"dsn":             "store.dsn",
	"update-existing": "import.update_existing",
	"period-basis":    "ledger.period_basis",
}

// Build loads .env, the config file (config.yaml when cfgFile is empty and one
// exists), RLEDGER_* environment variables and the given flags, in increasing
// precedence.
func Build(cfgFile string, flags *pflag.FlagSet) (*Config, error) {
	if err := gotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	v := viper.New()
	setDefaults(v)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if flags != nil {
		for name, key := range flagKeys {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("failed to bind flag %s: %w", name, err)
				}
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &cfg, nil
}
