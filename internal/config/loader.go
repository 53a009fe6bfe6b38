package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/hugo-lorenzo-mato/lazyissues/internal/logging"
)

// Loader reads configuration from file and environment using viper.
type Loader struct {
	v      *viper.Viper
	logger *logging.Logger
}

// NewLoader creates a loader. configFile overrides the default search
// path when non-empty. Environment variables use the LAZYISSUES_
// prefix with dots replaced by underscores.
func NewLoader(configFile string, logger *logging.Logger) *Loader {
	if logger == nil {
		logger = logging.NewNop()
	}
	v := viper.New()
	v.SetConfigType("yaml")
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		if dir, err := os.UserConfigDir(); err == nil {
			v.AddConfigPath(filepath.Join(dir, "lazyissues"))
		}
		v.AddConfigPath(".")
	}
	v.SetEnvPrefix("LAZYISSUES")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return &Loader{v: v, logger: logger}
}

// Load builds the runtime configuration. A missing config file is not
// an error; defaults and environment values apply. Malformed key
// binds and unknown actions are skipped with a logged warning rather
// than failing the load.
func (l *Loader) Load() (*Config, error) {
	cfg := Default()
	l.setDefaults(cfg)

	if err := l.v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !os.IsNotExist(err) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
		l.logger.Debug("no config file found, using defaults")
	} else {
		l.logger.Debug("config file loaded", "path", l.v.ConfigFileUsed())
	}

	cfg.CredentialAttempts = l.v.GetInt("credentials.attempts")
	if cfg.CredentialAttempts < 1 {
		cfg.CredentialAttempts = 1
	}
	cfg.CredentialTimeout = time.Duration(l.v.GetInt("credentials.timeout_ms")) * time.Millisecond
	if cfg.CredentialTimeout <= 0 {
		cfg.CredentialTimeout = 50 * time.Millisecond
	}
	if cmd := l.v.GetStringSlice("credentials.helper_command"); len(cmd) > 0 {
		cfg.HelperCommand = cmd
	}
	for _, backend := range Backends {
		if p := l.v.GetString("credentials.token_path." + backend); p != "" {
			cfg.TokenPaths[backend] = p
		}
	}

	if f := l.v.GetString("ui.time_format"); f != "" {
		cfg.TimeFormat = f
	}
	for tag, color := range l.v.GetStringMapString("ui.tag_colors") {
		cfg.TagColors[tag] = color
	}

	l.loadKeys(cfg)
	return cfg, nil
}

func (l *Loader) setDefaults(cfg *Config) {
	l.v.SetDefault("credentials.attempts", cfg.CredentialAttempts)
	l.v.SetDefault("credentials.timeout_ms", int(cfg.CredentialTimeout/time.Millisecond))
	l.v.SetDefault("credentials.helper_command", cfg.HelperCommand)
	l.v.SetDefault("ui.time_format", cfg.TimeFormat)
}

type keyBind struct {
	Bind   string `mapstructure:"bind"`
	Action string `mapstructure:"action"`
}

// loadKeys overlays user binds onto the default table. A user bind
// for an already-bound keystroke replaces the default.
func (l *Loader) loadKeys(cfg *Config) {
	var binds []keyBind
	if err := l.v.UnmarshalKey("keys", &binds); err != nil {
		l.logger.Warn("ignoring malformed keys section", "error", err)
		return
	}
	for _, b := range binds {
		ks, err := ParseKeyStroke(b.Bind)
		if err != nil {
			l.logger.Warn("ignoring malformed key bind", "bind", b.Bind, "error", err)
			continue
		}
		action, ok := ParseAction(b.Action)
		if !ok {
			l.logger.Warn("ignoring key bind with unknown action", "bind", b.Bind, "action", b.Action)
			continue
		}
		cfg.Keys[ks] = action
	}
}
