package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	dErrors "sepacbi/pkg/domain-errors"
)

// EnvPrefix namespaces every environment variable read by Load.
const EnvPrefix = "SEPACBI"

// Log output formats.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// Config captures process-level settings for the account tooling.
type Config struct {
	LogLevel   string `mapstructure:"LOG_LEVEL"`
	LogFormat  string `mapstructure:"LOG_FORMAT"`
	DefaultTag string `mapstructure:"DEFAULT_TAG"`
	Indent     string `mapstructure:"INDENT"`
	Metrics    bool   `mapstructure:"METRICS"`
}

var defaults = map[string]any{
	"LOG_LEVEL":   "info",
	"LOG_FORMAT":  FormatText,
	"DEFAULT_TAG": "CdtrAcct",
	"INDENT":      "  ",
	"METRICS":     false,
}

// Load reads an optional .env file from the working directory and then the
// SEPACBI_* environment. Values already present in the environment win over
// the file.
func Load() (*Config, error) {
	return LoadFile(".env")
}

// LoadFile is Load with an explicit dotenv path. A missing file is not an
// error.
func LoadFile(dotenv string) (*Config, error) {
	if dotenv != "" {
		if err := godotenv.Load(dotenv); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("reading %s: %w", dotenv, err)
		}
	}

	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects settings the tooling cannot honour.
func (c *Config) Validate() error {
	switch strings.ToLower(c.LogFormat) {
	case FormatText, FormatJSON:
	default:
		return dErrors.New(dErrors.CodeValidation, fmt.Sprintf("unsupported log format %q", c.LogFormat))
	}
	if c.DefaultTag == "" {
		return dErrors.New(dErrors.CodeValidation, "default tag cannot be empty")
	}
	return nil
}
