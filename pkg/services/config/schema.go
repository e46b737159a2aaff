package config

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/de-tools/residence-atlas/pkg/models/domain"
	"github.com/spf13/viper"
)

const (
	EnvPrefix = "RESIDENCE"

	KeyStartIndex    = "start_index"
	KeyEndIndex      = "end_index"
	KeyDelimiter     = "delimiter"
	KeyDateDelimiter = "date_delimiter"
	KeyPresentToken  = "present_token"
	KeyDatePattern   = "date_pattern"
)

// SchemaConfig is the on-disk form of a domain.Schema.
type SchemaConfig struct {
	StartIndex    int    `mapstructure:"start_index"`
	EndIndex      int    `mapstructure:"end_index"`
	Delimiter     string `mapstructure:"delimiter"`
	DateDelimiter string `mapstructure:"date_delimiter"`
	PresentToken  string `mapstructure:"present_token"`
	DatePattern   string `mapstructure:"date_pattern"`
}

func DefaultSchemaConfig() SchemaConfig {
	return SchemaConfig{
		StartIndex:    domain.DefaultStartIndex,
		EndIndex:      domain.DefaultEndIndex,
		Delimiter:     domain.DefaultDelimiter,
		DateDelimiter: domain.DefaultDateDelimiter,
		PresentToken:  domain.DefaultPresentToken,
		DatePattern:   domain.DefaultDatePattern,
	}
}

// Schema compiles the pattern and validates the result.
func (c SchemaConfig) Schema() (domain.Schema, error) {
	pattern, err := regexp.Compile(c.DatePattern)
	if err != nil {
		return domain.Schema{}, &domain.SchemaError{Reason: fmt.Sprintf("date pattern: %v", err)}
	}

	schema := domain.Schema{
		StartIndex:    c.StartIndex,
		EndIndex:      c.EndIndex,
		Delimiter:     c.Delimiter,
		DateDelimiter: c.DateDelimiter,
		PresentToken:  c.PresentToken,
		DatePattern:   pattern,
	}
	if err := schema.Validate(); err != nil {
		return domain.Schema{}, err
	}
	return schema, nil
}

// LoadSchema reads a schema file (yaml, json or toml) on top of the defaults.
// RESIDENCE_* environment variables override both. An empty path uses defaults and environment only.
func LoadSchema(path string) (domain.Schema, error) {
	v := viper.New()
	defaults := DefaultSchemaConfig()
	v.SetDefault(KeyStartIndex, defaults.StartIndex)
	v.SetDefault(KeyEndIndex, defaults.EndIndex)
	v.SetDefault(KeyDelimiter, defaults.Delimiter)
	v.SetDefault(KeyDateDelimiter, defaults.DateDelimiter)
	v.SetDefault(KeyPresentToken, defaults.PresentToken)
	v.SetDefault(KeyDatePattern, defaults.DatePattern)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return domain.Schema{}, fmt.Errorf("failed to read schema file: %w", err)
		}
	}

	var cfg SchemaConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return domain.Schema{}, fmt.Errorf("failed to parse schema config: %w", err)
	}
	return cfg.Schema()
}
