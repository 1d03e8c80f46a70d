package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"

	"ngc-metadata/packages/compiler/src/summary"
)

var validate = validator.New()

// CompilerConfig represents the compiler configuration
type CompilerConfig struct {
	Summary       SummaryConfig `mapstructure:"summary"`
	Jobs          int           `mapstructure:"jobs" validate:"gte=0"`
	HostCacheSize int           `mapstructure:"host_cache_size" validate:"gte=1"`
	Log           LogConfig     `mapstructure:"log"`
}

// SummaryConfig says where and how directive summaries are written
type SummaryConfig struct {
	Dir    string `mapstructure:"dir" validate:"required"`
	Format string `mapstructure:"format" validate:"oneof=json msgpack"`
}

// LogConfig represents logging configuration
type LogConfig struct {
	Level       string `mapstructure:"level" validate:"oneof=debug info warn error"`
	Development bool   `mapstructure:"development"`
}

const (
	DefaultSummaryDir    = "dist/ngc-summaries"
	DefaultHostCacheSize = 256
)

// NewCompilerConfig creates a CompilerConfig with defaults and optional overrides
func NewCompilerConfig(opts ...CompilerConfigOption) *CompilerConfig {
	config := &CompilerConfig{
		Summary:       SummaryConfig{Dir: DefaultSummaryDir, Format: string(summary.FormatJSON)},
		HostCacheSize: DefaultHostCacheSize,
		Log:           LogConfig{Level: "info"},
	}

	for _, opt := range opts {
		opt(config)
	}

	return config
}

// CompilerConfigOption is a function that modifies CompilerConfig
type CompilerConfigOption func(*CompilerConfig)

// WithSummaryDir sets the summary output directory
func WithSummaryDir(dir string) CompilerConfigOption {
	return func(c *CompilerConfig) {
		c.Summary.Dir = dir
	}
}

// WithFormat sets the summary encoding
func WithFormat(format summary.Format) CompilerConfigOption {
	return func(c *CompilerConfig) {
		c.Summary.Format = string(format)
	}
}

// WithJobs sets how many directives are normalized concurrently; 0 means GOMAXPROCS
func WithJobs(jobs int) CompilerConfigOption {
	return func(c *CompilerConfig) {
		c.Jobs = jobs
	}
}

// WithLogLevel sets the log level
func WithLogLevel(level string) CompilerConfigOption {
	return func(c *CompilerConfig) {
		c.Log.Level = level
	}
}

// Load reads the configuration from path, or from ngc.yaml in the working directory
// when path is empty. NGC_* environment variables override the file, opts override both.
func Load(path string, opts ...CompilerConfigOption) (*CompilerConfig, error) {
	v := viper.New()

	defaults := NewCompilerConfig()
	v.SetDefault("summary.dir", defaults.Summary.Dir)
	v.SetDefault("summary.format", defaults.Summary.Format)
	v.SetDefault("jobs", defaults.Jobs)
	v.SetDefault("host_cache_size", defaults.HostCacheSize)
	v.SetDefault("log.level", defaults.Log.Level)
	v.SetDefault("log.development", defaults.Log.Development)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("ngc")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix("NGC")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var config CompilerConfig
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	for _, opt := range opts {
		opt(&config)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

// Validate checks field constraints
func (c *CompilerConfig) Validate() error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			msgs := make([]string, len(verrs))
			for i, fe := range verrs {
				msgs[i] = fmt.Sprintf("%s failed %q (got %v)", fe.Namespace(), fe.Tag(), fe.Value())
			}
			return fmt.Errorf("invalid config: %s", strings.Join(msgs, "; "))
		}
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// SummaryFormat returns the validated summary format
func (c *CompilerConfig) SummaryFormat() summary.Format {
	return summary.Format(c.Summary.Format)
}
