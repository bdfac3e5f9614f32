// Package config loads application configuration from config.yaml and the
// environment, and initializes the global logger.
package config

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	Tidy TidyConfig `yaml:"tidy" mapstructure:"tidy"`
	Plot PlotConfig `yaml:"plot" mapstructure:"plot"`
	Log  LogConfig  `yaml:"log" mapstructure:"log"`
}

// TidyConfig configures sample-name analysis defaults.
type TidyConfig struct {
	SampleColumn  string   `yaml:"sample_column" mapstructure:"sample_column"`
	BufferNames   []string `yaml:"buffer_names" mapstructure:"buffer_names"`
	DropBuffers   bool     `yaml:"drop_buffers" mapstructure:"drop_buffers"`
	DropMalformed bool     `yaml:"drop_malformed" mapstructure:"drop_malformed"`
}

// PlotConfig configures chart rendering defaults.
type PlotConfig struct {
	Width  int    `yaml:"width" mapstructure:"width"`
	Height int    `yaml:"height" mapstructure:"height"`
	Format string `yaml:"format" mapstructure:"format"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("WRANGLE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("tidy.sample_column", "Sample ID")
	v.SetDefault("tidy.buffer_names", []string{"buffer", "blank"})
	v.SetDefault("tidy.drop_buffers", true)
	v.SetDefault("tidy.drop_malformed", false)
	v.SetDefault("plot.width", 800)
	v.SetDefault("plot.height", 500)
	v.SetDefault("plot.format", "png")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
