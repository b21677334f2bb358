package config

import (
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"

	"github.com/beingmomen/dictation-core/internal/logger"
)

// Config holds all configuration options for the dictation engine.
type Config struct {
	// Audio & Speech
	WhisperModel string `mapstructure:"whisper_model" yaml:"whisper_model"`
	Language     string `mapstructure:"language" yaml:"language"`
	AudioSource  string `mapstructure:"audio_source" yaml:"audio_source"`
	UseGPU       bool   `mapstructure:"use_gpu" yaml:"use_gpu"`

	// Noise suppression
	NoiseSuppressionEnabled bool `mapstructure:"noise_suppression_enabled" yaml:"noise_suppression_enabled"`

	// Auto-stop on sustained silence
	AutoStopEnabled bool    `mapstructure:"auto_stop_enabled" yaml:"auto_stop_enabled"`
	AutoStopSeconds float64 `mapstructure:"auto_stop_seconds" yaml:"auto_stop_seconds"`

	// Refiner (optional external post-processor)
	RefinerEnabled bool   `mapstructure:"refiner_enabled" yaml:"refiner_enabled"`
	RefinerURL     string `mapstructure:"refiner_url" yaml:"refiner_url"`
	RefinerModel   string `mapstructure:"refiner_model" yaml:"refiner_model"`

	// Advanced
	LogLevel string `mapstructure:"log_level" yaml:"log_level"`
}

// DefaultConfig returns a configuration with default values.
func DefaultConfig() *Config {
	return &Config{
		WhisperModel: "./models/ggml-large-v3.bin",
		Language:     "ar",
		AudioSource:  "default",
		UseGPU:       false,

		NoiseSuppressionEnabled: false,

		AutoStopEnabled: false,
		AutoStopSeconds: 30,

		RefinerEnabled: false,
		RefinerURL:     "http://localhost:11434",
		RefinerModel:   "llama3.2:3b",

		LogLevel: "info",
	}
}

const appDirName = "dictation-core"

func configDir() (string, error) {
	home := os.Getenv("XDG_CONFIG_HOME")
	if home == "" {
		userHome, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		home = filepath.Join(userHome, ".config")
	}
	return filepath.Join(home, appDirName), nil
}

// LoadConfig loads configuration from YAML following the XDG Base
// Directory Specification, creating a default file if none exists.
func LoadConfig() (*Config, error) {
	cfg := DefaultConfig()

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	dir, err := configDir()
	if err != nil {
		logger.WithError(err).Warn("failed to resolve config directory, using current directory")
		dir = "."
	}
	viper.AddConfigPath(dir)
	viper.AddConfigPath(".")

	viper.SetEnvPrefix("DICTATION")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			logger.Info("no config file found, creating default configuration")
			if err := createDefaultConfigFile(dir); err != nil {
				logger.WithError(err).Warn("failed to create default config file")
			}
		} else {
			logger.WithError(err).Warn("error reading config file")
		}
	} else {
		logger.WithField("file", viper.ConfigFileUsed()).Info("using config file")
	}

	if err := viper.Unmarshal(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// WatchConfig installs a viper file watcher that calls onChange with
// the re-unmarshaled configuration whenever the config file is
// rewritten. Unmarshal errors are logged and skipped; onChange is
// never called with a stale or partially-applied Config.
func WatchConfig(onChange func(*Config)) {
	viper.OnConfigChange(func(e fsnotify.Event) {
		cfg := DefaultConfig()
		if err := viper.Unmarshal(cfg); err != nil {
			logger.WithError(err).Warn("config changed but failed to reload, keeping prior values")
			return
		}
		logger.WithField("file", e.Name).Info("config reloaded")
		onChange(cfg)
	})
	viper.WatchConfig()
}

// SaveConfig saves the current configuration to the XDG config directory.
func (c *Config) SaveConfig() error {
	dir, err := configDir()
	if err != nil {
		return err
	}
	configFile := filepath.Join(dir, "config.yaml")

	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	c.applyToViper()
	return viper.WriteConfigAs(configFile)
}

func (c *Config) applyToViper() {
	viper.Set("whisper_model", c.WhisperModel)
	viper.Set("language", c.Language)
	viper.Set("audio_source", c.AudioSource)
	viper.Set("use_gpu", c.UseGPU)
	viper.Set("noise_suppression_enabled", c.NoiseSuppressionEnabled)
	viper.Set("auto_stop_enabled", c.AutoStopEnabled)
	viper.Set("auto_stop_seconds", c.AutoStopSeconds)
	viper.Set("refiner_enabled", c.RefinerEnabled)
	viper.Set("refiner_url", c.RefinerURL)
	viper.Set("refiner_model", c.RefinerModel)
	viper.Set("log_level", c.LogLevel)
}

// createDefaultConfigFile writes a config.yaml with default values,
// never overwriting one that already exists.
func createDefaultConfigFile(dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	configFile := filepath.Join(dir, "config.yaml")
	if _, err := os.Stat(configFile); err == nil {
		return nil
	}

	DefaultConfig().applyToViper()
	return viper.WriteConfigAs(configFile)
}
