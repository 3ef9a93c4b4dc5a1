package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

const dirName = ".uniqcols"

// Global configuration structure.
type Global struct {
	// Delimiter for CSV input: "," | ";" | "tab". Empty means pick by file extension.
	Delimiter  string `mapstructure:"delimiter" yaml:"delimiter"`
	LazyQuotes bool   `mapstructure:"lazy_quotes" yaml:"lazy_quotes"`

	LogLevel  string `mapstructure:"log_level" yaml:"log_level"`
	LogFormat string `mapstructure:"log_format" yaml:"log_format"`
	// Log scan progress every N rows at debug level; 0 disables it.
	ProgressEvery int `mapstructure:"progress_every" yaml:"progress_every"`

	// Saved scan reports
	HistoryDir  string `mapstructure:"history_dir" yaml:"history_dir"`
	SaveHistory bool   `mapstructure:"save_history" yaml:"save_history"`
}

// DefaultPath returns ~/.uniqcols/config.yaml.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	return filepath.Join(home, dirName, "config.yaml"), nil
}

// Save writes the given configuration to the cfgFile path. If cfgFile is empty,
// it writes to ~/.uniqcols/config.yaml, creating the directory if necessary.
func Save(c *Global, cfgFile string) error {
	path := cfgFile
	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return err
		}
		path = p
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir config dir: %w", err)
	}
	b, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal yaml: %w", err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Load loads configuration from file, env, and defaults.
// Precedence: env > config file > defaults. Command-line flags are applied by the caller.
func Load(cfgFile string) (*Global, error) {
	v := viper.New()
	v.SetEnvPrefix("UNIQCOLS")
	v.AutomaticEnv()

	v.SetDefault("delimiter", "")
	v.SetDefault("lazy_quotes", false)
	v.SetDefault("log_level", "warn")
	v.SetDefault("log_format", "text")
	v.SetDefault("progress_every", 0)
	v.SetDefault("history_dir", "")
	v.SetDefault("save_history", false)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolve home dir: %w", err)
		}
		v.AddConfigPath(filepath.Join(home, dirName))
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		// optional read
		_ = v.ReadInConfig()
	}

	var c Global
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	// Resolve history_dir default: ~/.uniqcols/history
	if c.HistoryDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolve home dir: %w", err)
		}
		c.HistoryDir = filepath.Join(home, dirName, "history")
	}
	return &c, nil
}

// Delimiter converts a configured delimiter name to a rune. Empty returns 0.
func Delimiter(name string) (rune, error) {
	switch name {
	case "":
		return 0, nil
	case ",", "comma":
		return ',', nil
	case ";", "semicolon":
		return ';', nil
	case "\t", "tab":
		return '\t', nil
	case "|", "pipe":
		return '|', nil
	default:
		return 0, fmt.Errorf("unsupported delimiter: %q (use ','|';'|'tab'|'|')", name)
	}
}
