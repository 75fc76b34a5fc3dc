package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cast"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/KaramelBytes/sheetcheck/internal/quality"
	"github.com/KaramelBytes/sheetcheck/internal/report"
	"github.com/KaramelBytes/sheetcheck/internal/utils"
)

// Global configuration structure.
type Global struct {
	OutlierMethod   string  `mapstructure:"outlier_method" yaml:"outlier_method" toml:"outlier_method"`
	ZScoreThreshold float64 `mapstructure:"zscore_threshold" yaml:"zscore_threshold" toml:"zscore_threshold"`
	OutputFormat    string  `mapstructure:"output_format" yaml:"output_format" toml:"output_format"`

	// Logging
	LogLevel  string `mapstructure:"log_level" yaml:"log_level" toml:"log_level"`
	LogFormat string `mapstructure:"log_format" yaml:"log_format" toml:"log_format"`

	// Visualization panels
	PlotWidth  int `mapstructure:"plot_width" yaml:"plot_width" toml:"plot_width"`
	PlotHeight int `mapstructure:"plot_height" yaml:"plot_height" toml:"plot_height"`
	PlotBins   int `mapstructure:"plot_bins" yaml:"plot_bins" toml:"plot_bins"`
}

// Keys lists the configuration keys in display order.
var Keys = []string{
	"outlier_method",
	"zscore_threshold",
	"output_format",
	"log_level",
	"log_format",
	"plot_width",
	"plot_height",
	"plot_bins",
}

const (
	envPrefix = "SHEETCHECK"
	dirName   = ".sheetcheck"
)

func defaults(v *viper.Viper) {
	v.SetDefault("outlier_method", string(quality.MethodZScore))
	v.SetDefault("zscore_threshold", quality.DefaultZThreshold)
	v.SetDefault("output_format", string(report.FormatText))
	v.SetDefault("log_level", "warn")
	v.SetDefault("log_format", "text")
	v.SetDefault("plot_width", 60)
	v.SetDefault("plot_height", 10)
	v.SetDefault("plot_bins", 20)
}

// DefaultPath returns ~/.sheetcheck/config.yaml.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	return filepath.Join(home, dirName, "config.yaml"), nil
}

// Load loads configuration from file, env, and defaults.
// Precedence: env > config file > defaults. Command flags are applied by the
// caller on top of the result.
func Load(cfgFile string) (*Global, error) {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()
	defaults(v)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		// a named file that does not exist yet is created by Save
		if ok, _ := utils.FileExists(cfgFile); ok {
			if err := v.ReadInConfig(); err != nil {
				return nil, fmt.Errorf("read config %s: %w", cfgFile, err)
			}
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
	return &c, nil
}

// Save writes the configuration to cfgFile, or to the default path when
// cfgFile is empty. A .toml extension selects TOML, anything else YAML.
func Save(c *Global, cfgFile string) error {
	path := cfgFile
	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return err
		}
		path = p
	}
	var (
		b   []byte
		err error
	)
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		b, err = toml.Marshal(c)
		if err != nil {
			return fmt.Errorf("marshal toml: %w", err)
		}
	} else {
		b, err = yaml.Marshal(c)
		if err != nil {
			return fmt.Errorf("marshal yaml: %w", err)
		}
	}
	if err := utils.SafeWriteFile(path, b); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Get returns the value of key as text.
func (c *Global) Get(key string) (string, error) {
	switch key {
	case "outlier_method":
		return c.OutlierMethod, nil
	case "zscore_threshold":
		return cast.ToString(c.ZScoreThreshold), nil
	case "output_format":
		return c.OutputFormat, nil
	case "log_level":
		return c.LogLevel, nil
	case "log_format":
		return c.LogFormat, nil
	case "plot_width":
		return cast.ToString(c.PlotWidth), nil
	case "plot_height":
		return cast.ToString(c.PlotHeight), nil
	case "plot_bins":
		return cast.ToString(c.PlotBins), nil
	}
	return "", fmt.Errorf("unknown key: %s", key)
}

// Set validates val and assigns it to key.
func (c *Global) Set(key, val string) error {
	switch key {
	case "outlier_method":
		m, err := quality.ParseMethod(val)
		if err != nil {
			return err
		}
		c.OutlierMethod = string(m)
	case "zscore_threshold":
		f, err := cast.ToFloat64E(val)
		if err != nil || f <= 0 {
			return fmt.Errorf("invalid positive float for zscore_threshold: %v", val)
		}
		c.ZScoreThreshold = f
	case "output_format":
		f, err := report.ParseFormat(val)
		if err != nil {
			return err
		}
		c.OutputFormat = string(f)
	case "log_level":
		lvl, err := logrus.ParseLevel(val)
		if err != nil {
			return fmt.Errorf("invalid log_level: %w", err)
		}
		c.LogLevel = lvl.String()
	case "log_format":
		switch strings.ToLower(val) {
		case "text", "json":
			c.LogFormat = strings.ToLower(val)
		default:
			return fmt.Errorf("invalid log_format: %s (use text or json)", val)
		}
	case "plot_width", "plot_height", "plot_bins":
		i, err := cast.ToIntE(val)
		if err != nil || i <= 0 {
			return fmt.Errorf("invalid positive int for %s: %v", key, val)
		}
		switch key {
		case "plot_width":
			c.PlotWidth = i
		case "plot_height":
			c.PlotHeight = i
		default:
			c.PlotBins = i
		}
	default:
		return fmt.Errorf("unknown key: %s", key)
	}
	return nil
}

// NewLogger builds the logger described by the log settings. Logs go to
// stderr so stdout carries only the report.
func (c *Global) NewLogger() (*logrus.Logger, error) {
	l := logrus.New()
	l.SetOutput(os.Stderr)
	lvl, err := logrus.ParseLevel(c.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid log_level: %w", err)
	}
	l.SetLevel(lvl)
	if strings.EqualFold(c.LogFormat, "json") {
		l.SetFormatter(&logrus.JSONFormatter{})
	} else {
		l.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	}
	return l, nil
}
