package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config is the top-level propshift configuration.
type Config struct {
	Roots           []string `mapstructure:"roots"`
	Extensions      []string `mapstructure:"extensions"`
	Exclude         []string `mapstructure:"exclude"`
	Catalog         string   `mapstructure:"catalog"`
	DeclarationsOut string   `mapstructure:"declarations_out"`
	DeclareModules  []string `mapstructure:"declare_modules"`
	ProgressLog     string   `mapstructure:"progress_log"`
	Checker         Checker  `mapstructure:"checker"`
	Output          Output   `mapstructure:"output"`
}

// Checker describes the external type-checker invocation used to compute
// before/after diagnostic counts.
type Checker struct {
	Command string   `mapstructure:"command"`
	Args    []string `mapstructure:"args"`
	Pattern string   `mapstructure:"pattern"`
}

// Output defines output preferences.
type Output struct {
	Color bool `mapstructure:"color"`
	Width int  `mapstructure:"width"`
}

// expandPath replaces a leading ~ with the user's home directory.
func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}
	return path
}

// Load reads configuration from the given path (or the default location)
// and returns a Config with all defaults applied.
func Load(cfgFile string) (*Config, error) {
	v := viper.New()

	// Set defaults.
	v.SetDefault("roots", DefaultRoots)
	v.SetDefault("extensions", DefaultExtensions)
	v.SetDefault("exclude", DefaultExcludes)
	v.SetDefault("catalog", "")
	v.SetDefault("declarations_out", DefaultDeclarationsOut)
	v.SetDefault("declare_modules", []string{})
	v.SetDefault("progress_log", DefaultProgressLog)
	v.SetDefault("checker.command", DefaultChecker.Command)
	v.SetDefault("checker.args", DefaultChecker.Args)
	v.SetDefault("checker.pattern", DefaultChecker.Pattern)
	v.SetDefault("output.color", DefaultOutput.Color)
	v.SetDefault("output.width", DefaultOutput.Width)

	if cfgFile != "" {
		v.SetConfigFile(expandPath(cfgFile))
	} else {
		// Project-local config takes precedence over the user config dir.
		v.AddConfigPath(".")
		v.AddConfigPath(expandPath(DefaultConfigDir))
		v.SetConfigName("propshift")
		v.SetConfigType("yaml")
	}

	// Read config file if it exists; missing file is not an error.
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			if !os.IsNotExist(err) {
				return nil, err
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	// Expand paths.
	cfg.Catalog = expandPath(cfg.Catalog)
	for i, p := range cfg.Roots {
		cfg.Roots[i] = expandPath(p)
	}

	return &cfg, nil
}

// DBPath returns the full path to the run-history SQLite database.
func DBPath() string {
	return filepath.Join(expandPath(DefaultConfigDir), DefaultDBName)
}

// ConfigDir returns the expanded configuration directory.
func ConfigDir() string {
	return expandPath(DefaultConfigDir)
}
