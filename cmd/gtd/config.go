package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// config holds the settings read from flags, environment and config.yaml, in this order of precedence.
type config struct {
	DataFilePath string `mapstructure:"data_file_path"`
	JournalPath  string `mapstructure:"journal_path"`
	LogLevel     string `mapstructure:"log_level"`
	NoColor      bool   `mapstructure:"no_color"`
}

// configDir is where config.yaml is looked for: $XDG_CONFIG_HOME/gtd, or ~/.config/gtd.
func configDir() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "gtd")
}

func defaultDataPath() string {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "data.json"
		}
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, "gtd", "data.json")
}

func loadConfig(cmd *cobra.Command) (*config, error) {
	v := viper.New()

	v.SetDefault("data_file_path", defaultDataPath())
	v.SetDefault("journal_path", "")
	v.SetDefault("log_level", "info")

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	if dir := configDir(); dir != "" {
		v.AddConfigPath(dir)
	}

	v.SetEnvPrefix("gtd")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	if err := v.BindEnv("data_file_path", "GTD_DATA", "MINDWTR_DATA"); err != nil {
		return nil, err
	}

	flags := cmd.Root().PersistentFlags()
	for key, flag := range map[string]string{
		"data_file_path": "data",
		"log_level":      "log-level",
		"no_color":       "no-color",
	} {
		if err := v.BindPFlag(key, flags.Lookup(flag)); err != nil {
			return nil, fmt.Errorf("binding --%s: %w", flag, err)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	var c config
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	if strings.TrimSpace(c.DataFilePath) == "" {
		c.DataFilePath = defaultDataPath()
	}
	if abs, err := filepath.Abs(c.DataFilePath); err == nil {
		c.DataFilePath = abs
	}
	return &c, nil
}
