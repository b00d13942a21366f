// Package config resolves runtime settings from a YAML file and
// environment variables. CLI flags override both; precedence is
// flag > env > file > default.
package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

const (
	DefaultDataPath     = "data/netflix_titles.csv"
	DefaultOutputDir    = "outputs"
	DefaultDatabaseDir  = "./data"
	DefaultTopCountries = 10
	DefaultTopGenres    = 15
)

type Config struct {
	Data struct {
		Path string `yaml:"path"`
	} `yaml:"data"`
	Output struct {
		Dir string `yaml:"dir"`
	} `yaml:"output"`
	Database struct {
		Dir string `yaml:"dir"`
	} `yaml:"database"`
	Analysis struct {
		TopCountries int `yaml:"top_countries"`
		TopGenres    int `yaml:"top_genres"`
	} `yaml:"analysis"`
}

// Default returns the built-in configuration.
func Default() *Config {
	var config Config
	config.Data.Path = DefaultDataPath
	config.Output.Dir = DefaultOutputDir
	config.Database.Dir = DefaultDatabaseDir
	config.Analysis.TopCountries = DefaultTopCountries
	config.Analysis.TopGenres = DefaultTopGenres
	return &config
}

// Load reads the YAML file at path over the defaults, then applies
// environment overrides. An empty path skips the file and still applies
// the environment.
func Load(path string) (*Config, error) {
	config := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %v", err)
		}

		if err := yaml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %v", err)
		}
	}

	config.applyEnv()
	return config, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv("DATA_PATH"); v != "" {
		c.Data.Path = v
	}
	if v := os.Getenv("OUTPUT_DIR"); v != "" {
		c.Output.Dir = v
	}
	if v := os.Getenv("DB_DIR"); v != "" {
		c.Database.Dir = v
	}
	if v := os.Getenv("TOP_COUNTRIES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			c.Analysis.TopCountries = n
		}
	}
	if v := os.Getenv("TOP_GENRES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			c.Analysis.TopGenres = n
		}
	}
}
