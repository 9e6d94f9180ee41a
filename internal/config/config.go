package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

// Source configures one ATS platform: whether to scrape it and where its
// identifier set lives (a JSON array of company slugs).
type Source struct {
	Enabled       bool   `yaml:"enabled"`
	CompaniesFile string `yaml:"companies_file"`
}

type Config struct {
	App struct {
		DataDir string `yaml:"data_dir"`
	} `yaml:"app"`

	Scrape struct {
		Workers        int     `yaml:"workers"`
		StalenessDays  int     `yaml:"staleness_days"`
		HostRatePerSec float64 `yaml:"host_rate_per_sec"`
		HostBurst      int     `yaml:"host_burst"`
	} `yaml:"scrape"`

	Sources struct {
		Greenhouse Source `yaml:"greenhouse"`
		Ashby      Source `yaml:"ashby"`
		BambooHR   Source `yaml:"bamboohr"`
		Lever      Source `yaml:"lever"`
		Workday    Source `yaml:"workday"`
		ICIMS      Source `yaml:"icims"`
	} `yaml:"sources"`

	Schedule struct {
		// 0 runs the pipeline once and exits.
		IntervalMinutes int `yaml:"interval_minutes"`
	} `yaml:"schedule"`
}

func Load(path string) (Config, error) {
	var cfg Config
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	err = yaml.Unmarshal(b, &cfg)
	return cfg, err
}
