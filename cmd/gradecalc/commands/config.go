package commands

import (
	"os"
	"time"

	"gradecalc/lib/configutil"
	"gradecalc/lib/scrapers/points"

	"github.com/spf13/cobra"
)

type Config struct {
	Url              string `json:"url"`
	Output           string `json:"output"`
	HtmlOutput       string `json:"html_output"`
	HistoryDb        string `json:"history_db"`
	TimeoutSeconds   int    `json:"timeout_seconds"`
	CloudflareBypass bool   `json:"cloudflare_bypass"`
	// request/response dumps are written here with --verbose
	DumpDir string `json:"dump_dir"`
}

const configName = "gradecalc.json5"

var defaultConfig = Config{
	Url:            points.DefaultUrl,
	Output:         "calculations.md",
	TimeoutSeconds: 30,
	DumpDir:        ".dev/resty",
}

func (c Config) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// environment variables, these take priority over the config file
const (
	envUrl       = "GRADECALC_URL"
	envOutput    = "GRADECALC_OUTPUT"
	envHistoryDb = "GRADECALC_HISTORY_DB"
)

func applyEnv(cfg *Config) {
	if v := os.Getenv(envUrl); v != "" {
		cfg.Url = v
	}
	if v := os.Getenv(envOutput); v != "" {
		cfg.Output = v
	}
	if v := os.Getenv(envHistoryDb); v != "" {
		cfg.HistoryDb = v
	}
}

// applyFlags copies every flag the user set onto cfg.
func applyFlags(cmd *cobra.Command, cfg *Config) {
	flags := map[string]*string{
		"url":    &cfg.Url,
		"output": &cfg.Output,
		"html":   &cfg.HtmlOutput,
		"db":     &cfg.HistoryDb,
	}
	for name, target := range flags {
		flag := cmd.Flags().Lookup(name)
		if flag == nil || !flag.Changed {
			continue
		}
		*target = flag.Value.String()
	}
}

// loadConfig resolves the config in order of priority: flags, environment,
// config file, defaults.
func loadConfig(cmd *cobra.Command) (Config, error) {
	name := configName
	explicit := *configPath != ""
	if explicit {
		name = *configPath
	}

	cfg, err := configutil.Load(name, explicit, defaultConfig)
	if err != nil {
		return Config{}, err
	}
	applyEnv(&cfg)
	applyFlags(cmd, &cfg)
	return cfg, nil
}
