// Package config loads ligsplit settings from an optional YAML file,
// LIGSPLIT_* environment variables and command line flags, in increasing
// order of precedence.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/TuftsBCB/ligsplit/internal/logging"
	"github.com/TuftsBCB/ligsplit/ligandexpo"
	"github.com/TuftsBCB/ligsplit/pdb"
)

const envPrefix = "LIGSPLIT"

const (
	DefaultDictionaryPath = ligandexpo.DefaultPath
	DefaultDictionaryURL  = ligandexpo.DefaultURL
	DefaultPDBURL         = pdb.DefaultURL
	DefaultFetchTimeout   = 5 * time.Minute
	DefaultLogLevel       = "info"
	DefaultLogFormat      = "console"
)

// DictionaryConfig locates the Ligand Expo SMILES dictionary.
type DictionaryConfig struct {
	Path string `mapstructure:"path" yaml:"path"`
	URL  string `mapstructure:"url" yaml:"url"`
}

// FetchConfig controls downloads of structures given by PDB id.
type FetchConfig struct {
	// PDBURL is a format string with one %s verb for the upper case id.
	PDBURL  string        `mapstructure:"pdb_url" yaml:"pdb_url"`
	Dir     string        `mapstructure:"dir" yaml:"dir"`
	Timeout time.Duration `mapstructure:"timeout" yaml:"timeout"`
}

// OutputConfig controls what is written and where.
type OutputConfig struct {
	Dir    string `mapstructure:"dir" yaml:"dir"`
	FASTA  bool   `mapstructure:"fasta" yaml:"fasta"`
	Report string `mapstructure:"report" yaml:"report"`
}

// Config is the complete ligsplit configuration.
type Config struct {
	Dictionary DictionaryConfig  `mapstructure:"dictionary" yaml:"dictionary"`
	Fetch      FetchConfig       `mapstructure:"fetch" yaml:"fetch"`
	Output     OutputConfig      `mapstructure:"output" yaml:"output"`
	Strict     bool              `mapstructure:"strict" yaml:"strict"`
	Log        logging.LogConfig `mapstructure:"log" yaml:"log"`
}

// flagKeys maps command line flag names to configuration keys.
var flagKeys = map[string]string{
	"dictionary": "dictionary.path",
	"dict-url":   "dictionary.url",
	"pdb-url":    "fetch.pdb_url",
	"fetch-dir":  "fetch.dir",
	"timeout":    "fetch.timeout",
	"out-dir":    "output.dir",
	"fasta":      "output.fasta",
	"report":     "output.report",
	"strict":     "strict",
	"log-level":  "log.level",
	"log-format": "log.format",
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// AutomaticEnv only applies to keys viper already knows about, so every
	// key gets a default here.
	v.SetDefault("dictionary.path", DefaultDictionaryPath)
	v.SetDefault("dictionary.url", DefaultDictionaryURL)
	v.SetDefault("fetch.pdb_url", DefaultPDBURL)
	v.SetDefault("fetch.dir", "")
	v.SetDefault("fetch.timeout", DefaultFetchTimeout)
	v.SetDefault("output.dir", "")
	v.SetDefault("output.fasta", false)
	v.SetDefault("output.report", "")
	v.SetDefault("strict", false)
	v.SetDefault("log.level", DefaultLogLevel)
	v.SetDefault("log.format", DefaultLogFormat)
	return v
}

// Load builds a Config. configPath may be empty, in which case no file is
// read. flags may be nil; otherwise every flag named in flagKeys that the
// user set overrides the file and the environment.
func Load(configPath string, flags *pflag.FlagSet) (*Config, error) {
	v := newViper()
	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("config: failed to read config file %q: %w",
				configPath, err)
		}
	}
	if flags != nil {
		for name, key := range flagKeys {
			fl := flags.Lookup(name)
			if fl == nil {
				continue
			}
			if err := v.BindPFlag(key, fl); err != nil {
				return nil, fmt.Errorf("config: binding flag %q: %w", name, err)
			}
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to unmarshal configuration: %w", err)
	}
	ApplyDefaults(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: validation failed: %w", err)
	}
	return cfg, nil
}

// ApplyDefaults fills zero-value fields. Explicit settings always win.
func ApplyDefaults(cfg *Config) {
	if cfg == nil {
		return
	}
	if cfg.Dictionary.Path == "" {
		cfg.Dictionary.Path = DefaultDictionaryPath
	}
	if cfg.Dictionary.URL == "" {
		cfg.Dictionary.URL = DefaultDictionaryURL
	}
	if cfg.Fetch.PDBURL == "" {
		cfg.Fetch.PDBURL = DefaultPDBURL
	}
	if cfg.Fetch.Timeout == 0 {
		cfg.Fetch.Timeout = DefaultFetchTimeout
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = DefaultLogLevel
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = DefaultLogFormat
	}
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	if strings.Count(c.Fetch.PDBURL, "%s") != 1 {
		return fmt.Errorf("fetch.pdb_url %q must contain exactly one %%s",
			c.Fetch.PDBURL)
	}
	if c.Fetch.Timeout < 0 {
		return fmt.Errorf("fetch.timeout must not be negative, got %s",
			c.Fetch.Timeout)
	}
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log.level %q is invalid; expected debug|info|warn|error",
			c.Log.Level)
	}
	switch c.Log.Format {
	case "console", "json":
	default:
		return fmt.Errorf("log.format %q is invalid; expected console|json",
			c.Log.Format)
	}
	return nil
}
