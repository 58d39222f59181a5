package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func writeConfig(t *testing.T, cfg interface{}) string {
	t.Helper()
	bs, err := yaml.Marshal(cfg)
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "ligsplit.yaml")
	require.NoError(t, os.WriteFile(path, bs, 0644))
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("", nil)
	require.NoError(t, err)

	assert.Equal(t, DefaultDictionaryPath, cfg.Dictionary.Path)
	assert.Equal(t, DefaultDictionaryURL, cfg.Dictionary.URL)
	assert.Equal(t, DefaultPDBURL, cfg.Fetch.PDBURL)
	assert.Equal(t, DefaultFetchTimeout, cfg.Fetch.Timeout)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)
	assert.False(t, cfg.Strict)
	assert.False(t, cfg.Output.FASTA)
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, map[string]interface{}{
		"dictionary": map[string]string{"path": "/data/expo.smi"},
		"fetch":      map[string]string{"timeout": "30s"},
		"output":     map[string]interface{}{"dir": "out", "fasta": true},
		"strict":     true,
		"log":        map[string]string{"level": "debug", "format": "json"},
	})

	cfg, err := Load(path, nil)
	require.NoError(t, err)
	assert.Equal(t, "/data/expo.smi", cfg.Dictionary.Path)
	assert.Equal(t, DefaultDictionaryURL, cfg.Dictionary.URL)
	assert.Equal(t, 30*time.Second, cfg.Fetch.Timeout)
	assert.Equal(t, "out", cfg.Output.Dir)
	assert.True(t, cfg.Output.FASTA)
	assert.True(t, cfg.Strict)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"), nil)
	assert.Error(t, err)
}

func TestLoadEnvOverride(t *testing.T) {
	path := writeConfig(t, map[string]interface{}{
		"output": map[string]string{"dir": "from-file"},
	})
	t.Setenv("LIGSPLIT_OUTPUT_DIR", "from-env")
	t.Setenv("LIGSPLIT_STRICT", "true")

	cfg, err := Load(path, nil)
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.Output.Dir)
	assert.True(t, cfg.Strict)
}

func TestLoadFlagOverride(t *testing.T) {
	t.Setenv("LIGSPLIT_OUTPUT_DIR", "from-env")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("out-dir", "", "")
	flags.Bool("fasta", false, "")
	flags.String("log-level", "info", "")
	require.NoError(t, flags.Parse([]string{"--out-dir", "from-flag", "--fasta"}))

	cfg, err := Load("", flags)
	require.NoError(t, err)
	assert.Equal(t, "from-flag", cfg.Output.Dir)
	assert.True(t, cfg.Output.FASTA)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		cfg := &Config{}
		ApplyDefaults(cfg)
		return cfg
	}
	require.NoError(t, valid().Validate())

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"no verb in pdb url", func(c *Config) { c.Fetch.PDBURL = "https://example.org/x.pdb" }},
		{"two verbs in pdb url", func(c *Config) { c.Fetch.PDBURL = "%s/%s.pdb" }},
		{"negative timeout", func(c *Config) { c.Fetch.Timeout = -time.Second }},
		{"bad level", func(c *Config) { c.Log.Level = "loud" }},
		{"bad format", func(c *Config) { c.Log.Format = "xml" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestApplyDefaultsKeepsExplicit(t *testing.T) {
	cfg := &Config{Dictionary: DictionaryConfig{Path: "mine.smi"}}
	ApplyDefaults(cfg)
	assert.Equal(t, "mine.smi", cfg.Dictionary.Path)
	assert.Equal(t, DefaultDictionaryURL, cfg.Dictionary.URL)

	ApplyDefaults(nil)
}
