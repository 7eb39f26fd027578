package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultAppConfig(t *testing.T) {
	cfg := DefaultAppConfig()

	assert.Equal(t, "previous_publications.xlsx", cfg.LedgerPath)
	assert.Equal(t, 250, cfg.PageSize)
	assert.Equal(t, "smtp.gmail.com", cfg.Mail.Host)
	assert.Equal(t, 587, cfg.Mail.Port)
	assert.Empty(t, cfg.AuthorID, "author id has no default")
}

func TestLoadAppConfig_EnvOnly(t *testing.T) {
	t.Setenv("AUTHOR_ID", "Joseph.Karpie.1")
	t.Setenv("MAIL_USERNAME", "watcher@example.com")
	t.Setenv("MAIL_TO", "joseph@example.com")

	cfg, err := LoadAppConfig()
	require.NoError(t, err)

	assert.Equal(t, "Joseph.Karpie.1", cfg.AuthorID)
	assert.Equal(t, "watcher@example.com", cfg.Mail.Username)
	assert.Equal(t, "joseph@example.com", cfg.Mail.To)
	assert.Equal(t, "smtp.gmail.com", cfg.Mail.Host)
	assert.Equal(t, 250, cfg.PageSize)
}

func TestLoadAppConfig_FromDefaultsToSender(t *testing.T) {
	t.Setenv("MAIL_USERNAME", "watcher@example.com")

	cfg, err := LoadAppConfig()
	require.NoError(t, err)

	assert.Equal(t, "watcher@example.com", cfg.Mail.From,
		"From should default to Username when unset")
}

func TestLoadAppConfig_YAMLFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "watcher.yaml")
	content := `
author_id: Jane.Doe.2
ledger_path: /data/seen.xlsx
page_size: 100
mail:
  host: mail.example.org
  port: 2525
  username: bot@example.org
  to: jane@example.org
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	t.Setenv("WATCHER_CONFIG", path)

	cfg, err := LoadAppConfig()
	require.NoError(t, err)

	assert.Equal(t, "Jane.Doe.2", cfg.AuthorID)
	assert.Equal(t, "/data/seen.xlsx", cfg.LedgerPath)
	assert.Equal(t, 100, cfg.PageSize)
	assert.Equal(t, "mail.example.org", cfg.Mail.Host)
	assert.Equal(t, 2525, cfg.Mail.Port)
	assert.Equal(t, "bot@example.org", cfg.Mail.Username)
	assert.Equal(t, "jane@example.org", cfg.Mail.To)
}

func TestLoadAppConfig_EnvOverridesYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "watcher.yaml")
	require.NoError(t, os.WriteFile(path, []byte("author_id: Jane.Doe.2\n"), 0o600))

	t.Setenv("WATCHER_CONFIG", path)
	t.Setenv("AUTHOR_ID", "Joseph.Karpie.1")

	cfg, err := LoadAppConfig()
	require.NoError(t, err)

	assert.Equal(t, "Joseph.Karpie.1", cfg.AuthorID, "environment wins over file")
}

func TestLoadAppConfig_MissingFileIsError(t *testing.T) {
	t.Setenv("WATCHER_CONFIG", filepath.Join(t.TempDir(), "absent.yaml"))

	_, err := LoadAppConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read config file")
}

func TestLoadAppConfig_MalformedYAMLIsError(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "watcher.yaml")
	require.NoError(t, os.WriteFile(path, []byte("mail: [not, a, mapping\n"), 0o600))
	t.Setenv("WATCHER_CONFIG", path)

	_, err := LoadAppConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse config file")
}

func TestAppConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*AppConfig)
		wantSub string
	}{
		{name: "valid", mutate: func(c *AppConfig) {}},
		{
			name:    "missing author",
			mutate:  func(c *AppConfig) { c.AuthorID = "" },
			wantSub: "author id",
		},
		{
			name:    "missing ledger path",
			mutate:  func(c *AppConfig) { c.LedgerPath = "" },
			wantSub: "ledger path",
		},
		{
			name:    "page size too large",
			mutate:  func(c *AppConfig) { c.PageSize = 5000 },
			wantSub: "page size",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultAppConfig()
			cfg.AuthorID = "Joseph.Karpie.1"
			tt.mutate(&cfg)

			err := cfg.Validate()
			if tt.wantSub == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, strings.Contains(err.Error(), tt.wantSub),
				"error %q should mention %q", err.Error(), tt.wantSub)
		})
	}
}

func TestAppConfig_ValidateMail(t *testing.T) {
	valid := DefaultAppConfig()
	valid.Mail.Username = "watcher@example.com"
	valid.Mail.To = "joseph@example.com"
	assert.NoError(t, valid.ValidateMail())

	missing := DefaultAppConfig()
	err := missing.ValidateMail()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "mail username")
	assert.Contains(t, err.Error(), "mail recipient")
}
