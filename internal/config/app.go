package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	pkgconfig "pubwatch/internal/pkg/config"
)

// AppConfig holds the non-secret application settings for the watcher:
// which author to follow, where the ledger lives, and how notification
// mail is addressed.
//
// Settings are resolved in three layers, later layers winning:
//  1. built-in defaults (DefaultAppConfig)
//  2. an optional YAML file named by the WATCHER_CONFIG environment variable
//  3. individual environment variables
//
// Secrets (the mail app password and reviewer API keys) are never read
// from the YAML file; they come from the environment only and are checked
// at startup by the command entry point.
type AppConfig struct {
	// AuthorID is the INSPIRE-HEP author identifier used in the literature
	// query, e.g. "Joseph.Karpie.1".
	AuthorID string `yaml:"author_id"`

	// LedgerPath is the spreadsheet file recording already-seen
	// publication ids.
	LedgerPath string `yaml:"ledger_path"`

	// PageSize is the number of records requested per literature query.
	PageSize int `yaml:"page_size"`

	// Mail holds the SMTP endpoint and addressing. The password is not
	// part of this struct.
	Mail MailConfig `yaml:"mail"`
}

// MailConfig holds SMTP settings for notification delivery.
type MailConfig struct {
	// Host is the SMTP server hostname. Default: "smtp.gmail.com".
	Host string `yaml:"host"`

	// Port is the SMTP submission port. Default: 587 (STARTTLS).
	Port int `yaml:"port"`

	// Username authenticates the SMTP session and doubles as the default
	// From address.
	Username string `yaml:"username"`

	// From is the envelope sender. Defaults to Username when empty.
	From string `yaml:"from"`

	// To is the single notification recipient.
	To string `yaml:"to"`
}

// DefaultAppConfig returns the built-in defaults. AuthorID, Username, and
// To have no sensible default and must come from the YAML file or the
// environment.
func DefaultAppConfig() AppConfig {
	return AppConfig{
		LedgerPath: "previous_publications.xlsx",
		PageSize:   250,
		Mail: MailConfig{
			Host: "smtp.gmail.com",
			Port: 587,
		},
	}
}

// LoadAppConfig resolves the application configuration from defaults, the
// optional YAML file, and environment variables, in that order.
//
// Environment variables:
//   - WATCHER_CONFIG: Path to the YAML settings file (optional)
//   - AUTHOR_ID: INSPIRE author identifier
//   - LEDGER_PATH: Spreadsheet ledger path
//   - FETCH_PAGE_SIZE: Records per literature query (1-1000)
//   - MAIL_HOST, MAIL_PORT, MAIL_USERNAME, MAIL_FROM, MAIL_TO
//
// A missing YAML file named by WATCHER_CONFIG is an error; an unset
// WATCHER_CONFIG simply skips the file layer. The returned configuration
// is not yet validated; call Validate before use.
func LoadAppConfig() (*AppConfig, error) {
	cfg := DefaultAppConfig()

	if path := os.Getenv("WATCHER_CONFIG"); path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config file %s: %w", path, err)
		}
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return nil, fmt.Errorf("parse config file %s: %w", path, err)
		}
	}

	cfg.AuthorID = pkgconfig.LoadEnvString("AUTHOR_ID", cfg.AuthorID)
	cfg.LedgerPath = pkgconfig.LoadEnvString("LEDGER_PATH", cfg.LedgerPath)

	result := pkgconfig.LoadEnvInt("FETCH_PAGE_SIZE", cfg.PageSize, func(v int) error {
		return pkgconfig.ValidateIntRange(v, 1, 1000)
	})
	cfg.PageSize = result.Value.(int)

	cfg.Mail.Host = pkgconfig.LoadEnvString("MAIL_HOST", cfg.Mail.Host)
	cfg.Mail.Username = pkgconfig.LoadEnvString("MAIL_USERNAME", cfg.Mail.Username)
	cfg.Mail.From = pkgconfig.LoadEnvString("MAIL_FROM", cfg.Mail.From)
	cfg.Mail.To = pkgconfig.LoadEnvString("MAIL_TO", cfg.Mail.To)

	result = pkgconfig.LoadEnvInt("MAIL_PORT", cfg.Mail.Port, func(v int) error {
		return pkgconfig.ValidateIntRange(v, 1, 65535)
	})
	cfg.Mail.Port = result.Value.(int)

	if cfg.Mail.From == "" {
		cfg.Mail.From = cfg.Mail.Username
	}

	return &cfg, nil
}

// Validate checks the fields every run needs. Mail addressing is checked
// separately by ValidateMail because a dry run with the no-op notifier
// does not need it.
func (c *AppConfig) Validate() error {
	var errs []error

	if c.AuthorID == "" {
		errs = append(errs, fmt.Errorf("author id: cannot be empty (set AUTHOR_ID or author_id)"))
	}

	if c.LedgerPath == "" {
		errs = append(errs, fmt.Errorf("ledger path: cannot be empty"))
	}

	if err := pkgconfig.ValidateIntRange(c.PageSize, 1, 1000); err != nil {
		errs = append(errs, fmt.Errorf("page size: %w", err))
	}

	if len(errs) > 0 {
		return fmt.Errorf("validation failed: %v", errs)
	}

	return nil
}

// ValidateMail checks the fields SMTP delivery needs.
func (c *AppConfig) ValidateMail() error {
	var errs []error

	if c.Mail.Host == "" {
		errs = append(errs, fmt.Errorf("mail host: cannot be empty"))
	}

	if err := pkgconfig.ValidateIntRange(c.Mail.Port, 1, 65535); err != nil {
		errs = append(errs, fmt.Errorf("mail port: %w", err))
	}

	if c.Mail.Username == "" {
		errs = append(errs, fmt.Errorf("mail username: cannot be empty (set MAIL_USERNAME)"))
	}

	if c.Mail.To == "" {
		errs = append(errs, fmt.Errorf("mail recipient: cannot be empty (set MAIL_TO)"))
	}

	if len(errs) > 0 {
		return fmt.Errorf("validation failed: %v", errs)
	}

	return nil
}
