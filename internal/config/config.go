package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Defaults for a fresh configuration.
const (
	DefaultInboxFolder     = "000_inbox"
	DefaultDailyFolder     = "001_journal"
	DefaultTimestampFormat = "ddd HH mm ss"
)

// Config holds the unified application configuration.
type Config struct {
	VaultDir        string `json:"vault_dir"`
	InboxFolder     string `json:"inbox_folder"`
	DailyFolder     string `json:"daily_folder"`
	TimestampFormat string `json:"timestamp_format"`
	LastImportDate  string `json:"last_import_date"` // YYYY-MM-DD, empty when never imported
	AutoImport      bool   `json:"auto_import"`
}

// Settings represents the config file structure. Zero values mean
// "not set" so defaults survive a partially written file.
type Settings struct {
	VaultDir        string `json:"vault_dir,omitempty"`
	InboxFolder     string `json:"inbox_folder,omitempty"`
	DailyFolder     string `json:"daily_folder,omitempty"`
	TimestampFormat string `json:"timestamp_format,omitempty"`
	LastImportDate  string `json:"last_import_date,omitempty"`
	AutoImport      *bool  `json:"auto_import,omitempty"`
}

// CLIFlags holds parsed CLI flags.
type CLIFlags struct {
	VaultDir string
}

// Load loads configuration with priority: CLI flags > env vars > config file > default.
func Load(flags CLIFlags) (*Config, error) {
	cfg := &Config{
		InboxFolder:     DefaultInboxFolder,
		DailyFolder:     DefaultDailyFolder,
		TimestampFormat: DefaultTimestampFormat,
		AutoImport:      true,
	}

	configPath, err := configFilePath()
	if err == nil {
		if settings, err := loadConfigFile(configPath); err == nil {
			applySettings(cfg, settings)
		}
	}

	if envVault := os.Getenv("TRIAGE_VAULT"); envVault != "" {
		cfg.VaultDir = expandPath(envVault)
	}

	if flags.VaultDir != "" {
		cfg.VaultDir = expandPath(flags.VaultDir)
	}

	if cfg.VaultDir == "" {
		defaultDir, err := DefaultVaultDir()
		if err != nil {
			return nil, err
		}
		cfg.VaultDir = defaultDir
	}

	return cfg, nil
}

func applySettings(cfg *Config, settings *Settings) {
	if settings.VaultDir != "" {
		cfg.VaultDir = expandPath(settings.VaultDir)
	}
	if settings.InboxFolder != "" {
		cfg.InboxFolder = settings.InboxFolder
	}
	if settings.DailyFolder != "" {
		cfg.DailyFolder = settings.DailyFolder
	}
	if settings.TimestampFormat != "" {
		cfg.TimestampFormat = settings.TimestampFormat
	}
	cfg.LastImportDate = settings.LastImportDate
	if settings.AutoImport != nil {
		cfg.AutoImport = *settings.AutoImport
	}
}

// Save persists the configuration to the config file. Called on every
// settings mutation so edits survive a crash.
func Save(cfg *Config) error {
	configPath, err := configFilePath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		return err
	}

	autoImport := cfg.AutoImport
	settings := Settings{
		VaultDir:        cfg.VaultDir,
		InboxFolder:     cfg.InboxFolder,
		DailyFolder:     cfg.DailyFolder,
		TimestampFormat: cfg.TimestampFormat,
		LastImportDate:  cfg.LastImportDate,
		AutoImport:      &autoImport,
	}

	data, err := json.MarshalIndent(settings, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(configPath, data, 0644)
}

// DefaultVaultDir returns the default vault directory path.
func DefaultVaultDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, "triage"), nil
}

// configFilePath returns the path to the configuration file.
func configFilePath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".config", "triage", "config.json"), nil
}

// loadConfigFile loads configuration from the settings file.
func loadConfigFile(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var settings Settings
	if err := json.Unmarshal(data, &settings); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	return &settings, nil
}

// EnsureConfigFile creates the config file with defaults if it doesn't exist.
func EnsureConfigFile() error {
	configPath, err := configFilePath()
	if err != nil {
		return err
	}

	if _, err := os.Stat(configPath); err == nil {
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		return err
	}

	defaultDir, err := DefaultVaultDir()
	if err != nil {
		return err
	}

	autoImport := true
	settings := Settings{
		VaultDir:        defaultDir,
		InboxFolder:     DefaultInboxFolder,
		DailyFolder:     DefaultDailyFolder,
		TimestampFormat: DefaultTimestampFormat,
		AutoImport:      &autoImport,
	}

	data, err := json.MarshalIndent(settings, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(configPath, data, 0644)
}

// EnsureVaultDirs ensures the vault, inbox, and daily folders exist.
func (c *Config) EnsureVaultDirs() error {
	for _, dir := range []string{
		c.VaultDir,
		filepath.Join(c.VaultDir, c.InboxFolder),
		filepath.Join(c.VaultDir, c.DailyFolder),
	} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	return nil
}

func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(homeDir, path[2:])
	}
	return path
}
