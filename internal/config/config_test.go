package config

import (
	"encoding/json"
	"testing"
)

func defaults() *Config {
	return &Config{
		InboxFolder:     DefaultInboxFolder,
		DailyFolder:     DefaultDailyFolder,
		TimestampFormat: DefaultTimestampFormat,
		AutoImport:      true,
	}
}

func TestApplySettingsMergesUnderDefaults(t *testing.T) {
	cfg := defaults()
	applySettings(cfg, &Settings{
		InboxFolder:    "inbox",
		LastImportDate: "2024-03-15",
	})

	if cfg.InboxFolder != "inbox" {
		t.Errorf("InboxFolder = %q", cfg.InboxFolder)
	}
	if cfg.DailyFolder != DefaultDailyFolder {
		t.Errorf("DailyFolder should keep default, got %q", cfg.DailyFolder)
	}
	if cfg.TimestampFormat != DefaultTimestampFormat {
		t.Errorf("TimestampFormat should keep default, got %q", cfg.TimestampFormat)
	}
	if cfg.LastImportDate != "2024-03-15" {
		t.Errorf("LastImportDate = %q", cfg.LastImportDate)
	}
	if !cfg.AutoImport {
		t.Error("AutoImport should keep default")
	}
}

func TestApplySettingsToggleOverride(t *testing.T) {
	off := false
	cfg := defaults()
	applySettings(cfg, &Settings{AutoImport: &off})
	if cfg.AutoImport {
		t.Error("AutoImport should be overridden to false")
	}
}

func TestSettingsRoundTrip(t *testing.T) {
	on := true
	in := Settings{
		VaultDir:        "/vault",
		InboxFolder:     "000_inbox",
		DailyFolder:     "001_journal",
		TimestampFormat: "ddd HH mm ss",
		LastImportDate:  "2024-03-15",
		AutoImport:      &on,
	}

	data, err := json.Marshal(in)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var out Settings
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if out.InboxFolder != in.InboxFolder || out.LastImportDate != in.LastImportDate {
		t.Errorf("round trip mismatch: %+v", out)
	}
	if out.AutoImport == nil || !*out.AutoImport {
		t.Error("AutoImport lost in round trip")
	}
}

func TestPartialFileKeepsUnsetFieldsAtDefaults(t *testing.T) {
	var settings Settings
	if err := json.Unmarshal([]byte(`{"vault_dir": "/v"}`), &settings); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	cfg := defaults()
	applySettings(cfg, &settings)
	if cfg.VaultDir != "/v" {
		t.Errorf("VaultDir = %q", cfg.VaultDir)
	}
	if cfg.InboxFolder != DefaultInboxFolder || !cfg.AutoImport {
		t.Errorf("defaults lost: %+v", cfg)
	}
}
