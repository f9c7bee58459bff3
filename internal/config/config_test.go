package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadSettings_MissingFileYieldsDefaults(t *testing.T) {
	settings, err := LoadSettings(filepath.Join(t.TempDir(), "nope.json"))
	if err != nil {
		t.Fatalf("LoadSettings: %v", err)
	}
	if settings.Brand.Name != "Rusty Tiger" {
		t.Errorf("brand name = %q", settings.Brand.Name)
	}
	if settings.Brand.Color != "#d97706" {
		t.Errorf("brand color = %q", settings.Brand.Color)
	}
	if settings.Tickets.Prefix() != "ticket" {
		t.Errorf("prefix = %q", settings.Tickets.Prefix())
	}
	if settings.Tickets.TranscriptDir != "transcripts" {
		t.Errorf("transcript dir = %q", settings.Tickets.TranscriptDir)
	}
}

func TestLoadSettings_ParsesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	body := `{
		"announcement_channel_ids": ["100", "200"],
		"brand": {"name": "Acme", "color": "blue", "footer_text": "hi"},
		"tickets": {
			"support_role_id": "300",
			"ticket_prefix": "help",
			"transcripts_channel_id": "777"
		}
	}`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}

	settings, err := LoadSettings(path)
	if err != nil {
		t.Fatalf("LoadSettings: %v", err)
	}
	if len(settings.AnnouncementChannelIDs) != 2 {
		t.Errorf("channels = %v", settings.AnnouncementChannelIDs)
	}
	if settings.Brand.Name != "Acme" || settings.Brand.Color != "blue" {
		t.Errorf("brand = %+v", settings.Brand)
	}
	if settings.Tickets.SupportRoleID != "300" {
		t.Errorf("support role = %q", settings.Tickets.SupportRoleID)
	}
	if settings.Tickets.Prefix() != "help" {
		t.Errorf("prefix = %q", settings.Tickets.Prefix())
	}
	if settings.Tickets.TranscriptDir != "transcripts" {
		t.Errorf("transcript dir fallback = %q", settings.Tickets.TranscriptDir)
	}
}

func TestLoadSettings_InvalidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadSettings(path); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestAppConfigAddr(t *testing.T) {
	a := AppConfig{Host: "127.0.0.1", Port: "9090"}
	if got := a.Addr(); got != "127.0.0.1:9090" {
		t.Errorf("Addr() = %q", got)
	}
}
