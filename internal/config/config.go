package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// Config aggregates runtime configuration for the bot.
type Config struct {
	App      AppConfig
	Discord  DiscordConfig
	Logger   LoggerConfig
	Settings Settings
}

// AppConfig controls process level behavior.
type AppConfig struct {
	Name    string
	Env     string
	Host    string
	Port    string
	Version string
}

// DiscordConfig holds gateway connection values.
type DiscordConfig struct {
	Token   string
	GuildID string
}

// LoggerConfig configures logging behavior.
type LoggerConfig struct {
	Level string
}

// Settings is the brand/ticket/announcement configuration loaded once from a
// JSON settings file at startup. The value is read-only for the lifetime of
// the process; every field is optional with a documented fallback.
type Settings struct {
	AnnouncementChannelIDs []string      `json:"announcement_channel_ids"`
	Brand                  BrandConfig   `json:"brand"`
	Tickets                TicketsConfig `json:"tickets"`
}

// BrandConfig styles outgoing embeds.
type BrandConfig struct {
	Name           string       `json:"name"`
	Color          string       `json:"color"`
	AuthorIcon     string       `json:"author_icon"`
	FooterText     string       `json:"footer_text"`
	DefaultButtons []LinkButton `json:"default_buttons"`
}

// LinkButton is a labeled URL button attached to announcements.
type LinkButton struct {
	Label string `json:"label"`
	URL   string `json:"url"`
}

// TicketsConfig holds the ticket subsystem settings. All IDs are optional: an
// absent category creates tickets without a parent, an absent support role
// keeps tickets private between opener and bot, an absent transcripts channel
// disables archive delivery.
type TicketsConfig struct {
	CategoryID           string `json:"category_id"`
	SupportRoleID        string `json:"support_role_id"`
	TranscriptsChannelID string `json:"transcripts_channel_id"`
	PanelChannelID       string `json:"panel_channel_id"`
	PanelTitle           string `json:"panel_title"`
	PanelDescription     string `json:"panel_description"`
	ButtonLabel          string `json:"button_label"`
	TicketPrefix         string `json:"ticket_prefix"`
	TranscriptDir        string `json:"transcript_dir"`
}

// Prefix returns the ticket channel name prefix, defaulting to "ticket".
func (t TicketsConfig) Prefix() string {
	if t.TicketPrefix == "" {
		return "ticket"
	}
	return t.TicketPrefix
}

// Load reads configuration from environment variables and the JSON settings
// file, applying defaults where possible.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		App: AppConfig{
			Name:    getEnv("APP_NAME", "tigerbot"),
			Env:     getEnv("APP_ENV", "development"),
			Host:    getEnv("APP_HOST", "0.0.0.0"),
			Port:    getEnv("APP_PORT", "8080"),
			Version: getEnv("APP_VERSION", "dev"),
		},
		Discord: DiscordConfig{
			Token:   os.Getenv("DISCORD_TOKEN"),
			GuildID: os.Getenv("GUILD_ID"),
		},
		Logger: LoggerConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
	}

	settings, err := LoadSettings(getEnv("CONFIG_PATH", "config.json"))
	if err != nil {
		return nil, err
	}
	cfg.Settings = *settings

	return cfg, nil
}

// LoadSettings parses the JSON settings file. A missing file yields the
// built-in defaults rather than an error.
func LoadSettings(path string) (*Settings, error) {
	settings := DefaultSettings()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return &settings, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read settings %s: %w", path, err)
	}
	if err := json.Unmarshal(data, &settings); err != nil {
		return nil, fmt.Errorf("parse settings %s: %w", path, err)
	}
	if settings.Tickets.TranscriptDir == "" {
		settings.Tickets.TranscriptDir = "transcripts"
	}
	return &settings, nil
}

// DefaultSettings returns the built-in brand and ticket settings used when no
// settings file is present.
func DefaultSettings() Settings {
	return Settings{
		AnnouncementChannelIDs: []string{},
		Brand: BrandConfig{
			Name:       "Rusty Tiger",
			Color:      "#d97706",
			FooterText: "Stay Rusty.",
		},
		Tickets: TicketsConfig{
			PanelTitle:       "Need Help?",
			PanelDescription: "Click the button to open a private ticket.",
			ButtonLabel:      "🐯 Open Ticket",
			TicketPrefix:     "ticket",
			TranscriptDir:    "transcripts",
		},
	}
}

// Addr returns the HTTP bind address for the health server.
func (a AppConfig) Addr() string {
	return fmt.Sprintf("%s:%s", a.Host, a.Port)
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}
