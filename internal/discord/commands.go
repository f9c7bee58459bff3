package discord

import (
	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"
)

// Commands returns the bot's full slash command surface.
func Commands() []*discordgo.ApplicationCommand {
	return []*discordgo.ApplicationCommand{
		{
			Name:        "ping",
			Description: "Check if the bot is online.",
		},
		{
			Name:        "say",
			Description: "Make the bot send a plain message in this channel.",
			Options: []*discordgo.ApplicationCommandOption{
				stringOption("message", "What should I say?", true),
			},
		},
		{
			Name:        "say_embed",
			Description: "Send a quick, clean embed with optional link and image.",
			Options: []*discordgo.ApplicationCommandOption{
				stringOption("message", "Main text (use \\n for new lines; supports **markdown**)", true),
				stringOption("title", "Optional title (clickable if 'url' provided)", false),
				stringOption("url", "Optional URL to make the title clickable", false),
				stringOption("color", "Hex (#d97706) or name (orange, blue, purple...)", false),
				stringOption("image", "Large image URL", false),
				stringOption("thumbnail", "Small thumbnail URL", false),
				stringOption("footer", "Footer text (defaults to brand footer)", false),
			},
		},
		{
			Name:        "announce",
			Description: "Post a styled announcement embed (with optional buttons and role ping).",
			Options: []*discordgo.ApplicationCommandOption{
				stringOption("message", "Announcement text (use \\n for new lines)", true),
				{
					Type:        discordgo.ApplicationCommandOptionChannel,
					Name:        "channel",
					Description: "Target channel (optional)",
				},
				stringOption("title", "Title (clickable if 'url' set). Default: 📣 Announcement", false),
				stringOption("url", "Optional URL to make the title clickable", false),
				stringOption("color", "Hex (#d97706) or named color (orange, blue, purple, ...)", false),
				stringOption("thumbnail", "Thumbnail image URL", false),
				stringOption("image", "Main/hero image URL", false),
				stringOption("footer", "Footer text (defaults to brand footer)", false),
				stringOption("author_name", "Override author display (defaults to brand name)", false),
				stringOption("author_icon", "Author icon URL (defaults to brand icon)", false),
				{
					Type:        discordgo.ApplicationCommandOptionRole,
					Name:        "ping_role",
					Description: "Role to mention (pings at top of message)",
				},
				stringOption("buttons_json", `JSON: [{"label":"Website","url":"https://..."}, ...]`, false),
			},
		},
		{
			Name:        "announce_in_announcements",
			Description: "Post an announcement to all configured announcement channels.",
			Options: []*discordgo.ApplicationCommandOption{
				stringOption("message", "Announcement text (use \\n for new lines)", true),
				stringOption("title", "Optional title", false),
				stringOption("color", "Hex or name", false),
				stringOption("url", "Optional URL for clickable title", false),
				stringOption("buttons_json", `JSON: [{"label":"Website","url":"https://..."}, ...]`, false),
			},
		},
		{
			Name:        "ticket_setup",
			Description: "Post a ticket panel with an Open Ticket button.",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionChannel,
					Name:        "channel",
					Description: "Channel to post the panel (optional)",
				},
			},
		},
		{
			Name:        "ticket_claim",
			Description: "Claim the current ticket channel.",
		},
		{
			Name:        "ticket_add",
			Description: "Add a user to this ticket.",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionUser,
					Name:        "user",
					Description: "User to add",
					Required:    true,
				},
			},
		},
		{
			Name:        "ticket_remove",
			Description: "Remove a user from this ticket.",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionUser,
					Name:        "user",
					Description: "User to remove",
					Required:    true,
				},
			},
		},
		{
			Name:        "ticket_close",
			Description: "Close this ticket (generate transcript and delete channel).",
			Options: []*discordgo.ApplicationCommandOption{
				stringOption("reason", "Reason for closing (optional)", false),
			},
		},
	}
}

// SyncCommands registers the command surface. When a guild ID is configured
// the commands are scoped to that guild for instant availability, falling
// back to a global sync on failure.
func SyncCommands(session *discordgo.Session, guildID string, logger *zap.Logger) error {
	appID := session.State.User.ID
	commands := Commands()

	if guildID != "" {
		synced, err := session.ApplicationCommandBulkOverwrite(appID, guildID, commands)
		if err == nil {
			logger.Info("synced guild commands",
				zap.Int("count", len(synced)), zap.String("guild_id", guildID))
			return nil
		}
		logger.Error("guild command sync failed, falling back to global",
			zap.String("guild_id", guildID), zap.Error(err))
	}

	synced, err := session.ApplicationCommandBulkOverwrite(appID, "", commands)
	if err != nil {
		return err
	}
	logger.Info("synced global commands", zap.Int("count", len(synced)))
	return nil
}

func stringOption(name, description string, required bool) *discordgo.ApplicationCommandOption {
	return &discordgo.ApplicationCommandOption{
		Type:        discordgo.ApplicationCommandOptionString,
		Name:        name,
		Description: description,
		Required:    required,
	}
}
