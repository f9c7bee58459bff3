package discord

import (
	"fmt"

	"github.com/bwmarrin/discordgo"
)

// NewSession builds a gateway session with the intents the bot needs.
// Message content is required for transcripts and must also be enabled in
// the developer portal.
func NewSession(token string) (*discordgo.Session, error) {
	if token == "" {
		return nil, fmt.Errorf("discord token not set")
	}
	session, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, err
	}
	session.Identify.Intents = discordgo.IntentsGuilds |
		discordgo.IntentsGuildMessages |
		discordgo.IntentMessageContent
	return session, nil
}
