package discord

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"

	"github.com/rustytiger/tigerbot/internal/announce"
	"github.com/rustytiger/tigerbot/internal/config"
	"github.com/rustytiger/tigerbot/internal/observability"
	"github.com/rustytiger/tigerbot/internal/panel"
	"github.com/rustytiger/tigerbot/internal/platform"
	"github.com/rustytiger/tigerbot/internal/ticket"
	apperrors "github.com/rustytiger/tigerbot/pkg/util/errorutil"
)

// Handler routes gateway interactions to the bot's services. Every
// invocation yields exactly one acknowledgement: a success confirmation or a
// short failure notice.
type Handler struct {
	adapter   *Adapter
	tickets   *ticket.Service
	panel     *panel.Dispatcher
	announcer *announce.Service
	settings  config.Settings
	logger    *zap.Logger
	metrics   *observability.Metrics
}

// HandlerDependencies bundles collaborators for the handler.
type HandlerDependencies struct {
	Adapter   *Adapter
	Tickets   *ticket.Service
	Panel     *panel.Dispatcher
	Announcer *announce.Service
	Settings  config.Settings
	Logger    *zap.Logger
	Metrics   *observability.Metrics
}

// NewHandler constructs the handler.
func NewHandler(deps HandlerDependencies) *Handler {
	return &Handler{
		adapter:   deps.Adapter,
		tickets:   deps.Tickets,
		panel:     deps.Panel,
		announcer: deps.Announcer,
		settings:  deps.Settings,
		logger:    deps.Logger,
		metrics:   deps.Metrics,
	}
}

// Register attaches the handler to the session. Component and modal handlers
// are keyed by stable custom IDs, so panels posted by earlier process runs
// keep working.
func (h *Handler) Register(session *discordgo.Session) {
	session.AddHandler(h.onReady)
	session.AddHandler(h.onInteraction)
}

func (h *Handler) onReady(s *discordgo.Session, r *discordgo.Ready) {
	h.logger.Info("logged in",
		zap.String("username", r.User.Username),
		zap.String("user_id", r.User.ID))
}

func (h *Handler) onInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()
	switch i.Type {
	case discordgo.InteractionApplicationCommand:
		h.handleCommand(ctx, s, i)
	case discordgo.InteractionMessageComponent:
		if i.MessageComponentData().CustomID == panel.OpenButtonID {
			h.openReasonModal(s, i)
		}
	case discordgo.InteractionModalSubmit:
		if i.ModalSubmitData().CustomID == panel.ReasonModalID {
			h.submitTicketReason(ctx, s, i)
		}
	}
}

func (h *Handler) handleCommand(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate) {
	name := i.ApplicationCommandData().Name
	opts := optionMap(i)

	var err error
	switch name {
	case "ping":
		err = h.replyEphemeral(s, i, "Tiger Bot is Online ✅")
	case "say":
		err = h.handleSay(ctx, s, i, opts)
	case "say_embed":
		err = h.handleSayEmbed(ctx, s, i, opts)
	case "announce":
		err = h.handleAnnounce(ctx, s, i, opts)
	case "announce_in_announcements":
		err = h.handleBroadcast(ctx, s, i, opts)
	case "ticket_setup":
		err = h.handleTicketSetup(ctx, s, i, opts)
	case "ticket_claim":
		err = h.handleTicketClaim(ctx, s, i)
	case "ticket_add":
		err = h.handleTicketMember(ctx, s, i, opts, true)
	case "ticket_remove":
		err = h.handleTicketMember(ctx, s, i, opts, false)
	case "ticket_close":
		// Owns its acknowledgement, followup, and metrics: the response is
		// spent before the slow close work, so failures cannot flow back
		// through the shared error path.
		h.handleTicketClose(ctx, s, i, opts)
		return
	default:
		return
	}

	if err != nil {
		domainErr := apperrors.ToDomainError(err)
		h.metrics.RecordError(name, domainErr.Code)
		h.logger.Warn("command failed",
			zap.String("command", name),
			zap.String("code", domainErr.Code),
			zap.Error(domainErr))
		_ = h.replyEphemeral(s, i, domainErr.Notice())
		h.metrics.RecordInteraction(name, "error")
		return
	}
	h.metrics.RecordInteraction(name, "ok")
}

func (h *Handler) handleSay(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, opts options) error {
	message := opts.str("message")
	if err := h.replyEphemeral(s, i, "✅ Sent!"); err != nil {
		return err
	}
	return h.adapter.SendMessage(ctx, i.ChannelID, platform.OutboundMessage{Content: message})
}

func (h *Handler) handleSayEmbed(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, opts options) error {
	emb := announce.BrandEmbed(
		announce.NormalizeMultiline(opts.str("message")),
		announce.EmbedOptions{
			Title:     opts.str("title"),
			URL:       opts.str("url"),
			Color:     opts.str("color"),
			Image:     opts.str("image"),
			Thumbnail: opts.str("thumbnail"),
			Footer:    announce.NormalizeMultiline(opts.str("footer")),
		},
		h.settings.Brand,
	)
	if err := h.replyEphemeral(s, i, "✅ Sent!"); err != nil {
		return err
	}
	return h.adapter.SendMessage(ctx, i.ChannelID, platform.OutboundMessage{Embed: emb})
}

func (h *Handler) handleAnnounce(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, opts options) error {
	targetID := i.ChannelID
	if ch := opts.channel(s, i); ch != nil {
		if ch.Type != discordgo.ChannelTypeGuildText && ch.Type != discordgo.ChannelTypeGuildNewsThread && ch.Type != discordgo.ChannelTypeGuildPublicThread {
			return h.replyEphemeral(s, i, "❌ Please choose a text channel.")
		}
		targetID = ch.ID
	}

	pingRoleID := ""
	if role := opts.role(s, i); role != nil {
		pingRoleID = role.ID
	}

	err := h.announcer.Post(ctx, targetID,
		opts.str("message"), pingRoleID, opts.str("buttons_json"),
		announce.EmbedOptions{
			Title:      opts.str("title"),
			URL:        opts.str("url"),
			Color:      opts.str("color"),
			Thumbnail:  opts.str("thumbnail"),
			Image:      opts.str("image"),
			Footer:     announce.NormalizeMultiline(opts.str("footer")),
			AuthorName: opts.str("author_name"),
			AuthorIcon: opts.str("author_icon"),
		})
	if err != nil {
		return h.replyEphemeral(s, i, "❌ I don't have permission to send messages there.")
	}
	return h.replyEphemeral(s, i, fmt.Sprintf("📣 Announcement posted in <#%s>", targetID))
}

func (h *Handler) handleBroadcast(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, opts options) error {
	if !h.announcer.HasBroadcastTargets() {
		return h.replyEphemeral(s, i, "ℹ️ No announcement channels configured.")
	}
	sent, failed := h.announcer.Broadcast(ctx,
		opts.str("message"), opts.str("buttons_json"),
		announce.EmbedOptions{
			Title: opts.str("title"),
			Color: opts.str("color"),
			URL:   opts.str("url"),
		})
	return h.replyEphemeral(s, i, fmt.Sprintf("📣 Done. Sent: %d | Failed: %d", sent, failed))
}

func (h *Handler) handleTicketSetup(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, opts options) error {
	targetID := i.ChannelID
	if ch := opts.channel(s, i); ch != nil {
		if ch.Type != discordgo.ChannelTypeGuildText {
			return h.replyEphemeral(s, i, "❌ Choose a text channel.")
		}
		targetID = ch.ID
	}

	msg := h.panel.Message()
	data := &discordgo.MessageSend{
		Embeds: []*discordgo.MessageEmbed{toMessageEmbed(msg.Embed)},
		Components: []discordgo.MessageComponent{
			discordgo.ActionsRow{
				Components: []discordgo.MessageComponent{
					discordgo.Button{
						Label:    h.panel.ButtonLabel(),
						Style:    discordgo.PrimaryButton,
						CustomID: panel.OpenButtonID,
					},
				},
			},
		},
	}
	if _, err := s.ChannelMessageSendComplex(targetID, data, discordgo.WithContext(ctx)); err != nil {
		return err
	}
	return h.replyEphemeral(s, i, "✅ Ticket panel posted.")
}

func (h *Handler) handleTicketClaim(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate) error {
	channel, _ := h.adapter.Channel(ctx, i.ChannelID)
	if err := h.tickets.Claim(ctx, actorUser(i), channel); err != nil {
		return err
	}
	return h.replyEphemeral(s, i, "🛠️ Claim posted.")
}

func (h *Handler) handleTicketMember(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, opts options, add bool) error {
	target := opts.user(s)
	if target == nil {
		return h.replyEphemeral(s, i, "❌ Choose a user.")
	}
	channel, _ := h.adapter.Channel(ctx, i.ChannelID)
	user := platform.User{ID: target.ID, Username: target.Username}

	if add {
		if err := h.tickets.AddMember(ctx, actorUser(i), channel, user); err != nil {
			return err
		}
		return h.reply(s, i, fmt.Sprintf("✅ Added %s to this ticket.", user.Mention()))
	}
	if err := h.tickets.RemoveMember(ctx, actorUser(i), channel, user); err != nil {
		return err
	}
	return h.reply(s, i, fmt.Sprintf("✅ Removed %s from this ticket.", user.Mention()))
}

func (h *Handler) handleTicketClose(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, opts options) {
	channel, _ := h.adapter.Channel(ctx, i.ChannelID)

	// Ack before the slow work: transcript capture over a long history can
	// outlive the interaction response window. Failures surface as a
	// followup since the response is already spent.
	if err := h.replyEphemeral(s, i, "🔒 Closing ticket and generating transcript..."); err != nil {
		h.logger.Warn("close acknowledgement failed",
			zap.String("channel_id", i.ChannelID), zap.Error(err))
		h.metrics.RecordInteraction("ticket_close", "error")
		return
	}

	if _, err := h.tickets.Close(ctx, actorUser(i), channel, opts.str("reason")); err != nil {
		domainErr := apperrors.ToDomainError(err)
		h.metrics.RecordError("ticket_close", domainErr.Code)
		h.logger.Warn("ticket close failed",
			zap.String("channel_id", i.ChannelID),
			zap.String("code", domainErr.Code),
			zap.Error(domainErr))
		_, _ = s.FollowupMessageCreate(i.Interaction, true, &discordgo.WebhookParams{
			Content: domainErr.Notice(),
			Flags:   discordgo.MessageFlagsEphemeral,
		})
		h.metrics.RecordInteraction("ticket_close", "error")
		return
	}
	h.metrics.RecordInteraction("ticket_close", "ok")
}

func (h *Handler) openReasonModal(s *discordgo.Session, i *discordgo.InteractionCreate) {
	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseModal,
		Data: &discordgo.InteractionResponseData{
			CustomID: panel.ReasonModalID,
			Title:    "Open a Ticket",
			Components: []discordgo.MessageComponent{
				discordgo.ActionsRow{
					Components: []discordgo.MessageComponent{
						discordgo.TextInput{
							CustomID:    panel.ReasonInputID,
							Label:       "Brief description",
							Style:       discordgo.TextInputParagraph,
							Placeholder: "Tell us what you need help with...",
							Required:    true,
							MaxLength:   panel.MaxReasonLength,
						},
					},
				},
			},
		},
	})
	if err != nil {
		h.logger.Warn("reason modal failed", zap.Error(err))
	}
}

func (h *Handler) submitTicketReason(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate) {
	reason := modalInputValue(i.ModalSubmitData(), panel.ReasonInputID)

	opened, err := h.panel.HandleOpen(ctx, actorUser(i), i.GuildID, reason, snowflake(i.ID))
	if err != nil {
		domainErr := apperrors.ToDomainError(err)
		h.metrics.RecordError("ticket_open", domainErr.Code)
		h.logger.Warn("ticket open failed",
			zap.String("code", domainErr.Code), zap.Error(domainErr))
		_ = h.replyEphemeral(s, i, domainErr.Notice())
		h.metrics.RecordInteraction("ticket_open", "error")
		return
	}
	_ = h.replyEphemeral(s, i, fmt.Sprintf("✅ Ticket created: <#%s>", opened.ChannelID))
	h.metrics.RecordInteraction("ticket_open", "ok")
}

func (h *Handler) reply(s *discordgo.Session, i *discordgo.InteractionCreate, content string) error {
	return s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{Content: content},
	})
}

func (h *Handler) replyEphemeral(s *discordgo.Session, i *discordgo.InteractionCreate, content string) error {
	return s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: content,
			Flags:   discordgo.MessageFlagsEphemeral,
		},
	})
}

// options indexes a command's options by name.
type options map[string]*discordgo.ApplicationCommandInteractionDataOption

func optionMap(i *discordgo.InteractionCreate) options {
	opts := options{}
	for _, opt := range i.ApplicationCommandData().Options {
		opts[opt.Name] = opt
	}
	return opts
}

func (o options) str(name string) string {
	if opt, ok := o[name]; ok {
		return opt.StringValue()
	}
	return ""
}

func (o options) user(s *discordgo.Session) *discordgo.User {
	if opt, ok := o["user"]; ok {
		return opt.UserValue(s)
	}
	return nil
}

func (o options) role(s *discordgo.Session, i *discordgo.InteractionCreate) *discordgo.Role {
	if opt, ok := o["ping_role"]; ok {
		return opt.RoleValue(s, i.GuildID)
	}
	return nil
}

func (o options) channel(s *discordgo.Session, i *discordgo.InteractionCreate) *discordgo.Channel {
	if opt, ok := o["channel"]; ok {
		return opt.ChannelValue(s)
	}
	return nil
}

func actorUser(i *discordgo.InteractionCreate) platform.User {
	if i.Member != nil && i.Member.User != nil {
		return platform.User{ID: i.Member.User.ID, Username: i.Member.User.Username}
	}
	if i.User != nil {
		return platform.User{ID: i.User.ID, Username: i.User.Username}
	}
	return platform.User{}
}

func modalInputValue(data discordgo.ModalSubmitInteractionData, customID string) string {
	for _, row := range data.Components {
		actionsRow, ok := row.(*discordgo.ActionsRow)
		if !ok {
			continue
		}
		for _, comp := range actionsRow.Components {
			input, ok := comp.(*discordgo.TextInput)
			if !ok {
				continue
			}
			if input.CustomID == customID {
				return input.Value
			}
		}
	}
	return ""
}
