package discord

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/bwmarrin/discordgo"

	"github.com/KirkDiggler/eventtools/internal/models"
)

// ChatHook receives channel messages; returning true consumes the message
type ChatHook interface {
	OnChat(ctx context.Context, p *models.Participant, message string) bool
}

// Bot represents the Discord bot instance
type Bot struct {
	session    *discordgo.Session
	commands   map[string]CommandHandler
	commandIDs map[string]string // Maps command name to command ID
	config     *Config

	mu      sync.RWMutex
	pending []CommandHandler
	chat    ChatHook
}

// Config holds the configuration for the bot
type Config struct {
	// Discord bot token
	Token string

	// Application ID for the bot
	ApplicationID string

	// Optional guild ID for development (server-specific commands)
	GuildID string

	// AnnounceChannelID receives event announcements
	AnnounceChannelID string

	// ChatHooks feeds messages from the announce channel into the event,
	// so members can vote and guess from Discord
	ChatHooks bool
}

// New creates a new Discord bot
func New(cfg *Config) (*Bot, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.Token == "" {
		return nil, errors.New("token cannot be empty")
	}

	if cfg.ChatHooks && cfg.AnnounceChannelID == "" {
		return nil, errors.New("chat hooks need an announce channel")
	}

	session, err := discordgo.New("Bot " + cfg.Token)
	if err != nil {
		return nil, fmt.Errorf("failed to create Discord session: %w", err)
	}
	session.Identify.Intents = discordgo.IntentsGuilds
	if cfg.ChatHooks {
		session.Identify.Intents |= discordgo.IntentsGuildMessages | discordgo.IntentMessageContent
	}

	bot := &Bot{
		session:    session,
		commands:   make(map[string]CommandHandler),
		commandIDs: make(map[string]string),
		config:     cfg,
	}

	session.AddHandler(bot.handleInteraction)
	if cfg.ChatHooks {
		session.AddHandler(bot.handleMessage)
	}

	return bot, nil
}

// Announcer returns an announcer for the announce channel, or nil when none
// is configured
func (b *Bot) Announcer() (*ChannelAnnouncer, error) {
	if b.config.AnnounceChannelID == "" {
		return nil, nil
	}
	return NewChannelAnnouncer(b.session, b.config.AnnounceChannelID)
}

// AddCommand queues a command for registration on Start
func (b *Bot) AddCommand(cmd CommandHandler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.pending = append(b.pending, cmd)
}

// SetChatHook sets the receiver of channel messages
func (b *Bot) SetChatHook(h ChatHook) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.chat = h
}

// Start initializes the Discord connection and registers commands
func (b *Bot) Start() error {
	if err := b.session.Open(); err != nil {
		return fmt.Errorf("failed to open Discord connection: %w", err)
	}

	b.mu.RLock()
	pending := b.pending
	b.mu.RUnlock()

	for _, cmd := range pending {
		if err := b.RegisterCommand(cmd); err != nil {
			return fmt.Errorf("failed to register %s command: %w", cmd.GetName(), err)
		}
	}

	slog.Info("discord bot is running", "commands", len(pending), "chat_hooks", b.config.ChatHooks)
	return nil
}

// Stop removes the registered commands and closes the connection
func (b *Bot) Stop() error {
	appID := b.appID()

	b.mu.RLock()
	ids := make(map[string]string, len(b.commandIDs))
	for name, id := range b.commandIDs {
		ids[name] = id
	}
	b.mu.RUnlock()

	for cmdName, cmdID := range ids {
		if err := b.session.ApplicationCommandDelete(appID, b.config.GuildID, cmdID); err != nil {
			slog.Warn("failed to delete command", "command", cmdName, "id", cmdID, "error", err)
		} else {
			slog.Info("deleted command", "command", cmdName, "id", cmdID)
		}
	}

	return b.session.Close()
}

// RegisterCommand registers a command with Discord
func (b *Bot) RegisterCommand(cmd CommandHandler) error {
	appID := b.appID()

	// Guild commands show up immediately, global ones can take an hour
	if b.config.GuildID != "" {
		slog.Info("registering command for guild", "command", cmd.GetName(), "guild", b.config.GuildID)
	} else {
		slog.Info("registering command globally", "command", cmd.GetName())
	}

	createdCmd, err := b.session.ApplicationCommandCreate(appID, b.config.GuildID, cmd.GetCommand())
	if err != nil {
		return fmt.Errorf("failed to create command %s: %w", cmd.GetName(), err)
	}

	b.mu.Lock()
	b.commands[cmd.GetName()] = cmd
	b.commandIDs[cmd.GetName()] = createdCmd.ID
	b.mu.Unlock()

	slog.Info("registered command", "command", cmd.GetName(), "id", createdCmd.ID)
	return nil
}

func (b *Bot) appID() string {
	if b.config.ApplicationID != "" {
		return b.config.ApplicationID
	}
	// Fall back to session user ID if application ID is not provided
	return b.session.State.User.ID
}

// handleInteraction routes slash commands to their handlers
func (b *Bot) handleInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.Type != discordgo.InteractionApplicationCommand {
		return
	}

	name := i.ApplicationCommandData().Name
	b.mu.RLock()
	h, ok := b.commands[name]
	b.mu.RUnlock()
	if !ok {
		return
	}

	if err := h.Handle(s, i); err != nil {
		slog.Error("failed to handle command", "command", name, "error", err)
	}
}

// handleMessage feeds announce channel messages to the chat hook and deletes
// the ones it consumed
func (b *Bot) handleMessage(s *discordgo.Session, m *discordgo.MessageCreate) {
	if m.Message == nil || m.ChannelID != b.config.AnnounceChannelID {
		return
	}

	exempt := false
	if m.Author != nil {
		if perms, err := s.State.UserChannelPermissions(m.Author.ID, m.ChannelID); err == nil {
			exempt = perms&adminPermissions != 0
		}
	}

	if !b.consumeChat(context.Background(), m.Message, exempt) {
		return
	}
	if err := s.ChannelMessageDelete(m.ChannelID, m.ID); err != nil {
		slog.Warn("failed to delete consumed message", "message", m.ID, "error", err)
	}
}

func (b *Bot) consumeChat(ctx context.Context, m *discordgo.Message, exempt bool) bool {
	if m.Author == nil || m.Author.Bot {
		return false
	}

	b.mu.RLock()
	chat := b.chat
	b.mu.RUnlock()
	if chat == nil {
		return false
	}

	return chat.OnChat(ctx, chatParticipant(m, exempt), m.Content)
}

// chatParticipant builds the participant behind a Discord message, preferring
// the server nickname for display
func chatParticipant(m *discordgo.Message, exempt bool) *models.Participant {
	name := m.Author.Username
	if m.Author.GlobalName != "" {
		name = m.Author.GlobalName
	}
	if m.Member != nil && m.Member.Nick != "" {
		name = m.Member.Nick
	}
	return &models.Participant{
		ID:     models.ParticipantID(m.Author.ID),
		Name:   name,
		Exempt: exempt,
	}
}
