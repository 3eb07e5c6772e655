package discord

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/KirkDiggler/eventtools/internal/models"
	"github.com/KirkDiggler/eventtools/internal/platform"
)

// messageSender is the slice of discordgo.Session the announcer posts through
type messageSender interface {
	ChannelMessageSend(channelID string, content string, options ...discordgo.RequestOption) (*discordgo.Message, error)
	ChannelMessageSendEmbed(channelID string, embed *discordgo.MessageEmbed, options ...discordgo.RequestOption) (*discordgo.Message, error)
}

// ChannelAnnouncer mirrors event announcements into a Discord channel.
// Per-participant output has no channel equivalent and is dropped.
type ChannelAnnouncer struct {
	sender    messageSender
	channelID string
}

var _ platform.Announcer = (*ChannelAnnouncer)(nil)

// NewChannelAnnouncer creates an announcer posting to channelID
func NewChannelAnnouncer(sender messageSender, channelID string) (*ChannelAnnouncer, error) {
	if sender == nil {
		return nil, errors.New("sender cannot be nil")
	}
	if channelID == "" {
		return nil, errors.New("channel ID cannot be empty")
	}
	return &ChannelAnnouncer{sender: sender, channelID: channelID}, nil
}

// Broadcast posts the message to the channel. Blank lines are dropped since
// Discord rejects empty messages.
func (a *ChannelAnnouncer) Broadcast(_ context.Context, message string) error {
	if strings.TrimSpace(message) == "" {
		return nil
	}
	if _, err := a.sender.ChannelMessageSend(a.channelID, message); err != nil {
		return fmt.Errorf("failed to post announcement: %w", err)
	}
	return nil
}

// Title posts the title as an embed
func (a *ChannelAnnouncer) Title(_ context.Context, title, subtitle string) error {
	embed := &discordgo.MessageEmbed{
		Title:       title,
		Description: subtitle,
		Color:       colorGold,
	}
	if _, err := a.sender.ChannelMessageSendEmbed(a.channelID, embed); err != nil {
		return fmt.Errorf("failed to post title: %w", err)
	}
	return nil
}

// Tell is a no-op
func (a *ChannelAnnouncer) Tell(context.Context, models.ParticipantID, string) error {
	return nil
}

// Firework is a no-op
func (a *ChannelAnnouncer) Firework(context.Context, models.ParticipantID) error {
	return nil
}
