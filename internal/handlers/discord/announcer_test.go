package discord

import (
	"context"
	"errors"
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/suite"
)

type sentMessage struct {
	channelID string
	content   string
	embed     *discordgo.MessageEmbed
}

type fakeSender struct {
	sent []sentMessage
	err  error
}

func (f *fakeSender) ChannelMessageSend(channelID string, content string, _ ...discordgo.RequestOption) (*discordgo.Message, error) {
	f.sent = append(f.sent, sentMessage{channelID: channelID, content: content})
	return &discordgo.Message{}, f.err
}

func (f *fakeSender) ChannelMessageSendEmbed(channelID string, embed *discordgo.MessageEmbed, _ ...discordgo.RequestOption) (*discordgo.Message, error) {
	f.sent = append(f.sent, sentMessage{channelID: channelID, embed: embed})
	return &discordgo.Message{}, f.err
}

type AnnouncerTestSuite struct {
	suite.Suite
	sender    *fakeSender
	announcer *ChannelAnnouncer
	ctx       context.Context
}

func (s *AnnouncerTestSuite) SetupTest() {
	s.sender = &fakeSender{}
	s.ctx = context.Background()

	announcer, err := NewChannelAnnouncer(s.sender, "events")
	s.Require().NoError(err)
	s.announcer = announcer
}

func (s *AnnouncerTestSuite) TestNewValidates() {
	_, err := NewChannelAnnouncer(nil, "events")
	s.Error(err)

	_, err = NewChannelAnnouncer(s.sender, "")
	s.Error(err)
}

func (s *AnnouncerTestSuite) TestBroadcastAndTitle() {
	s.Require().NoError(s.announcer.Broadcast(s.ctx, "Spleef has started!"))
	s.Require().NoError(s.announcer.Title(s.ctx, "Alice wins!", "Last one standing"))

	s.Require().Len(s.sender.sent, 2)
	s.Equal(sentMessage{channelID: "events", content: "Spleef has started!"}, s.sender.sent[0])
	s.Equal("events", s.sender.sent[1].channelID)
	s.Require().NotNil(s.sender.sent[1].embed)
	s.Equal("Alice wins!", s.sender.sent[1].embed.Title)
	s.Equal("Last one standing", s.sender.sent[1].embed.Description)
}

func (s *AnnouncerTestSuite) TestBlankBroadcastIsDropped() {
	s.NoError(s.announcer.Broadcast(s.ctx, ""))
	s.NoError(s.announcer.Broadcast(s.ctx, "  "))
	s.Empty(s.sender.sent)
}

func (s *AnnouncerTestSuite) TestPerParticipantOutputIsDropped() {
	s.NoError(s.announcer.Tell(s.ctx, "alice", "hi"))
	s.NoError(s.announcer.Firework(s.ctx, "alice"))
	s.Empty(s.sender.sent)
}

func (s *AnnouncerTestSuite) TestSendErrorsAreWrapped() {
	boom := errors.New("rate limited")
	s.sender.err = boom

	s.ErrorIs(s.announcer.Broadcast(s.ctx, "x"), boom)
	s.ErrorIs(s.announcer.Title(s.ctx, "x", ""), boom)
}

func TestAnnouncerTestSuite(t *testing.T) {
	suite.Run(t, new(AnnouncerTestSuite))
}
