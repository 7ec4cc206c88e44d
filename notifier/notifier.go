package notifier

import (
	"context"
	"fmt"
	"strconv"

	log "github.com/sirupsen/logrus"

	"clickduel/events"

	"github.com/bwmarrin/discordgo"
)

// Config holds notifier configuration
type Config struct {
	Token       string
	JoinBaseURL string
}

// Notifier announces room invites and duel results in Discord channels.
// Delivery is best effort: a failed announcement is logged and dropped,
// never surfaced to the request that settled the room.
type Notifier struct {
	config  Config
	session *discordgo.Session
}

func New(config Config) (*Notifier, error) {
	dg, err := discordgo.New("Bot " + config.Token)
	if err != nil {
		return nil, fmt.Errorf("error creating discord session: %w", err)
	}
	dg.Identify.Intents = discordgo.IntentsGuildMessages

	if err := dg.Open(); err != nil {
		return nil, fmt.Errorf("error opening connection: %w", err)
	}

	return &Notifier{
		config:  config,
		session: dg,
	}, nil
}

// Subscribe wires the notifier to the announcement-worthy events
func (n *Notifier) Subscribe(bus *events.Bus) {
	bus.Subscribe(events.EventTypeRoomShared, func(ctx context.Context, event events.Event) {
		if shared, ok := event.(events.RoomSharedEvent); ok {
			n.announceInvite(shared)
		}
	})

	bus.Subscribe(events.EventTypeRoomSettled, func(ctx context.Context, event events.Event) {
		if settled, ok := event.(events.RoomSettledEvent); ok {
			n.announceResult(settled)
		}
	})

	log.Info("Discord notifier subscribed to room events")
}

func (n *Notifier) Close() error {
	return n.session.Close()
}

func (n *Notifier) announceInvite(ev events.RoomSharedEvent) {
	channelID := strconv.FormatInt(ev.ChannelID, 10)

	_, err := n.session.ChannelMessageSendComplex(channelID, &discordgo.MessageSend{
		Embeds:     []*discordgo.MessageEmbed{buildInviteEmbed(ev)},
		Components: buildInviteComponents(joinURL(n.config.JoinBaseURL, ev.InviteToken)),
	})
	if err != nil {
		log.WithFields(log.Fields{
			"roomId":    ev.RoomID,
			"channelId": ev.ChannelID,
		}).WithError(err).Error("Failed to announce room invite")
	}
}

func (n *Notifier) announceResult(ev events.RoomSettledEvent) {
	if ev.ChannelID == nil {
		// The room was never shared into a channel, nothing to announce
		return
	}
	channelID := strconv.FormatInt(*ev.ChannelID, 10)

	_, err := n.session.ChannelMessageSendEmbed(channelID, buildResultEmbed(ev))
	if err != nil {
		log.WithFields(log.Fields{
			"roomId":    ev.RoomID,
			"channelId": *ev.ChannelID,
		}).WithError(err).Error("Failed to announce duel result")
	}
}
