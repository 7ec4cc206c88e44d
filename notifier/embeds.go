package notifier

import (
	"fmt"

	"clickduel/events"

	"github.com/bwmarrin/discordgo"
)

const (
	colorInvite = 0x5865F2
	colorWin    = 0x00FF00
	colorDraw   = 0xFFD700
)

func joinURL(baseURL, token string) string {
	return fmt.Sprintf("%s?token=%s", baseURL, token)
}

func buildInviteEmbed(ev events.RoomSharedEvent) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title:       "⚔️ Click Duel Challenge",
		Description: fmt.Sprintf("**%s** is looking for an opponent!", ev.HostUsername),
		Color:       colorInvite,
		Fields: []*discordgo.MessageEmbedField{
			{
				Name:   "Stake",
				Value:  fmt.Sprintf("%d tokens", ev.BetAmount),
				Inline: true,
			},
			{
				Name:   "Room",
				Value:  ev.RoomID,
				Inline: true,
			},
		},
		Footer: &discordgo.MessageEmbedFooter{
			Text: "Winner takes the pot. Most clicks wins.",
		},
	}
}

func buildInviteComponents(url string) []discordgo.MessageComponent {
	return []discordgo.MessageComponent{
		discordgo.ActionsRow{
			Components: []discordgo.MessageComponent{
				discordgo.Button{
					Label: "Join Duel",
					Style: discordgo.LinkButton,
					URL:   url,
				},
			},
		},
	}
}

func buildResultEmbed(ev events.RoomSettledEvent) *discordgo.MessageEmbed {
	scoreline := fmt.Sprintf("**%s** %d : %d **%s**",
		ev.HostUsername, ev.HostClicks, ev.GuestClicks, ev.GuestUsername)

	if ev.WinnerUsername == nil {
		return &discordgo.MessageEmbed{
			Title:       "🤝 Duel Drawn",
			Description: scoreline,
			Color:       colorDraw,
			Footer: &discordgo.MessageEmbedFooter{
				Text: "Both stakes returned",
			},
		}
	}

	return &discordgo.MessageEmbed{
		Title:       "🏆 Duel Finished",
		Description: scoreline,
		Color:       colorWin,
		Fields: []*discordgo.MessageEmbedField{
			{
				Name:   "Winner",
				Value:  *ev.WinnerUsername,
				Inline: true,
			},
			{
				Name:   "Winnings",
				Value:  fmt.Sprintf("%d tokens", ev.BetAmount),
				Inline: true,
			},
		},
	}
}
