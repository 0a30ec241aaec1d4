package discord

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/verdantclub/ClubWheelBot_Go/internal/domain"
)

// SpinCommand returns the wheel spin command definition and handler
func SpinCommand() (*discordgo.ApplicationCommand, CommandHandler) {
	minValue := float64(1)
	maxValue := float64(100)

	cmd := &discordgo.ApplicationCommand{
		Name:        "spin",
		Description: "Spin the club wheel with your spin credits!",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionInteger,
				Name:        "count",
				Description: "Number of spins to run (1-100, default: 1)",
				Required:    false,
				MinValue:    &minValue,
				MaxValue:    maxValue,
			},
		},
	}

	handler := func(s *discordgo.Session, i *discordgo.InteractionCreate, client *APIClient) {
		if !deferResponse(s, i) {
			return
		}

		user := getInteractionUser(i)

		batchSize := 1
		if options := getOptions(i); len(options) > 0 {
			batchSize = int(options[0].IntValue())
		}

		result, err := client.RequestSpins(user.ID, user.Username, batchSize)
		if err != nil {
			slog.Error("Failed to request spins", "error", err, "username", user.Username)
			respondFriendlyError(s, i, err.Error())
			return
		}

		embed := buildSpinEmbed(result, user.Username)
		sendEmbed(s, i, embed)
	}

	return cmd, handler
}

// buildSpinEmbed creates an embed for a spin batch result
func buildSpinEmbed(result *domain.SpinBatchResult, username string) *discordgo.MessageEmbed {
	rewards := result.RewardEvents()

	var lines []string
	for _, e := range rewards {
		switch e.RewardSource {
		case domain.RewardSourceMilestone:
			lines = append(lines, fmt.Sprintf("🎯 Spin %d hit the %d-spin milestone: **%s** (%d chips)",
				e.SpinNumber, e.MilestoneSize, e.RewardLabel, e.ChipValue))
		case domain.RewardSourceSurprise:
			lines = append(lines, fmt.Sprintf("🎁 Surprise bonus: **%d chips**", e.ChipValue))
		}
	}

	var description string
	var color int
	if len(rewards) > 0 {
		description = strings.Join(lines, "\n")
		color = 0xFFD700 // Gold
	} else {
		description = "No rewards this time. Keep spinning!"
		color = 0x3498DB // Blue
	}

	fields := []*discordgo.MessageEmbedField{
		{
			Name:   "Spins Run",
			Value:  fmt.Sprintf("%d", result.BatchSize),
			Inline: true,
		},
		{
			Name:   "Spins Left",
			Value:  fmt.Sprintf("%d", result.RemainingSpins),
			Inline: true,
		},
	}

	if result.PendingChips > 0 {
		fields = append(fields, &discordgo.MessageEmbedField{
			Name:   "Pending Chips",
			Value:  fmt.Sprintf("%d (awaiting operator approval)", result.PendingChips),
			Inline: false,
		})
	}

	var title string
	if len(rewards) > 0 {
		title = "🎡 Wheel Spin - Winner! 🎡"
	} else {
		title = "🎡 Wheel Spin 🎡"
	}

	return &discordgo.MessageEmbed{
		Title:       title,
		Description: description,
		Color:       color,
		Fields:      fields,
		Footer: &discordgo.MessageEmbedFooter{
			Text: fmt.Sprintf("Member: %s", username),
		},
	}
}
