package discord

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/bwmarrin/discordgo"
)

// PendingCommand returns the pending rewards command definition and handler
func PendingCommand() (*discordgo.ApplicationCommand, CommandHandler) {
	cmd := &discordgo.ApplicationCommand{
		Name:        "pending",
		Description: "See your rewards awaiting operator approval",
	}

	handler := func(s *discordgo.Session, i *discordgo.InteractionCreate, client *APIClient) {
		if !deferResponse(s, i) {
			return
		}

		user := getInteractionUser(i)

		pending, err := client.GetPending(user.ID)
		if err != nil {
			slog.Error("Failed to get pending rewards", "error", err, "username", user.Username)
			respondFriendlyError(s, i, err.Error())
			return
		}

		if len(pending.Events) == 0 {
			embed := createEmbed("📋 Pending Rewards", "Nothing waiting on approval. Spin away!", 0x95A5A6, "")
			sendEmbed(s, i, embed)
			return
		}

		var lines []string
		for _, e := range pending.Events {
			lines = append(lines, fmt.Sprintf("Spin %d: **%s** (%d chips)", e.SpinNumber, e.RewardLabel, e.ChipValue))
		}
		lines = append(lines, fmt.Sprintf("\nTotal: **%d chips** awaiting approval", pending.TotalChips))

		embed := createEmbed("📋 Pending Rewards", strings.Join(lines, "\n"), 0xF1C40F, "")
		sendEmbed(s, i, embed)
	}

	return cmd, handler
}
