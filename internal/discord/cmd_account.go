package discord

import (
	"fmt"
	"log/slog"

	"github.com/bwmarrin/discordgo"
)

// AccountCommand returns the spin account command definition and handler
func AccountCommand() (*discordgo.ApplicationCommand, CommandHandler) {
	cmd := &discordgo.ApplicationCommand{
		Name:        "account",
		Description: "Check your spin credits and lifetime stats",
	}

	handler := func(s *discordgo.Session, i *discordgo.InteractionCreate, client *APIClient) {
		if !deferResponse(s, i) {
			return
		}

		user := getInteractionUser(i)

		account, err := client.GetAccount(user.ID)
		if err != nil {
			slog.Error("Failed to get account", "error", err, "username", user.Username)
			respondFriendlyError(s, i, err.Error())
			return
		}

		embed := createEmbed(
			"🎟️ Spin Account",
			fmt.Sprintf("Available spins: **%d**\nTotal spins used: **%d**\nTotal chips earned: **%d**",
				account.AvailableSpins, account.TotalSpinsUsed, account.TotalChipsEarned),
			0x2ECC71,
			"",
		)
		sendEmbed(s, i, embed)
	}

	return cmd, handler
}
