package discord

import (
	"fmt"
	"log/slog"

	"github.com/bwmarrin/discordgo"
)

// DepositCommand returns the deposit command definition and handler
func DepositCommand() (*discordgo.ApplicationCommand, CommandHandler) {
	minValue := float64(1)

	cmd := &discordgo.ApplicationCommand{
		Name:        "deposit",
		Description: "Record a deposit to earn spin credits (granted after operator approval)",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionNumber,
				Name:        "amount",
				Description: "Deposit amount",
				Required:    true,
				MinValue:    &minValue,
			},
		},
	}

	handler := func(s *discordgo.Session, i *discordgo.InteractionCreate, client *APIClient) {
		if !deferResponse(s, i) {
			return
		}

		user := getInteractionUser(i)
		amount := getOptions(i)[0].FloatValue()

		result, err := client.RequestDeposit(user.ID, user.Username, amount)
		if err != nil {
			slog.Error("Failed to request deposit", "error", err, "username", user.Username)
			respondFriendlyError(s, i, err.Error())
			return
		}

		credits, err := client.GetDepositCredits(amount)
		if err != nil {
			// Preview is best-effort; the deposit itself already went through
			slog.Warn("Failed to preview deposit credits", "error", err)
			credits = 0
		}

		desc := fmt.Sprintf("Deposit of **%.2f** submitted for operator review.", amount)
		if credits > 0 {
			desc += fmt.Sprintf("\nYou'll receive **%d spin credits** once approved.", credits)
		}

		embed := createEmbed("💰 Deposit Submitted", desc, 0x2ECC71, "")
		embed.Footer.Text = fmt.Sprintf("Request %s", result.RequestID)
		sendEmbed(s, i, embed)
	}

	return cmd, handler
}

// WithdrawCommand returns the withdrawal command definition and handler
func WithdrawCommand() (*discordgo.ApplicationCommand, CommandHandler) {
	minValue := float64(1)

	cmd := &discordgo.ApplicationCommand{
		Name:        "withdraw",
		Description: "Request a withdrawal (paid out after operator approval)",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionNumber,
				Name:        "amount",
				Description: "Withdrawal amount",
				Required:    true,
				MinValue:    &minValue,
			},
		},
	}

	handler := func(s *discordgo.Session, i *discordgo.InteractionCreate, client *APIClient) {
		if !deferResponse(s, i) {
			return
		}

		user := getInteractionUser(i)
		amount := getOptions(i)[0].FloatValue()

		result, err := client.RequestWithdrawal(user.ID, user.Username, amount)
		if err != nil {
			slog.Error("Failed to request withdrawal", "error", err, "username", user.Username)
			respondFriendlyError(s, i, err.Error())
			return
		}

		embed := createEmbed("🏦 Withdrawal Submitted",
			fmt.Sprintf("Withdrawal of **%.2f** submitted for operator review.", amount),
			0x3498DB, "")
		embed.Footer.Text = fmt.Sprintf("Request %s", result.RequestID)
		sendEmbed(s, i, embed)
	}

	return cmd, handler
}
