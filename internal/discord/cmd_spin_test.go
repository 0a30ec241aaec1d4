package discord

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verdantclub/ClubWheelBot_Go/internal/domain"
)

func newCommandInteraction(name string, options []*discordgo.ApplicationCommandInteractionDataOption) *discordgo.InteractionCreate {
	return &discordgo.InteractionCreate{
		Interaction: &discordgo.Interaction{
			Type: discordgo.InteractionApplicationCommand,
			Data: discordgo.ApplicationCommandInteractionData{
				Name:    name,
				Options: options,
			},
			Member: &discordgo.Member{
				User: &discordgo.User{ID: "test-user", Username: "Tester"},
			},
		},
	}
}

func TestSpinCommand(t *testing.T) {
	ctx := SetupTestContext(t)
	cmd, handler := SpinCommand()

	// Mock backend response
	ctx.Mux.HandleFunc("/api/v1/spin/request", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)

		var body map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "test-user", body["user_id"])
		assert.Equal(t, float64(5), body["batch_size"])

		WriteJSON(w, domain.SpinBatchResult{
			UserID:    "test-user",
			BatchSize: 5,
			Events: []domain.SpinEvent{
				{SpinNumber: 10, DisplayOutcome: "Gold Chevron", RewardLabel: "Deluxe Chip Stack",
					RewardSource: domain.RewardSourceMilestone, ChipValue: 50, MilestoneSize: 10},
			},
			RemainingSpins: 2,
			PendingChips:   50,
		})
	})

	// Capture Discord interaction edit
	var sentEmbed *discordgo.MessageEmbed
	ctx.DiscordMocks.RoundTripFunc = func(req *http.Request) (*http.Response, error) {
		if req.Method == http.MethodPatch {
			var body discordgo.WebhookEdit
			json.NewDecoder(req.Body).Decode(&body)
			if body.Embeds != nil && len(*body.Embeds) > 0 {
				sentEmbed = (*body.Embeds)[0]
			}
		}
		return &http.Response{
			StatusCode: http.StatusOK,
			Body:       io.NopCloser(bytes.NewBufferString("{}")),
			Header:     make(http.Header),
		}, nil
	}

	interaction := newCommandInteraction(cmd.Name, []*discordgo.ApplicationCommandInteractionDataOption{
		{Name: "count", Type: discordgo.ApplicationCommandOptionInteger, Value: float64(5)},
	})

	handler(ctx.Session, interaction, ctx.APIClient)

	require.NotNil(t, sentEmbed, "expected an embed response")
	assert.Contains(t, sentEmbed.Title, "Winner")
	assert.Contains(t, sentEmbed.Description, "Deluxe Chip Stack")
	assert.Contains(t, sentEmbed.Description, "10-spin milestone")
}

func TestBuildSpinEmbed_NoRewards(t *testing.T) {
	result := &domain.SpinBatchResult{
		UserID:    "user-1",
		BatchSize: 3,
		Events: []domain.SpinEvent{
			{SpinNumber: 1, DisplayOutcome: "Bronze Wedge"},
			{SpinNumber: 2, DisplayOutcome: "Silver Wedge"},
			{SpinNumber: 3, DisplayOutcome: "Club Crest"},
		},
		RemainingSpins: 7,
	}

	embed := buildSpinEmbed(result, "alice")

	assert.NotContains(t, embed.Title, "Winner")
	assert.Contains(t, embed.Description, "No rewards")
	assert.Len(t, embed.Fields, 2)
}

func TestBuildSpinEmbed_SurpriseReward(t *testing.T) {
	result := &domain.SpinBatchResult{
		UserID:    "user-1",
		BatchSize: 10,
		Events: []domain.SpinEvent{
			{SpinNumber: 20, DisplayOutcome: "Club Crest", RewardLabel: "Surprise bonus",
				RewardSource: domain.RewardSourceSurprise, ChipValue: 14},
		},
		RemainingSpins: 0,
		PendingChips:   14,
	}

	embed := buildSpinEmbed(result, "alice")

	assert.Contains(t, embed.Description, "Surprise bonus")
	assert.Contains(t, embed.Description, "14 chips")

	var pendingField *discordgo.MessageEmbedField
	for _, f := range embed.Fields {
		if f.Name == "Pending Chips" {
			pendingField = f
		}
	}
	require.NotNil(t, pendingField)
	assert.Contains(t, pendingField.Value, "14")
}
