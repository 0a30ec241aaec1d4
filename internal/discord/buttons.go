package discord

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/bwmarrin/discordgo"
	"github.com/google/uuid"

	"github.com/verdantclub/ClubWheelBot_Go/internal/domain"
	"github.com/verdantclub/ClubWheelBot_Go/internal/notify"
)

// HandleComponent routes button clicks on approval cards to the core API.
// Custom IDs carry the decision prefix and the request UUID.
func HandleComponent(s *discordgo.Session, i *discordgo.InteractionCreate, client *APIClient) {
	customID := i.MessageComponentData().CustomID

	var decision domain.ApprovalDecision
	var rawID string
	switch {
	case strings.HasPrefix(customID, notify.CustomIDApprovePrefix):
		decision = domain.DecisionApprove
		rawID = strings.TrimPrefix(customID, notify.CustomIDApprovePrefix)
	case strings.HasPrefix(customID, notify.CustomIDRejectPrefix):
		decision = domain.DecisionReject
		rawID = strings.TrimPrefix(customID, notify.CustomIDRejectPrefix)
	default:
		slog.Warn("Unknown component custom ID", "custom_id", customID)
		return
	}

	requestID, err := uuid.Parse(rawID)
	if err != nil {
		slog.Error("Malformed request ID in custom ID", "custom_id", customID, "error", err)
		respondEphemeral(s, i, MsgGenericError)
		return
	}

	operator := getInteractionUser(i)

	result, err := client.ResolveApproval(requestID, operator.ID, decision)
	if err != nil {
		slog.Warn("Failed to resolve approval", "error", err, "request_id", requestID, "operator", operator.ID)
		respondEphemeral(s, i, formatFriendlyError(err.Error()))
		return
	}

	var msg string
	if result.Decision == domain.DecisionApprove {
		msg = fmt.Sprintf("✅ Approved request `%s`.", shortID(requestID))
	} else {
		msg = fmt.Sprintf("❌ Rejected request `%s`.", shortID(requestID))
	}
	respondEphemeral(s, i, msg)
}

// respondEphemeral sends a message only the clicking operator can see
func respondEphemeral(s *discordgo.Session, i *discordgo.InteractionCreate, content string) {
	if err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: content,
			Flags:   discordgo.MessageFlagsEphemeral,
		},
	}); err != nil {
		slog.Error("Failed to respond to component interaction", "error", err)
	}
}

func shortID(id uuid.UUID) string {
	return id.String()[:8]
}
