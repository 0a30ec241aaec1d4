package notify

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/bwmarrin/discordgo"

	"github.com/verdantclub/ClubWheelBot_Go/internal/domain"
	"github.com/verdantclub/ClubWheelBot_Go/internal/ratelimit"
)

// Session is the slice of discordgo.Session the notifier uses, extracted so
// tests can substitute a recorder.
type Session interface {
	UserChannelCreate(recipientID string, options ...discordgo.RequestOption) (*discordgo.Channel, error)
	ChannelMessageSendComplex(channelID string, data *discordgo.MessageSend, options ...discordgo.RequestOption) (*discordgo.Message, error)
	ChannelMessageEditComplex(m *discordgo.MessageEdit, options ...discordgo.RequestOption) (*discordgo.Message, error)
}

// DiscordNotifier delivers approval cards to operators over Discord DMs.
// Every outbound send passes the send gate and every edit the edit gate, so
// a burst of requests cannot trip the gateway's rate limits.
type DiscordNotifier struct {
	session  Session
	sendGate *ratelimit.Gate
	editGate *ratelimit.Gate

	mu       sync.Mutex
	dmByUser map[string]string // operatorID -> DM channel id
}

// NewDiscordNotifier creates a new DiscordNotifier
func NewDiscordNotifier(session Session, sendGate, editGate *ratelimit.Gate) *DiscordNotifier {
	return &DiscordNotifier{
		session:  session,
		sendGate: sendGate,
		editGate: editGate,
		dmByUser: make(map[string]string),
	}
}

// NotifyPending posts the approval card with its decision buttons and
// returns the "channel|message" handle of the posted card.
func (n *DiscordNotifier) NotifyPending(ctx context.Context, operatorID string, req *domain.ApprovalRequest) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	channelID, err := n.dmChannel(operatorID)
	if err != nil {
		return "", domain.NotificationDeliveryError{OperatorID: operatorID, Op: "pending", Err: err}
	}

	n.sendGate.Wait()
	msg, err := n.session.ChannelMessageSendComplex(channelID, &discordgo.MessageSend{
		Embeds:     []*discordgo.MessageEmbed{pendingEmbed(req)},
		Components: decisionControls(req.ID.String()),
	})
	if err != nil {
		return "", domain.NotificationDeliveryError{OperatorID: operatorID, Op: "pending", Err: err}
	}

	return channelID + HandleSeparator + msg.ID, nil
}

// NotifyResolved replaces a posted card with the resolution outcome and
// removes its controls.
func (n *DiscordNotifier) NotifyResolved(ctx context.Context, operatorID, handle string, result *domain.ResolutionResult) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	channelID, messageID, err := splitHandle(handle)
	if err != nil {
		return err
	}

	n.editGate.Wait()
	edit := discordgo.NewMessageEdit(channelID, messageID)
	edit.Embeds = &[]*discordgo.MessageEmbed{resolvedEmbed(result)}
	edit.Components = &[]discordgo.MessageComponent{}
	if _, err := n.session.ChannelMessageEditComplex(edit); err != nil {
		return domain.NotificationDeliveryError{OperatorID: operatorID, Op: "resolved", Err: err}
	}
	return nil
}

// ClearControls strips the decision buttons from a posted card, leaving its
// content in place.
func (n *DiscordNotifier) ClearControls(ctx context.Context, operatorID, handle string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	channelID, messageID, err := splitHandle(handle)
	if err != nil {
		return err
	}

	n.editGate.Wait()
	edit := discordgo.NewMessageEdit(channelID, messageID)
	edit.Components = &[]discordgo.MessageComponent{}
	if _, err := n.session.ChannelMessageEditComplex(edit); err != nil {
		return domain.NotificationDeliveryError{OperatorID: operatorID, Op: "clear", Err: err}
	}
	return nil
}

// NotifyUser DMs the requesting user with the outcome of their request.
func (n *DiscordNotifier) NotifyUser(ctx context.Context, userID string, result *domain.ResolutionResult) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	channelID, err := n.dmChannel(userID)
	if err != nil {
		return domain.NotificationDeliveryError{OperatorID: userID, Op: "user", Err: err}
	}

	n.sendGate.Wait()
	_, err = n.session.ChannelMessageSendComplex(channelID, &discordgo.MessageSend{
		Embeds: []*discordgo.MessageEmbed{outcomeEmbed(result)},
	})
	if err != nil {
		return domain.NotificationDeliveryError{OperatorID: userID, Op: "user", Err: err}
	}
	return nil
}

// dmChannel returns the recipient's DM channel, opening it on first use.
func (n *DiscordNotifier) dmChannel(operatorID string) (string, error) {
	n.mu.Lock()
	if id, ok := n.dmByUser[operatorID]; ok {
		n.mu.Unlock()
		return id, nil
	}
	n.mu.Unlock()

	ch, err := n.session.UserChannelCreate(operatorID)
	if err != nil {
		return "", fmt.Errorf("failed to open DM channel: %w", err)
	}

	n.mu.Lock()
	n.dmByUser[operatorID] = ch.ID
	n.mu.Unlock()
	return ch.ID, nil
}

func splitHandle(handle string) (channelID, messageID string, err error) {
	parts := strings.SplitN(handle, HandleSeparator, 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", fmt.Errorf("malformed notification handle %q", handle)
	}
	return parts[0], parts[1], nil
}

func decisionControls(requestID string) []discordgo.MessageComponent {
	return []discordgo.MessageComponent{
		discordgo.ActionsRow{
			Components: []discordgo.MessageComponent{
				discordgo.Button{
					Label:    "Approve",
					Style:    discordgo.SuccessButton,
					CustomID: CustomIDApprovePrefix + requestID,
				},
				discordgo.Button{
					Label:    "Reject",
					Style:    discordgo.DangerButton,
					CustomID: CustomIDRejectPrefix + requestID,
				},
			},
		},
	}
}
