package notify

import (
	"context"
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/verdantclub/ClubWheelBot_Go/internal/domain"
	"github.com/verdantclub/ClubWheelBot_Go/internal/ratelimit"
)

var revealFrames = []string{"◐", "◓", "◑", "◒"}

// Revealer runs the animated spin reveal in the announce channel: one posted
// message edited through a short animation and then replaced with the batch
// outcome. At most the gate's cap of reveals animate at once; each frame edit
// passes the edit gate.
type Revealer struct {
	session    Session
	channelID  string
	sendGate   *ratelimit.Gate
	editGate   *ratelimit.Gate
	revealGate *ratelimit.RevealGate
}

// NewRevealer creates a new Revealer posting into the given channel.
func NewRevealer(session Session, channelID string, sendGate, editGate *ratelimit.Gate, revealGate *ratelimit.RevealGate) *Revealer {
	return &Revealer{
		session:    session,
		channelID:  channelID,
		sendGate:   sendGate,
		editGate:   editGate,
		revealGate: revealGate,
	}
}

// Reveal animates a batch outcome. Blocks until a reveal slot frees up;
// cancellation before a slot is acquired drops the animation without posting.
func (r *Revealer) Reveal(ctx context.Context, result *domain.SpinBatchResult, username string) error {
	if err := r.revealGate.Acquire(ctx); err != nil {
		return err
	}
	defer r.revealGate.Release()

	r.sendGate.Wait()
	msg, err := r.session.ChannelMessageSendComplex(r.channelID, &discordgo.MessageSend{
		Content: fmt.Sprintf("%s %s is spinning...", revealFrames[0], DisplayName(username)),
	})
	if err != nil {
		return fmt.Errorf("failed to post reveal message: %w", err)
	}

	for i := 1; i < RevealFrames; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		r.editGate.Wait()
		edit := discordgo.NewMessageEdit(r.channelID, msg.ID)
		content := fmt.Sprintf("%s %s is spinning...", revealFrames[i%len(revealFrames)], DisplayName(username))
		edit.Content = &content
		if _, err := r.session.ChannelMessageEditComplex(edit); err != nil {
			return fmt.Errorf("failed to edit reveal frame: %w", err)
		}
	}

	r.editGate.Wait()
	final := formatBatchOutcome(result, username)
	edit := discordgo.NewMessageEdit(r.channelID, msg.ID)
	edit.Content = &final
	if _, err := r.session.ChannelMessageEditComplex(edit); err != nil {
		return fmt.Errorf("failed to post reveal outcome: %w", err)
	}
	return nil
}

func formatBatchOutcome(result *domain.SpinBatchResult, username string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "🎡 %s spun %d time(s)!\n", DisplayName(username), result.BatchSize)

	rewards := result.RewardEvents()
	if len(rewards) == 0 {
		b.WriteString("No prizes this time. Better luck on the next batch!")
		return b.String()
	}

	for _, e := range rewards {
		switch e.RewardSource {
		case domain.RewardSourceMilestone:
			fmt.Fprintf(&b, "• Spin %d hit the %d-spin milestone: **%s**\n", e.SpinNumber, e.MilestoneSize, e.RewardLabel)
		case domain.RewardSourceSurprise:
			fmt.Fprintf(&b, "• Surprise bonus: **%d chips**\n", e.ChipValue)
		}
	}
	fmt.Fprintf(&b, "%d chips pending operator approval.", result.PendingChips)
	return b.String()
}
