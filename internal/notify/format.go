package notify

import (
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/verdantclub/ClubWheelBot_Go/internal/domain"
)

var titleCaser = cases.Title(language.English)

// DisplayName formats a raw username for embeds.
func DisplayName(username string) string {
	name := strings.TrimSpace(username)
	if name == "" {
		return "Unknown Member"
	}
	return titleCaser.String(name)
}

// subjectTitle maps an approval subject to its card heading.
func subjectTitle(subject domain.ApprovalSubject) string {
	switch subject {
	case domain.SubjectRewardBatch:
		return "Reward Batch Pending"
	case domain.SubjectDeposit:
		return "Deposit Pending"
	case domain.SubjectWithdrawal:
		return "Withdrawal Pending"
	default:
		return "Approval Pending"
	}
}

func pendingEmbed(req *domain.ApprovalRequest) *discordgo.MessageEmbed {
	fields := []*discordgo.MessageEmbedField{
		{Name: "Member", Value: DisplayName(req.Username), Inline: true},
	}

	switch req.Subject {
	case domain.SubjectRewardBatch:
		fields = append(fields,
			&discordgo.MessageEmbedField{Name: "Chips", Value: fmt.Sprintf("%d", req.Amount), Inline: true},
			&discordgo.MessageEmbedField{Name: "Reward events", Value: fmt.Sprintf("%d", len(req.EventIDs)), Inline: true},
		)
	default:
		fields = append(fields,
			&discordgo.MessageEmbedField{Name: "Amount", Value: fmt.Sprintf("%d", req.Amount), Inline: true},
		)
	}

	return &discordgo.MessageEmbed{
		Title:  subjectTitle(req.Subject),
		Color:  ColorPending,
		Fields: fields,
		Footer: &discordgo.MessageEmbedFooter{Text: "Request " + req.ID.String()},
	}
}

// outcomeEmbed is the user-facing counterpart of resolvedEmbed: it tells the
// member what happened to their request without naming the operator.
func outcomeEmbed(result *domain.ResolutionResult) *discordgo.MessageEmbed {
	var subject string
	switch result.Subject {
	case domain.SubjectRewardBatch:
		subject = "spin rewards"
	case domain.SubjectDeposit:
		subject = "deposit"
	case domain.SubjectWithdrawal:
		subject = "withdrawal"
	default:
		subject = "request"
	}

	color := ColorApproved
	description := fmt.Sprintf("Your %s were approved and credited to your account.", subject)
	if result.Subject != domain.SubjectRewardBatch {
		description = fmt.Sprintf("Your %s was approved.", subject)
	}
	if result.Decision == domain.DecisionReject {
		color = ColorRejected
		description = fmt.Sprintf("Your %s request was declined by the club staff.", subject)
	}

	return &discordgo.MessageEmbed{
		Title:       "Request Update",
		Description: description,
		Color:       color,
		Footer:      &discordgo.MessageEmbedFooter{Text: "Request " + result.RequestID.String()},
	}
}

func resolvedEmbed(result *domain.ResolutionResult) *discordgo.MessageEmbed {
	color := ColorApproved
	verdict := "Approved"
	if result.Decision == domain.DecisionReject {
		color = ColorRejected
		verdict = "Rejected"
	}

	return &discordgo.MessageEmbed{
		Title:       verdict,
		Description: fmt.Sprintf("Resolved by <@%s>", result.ResolvedBy),
		Color:       color,
		Footer:      &discordgo.MessageEmbedFooter{Text: "Request " + result.RequestID.String()},
	}
}
