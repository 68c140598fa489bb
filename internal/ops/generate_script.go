package ops

import (
	"context"
	"io"

	"hookline/internal/config"
	"hookline/internal/conversation"
	"hookline/internal/credit"
	"hookline/internal/llm"
	"hookline/internal/store"
)

// GenerateScriptInput contains parameters for the GenerateScript operation.
type GenerateScriptInput struct {
	Username string
	Subject  string

	// Admin skips the debit/refund cycle and usage metering.
	Admin bool

	// Sink receives streamed generation deltas as they arrive; nil discards
	// them. Only the final text is persisted.
	Sink io.Writer
}

// GenerateScriptOutput contains the result of the GenerateScript operation.
type GenerateScriptOutput struct {
	ConversationID string `json:"conversation_id"`
	Subject        string `json:"animal"`
	Index          int    `json:"index"`
	CharCount      int    `json:"char_count"`
	Content        string `json:"content"`
	CreditsCharged int    `json:"credits_charged"`
}

// GenerateScript produces a new script for (username, subject) and appends it
// to the conversation, creating the conversation when absent. The generation
// runs inside a credit charge: the cost is debited up front and refunded when
// the gateway fails, produces nothing, or the result cannot be persisted.
func GenerateScript(ctx context.Context, st *store.Store, cfg *config.Config, coord *credit.Coordinator, gw llm.Gateway, input GenerateScriptInput) (*GenerateScriptOutput, error) {
	username, err := ValidateUsername(input.Username)
	if err != nil {
		return nil, err
	}
	subject, err := ValidateSubject(input.Subject)
	if err != nil {
		return nil, err
	}

	cost := cfg.ScriptCost
	output := &GenerateScriptOutput{}
	err = coord.Charge(ctx, username, cost, input.Admin, func(ctx context.Context) error {
		text, err := gw.GenerateScript(ctx, subject, input.Sink)
		if err != nil {
			return err
		}

		return st.UpdateConversations(func(doc conversation.Document) error {
			c, _, err := findOrCreate(doc, username, subject)
			if err != nil {
				return err
			}
			c.Scripts = append(c.Scripts, conversation.Script{
				Content:   text,
				CharCount: conversation.CountChars(text),
			})
			output.ConversationID = c.ID
			output.Subject = c.Subject
			output.Index = len(c.Scripts) - 1
			output.CharCount = c.Scripts[output.Index].CharCount
			output.Content = text
			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	if !input.Admin {
		output.CreditsCharged = cost
		_ = IncrementScriptCount(st, username)
	}
	return output, nil
}
