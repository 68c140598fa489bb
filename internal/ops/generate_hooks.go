package ops

import (
	"context"
	"io"

	"hookline/internal/config"
	"hookline/internal/conversation"
	"hookline/internal/credit"
	"hookline/internal/errors"
	"hookline/internal/llm"
	"hookline/internal/store"
)

// GenerateHooksInput contains parameters for the GenerateHooks operation.
type GenerateHooksInput struct {
	Username string
	Subject  string

	// Admin skips the debit/refund cycle and usage metering.
	Admin bool

	// Sink receives streamed generation deltas as they arrive; nil discards
	// them.
	Sink io.Writer
}

// GenerateHooksOutput contains the result of the GenerateHooks operation.
type GenerateHooksOutput struct {
	ConversationID string `json:"conversation_id"`
	Subject        string `json:"animal"`
	Index          int    `json:"index"`
	Content        string `json:"content"`
	CreditsCharged int    `json:"credits_charged"`
}

// GenerateHooks produces a hook-set from every script in the (username,
// subject) conversation and appends it. A conversation with no scripts is
// rejected before any credit moves.
func GenerateHooks(ctx context.Context, st *store.Store, cfg *config.Config, coord *credit.Coordinator, gw llm.Gateway, input GenerateHooksInput) (*GenerateHooksOutput, error) {
	username, err := ValidateUsername(input.Username)
	if err != nil {
		return nil, err
	}
	subject, err := ValidateSubject(input.Subject)
	if err != nil {
		return nil, err
	}

	var scripts []string
	var conversationID string
	err = st.ViewConversations(func(doc conversation.Document) error {
		c := doc[username].Find(subject)
		if c == nil {
			return errors.NewNotFound("conversation for " + subject)
		}
		conversationID = c.ID
		for _, s := range c.Scripts {
			scripts = append(scripts, s.Content)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if len(scripts) == 0 {
		return nil, errors.NewInvalidRequest("conversation has no scripts to build hooks from")
	}

	cost := cfg.HookCost
	output := &GenerateHooksOutput{}
	err = coord.Charge(ctx, username, cost, input.Admin, func(ctx context.Context) error {
		text, err := gw.GenerateHooks(ctx, scripts, input.Sink)
		if err != nil {
			return err
		}

		return st.UpdateConversations(func(doc conversation.Document) error {
			c := doc[username].FindByID(conversationID)
			if c == nil {
				// The conversation expired mid-generation; nothing to attach
				// the hooks to, so the charge unwinds.
				return errors.NewNotFound("conversation " + conversationID)
			}
			c.Hooks = append(c.Hooks, conversation.Hook{Content: text})
			output.ConversationID = c.ID
			output.Subject = c.Subject
			output.Index = len(c.Hooks) - 1
			output.Content = text
			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	if !input.Admin {
		output.CreditsCharged = cost
		_ = IncrementHookCount(st, username)
	}
	return output, nil
}
