package ops

import (
	"time"

	"hookline/internal/conversation"
	"hookline/internal/errors"
	"hookline/internal/store"
)

// FetchInput contains parameters for the Fetch operation. Exactly one of
// Subject or ConversationID addresses the conversation; Subject wins when
// both are set.
type FetchInput struct {
	Username       string
	Subject        string
	ConversationID string
}

// FetchOutput contains the result of the Fetch operation: the full
// conversation with scripts and hooks.
type FetchOutput struct {
	ID        string                `json:"id"`
	Subject   string                `json:"animal"`
	Scripts   []conversation.Script `json:"scripts"`
	Hooks     []conversation.Hook   `json:"hooks"`
	CreatedAt *time.Time            `json:"created_at"`
}

// Fetch returns one conversation in full.
func Fetch(st *store.Store, input FetchInput) (*FetchOutput, error) {
	username, err := ValidateUsername(input.Username)
	if err != nil {
		return nil, err
	}
	if input.Subject == "" && input.ConversationID == "" {
		return nil, errors.NewInvalidRequest("must specify either animal or conversation_id")
	}

	output := &FetchOutput{}
	err = st.ViewConversations(func(doc conversation.Document) error {
		p := doc[username]
		var c *conversation.Conversation
		if input.Subject != "" {
			c = p.Find(input.Subject)
		} else {
			c = p.FindByID(input.ConversationID)
		}
		if c == nil {
			return errors.NewNotFound("conversation for " + username)
		}
		output.ID = c.ID
		output.Subject = c.Subject
		output.Scripts = c.Scripts
		output.Hooks = c.Hooks
		output.CreatedAt = c.CreatedAt
		return nil
	})
	if err != nil {
		return nil, err
	}
	return output, nil
}
