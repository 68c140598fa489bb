package ops

import (
	"fmt"

	"hookline/internal/conversation"
	"hookline/internal/errors"
	"hookline/internal/store"
)

// UpdateHookInput contains parameters for the UpdateHook operation.
type UpdateHookInput struct {
	Username string
	Subject  string
	Index    int
	Content  string
}

// UpdateHookOutput contains the result of the UpdateHook operation.
type UpdateHookOutput struct {
	ConversationID string `json:"conversation_id"`
	Index          int    `json:"index"`
}

// UpdateHook replaces the hook-set at index in the (username, subject)
// conversation. Out-of-range indexes are rejected without mutation.
func UpdateHook(st *store.Store, input UpdateHookInput) (*UpdateHookOutput, error) {
	username, err := ValidateUsername(input.Username)
	if err != nil {
		return nil, err
	}
	subject, err := ValidateSubject(input.Subject)
	if err != nil {
		return nil, err
	}
	if input.Content == "" {
		return nil, errors.NewInvalidRequest("content is required")
	}

	output := &UpdateHookOutput{}
	err = st.UpdateConversations(func(doc conversation.Document) error {
		c := doc[username].Find(subject)
		if c == nil {
			return errors.NewNotFound("conversation for " + subject)
		}
		if input.Index < 0 || input.Index >= len(c.Hooks) {
			return errors.NewNotFound(fmt.Sprintf("hook %d in %s", input.Index, c.ID))
		}
		c.Hooks[input.Index] = conversation.Hook{Content: input.Content}
		output.ConversationID = c.ID
		output.Index = input.Index
		return nil
	})
	if err != nil {
		return nil, err
	}
	return output, nil
}
