package ops

import (
	"fmt"

	"hookline/internal/conversation"
	"hookline/internal/errors"
	"hookline/internal/store"
)

// DeleteHookInput contains parameters for the DeleteHook operation.
type DeleteHookInput struct {
	Username string
	Subject  string
	Index    int
}

// DeleteHookOutput contains the result of the DeleteHook operation.
type DeleteHookOutput struct {
	ConversationID string `json:"conversation_id"`
	Remaining      int    `json:"remaining"`
}

// DeleteHook removes the hook-set at index from the (username, subject)
// conversation. Later hook-sets shift down one position.
func DeleteHook(st *store.Store, input DeleteHookInput) (*DeleteHookOutput, error) {
	username, err := ValidateUsername(input.Username)
	if err != nil {
		return nil, err
	}
	subject, err := ValidateSubject(input.Subject)
	if err != nil {
		return nil, err
	}

	output := &DeleteHookOutput{}
	err = st.UpdateConversations(func(doc conversation.Document) error {
		c := doc[username].Find(subject)
		if c == nil {
			return errors.NewNotFound("conversation for " + subject)
		}
		if input.Index < 0 || input.Index >= len(c.Hooks) {
			return errors.NewNotFound(fmt.Sprintf("hook %d in %s", input.Index, c.ID))
		}
		c.Hooks = append(c.Hooks[:input.Index], c.Hooks[input.Index+1:]...)
		output.ConversationID = c.ID
		output.Remaining = len(c.Hooks)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return output, nil
}
