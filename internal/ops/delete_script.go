package ops

import (
	"fmt"

	"hookline/internal/conversation"
	"hookline/internal/errors"
	"hookline/internal/store"
)

// DeleteScriptInput contains parameters for the DeleteScript operation.
type DeleteScriptInput struct {
	Username string
	Subject  string
	Index    int
}

// DeleteScriptOutput contains the result of the DeleteScript operation.
type DeleteScriptOutput struct {
	ConversationID string `json:"conversation_id"`
	Remaining      int    `json:"remaining"`
}

// DeleteScript removes the script at index from the (username, subject)
// conversation. Later scripts shift down one position.
func DeleteScript(st *store.Store, input DeleteScriptInput) (*DeleteScriptOutput, error) {
	username, err := ValidateUsername(input.Username)
	if err != nil {
		return nil, err
	}
	subject, err := ValidateSubject(input.Subject)
	if err != nil {
		return nil, err
	}

	output := &DeleteScriptOutput{}
	err = st.UpdateConversations(func(doc conversation.Document) error {
		c := doc[username].Find(subject)
		if c == nil {
			return errors.NewNotFound("conversation for " + subject)
		}
		if input.Index < 0 || input.Index >= len(c.Scripts) {
			return errors.NewNotFound(fmt.Sprintf("script %d in %s", input.Index, c.ID))
		}
		c.Scripts = append(c.Scripts[:input.Index], c.Scripts[input.Index+1:]...)
		output.ConversationID = c.ID
		output.Remaining = len(c.Scripts)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return output, nil
}
