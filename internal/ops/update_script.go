package ops

import (
	"fmt"

	"hookline/internal/conversation"
	"hookline/internal/errors"
	"hookline/internal/store"
)

// UpdateScriptInput contains parameters for the UpdateScript operation.
type UpdateScriptInput struct {
	Username string
	Subject  string
	Index    int
	Content  string
}

// UpdateScriptOutput contains the result of the UpdateScript operation.
type UpdateScriptOutput struct {
	ConversationID string `json:"conversation_id"`
	Index          int    `json:"index"`
	CharCount      int    `json:"char_count"`
}

// UpdateScript replaces the script at index in the (username, subject)
// conversation and recomputes its char_count. Out-of-range indexes are
// rejected without mutation.
func UpdateScript(st *store.Store, input UpdateScriptInput) (*UpdateScriptOutput, error) {
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

	output := &UpdateScriptOutput{}
	err = st.UpdateConversations(func(doc conversation.Document) error {
		c := doc[username].Find(subject)
		if c == nil {
			return errors.NewNotFound("conversation for " + subject)
		}
		if input.Index < 0 || input.Index >= len(c.Scripts) {
			return errors.NewNotFound(fmt.Sprintf("script %d in %s", input.Index, c.ID))
		}
		c.Scripts[input.Index] = conversation.Script{
			Content:   input.Content,
			CharCount: conversation.CountChars(input.Content),
		}
		output.ConversationID = c.ID
		output.Index = input.Index
		output.CharCount = c.Scripts[input.Index].CharCount
		return nil
	})
	if err != nil {
		return nil, err
	}
	return output, nil
}
