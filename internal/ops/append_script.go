package ops

import (
	"hookline/internal/conversation"
	"hookline/internal/errors"
	"hookline/internal/store"
)

// AppendScriptInput contains parameters for the AppendScript operation.
type AppendScriptInput struct {
	Username string
	Subject  string
	Content  string
}

// AppendScriptOutput contains the result of the AppendScript operation.
type AppendScriptOutput struct {
	ConversationID string `json:"conversation_id"`
	Subject        string `json:"animal"`
	Index          int    `json:"index"` // position of the new script
	CharCount      int    `json:"char_count"`
}

// AppendScript adds a script to the (username, subject) conversation,
// creating the conversation when absent. char_count is derived from the
// content at insertion time.
func AppendScript(st *store.Store, input AppendScriptInput) (*AppendScriptOutput, error) {
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

	output := &AppendScriptOutput{}
	err = st.UpdateConversations(func(doc conversation.Document) error {
		c, _, err := findOrCreate(doc, username, subject)
		if err != nil {
			return err
		}
		c.Scripts = append(c.Scripts, conversation.Script{
			Content:   input.Content,
			CharCount: conversation.CountChars(input.Content),
		})
		output.ConversationID = c.ID
		output.Subject = c.Subject
		output.Index = len(c.Scripts) - 1
		output.CharCount = c.Scripts[output.Index].CharCount
		return nil
	})
	if err != nil {
		return nil, err
	}
	return output, nil
}
