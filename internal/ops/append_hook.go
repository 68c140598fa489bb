package ops

import (
	"hookline/internal/conversation"
	"hookline/internal/errors"
	"hookline/internal/store"
)

// AppendHookInput contains parameters for the AppendHook operation.
type AppendHookInput struct {
	Username       string
	ConversationID string
	Content        string
}

// AppendHookOutput contains the result of the AppendHook operation.
type AppendHookOutput struct {
	ConversationID string `json:"conversation_id"`
	Subject        string `json:"animal"`
	Index          int    `json:"index"` // position of the new hook-set
}

// AppendHook adds a hook-set to an existing conversation addressed by id.
// Unlike AppendScript there is no lazy creation: hooks belong to scripts that
// already exist.
func AppendHook(st *store.Store, input AppendHookInput) (*AppendHookOutput, error) {
	username, err := ValidateUsername(input.Username)
	if err != nil {
		return nil, err
	}
	if input.ConversationID == "" {
		return nil, errors.NewInvalidRequest("conversation_id is required")
	}
	if input.Content == "" {
		return nil, errors.NewInvalidRequest("content is required")
	}

	output := &AppendHookOutput{}
	err = st.UpdateConversations(func(doc conversation.Document) error {
		c := doc[username].FindByID(input.ConversationID)
		if c == nil {
			return errors.NewNotFound("conversation " + input.ConversationID)
		}
		c.Hooks = append(c.Hooks, conversation.Hook{Content: input.Content})
		output.ConversationID = c.ID
		output.Subject = c.Subject
		output.Index = len(c.Hooks) - 1
		return nil
	})
	if err != nil {
		return nil, err
	}
	return output, nil
}
