package ops

import (
	"hookline/internal/conversation"
	"hookline/internal/store"
)

// WipeInput contains parameters for the Wipe operation.
type WipeInput struct {
	Username string

	// All wipes every partition. Admin-only at the surfaces; Username is
	// ignored when set.
	All bool
}

// WipeOutput contains the result of the Wipe operation.
type WipeOutput struct {
	ConversationsRemoved int `json:"conversations_removed"`
}

// Wipe deletes an owner's conversation partition, or every partition when
// All is set. Wiping an owner with no partition removes nothing and is not
// an error.
func Wipe(st *store.Store, input WipeInput) (*WipeOutput, error) {
	output := &WipeOutput{}

	if input.All {
		err := st.UpdateConversations(func(doc conversation.Document) error {
			for name, p := range doc {
				if p != nil {
					output.ConversationsRemoved += len(p.Conversations)
				}
				delete(doc, name)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
		return output, nil
	}

	username, err := ValidateUsername(input.Username)
	if err != nil {
		return nil, err
	}
	err = st.UpdateConversations(func(doc conversation.Document) error {
		if p := doc[username]; p != nil {
			output.ConversationsRemoved = len(p.Conversations)
		}
		delete(doc, username)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return output, nil
}
