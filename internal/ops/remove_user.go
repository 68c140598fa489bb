package ops

import (
	"hookline/internal/conversation"
	"hookline/internal/errors"
	"hookline/internal/ledger"
	"hookline/internal/store"
)

// RemoveUserInput contains parameters for the RemoveUser operation.
type RemoveUserInput struct {
	Username string
}

// RemoveUserOutput contains the result of the RemoveUser operation.
type RemoveUserOutput struct {
	Username string `json:"username"`
	Removed  bool   `json:"removed"`
}

// RemoveUser deletes a ledger record and, best-effort, the user's
// conversation partition. A failed partition wipe does not undo the ledger
// removal; the orphaned partition ages out through retention.
func RemoveUser(st *store.Store, input RemoveUserInput) (*RemoveUserOutput, error) {
	username, err := ValidateUsername(input.Username)
	if err != nil {
		return nil, err
	}

	err = st.UpdateLedger(func(doc *ledger.Document) error {
		if doc.User(username) == nil {
			return errors.NewNotFound("user " + username)
		}
		delete(doc.Users, username)
		return nil
	})
	if err != nil {
		return nil, err
	}

	_ = st.UpdateConversations(func(doc conversation.Document) error {
		delete(doc, username)
		return nil
	})

	return &RemoveUserOutput{Username: username, Removed: true}, nil
}
