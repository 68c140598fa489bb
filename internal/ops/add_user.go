package ops

import (
	"time"

	"hookline/internal/errors"
	"hookline/internal/ledger"
	"hookline/internal/store"
)

// AddUserInput contains parameters for the AddUser operation.
type AddUserInput struct {
	Username string
	Credits  int // starting balance
}

// AddUserOutput contains the result of the AddUser operation.
type AddUserOutput struct {
	Username string `json:"username"`
	Credits  int    `json:"credits"`
}

// AddUser creates a ledger record with the given starting balance.
// Duplicate usernames are rejected without touching the existing record.
func AddUser(st *store.Store, input AddUserInput) (*AddUserOutput, error) {
	username, err := ValidateUsername(input.Username)
	if err != nil {
		return nil, err
	}
	if input.Credits < 0 {
		return nil, errors.NewInvalidRequest("credits must not be negative")
	}

	err = st.UpdateLedger(func(doc *ledger.Document) error {
		if doc.User(username) != nil {
			return errors.NewUserExists(username)
		}
		now := time.Now()
		doc.Users[username] = &ledger.User{
			Credits:   input.Credits,
			CreatedAt: &now,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &AddUserOutput{Username: username, Credits: input.Credits}, nil
}
