package ops

import (
	"hookline/internal/errors"
	"hookline/internal/ledger"
	"hookline/internal/store"
)

// UpdatePasswordInput contains parameters for the UpdateGlobalPassword
// operation.
type UpdatePasswordInput struct {
	Password string
}

// UpdatePasswordOutput contains the result of the UpdateGlobalPassword
// operation.
type UpdatePasswordOutput struct {
	Updated bool `json:"updated"`
}

// UpdateGlobalPassword replaces the shared password for all non-admin users.
// Existing sessions are unaffected; the next login uses the new password.
func UpdateGlobalPassword(st *store.Store, input UpdatePasswordInput) (*UpdatePasswordOutput, error) {
	if input.Password == "" {
		return nil, errors.NewInvalidRequest("password is required")
	}

	err := st.UpdateLedger(func(doc *ledger.Document) error {
		doc.GlobalPassword = input.Password
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &UpdatePasswordOutput{Updated: true}, nil
}
