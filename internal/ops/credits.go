package ops

import (
	"time"

	"hookline/internal/errors"
	"hookline/internal/ledger"
	"hookline/internal/store"
)

// GetCreditsInput contains parameters for the GetCredits operation.
type GetCreditsInput struct {
	Username string
}

// GetCreditsOutput contains the result of the GetCredits operation.
type GetCreditsOutput struct {
	Username string `json:"username"`
	Credits  int    `json:"credits"`
}

// GetCredits returns the balance for a user. Unknown users read as zero
// rather than an error.
func GetCredits(st *store.Store, input GetCreditsInput) (*GetCreditsOutput, error) {
	username, err := ValidateUsername(input.Username)
	if err != nil {
		return nil, err
	}

	output := &GetCreditsOutput{Username: username}
	err = st.ViewLedger(func(doc *ledger.Document) error {
		output.Credits = doc.Credits(username)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return output, nil
}

// SetCreditsInput contains parameters for the SetCredits operation.
type SetCreditsInput struct {
	Username string
	Credits  int
}

// SetCreditsOutput contains the result of the SetCredits operation.
type SetCreditsOutput struct {
	Username string `json:"username"`
	Credits  int    `json:"credits"`
}

// SetCredits overwrites a user's balance with an absolute value.
func SetCredits(st *store.Store, input SetCreditsInput) (*SetCreditsOutput, error) {
	username, err := ValidateUsername(input.Username)
	if err != nil {
		return nil, err
	}
	if input.Credits < 0 {
		return nil, errors.NewInvalidRequest("credits must not be negative")
	}

	err = st.UpdateLedger(func(doc *ledger.Document) error {
		u := doc.User(username)
		if u == nil {
			return errors.NewNotFound("user " + username)
		}
		u.Credits = input.Credits
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &SetCreditsOutput{Username: username, Credits: input.Credits}, nil
}

// DeductCreditsInput contains parameters for the DeductCredits operation.
type DeductCreditsInput struct {
	Username string
	Amount   int
}

// DeductCreditsOutput contains the result of the DeductCredits operation.
type DeductCreditsOutput struct {
	Username string `json:"username"`
	Credits  int    `json:"credits"` // balance after deduction
}

// DeductCredits subtracts from a user's balance. A deduction that would
// overdraw leaves the record untouched; a successful one stamps
// last_activity.
func DeductCredits(st *store.Store, input DeductCreditsInput) (*DeductCreditsOutput, error) {
	username, err := ValidateUsername(input.Username)
	if err != nil {
		return nil, err
	}
	if input.Amount <= 0 {
		return nil, errors.NewInvalidRequest("amount must be positive")
	}

	output := &DeductCreditsOutput{Username: username}
	err = st.UpdateLedger(func(doc *ledger.Document) error {
		u := doc.User(username)
		if u == nil {
			return errors.NewNotFound("user " + username)
		}
		if u.Credits < input.Amount {
			return errors.NewInsufficientCredits(username, input.Amount, u.Credits)
		}
		u.Credits -= input.Amount
		now := time.Now()
		u.LastActivity = &now
		output.Credits = u.Credits
		return nil
	})
	if err != nil {
		return nil, err
	}
	return output, nil
}
