package ops

import (
	"crypto/subtle"
	"time"

	"hookline/internal/config"
	"hookline/internal/errors"
	"hookline/internal/ledger"
	"hookline/internal/store"
)

// LoginInput contains parameters for the Login operation.
type LoginInput struct {
	Username string
	Password string
}

// LoginOutput contains the result of the Login operation.
type LoginOutput struct {
	Username string `json:"username"`
	Admin    bool   `json:"admin"`
	Credits  int    `json:"credits"`
}

// AuthenticateAdmin reports whether the credentials match the
// environment-provided admin identity. Always false when no admin identity is
// configured. Comparisons are constant-time.
func AuthenticateAdmin(cfg *config.Config, username, password string) bool {
	if cfg.AdminUsername == "" || cfg.AdminPassword == "" {
		return false
	}
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(cfg.AdminUsername)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(password), []byte(cfg.AdminPassword)) == 1
	return userOK && passOK
}

// Login authenticates the caller, checking the admin identity first and the
// shared-password ledger second. A successful non-admin login stamps
// last_login. Unknown users and wrong passwords both come back as NOT_FOUND
// so the caller cannot probe which usernames exist.
func Login(st *store.Store, cfg *config.Config, input LoginInput) (*LoginOutput, error) {
	username, err := ValidateUsername(input.Username)
	if err != nil {
		return nil, err
	}

	if AuthenticateAdmin(cfg, username, input.Password) {
		return &LoginOutput{Username: username, Admin: true}, nil
	}

	output := &LoginOutput{Username: username}
	err = st.UpdateLedger(func(doc *ledger.Document) error {
		u := doc.User(username)
		if u == nil {
			return errors.NewNotFound("user " + username)
		}
		if subtle.ConstantTimeCompare([]byte(input.Password), []byte(doc.GlobalPassword)) != 1 {
			return errors.NewNotFound("user " + username)
		}
		now := time.Now()
		u.LastLogin = &now
		output.Credits = u.Credits
		return nil
	})
	if err != nil {
		return nil, err
	}
	return output, nil
}
