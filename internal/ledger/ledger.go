// Package ledger defines the persisted credential and credit-ledger document:
// one shared password for all non-admin users plus per-user balances and
// lifetime usage counters.
package ledger

import "time"

// User is a single ledger record, keyed by username in the document.
type User struct {
	// Credits is the spendable balance. Never negative: a debit that would
	// overdraw must not be applied.
	Credits int `json:"credits"`

	// CreatedAt is set once when the record is created.
	CreatedAt *time.Time `json:"created_at"`

	// LastLogin is set on every successful login, null until the first.
	LastLogin *time.Time `json:"last_login"`

	// LastActivity is set on every successful credit deduction, null until
	// the first.
	LastActivity *time.Time `json:"last_activity"`

	// TotalScripts and TotalHooks are monotonically non-decreasing lifetime
	// counters, incremented on successful paid generations.
	TotalScripts int `json:"total_scripts"`
	TotalHooks   int `json:"total_hooks"`
}

// Document is the whole ledger as persisted: the shared global password and
// the username → record mapping. It is loaded and rewritten in full on every
// operation.
type Document struct {
	GlobalPassword string           `json:"global_password"`
	Users          map[string]*User `json:"users"`
}

// NewDocument returns an empty ledger with the given shared password.
func NewDocument(globalPassword string) *Document {
	return &Document{
		GlobalPassword: globalPassword,
		Users:          make(map[string]*User),
	}
}

// User returns the record for username, or nil if unknown.
func (d *Document) User(username string) *User {
	if d.Users == nil {
		return nil
	}
	return d.Users[username]
}

// Credits returns the balance for username, or 0 if unknown.
func (d *Document) Credits(username string) int {
	u := d.User(username)
	if u == nil {
		return 0
	}
	return u.Credits
}
