package ops

import (
	"hookline/internal/ledger"
	"hookline/internal/store"
)

// IncrementScriptCount bumps a user's lifetime script counter. Unknown users
// (the admin identity has no ledger record) are a silent no-op: usage
// counters never fail a generation that already succeeded.
func IncrementScriptCount(st *store.Store, username string) error {
	return incrementCounter(st, username, func(u *ledger.User) {
		u.TotalScripts++
	})
}

// IncrementHookCount bumps a user's lifetime hook counter. Same soft-failure
// contract as IncrementScriptCount.
func IncrementHookCount(st *store.Store, username string) error {
	return incrementCounter(st, username, func(u *ledger.User) {
		u.TotalHooks++
	})
}

func incrementCounter(st *store.Store, username string, bump func(*ledger.User)) error {
	return st.UpdateLedger(func(doc *ledger.Document) error {
		u := doc.User(username)
		if u == nil {
			return nil
		}
		bump(u)
		return nil
	})
}
