package ops

import (
	"testing"

	"hookline/internal/config"
	"hookline/internal/conversation"
	"hookline/internal/ledger"
	"hookline/internal/store"
)

func newTestStore(t *testing.T) *store.Store {
	t.Helper()
	st, err := openTestStore(t, config.DefaultConfig())
	if err != nil {
		t.Fatalf("store.Open failed: %v", err)
	}
	return st
}

func openTestStore(t *testing.T, cfg *config.Config) (*store.Store, error) {
	t.Helper()
	return store.Open(t.TempDir(), cfg)
}

func mustAddUser(t *testing.T, st *store.Store, username string, credits int) {
	t.Helper()
	if _, err := AddUser(st, AddUserInput{Username: username, Credits: credits}); err != nil {
		t.Fatalf("AddUser(%q) failed: %v", username, err)
	}
}

func userRecord(t *testing.T, st *store.Store, username string) *ledger.User {
	t.Helper()
	var got *ledger.User
	err := st.ViewLedger(func(doc *ledger.Document) error {
		got = doc.User(username)
		return nil
	})
	if err != nil {
		t.Fatalf("ViewLedger failed: %v", err)
	}
	return got
}

func fetchConversation(t *testing.T, st *store.Store, username, subject string) *conversation.Conversation {
	t.Helper()
	var got *conversation.Conversation
	err := st.ViewConversations(func(doc conversation.Document) error {
		got = doc[username].Find(subject)
		return nil
	})
	if err != nil {
		t.Fatalf("ViewConversations failed: %v", err)
	}
	return got
}

func TestValidateUsername(t *testing.T) {
	if _, err := ValidateUsername(""); err == nil {
		t.Error("empty username should be rejected")
	}
	if _, err := ValidateUsername("   "); err == nil {
		t.Error("whitespace username should be rejected")
	}
	got, err := ValidateUsername("  alice  ")
	if err != nil {
		t.Fatalf("ValidateUsername failed: %v", err)
	}
	if got != "alice" {
		t.Errorf("got %q, want trimmed %q", got, "alice")
	}
}

func TestValidateSubject(t *testing.T) {
	if _, err := ValidateSubject(""); err == nil {
		t.Error("empty subject should be rejected")
	}
	got, err := ValidateSubject(" Panda ")
	if err != nil {
		t.Fatalf("ValidateSubject failed: %v", err)
	}
	if got != "Panda" {
		t.Errorf("got %q, want %q (casing preserved)", got, "Panda")
	}
}
