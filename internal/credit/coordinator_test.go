package credit

import (
	"context"
	"fmt"
	"testing"
	"time"

	"hookline/internal/config"
	"hookline/internal/errors"
	"hookline/internal/ledger"
	"hookline/internal/store"
)

func testStore(t *testing.T) *store.Store {
	t.Helper()
	st, err := store.Open(t.TempDir(), config.DefaultConfig())
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	return st
}

func seedUser(t *testing.T, st *store.Store, username string, credits int) {
	t.Helper()
	err := st.UpdateLedger(func(doc *ledger.Document) error {
		now := time.Now()
		doc.Users[username] = &ledger.User{Credits: credits, CreatedAt: &now}
		return nil
	})
	if err != nil {
		t.Fatalf("seed failed: %v", err)
	}
}

func balance(t *testing.T, st *store.Store, username string) int {
	t.Helper()
	var got int
	err := st.ViewLedger(func(doc *ledger.Document) error {
		got = doc.Credits(username)
		return nil
	})
	if err != nil {
		t.Fatalf("ViewLedger failed: %v", err)
	}
	return got
}

func TestCharge_DebitsOnSuccess(t *testing.T) {
	st := testStore(t)
	seedUser(t, st, "alice", 5)
	coord := NewCoordinator(st, nil)

	ran := false
	err := coord.Charge(context.Background(), "alice", 2, false, func(ctx context.Context) error {
		ran = true
		return nil
	})
	if err != nil {
		t.Fatalf("Charge failed: %v", err)
	}
	if !ran {
		t.Fatal("work did not run")
	}
	if got := balance(t, st, "alice"); got != 3 {
		t.Errorf("balance = %d, want 3", got)
	}
}

func TestCharge_RefundsOnFailure(t *testing.T) {
	st := testStore(t)
	seedUser(t, st, "alice", 5)
	coord := NewCoordinator(st, nil)

	boom := fmt.Errorf("upstream broke")
	err := coord.Charge(context.Background(), "alice", 2, false, func(ctx context.Context) error {
		// Debit must already be visible while the work runs.
		if got := balance(t, st, "alice"); got != 3 {
			t.Errorf("mid-work balance = %d, want 3", got)
		}
		return boom
	})
	if err != boom {
		t.Fatalf("Charge error = %v, want work error", err)
	}
	if got := balance(t, st, "alice"); got != 5 {
		t.Errorf("balance after refund = %d, want 5", got)
	}
}

func TestCharge_RefundIsAdditive(t *testing.T) {
	st := testStore(t)
	seedUser(t, st, "alice", 5)
	coord := NewCoordinator(st, nil)

	err := coord.Charge(context.Background(), "alice", 2, false, func(ctx context.Context) error {
		// An admin top-up lands between debit and refund.
		topup := st.UpdateLedger(func(doc *ledger.Document) error {
			doc.Users["alice"].Credits = 10
			return nil
		})
		if topup != nil {
			t.Fatalf("top-up failed: %v", topup)
		}
		return fmt.Errorf("upstream broke")
	})
	if err == nil {
		t.Fatal("Charge should propagate the work error")
	}
	if got := balance(t, st, "alice"); got != 12 {
		t.Errorf("balance = %d, want 12 (refund added to current balance)", got)
	}
}

func TestCharge_InsufficientCredits(t *testing.T) {
	st := testStore(t)
	seedUser(t, st, "alice", 1)
	coord := NewCoordinator(st, nil)

	ran := false
	err := coord.Charge(context.Background(), "alice", 2, false, func(ctx context.Context) error {
		ran = true
		return nil
	})
	if !errors.Is(err, errors.ErrInsufficientCredits) {
		t.Fatalf("error = %v, want INSUFFICIENT_CREDITS", err)
	}
	if ran {
		t.Error("work must not run without a committed debit")
	}
	if got := balance(t, st, "alice"); got != 1 {
		t.Errorf("balance = %d, want 1 (untouched)", got)
	}
}

func TestCharge_UnknownUser(t *testing.T) {
	st := testStore(t)
	coord := NewCoordinator(st, nil)

	err := coord.Charge(context.Background(), "ghost", 1, false, func(ctx context.Context) error {
		t.Fatal("work must not run")
		return nil
	})
	if !errors.Is(err, errors.ErrNotFound) {
		t.Fatalf("error = %v, want NOT_FOUND", err)
	}
}

func TestCharge_AdminBypassesLedger(t *testing.T) {
	st := testStore(t)
	coord := NewCoordinator(st, nil)

	ran := false
	err := coord.Charge(context.Background(), "admin", 2, true, func(ctx context.Context) error {
		ran = true
		return nil
	})
	if err != nil {
		t.Fatalf("Charge failed: %v", err)
	}
	if !ran {
		t.Fatal("work did not run")
	}

	// No ledger record is created or touched for the admin.
	err = st.ViewLedger(func(doc *ledger.Document) error {
		if doc.User("admin") != nil {
			t.Error("admin must not get a ledger record")
		}
		return nil
	})
	if err != nil {
		t.Fatalf("ViewLedger failed: %v", err)
	}
}

func TestCharge_StampsLastActivity(t *testing.T) {
	st := testStore(t)
	seedUser(t, st, "alice", 5)
	coord := NewCoordinator(st, nil)

	err := coord.Charge(context.Background(), "alice", 1, false, func(ctx context.Context) error {
		return nil
	})
	if err != nil {
		t.Fatalf("Charge failed: %v", err)
	}
	err = st.ViewLedger(func(doc *ledger.Document) error {
		u := doc.User("alice")
		if u.LastActivity == nil {
			t.Error("last_activity not stamped by debit")
		}
		return nil
	})
	if err != nil {
		t.Fatalf("ViewLedger failed: %v", err)
	}
}
