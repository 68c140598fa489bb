// Package credit coordinates paid work against the ledger: a pessimistic
// debit before the work runs, an additive refund when it fails. The debit and
// the refund are separate ledger writes, so a crash between them can lose a
// refund but never produce a free generation.
package credit

import (
	"context"
	"time"

	"hookline/internal/errors"
	"hookline/internal/ledger"
	"hookline/internal/logging"
	"hookline/internal/store"
)

// Coordinator wraps fallible paid work in a debit/refund pair.
type Coordinator struct {
	store *store.Store
	log   logging.Logger
}

// NewCoordinator creates a Coordinator over the given store.
func NewCoordinator(st *store.Store, log logging.Logger) *Coordinator {
	if log == nil {
		log = logging.Discard()
	}
	return &Coordinator{store: st, log: log}
}

// Charge debits cost credits from username, runs work, and refunds the debit
// if work returns an error. Admin callers bypass the ledger entirely: no
// debit, no refund, no balance requirement.
//
// The refund is additive against the balance at refund time, not a rollback
// to the pre-debit balance, so concurrent ledger writes between debit and
// refund are never clobbered.
func (c *Coordinator) Charge(ctx context.Context, username string, cost int, admin bool, work func(ctx context.Context) error) error {
	if admin || cost <= 0 {
		return work(ctx)
	}

	if err := c.debit(ctx, username, cost); err != nil {
		return err
	}

	if err := work(ctx); err != nil {
		c.refund(ctx, username, cost)
		return err
	}
	return nil
}

// debit atomically checks the balance and applies the deduction, stamping
// last_activity. Unknown users and overdrawing debits leave the ledger
// untouched.
func (c *Coordinator) debit(ctx context.Context, username string, cost int) error {
	return c.store.UpdateLedger(func(doc *ledger.Document) error {
		u := doc.User(username)
		if u == nil {
			return errors.NewNotFound("user " + username)
		}
		if u.Credits < cost {
			return errors.NewInsufficientCredits(username, cost, u.Credits)
		}
		u.Credits -= cost
		now := time.Now()
		u.LastActivity = &now
		c.log.Debug(ctx, "credits debited", "user", username, "cost", cost, "balance", u.Credits)
		return nil
	})
}

// refund returns cost credits after failed work. A refund that cannot be
// persisted is logged and swallowed: the work's own error is what the caller
// needs to see.
func (c *Coordinator) refund(ctx context.Context, username string, cost int) {
	err := c.store.UpdateLedger(func(doc *ledger.Document) error {
		u := doc.User(username)
		if u == nil {
			return errors.NewNotFound("user " + username)
		}
		u.Credits += cost
		c.log.Info(ctx, "credits refunded", "user", username, "cost", cost, "balance", u.Credits)
		return nil
	})
	if err != nil {
		c.log.Error(ctx, "credit refund failed", "user", username, "cost", cost, "error", err)
	}
}
