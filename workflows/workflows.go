// Package workflows implements the asset lifecycle operations: creation,
// updates, custody slips, transfers, waste certification, inspection,
// requisition fulfillment and physical counts.
//
// Every mutating operation runs inside a single store transaction. The
// operation loads its records through the transaction handle, checks its
// preconditions against those in-transaction reads, mints any document
// number through the atomic sequence counter, appends audit entries via
// the ledger diff, and persists everything together. On any error the
// whole set of changes rolls back; callers see the records exactly as
// they were before the call.
package workflows

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"gso/models"
	"gso/store"
)

// Actor identifies the authenticated user a mutation runs on behalf of.
// Authorization happens at the routing layer; the core only uses the
// actor for audit attribution.
type Actor struct {
	Name   string
	Office string
	Role   string
}

// Notifier is the outbound notification boundary. Delivery is
// fire-and-forget: a failed or absent notifier never fails the
// transaction that triggered it.
type Notifier interface {
	Notify(room, event string, payload interface{})
}

// Service executes the workflows against a store.
type Service struct {
	store    store.Store
	notifier Notifier
	now      func() time.Time
}

// New builds a workflow service. notifier may be nil.
func New(st store.Store, notifier Notifier) *Service {
	return &Service{store: st, notifier: notifier, now: time.Now}
}

// SetClock overrides the time source. Tests use this to pin document
// numbers and history dates.
func (s *Service) SetClock(fn func() time.Time) { s.now = fn }

func (s *Service) notify(room, event string, payload interface{}) {
	if s.notifier == nil {
		return
	}
	s.notifier.Notify(room, event, payload)
}

// validateCustodian checks the custodian fields and resolves the office
// against the office registry inside the transaction.
func validateCustodian(ctx context.Context, tx store.Tx, c models.Custodian) (*models.Office, error) {
	if c.Name == "" {
		return nil, Validationf("custodian name is required")
	}
	if c.Office == "" {
		return nil, Validationf("custodian office is required")
	}
	office, err := tx.GetOfficeByName(ctx, c.Office)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, Validationf("custodian office %q does not exist", c.Office)
		}
		return nil, fmt.Errorf("resolving office %q: %w", c.Office, err)
	}
	return office, nil
}

// loadAssets fetches every asset in order, wrapping missing IDs with
// enough context for the caller's error message.
func loadAssets(ctx context.Context, tx store.Tx, ids []primitive.ObjectID) ([]*models.Asset, error) {
	assets := make([]*models.Asset, 0, len(ids))
	for _, id := range ids {
		a, err := tx.GetAsset(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("asset %s: %w", id.Hex(), err)
		}
		assets = append(assets, a)
	}
	return assets, nil
}
