// workflows/transfer.go
package workflows

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"gso/ledger"
	"gso/models"
	"gso/sequence"
	"gso/store"
)

// TransferInput moves a batch of assets from their shared current
// custodian to a new one under a single PTR.
type TransferInput struct {
	AssetIDs     []primitive.ObjectID
	NewCustodian models.Custodian
	TransferDate time.Time
}

// Transfer mints a PTR, snapshots the assets into it, updates each
// asset's custodian in place and appends a "Transfer" entry per asset.
// The batch invariant: every asset must share an identical current
// custodian and office, otherwise the whole transfer is rejected naming
// the mismatch. Atomic.
func (s *Service) Transfer(ctx context.Context, actor Actor, in TransferInput) (*models.Document, error) {
	if len(in.AssetIDs) == 0 {
		return nil, Validationf("asset list is empty")
	}
	if in.TransferDate.IsZero() {
		return nil, Validationf("transfer date is required")
	}

	now := s.now()
	var doc *models.Document
	var room string

	err := s.store.InTx(ctx, func(tx store.Tx) error {
		if _, err := validateCustodian(ctx, tx, in.NewCustodian); err != nil {
			return err
		}
		assets, err := loadAssets(ctx, tx, in.AssetIDs)
		if err != nil {
			return err
		}

		from := assets[0].Custodian
		for _, a := range assets {
			if a.Status == models.StatusDisposed {
				return Preconditionf("asset %s is disposed and cannot be transferred", a.PropertyNumber)
			}
			if a.Custodian.Name != from.Name || a.Custodian.Office != from.Office {
				return Preconditionf(
					"assets have different current custodians: %s is held by %s (%s), %s by %s (%s)",
					assets[0].PropertyNumber, from.Name, from.Office,
					a.PropertyNumber, a.Custodian.Name, a.Custodian.Office)
			}
		}

		number, err := sequence.NextDocumentNumber(ctx, tx, models.DocPTR, now)
		if err != nil {
			return err
		}

		to := in.NewCustodian
		fromCopy := from
		doc = &models.Document{
			Kind:          models.DocPTR,
			Number:        number,
			Date:          now,
			Issuer:        actor.Name,
			Assets:        snapshotAssets(assets),
			Custodian:     &to,
			FromCustodian: &fromCopy,
			TransferDate:  in.TransferDate,
			CreatedAt:     now,
		}
		if err := tx.InsertDocument(ctx, doc); err != nil {
			return fmt.Errorf("document %s: %w", number, err)
		}

		for _, a := range assets {
			a.Custodian = in.NewCustodian
			details := fmt.Sprintf("Transferred from %s (%s) to %s (%s) under %s",
				from.Name, from.Office, in.NewCustodian.Name, in.NewCustodian.Office, number)
			a.History = append(a.History, ledger.Entry("Transfer", details, actor.Name, now))
			a.UpdatedAt = now
			if err := tx.UpdateAsset(ctx, a); err != nil {
				return fmt.Errorf("asset %s: %w", a.PropertyNumber, err)
			}
		}
		room = in.NewCustodian.Office
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.notify(room, "document_issued", doc)
	return doc, nil
}
