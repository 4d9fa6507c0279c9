// workflows/waste.go
package workflows

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"gso/ledger"
	"gso/models"
	"gso/sequence"
	"gso/store"
)

// CertifyWaste issues an Appendix-68 waste certification: the assets are
// snapshotted into the report and their status set to Waste, with a
// "Certified as Waste" entry each. Assets already disposed are rejected;
// Waste precedes formal disposal, never follows it. Atomic.
func (s *Service) CertifyWaste(ctx context.Context, actor Actor, assetIDs []primitive.ObjectID) (*models.Document, error) {
	if len(assetIDs) == 0 {
		return nil, Validationf("asset list is empty")
	}

	now := s.now()
	var doc *models.Document

	err := s.store.InTx(ctx, func(tx store.Tx) error {
		assets, err := loadAssets(ctx, tx, assetIDs)
		if err != nil {
			return err
		}
		for _, a := range assets {
			if a.Status == models.StatusDisposed {
				return Preconditionf("asset %s is already disposed and cannot be certified as waste", a.PropertyNumber)
			}
			if a.Status == models.StatusWaste {
				return Preconditionf("asset %s is already certified as waste", a.PropertyNumber)
			}
		}

		number, err := sequence.NextDocumentNumber(ctx, tx, models.DocA68, now)
		if err != nil {
			return err
		}

		doc = &models.Document{
			Kind:      models.DocA68,
			Number:    number,
			Date:      now,
			Issuer:    actor.Name,
			Assets:    snapshotAssets(assets),
			CreatedAt: now,
		}
		if err := tx.InsertDocument(ctx, doc); err != nil {
			return fmt.Errorf("document %s: %w", number, err)
		}

		for _, a := range assets {
			a.Status = models.StatusWaste
			details := fmt.Sprintf("Certified as waste under %s", number)
			a.History = append(a.History, ledger.Entry("Certified as Waste", details, actor.Name, now))
			a.UpdatedAt = now
			if err := tx.UpdateAsset(ctx, a); err != nil {
				return fmt.Errorf("asset %s: %w", a.PropertyNumber, err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return doc, nil
}

// Inspect issues an IIRUP documenting inspection findings. The report
// snapshots each asset including its current condition; asset status is
// untouched, inspection is informational only. Atomic.
func (s *Service) Inspect(ctx context.Context, actor Actor, assetIDs []primitive.ObjectID) (*models.Document, error) {
	if len(assetIDs) == 0 {
		return nil, Validationf("asset list is empty")
	}

	now := s.now()
	var doc *models.Document

	err := s.store.InTx(ctx, func(tx store.Tx) error {
		assets, err := loadAssets(ctx, tx, assetIDs)
		if err != nil {
			return err
		}

		number, err := sequence.NextDocumentNumber(ctx, tx, models.DocIIRUP, now)
		if err != nil {
			return err
		}

		doc = &models.Document{
			Kind:      models.DocIIRUP,
			Number:    number,
			Date:      now,
			Issuer:    actor.Name,
			Assets:    snapshotAssets(assets),
			CreatedAt: now,
		}
		if err := tx.InsertDocument(ctx, doc); err != nil {
			return fmt.Errorf("document %s: %w", number, err)
		}

		for _, a := range assets {
			details := fmt.Sprintf("Inspected under %s", number)
			a.History = append(a.History, ledger.Entry("Inspection", details, actor.Name, now))
			a.UpdatedAt = now
			if err := tx.UpdateAsset(ctx, a); err != nil {
				return fmt.Errorf("asset %s: %w", a.PropertyNumber, err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return doc, nil
}
