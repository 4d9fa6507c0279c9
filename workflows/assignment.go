// workflows/assignment.go
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

// snapshotAssets captures the point-in-time copies a slip embeds. The
// copies never update if the live asset changes later; the document
// records what was true when it was issued.
func snapshotAssets(assets []*models.Asset) []models.AssetSnapshot {
	out := make([]models.AssetSnapshot, 0, len(assets))
	for _, a := range assets {
		out = append(out, models.AssetSnapshot{
			AssetID:         a.ID,
			PropertyNumber:  a.PropertyNumber,
			Description:     a.Description,
			AcquisitionCost: a.AcquisitionCost,
			AcquisitionDate: a.AcquisitionDate,
			Condition:       a.Condition,
			Remarks:         a.Remarks,
		})
	}
	return out
}

// AssignInput issues a custody slip (PAR or ICS) assigning assets to a
// custodian.
type AssignInput struct {
	Kind      string // models.DocPAR or models.DocICS
	Custodian models.Custodian
	AssetIDs  []primitive.ObjectID
}

// Assign creates the slip, links every asset to it, sets each asset's
// custodian and status to "In Use", and appends one "Assignment" entry
// per asset naming the slip number. Atomic across all assets and the
// document.
func (s *Service) Assign(ctx context.Context, actor Actor, in AssignInput) (*models.Document, error) {
	if in.Kind != models.DocPAR && in.Kind != models.DocICS {
		return nil, Validationf("custody slip kind must be %s or %s, got %q", models.DocPAR, models.DocICS, in.Kind)
	}
	if len(in.AssetIDs) == 0 {
		return nil, Validationf("asset list is empty")
	}

	now := s.now()
	var doc *models.Document

	err := s.store.InTx(ctx, func(tx store.Tx) error {
		if _, err := validateCustodian(ctx, tx, in.Custodian); err != nil {
			return err
		}
		assets, err := loadAssets(ctx, tx, in.AssetIDs)
		if err != nil {
			return err
		}
		for _, a := range assets {
			if a.Status == models.StatusDisposed {
				return Preconditionf("asset %s is disposed and cannot be assigned", a.PropertyNumber)
			}
		}

		number, err := sequence.NextDocumentNumber(ctx, tx, in.Kind, now)
		if err != nil {
			return err
		}

		custodian := in.Custodian
		doc = &models.Document{
			Kind:      in.Kind,
			Number:    number,
			Date:      now,
			Issuer:    actor.Name,
			Assets:    snapshotAssets(assets),
			Custodian: &custodian,
			CreatedAt: now,
		}
		if err := tx.InsertDocument(ctx, doc); err != nil {
			return fmt.Errorf("document %s: %w", number, err)
		}

		// Custody changes are logged with a single Assignment entry per
		// asset rather than a field diff.
		for _, a := range assets {
			a.Custodian = in.Custodian
			a.Status = models.StatusInUse
			if in.Kind == models.DocPAR {
				a.AssignedPAR = number
				a.AssignedICS = ""
			} else {
				a.AssignedICS = number
				a.AssignedPAR = ""
			}
			details := fmt.Sprintf("Assigned to %s (%s) under %s", in.Custodian.Name, in.Custodian.Office, number)
			a.History = append(a.History, ledger.Entry("Assignment", details, actor.Name, now))
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
	s.notify(in.Custodian.Office, "document_issued", doc)
	return doc, nil
}
