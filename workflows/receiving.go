// workflows/receiving.go
package workflows

import (
	"context"
	"fmt"

	"gso/models"
	"gso/sequence"
	"gso/store"
)

// ReceivingInput records a supplier delivery ahead of asset/stock
// registration.
type ReceivingInput struct {
	Supplier string
	Items    []models.ReceivedItem
}

// CreateReceivingReport mints an RR documenting delivered items. The
// report is immutable once created.
func (s *Service) CreateReceivingReport(ctx context.Context, actor Actor, in ReceivingInput) (*models.Document, error) {
	if in.Supplier == "" {
		return nil, Validationf("supplier is required")
	}
	if len(in.Items) == 0 {
		return nil, Validationf("item list is empty")
	}
	for _, it := range in.Items {
		if it.Description == "" {
			return nil, Validationf("received item description is required")
		}
		if it.Quantity <= 0 {
			return nil, Validationf("received quantity for %q must be positive", it.Description)
		}
	}

	now := s.now()
	var doc *models.Document

	err := s.store.InTx(ctx, func(tx store.Tx) error {
		number, err := sequence.NextDocumentNumber(ctx, tx, models.DocRR, now)
		if err != nil {
			return err
		}
		doc = &models.Document{
			Kind:          models.DocRR,
			Number:        number,
			Date:          now,
			Issuer:        actor.Name,
			Supplier:      in.Supplier,
			ReceivedItems: in.Items,
			CreatedAt:     now,
		}
		if err := tx.InsertDocument(ctx, doc); err != nil {
			return fmt.Errorf("document %s: %w", number, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return doc, nil
}
