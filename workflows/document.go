// workflows/document.go
package workflows

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"gso/models"
	"gso/store"
)

// CancelDocument flags a slip as cancelled. The cancellation flag is the
// only mutation a document ever accepts; the record itself and its asset
// snapshots stay untouched.
func (s *Service) CancelDocument(ctx context.Context, actor Actor, id primitive.ObjectID) (*models.Document, error) {
	now := s.now()
	var doc *models.Document

	err := s.store.InTx(ctx, func(tx store.Tx) error {
		var err error
		doc, err = tx.GetDocument(ctx, id)
		if err != nil {
			return fmt.Errorf("document %s: %w", id.Hex(), err)
		}
		if doc.Cancelled {
			return Preconditionf("document %s is already cancelled", doc.Number)
		}
		doc.Cancelled = true
		doc.CancelledBy = actor.Name
		doc.CancelledAt = now
		return tx.UpdateDocument(ctx, doc)
	})
	if err != nil {
		return nil, err
	}
	return doc, nil
}
