// workflows/requisition.go
package workflows

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"gso/models"
	"gso/sequence"
	"gso/store"
)

// RequisitionLineInput is one requested item.
type RequisitionLineInput struct {
	StockItemID primitive.ObjectID
	Quantity    int
}

// RequisitionInput opens a supply requisition.
type RequisitionInput struct {
	Requester models.Custodian
	Purpose   string
	Lines     []RequisitionLineInput
}

// CreateRequisition mints an RIS number and records the request in
// Pending state. Stock quantities are untouched until fulfillment.
func (s *Service) CreateRequisition(ctx context.Context, actor Actor, in RequisitionInput) (*models.Requisition, error) {
	if len(in.Lines) == 0 {
		return nil, Validationf("requisition has no lines")
	}
	for _, l := range in.Lines {
		if l.Quantity <= 0 {
			return nil, Validationf("requested quantity must be positive")
		}
	}

	now := s.now()
	var req *models.Requisition

	err := s.store.InTx(ctx, func(tx store.Tx) error {
		if _, err := validateCustodian(ctx, tx, in.Requester); err != nil {
			return err
		}

		lines := make([]models.RequisitionLine, 0, len(in.Lines))
		for _, l := range in.Lines {
			item, err := tx.GetStockItem(ctx, l.StockItemID)
			if err != nil {
				return fmt.Errorf("stock item %s: %w", l.StockItemID.Hex(), err)
			}
			lines = append(lines, models.RequisitionLine{
				StockItemID:       item.ID,
				StockNumber:       item.StockNumber,
				Description:       item.Description,
				QuantityRequested: l.Quantity,
			})
		}

		number, err := sequence.NextDocumentNumber(ctx, tx, models.DocRIS, now)
		if err != nil {
			return err
		}

		req = &models.Requisition{
			RISNumber: number,
			Requester: in.Requester,
			Purpose:   in.Purpose,
			Lines:     lines,
			Status:    models.RequisitionPending,
			CreatedAt: now,
			UpdatedAt: now,
		}
		return tx.InsertRequisition(ctx, req)
	})
	if err != nil {
		return nil, err
	}
	return req, nil
}

// IssueLine is the quantity actually issued against one requisition
// line; it may be less than the quantity requested, never more.
type IssueLine struct {
	StockItemID    primitive.ObjectID
	QuantityIssued int
}

// FulfillRequisition moves a requisition into a terminal state. For
// "Issued", every line's stock check, decrement and quantity-issued
// recording happen in one transaction; any failing line aborts the whole
// fulfillment with no partial decrements. Stock is decremented exactly
// once, here and nowhere else.
func (s *Service) FulfillRequisition(ctx context.Context, actor Actor, id primitive.ObjectID, target string, issues []IssueLine) (*models.Requisition, error) {
	if target != models.RequisitionIssued && target != models.RequisitionRejected {
		return nil, Validationf("target status must be %s or %s, got %q", models.RequisitionIssued, models.RequisitionRejected, target)
	}
	if target == models.RequisitionIssued && len(issues) == 0 {
		return nil, Validationf("issuance requires at least one issue line")
	}

	now := s.now()
	var req *models.Requisition

	err := s.store.InTx(ctx, func(tx store.Tx) error {
		var err error
		req, err = tx.GetRequisition(ctx, id)
		if err != nil {
			return fmt.Errorf("requisition %s: %w", id.Hex(), err)
		}
		if req.Terminal() {
			return Preconditionf("requisition %s is already %s", req.RISNumber, req.Status)
		}

		if target == models.RequisitionIssued {
			lineIdx := map[primitive.ObjectID]int{}
			for i, l := range req.Lines {
				lineIdx[l.StockItemID] = i
			}
			seen := map[primitive.ObjectID]bool{}
			for _, issue := range issues {
				i, ok := lineIdx[issue.StockItemID]
				if !ok {
					return Validationf("stock item %s is not on requisition %s", issue.StockItemID.Hex(), req.RISNumber)
				}
				if seen[issue.StockItemID] {
					return Validationf("duplicate issue line for %s", req.Lines[i].StockNumber)
				}
				seen[issue.StockItemID] = true
				if issue.QuantityIssued <= 0 {
					return Validationf("issued quantity for %s must be positive", req.Lines[i].StockNumber)
				}
				if issue.QuantityIssued > req.Lines[i].QuantityRequested {
					return Validationf("issuing %d exceeds the %d requested for %s",
						issue.QuantityIssued, req.Lines[i].QuantityRequested, req.Lines[i].StockNumber)
				}

				item, err := tx.GetStockItem(ctx, issue.StockItemID)
				if err != nil {
					return fmt.Errorf("stock item %s: %w", issue.StockItemID.Hex(), err)
				}
				if item.Quantity < issue.QuantityIssued {
					return Preconditionf("insufficient stock for %s: have %d, issuing %d",
						item.StockNumber, item.Quantity, issue.QuantityIssued)
				}
				item.Quantity -= issue.QuantityIssued
				item.UpdatedAt = now
				if err := tx.UpdateStockItem(ctx, item); err != nil {
					return err
				}
				req.Lines[i].QuantityIssued = issue.QuantityIssued
			}
		}

		req.Status = target
		req.ProcessedBy = actor.Name
		req.ProcessedAt = now
		req.UpdatedAt = now
		return tx.UpdateRequisition(ctx, req)
	})
	if err != nil {
		return nil, err
	}
	return req, nil
}

// CancelRequisition retires a pending requisition without touching
// stock.
func (s *Service) CancelRequisition(ctx context.Context, actor Actor, id primitive.ObjectID) (*models.Requisition, error) {
	now := s.now()
	var req *models.Requisition

	err := s.store.InTx(ctx, func(tx store.Tx) error {
		var err error
		req, err = tx.GetRequisition(ctx, id)
		if err != nil {
			return fmt.Errorf("requisition %s: %w", id.Hex(), err)
		}
		if req.Terminal() {
			return Preconditionf("requisition %s is already %s", req.RISNumber, req.Status)
		}
		req.Status = models.RequisitionCancelled
		req.ProcessedBy = actor.Name
		req.ProcessedAt = now
		req.UpdatedAt = now
		return tx.UpdateRequisition(ctx, req)
	})
	if err != nil {
		return nil, err
	}
	return req, nil
}
