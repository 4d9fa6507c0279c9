// workflows/property.go
//
// Immovable properties share the movable lifecycle concepts: sequence-
// derived identity, diff-based history, soft disposal.
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

// CreatePropertyInput carries the fields of a new immovable property.
type CreatePropertyInput struct {
	Name            string
	Description     string
	Classification  string
	Location        string
	AcquisitionDate time.Time
	AcquisitionCost float64
	FundSource      string
	UsefulLife      int
	SalvageValue    float64
	Condition       string
	Remarks         string
	Status          string
	Custodian       models.Custodian
	Structures      []models.StructuralRecord
}

// CreateProperty registers an immovable property with a sequence-derived
// property index number (PIN-{year}-{seq}).
func (s *Service) CreateProperty(ctx context.Context, actor Actor, in CreatePropertyInput) (*models.Property, error) {
	if in.Name == "" {
		return nil, Validationf("property name is required")
	}
	if in.Classification == "" {
		return nil, Validationf("property classification is required")
	}
	switch in.Status {
	case "", models.PropertyInUse, models.PropertyUnderConstruction, models.PropertyIdle:
	default:
		return nil, Validationf("initial status %q is not allowed at creation", in.Status)
	}

	now := s.now()
	var prop *models.Property

	err := s.store.InTx(ctx, func(tx store.Tx) error {
		if _, err := validateCustodian(ctx, tx, in.Custodian); err != nil {
			return err
		}
		seq, err := tx.NextSequence(ctx, sequence.DocumentKey("PIN", now.Year()), 1)
		if err != nil {
			return fmt.Errorf("allocating property index number: %w", err)
		}
		status := in.Status
		if status == "" {
			status = models.PropertyInUse
		}
		prop = &models.Property{
			PropertyIndexNumber: sequence.FormatDocumentNumber("PIN", now.Year(), seq),
			Name:                in.Name,
			Description:         in.Description,
			Classification:      in.Classification,
			Location:            in.Location,
			AcquisitionDate:     in.AcquisitionDate,
			AcquisitionCost:     in.AcquisitionCost,
			FundSource:          in.FundSource,
			UsefulLife:          in.UsefulLife,
			SalvageValue:        in.SalvageValue,
			Condition:           in.Condition,
			Remarks:             in.Remarks,
			Status:              status,
			Custodian:           in.Custodian,
			Structures:          in.Structures,
			CreatedAt:           now,
			UpdatedAt:           now,
		}
		prop.History = ledger.RecordPropertyMutation(nil, prop, actor.Name, "", now)
		return tx.InsertProperty(ctx, prop)
	})
	if err != nil {
		return nil, err
	}
	return prop, nil
}

// UpdatePropertyInput lists the plainly editable property fields.
type UpdatePropertyInput struct {
	Name             *string
	Description      *string
	Classification   *string
	Location         *string
	AcquisitionDate  *time.Time
	AcquisitionCost  *float64
	FundSource       *string
	UsefulLife       *int
	SalvageValue     *float64
	ImpairmentLosses *float64
	Condition        *string
	Remarks          *string
	Status           *string
}

// UpdateProperty applies a field update with diff-derived history.
// Disposal goes through DisposeProperty.
func (s *Service) UpdateProperty(ctx context.Context, actor Actor, id primitive.ObjectID, in UpdatePropertyInput) (*models.Property, error) {
	if in.Status != nil {
		switch *in.Status {
		case models.PropertyDisposed:
			return nil, Validationf("status %q is set only by the disposal workflow", models.PropertyDisposed)
		case models.PropertyInUse, models.PropertyUnderConstruction, models.PropertyIdle, models.PropertyForDisposal:
		default:
			return nil, Validationf("unknown status %q", *in.Status)
		}
	}

	now := s.now()
	var updated *models.Property

	err := s.store.InTx(ctx, func(tx store.Tx) error {
		prop, err := tx.GetProperty(ctx, id)
		if err != nil {
			return fmt.Errorf("property %s: %w", id.Hex(), err)
		}
		if prop.Status == models.PropertyDisposed {
			return Preconditionf("property %s is disposed and can no longer be edited", prop.PropertyIndexNumber)
		}

		prev := prop.Snapshot()

		if in.Name != nil {
			prop.Name = *in.Name
		}
		if in.Description != nil {
			prop.Description = *in.Description
		}
		if in.Classification != nil {
			prop.Classification = *in.Classification
		}
		if in.Location != nil {
			prop.Location = *in.Location
		}
		if in.AcquisitionDate != nil {
			prop.AcquisitionDate = *in.AcquisitionDate
		}
		if in.AcquisitionCost != nil {
			prop.AcquisitionCost = *in.AcquisitionCost
		}
		if in.FundSource != nil {
			prop.FundSource = *in.FundSource
		}
		if in.UsefulLife != nil {
			prop.UsefulLife = *in.UsefulLife
		}
		if in.SalvageValue != nil {
			prop.SalvageValue = *in.SalvageValue
		}
		if in.ImpairmentLosses != nil {
			prop.ImpairmentLosses = *in.ImpairmentLosses
		}
		if in.Condition != nil {
			prop.Condition = *in.Condition
		}
		if in.Remarks != nil {
			prop.Remarks = *in.Remarks
		}
		if in.Status != nil {
			prop.Status = *in.Status
		}

		prop.History = append(prop.History, ledger.RecordPropertyMutation(&prev, prop, actor.Name, "", now)...)
		prop.UpdatedAt = now
		if err := tx.UpdateProperty(ctx, prop); err != nil {
			return err
		}
		updated = prop
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// DisposeProperty soft-deletes an immovable property.
func (s *Service) DisposeProperty(ctx context.Context, actor Actor, id primitive.ObjectID) (*models.Property, error) {
	now := s.now()
	var updated *models.Property

	err := s.store.InTx(ctx, func(tx store.Tx) error {
		prop, err := tx.GetProperty(ctx, id)
		if err != nil {
			return fmt.Errorf("property %s: %w", id.Hex(), err)
		}
		if prop.Status == models.PropertyDisposed {
			return Preconditionf("property %s is already disposed", prop.PropertyIndexNumber)
		}
		prev := prop.Snapshot()
		prop.Status = models.PropertyDisposed
		prop.History = append(prop.History, ledger.RecordPropertyMutation(&prev, prop, actor.Name, "Disposed", now)...)
		prop.UpdatedAt = now
		if err := tx.UpdateProperty(ctx, prop); err != nil {
			return err
		}
		updated = prop
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}
