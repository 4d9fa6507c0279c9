// workflows/asset.go
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

// CreateAssetInput carries the fields of a new movable asset. Status
// defaults to "In Use" when empty.
type CreateAssetInput struct {
	Description     string
	Category        string
	SubMajorGroup   string
	GLAccount       string
	AcquisitionDate time.Time
	AcquisitionCost float64
	FundSource      string
	UsefulLife      int
	SalvageValue    float64
	Condition       string
	Remarks         string
	Status          string
	Custodian       models.Custodian
}

func (in *CreateAssetInput) validate() error {
	if in.Description == "" {
		return Validationf("asset description is required")
	}
	if in.Category == "" {
		return Validationf("asset category is required")
	}
	if in.AcquisitionCost < 0 {
		return Validationf("acquisition cost must not be negative")
	}
	if in.SubMajorGroup == "" || in.GLAccount == "" {
		return Validationf("sub-major group and GL account codes are required for property numbering")
	}
	switch in.Status {
	case "", models.StatusInUse, models.StatusInStorage, models.StatusForRepair:
	default:
		return Validationf("initial status %q is not allowed at creation", in.Status)
	}
	return nil
}

// CreateAsset registers one movable asset, minting its property number
// from the atomic counter for its year+category+office prefix. The
// asset's history starts with exactly one "Created" entry.
func (s *Service) CreateAsset(ctx context.Context, actor Actor, in CreateAssetInput) (*models.Asset, error) {
	assets, err := s.BulkCreateAssets(ctx, actor, []CreateAssetInput{in})
	if err != nil {
		return nil, err
	}
	return assets[0], nil
}

// BulkCreateAssets registers a batch atomically. Inputs sharing a
// property-number prefix draw from one reserved counter block, so
// concurrent batches cannot interleave numbers.
func (s *Service) BulkCreateAssets(ctx context.Context, actor Actor, inputs []CreateAssetInput) ([]*models.Asset, error) {
	if len(inputs) == 0 {
		return nil, Validationf("asset list is empty")
	}
	for i := range inputs {
		if err := inputs[i].validate(); err != nil {
			return nil, err
		}
	}

	now := s.now()
	created := make([]*models.Asset, len(inputs))

	err := s.store.InTx(ctx, func(tx store.Tx) error {
		// Group inputs by numbering prefix; one block per group.
		type group struct {
			officeCode string
			indexes    []int
		}
		groups := map[string]*group{}
		order := []string{}
		for i, in := range inputs {
			office, err := validateCustodian(ctx, tx, in.Custodian)
			if err != nil {
				return err
			}
			key := sequence.PropertyKey(now.Year(), in.SubMajorGroup, in.GLAccount, office.Code)
			g, ok := groups[key]
			if !ok {
				g = &group{officeCode: office.Code}
				groups[key] = g
				order = append(order, key)
			}
			g.indexes = append(g.indexes, i)
		}

		for _, key := range order {
			g := groups[key]
			first := inputs[g.indexes[0]]
			numbers, err := sequence.NextPropertyNumbers(ctx, tx, now,
				first.SubMajorGroup, first.GLAccount, g.officeCode, len(g.indexes))
			if err != nil {
				return err
			}
			for j, idx := range g.indexes {
				in := inputs[idx]
				status := in.Status
				if status == "" {
					status = models.StatusInUse
				}
				asset := &models.Asset{
					PropertyNumber:  numbers[j],
					Description:     in.Description,
					Category:        in.Category,
					SubMajorGroup:   in.SubMajorGroup,
					GLAccount:       in.GLAccount,
					AcquisitionDate: in.AcquisitionDate,
					AcquisitionCost: in.AcquisitionCost,
					FundSource:      in.FundSource,
					UsefulLife:      in.UsefulLife,
					SalvageValue:    in.SalvageValue,
					Condition:       in.Condition,
					Remarks:         in.Remarks,
					Status:          status,
					Custodian:       in.Custodian,
					CreatedAt:       now,
					UpdatedAt:       now,
				}
				asset.History = ledger.RecordAssetMutation(nil, asset, actor.Name, "", now)
				if err := tx.InsertAsset(ctx, asset); err != nil {
					return fmt.Errorf("asset %s: %w", asset.PropertyNumber, err)
				}
				created[idx] = asset
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// UpdateAssetInput lists the plainly editable fields. Nil pointers leave
// the field untouched. Custodian changes are rejected here: custody
// moves only through the assignment and transfer workflows, which mint a
// slip and append history atomically.
type UpdateAssetInput struct {
	Description      *string
	Category         *string
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

// UpdateAsset applies a plain field update with a diff-derived history
// entry per changed field. Setting status to "Missing" clears the active
// slip linkage while the custodian is retained for accountability.
func (s *Service) UpdateAsset(ctx context.Context, actor Actor, id primitive.ObjectID, in UpdateAssetInput) (*models.Asset, error) {
	if in.Status != nil {
		switch *in.Status {
		case models.StatusWaste:
			return nil, Validationf("status %q is set only by the waste certification workflow", models.StatusWaste)
		case models.StatusDisposed:
			return nil, Validationf("status %q is set only by the disposal workflow", models.StatusDisposed)
		case models.StatusInUse, models.StatusInStorage, models.StatusForRepair, models.StatusMissing:
		default:
			return nil, Validationf("unknown status %q", *in.Status)
		}
	}

	now := s.now()
	var updated *models.Asset

	err := s.store.InTx(ctx, func(tx store.Tx) error {
		asset, err := tx.GetAsset(ctx, id)
		if err != nil {
			return fmt.Errorf("asset %s: %w", id.Hex(), err)
		}
		if asset.Status == models.StatusDisposed {
			return Preconditionf("asset %s is disposed and can no longer be edited", asset.PropertyNumber)
		}

		prev := asset.Snapshot()

		if in.Description != nil {
			asset.Description = *in.Description
		}
		if in.Category != nil {
			asset.Category = *in.Category
		}
		if in.AcquisitionDate != nil {
			asset.AcquisitionDate = *in.AcquisitionDate
		}
		if in.AcquisitionCost != nil {
			asset.AcquisitionCost = *in.AcquisitionCost
		}
		if in.FundSource != nil {
			asset.FundSource = *in.FundSource
		}
		if in.UsefulLife != nil {
			asset.UsefulLife = *in.UsefulLife
		}
		if in.SalvageValue != nil {
			asset.SalvageValue = *in.SalvageValue
		}
		if in.ImpairmentLosses != nil {
			asset.ImpairmentLosses = *in.ImpairmentLosses
		}
		if in.Condition != nil {
			asset.Condition = *in.Condition
		}
		if in.Remarks != nil {
			asset.Remarks = *in.Remarks
		}
		if in.Status != nil {
			asset.Status = *in.Status
			if *in.Status == models.StatusMissing {
				asset.AssignedPAR = ""
				asset.AssignedICS = ""
			}
		}

		asset.History = append(asset.History, ledger.RecordAssetMutation(&prev, asset, actor.Name, "", now)...)
		asset.UpdatedAt = now
		if err := tx.UpdateAsset(ctx, asset); err != nil {
			return err
		}
		updated = asset
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.notify(updated.Custodian.Office, "asset_updated", updated)
	return updated, nil
}

// DisposeAsset soft-deletes: status goes to Disposed and a "Disposed"
// entry is appended. The record itself is never removed.
func (s *Service) DisposeAsset(ctx context.Context, actor Actor, id primitive.ObjectID) (*models.Asset, error) {
	now := s.now()
	var updated *models.Asset

	err := s.store.InTx(ctx, func(tx store.Tx) error {
		asset, err := tx.GetAsset(ctx, id)
		if err != nil {
			return fmt.Errorf("asset %s: %w", id.Hex(), err)
		}
		if asset.Status == models.StatusDisposed {
			return Preconditionf("asset %s is already disposed", asset.PropertyNumber)
		}
		prev := asset.Snapshot()
		asset.Status = models.StatusDisposed
		asset.History = append(asset.History, ledger.RecordAssetMutation(&prev, asset, actor.Name, "Disposed", now)...)
		asset.UpdatedAt = now
		if err := tx.UpdateAsset(ctx, asset); err != nil {
			return err
		}
		updated = asset
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.notify(updated.Custodian.Office, "asset_disposed", updated)
	return updated, nil
}

// AddRepairRecord appends a repair entry plus the single manual history
// entry for it. The ledger never diffs array collections, so this is the
// one place the repair is logged.
func (s *Service) AddRepairRecord(ctx context.Context, actor Actor, id primitive.ObjectID, rec models.RepairRecord) (*models.Asset, error) {
	if rec.Nature == "" {
		return nil, Validationf("repair nature is required")
	}
	if rec.Amount < 0 {
		return nil, Validationf("repair amount must not be negative")
	}
	now := s.now()
	if rec.Date.IsZero() {
		rec.Date = now
	}

	var updated *models.Asset
	err := s.store.InTx(ctx, func(tx store.Tx) error {
		asset, err := tx.GetAsset(ctx, id)
		if err != nil {
			return fmt.Errorf("asset %s: %w", id.Hex(), err)
		}
		if asset.Status == models.StatusDisposed {
			return Preconditionf("asset %s is disposed and can no longer be edited", asset.PropertyNumber)
		}
		asset.RepairHistory = append(asset.RepairHistory, rec)
		details := fmt.Sprintf("Repair recorded: %s (%s)", rec.Nature, ledger.Currency(rec.Amount))
		asset.History = append(asset.History, ledger.Entry(ledger.EventUpdated, details, actor.Name, now))
		asset.UpdatedAt = now
		if err := tx.UpdateAsset(ctx, asset); err != nil {
			return err
		}
		updated = asset
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// AddAttachment records file metadata on the asset; the binary already
// lives in object storage under att.Key.
func (s *Service) AddAttachment(ctx context.Context, actor Actor, id primitive.ObjectID, att models.Attachment) (*models.Asset, error) {
	if att.Key == "" {
		return nil, Validationf("attachment storage key is required")
	}
	now := s.now()
	if att.UploadedAt.IsZero() {
		att.UploadedAt = now
	}
	if att.UploadedBy == "" {
		att.UploadedBy = actor.Name
	}

	var updated *models.Asset
	err := s.store.InTx(ctx, func(tx store.Tx) error {
		asset, err := tx.GetAsset(ctx, id)
		if err != nil {
			return fmt.Errorf("asset %s: %w", id.Hex(), err)
		}
		asset.Attachments = append(asset.Attachments, att)
		title := att.Title
		if title == "" {
			title = att.OriginalName
		}
		details := fmt.Sprintf("Attachment '%s' added", title)
		asset.History = append(asset.History, ledger.Entry(ledger.EventUpdated, details, actor.Name, now))
		asset.UpdatedAt = now
		if err := tx.UpdateAsset(ctx, asset); err != nil {
			return err
		}
		updated = asset
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}
