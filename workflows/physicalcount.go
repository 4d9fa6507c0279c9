// workflows/physicalcount.go
package workflows

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"gso/ledger"
	"gso/models"
	"gso/store"
)

// PhysicalCountItem is the observed state of one asset during a count.
type PhysicalCountItem struct {
	AssetID   primitive.ObjectID
	Status    string
	Condition string
	Remarks   string
}

// PhysicalCount overwrites each asset's observed status, condition and
// remarks, appending history entries tagged "Physical Count" instead of
// the default "Updated". The whole count is atomic; notification of
// interested listeners happens after commit and its failure does not
// fail the count.
func (s *Service) PhysicalCount(ctx context.Context, actor Actor, items []PhysicalCountItem) ([]*models.Asset, error) {
	if len(items) == 0 {
		return nil, Validationf("physical count has no assets")
	}
	for _, it := range items {
		switch it.Status {
		case "", models.StatusInUse, models.StatusInStorage, models.StatusForRepair, models.StatusMissing:
		default:
			return nil, Validationf("physical count cannot set status %q", it.Status)
		}
	}

	now := s.now()
	updated := make([]*models.Asset, 0, len(items))

	err := s.store.InTx(ctx, func(tx store.Tx) error {
		updated = updated[:0]
		for _, it := range items {
			asset, err := tx.GetAsset(ctx, it.AssetID)
			if err != nil {
				return fmt.Errorf("asset %s: %w", it.AssetID.Hex(), err)
			}
			if asset.Status == models.StatusDisposed {
				return Preconditionf("asset %s is disposed and cannot be counted", asset.PropertyNumber)
			}

			prev := asset.Snapshot()
			if it.Status != "" {
				asset.Status = it.Status
				if it.Status == models.StatusMissing {
					asset.AssignedPAR = ""
					asset.AssignedICS = ""
				}
			}
			asset.Condition = it.Condition
			asset.Remarks = it.Remarks

			asset.History = append(asset.History,
				ledger.RecordAssetMutation(&prev, asset, actor.Name, "Physical Count", now)...)
			asset.UpdatedAt = now
			if err := tx.UpdateAsset(ctx, asset); err != nil {
				return fmt.Errorf("asset %s: %w", asset.PropertyNumber, err)
			}
			updated = append(updated, asset)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	for _, a := range updated {
		s.notify(a.Custodian.Office, "asset_counted", a)
	}
	return updated, nil
}
