package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/agrostack/farmkeep/internal/model"
)

type InventoryRepo struct{ db *gorm.DB }

func NewInventoryRepo(db *gorm.DB) *InventoryRepo { return &InventoryRepo{db: db} }

// Add accumulates quantity into an existing row matched by item name, or
// creates the row. The second return value reports whether a row was
// created.
func (r *InventoryRepo) Add(ctx context.Context, userID uint64, item string, quantity int) (*model.Inventory, bool, error) {
	var existing model.Inventory
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND item = ?", userID, item).
		First(&existing).Error
	switch {
	case err == nil:
		existing.Quantity += quantity
		if err := r.db.WithContext(ctx).Save(&existing).Error; err != nil {
			return nil, false, err
		}
		return &existing, false, nil
	case err == gorm.ErrRecordNotFound:
		inv := &model.Inventory{Item: item, Quantity: quantity, UserID: userID}
		if err := r.db.WithContext(ctx).Create(inv).Error; err != nil {
			return nil, false, err
		}
		return inv, true, nil
	default:
		return nil, false, err
	}
}

func (r *InventoryRepo) ListByUser(ctx context.Context, userID uint64) ([]model.Inventory, error) {
	var items []model.Inventory
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("id").Find(&items).Error
	return items, err
}

func (r *InventoryRepo) Delete(ctx context.Context, id, userID uint64) error {
	res := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).Delete(&model.Inventory{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
