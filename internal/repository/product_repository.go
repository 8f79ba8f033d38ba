package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/agrostack/farmkeep/internal/model"
)

type ProductRepo struct{ db *gorm.DB }

func NewProductRepo(db *gorm.DB) *ProductRepo { return &ProductRepo{db: db} }

// Create inserts a listing in pending status regardless of the caller's
// wishes; only an admin transition can activate it.
func (r *ProductRepo) Create(ctx context.Context, p *model.Product) error {
	p.Status = model.ProductPending
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *ProductRepo) GetByID(ctx context.Context, id uint64) (*model.Product, error) {
	var p model.Product
	if err := r.db.WithContext(ctx).First(&p, id).Error; err != nil {
		return nil, translate(err)
	}
	return &p, nil
}

func (r *ProductRepo) ListByOwner(ctx context.Context, userID uint64) ([]model.Product, error) {
	var products []model.Product
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("id").Find(&products).Error
	return products, err
}

// ListActiveExcluding returns the marketplace feed: active listings not
// owned by userID.
func (r *ProductRepo) ListActiveExcluding(ctx context.Context, userID uint64) ([]model.Product, error) {
	var products []model.Product
	err := r.db.WithContext(ctx).
		Where("status = ? AND user_id <> ?", model.ProductActive, userID).
		Order("id").Find(&products).Error
	return products, err
}

func (r *ProductRepo) ListByStatus(ctx context.Context, status string) ([]model.Product, error) {
	var products []model.Product
	err := r.db.WithContext(ctx).Where("status = ?", status).Order("id").Find(&products).Error
	return products, err
}

// UpdateStatus performs an admin transition by primary key, without an
// ownership filter.
func (r *ProductRepo) UpdateStatus(ctx context.Context, id uint64, status string) error {
	res := r.db.WithContext(ctx).Model(&model.Product{}).Where("id = ?", id).
		Update("status", status)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *ProductRepo) Delete(ctx context.Context, id, userID uint64) error {
	res := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).Delete(&model.Product{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
