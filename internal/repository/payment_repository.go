package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/agrostack/farmkeep/internal/model"
)

type PaymentRepo struct{ db *gorm.DB }

func NewPaymentRepo(db *gorm.DB) *PaymentRepo { return &PaymentRepo{db: db} }

// Create inserts a payment in pending status. The order_id unique index
// guarantees global uniqueness; collisions surface as ErrDuplicateOrder.
func (r *PaymentRepo) Create(ctx context.Context, p *model.Payment) error {
	p.PaymentStatus = model.PaymentPending
	if err := r.db.WithContext(ctx).Create(p).Error; err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateOrder
		}
		return err
	}
	return nil
}

func (r *PaymentRepo) GetByOrderID(ctx context.Context, orderID string) (*model.Payment, error) {
	var p model.Payment
	err := r.db.WithContext(ctx).Where("order_id = ?", orderID).First(&p).Error
	if err != nil {
		return nil, translate(err)
	}
	return &p, nil
}

func (r *PaymentRepo) ListByUser(ctx context.Context, userID uint64) ([]model.Payment, error) {
	var payments []model.Payment
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("id DESC").Find(&payments).Error
	return payments, err
}

func (r *PaymentRepo) ListByStatus(ctx context.Context, status string) ([]model.Payment, error) {
	var payments []model.Payment
	err := r.db.WithContext(ctx).Where("payment_status = ?", status).Order("id").Find(&payments).Error
	return payments, err
}

// UpdateStatus performs the admin transition, looked up by order id.
func (r *PaymentRepo) UpdateStatus(ctx context.Context, orderID, status string) error {
	res := r.db.WithContext(ctx).Model(&model.Payment{}).Where("order_id = ?", orderID).
		Update("payment_status", status)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
