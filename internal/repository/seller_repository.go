package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/agrostack/farmkeep/internal/model"
)

type SellerRepo struct{ db *gorm.DB }

func NewSellerRepo(db *gorm.DB) *SellerRepo { return &SellerRepo{db: db} }

func (r *SellerRepo) GetByUserID(ctx context.Context, userID uint64) (*model.SellerProfile, error) {
	var s model.SellerProfile
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&s).Error
	if err != nil {
		return nil, translate(err)
	}
	return &s, nil
}

func (r *SellerRepo) GetByUsername(ctx context.Context, username string) (*model.SellerProfile, error) {
	var s model.SellerProfile
	err := r.db.WithContext(ctx).Where("username = ?", username).First(&s).Error
	if err != nil {
		return nil, translate(err)
	}
	return &s, nil
}

// SubmitRequest creates or refreshes the user's verification request and
// moves it to pending. An approved profile keeps its flag until an admin
// changes it; re-submitting an approved profile is a no-op on Verified.
func (r *SellerRepo) SubmitRequest(ctx context.Context, req *model.SellerProfile) (*model.SellerProfile, error) {
	var existing model.SellerProfile
	err := r.db.WithContext(ctx).Where("user_id = ?", req.UserID).First(&existing).Error
	switch {
	case err == nil:
		existing.FarmName = req.FarmName
		existing.FarmLocation = req.FarmLocation
		existing.FarmSize = req.FarmSize
		existing.CropsGrown = req.CropsGrown
		existing.Phone = req.Phone
		existing.VerificationStatus = model.VerificationPending
		if err := r.db.WithContext(ctx).Save(&existing).Error; err != nil {
			return nil, err
		}
		return &existing, nil
	case err == gorm.ErrRecordNotFound:
		req.VerificationStatus = model.VerificationPending
		req.Verified = false
		if err := r.db.WithContext(ctx).Create(req).Error; err != nil {
			return nil, err
		}
		return req, nil
	default:
		return nil, err
	}
}

func (r *SellerRepo) ListByStatus(ctx context.Context, status string) ([]model.SellerProfile, error) {
	var sellers []model.SellerProfile
	err := r.db.WithContext(ctx).Where("verification_status = ?", status).Order("id").Find(&sellers).Error
	return sellers, err
}

// SetStatus performs the admin transition and keeps the verified flag in
// step with it.
func (r *SellerRepo) SetStatus(ctx context.Context, id uint64, status string) error {
	res := r.db.WithContext(ctx).Model(&model.SellerProfile{}).Where("id = ?", id).
		Updates(map[string]any{
			"verification_status": status,
			"verified":            status == model.VerificationApproved,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
