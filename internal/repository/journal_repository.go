package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/agrostack/farmkeep/internal/model"
)

type JournalRepo struct{ db *gorm.DB }

func NewJournalRepo(db *gorm.DB) *JournalRepo { return &JournalRepo{db: db} }

func (r *JournalRepo) Create(ctx context.Context, userID uint64, activity, details, date string) (*model.Journal, error) {
	j := &model.Journal{Activity: activity, ActivityDetails: details, Date: date, UserID: userID}
	if err := r.db.WithContext(ctx).Create(j).Error; err != nil {
		return nil, err
	}
	return j, nil
}

func (r *JournalRepo) ListByUser(ctx context.Context, userID uint64) ([]model.Journal, error) {
	var entries []model.Journal
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).
		Order("date DESC, id DESC").Find(&entries).Error
	return entries, err
}

// Recent returns up to limit newest entries, used to ground LLM prompts
// in the user's actual farm activity.
func (r *JournalRepo) Recent(ctx context.Context, userID uint64, limit int) ([]model.Journal, error) {
	var entries []model.Journal
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).
		Order("date DESC, id DESC").Limit(limit).Find(&entries).Error
	return entries, err
}

func (r *JournalRepo) Delete(ctx context.Context, id, userID uint64) error {
	res := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).Delete(&model.Journal{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
