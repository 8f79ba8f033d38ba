package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/agrostack/farmkeep/internal/model"
)

type ExpenseRepo struct{ db *gorm.DB }

func NewExpenseRepo(db *gorm.DB) *ExpenseRepo { return &ExpenseRepo{db: db} }

func (r *ExpenseRepo) Create(ctx context.Context, userID uint64, item string, amount float64, season string) (*model.Expense, error) {
	e := &model.Expense{Item: item, Amount: amount, Season: season, UserID: userID}
	if err := r.db.WithContext(ctx).Create(e).Error; err != nil {
		return nil, err
	}
	return e, nil
}

func (r *ExpenseRepo) ListByUser(ctx context.Context, userID uint64) ([]model.Expense, error) {
	var expenses []model.Expense
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("id").Find(&expenses).Error
	return expenses, err
}

func (r *ExpenseRepo) Delete(ctx context.Context, id, userID uint64) error {
	res := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).Delete(&model.Expense{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
