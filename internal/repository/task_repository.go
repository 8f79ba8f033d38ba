package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/agrostack/farmkeep/internal/model"
)

type TaskRepo struct{ db *gorm.DB }

func NewTaskRepo(db *gorm.DB) *TaskRepo { return &TaskRepo{db: db} }

// Upsert keeps one row current per (user, title): when the user already
// has a task with the same title its date and notes are replaced,
// otherwise a new task is created. The second return value reports
// whether a row was created.
func (r *TaskRepo) Upsert(ctx context.Context, userID uint64, title, date, notes string) (*model.Task, bool, error) {
	var existing model.Task
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND title = ?", userID, title).
		First(&existing).Error
	switch {
	case err == nil:
		existing.Date = date
		existing.Notes = notes
		if err := r.db.WithContext(ctx).Save(&existing).Error; err != nil {
			return nil, false, err
		}
		return &existing, false, nil
	case err == gorm.ErrRecordNotFound:
		t := &model.Task{Title: title, Date: date, Notes: notes, UserID: userID}
		if err := r.db.WithContext(ctx).Create(t).Error; err != nil {
			return nil, false, err
		}
		return t, true, nil
	default:
		return nil, false, err
	}
}

func (r *TaskRepo) ListByUser(ctx context.Context, userID uint64) ([]model.Task, error) {
	var tasks []model.Task
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("id").Find(&tasks).Error
	return tasks, err
}

// ListDueOn returns the user's tasks whose date equals the given
// "YYYY-MM-DD" day, used by the reminder dispatch.
func (r *TaskRepo) ListDueOn(ctx context.Context, userID uint64, date string) ([]model.Task, error) {
	var tasks []model.Task
	err := r.db.WithContext(ctx).Where("user_id = ? AND date = ?", userID, date).Order("id").Find(&tasks).Error
	return tasks, err
}

// Delete removes the task only when it belongs to userID.
func (r *TaskRepo) Delete(ctx context.Context, id, userID uint64) error {
	res := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).Delete(&model.Task{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
