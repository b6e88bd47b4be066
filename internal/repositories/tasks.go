package repositories

import (
	"context"
	"errors"
	"fmt"

	"pomotrack-backend/internal/models"

	"gorm.io/gorm"
)

// TaskRepository persists tasks. Every query is scoped by owner id, so a
// task owned by someone else is indistinguishable from a missing one.
type TaskRepository struct {
	db *gorm.DB
}

func NewTaskRepository(db *gorm.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

func (r *TaskRepository) ListForOwner(ctx context.Context, ownerID uint) ([]models.Task, error) {
	tasks := make([]models.Task, 0)
	err := r.db.WithContext(ctx).Where("owner_id = ?", ownerID).Find(&tasks).Error
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return tasks, nil
}

func (r *TaskRepository) Create(ctx context.Context, ownerID uint, text string) (*models.Task, error) {
	task := models.Task{
		OwnerID: ownerID,
		Text:    text,
	}
	if err := r.db.WithContext(ctx).Create(&task).Error; err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return &task, nil
}

func (r *TaskRepository) Delete(ctx context.Context, ownerID, taskID uint) error {
	res := r.db.WithContext(ctx).
		Where("id = ? AND owner_id = ?", taskID, ownerID).
		Delete(&models.Task{})
	if res.Error != nil {
		return fmt.Errorf("db error: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrTaskNotFound
	}
	return nil
}

// IncrementPomodoro bumps the counter in a single UPDATE so concurrent
// increments on the same row never lose an update, then returns the row.
func (r *TaskRepository) IncrementPomodoro(ctx context.Context, ownerID, taskID uint) (*models.Task, error) {
	res := r.db.WithContext(ctx).Model(&models.Task{}).
		Where("id = ? AND owner_id = ?", taskID, ownerID).
		UpdateColumn("pomodoro_count", gorm.Expr("pomodoro_count + 1"))
	if res.Error != nil {
		return nil, fmt.Errorf("db error: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, ErrTaskNotFound
	}

	var task models.Task
	err := r.db.WithContext(ctx).
		Where("id = ? AND owner_id = ?", taskID, ownerID).
		First(&task).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return &task, nil
}
