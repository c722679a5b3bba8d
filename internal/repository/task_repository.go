package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"simple-kanban/internal/model"
)

type TaskRepository struct {
	db *gorm.DB
}

type TaskRepositoryInterface interface {
	Create(ctx context.Context, task *model.Task) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Task, error)
	GetByColumnID(ctx context.Context, columnID uuid.UUID) ([]model.Task, error)
	CountByColumnID(ctx context.Context, columnID uuid.UUID) (int64, error)
	Update(ctx context.Context, task *model.Task) error
	Delete(ctx context.Context, id uuid.UUID) error
	MoveTask(ctx context.Context, taskID uuid.UUID, columnID uuid.UUID, newPosition int) (*model.Task, error)
}

var _ TaskRepositoryInterface = (*TaskRepository)(nil)

func NewTaskRepository(db *gorm.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

// Create adds a new task to the database
func (r *TaskRepository) Create(ctx context.Context, task *model.Task) error {
	return r.db.WithContext(ctx).Create(task).Error
}

// GetByID retrieves a task by its ID, with Status set from its column
func (r *TaskRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Task, error) {
	var task model.Task
	result := r.db.WithContext(ctx).
		Select("tasks.*, columns.name AS status").
		Joins("JOIN columns ON columns.id = tasks.column_id").
		Where("tasks.id = ?", id).
		First(&task)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, result.Error
	}
	return &task, nil
}

// GetByColumnID retrieves all tasks in a specific column
func (r *TaskRepository) GetByColumnID(ctx context.Context, columnID uuid.UUID) ([]model.Task, error) {
	var tasks []model.Task
	result := r.db.WithContext(ctx).Where("column_id = ?", columnID).Scopes(byPosition).Find(&tasks)
	if result.Error != nil {
		return nil, result.Error
	}
	return tasks, nil
}

func (r *TaskRepository) CountByColumnID(ctx context.Context, columnID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Task{}).Where("column_id = ?", columnID).Count(&count).Error
	return count, err
}

// Update saves the task. A changed position or column shifts the
// neighbouring tasks the same way MoveTask does.
func (r *TaskRepository) Update(ctx context.Context, task *model.Task) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var stored model.Task
		if err := tx.First(&stored, "id = ?", task.ID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrTaskNotFound
			}
			return err
		}

		if err := shiftForMove(tx, stored, task.ColumnID, task.Position); err != nil {
			return err
		}
		return tx.Save(task).Error
	})
}

// Delete removes a task by its ID and closes the gap it leaves in its column
func (r *TaskRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var task model.Task
		if err := tx.First(&task, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrTaskNotFound
			}
			return err
		}

		if err := tx.Delete(&model.Task{}, "id = ?", id).Error; err != nil {
			return err
		}

		return tx.Model(&model.Task{}).
			Where("column_id = ? AND position > ?", task.ColumnID, task.Position).
			Update("position", gorm.Expr("position - 1")).Error
	})
}

// MoveTask updates the position and/or column of a task
func (r *TaskRepository) MoveTask(ctx context.Context, taskID uuid.UUID, columnID uuid.UUID, newPosition int) (*model.Task, error) {
	var task model.Task
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&task, "id = ?", taskID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrTaskNotFound
			}
			return err
		}

		if err := shiftForMove(tx, task, columnID, newPosition); err != nil {
			return err
		}

		task.ColumnID = columnID
		task.Position = newPosition
		return tx.Save(&task).Error
	})
	if err != nil {
		return nil, err
	}
	return &task, nil
}

// shiftForMove makes room for task at (columnID, newPosition) by moving the
// other tasks of the affected columns. The task row itself is not written.
func shiftForMove(tx *gorm.DB, task model.Task, columnID uuid.UUID, newPosition int) error {
	oldColumnID := task.ColumnID
	oldPosition := task.Position

	if oldColumnID != columnID {
		// Close the gap in the old column
		if err := tx.Model(&model.Task{}).
			Where("column_id = ? AND position > ?", oldColumnID, oldPosition).
			Update("position", gorm.Expr("position - 1")).Error; err != nil {
			return err
		}

		// Make space in the new column
		return tx.Model(&model.Task{}).
			Where("column_id = ? AND position >= ?", columnID, newPosition).
			Update("position", gorm.Expr("position + 1")).Error
	}

	switch {
	case oldPosition < newPosition:
		// Moving down: pull the tasks in between up
		return tx.Model(&model.Task{}).
			Where("column_id = ? AND position > ? AND position <= ?", columnID, oldPosition, newPosition).
			Update("position", gorm.Expr("position - 1")).Error
	case oldPosition > newPosition:
		// Moving up: push the tasks in between down
		return tx.Model(&model.Task{}).
			Where("column_id = ? AND position >= ? AND position < ?", columnID, newPosition, oldPosition).
			Update("position", gorm.Expr("position + 1")).Error
	}
	return nil
}
