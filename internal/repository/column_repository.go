package repository

import (
	"context"
	"errors"

	"simple-kanban/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ColumnRepository struct {
	db *gorm.DB
}

type ColumnRepositoryInterface interface {
	Create(ctx context.Context, column *model.Column) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Column, error)
	GetWithTasks(ctx context.Context, id uuid.UUID) (*model.Column, error)
	GetByBoardID(ctx context.Context, boardID uuid.UUID) ([]model.Column, error)
	GetByBoardIDWithTasks(ctx context.Context, boardID uuid.UUID) ([]model.Column, error)
	CountByBoardID(ctx context.Context, boardID uuid.UUID) (int64, error)
	Update(ctx context.Context, column *model.Column) error
	Delete(ctx context.Context, id uuid.UUID) error
	MoveColumn(ctx context.Context, id uuid.UUID, newPosition int) (*model.Column, error)
	ReorderColumns(ctx context.Context, boardID uuid.UUID, order []uuid.UUID) ([]model.Column, error)
}

var _ ColumnRepositoryInterface = (*ColumnRepository)(nil)

func NewColumnRepository(db *gorm.DB) *ColumnRepository {
	return &ColumnRepository{db: db}
}

func (r *ColumnRepository) Create(ctx context.Context, column *model.Column) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(column).Error
}

func (r *ColumnRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Column, error) {
	var column model.Column
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&column).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrColumnNotFound
		}
		return nil, err
	}
	return &column, nil
}

func (r *ColumnRepository) GetWithTasks(ctx context.Context, id uuid.UUID) (*model.Column, error) {
	var column model.Column
	err := r.db.WithContext(ctx).
		Preload("Tasks", byPosition).
		Where("id = ?", id).
		First(&column).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrColumnNotFound
		}
		return nil, err
	}
	fillStatus(&column)
	return &column, nil
}

func (r *ColumnRepository) GetByBoardID(ctx context.Context, boardID uuid.UUID) ([]model.Column, error) {
	var columns []model.Column
	err := r.db.WithContext(ctx).Where("board_id = ?", boardID).Scopes(byPosition).Find(&columns).Error
	return columns, err
}

func (r *ColumnRepository) GetByBoardIDWithTasks(ctx context.Context, boardID uuid.UUID) ([]model.Column, error) {
	var columns []model.Column
	err := r.db.WithContext(ctx).
		Preload("Tasks", byPosition).
		Where("board_id = ?", boardID).
		Scopes(byPosition).
		Find(&columns).Error
	if err != nil {
		return nil, err
	}
	for i := range columns {
		fillStatus(&columns[i])
	}
	return columns, nil
}

func (r *ColumnRepository) CountByBoardID(ctx context.Context, boardID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Column{}).Where("board_id = ?", boardID).Count(&count).Error
	return count, err
}

func (r *ColumnRepository) Update(ctx context.Context, column *model.Column) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(column).Error
}

func (r *ColumnRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&model.Column{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrColumnNotFound
	}
	return nil
}

// MoveColumn places the column at newPosition within its board and shifts
// the columns in between by one.
func (r *ColumnRepository) MoveColumn(ctx context.Context, id uuid.UUID, newPosition int) (*model.Column, error) {
	var column model.Column
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&column, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrColumnNotFound
			}
			return err
		}

		oldPosition := column.Position
		if oldPosition == newPosition {
			return nil
		}

		if oldPosition < newPosition {
			// Moving right: pull the columns in between one slot left
			if err := tx.Model(&model.Column{}).
				Where("board_id = ? AND position > ? AND position <= ?", column.BoardID, oldPosition, newPosition).
				Update("position", gorm.Expr("position - 1")).Error; err != nil {
				return err
			}
		} else {
			// Moving left: push the columns in between one slot right
			if err := tx.Model(&model.Column{}).
				Where("board_id = ? AND position >= ? AND position < ?", column.BoardID, newPosition, oldPosition).
				Update("position", gorm.Expr("position + 1")).Error; err != nil {
				return err
			}
		}

		column.Position = newPosition
		return tx.Omit(clause.Associations).Save(&column).Error
	})
	if err != nil {
		return nil, err
	}
	return &column, nil
}

// ReorderColumns renumbers the board's columns 0..n-1 following order.
// Columns missing from order keep their relative order after the listed ones.
func (r *ColumnRepository) ReorderColumns(ctx context.Context, boardID uuid.UUID, order []uuid.UUID) ([]model.Column, error) {
	var columns []model.Column
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("board_id = ?", boardID).Scopes(byPosition).Find(&columns).Error; err != nil {
			return err
		}

		byID := make(map[uuid.UUID]model.Column, len(columns))
		for _, column := range columns {
			byID[column.ID] = column
		}

		ordered := make([]model.Column, 0, len(columns))
		seen := make(map[uuid.UUID]bool, len(order))
		for _, id := range order {
			column, ok := byID[id]
			if !ok {
				return ErrColumnNotOnBoard
			}
			if seen[id] {
				continue
			}
			seen[id] = true
			ordered = append(ordered, column)
		}
		for _, column := range columns {
			if !seen[column.ID] {
				ordered = append(ordered, column)
			}
		}

		for i := range ordered {
			ordered[i].Position = i
			if err := tx.Model(&model.Column{}).Where("id = ?", ordered[i].ID).
				Update("position", i).Error; err != nil {
				return err
			}
		}
		columns = ordered
		return nil
	})
	if err != nil {
		return nil, err
	}
	return columns, nil
}

// fillStatus copies the column name onto each of its loaded tasks.
func fillStatus(column *model.Column) {
	for i := range column.Tasks {
		column.Tasks[i].Status = column.Name
	}
}
