package repository

import (
	"context"
	"errors"

	"taskboard/internal/model"
	"taskboard/internal/position"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TaskRepository struct {
	db *gorm.DB
}

func NewTaskRepository(db *gorm.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

// WithTx returns a copy of the repository bound to the given transaction.
func (r *TaskRepository) WithTx(tx *gorm.DB) *TaskRepository {
	return &TaskRepository{db: tx}
}

// Create adds a new task to the database
func (r *TaskRepository) Create(ctx context.Context, task *model.BoardTask) error {
	return r.db.WithContext(ctx).Create(task).Error
}

// GetByID retrieves a task by its ID
func (r *TaskRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.BoardTask, error) {
	var task model.BoardTask
	result := r.db.WithContext(ctx).First(&task, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, result.Error
	}
	return &task, nil
}

// GetByStatusID retrieves all tasks of one status ordered by position
func (r *TaskRepository) GetByStatusID(ctx context.Context, statusID uuid.UUID) ([]model.BoardTask, error) {
	var tasks []model.BoardTask
	result := r.db.WithContext(ctx).Where("status_id = ?", statusID).Order("position").Find(&tasks)
	if result.Error != nil {
		return nil, result.Error
	}
	return tasks, nil
}

// GetByBoardID retrieves all tasks of a board ordered by (status, position)
func (r *TaskRepository) GetByBoardID(ctx context.Context, boardID uuid.UUID) ([]model.BoardTask, error) {
	var tasks []model.BoardTask
	result := r.db.WithContext(ctx).
		Where("board_id = ?", boardID).
		Order("status_id").Order("position").
		Find(&tasks)
	if result.Error != nil {
		return nil, result.Error
	}
	return tasks, nil
}

func (r *TaskRepository) CountByStatus(ctx context.Context, statusID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.BoardTask{}).
		Where("status_id = ?", statusID).
		Count(&count).Error
	return count, err
}

// Update updates an existing task
func (r *TaskRepository) Update(ctx context.Context, task *model.BoardTask) error {
	result := r.db.WithContext(ctx).Save(task)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrTaskNotFound
	}
	return nil
}

// Delete removes a task by its ID
func (r *TaskRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&model.BoardTask{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrTaskNotFound
	}
	return nil
}

func (r *TaskRepository) DeleteByStatus(ctx context.Context, statusID uuid.UUID) error {
	return r.db.WithContext(ctx).Where("status_id = ?", statusID).Delete(&model.BoardTask{}).Error
}

func (r *TaskRepository) DeleteByBoard(ctx context.Context, boardID uuid.UUID) error {
	return r.db.WithContext(ctx).Where("board_id = ?", boardID).Delete(&model.BoardTask{}).Error
}

// UpdatePositions applies a computed position write set row by row.
func (r *TaskRepository) UpdatePositions(ctx context.Context, writes []position.Placement) error {
	for _, w := range writes {
		if err := r.db.WithContext(ctx).Model(&model.BoardTask{}).
			Where("id = ?", w.ID).
			Update("position", w.Position).Error; err != nil {
			return err
		}
	}
	return nil
}
