package repository

import (
	"context"
	"errors"

	"taskboard/internal/model"
	"taskboard/internal/position"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type StatusRepository struct {
	db *gorm.DB
}

func NewStatusRepository(db *gorm.DB) *StatusRepository {
	return &StatusRepository{db: db}
}

// WithTx returns a copy of the repository bound to the given transaction.
func (r *StatusRepository) WithTx(tx *gorm.DB) *StatusRepository {
	return &StatusRepository{db: tx}
}

func (r *StatusRepository) Create(ctx context.Context, status *model.BoardStatus) error {
	return r.db.WithContext(ctx).Create(status).Error
}

func (r *StatusRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.BoardStatus, error) {
	var status model.BoardStatus
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&status).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &status, nil
}

func (r *StatusRepository) GetByBoardID(ctx context.Context, boardID uuid.UUID) ([]model.BoardStatus, error) {
	var statuses []model.BoardStatus
	err := r.db.WithContext(ctx).Where("board_id = ?", boardID).Order("position").Find(&statuses).Error
	return statuses, err
}

// FirstByBoard returns the status at position 0, or nil when the board has no
// statuses yet.
func (r *StatusRepository) FirstByBoard(ctx context.Context, boardID uuid.UUID) (*model.BoardStatus, error) {
	var status model.BoardStatus
	err := r.db.WithContext(ctx).
		Where("board_id = ?", boardID).
		Order("position").
		First(&status).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &status, nil
}

func (r *StatusRepository) CountByBoard(ctx context.Context, boardID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.BoardStatus{}).
		Where("board_id = ?", boardID).
		Count(&count).Error
	return count, err
}

func (r *StatusRepository) Update(ctx context.Context, status *model.BoardStatus) error {
	result := r.db.WithContext(ctx).Save(status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrStatusNotFound
	}
	return nil
}

func (r *StatusRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&model.BoardStatus{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrStatusNotFound
	}
	return nil
}

func (r *StatusRepository) DeleteByBoard(ctx context.Context, boardID uuid.UUID) error {
	return r.db.WithContext(ctx).Where("board_id = ?", boardID).Delete(&model.BoardStatus{}).Error
}

// UpdatePositions applies a computed position write set row by row.
func (r *StatusRepository) UpdatePositions(ctx context.Context, writes []position.Placement) error {
	for _, w := range writes {
		if err := r.db.WithContext(ctx).Model(&model.BoardStatus{}).
			Where("id = ?", w.ID).
			Update("position", w.Position).Error; err != nil {
			return err
		}
	}
	return nil
}
