package repository

import (
	"context"
	"errors"

	"taskboard/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type BoardUserRepository struct {
	db *gorm.DB
}

func NewBoardUserRepository(db *gorm.DB) *BoardUserRepository {
	return &BoardUserRepository{db: db}
}

// WithTx returns a copy of the repository bound to the given transaction.
func (r *BoardUserRepository) WithTx(tx *gorm.DB) *BoardUserRepository {
	return &BoardUserRepository{db: tx}
}

func (r *BoardUserRepository) Create(ctx context.Context, member *model.BoardUser) error {
	return r.db.WithContext(ctx).Create(member).Error
}

func (r *BoardUserRepository) GetByBoardAndUser(ctx context.Context, boardID, userID uuid.UUID) (*model.BoardUser, error) {
	var member model.BoardUser
	err := r.db.WithContext(ctx).
		Where("board_id = ? AND user_id = ?", boardID, userID).
		First(&member).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &member, nil
}

// GetRole returns the user's membership role on the board, or an empty string
// when no membership row exists.
func (r *BoardUserRepository) GetRole(ctx context.Context, boardID, userID uuid.UUID) (string, error) {
	member, err := r.GetByBoardAndUser(ctx, boardID, userID)
	if err != nil {
		return "", err
	}
	if member == nil {
		return "", nil
	}
	return member.Role, nil
}

func (r *BoardUserRepository) GetByBoardID(ctx context.Context, boardID uuid.UUID) ([]model.BoardUser, error) {
	var members []model.BoardUser
	err := r.db.WithContext(ctx).Where("board_id = ?", boardID).Find(&members).Error
	return members, err
}

func (r *BoardUserRepository) UpdateRole(ctx context.Context, boardID, userID uuid.UUID, role string) error {
	result := r.db.WithContext(ctx).Model(&model.BoardUser{}).
		Where("board_id = ? AND user_id = ?", boardID, userID).
		Update("role", role)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrMemberNotFound
	}
	return nil
}

func (r *BoardUserRepository) Delete(ctx context.Context, boardID, userID uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Where("board_id = ? AND user_id = ?", boardID, userID).
		Delete(&model.BoardUser{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrMemberNotFound
	}
	return nil
}

func (r *BoardUserRepository) DeleteByBoard(ctx context.Context, boardID uuid.UUID) error {
	return r.db.WithContext(ctx).Where("board_id = ?", boardID).Delete(&model.BoardUser{}).Error
}
