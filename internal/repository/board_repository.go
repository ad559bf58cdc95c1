package repository

import (
	"context"
	"errors"

	"taskboard/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type BoardRepository struct {
	db *gorm.DB
}

func NewBoardRepository(db *gorm.DB) *BoardRepository {
	return &BoardRepository{db: db}
}

// WithTx returns a copy of the repository bound to the given transaction.
func (r *BoardRepository) WithTx(tx *gorm.DB) *BoardRepository {
	return &BoardRepository{db: tx}
}

func (r *BoardRepository) Create(ctx context.Context, board *model.Board) error {
	return r.db.WithContext(ctx).Create(board).Error
}

func (r *BoardRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Board, error) {
	var board model.Board
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&board).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &board, nil
}

func (r *BoardRepository) GetByWorkspaceID(ctx context.Context, workspaceID uuid.UUID) ([]model.Board, error) {
	var boards []model.Board
	err := r.db.WithContext(ctx).Where("workspace_id = ?", workspaceID).Find(&boards).Error
	return boards, err
}

// GetVisible returns every board the user either owns through a workspace or
// holds a membership row on.
func (r *BoardRepository) GetVisible(ctx context.Context, userID uuid.UUID) ([]model.Board, error) {
	var boards []model.Board
	err := r.db.WithContext(ctx).
		Distinct("boards.*").
		Joins("JOIN workspaces ON workspaces.id = boards.workspace_id").
		Joins("LEFT JOIN board_users ON board_users.board_id = boards.id").
		Where("workspaces.owner_id = ? OR board_users.user_id = ?", userID, userID).
		Find(&boards).Error
	return boards, err
}

func (r *BoardRepository) Update(ctx context.Context, board *model.Board) error {
	return r.db.WithContext(ctx).Save(board).Error
}

func (r *BoardRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Board{}, "id = ?", id).Error
}

func (r *BoardRepository) DeleteByWorkspace(ctx context.Context, workspaceID uuid.UUID) error {
	return r.db.WithContext(ctx).Where("workspace_id = ?", workspaceID).Delete(&model.Board{}).Error
}
