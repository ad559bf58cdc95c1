package repository

import (
	"context"
	"errors"

	"taskboard/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type WorkspaceRepository struct {
	db *gorm.DB
}

func NewWorkspaceRepository(db *gorm.DB) *WorkspaceRepository {
	return &WorkspaceRepository{db: db}
}

// WithTx returns a copy of the repository bound to the given transaction.
func (r *WorkspaceRepository) WithTx(tx *gorm.DB) *WorkspaceRepository {
	return &WorkspaceRepository{db: tx}
}

func (r *WorkspaceRepository) Create(ctx context.Context, ws *model.Workspace) error {
	return r.db.WithContext(ctx).Create(ws).Error
}

func (r *WorkspaceRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Workspace, error) {
	var ws model.Workspace
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&ws).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &ws, nil
}

func (r *WorkspaceRepository) GetOwned(ctx context.Context, ownerID uuid.UUID) ([]model.Workspace, error) {
	var workspaces []model.Workspace
	err := r.db.WithContext(ctx).Where("owner_id = ?", ownerID).Find(&workspaces).Error
	return workspaces, err
}

func (r *WorkspaceRepository) Update(ctx context.Context, ws *model.Workspace) error {
	return r.db.WithContext(ctx).Save(ws).Error
}

func (r *WorkspaceRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Workspace{}, "id = ?", id).Error
}
