package service

import (
	"context"
	"time"

	"taskboard/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

func (s *Service) CreateWorkspace(ctx context.Context, callerID uuid.UUID, name string) (*model.Workspace, error) {
	if err := validateTitle(name); err != nil {
		return nil, err
	}

	now := time.Now()
	ws := &model.Workspace{
		ID:        uuid.New(),
		OwnerID:   callerID,
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.workspaces.Create(ctx, ws); err != nil {
		return nil, err
	}
	return ws, nil
}

func (s *Service) ListWorkspaces(ctx context.Context, callerID uuid.UUID) ([]model.Workspace, error) {
	return s.workspaces.GetOwned(ctx, callerID)
}

// DeleteWorkspace removes a workspace and everything under it: boards,
// statuses, tasks and membership rows. Cascaded rows are dropped wholesale,
// so no renumbering takes place.
func (s *Service) DeleteWorkspace(ctx context.Context, callerID, workspaceID uuid.UUID) error {
	ws, err := s.workspaces.GetByID(ctx, workspaceID)
	if err != nil {
		return err
	}
	if ws == nil || ws.OwnerID != callerID {
		return notFound("workspace not found")
	}

	return s.inTx(ctx, func(tx *gorm.DB) error {
		boards, err := s.boards.WithTx(tx).GetByWorkspaceID(ctx, workspaceID)
		if err != nil {
			return err
		}
		for _, board := range boards {
			if err := s.tasks.WithTx(tx).DeleteByBoard(ctx, board.ID); err != nil {
				return err
			}
			if err := s.statuses.WithTx(tx).DeleteByBoard(ctx, board.ID); err != nil {
				return err
			}
			if err := s.members.WithTx(tx).DeleteByBoard(ctx, board.ID); err != nil {
				return err
			}
		}
		if err := s.boards.WithTx(tx).DeleteByWorkspace(ctx, workspaceID); err != nil {
			return err
		}
		return s.workspaces.WithTx(tx).Delete(ctx, workspaceID)
	})
}
