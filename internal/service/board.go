package service

import (
	"context"
	"time"

	"taskboard/internal/access"
	"taskboard/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UpdateBoardInput struct {
	Name       *string
	Background *string
	IsArchived *bool
}

func (s *Service) CreateBoard(ctx context.Context, callerID, workspaceID uuid.UUID, name, background string) (*model.Board, error) {
	if err := validateTitle(name); err != nil {
		return nil, err
	}

	ws, err := s.workspaces.GetByID(ctx, workspaceID)
	if err != nil {
		return nil, err
	}
	if ws == nil || ws.OwnerID != callerID {
		return nil, notFound("workspace not found")
	}

	now := time.Now()
	board := &model.Board{
		ID:          uuid.New(),
		WorkspaceID: workspaceID,
		Name:        name,
		Background:  background,
		CreatedBy:   callerID,
		ModifiedBy:  callerID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.boards.Create(ctx, board); err != nil {
		return nil, err
	}
	return board, nil
}

func (s *Service) GetBoard(ctx context.Context, callerID, boardID uuid.UUID) (*model.Board, error) {
	board, _, err := s.boardForCaller(ctx, callerID, boardID, access.Viewer)
	return board, err
}

func (s *Service) ListBoards(ctx context.Context, callerID uuid.UUID) ([]model.Board, error) {
	return s.boards.GetVisible(ctx, callerID)
}

func (s *Service) UpdateBoard(ctx context.Context, callerID, boardID uuid.UUID, in UpdateBoardInput) (*model.Board, error) {
	board, _, err := s.boardForCaller(ctx, callerID, boardID, access.Owner)
	if err != nil {
		return nil, err
	}

	if in.Name != nil {
		if err := validateTitle(*in.Name); err != nil {
			return nil, err
		}
		board.Name = *in.Name
	}
	if in.Background != nil {
		board.Background = *in.Background
	}
	if in.IsArchived != nil {
		board.IsArchived = *in.IsArchived
	}
	board.ModifiedBy = callerID
	board.UpdatedAt = time.Now()

	if err := s.boards.Update(ctx, board); err != nil {
		return nil, err
	}
	return board, nil
}

// DeleteBoard removes a board together with its statuses, tasks and
// membership rows. The whole sibling structure goes away, so nothing is
// renumbered.
func (s *Service) DeleteBoard(ctx context.Context, callerID, boardID uuid.UUID) error {
	board, _, err := s.boardForCaller(ctx, callerID, boardID, access.Owner)
	if err != nil {
		return err
	}

	return s.inTx(ctx, func(tx *gorm.DB) error {
		if err := s.tasks.WithTx(tx).DeleteByBoard(ctx, board.ID); err != nil {
			return err
		}
		if err := s.statuses.WithTx(tx).DeleteByBoard(ctx, board.ID); err != nil {
			return err
		}
		if err := s.members.WithTx(tx).DeleteByBoard(ctx, board.ID); err != nil {
			return err
		}
		return s.boards.WithTx(tx).Delete(ctx, board.ID)
	})
}
