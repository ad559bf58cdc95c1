package service

import (
	"context"
	"time"

	"taskboard/internal/access"
	"taskboard/internal/model"
	"taskboard/internal/position"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CreateStatus appends a new column at the end of the board. The count and
// the insert share one transaction so two concurrent creates cannot claim the
// same position.
func (s *Service) CreateStatus(ctx context.Context, callerID, boardID uuid.UUID, title string) (*model.BoardStatus, error) {
	board, _, err := s.boardForCaller(ctx, callerID, boardID, access.Owner)
	if err != nil {
		return nil, err
	}
	if err := validateTitle(title); err != nil {
		return nil, err
	}

	now := time.Now()
	status := &model.BoardStatus{
		ID:        uuid.New(),
		BoardID:   board.ID,
		Title:     title,
		CreatedAt: now,
		UpdatedAt: now,
	}

	err = s.inTx(ctx, func(tx *gorm.DB) error {
		count, err := s.statuses.WithTx(tx).CountByBoard(ctx, board.ID)
		if err != nil {
			return err
		}
		status.Position = position.Append(int(count))
		return s.statuses.WithTx(tx).Create(ctx, status)
	})
	if err != nil {
		return nil, err
	}
	return status, nil
}

func (s *Service) RenameStatus(ctx context.Context, callerID, statusID uuid.UUID, title string) (*model.BoardStatus, error) {
	status, err := s.statuses.GetByID(ctx, statusID)
	if err != nil {
		return nil, err
	}
	if status == nil {
		return nil, notFound("status not found")
	}
	if _, _, err := s.boardForCaller(ctx, callerID, status.BoardID, access.Owner); err != nil {
		return nil, concealAs(err, "status not found")
	}
	if err := validateTitle(title); err != nil {
		return nil, err
	}

	status.Title = title
	status.UpdatedAt = time.Now()
	if err := s.statuses.Update(ctx, status); err != nil {
		return nil, err
	}
	return status, nil
}

// DeleteStatus removes a column and every task in it, then compacts the
// positions of the board's remaining columns. The cascaded tasks disappear
// with their whole group, so only the status siblings are renumbered.
func (s *Service) DeleteStatus(ctx context.Context, callerID, statusID uuid.UUID) error {
	status, err := s.statuses.GetByID(ctx, statusID)
	if err != nil {
		return err
	}
	if status == nil {
		return notFound("status not found")
	}
	if _, _, err := s.boardForCaller(ctx, callerID, status.BoardID, access.Owner); err != nil {
		return concealAs(err, "status not found")
	}

	return s.inTx(ctx, func(tx *gorm.DB) error {
		txStatuses := s.statuses.WithTx(tx)

		// Re-read inside the transaction: the position may have moved
		// since the pre-transaction load.
		current, err := txStatuses.GetByID(ctx, status.ID)
		if err != nil {
			return err
		}
		if current == nil {
			return notFound("status not found")
		}

		if err := s.tasks.WithTx(tx).DeleteByStatus(ctx, current.ID); err != nil {
			return err
		}
		if err := txStatuses.Delete(ctx, current.ID); err != nil {
			return err
		}

		survivors, err := txStatuses.GetByBoardID(ctx, current.BoardID)
		if err != nil {
			return err
		}
		writes := position.RemoveAndCompact(placementsOfStatuses(survivors), current.Position)
		return txStatuses.UpdatePositions(ctx, writes)
	})
}

func (s *Service) ListStatuses(ctx context.Context, callerID, boardID uuid.UUID) ([]model.BoardStatus, error) {
	if _, _, err := s.boardForCaller(ctx, callerID, boardID, access.Viewer); err != nil {
		return nil, err
	}
	return s.statuses.GetByBoardID(ctx, boardID)
}

func placementsOfStatuses(statuses []model.BoardStatus) []position.Placement {
	out := make([]position.Placement, len(statuses))
	for i, st := range statuses {
		out[i] = position.Placement{ID: st.ID, Position: st.Position}
	}
	return out
}
