package service

import (
	"context"
	"errors"
	"time"

	"taskboard/internal/access"
	"taskboard/internal/model"
	"taskboard/internal/position"
	"taskboard/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CreateTaskInput struct {
	Title       string
	Description string
	Priority    int
	DueDate     *time.Time
	AssigneeID  *uuid.UUID
	StatusID    *uuid.UUID
}

type UpdateTaskInput struct {
	Title       *string
	Description *string
	Priority    *int
	DueDate     *time.Time
	AssigneeID  *uuid.UUID
	StatusID    *uuid.UUID
	Position    *int
}

// CreateTask appends a task to the requested status, or to the board's first
// status when none is given.
func (s *Service) CreateTask(ctx context.Context, callerID, boardID uuid.UUID, in CreateTaskInput) (*model.BoardTask, error) {
	board, _, err := s.boardForCaller(ctx, callerID, boardID, access.Editor)
	if err != nil {
		return nil, err
	}
	if err := validateTitle(in.Title); err != nil {
		return nil, err
	}

	var status *model.BoardStatus
	if in.StatusID != nil {
		status, err = s.statuses.GetByID(ctx, *in.StatusID)
		if err != nil {
			return nil, err
		}
		if status == nil || status.BoardID != board.ID {
			return nil, validation("invalid status")
		}
	} else {
		status, err = s.statuses.FirstByBoard(ctx, board.ID)
		if err != nil {
			return nil, err
		}
		if status == nil {
			return nil, validation("board has no statuses")
		}
	}

	now := time.Now()
	task := &model.BoardTask{
		ID:          uuid.New(),
		BoardID:     board.ID,
		StatusID:    status.ID,
		Title:       in.Title,
		Description: in.Description,
		Priority:    in.Priority,
		DueDate:     in.DueDate,
		AssigneeID:  in.AssigneeID,
		CreatedBy:   callerID,
		ModifiedBy:  callerID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	err = s.inTx(ctx, func(tx *gorm.DB) error {
		txTasks := s.tasks.WithTx(tx)
		count, err := txTasks.CountByStatus(ctx, status.ID)
		if err != nil {
			return err
		}
		task.Position = position.Append(int(count))
		return txTasks.Create(ctx, task)
	})
	if err != nil {
		return nil, err
	}
	return task, nil
}

func (s *Service) GetTask(ctx context.Context, callerID, taskID uuid.UUID) (*model.BoardTask, error) {
	task, err := s.loadTask(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if _, _, err := s.boardForCaller(ctx, callerID, task.BoardID, access.Viewer); err != nil {
		return nil, concealAs(err, "task not found")
	}
	return task, nil
}

func (s *Service) ListBoardTasks(ctx context.Context, callerID, boardID uuid.UUID) ([]model.BoardTask, error) {
	if _, _, err := s.boardForCaller(ctx, callerID, boardID, access.Viewer); err != nil {
		return nil, err
	}
	return s.tasks.GetByBoardID(ctx, boardID)
}

// UpdateTask edits task fields and, when the status or position changes,
// re-indexes the affected sibling groups. All row changes of one call commit
// atomically.
//
// A status change always lands the task at the end of the target column; any
// supplied position is ignored in that case. Clients that drop a card at a
// specific row of another column will see it appended instead, matching the
// behavior boards have always had.
func (s *Service) UpdateTask(ctx context.Context, callerID, taskID uuid.UUID, in UpdateTaskInput) (*model.BoardTask, error) {
	task, err := s.loadTask(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if _, _, err := s.boardForCaller(ctx, callerID, task.BoardID, access.Editor); err != nil {
		return nil, concealAs(err, "task not found")
	}
	if in.Title != nil {
		if err := validateTitle(*in.Title); err != nil {
			return nil, err
		}
	}

	var dest *model.BoardStatus
	if in.StatusID != nil && *in.StatusID != task.StatusID {
		dest, err = s.statuses.GetByID(ctx, *in.StatusID)
		if err != nil {
			return nil, err
		}
		if dest == nil || dest.BoardID != task.BoardID {
			return nil, validation("invalid status")
		}
	}

	err = s.inTx(ctx, func(tx *gorm.DB) error {
		txTasks := s.tasks.WithTx(tx)

		// Positions are only trustworthy when read inside the
		// transaction, so re-load the task and its siblings here.
		current, err := txTasks.GetByID(ctx, task.ID)
		if err != nil {
			return err
		}

		if in.Title != nil {
			current.Title = *in.Title
		}
		if in.Description != nil {
			current.Description = *in.Description
		}
		if in.Priority != nil {
			current.Priority = *in.Priority
		}
		if in.DueDate != nil {
			current.DueDate = in.DueDate
		}
		if in.AssigneeID != nil {
			current.AssigneeID = in.AssigneeID
		}

		switch {
		case dest != nil && dest.ID != current.StatusID:
			if err := s.moveAcrossTx(ctx, txTasks, current, dest.ID); err != nil {
				return err
			}
		case in.Position != nil && *in.Position != current.Position:
			if err := s.moveWithinTx(ctx, txTasks, current, *in.Position); err != nil {
				return err
			}
		}

		current.ModifiedBy = callerID
		current.UpdatedAt = time.Now()
		if err := txTasks.Update(ctx, current); err != nil {
			return err
		}
		*task = *current
		return nil
	})
	if err != nil {
		if errors.Is(err, repository.ErrTaskNotFound) {
			return nil, notFound("task not found")
		}
		return nil, err
	}
	return task, nil
}

// MoveTask changes a task's status and/or position.
func (s *Service) MoveTask(ctx context.Context, callerID, taskID uuid.UUID, newStatusID *uuid.UUID, newPosition *int) (*model.BoardTask, error) {
	return s.UpdateTask(ctx, callerID, taskID, UpdateTaskInput{StatusID: newStatusID, Position: newPosition})
}

// DeleteTask removes a task and compacts the positions of its former column.
func (s *Service) DeleteTask(ctx context.Context, callerID, taskID uuid.UUID) error {
	task, err := s.loadTask(ctx, taskID)
	if err != nil {
		return err
	}
	if _, _, err := s.boardForCaller(ctx, callerID, task.BoardID, access.Editor); err != nil {
		return concealAs(err, "task not found")
	}

	err = s.inTx(ctx, func(tx *gorm.DB) error {
		txTasks := s.tasks.WithTx(tx)

		current, err := txTasks.GetByID(ctx, task.ID)
		if err != nil {
			return err
		}
		if err := txTasks.Delete(ctx, current.ID); err != nil {
			return err
		}

		survivors, err := txTasks.GetByStatusID(ctx, current.StatusID)
		if err != nil {
			return err
		}
		writes := position.RemoveAndCompact(placementsOfTasks(survivors), current.Position)
		return txTasks.UpdatePositions(ctx, writes)
	})
	if errors.Is(err, repository.ErrTaskNotFound) {
		return notFound("task not found")
	}
	return err
}

// moveAcrossTx compacts the source column and appends the task at the end of
// the destination. The moving row itself is not written here: its new status
// and position are set on the struct and saved by the caller.
func (s *Service) moveAcrossTx(ctx context.Context, txTasks *repository.TaskRepository, task *model.BoardTask, destStatusID uuid.UUID) error {
	source, err := txTasks.GetByStatusID(ctx, task.StatusID)
	if err != nil {
		return err
	}
	dest, err := txTasks.GetByStatusID(ctx, destStatusID)
	if err != nil {
		return err
	}

	srcWrites, destWrites := position.MoveAcross(
		placementsOfTasks(source), placementsOfTasks(dest), task.ID, len(dest))

	writes := make([]position.Placement, 0, len(srcWrites)+len(destWrites))
	for _, w := range append(srcWrites, destWrites...) {
		if w.ID == task.ID {
			task.Position = w.Position
			continue
		}
		writes = append(writes, w)
	}
	task.StatusID = destStatusID
	return txTasks.UpdatePositions(ctx, writes)
}

// moveWithinTx shifts the affected range of the task's own column. The moving
// row itself is saved by the caller.
func (s *Service) moveWithinTx(ctx context.Context, txTasks *repository.TaskRepository, task *model.BoardTask, requested int) error {
	siblings, err := txTasks.GetByStatusID(ctx, task.StatusID)
	if err != nil {
		return err
	}

	all := position.MoveWithin(placementsOfTasks(siblings), task.ID, requested)
	writes := make([]position.Placement, 0, len(all))
	for _, w := range all {
		if w.ID == task.ID {
			task.Position = w.Position
			continue
		}
		writes = append(writes, w)
	}
	return txTasks.UpdatePositions(ctx, writes)
}

func (s *Service) loadTask(ctx context.Context, taskID uuid.UUID) (*model.BoardTask, error) {
	task, err := s.tasks.GetByID(ctx, taskID)
	if errors.Is(err, repository.ErrTaskNotFound) {
		return nil, notFound("task not found")
	}
	if err != nil {
		return nil, err
	}
	return task, nil
}

func placementsOfTasks(tasks []model.BoardTask) []position.Placement {
	out := make([]position.Placement, len(tasks))
	for i, t := range tasks {
		out[i] = position.Placement{ID: t.ID, Position: t.Position}
	}
	return out
}
