package service

import (
	"context"
	"errors"

	"taskboard/internal/access"
	"taskboard/internal/model"
	"taskboard/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Member is a board membership joined with the user it belongs to.
type Member struct {
	ID       uuid.UUID
	UserID   uuid.UUID
	Username string
	Role     string
}

// AddBoardMember grants a user access to a board. Only the workspace owner
// may grant membership; the owner themselves never gets a membership row.
func (s *Service) AddBoardMember(ctx context.Context, callerID, boardID uuid.UUID, username, role string) (*Member, error) {
	board, _, err := s.boardForCaller(ctx, callerID, boardID, access.Owner)
	if err != nil {
		return nil, err
	}

	if _, ok := access.ParseMemberRole(role); !ok {
		return nil, validation("role must be editor or viewer")
	}

	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, notFound("user not found")
	}
	if user.ID == callerID {
		return nil, validation("the board owner cannot be added as a member")
	}

	member := &model.BoardUser{
		ID:      uuid.New(),
		BoardID: board.ID,
		UserID:  user.ID,
		Role:    role,
	}

	// The duplicate check and the insert share one transaction; a concurrent
	// add that slips past the check still trips the (board_id,user_id) unique
	// constraint, which surfaces as the same Conflict.
	err = s.inTx(ctx, func(tx *gorm.DB) error {
		txMembers := s.members.WithTx(tx)
		existing, err := txMembers.GetByBoardAndUser(ctx, board.ID, user.ID)
		if err != nil {
			return err
		}
		if existing != nil {
			return conflict("user is already a member of this board")
		}
		return txMembers.Create(ctx, member)
	})
	if err != nil {
		if isUniqueViolation(err) {
			return nil, conflict("user is already a member of this board")
		}
		return nil, err
	}

	return &Member{
		ID:       member.ID,
		UserID:   user.ID,
		Username: user.Username,
		Role:     member.Role,
	}, nil
}

func (s *Service) RemoveBoardMember(ctx context.Context, callerID, boardID, userID uuid.UUID) error {
	if _, _, err := s.boardForCaller(ctx, callerID, boardID, access.Owner); err != nil {
		return err
	}

	err := s.members.Delete(ctx, boardID, userID)
	if errors.Is(err, repository.ErrMemberNotFound) {
		return notFound("board member not found")
	}
	return err
}

func (s *Service) ChangeMemberRole(ctx context.Context, callerID, boardID, userID uuid.UUID, role string) error {
	if _, _, err := s.boardForCaller(ctx, callerID, boardID, access.Owner); err != nil {
		return err
	}
	if _, ok := access.ParseMemberRole(role); !ok {
		return validation("role must be editor or viewer")
	}

	err := s.members.UpdateRole(ctx, boardID, userID, role)
	if errors.Is(err, repository.ErrMemberNotFound) {
		return notFound("board member not found")
	}
	return err
}

func (s *Service) ListBoardMembers(ctx context.Context, callerID, boardID uuid.UUID) ([]Member, error) {
	if _, _, err := s.boardForCaller(ctx, callerID, boardID, access.Viewer); err != nil {
		return nil, err
	}

	rows, err := s.members.GetByBoardID(ctx, boardID)
	if err != nil {
		return nil, err
	}

	members := make([]Member, 0, len(rows))
	for _, row := range rows {
		member := Member{ID: row.ID, UserID: row.UserID, Role: row.Role}
		user, err := s.users.GetByID(ctx, row.UserID)
		if err != nil {
			return nil, err
		}
		if user != nil {
			member.Username = user.Username
		}
		members = append(members, member)
	}
	return members, nil
}
