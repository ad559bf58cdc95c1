package access

import (
	"context"
	"fmt"

	"taskboard/internal/model"

	"github.com/google/uuid"
)

// WorkspaceSource loads workspace rows. Returns nil, nil when absent.
type WorkspaceSource interface {
	GetByID(ctx context.Context, id uuid.UUID) (*model.Workspace, error)
}

// MemberSource looks up explicit board membership. Returns an empty string
// when the user has no membership row.
type MemberSource interface {
	GetRole(ctx context.Context, boardID, userID uuid.UUID) (string, error)
}

// Resolver computes a caller's effective role on a board from workspace
// ownership and explicit membership.
type Resolver struct {
	workspaces WorkspaceSource
	members    MemberSource
}

func NewResolver(workspaces WorkspaceSource, members MemberSource) *Resolver {
	return &Resolver{workspaces: workspaces, members: members}
}

// Resolve returns the caller's role on the given board. The workspace owner
// is checked first and short-circuits membership lookup: owners hold full
// rights over every board of their workspace whether or not a membership row
// exists for them.
func (r *Resolver) Resolve(ctx context.Context, callerID uuid.UUID, board *model.Board) (Role, error) {
	ws, err := r.workspaces.GetByID(ctx, board.WorkspaceID)
	if err != nil {
		return None, fmt.Errorf("load workspace: %w", err)
	}
	if ws != nil && ws.OwnerID == callerID {
		return Owner, nil
	}

	roleStr, err := r.members.GetRole(ctx, board.ID, callerID)
	if err != nil {
		return None, fmt.Errorf("load membership: %w", err)
	}
	if roleStr == "" {
		return None, nil
	}

	role, ok := ParseMemberRole(roleStr)
	if !ok {
		return None, fmt.Errorf("membership row for user %s on board %s has unknown role %q", callerID, board.ID, roleStr)
	}
	return role, nil
}
