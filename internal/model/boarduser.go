package model

import (
	"time"

	"github.com/google/uuid"
)

// BoardUser is an explicit membership grant on a board. Workspace owners are
// never stored here: ownership is resolved from the workspace row.
type BoardUser struct {
	ID        uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	BoardID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_board_user"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_board_user"`
	Role      string    `gorm:"not null;check:role IN ('viewer', 'editor')"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

// Membership roles grantable on a board
const (
	RoleViewer = "viewer" // read-only access
	RoleEditor = "editor" // may create, edit and move tasks
)
