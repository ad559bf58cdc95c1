package model

import (
	"time"

	"github.com/google/uuid"
)

// BoardStatus is one kanban column. Positions of the statuses of a board are
// always a dense 0..n-1 sequence.
type BoardStatus struct {
	ID        uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	BoardID   uuid.UUID `gorm:"type:uuid;not null;index"`
	Title     string    `gorm:"not null"`
	Position  int       `gorm:"not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
