package model

import (
	"time"

	"github.com/google/uuid"
)

// BoardTask is one kanban card. StatusID always references a status of the
// same board; positions of the tasks of a status are a dense 0..n-1 sequence.
type BoardTask struct {
	ID          uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	BoardID     uuid.UUID `gorm:"type:uuid;not null;index"`
	StatusID    uuid.UUID `gorm:"type:uuid;not null;index"`
	Title       string    `gorm:"not null"`
	Description string
	Priority    int        `gorm:"not null;default:0"`
	DueDate     *time.Time
	AssigneeID  *uuid.UUID `gorm:"type:uuid"`
	Position    int        `gorm:"not null"`
	CreatedBy   uuid.UUID  `gorm:"type:uuid;not null"`
	ModifiedBy  uuid.UUID  `gorm:"type:uuid;not null"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
