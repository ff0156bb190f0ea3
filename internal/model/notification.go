package model

import (
	"time"

	"github.com/google/uuid"
)

// Notification is a welcome-banner entry shown to visitors in OrderIndex
// order. Unpublished rows are only visible in the admin panel.
type Notification struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Title       string    `gorm:"not null"`
	Description string    `gorm:"not null"`
	VideoURL    *string
	Published   bool `gorm:"not null;default:false"`
	OrderIndex  int  `gorm:"not null;default:0;index"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
