package model

import (
	"time"

	"github.com/google/uuid"
)

// Admin decisions over a pending registration.
const (
	ActionApproved    = "approved"
	ActionDisapproved = "disapproved"
)

// ActionHistory is the append-only audit log of admin decisions. A
// registration with a history row is no longer pending; deleting the row
// (reports view) returns it to the queue.
//
// Name/Phone/Country are denormalized snapshots taken at decision time so the
// report survives later edits or deletions of the registration.
type ActionHistory struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	RegistrationID uuid.UUID `gorm:"type:uuid;uniqueIndex;not null"`
	Tier           Tier      `gorm:"type:varchar(20);index;not null"`
	Name           string    `gorm:"not null"`
	Phone          string    `gorm:"not null"`
	Country        string    `gorm:"not null"`
	ActionType     string    `gorm:"type:varchar(20);not null"`
	AdminEmail     string    `gorm:"not null"`
	CreatedAt      time.Time

	Registration *Registration `gorm:"foreignKey:RegistrationID"`
}
