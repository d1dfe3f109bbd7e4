package models

import "time"

// Associate is a one-directional saved contact. Unlike a connection there is
// no approval step and the target's list is untouched.
type Associate struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	OwnerID   uint      `json:"owner_id" gorm:"index;uniqueIndex:idx_owner_target"`
	TargetID  uint      `json:"target_id" gorm:"index;uniqueIndex:idx_owner_target"`
	CreatedAt time.Time `json:"created_at"`
}

// AddAssociateRequest defines the request body for saving a contact
type AddAssociateRequest struct {
	TargetID uint `json:"target_id" validate:"required"`
}
