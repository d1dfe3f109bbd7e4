package models

import "gorm.io/gorm"

// JobSeeker extends a user record for the job-seeker identity class. The
// graph and messaging components always key on the user ID; this row only
// carries the seeker-specific profile fields.
type JobSeeker struct {
	gorm.Model   `json:"-"`
	ID           uint   `json:"id" gorm:"primaryKey"`
	UserID       uint   `json:"user_id" gorm:"uniqueIndex"`
	DesiredRole  string `json:"desired_role"`
	Trades       string `json:"trades"` // comma separated, e.g. "carpentry,joinery"
	Availability string `json:"availability"`
	ResumeURL    string `json:"resume_url,omitempty"`
}

type RegisterJobSeekerRequest struct {
	Name         string `json:"name" validate:"required,min=2,max=50"`
	Email        string `json:"email" validate:"required,email"`
	Password     string `json:"password" validate:"required,min=8"`
	DesiredRole  string `json:"desired_role" validate:"required,max=100"`
	Trades       string `json:"trades" validate:"omitempty,max=200"`
	Availability string `json:"availability" validate:"omitempty,max=50"`
	Location     string `json:"location" validate:"omitempty,max=100"`
}
