package models

import (
	"github.com/golang-jwt/jwt/v4"
	"gorm.io/gorm"
)

// Actor kinds distinguish the two identity classes sharing the platform.
const (
	ActorKindMember    = "member"
	ActorKindJobSeeker = "job_seeker"
)

type User struct {
	gorm.Model  `json:"-"`
	ID          uint   `json:"id" gorm:"primaryKey"`
	Name        string `json:"name"`
	Email       string `json:"email" gorm:"uniqueIndex"` // Ensure email is unique across all users
	Password    string `json:"-"`                        // Store hashed password, ignore for JSON serialization
	Headline    string `json:"headline"`
	Category    string `json:"category"` // trade or discipline, e.g. "architect", "electrician"
	ImageURL    string `json:"image_url"`
	Location    string `json:"location"`
	Company     string `json:"company,omitempty"`
	FirebaseUID string `json:"firebase_uid,omitempty" gorm:"index"` // Link to Firebase User UID when firebase-login is used
}

// UserSummary is the public profile slice attached to incoming requests,
// connection lists and conversations.
type UserSummary struct {
	ID       uint   `json:"id"`
	Name     string `json:"name"`
	Headline string `json:"headline"`
	ImageURL string `json:"image_url"`
	Category string `json:"category"`
}

// ToSummary strips a user down to its public profile fields
func (u *User) ToSummary() UserSummary {
	return UserSummary{
		ID:       u.ID,
		Name:     u.Name,
		Headline: u.Headline,
		ImageURL: u.ImageURL,
		Category: u.Category,
	}
}

type RegisterRequest struct {
	Name     string `json:"name" validate:"required,min=2,max=50"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Headline string `json:"headline" validate:"omitempty,max=120"`
	Category string `json:"category" validate:"omitempty,max=50"`
	Location string `json:"location" validate:"omitempty,max=100"`
	Company  string `json:"company" validate:"omitempty,max=100"`
}

type SignInRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type FirebaseLoginRequest struct {
	Name     string `json:"name" validate:"omitempty,min=2,max=50"`
	Category string `json:"category" validate:"omitempty,max=50"`
}

type UpdateProfileRequest struct {
	Name     string `json:"name,omitempty" validate:"omitempty,min=2,max=50"`
	Headline string `json:"headline,omitempty" validate:"omitempty,max=120"`
	Category string `json:"category,omitempty" validate:"omitempty,max=50"`
	ImageURL string `json:"image_url,omitempty" validate:"omitempty,url"`
	Location string `json:"location,omitempty" validate:"omitempty,max=100"`
	Company  string `json:"company,omitempty" validate:"omitempty,max=100"`
}

// JwtCustomClaims are custom claims extending standard jwt.RegisteredClaims
type JwtCustomClaims struct {
	UserID uint   `json:"user_id"`
	Email  string `json:"email"`
	Kind   string `json:"kind"` // member or job_seeker
	jwt.RegisteredClaims
}
