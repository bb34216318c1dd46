package models

import (
	"time"
)

// Default profile images assigned when an account does not provide its own.
const (
	DefaultImageURL       = "/static/images/default-pic.png"
	DefaultHeaderImageURL = "/static/images/warbler-hero.jpg"
)

// Account represents an account record in the database
type Account struct {
	ID             int64     `json:"id" db:"id"`                             // Primary key
	Username       string    `json:"username" db:"username"`                 // Unique username
	Email          string    `json:"email" db:"email"`                       // Unique email
	PasswordHash   string    `json:"-" db:"password_hash"`                   // Bcrypt hash, never serialized
	ImageURL       string    `json:"image_url" db:"image_url"`               // Profile picture
	HeaderImageURL string    `json:"header_image_url" db:"header_image_url"` // Profile header picture
	Bio            string    `json:"bio" db:"bio"`                           // Free-form bio
	Location       string    `json:"location" db:"location"`                 // Free-form location
	CreatedAt      time.Time `json:"created_at" db:"created_at"`             // Creation timestamp
}

// SignupInput holds the fields accepted when creating an account.
type SignupInput struct {
	Username string `json:"username" validate:"required,safetext,max=50"`
	Email    string `json:"email" validate:"required,safetext,email,max=100"`
	Password string `json:"password" validate:"required,min=6"`
	ImageURL string `json:"image_url" validate:"omitempty,safetext,max=2048"`
}

// ProfileUpdate holds the fields of a profile edit. Password is the
// account's current password and is only used for re-authentication.
type ProfileUpdate struct {
	Password       string `json:"password" validate:"required"`
	Username       string `json:"username" validate:"required,safetext,max=50"`
	Email          string `json:"email" validate:"required,safetext,email,max=100"`
	ImageURL       string `json:"image_url" validate:"omitempty,safetext,max=2048"`
	HeaderImageURL string `json:"header_image_url" validate:"omitempty,safetext,max=2048"`
	Bio            string `json:"bio" validate:"safetext,max=1000"`
	Location       string `json:"location" validate:"safetext,max=100"`
}
