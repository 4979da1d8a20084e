package models

import (
	"time"
)

// Auth providers a user can be created through
const (
	ProviderCredentials = "credentials"
	ProviderGoogle      = "google"
)

// User represents an account that can sign in to the site
type User struct {
	ID        string    `gorm:"primaryKey" json:"id"`
	Email     string    `gorm:"uniqueIndex;not null" json:"email"`
	Password  string    `json:"-"`
	Name      string    `json:"name"`
	Provider  string    `json:"provider" gorm:"default:'credentials'"`
	CreatedAt time.Time `json:"created_at"`
}

// PublicUser is the subset of a user returned by the API
type PublicUser struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

// Public strips credentials from the user
func (u *User) Public() PublicUser {
	return PublicUser{ID: u.ID, Email: u.Email, Name: u.Name}
}
