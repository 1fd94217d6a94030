package models

import "time"

// Roles recognized by the authorization middleware.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// SocialLink points to a user's profile on an external platform.
type SocialLink struct {
	Platform string `json:"platform"`
	URL      string `json:"url"`
}

// User is an account record. PasswordHash is never serialized, so the struct
// doubles as the public view returned by the API.
type User struct {
	ID           int          `json:"id"`
	Username     string       `json:"username"`
	Email        string       `json:"email"` // stored lowercase
	PasswordHash string       `json:"-"`     // never expose hash
	Role         string       `json:"role"`  // "user" | "admin"
	FirstName    string       `json:"first_name,omitempty"`
	LastName     string       `json:"last_name,omitempty"`
	Picture      string       `json:"picture,omitempty"`
	Bio          string       `json:"bio,omitempty"`
	Location     string       `json:"location,omitempty"`
	Website      string       `json:"website,omitempty"`
	SocialLinks  []SocialLink `json:"social_links,omitempty"`
	CreatedAt    time.Time    `json:"created_at"`
}
