// Package models defines the core data structures for users, collections,
// cards, feedback and profiles.
package models

import "time"

// User represents an application user with credentials.
type User struct {
	// ID is the unique identifier for the user.
	ID string
	// Email is the login chosen by the user.
	Email string
	// PasswordHash is the bcrypt hash of the user's password.
	PasswordHash []byte
	CreatedAt    time.Time
}

// Collection groups cards under a user-chosen title.
type Collection struct {
	// ID is assigned by the store.
	ID int64 `json:"id"`
	// Title is user-chosen and not unique.
	Title string `json:"title"`
	// Description is optional.
	Description *string `json:"description"`
	// UserID is the owner.
	UserID    string    `json:"user_id"`
	CreatedAt time.Time `json:"inserted_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Card is a term plus its learning text, owned by exactly one collection.
type Card struct {
	ID           int64 `json:"id"`
	CollectionID int64 `json:"collection_id"`
	// Content is the term being learned.
	Content string `json:"content"`
	// Explanation is the learning text shown on the back of the card.
	Explanation string    `json:"explanation"`
	UserID      string    `json:"user_id"`
	CreatedAt   time.Time `json:"inserted_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Feedback is a write-only rating and comment left by a user.
type Feedback struct {
	ID int64 `json:"id"`
	// Rating is 0..5 when present.
	Rating    *int      `json:"rating"`
	Text      string    `json:"feedback"`
	UserID    string    `json:"user_id"`
	CreatedAt time.Time `json:"inserted_at"`
}

// Profile holds per-user display data and the onboarding flag.
type Profile struct {
	// ID equals the user id.
	ID         string    `json:"id"`
	Username   *string   `json:"username"`
	FullName   *string   `json:"full_name"`
	Website    *string   `json:"website"`
	Onboarding bool      `json:"onboarding"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// ProfilePatch carries the optional fields of a profile update.
// Nil fields are left unchanged.
type ProfilePatch struct {
	Username   *string `json:"username"`
	FullName   *string `json:"full_name"`
	Website    *string `json:"website"`
	Onboarding *bool   `json:"onboarding"`
}

// Session is returned to clients after sign-up or sign-in.
type Session struct {
	AccessToken string    `json:"access_token"`
	ExpiresAt   time.Time `json:"expires_at"`
	UserID      string    `json:"user_id"`
}
