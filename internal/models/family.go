package models

import (
	"time"
)

type Family struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type CreateFamilyParams struct {
	Name string
	Slug string
}

type UpdateFamilyParams struct {
	Name *string
	Slug *string
}

// FamilyInvite is a short-lived join code for a family. Codes are purged
// after ExpiresAt by the scheduler.
type FamilyInvite struct {
	Code      string    `json:"invite_code"`
	FamilyID  string    `json:"-"`
	ExpiresAt time.Time `json:"expires_at"`
	CreatedAt time.Time `json:"-"`
}
