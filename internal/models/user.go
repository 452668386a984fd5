package models

import (
	"time"
)

type Role string

const (
	RoleAdmin  Role = "admin"
	RoleMember Role = "member"
)

type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Phone        *string   `json:"phone,omitempty"`
	PasswordHash string    `json:"-"` // never exposed in JSON
	Role         Role      `json:"role"`
	FamilyID     *string   `json:"family_id,omitempty"`
	Family       *Family   `json:"family,omitempty"`
	IsLogin      bool      `json:"is_login"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type CreateUserParams struct {
	Name         string
	Email        string
	Phone        *string
	PasswordHash string
	Role         Role
}

type UpdateUserParams struct {
	Name  *string
	Phone *string
}
