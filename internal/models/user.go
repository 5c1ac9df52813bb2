// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
)

// Role represents a user's permission level in the system.
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleStaff  Role = "staff"
	RoleClient Role = "client"
)

// Valid reports whether the role is one of the known values.
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleStaff || r == RoleClient
}

// Permissions describes what a role may do.
type Permissions struct {
	CanUpload           bool `json:"canUpload"`
	CanDelete           bool `json:"canDelete"`
	CanDownload         bool `json:"canDownload"`
	CanShare            bool `json:"canShare"`
	CanManageCategories bool `json:"canManageCategories"`
	CanManageUsers      bool `json:"canManageUsers"`
	CanViewAnalytics    bool `json:"canViewAnalytics"`
	CanFavorite         bool `json:"canFavorite"`
}

// rolePermissions is the fixed permission matrix per role.
var rolePermissions = map[Role]Permissions{
	RoleAdmin: {
		CanUpload: true, CanDelete: true, CanDownload: true, CanShare: true,
		CanManageCategories: true, CanManageUsers: true, CanViewAnalytics: true,
		CanFavorite: true,
	},
	RoleStaff: {
		CanDownload: true, CanShare: true, CanFavorite: true,
	},
	RoleClient: {
		CanFavorite: true,
	},
}

// Permissions returns the permission set for the role. Unknown roles get
// an empty (deny-all) set.
func (r Role) Permissions() Permissions {
	return rolePermissions[r]
}

// User represents an account with a role claim. Favorites are stored as a
// set of media IDs in a join table and enriched by join at read time.
type User struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"` // Never serialize the hash
	DisplayName  string    `json:"display_name"`
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// IsAdmin returns true if the user has the admin role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
