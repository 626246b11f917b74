package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type Permission string

const (
	PermissionAdmin            Permission = "ADMIN"
	PermissionUser             Permission = "USER"
	PermissionItemCreate       Permission = "ITEMCREATE"
	PermissionItemUpdate       Permission = "ITEMUPDATE"
	PermissionItemDelete       Permission = "ITEMDELETE"
	PermissionPermissionUpdate Permission = "PERMISSIONUPDATE"
)

// AllPermissions is the full vocabulary a user may hold.
var AllPermissions = []Permission{
	PermissionAdmin,
	PermissionUser,
	PermissionItemCreate,
	PermissionItemUpdate,
	PermissionItemDelete,
	PermissionPermissionUpdate,
}

func (p Permission) Valid() bool {
	for _, known := range AllPermissions {
		if p == known {
			return true
		}
	}
	return false
}

type User struct {
	ID           uuid.UUID                       `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Email        string                          `json:"email" gorm:"uniqueIndex;not null"`
	Name         string                          `json:"name" gorm:"not null"`
	PasswordHash string                          `json:"-" gorm:"not null"`
	Permissions  datatypes.JSONSlice[Permission] `json:"permissions"`

	// ResetToken and ResetTokenExpiry are both set or both nil.
	ResetToken       *string    `json:"-" gorm:"index"`
	ResetTokenExpiry *time.Time `json:"-"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// HasAny reports whether the user holds at least one of the given permissions.
func (u *User) HasAny(required ...Permission) bool {
	for _, need := range required {
		for _, have := range u.Permissions {
			if have == need {
				return true
			}
		}
	}
	return false
}
