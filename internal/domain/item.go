package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type Item struct {
	ID          uuid.UUID                   `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Title       string                      `json:"title" gorm:"not null"`
	Description string                      `json:"description"`
	Price       int64                       `json:"price" gorm:"not null"` // minor currency units
	Image       string                      `json:"image"`
	LargeImage  string                      `json:"largeImage"`
	Images      datatypes.JSONSlice[string] `json:"images"`
	UserID      uuid.UUID                   `json:"userId" gorm:"type:uuid;not null;index"`
	CreatedAt   time.Time                   `json:"createdAt"`
	UpdatedAt   time.Time                   `json:"updatedAt"`

	// Relations
	User *User `json:"user,omitempty" gorm:"foreignKey:UserID"`
}
