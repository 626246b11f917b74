package domain

import (
	"time"

	"github.com/google/uuid"
)

// CartItem holds at most one row per (user, item) pair; repeated adds
// increment Quantity instead of inserting a duplicate.
type CartItem struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	UserID    uuid.UUID `json:"userId" gorm:"type:uuid;not null;uniqueIndex:idx_cart_user_item"`
	ItemID    uuid.UUID `json:"itemId" gorm:"type:uuid;not null;uniqueIndex:idx_cart_user_item"`
	Quantity  int       `json:"quantity" gorm:"not null;default:1"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	// Relations
	Item *Item `json:"item,omitempty" gorm:"foreignKey:ItemID"`
	User *User `json:"user,omitempty" gorm:"foreignKey:UserID"`
}
