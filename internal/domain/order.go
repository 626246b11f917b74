package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Order is immutable after creation. Total mirrors the amount the payment
// gateway reports as captured, not a locally recomputed sum.
type Order struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	UserID    uuid.UUID `json:"userId" gorm:"type:uuid;not null;index"`
	Total     int64     `json:"total" gorm:"not null"`
	ChargeID  string    `json:"chargeId" gorm:"not null"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	// Relations
	Items []OrderItem `json:"items" gorm:"foreignKey:OrderID"`
	User  *User       `json:"user,omitempty" gorm:"foreignKey:UserID"`
}

// OrderItem is a point-of-sale copy of an Item plus quantity. It carries no
// reference to the live Item, so later edits or deletion of the Item leave
// historical orders untouched.
type OrderItem struct {
	ID          uuid.UUID                   `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	OrderID     uuid.UUID                   `json:"orderId" gorm:"type:uuid;not null;index"`
	Title       string                      `json:"title" gorm:"not null"`
	Description string                      `json:"description"`
	Price       int64                       `json:"price" gorm:"not null"`
	Image       string                      `json:"image"`
	Images      datatypes.JSONSlice[string] `json:"images"`
	Quantity    int                         `json:"quantity" gorm:"not null"`
	CreatedAt   time.Time                   `json:"createdAt"`
}
