package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/mkrause/storefront/internal/domain"
)

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	// GetByResetToken matches only tokens whose expiry has not passed.
	GetByResetToken(ctx context.Context, token string, now time.Time) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) error
	// SetResetToken writes the token and expiry in one statement.
	SetResetToken(ctx context.Context, userID uuid.UUID, token string, expiry time.Time) error
	// SetPassword writes the new hash and clears the reset token and expiry
	// in the same statement.
	SetPassword(ctx context.Context, userID uuid.UUID, passwordHash string) error
	UpdatePermissions(ctx context.Context, userID uuid.UUID, permissions []domain.Permission) error
	List(ctx context.Context) ([]*domain.User, error)
}

type ItemRepository interface {
	Create(ctx context.Context, item *domain.Item) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Item, error)
	Update(ctx context.Context, item *domain.Item) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, limit, offset int) ([]*domain.Item, error)
}

type CartRepository interface {
	// Upsert inserts the cart item or, when a row for (user, item) already
	// exists, increments its quantity by one. Atomic either way.
	Upsert(ctx context.Context, cartItem *domain.CartItem) (*domain.CartItem, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.CartItem, error)
	GetByUserID(ctx context.Context, userID uuid.UUID) ([]*domain.CartItem, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type OrderRepository interface {
	// CreateAndClearCart persists the order with its items and deletes the
	// given cart rows inside a single transaction.
	CreateAndClearCart(ctx context.Context, order *domain.Order, cartItemIDs []uuid.UUID) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Order, error)
	GetByUserID(ctx context.Context, userID uuid.UUID) ([]*domain.Order, error)
}

type Repositories struct {
	User  UserRepository
	Item  ItemRepository
	Cart  CartRepository
	Order OrderRepository
}
