package postgres

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/mkrause/storefront/internal/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type cartRepository struct {
	db *gorm.DB
}

func NewCartRepository(db *gorm.DB) *cartRepository {
	return &cartRepository{db: db}
}

// Upsert relies on the (user_id, item_id) unique index: concurrent adds for
// the same pair both land on the conflict branch instead of racing a
// read-then-write.
func (r *cartRepository) Upsert(ctx context.Context, cartItem *domain.CartItem) (*domain.CartItem, error) {
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "item_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"quantity":   gorm.Expr("cart_items.quantity + 1"),
			"updated_at": time.Now(),
		}),
	}).Create(cartItem).Error
	if err != nil {
		return nil, err
	}

	var result domain.CartItem
	err = r.db.WithContext(ctx).
		Preload("Item").
		First(&result, "user_id = ? AND item_id = ?", cartItem.UserID, cartItem.ItemID).Error
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (r *cartRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.CartItem, error) {
	var cartItem domain.CartItem
	err := r.db.WithContext(ctx).Preload("Item").First(&cartItem, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &cartItem, nil
}

func (r *cartRepository) GetByUserID(ctx context.Context, userID uuid.UUID) ([]*domain.CartItem, error) {
	var cartItems []*domain.CartItem
	err := r.db.WithContext(ctx).
		Preload("Item").
		Order("created_at ASC").
		Find(&cartItems, "user_id = ?", userID).Error
	if err != nil {
		return nil, err
	}
	return cartItems, nil
}

func (r *cartRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&domain.CartItem{}, "id = ?", id).Error
}
