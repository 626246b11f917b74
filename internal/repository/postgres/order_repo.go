package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/mkrause/storefront/internal/domain"
	"gorm.io/gorm"
)

type orderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) *orderRepository {
	return &orderRepository{db: db}
}

// CreateAndClearCart writes the order (items cascade through the relation)
// and removes exactly the given cart rows. One transaction: either the order
// exists and the snapshotted cart rows are gone, or neither happened.
func (r *orderRepository) CreateAndClearCart(ctx context.Context, order *domain.Order, cartItemIDs []uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(order).Error; err != nil {
			return err
		}
		if len(cartItemIDs) == 0 {
			return nil
		}
		return tx.Delete(&domain.CartItem{}, "id IN ?", cartItemIDs).Error
	})
}

func (r *orderRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Order, error) {
	var order domain.Order
	err := r.db.WithContext(ctx).Preload("Items").First(&order, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *orderRepository) GetByUserID(ctx context.Context, userID uuid.UUID) ([]*domain.Order, error) {
	var orders []*domain.Order
	err := r.db.WithContext(ctx).
		Preload("Items").
		Order("created_at DESC").
		Find(&orders, "user_id = ?", userID).Error
	if err != nil {
		return nil, err
	}
	return orders, nil
}
