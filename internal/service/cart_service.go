package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/mkrause/storefront/internal/domain"
	"github.com/mkrause/storefront/internal/repository"
	"gorm.io/gorm"
)

type CartService struct {
	cartRepo repository.CartRepository
	itemRepo repository.ItemRepository
}

func NewCartService(cartRepo repository.CartRepository, itemRepo repository.ItemRepository) *CartService {
	return &CartService{
		cartRepo: cartRepo,
		itemRepo: itemRepo,
	}
}

// AddToCart merges into an existing row via a conditional upsert, so two
// identical concurrent adds produce one row with quantity 2.
func (s *CartService) AddToCart(ctx context.Context, userID, itemID uuid.UUID) (*domain.CartItem, error) {
	if userID == uuid.Nil {
		return nil, domain.ErrUnauthenticated
	}

	if _, err := s.itemRepo.GetByID(ctx, itemID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrItemNotFound
		}
		return nil, err
	}

	cartItem := &domain.CartItem{
		ID:        uuid.New(),
		UserID:    userID,
		ItemID:    itemID,
		Quantity:  1,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	return s.cartRepo.Upsert(ctx, cartItem)
}

// RemoveFromCart deletes the row if the actor owns it or holds ADMIN.
func (s *CartService) RemoveFromCart(ctx context.Context, actor *domain.User, cartItemID uuid.UUID) error {
	if actor == nil {
		return domain.ErrUnauthenticated
	}

	cartItem, err := s.cartRepo.GetByID(ctx, cartItemID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrCartItemNotFound
		}
		return err
	}

	if err := AuthorizeOwner(actor, cartItem.UserID, domain.PermissionAdmin); err != nil {
		return err
	}

	return s.cartRepo.Delete(ctx, cartItemID)
}

func (s *CartService) GetCart(ctx context.Context, userID uuid.UUID) ([]*domain.CartItem, error) {
	if userID == uuid.Nil {
		return nil, domain.ErrUnauthenticated
	}
	return s.cartRepo.GetByUserID(ctx, userID)
}
