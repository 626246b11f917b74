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

type ItemService struct {
	itemRepo repository.ItemRepository
}

func NewItemService(itemRepo repository.ItemRepository) *ItemService {
	return &ItemService{itemRepo: itemRepo}
}

type CreateItemInput struct {
	Title       string
	Description string
	Price       int64
	Image       string
	LargeImage  string
	Images      []string
}

type UpdateItemInput struct {
	Title       *string
	Description *string
	Price       *int64
}

func (s *ItemService) Create(ctx context.Context, actor *domain.User, input CreateItemInput) (*domain.Item, error) {
	if actor == nil {
		return nil, domain.ErrUnauthenticated
	}

	item := &domain.Item{
		ID:          uuid.New(),
		Title:       input.Title,
		Description: input.Description,
		Price:       input.Price,
		Image:       input.Image,
		LargeImage:  input.LargeImage,
		Images:      input.Images,
		UserID:      actor.ID,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}

	if err := s.itemRepo.Create(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *ItemService) Update(ctx context.Context, actor *domain.User, itemID uuid.UUID, input UpdateItemInput) (*domain.Item, error) {
	if actor == nil {
		return nil, domain.ErrUnauthenticated
	}

	item, err := s.getItem(ctx, itemID)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		item.Title = *input.Title
	}
	if input.Description != nil {
		item.Description = *input.Description
	}
	if input.Price != nil {
		item.Price = *input.Price
	}
	item.UpdatedAt = time.Now()

	if err := s.itemRepo.Update(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

// Delete allows the item's owner, or anyone holding ADMIN or ITEMDELETE.
func (s *ItemService) Delete(ctx context.Context, actor *domain.User, itemID uuid.UUID) error {
	if actor == nil {
		return domain.ErrUnauthenticated
	}

	item, err := s.getItem(ctx, itemID)
	if err != nil {
		return err
	}

	if err := AuthorizeOwner(actor, item.UserID, domain.PermissionAdmin, domain.PermissionItemDelete); err != nil {
		return err
	}

	return s.itemRepo.Delete(ctx, itemID)
}

func (s *ItemService) Get(ctx context.Context, itemID uuid.UUID) (*domain.Item, error) {
	return s.getItem(ctx, itemID)
}

func (s *ItemService) List(ctx context.Context, limit, offset int) ([]*domain.Item, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return s.itemRepo.List(ctx, limit, offset)
}

func (s *ItemService) getItem(ctx context.Context, itemID uuid.UUID) (*domain.Item, error) {
	item, err := s.itemRepo.GetByID(ctx, itemID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrItemNotFound
		}
		return nil, err
	}
	return item, nil
}
