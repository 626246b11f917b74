package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/mkrause/storefront/internal/domain"
	"github.com/mkrause/storefront/internal/payment"
	"github.com/mkrause/storefront/internal/repository"
	"gorm.io/gorm"
)

var ErrCartEmpty = errors.New("cart is empty")

// PostChargeError means the gateway charge succeeded but persisting the order
// (or clearing the cart) failed. There is no order record for a captured
// payment; the charge id is carried for manual reconciliation. Never retried,
// never refunded automatically.
type PostChargeError struct {
	ChargeID string
	Err      error
}

func (e *PostChargeError) Error() string {
	return fmt.Sprintf("order persistence failed after charge %s was captured: %v", e.ChargeID, e.Err)
}

func (e *PostChargeError) Unwrap() error {
	return e.Err
}

type CheckoutService struct {
	cartRepo  repository.CartRepository
	orderRepo repository.OrderRepository
	gateway   payment.Gateway
}

func NewCheckoutService(cartRepo repository.CartRepository, orderRepo repository.OrderRepository, gateway payment.Gateway) *CheckoutService {
	return &CheckoutService{
		cartRepo:  cartRepo,
		orderRepo: orderRepo,
		gateway:   gateway,
	}
}

// Checkout converts the user's cart into a paid order:
//
//	snapshot cart -> compute total -> charge gateway -> persist order + clear
//	snapshotted rows (one transaction) -> return order
//
// A gateway failure aborts before any mutation, leaving the cart intact. The
// charge is attempted exactly once. Only the rows captured in the snapshot
// are cleared, so items added mid-checkout survive.
func (s *CheckoutService) Checkout(ctx context.Context, userID uuid.UUID, paymentToken string) (*domain.Order, error) {
	if userID == uuid.Nil {
		return nil, domain.ErrUnauthenticated
	}

	snapshot, err := s.cartRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(snapshot) == 0 {
		return nil, ErrCartEmpty
	}

	var total int64
	for _, ci := range snapshot {
		total += ci.Item.Price * int64(ci.Quantity)
	}

	charge, err := s.gateway.Charge(ctx, payment.ChargeRequest{
		Amount:   total,
		Currency: "USD",
		Source:   paymentToken,
	})
	if err != nil {
		return nil, err
	}

	orderID := uuid.New()
	orderItems := make([]domain.OrderItem, 0, len(snapshot))
	cartItemIDs := make([]uuid.UUID, 0, len(snapshot))
	for _, ci := range snapshot {
		orderItems = append(orderItems, domain.OrderItem{
			ID:          uuid.New(),
			OrderID:     orderID,
			Title:       ci.Item.Title,
			Description: ci.Item.Description,
			Price:       ci.Item.Price,
			Image:       ci.Item.Image,
			Images:      ci.Item.Images,
			Quantity:    ci.Quantity,
			CreatedAt:   time.Now(),
		})
		cartItemIDs = append(cartItemIDs, ci.ID)
	}

	order := &domain.Order{
		ID:        orderID,
		UserID:    userID,
		Total:     charge.Amount, // captured amount is authoritative
		ChargeID:  charge.ID,
		Items:     orderItems,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	if err := s.orderRepo.CreateAndClearCart(ctx, order, cartItemIDs); err != nil {
		return nil, &PostChargeError{ChargeID: charge.ID, Err: err}
	}

	return order, nil
}

// GetOrder allows the order's owner or an ADMIN.
func (s *CheckoutService) GetOrder(ctx context.Context, actor *domain.User, orderID uuid.UUID) (*domain.Order, error) {
	if actor == nil {
		return nil, domain.ErrUnauthenticated
	}

	order, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrOrderNotFound
		}
		return nil, err
	}

	if err := AuthorizeOwner(actor, order.UserID, domain.PermissionAdmin); err != nil {
		return nil, err
	}

	return order, nil
}

func (s *CheckoutService) ListOrders(ctx context.Context, actor *domain.User) ([]*domain.Order, error) {
	if actor == nil {
		return nil, domain.ErrUnauthenticated
	}
	return s.orderRepo.GetByUserID(ctx, actor.ID)
}
