package service

import (
	"github.com/mkrause/storefront/internal/config"
	"github.com/mkrause/storefront/internal/mail"
	"github.com/mkrause/storefront/internal/payment"
	"github.com/mkrause/storefront/internal/repository"
)

type Services struct {
	Auth     *AuthService
	User     *UserService
	Item     *ItemService
	Cart     *CartService
	Checkout *CheckoutService
}

func NewServices(repos *repository.Repositories, gateway payment.Gateway, mailer mail.Mailer, cfg *config.Config) *Services {
	return &Services{
		Auth:     NewAuthService(repos.User, mailer, cfg),
		User:     NewUserService(repos.User),
		Item:     NewItemService(repos.Item),
		Cart:     NewCartService(repos.Cart, repos.Item),
		Checkout: NewCheckoutService(repos.Cart, repos.Order, gateway),
	}
}
