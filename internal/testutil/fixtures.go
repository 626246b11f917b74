package testutil

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/mkrause/storefront/internal/domain"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// UserBuilder creates test users with a builder pattern
type UserBuilder struct {
	email       string
	name        string
	password    string
	permissions []domain.Permission
}

// NewUserBuilder creates a new UserBuilder with default values
func NewUserBuilder() *UserBuilder {
	suffix := uuid.New().String()[:8]
	return &UserBuilder{
		email:       fmt.Sprintf("testuser_%s@example.com", suffix),
		name:        fmt.Sprintf("Test User %s", suffix),
		password:    "testpassword123",
		permissions: []domain.Permission{domain.PermissionUser},
	}
}

func (b *UserBuilder) WithEmail(email string) *UserBuilder {
	b.email = email
	return b
}

func (b *UserBuilder) WithName(name string) *UserBuilder {
	b.name = name
	return b
}

func (b *UserBuilder) WithPassword(password string) *UserBuilder {
	b.password = password
	return b
}

func (b *UserBuilder) WithPermissions(permissions ...domain.Permission) *UserBuilder {
	b.permissions = permissions
	return b
}

// Build creates the user in the database and returns the user with the raw password
func (b *UserBuilder) Build(t *testing.T, db *gorm.DB) (*domain.User, string) {
	t.Helper()

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(b.password), bcrypt.DefaultCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := &domain.User{
		ID:           uuid.New(),
		Email:        b.email,
		Name:         b.name,
		PasswordHash: string(hashedPassword),
		Permissions:  b.permissions,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}

	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create user: %v", err)
	}

	return user, b.password
}

// BuildAndAuthenticate creates a user via the API and returns the user and
// session token.
func (b *UserBuilder) BuildAndAuthenticate(t *testing.T, ts *TestServer) (*domain.User, string) {
	t.Helper()

	reqBody := map[string]string{
		"email":    b.email,
		"name":     b.name,
		"password": b.password,
	}
	body, _ := json.Marshal(reqBody)

	resp, err := http.Post(ts.APIURL("/auth/signup"), "application/json", bytes.NewBuffer(body))
	if err != nil {
		t.Fatalf("failed to sign up user: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("unexpected status code: %d", resp.StatusCode)
	}

	var user domain.User
	if err := json.NewDecoder(resp.Body).Decode(&user); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	var token string
	for _, cookie := range resp.Cookies() {
		if cookie.Name == "token" {
			token = cookie.Value
		}
	}
	if token == "" {
		t.Fatal("signup response did not set session cookie")
	}

	return &user, token
}

// ItemBuilder creates test items with a builder pattern
type ItemBuilder struct {
	title  string
	price  int64
	owner  *domain.User
	images []string
}

func NewItemBuilder() *ItemBuilder {
	return &ItemBuilder{
		title: fmt.Sprintf("Test Item %s", uuid.New().String()[:8]),
		price: 1000,
	}
}

func (b *ItemBuilder) WithTitle(title string) *ItemBuilder {
	b.title = title
	return b
}

func (b *ItemBuilder) WithPrice(price int64) *ItemBuilder {
	b.price = price
	return b
}

func (b *ItemBuilder) WithOwner(owner *domain.User) *ItemBuilder {
	b.owner = owner
	return b
}

func (b *ItemBuilder) WithImages(images ...string) *ItemBuilder {
	b.images = images
	return b
}

func (b *ItemBuilder) Build(t *testing.T, db *gorm.DB) *domain.Item {
	t.Helper()

	var ownerID uuid.UUID
	if b.owner != nil {
		ownerID = b.owner.ID
	} else {
		owner, _ := NewUserBuilder().Build(t, db)
		ownerID = owner.ID
	}

	item := &domain.Item{
		ID:          uuid.New(),
		Title:       b.title,
		Description: "test description",
		Price:       b.price,
		Image:       "http://example.com/image.jpg",
		LargeImage:  "http://example.com/image-lg.jpg",
		Images:      b.images,
		UserID:      ownerID,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}

	if err := db.Create(item).Error; err != nil {
		t.Fatalf("failed to create item: %v", err)
	}

	return item
}

// CartItemBuilder creates cart rows directly in the database
type CartItemBuilder struct {
	user     *domain.User
	item     *domain.Item
	quantity int
}

func NewCartItemBuilder() *CartItemBuilder {
	return &CartItemBuilder{quantity: 1}
}

func (b *CartItemBuilder) WithUser(user *domain.User) *CartItemBuilder {
	b.user = user
	return b
}

func (b *CartItemBuilder) WithItem(item *domain.Item) *CartItemBuilder {
	b.item = item
	return b
}

func (b *CartItemBuilder) WithQuantity(quantity int) *CartItemBuilder {
	b.quantity = quantity
	return b
}

func (b *CartItemBuilder) Build(t *testing.T, db *gorm.DB) *domain.CartItem {
	t.Helper()

	if b.user == nil {
		user, _ := NewUserBuilder().Build(t, db)
		b.user = user
	}
	if b.item == nil {
		b.item = NewItemBuilder().Build(t, db)
	}

	cartItem := &domain.CartItem{
		ID:        uuid.New(),
		UserID:    b.user.ID,
		ItemID:    b.item.ID,
		Quantity:  b.quantity,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	if err := db.Create(cartItem).Error; err != nil {
		t.Fatalf("failed to create cart item: %v", err)
	}

	return cartItem
}
