package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"log"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/mkrause/storefront/internal/config"
	"github.com/mkrause/storefront/internal/domain"
	"github.com/mkrause/storefront/internal/mail"
	"github.com/mkrause/storefront/internal/repository"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrEmailTaken         = errors.New("email already in use")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrPasswordMismatch   = errors.New("passwords do not match")
	ErrResetTokenInvalid  = errors.New("reset token is invalid or expired")
)

const resetTokenBytes = 20

type AuthService struct {
	userRepo repository.UserRepository
	mailer   mail.Mailer
	cfg      *config.Config
}

func NewAuthService(userRepo repository.UserRepository, mailer mail.Mailer, cfg *config.Config) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		mailer:   mailer,
		cfg:      cfg,
	}
}

type SignupInput struct {
	Email    string
	Name     string
	Password string
}

type SigninInput struct {
	Email    string
	Password string
}

type ResetInput struct {
	Token           string
	Password        string
	ConfirmPassword string
}

type AuthResult struct {
	User  *domain.User
	Token string
}

type ResetRequest struct {
	Email string
	Token string
}

func (s *AuthService) Signup(ctx context.Context, input SignupInput) (*AuthResult, error) {
	email := strings.ToLower(input.Email)

	existing, err := s.userRepo.GetByEmail(ctx, email)
	if err == nil && existing != nil {
		return nil, ErrEmailTaken
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		ID:           uuid.New(),
		Email:        email,
		Name:         input.Name,
		PasswordHash: string(hashedPassword),
		Permissions:  []domain.Permission{domain.PermissionUser},
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	return s.issueResult(user)
}

func (s *AuthService) Signin(ctx context.Context, input SigninInput) (*AuthResult, error) {
	user, err := s.userRepo.GetByEmail(ctx, strings.ToLower(input.Email))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return s.issueResult(user)
}

// RequestPasswordReset stores a fresh one-hour reset token for the user and
// mails it out. The mail send is best effort: the token is already persisted,
// so a transport failure is logged rather than surfaced.
func (s *AuthService) RequestPasswordReset(ctx context.Context, email string) (*ResetRequest, error) {
	user, err := s.userRepo.GetByEmail(ctx, strings.ToLower(email))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}

	buf := make([]byte, resetTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return nil, err
	}
	token := hex.EncodeToString(buf)
	expiry := time.Now().Add(1 * time.Hour)

	if err := s.userRepo.SetResetToken(ctx, user.ID, token, expiry); err != nil {
		return nil, err
	}

	msg := mail.ResetEmail(s.cfg.MailFrom, user.Email, s.cfg.FrontendURL, token)
	if err := s.mailer.Send(ctx, msg); err != nil {
		log.Printf("ERROR [AuthService.RequestPasswordReset] reset mail to %s failed: %v", user.Email, err)
	}

	return &ResetRequest{Email: user.Email, Token: token}, nil
}

// ResetPassword consumes a reset token: the new hash is written and the token
// cleared in the same statement, then a fresh session is issued.
func (s *AuthService) ResetPassword(ctx context.Context, input ResetInput) (*AuthResult, error) {
	if input.Password != input.ConfirmPassword {
		return nil, ErrPasswordMismatch
	}

	user, err := s.userRepo.GetByResetToken(ctx, input.Token, time.Now())
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrResetTokenInvalid
		}
		return nil, err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	if err := s.userRepo.SetPassword(ctx, user.ID, string(hashedPassword)); err != nil {
		return nil, err
	}

	return s.issueResult(user)
}

func (s *AuthService) issueResult(user *domain.User) (*AuthResult, error) {
	token, err := s.IssueSession(user.ID)
	if err != nil {
		return nil, err
	}
	return &AuthResult{User: user, Token: token}, nil
}

// IssueSession signs a token carrying the user id. The exp claim matches the
// session cookie's max-age so expiry does not rest on the client alone.
func (s *AuthService) IssueSession(userID uuid.UUID) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub": userID.String(),
		"iat": now.Unix(),
		"exp": now.Add(time.Duration(s.cfg.SessionMaxAgeDays) * 24 * time.Hour).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.JWTSecret))
}

func (s *AuthService) ValidateSession(tokenString string) (uuid.UUID, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(s.cfg.JWTSecret), nil
	})
	if err != nil {
		return uuid.Nil, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return uuid.Nil, errors.New("invalid token")
	}

	sub, ok := claims["sub"].(string)
	if !ok {
		return uuid.Nil, errors.New("missing sub claim")
	}

	return uuid.Parse(sub)
}

func (s *AuthService) GetUserByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}
