package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/meetsync/meetsync/internal/model"
	"github.com/meetsync/meetsync/internal/repository"
)

var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ErrBadToken rejects a missing, malformed or expired access token.
var ErrBadToken = errors.New("invalid token")

// Claims is the JWT payload carried by access tokens.
type Claims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// AuthService handles registration, login and access-token issuing.
type AuthService struct {
	users    repository.UserRepository
	secret   []byte
	tokenTTL time.Duration
	logger   *zap.Logger
}

func NewAuthService(users repository.UserRepository, secret string, tokenTTL time.Duration, logger *zap.Logger) *AuthService {
	return &AuthService{
		users:    users,
		secret:   []byte(secret),
		tokenTTL: tokenTTL,
		logger:   logger,
	}
}

// Register creates a profile with a bcrypt password hash and returns it with
// a fresh access token.
func (s *AuthService) Register(ctx context.Context, name, email, password string) (*model.UserProfile, string, error) {
	name = strings.TrimSpace(name)
	email = strings.ToLower(strings.TrimSpace(email))

	if len(name) < 2 {
		return nil, "", fmt.Errorf("%w: name must be at least 2 characters", ErrValidation)
	}
	if !emailRe.MatchString(email) {
		return nil, "", fmt.Errorf("%w: invalid email", ErrValidation)
	}
	if len(password) < 6 {
		return nil, "", fmt.Errorf("%w: password must be at least 6 characters", ErrValidation)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", fmt.Errorf("hash password: %w", err)
	}

	user := &model.UserProfile{
		ID:           uuid.NewString(),
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
	}

	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, "", ErrEmailInUse
		}
		return nil, "", err
	}

	token, err := s.issueToken(user)
	if err != nil {
		return nil, "", err
	}

	s.logger.Info("User registered", zap.String("user_id", user.ID))

	return user, token, nil
}

// Login verifies credentials and returns the profile with an access token.
func (s *AuthService) Login(ctx context.Context, email, password string) (*model.UserProfile, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, "", err
	}
	if user == nil {
		return nil, "", ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.issueToken(user)
	if err != nil {
		return nil, "", err
	}

	return user, token, nil
}

// ParseToken validates an access token and returns its claims.
func (s *AuthService) ParseToken(raw string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(raw, &Claims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrBadToken
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, ErrBadToken
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrBadToken
	}
	return claims, nil
}

func (s *AuthService) issueToken(user *model.UserProfile) (string, error) {
	claims := Claims{
		Email: user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(s.tokenTTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return token, nil
}
