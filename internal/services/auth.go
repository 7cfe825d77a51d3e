package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"dating-backend/internal/models"
	"dating-backend/internal/repository"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
)

// SignupRequest represents a request to register a user
type SignupRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=72"`
	Name     string `json:"name" validate:"max=100"`
}

// LoginRequest represents a request to log in
type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// AuthResult is returned by signup and login
type AuthResult struct {
	UserID string
	Token  string
}

// AuthService is the local identity provider: credentials and tokens
type AuthService struct {
	users     repository.UserStore
	creds     repository.CredentialStore
	jwtSecret []byte
	tokenTTL  time.Duration
	validate  *validator.Validate
	now       func() time.Time
}

// NewAuthService creates a new auth service
func NewAuthService(users repository.UserStore, creds repository.CredentialStore, jwtSecret string, tokenTTL time.Duration) *AuthService {
	return &AuthService{
		users:     users,
		creds:     creds,
		jwtSecret: []byte(jwtSecret),
		tokenTTL:  tokenTTL,
		validate:  validator.New(),
		now:       time.Now,
	}
}

// Signup registers a credential and an empty profile for it
func (s *AuthService) Signup(ctx context.Context, req SignupRequest) (*AuthResult, error) {
	const op = "services.AuthService.Signup"

	req.Email = strings.TrimSpace(req.Email)
	if err := s.validate.Struct(req); err != nil {
		return nil, validationReason(err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("%s: hash password: %w", op, err)
	}

	now := s.now().UTC()
	userID := uuid.NewString()

	cred := &models.Credential{
		UserID:       userID,
		Email:        req.Email,
		PasswordHash: string(hash),
		CreatedAt:    now,
	}
	if err := s.creds.CreateCredential(ctx, cred); err != nil {
		return nil, storeErr(op, err)
	}

	user := &models.User{
		ID:          userID,
		Name:        req.Name,
		Email:       req.Email,
		Interests:   []string{},
		Preferences: []string{},
		PhotoURLs:   []string{},
		CreatedAt:   now,
	}
	if err := s.users.CreateUser(ctx, user); err != nil {
		if delErr := s.creds.DeleteCredential(ctx, userID); delErr != nil {
			log.Error().Err(delErr).Str("user_id", userID).Msg("Failed to roll back credential")
		}
		return nil, storeErr(op, err)
	}

	token, err := s.IssueToken(userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	log.Info().Str("user_id", userID).Msg("User registered")
	return &AuthResult{UserID: userID, Token: token}, nil
}

// Login checks the credentials. An unknown email and a wrong password are
// reported the same way, as ErrNotFound.
func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*AuthResult, error) {
	const op = "services.AuthService.Login"

	req.Email = strings.TrimSpace(req.Email)
	if err := s.validate.Struct(req); err != nil {
		return nil, validationReason(err)
	}

	cred, err := s.creds.GetCredentialByEmail(ctx, req.Email)
	if err != nil {
		return nil, storeErr(op, err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(cred.PasswordHash), []byte(req.Password)); err != nil {
		return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
	}

	token, err := s.IssueToken(cred.UserID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &AuthResult{UserID: cred.UserID, Token: token}, nil
}

// IssueToken generates a JWT token for a user
func (s *AuthService) IssueToken(userID string) (string, error) {
	now := s.now()
	claims := jwt.MapClaims{
		"user_id": userID,
		"exp":     now.Add(s.tokenTTL).Unix(),
		"iat":     now.Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return tokenString, nil
}

// ValidateToken validates a JWT token and returns the user ID
func (s *AuthService) ValidateToken(tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	}, jwt.WithTimeFunc(s.now), jwt.WithExpirationRequired())
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrUnauthorized, err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", fmt.Errorf("%w: invalid token claims", ErrUnauthorized)
	}

	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return "", fmt.Errorf("%w: user_id not found in token", ErrUnauthorized)
	}

	return userID, nil
}

// validationReason turns validator errors into a short client-safe reason
func validationReason(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return Invalid("invalid request")
	}

	fe := verrs[0]
	field := strings.ToLower(fe.Field())
	switch fe.Tag() {
	case "required":
		return Invalid("missing %s", field)
	case "email":
		return Invalid("invalid email")
	case "min":
		return Invalid("%s must be at least %s characters", field, fe.Param())
	case "max":
		return Invalid("%s must be at most %s characters", field, fe.Param())
	}
	return Invalid("invalid %s", field)
}
