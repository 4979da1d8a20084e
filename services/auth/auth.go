// Package auth implements credential sign-in and registration.
//
// A visitor is Anonymous until they submit credentials; Authorize either
// returns the user (Authenticated) or reports a rejection without an error.
// Sessions are stateless: the signed token carries the user id.
package auth

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/Govind-619/ClipCraft/models"
	"github.com/Govind-619/ClipCraft/repository"
	"github.com/Govind-619/ClipCraft/utils"
	"github.com/golang-jwt/jwt"
	"github.com/google/uuid"
)

// DefaultTokenTTL matches the 30 day session lifetime of the web client
const DefaultTokenTTL = 30 * 24 * time.Hour

// ResetTokenTTL bounds how long a password reset link stays usable
const ResetTokenTTL = time.Hour

const resetSubject = "password_reset"

// Claims carried by the session token
type Claims struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	jwt.StandardClaims
}

// Service authenticates and registers users
type Service struct {
	users    repository.UserRepository
	mailer   utils.Mailer
	secret   []byte
	baseURL  string
	tokenTTL time.Duration
}

// NewService builds the auth service
func NewService(users repository.UserRepository, mailer utils.Mailer, secret, baseURL string) *Service {
	return &Service{
		users:    users,
		mailer:   mailer,
		secret:   []byte(secret),
		baseURL:  baseURL,
		tokenTTL: DefaultTokenTTL,
	}
}

// DemoUser is the account every fresh store is seeded with (password demo123)
func DemoUser() *models.User {
	hash, err := utils.HashPassword("demo123")
	if err != nil {
		panic(fmt.Sprintf("failed to hash demo password: %v", err))
	}
	return &models.User{
		ID:       "1",
		Email:    "demo@example.com",
		Password: hash,
		Name:     "Demo User",
		Provider: models.ProviderCredentials,
	}
}

// Authorize checks credentials. It never returns an error: unknown users,
// wrong passwords and lookup failures all yield (nil, false).
func (s *Service) Authorize(ctx context.Context, email, password string) (*models.User, bool) {
	if utils.IsBlank(email) || password == "" {
		return nil, false
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			utils.LogError("Login attempt failed - lookup error for %s: %v", email, err)
		} else {
			utils.LogError("Login attempt failed - User not found: %s", email)
		}
		return nil, false
	}

	if !utils.CheckPassword(password, user.Password) {
		utils.LogError("Login attempt failed - Invalid password for user: %s", email)
		return nil, false
	}

	utils.LogInfo("User logged in successfully: %s", user.Email)
	return user, true
}

// Register creates a credentials account and sends a welcome email in the background
func (s *Service) Register(ctx context.Context, email, password, name string) (*models.User, error) {
	if utils.AnyBlank(email, name) || password == "" {
		return nil, utils.NewValidationError(utils.ErrAllFieldsRequired)
	}
	if valid, msg := utils.ValidateEmail(email); !valid {
		return nil, utils.NewValidationError(msg)
	}
	if valid, msg := utils.ValidatePassword(password); !valid {
		return nil, utils.NewValidationError(msg)
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		ID:       uuid.New().String(),
		Email:    strings.TrimSpace(email),
		Password: hash,
		Name:     strings.TrimSpace(name),
		Provider: models.ProviderCredentials,
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			utils.LogError("Registration attempt failed - Email already exists: %s", email)
			return nil, utils.NewDuplicateUserError(utils.ErrUserExists)
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	utils.LogInfo("User registration completed successfully: %s", user.Email)
	utils.SendAsync(s.mailer, utils.WelcomeEmail(user.Email, user.Name, s.baseURL))
	return user, nil
}

// UpsertOAuthUser finds or creates an account for an external sign-in
func (s *Service) UpsertOAuthUser(ctx context.Context, email, name, provider string) (*models.User, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	user = &models.User{
		ID:       uuid.New().String(),
		Email:    email,
		Name:     name,
		Provider: provider,
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return s.users.FindByEmail(ctx, email)
		}
		return nil, err
	}
	utils.LogInfo("Created %s account for %s", provider, email)
	utils.SendAsync(s.mailer, utils.WelcomeEmail(user.Email, user.Name, s.baseURL))
	return user, nil
}

// UserByID returns the account a token refers to
func (s *Service) UserByID(ctx context.Context, id string) (*models.User, error) {
	return s.users.FindByID(ctx, id)
}

// IssueToken signs an HS256 session token for the user
func (s *Service) IssueToken(user *models.User) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		ID:    user.ID,
		Email: user.Email,
		Name:  user.Name,
		StandardClaims: jwt.StandardClaims{
			IssuedAt:  now.Unix(),
			ExpiresAt: now.Add(s.tokenTTL).Unix(),
		},
	})
	return token.SignedString(s.secret)
}

// ParseToken validates a session token and returns its claims
func (s *Service) ParseToken(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid || claims.ID == "" || claims.Subject == resetSubject {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}

// RequestPasswordReset mails a reset link to credentials accounts. Unknown
// emails and OAuth-only accounts are logged and otherwise ignored so callers
// cannot probe which addresses are registered.
func (s *Service) RequestPasswordReset(ctx context.Context, email string) error {
	if valid, msg := utils.ValidateEmail(email); !valid {
		return utils.NewValidationError(msg)
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			utils.LogInfo("Password reset requested for unknown email: %s", email)
			return nil
		}
		return fmt.Errorf("failed to look up user: %w", err)
	}
	if user.Password == "" {
		utils.LogInfo("Password reset requested for %s account without a password: %s", user.Provider, email)
		return nil
	}

	token, err := s.issueResetToken(user)
	if err != nil {
		return fmt.Errorf("failed to sign reset token: %w", err)
	}

	link := s.baseURL + "/reset-password?token=" + url.QueryEscape(token)
	utils.LogInfo("Password reset link issued for %s", user.Email)
	utils.SendAsync(s.mailer, utils.PasswordResetEmail(user.Email, link))
	return nil
}

// ResetPassword sets a new password for the account a reset token names.
// A token stops working once the password it was issued against changes.
func (s *Service) ResetPassword(ctx context.Context, tokenString, password string) error {
	if tokenString == "" || password == "" {
		return utils.NewValidationError(utils.ErrAllFieldsRequired)
	}
	if valid, msg := utils.ValidatePassword(password); !valid {
		return utils.NewValidationError(msg)
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid || claims.Subject != resetSubject {
		utils.LogError("Password reset failed - invalid token: %v", err)
		return utils.NewValidationError(utils.ErrInvalidResetToken)
	}

	user, err := s.users.FindByID(ctx, claims.ID)
	if err != nil {
		utils.LogError("Password reset failed - unknown user %s: %v", claims.ID, err)
		return utils.NewValidationError(utils.ErrInvalidResetToken)
	}
	if !hmac.Equal([]byte(claims.Id), []byte(s.passwordFingerprint(user))) {
		utils.LogError("Password reset failed - token already used for %s", user.Email)
		return utils.NewValidationError(utils.ErrInvalidResetToken)
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	if err := s.users.UpdatePassword(ctx, user.ID, hash); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}

	utils.LogInfo("Password reset completed for %s", user.Email)
	return nil
}

func (s *Service) issueResetToken(user *models.User) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		ID:    user.ID,
		Email: user.Email,
		StandardClaims: jwt.StandardClaims{
			Id:        s.passwordFingerprint(user),
			Subject:   resetSubject,
			IssuedAt:  now.Unix(),
			ExpiresAt: now.Add(ResetTokenTTL).Unix(),
		},
	})
	return token.SignedString(s.secret)
}

// passwordFingerprint ties a reset token to the stored hash it was issued against
func (s *Service) passwordFingerprint(user *models.User) string {
	mac := hmac.New(sha256.New, s.secret)
	mac.Write([]byte(user.ID + ":" + user.Password))
	return hex.EncodeToString(mac.Sum(nil))[:32]
}
