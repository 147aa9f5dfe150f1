package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/google/uuid"
	"github.com/pageza/pikasmart/backend/internal/models"
	"github.com/pageza/pikasmart/backend/internal/types"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const minPasswordLength = 6

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

type AuthService struct {
	db        *gorm.DB
	tokens    *TokenService
	email     IEmailService
	clientURL string
	log       *zap.Logger
}

func NewAuthService(db *gorm.DB, tokens *TokenService, email IEmailService, clientURL string, log *zap.Logger) *AuthService {
	return &AuthService{
		db:        db,
		tokens:    tokens,
		email:     email,
		clientURL: strings.TrimRight(clientURL, "/"),
		log:       log,
	}
}

func validateCredentials(email, password string) error {
	if email == "" {
		return ErrEmailRequired
	}
	if password == "" {
		return ErrPasswordRequired
	}
	if !emailPattern.MatchString(email) {
		return ErrInvalidEmail
	}
	if len(password) < minPasswordLength {
		return ErrPasswordTooShort
	}
	return nil
}

// SignUp creates a new account and returns it. Only the bcrypt hash of the
// password is stored.
func (s *AuthService) SignUp(ctx context.Context, email, password string) (*models.User, error) {
	email = strings.TrimSpace(email)
	if err := validateCredentials(email, password); err != nil {
		return nil, err
	}

	// Check if user already exists
	if _, err := s.GetUserByEmail(ctx, email); err == nil {
		return nil, ErrUserExists
	} else if !errors.Is(err, ErrUserNotFound) {
		return nil, err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := models.User{
		Email:        email,
		PasswordHash: string(hashedPassword),
	}
	if err := s.db.WithContext(ctx).Create(&user).Error; err != nil {
		// A concurrent sign-up for the same email loses on the unique index.
		if errors.Is(err, gorm.ErrDuplicatedKey) || isUniqueViolation(err) {
			return nil, ErrUserExists
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.log.Info("user signed up", zap.String("user_id", user.ID.String()))
	return &user, nil
}

// SignIn checks the password for email. Unknown accounts and wrong passwords
// are reported separately.
func (s *AuthService) SignIn(ctx context.Context, email, password string) (*models.User, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return nil, ErrEmailRequired
	}
	if password == "" {
		return nil, ErrPasswordRequired
	}

	user, err := s.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

// IssueSession mints a session token for user.
func (s *AuthService) IssueSession(user *models.User) (string, error) {
	return s.tokens.Issue(types.ScopeSession, user.Email)
}

// Authenticate resolves a session token to its user.
func (s *AuthService) Authenticate(ctx context.Context, token string) (*models.User, error) {
	email, err := s.tokens.Verify(types.ScopeSession, token)
	if err != nil {
		return nil, err
	}
	return s.GetUserByEmail(ctx, email)
}

func (s *AuthService) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	return &user, nil
}

func (s *AuthService) GetUserByID(ctx context.Context, userID uuid.UUID) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	return &user, nil
}

// RequestPasswordReset issues a reset token for email, mails the reset link
// and returns it.
func (s *AuthService) RequestPasswordReset(ctx context.Context, email string) (string, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return "", ErrEmailRequired
	}

	user, err := s.GetUserByEmail(ctx, email)
	if err != nil {
		return "", err
	}

	token, err := s.tokens.Issue(types.ScopePasswordReset, user.Email)
	if err != nil {
		return "", err
	}

	link := s.clientURL + "/reset-password?_token=" + token
	if err := s.email.SendPasswordResetEmail(user.Email, link); err != nil {
		// The link is still returned to the caller.
		s.log.Error("failed to send password reset email", zap.String("user_id", user.ID.String()), zap.Error(err))
	}
	return link, nil
}

// ResetPassword replaces the password of the account a reset token is bound to.
func (s *AuthService) ResetPassword(ctx context.Context, token, newPassword string) error {
	if token == "" {
		return ErrTokenMissing
	}
	if newPassword == "" {
		return ErrPasswordRequired
	}

	email, err := s.tokens.Verify(types.ScopePasswordReset, token)
	if err != nil {
		return err
	}
	if len(newPassword) < minPasswordLength {
		return ErrPasswordTooShort
	}

	user, err := s.GetUserByEmail(ctx, email)
	if err != nil {
		return err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	if err := s.db.WithContext(ctx).Model(user).Update("password_hash", string(hashedPassword)).Error; err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}

	s.log.Info("password reset", zap.String("user_id", user.ID.String()))
	return nil
}

func isUniqueViolation(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique constraint") || strings.Contains(msg, "duplicate key")
}
