package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/pageza/pikasmart/backend/internal/mocks"
	"github.com/pageza/pikasmart/backend/internal/models"
	"github.com/pageza/pikasmart/backend/internal/service"
	"github.com/pageza/pikasmart/backend/internal/testhelpers"
	"github.com/pageza/pikasmart/backend/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func setupAuthService(t *testing.T) (*service.AuthService, *service.TokenService, *mocks.MockEmailService, *gorm.DB) {
	db := testhelpers.SetupTestDatabase(t)
	tokens := service.NewTokenService("test-secret")
	email := &mocks.MockEmailService{}
	svc := service.NewAuthService(db, tokens, email, "http://client.test/", zap.NewNop())
	return svc, tokens, email, db
}

func TestAuthService_SignUp(t *testing.T) {
	ctx := context.Background()
	svc, _, _, db := setupAuthService(t)

	t.Run("should store a hash and never the password", func(t *testing.T) {
		user, err := svc.SignUp(ctx, "  chef@example.com ", "secret1")
		require.NoError(t, err)
		assert.Equal(t, "chef@example.com", user.Email)

		var stored models.User
		require.NoError(t, db.First(&stored, "id = ?", user.ID).Error)
		assert.NotEqual(t, "secret1", stored.PasswordHash)
		assert.NotEmpty(t, stored.PasswordHash)
	})

	t.Run("should reject a duplicate email", func(t *testing.T) {
		_, err := svc.SignUp(ctx, "chef@example.com", "secret1")
		assert.ErrorIs(t, err, service.ErrUserExists)
	})

	cases := []struct {
		name     string
		email    string
		password string
		want     error
	}{
		{"missing email", "", "secret1", service.ErrEmailRequired},
		{"missing password", "a@b.co", "", service.ErrPasswordRequired},
		{"malformed email", "not-an-email", "secret1", service.ErrInvalidEmail},
		{"email with spaces", "a b@c.io", "secret1", service.ErrInvalidEmail},
		{"short password", "short@example.com", "12345", service.ErrPasswordTooShort},
	}
	for _, tc := range cases {
		t.Run("should reject "+tc.name, func(t *testing.T) {
			_, err := svc.SignUp(ctx, tc.email, tc.password)
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

func TestAuthService_SignIn(t *testing.T) {
	ctx := context.Background()
	svc, _, _, db := setupAuthService(t)
	user := testhelpers.CreateUser(t, db)

	t.Run("should sign in with the right password", func(t *testing.T) {
		got, err := svc.SignIn(ctx, user.Email, testhelpers.DefaultPassword)
		require.NoError(t, err)
		assert.Equal(t, user.ID, got.ID)
	})

	t.Run("should report a wrong password", func(t *testing.T) {
		_, err := svc.SignIn(ctx, user.Email, "wrong-password")
		assert.ErrorIs(t, err, service.ErrInvalidCredentials)
	})

	t.Run("should report an unknown account", func(t *testing.T) {
		_, err := svc.SignIn(ctx, "nobody@example.com", testhelpers.DefaultPassword)
		assert.ErrorIs(t, err, service.ErrUserNotFound)
	})
}

func TestAuthService_Authenticate(t *testing.T) {
	ctx := context.Background()
	svc, tokens, _, db := setupAuthService(t)
	user := testhelpers.CreateUser(t, db)

	token, err := svc.IssueSession(user)
	require.NoError(t, err)

	got, err := svc.Authenticate(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)

	t.Run("should report a deleted account as not found", func(t *testing.T) {
		ghost, err := tokens.Issue(types.ScopeSession, "ghost@example.com")
		require.NoError(t, err)
		_, err = svc.Authenticate(ctx, ghost)
		assert.ErrorIs(t, err, service.ErrUserNotFound)
	})
}

func TestAuthService_PasswordReset(t *testing.T) {
	ctx := context.Background()
	svc, tokens, email, db := setupAuthService(t)
	user := testhelpers.CreateUser(t, db)

	t.Run("should mail and return a reset link", func(t *testing.T) {
		email.On("SendPasswordResetEmail", user.Email, mock.AnythingOfType("string")).Return(nil).Once()

		link, err := svc.RequestPasswordReset(ctx, user.Email)
		require.NoError(t, err)
		assert.Contains(t, link, "http://client.test/reset-password?_token=")
		email.AssertExpectations(t)
	})

	t.Run("should report unknown emails", func(t *testing.T) {
		_, err := svc.RequestPasswordReset(ctx, "nobody@example.com")
		assert.ErrorIs(t, err, service.ErrUserNotFound)
	})

	t.Run("should change the password with a valid token", func(t *testing.T) {
		token, err := tokens.Issue(types.ScopePasswordReset, user.Email)
		require.NoError(t, err)

		require.NoError(t, svc.ResetPassword(ctx, token, "brand-new-pass"))

		_, err = svc.SignIn(ctx, user.Email, "brand-new-pass")
		assert.NoError(t, err)
		_, err = svc.SignIn(ctx, user.Email, testhelpers.DefaultPassword)
		assert.ErrorIs(t, err, service.ErrInvalidCredentials)
	})

	t.Run("should distinguish missing, invalid and expired tokens", func(t *testing.T) {
		assert.ErrorIs(t, svc.ResetPassword(ctx, "", "whatever1"), service.ErrTokenMissing)
		assert.ErrorIs(t, svc.ResetPassword(ctx, "garbage", "whatever1"), service.ErrTokenInvalid)

		old := tokens.WithClock(func() time.Time { return time.Now().Add(-time.Hour) })
		expired, err := old.Issue(types.ScopePasswordReset, user.Email)
		require.NoError(t, err)
		assert.ErrorIs(t, svc.ResetPassword(ctx, expired, "whatever1"), service.ErrTokenExpired)
	})

	t.Run("should require a new password", func(t *testing.T) {
		token, err := tokens.Issue(types.ScopePasswordReset, user.Email)
		require.NoError(t, err)
		assert.ErrorIs(t, svc.ResetPassword(ctx, token, ""), service.ErrPasswordRequired)
	})

	t.Run("should not accept a session token for a reset", func(t *testing.T) {
		session, err := tokens.Issue(types.ScopeSession, user.Email)
		require.NoError(t, err)
		assert.ErrorIs(t, svc.ResetPassword(ctx, session, "whatever1"), service.ErrTokenInvalid)
	})
}
