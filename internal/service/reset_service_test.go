package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	apperrors "firesafe/internal/errors"
	"firesafe/internal/model"
)

const testFrontendURL = "http://localhost:3000"

func TestPasswordResetService_Request(t *testing.T) {
	t.Run("unknown email succeeds without issuing a token", func(t *testing.T) {
		mockResets := new(MockPasswordResetRepository)
		mockUsers := new(MockUserRepository)
		mockMailer := new(MockMailSender)

		mockUsers.On("FindByEmail", mock.Anything, "ghost@example.com").Return(nil, gorm.ErrRecordNotFound)

		service := NewPasswordResetService(mockResets, mockUsers, mockMailer, testFrontendURL)

		err := service.Request(context.Background(), "ghost@example.com")

		assert.NoError(t, err)
		mockResets.AssertNotCalled(t, "Replace", mock.Anything, mock.Anything)
		mockMailer.AssertNotCalled(t, "SendPasswordReset", mock.Anything, mock.Anything)
	})

	t.Run("known email stores a hash and mails the plaintext", func(t *testing.T) {
		mockResets := new(MockPasswordResetRepository)
		mockUsers := new(MockUserRepository)
		mockMailer := new(MockMailSender)

		mockUsers.On("FindByEmail", mock.Anything, "user@example.com").Return(&model.User{ID: 5, Email: "user@example.com"}, nil)

		var storedHash string
		mockResets.On("Replace", mock.Anything, mock.AnythingOfType("*model.PasswordReset")).
			Run(func(args mock.Arguments) {
				reset := args.Get(1).(*model.PasswordReset)
				storedHash = reset.TokenHash
				assert.Equal(t, uint(5), reset.UserID)
				assert.False(t, reset.ExpiresAt.IsZero())
			}).Return(nil)

		var mailedURL string
		mockMailer.On("SendPasswordReset", "user@example.com", mock.AnythingOfType("string")).
			Run(func(args mock.Arguments) {
				mailedURL = args.String(1)
			}).Return(nil)

		service := NewPasswordResetService(mockResets, mockUsers, mockMailer, testFrontendURL)

		err := service.Request(context.Background(), "user@example.com")

		assert.NoError(t, err)
		assert.Contains(t, mailedURL, testFrontendURL+"/reset-password?token=")

		// The mail carries the plaintext token; the store only ever sees
		// its digest.
		token := strings.TrimPrefix(mailedURL, testFrontendURL+"/reset-password?token=")
		assert.NotEmpty(t, token)
		assert.NotEqual(t, token, storedHash)
		assert.Equal(t, hashResetToken(token), storedHash)

		mockResets.AssertExpectations(t)
		mockMailer.AssertExpectations(t)
	})

	t.Run("mail failure does not change the outcome", func(t *testing.T) {
		mockResets := new(MockPasswordResetRepository)
		mockUsers := new(MockUserRepository)
		mockMailer := new(MockMailSender)

		mockUsers.On("FindByEmail", mock.Anything, "user@example.com").Return(&model.User{ID: 5, Email: "user@example.com"}, nil)
		mockResets.On("Replace", mock.Anything, mock.Anything).Return(nil)
		mockMailer.On("SendPasswordReset", "user@example.com", mock.Anything).Return(assert.AnError)

		service := NewPasswordResetService(mockResets, mockUsers, mockMailer, testFrontendURL)

		assert.NoError(t, service.Request(context.Background(), "user@example.com"))
	})
}

func TestPasswordResetService_Validate(t *testing.T) {
	t.Run("valid token passes without consuming it", func(t *testing.T) {
		mockResets := new(MockPasswordResetRepository)
		mockResets.On("FindValid", mock.Anything, hashResetToken("good-token"), mock.Anything).
			Return(&model.PasswordReset{UserID: 5}, nil)

		service := NewPasswordResetService(mockResets, new(MockUserRepository), new(MockMailSender), testFrontendURL)

		assert.NoError(t, service.Validate(context.Background(), "good-token"))
		mockResets.AssertNotCalled(t, "Consume", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("unknown or expired token is invalid", func(t *testing.T) {
		mockResets := new(MockPasswordResetRepository)
		mockResets.On("FindValid", mock.Anything, mock.Anything, mock.Anything).Return(nil, gorm.ErrRecordNotFound)

		service := NewPasswordResetService(mockResets, new(MockUserRepository), new(MockMailSender), testFrontendURL)

		assert.Equal(t, apperrors.ErrInvalidResetToken, service.Validate(context.Background(), "bad-token"))
	})
}

func TestPasswordResetService_Reset(t *testing.T) {
	t.Run("short password is rejected before any lookup", func(t *testing.T) {
		mockResets := new(MockPasswordResetRepository)

		service := NewPasswordResetService(mockResets, new(MockUserRepository), new(MockMailSender), testFrontendURL)

		err := service.Reset(context.Background(), "some-token", "abc")

		assert.Equal(t, apperrors.ErrPasswordTooShort, err)
		mockResets.AssertNotCalled(t, "Consume", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("consumes the token with a bcrypt hash of the new password", func(t *testing.T) {
		mockResets := new(MockPasswordResetRepository)

		var storedPasswordHash string
		mockResets.On("Consume", mock.Anything, hashResetToken("good-token"), mock.Anything, mock.AnythingOfType("string")).
			Run(func(args mock.Arguments) {
				storedPasswordHash = args.String(3)
			}).Return(nil)

		service := NewPasswordResetService(mockResets, new(MockUserRepository), new(MockMailSender), testFrontendURL)

		err := service.Reset(context.Background(), "good-token", "new-password")

		assert.NoError(t, err)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(storedPasswordHash), []byte("new-password")))
		mockResets.AssertExpectations(t)
	})

	t.Run("unknown token maps to the invalid token error", func(t *testing.T) {
		mockResets := new(MockPasswordResetRepository)
		mockResets.On("Consume", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(gorm.ErrRecordNotFound)

		service := NewPasswordResetService(mockResets, new(MockUserRepository), new(MockMailSender), testFrontendURL)

		assert.Equal(t, apperrors.ErrInvalidResetToken, service.Reset(context.Background(), "gone-token", "new-password"))
	})
}
