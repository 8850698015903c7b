package service

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"log"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	apperrors "firesafe/internal/errors"
	"firesafe/internal/model"
	"firesafe/internal/repository"
)

const (
	resetTokenBytes   = 32
	resetTokenTTL     = time.Hour
	minPasswordLength = 6
)

// PasswordResetService implements the reset workflow: issue, validate,
// consume, plus the periodic expired-token sweep.
type PasswordResetService interface {
	Request(ctx context.Context, email string) error
	Validate(ctx context.Context, token string) error
	Reset(ctx context.Context, token, newPassword string) error
	RunCleanup(ctx context.Context, interval time.Duration)
}

type passwordResetService struct {
	resetRepo   repository.PasswordResetRepository
	userRepo    repository.UserRepository
	mailer      MailSender
	frontendURL string
}

// NewPasswordResetService creates a new password reset service.
func NewPasswordResetService(
	resetRepo repository.PasswordResetRepository,
	userRepo repository.UserRepository,
	mailer MailSender,
	frontendURL string,
) PasswordResetService {
	return &passwordResetService{
		resetRepo:   resetRepo,
		userRepo:    userRepo,
		mailer:      mailer,
		frontendURL: frontendURL,
	}
}

// Request issues a fresh single-use token for the account behind email and
// mails the plaintext once. An unknown email is NOT an error: callers answer
// with the same generic message either way, so account existence never
// leaks. Issuing replaces any earlier token for the user.
func (s *passwordResetService) Request(ctx context.Context, email string) error {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return fmt.Errorf("lookup user: %w", err)
	}

	token, err := generateResetToken()
	if err != nil {
		return fmt.Errorf("generate token: %w", err)
	}

	reset := &model.PasswordReset{
		UserID:    user.ID,
		TokenHash: hashResetToken(token),
		ExpiresAt: time.Now().Add(resetTokenTTL),
	}
	if err := s.resetRepo.Replace(ctx, reset); err != nil {
		return fmt.Errorf("store token: %w", err)
	}

	resetURL := fmt.Sprintf("%s/reset-password?token=%s", s.frontendURL, token)
	if err := s.mailer.SendPasswordReset(user.Email, resetURL); err != nil {
		// A send failure must not change the response either, or a
		// registered address would become distinguishable.
		log.Printf("password reset mail for user %d: %v", user.ID, err)
	}
	return nil
}

// Validate checks the token without consuming it, so a link preview does
// not burn it.
func (s *passwordResetService) Validate(ctx context.Context, token string) error {
	_, err := s.resetRepo.FindValid(ctx, hashResetToken(token), time.Now())
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrInvalidResetToken
		}
		return fmt.Errorf("validate token: %w", err)
	}
	return nil
}

// Reset consumes the token exactly once: the credential update and the
// token delete commit together. Unknown and expired tokens yield the same
// error.
func (s *passwordResetService) Reset(ctx context.Context, token, newPassword string) error {
	if len(newPassword) < minPasswordLength {
		return apperrors.ErrPasswordTooShort
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcryptCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	if err := s.resetRepo.Consume(ctx, hashResetToken(token), time.Now(), string(hashed)); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrInvalidResetToken
		}
		return fmt.Errorf("consume token: %w", err)
	}
	return nil
}

// RunCleanup deletes expired tokens on a fixed interval until ctx is done.
// Housekeeping only; the request/validate/consume paths never depend on it.
func (s *passwordResetService) RunCleanup(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			deleted, err := s.resetRepo.DeleteExpired(ctx, time.Now())
			if err != nil {
				log.Printf("reset token cleanup: %v", err)
				continue
			}
			if deleted > 0 {
				log.Printf("reset token cleanup: removed %d expired tokens", deleted)
			}
		case <-ctx.Done():
			return
		}
	}
}

func generateResetToken() (string, error) {
	buf := make([]byte, resetTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}

// hashResetToken digests a token for storage and lookup; tokens are only
// ever compared in hashed form.
func hashResetToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
