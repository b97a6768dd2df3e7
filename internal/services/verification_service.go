package services

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/bitwatch/bitwatch-api/internal/mailer"
	"github.com/bitwatch/bitwatch-api/internal/models"
	"github.com/bitwatch/bitwatch-api/internal/storage"
)

var (
	ErrVerificationNotFound = errors.New("no verification requested for this email")
	ErrAlreadyVerified      = errors.New("verification code already used")
	ErrCodeMismatch         = errors.New("verification code does not match")
	ErrCodeExpired          = errors.New("verification code expired")
)

const codeTTL = 5 * time.Minute

type VerificationService struct {
	store  storage.VerificationStore
	sender mailer.Sender
}

func NewVerificationService(store storage.VerificationStore, sender mailer.Sender) *VerificationService {
	return &VerificationService{store: store, sender: sender}
}

// RequestVerification issues a fresh 6-digit code for the email, superseding
// any earlier code, and delivers it. The email is sent before responding so a
// delivery failure surfaces to the caller.
func (s *VerificationService) RequestVerification(email string) error {
	code, err := generateCode()
	if err != nil {
		return fmt.Errorf("failed to generate verification code: %w", err)
	}

	v := &models.EmailVerification{
		Email:            email,
		VerificationCode: code,
		ExpiresAt:        time.Now().Add(codeTTL),
		IsVerified:       false,
		CreatedAt:        time.Now(),
	}
	if err := s.store.Upsert(v); err != nil {
		return err
	}

	body := fmt.Sprintf("Your BitWatch verification code is %s. It expires in 5 minutes.", code)
	return s.sender.Send(email, "BitWatch email verification code", body)
}

// ConfirmVerification consumes the code governing the email. Marking the row
// verified is terminal; a consumed code is never accepted again.
func (s *VerificationService) ConfirmVerification(email, code string) error {
	v, err := s.store.FindByEmail(email)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return ErrVerificationNotFound
		}
		return err
	}

	if v.IsVerified {
		return ErrAlreadyVerified
	}
	if v.VerificationCode != code {
		return ErrCodeMismatch
	}
	if time.Now().After(v.ExpiresAt) {
		return ErrCodeExpired
	}

	return s.store.MarkVerified(email)
}

// generateCode draws a 6-digit code in [100000, 999999] from crypto/rand.
func generateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()+100000), nil
}
