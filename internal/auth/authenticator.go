package auth

import (
	"context"

	"github.com/mmynk/hanekasa/internal/models"
)

// Authenticator registers household members and checks their credentials.
// PasswordAuthenticator is the only implementation.
type Authenticator interface {
	// Register returns ErrEmailExists, ErrWeakPassword or ErrInvalidEmail for
	// rejected sign-ups.
	Register(ctx context.Context, email, displayName, credential string) (*models.User, error)

	// Authenticate returns ErrInvalidCredentials for an unknown email or wrong credential.
	Authenticate(ctx context.Context, email, credential string) (*models.User, error)

	ValidateCredential(credential string) error
}
