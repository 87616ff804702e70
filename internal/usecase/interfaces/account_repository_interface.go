package interfaces

import (
	"context"
	"errors"

	"agency_quotes/internal/domain/entities"
)

// ErrAccountEmailTaken is returned by CreateShadowAccount when another writer
// claimed the email first.
var ErrAccountEmailTaken = errors.New("account email already taken")

// IAccountRepository abstracts persistence for the Account/Profile/Credential triple.
//
//go:generate mockgen -source=account_repository_interface.go -destination=mocks/account_repository_mock.go -package=mock_interfaces
type IAccountRepository interface {
	GetByEmail(ctx context.Context, email string) (entities.Account, error)
	GetProfile(ctx context.Context, accountID string) (entities.Profile, error)
	CreateProfile(ctx context.Context, p entities.Profile) (entities.Profile, error)
	// CreateShadowAccount writes all records atomically, guarded by email uniqueness.
	CreateShadowAccount(ctx context.Context, a entities.Account, p entities.Profile, c entities.Credential) error
}

// ICredentialIssuer generates a one-time password and its storage hash.
type ICredentialIssuer interface {
	Issue() (plaintext string, hash string, err error)
}
