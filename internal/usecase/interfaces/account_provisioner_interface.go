package interfaces

import (
	"context"

	"agency_quotes/internal/domain/entities"
)

// IAccountProvisioner ensures an account exists for a prospect email.
//
//go:generate mockgen -source=account_provisioner_interface.go -destination=mocks/account_provisioner_mock.go -package=mock_interfaces
type IAccountProvisioner interface {
	EnsureAccount(ctx context.Context, email, displayName, company string) (entities.ProvisionedAccount, error)
}
