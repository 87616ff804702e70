package usecase

import (
	"context"
	"errors"
	"net/mail"
	"strings"
	"time"

	"agency_quotes/internal/domain/entities"
	"agency_quotes/internal/infrastructure/logger"
	"agency_quotes/internal/usecase/interfaces"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// AccountProvisioner creates shadow accounts for prospects who have not
// registered yet. The normalized email is the idempotency key.
type AccountProvisioner struct {
	repo   interfaces.IAccountRepository
	issuer interfaces.ICredentialIssuer
	log    logrus.FieldLogger
	now    func() time.Time
}

var _ interfaces.IAccountProvisioner = (*AccountProvisioner)(nil)

func NewAccountProvisioner(repo interfaces.IAccountRepository, issuer interfaces.ICredentialIssuer) *AccountProvisioner {
	return &AccountProvisioner{
		repo:   repo,
		issuer: issuer,
		log:    logger.Get().WithField("module", "account_provisioner"),
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// NormalizeEmail trims and lowercases an address, returning "" when it is not valid.
func NormalizeEmail(email string) string {
	email = strings.ToLower(strings.TrimSpace(email))
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return ""
	}
	return email
}

func (p *AccountProvisioner) EnsureAccount(ctx context.Context, email, displayName, company string) (entities.ProvisionedAccount, error) {
	email = NormalizeEmail(email)
	if email == "" {
		return entities.ProvisionedAccount{}, ErrInvalidEmail
	}
	displayName = strings.TrimSpace(displayName)
	if displayName == "" {
		return entities.ProvisionedAccount{}, ErrInvalidContactName
	}
	company = strings.TrimSpace(company)

	existing, err := p.repo.GetByEmail(ctx, email)
	if err != nil {
		return entities.ProvisionedAccount{}, err
	}
	if existing.ID != "" {
		return p.reuse(ctx, existing, displayName, company)
	}

	plain, hash, err := p.issuer.Issue()
	if err != nil {
		return entities.ProvisionedAccount{}, err
	}

	now := p.now()
	account := entities.Account{
		ID:        uuid.NewString(),
		Email:     email,
		Name:      displayName,
		CreatedAt: now,
	}
	profile := entities.Profile{
		AccountID: account.ID,
		Role:      entities.RoleProspect,
		Name:      displayName,
		Email:     email,
		Company:   company,
		CreatedAt: now,
	}
	credential := entities.Credential{
		AccountID:    account.ID,
		PasswordHash: hash,
		MustChange:   true,
		CreatedAt:    now,
	}

	err = p.repo.CreateShadowAccount(ctx, account, profile, credential)
	if errors.Is(err, interfaces.ErrAccountEmailTaken) {
		// Another request provisioned the same email in between.
		p.log.WithField("op", "ensure_account").Info("email claimed concurrently, reusing account")
		existing, err = p.repo.GetByEmail(ctx, email)
		if err != nil {
			return entities.ProvisionedAccount{}, err
		}
		if existing.ID == "" {
			return entities.ProvisionedAccount{}, errors.New("account email guard exists without account")
		}
		return p.reuse(ctx, existing, displayName, company)
	}
	if err != nil {
		return entities.ProvisionedAccount{}, err
	}

	p.log.WithFields(logrus.Fields{"op": "ensure_account", "account_id": account.ID}).Info("shadow account created")
	return entities.ProvisionedAccount{
		AccountID: account.ID,
		Created:   true,
		Password:  entities.NewOneTimePassword(plain),
	}, nil
}

// reuse backfills a prospect profile when the account has none.
func (p *AccountProvisioner) reuse(ctx context.Context, a entities.Account, displayName, company string) (entities.ProvisionedAccount, error) {
	profile, err := p.repo.GetProfile(ctx, a.ID)
	if err != nil {
		return entities.ProvisionedAccount{}, err
	}
	if profile.AccountID == "" {
		name := a.Name
		if name == "" {
			name = displayName
		}
		_, err := p.repo.CreateProfile(ctx, entities.Profile{
			AccountID: a.ID,
			Role:      entities.RoleProspect,
			Name:      name,
			Email:     a.Email,
			Company:   company,
			CreatedAt: p.now(),
		})
		if err != nil {
			return entities.ProvisionedAccount{}, err
		}
		p.log.WithFields(logrus.Fields{"op": "ensure_account", "account_id": a.ID}).Info("missing profile backfilled")
	}
	return entities.ProvisionedAccount{AccountID: a.ID}, nil
}
