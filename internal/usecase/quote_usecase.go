package usecase

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"agency_quotes/internal/domain/entities"
	"agency_quotes/internal/infrastructure/logger"
	"agency_quotes/internal/usecase/interfaces"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const (
	pdfContentType  = "application/pdf"
	lockTTL         = 30 * time.Second
	defaultDepositP = 30
)

// IQuoteUseCase exposes the quote lifecycle.
//
//   - Create / CreateStandalone issue a pending quote (or resend the pending one).
//   - Resend re-dispatches the "quote created" email.
//   - Delete cancels a quote by removing it.
//   - Sign moves pending -> signed and opens the deposit checkout for prospects.
//
//go:generate mockgen -source=quote_usecase.go -destination=../adapter/http/handlers/mocks/quote_usecase_mock.go -package=mocks
type IQuoteUseCase interface {
	Create(ctx context.Context, cmd CreateQuoteCommand) (CreateQuoteResult, error)
	CreateStandalone(ctx context.Context, cmd CreateStandaloneQuoteCommand) (CreateQuoteResult, error)
	Resend(ctx context.Context, quoteID string) (entities.Quote, error)
	Delete(ctx context.Context, quoteID string) error
	Sign(ctx context.Context, cmd SignQuoteCommand) (SignQuoteResult, error)
	Get(ctx context.Context, quoteID string, actor entities.Actor) (entities.Quote, error)
	LatestDeposit(ctx context.Context, quoteID string, actor entities.Actor) (entities.DepositCheckout, error)
}

type CreateQuoteCommand struct {
	ProjectID string
	Amount    *float64
	Services  []string
	Delay     string
}

type CreateStandaloneQuoteCommand struct {
	Name        string
	Email       string
	Company     string
	ProjectName string
	Amount      *float64
	Services    []string
	Delay       string
	// Document, when set, is a pre-rendered PDF stored instead of rendering one.
	Document []byte
}

type SignQuoteCommand struct {
	QuoteID   string
	Signature string
	Signer    entities.Actor
}

type CreateQuoteResult struct {
	Quote entities.Quote
	// Resent is true when a pending quote already existed and was re-sent.
	Resent bool
	// OneTimePassword is set only when a shadow account was just created.
	OneTimePassword *entities.OneTimePassword
	// NotificationErr reports a failed email; the quote is still valid.
	NotificationErr error
}

type SignQuoteResult struct {
	Quote entities.Quote
	// RedirectURL is the deposit checkout for prospect signers.
	RedirectURL string
	// CheckoutErr is set when the signature succeeded but no checkout could be opened.
	CheckoutErr     error
	NotificationErr error
}

// QuoteUseCaseDeps wires the collaborators of the quote ledger. Locker,
// Checkout and Deposits are optional.
type QuoteUseCaseDeps struct {
	Quotes      interfaces.IQuoteRepository
	Projects    interfaces.IProjectRepository
	Accounts    interfaces.IAccountRepository
	Numbers     interfaces.IQuoteNumberSequence
	Renderer    interfaces.IDocumentRenderer
	Store       interfaces.IArtifactStore
	Notifier    interfaces.INotificationDispatcher
	Provisioner interfaces.IAccountProvisioner
	Checkout    interfaces.ICheckoutGateway
	Deposits    interfaces.IDepositRepository
	Locker      interfaces.ILocker

	DepositPercent int
	Logger         logrus.FieldLogger
	Now            func() time.Time
}

type QuoteUseCase struct {
	quotes      interfaces.IQuoteRepository
	projects    interfaces.IProjectRepository
	accounts    interfaces.IAccountRepository
	numbers     interfaces.IQuoteNumberSequence
	renderer    interfaces.IDocumentRenderer
	store       interfaces.IArtifactStore
	notifier    interfaces.INotificationDispatcher
	provisioner interfaces.IAccountProvisioner
	checkout    interfaces.ICheckoutGateway
	deposits    interfaces.IDepositRepository
	locker      interfaces.ILocker

	depositPercent int
	log            logrus.FieldLogger
	now            func() time.Time
}

var _ IQuoteUseCase = (*QuoteUseCase)(nil)

func NewQuoteUseCase(d QuoteUseCaseDeps) *QuoteUseCase {
	u := &QuoteUseCase{
		quotes:         d.Quotes,
		projects:       d.Projects,
		accounts:       d.Accounts,
		numbers:        d.Numbers,
		renderer:       d.Renderer,
		store:          d.Store,
		notifier:       d.Notifier,
		provisioner:    d.Provisioner,
		checkout:       d.Checkout,
		deposits:       d.Deposits,
		locker:         d.Locker,
		depositPercent: d.DepositPercent,
		log:            d.Logger,
		now:            d.Now,
	}
	if u.depositPercent == 0 {
		u.depositPercent = defaultDepositP
	}
	if u.log == nil {
		u.log = logger.Get()
	}
	u.log = u.log.WithField("module", "quote")
	if u.now == nil {
		u.now = func() time.Time { return time.Now().UTC() }
	}
	return u
}

type issueParams struct {
	amount   *int64
	services []string
	delay    string
	document []byte
}

func (u *QuoteUseCase) Create(ctx context.Context, cmd CreateQuoteCommand) (res CreateQuoteResult, err error) {
	projectID := strings.TrimSpace(cmd.ProjectID)
	defer u.observe("create", logrus.Fields{"project_id": projectID}, &err)

	if projectID == "" {
		return CreateQuoteResult{}, ErrInvalidProjectID
	}
	amount, err := NormalizeAmount(cmd.Amount)
	if err != nil {
		return CreateQuoteResult{}, err
	}

	project, err := u.projects.GetByID(ctx, projectID)
	if err != nil {
		return CreateQuoteResult{}, err
	}
	if project.ID == "" {
		return CreateQuoteResult{}, ErrProjectNotFound
	}

	return u.issue(ctx, project, issueParams{
		amount:   amount,
		services: cleanServices(cmd.Services),
		delay:    strings.TrimSpace(cmd.Delay),
	})
}

func (u *QuoteUseCase) CreateStandalone(ctx context.Context, cmd CreateStandaloneQuoteCommand) (res CreateQuoteResult, err error) {
	defer u.observe("create_standalone", nil, &err)

	name := strings.TrimSpace(cmd.Name)
	if name == "" {
		return CreateQuoteResult{}, ErrInvalidContactName
	}
	if NormalizeEmail(cmd.Email) == "" {
		return CreateQuoteResult{}, ErrInvalidEmail
	}
	projectName := strings.TrimSpace(cmd.ProjectName)
	if projectName == "" {
		return CreateQuoteResult{}, ErrInvalidProjectName
	}
	amount, err := NormalizeAmount(cmd.Amount)
	if err != nil {
		return CreateQuoteResult{}, err
	}
	if len(cmd.Document) > 0 && http.DetectContentType(cmd.Document) != pdfContentType {
		return CreateQuoteResult{}, ErrInvalidDocument
	}
	if u.provisioner == nil {
		return CreateQuoteResult{}, errors.New("account provisioner not configured")
	}

	account, err := u.provisioner.EnsureAccount(ctx, cmd.Email, name, cmd.Company)
	if err != nil {
		return CreateQuoteResult{}, err
	}

	project, err := u.projects.Create(ctx, entities.Project{
		ID:        uuid.NewString(),
		Name:      projectName,
		OwnerID:   account.AccountID,
		Status:    entities.ProjectStatusOnboarding,
		Progress:  0,
		CreatedAt: u.now(),
	})
	if err != nil {
		return CreateQuoteResult{}, err
	}
	u.log.WithFields(logrus.Fields{
		"op":              "create_standalone",
		"project_id":      project.ID,
		"account_id":      account.AccountID,
		"account_created": account.Created,
	}).Info("project created for standalone quote")

	res, err = u.issue(ctx, project, issueParams{
		amount:   amount,
		services: cleanServices(cmd.Services),
		delay:    strings.TrimSpace(cmd.Delay),
		document: cmd.Document,
	})
	if err != nil {
		return CreateQuoteResult{}, err
	}
	res.OneTimePassword = account.Password
	return res, nil
}

// issue runs numbering -> render -> store -> persist -> notify for a project.
// Nothing is persisted when any step before the quote row fails.
func (u *QuoteUseCase) issue(ctx context.Context, project entities.Project, p issueParams) (CreateQuoteResult, error) {
	unlock, err := u.lock(ctx, "quote:project:"+project.ID)
	if err != nil {
		return CreateQuoteResult{}, err
	}
	defer unlock()

	existing, err := u.quotes.GetByProjectID(ctx, project.ID)
	if err != nil {
		return CreateQuoteResult{}, err
	}
	if existing.ID != "" {
		if !existing.IsPending() {
			return CreateQuoteResult{}, ErrQuoteAlreadySigned
		}
		u.log.WithFields(logrus.Fields{"op": "create", "project_id": project.ID, "quote_id": existing.ID}).
			Info("pending quote already exists, resending")
		return CreateQuoteResult{
			Quote:           existing,
			Resent:          true,
			NotificationErr: u.notifyCreated(ctx, existing, project),
		}, nil
	}

	profile, err := u.accounts.GetProfile(ctx, project.OwnerID)
	if err != nil {
		return CreateQuoteResult{}, err
	}
	client := entities.ClientParty{
		Name:    strings.TrimSpace(profile.Name),
		Email:   strings.TrimSpace(profile.Email),
		Phone:   strings.TrimSpace(profile.Phone),
		Company: strings.TrimSpace(profile.Company),
	}
	if client.Email == "" {
		return CreateQuoteResult{}, ErrMissingContactEmail
	}
	if client.Name == "" {
		client.Name = client.Email
	}

	number, err := u.numbers.Next(ctx)
	if err != nil {
		return CreateQuoteResult{}, dependencyFailure("numbering", err)
	}
	if number <= 0 {
		return CreateQuoteResult{}, dependencyFailure("numbering", fmt.Errorf("counter returned %d", number))
	}

	now := u.now()
	q := entities.Quote{
		ID:        uuid.NewString(),
		ProjectID: project.ID,
		Number:    number,
		Client:    client,
		Amount:    p.amount,
		Services:  p.services,
		Delay:     p.delay,
		CreatedAt: now,
		UpdatedAt: now,
	}

	pdf := p.document
	if len(pdf) == 0 {
		pdf, err = u.renderer.Render(ctx, entities.NewQuoteDocument(q))
		if err != nil {
			return CreateQuoteResult{}, renderFailure("render", err)
		}
	}
	q.PDFURL, err = u.putArtifact(ctx, ArtifactPath(number, now, false), pdf)
	if err != nil {
		return CreateQuoteResult{}, err
	}

	created, err := u.quotes.Create(ctx, q)
	if err != nil {
		return CreateQuoteResult{}, err
	}
	u.log.WithFields(logrus.Fields{
		"op":         "create",
		"project_id": project.ID,
		"quote_id":   created.ID,
		"number":     created.FormattedNumber(),
	}).Info("quote created")

	return CreateQuoteResult{
		Quote:           created,
		NotificationErr: u.notifyCreated(ctx, created, project),
	}, nil
}

func (u *QuoteUseCase) Resend(ctx context.Context, quoteID string) (q entities.Quote, err error) {
	quoteID = strings.TrimSpace(quoteID)
	defer u.observe("resend", logrus.Fields{"quote_id": quoteID}, &err)

	q, err = u.getQuote(ctx, quoteID)
	if err != nil {
		return entities.Quote{}, err
	}
	if !q.IsPending() {
		return entities.Quote{}, ErrQuoteNotPending
	}
	project, err := u.getProject(ctx, q.ProjectID)
	if err != nil {
		return entities.Quote{}, err
	}
	if nErr := u.notifyCreated(ctx, q, project); nErr != nil {
		return entities.Quote{}, nErr
	}
	return q, nil
}

func (u *QuoteUseCase) Delete(ctx context.Context, quoteID string) (err error) {
	quoteID = strings.TrimSpace(quoteID)
	defer u.observe("delete", logrus.Fields{"quote_id": quoteID}, &err)

	if quoteID == "" {
		return ErrInvalidQuoteID
	}
	deleted, err := u.quotes.Delete(ctx, quoteID)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrQuoteNotFound
	}
	u.log.WithFields(logrus.Fields{"op": "delete", "quote_id": quoteID}).Info("quote deleted")
	return nil
}

func (u *QuoteUseCase) Sign(ctx context.Context, cmd SignQuoteCommand) (res SignQuoteResult, err error) {
	quoteID := strings.TrimSpace(cmd.QuoteID)
	defer u.observe("sign", logrus.Fields{"quote_id": quoteID, "signer_id": cmd.Signer.AccountID}, &err)

	if quoteID == "" {
		return SignQuoteResult{}, ErrInvalidQuoteID
	}
	unlock, err := u.lock(ctx, "quote:sign:"+quoteID)
	if err != nil {
		return SignQuoteResult{}, err
	}
	defer unlock()

	q, err := u.getQuote(ctx, quoteID)
	if err != nil {
		return SignQuoteResult{}, err
	}
	project, err := u.getProject(ctx, q.ProjectID)
	if err != nil {
		return SignQuoteResult{}, err
	}
	if !canAccess(cmd.Signer, project) {
		return SignQuoteResult{}, ErrNotQuoteOwner
	}
	if !q.IsPending() {
		return SignQuoteResult{}, ErrQuoteNotPending
	}

	png, err := DecodeSignature(cmd.Signature)
	if err != nil {
		return SignQuoteResult{}, err
	}

	signedAt := u.now()
	doc := entities.NewQuoteDocument(q)
	doc.Signature = &entities.DocumentSignature{PNG: png, SignedAt: signedAt}
	pdf, err := u.renderer.Render(ctx, doc)
	if err != nil {
		return SignQuoteResult{}, renderFailure("render signed", err)
	}
	signedURL, err := u.putArtifact(ctx, ArtifactPath(q.Number, signedAt, true), pdf)
	if err != nil {
		return SignQuoteResult{}, err
	}

	signed, err := u.quotes.MarkSigned(ctx, q.ID, signedURL, signedAt)
	if err != nil {
		return SignQuoteResult{}, err
	}
	if signed.ID == "" {
		// Signed or deleted by a concurrent request after our read.
		return SignQuoteResult{}, ErrQuoteNotPending
	}
	u.log.WithFields(logrus.Fields{"op": "sign", "quote_id": signed.ID, "number": signed.FormattedNumber()}).Info("quote signed")

	res = SignQuoteResult{Quote: signed}
	if cmd.Signer.Role == entities.RoleProspect {
		res.RedirectURL, res.CheckoutErr = u.openDeposit(ctx, signed)
	}
	res.NotificationErr = u.notifySigned(ctx, signed, project)
	return res, nil
}

func (u *QuoteUseCase) Get(ctx context.Context, quoteID string, actor entities.Actor) (entities.Quote, error) {
	q, err := u.getQuote(ctx, strings.TrimSpace(quoteID))
	if err != nil {
		return entities.Quote{}, err
	}
	if actor.Role.IsOperator() {
		return q, nil
	}
	project, err := u.getProject(ctx, q.ProjectID)
	if err != nil {
		return entities.Quote{}, err
	}
	if !canAccess(actor, project) {
		return entities.Quote{}, ErrNotQuoteOwner
	}
	return q, nil
}

func (u *QuoteUseCase) LatestDeposit(ctx context.Context, quoteID string, actor entities.Actor) (entities.DepositCheckout, error) {
	q, err := u.Get(ctx, quoteID, actor)
	if err != nil {
		return entities.DepositCheckout{}, err
	}
	if u.deposits == nil {
		return entities.DepositCheckout{}, ErrDepositNotFound
	}
	deposits, err := u.deposits.ListByQuoteID(ctx, q.ID)
	if err != nil {
		return entities.DepositCheckout{}, err
	}
	if len(deposits) == 0 {
		return entities.DepositCheckout{}, ErrDepositNotFound
	}
	latest := deposits[0]
	for _, d := range deposits[1:] {
		if d.CreatedAt.After(latest.CreatedAt) {
			latest = d
		}
	}
	return latest, nil
}

// ArtifactPath keys a rendered document by quote number and render time.
func ArtifactPath(number int64, at time.Time, signed bool) string {
	n := entities.FormatQuoteNumber(number)
	if signed {
		return fmt.Sprintf("quotes/%s/devis-%s-signed-%d.pdf", n, n, at.UnixMilli())
	}
	return fmt.Sprintf("quotes/%s/devis-%s-%d.pdf", n, n, at.UnixMilli())
}

func (u *QuoteUseCase) putArtifact(ctx context.Context, path string, pdf []byte) (string, error) {
	url, err := u.store.Put(ctx, path, pdf, pdfContentType)
	if err != nil {
		return "", renderFailure("store", err)
	}
	if url == "" {
		return "", renderFailure("store", errors.New("artifact store returned an empty url"))
	}
	return url, nil
}

func (u *QuoteUseCase) openDeposit(ctx context.Context, q entities.Quote) (string, error) {
	if u.checkout == nil {
		return "", dependencyFailure("checkout", errors.New("checkout gateway not configured"))
	}
	amount := DepositAmount(q.EffectiveAmount(), u.depositPercent)
	providerID, redirectURL, err := u.checkout.CreateDepositCheckout(ctx, interfaces.DepositCheckoutRequest{
		QuoteID:    q.ID,
		Number:     q.FormattedNumber(),
		Amount:     amount,
		PayerEmail: q.Client.Email,
		PayerName:  q.Client.Name,
	})
	if err != nil {
		logger.LogError(u.log, "quote", "openDeposit", "quote_id="+q.ID, nil, err)
		return "", dependencyFailure("checkout", err)
	}

	if u.deposits != nil {
		_, dErr := u.deposits.Create(ctx, entities.DepositCheckout{
			ID:          uuid.NewString(),
			QuoteID:     q.ID,
			ProviderID:  providerID,
			RedirectURL: redirectURL,
			Amount:      amount,
			Status:      entities.DepositStatusPending,
			CreatedAt:   u.now(),
		})
		if dErr != nil {
			logger.LogError(u.log, "quote", "openDeposit", "persist deposit quote_id="+q.ID, nil, dErr)
		}
	}
	return redirectURL, nil
}

func (u *QuoteUseCase) notifyCreated(ctx context.Context, q entities.Quote, project entities.Project) error {
	if err := u.notifier.QuoteCreated(ctx, notificationFor(q, project, u.now())); err != nil {
		logger.LogError(u.log, "quote", "notifyCreated", "quote_id="+q.ID+" project_id="+project.ID, nil, err)
		return dependencyFailure("notification", err)
	}
	return nil
}

func (u *QuoteUseCase) notifySigned(ctx context.Context, q entities.Quote, project entities.Project) error {
	n := notificationFor(q, project, u.now())
	n.PDFURL = q.Signature.PDFURL
	if err := u.notifier.QuoteSigned(ctx, n); err != nil {
		logger.LogError(u.log, "quote", "notifySigned", "quote_id="+q.ID+" project_id="+project.ID, nil, err)
		return dependencyFailure("notification", err)
	}
	return nil
}

func notificationFor(q entities.Quote, project entities.Project, at time.Time) interfaces.QuoteNotification {
	return interfaces.QuoteNotification{
		QuoteID:     q.ID,
		OwnerID:     project.OwnerID,
		Email:       q.Client.Email,
		Name:        q.Client.Name,
		ProjectName: project.Name,
		PDFURL:      q.PDFURL,
		Number:      q.FormattedNumber(),
		OccurredAt:  at,
	}
}

func (u *QuoteUseCase) getQuote(ctx context.Context, id string) (entities.Quote, error) {
	if id == "" {
		return entities.Quote{}, ErrInvalidQuoteID
	}
	q, err := u.quotes.GetByID(ctx, id)
	if err != nil {
		return entities.Quote{}, err
	}
	if q.ID == "" {
		return entities.Quote{}, ErrQuoteNotFound
	}
	return q, nil
}

func (u *QuoteUseCase) getProject(ctx context.Context, id string) (entities.Project, error) {
	p, err := u.projects.GetByID(ctx, id)
	if err != nil {
		return entities.Project{}, err
	}
	if p.ID == "" {
		return entities.Project{}, ErrProjectNotFound
	}
	return p, nil
}

func (u *QuoteUseCase) lock(ctx context.Context, key string) (func(), error) {
	if u.locker == nil {
		return func() {}, nil
	}
	release, err := u.locker.Lock(ctx, key, lockTTL)
	if err != nil {
		return nil, dependencyFailure("lock", err)
	}
	return func() {
		if err := release(context.WithoutCancel(ctx)); err != nil {
			u.log.WithError(err).WithField("lock_key", key).Warn("lock release failed")
		}
	}, nil
}

// observe logs the outcome of an operation. Rejections from the error
// taxonomy are warnings; anything else is an unexpected failure.
func (u *QuoteUseCase) observe(op string, fields logrus.Fields, errp *error) {
	err := *errp
	if err == nil {
		return
	}
	entry := u.log.WithFields(fields).WithField("op", op).WithError(err)
	if IsKnownError(err) {
		entry.Warn("operation rejected")
		return
	}
	entry.Error("operation failed")
}

// IsKnownError reports whether err belongs to the lifecycle error taxonomy.
func IsKnownError(err error) bool {
	for _, kind := range []error{ErrNotFound, ErrConflict, ErrValidation, ErrInvalidState, ErrRenderFailure, ErrDependencyFailure, ErrForbidden} {
		if errors.Is(err, kind) {
			return true
		}
	}
	return false
}

func canAccess(actor entities.Actor, project entities.Project) bool {
	if actor.Role.IsOperator() {
		return true
	}
	return actor.AccountID != "" && actor.AccountID == project.OwnerID
}

func cleanServices(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
