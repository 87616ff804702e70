package routes

import (
	"context"
	"fmt"
	"strings"
	"time"

	"agency_quotes/internal/adapter/persistence/repository"
	"agency_quotes/internal/config"
	"agency_quotes/internal/infrastructure/database"
	"agency_quotes/internal/infrastructure/document"
	"agency_quotes/internal/infrastructure/lock"
	"agency_quotes/internal/infrastructure/logger"
	"agency_quotes/internal/infrastructure/notifications"
	"agency_quotes/internal/infrastructure/payments"
	"agency_quotes/internal/infrastructure/security"
	"agency_quotes/internal/infrastructure/storage"
	"agency_quotes/internal/usecase"
	"agency_quotes/internal/usecase/interfaces"
)

const documentTimezone = "Europe/Paris"

type dependencies struct {
	Quotes       usecase.IQuoteUseCase
	ArtifactsDir string
	closers      []func() error
}

func (d *dependencies) Close() {
	log := logger.Get().WithField("module", "routes")
	for i := len(d.closers) - 1; i >= 0; i-- {
		if err := d.closers[i](); err != nil {
			log.WithError(err).Warn("shutdown: close failed")
		}
	}
}

func buildDependencies(ctx context.Context, cfg *config.Config) (*dependencies, error) {
	log := logger.Get().WithField("module", "routes")
	deps := &dependencies{}

	ddb, err := database.ConnectDynamoDB(ctx, database.DynamoDBSettings{
		Region:          cfg.AWS.Region,
		AccessKeyID:     cfg.AWS.AccessKeyID,
		SecretAccessKey: cfg.AWS.SecretAccessKey,
		Endpoint:        cfg.AWS.DynamoEndpoint,
	})
	if err != nil {
		return nil, fmt.Errorf("dynamodb: %w", err)
	}

	quoteRepo := repository.NewQuoteDynamoRepository(ddb, cfg.Tables.Quotes)
	projectRepo := repository.NewProjectDynamoRepository(ddb, cfg.Tables.Projects)
	depositRepo := repository.NewDepositDynamoRepository(ddb, cfg.Tables.Deposits)
	numbers := repository.NewQuoteNumberSequence(ddb, cfg.Tables.Counters)
	accountRepo := repository.NewAccountDynamoRepository(ddb, repository.AccountTables{
		Accounts:    cfg.Tables.Accounts,
		Emails:      cfg.Tables.AccountEmails,
		Profiles:    cfg.Tables.Profiles,
		Credentials: cfg.Tables.Credentials,
	})

	store, err := buildStore(ctx, cfg, deps)
	if err != nil {
		deps.Close()
		return nil, err
	}

	notifier, err := buildNotifier(ctx, cfg, deps)
	if err != nil {
		deps.Close()
		return nil, err
	}

	locker, err := buildLocker(ctx, cfg, deps)
	if err != nil {
		deps.Close()
		return nil, err
	}

	var checkout interfaces.ICheckoutGateway
	gw, err := payments.NewMercadoPagoGateway(payments.CheckoutSettings{
		AccessToken:     cfg.MercadoPago.AccessToken,
		SuccessURL:      cfg.MercadoPago.SuccessURL,
		FailureURL:      cfg.MercadoPago.FailureURL,
		PendingURL:      cfg.MercadoPago.PendingURL,
		NotificationURL: cfg.MercadoPago.NotificationURL,
		Currency:        cfg.MercadoPago.Currency,
		Mock:            cfg.MercadoPago.Mock,
	})
	if err != nil {
		log.WithError(err).Warn("deposit checkout disabled")
	} else {
		checkout = gw
	}

	loc, err := time.LoadLocation(documentTimezone)
	if err != nil {
		loc = time.UTC
	}
	renderer := document.NewPDFRenderer(document.Issuer{
		Name:    cfg.Issuer.Name,
		Address: cfg.Issuer.Address,
		Email:   cfg.Issuer.Email,
		Phone:   cfg.Issuer.Phone,
		SIRET:   cfg.Issuer.SIRET,
	}, cfg.Issuer.LogoPath, cfg.Issuer.LogoURL, loc)

	deps.Quotes = usecase.NewQuoteUseCase(usecase.QuoteUseCaseDeps{
		Quotes:         quoteRepo,
		Projects:       projectRepo,
		Accounts:       accountRepo,
		Numbers:        numbers,
		Renderer:       renderer,
		Store:          store,
		Notifier:       notifier,
		Provisioner:    usecase.NewAccountProvisioner(accountRepo, security.NewBcryptIssuer()),
		Checkout:       checkout,
		Deposits:       depositRepo,
		Locker:         locker,
		DepositPercent: cfg.Quotes.DepositPercent,
	})
	return deps, nil
}

func buildStore(ctx context.Context, cfg *config.Config, deps *dependencies) (interfaces.IArtifactStore, error) {
	if strings.EqualFold(cfg.Storage.Provider, "local") {
		baseURL := cfg.Storage.PublicBaseURL
		if baseURL == "" {
			baseURL = fmt.Sprintf("http://localhost:%d%s", cfg.App.Port, PathArtifacts)
		}
		deps.ArtifactsDir = cfg.Storage.LocalDir
		return storage.NewLocalStore(cfg.Storage.LocalDir, baseURL), nil
	}

	client, err := storage.NewGCSClient(ctx, cfg.Google.CredentialsJSON)
	if err != nil {
		return nil, fmt.Errorf("gcs: %w", err)
	}
	deps.closers = append(deps.closers, client.Close)
	return storage.NewGCSStore(client, cfg.Storage.Bucket, cfg.Storage.PublicBaseURL), nil
}

func buildNotifier(ctx context.Context, cfg *config.Config, deps *dependencies) (interfaces.INotificationDispatcher, error) {
	if cfg.PubSub.ProjectID == "" {
		logger.Get().WithField("module", "routes").Warn("PUBSUB_PROJECT_ID not set, notifications are only logged")
		return notifications.NewLoggingDispatcher(logger.Get()), nil
	}

	client, err := notifications.NewPubSubClient(ctx, cfg.PubSub.ProjectID, cfg.Google.CredentialsJSON)
	if err != nil {
		return nil, fmt.Errorf("pubsub: %w", err)
	}
	deps.closers = append(deps.closers, client.Close)

	topic, err := notifications.EnsureTopic(ctx, client, cfg.PubSub.Topic)
	if err != nil {
		return nil, fmt.Errorf("pubsub topic %s: %w", cfg.PubSub.Topic, err)
	}
	deps.closers = append(deps.closers, func() error { topic.Stop(); return nil })
	return notifications.NewPubSubDispatcher(topic), nil
}

func buildLocker(ctx context.Context, cfg *config.Config, deps *dependencies) (interfaces.ILocker, error) {
	if cfg.Redis.Address == "" {
		return lock.NoopLocker{}, nil
	}
	rdb, err := lock.Connect(ctx, cfg.Redis.Address, cfg.Redis.Password, cfg.Redis.DB)
	if err != nil {
		return nil, fmt.Errorf("redis: %w", err)
	}
	deps.closers = append(deps.closers, rdb.Close)
	return lock.NewRedisLocker(rdb), nil
}
