package config

import (
	"fmt"
	"strings"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App struct {
		Name     string `envconfig:"APP_NAME" default:"agency-quotes"`
		Port     int    `envconfig:"PORT" default:"8080"`
		LogLevel string `envconfig:"LOG_LEVEL" default:"info"`

		// CORSAllowedOrigins is comma separated; empty allows every origin.
		CORSAllowedOrigins []string `envconfig:"CORS_ALLOWED_ORIGINS"`
	}

	AWS struct {
		Region          string `envconfig:"AWS_REGION" default:"us-east-1"`
		AccessKeyID     string `envconfig:"AWS_ACCESS_KEY_ID" default:"local"`
		SecretAccessKey string `envconfig:"AWS_SECRET_ACCESS_KEY" default:"local"`
		DynamoEndpoint  string `envconfig:"DYNAMODB_ENDPOINT"`
	}

	Tables struct {
		Quotes        string `envconfig:"DYNAMODB_QUOTES_TABLE" default:"quotes"`
		Projects      string `envconfig:"DYNAMODB_PROJECTS_TABLE" default:"projects"`
		Accounts      string `envconfig:"DYNAMODB_ACCOUNTS_TABLE" default:"accounts"`
		AccountEmails string `envconfig:"DYNAMODB_ACCOUNT_EMAILS_TABLE" default:"account_emails"`
		Profiles      string `envconfig:"DYNAMODB_PROFILES_TABLE" default:"profiles"`
		Credentials   string `envconfig:"DYNAMODB_CREDENTIALS_TABLE" default:"credentials"`
		Counters      string `envconfig:"DYNAMODB_COUNTERS_TABLE" default:"counters"`
		Deposits      string `envconfig:"DYNAMODB_DEPOSITS_TABLE" default:"deposits"`
	}

	Storage struct {
		// Provider is "gcs" or "local".
		Provider      string `envconfig:"STORAGE_PROVIDER" default:"gcs"`
		Bucket        string `envconfig:"GCS_BUCKET"`
		PublicBaseURL string `envconfig:"STORAGE_PUBLIC_BASE_URL"`
		LocalDir      string `envconfig:"STORAGE_LOCAL_DIR" default:"./data/artifacts"`
	}

	Google struct {
		// CredentialsJSON is a service account key; application default credentials are used when empty.
		CredentialsJSON string `envconfig:"GOOGLE_CREDENTIALS_JSON"`
	}

	PubSub struct {
		ProjectID string `envconfig:"PUBSUB_PROJECT_ID"`
		Topic     string `envconfig:"NOTIFICATIONS_TOPIC" default:"quote-notifications"`
	}

	Redis struct {
		Address  string `envconfig:"REDIS_ADDRESS"`
		Password string `envconfig:"REDIS_PASSWORD"`
		DB       int    `envconfig:"REDIS_DB" default:"0"`
	}

	MercadoPago struct {
		AccessToken     string `envconfig:"MERCADOPAGO_ACCESS_TOKEN"`
		Mock            bool   `envconfig:"PAYMENT_GATEWAY_MOCK" default:"false"`
		SuccessURL      string `envconfig:"MERCADOPAGO_SUCCESS_URL"`
		FailureURL      string `envconfig:"MERCADOPAGO_FAILURE_URL"`
		PendingURL      string `envconfig:"MERCADOPAGO_PENDING_URL"`
		NotificationURL string `envconfig:"MERCADOPAGO_NOTIFICATION_URL"`
		Currency        string `envconfig:"MERCADOPAGO_CURRENCY" default:"EUR"`
	}

	Auth struct {
		JWTSecret string `envconfig:"JWT_SECRET"`
	}

	Issuer struct {
		Name     string `envconfig:"ISSUER_NAME" default:"Studio Atelier Web"`
		Address  string `envconfig:"ISSUER_ADDRESS" default:"12 rue des Lilas, 75011 Paris"`
		Email    string `envconfig:"ISSUER_EMAIL" default:"contact@atelier-web.fr"`
		Phone    string `envconfig:"ISSUER_PHONE" default:"+33 1 23 45 67 89"`
		SIRET    string `envconfig:"ISSUER_SIRET"`
		LogoPath string `envconfig:"LOGO_PATH" default:"./assets/logo.png"`
		LogoURL  string `envconfig:"LOGO_URL"`
	}

	Quotes struct {
		DepositPercent int `envconfig:"DEPOSIT_PERCENT" default:"30"`
	}
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	switch strings.ToLower(c.Storage.Provider) {
	case "gcs":
		if c.Storage.Bucket == "" {
			return fmt.Errorf("GCS_BUCKET is required when STORAGE_PROVIDER=gcs")
		}
	case "local":
	default:
		return fmt.Errorf("unsupported STORAGE_PROVIDER %q", c.Storage.Provider)
	}
	if c.Auth.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}
	if c.Quotes.DepositPercent < 1 || c.Quotes.DepositPercent > 100 {
		return fmt.Errorf("DEPOSIT_PERCENT must be between 1 and 100, got %d", c.Quotes.DepositPercent)
	}
	return nil
}

// Addr is the listen address for the HTTP server.
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.App.Port)
}
