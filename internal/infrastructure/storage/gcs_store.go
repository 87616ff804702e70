package storage

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"agency_quotes/internal/infrastructure/logger"
	"agency_quotes/internal/usecase/interfaces"

	"cloud.google.com/go/storage"
	"github.com/sirupsen/logrus"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
)

// GCSStore writes rendered documents to a Google Cloud Storage bucket with
// public-read objects.
type GCSStore struct {
	client  *storage.Client
	bucket  string
	baseURL string
	log     logrus.FieldLogger
}

var _ interfaces.IArtifactStore = (*GCSStore)(nil)

// NewGCSClient prefers ADC; GCS_CREDENTIALS_JSON-style explicit credentials are
// passed as credentialsJSON.
func NewGCSClient(ctx context.Context, credentialsJSON string) (*storage.Client, error) {
	if strings.TrimSpace(credentialsJSON) != "" {
		return storage.NewClient(ctx, option.WithCredentialsJSON([]byte(credentialsJSON)))
	}
	return storage.NewClient(ctx)
}

// NewGCSStore builds the store. publicBaseURL defaults to the bucket's
// storage.googleapis.com address.
func NewGCSStore(client *storage.Client, bucket, publicBaseURL string) *GCSStore {
	if publicBaseURL == "" {
		publicBaseURL = "https://storage.googleapis.com/" + bucket
	}
	return &GCSStore{
		client:  client,
		bucket:  bucket,
		baseURL: publicBaseURL,
		log:     logger.Get().WithField("module", "gcs_store"),
	}
}

func (s *GCSStore) Put(ctx context.Context, objectPath string, data []byte, contentType string) (string, error) {
	objectPath, err := cleanObjectPath(objectPath)
	if err != nil {
		return "", err
	}

	obj := s.client.Bucket(s.bucket).Object(objectPath).If(storage.Conditions{DoesNotExist: true})
	wc := obj.NewWriter(ctx)
	wc.ContentType = contentType
	wc.CacheControl = "public, max-age=31536000, immutable"
	wc.PredefinedACL = "publicRead"

	if _, err := wc.Write(data); err != nil {
		_ = wc.Close()
		return "", fmt.Errorf("gcs write %s: %w", objectPath, err)
	}
	if err := wc.Close(); err != nil {
		var gErr *googleapi.Error
		if errors.As(err, &gErr) && gErr.Code == http.StatusPreconditionFailed {
			return "", fmt.Errorf("%w: %s", ErrArtifactExists, objectPath)
		}
		return "", fmt.Errorf("gcs close %s: %w", objectPath, err)
	}

	s.log.WithFields(logrus.Fields{"bucket": s.bucket, "path": objectPath, "size": len(data)}).Info("artifact stored")
	return s.PublicURL(objectPath), nil
}

func (s *GCSStore) PublicURL(objectPath string) string {
	return joinURL(s.baseURL, objectPath)
}
