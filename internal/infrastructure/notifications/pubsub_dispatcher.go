package notifications

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"agency_quotes/internal/infrastructure/logger"
	"agency_quotes/internal/usecase/interfaces"

	"cloud.google.com/go/pubsub"
	"github.com/sirupsen/logrus"
	"google.golang.org/api/option"
)

const publishTimeout = 30 * time.Second

// PubSubDispatcher publishes quote events to a topic read by the mailer.
type PubSubDispatcher struct {
	topic *pubsub.Topic
	log   logrus.FieldLogger
}

var _ interfaces.INotificationDispatcher = (*PubSubDispatcher)(nil)

func NewPubSubDispatcher(topic *pubsub.Topic) *PubSubDispatcher {
	return &PubSubDispatcher{topic: topic, log: logger.Get().WithField("module", "notifications")}
}

// NewPubSubClient prefers ADC; explicit credentials JSON is used when given.
func NewPubSubClient(ctx context.Context, projectID, credentialsJSON string, opts ...option.ClientOption) (*pubsub.Client, error) {
	if strings.TrimSpace(credentialsJSON) != "" {
		opts = append(opts, option.WithCredentialsJSON([]byte(credentialsJSON)))
	}
	return pubsub.NewClient(ctx, projectID, opts...)
}

// EnsureTopic returns the topic, creating it when missing.
func EnsureTopic(ctx context.Context, c *pubsub.Client, name string) (*pubsub.Topic, error) {
	t := c.Topic(name)
	ok, err := t.Exists(ctx)
	if err != nil {
		return nil, fmt.Errorf("check topic %q: %w", name, err)
	}
	if ok {
		return t, nil
	}
	t, err = c.CreateTopic(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("create topic %q: %w", name, err)
	}
	return t, nil
}

func (d *PubSubDispatcher) QuoteCreated(ctx context.Context, n interfaces.QuoteNotification) error {
	return d.publish(ctx, newEvent(EventQuoteCreated, n))
}

func (d *PubSubDispatcher) QuoteSigned(ctx context.Context, n interfaces.QuoteNotification) error {
	return d.publish(ctx, newEvent(EventQuoteSigned, n))
}

func (d *PubSubDispatcher) publish(ctx context.Context, e Event) error {
	data, err := json.Marshal(e)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	result := d.topic.Publish(ctx, &pubsub.Message{
		Data:       data,
		Attributes: map[string]string{"event": e.Event, "quote_id": e.QuoteID},
	})
	id, err := result.Get(ctx)
	if err != nil {
		return fmt.Errorf("publish %s: %w", e.Event, err)
	}
	d.log.WithFields(logrus.Fields{"event": e.Event, "quote_id": e.QuoteID, "message_id": id}).Info("notification published")
	return nil
}
