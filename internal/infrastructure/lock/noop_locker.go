package lock

import (
	"context"
	"time"

	"agency_quotes/internal/usecase/interfaces"
)

// NoopLocker is used when Redis is not configured.
type NoopLocker struct{}

var _ interfaces.ILocker = NoopLocker{}

func (NoopLocker) Lock(context.Context, string, time.Duration) (func(context.Context) error, error) {
	return func(context.Context) error { return nil }, nil
}
