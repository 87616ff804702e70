package interfaces

import (
	"context"
	"time"
)

// ILocker serializes lifecycle operations on the same key across instances.
//
//go:generate mockgen -source=locker_interface.go -destination=mocks/locker_mock.go -package=mock_interfaces
type ILocker interface {
	Lock(ctx context.Context, key string, ttl time.Duration) (unlock func(context.Context) error, err error)
}
