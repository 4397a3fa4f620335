package service

import (
	"context"
	"time"

	"contactapp/internal/mailer"
)

// Cache is the key-value cache surface the services consume. Satisfied by
// *cache.Client; kept as an interface so tests can observe cache traffic.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// Mailer accepts messages for asynchronous, best-effort delivery. Satisfied
// by *mailer.Queue.
type Mailer interface {
	Enqueue(msg mailer.Message)
}
