package storage

import "context"

// Store is the persistent key-value port the session and chat layers depend
// on. Values are JSON; Get reports absence through its bool so a missing key
// is never an error. Writes are last-writer-wins — there is no cross-process
// locking on a key.
type Store interface {
	// Get decodes the value at key into dest and reports whether it existed.
	Get(ctx context.Context, key string, dest any) (bool, error)
	Set(ctx context.Context, key string, value any) error
	Delete(ctx context.Context, key string) error
	Ping(ctx context.Context) error
	Close() error
}
