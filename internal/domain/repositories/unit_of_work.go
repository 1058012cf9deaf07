package repositories

import "context"

// UnitOfWork executes repository calls as one atomic unit
type UnitOfWork interface {
	// Do runs fn inside a transaction; the transaction is injected into the
	// context passed to fn and picked up by every repository call made with
	// it.
	Do(ctx context.Context, fn func(ctx context.Context) error) error
	// WithLock marks the context so reads inside the transaction take
	// row-level locks (SELECT ... FOR UPDATE).
	WithLock(ctx context.Context) context.Context
}
