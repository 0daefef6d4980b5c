package retry

import (
	"context"
	"log"
	"time"
)

const (
	// DefaultMaxRetries is the number of retry attempts after the first failure.
	DefaultMaxRetries = 3
	// DefaultBaseDelay is the backoff base; retry n sleeps base * 2^(n-1).
	DefaultBaseDelay = 500 * time.Millisecond
)

// Options configures Do and Fetch. The zero value means defaults.
type Options struct {
	MaxRetries int
	BaseDelay  time.Duration

	// OnRetry is called before each retry with the attempt number (1-based)
	// and the error that triggered it. Keep it cheap; it runs inline.
	OnRetry func(attempt int, err error)

	// Logger receives the exhaustion line from Fetch. Nil means log.Default.
	Logger *log.Logger

	// Sleep replaces the backoff sleep. Tests inject a recorder here.
	Sleep func(ctx context.Context, d time.Duration) error
}

func (o Options) withDefaults() Options {
	if o.MaxRetries == 0 {
		o.MaxRetries = DefaultMaxRetries
	}
	if o.BaseDelay == 0 {
		o.BaseDelay = DefaultBaseDelay
	}
	if o.Sleep == nil {
		o.Sleep = sleep
	}
	if o.Logger == nil {
		o.Logger = log.Default()
	}
	return o
}

func sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// Do runs op, retrying on error with exponential backoff. The first attempt
// happens immediately; retry n waits BaseDelay * 2^(n-1) first. A total of
// MaxRetries+1 attempts are made before the last error is returned. Success
// returns immediately with no further attempts.
func Do[T any](ctx context.Context, op func(context.Context) (T, error), opts Options) (T, error) {
	opts = opts.withDefaults()

	var lastErr error
	for attempt := 0; attempt <= opts.MaxRetries; attempt++ {
		if attempt > 0 {
			delay := opts.BaseDelay * time.Duration(1<<uint(attempt-1))
			if opts.OnRetry != nil {
				opts.OnRetry(attempt, lastErr)
			}
			if err := opts.Sleep(ctx, delay); err != nil {
				var zero T
				return zero, err
			}
		}

		v, err := op(ctx)
		if err == nil {
			return v, nil
		}
		lastErr = err
	}

	var zero T
	return zero, lastErr
}

// Fetch wraps Do and converts total exhaustion into fallback instead of an
// error. This is the only place a persistence failure becomes a non-error
// value, so the fallback must match the shape callers expect on success:
// empty slice, zero count, or nil pointer, never an untyped nil.
func Fetch[T any](ctx context.Context, name string, op func(context.Context) (T, error), fallback T, opts Options) T {
	opts = opts.withDefaults()

	v, err := Do(ctx, op, opts)
	if err != nil {
		opts.Logger.Printf("%s: falling back after %d attempts: %v", name, opts.MaxRetries+1, err)
		return fallback
	}
	return v
}
