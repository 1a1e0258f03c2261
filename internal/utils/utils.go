package utils

import (
	"context"
	"errors"
	"time"
)

// WaitFor blocks for d or until ctx is done, whichever comes first.
func WaitFor(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// ErrPermanent marks errors Retry must not retry.
var ErrPermanent = errors.New("permanent failure")

// Retry calls fn up to retries+1 times, waiting base×attempt between attempts.
// It stops early on success, on a cancelled ctx, or when fn returns an error wrapping
// ErrPermanent. The last error is returned.
func Retry(ctx context.Context, retries int, base time.Duration, fn func(ctx context.Context) error) error {
	var err error
	for attempt := 0; attempt <= retries; attempt++ {
		if attempt > 0 {
			if werr := WaitFor(ctx, base*time.Duration(attempt)); werr != nil {
				return errors.Join(err, werr)
			}
		}

		if err = fn(ctx); err == nil {
			return nil
		}
		if errors.Is(err, ErrPermanent) || ctx.Err() != nil {
			return err
		}
	}
	return err
}
