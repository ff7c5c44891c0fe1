package utils

import (
	"context"
	"time"
)

var sleep = time.Sleep

func WaitFor(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		sleep(d)
	}()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-done:
		return nil
	}
}

// Poll runs fn right away and then once per interval until ctx is cancelled.
// A non-positive interval runs fn exactly once.
func Poll(ctx context.Context, interval time.Duration, fn func(ctx context.Context)) error {
	for {
		fn(ctx)

		if interval <= 0 {
			return nil
		}

		if err := WaitFor(ctx, interval); err != nil {
			return err
		}
	}
}
