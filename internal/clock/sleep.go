// Package clock abstracts waiting so polling loops can be driven by a fake
// clock in tests.
package clock

import (
	"context"
	"time"
)

// SleepWithContext blocks for d or until the context is canceled, whichever
// comes first.
func SleepWithContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
