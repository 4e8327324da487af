package retry

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// Policy controls exponential backoff between attempts.
type Policy struct {
	Attempts int
	Initial  time.Duration
	Max      time.Duration
}

func Default() Policy {
	return Policy{
		Attempts: 5,
		Initial:  500 * time.Millisecond,
		Max:      8 * time.Second,
	}
}

// Do calls fn until it succeeds, the attempts run out, or ctx is done.
// It returns nil on success, ctx.Err() on cancellation, or the last error.
func Do(ctx context.Context, p Policy, logger *zap.Logger, fn func() error) error {
	if logger == nil {
		logger = zap.NewNop()
	}
	if p.Attempts < 1 {
		p.Attempts = 1
	}

	var err error
	backoff := p.Initial

	for attempt := 1; attempt <= p.Attempts; attempt++ {
		if err = fn(); err == nil {
			return nil
		}
		if attempt == p.Attempts {
			break
		}

		logger.Debug("attempt failed, retrying",
			zap.Int("attempt", attempt),
			zap.Duration("backoff", backoff),
			zap.Error(err),
		)

		timer := time.NewTimer(backoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}

		backoff *= 2
		if p.Max > 0 && backoff > p.Max {
			backoff = p.Max
		}
	}

	return err
}
