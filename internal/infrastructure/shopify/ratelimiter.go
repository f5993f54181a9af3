package shopify

import (
	"context"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
)

// RateLimiter paces calls against the Shopify REST budget (2 requests per
// second with a small burst allowance on standard plans).
type RateLimiter struct {
	limiter *rate.Limiter
	logger  zerolog.Logger
}

// NewRateLimiter creates a limiter tuned to the standard REST budget.
func NewRateLimiter(logger zerolog.Logger) *RateLimiter {
	return &RateLimiter{
		limiter: rate.NewLimiter(rate.Limit(2), 4),
		logger:  logger,
	}
}

// Wait blocks until a request slot is available or ctx is done. A nil
// limiter never blocks.
func (r *RateLimiter) Wait(ctx context.Context) error {
	if r == nil {
		return nil
	}
	if err := r.limiter.Wait(ctx); err != nil {
		r.logger.Warn().Err(err).Msg("Rate limiter wait aborted")
		return err
	}
	return nil
}
