// Package maintenance runs the background cleanup the persistence layer is
// relied on for: expired reset tokens are purged independent of request logic.
package maintenance

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/lynquer/lynquer-api/internal/metrics"
	"github.com/lynquer/lynquer-api/internal/repository"
	"github.com/robfig/cron/v3"
)

type TokenPurger struct {
	tokens   repository.ResetTokenRepository
	schedule cron.Schedule
	logger   *slog.Logger
}

// NewTokenPurger parses the standard cron expression and returns a purger
// that fires on that schedule.
func NewTokenPurger(tokens repository.ResetTokenRepository, cronExpr string, logger *slog.Logger) (*TokenPurger, error) {
	schedule, err := cron.ParseStandard(cronExpr)
	if err != nil {
		return nil, fmt.Errorf("parse purge schedule %q: %w", cronExpr, err)
	}
	return &TokenPurger{
		tokens:   tokens,
		schedule: schedule,
		logger:   logger.With("component", "token_purger"),
	}, nil
}

func (p *TokenPurger) Start(ctx context.Context) {
	p.logger.Info("token purger started")

	for {
		next := p.schedule.Next(time.Now())
		timer := time.NewTimer(time.Until(next))

		select {
		case <-ctx.Done():
			timer.Stop()
			p.logger.Info("token purger shut down")
			return
		case <-timer.C:
			p.purge(ctx)
		}
	}
}

func (p *TokenPurger) purge(ctx context.Context) {
	start := time.Now()

	purged, err := p.tokens.DeleteExpired(ctx)
	if err != nil {
		p.logger.Error("purge expired tokens", "error", err)
		return
	}

	metrics.TokensPurgedTotal.Add(float64(purged))
	metrics.PurgeCycleDuration.Observe(time.Since(start).Seconds())

	if purged > 0 {
		p.logger.Info("purged expired reset tokens", "count", purged)
	}
}
