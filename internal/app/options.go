package app

import (
	"time"

	"github.com/okian/scoreboard/internal/adapters/render"
	"github.com/okian/scoreboard/internal/adapters/repository"
	"github.com/okian/scoreboard/internal/domain/dedupe"
	"github.com/okian/scoreboard/internal/domain/scoring"
	"github.com/okian/scoreboard/pkg/logger"
)

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithRenderer sets where round and summary reports are published.
// Without one, Run only logs.
func WithRenderer(p Publisher) Option {
	return func(s *Service) {
		s.publisher = p
	}
}

// WithStore sets the snapshot store.
func WithStore(store repository.Store) Option {
	return func(s *Service) {
		if store != nil {
			s.store = store
		}
	}
}

// WithEngine sets the scoring engine.
func WithEngine(e *scoring.Engine) Option {
	return func(s *Service) {
		if e != nil {
			s.engine = e
		}
	}
}

// WithTopN sets how many leading entries are logged after each round.
func WithTopN(n int) Option {
	return func(s *Service) {
		if n >= 0 {
			s.topN = n
		}
	}
}

// WithDeduper sets the round guard.
func WithDeduper(d dedupe.Deduper) Option {
	return func(s *Service) {
		if d != nil {
			s.deduper = d
		}
	}
}

// WithTheme sets the colors passed to renderers.
func WithTheme(theme render.Theme) Option {
	return func(s *Service) {
		s.theme = theme
	}
}

// WithClock overrides the time source used to stamp reports.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}
