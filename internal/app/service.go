// Package app provides the core business service behind the HTTP API: the
// run ledger, the signal fire exchange, and the tide ledger, all working
// against one persistent store.
package app

import (
	"time"

	"github.com/bootyhunt/server/internal/adapters/repository"
	"github.com/bootyhunt/server/pkg/logger"
)

// Defaults for leaderboard sizing and code allocation.
const (
	defaultLeaderboardLimit = 20
	defaultMaxLimit         = 100
	defaultRegattaTopN      = 10
	defaultCodeAttempts     = 5
)

// Service implements the API dependencies for the rotation core. All
// operations are synchronous request-response; state lives in the store
// only.
type Service struct {
	store repository.Store
	log   logger.Logger
	now   func() time.Time

	defaultLimit int
	maxLimit     int
	regattaTopN  int
	codeAttempts int
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(log logger.Logger) Option {
	return func(s *Service) {
		if log != nil {
			s.log = log
		}
	}
}

// WithClock overrides the wall clock. Used by tests to pin the week.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// WithDefaultLeaderboardLimit sets the limit applied when a query omits one.
func WithDefaultLeaderboardLimit(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.defaultLimit = n
		}
	}
}

// WithMaxLeaderboardLimit caps leaderboard query limits.
func WithMaxLeaderboardLimit(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.maxLimit = n
		}
	}
}

// WithRegattaTopN sets how many runs the regatta view returns.
func WithRegattaTopN(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.regattaTopN = n
		}
	}
}

// WithCodeAttempts bounds retries on signal fire code collisions.
func WithCodeAttempts(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.codeAttempts = n
		}
	}
}

// New creates the service on top of a store.
func New(store repository.Store, opts ...Option) *Service {
	s := &Service{
		store:        store,
		now:          time.Now,
		defaultLimit: defaultLeaderboardLimit,
		maxLimit:     defaultMaxLimit,
		regattaTopN:  defaultRegattaTopN,
		codeAttempts: defaultCodeAttempts,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.log == nil {
		s.log = logger.Get().Named("app")
	}
	return s
}
