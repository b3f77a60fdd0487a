// Package fixes exposes the classical metadata operations a host invokes:
// combining discs, the per-record classical fixes, sequential renumbering
// and the three "add to lookup" actions.
package fixes

import (
	"time"

	"github.com/dpetit12345/classical-fixes/internal/albumartist"
	"github.com/dpetit12345/classical-fixes/internal/lookup"
	"github.com/dpetit12345/classical-fixes/internal/names"
	"github.com/dpetit12345/classical-fixes/internal/roles"
	"github.com/dpetit12345/classical-fixes/internal/titles"
)

// DefaultGenre replaces missing genres and known sub-genres.
const DefaultGenre = "Classical"

// StampLayout is the format of the change stamp written to FixedAt.
const StampLayout = "2006-01-02 15:04:05"

// Service runs the operations against one lookup store. Operations take
// records by value and return updated copies; writing them back is the
// caller's concern (see Runner).
type Service struct {
	store   *lookup.Store
	matcher *names.Matcher
	titles  *titles.Normalizer
	roles   *roles.Inferencer
	credits *albumartist.Composer

	genre            string
	stamp            bool
	stripDiscMarkers bool
	threshold        float64
	orchestraTokens  []string
	now              func() time.Time
}

// Option configures a Service.
type Option func(*Service)

// WithNormalizer replaces the default title normalizer.
func WithNormalizer(n *titles.Normalizer) Option {
	return func(s *Service) {
		if n != nil {
			s.titles = n
		}
	}
}

// WithOrchestraTokens sets the words that mark a credit as an ensemble.
func WithOrchestraTokens(tokens []string) Option {
	return func(s *Service) { s.orchestraTokens = tokens }
}

// WithGenre sets the genre written for missing genres and sub-genres.
// An empty genre disables the genre fix.
func WithGenre(genre string) Option {
	return func(s *Service) { s.genre = genre }
}

// WithStamp enables or disables the change stamp.
func WithStamp(enabled bool) Option {
	return func(s *Service) { s.stamp = enabled }
}

// WithDiscMarkerStripping makes ClassicalFixes remove disc markers from
// album titles too.
func WithDiscMarkerStripping(enabled bool) Option {
	return func(s *Service) { s.stripDiscMarkers = enabled }
}

// WithSimilarityThreshold sets the threshold used when comparing credits.
func WithSimilarityThreshold(threshold float64) Option {
	return func(s *Service) {
		if threshold > 0 && threshold <= 1 {
			s.threshold = threshold
		}
	}
}

// WithClock sets the clock used for change stamps.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// New returns a Service backed by store.
func New(store *lookup.Store, opts ...Option) *Service {
	s := &Service{
		store:     store,
		titles:    titles.Default(),
		genre:     DefaultGenre,
		stamp:     true,
		threshold: names.DefaultSimilarityThreshold,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.matcher = names.NewMatcher(store, s.orchestraTokens)
	s.roles = roles.New(store, s.matcher)
	s.credits = albumartist.New(s.threshold)
	return s
}

// Store returns the lookup store the service reads and updates.
func (s *Service) Store() *lookup.Store {
	return s.store
}
