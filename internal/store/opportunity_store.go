package store

import (
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/cypherlabdev/parlay-intel-service/internal/models"
)

// OpportunityStore is the in-process pool of currently bettable opportunities,
// keyed by fingerprint. Readers always receive copies.
type OpportunityStore struct {
	mu     sync.RWMutex
	byFP   map[string]*models.Opportunity
	order  []string
	logger zerolog.Logger
}

// NewOpportunityStore creates an empty pool
func NewOpportunityStore(logger zerolog.Logger) *OpportunityStore {
	return &OpportunityStore{
		byFP:   make(map[string]*models.Opportunity),
		logger: logger.With().Str("component", "opportunity_store").Logger(),
	}
}

// Insert adds an opportunity. It returns false when the fingerprint is
// already pooled.
func (s *OpportunityStore) Insert(opp *models.Opportunity) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.byFP[opp.Fingerprint]; exists {
		return false
	}
	s.byFP[opp.Fingerprint] = clone(opp)
	s.order = append(s.order, opp.Fingerprint)
	return true
}

// Get returns the pooled opportunity with the given fingerprint
func (s *OpportunityStore) Get(fingerprint string) (*models.Opportunity, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	opp, ok := s.byFP[fingerprint]
	if !ok {
		return nil, false
	}
	return clone(opp), true
}

// GetByKind returns pooled opportunities of any of the given kinds
func (s *OpportunityStore) GetByKind(kinds ...models.OpportunityKind) []*models.Opportunity {
	want := make(map[models.OpportunityKind]struct{}, len(kinds))
	for _, k := range kinds {
		want[k] = struct{}{}
	}
	return s.filter(func(o *models.Opportunity) bool {
		_, ok := want[o.Kind]
		return ok
	})
}

// GetBySport returns pooled opportunities for any of the given sports or leagues
func (s *OpportunityStore) GetBySport(sports ...string) []*models.Opportunity {
	return s.filter(func(o *models.Opportunity) bool {
		for _, sp := range sports {
			if strings.EqualFold(o.Sport, sp) || strings.EqualFold(o.League, sp) {
				return true
			}
		}
		return false
	})
}

// Snapshot returns a frozen copy of the whole pool in insertion order
func (s *OpportunityStore) Snapshot() []*models.Opportunity {
	return s.filter(func(*models.Opportunity) bool { return true })
}

// Len returns the pool size
func (s *OpportunityStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.byFP)
}

// PruneExpired removes every opportunity whose match has started and returns
// them marked expired.
func (s *OpportunityStore) PruneExpired(now time.Time) []*models.Opportunity {
	s.mu.Lock()
	defer s.mu.Unlock()

	var pruned []*models.Opportunity
	kept := s.order[:0]
	for _, fp := range s.order {
		opp := s.byFP[fp]
		if opp.IsExpired(now) {
			opp.Expired = true
			pruned = append(pruned, opp)
			delete(s.byFP, fp)
			continue
		}
		kept = append(kept, fp)
	}
	s.order = kept

	if len(pruned) > 0 {
		s.logger.Debug().
			Int("pruned", len(pruned)).
			Int("remaining", len(s.byFP)).
			Msg("pruned expired opportunities")
	}
	return pruned
}

func (s *OpportunityStore) filter(keep func(*models.Opportunity) bool) []*models.Opportunity {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*models.Opportunity, 0, len(s.order))
	for _, fp := range s.order {
		if opp := s.byFP[fp]; keep(opp) {
			out = append(out, clone(opp))
		}
	}
	return out
}

func clone(opp *models.Opportunity) *models.Opportunity {
	c := *opp
	c.Legs = make([]models.Leg, len(opp.Legs))
	copy(c.Legs, opp.Legs)
	return &c
}
