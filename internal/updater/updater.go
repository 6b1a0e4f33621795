package updater

import (
	"sort"
	"time"

	"github.com/rs/zerolog"

	"github.com/cypherlabdev/parlay-intel-service/internal/models"
	"github.com/cypherlabdev/parlay-intel-service/pkg/oddsmath"
	"github.com/cypherlabdev/parlay-intel-service/pkg/parlay"
)

// Decision reasons
const (
	ReasonUnverified     = "unverified"
	ReasonPricesHeld     = "all legs verified or better"
	ReasonNetBetter      = "combined odds held despite worse legs"
	ReasonRepriced       = "odds moved, edge still positive"
	ReasonEdgeGone       = "edge no longer positive"
	ReasonOutOfBounds    = "repriced parlay violates strategy bounds"
	ReasonAllLost        = "all legs unavailable or worse"
	ReasonReplaced       = "unavailable legs replaced from pool"
	ReasonNoReplacements = "no valid replacement legs"
)

// maxReplacementTries bounds the search over replacement leg combinations
const maxReplacementTries = 500

// Updater turns a verification report into a keep / update / replace /
// expire decision. It never mutates the parlay it is given.
type Updater struct {
	engine *parlay.Engine
	logger zerolog.Logger
	now    func() time.Time
}

// New creates a new parlay updater
func New(engine *parlay.Engine, logger zerolog.Logger) *Updater {
	return &Updater{
		engine: engine,
		logger: logger.With().Str("component", "parlay_updater").Logger(),
		now:    time.Now,
	}
}

// Decide applies the decision table to a report. pool holds the current
// candidate legs replacements are drawn from.
func (u *Updater) Decide(p *models.Parlay, report *models.VerificationReport, pool []models.Leg) *models.UpdateDecision {
	d := u.decide(p, report, pool)

	event := u.logger.Info()
	if d.Action == models.ActionKeep {
		event = u.logger.Debug()
	}
	event.
		Str("parlay_id", p.ID).
		Str("action", string(d.Action)).
		Str("reason", d.Reason).
		Float64("edge", d.Parlay.Edge).
		Msg("parlay decision")

	return d
}

func (u *Updater) decide(p *models.Parlay, report *models.VerificationReport, pool []models.Leg) *models.UpdateDecision {
	n := len(p.Legs)
	unavailable := report.Count(models.LegUnavailable)
	worse := report.Count(models.LegWorse)

	switch {
	case report.Count(models.LegError) > 0:
		return &models.UpdateDecision{Action: models.ActionKeep, Reason: ReasonUnverified, Parlay: p}
	case unavailable == 0 && worse == 0:
		return &models.UpdateDecision{Action: models.ActionKeep, Reason: ReasonPricesHeld, Parlay: p}
	case unavailable+worse == n:
		return u.expire(p, ReasonAllLost)
	case unavailable == 0:
		return u.reprice(p, report)
	default:
		return u.replace(p, report, pool)
	}
}

// reprice applies current odds to every leg and requires a positive edge
// inside the strategy bounds. A parlay whose combined odds did not drop is
// then kept as stored.
func (u *Updater) reprice(p *models.Parlay, report *models.VerificationReport) *models.UpdateDecision {
	updated := clone(p)
	applyQuotes(updated.Legs, report)

	ev := u.engine.Price(updated.Legs, p.CorrelationStrength)
	updated.CombinedOdds = ev.CombinedOdds
	updated.Edge = ev.Edge
	updated.UpdatedAt = u.now().UTC()

	if ev.Edge <= 0 {
		return u.expire(p, ReasonEdgeGone)
	}
	if err := parlay.CheckInvariants(updated); err != nil {
		u.logger.Debug().Err(err).Str("parlay_id", p.ID).Msg("repriced parlay rejected")
		return u.expire(p, ReasonOutOfBounds)
	}
	if ev.CombinedOdds >= p.CombinedOdds {
		return &models.UpdateDecision{Action: models.ActionKeep, Reason: ReasonNetBetter, Parlay: p}
	}
	return &models.UpdateDecision{Action: models.ActionUpdate, Reason: ReasonRepriced, Parlay: updated}
}

// replace swaps unavailable legs for the highest-edge pool legs that keep
// every generation gate satisfied, or expires the parlay when none do.
func (u *Updater) replace(p *models.Parlay, report *models.VerificationReport, pool []models.Leg) *models.UpdateDecision {
	spec, ok := parlay.Lookup(p.Strategy)
	if !ok {
		return u.expire(p, ReasonNoReplacements)
	}

	kept := make([]models.Leg, 0, len(p.Legs))
	slots := 0
	for i := range p.Legs {
		if report.Legs[i].Status == models.LegUnavailable {
			slots++
			continue
		}
		kept = append(kept, p.Legs[i])
	}
	keptReport := make([]models.LegCheck, 0, len(kept))
	for _, c := range report.Legs {
		if c.Status != models.LegUnavailable {
			keptReport = append(keptReport, c)
		}
	}
	applyQuotes(kept, &models.VerificationReport{Legs: keptReport})

	candidates := u.candidates(p, kept, pool)
	if len(candidates) < slots {
		return u.expire(p, ReasonNoReplacements)
	}

	legs, ev, found := u.search(spec, kept, candidates, slots)
	if !found {
		return u.expire(p, ReasonNoReplacements)
	}

	replacement := u.engine.Assemble(spec, legs, ev)

	old := clone(p)
	old.Status = models.ParlayReplaced
	old.ReplacedBy = replacement.ID
	old.UpdatedAt = replacement.CreatedAt

	return &models.UpdateDecision{
		Action:      models.ActionReplace,
		Reason:      ReasonReplaced,
		Parlay:      old,
		Replacement: replacement,
	}
}

// candidates filters the pool to legs that could join the parlay: same
// book, not yet started, on a match the kept legs do not use.
func (u *Updater) candidates(p *models.Parlay, kept []models.Leg, pool []models.Leg) []models.Leg {
	now := u.now()
	used := make(map[string]struct{}, len(p.Legs))
	matches := make(map[string]struct{}, len(kept))
	for i := range p.Legs {
		used[p.Legs[i].Fingerprint] = struct{}{}
	}
	for i := range kept {
		matches[kept[i].Match.ID] = struct{}{}
	}

	var out []models.Leg
	for _, leg := range pool {
		if leg.Sportsbook != p.Sportsbook {
			continue
		}
		if _, dup := used[leg.Fingerprint]; dup {
			continue
		}
		if _, dup := matches[leg.Match.ID]; dup {
			continue
		}
		if !leg.Match.CommenceTime.After(now) {
			continue
		}
		out = append(out, leg)
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Edge != out[j].Edge {
			return out[i].Edge > out[j].Edge
		}
		return out[i].Fingerprint < out[j].Fingerprint
	})
	return out
}

// search fills the open slots depth first in edge order and returns the
// first combination that qualifies under the strategy.
func (u *Updater) search(spec parlay.StrategySpec, kept, candidates []models.Leg, slots int) ([]models.Leg, parlay.Evaluation, bool) {
	var (
		result []models.Leg
		eval   parlay.Evaluation
		tries  int
	)
	legs := append(make([]models.Leg, 0, len(kept)+slots), kept...)

	var fill func(start, remaining int) bool
	fill = func(start, remaining int) bool {
		if remaining == 0 {
			tries++
			ev, err := u.engine.Qualify(spec, legs)
			if err != nil {
				return false
			}
			result = append([]models.Leg(nil), legs...)
			eval = ev
			return true
		}
		for i := start; i < len(candidates) && tries < maxReplacementTries; i++ {
			if hasMatch(legs, candidates[i].Match.ID) {
				continue
			}
			legs = append(legs, candidates[i])
			if fill(i+1, remaining-1) {
				return true
			}
			legs = legs[:len(legs)-1]
		}
		return false
	}

	if !fill(0, slots) {
		return nil, parlay.Evaluation{}, false
	}
	return result, eval, true
}

func (u *Updater) expire(p *models.Parlay, reason string) *models.UpdateDecision {
	expired := clone(p)
	expired.Status = models.ParlayExpired
	expired.UpdatedAt = u.now().UTC()
	return &models.UpdateDecision{Action: models.ActionExpire, Reason: reason, Parlay: expired}
}

// applyQuotes moves re-quoted prices onto the legs. Leg fingerprints stay
// stable so the parlay keeps its identity.
func applyQuotes(legs []models.Leg, report *models.VerificationReport) {
	for i := range legs {
		if i >= len(report.Legs) || report.Legs[i].CurrentOdds == nil {
			continue
		}
		current := *report.Legs[i].CurrentOdds
		legs[i].DecimalOdds = current
		if american, err := oddsmath.DecimalToAmerican(current); err == nil {
			legs[i].AmericanOdds = american
		}
	}
}

func hasMatch(legs []models.Leg, matchID string) bool {
	for i := range legs {
		if legs[i].Match.ID == matchID {
			return true
		}
	}
	return false
}

func clone(p *models.Parlay) *models.Parlay {
	cp := *p
	cp.Legs = make([]models.Leg, len(p.Legs))
	copy(cp.Legs, p.Legs)
	return &cp
}
