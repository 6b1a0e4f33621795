package models

import "time"

// LegStatus is the verifier verdict for one leg
type LegStatus string

const (
	LegVerified    LegStatus = "verified"
	LegBetter      LegStatus = "better"
	LegWorse       LegStatus = "worse"
	LegUnavailable LegStatus = "unavailable"
	LegError       LegStatus = "error"
)

// LegCheck is the verifier result for one parlay leg
type LegCheck struct {
	Index       int       `json:"index"`
	Fingerprint string    `json:"fingerprint"`
	Status      LegStatus `json:"status"`
	StoredOdds  float64   `json:"stored_odds"`
	CurrentOdds *float64  `json:"current_odds,omitempty"`
	Reason      string    `json:"reason,omitempty"`
}

// VerificationReport is the per-leg re-quote of a parlay
type VerificationReport struct {
	ParlayID  string     `json:"parlay_id"`
	Legs      []LegCheck `json:"legs"`
	CheckedAt time.Time  `json:"checked_at"`
}

// Count returns how many legs ended in the given status
func (r *VerificationReport) Count(status LegStatus) int {
	n := 0
	for _, l := range r.Legs {
		if l.Status == status {
			n++
		}
	}
	return n
}

// UpdateAction is the updater decision
type UpdateAction string

const (
	ActionKeep    UpdateAction = "keep"
	ActionUpdate  UpdateAction = "update"
	ActionReplace UpdateAction = "replace"
	ActionExpire  UpdateAction = "expire"
)

// UpdateDecision is what the updater decided and the parlays it produced
type UpdateDecision struct {
	Action UpdateAction `json:"action"`
	Reason string       `json:"reason"`
	// Parlay is the original parlay after the decision was applied
	Parlay *Parlay `json:"parlay"`
	// Replacement is the new active parlay when Action is replace
	Replacement *Parlay `json:"replacement,omitempty"`
}

// VerificationResult pairs a report with the decision taken on it
type VerificationResult struct {
	Report   *VerificationReport `json:"report"`
	Decision *UpdateDecision     `json:"decision"`
	Cached   bool                `json:"cached,omitempty"`
}
