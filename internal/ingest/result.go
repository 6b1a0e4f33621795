package ingest

import (
	"fmt"

	"github.com/cypherlabdev/parlay-intel-service/internal/models"
)

// Status is the outcome of one ingest call
type Status string

const (
	StatusAccepted  Status = "accepted"
	StatusDuplicate Status = "duplicate"
	StatusRejected  Status = "rejected"
)

// Result is returned for every drop. Parsing problems are reported here,
// never as errors.
type Result struct {
	Status      Status              `json:"status"`
	Reason      string              `json:"reason,omitempty"`
	Opportunity *models.Opportunity `json:"opportunity,omitempty"`
	ExistingID  string              `json:"existing_id,omitempty"`
}

// Accepted wraps a freshly normalized opportunity
func Accepted(opp *models.Opportunity) Result {
	return Result{Status: StatusAccepted, Opportunity: opp}
}

// Duplicate reports a dedup hit on an opportunity ingested earlier
func Duplicate(existingID string) Result {
	return Result{Status: StatusDuplicate, ExistingID: existingID}
}

// Rejected reports why a drop could not become an opportunity
func Rejected(format string, args ...interface{}) Result {
	return Result{Status: StatusRejected, Reason: fmt.Sprintf(format, args...)}
}

// OK is true for accepted and duplicate results
func (r Result) OK() bool {
	return r.Status != StatusRejected
}
