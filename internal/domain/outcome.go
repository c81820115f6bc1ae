package domain

import "time"

type CheckinStatus string

const (
	CheckinSuccess CheckinStatus = "success"
	CheckinFailed  CheckinStatus = "failed"
)

// CheckinOutcome records the result of one check-in attempt.
type CheckinOutcome struct {
	Topic       string
	ContainerID string
	Status      CheckinStatus
	Message     string
	Timestamp   time.Time
	Elapsed     time.Duration
}

// RunReport is the durable per-account record of one run. It is only
// produced when at least one outcome exists.
type RunReport struct {
	Account   string
	RunID     string
	Timestamp time.Time
	Outcomes  []CheckinOutcome
}

// SuccessCount tallies outcomes with success status.
func (r RunReport) SuccessCount() int {
	count := 0
	for _, outcome := range r.Outcomes {
		if outcome.Status == CheckinSuccess {
			count++
		}
	}
	return count
}
