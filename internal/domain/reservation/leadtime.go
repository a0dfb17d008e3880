package reservation

import (
	"errors"
	"time"
)

var (
	ErrPastDate       = errors.New("reservation date is in the past")
	ErrPastTime       = errors.New("reservation start time has already passed")
	ErrLeadTimeNotMet = errors.New("reservation does not meet the minimum lead time")
)

const DefaultMinLead = 30 * time.Minute

// LeadTimePolicy gates staging before the conflict check runs.
type LeadTimePolicy struct {
	MinLead  time.Duration
	Location *time.Location
}

func NewLeadTimePolicy(minLead time.Duration, loc *time.Location) LeadTimePolicy {
	if minLead <= 0 {
		minLead = DefaultMinLead
	}
	if loc == nil {
		loc = time.UTC
	}
	return LeadTimePolicy{MinLead: minLead, Location: loc}
}

// Validate applies the minimum lead only to reservations on today's date; later
// dates are accepted whatever the clock says.
func (p LeadTimePolicy) Validate(interval TimeInterval, now time.Time) error {
	loc := p.Location
	if loc == nil {
		loc = time.UTC
	}
	now = now.In(loc)

	today := DateOf(now)
	if interval.Date.Before(today) {
		return ErrPastDate
	}

	start := interval.StartAt(loc)
	if !start.After(now) {
		return ErrPastTime
	}
	if interval.Date == today && start.Before(now.Add(p.MinLead)) {
		return ErrLeadTimeNotMet
	}
	return nil
}
