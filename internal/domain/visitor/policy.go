package visitor

// VisitPolicy holds the visit-quota thresholds. Counts passed to Evaluate are
// taken before the visit being decided is recorded.
type VisitPolicy struct {
	MaxDailyVisitsPerHost int
	MaxMonthlyVisits      int
	MaxYearlyVisits       int
}

// DefaultVisitPolicy returns the club's standing limits
func DefaultVisitPolicy() VisitPolicy {
	return VisitPolicy{
		MaxDailyVisitsPerHost: 4,
		MaxMonthlyVisits:      4,
		MaxYearlyVisits:       24,
	}
}

// VisitCounts are the prior-visit tallies a sign-in decision is based on
type VisitCounts struct {
	// HostDaily is the number of visits already hosted by the member on the
	// visit date, across all guests
	HostDaily int64
	// GuestMonthly is the guest's visits in the calendar month of the visit
	GuestMonthly int64
	// GuestYearly is the guest's visits in the calendar year of the visit
	GuestYearly int64
}

// Evaluate applies the quota rules and returns the status to stamp on the
// visit. The host's daily limit outranks the guest's own quotas.
func (p VisitPolicy) Evaluate(c VisitCounts) GuestStatus {
	if c.HostDaily >= int64(p.MaxDailyVisitsPerHost) {
		return GuestStatusUnapproved
	}
	if c.GuestMonthly >= int64(p.MaxMonthlyVisits) || c.GuestYearly >= int64(p.MaxYearlyVisits) {
		return GuestStatusSuspended
	}
	return GuestStatusApproved
}

// Reason describes why a status was assigned, for the guest record and logs
func (p VisitPolicy) Reason(c VisitCounts, status GuestStatus) string {
	switch status {
	case GuestStatusUnapproved:
		return "host daily visit limit reached"
	case GuestStatusSuspended:
		if c.GuestYearly >= int64(p.MaxYearlyVisits) {
			return "yearly visit limit reached"
		}
		return "monthly visit limit reached"
	default:
		return "within visit limits"
	}
}
