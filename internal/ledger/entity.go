// AngelaMos | 2026
// entity.go

package ledger

import (
	"time"
)

// UsageEvent is the immutable record of one admitted capability
// invocation. Rows are append-only: one is written if and only if the
// corresponding call was admitted.
type UsageEvent struct {
	ID         string     `db:"id"`
	UserID     string     `db:"user_id"`
	Capability Capability `db:"capability"`
	CreatedAt  time.Time  `db:"created_at"`
}

// Subject is the minimal view of a user the ledger needs to decide
// admission.
type Subject struct {
	ID   string
	Plan string
}

type DenialReason string

const (
	ReasonNotEntitled   DenialReason = "not_entitled"
	ReasonQuotaExceeded DenialReason = "quota_exceeded"
)

// Decision is the outcome of one admission check. A denial is a normal
// result, not an error.
type Decision struct {
	Admitted  bool
	Reason    DenialReason
	Used      int
	Ceiling   int
	Unlimited bool
}

// CapabilityUsage summarizes one capability's standing within the current
// UTC day window.
type CapabilityUsage struct {
	Capability Capability
	Used       int
	Ceiling    int
	Unlimited  bool
	Entitled   bool
}

// DayStartUTC truncates t to the start of its UTC calendar day. Quota
// windows reset at a fixed UTC midnight rather than rolling 24 hours: the
// limit is predictable and testable, at the cost of a double allowance
// straddling the boundary. That tradeoff is deliberate.
func DayStartUTC(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
