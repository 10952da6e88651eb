// AngelaMos | 2026
// service.go

package ledger

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Service is the single authority for capability admission and the single
// writer of usage events.
type Service struct {
	repo   Repository
	policy *Policy
	locks  sync.Map // "userID:capability" -> *sync.Mutex
}

func NewService(repo Repository, policy *Policy) *Service {
	return &Service{
		repo:   repo,
		policy: policy,
	}
}

// AdmitAndRecord decides whether the subject may invoke the capability at
// `now` and, when admitted, appends the usage event before returning.
//
// Unlimited plans are always admitted and still recorded. For metered
// plans, a zero ceiling denies with ReasonNotEntitled and writes nothing:
// from the ledger's point of view the call never happened, which keeps
// "not entitled" distinguishable from "entitled but exhausted". Otherwise
// events since the UTC day start are counted and the event is appended
// only while the count is under the ceiling.
//
// The count-then-append for a given (user, capability) is serialized by a
// per-pair mutex here, and the repository additionally runs it inside a
// row-locking transaction. A denial is a normal outcome, not an error.
func (s *Service) AdmitAndRecord(
	ctx context.Context,
	subject Subject,
	capability Capability,
	now time.Time,
) (Decision, error) {
	if !capability.Valid() {
		return Decision{}, fmt.Errorf(
			"admit: unknown capability %q",
			capability,
		)
	}

	event := &UsageEvent{
		ID:         uuid.New().String(),
		UserID:     subject.ID,
		Capability: capability,
		CreatedAt:  now.UTC(),
	}

	if s.policy.Unlimited(subject.Plan) {
		if err := s.repo.Record(ctx, event); err != nil {
			return Decision{}, err
		}
		return Decision{Admitted: true, Unlimited: true}, nil
	}

	ceiling := s.policy.Ceiling(subject.Plan, capability)
	if ceiling <= 0 {
		return Decision{Reason: ReasonNotEntitled}, nil
	}

	unlock := s.lock(subject.ID, capability)
	defer unlock()

	since := DayStartUTC(now)

	used, admitted, err := s.repo.RecordIfUnder(ctx, event, since, ceiling)
	if err != nil {
		return Decision{}, err
	}

	if !admitted {
		return Decision{
			Reason:  ReasonQuotaExceeded,
			Used:    used,
			Ceiling: ceiling,
		}, nil
	}

	return Decision{
		Admitted: true,
		Used:     used + 1,
		Ceiling:  ceiling,
	}, nil
}

// Summary reports the subject's standing for every capability within the
// current UTC day window.
func (s *Service) Summary(
	ctx context.Context,
	subject Subject,
	now time.Time,
) ([]CapabilityUsage, error) {
	since := DayStartUTC(now)
	unlimited := s.policy.Unlimited(subject.Plan)

	usages := make([]CapabilityUsage, 0, len(Capabilities()))
	for _, capability := range Capabilities() {
		used, err := s.repo.CountSince(ctx, subject.ID, capability, since)
		if err != nil {
			return nil, err
		}

		ceiling := s.policy.Ceiling(subject.Plan, capability)

		usages = append(usages, CapabilityUsage{
			Capability: capability,
			Used:       used,
			Ceiling:    ceiling,
			Unlimited:  unlimited,
			Entitled:   unlimited || ceiling > 0,
		})
	}

	return usages, nil
}

// lock serializes count-then-append per (user, capability). Entries are
// never evicted; the map holds at most one mutex per metered pair the
// process has seen, a few dozen bytes per active user per day.
func (s *Service) lock(userID string, capability Capability) func() {
	key := userID + ":" + string(capability)

	muI, _ := s.locks.LoadOrStore(key, &sync.Mutex{})
	mu := muI.(*sync.Mutex)
	mu.Lock()

	return mu.Unlock
}
