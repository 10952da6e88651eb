// AngelaMos | 2026
// service_test.go

package ledger

import (
	"context"
	"sync"
	"testing"
	"time"
)

// fakeRepository stores events in memory. Its count-then-append is
// deliberately not atomic: only the service's per-pair mutex keeps
// concurrent admissions correct, which is exactly what the concurrency
// test exercises.
type fakeRepository struct {
	mu     sync.Mutex
	events []UsageEvent
}

func (f *fakeRepository) Record(_ context.Context, event *UsageEvent) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.events = append(f.events, *event)
	return nil
}

func (f *fakeRepository) RecordIfUnder(
	ctx context.Context,
	event *UsageEvent,
	since time.Time,
	ceiling int,
) (int, bool, error) {
	used, err := f.CountSince(ctx, event.UserID, event.Capability, since)
	if err != nil {
		return 0, false, err
	}

	if used >= ceiling {
		return used, false, nil
	}

	if err := f.Record(ctx, event); err != nil {
		return 0, false, err
	}

	return used, true, nil
}

func (f *fakeRepository) CountSince(
	_ context.Context,
	userID string,
	capability Capability,
	since time.Time,
) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	count := 0
	for _, e := range f.events {
		if e.UserID == userID &&
			e.Capability == capability &&
			!e.CreatedAt.Before(since) {
			count++
		}
	}

	return count, nil
}

func (f *fakeRepository) count(userID string, capability Capability) int {
	f.mu.Lock()
	defer f.mu.Unlock()

	count := 0
	for _, e := range f.events {
		if e.UserID == userID && e.Capability == capability {
			count++
		}
	}

	return count
}

func newTestService() (*Service, *fakeRepository) {
	repo := &fakeRepository{}
	return NewService(repo, DefaultPolicy()), repo
}

func TestProPlanAlwaysAdmittedAndRecorded(t *testing.T) {
	svc, repo := newTestService()
	subject := Subject{ID: "user-pro", Plan: "pro"}
	now := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)

	for i := 0; i < 20; i++ {
		decision, err := svc.AdmitAndRecord(
			context.Background(),
			subject,
			CapGenerateImage,
			now,
		)
		if err != nil {
			t.Fatalf("call %d: unexpected error: %v", i, err)
		}
		if !decision.Admitted {
			t.Fatalf("call %d: pro user denied", i)
		}
		if !decision.Unlimited {
			t.Fatalf("call %d: expected unlimited decision", i)
		}
	}

	if got := repo.count("user-pro", CapGenerateImage); got != 20 {
		t.Fatalf("expected 20 events, got %d", got)
	}
}

func TestFreePlanAdmitsUpToCeilingThenDenies(t *testing.T) {
	svc, repo := newTestService()
	subject := Subject{ID: "user-free", Plan: "free"}
	now := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
	ceiling := 5

	for i := 0; i < ceiling; i++ {
		decision, err := svc.AdmitAndRecord(
			context.Background(),
			subject,
			CapGenerateSocialCopy,
			now.Add(time.Duration(i)*time.Second),
		)
		if err != nil {
			t.Fatalf("call %d: unexpected error: %v", i, err)
		}
		if !decision.Admitted {
			t.Fatalf("call %d: admitted=false before ceiling", i)
		}
		if decision.Used != i+1 {
			t.Fatalf("call %d: used=%d, want %d", i, decision.Used, i+1)
		}
	}

	decision, err := svc.AdmitAndRecord(
		context.Background(),
		subject,
		CapGenerateSocialCopy,
		now.Add(time.Hour),
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if decision.Admitted {
		t.Fatal("call past ceiling was admitted")
	}
	if decision.Reason != ReasonQuotaExceeded {
		t.Fatalf("reason=%q, want %q", decision.Reason, ReasonQuotaExceeded)
	}

	if got := repo.count("user-free", CapGenerateSocialCopy); got != ceiling {
		t.Fatalf("expected %d events after denial, got %d", ceiling, got)
	}
}

func TestNotEntitledDeniesWithoutRecording(t *testing.T) {
	svc, repo := newTestService()
	subject := Subject{ID: "user-free", Plan: "free"}
	now := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)

	// Prior usage on other capabilities must not matter.
	if _, err := svc.AdmitAndRecord(
		context.Background(),
		subject,
		CapGenerateSocialCopy,
		now,
	); err != nil {
		t.Fatalf("setup call failed: %v", err)
	}

	for i := 0; i < 3; i++ {
		decision, err := svc.AdmitAndRecord(
			context.Background(),
			subject,
			CapAnalyzeCompetitorProfile,
			now,
		)
		if err != nil {
			t.Fatalf("call %d: unexpected error: %v", i, err)
		}
		if decision.Admitted {
			t.Fatalf("call %d: unentitled capability admitted", i)
		}
		if decision.Reason != ReasonNotEntitled {
			t.Fatalf(
				"call %d: reason=%q, want %q",
				i,
				decision.Reason,
				ReasonNotEntitled,
			)
		}
	}

	if got := repo.count("user-free", CapAnalyzeCompetitorProfile); got != 0 {
		t.Fatalf("expected 0 events for unentitled capability, got %d", got)
	}
}

func TestCapabilitiesAreIsolated(t *testing.T) {
	svc, _ := newTestService()
	subject := Subject{ID: "user-free", Plan: "free"}
	now := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)

	// Exhaust the image allowance (ceiling 2).
	for i := 0; i < 2; i++ {
		if _, err := svc.AdmitAndRecord(
			context.Background(),
			subject,
			CapGenerateImage,
			now,
		); err != nil {
			t.Fatalf("image call %d failed: %v", i, err)
		}
	}

	decision, err := svc.AdmitAndRecord(
		context.Background(),
		subject,
		CapGenerateImage,
		now,
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if decision.Admitted {
		t.Fatal("third image call admitted past ceiling")
	}

	// Hashtag research has its own untouched allowance.
	decision, err = svc.AdmitAndRecord(
		context.Background(),
		subject,
		CapResearchHashtags,
		now,
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !decision.Admitted {
		t.Fatal("hashtag call denied despite separate allowance")
	}
}

func TestDayBoundaryResetsAllowance(t *testing.T) {
	svc, repo := newTestService()
	subject := Subject{ID: "user-free", Plan: "free"}

	beforeMidnight := time.Date(2026, 3, 14, 23, 59, 59, 0, time.UTC)
	afterMidnight := time.Date(2026, 3, 15, 0, 0, 1, 0, time.UTC)

	// Exhaust the allowance just before midnight.
	for i := 0; i < 2; i++ {
		decision, err := svc.AdmitAndRecord(
			context.Background(),
			subject,
			CapGenerateImage,
			beforeMidnight,
		)
		if err != nil {
			t.Fatalf("call %d failed: %v", i, err)
		}
		if !decision.Admitted {
			t.Fatalf("call %d denied before midnight", i)
		}
	}

	// One second past midnight the window is fresh.
	decision, err := svc.AdmitAndRecord(
		context.Background(),
		subject,
		CapGenerateImage,
		afterMidnight,
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !decision.Admitted {
		t.Fatal("call after UTC midnight denied, window did not reset")
	}

	if got := repo.count("user-free", CapGenerateImage); got != 3 {
		t.Fatalf("expected 3 events across both windows, got %d", got)
	}
}

func TestConcurrentAdmissionsNeverExceedCeiling(t *testing.T) {
	svc, repo := newTestService()
	subject := Subject{ID: "user-free", Plan: "free"}
	now := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
	ceiling := 5
	attempts := 25

	var wg sync.WaitGroup
	admitted := make(chan bool, attempts)

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			decision, err := svc.AdmitAndRecord(
				context.Background(),
				subject,
				CapGenerateSocialCopy,
				now,
			)
			if err != nil {
				t.Errorf("unexpected error: %v", err)
				return
			}

			admitted <- decision.Admitted
		}()
	}

	wg.Wait()
	close(admitted)

	admittedCount := 0
	for ok := range admitted {
		if ok {
			admittedCount++
		}
	}

	if admittedCount != ceiling {
		t.Fatalf("admitted %d of %d attempts, want exactly %d",
			admittedCount, attempts, ceiling)
	}

	if got := repo.count("user-free", CapGenerateSocialCopy); got != ceiling {
		t.Fatalf("expected %d events, got %d", ceiling, got)
	}
}

func TestUnknownCapabilityIsAnError(t *testing.T) {
	svc, repo := newTestService()
	subject := Subject{ID: "user-free", Plan: "free"}

	_, err := svc.AdmitAndRecord(
		context.Background(),
		subject,
		Capability("summon-dragon"),
		time.Now(),
	)
	if err == nil {
		t.Fatal("expected error for unknown capability")
	}

	if got := len(repo.events); got != 0 {
		t.Fatalf("expected 0 events, got %d", got)
	}
}

func TestSummaryReportsPerCapabilityUsage(t *testing.T) {
	svc, _ := newTestService()
	subject := Subject{ID: "user-free", Plan: "free"}
	now := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)

	for i := 0; i < 3; i++ {
		if _, err := svc.AdmitAndRecord(
			context.Background(),
			subject,
			CapGenerateSocialCopy,
			now,
		); err != nil {
			t.Fatalf("setup call %d failed: %v", i, err)
		}
	}

	usages, err := svc.Summary(context.Background(), subject, now)
	if err != nil {
		t.Fatalf("summary failed: %v", err)
	}

	byCapability := make(map[Capability]CapabilityUsage, len(usages))
	for _, u := range usages {
		byCapability[u.Capability] = u
	}

	copyUsage := byCapability[CapGenerateSocialCopy]
	if copyUsage.Used != 3 || copyUsage.Ceiling != 5 || !copyUsage.Entitled {
		t.Fatalf("social copy usage = %+v", copyUsage)
	}

	competitor := byCapability[CapAnalyzeCompetitorProfile]
	if competitor.Entitled {
		t.Fatal("competitor analysis should not be entitled on free")
	}
}

func TestDayStartUTC(t *testing.T) {
	local := time.FixedZone("UTC+5", 5*3600)
	// 02:30 on the 15th locally is 21:30 on the 14th in UTC.
	at := time.Date(2026, 3, 15, 2, 30, 0, 0, local)

	start := DayStartUTC(at)
	want := time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)

	if !start.Equal(want) {
		t.Fatalf("DayStartUTC = %v, want %v", start, want)
	}
}
