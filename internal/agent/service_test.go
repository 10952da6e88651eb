// AngelaMos | 2026
// service_test.go

package agent

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/monsterapp/backend/internal/core"
	"github.com/monsterapp/backend/internal/ledger"
)

type fakeResolver struct {
	subject ledger.Subject
	err     error
}

func (f *fakeResolver) ResolveSubject(
	_ context.Context,
	_ string,
) (ledger.Subject, error) {
	return f.subject, f.err
}

type fakeAdmitter struct {
	decision ledger.Decision
	err      error
	calls    int
}

func (f *fakeAdmitter) AdmitAndRecord(
	_ context.Context,
	_ ledger.Subject,
	_ ledger.Capability,
	_ time.Time,
) (ledger.Decision, error) {
	f.calls++
	return f.decision, f.err
}

type fakeTextGenerator struct {
	text  string
	err   error
	calls int
}

func (f *fakeTextGenerator) Name() string { return "fake-text" }

func (f *fakeTextGenerator) GenerateText(
	_ context.Context,
	_ string,
) (string, error) {
	f.calls++
	return f.text, f.err
}

type fakeImageGenerator struct {
	url   string
	err   error
	calls int
}

func (f *fakeImageGenerator) Name() string { return "fake-image" }

func (f *fakeImageGenerator) GenerateImage(
	_ context.Context,
	_ string,
) (string, error) {
	f.calls++
	return f.url, f.err
}

func discardLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func newTestService(
	admitter *fakeAdmitter,
	text *fakeTextGenerator,
	gemini *fakeTextGenerator,
	images *fakeImageGenerator,
) *Service {
	return NewService(
		&fakeResolver{subject: ledger.Subject{ID: "u1", Plan: "free"}},
		admitter,
		text,
		gemini,
		images,
		discardLogger(),
	)
}

func TestGenerateSocialCopyAdmitted(t *testing.T) {
	admitter := &fakeAdmitter{decision: ledger.Decision{Admitted: true}}
	text := &fakeTextGenerator{text: "A shiny new post"}
	svc := newTestService(admitter, text, &fakeTextGenerator{}, &fakeImageGenerator{})

	resp, err := svc.GenerateSocialCopy(
		context.Background(),
		"u1",
		GenerateSocialCopyRequest{Prompt: "launch announcement"},
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Copy != "A shiny new post" {
		t.Fatalf("copy = %q", resp.Copy)
	}
	if admitter.calls != 1 {
		t.Fatalf("admitter calls = %d, want 1", admitter.calls)
	}
}

func TestDenialMapsToPlanUpgradeError(t *testing.T) {
	admitter := &fakeAdmitter{
		decision: ledger.Decision{Reason: ledger.ReasonNotEntitled},
	}
	text := &fakeTextGenerator{}
	svc := newTestService(admitter, text, &fakeTextGenerator{}, &fakeImageGenerator{})

	_, err := svc.AnalyzeCompetitorProfile(
		context.Background(),
		"u1",
		AnalyzeCompetitorProfileRequest{ProfileData: "some profile"},
	)
	if !errors.Is(err, core.ErrNotEntitled) {
		t.Fatalf("expected not-entitled error, got %v", err)
	}

	var appErr *core.AppError
	if !errors.As(err, &appErr) || appErr.Code != "PLAN_UPGRADE_REQUIRED" {
		t.Fatalf("expected PLAN_UPGRADE_REQUIRED, got %+v", appErr)
	}

	if text.calls != 0 {
		t.Fatal("provider called despite denial")
	}
}

func TestDenialMapsToDailyLimitError(t *testing.T) {
	admitter := &fakeAdmitter{
		decision: ledger.Decision{
			Reason:  ledger.ReasonQuotaExceeded,
			Used:    2,
			Ceiling: 2,
		},
	}
	images := &fakeImageGenerator{}
	svc := newTestService(admitter, &fakeTextGenerator{}, &fakeTextGenerator{}, images)

	_, err := svc.GenerateImage(
		context.Background(),
		"u1",
		GenerateImageRequest{Prompt: "a castle"},
	)
	if !errors.Is(err, core.ErrQuotaExceeded) {
		t.Fatalf("expected quota-exceeded error, got %v", err)
	}

	var appErr *core.AppError
	if !errors.As(err, &appErr) || appErr.Code != "DAILY_LIMIT_EXCEEDED" {
		t.Fatalf("expected DAILY_LIMIT_EXCEEDED, got %+v", appErr)
	}

	if images.calls != 0 {
		t.Fatal("provider called despite denial")
	}
}

func TestProviderFailureAfterAdmission(t *testing.T) {
	admitter := &fakeAdmitter{decision: ledger.Decision{Admitted: true}}
	gemini := &fakeTextGenerator{err: errors.New("model overloaded")}
	svc := newTestService(admitter, &fakeTextGenerator{}, gemini, &fakeImageGenerator{})

	_, err := svc.ResearchHashtags(
		context.Background(),
		"u1",
		ResearchHashtagsRequest{Topic: "fitness"},
	)
	if !errors.Is(err, core.ErrUpstream) {
		t.Fatalf("expected upstream error, got %v", err)
	}

	// The slot was consumed before the provider call; the failure does
	// not roll it back.
	if admitter.calls != 1 {
		t.Fatalf("admitter calls = %d, want 1", admitter.calls)
	}
}

func TestResearchHashtagsReshapesOutput(t *testing.T) {
	admitter := &fakeAdmitter{decision: ledger.Decision{Admitted: true}}
	gemini := &fakeTextGenerator{
		text: "Here you go: #fitness #health #fitness #wellness",
	}
	svc := newTestService(admitter, &fakeTextGenerator{}, gemini, &fakeImageGenerator{})

	resp, err := svc.ResearchHashtags(
		context.Background(),
		"u1",
		ResearchHashtagsRequest{Topic: "fitness"},
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{"#fitness", "#health", "#wellness"}
	if len(resp.Hashtags) != len(want) {
		t.Fatalf("hashtags = %v, want %v", resp.Hashtags, want)
	}
	for i := range want {
		if resp.Hashtags[i] != want[i] {
			t.Fatalf("hashtags = %v, want %v", resp.Hashtags, want)
		}
	}
}

func TestSuggestContentTopicsSplitsList(t *testing.T) {
	admitter := &fakeAdmitter{decision: ledger.Decision{Admitted: true}}
	gemini := &fakeTextGenerator{
		text: "1. Morning routines\n2. Desk stretches\n3. Meal prep",
	}
	svc := newTestService(admitter, &fakeTextGenerator{}, gemini, &fakeImageGenerator{})

	resp, err := svc.SuggestContentTopics(
		context.Background(),
		"u1",
		SuggestContentTopicsRequest{Niche: "fitness"},
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(resp.Topics) != 3 || resp.Topics[0] != "Morning routines" {
		t.Fatalf("topics = %v", resp.Topics)
	}
}

func TestAnalyzeCompetitorProfileSplitsAnswer(t *testing.T) {
	admitter := &fakeAdmitter{decision: ledger.Decision{Admitted: true}}
	text := &fakeTextGenerator{
		text: "Posts daily with strong hooks.\n1. Lean into reels\n2. Pin a tutorial",
	}
	svc := newTestService(admitter, text, &fakeTextGenerator{}, &fakeImageGenerator{})

	resp, err := svc.AnalyzeCompetitorProfile(
		context.Background(),
		"u1",
		AnalyzeCompetitorProfileRequest{ProfileData: "bio and recent posts"},
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Summary != "Posts daily with strong hooks." {
		t.Fatalf("summary = %q", resp.Summary)
	}
	if len(resp.Insights) != 2 || resp.Insights[1] != "Pin a tutorial" {
		t.Fatalf("insights = %v", resp.Insights)
	}
}

func TestGenerateImageReturnsURL(t *testing.T) {
	admitter := &fakeAdmitter{decision: ledger.Decision{Admitted: true}}
	images := &fakeImageGenerator{url: "https://img.example/abc.png"}
	svc := newTestService(admitter, &fakeTextGenerator{}, &fakeTextGenerator{}, images)

	resp, err := svc.GenerateImage(
		context.Background(),
		"u1",
		GenerateImageRequest{Prompt: "a castle", Style: "watercolor"},
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.ImageURL != "https://img.example/abc.png" {
		t.Fatalf("image url = %q", resp.ImageURL)
	}
}

func TestVanishedSubjectFailsAsUnauthenticated(t *testing.T) {
	admitter := &fakeAdmitter{decision: ledger.Decision{Admitted: true}}
	svc := NewService(
		&fakeResolver{err: core.ErrNotFound},
		admitter,
		&fakeTextGenerator{},
		&fakeTextGenerator{},
		&fakeImageGenerator{},
		discardLogger(),
	)

	_, err := svc.GenerateSocialCopy(
		context.Background(),
		"ghost",
		GenerateSocialCopyRequest{Prompt: "hello"},
	)
	if !errors.Is(err, core.ErrUnauthorized) {
		t.Fatalf("expected unauthorized error, got %v", err)
	}

	var appErr *core.AppError
	if !errors.As(err, &appErr) || appErr.Code != "UNAUTHORIZED" {
		t.Fatalf("expected UNAUTHORIZED, got %+v", appErr)
	}

	if admitter.calls != 0 {
		t.Fatal("admitter called despite resolver failure")
	}
}

func TestResolverFailurePropagates(t *testing.T) {
	admitter := &fakeAdmitter{decision: ledger.Decision{Admitted: true}}
	svc := NewService(
		&fakeResolver{err: errors.New("connection refused")},
		admitter,
		&fakeTextGenerator{},
		&fakeTextGenerator{},
		&fakeImageGenerator{},
		discardLogger(),
	)

	_, err := svc.GenerateSocialCopy(
		context.Background(),
		"u1",
		GenerateSocialCopyRequest{Prompt: "hello"},
	)
	if err == nil || errors.Is(err, core.ErrUnauthorized) {
		t.Fatalf("expected plain storage error, got %v", err)
	}
	if admitter.calls != 0 {
		t.Fatal("admitter called despite resolver failure")
	}
}
