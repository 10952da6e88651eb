// AngelaMos | 2026
// handler_test.go

package agent

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/monsterapp/backend/internal/core"
	"github.com/monsterapp/backend/internal/ledger"
)

func newTestRouter(admitter *fakeAdmitter) chi.Router {
	svc := newTestService(
		admitter,
		&fakeTextGenerator{text: "ok"},
		&fakeTextGenerator{text: "ok"},
		&fakeImageGenerator{url: "https://img.example/x.png"},
	)

	r := chi.NewRouter()
	NewHandler(svc).RegisterRoutes(r)
	return r
}

func TestMalformedBodyNeverConsumesQuota(t *testing.T) {
	admitter := &fakeAdmitter{}
	router := newTestRouter(admitter)

	req := httptest.NewRequest(
		http.MethodPost,
		"/agents/generate-social-copy",
		strings.NewReader("{not json"),
	)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.Code)
	}
	if admitter.calls != 0 {
		t.Fatal("quota checked before validation")
	}
}

func TestMissingRequiredFieldNeverConsumesQuota(t *testing.T) {
	admitter := &fakeAdmitter{}
	router := newTestRouter(admitter)

	req := httptest.NewRequest(
		http.MethodPost,
		"/agents/generate-image",
		strings.NewReader(`{"style": "watercolor"}`),
	)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.Code)
	}
	if admitter.calls != 0 {
		t.Fatal("quota checked before validation")
	}
}

func TestQuotaExceededSurfacesAs429(t *testing.T) {
	admitter := &fakeAdmitter{
		decision: ledger.Decision{
			Reason:  ledger.ReasonQuotaExceeded,
			Used:    2,
			Ceiling: 2,
		},
	}
	router := newTestRouter(admitter)

	req := httptest.NewRequest(
		http.MethodPost,
		"/agents/generate-image",
		strings.NewReader(`{"prompt": "a castle"}`),
	)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusTooManyRequests {
		t.Fatalf("status = %d, want 429", resp.Code)
	}
	if !strings.Contains(resp.Body.String(), "DAILY_LIMIT_EXCEEDED") {
		t.Fatalf("body missing code: %s", resp.Body.String())
	}
}

func TestNotEntitledSurfacesAs403(t *testing.T) {
	admitter := &fakeAdmitter{
		decision: ledger.Decision{Reason: ledger.ReasonNotEntitled},
	}
	router := newTestRouter(admitter)

	req := httptest.NewRequest(
		http.MethodPost,
		"/agents/analyze-competitor-profile",
		strings.NewReader(`{"profile_data": "a profile"}`),
	)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", resp.Code)
	}
	if !strings.Contains(resp.Body.String(), "PLAN_UPGRADE_REQUIRED") {
		t.Fatalf("body missing code: %s", resp.Body.String())
	}
}

func TestVanishedUserSurfacesAs401(t *testing.T) {
	admitter := &fakeAdmitter{decision: ledger.Decision{Admitted: true}}
	svc := NewService(
		&fakeResolver{err: core.ErrNotFound},
		admitter,
		&fakeTextGenerator{text: "ok"},
		&fakeTextGenerator{text: "ok"},
		&fakeImageGenerator{},
		discardLogger(),
	)

	router := chi.NewRouter()
	NewHandler(svc).RegisterRoutes(router)

	req := httptest.NewRequest(
		http.MethodPost,
		"/agents/generate-social-copy",
		strings.NewReader(`{"prompt": "hello"}`),
	)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", resp.Code)
	}
	if !strings.Contains(resp.Body.String(), "UNAUTHORIZED") {
		t.Fatalf("body missing code: %s", resp.Body.String())
	}
	if resp.Header().Get("WWW-Authenticate") == "" {
		t.Fatal("missing WWW-Authenticate header")
	}
}

func TestAdmittedCallReturnsEnvelope(t *testing.T) {
	admitter := &fakeAdmitter{decision: ledger.Decision{Admitted: true}}
	router := newTestRouter(admitter)

	req := httptest.NewRequest(
		http.MethodPost,
		"/agents/generate-image",
		strings.NewReader(`{"prompt": "a castle"}`),
	)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.Code)
	}
	if !strings.Contains(resp.Body.String(), "https://img.example/x.png") {
		t.Fatalf("body missing image url: %s", resp.Body.String())
	}
}
