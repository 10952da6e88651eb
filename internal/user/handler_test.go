// AngelaMos | 2026
// handler_test.go

package user

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/monsterapp/backend/internal/core"
	"github.com/monsterapp/backend/internal/middleware"
)

type emptyRepository struct{}

func (emptyRepository) Create(context.Context, *User) error { return nil }

func (emptyRepository) GetByID(context.Context, string) (*User, error) {
	return nil, core.ErrNotFound
}

func (emptyRepository) GetByEmail(context.Context, string) (*User, error) {
	return nil, core.ErrNotFound
}

func (emptyRepository) GetByProviderSubject(
	context.Context,
	string,
) (*User, error) {
	return nil, core.ErrNotFound
}

func (emptyRepository) GetByStripeCustomerID(
	context.Context,
	string,
) (*User, error) {
	return nil, core.ErrNotFound
}

func (emptyRepository) UpdatePlan(context.Context, string, string) error {
	return core.ErrNotFound
}

func (emptyRepository) SetStripeCustomerID(
	context.Context,
	string,
	string,
) error {
	return core.ErrNotFound
}

func TestGetMeVanishedUserSurfacesAs401(t *testing.T) {
	handler := NewHandler(NewService(emptyRepository{}), nil)

	req := httptest.NewRequest(http.MethodGet, "/users/me", nil)
	req = req.WithContext(
		context.WithValue(req.Context(), middleware.UserIDKey, "ghost"),
	)
	resp := httptest.NewRecorder()
	handler.GetMe(resp, req)

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

func TestGetMyUsageVanishedUserSurfacesAs401(t *testing.T) {
	handler := NewHandler(NewService(emptyRepository{}), nil)

	req := httptest.NewRequest(http.MethodGet, "/users/me/usage", nil)
	req = req.WithContext(
		context.WithValue(req.Context(), middleware.UserIDKey, "ghost"),
	)
	resp := httptest.NewRecorder()
	handler.GetMyUsage(resp, req)

	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", resp.Code)
	}
}
