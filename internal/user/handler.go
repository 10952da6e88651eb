// AngelaMos | 2026
// handler.go

package user

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/monsterapp/backend/internal/core"
	"github.com/monsterapp/backend/internal/ledger"
	"github.com/monsterapp/backend/internal/middleware"
)

type UsageReader interface {
	Summary(
		ctx context.Context,
		subject ledger.Subject,
		now time.Time,
	) ([]ledger.CapabilityUsage, error)
}

type Handler struct {
	service *Service
	usage   UsageReader
}

func NewHandler(service *Service, usage UsageReader) *Handler {
	return &Handler{
		service: service,
		usage:   usage,
	}
}

func (h *Handler) RegisterRoutes(
	r chi.Router,
	authenticator func(http.Handler) http.Handler,
) {
	r.Route("/users", func(r chi.Router) {
		r.Use(authenticator)

		r.Get("/me", h.GetMe)
		r.Get("/me/usage", h.GetMyUsage)
	})
}

func (h *Handler) GetMe(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	user, err := h.service.GetMe(r.Context(), userID)
	if err != nil {
		// A token whose subject no longer exists fails the same way a
		// bad token does.
		if errors.Is(err, core.ErrNotFound) {
			core.Unauthorized(w, "")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, ToUserResponse(user))
}

// GetMyUsage reports the caller's consumption of each capability within the
// current UTC day window.
func (h *Handler) GetMyUsage(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	user, err := h.service.GetMe(r.Context(), userID)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.Unauthorized(w, "")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	now := time.Now().UTC()

	usages, err := h.usage.Summary(r.Context(), ledger.Subject{
		ID:   user.ID,
		Plan: user.Plan,
	}, now)
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, ToUsageResponse(user.Plan, ledger.DayStartUTC(now), usages))
}
