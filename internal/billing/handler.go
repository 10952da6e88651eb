// AngelaMos | 2026
// handler.go

package billing

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/monsterapp/backend/internal/core"
	"github.com/monsterapp/backend/internal/middleware"
)

// Stripe caps webhook payloads well under this.
const maxWebhookBodyBytes = 1 << 16

type Handler struct {
	service  *Service
	validate *validator.Validate
}

func NewHandler(service *Service) *Handler {
	return &Handler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes mounts checkout behind authentication and the webhook
// without it: Stripe authenticates with its signature header instead.
func (h *Handler) RegisterRoutes(
	r chi.Router,
	authenticator func(http.Handler) http.Handler,
) {
	r.Route("/billing", func(r chi.Router) {
		r.With(authenticator).Post("/checkout-session", h.CreateCheckoutSession)
		r.Post("/webhook", h.Webhook)
	})
}

func (h *Handler) CreateCheckoutSession(
	w http.ResponseWriter,
	r *http.Request,
) {
	var req CreateCheckoutSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validate.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	resp, err := h.service.CreateCheckoutSession(
		r.Context(),
		middleware.GetUserID(r.Context()),
		req,
	)
	if err != nil {
		core.JSONError(w, err)
		return
	}

	core.OK(w, resp)
}

func (h *Handler) Webhook(w http.ResponseWriter, r *http.Request) {
	payload, err := io.ReadAll(io.LimitReader(r.Body, maxWebhookBodyBytes))
	if err != nil {
		core.BadRequest(w, "unreadable payload")
		return
	}

	err = h.service.HandleWebhook(
		r.Context(),
		payload,
		r.Header.Get("Stripe-Signature"),
	)
	if err != nil {
		core.BadRequest(w, "webhook rejected")
		return
	}

	w.WriteHeader(http.StatusOK)
}
