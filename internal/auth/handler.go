// AngelaMos | 2026
// handler.go

package auth

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/monsterapp/backend/internal/core"
)

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

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/auth", func(r chi.Router) {
		r.Post("/{provider}", h.ExchangeToken)
	})
}

// ExchangeToken trades a provider access token for a session token. The
// provider is named in the path so the extension can add providers without
// a contract change.
func (h *Handler) ExchangeToken(w http.ResponseWriter, r *http.Request) {
	provider := chi.URLParam(r, "provider")

	var req ExchangeTokenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validate.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	tokens, err := h.service.ExchangeProviderToken(
		r.Context(),
		provider,
		req.AccessToken,
	)
	if err != nil {
		switch {
		case errors.Is(err, ErrUnknownProvider):
			core.NotFound(w, "identity provider")
		case errors.Is(err, core.ErrTokenInvalid):
			core.Unauthorized(w, "provider token rejected")
		default:
			core.InternalServerError(w, err)
		}

		return
	}

	core.OK(w, tokens)
}
