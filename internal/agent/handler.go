// AngelaMos | 2026
// handler.go

package agent

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/monsterapp/backend/internal/core"
	"github.com/monsterapp/backend/internal/middleware"
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

// RegisterRoutes mounts the capability endpoints. Middlewares are applied
// in order; the authenticator must come before anything reading identity
// from the request context.
func (h *Handler) RegisterRoutes(
	r chi.Router,
	mws ...func(http.Handler) http.Handler,
) {
	r.Route("/agents", func(r chi.Router) {
		for _, mw := range mws {
			r.Use(mw)
		}

		r.Post("/generate-social-copy", h.GenerateSocialCopy)
		r.Post("/research-hashtags", h.ResearchHashtags)
		r.Post("/generate-image", h.GenerateImage)
		r.Post("/analyze-competitor-profile", h.AnalyzeCompetitorProfile)
		r.Post("/suggest-content-topics", h.SuggestContentTopics)
		r.Post("/generate-copy-variations", h.GenerateCopyVariations)
	})
}

// decode parses and validates a request body. Validation runs before any
// quota check so malformed input never consumes a slot.
func (h *Handler) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		core.BadRequest(w, "invalid request body")
		return false
	}

	if err := h.validate.Struct(dst); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return false
	}

	return true
}

func (h *Handler) GenerateSocialCopy(w http.ResponseWriter, r *http.Request) {
	var req GenerateSocialCopyRequest
	if !h.decode(w, r, &req) {
		return
	}

	resp, err := h.service.GenerateSocialCopy(
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

func (h *Handler) ResearchHashtags(w http.ResponseWriter, r *http.Request) {
	var req ResearchHashtagsRequest
	if !h.decode(w, r, &req) {
		return
	}

	resp, err := h.service.ResearchHashtags(
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

func (h *Handler) GenerateImage(w http.ResponseWriter, r *http.Request) {
	var req GenerateImageRequest
	if !h.decode(w, r, &req) {
		return
	}

	resp, err := h.service.GenerateImage(
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

func (h *Handler) AnalyzeCompetitorProfile(
	w http.ResponseWriter,
	r *http.Request,
) {
	var req AnalyzeCompetitorProfileRequest
	if !h.decode(w, r, &req) {
		return
	}

	resp, err := h.service.AnalyzeCompetitorProfile(
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

func (h *Handler) SuggestContentTopics(w http.ResponseWriter, r *http.Request) {
	var req SuggestContentTopicsRequest
	if !h.decode(w, r, &req) {
		return
	}

	resp, err := h.service.SuggestContentTopics(
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

func (h *Handler) GenerateCopyVariations(
	w http.ResponseWriter,
	r *http.Request,
) {
	var req GenerateCopyVariationsRequest
	if !h.decode(w, r, &req) {
		return
	}

	resp, err := h.service.GenerateCopyVariations(
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
