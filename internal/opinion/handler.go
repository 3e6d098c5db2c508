// AngelaMos | 2026
// handler.go

package opinion

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/carterperez-dev/school-opinions/internal/core"
)

type Handler struct {
	service   *Service
	validator *validator.Validate
}

func NewHandler(service *Service) *Handler {
	return &Handler{
		service:   service,
		validator: core.NewValidator(),
	}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/opinions", func(r chi.Router) {
		r.Get("/", h.Report)
		r.Post("/", h.Register)
		r.Put("/", h.Update)
		r.Get("/list", h.List)
		r.Get("/totals", h.Totals)
	})
}

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	if err := h.service.Register(r.Context(), req.toInput()); err != nil {
		switch {
		case core.IsAppError(err):
			core.JSONError(w, err)
		case errors.Is(err, core.ErrInvalidInput):
			core.BadRequest(w, "userID does not match any account")
		default:
			core.JSONError(w, core.ServiceError("could not register opinion", err))
		}
		return
	}

	core.Success(w, http.StatusCreated, "opinion registered")
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	var req UpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	if err := h.service.Update(r.Context(), req.toInput()); err != nil {
		switch {
		case core.IsAppError(err):
			core.JSONError(w, err)
		case errors.Is(err, core.ErrNotFound):
			core.NotFound(w, "opinion")
		default:
			core.JSONError(w, core.ServiceError("could not update opinion", err))
		}
		return
	}

	core.Success(w, http.StatusOK, "opinion updated")
}

// Report returns {opinions, totals}. Query parameters other than the
// filters, such as a cache-busting token, are ignored.
func (h *Handler) Report(w http.ResponseWriter, r *http.Request) {
	filter, err := parseFilter(r)
	if err != nil {
		core.JSONError(w, err)
		return
	}

	report, err := h.service.Report(r.Context(), filter)
	if err != nil {
		core.JSONError(w, core.ServiceError("could not load opinions", err))
		return
	}

	noStore(w)
	core.OK(w, ReportResponse{
		Opinions: ToOpinionResponseList(report.Opinions),
		Totals:   report.Totals,
	})
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	filter, err := parseFilter(r)
	if err != nil {
		core.JSONError(w, err)
		return
	}

	rows, err := h.service.List(r.Context(), filter)
	if err != nil {
		core.JSONError(w, core.ServiceError("could not load opinions", err))
		return
	}

	noStore(w)
	core.OK(w, ToOpinionResponseList(rows))
}

func (h *Handler) Totals(w http.ResponseWriter, r *http.Request) {
	totals, err := h.service.Totals(r.Context())
	if err != nil {
		core.JSONError(w, core.ServiceError("could not load totals", err))
		return
	}

	noStore(w)
	core.OK(w, totals)
}

func parseFilter(r *http.Request) (Filter, error) {
	q := r.URL.Query()
	var f Filter

	switch q.Get("category") {
	case "":
	case "complaint", "Queja":
		f.Category = CategoryComplaint
	case "suggestion", "Sugerencia":
		f.Category = CategorySuggestion
	default:
		return Filter{}, core.ValidationError("category must be complaint or suggestion")
	}

	switch q.Get("status") {
	case "":
	case LabelOpen, "open":
		f.Status = StatusOpen
	case LabelClosed, "closed":
		f.Status = StatusClosed
	default:
		return Filter{}, core.ValidationError("status must be Abierto or Cerrado")
	}

	if raw := q.Get("userID"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id <= 0 {
			return Filter{}, core.ValidationError("userID must be a positive integer")
		}
		f.AccountID = id
	}

	return f, nil
}

func noStore(w http.ResponseWriter) {
	w.Header().Set("Cache-Control", "no-store")
}
