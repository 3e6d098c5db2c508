// AngelaMos | 2026
// handler.go

package account

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
	r.Route("/accounts", func(r chi.Router) {
		r.Get("/", h.List)
		r.Post("/", h.Create)
		r.Put("/", h.Update)
		r.Delete("/", h.Delete)
		r.Get("/{id}", h.Get)
	})
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	params := ListAccountsParams{
		Search: r.URL.Query().Get("search"),
		Role:   r.URL.Query().Get("role"),
	}

	if params.Role != "" && params.Role != RoleAdmin && params.Role != RoleRegular {
		core.BadRequest(w, "role must be one of: admin regular")
		return
	}

	accounts, err := h.service.List(r.Context(), params)
	if err != nil {
		core.JSONError(w, core.ServiceError("could not load accounts", err))
		return
	}

	core.OK(w, ToAccountResponseList(accounts))
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(chi.URLParam(r, "id"))
	if err != nil {
		core.JSONError(w, err)
		return
	}

	a, err := h.service.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "account")
			return
		}
		core.JSONError(w, core.ServiceError("could not load account", err))
		return
	}

	core.OK(w, ToAccountResponse(a))
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	a, err := h.service.Create(r.Context(), req)
	if err != nil {
		if errors.Is(err, core.ErrDuplicateKey) {
			core.Conflict(w, "username")
			return
		}
		core.JSONError(w, core.ServiceError("could not create account", err))
		return
	}

	core.Created(w, ToAccountResponse(a))
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	var req UpdateAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	if _, err := h.service.Update(r.Context(), req); err != nil {
		switch {
		case errors.Is(err, core.ErrNotFound):
			core.NotFound(w, "account")
		case errors.Is(err, core.ErrDuplicateKey):
			core.Conflict(w, "username")
		default:
			core.JSONError(w, core.ServiceError("could not update account", err))
		}
		return
	}

	core.Success(w, http.StatusOK, "account updated")
}

// Delete takes the account id from the query string: DELETE /accounts?id=N.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r.URL.Query().Get("id"))
	if err != nil {
		core.JSONError(w, err)
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "account")
			return
		}
		core.JSONError(w, core.ServiceError("could not delete account", err))
		return
	}

	core.Success(w, http.StatusOK, "account deleted")
}

func parseID(raw string) (int64, error) {
	if raw == "" {
		return 0, core.ValidationError("id is required")
	}

	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, core.ValidationError("id must be a positive integer")
	}

	return id, nil
}
