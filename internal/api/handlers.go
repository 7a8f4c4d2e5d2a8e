package api

import (
	"crypto/subtle"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/rlimports/autovitrine/internal/apperr"
	"github.com/rlimports/autovitrine/internal/catalog"
	"github.com/rlimports/autovitrine/internal/dealer"
	"github.com/rlimports/autovitrine/internal/gemini"
	"github.com/rlimports/autovitrine/internal/models"
)

const maxBodyBytes = 1 << 20

// Handler holds the API route handlers.
type Handler struct {
	svc         *dealer.Service
	gen         *gemini.Client
	adminSecret string
}

// NewHandler creates a new Handler.
func NewHandler(svc *dealer.Service, gen *gemini.Client, adminSecret string) *Handler {
	return &Handler{svc: svc, gen: gen, adminSecret: adminSecret}
}

// catalogQuery builds a catalog query from the request's q and category
// parameters. Unknown categories fall back to all.
func catalogQuery(r *http.Request, mode catalog.Mode) catalog.Query {
	q := catalog.Query{
		Text: r.URL.Query().Get("q"),
		Mode: mode,
	}
	switch catalog.Category(r.URL.Query().Get("category")) {
	case catalog.CategoryNew:
		q.Category = catalog.CategoryNew
	case catalog.CategoryUsed:
		q.Category = catalog.CategoryUsed
	default:
		q.Category = catalog.CategoryAll
	}
	return q
}

// ListVehicles handles GET /vehicles (public catalog, sold units hidden).
func (h *Handler) ListVehicles(w http.ResponseWriter, r *http.Request) {
	h.listVehicles(w, r, catalog.ModePublic)
}

// AdminListVehicles handles GET /admin/vehicles (everything visible).
func (h *Handler) AdminListVehicles(w http.ResponseWriter, r *http.Request) {
	h.listVehicles(w, r, catalog.ModeAdmin)
}

func (h *Handler) listVehicles(w http.ResponseWriter, r *http.Request, mode catalog.Mode) {
	vehicles, err := h.svc.ListVehicles(r.Context(), catalogQuery(r, mode))
	if err != nil {
		slog.Error("list vehicles failed", slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"vehicles": vehicles,
		"total":    len(vehicles),
	})
}

// GetVehicle handles GET /vehicles/{id}.
func (h *Handler) GetVehicle(w http.ResponseWriter, r *http.Request) {
	v, err := h.svc.GetVehicle(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, errorBody("not found"))
		} else {
			slog.Error("get vehicle failed", slog.String("error", err.Error()))
			writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		}
		return
	}
	writeJSON(w, http.StatusOK, v)
}

// CreateVehicle handles POST /admin/vehicles.
func (h *Handler) CreateVehicle(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	var draft dealer.VehicleDraft
	if err := json.NewDecoder(r.Body).Decode(&draft); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}
	v, err := h.svc.CreateVehicle(r.Context(), draft)
	if err != nil {
		h.writeMutationError(w, err, "create vehicle")
		return
	}
	writeJSON(w, http.StatusCreated, v)
}

// UpdateVehicle handles PUT /admin/vehicles/{id}.
func (h *Handler) UpdateVehicle(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	var draft dealer.VehicleDraft
	if err := json.NewDecoder(r.Body).Decode(&draft); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}
	v, err := h.svc.UpdateVehicle(r.Context(), chi.URLParam(r, "id"), draft)
	if err != nil {
		h.writeMutationError(w, err, "update vehicle")
		return
	}
	writeJSON(w, http.StatusOK, v)
}

// DeleteVehicle handles DELETE /admin/vehicles/{id}. Deletion is
// idempotent: an absent id still answers 204.
func (h *Handler) DeleteVehicle(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.DeleteVehicle(r.Context(), chi.URLParam(r, "id")); err != nil {
		slog.Error("delete vehicle failed", slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// SubmitFinancingLead handles POST /leads/financing.
func (h *Handler) SubmitFinancingLead(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	var in dealer.FinancingInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}
	res, err := h.svc.SubmitFinancing(r.Context(), in)
	if err != nil {
		h.writeMutationError(w, err, "financing lead")
		return
	}
	writeJSON(w, http.StatusCreated, res)
}

// SubmitSellLead handles POST /leads/sell.
func (h *Handler) SubmitSellLead(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	var in dealer.SellInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}
	res, err := h.svc.SubmitSell(r.Context(), in)
	if err != nil {
		h.writeMutationError(w, err, "sell lead")
		return
	}
	writeJSON(w, http.StatusCreated, res)
}

// ListLeads handles GET /admin/leads.
func (h *Handler) ListLeads(w http.ResponseWriter, r *http.Request) {
	leads, err := h.svc.ListLeads(r.Context())
	if err != nil {
		slog.Error("list leads failed", slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"leads": leads,
		"total": len(leads),
	})
}

// MarkLeadContacted handles POST /admin/leads/{id}/contacted. Repeating the
// call on an already contacted lead is a no-op, not an error.
func (h *Handler) MarkLeadContacted(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.MarkLeadContacted(r.Context(), chi.URLParam(r, "id")); err != nil {
		slog.Error("mark lead contacted failed", slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GetSettings handles GET /settings and GET /admin/settings.
func (h *Handler) GetSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := h.svc.Settings(r.Context())
	if err != nil {
		slog.Error("get settings failed", slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		return
	}
	writeJSON(w, http.StatusOK, settings)
}

// SaveSettings handles PUT /admin/settings.
func (h *Handler) SaveSettings(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	var settings models.Settings
	if err := json.NewDecoder(r.Body).Decode(&settings); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}
	saved, err := h.svc.SaveSettings(r.Context(), settings)
	if err != nil {
		slog.Error("save settings failed", slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		return
	}
	writeJSON(w, http.StatusOK, saved)
}

// Stats handles GET /admin/stats.
func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	st, err := h.svc.Stats(r.Context())
	if err != nil {
		slog.Error("stats failed", slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		return
	}
	writeJSON(w, http.StatusOK, st)
}

// Login handles POST /login: the shared-secret gate for the admin area.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	var req struct {
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}
	if subtle.ConstantTimeCompare([]byte(req.Password), []byte(h.adminSecret)) != 1 {
		writeJSON(w, http.StatusUnauthorized, errorBody("senha incorreta"))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GenerateDescription handles POST /admin/generate/description.
func (h *Handler) GenerateDescription(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	var req struct {
		Make     string `json:"make"`
		Model    string `json:"model"`
		Year     int    `json:"year"`
		Features string `json:"features"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}
	if req.Make == "" || req.Model == "" {
		writeJSON(w, http.StatusBadRequest, errorBody("make and model are required"))
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"description": h.gen.Describe(r.Context(), req.Make, req.Model, req.Year, req.Features),
	})
}

// SuggestPrice handles POST /admin/generate/price. An unavailable
// suggestion is a valid answer, not an error.
func (h *Handler) SuggestPrice(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	var req struct {
		Make  string `json:"make"`
		Model string `json:"model"`
		Year  int    `json:"year"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}
	if req.Make == "" || req.Model == "" {
		writeJSON(w, http.StatusBadRequest, errorBody("make and model are required"))
		return
	}
	price, ok := h.gen.SuggestPrice(r.Context(), req.Make, req.Model, req.Year)
	writeJSON(w, http.StatusOK, map[string]any{
		"price":     price,
		"available": ok,
	})
}

// writeMutationError maps service errors onto API responses. Validation
// failures surface as 400 with the composed field errors.
func (h *Handler) writeMutationError(w http.ResponseWriter, err error, op string) {
	if errors.Is(err, apperr.ErrNotFound) {
		writeJSON(w, http.StatusNotFound, errorBody("not found"))
		return
	}
	var verr validation.Errors
	if errors.As(err, &verr) {
		writeJSON(w, http.StatusBadRequest, errorBody(err.Error()))
		return
	}
	slog.Error(op+" failed", slog.String("error", err.Error()))
	writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
}
