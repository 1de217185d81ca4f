package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/xavierca1/playbook-leads/internal/entity"
	"github.com/xavierca1/playbook-leads/internal/export"
	"github.com/xavierca1/playbook-leads/internal/usecase"
)

type LeadLister interface {
	Execute(ctx context.Context) ([]entity.Lead, error)
	Hidden(ctx context.Context) ([]entity.Lead, error)
}

type LeadUpdater interface {
	Execute(ctx context.Context, id string, input usecase.UpdateLeadInput) (*entity.Lead, error)
}

type AdminHandler struct {
	listLeads  LeadLister
	updateLead LeadUpdater
	logger     *zap.Logger
	now        func() time.Time
}

func NewAdminHandler(list LeadLister, update LeadUpdater, logger *zap.Logger) *AdminHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AdminHandler{listLeads: list, updateLead: update, logger: logger, now: time.Now}
}

type ListLeadsResponse struct {
	Success bool          `json:"success"`
	Leads   []entity.Lead `json:"leads"`
}

type UpdateLeadResponse struct {
	Success bool         `json:"success"`
	Lead    *entity.Lead `json:"lead"`
}

// ListLeads handles GET /api/admin/leads.
func (h *AdminHandler) ListLeads(w http.ResponseWriter, r *http.Request) {
	leads, err := h.listLeads.Execute(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ListLeadsResponse{Success: true, Leads: leads})
}

// ListHiddenLeads handles GET /api/admin/leads/hidden.
func (h *AdminHandler) ListHiddenLeads(w http.ResponseWriter, r *http.Request) {
	leads, err := h.listLeads.Hidden(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ListLeadsResponse{Success: true, Leads: leads})
}

// UpdateLead handles PATCH /api/admin/leads/{id}.
func (h *AdminHandler) UpdateLead(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var input usecase.UpdateLeadInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeFailure(w, http.StatusBadRequest, "JSON inválido", usecase.CodeValidation)
		return
	}

	lead, err := h.updateLead.Execute(r.Context(), id, input)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, UpdateLeadResponse{Success: true, Lead: lead})
}

// ExportLeads handles GET /api/admin/leads/export?status=ALL|<label>.
func (h *AdminHandler) ExportLeads(w http.ResponseWriter, r *http.Request) {
	filter := r.URL.Query().Get("status")
	if filter == "" {
		filter = export.FilterAll
	}
	if filter != export.FilterAll && !entity.IsValidStatus(filter) {
		writeFailure(w, http.StatusBadRequest, "Estado no válido", usecase.CodeValidation)
		return
	}

	leads, err := h.listLeads.Execute(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	data, err := export.Workbook(export.Filter(leads, filter))
	if errors.Is(err, export.ErrNothingToExport) {
		writeFailure(w, http.StatusNotFound, err.Error(), usecase.CodeNotFound)
		return
	}
	if err != nil {
		h.logger.Error("export failed", zap.String("filter", filter), zap.Error(err))
		writeFailure(w, http.StatusInternalServerError, "Error al generar el archivo", "EXPORT_ERROR")
		return
	}

	filename := export.Filename(filter, h.now())
	w.Header().Set("Content-Type", export.MimeType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}
