package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/nightshift-health/shiftplan/internal/export"
	"github.com/nightshift-health/shiftplan/internal/model"
	"github.com/nightshift-health/shiftplan/internal/repository"
	"github.com/nightshift-health/shiftplan/internal/service"
)

// ScheduleHandler exposes the monthly-schedule generation/publish/export
// surface (SPEC_FULL.md §6.1).
type ScheduleHandler struct {
	svc *service.ScheduleService
}

func NewScheduleHandler(svc *service.ScheduleService) *ScheduleHandler {
	return &ScheduleHandler{svc: svc}
}

type generateRequest struct {
	TenantID  uuid.UUID `json:"tenant_id"`
	ServiceID uuid.UUID `json:"service_id"`
	Year      int       `json:"year"`
	Month     int       `json:"month"`
	RandSeed  *int64    `json:"rand_seed,omitempty"`
}

// Generate handles POST /schedules/generate.
func (h *ScheduleHandler) Generate(w http.ResponseWriter, r *http.Request) {
	var req generateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.TenantID == uuid.Nil || req.ServiceID == uuid.Nil || req.Month < 1 || req.Month > 12 {
		respondError(w, http.StatusBadRequest, "tenant_id, service_id and a month in [1,12] are required")
		return
	}

	draft, err := h.svc.Generate(r.Context(), service.GenerateInput{
		TenantID:  req.TenantID,
		ServiceID: req.ServiceID,
		Year:      req.Year,
		Month:     req.Month,
		RandSeed:  req.RandSeed,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrLockHeld):
			respondError(w, http.StatusConflict, err.Error())
		case errors.Is(err, service.ErrServiceNotFound):
			respondError(w, http.StatusNotFound, err.Error())
		default:
			respondError(w, http.StatusInternalServerError, "Failed to generate schedule")
		}
		return
	}

	respondJSON(w, http.StatusCreated, draft)
}

// Get handles GET /schedules/{id}.
func (h *ScheduleHandler) Get(w http.ResponseWriter, r *http.Request) {
	schedule, err := h.loadFromPath(w, r)
	if err != nil {
		return
	}
	respondJSON(w, http.StatusOK, schedule)
}

// List handles GET /schedules?tenant_id=&service_id=&year=&month=.
func (h *ScheduleHandler) List(w http.ResponseWriter, r *http.Request) {
	tenantID, err := uuid.Parse(r.URL.Query().Get("tenant_id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid tenant_id")
		return
	}
	serviceID, err := uuid.Parse(r.URL.Query().Get("service_id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid service_id")
		return
	}
	year, err := strconv.Atoi(r.URL.Query().Get("year"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid year")
		return
	}
	month, err := strconv.Atoi(r.URL.Query().Get("month"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid month")
		return
	}

	schedules, err := h.svc.ListByPeriod(r.Context(), tenantID, serviceID, year, month)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to list schedules")
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"data": schedules})
}

// Publish handles POST /schedules/{id}/publish.
func (h *ScheduleHandler) Publish(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid schedule ID")
		return
	}

	published, err := h.svc.Publish(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNoDraftToPublish):
			respondError(w, http.StatusNotFound, err.Error())
		case errors.Is(err, repository.ErrAlreadyPublished):
			respondError(w, http.StatusConflict, err.Error())
		default:
			respondError(w, http.StatusInternalServerError, "Failed to publish schedule")
		}
		return
	}
	respondJSON(w, http.StatusOK, published)
}

// ExportXLSX handles GET /schedules/{id}/export.xlsx.
func (h *ScheduleHandler) ExportXLSX(w http.ResponseWriter, r *http.Request) {
	schedule, err := h.loadFromPath(w, r)
	if err != nil {
		return
	}
	data, err := export.XLSX(schedule)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to render XLSX")
		return
	}
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="schedule.xlsx"`)
	_, _ = w.Write(data)
}

// ExportPDF handles GET /schedules/{id}/export.pdf.
func (h *ScheduleHandler) ExportPDF(w http.ResponseWriter, r *http.Request) {
	schedule, err := h.loadFromPath(w, r)
	if err != nil {
		return
	}
	data, err := export.PDF(schedule)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to render PDF")
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="schedule.pdf"`)
	_, _ = w.Write(data)
}

func (h *ScheduleHandler) loadFromPath(w http.ResponseWriter, r *http.Request) (*model.MonthlySchedule, error) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid schedule ID")
		return nil, err
	}
	schedule, err := h.svc.GetByID(r.Context(), id)
	if err != nil {
		respondError(w, http.StatusNotFound, "Schedule not found")
		return nil, err
	}
	return schedule, nil
}
