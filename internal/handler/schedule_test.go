package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"

	"github.com/nightshift-health/shiftplan/internal/handler"
	"github.com/nightshift-health/shiftplan/internal/model"
	"github.com/nightshift-health/shiftplan/internal/repository"
	"github.com/nightshift-health/shiftplan/internal/service"
	"github.com/nightshift-health/shiftplan/internal/testutil"
)

// noopLock stands in for the Redis-backed GenerationLock; there is no test
// Redis instance anywhere in this harness, only a test Postgres DB.
type noopLock struct{}

func (noopLock) Acquire(ctx context.Context, tenantID, serviceID uuid.UUID, year, month int, ttl time.Duration) (func(context.Context) error, error) {
	return func(context.Context) error { return nil }, nil
}

func setupScheduleHandler(t *testing.T) (*handler.ScheduleHandler, *service.ScheduleService, uuid.UUID, *model.Service) {
	db := testutil.SetupTestDB(t)
	svc := service.NewScheduleService(
		repository.NewScheduleRepository(db),
		repository.NewEmployeeRepository(db),
		repository.NewServiceRepository(db),
		repository.NewHolidayRepository(db),
		noopLock{},
		5*time.Minute,
		nil,
	)
	h := handler.NewScheduleHandler(svc)

	tenantID := uuid.New()
	serviceRepo := repository.NewServiceRepository(db)
	organizationalService := &model.Service{
		TenantID: tenantID,
		Name:     "ICU",
		Staffing: datatypes.NewJSONType(model.StaffingTargets{
			Morning:   model.StaffingTarget{Weekday: 1, WeekendHoliday: 1},
			Afternoon: model.StaffingTarget{Weekday: 1, WeekendHoliday: 1},
		}),
		TargetCompleteWeekendsOff: 1,
		IsActive:                  true,
	}
	require.NoError(t, serviceRepo.Create(context.Background(), organizationalService))

	employeeRepo := repository.NewEmployeeRepository(db)
	for _, name := range []string{"Alice", "Bob", "Carol"} {
		require.NoError(t, employeeRepo.Create(context.Background(), &model.Employee{
			TenantID: tenantID, ServiceID: organizationalService.ID, DisplayName: name,
			WorkPattern: model.PatternStandardRotation, IsActive: true,
		}))
	}

	return h, svc, tenantID, organizationalService
}

func withURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

func TestScheduleHandler_Generate_Success(t *testing.T) {
	h, _, tenantID, svc := setupScheduleHandler(t)

	body := fmt.Sprintf(`{"tenant_id":"%s","service_id":"%s","year":2026,"month":3}`, tenantID, svc.ID)
	req := httptest.NewRequest("POST", "/schedules/generate", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()

	h.Generate(rr, req)

	assert.Equal(t, http.StatusCreated, rr.Code)
	var draft model.MonthlySchedule
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &draft))
	assert.Equal(t, model.StatusDraft, draft.Status)
}

func TestScheduleHandler_Generate_InvalidBody(t *testing.T) {
	h, _, _, _ := setupScheduleHandler(t)

	req := httptest.NewRequest("POST", "/schedules/generate", bytes.NewBufferString(`{"month":0}`))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()

	h.Generate(rr, req)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestScheduleHandler_Get_NotFound(t *testing.T) {
	h, _, _, _ := setupScheduleHandler(t)

	req := httptest.NewRequest("GET", "/schedules/"+uuid.New().String(), nil)
	req = withURLParam(req, "id", uuid.New().String())
	rr := httptest.NewRecorder()

	h.Get(rr, req)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestScheduleHandler_Get_Success(t *testing.T) {
	h, svc, tenantID, organizationalService := setupScheduleHandler(t)

	draft, err := svc.Generate(context.Background(), service.GenerateInput{
		TenantID: tenantID, ServiceID: organizationalService.ID, Year: 2026, Month: 5,
	})
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/schedules/"+draft.ID.String(), nil)
	req = withURLParam(req, "id", draft.ID.String())
	rr := httptest.NewRecorder()

	h.Get(rr, req)
	assert.Equal(t, http.StatusOK, rr.Code)

	var fetched model.MonthlySchedule
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &fetched))
	assert.Equal(t, draft.ID, fetched.ID)
}

func TestScheduleHandler_Publish_PromotesDraft(t *testing.T) {
	h, svc, tenantID, organizationalService := setupScheduleHandler(t)

	draft, err := svc.Generate(context.Background(), service.GenerateInput{
		TenantID: tenantID, ServiceID: organizationalService.ID, Year: 2026, Month: 6,
	})
	require.NoError(t, err)

	req := httptest.NewRequest("POST", "/schedules/"+draft.ID.String()+"/publish", nil)
	req = withURLParam(req, "id", draft.ID.String())
	rr := httptest.NewRecorder()

	h.Publish(rr, req)
	assert.Equal(t, http.StatusOK, rr.Code)

	var published model.MonthlySchedule
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &published))
	assert.Equal(t, model.StatusPublished, published.Status)
}

func TestScheduleHandler_Publish_NoDraftToPublish(t *testing.T) {
	h, _, _, _ := setupScheduleHandler(t)

	id := uuid.New().String()
	req := httptest.NewRequest("POST", "/schedules/"+id+"/publish", nil)
	req = withURLParam(req, "id", id)
	rr := httptest.NewRecorder()

	h.Publish(rr, req)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestScheduleHandler_List_ReturnsSchedulesForPeriod(t *testing.T) {
	h, svc, tenantID, organizationalService := setupScheduleHandler(t)

	_, err := svc.Generate(context.Background(), service.GenerateInput{
		TenantID: tenantID, ServiceID: organizationalService.ID, Year: 2026, Month: 7,
	})
	require.NoError(t, err)

	url := fmt.Sprintf("/schedules?tenant_id=%s&service_id=%s&year=2026&month=7", tenantID, organizationalService.ID)
	req := httptest.NewRequest("GET", url, nil)
	rr := httptest.NewRecorder()

	h.List(rr, req)
	assert.Equal(t, http.StatusOK, rr.Code)

	var body struct {
		Data []model.MonthlySchedule `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.Len(t, body.Data, 1)
}

func TestScheduleHandler_ExportXLSX_Success(t *testing.T) {
	h, svc, tenantID, organizationalService := setupScheduleHandler(t)

	draft, err := svc.Generate(context.Background(), service.GenerateInput{
		TenantID: tenantID, ServiceID: organizationalService.ID, Year: 2026, Month: 8,
	})
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/schedules/"+draft.ID.String()+"/export.xlsx", nil)
	req = withURLParam(req, "id", draft.ID.String())
	rr := httptest.NewRecorder()

	h.ExportXLSX(rr, req)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.NotEmpty(t, rr.Body.Bytes())
	assert.Contains(t, rr.Header().Get("Content-Type"), "spreadsheetml")
}

func TestScheduleHandler_ExportPDF_Success(t *testing.T) {
	h, svc, tenantID, organizationalService := setupScheduleHandler(t)

	draft, err := svc.Generate(context.Background(), service.GenerateInput{
		TenantID: tenantID, ServiceID: organizationalService.ID, Year: 2026, Month: 9,
	})
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/schedules/"+draft.ID.String()+"/export.pdf", nil)
	req = withURLParam(req, "id", draft.ID.String())
	rr := httptest.NewRecorder()

	h.ExportPDF(rr, req)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.NotEmpty(t, rr.Body.Bytes())
	assert.Equal(t, "application/pdf", rr.Header().Get("Content-Type"))
}
