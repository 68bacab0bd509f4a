package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"

	"github.com/nightshift-health/shiftplan/internal/model"
	"github.com/nightshift-health/shiftplan/internal/repository"
	"github.com/nightshift-health/shiftplan/internal/service"
	"github.com/nightshift-health/shiftplan/internal/testutil"
)

// noopLock stands in for the Redis-backed GenerationLock in unit tests; the
// teacher's test harness has no Redis instance, only a test Postgres DB
// (internal/testutil), so lock acquisition is faked here rather than skipped.
type noopLock struct {
	acquireErr error
}

func (l *noopLock) Acquire(ctx context.Context, tenantID, serviceID uuid.UUID, year, month int, ttl time.Duration) (func(context.Context) error, error) {
	if l.acquireErr != nil {
		return nil, l.acquireErr
	}
	return func(context.Context) error { return nil }, nil
}

func createTestServiceForSchedule(t *testing.T, db *repository.DB, tenantID uuid.UUID) *model.Service {
	t.Helper()
	repo := repository.NewServiceRepository(db)
	svc := &model.Service{
		TenantID:         tenantID,
		Name:             "ICU",
		EnableNightShift: false,
		Staffing: datatypes.NewJSONType(model.StaffingTargets{
			Morning:   model.StaffingTarget{Weekday: 1, WeekendHoliday: 1},
			Afternoon: model.StaffingTarget{Weekday: 1, WeekendHoliday: 1},
		}),
		TargetCompleteWeekendsOff: 1,
		IsActive:                  true,
	}
	require.NoError(t, repo.Create(context.Background(), svc))
	return svc
}

func createTestEmployeeForSchedule(t *testing.T, db *repository.DB, tenantID, serviceID uuid.UUID, name string) *model.Employee {
	t.Helper()
	repo := repository.NewEmployeeRepository(db)
	emp := &model.Employee{
		TenantID:    tenantID,
		ServiceID:   serviceID,
		DisplayName: name,
		WorkPattern: model.PatternStandardRotation,
		IsActive:    true,
	}
	require.NoError(t, repo.Create(context.Background(), emp))
	return emp
}

func newScheduleServiceUnderTest(db *repository.DB, lock *noopLock) *service.ScheduleService {
	return service.NewScheduleService(
		repository.NewScheduleRepository(db),
		repository.NewEmployeeRepository(db),
		repository.NewServiceRepository(db),
		repository.NewHolidayRepository(db),
		lock,
		5*time.Minute,
		nil,
	)
}

func TestScheduleService_Generate_PersistsADraft(t *testing.T) {
	db := testutil.SetupTestDB(t)
	tenantID := uuid.New()
	svc := createTestServiceForSchedule(t, db, tenantID)
	createTestEmployeeForSchedule(t, db, tenantID, svc.ID, "Alice")
	createTestEmployeeForSchedule(t, db, tenantID, svc.ID, "Bob")
	createTestEmployeeForSchedule(t, db, tenantID, svc.ID, "Carol")

	svcLayer := newScheduleServiceUnderTest(db, &noopLock{})

	draft, err := svcLayer.Generate(context.Background(), service.GenerateInput{
		TenantID:  tenantID,
		ServiceID: svc.ID,
		Year:      2026,
		Month:     3,
	})
	require.NoError(t, err)
	assert.Equal(t, model.StatusDraft, draft.Status)
	assert.Equal(t, 1, draft.Version)
	assert.NotEmpty(t, draft.Shifts)
}

func TestScheduleService_Generate_PropagatesLockContention(t *testing.T) {
	db := testutil.SetupTestDB(t)
	tenantID := uuid.New()
	svc := createTestServiceForSchedule(t, db, tenantID)
	createTestEmployeeForSchedule(t, db, tenantID, svc.ID, "Alice")

	svcLayer := newScheduleServiceUnderTest(db, &noopLock{acquireErr: service.ErrLockHeld})

	_, err := svcLayer.Generate(context.Background(), service.GenerateInput{
		TenantID:  tenantID,
		ServiceID: svc.ID,
		Year:      2026,
		Month:     3,
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, service.ErrLockHeld)
}

func TestScheduleService_Publish_ArchivesThePreviouslyPublishedRow(t *testing.T) {
	db := testutil.SetupTestDB(t)
	tenantID := uuid.New()
	svc := createTestServiceForSchedule(t, db, tenantID)
	createTestEmployeeForSchedule(t, db, tenantID, svc.ID, "Alice")
	createTestEmployeeForSchedule(t, db, tenantID, svc.ID, "Bob")

	svcLayer := newScheduleServiceUnderTest(db, &noopLock{})
	ctx := context.Background()

	firstDraft, err := svcLayer.Generate(ctx, service.GenerateInput{TenantID: tenantID, ServiceID: svc.ID, Year: 2026, Month: 4})
	require.NoError(t, err)
	firstPublished, err := svcLayer.Publish(ctx, firstDraft.ID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusPublished, firstPublished.Status)

	secondDraft, err := svcLayer.Generate(ctx, service.GenerateInput{TenantID: tenantID, ServiceID: svc.ID, Year: 2026, Month: 4})
	require.NoError(t, err)
	secondPublished, err := svcLayer.Publish(ctx, secondDraft.ID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusPublished, secondPublished.Status)
	assert.Greater(t, secondPublished.Version, firstPublished.Version)

	reloadedFirst, err := svcLayer.GetByID(ctx, firstDraft.ID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusArchived, reloadedFirst.Status)
}

func TestScheduleService_Generate_SeedsHistoryFromPreviousPublishedMonth(t *testing.T) {
	db := testutil.SetupTestDB(t)
	tenantID := uuid.New()
	svc := createTestServiceForSchedule(t, db, tenantID)
	createTestEmployeeForSchedule(t, db, tenantID, svc.ID, "Alice")
	createTestEmployeeForSchedule(t, db, tenantID, svc.ID, "Bob")
	createTestEmployeeForSchedule(t, db, tenantID, svc.ID, "Carol")

	svcLayer := newScheduleServiceUnderTest(db, &noopLock{})
	ctx := context.Background()

	marchDraft, err := svcLayer.Generate(ctx, service.GenerateInput{TenantID: tenantID, ServiceID: svc.ID, Year: 2026, Month: 3})
	require.NoError(t, err)
	_, err = svcLayer.Publish(ctx, marchDraft.ID)
	require.NoError(t, err)

	aprilDraft, err := svcLayer.Generate(ctx, service.GenerateInput{TenantID: tenantID, ServiceID: svc.ID, Year: 2026, Month: 4})
	require.NoError(t, err)
	assert.NotEmpty(t, aprilDraft.Shifts)
}
