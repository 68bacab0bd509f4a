package service

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/nightshift-health/shiftplan/internal/model"
	"github.com/nightshift-health/shiftplan/internal/scheduling"
)

var ErrServiceNotFound = errors.New("service not found")

// scheduleRepository defines the monthly-schedule persistence operations the
// service layer needs.
type scheduleRepository interface {
	CreateDraft(ctx context.Context, schedule *model.MonthlySchedule) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.MonthlySchedule, error)
	GetPublished(ctx context.Context, tenantID, serviceID uuid.UUID, year, month int) (*model.MonthlySchedule, error)
	ListByPeriod(ctx context.Context, tenantID, serviceID uuid.UUID, year, month int) ([]model.MonthlySchedule, error)
	Publish(ctx context.Context, draftID uuid.UUID) (*model.MonthlySchedule, error)
}

// employeeRepository defines the roster lookup the generator runs against.
type employeeRepository interface {
	ListActiveByService(ctx context.Context, serviceID uuid.UUID) ([]model.Employee, error)
}

// serviceRepository defines the organizational-service lookup.
type serviceRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*model.Service, error)
}

// holidayRepository defines the holiday-calendar lookup.
type holidayRepository interface {
	ListByYear(ctx context.Context, tenantID uuid.UUID, year int) ([]model.Holiday, error)
}

// generationLock is the distributed mutual-exclusion dependency, satisfied
// by *GenerationLock; an interface here keeps this file's tests Redis-free.
type generationLock interface {
	Acquire(ctx context.Context, tenantID, serviceID uuid.UUID, year, month int, ttl time.Duration) (release func(context.Context) error, err error)
}

// ScheduleService orchestrates one Generate call end to end: gather inputs,
// acquire the distributed lock, run the pure engine, record observability,
// and persist the result as a new draft.
type ScheduleService struct {
	schedules scheduleRepository
	employees employeeRepository
	services  serviceRepository
	holidays  holidayRepository
	lock      generationLock
	lockTTL   time.Duration
	observer  scheduling.Observer
}

// NewScheduleService wires a ScheduleService. observer may be nil.
func NewScheduleService(
	schedules scheduleRepository,
	employees employeeRepository,
	services serviceRepository,
	holidays holidayRepository,
	lock generationLock,
	lockTTL time.Duration,
	observer scheduling.Observer,
) *ScheduleService {
	return &ScheduleService{
		schedules: schedules,
		employees: employees,
		services:  services,
		holidays:  holidays,
		lock:      lock,
		lockTTL:   lockTTL,
		observer:  observer,
	}
}

// GenerateInput is the service-layer request to produce a new draft schedule.
type GenerateInput struct {
	TenantID  uuid.UUID
	ServiceID uuid.UUID
	Year      int
	Month     int
	RandSeed  *int64 // nil means "derive a default seed from year/month"

	// TargetScore and RestartBudget, when non-zero, override the default
	// restart-loop parameters of scheduling.DefaultRulesConfig for this one
	// call (an operator running schedulectl generate --target-score/--attempts).
	// A Service's RulesOverride carries neither parameter.
	TargetScore   float64
	RestartBudget int
}

// Generate acquires the distributed lock for (service, year, month), loads
// the service's roster/rules/holiday calendar and the previous month's
// published schedule for history seeding, runs the restart-loop engine, and
// persists the result as a new draft.
func (s *ScheduleService) Generate(ctx context.Context, input GenerateInput) (*model.MonthlySchedule, error) {
	release, err := s.lock.Acquire(ctx, input.TenantID, input.ServiceID, input.Year, input.Month, s.lockTTL)
	if err != nil {
		return nil, err
	}
	defer func() {
		releaseCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = release(releaseCtx)
	}()

	svc, err := s.services.GetByID(ctx, input.ServiceID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrServiceNotFound, err)
	}

	employees, err := s.employees.ListActiveByService(ctx, input.ServiceID)
	if err != nil {
		return nil, fmt.Errorf("failed to list roster: %w", err)
	}

	holidayRows, err := s.holidays.ListByYear(ctx, input.TenantID, input.Year)
	if err != nil {
		return nil, fmt.Errorf("failed to load holiday calendar: %w", err)
	}
	if input.Month == 12 {
		nextYearRows, err := s.holidays.ListByYear(ctx, input.TenantID, input.Year+1)
		if err == nil {
			holidayRows = append(holidayRows, nextYearRows...)
		}
	}
	holidays := model.NewHolidaySet(holidayRows)

	prevShifts := s.previousMonthTail(ctx, input)

	rules := scheduling.DefaultRulesConfig().WithOverride(svc.RulesOverride.Data)
	if input.TargetScore != 0 {
		rules.TargetScore = input.TargetScore
	}
	if input.RestartBudget != 0 {
		rules.RestartBudget = input.RestartBudget
	}

	genInput := scheduling.GenerateInput{
		Service:    *svc,
		Employees:  employees,
		Holidays:   holidays,
		Year:       input.Year,
		Month:      input.Month,
		PrevShifts: prevShifts,
		Rules:      rules,
	}
	if input.RandSeed != nil {
		genInput.RandSource = newSeededSource(*input.RandSeed)
	}

	result, err := scheduling.Generate(ctx, genInput, s.observer)
	if err != nil {
		return nil, fmt.Errorf("generation failed: %w", err)
	}

	draft := &model.MonthlySchedule{
		TenantID:    input.TenantID,
		ServiceID:   input.ServiceID,
		ServiceName: svc.Name,
		Year:        input.Year,
		Month:       input.Month,
		Shifts:      datatypes.JSONSlice[model.AIShift](result.Shifts),
		Score:       result.Score,
		Breakdown:   datatypes.NewJSONType(result.Breakdown),
		Violations:  datatypes.JSONSlice[model.ScheduleViolation](result.Violations),
		SummaryText: result.SummaryText,
	}

	if err := s.schedules.CreateDraft(ctx, draft); err != nil {
		return nil, fmt.Errorf("failed to persist draft: %w", err)
	}
	return draft, nil
}

// previousMonthTail finds the lookback window's seed data: the previously
// published schedule for the month immediately before input.Year/input.Month,
// if one exists. A missing previous month is not an error; history seeding
// then treats every lookback day as rest (spec.md §4.3).
func (s *ScheduleService) previousMonthTail(ctx context.Context, input GenerateInput) []model.AIShift {
	prevYear, prevMonth := input.Year, input.Month-1
	if prevMonth == 0 {
		prevMonth = 12
		prevYear--
	}
	prev, err := s.schedules.GetPublished(ctx, input.TenantID, input.ServiceID, prevYear, prevMonth)
	if err != nil || prev == nil {
		return nil
	}
	return []model.AIShift(prev.Shifts)
}

// Publish promotes a draft schedule to published, archiving any previously
// published row for the same period.
func (s *ScheduleService) Publish(ctx context.Context, draftID uuid.UUID) (*model.MonthlySchedule, error) {
	return s.schedules.Publish(ctx, draftID)
}

// GetByID retrieves a schedule by ID regardless of status.
func (s *ScheduleService) GetByID(ctx context.Context, id uuid.UUID) (*model.MonthlySchedule, error) {
	return s.schedules.GetByID(ctx, id)
}

// ListByPeriod retrieves every draft/published/archived row for a period.
func (s *ScheduleService) ListByPeriod(ctx context.Context, tenantID, serviceID uuid.UUID, year, month int) ([]model.MonthlySchedule, error) {
	return s.schedules.ListByPeriod(ctx, tenantID, serviceID, year, month)
}

func newSeededSource(seed int64) rand.Source {
	return rand.NewSource(seed)
}
