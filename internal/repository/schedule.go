package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/nightshift-health/shiftplan/internal/model"
)

var (
	ErrScheduleNotFound    = errors.New("monthly schedule not found")
	ErrNoDraftToPublish    = errors.New("no draft schedule exists for this period")
	ErrAlreadyPublished    = errors.New("schedule draft has already been published")
)

// ScheduleRepository handles monthly schedule data access.
type ScheduleRepository struct {
	db *DB
}

// NewScheduleRepository creates a new schedule repository.
func NewScheduleRepository(db *DB) *ScheduleRepository {
	return &ScheduleRepository{db: db}
}

// CreateDraft persists a freshly generated schedule as a draft. A new
// generation run for the same period always inserts a new draft row rather
// than overwriting one in place, so prior drafts remain inspectable; publishing
// one draft does not change the status of the others.
func (r *ScheduleRepository) CreateDraft(ctx context.Context, schedule *model.MonthlySchedule) error {
	schedule.Status = model.StatusDraft
	if schedule.Version == 0 {
		schedule.Version = 1
	}
	return r.db.GORM.WithContext(ctx).
		Select("TenantID", "ServiceID", "ServiceName", "Year", "Month", "Shifts", "Score",
			"Breakdown", "Violations", "SummaryText", "Status", "Version").
		Create(schedule).Error
}

// GetByID retrieves a schedule by ID.
func (r *ScheduleRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.MonthlySchedule, error) {
	var schedule model.MonthlySchedule
	err := r.db.GORM.WithContext(ctx).First(&schedule, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrScheduleNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get schedule: %w", err)
	}
	return &schedule, nil
}

// GetPublished retrieves the currently published schedule for a period, if any.
func (r *ScheduleRepository) GetPublished(ctx context.Context, tenantID, serviceID uuid.UUID, year, month int) (*model.MonthlySchedule, error) {
	var schedule model.MonthlySchedule
	err := r.db.GORM.WithContext(ctx).
		Where("tenant_id = ? AND service_id = ? AND year = ? AND month = ? AND status = ?",
			tenantID, serviceID, year, month, model.StatusPublished).
		First(&schedule).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get published schedule: %w", err)
	}
	return &schedule, nil
}

// ListByPeriod retrieves every draft/published/archived row for a period,
// highest version first. Rows with equal versions (every unpublished draft
// is version 1) come back in no defined order.
func (r *ScheduleRepository) ListByPeriod(ctx context.Context, tenantID, serviceID uuid.UUID, year, month int) ([]model.MonthlySchedule, error) {
	var schedules []model.MonthlySchedule
	err := r.db.GORM.WithContext(ctx).
		Where("tenant_id = ? AND service_id = ? AND year = ? AND month = ?", tenantID, serviceID, year, month).
		Order("version DESC").
		Find(&schedules).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list schedules by period: %w", err)
	}
	return schedules, nil
}

// Publish atomically archives any currently published row for the same
// period and promotes draftID to published, bumping its version past the
// archived row's (SPEC_FULL.md §6: "at most one published row per period").
func (r *ScheduleRepository) Publish(ctx context.Context, draftID uuid.UUID) (*model.MonthlySchedule, error) {
	var published model.MonthlySchedule

	err := r.db.WithTransaction(ctx, func(tx *gorm.DB) error {
		var draft model.MonthlySchedule
		if err := tx.First(&draft, "id = ?", draftID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNoDraftToPublish
			}
			return fmt.Errorf("failed to load draft: %w", err)
		}
		if draft.Status != model.StatusDraft {
			return ErrAlreadyPublished
		}

		var previous model.MonthlySchedule
		err := tx.Where("tenant_id = ? AND service_id = ? AND year = ? AND month = ? AND status = ?",
			draft.TenantID, draft.ServiceID, draft.Year, draft.Month, model.StatusPublished).
			First(&previous).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			// no previously published row, nothing to archive
		case err != nil:
			return fmt.Errorf("failed to look up previously published schedule: %w", err)
		default:
			if err := tx.Model(&previous).Update("status", model.StatusArchived).Error; err != nil {
				return fmt.Errorf("failed to archive previous schedule: %w", err)
			}
			draft.Version = previous.Version + 1
		}

		draft.Status = model.StatusPublished
		if err := tx.Save(&draft).Error; err != nil {
			return fmt.Errorf("failed to publish draft: %w", err)
		}
		published = draft
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &published, nil
}
