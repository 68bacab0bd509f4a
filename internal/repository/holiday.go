package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/nightshift-health/shiftplan/internal/model"
)

var ErrHolidayNotFound = errors.New("holiday not found")

// HolidayRepository handles holiday data access.
type HolidayRepository struct {
	db *DB
}

// NewHolidayRepository creates a new holiday repository.
func NewHolidayRepository(db *DB) *HolidayRepository {
	return &HolidayRepository{db: db}
}

// Create creates a new holiday.
func (r *HolidayRepository) Create(ctx context.Context, holiday *model.Holiday) error {
	return r.db.GORM.WithContext(ctx).
		Select("TenantID", "HolidayDate", "Name").
		Create(holiday).Error
}

// GetByID retrieves a holiday by ID.
func (r *HolidayRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Holiday, error) {
	var holiday model.Holiday
	err := r.db.GORM.WithContext(ctx).First(&holiday, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrHolidayNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get holiday: %w", err)
	}
	return &holiday, nil
}

// Delete deletes a holiday by ID.
func (r *HolidayRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.GORM.WithContext(ctx).Delete(&model.Holiday{}, "id = ?", id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete holiday: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrHolidayNotFound
	}
	return nil
}

// ListByYear retrieves every holiday for a tenant in a specific year, ordered
// by date. The generator consumes this via model.NewHolidaySet.
func (r *HolidayRepository) ListByYear(ctx context.Context, tenantID uuid.UUID, year int) ([]model.Holiday, error) {
	var holidays []model.Holiday
	err := r.db.GORM.WithContext(ctx).
		Where("tenant_id = ? AND EXTRACT(YEAR FROM holiday_date) = ?", tenantID, year).
		Order("holiday_date ASC").
		Find(&holidays).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list holidays by year: %w", err)
	}
	return holidays, nil
}

// Upsert creates or updates a holiday by (tenant, date), used to seed a
// tenant's calendar from internal/holidaycal without duplicating rows on
// repeated seeding runs.
func (r *HolidayRepository) Upsert(ctx context.Context, holiday *model.Holiday) error {
	var existing model.Holiday
	err := r.db.GORM.WithContext(ctx).
		Where("tenant_id = ? AND holiday_date = ?", holiday.TenantID, holiday.HolidayDate).
		First(&existing).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return r.Create(ctx, holiday)
	}
	if err != nil {
		return fmt.Errorf("failed to look up existing holiday: %w", err)
	}

	existing.Name = holiday.Name
	return r.db.GORM.WithContext(ctx).Save(&existing).Error
}

// SeedYear upserts every Definition from internal/holidaycal for a tenant and
// year in one pass.
func (r *HolidayRepository) SeedYear(ctx context.Context, tenantID uuid.UUID, defs []HolidayDefinition) error {
	for _, d := range defs {
		h := model.Holiday{
			TenantID:    tenantID,
			HolidayDate: d.Date,
			Name:        d.Name,
		}
		if err := r.Upsert(ctx, &h); err != nil {
			return fmt.Errorf("failed to seed holiday %s: %w", d.Name, err)
		}
	}
	return nil
}

// HolidayDefinition is the repository-facing shape of internal/holidaycal.
// Definition, kept separate so this package never imports a calendar-math
// package for a single conversion struct.
type HolidayDefinition struct {
	Date time.Time
	Name string
}
