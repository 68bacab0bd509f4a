package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/nightshift-health/shiftplan/internal/model"
)

var ErrEmployeeNotFound = errors.New("employee not found")

// EmployeeRepository handles employee roster data access.
type EmployeeRepository struct {
	db *DB
}

// NewEmployeeRepository creates a new employee repository.
func NewEmployeeRepository(db *DB) *EmployeeRepository {
	return &EmployeeRepository{db: db}
}

// Create creates a new employee.
func (r *EmployeeRepository) Create(ctx context.Context, employee *model.Employee) error {
	return r.db.GORM.WithContext(ctx).
		Select("TenantID", "ServiceID", "DisplayName", "WorkPattern", "PrefersWeekendWork",
			"FixedWeeklyJSON", "FixedAssignmentsRaw", "IsActive").
		Create(employee).Error
}

// GetByID retrieves an employee by ID.
func (r *EmployeeRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Employee, error) {
	var employee model.Employee
	err := r.db.GORM.WithContext(ctx).First(&employee, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrEmployeeNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get employee: %w", err)
	}
	return &employee, nil
}

// Update updates an employee.
func (r *EmployeeRepository) Update(ctx context.Context, employee *model.Employee) error {
	return r.db.GORM.WithContext(ctx).Save(employee).Error
}

// Delete deletes an employee by ID.
func (r *EmployeeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.GORM.WithContext(ctx).Delete(&model.Employee{}, "id = ?", id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete employee: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrEmployeeNotFound
	}
	return nil
}

// ListActiveByService retrieves every active employee on a service's roster,
// the roster the generator runs against for one Generate call.
func (r *EmployeeRepository) ListActiveByService(ctx context.Context, serviceID uuid.UUID) ([]model.Employee, error) {
	var employees []model.Employee
	err := r.db.GORM.WithContext(ctx).
		Where("service_id = ? AND is_active = ?", serviceID, true).
		Order("display_name ASC").
		Find(&employees).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list employees by service: %w", err)
	}
	return employees, nil
}
