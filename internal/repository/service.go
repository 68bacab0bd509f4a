package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/nightshift-health/shiftplan/internal/model"
)

var ErrServiceNotFound = errors.New("service not found")

// ServiceRepository handles organizational-service data access.
type ServiceRepository struct {
	db *DB
}

// NewServiceRepository creates a new service repository.
func NewServiceRepository(db *DB) *ServiceRepository {
	return &ServiceRepository{db: db}
}

// Create creates a new service.
func (r *ServiceRepository) Create(ctx context.Context, service *model.Service) error {
	return r.db.GORM.WithContext(ctx).
		Select("TenantID", "Name", "EnableNightShift", "Staffing", "TargetCompleteWeekendsOff",
			"RulesOverride", "IsActive").
		Create(service).Error
}

// GetByID retrieves a service by ID.
func (r *ServiceRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Service, error) {
	var service model.Service
	err := r.db.GORM.WithContext(ctx).First(&service, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrServiceNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get service: %w", err)
	}
	return &service, nil
}

// Update updates a service.
func (r *ServiceRepository) Update(ctx context.Context, service *model.Service) error {
	return r.db.GORM.WithContext(ctx).Save(service).Error
}

// Delete deletes a service by ID.
func (r *ServiceRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.GORM.WithContext(ctx).Delete(&model.Service{}, "id = ?", id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete service: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrServiceNotFound
	}
	return nil
}

// ListActiveByTenant retrieves every active service for a tenant, the set the
// cron daemon (internal/cronjob) walks each run.
func (r *ServiceRepository) ListActiveByTenant(ctx context.Context, tenantID uuid.UUID) ([]model.Service, error) {
	var services []model.Service
	err := r.db.GORM.WithContext(ctx).
		Where("tenant_id = ? AND is_active = ?", tenantID, true).
		Order("name ASC").
		Find(&services).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list services by tenant: %w", err)
	}
	return services, nil
}

// ListDistinctTenantIDs retrieves every tenant ID that owns at least one
// active service. There is no standalone Tenant table in this schema
// (tenancy is carried on each entity, never consulted by the engine itself);
// the cron daemon uses this to discover which tenants to sweep each run.
func (r *ServiceRepository) ListDistinctTenantIDs(ctx context.Context) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := r.db.GORM.WithContext(ctx).
		Model(&model.Service{}).
		Where("is_active = ?", true).
		Distinct("tenant_id").
		Pluck("tenant_id", &ids).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list distinct tenant IDs: %w", err)
	}
	return ids, nil
}
