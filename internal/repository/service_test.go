package repository_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nightshift-health/shiftplan/internal/model"
	"github.com/nightshift-health/shiftplan/internal/repository"
	"github.com/nightshift-health/shiftplan/internal/testutil"
)

func TestServiceRepository_Create(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewServiceRepository(db)
	ctx := context.Background()

	service := &model.Service{TenantID: uuid.New(), Name: "ICU", IsActive: true}
	require.NoError(t, repo.Create(ctx, service))
	assert.NotEqual(t, uuid.Nil, service.ID)
}

func TestServiceRepository_GetByID_NotFound(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewServiceRepository(db)

	_, err := repo.GetByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, repository.ErrServiceNotFound)
}

func TestServiceRepository_ListActiveByTenant_ExcludesInactiveAndOtherTenants(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewServiceRepository(db)
	ctx := context.Background()

	tenantID := uuid.New()
	otherTenantID := uuid.New()

	active := &model.Service{TenantID: tenantID, Name: "ICU", IsActive: true}
	inactive := &model.Service{TenantID: tenantID, Name: "ER", IsActive: false}
	other := &model.Service{TenantID: otherTenantID, Name: "Ward 3", IsActive: true}

	require.NoError(t, repo.Create(ctx, active))
	require.NoError(t, repo.Create(ctx, inactive))
	require.NoError(t, repo.Create(ctx, other))

	services, err := repo.ListActiveByTenant(ctx, tenantID)
	require.NoError(t, err)
	require.Len(t, services, 1)
	assert.Equal(t, "ICU", services[0].Name)
}

func TestServiceRepository_ListDistinctTenantIDs_OnlyCountsActiveServices(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewServiceRepository(db)
	ctx := context.Background()

	tenantWithActive := uuid.New()
	tenantWithOnlyInactive := uuid.New()

	require.NoError(t, repo.Create(ctx, &model.Service{TenantID: tenantWithActive, Name: "ICU", IsActive: true}))
	require.NoError(t, repo.Create(ctx, &model.Service{TenantID: tenantWithOnlyInactive, Name: "ER", IsActive: false}))

	ids, err := repo.ListDistinctTenantIDs(ctx)
	require.NoError(t, err)
	assert.Contains(t, ids, tenantWithActive)
	assert.NotContains(t, ids, tenantWithOnlyInactive)
}

func TestServiceRepository_Update(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewServiceRepository(db)
	ctx := context.Background()

	service := &model.Service{TenantID: uuid.New(), Name: "ICU", IsActive: true}
	require.NoError(t, repo.Create(ctx, service))

	service.Name = "ICU North"
	require.NoError(t, repo.Update(ctx, service))

	fetched, err := repo.GetByID(ctx, service.ID)
	require.NoError(t, err)
	assert.Equal(t, "ICU North", fetched.Name)
}

func TestServiceRepository_Delete(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewServiceRepository(db)
	ctx := context.Background()

	service := &model.Service{TenantID: uuid.New(), Name: "ICU", IsActive: true}
	require.NoError(t, repo.Create(ctx, service))

	require.NoError(t, repo.Delete(ctx, service.ID))
	_, err := repo.GetByID(ctx, service.ID)
	assert.ErrorIs(t, err, repository.ErrServiceNotFound)
}
