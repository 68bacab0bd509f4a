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

func newDraftSchedule(tenantID, serviceID uuid.UUID, year, month int) *model.MonthlySchedule {
	return &model.MonthlySchedule{
		TenantID:    tenantID,
		ServiceID:   serviceID,
		ServiceName: "ICU",
		Year:        year,
		Month:       month,
		Score:       82.5,
	}
}

func TestScheduleRepository_CreateDraft_DefaultsStatusAndVersion(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewScheduleRepository(db)
	ctx := context.Background()

	schedule := newDraftSchedule(uuid.New(), uuid.New(), 2026, 8)
	require.NoError(t, repo.CreateDraft(ctx, schedule))

	assert.NotEqual(t, uuid.Nil, schedule.ID)
	assert.Equal(t, model.StatusDraft, schedule.Status)
	assert.Equal(t, 1, schedule.Version)
}

func TestScheduleRepository_GetByID_NotFound(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewScheduleRepository(db)

	_, err := repo.GetByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, repository.ErrScheduleNotFound)
}

func TestScheduleRepository_GetPublished_NilWhenNonePublished(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewScheduleRepository(db)
	ctx := context.Background()

	tenantID, serviceID := uuid.New(), uuid.New()
	require.NoError(t, repo.CreateDraft(ctx, newDraftSchedule(tenantID, serviceID, 2026, 8)))

	published, err := repo.GetPublished(ctx, tenantID, serviceID, 2026, 8)
	require.NoError(t, err)
	assert.Nil(t, published)
}

func TestScheduleRepository_ListByPeriod_NewestVersionFirst(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewScheduleRepository(db)
	ctx := context.Background()

	tenantID, serviceID := uuid.New(), uuid.New()

	first := newDraftSchedule(tenantID, serviceID, 2026, 8)
	require.NoError(t, repo.CreateDraft(ctx, first))
	published, err := repo.Publish(ctx, first.ID)
	require.NoError(t, err)

	second := newDraftSchedule(tenantID, serviceID, 2026, 8)
	require.NoError(t, repo.CreateDraft(ctx, second))

	schedules, err := repo.ListByPeriod(ctx, tenantID, serviceID, 2026, 8)
	require.NoError(t, err)
	require.Len(t, schedules, 2)
	assert.Equal(t, published.Version, schedules[0].Version)
	assert.Equal(t, second.ID, schedules[1].ID)
}

func TestScheduleRepository_Publish_PromotesDraftWhenNothingElsePublished(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewScheduleRepository(db)
	ctx := context.Background()

	tenantID, serviceID := uuid.New(), uuid.New()
	draft := newDraftSchedule(tenantID, serviceID, 2026, 9)
	require.NoError(t, repo.CreateDraft(ctx, draft))

	published, err := repo.Publish(ctx, draft.ID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusPublished, published.Status)
	assert.Equal(t, 1, published.Version)
}

func TestScheduleRepository_Publish_ArchivesThePreviouslyPublishedRowAndBumpsVersion(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewScheduleRepository(db)
	ctx := context.Background()

	tenantID, serviceID := uuid.New(), uuid.New()

	firstDraft := newDraftSchedule(tenantID, serviceID, 2026, 9)
	require.NoError(t, repo.CreateDraft(ctx, firstDraft))
	firstPublished, err := repo.Publish(ctx, firstDraft.ID)
	require.NoError(t, err)
	require.Equal(t, 1, firstPublished.Version)

	secondDraft := newDraftSchedule(tenantID, serviceID, 2026, 9)
	require.NoError(t, repo.CreateDraft(ctx, secondDraft))

	secondPublished, err := repo.Publish(ctx, secondDraft.ID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusPublished, secondPublished.Status)
	assert.Equal(t, 2, secondPublished.Version)

	archived, err := repo.GetByID(ctx, firstPublished.ID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusArchived, archived.Status)

	currentlyPublished, err := repo.GetPublished(ctx, tenantID, serviceID, 2026, 9)
	require.NoError(t, err)
	require.NotNil(t, currentlyPublished)
	assert.Equal(t, secondDraft.ID, currentlyPublished.ID)
}

func TestScheduleRepository_Publish_NoDraftToPublish(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewScheduleRepository(db)

	_, err := repo.Publish(context.Background(), uuid.New())
	assert.ErrorIs(t, err, repository.ErrNoDraftToPublish)
}

func TestScheduleRepository_Publish_AlreadyPublished(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewScheduleRepository(db)
	ctx := context.Background()

	draft := newDraftSchedule(uuid.New(), uuid.New(), 2026, 9)
	require.NoError(t, repo.CreateDraft(ctx, draft))

	_, err := repo.Publish(ctx, draft.ID)
	require.NoError(t, err)

	_, err = repo.Publish(ctx, draft.ID)
	assert.ErrorIs(t, err, repository.ErrAlreadyPublished)
}
