package repository

import (
	"context"
	"testing"
	"time"

	"github.com/alexanderramin/mainstay/internal/domain"
	"github.com/alexanderramin/mainstay/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEquipmentRepo_CreateAndGet(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := NewSQLiteEquipmentRepo(database)
	ctx := context.Background()

	hours := 120.5
	serviceDate := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)
	e := testutil.NewTestEquipment("Compressor 3",
		testutil.WithInterval(500, domain.UnitHours),
		testutil.WithLastService(serviceDate, &hours),
		testutil.WithCurrentHours(300),
	)
	require.NoError(t, repo.Create(ctx, e))

	got, err := repo.GetByID(ctx, e.ID)
	require.NoError(t, err)
	assert.Equal(t, e.SerialNumber, got.SerialNumber)
	assert.Equal(t, domain.EquipmentOperational, got.Status)
	require.NotNil(t, got.Interval)
	assert.Equal(t, 500.0, got.Interval.Value)
	assert.Equal(t, domain.UnitHours, got.Interval.Unit)
	require.NotNil(t, got.LastService)
	assert.True(t, got.LastService.Date.Equal(serviceDate))
	require.NotNil(t, got.LastService.HoursAtService)
	assert.Equal(t, 120.5, *got.LastService.HoursAtService)
	require.NotNil(t, got.CurrentHours)
	assert.Equal(t, 300.0, *got.CurrentHours)
}

func TestEquipmentRepo_NullableFieldsRoundTrip(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := NewSQLiteEquipmentRepo(database)
	ctx := context.Background()

	e := testutil.NewTestEquipment("Bare press")
	require.NoError(t, repo.Create(ctx, e))

	got, err := repo.GetByID(ctx, e.ID)
	require.NoError(t, err)
	assert.Nil(t, got.Interval)
	assert.Nil(t, got.LastService)
	assert.Nil(t, got.CurrentHours)
	assert.Nil(t, got.NextMaintenanceDate)
}

func TestEquipmentRepo_GetBySerial(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := NewSQLiteEquipmentRepo(database)
	ctx := context.Background()

	e := testutil.NewTestEquipment("Lathe")
	require.NoError(t, repo.Create(ctx, e))

	got, err := repo.GetBySerial(ctx, e.SerialNumber)
	require.NoError(t, err)
	assert.Equal(t, e.ID, got.ID)

	_, err = repo.GetBySerial(ctx, "SN-NOPE")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestEquipmentRepo_DuplicateSerialRejected(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := NewSQLiteEquipmentRepo(database)
	ctx := context.Background()

	a := testutil.NewTestEquipment("First")
	require.NoError(t, repo.Create(ctx, a))

	b := testutil.NewTestEquipment("Second")
	b.SerialNumber = a.SerialNumber
	assert.Error(t, repo.Create(ctx, b))
}

func TestEquipmentRepo_ListWithPolicy(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := NewSQLiteEquipmentRepo(database)
	ctx := context.Background()

	withPolicy := testutil.NewTestEquipment("Has policy",
		testutil.WithInterval(30, domain.UnitDays))
	noPolicy := testutil.NewTestEquipment("No policy")
	decommissioned := testutil.NewTestEquipment("Retired",
		testutil.WithInterval(30, domain.UnitDays),
		testutil.WithEquipmentStatus(domain.EquipmentDecommissioned))
	for _, e := range []*domain.Equipment{withPolicy, noPolicy, decommissioned} {
		require.NoError(t, repo.Create(ctx, e))
	}

	items, err := repo.ListWithPolicy(ctx)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, withPolicy.ID, items[0].ID)
}

func TestEquipmentRepo_Update(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := NewSQLiteEquipmentRepo(database)
	ctx := context.Background()

	e := testutil.NewTestEquipment("Forklift")
	require.NoError(t, repo.Create(ctx, e))

	nextDue := time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC)
	hours := 42.0
	e.Status = domain.EquipmentMaintenance
	e.Interval = &domain.MaintenanceInterval{Value: 3, Unit: domain.UnitMonths}
	e.LastService = &domain.LastService{Date: time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC), HoursAtService: &hours}
	e.NextMaintenanceDate = &nextDue
	require.NoError(t, repo.Update(ctx, e))

	got, err := repo.GetByID(ctx, e.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.EquipmentMaintenance, got.Status)
	require.NotNil(t, got.Interval)
	assert.Equal(t, domain.UnitMonths, got.Interval.Unit)
	require.NotNil(t, got.NextMaintenanceDate)
	assert.True(t, got.NextMaintenanceDate.Equal(nextDue))
}

func TestEquipmentRepo_Delete(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := NewSQLiteEquipmentRepo(database)
	ctx := context.Background()

	e := testutil.NewTestEquipment("Scrapped")
	require.NoError(t, repo.Create(ctx, e))
	require.NoError(t, repo.Delete(ctx, e.ID))

	_, err := repo.GetByID(ctx, e.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}
