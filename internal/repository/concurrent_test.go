package repository

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"

	"github.com/alexanderramin/mainstay/internal/db"
	"github.com/alexanderramin/mainstay/internal/domain"
	"github.com/alexanderramin/mainstay/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Concurrency tests run against a file-backed database so connections in the
// pool share state.
func newFileDB(t *testing.T) *SQLiteInventoryRepo {
	t.Helper()
	database, err := db.OpenDB(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })
	return NewSQLiteInventoryRepo(database)
}

func TestInventoryRepo_ConcurrentAdjust_NeverNegative(t *testing.T) {
	repo := newFileDB(t)
	ctx := context.Background()

	item := testutil.NewTestInventoryItem("CONC-01", testutil.WithQuantity(5))
	require.NoError(t, repo.Create(ctx, item))

	// Two withdrawals of 4 against a stock of 5: exactly one can succeed.
	var wg sync.WaitGroup
	results := make([]error, 2)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, results[i] = repo.AdjustQuantity(ctx, item.ID, -4)
		}(i)
	}
	wg.Wait()

	var successes, shortages int
	for _, err := range results {
		var short *domain.InsufficientStockError
		switch {
		case err == nil:
			successes++
		case errors.As(err, &short):
			shortages++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	assert.Equal(t, 1, successes)
	assert.Equal(t, 1, shortages)

	got, err := repo.GetByID(ctx, item.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.QuantityOnHand)
}

func TestInventoryRepo_ConcurrentAdjust_ManyWriters(t *testing.T) {
	repo := newFileDB(t)
	ctx := context.Background()

	item := testutil.NewTestInventoryItem("CONC-02", testutil.WithQuantity(0))
	require.NoError(t, repo.Create(ctx, item))

	const writers = 10
	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := repo.AdjustQuantity(ctx, item.ID, 1)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	got, err := repo.GetByID(ctx, item.ID)
	require.NoError(t, err)
	assert.Equal(t, writers, got.QuantityOnHand, "no increment may be lost")
}

func TestInventoryRepo_ConcurrentAdjust_IndependentItems(t *testing.T) {
	repo := newFileDB(t)
	ctx := context.Background()

	a := testutil.NewTestInventoryItem("IND-A", testutil.WithQuantity(10))
	b := testutil.NewTestInventoryItem("IND-B", testutil.WithQuantity(10))
	require.NoError(t, repo.Create(ctx, a))
	require.NoError(t, repo.Create(ctx, b))

	var wg sync.WaitGroup
	for _, id := range []string{a.ID, b.ID} {
		wg.Add(1)
		go func(id string) {
			defer wg.Done()
			for i := 0; i < 5; i++ {
				_, err := repo.AdjustQuantity(ctx, id, -1)
				assert.NoError(t, err)
			}
		}(id)
	}
	wg.Wait()

	for _, id := range []string{a.ID, b.ID} {
		got, err := repo.GetByID(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, 5, got.QuantityOnHand)
	}
}
