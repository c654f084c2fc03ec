package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"dcreamy/internal/domain"
	"dcreamy/internal/testutil"
)

func TestDeductAgainstDatabase(t *testing.T) {
	db := testutil.SetupTestDB(t)
	testutil.TruncateTables(t, db, "stock_items")

	repo := NewMySQLStockItemRepository(db)
	ctx := context.Background()

	item := domain.StockItem{
		WarungID: "warung-1",
		Name:     "Cup",
		Quantity: 10,
		Unit:     "pcs",
		IsActive: true,
	}
	assert.NoError(t, repo.Insert(ctx, &item))

	applied, err := repo.Deduct(ctx, item.ID, 4)
	assert.NoError(t, err)
	assert.True(t, applied)

	got, err := repo.FindByID(ctx, item.ID)
	assert.NoError(t, err)
	assert.Equal(t, 6, got.Quantity)

	// Short by one: the row must not change.
	applied, err = repo.Deduct(ctx, item.ID, 7)
	assert.NoError(t, err)
	assert.False(t, applied)

	got, err = repo.FindByID(ctx, item.ID)
	assert.NoError(t, err)
	assert.Equal(t, 6, got.Quantity)

	assert.NoError(t, repo.FloorToZero(ctx, item.ID))

	got, err = repo.FindByID(ctx, item.ID)
	assert.NoError(t, err)
	assert.Equal(t, 0, got.Quantity)
}

func TestDeductMissingItem(t *testing.T) {
	db := testutil.SetupTestDB(t)
	testutil.TruncateTables(t, db, "stock_items")

	repo := NewMySQLStockItemRepository(db)

	applied, err := repo.Deduct(context.Background(), "does-not-exist", 1)
	assert.NoError(t, err)
	assert.False(t, applied)
}

func TestRestockAccumulates(t *testing.T) {
	db := testutil.SetupTestDB(t)
	testutil.TruncateTables(t, db, "stock_items")

	repo := NewMySQLStockItemRepository(db)
	ctx := context.Background()

	item := domain.StockItem{WarungID: "warung-1", Name: "Gas", Quantity: 1, Unit: "tabung", IsActive: true}
	assert.NoError(t, repo.Insert(ctx, &item))

	assert.NoError(t, repo.AddQuantity(ctx, item.ID, 2))

	got, err := repo.FindByID(ctx, item.ID)
	assert.NoError(t, err)
	assert.Equal(t, 3, got.Quantity)
}
