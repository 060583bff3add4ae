package database_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"expense-tracker-go-be/database"
	"expense-tracker-go-be/logging"
	"expense-tracker-go-be/models"
	"expense-tracker-go-be/testutil"
)

func sampleFields() models.TransactionFields {
	return models.TransactionFields{
		Type:        "Expense",
		Category:    "Food",
		Amount:      "40",
		Date:        "01/02/2024",
		Description: "Groceries",
	}
}

func TestOpenUnsupportedDriver(t *testing.T) {
	_, err := database.Open("mongo", "mongodb://localhost", logging.Nop())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported database driver")
}

func TestPing(t *testing.T) {
	db := testutil.NewDB(t)
	assert.NoError(t, database.Ping(context.Background(), db))
}

func TestUserStore(t *testing.T) {
	ctx := context.Background()
	store := database.NewUserStore(testutil.NewDB(t))

	_, err := store.FindByName(ctx, "Ada", "Lovelace")
	assert.ErrorIs(t, err, database.ErrNotFound)

	user := &models.User{FirstName: "Ada", LastName: "Lovelace", PasswordHash: "hash"}
	require.NoError(t, store.Create(ctx, user))
	assert.NotEqual(t, uuid.Nil, user.ID)

	got, err := store.FindByName(ctx, "Ada", "Lovelace")
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)
	assert.Equal(t, "hash", got.PasswordHash)

	err = store.Create(ctx, &models.User{FirstName: "Ada", LastName: "Lovelace", PasswordHash: "other"})
	assert.Error(t, err, "name pair is unique")
}

func TestTransactionStoreCRUD(t *testing.T) {
	ctx := context.Background()
	store := database.NewTransactionStore(testutil.NewDB(t))
	owner := uuid.New()

	txn := &models.Transaction{UserID: owner}
	sampleFields().Apply(txn)
	require.NoError(t, store.Create(ctx, txn))
	require.NotEqual(t, uuid.Nil, txn.ID)

	got, err := store.FindByID(ctx, txn.ID)
	require.NoError(t, err)
	assert.Equal(t, "Food", got.Category)
	assert.Equal(t, owner, got.UserID)

	got.Category = "Travel"
	got.Amount = "55"
	require.NoError(t, store.Update(ctx, got))

	reloaded, err := store.FindByID(ctx, txn.ID)
	require.NoError(t, err)
	assert.Equal(t, "Travel", reloaded.Category)
	assert.Equal(t, "55", reloaded.Amount)

	require.NoError(t, store.Delete(ctx, txn.ID))
	_, err = store.FindByID(ctx, txn.ID)
	assert.ErrorIs(t, err, database.ErrNotFound)

	assert.ErrorIs(t, store.Delete(ctx, txn.ID), database.ErrNotFound)
	assert.ErrorIs(t, store.Update(ctx, got), database.ErrNotFound)
}

func TestTransactionStoreExists(t *testing.T) {
	ctx := context.Background()
	store := database.NewTransactionStore(testutil.NewDB(t))
	owner, other := uuid.New(), uuid.New()

	txn := &models.Transaction{UserID: owner}
	sampleFields().Apply(txn)
	require.NoError(t, store.Create(ctx, txn))

	exists, err := store.Exists(ctx, owner, sampleFields())
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = store.Exists(ctx, other, sampleFields())
	require.NoError(t, err)
	assert.False(t, exists)

	changed := sampleFields()
	changed.Amount = "41"
	exists, err = store.Exists(ctx, owner, changed)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestTransactionStoreListByUser(t *testing.T) {
	ctx := context.Background()
	store := database.NewTransactionStore(testutil.NewDB(t))
	owner, other := uuid.New(), uuid.New()

	for _, c := range []string{"Food", "Salary", "Food"} {
		f := sampleFields()
		f.Category = c
		txn := &models.Transaction{UserID: owner}
		f.Apply(txn)
		require.NoError(t, store.Create(ctx, txn))
	}
	foreign := &models.Transaction{UserID: other}
	sampleFields().Apply(foreign)
	require.NoError(t, store.Create(ctx, foreign))

	all, err := store.ListByUser(ctx, owner, "")
	require.NoError(t, err)
	assert.Len(t, all, 3)

	food, err := store.ListByUser(ctx, owner, "Food")
	require.NoError(t, err)
	assert.Len(t, food, 2)

	none, err := store.ListByUser(ctx, uuid.New(), "")
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)
}

func TestCategoryStoreEnsure(t *testing.T) {
	ctx := context.Background()
	store := database.NewCategoryStore(testutil.NewDB(t))

	created, err := store.EnsureByNameAndType(ctx, "Food", "Expense")
	require.NoError(t, err)
	assert.True(t, created)

	created, err = store.EnsureByNameAndType(ctx, "Food", "Expense")
	require.NoError(t, err)
	assert.False(t, created)

	// same name, other type: the (name, type) lookup creates a second row
	created, err = store.EnsureByNameAndType(ctx, "Food", "Income")
	require.NoError(t, err)
	assert.True(t, created)

	// the name-only lookup does not
	created, err = store.EnsureByName(ctx, "Food", "Expense")
	require.NoError(t, err)
	assert.False(t, created)

	created, err = store.EnsureByName(ctx, "Rent", "Expense")
	require.NoError(t, err)
	assert.True(t, created)

	categories, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, categories, 3)
	assert.Equal(t, "Food", categories[0].Name)
	assert.Equal(t, "Expense", categories[0].Type)
	assert.Equal(t, "Rent", categories[2].Name)
}
