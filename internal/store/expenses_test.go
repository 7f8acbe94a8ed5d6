package store_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SamHez/bodymax-gym/internal/domain"
	"github.com/SamHez/bodymax-gym/internal/store"
)

func TestExpensesAddPrependsServerEcho(t *testing.T) {
	env := newTestEnv(t)
	branch := env.Store.Branches()[0]

	exp := &store.Expenses{API: env.Client, Logger: env.Logger}
	exp.Load(context.Background())
	require.Empty(t, exp.Expenses())

	first, err := exp.Add(context.Background(), store.ExpenseDraft{
		Amount: 5000, Category: "Rent", BranchID: branch.ID,
	})
	require.NoError(t, err)
	second, err := exp.Add(context.Background(), store.ExpenseDraft{
		Amount: 2000, Category: "Utilities", Description: "Water", BranchID: branch.ID,
	})
	require.NoError(t, err)

	got := exp.Expenses()
	require.Len(t, got, 2)
	assert.Equal(t, second.ID, got[0].ID, "newest first")
	assert.Equal(t, first.ID, got[1].ID)

	// Server-assigned fields come back on the echo.
	assert.NotEmpty(t, first.ID)
	assert.NotEmpty(t, first.RecordedBy)
	// Defaults applied client-side.
	assert.Equal(t, "Miscellaneous", got[1].Description)
	assert.Equal(t, domain.PayCash, got[1].Method)
}

func TestExpensesAddValidatesBeforeNetwork(t *testing.T) {
	env := newTestEnv(t)

	exp := &store.Expenses{API: env.Client, Logger: env.Logger}

	_, err := exp.Add(context.Background(), store.ExpenseDraft{Amount: 0, Category: "Rent"})
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "amount", verr.Field)

	_, err = exp.Add(context.Background(), store.ExpenseDraft{Amount: 100, Category: ""})
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "category", verr.Field)

	assert.Empty(t, exp.Expenses())
}

func TestExpensesAddSurfacesServerMessage(t *testing.T) {
	env := newTestEnv(t)

	exp := &store.Expenses{API: env.Client, Logger: env.Logger}
	_, err := exp.Add(context.Background(), store.ExpenseDraft{
		Amount: 100, Category: "Rent", BranchID: "no-such-branch",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown branch")
	assert.Empty(t, exp.Expenses(), "failed create leaves the ledger untouched")
}

func TestExpensesDelete(t *testing.T) {
	env := newTestEnv(t)
	branch := env.Store.Branches()[0]

	exp := &store.Expenses{API: env.Client, Logger: env.Logger}
	created, err := exp.Add(context.Background(), store.ExpenseDraft{
		Amount: 5000, Category: "Rent", BranchID: branch.ID,
	})
	require.NoError(t, err)

	require.NoError(t, exp.Delete(context.Background(), created.ID))
	assert.Empty(t, exp.Expenses())

	err = exp.Delete(context.Background(), created.ID)
	require.Error(t, err, "double delete surfaces the server's 404")
}

func TestExpensesBranchScope(t *testing.T) {
	env := newTestEnv(t)
	branchA := env.Store.Branches()[0]
	branchB := env.Store.Branches()[1]

	_, err := env.Store.CreateExpense("", domain.Expense{BranchID: branchA.ID, Amount: 100, Category: "Rent"})
	require.NoError(t, err)
	_, err = env.Store.CreateExpense("", domain.Expense{BranchID: branchB.ID, Amount: 200, Category: "Other"})
	require.NoError(t, err)

	exp := &store.Expenses{API: env.Client, Logger: env.Logger}
	exp.SetBranch(context.Background(), branchB.ID)

	got := exp.Expenses()
	require.Len(t, got, 1)
	assert.Equal(t, int64(200), got[0].Amount)
}
