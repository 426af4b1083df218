package account_test

import (
	"context"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pams-dev/pams/internal/fixtures"
	"github.com/pams-dev/pams/pkg/domain/ledger"
	"github.com/pams-dev/pams/pkg/dto"
	acctsvc "github.com/pams-dev/pams/pkg/service/account"
	"github.com/pams-dev/pams/pkg/service/balance"
	"github.com/pams-dev/pams/pkg/timeutil"
)

func newService() (*acctsvc.Service, *fixtures.MemoryUoW) {
	uow := fixtures.NewMemoryUoW()
	engine := balance.New(uow, slog.Default())
	return acctsvc.NewService(uow, engine, slog.Default()), uow
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestCreate_StartsAtZeroBalance(t *testing.T) {
	t.Parallel()
	svc, _ := newService()

	created, err := svc.Create(context.Background(), dto.AccountCreate{
		Code: "1102",
		Name: "Main Checking",
		Type: "ASSET",
	})
	require.NoError(t, err)
	assert.True(t, created.Balance.IsZero())
	assert.Nil(t, created.ParentID)
	assert.False(t, created.IsPortfolio)
}

func TestCreate_RejectsUnknownType(t *testing.T) {
	t.Parallel()
	svc, _ := newService()

	_, err := svc.Create(context.Background(), dto.AccountCreate{
		Code: "9999",
		Name: "Mystery",
		Type: "WEIRD",
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, ledger.ErrValidation)
}

func TestCreate_RejectsMissingParent(t *testing.T) {
	t.Parallel()
	svc, _ := newService()

	ghost := uuid.New()
	_, err := svc.Create(context.Background(), dto.AccountCreate{
		Code:     "1102",
		Name:     "Main Checking",
		Type:     "ASSET",
		ParentID: &ghost,
	})
	assert.ErrorIs(t, err, ledger.ErrAccountNotFound)
}

func TestCreate_RejectsDuplicateCode(t *testing.T) {
	t.Parallel()
	svc, uow := newService()
	uow.SeedAccount("1102", "Main Checking", ledger.AccountTypeAsset, nil, false)

	_, err := svc.Create(context.Background(), dto.AccountCreate{
		Code: "1102",
		Name: "Another",
		Type: "ASSET",
	})
	assert.ErrorIs(t, err, ledger.ErrDuplicateCode)
}

func TestGetByCode(t *testing.T) {
	t.Parallel()
	svc, uow := newService()
	seeded := uow.SeedAccount("3100", "Balance Adjustment", ledger.AccountTypeEquity, nil, false)

	got, err := svc.GetByCode(context.Background(), "3100")
	require.NoError(t, err)
	assert.Equal(t, seeded.ID, got.ID)

	_, err = svc.GetByCode(context.Background(), "0000")
	assert.ErrorIs(t, err, ledger.ErrAccountNotFound)
}

func TestUpdate_RejectsSelfParent(t *testing.T) {
	t.Parallel()
	svc, uow := newService()
	acct := uow.SeedAccount("1102", "Main Checking", ledger.AccountTypeAsset, nil, false)

	_, err := svc.Update(context.Background(), acct.ID, dto.AccountUpdate{ParentID: &acct.ID})
	require.Error(t, err)
	assert.ErrorIs(t, err, ledger.ErrValidation)
}

func TestUpdate_RejectsReparentOntoDescendant(t *testing.T) {
	t.Parallel()
	svc, uow := newService()
	root := uow.SeedAccount("1100", "Cash Assets", ledger.AccountTypeAsset, nil, false)
	child := uow.SeedAccount("1102", "Main Checking", ledger.AccountTypeAsset, &root.ID, false)
	grandchild := uow.SeedAccount("1103", "Sub Pocket", ledger.AccountTypeAsset, &child.ID, false)
	ctx := context.Background()

	_, err := svc.Update(ctx, root.ID, dto.AccountUpdate{ParentID: &grandchild.ID})
	require.Error(t, err)
	assert.ErrorIs(t, err, ledger.ErrValidation)

	// The hierarchy is unchanged.
	after, err := svc.Get(ctx, root.ID)
	require.NoError(t, err)
	assert.Nil(t, after.ParentID)
}

func TestUpdate_PartialFields(t *testing.T) {
	t.Parallel()
	svc, uow := newService()
	parent := uow.SeedAccount("1100", "Cash Assets", ledger.AccountTypeAsset, nil, false)
	acct := uow.SeedAccount("1102", "Main Checking", ledger.AccountTypeAsset, &parent.ID, false)

	name := "Salary Account"
	updated, err := svc.Update(context.Background(), acct.ID, dto.AccountUpdate{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "Salary Account", updated.Name)
	assert.Equal(t, "1102", updated.Code)
	require.NotNil(t, updated.ParentID)
	assert.Equal(t, parent.ID, *updated.ParentID)
}

func TestUpdate_ClearParentDetaches(t *testing.T) {
	t.Parallel()
	svc, uow := newService()
	parent := uow.SeedAccount("1100", "Cash Assets", ledger.AccountTypeAsset, nil, false)
	acct := uow.SeedAccount("1102", "Main Checking", ledger.AccountTypeAsset, &parent.ID, false)

	updated, err := svc.Update(context.Background(), acct.ID, dto.AccountUpdate{ClearParent: true})
	require.NoError(t, err)
	assert.Nil(t, updated.ParentID)
}

func TestDelete_RejectsAccountWithChildren(t *testing.T) {
	t.Parallel()
	svc, uow := newService()
	parent := uow.SeedAccount("1100", "Cash Assets", ledger.AccountTypeAsset, nil, false)
	uow.SeedAccount("1102", "Main Checking", ledger.AccountTypeAsset, &parent.ID, false)

	err := svc.Delete(context.Background(), parent.ID)
	assert.ErrorIs(t, err, ledger.ErrHasChildAccounts)
	assert.ErrorIs(t, err, ledger.ErrConflict)

	_, err = svc.Get(context.Background(), parent.ID)
	assert.NoError(t, err)
}

func TestDelete_RejectsAccountWithHistory(t *testing.T) {
	t.Parallel()
	svc, uow := newService()
	checking := uow.SeedAccount("1102", "Main Checking", ledger.AccountTypeAsset, nil, false)
	food := uow.SeedAccount("5201", "Food", ledger.AccountTypeExpense, nil, false)

	now := timeutil.Now()
	require.NoError(t, uow.Transactions.Create(context.Background(), &ledger.Transaction{
		ID:              uuid.New(),
		Description:     "Groceries",
		Amount:          dec("10"),
		DebitAccountID:  food.ID,
		CreditAccountID: checking.ID,
		TransactionDate: now,
		CreatedAt:       now,
	}))

	// Both sides of the entry are protected.
	assert.ErrorIs(t, svc.Delete(context.Background(), food.ID), ledger.ErrHasTransactionHistory)
	assert.ErrorIs(t, svc.Delete(context.Background(), checking.ID), ledger.ErrHasTransactionHistory)
}

func TestDelete_RemovesUnreferencedLeaf(t *testing.T) {
	t.Parallel()
	svc, uow := newService()
	acct := uow.SeedAccount("1102", "Main Checking", ledger.AccountTypeAsset, nil, false)

	require.NoError(t, svc.Delete(context.Background(), acct.ID))
	_, err := svc.Get(context.Background(), acct.ID)
	assert.ErrorIs(t, err, ledger.ErrAccountNotFound)
}

func TestGetHierarchy_NestsChildrenUnderParents(t *testing.T) {
	t.Parallel()
	svc, uow := newService()
	cash := uow.SeedAccount("1100", "Cash Assets", ledger.AccountTypeAsset, nil, false)
	uow.SeedAccount("1102", "Main Checking", ledger.AccountTypeAsset, &cash.ID, false)
	uow.SeedAccount("1103", "CMA", ledger.AccountTypeAsset, &cash.ID, false)
	uow.SeedAccount("3100", "Balance Adjustment", ledger.AccountTypeEquity, nil, false)

	roots, err := svc.GetHierarchy(context.Background())
	require.NoError(t, err)
	require.Len(t, roots, 2)

	byCode := make(map[string]int)
	for _, r := range roots {
		byCode[r.Code] = len(r.Children)
	}
	assert.Equal(t, 2, byCode["1100"])
	assert.Equal(t, 0, byCode["3100"])
}

func TestUpdateBalance_OverwritesAndPropagates(t *testing.T) {
	t.Parallel()
	svc, uow := newService()
	cash := uow.SeedAccount("1100", "Cash Assets", ledger.AccountTypeAsset, nil, false)
	checking := uow.SeedAccount("1102", "Main Checking", ledger.AccountTypeAsset, &cash.ID, false)
	cma := uow.SeedAccount("1103", "CMA", ledger.AccountTypeAsset, &cash.ID, false)

	ctx := context.Background()
	require.NoError(t, svc.UpdateBalance(ctx, checking.ID, dec("70")))
	require.NoError(t, svc.UpdateBalance(ctx, cma.ID, dec("30")))

	assert.True(t, uow.Balance(checking.ID).Equal(dec("70")))
	assert.True(t, uow.Balance(cash.ID).Equal(dec("100")))
}
