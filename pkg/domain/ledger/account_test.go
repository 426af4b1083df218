package ledger_test

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pams-dev/pams/pkg/domain/ledger"
)

func TestAccountType_Valid(t *testing.T) {
	t.Parallel()
	for _, typ := range []ledger.AccountType{
		ledger.AccountTypeAsset,
		ledger.AccountTypeLiability,
		ledger.AccountTypeEquity,
		ledger.AccountTypeRevenue,
		ledger.AccountTypeExpense,
	} {
		assert.True(t, typ.Valid(), string(typ))
	}
	assert.False(t, ledger.AccountType("").Valid())
	assert.False(t, ledger.AccountType("CRYPTO").Valid())
}

func TestBuildHierarchy_NestsByParent(t *testing.T) {
	t.Parallel()
	cash := &ledger.Account{ID: uuid.New(), Code: "1100"}
	checking := &ledger.Account{ID: uuid.New(), Code: "1102", ParentID: &cash.ID}
	cma := &ledger.Account{ID: uuid.New(), Code: "1103", ParentID: &cash.ID}
	equity := &ledger.Account{ID: uuid.New(), Code: "3100"}

	roots := ledger.BuildHierarchy([]*ledger.Account{cash, checking, cma, equity})
	require.Len(t, roots, 2)

	var cashNode *ledger.AccountNode
	for _, r := range roots {
		if r.Code == "1100" {
			cashNode = r
		}
	}
	require.NotNil(t, cashNode)
	assert.Len(t, cashNode.Children, 2)
}

func TestBuildHierarchy_OrphanBecomesRoot(t *testing.T) {
	t.Parallel()
	missing := uuid.New()
	orphan := &ledger.Account{ID: uuid.New(), Code: "1102", ParentID: &missing}

	roots := ledger.BuildHierarchy([]*ledger.Account{orphan})
	require.Len(t, roots, 1)
	assert.Equal(t, "1102", roots[0].Code)
}

func TestBuildHierarchy_Empty(t *testing.T) {
	t.Parallel()
	assert.Empty(t, ledger.BuildHierarchy(nil))
}

func TestErrorKinds(t *testing.T) {
	t.Parallel()
	cases := []struct {
		err  error
		kind error
	}{
		{ledger.ErrAmountNotPositive, ledger.ErrValidation},
		{ledger.ErrSameAccount, ledger.ErrValidation},
		{ledger.ErrDebitAccountNotFound, ledger.ErrValidation},
		{ledger.ErrCreditAccountNotFound, ledger.ErrValidation},
		{ledger.ErrPortfolioFundingSource, ledger.ErrValidation},
		{ledger.ErrAccountNotFound, ledger.ErrNotFound},
		{ledger.ErrTransactionNotFound, ledger.ErrNotFound},
		{ledger.ErrHasChildAccounts, ledger.ErrConflict},
		{ledger.ErrHasTransactionHistory, ledger.ErrConflict},
		{ledger.ErrNotPortfolioAccount, ledger.ErrConflict},
		{ledger.ErrAdjustmentAccountMissing, ledger.ErrConflict},
		{ledger.ErrDuplicateCode, ledger.ErrConflict},
		{ledger.ErrHierarchyTooDeep, ledger.ErrConsistency},
	}
	for _, c := range cases {
		assert.True(t, errors.Is(c.err, c.kind), c.err.Error())
	}
}
