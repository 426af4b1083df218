// Package repository defines the data-access contracts consumed by the
// service layer. Implementations live in infra/repository; tests use the
// in-memory fakes in internal/fixtures.
package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/pams-dev/pams/pkg/domain/ledger"
	"github.com/pams-dev/pams/pkg/domain/planning"
	"github.com/pams-dev/pams/pkg/dto"
)

// AccountRepository is the persistence contract for the chart of
// accounts. Create fails on a duplicate code (ledger.ErrDuplicateCode).
type AccountRepository interface {
	Get(ctx context.Context, id uuid.UUID) (*ledger.Account, error)
	GetByCode(ctx context.Context, code string) (*ledger.Account, error)
	ListAll(ctx context.Context) ([]*ledger.Account, error)
	ListByType(ctx context.Context, t ledger.AccountType) ([]*ledger.Account, error)
	ListChildren(ctx context.Context, parentID uuid.UUID) ([]*ledger.Account, error)
	Create(ctx context.Context, a *ledger.Account) error
	Update(ctx context.Context, id uuid.UUID, update dto.AccountUpdate) error
	UpdateBalance(ctx context.Context, id uuid.UUID, balance decimal.Decimal) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// TransactionRepository is the persistence contract for double-entry
// records. ListPage returns only visible transactions. SumByAccount
// includes hidden entries, since hidden entries still move balances; the
// date-range sums serve statistics and exclude them.
type TransactionRepository interface {
	Get(ctx context.Context, id uuid.UUID) (*ledger.Transaction, error)
	ListPage(ctx context.Context, page, limit int) (*dto.TransactionPage, error)
	ListByDateRange(ctx context.Context, start, end string) ([]*ledger.Transaction, error)
	CountByAccount(ctx context.Context, accountID uuid.UUID) (int64, error)
	SumByAccount(ctx context.Context, accountID uuid.UUID, side ledger.EntrySide) (decimal.Decimal, error)
	SumByAccountAndDateRange(
		ctx context.Context,
		accountID uuid.UUID,
		side ledger.EntrySide,
		start, end string,
	) (decimal.Decimal, error)
	SumByAccountTypeAndDateRange(
		ctx context.Context,
		accountType ledger.AccountType,
		side ledger.EntrySide,
		start, end string,
	) (decimal.Decimal, error)
	Create(ctx context.Context, tx *ledger.Transaction) error
	Update(ctx context.Context, id uuid.UUID, update dto.TransactionUpdate) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// FixedExpenseRepository stores recurring expense records.
type FixedExpenseRepository interface {
	Get(ctx context.Context, id uuid.UUID) (*planning.FixedExpense, error)
	ListAll(ctx context.Context) ([]*planning.FixedExpense, error)
	Create(ctx context.Context, e *planning.FixedExpense) error
	Update(ctx context.Context, e *planning.FixedExpense) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// SpendingPlanRepository stores planned line items per month.
type SpendingPlanRepository interface {
	Get(ctx context.Context, id uuid.UUID) (*planning.SpendingPlan, error)
	ListByMonth(ctx context.Context, year, month int) ([]*planning.SpendingPlan, error)
	Create(ctx context.Context, p *planning.SpendingPlan) error
	Update(ctx context.Context, p *planning.SpendingPlan) error
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteByMonth(ctx context.Context, year, month int) error
}

// CardPaymentRepository stores per-account monthly card billing rows.
// (account, year, month) is unique.
type CardPaymentRepository interface {
	GetByAccountAndMonth(ctx context.Context, accountID uuid.UUID, year, month int) (*planning.CardPayment, error)
	ListByMonth(ctx context.Context, year, month int) ([]*planning.CardPayment, error)
	Create(ctx context.Context, p *planning.CardPayment) error
	Update(ctx context.Context, p *planning.CardPayment) error
}

// SalaryDetailRepository stores one salary breakdown per month.
type SalaryDetailRepository interface {
	GetByMonth(ctx context.Context, year, month int) (*planning.SalaryDetail, error)
	ListAll(ctx context.Context) ([]*planning.SalaryDetail, error)
	Create(ctx context.Context, d *planning.SalaryDetail) error
	Update(ctx context.Context, d *planning.SalaryDetail) error
}
