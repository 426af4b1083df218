// Package statistics aggregates visible ledger activity into the views
// behind the dashboard charts: monthly expense/revenue totals and
// per-account breakdowns.
package statistics

import (
	"context"
	"log/slog"
	"sort"

	"github.com/pams-dev/pams/pkg/domain/ledger"
	"github.com/pams-dev/pams/pkg/dto"
	"github.com/pams-dev/pams/pkg/repository"
	"github.com/pams-dev/pams/pkg/timeutil"
)

// Service provides read-only statistics queries. Hidden transactions are
// excluded everywhere.
type Service struct {
	uow    repository.UnitOfWork
	logger *slog.Logger
}

// NewService creates a Service with the provided dependencies.
func NewService(uow repository.UnitOfWork, logger *slog.Logger) *Service {
	return &Service{uow: uow, logger: logger}
}

// MonthlyStats returns expense and revenue totals for each month of a
// year. Expenses are debits into expense accounts, revenues are credits
// out of revenue accounts.
func (s *Service) MonthlyStats(ctx context.Context, year int) (stats []dto.MonthlyStat, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		transactions, err := uow.TransactionRepository()
		if err != nil {
			return err
		}
		for month := 1; month <= 12; month++ {
			start, end := timeutil.MonthRange(year, month)
			expenses, err := transactions.SumByAccountTypeAndDateRange(
				ctx, ledger.AccountTypeExpense, ledger.SideDebit, start, end)
			if err != nil {
				return err
			}
			revenues, err := transactions.SumByAccountTypeAndDateRange(
				ctx, ledger.AccountTypeRevenue, ledger.SideCredit, start, end)
			if err != nil {
				return err
			}
			stats = append(stats, dto.MonthlyStat{
				Month:    month,
				Expenses: expenses,
				Revenues: revenues,
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return stats, nil
}

// AccountSummary breaks one month's activity down per account of the
// given type, largest total first. Accounts with no activity are
// omitted. Only expense and revenue types have a defined breakdown;
// other types yield an empty summary.
func (s *Service) AccountSummary(
	ctx context.Context,
	year, month int,
	accountType ledger.AccountType,
) (summaries []dto.AccountSummary, err error) {
	if accountType != ledger.AccountTypeExpense && accountType != ledger.AccountTypeRevenue {
		return nil, nil
	}
	side := ledger.SideDebit
	if accountType == ledger.AccountTypeRevenue {
		side = ledger.SideCredit
	}
	start, end := timeutil.MonthRange(year, month)
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		accounts, err := uow.AccountRepository()
		if err != nil {
			return err
		}
		transactions, err := uow.TransactionRepository()
		if err != nil {
			return err
		}
		ofType, err := accounts.ListByType(ctx, accountType)
		if err != nil {
			return err
		}
		for _, acct := range ofType {
			total, err := transactions.SumByAccountAndDateRange(ctx, acct.ID, side, start, end)
			if err != nil {
				return err
			}
			if total.IsPositive() {
				summaries = append(summaries, dto.AccountSummary{Account: acct, Total: total})
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(summaries, func(i, j int) bool {
		return summaries[i].Total.GreaterThan(summaries[j].Total)
	})
	return summaries, nil
}
