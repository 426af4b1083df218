// Package planning provides the budgeting tables next to the ledger:
// fixed expenses, monthly spending plans, card payment tracking, and
// salary breakdowns.
package planning

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/pams-dev/pams/pkg/domain/ledger"
	"github.com/pams-dev/pams/pkg/domain/planning"
	"github.com/pams-dev/pams/pkg/dto"
	"github.com/pams-dev/pams/pkg/provider"
	"github.com/pams-dev/pams/pkg/repository"
	"github.com/pams-dev/pams/pkg/timeutil"
)

// Service provides CRUD and summaries over the planning tables.
type Service struct {
	uow      repository.UnitOfWork
	rates    provider.ExchangeRate
	validate *validator.Validate
	logger   *slog.Logger
}

// NewService creates a Service with the provided dependencies.
func NewService(uow repository.UnitOfWork, rates provider.ExchangeRate, logger *slog.Logger) *Service {
	return &Service{
		uow:      uow,
		rates:    rates,
		validate: validator.New(),
		logger:   logger,
	}
}

// --- fixed expenses ---

// ListFixedExpenses returns every registered recurring expense.
func (s *Service) ListFixedExpenses(ctx context.Context) (out []*planning.FixedExpense, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := uow.FixedExpenseRepository()
		if err != nil {
			return err
		}
		out, err = repo.ListAll(ctx)
		return err
	})
	return
}

// CreateFixedExpense registers a recurring expense. Currency defaults to KRW.
func (s *Service) CreateFixedExpense(ctx context.Context, input dto.FixedExpenseCreate) (created *planning.FixedExpense, err error) {
	if err = s.validate.Struct(input); err != nil {
		return nil, fmt.Errorf("%w: %w", ledger.ErrValidation, err)
	}
	currency := input.Currency
	if currency == "" {
		currency = "KRW"
	}
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := uow.FixedExpenseRepository()
		if err != nil {
			return err
		}
		created = &planning.FixedExpense{
			ID:            uuid.New(),
			Category:      input.Category,
			PaymentMethod: input.PaymentMethod,
			Amount:        input.Amount,
			Currency:      currency,
			PaymentDate:   input.PaymentDate,
			Cycle:         planning.ExpenseCycle(input.Cycle),
			Note:          input.Note,
			CreatedAt:     timeutil.Now(),
		}
		return repo.Create(ctx, created)
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// UpdateFixedExpense replaces a recurring expense's fields.
func (s *Service) UpdateFixedExpense(ctx context.Context, id uuid.UUID, input dto.FixedExpenseCreate) (updated *planning.FixedExpense, err error) {
	if err = s.validate.Struct(input); err != nil {
		return nil, fmt.Errorf("%w: %w", ledger.ErrValidation, err)
	}
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := uow.FixedExpenseRepository()
		if err != nil {
			return err
		}
		updated, err = repo.Get(ctx, id)
		if err != nil {
			return err
		}
		updated.Category = input.Category
		updated.PaymentMethod = input.PaymentMethod
		updated.Amount = input.Amount
		if input.Currency != "" {
			updated.Currency = input.Currency
		}
		updated.PaymentDate = input.PaymentDate
		updated.Cycle = planning.ExpenseCycle(input.Cycle)
		updated.Note = input.Note
		return repo.Update(ctx, updated)
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// DeleteFixedExpense removes a recurring expense.
func (s *Service) DeleteFixedExpense(ctx context.Context, id uuid.UUID) error {
	return s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := uow.FixedExpenseRepository()
		if err != nil {
			return err
		}
		if _, err := repo.Get(ctx, id); err != nil {
			return err
		}
		return repo.Delete(ctx, id)
	})
}

// FixedExpenseSummary totals the registered fixed expenses in KRW,
// grouped by category. Yearly expenses contribute a twelfth to the
// monthly total.
func (s *Service) FixedExpenseSummary(ctx context.Context) (summary *dto.FixedExpenseSummary, err error) {
	expenses, err := s.ListFixedExpenses(ctx)
	if err != nil {
		return nil, err
	}
	summary = &dto.FixedExpenseSummary{ByCategory: make(map[string]decimal.Decimal)}
	twelve := decimal.NewFromInt(12)
	for _, e := range expenses {
		krw, err := provider.ConvertToKRW(ctx, s.rates, e.Amount, e.Currency)
		if err != nil {
			return nil, err
		}
		monthly := krw
		if e.Cycle == planning.CycleYearly {
			monthly = krw.Div(twelve)
			summary.YearlyTotalKRW = summary.YearlyTotalKRW.Add(krw)
		} else {
			summary.YearlyTotalKRW = summary.YearlyTotalKRW.Add(krw.Mul(twelve))
		}
		summary.MonthlyTotalKRW = summary.MonthlyTotalKRW.Add(monthly)
		summary.ByCategory[e.Category] = summary.ByCategory[e.Category].Add(monthly)
	}
	return summary, nil
}

// --- spending plans ---

// ListSpendingPlans returns the planned line items of one month.
func (s *Service) ListSpendingPlans(ctx context.Context, year, month int) (out []*planning.SpendingPlan, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := uow.SpendingPlanRepository()
		if err != nil {
			return err
		}
		out, err = repo.ListByMonth(ctx, year, month)
		return err
	})
	return
}

// CreateSpendingPlan adds one planned line item.
func (s *Service) CreateSpendingPlan(ctx context.Context, input dto.SpendingPlanCreate) (created *planning.SpendingPlan, err error) {
	if err = s.validate.Struct(input); err != nil {
		return nil, fmt.Errorf("%w: %w", ledger.ErrValidation, err)
	}
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := uow.SpendingPlanRepository()
		if err != nil {
			return err
		}
		created = &planning.SpendingPlan{
			ID:          uuid.New(),
			Year:        input.Year,
			Month:       input.Month,
			Salary:      input.Salary,
			Category:    input.Category,
			Description: input.Description,
			Amount:      input.Amount,
			CreatedAt:   timeutil.Now(),
		}
		return repo.Create(ctx, created)
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// UpdateSpendingPlan replaces one planned line item's fields.
func (s *Service) UpdateSpendingPlan(ctx context.Context, id uuid.UUID, input dto.SpendingPlanCreate) (updated *planning.SpendingPlan, err error) {
	if err = s.validate.Struct(input); err != nil {
		return nil, fmt.Errorf("%w: %w", ledger.ErrValidation, err)
	}
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := uow.SpendingPlanRepository()
		if err != nil {
			return err
		}
		updated, err = repo.Get(ctx, id)
		if err != nil {
			return err
		}
		updated.Year = input.Year
		updated.Month = input.Month
		updated.Salary = input.Salary
		updated.Category = input.Category
		updated.Description = input.Description
		updated.Amount = input.Amount
		return repo.Update(ctx, updated)
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// DeleteSpendingPlan removes one planned line item.
func (s *Service) DeleteSpendingPlan(ctx context.Context, id uuid.UUID) error {
	return s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := uow.SpendingPlanRepository()
		if err != nil {
			return err
		}
		return repo.Delete(ctx, id)
	})
}

// DeleteMonthlySpendingPlans clears every line item of one month.
func (s *Service) DeleteMonthlySpendingPlans(ctx context.Context, year, month int) error {
	return s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := uow.SpendingPlanRepository()
		if err != nil {
			return err
		}
		return repo.DeleteByMonth(ctx, year, month)
	})
}

// --- card payments ---

// ListCardPayments returns the card billing rows of one month.
func (s *Service) ListCardPayments(ctx context.Context, year, month int) (out []*planning.CardPayment, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := uow.CardPaymentRepository()
		if err != nil {
			return err
		}
		out, err = repo.ListByMonth(ctx, year, month)
		return err
	})
	return
}

// UpsertCardPayment creates or updates a card account's billing row for
// one month, recomputing the billed total.
func (s *Service) UpsertCardPayment(
	ctx context.Context,
	accountID uuid.UUID,
	year, month int,
	input dto.CardPaymentUpsert,
) (row *planning.CardPayment, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		accounts, err := uow.AccountRepository()
		if err != nil {
			return err
		}
		if _, err := accounts.Get(ctx, accountID); err != nil {
			return err
		}
		repo, err := uow.CardPaymentRepository()
		if err != nil {
			return err
		}
		row, err = repo.GetByAccountAndMonth(ctx, accountID, year, month)
		switch {
		case err == nil:
			row.TotalPayment = input.TotalPayment
			row.TotalDiscount = input.TotalDiscount
			row.TotalBill = input.TotalPayment.Sub(input.TotalDiscount)
			return repo.Update(ctx, row)
		case errors.Is(err, ledger.ErrNotFound):
			row = &planning.CardPayment{
				ID:            uuid.New(),
				AccountID:     accountID,
				Year:          year,
				Month:         month,
				TotalPayment:  input.TotalPayment,
				TotalDiscount: input.TotalDiscount,
				TotalBill:     input.TotalPayment.Sub(input.TotalDiscount),
				CreatedAt:     timeutil.Now(),
			}
			return repo.Create(ctx, row)
		default:
			return err
		}
	})
	if err != nil {
		return nil, err
	}
	return row, nil
}

// UpdateCardDiscount adjusts the discount of a card's billing row and
// recomputes the billed total. When no row exists for the month yet,
// one is created with the payment total seeded from the card's ledger
// activity.
func (s *Service) UpdateCardDiscount(
	ctx context.Context,
	accountID uuid.UUID,
	year, month int,
	discount decimal.Decimal,
) (row *planning.CardPayment, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := uow.CardPaymentRepository()
		if err != nil {
			return err
		}
		row, err = repo.GetByAccountAndMonth(ctx, accountID, year, month)
		switch {
		case err == nil:
			row.TotalDiscount = discount
			row.TotalBill = row.TotalPayment.Sub(discount)
			return repo.Update(ctx, row)
		case errors.Is(err, ledger.ErrNotFound):
			transactions, err := uow.TransactionRepository()
			if err != nil {
				return err
			}
			start, end := timeutil.MonthRange(year, month)
			total, err := transactions.SumByAccountAndDateRange(
				ctx, accountID, ledger.SideCredit, start, end)
			if err != nil {
				return err
			}
			row = &planning.CardPayment{
				ID:            uuid.New(),
				AccountID:     accountID,
				Year:          year,
				Month:         month,
				TotalPayment:  total,
				TotalDiscount: discount,
				TotalBill:     total.Sub(discount),
				CreatedAt:     timeutil.Now(),
			}
			return repo.Create(ctx, row)
		default:
			return err
		}
	})
	if err != nil {
		return nil, err
	}
	return row, nil
}

// CardTransactionSummary joins each card account's ledger activity with
// its tracked discount for the current and previous billing months. The
// card accounts are the direct children of the card group account; a
// missing group yields an empty summary.
func (s *Service) CardTransactionSummary(
	ctx context.Context,
	currentYear, currentMonth, lastYear, lastMonth int,
) (out []dto.CardSummary, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		accounts, err := uow.AccountRepository()
		if err != nil {
			return err
		}
		transactions, err := uow.TransactionRepository()
		if err != nil {
			return err
		}
		cards, err := uow.CardPaymentRepository()
		if err != nil {
			return err
		}
		group, err := accounts.GetByCode(ctx, ledger.CardGroupCode)
		if errors.Is(err, ledger.ErrNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		cardAccounts, err := accounts.ListChildren(ctx, group.ID)
		if err != nil {
			return err
		}
		for _, acct := range cardAccounts {
			current, err := cardBillingMonth(ctx, transactions, cards, acct.ID, currentYear, currentMonth)
			if err != nil {
				return err
			}
			last, err := cardBillingMonth(ctx, transactions, cards, acct.ID, lastYear, lastMonth)
			if err != nil {
				return err
			}
			out = append(out, dto.CardSummary{
				AccountID:    acct.ID,
				AccountName:  acct.Name,
				CurrentMonth: current,
				LastMonth:    last,
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// cardBillingMonth derives one month's bill for a card account. Card
// spending posts as credits against the card, so the ledger credit sum
// is the payment total; the discount comes from the tracked row when
// one exists.
func cardBillingMonth(
	ctx context.Context,
	transactions repository.TransactionRepository,
	cards repository.CardPaymentRepository,
	accountID uuid.UUID,
	year, month int,
) (dto.CardBillingMonth, error) {
	start, end := timeutil.MonthRange(year, month)
	total, err := transactions.SumByAccountAndDateRange(
		ctx, accountID, ledger.SideCredit, start, end)
	if err != nil {
		return dto.CardBillingMonth{}, err
	}
	discount := decimal.Zero
	row, err := cards.GetByAccountAndMonth(ctx, accountID, year, month)
	switch {
	case err == nil:
		discount = row.TotalDiscount
	case errors.Is(err, ledger.ErrNotFound):
		// no tracked billing for the month
	default:
		return dto.CardBillingMonth{}, err
	}
	return dto.CardBillingMonth{
		Year:         year,
		Month:        month,
		TotalPayment: total,
		Discount:     discount,
		ActualBill:   total.Sub(discount),
	}, nil
}

// --- salary details ---

// ListSalaryDetails returns every stored salary breakdown.
func (s *Service) ListSalaryDetails(ctx context.Context) (out []*planning.SalaryDetail, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := uow.SalaryDetailRepository()
		if err != nil {
			return err
		}
		out, err = repo.ListAll(ctx)
		return err
	})
	return
}

// GetSalaryDetail returns the salary breakdown of one month.
func (s *Service) GetSalaryDetail(ctx context.Context, year, month int) (detail *planning.SalaryDetail, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := uow.SalaryDetailRepository()
		if err != nil {
			return err
		}
		detail, err = repo.GetByMonth(ctx, year, month)
		return err
	})
	return
}

// UpsertSalaryDetail creates or replaces one month's salary breakdown,
// recomputing gross, deduction, and net totals.
func (s *Service) UpsertSalaryDetail(
	ctx context.Context,
	year, month int,
	input dto.SalaryDetailUpsert,
) (detail *planning.SalaryDetail, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := uow.SalaryDetailRepository()
		if err != nil {
			return err
		}
		existing, err := repo.GetByMonth(ctx, year, month)
		switch {
		case err == nil:
			detail = existing
		case errors.Is(err, ledger.ErrNotFound):
			detail = &planning.SalaryDetail{
				ID:        uuid.New(),
				Year:      year,
				Month:     month,
				CreatedAt: timeutil.Now(),
			}
		default:
			return err
		}
		detail.BaseSalary = input.BaseSalary
		detail.MealAllowance = input.MealAllowance
		detail.OvertimePay = input.OvertimePay
		detail.NightPay = input.NightPay
		detail.VacationPay = input.VacationPay
		detail.Incentive = input.Incentive
		detail.NationalPension = input.NationalPension
		detail.HealthInsurance = input.HealthInsurance
		detail.EmploymentInsurance = input.EmploymentInsurance
		detail.LongTermCare = input.LongTermCare
		detail.IncomeTax = input.IncomeTax
		detail.LocalTax = input.LocalTax
		detail.ComputeTotals()
		if existing != nil {
			return repo.Update(ctx, detail)
		}
		return repo.Create(ctx, detail)
	})
	if err != nil {
		return nil, err
	}
	return detail, nil
}
