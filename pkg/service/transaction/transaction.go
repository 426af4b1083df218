// Package transaction orchestrates the transaction lifecycle: double-
// entry validation, persistence, and keeping account balances
// synchronized with every mutation through the balance engine. It also
// implements the portfolio-adjustment mechanism that reconciles
// externally-valued assets into the ledger.
package transaction

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/pams-dev/pams/pkg/domain/ledger"
	"github.com/pams-dev/pams/pkg/dto"
	"github.com/pams-dev/pams/pkg/repository"
	"github.com/pams-dev/pams/pkg/service/balance"
	"github.com/pams-dev/pams/pkg/timeutil"
)

// Service provides transaction operations. Every mutation runs inside a
// single unit of work, so the transaction row and the full balance
// cascade commit or roll back together.
type Service struct {
	uow      repository.UnitOfWork
	balance  *balance.Engine
	validate *validator.Validate
	logger   *slog.Logger
}

// NewService creates a Service with the provided dependencies.
func NewService(uow repository.UnitOfWork, engine *balance.Engine, logger *slog.Logger) *Service {
	return &Service{
		uow:      uow,
		balance:  engine,
		validate: validator.New(),
		logger:   logger,
	}
}

// Get returns a transaction by id.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (tx *ledger.Transaction, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		transactions, err := uow.TransactionRepository()
		if err != nil {
			return err
		}
		tx, err = transactions.Get(ctx, id)
		return err
	})
	return
}

// List returns one page of visible transactions, newest first.
func (s *Service) List(ctx context.Context, page, limit int) (result *dto.TransactionPage, err error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		transactions, err := uow.TransactionRepository()
		if err != nil {
			return err
		}
		result, err = transactions.ListPage(ctx, page, limit)
		return err
	})
	return
}

// ListByDateRange returns the visible transactions of [start, end], both
// civil dates in KST.
func (s *Service) ListByDateRange(ctx context.Context, start, end string) (txs []*ledger.Transaction, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		transactions, err := uow.TransactionRepository()
		if err != nil {
			return err
		}
		txs, err = transactions.ListByDateRange(ctx, start, end)
		return err
	})
	return
}

// Create validates, persists, and applies a new transaction. On a
// validation failure nothing is persisted and no balance moves.
func (s *Service) Create(ctx context.Context, input dto.TransactionCreate) (created *ledger.Transaction, err error) {
	if err = s.validate.Struct(input); err != nil {
		return nil, fmt.Errorf("%w: %w", ledger.ErrValidation, err)
	}
	logger := s.logger.With(
		"debit", input.DebitAccountID, "credit", input.CreditAccountID, "amount", input.Amount)
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		if err := s.validateTransaction(
			ctx, uow, input.DebitAccountID, input.CreditAccountID, input.Amount,
		); err != nil {
			return err
		}
		transactions, err := uow.TransactionRepository()
		if err != nil {
			return err
		}
		date := input.TransactionDate
		if date == "" {
			date = timeutil.Now()
		}
		created = &ledger.Transaction{
			ID:              uuid.New(),
			Description:     input.Description,
			Amount:          input.Amount,
			DebitAccountID:  input.DebitAccountID,
			CreditAccountID: input.CreditAccountID,
			TransactionDate: date,
			IsHidden:        false,
			CreatedAt:       timeutil.Now(),
		}
		if err := transactions.Create(ctx, created); err != nil {
			return err
		}
		return s.balance.ApplyDelta(
			ctx, uow, created.DebitAccountID, created.CreditAccountID, created.Amount, false)
	})
	if err != nil {
		logger.Error("transaction create failed", "error", err)
		return nil, err
	}
	logger.Info("transaction created", "id", created.ID)
	return created, nil
}

// Update applies a partial update to an existing transaction. The merged
// result is validated before the old balance effect is reversed, so a
// rejected update leaves both the row and every balance untouched.
func (s *Service) Update(ctx context.Context, id uuid.UUID, input dto.TransactionUpdate) (updated *ledger.Transaction, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		transactions, err := uow.TransactionRepository()
		if err != nil {
			return err
		}
		existing, err := transactions.Get(ctx, id)
		if err != nil {
			return err
		}

		debitID := existing.DebitAccountID
		if input.DebitAccountID != nil {
			debitID = *input.DebitAccountID
		}
		creditID := existing.CreditAccountID
		if input.CreditAccountID != nil {
			creditID = *input.CreditAccountID
		}
		amount := existing.Amount
		if input.Amount != nil {
			amount = *input.Amount
		}
		if err := s.validateTransaction(ctx, uow, debitID, creditID, amount); err != nil {
			return err
		}

		if err := s.balance.ApplyDelta(
			ctx, uow, existing.DebitAccountID, existing.CreditAccountID, existing.Amount, true,
		); err != nil {
			return err
		}
		if err := transactions.Update(ctx, id, input); err != nil {
			return err
		}
		if err := s.balance.ApplyDelta(ctx, uow, debitID, creditID, amount, false); err != nil {
			return err
		}
		updated, err = transactions.Get(ctx, id)
		return err
	})
	if err != nil {
		s.logger.Error("transaction update failed", "id", id, "error", err)
		return nil, err
	}
	s.logger.Info("transaction updated", "id", id)
	return updated, nil
}

// Delete reverses a transaction's balance effect and removes the row.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		transactions, err := uow.TransactionRepository()
		if err != nil {
			return err
		}
		existing, err := transactions.Get(ctx, id)
		if err != nil {
			return err
		}
		if err := s.balance.ApplyDelta(
			ctx, uow, existing.DebitAccountID, existing.CreditAccountID, existing.Amount, true,
		); err != nil {
			return err
		}
		return transactions.Delete(ctx, id)
	})
	if err != nil {
		s.logger.Error("transaction delete failed", "id", id, "error", err)
		return err
	}
	s.logger.Info("transaction deleted", "id", id)
	return nil
}

// AdjustPortfolioBalance reconciles a portfolio account to an externally
// observed value by posting one hidden transaction against the equity
// adjustment account. Returns nil when the balance already matches.
func (s *Service) AdjustPortfolioBalance(
	ctx context.Context,
	accountID uuid.UUID,
	newBalance decimal.Decimal,
) (adjustment *ledger.Transaction, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		accounts, err := uow.AccountRepository()
		if err != nil {
			return err
		}
		acct, err := accounts.Get(ctx, accountID)
		if err != nil {
			return err
		}
		if !acct.IsPortfolio {
			return ledger.ErrNotPortfolioAccount
		}
		adjustmentAccount, err := s.findAdjustmentAccount(ctx, accounts)
		if err != nil {
			return err
		}

		diff := newBalance.Sub(acct.Balance)
		if diff.IsZero() {
			return nil
		}
		// diff > 0: the portfolio gained value, debit it; the equity
		// account absorbs the plug on the credit side. diff < 0 is the
		// mirror image.
		debitID, creditID := acct.ID, adjustmentAccount.ID
		if diff.IsNegative() {
			debitID, creditID = adjustmentAccount.ID, acct.ID
		}

		transactions, err := uow.TransactionRepository()
		if err != nil {
			return err
		}
		now := timeutil.Now()
		adjustment = &ledger.Transaction{
			ID:              uuid.New(),
			Description:     fmt.Sprintf("Portfolio balance adjustment for %s", acct.Name),
			Amount:          diff.Abs(),
			DebitAccountID:  debitID,
			CreditAccountID: creditID,
			TransactionDate: now,
			IsHidden:        true,
			CreatedAt:       now,
		}
		if err := transactions.Create(ctx, adjustment); err != nil {
			return err
		}
		return s.balance.ApplyDelta(ctx, uow, debitID, creditID, adjustment.Amount, false)
	})
	if err != nil {
		s.logger.Error("portfolio adjustment failed", "account", accountID, "error", err)
		return nil, err
	}
	if adjustment == nil {
		s.logger.Info("portfolio balance already current", "account", accountID)
		return nil, nil
	}
	s.logger.Info("portfolio balance adjusted",
		"account", accountID, "amount", adjustment.Amount, "transaction", adjustment.ID)
	return adjustment, nil
}

// findAdjustmentAccount locates the designated equity account that
// absorbs portfolio adjustments.
func (s *Service) findAdjustmentAccount(
	ctx context.Context,
	accounts repository.AccountRepository,
) (*ledger.Account, error) {
	equity, err := accounts.ListByType(ctx, ledger.AccountTypeEquity)
	if err != nil {
		return nil, err
	}
	for _, acct := range equity {
		if acct.Code == ledger.AdjustmentAccountCode {
			return acct, nil
		}
	}
	return nil, ledger.ErrAdjustmentAccountMissing
}

// validateTransaction enforces the double-entry rules: positive amount,
// distinct existing accounts, and the structural portfolio-funding rule
// (a portfolio account on the credit side may only be funded from a
// direct child of the cash-assets account).
func (s *Service) validateTransaction(
	ctx context.Context,
	uow repository.UnitOfWork,
	debitAccountID, creditAccountID uuid.UUID,
	amount decimal.Decimal,
) error {
	if !amount.IsPositive() {
		return ledger.ErrAmountNotPositive
	}
	if debitAccountID == creditAccountID {
		return ledger.ErrSameAccount
	}
	accounts, err := uow.AccountRepository()
	if err != nil {
		return err
	}
	debit, err := accounts.Get(ctx, debitAccountID)
	if err != nil {
		return ledger.ErrDebitAccountNotFound
	}
	credit, err := accounts.Get(ctx, creditAccountID)
	if err != nil {
		return ledger.ErrCreditAccountNotFound
	}
	if credit.IsPortfolio {
		if debit.ParentID == nil {
			return ledger.ErrPortfolioFundingSource
		}
		parent, err := accounts.Get(ctx, *debit.ParentID)
		if err != nil || parent.Code != ledger.CashAssetsCode {
			return ledger.ErrPortfolioFundingSource
		}
	}
	return nil
}
