// Package balance implements the balance-consistency engine: the signed
// delta primitive applied on every transaction mutation, the full
// recalculation path that rebuilds balances from transaction history, and
// the read-only audit that compares stored against derived balances.
package balance

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/pams-dev/pams/pkg/domain/ledger"
	"github.com/pams-dev/pams/pkg/dto"
	"github.com/pams-dev/pams/pkg/repository"
)

// Engine computes and propagates account balances.
//
// ApplyDelta and PropagateAncestors take the caller's UnitOfWork so they
// participate in the surrounding transaction; the recalculation and
// validation entry points open their own.
type Engine struct {
	uow    repository.UnitOfWork
	logger *slog.Logger
}

// New creates an Engine with the provided dependencies.
func New(uow repository.UnitOfWork, logger *slog.Logger) *Engine {
	return &Engine{uow: uow, logger: logger}
}

// ApplyDelta applies one transaction's signed effect to both involved
// accounts and rolls it up every ancestor chain. With reversed=false the
// debit balance increases and the credit balance decreases by amount;
// reversed=true exactly cancels a prior application with the same
// parameters.
func (e *Engine) ApplyDelta(
	ctx context.Context,
	uow repository.UnitOfWork,
	debitAccountID, creditAccountID uuid.UUID,
	amount decimal.Decimal,
	reversed bool,
) error {
	delta := amount
	if reversed {
		delta = amount.Neg()
	}
	if err := e.applyToAccount(ctx, uow, debitAccountID, delta); err != nil {
		return fmt.Errorf("apply debit delta: %w", err)
	}
	if err := e.applyToAccount(ctx, uow, creditAccountID, delta.Neg()); err != nil {
		return fmt.Errorf("apply credit delta: %w", err)
	}
	return nil
}

// applyToAccount shifts one account's stored balance and propagates the
// change upward.
func (e *Engine) applyToAccount(
	ctx context.Context,
	uow repository.UnitOfWork,
	accountID uuid.UUID,
	delta decimal.Decimal,
) error {
	accounts, err := uow.AccountRepository()
	if err != nil {
		return err
	}
	acct, err := accounts.Get(ctx, accountID)
	if err != nil {
		return err
	}
	if err := accounts.UpdateBalance(ctx, accountID, acct.Balance.Add(delta)); err != nil {
		return err
	}
	return e.PropagateAncestors(ctx, uow, acct.ParentID)
}

// PropagateAncestors recomputes every account on the parent chain
// starting at parentID as the sum of its direct children's current
// balances, walking upward until a root is reached. The walk is
// iterative and bounded: exceeding ledger.MaxHierarchyDepth means the
// parent chain is cyclic and surfaces as a consistency error.
func (e *Engine) PropagateAncestors(
	ctx context.Context,
	uow repository.UnitOfWork,
	parentID *uuid.UUID,
) error {
	accounts, err := uow.AccountRepository()
	if err != nil {
		return err
	}
	for depth := 0; parentID != nil; depth++ {
		if depth >= ledger.MaxHierarchyDepth {
			return ledger.ErrHierarchyTooDeep
		}
		parent, err := accounts.Get(ctx, *parentID)
		if err != nil {
			return err
		}
		children, err := accounts.ListChildren(ctx, parent.ID)
		if err != nil {
			return err
		}
		total := decimal.Zero
		for _, child := range children {
			total = total.Add(child.Balance)
		}
		if err := accounts.UpdateBalance(ctx, parent.ID, total); err != nil {
			return err
		}
		parentID = parent.ParentID
	}
	return nil
}

// RecalculateAccountBalance derives a leaf account's balance strictly
// from transaction history (debits minus credits, hidden entries
// included) and writes it back. Ancestors are not touched; the caller
// propagates when needed.
func (e *Engine) RecalculateAccountBalance(
	ctx context.Context,
	uow repository.UnitOfWork,
	accountID uuid.UUID,
) (decimal.Decimal, error) {
	accounts, err := uow.AccountRepository()
	if err != nil {
		return decimal.Zero, err
	}
	transactions, err := uow.TransactionRepository()
	if err != nil {
		return decimal.Zero, err
	}
	if _, err := accounts.Get(ctx, accountID); err != nil {
		return decimal.Zero, err
	}
	derived, err := deriveLeafBalance(ctx, transactions, accountID)
	if err != nil {
		return decimal.Zero, err
	}
	if err := accounts.UpdateBalance(ctx, accountID, derived); err != nil {
		return decimal.Zero, err
	}
	return derived, nil
}

// RecalculateAllAccountBalances rebuilds every account's balance from
// scratch in one pass: leaves from transaction history, parents from
// their (already recalculated) children, lowest level first. It returns
// a per-account diff report ordered by account code.
func (e *Engine) RecalculateAllAccountBalances(
	ctx context.Context,
) (results []dto.BalanceRecalcResult, err error) {
	err = e.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		accounts, err := uow.AccountRepository()
		if err != nil {
			return err
		}
		all, derived, err := e.deriveBalances(ctx, uow)
		if err != nil {
			return err
		}
		for _, acct := range all {
			newBalance := derived[acct.ID]
			changed := !acct.Balance.Equal(newBalance)
			if changed {
				if err := accounts.UpdateBalance(ctx, acct.ID, newBalance); err != nil {
					return err
				}
			}
			results = append(results, dto.BalanceRecalcResult{
				AccountID:       acct.ID,
				Code:            acct.Code,
				Name:            acct.Name,
				PreviousBalance: acct.Balance,
				NewBalance:      newBalance,
				BalanceChanged:  changed,
			})
		}
		sort.Slice(results, func(i, j int) bool { return results[i].Code < results[j].Code })
		return nil
	})
	if err != nil {
		return nil, err
	}
	e.logger.Info("recalculated all account balances", "accounts", len(results))
	return results, nil
}

// ValidateAccountBalances independently derives every account's correct
// balance and compares it to the stored value. Read-only; it never
// mutates stored state.
func (e *Engine) ValidateAccountBalances(
	ctx context.Context,
) (report *dto.BalanceValidationReport, err error) {
	err = e.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		all, derived, err := e.deriveBalances(ctx, uow)
		if err != nil {
			return err
		}
		report = &dto.BalanceValidationReport{TotalAccountsChecked: len(all)}
		for _, acct := range all {
			expected := derived[acct.ID]
			if acct.Balance.Equal(expected) {
				continue
			}
			report.Issues = append(report.Issues, dto.BalanceIssue{
				AccountID:  acct.ID,
				Code:       acct.Code,
				Name:       acct.Name,
				Expected:   expected,
				Actual:     acct.Balance,
				Difference: acct.Balance.Sub(expected),
			})
		}
		sort.Slice(report.Issues, func(i, j int) bool {
			return report.Issues[i].Code < report.Issues[j].Code
		})
		report.AccountsWithIssues = len(report.Issues)
		report.IsValid = report.AccountsWithIssues == 0
		return nil
	})
	if err != nil {
		return nil, err
	}
	return report, nil
}

// deriveBalances computes the correct balance of every account: leaves
// from transaction history, parents as the sum of their children's
// derived balances. Parents are resolved in bounded bottom-up sweeps; if
// a sweep makes no progress the hierarchy contains a cycle.
func (e *Engine) deriveBalances(
	ctx context.Context,
	uow repository.UnitOfWork,
) ([]*ledger.Account, map[uuid.UUID]decimal.Decimal, error) {
	accounts, err := uow.AccountRepository()
	if err != nil {
		return nil, nil, err
	}
	transactions, err := uow.TransactionRepository()
	if err != nil {
		return nil, nil, err
	}
	all, err := accounts.ListAll(ctx)
	if err != nil {
		return nil, nil, err
	}

	childrenOf := make(map[uuid.UUID][]*ledger.Account)
	for _, acct := range all {
		if acct.ParentID != nil {
			childrenOf[*acct.ParentID] = append(childrenOf[*acct.ParentID], acct)
		}
	}

	derived := make(map[uuid.UUID]decimal.Decimal, len(all))
	for _, acct := range all {
		if len(childrenOf[acct.ID]) > 0 {
			continue
		}
		bal, err := deriveLeafBalance(ctx, transactions, acct.ID)
		if err != nil {
			return nil, nil, err
		}
		derived[acct.ID] = bal
	}

	// Parent balances, lowest level first. Each sweep resolves every
	// parent whose children are all resolved, so a forest of depth d
	// settles in d sweeps.
	for sweep := 0; len(derived) < len(all); sweep++ {
		if sweep >= ledger.MaxHierarchyDepth {
			return nil, nil, ledger.ErrHierarchyTooDeep
		}
		progressed := false
		for _, acct := range all {
			if _, done := derived[acct.ID]; done {
				continue
			}
			total := decimal.Zero
			ready := true
			for _, child := range childrenOf[acct.ID] {
				childBal, done := derived[child.ID]
				if !done {
					ready = false
					break
				}
				total = total.Add(childBal)
			}
			if ready {
				derived[acct.ID] = total
				progressed = true
			}
		}
		if !progressed {
			return nil, nil, ledger.ErrHierarchyTooDeep
		}
	}
	return all, derived, nil
}

// deriveLeafBalance nets an account's full transaction history: debits
// minus credits, hidden transactions included.
func deriveLeafBalance(
	ctx context.Context,
	transactions repository.TransactionRepository,
	accountID uuid.UUID,
) (decimal.Decimal, error) {
	debits, err := transactions.SumByAccount(ctx, accountID, ledger.SideDebit)
	if err != nil {
		return decimal.Zero, err
	}
	credits, err := transactions.SumByAccount(ctx, accountID, ledger.SideCredit)
	if err != nil {
		return decimal.Zero, err
	}
	return debits.Sub(credits), nil
}
