// Package account orchestrates the account lifecycle: creation, partial
// updates, deletion-safety rules, hierarchy queries, and direct balance
// overwrites with parent rollups.
package account

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
)

// Service provides account operations.
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

// Get returns an account by id.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (acct *ledger.Account, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		accounts, err := uow.AccountRepository()
		if err != nil {
			return err
		}
		acct, err = accounts.Get(ctx, id)
		return err
	})
	return
}

// GetByCode returns one account by its chart code.
func (s *Service) GetByCode(ctx context.Context, code string) (acct *ledger.Account, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		accounts, err := uow.AccountRepository()
		if err != nil {
			return err
		}
		acct, err = accounts.GetByCode(ctx, code)
		return err
	})
	return
}

// ListAll returns every account as a flat list.
func (s *Service) ListAll(ctx context.Context) (accts []*ledger.Account, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		accounts, err := uow.AccountRepository()
		if err != nil {
			return err
		}
		accts, err = accounts.ListAll(ctx)
		return err
	})
	return
}

// ListByType returns the accounts of one account type.
func (s *Service) ListByType(ctx context.Context, t ledger.AccountType) (accts []*ledger.Account, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		accounts, err := uow.AccountRepository()
		if err != nil {
			return err
		}
		accts, err = accounts.ListByType(ctx, t)
		return err
	})
	return
}

// GetHierarchy returns the account forest: every account appears exactly
// once, either as a root or nested under its parent.
func (s *Service) GetHierarchy(ctx context.Context) ([]*ledger.AccountNode, error) {
	all, err := s.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	return ledger.BuildHierarchy(all), nil
}

// Create persists a new account with a zero balance.
func (s *Service) Create(ctx context.Context, input dto.AccountCreate) (created *ledger.Account, err error) {
	if err = s.validate.Struct(input); err != nil {
		return nil, fmt.Errorf("%w: %w", ledger.ErrValidation, err)
	}
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		accounts, err := uow.AccountRepository()
		if err != nil {
			return err
		}
		if input.ParentID != nil {
			if _, err := accounts.Get(ctx, *input.ParentID); err != nil {
				return err
			}
		}
		created = &ledger.Account{
			ID:          uuid.New(),
			Code:        input.Code,
			Name:        input.Name,
			Type:        ledger.AccountType(input.Type),
			ParentID:    input.ParentID,
			Balance:     decimal.Zero,
			IsPortfolio: input.IsPortfolio,
		}
		return accounts.Create(ctx, created)
	})
	if err != nil {
		s.logger.Error("account create failed", "code", input.Code, "error", err)
		return nil, err
	}
	s.logger.Info("account created", "id", created.ID, "code", created.Code)
	return created, nil
}

// Update applies a partial metadata update. Balances are not touched
// here; they move only through the balance engine.
func (s *Service) Update(ctx context.Context, id uuid.UUID, input dto.AccountUpdate) (updated *ledger.Account, err error) {
	if err = s.validate.Struct(input); err != nil {
		return nil, fmt.Errorf("%w: %w", ledger.ErrValidation, err)
	}
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		accounts, err := uow.AccountRepository()
		if err != nil {
			return err
		}
		if _, err := accounts.Get(ctx, id); err != nil {
			return err
		}
		if input.ParentID != nil {
			if *input.ParentID == id {
				return fmt.Errorf("%w: account cannot be its own parent", ledger.ErrValidation)
			}
			parent, err := accounts.Get(ctx, *input.ParentID)
			if err != nil {
				return err
			}
			// Walk the proposed parent's ancestors so re-parenting
			// cannot close a cycle.
			for depth := 0; parent.ParentID != nil; depth++ {
				if depth >= ledger.MaxHierarchyDepth {
					return ledger.ErrHierarchyTooDeep
				}
				if *parent.ParentID == id {
					return fmt.Errorf("%w: new parent is a descendant of this account", ledger.ErrValidation)
				}
				parent, err = accounts.Get(ctx, *parent.ParentID)
				if err != nil {
					return err
				}
			}
		}
		if err := accounts.Update(ctx, id, input); err != nil {
			return err
		}
		updated, err = accounts.Get(ctx, id)
		return err
	})
	if err != nil {
		s.logger.Error("account update failed", "id", id, "error", err)
		return nil, err
	}
	s.logger.Info("account updated", "id", id)
	return updated, nil
}

// Delete removes an account. Only leaf accounts with no transaction
// history on either side are deletable; anything else is a conflict and
// leaves all state unchanged.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		accounts, err := uow.AccountRepository()
		if err != nil {
			return err
		}
		if _, err := accounts.Get(ctx, id); err != nil {
			return err
		}
		children, err := accounts.ListChildren(ctx, id)
		if err != nil {
			return err
		}
		if len(children) > 0 {
			return ledger.ErrHasChildAccounts
		}
		transactions, err := uow.TransactionRepository()
		if err != nil {
			return err
		}
		refs, err := transactions.CountByAccount(ctx, id)
		if err != nil {
			return err
		}
		if refs > 0 {
			return ledger.ErrHasTransactionHistory
		}
		return accounts.Delete(ctx, id)
	})
	if err != nil {
		s.logger.Error("account delete failed", "id", id, "error", err)
		return err
	}
	s.logger.Info("account deleted", "id", id)
	return nil
}

// UpdateBalance overwrites an account's stored balance directly and
// recomputes every ancestor as sum-of-children up to the root. Intended
// for repair paths; normal balance movement goes through transactions.
func (s *Service) UpdateBalance(ctx context.Context, id uuid.UUID, newBalance decimal.Decimal) error {
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		accounts, err := uow.AccountRepository()
		if err != nil {
			return err
		}
		acct, err := accounts.Get(ctx, id)
		if err != nil {
			return err
		}
		if err := accounts.UpdateBalance(ctx, id, newBalance); err != nil {
			return err
		}
		return s.balance.PropagateAncestors(ctx, uow, acct.ParentID)
	})
	if err != nil {
		s.logger.Error("balance overwrite failed", "id", id, "error", err)
		return err
	}
	s.logger.Info("balance overwritten", "id", id, "balance", newBalance)
	return nil
}
