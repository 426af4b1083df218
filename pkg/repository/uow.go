package repository

import (
	"context"
	"reflect"
)

// UnitOfWork defines the contract for transactional work and type-safe
// repository access.
//
// Why is GetRepository part of UnitOfWork?
// - Ensures all repositories use the same DB session/transaction, so a
//   transaction-row write and its balance cascade commit or roll back as
//   one unit.
// - Keeps service code focused on business logic.
// - Centralizes repository wiring and makes the whole thing mockable.
type UnitOfWork interface {
	// Do executes fn within a transaction boundary. The UnitOfWork
	// passed to fn hands out repositories bound to that transaction.
	// If fn returns an error the transaction is rolled back.
	Do(ctx context.Context, fn func(uow UnitOfWork) error) error

	// GetRepository returns a repository of the requested interface
	// type, bound to the current transaction/session.
	GetRepository(repoType reflect.Type) (any, error)

	// Type-safe convenience accessors.
	AccountRepository() (AccountRepository, error)
	TransactionRepository() (TransactionRepository, error)
	FixedExpenseRepository() (FixedExpenseRepository, error)
	SpendingPlanRepository() (SpendingPlanRepository, error)
	CardPaymentRepository() (CardPaymentRepository, error)
	SalaryDetailRepository() (SalaryDetailRepository, error)
}
