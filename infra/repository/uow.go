// Package repository provides the GORM-backed unit of work binding the
// concrete repositories to one transaction.
package repository

import (
	"context"
	"database/sql"
	"fmt"
	"reflect"

	"gorm.io/gorm"

	accountrepo "github.com/pams-dev/pams/infra/repository/account"
	planningrepo "github.com/pams-dev/pams/infra/repository/planning"
	transactionrepo "github.com/pams-dev/pams/infra/repository/transaction"
	"github.com/pams-dev/pams/pkg/repository"
)

// UoW provides transaction boundary and repository access in one
// abstraction. All repositories handed out inside Do share the same DB
// transaction, so a transaction-row write and its balance cascade commit
// or roll back together.
type UoW struct {
	db           *gorm.DB
	tx           *gorm.DB
	repoRegistry map[reflect.Type]func(*gorm.DB) any
}

// NewUoW creates a new UoW for the given *gorm.DB.
func NewUoW(db *gorm.DB) *UoW {
	return &UoW{
		db: db,
		repoRegistry: map[reflect.Type]func(*gorm.DB) any{
			reflect.TypeOf((*repository.AccountRepository)(nil)).Elem():      func(db *gorm.DB) any { return accountrepo.New(db) },
			reflect.TypeOf((*repository.TransactionRepository)(nil)).Elem():  func(db *gorm.DB) any { return transactionrepo.New(db) },
			reflect.TypeOf((*repository.FixedExpenseRepository)(nil)).Elem(): func(db *gorm.DB) any { return planningrepo.NewFixedExpense(db) },
			reflect.TypeOf((*repository.SpendingPlanRepository)(nil)).Elem(): func(db *gorm.DB) any { return planningrepo.NewSpendingPlan(db) },
			reflect.TypeOf((*repository.CardPaymentRepository)(nil)).Elem():  func(db *gorm.DB) any { return planningrepo.NewCardPayment(db) },
			reflect.TypeOf((*repository.SalaryDetailRepository)(nil)).Elem(): func(db *gorm.DB) any { return planningrepo.NewSalaryDetail(db) },
		},
	}
}

// Do runs fn in a serializable transaction boundary, providing a UoW
// whose repositories are bound to that transaction. Serializable
// isolation closes the read-modify-write race between concurrent balance
// cascades touching overlapping subtrees.
func (u *UoW) Do(ctx context.Context, fn func(uow repository.UnitOfWork) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txnUow := &UoW{db: u.db, tx: tx, repoRegistry: u.repoRegistry}
		return fn(txnUow)
	}, &sql.TxOptions{Isolation: sql.LevelSerializable})
}

// GetRepository provides type-safe access to repositories using the
// transaction session.
func (u *UoW) GetRepository(repoType reflect.Type) (any, error) {
	constructor, ok := u.repoRegistry[repoType]
	if !ok {
		return nil, fmt.Errorf("unsupported repository type: %v", repoType)
	}
	session := u.tx
	if session == nil {
		session = u.db
	}
	return constructor(session), nil
}

// AccountRepository returns the account repository bound to the current session.
func (u *UoW) AccountRepository() (repository.AccountRepository, error) {
	repo, err := u.GetRepository(reflect.TypeOf((*repository.AccountRepository)(nil)).Elem())
	if err != nil {
		return nil, err
	}
	return repo.(repository.AccountRepository), nil
}

// TransactionRepository returns the transaction repository bound to the current session.
func (u *UoW) TransactionRepository() (repository.TransactionRepository, error) {
	repo, err := u.GetRepository(reflect.TypeOf((*repository.TransactionRepository)(nil)).Elem())
	if err != nil {
		return nil, err
	}
	return repo.(repository.TransactionRepository), nil
}

// FixedExpenseRepository returns the fixed-expense repository bound to the current session.
func (u *UoW) FixedExpenseRepository() (repository.FixedExpenseRepository, error) {
	repo, err := u.GetRepository(reflect.TypeOf((*repository.FixedExpenseRepository)(nil)).Elem())
	if err != nil {
		return nil, err
	}
	return repo.(repository.FixedExpenseRepository), nil
}

// SpendingPlanRepository returns the spending-plan repository bound to the current session.
func (u *UoW) SpendingPlanRepository() (repository.SpendingPlanRepository, error) {
	repo, err := u.GetRepository(reflect.TypeOf((*repository.SpendingPlanRepository)(nil)).Elem())
	if err != nil {
		return nil, err
	}
	return repo.(repository.SpendingPlanRepository), nil
}

// CardPaymentRepository returns the card-payment repository bound to the current session.
func (u *UoW) CardPaymentRepository() (repository.CardPaymentRepository, error) {
	repo, err := u.GetRepository(reflect.TypeOf((*repository.CardPaymentRepository)(nil)).Elem())
	if err != nil {
		return nil, err
	}
	return repo.(repository.CardPaymentRepository), nil
}

// SalaryDetailRepository returns the salary-detail repository bound to the current session.
func (u *UoW) SalaryDetailRepository() (repository.SalaryDetailRepository, error) {
	repo, err := u.GetRepository(reflect.TypeOf((*repository.SalaryDetailRepository)(nil)).Elem())
	if err != nil {
		return nil, err
	}
	return repo.(repository.SalaryDetailRepository), nil
}
