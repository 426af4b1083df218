// Package fixtures provides in-memory implementations of the repository
// contracts for service tests. The fakes mirror the store semantics the
// services rely on: not-found and duplicate-code errors, hidden-entry
// filtering, and ordered pagination. Do runs the callback directly
// without rollback; tests assert on no-mutation-before-failure ordering
// rather than transactional undo.
package fixtures

import (
	"context"
	"fmt"
	"reflect"
	"sort"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/pams-dev/pams/pkg/domain/ledger"
	"github.com/pams-dev/pams/pkg/domain/planning"
	"github.com/pams-dev/pams/pkg/dto"
	"github.com/pams-dev/pams/pkg/repository"
)

// MemoryUoW bundles the in-memory repositories behind the UnitOfWork
// contract.
type MemoryUoW struct {
	Accounts      *MemoryAccountRepo
	Transactions  *MemoryTransactionRepo
	FixedExpenses *MemoryFixedExpenseRepo
	SpendingPlans *MemorySpendingPlanRepo
	CardPayments  *MemoryCardPaymentRepo
	SalaryDetails *MemorySalaryDetailRepo
}

var _ repository.UnitOfWork = (*MemoryUoW)(nil)

// NewMemoryUoW creates an empty in-memory unit of work.
func NewMemoryUoW() *MemoryUoW {
	accounts := &MemoryAccountRepo{byID: make(map[uuid.UUID]*ledger.Account)}
	return &MemoryUoW{
		Accounts:      accounts,
		Transactions:  &MemoryTransactionRepo{byID: make(map[uuid.UUID]*ledger.Transaction), accounts: accounts},
		FixedExpenses: &MemoryFixedExpenseRepo{byID: make(map[uuid.UUID]*planning.FixedExpense)},
		SpendingPlans: &MemorySpendingPlanRepo{byID: make(map[uuid.UUID]*planning.SpendingPlan)},
		CardPayments:  &MemoryCardPaymentRepo{byID: make(map[uuid.UUID]*planning.CardPayment)},
		SalaryDetails: &MemorySalaryDetailRepo{byID: make(map[uuid.UUID]*planning.SalaryDetail)},
	}
}

// Do runs fn against the same in-memory state.
func (u *MemoryUoW) Do(_ context.Context, fn func(uow repository.UnitOfWork) error) error {
	return fn(u)
}

// GetRepository returns the repository matching the requested interface type.
func (u *MemoryUoW) GetRepository(repoType reflect.Type) (any, error) {
	switch repoType {
	case reflect.TypeOf((*repository.AccountRepository)(nil)).Elem():
		return u.Accounts, nil
	case reflect.TypeOf((*repository.TransactionRepository)(nil)).Elem():
		return u.Transactions, nil
	case reflect.TypeOf((*repository.FixedExpenseRepository)(nil)).Elem():
		return u.FixedExpenses, nil
	case reflect.TypeOf((*repository.SpendingPlanRepository)(nil)).Elem():
		return u.SpendingPlans, nil
	case reflect.TypeOf((*repository.CardPaymentRepository)(nil)).Elem():
		return u.CardPayments, nil
	case reflect.TypeOf((*repository.SalaryDetailRepository)(nil)).Elem():
		return u.SalaryDetails, nil
	}
	return nil, fmt.Errorf("unsupported repository type: %v", repoType)
}

// AccountRepository implements repository.UnitOfWork.
func (u *MemoryUoW) AccountRepository() (repository.AccountRepository, error) {
	return u.Accounts, nil
}

// TransactionRepository implements repository.UnitOfWork.
func (u *MemoryUoW) TransactionRepository() (repository.TransactionRepository, error) {
	return u.Transactions, nil
}

// FixedExpenseRepository implements repository.UnitOfWork.
func (u *MemoryUoW) FixedExpenseRepository() (repository.FixedExpenseRepository, error) {
	return u.FixedExpenses, nil
}

// SpendingPlanRepository implements repository.UnitOfWork.
func (u *MemoryUoW) SpendingPlanRepository() (repository.SpendingPlanRepository, error) {
	return u.SpendingPlans, nil
}

// CardPaymentRepository implements repository.UnitOfWork.
func (u *MemoryUoW) CardPaymentRepository() (repository.CardPaymentRepository, error) {
	return u.CardPayments, nil
}

// SalaryDetailRepository implements repository.UnitOfWork.
func (u *MemoryUoW) SalaryDetailRepository() (repository.SalaryDetailRepository, error) {
	return u.SalaryDetails, nil
}

// --- accounts ---

// MemoryAccountRepo is an in-memory AccountRepository.
type MemoryAccountRepo struct {
	byID map[uuid.UUID]*ledger.Account
}

var _ repository.AccountRepository = (*MemoryAccountRepo)(nil)

func copyAccount(a *ledger.Account) *ledger.Account {
	c := *a
	return &c
}

// Get implements repository.AccountRepository.
func (r *MemoryAccountRepo) Get(_ context.Context, id uuid.UUID) (*ledger.Account, error) {
	a, ok := r.byID[id]
	if !ok {
		return nil, ledger.ErrAccountNotFound
	}
	return copyAccount(a), nil
}

// GetByCode implements repository.AccountRepository.
func (r *MemoryAccountRepo) GetByCode(_ context.Context, code string) (*ledger.Account, error) {
	for _, a := range r.byID {
		if a.Code == code {
			return copyAccount(a), nil
		}
	}
	return nil, ledger.ErrAccountNotFound
}

// ListAll implements repository.AccountRepository.
func (r *MemoryAccountRepo) ListAll(_ context.Context) ([]*ledger.Account, error) {
	out := make([]*ledger.Account, 0, len(r.byID))
	for _, a := range r.byID {
		out = append(out, copyAccount(a))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out, nil
}

// ListByType implements repository.AccountRepository.
func (r *MemoryAccountRepo) ListByType(ctx context.Context, t ledger.AccountType) ([]*ledger.Account, error) {
	all, _ := r.ListAll(ctx)
	out := all[:0]
	for _, a := range all {
		if a.Type == t {
			out = append(out, a)
		}
	}
	return out, nil
}

// ListChildren implements repository.AccountRepository.
func (r *MemoryAccountRepo) ListChildren(ctx context.Context, parentID uuid.UUID) ([]*ledger.Account, error) {
	all, _ := r.ListAll(ctx)
	out := all[:0]
	for _, a := range all {
		if a.ParentID != nil && *a.ParentID == parentID {
			out = append(out, a)
		}
	}
	return out, nil
}

// Create implements repository.AccountRepository.
func (r *MemoryAccountRepo) Create(_ context.Context, a *ledger.Account) error {
	for _, existing := range r.byID {
		if existing.Code == a.Code {
			return ledger.ErrDuplicateCode
		}
	}
	r.byID[a.ID] = copyAccount(a)
	return nil
}

// Update implements repository.AccountRepository.
func (r *MemoryAccountRepo) Update(_ context.Context, id uuid.UUID, update dto.AccountUpdate) error {
	a, ok := r.byID[id]
	if !ok {
		return ledger.ErrAccountNotFound
	}
	if update.Code != nil {
		a.Code = *update.Code
	}
	if update.Name != nil {
		a.Name = *update.Name
	}
	if update.Type != nil {
		a.Type = ledger.AccountType(*update.Type)
	}
	if update.ParentID != nil {
		parentID := *update.ParentID
		a.ParentID = &parentID
	} else if update.ClearParent {
		a.ParentID = nil
	}
	if update.IsPortfolio != nil {
		a.IsPortfolio = *update.IsPortfolio
	}
	return nil
}

// UpdateBalance implements repository.AccountRepository.
func (r *MemoryAccountRepo) UpdateBalance(_ context.Context, id uuid.UUID, balance decimal.Decimal) error {
	a, ok := r.byID[id]
	if !ok {
		return ledger.ErrAccountNotFound
	}
	a.Balance = balance
	return nil
}

// Delete implements repository.AccountRepository.
func (r *MemoryAccountRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.byID, id)
	return nil
}

// --- transactions ---

// MemoryTransactionRepo is an in-memory TransactionRepository. It holds
// a reference to the account repo for the type-join sum.
type MemoryTransactionRepo struct {
	byID     map[uuid.UUID]*ledger.Transaction
	accounts *MemoryAccountRepo
}

var _ repository.TransactionRepository = (*MemoryTransactionRepo)(nil)

func copyTransaction(t *ledger.Transaction) *ledger.Transaction {
	c := *t
	return &c
}

// Get implements repository.TransactionRepository.
func (r *MemoryTransactionRepo) Get(_ context.Context, id uuid.UUID) (*ledger.Transaction, error) {
	t, ok := r.byID[id]
	if !ok {
		return nil, ledger.ErrTransactionNotFound
	}
	return copyTransaction(t), nil
}

func (r *MemoryTransactionRepo) visibleSorted() []*ledger.Transaction {
	var out []*ledger.Transaction
	for _, t := range r.byID {
		if !t.IsHidden {
			out = append(out, copyTransaction(t))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].TransactionDate != out[j].TransactionDate {
			return out[i].TransactionDate > out[j].TransactionDate
		}
		return out[i].CreatedAt > out[j].CreatedAt
	})
	return out
}

// ListPage implements repository.TransactionRepository.
func (r *MemoryTransactionRepo) ListPage(_ context.Context, page, limit int) (*dto.TransactionPage, error) {
	visible := r.visibleSorted()
	total := int64(len(visible))
	offset := (page - 1) * limit
	var items []*ledger.Transaction
	if offset < len(visible) {
		endIdx := offset + limit
		if endIdx > len(visible) {
			endIdx = len(visible)
		}
		items = visible[offset:endIdx]
	}
	return &dto.TransactionPage{
		Transactions:    items,
		TotalCount:      total,
		HasNextPage:     int64(offset+limit) < total,
		HasPreviousPage: page > 1,
	}, nil
}

// ListByDateRange implements repository.TransactionRepository.
func (r *MemoryTransactionRepo) ListByDateRange(_ context.Context, start, end string) ([]*ledger.Transaction, error) {
	var out []*ledger.Transaction
	for _, t := range r.visibleSorted() {
		if t.TransactionDate >= start && t.TransactionDate <= end {
			out = append(out, t)
		}
	}
	return out, nil
}

// CountByAccount implements repository.TransactionRepository.
func (r *MemoryTransactionRepo) CountByAccount(_ context.Context, accountID uuid.UUID) (int64, error) {
	var count int64
	for _, t := range r.byID {
		if t.DebitAccountID == accountID || t.CreditAccountID == accountID {
			count++
		}
	}
	return count, nil
}

func side(t *ledger.Transaction, s ledger.EntrySide) uuid.UUID {
	if s == ledger.SideCredit {
		return t.CreditAccountID
	}
	return t.DebitAccountID
}

// SumByAccount implements repository.TransactionRepository; hidden
// transactions are included.
func (r *MemoryTransactionRepo) SumByAccount(
	_ context.Context,
	accountID uuid.UUID,
	s ledger.EntrySide,
) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, t := range r.byID {
		if side(t, s) == accountID {
			total = total.Add(t.Amount)
		}
	}
	return total, nil
}

// SumByAccountAndDateRange implements repository.TransactionRepository;
// hidden transactions are excluded.
func (r *MemoryTransactionRepo) SumByAccountAndDateRange(
	_ context.Context,
	accountID uuid.UUID,
	s ledger.EntrySide,
	start, end string,
) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, t := range r.byID {
		if t.IsHidden || side(t, s) != accountID {
			continue
		}
		if t.TransactionDate >= start && t.TransactionDate <= end {
			total = total.Add(t.Amount)
		}
	}
	return total, nil
}

// SumByAccountTypeAndDateRange implements repository.TransactionRepository;
// hidden transactions are excluded.
func (r *MemoryTransactionRepo) SumByAccountTypeAndDateRange(
	ctx context.Context,
	accountType ledger.AccountType,
	s ledger.EntrySide,
	start, end string,
) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, t := range r.byID {
		if t.IsHidden || t.TransactionDate < start || t.TransactionDate > end {
			continue
		}
		acct, err := r.accounts.Get(ctx, side(t, s))
		if err != nil {
			continue
		}
		if acct.Type == accountType {
			total = total.Add(t.Amount)
		}
	}
	return total, nil
}

// Create implements repository.TransactionRepository.
func (r *MemoryTransactionRepo) Create(_ context.Context, tx *ledger.Transaction) error {
	r.byID[tx.ID] = copyTransaction(tx)
	return nil
}

// Update implements repository.TransactionRepository.
func (r *MemoryTransactionRepo) Update(_ context.Context, id uuid.UUID, update dto.TransactionUpdate) error {
	t, ok := r.byID[id]
	if !ok {
		return ledger.ErrTransactionNotFound
	}
	if update.Description != nil {
		t.Description = *update.Description
	}
	if update.Amount != nil {
		t.Amount = *update.Amount
	}
	if update.DebitAccountID != nil {
		t.DebitAccountID = *update.DebitAccountID
	}
	if update.CreditAccountID != nil {
		t.CreditAccountID = *update.CreditAccountID
	}
	if update.TransactionDate != nil {
		t.TransactionDate = *update.TransactionDate
	}
	return nil
}

// Delete implements repository.TransactionRepository.
func (r *MemoryTransactionRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.byID, id)
	return nil
}

// All returns every stored transaction, hidden included.
func (r *MemoryTransactionRepo) All() []*ledger.Transaction {
	out := make([]*ledger.Transaction, 0, len(r.byID))
	for _, t := range r.byID {
		out = append(out, copyTransaction(t))
	}
	return out
}

// SeedAccount inserts an account with a zero balance directly into the
// fake store and returns it.
func (u *MemoryUoW) SeedAccount(
	code, name string,
	t ledger.AccountType,
	parentID *uuid.UUID,
	portfolio bool,
) *ledger.Account {
	a := &ledger.Account{
		ID:          uuid.New(),
		Code:        code,
		Name:        name,
		Type:        t,
		ParentID:    parentID,
		Balance:     decimal.Zero,
		IsPortfolio: portfolio,
	}
	u.Accounts.byID[a.ID] = copyAccount(a)
	return a
}

// Balance reads an account's current stored balance from the fake store.
func (u *MemoryUoW) Balance(id uuid.UUID) decimal.Decimal {
	a, ok := u.Accounts.byID[id]
	if !ok {
		return decimal.Zero
	}
	return a.Balance
}
