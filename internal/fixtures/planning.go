package fixtures

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"github.com/pams-dev/pams/pkg/domain/ledger"
	"github.com/pams-dev/pams/pkg/domain/planning"
	"github.com/pams-dev/pams/pkg/repository"
)

// MemoryFixedExpenseRepo is an in-memory FixedExpenseRepository.
type MemoryFixedExpenseRepo struct {
	byID map[uuid.UUID]*planning.FixedExpense
}

var _ repository.FixedExpenseRepository = (*MemoryFixedExpenseRepo)(nil)

// Get implements repository.FixedExpenseRepository.
func (r *MemoryFixedExpenseRepo) Get(_ context.Context, id uuid.UUID) (*planning.FixedExpense, error) {
	e, ok := r.byID[id]
	if !ok {
		return nil, ledger.ErrNotFound
	}
	c := *e
	return &c, nil
}

// ListAll implements repository.FixedExpenseRepository.
func (r *MemoryFixedExpenseRepo) ListAll(_ context.Context) ([]*planning.FixedExpense, error) {
	out := make([]*planning.FixedExpense, 0, len(r.byID))
	for _, e := range r.byID {
		c := *e
		out = append(out, &c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt < out[j].CreatedAt })
	return out, nil
}

// Create implements repository.FixedExpenseRepository.
func (r *MemoryFixedExpenseRepo) Create(_ context.Context, e *planning.FixedExpense) error {
	c := *e
	r.byID[e.ID] = &c
	return nil
}

// Update implements repository.FixedExpenseRepository.
func (r *MemoryFixedExpenseRepo) Update(_ context.Context, e *planning.FixedExpense) error {
	if _, ok := r.byID[e.ID]; !ok {
		return ledger.ErrNotFound
	}
	c := *e
	r.byID[e.ID] = &c
	return nil
}

// Delete implements repository.FixedExpenseRepository.
func (r *MemoryFixedExpenseRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.byID, id)
	return nil
}

// MemorySpendingPlanRepo is an in-memory SpendingPlanRepository.
type MemorySpendingPlanRepo struct {
	byID map[uuid.UUID]*planning.SpendingPlan
}

var _ repository.SpendingPlanRepository = (*MemorySpendingPlanRepo)(nil)

// Get implements repository.SpendingPlanRepository.
func (r *MemorySpendingPlanRepo) Get(_ context.Context, id uuid.UUID) (*planning.SpendingPlan, error) {
	p, ok := r.byID[id]
	if !ok {
		return nil, ledger.ErrNotFound
	}
	c := *p
	return &c, nil
}

// ListByMonth implements repository.SpendingPlanRepository.
func (r *MemorySpendingPlanRepo) ListByMonth(_ context.Context, year, month int) ([]*planning.SpendingPlan, error) {
	var out []*planning.SpendingPlan
	for _, p := range r.byID {
		if p.Year == year && p.Month == month {
			c := *p
			out = append(out, &c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt < out[j].CreatedAt })
	return out, nil
}

// Create implements repository.SpendingPlanRepository.
func (r *MemorySpendingPlanRepo) Create(_ context.Context, p *planning.SpendingPlan) error {
	c := *p
	r.byID[p.ID] = &c
	return nil
}

// Update implements repository.SpendingPlanRepository.
func (r *MemorySpendingPlanRepo) Update(_ context.Context, p *planning.SpendingPlan) error {
	if _, ok := r.byID[p.ID]; !ok {
		return ledger.ErrNotFound
	}
	c := *p
	r.byID[p.ID] = &c
	return nil
}

// Delete implements repository.SpendingPlanRepository.
func (r *MemorySpendingPlanRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.byID, id)
	return nil
}

// DeleteByMonth implements repository.SpendingPlanRepository.
func (r *MemorySpendingPlanRepo) DeleteByMonth(_ context.Context, year, month int) error {
	for id, p := range r.byID {
		if p.Year == year && p.Month == month {
			delete(r.byID, id)
		}
	}
	return nil
}

// MemoryCardPaymentRepo is an in-memory CardPaymentRepository.
type MemoryCardPaymentRepo struct {
	byID map[uuid.UUID]*planning.CardPayment
}

var _ repository.CardPaymentRepository = (*MemoryCardPaymentRepo)(nil)

// GetByAccountAndMonth implements repository.CardPaymentRepository.
func (r *MemoryCardPaymentRepo) GetByAccountAndMonth(
	_ context.Context,
	accountID uuid.UUID,
	year, month int,
) (*planning.CardPayment, error) {
	for _, p := range r.byID {
		if p.AccountID == accountID && p.Year == year && p.Month == month {
			c := *p
			return &c, nil
		}
	}
	return nil, ledger.ErrNotFound
}

// ListByMonth implements repository.CardPaymentRepository.
func (r *MemoryCardPaymentRepo) ListByMonth(_ context.Context, year, month int) ([]*planning.CardPayment, error) {
	var out []*planning.CardPayment
	for _, p := range r.byID {
		if p.Year == year && p.Month == month {
			c := *p
			out = append(out, &c)
		}
	}
	return out, nil
}

// Create implements repository.CardPaymentRepository.
func (r *MemoryCardPaymentRepo) Create(_ context.Context, p *planning.CardPayment) error {
	c := *p
	r.byID[p.ID] = &c
	return nil
}

// Update implements repository.CardPaymentRepository.
func (r *MemoryCardPaymentRepo) Update(_ context.Context, p *planning.CardPayment) error {
	if _, ok := r.byID[p.ID]; !ok {
		return ledger.ErrNotFound
	}
	c := *p
	r.byID[p.ID] = &c
	return nil
}

// MemorySalaryDetailRepo is an in-memory SalaryDetailRepository.
type MemorySalaryDetailRepo struct {
	byID map[uuid.UUID]*planning.SalaryDetail
}

var _ repository.SalaryDetailRepository = (*MemorySalaryDetailRepo)(nil)

// GetByMonth implements repository.SalaryDetailRepository.
func (r *MemorySalaryDetailRepo) GetByMonth(_ context.Context, year, month int) (*planning.SalaryDetail, error) {
	for _, d := range r.byID {
		if d.Year == year && d.Month == month {
			c := *d
			return &c, nil
		}
	}
	return nil, ledger.ErrNotFound
}

// ListAll implements repository.SalaryDetailRepository.
func (r *MemorySalaryDetailRepo) ListAll(_ context.Context) ([]*planning.SalaryDetail, error) {
	out := make([]*planning.SalaryDetail, 0, len(r.byID))
	for _, d := range r.byID {
		c := *d
		out = append(out, &c)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Year != out[j].Year {
			return out[i].Year > out[j].Year
		}
		return out[i].Month > out[j].Month
	})
	return out, nil
}

// Create implements repository.SalaryDetailRepository.
func (r *MemorySalaryDetailRepo) Create(_ context.Context, d *planning.SalaryDetail) error {
	c := *d
	r.byID[d.ID] = &c
	return nil
}

// Update implements repository.SalaryDetailRepository.
func (r *MemorySalaryDetailRepo) Update(_ context.Context, d *planning.SalaryDetail) error {
	if _, ok := r.byID[d.ID]; !ok {
		return ledger.ErrNotFound
	}
	c := *d
	r.byID[d.ID] = &c
	return nil
}
