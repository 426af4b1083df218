// Package planning implements the budgeting-table repositories on GORM.
package planning

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pams-dev/pams/pkg/domain/ledger"
	domain "github.com/pams-dev/pams/pkg/domain/planning"
	"github.com/pams-dev/pams/pkg/repository"
)

func notFound(what string, err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%w: %s", ledger.ErrNotFound, what)
	}
	return err
}

// --- fixed expenses ---

type fixedExpenseRepo struct {
	db *gorm.DB
}

// NewFixedExpense creates a fixed-expense repository bound to the given session.
func NewFixedExpense(db *gorm.DB) repository.FixedExpenseRepository {
	return &fixedExpenseRepo{db: db}
}

func (r *fixedExpenseRepo) Get(ctx context.Context, id uuid.UUID) (*domain.FixedExpense, error) {
	var m FixedExpense
	if err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		return nil, notFound("fixed expense", err)
	}
	return mapFixedExpense(&m), nil
}

func (r *fixedExpenseRepo) ListAll(ctx context.Context) ([]*domain.FixedExpense, error) {
	var ms []FixedExpense
	if err := r.db.WithContext(ctx).Order("created_at").Find(&ms).Error; err != nil {
		return nil, err
	}
	out := make([]*domain.FixedExpense, 0, len(ms))
	for i := range ms {
		out = append(out, mapFixedExpense(&ms[i]))
	}
	return out, nil
}

func (r *fixedExpenseRepo) Create(ctx context.Context, e *domain.FixedExpense) error {
	return r.db.WithContext(ctx).Create(fixedExpenseModel(e)).Error
}

func (r *fixedExpenseRepo) Update(ctx context.Context, e *domain.FixedExpense) error {
	return r.db.WithContext(ctx).Save(fixedExpenseModel(e)).Error
}

func (r *fixedExpenseRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&FixedExpense{}, "id = ?", id).Error
}

func fixedExpenseModel(e *domain.FixedExpense) *FixedExpense {
	return &FixedExpense{
		ID:            e.ID,
		Category:      e.Category,
		PaymentMethod: e.PaymentMethod,
		Amount:        e.Amount,
		Currency:      e.Currency,
		PaymentDate:   e.PaymentDate,
		Cycle:         string(e.Cycle),
		Note:          e.Note,
		CreatedAt:     e.CreatedAt,
	}
}

func mapFixedExpense(m *FixedExpense) *domain.FixedExpense {
	return &domain.FixedExpense{
		ID:            m.ID,
		Category:      m.Category,
		PaymentMethod: m.PaymentMethod,
		Amount:        m.Amount,
		Currency:      m.Currency,
		PaymentDate:   m.PaymentDate,
		Cycle:         domain.ExpenseCycle(m.Cycle),
		Note:          m.Note,
		CreatedAt:     m.CreatedAt,
	}
}

// --- spending plans ---

type spendingPlanRepo struct {
	db *gorm.DB
}

// NewSpendingPlan creates a spending-plan repository bound to the given session.
func NewSpendingPlan(db *gorm.DB) repository.SpendingPlanRepository {
	return &spendingPlanRepo{db: db}
}

func (r *spendingPlanRepo) Get(ctx context.Context, id uuid.UUID) (*domain.SpendingPlan, error) {
	var m SpendingPlan
	if err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		return nil, notFound("spending plan", err)
	}
	return mapSpendingPlan(&m), nil
}

func (r *spendingPlanRepo) ListByMonth(ctx context.Context, year, month int) ([]*domain.SpendingPlan, error) {
	var ms []SpendingPlan
	if err := r.db.WithContext(ctx).
		Where("year = ? AND month = ?", year, month).
		Order("created_at").Find(&ms).Error; err != nil {
		return nil, err
	}
	out := make([]*domain.SpendingPlan, 0, len(ms))
	for i := range ms {
		out = append(out, mapSpendingPlan(&ms[i]))
	}
	return out, nil
}

func (r *spendingPlanRepo) Create(ctx context.Context, p *domain.SpendingPlan) error {
	return r.db.WithContext(ctx).Create(spendingPlanModel(p)).Error
}

func (r *spendingPlanRepo) Update(ctx context.Context, p *domain.SpendingPlan) error {
	return r.db.WithContext(ctx).Save(spendingPlanModel(p)).Error
}

func (r *spendingPlanRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&SpendingPlan{}, "id = ?", id).Error
}

func (r *spendingPlanRepo) DeleteByMonth(ctx context.Context, year, month int) error {
	return r.db.WithContext(ctx).
		Where("year = ? AND month = ?", year, month).
		Delete(&SpendingPlan{}).Error
}

func spendingPlanModel(p *domain.SpendingPlan) *SpendingPlan {
	return &SpendingPlan{
		ID:          p.ID,
		Year:        p.Year,
		Month:       p.Month,
		Salary:      p.Salary,
		Category:    p.Category,
		Description: p.Description,
		Amount:      p.Amount,
		CreatedAt:   p.CreatedAt,
	}
}

func mapSpendingPlan(m *SpendingPlan) *domain.SpendingPlan {
	return &domain.SpendingPlan{
		ID:          m.ID,
		Year:        m.Year,
		Month:       m.Month,
		Salary:      m.Salary,
		Category:    m.Category,
		Description: m.Description,
		Amount:      m.Amount,
		CreatedAt:   m.CreatedAt,
	}
}

// --- card payments ---

type cardPaymentRepo struct {
	db *gorm.DB
}

// NewCardPayment creates a card-payment repository bound to the given session.
func NewCardPayment(db *gorm.DB) repository.CardPaymentRepository {
	return &cardPaymentRepo{db: db}
}

func (r *cardPaymentRepo) GetByAccountAndMonth(
	ctx context.Context,
	accountID uuid.UUID,
	year, month int,
) (*domain.CardPayment, error) {
	var m CardPayment
	err := r.db.WithContext(ctx).
		First(&m, "account_id = ? AND year = ? AND month = ?", accountID, year, month).Error
	if err != nil {
		return nil, notFound("card payment", err)
	}
	return mapCardPayment(&m), nil
}

func (r *cardPaymentRepo) ListByMonth(ctx context.Context, year, month int) ([]*domain.CardPayment, error) {
	var ms []CardPayment
	if err := r.db.WithContext(ctx).
		Where("year = ? AND month = ?", year, month).Find(&ms).Error; err != nil {
		return nil, err
	}
	out := make([]*domain.CardPayment, 0, len(ms))
	for i := range ms {
		out = append(out, mapCardPayment(&ms[i]))
	}
	return out, nil
}

func (r *cardPaymentRepo) Create(ctx context.Context, p *domain.CardPayment) error {
	return r.db.WithContext(ctx).Create(cardPaymentModel(p)).Error
}

func (r *cardPaymentRepo) Update(ctx context.Context, p *domain.CardPayment) error {
	return r.db.WithContext(ctx).Save(cardPaymentModel(p)).Error
}

func cardPaymentModel(p *domain.CardPayment) *CardPayment {
	return &CardPayment{
		ID:            p.ID,
		AccountID:     p.AccountID,
		Year:          p.Year,
		Month:         p.Month,
		TotalPayment:  p.TotalPayment,
		TotalDiscount: p.TotalDiscount,
		TotalBill:     p.TotalBill,
		CreatedAt:     p.CreatedAt,
	}
}

func mapCardPayment(m *CardPayment) *domain.CardPayment {
	return &domain.CardPayment{
		ID:            m.ID,
		AccountID:     m.AccountID,
		Year:          m.Year,
		Month:         m.Month,
		TotalPayment:  m.TotalPayment,
		TotalDiscount: m.TotalDiscount,
		TotalBill:     m.TotalBill,
		CreatedAt:     m.CreatedAt,
	}
}

// --- salary details ---

type salaryDetailRepo struct {
	db *gorm.DB
}

// NewSalaryDetail creates a salary-detail repository bound to the given session.
func NewSalaryDetail(db *gorm.DB) repository.SalaryDetailRepository {
	return &salaryDetailRepo{db: db}
}

func (r *salaryDetailRepo) GetByMonth(ctx context.Context, year, month int) (*domain.SalaryDetail, error) {
	var m SalaryDetail
	err := r.db.WithContext(ctx).First(&m, "year = ? AND month = ?", year, month).Error
	if err != nil {
		return nil, notFound("salary detail", err)
	}
	return mapSalaryDetail(&m), nil
}

func (r *salaryDetailRepo) ListAll(ctx context.Context) ([]*domain.SalaryDetail, error) {
	var ms []SalaryDetail
	if err := r.db.WithContext(ctx).
		Order("year DESC, month DESC").Find(&ms).Error; err != nil {
		return nil, err
	}
	out := make([]*domain.SalaryDetail, 0, len(ms))
	for i := range ms {
		out = append(out, mapSalaryDetail(&ms[i]))
	}
	return out, nil
}

func (r *salaryDetailRepo) Create(ctx context.Context, d *domain.SalaryDetail) error {
	return r.db.WithContext(ctx).Create(salaryDetailModel(d)).Error
}

func (r *salaryDetailRepo) Update(ctx context.Context, d *domain.SalaryDetail) error {
	return r.db.WithContext(ctx).Save(salaryDetailModel(d)).Error
}

func salaryDetailModel(d *domain.SalaryDetail) *SalaryDetail {
	return &SalaryDetail{
		ID:                  d.ID,
		Year:                d.Year,
		Month:               d.Month,
		BaseSalary:          d.BaseSalary,
		MealAllowance:       d.MealAllowance,
		OvertimePay:         d.OvertimePay,
		NightPay:            d.NightPay,
		VacationPay:         d.VacationPay,
		Incentive:           d.Incentive,
		NationalPension:     d.NationalPension,
		HealthInsurance:     d.HealthInsurance,
		EmploymentInsurance: d.EmploymentInsurance,
		LongTermCare:        d.LongTermCare,
		IncomeTax:           d.IncomeTax,
		LocalTax:            d.LocalTax,
		TotalGross:          d.TotalGross,
		TotalDeduction:      d.TotalDeduction,
		NetPay:              d.NetPay,
		CreatedAt:           d.CreatedAt,
	}
}

func mapSalaryDetail(m *SalaryDetail) *domain.SalaryDetail {
	return &domain.SalaryDetail{
		ID:                  m.ID,
		Year:                m.Year,
		Month:               m.Month,
		BaseSalary:          m.BaseSalary,
		MealAllowance:       m.MealAllowance,
		OvertimePay:         m.OvertimePay,
		NightPay:            m.NightPay,
		VacationPay:         m.VacationPay,
		Incentive:           m.Incentive,
		NationalPension:     m.NationalPension,
		HealthInsurance:     m.HealthInsurance,
		EmploymentInsurance: m.EmploymentInsurance,
		LongTermCare:        m.LongTermCare,
		IncomeTax:           m.IncomeTax,
		LocalTax:            m.LocalTax,
		TotalGross:          m.TotalGross,
		TotalDeduction:      m.TotalDeduction,
		NetPay:              m.NetPay,
		CreatedAt:           m.CreatedAt,
	}
}
