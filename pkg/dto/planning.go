package dto

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// FixedExpenseCreate is the input for registering a recurring expense.
type FixedExpenseCreate struct {
	Category      string          `validate:"required"`
	PaymentMethod string          `validate:"required"`
	Amount        decimal.Decimal `validate:"required"`
	Currency      string          `validate:"omitempty,len=3"`
	PaymentDate   string          `validate:"required"`
	Cycle         string          `validate:"required,oneof=MONTHLY YEARLY"`
	Note          *string
}

// SpendingPlanCreate is the input for one planned line item of a month.
type SpendingPlanCreate struct {
	Year        int `validate:"required"`
	Month       int `validate:"required,min=1,max=12"`
	Salary      *decimal.Decimal
	Category    string `validate:"required"`
	Description *string
	Amount      decimal.Decimal `validate:"required"`
}

// CardPaymentUpsert sets a card account's billing for one month.
// TotalBill is derived, never supplied.
type CardPaymentUpsert struct {
	TotalPayment  decimal.Decimal
	TotalDiscount decimal.Decimal
}

// SalaryDetailUpsert sets the salary breakdown for one month. Totals are
// recomputed from the component fields on every write.
type SalaryDetailUpsert struct {
	BaseSalary          *decimal.Decimal
	MealAllowance       *decimal.Decimal
	OvertimePay         *decimal.Decimal
	NightPay            *decimal.Decimal
	VacationPay         *decimal.Decimal
	Incentive           *decimal.Decimal
	NationalPension     *decimal.Decimal
	HealthInsurance     *decimal.Decimal
	EmploymentInsurance *decimal.Decimal
	LongTermCare        *decimal.Decimal
	IncomeTax           *decimal.Decimal
	LocalTax            *decimal.Decimal
}

// FixedExpenseSummary aggregates the registered fixed expenses with all
// amounts converted to KRW at the current rate.
type FixedExpenseSummary struct {
	MonthlyTotalKRW decimal.Decimal
	YearlyTotalKRW  decimal.Decimal
	ByCategory      map[string]decimal.Decimal
}

// CardBillingMonth is one month of a card account's billing view. The
// payment total comes from the ledger, the discount from the tracked
// billing row, and the actual bill is their difference.
type CardBillingMonth struct {
	Year         int
	Month        int
	TotalPayment decimal.Decimal
	Discount     decimal.Decimal
	ActualBill   decimal.Decimal
}

// CardSummary joins a card account's current and previous billing
// months.
type CardSummary struct {
	AccountID    uuid.UUID
	AccountName  string
	CurrentMonth CardBillingMonth
	LastMonth    CardBillingMonth
}
