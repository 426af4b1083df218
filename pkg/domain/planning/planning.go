// Package planning holds the budgeting records that sit next to the
// ledger: fixed expenses, monthly spending plans, card payment tracking,
// and salary breakdowns. These are plain record stores with no balance
// invariants of their own.
package planning

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ExpenseCycle says how often a fixed expense recurs.
type ExpenseCycle string

const (
	CycleMonthly ExpenseCycle = "MONTHLY"
	CycleYearly  ExpenseCycle = "YEARLY"
)

// FixedExpense is a recurring payment such as rent or an insurance
// premium. Amounts may be in a foreign currency; summaries convert to
// KRW through the exchange-rate provider.
type FixedExpense struct {
	ID            uuid.UUID
	Category      string
	PaymentMethod string
	Amount        decimal.Decimal
	Currency      string
	PaymentDate   string
	Cycle         ExpenseCycle
	Note          *string
	CreatedAt     string
}

// SpendingPlan is one planned line item for a given month.
type SpendingPlan struct {
	ID          uuid.UUID
	Year        int
	Month       int
	Salary      *decimal.Decimal
	Category    string
	Description *string
	Amount      decimal.Decimal
	CreatedAt   string
}

// CardPayment tracks one card account's billing for a month. TotalBill
// is always TotalPayment minus TotalDiscount; the service recomputes it
// on every write.
type CardPayment struct {
	ID            uuid.UUID
	AccountID     uuid.UUID
	Year          int
	Month         int
	TotalPayment  decimal.Decimal
	TotalDiscount decimal.Decimal
	TotalBill     decimal.Decimal
	CreatedAt     string
}

// SalaryDetail is the gross-to-net breakdown of one month's salary.
// Nil fields were not entered; totals are computed over present fields.
type SalaryDetail struct {
	ID                  uuid.UUID
	Year                int
	Month               int
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
	TotalGross          decimal.Decimal
	TotalDeduction      decimal.Decimal
	NetPay              decimal.Decimal
	CreatedAt           string
}

// Earnings lists the salary components that add to gross pay.
func (d *SalaryDetail) Earnings() []*decimal.Decimal {
	return []*decimal.Decimal{
		d.BaseSalary, d.MealAllowance, d.OvertimePay,
		d.NightPay, d.VacationPay, d.Incentive,
	}
}

// Deductions lists the salary components withheld from gross pay.
func (d *SalaryDetail) Deductions() []*decimal.Decimal {
	return []*decimal.Decimal{
		d.NationalPension, d.HealthInsurance, d.EmploymentInsurance,
		d.LongTermCare, d.IncomeTax, d.LocalTax,
	}
}

// ComputeTotals refreshes TotalGross, TotalDeduction and NetPay from the
// component fields.
func (d *SalaryDetail) ComputeTotals() {
	sum := func(parts []*decimal.Decimal) decimal.Decimal {
		total := decimal.Zero
		for _, p := range parts {
			if p != nil {
				total = total.Add(*p)
			}
		}
		return total
	}
	d.TotalGross = sum(d.Earnings())
	d.TotalDeduction = sum(d.Deductions())
	d.NetPay = d.TotalGross.Sub(d.TotalDeduction)
}
