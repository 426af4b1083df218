package planning

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// FixedExpense is the fixed_expenses table row.
type FixedExpense struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Category      string          `gorm:"not null"`
	PaymentMethod string          `gorm:"not null"`
	Amount        decimal.Decimal `gorm:"type:numeric(20,4);not null"`
	Currency      string          `gorm:"type:varchar(3);not null;default:'KRW'"`
	PaymentDate   string          `gorm:"not null"`
	Cycle         string          `gorm:"type:varchar(8);not null"`
	Note          *string
	CreatedAt     string `gorm:"not null;autoCreateTime:false"`
}

// TableName specifies the table name for the FixedExpense model.
func (FixedExpense) TableName() string {
	return "fixed_expenses"
}

// SpendingPlan is the spending_plans table row.
type SpendingPlan struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	Year        int       `gorm:"not null;index:idx_spending_plans_month"`
	Month       int       `gorm:"not null;index:idx_spending_plans_month"`
	Salary      *decimal.Decimal `gorm:"type:numeric(20,4)"`
	Category    string           `gorm:"not null"`
	Description *string
	Amount      decimal.Decimal `gorm:"type:numeric(20,4);not null"`
	CreatedAt   string          `gorm:"not null;autoCreateTime:false"`
}

// TableName specifies the table name for the SpendingPlan model.
func (SpendingPlan) TableName() string {
	return "spending_plans"
}

// CardPayment is the card_payments table row; one row per card account
// per month.
type CardPayment struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey"`
	AccountID     uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_card_payments_account_month"`
	Year          int             `gorm:"not null;uniqueIndex:idx_card_payments_account_month"`
	Month         int             `gorm:"not null;uniqueIndex:idx_card_payments_account_month"`
	TotalPayment  decimal.Decimal `gorm:"type:numeric(20,4);not null"`
	TotalDiscount decimal.Decimal `gorm:"type:numeric(20,4);not null"`
	TotalBill     decimal.Decimal `gorm:"type:numeric(20,4);not null"`
	CreatedAt     string          `gorm:"not null;autoCreateTime:false"`
}

// TableName specifies the table name for the CardPayment model.
func (CardPayment) TableName() string {
	return "card_payments"
}

// SalaryDetail is the salary_details table row; one row per month.
type SalaryDetail struct {
	ID                  uuid.UUID        `gorm:"type:uuid;primaryKey"`
	Year                int              `gorm:"not null;uniqueIndex:idx_salary_details_month"`
	Month               int              `gorm:"not null;uniqueIndex:idx_salary_details_month"`
	BaseSalary          *decimal.Decimal `gorm:"type:numeric(20,4)"`
	MealAllowance       *decimal.Decimal `gorm:"type:numeric(20,4)"`
	OvertimePay         *decimal.Decimal `gorm:"type:numeric(20,4)"`
	NightPay            *decimal.Decimal `gorm:"type:numeric(20,4)"`
	VacationPay         *decimal.Decimal `gorm:"type:numeric(20,4)"`
	Incentive           *decimal.Decimal `gorm:"type:numeric(20,4)"`
	NationalPension     *decimal.Decimal `gorm:"type:numeric(20,4)"`
	HealthInsurance     *decimal.Decimal `gorm:"type:numeric(20,4)"`
	EmploymentInsurance *decimal.Decimal `gorm:"type:numeric(20,4)"`
	LongTermCare        *decimal.Decimal `gorm:"type:numeric(20,4)"`
	IncomeTax           *decimal.Decimal `gorm:"type:numeric(20,4)"`
	LocalTax            *decimal.Decimal `gorm:"type:numeric(20,4)"`
	TotalGross          decimal.Decimal  `gorm:"type:numeric(20,4);not null"`
	TotalDeduction      decimal.Decimal  `gorm:"type:numeric(20,4);not null"`
	NetPay              decimal.Decimal  `gorm:"type:numeric(20,4);not null"`
	CreatedAt           string           `gorm:"not null;autoCreateTime:false"`
}

// TableName specifies the table name for the SalaryDetail model.
func (SalaryDetail) TableName() string {
	return "salary_details"
}
