package transaction

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Transaction is the transactions table row. TransactionDate and
// CreatedAt are ISO-8601 strings normalized to KST at write time; the
// fixed-width layout makes string comparison equivalent to chronological
// comparison, which the date-range queries rely on.
type Transaction struct {
	ID              uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Description     string          `gorm:"not null"`
	Amount          decimal.Decimal `gorm:"type:numeric(20,4);not null;check:amount > 0"`
	DebitAccountID  uuid.UUID       `gorm:"type:uuid;not null;index;check:debit_account_id <> credit_account_id"`
	CreditAccountID uuid.UUID       `gorm:"type:uuid;not null;index"`
	TransactionDate string          `gorm:"not null;index"`
	IsHidden        bool            `gorm:"not null;default:false"`
	// CreatedAt is service-set, not GORM-managed.
	CreatedAt string `gorm:"not null;autoCreateTime:false"`
}

// TableName specifies the table name for the Transaction model.
func (Transaction) TableName() string {
	return "transactions"
}
