package account

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Account is the accounts table row. Code is unique across the chart;
// ParentID forms the hierarchy forest.
type Account struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Code        string          `gorm:"uniqueIndex;not null"`
	Name        string          `gorm:"not null"`
	Type        string          `gorm:"type:varchar(16);not null;index"`
	ParentID    *uuid.UUID      `gorm:"type:uuid;index"`
	Balance     decimal.Decimal `gorm:"type:numeric(20,4);not null"`
	IsPortfolio bool            `gorm:"not null;default:false"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TableName specifies the table name for the Account model.
func (Account) TableName() string {
	return "accounts"
}
