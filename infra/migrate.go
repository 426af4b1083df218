package infra

import (
	"gorm.io/gorm"

	accountrepo "github.com/pams-dev/pams/infra/repository/account"
	planningrepo "github.com/pams-dev/pams/infra/repository/planning"
	transactionrepo "github.com/pams-dev/pams/infra/repository/transaction"
)

// Migrate creates or updates every table the ledger uses.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&accountrepo.Account{},
		&transactionrepo.Transaction{},
		&planningrepo.FixedExpense{},
		&planningrepo.SpendingPlan{},
		&planningrepo.CardPayment{},
		&planningrepo.SalaryDetail{},
	)
}
