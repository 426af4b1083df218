package dto

import (
	"github.com/shopspring/decimal"

	"github.com/pams-dev/pams/pkg/domain/ledger"
)

// MonthlyStat is one month's expense and revenue totals. Hidden
// transactions are excluded.
type MonthlyStat struct {
	Month    int
	Expenses decimal.Decimal
	Revenues decimal.Decimal
}

// AccountSummary is one account's transaction total for a period,
// used by the per-type statistics breakdown.
type AccountSummary struct {
	Account *ledger.Account
	Total   decimal.Decimal
}
