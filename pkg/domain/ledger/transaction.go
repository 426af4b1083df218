package ledger

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Transaction is a double-entry record: amount moves from the credit
// account to the debit account.
//
// TransactionDate and CreatedAt are persisted ISO-8601 strings normalized
// to KST at write time (see timeutil). Hidden transactions are excluded
// from listings and statistics but always participate in balance
// computation.
type Transaction struct {
	ID              uuid.UUID
	Description     string
	Amount          decimal.Decimal
	DebitAccountID  uuid.UUID
	CreditAccountID uuid.UUID
	TransactionDate string
	IsHidden        bool
	CreatedAt       string
}

// EntrySide names which side of a transaction an account sits on.
type EntrySide string

const (
	SideDebit  EntrySide = "debit"
	SideCredit EntrySide = "credit"
)
