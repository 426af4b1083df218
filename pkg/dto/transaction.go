package dto

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/pams-dev/pams/pkg/domain/ledger"
)

// TransactionCreate is the input for posting a new transaction.
// TransactionDate is optional; when empty the current KST instant is
// used.
type TransactionCreate struct {
	Description     string          `validate:"required"`
	Amount          decimal.Decimal `validate:"required"`
	DebitAccountID  uuid.UUID       `validate:"required"`
	CreditAccountID uuid.UUID       `validate:"required"`
	TransactionDate string
}

// TransactionUpdate is a partial transaction update. Only supplied fields
// change; the merged result is re-validated against the double-entry
// rules before any balance moves.
type TransactionUpdate struct {
	Description     *string
	Amount          *decimal.Decimal
	DebitAccountID  *uuid.UUID
	CreditAccountID *uuid.UUID
	TransactionDate *string
}

// TransactionPage is one page of the visible (non-hidden) transaction
// listing, ordered by transaction date then creation time, newest first.
type TransactionPage struct {
	Transactions    []*ledger.Transaction
	TotalCount      int64
	HasNextPage     bool
	HasPreviousPage bool
}
