// Package dto defines the create/update/read shapes passed between the
// service layer and the stores. Update DTOs use pointer fields: nil means
// "leave unchanged".
package dto

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AccountCreate is the input for creating a new account. Balance is not
// part of the input: every account starts at zero.
type AccountCreate struct {
	Code        string     `validate:"required"`
	Name        string     `validate:"required"`
	Type        string     `validate:"required,oneof=ASSET LIABILITY EQUITY REVENUE EXPENSE"`
	ParentID    *uuid.UUID `validate:"omitempty"`
	IsPortfolio bool
}

// AccountUpdate is a partial account update. Balance is deliberately
// absent; balances move only through the balance engine.
type AccountUpdate struct {
	Code        *string `validate:"omitempty,min=1"`
	Name        *string `validate:"omitempty,min=1"`
	Type        *string `validate:"omitempty,oneof=ASSET LIABILITY EQUITY REVENUE EXPENSE"`
	ParentID    *uuid.UUID
	ClearParent bool // detach from the current parent
	IsPortfolio *bool
}

// BalanceRecalcResult is one row of the full-recalculation diff report.
type BalanceRecalcResult struct {
	AccountID       uuid.UUID
	Code            string
	Name            string
	PreviousBalance decimal.Decimal
	NewBalance      decimal.Decimal
	BalanceChanged  bool
}

// BalanceIssue describes one account whose stored balance disagrees with
// the balance derived from transaction history.
type BalanceIssue struct {
	AccountID  uuid.UUID
	Code       string
	Name       string
	Expected   decimal.Decimal
	Actual     decimal.Decimal
	Difference decimal.Decimal
}

// BalanceValidationReport is the read-only audit result.
type BalanceValidationReport struct {
	IsValid              bool
	Issues               []BalanceIssue
	TotalAccountsChecked int
	AccountsWithIssues   int
}
