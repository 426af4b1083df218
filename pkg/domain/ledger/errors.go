package ledger

import (
	"errors"
	"fmt"
)

// Error kinds. Every domain error wraps exactly one kind so callers can
// classify failures with errors.Is without matching message text.
var (
	// ErrValidation marks input that violates a double-entry rule.
	// Raised before any mutation; no partial state is left behind.
	ErrValidation = errors.New("validation error")

	// ErrNotFound marks a reference to a missing account or transaction.
	ErrNotFound = errors.New("not found")

	// ErrConflict marks an operation blocked by the current state of the
	// ledger rather than by the input itself.
	ErrConflict = errors.New("conflict")

	// ErrConsistency marks a detected violation of the balance
	// invariants, such as a cyclic hierarchy or a failed cascade. It is
	// the signal for running a full recalculation.
	ErrConsistency = errors.New("consistency error")
)

var (
	// ErrAmountNotPositive is returned when a transaction amount is zero or negative.
	ErrAmountNotPositive = fmt.Errorf("%w: transaction amount must be positive", ErrValidation)

	// ErrSameAccount is returned when debit and credit reference the same account.
	ErrSameAccount = fmt.Errorf("%w: debit and credit accounts must be different", ErrValidation)

	// ErrDebitAccountNotFound is returned when the debit side references an unknown account.
	ErrDebitAccountNotFound = fmt.Errorf("%w: debit account not found", ErrValidation)

	// ErrCreditAccountNotFound is returned when the credit side references an unknown account.
	ErrCreditAccountNotFound = fmt.Errorf("%w: credit account not found", ErrValidation)

	// ErrPortfolioFundingSource is returned when a portfolio account would be
	// funded from anything other than a cash asset account. Funding is
	// enforced structurally: the debit account's direct parent must carry
	// the cash-assets code.
	ErrPortfolioFundingSource = fmt.Errorf(
		"%w: portfolio assets can only receive transfers from cash assets", ErrValidation)

	// ErrAccountNotFound is returned when an account id does not exist.
	ErrAccountNotFound = fmt.Errorf("%w: account", ErrNotFound)

	// ErrTransactionNotFound is returned when a transaction id does not exist.
	ErrTransactionNotFound = fmt.Errorf("%w: transaction", ErrNotFound)

	// ErrHasChildAccounts blocks deletion of an account with dependent accounts.
	ErrHasChildAccounts = fmt.Errorf("%w: account has dependent accounts", ErrConflict)

	// ErrHasTransactionHistory blocks deletion of an account referenced by transactions.
	ErrHasTransactionHistory = fmt.Errorf("%w: account has transaction history", ErrConflict)

	// ErrNotPortfolioAccount is returned when a portfolio adjustment is
	// requested on an account whose balance is transaction-derived.
	ErrNotPortfolioAccount = fmt.Errorf("%w: account is not a portfolio asset", ErrConflict)

	// ErrAdjustmentAccountMissing is returned when the designated equity
	// adjustment account does not exist.
	ErrAdjustmentAccountMissing = fmt.Errorf(
		"%w: equity adjustment account (%s) not found", ErrConflict, AdjustmentAccountCode)

	// ErrDuplicateCode is returned when an account code is already taken.
	ErrDuplicateCode = fmt.Errorf("%w: account code already exists", ErrConflict)

	// ErrHierarchyTooDeep is returned when an ancestor walk exceeds
	// MaxHierarchyDepth, which only happens with a cyclic parent chain.
	ErrHierarchyTooDeep = fmt.Errorf(
		"%w: account hierarchy exceeds depth %d, parent chain may be cyclic",
		ErrConsistency, MaxHierarchyDepth)
)
