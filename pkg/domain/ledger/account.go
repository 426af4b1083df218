// Package ledger holds the double-entry domain model: the account
// hierarchy, transactions, and the invariants that tie them together.
//
// Invariants:
//   - Every transaction moves a strictly positive amount from exactly one
//     credit account to exactly one distinct debit account.
//   - A leaf account's balance is the net of its transaction history
//     (debits minus credits, hidden entries included).
//   - A parent account's balance is the sum of its children's balances,
//     applied transitively up to the root.
package ledger

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AccountType classifies accounts in the chart of accounts.
type AccountType string

const (
	AccountTypeAsset     AccountType = "ASSET"
	AccountTypeLiability AccountType = "LIABILITY"
	AccountTypeEquity    AccountType = "EQUITY"
	AccountTypeRevenue   AccountType = "REVENUE"
	AccountTypeExpense   AccountType = "EXPENSE"
)

// Valid reports whether t is one of the five account types.
func (t AccountType) Valid() bool {
	switch t {
	case AccountTypeAsset, AccountTypeLiability, AccountTypeEquity,
		AccountTypeRevenue, AccountTypeExpense:
		return true
	}
	return false
}

const (
	// CashAssetsCode is the code of the cash-assets parent account.
	// Portfolio accounts may only be funded from its direct children.
	CashAssetsCode = "1100"

	// AdjustmentAccountCode is the code of the equity account that
	// absorbs portfolio balance adjustments.
	AdjustmentAccountCode = "3100"

	// CardGroupCode is the code of the liability account whose direct
	// children are the card accounts.
	CardGroupCode = "2100"

	// MaxHierarchyDepth bounds every ancestor walk. The chart of
	// accounts is a few levels deep in practice; exceeding this is
	// treated as a cycle.
	MaxHierarchyDepth = 64
)

// Account is a node in the chart-of-accounts forest.
//
// Balance semantics depend on position: leaves carry their transaction
// net, parents carry the sum of their children's balances. The stored
// balance of a parent is overwritten on every rollup.
type Account struct {
	ID          uuid.UUID
	Code        string
	Name        string
	Type        AccountType
	ParentID    *uuid.UUID
	Balance     decimal.Decimal
	IsPortfolio bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// AccountNode is an account with its resolved children, as returned by
// hierarchy queries. Children are referenced by value of the flat list;
// ownership stays with the store.
type AccountNode struct {
	*Account
	Children []*AccountNode
}

// BuildHierarchy arranges a flat account list into its parent/children
// forest. Every account appears exactly once: as a root when it has no
// parent (or its parent is absent from the list), otherwise nested under
// its parent.
func BuildHierarchy(accounts []*Account) []*AccountNode {
	nodes := make(map[uuid.UUID]*AccountNode, len(accounts))
	for _, a := range accounts {
		nodes[a.ID] = &AccountNode{Account: a}
	}

	var roots []*AccountNode
	for _, a := range accounts {
		node := nodes[a.ID]
		if a.ParentID == nil {
			roots = append(roots, node)
			continue
		}
		parent, ok := nodes[*a.ParentID]
		if !ok {
			roots = append(roots, node)
			continue
		}
		parent.Children = append(parent.Children, node)
	}
	return roots
}
