// Package transaction implements the transaction repository on GORM.
package transaction

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/pams-dev/pams/pkg/domain/ledger"
	"github.com/pams-dev/pams/pkg/dto"
	"github.com/pams-dev/pams/pkg/repository"
)

type repo struct {
	db *gorm.DB
}

// New creates a transaction repository bound to the given session.
func New(db *gorm.DB) repository.TransactionRepository {
	return &repo{db: db}
}

func (r *repo) Get(ctx context.Context, id uuid.UUID) (*ledger.Transaction, error) {
	var m Transaction
	if err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ledger.ErrTransactionNotFound
		}
		return nil, err
	}
	return mapModelToDomain(&m), nil
}

func (r *repo) ListPage(ctx context.Context, page, limit int) (*dto.TransactionPage, error) {
	var total int64
	if err := r.db.WithContext(ctx).
		Model(&Transaction{}).Where("is_hidden = ?", false).Count(&total).Error; err != nil {
		return nil, err
	}
	offset := (page - 1) * limit
	var ms []Transaction
	if err := r.db.WithContext(ctx).
		Where("is_hidden = ?", false).
		Order("transaction_date DESC, created_at DESC").
		Limit(limit).Offset(offset).
		Find(&ms).Error; err != nil {
		return nil, err
	}
	return &dto.TransactionPage{
		Transactions:    mapModelsToDomain(ms),
		TotalCount:      total,
		HasNextPage:     int64(offset+limit) < total,
		HasPreviousPage: page > 1,
	}, nil
}

func (r *repo) ListByDateRange(ctx context.Context, start, end string) ([]*ledger.Transaction, error) {
	var ms []Transaction
	if err := r.db.WithContext(ctx).
		Where("transaction_date BETWEEN ? AND ?", start, end).
		Where("is_hidden = ?", false).
		Order("transaction_date DESC").
		Find(&ms).Error; err != nil {
		return nil, err
	}
	return mapModelsToDomain(ms), nil
}

func (r *repo) CountByAccount(ctx context.Context, accountID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&Transaction{}).
		Where("debit_account_id = ? OR credit_account_id = ?", accountID, accountID).
		Count(&count).Error
	return count, err
}

func (r *repo) SumByAccount(
	ctx context.Context,
	accountID uuid.UUID,
	side ledger.EntrySide,
) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.db.WithContext(ctx).
		Model(&Transaction{}).
		Select("COALESCE(SUM(amount), 0)").
		Where(sideColumn(side)+" = ?", accountID).
		Row().Scan(&total)
	return total, err
}

func (r *repo) SumByAccountAndDateRange(
	ctx context.Context,
	accountID uuid.UUID,
	side ledger.EntrySide,
	start, end string,
) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.db.WithContext(ctx).
		Model(&Transaction{}).
		Select("COALESCE(SUM(amount), 0)").
		Where(sideColumn(side)+" = ?", accountID).
		Where("transaction_date BETWEEN ? AND ?", start, end).
		Where("is_hidden = ?", false).
		Row().Scan(&total)
	return total, err
}

func (r *repo) SumByAccountTypeAndDateRange(
	ctx context.Context,
	accountType ledger.AccountType,
	side ledger.EntrySide,
	start, end string,
) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.db.WithContext(ctx).
		Model(&Transaction{}).
		Select("COALESCE(SUM(transactions.amount), 0)").
		Joins("JOIN accounts ON accounts.id = transactions."+sideColumn(side)).
		Where("accounts.type = ?", string(accountType)).
		Where("transactions.transaction_date BETWEEN ? AND ?", start, end).
		Where("transactions.is_hidden = ?", false).
		Row().Scan(&total)
	return total, err
}

func (r *repo) Create(ctx context.Context, tx *ledger.Transaction) error {
	m := Transaction{
		ID:              tx.ID,
		Description:     tx.Description,
		Amount:          tx.Amount,
		DebitAccountID:  tx.DebitAccountID,
		CreditAccountID: tx.CreditAccountID,
		TransactionDate: tx.TransactionDate,
		IsHidden:        tx.IsHidden,
		CreatedAt:       tx.CreatedAt,
	}
	return r.db.WithContext(ctx).Create(&m).Error
}

func (r *repo) Update(ctx context.Context, id uuid.UUID, update dto.TransactionUpdate) error {
	updates := make(map[string]any)
	if update.Description != nil {
		updates["description"] = *update.Description
	}
	if update.Amount != nil {
		updates["amount"] = *update.Amount
	}
	if update.DebitAccountID != nil {
		updates["debit_account_id"] = *update.DebitAccountID
	}
	if update.CreditAccountID != nil {
		updates["credit_account_id"] = *update.CreditAccountID
	}
	if update.TransactionDate != nil {
		updates["transaction_date"] = *update.TransactionDate
	}
	if len(updates) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Model(&Transaction{}).Where("id = ?", id).Updates(updates).Error
}

func (r *repo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&Transaction{}, "id = ?", id).Error
}

func sideColumn(side ledger.EntrySide) string {
	if side == ledger.SideCredit {
		return "credit_account_id"
	}
	return "debit_account_id"
}

func mapModelToDomain(m *Transaction) *ledger.Transaction {
	return &ledger.Transaction{
		ID:              m.ID,
		Description:     m.Description,
		Amount:          m.Amount,
		DebitAccountID:  m.DebitAccountID,
		CreditAccountID: m.CreditAccountID,
		TransactionDate: m.TransactionDate,
		IsHidden:        m.IsHidden,
		CreatedAt:       m.CreatedAt,
	}
}

func mapModelsToDomain(ms []Transaction) []*ledger.Transaction {
	out := make([]*ledger.Transaction, 0, len(ms))
	for i := range ms {
		out = append(out, mapModelToDomain(&ms[i]))
	}
	return out
}
