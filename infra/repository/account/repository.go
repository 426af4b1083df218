// Package account implements the account repository on GORM.
package account

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

// New creates an account repository bound to the given session.
func New(db *gorm.DB) repository.AccountRepository {
	return &repo{db: db}
}

func (r *repo) Get(ctx context.Context, id uuid.UUID) (*ledger.Account, error) {
	var m Account
	if err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		return nil, translateErr(err)
	}
	return mapModelToDomain(&m), nil
}

func (r *repo) GetByCode(ctx context.Context, code string) (*ledger.Account, error) {
	var m Account
	if err := r.db.WithContext(ctx).First(&m, "code = ?", code).Error; err != nil {
		return nil, translateErr(err)
	}
	return mapModelToDomain(&m), nil
}

func (r *repo) ListAll(ctx context.Context) ([]*ledger.Account, error) {
	var ms []Account
	if err := r.db.WithContext(ctx).Order("code").Find(&ms).Error; err != nil {
		return nil, err
	}
	return mapModelsToDomain(ms), nil
}

func (r *repo) ListByType(ctx context.Context, t ledger.AccountType) ([]*ledger.Account, error) {
	var ms []Account
	if err := r.db.WithContext(ctx).
		Where("type = ?", string(t)).Order("code").Find(&ms).Error; err != nil {
		return nil, err
	}
	return mapModelsToDomain(ms), nil
}

func (r *repo) ListChildren(ctx context.Context, parentID uuid.UUID) ([]*ledger.Account, error) {
	var ms []Account
	if err := r.db.WithContext(ctx).
		Where("parent_id = ?", parentID).Order("code").Find(&ms).Error; err != nil {
		return nil, err
	}
	return mapModelsToDomain(ms), nil
}

func (r *repo) Create(ctx context.Context, a *ledger.Account) error {
	m := Account{
		ID:          a.ID,
		Code:        a.Code,
		Name:        a.Name,
		Type:        string(a.Type),
		ParentID:    a.ParentID,
		Balance:     a.Balance,
		IsPortfolio: a.IsPortfolio,
	}
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ledger.ErrDuplicateCode
		}
		return err
	}
	a.CreatedAt = m.CreatedAt
	a.UpdatedAt = m.UpdatedAt
	return nil
}

func (r *repo) Update(ctx context.Context, id uuid.UUID, update dto.AccountUpdate) error {
	updates := make(map[string]any)
	if update.Code != nil {
		updates["code"] = *update.Code
	}
	if update.Name != nil {
		updates["name"] = *update.Name
	}
	if update.Type != nil {
		updates["type"] = *update.Type
	}
	if update.ParentID != nil {
		updates["parent_id"] = *update.ParentID
	} else if update.ClearParent {
		updates["parent_id"] = nil
	}
	if update.IsPortfolio != nil {
		updates["is_portfolio"] = *update.IsPortfolio
	}
	if len(updates) == 0 {
		return nil
	}
	err := r.db.WithContext(ctx).
		Model(&Account{}).Where("id = ?", id).Updates(updates).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ledger.ErrDuplicateCode
	}
	return err
}

func (r *repo) UpdateBalance(ctx context.Context, id uuid.UUID, balance decimal.Decimal) error {
	return r.db.WithContext(ctx).
		Model(&Account{}).Where("id = ?", id).Update("balance", balance).Error
}

func (r *repo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&Account{}, "id = ?", id).Error
}

func translateErr(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ledger.ErrAccountNotFound
	}
	return err
}

func mapModelToDomain(m *Account) *ledger.Account {
	return &ledger.Account{
		ID:          m.ID,
		Code:        m.Code,
		Name:        m.Name,
		Type:        ledger.AccountType(m.Type),
		ParentID:    m.ParentID,
		Balance:     m.Balance,
		IsPortfolio: m.IsPortfolio,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

func mapModelsToDomain(ms []Account) []*ledger.Account {
	out := make([]*ledger.Account, 0, len(ms))
	for i := range ms {
		out = append(out, mapModelToDomain(&ms[i]))
	}
	return out
}
