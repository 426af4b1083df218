package account

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/pams-dev/pams/pkg/domain/ledger"
	"github.com/pams-dev/pams/pkg/dto"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	mockDb, mock, err := sqlmock.New()
	require.NoError(t, err)
	dialector := postgres.New(postgres.Config{
		Conn:       mockDb,
		DriverName: "postgres",
	})
	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	return db, mock
}

func TestRepo_Get(t *testing.T) {
	db, mock := newMockDB(t)
	r := New(db)
	id := uuid.New()

	rows := sqlmock.NewRows([]string{"id", "code", "name", "type", "parent_id", "balance", "is_portfolio", "created_at", "updated_at"}).
		AddRow(id, "1102", "Main Checking", "ASSET", nil, "1000.0000", false, time.Now(), time.Now())
	mock.ExpectQuery(`SELECT \* FROM "accounts" WHERE id = \$1 ORDER BY "accounts"\."id" LIMIT \$2`).
		WithArgs(id, 1).WillReturnRows(rows)

	got, err := r.Get(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, id, got.ID)
	assert.Equal(t, ledger.AccountTypeAsset, got.Type)
	assert.True(t, got.Balance.Equal(decimal.NewFromInt(1000)))

	mock.ExpectQuery(`SELECT \* FROM "accounts" WHERE id = \$1 ORDER BY "accounts"\."id" LIMIT \$2`).
		WithArgs(sqlmock.AnyArg(), 1).WillReturnError(gorm.ErrRecordNotFound)

	_, err = r.Get(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ledger.ErrAccountNotFound)
}

func TestRepo_GetByCode_NotFound(t *testing.T) {
	db, mock := newMockDB(t)
	r := New(db)

	mock.ExpectQuery(`SELECT \* FROM "accounts" WHERE code = \$1 ORDER BY "accounts"\."id" LIMIT \$2`).
		WithArgs("0000", 1).WillReturnError(gorm.ErrRecordNotFound)

	_, err := r.GetByCode(context.Background(), "0000")
	assert.ErrorIs(t, err, ledger.ErrAccountNotFound)
	assert.ErrorIs(t, err, ledger.ErrNotFound)
}

func TestRepo_Create(t *testing.T) {
	db, mock := newMockDB(t)
	r := New(db)

	acct := &ledger.Account{
		ID:          uuid.New(),
		Code:        "1301",
		Name:        "Brokerage",
		Type:        ledger.AccountTypeAsset,
		Balance:     decimal.Zero,
		IsPortfolio: true,
	}

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO "accounts" (.+) VALUES (.+)`).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	require.NoError(t, r.Create(context.Background(), acct))

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO "accounts" (.+) VALUES (.+)`).
		WillReturnError(gorm.ErrDuplicatedKey)
	mock.ExpectRollback()

	err := r.Create(context.Background(), acct)
	assert.ErrorIs(t, err, ledger.ErrDuplicateCode)
}

func TestRepo_Update_NoFieldsIsNoOp(t *testing.T) {
	db, mock := newMockDB(t)
	r := New(db)

	require.NoError(t, r.Update(context.Background(), uuid.New(), dto.AccountUpdate{}))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepo_Update_PartialFields(t *testing.T) {
	db, mock := newMockDB(t)
	r := New(db)
	id := uuid.New()

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "accounts" SET (.+) WHERE id = \$\d`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	name := "Renamed"
	require.NoError(t, r.Update(context.Background(), id, dto.AccountUpdate{Name: &name}))
}

func TestRepo_UpdateBalance(t *testing.T) {
	db, mock := newMockDB(t)
	r := New(db)
	id := uuid.New()

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "accounts" SET (.+) WHERE id = \$\d`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, r.UpdateBalance(context.Background(), id, decimal.NewFromInt(500)))
}

func TestRepo_ListByType(t *testing.T) {
	db, mock := newMockDB(t)
	r := New(db)

	rows := sqlmock.NewRows([]string{"id", "code", "name", "type", "balance", "is_portfolio"}).
		AddRow(uuid.New(), "3100", "Balance Adjustment", "EQUITY", "0", false)
	mock.ExpectQuery(`SELECT \* FROM "accounts" WHERE type = \$1 ORDER BY code`).
		WithArgs("EQUITY").WillReturnRows(rows)

	got, err := r.ListByType(context.Background(), ledger.AccountTypeEquity)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "3100", got[0].Code)
}

func TestRepo_Delete_Error(t *testing.T) {
	db, mock := newMockDB(t)
	r := New(db)

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM "accounts" WHERE id = \$\d`).
		WillReturnError(errors.New("fk violation"))
	mock.ExpectRollback()

	assert.Error(t, r.Delete(context.Background(), uuid.New()))
}
