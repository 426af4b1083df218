package transaction

import (
	"context"
	"testing"

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

func TestRepo_Get_NotFound(t *testing.T) {
	db, mock := newMockDB(t)
	r := New(db)

	mock.ExpectQuery(`SELECT \* FROM "transactions" WHERE id = \$1 ORDER BY "transactions"\."id" LIMIT \$2`).
		WithArgs(sqlmock.AnyArg(), 1).WillReturnError(gorm.ErrRecordNotFound)

	_, err := r.Get(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ledger.ErrTransactionNotFound)
}

func TestRepo_ListPage_ExcludesHiddenFromCount(t *testing.T) {
	db, mock := newMockDB(t)
	r := New(db)

	mock.ExpectQuery(`SELECT count\(\*\) FROM "transactions" WHERE is_hidden = \$1`).
		WithArgs(false).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))

	rows := sqlmock.NewRows([]string{
		"id", "description", "amount", "debit_account_id", "credit_account_id",
		"transaction_date", "is_hidden", "created_at",
	}).
		AddRow(uuid.New(), "Groceries", "45000", uuid.New(), uuid.New(),
			"2026-08-30T12:00:00.000Z", false, "2026-08-30T12:00:00.000Z").
		AddRow(uuid.New(), "Coffee", "4800", uuid.New(), uuid.New(),
			"2026-08-29T09:00:00.000Z", false, "2026-08-29T09:00:00.000Z")
	mock.ExpectQuery(`SELECT \* FROM "transactions" WHERE is_hidden = \$1 ORDER BY transaction_date DESC, created_at DESC LIMIT \$2`).
		WithArgs(false, 2).
		WillReturnRows(rows)

	page, err := r.ListPage(context.Background(), 1, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(3), page.TotalCount)
	assert.Len(t, page.Transactions, 2)
	assert.True(t, page.HasNextPage)
	assert.False(t, page.HasPreviousPage)
	assert.Equal(t, "Groceries", page.Transactions[0].Description)
}

func TestRepo_SumByAccount(t *testing.T) {
	db, mock := newMockDB(t)
	r := New(db)
	id := uuid.New()

	mock.ExpectQuery(`SELECT COALESCE\(SUM\(amount\), 0\) FROM "transactions" WHERE debit_account_id = \$1`).
		WithArgs(id).
		WillReturnRows(sqlmock.NewRows([]string{"coalesce"}).AddRow("123.4500"))

	total, err := r.SumByAccount(context.Background(), id, ledger.SideDebit)
	require.NoError(t, err)
	assert.True(t, total.Equal(decimal.RequireFromString("123.45")))
}

func TestRepo_SumByAccountAndDateRange_UsesCreditColumn(t *testing.T) {
	db, mock := newMockDB(t)
	r := New(db)
	id := uuid.New()
	start, end := "2026-08-01T00:00:00.000Z", "2026-08-31T23:59:59.999Z"

	mock.ExpectQuery(`SELECT COALESCE\(SUM\(amount\), 0\) FROM "transactions" WHERE credit_account_id = \$1 AND \(transaction_date BETWEEN \$2 AND \$3\) AND is_hidden = \$4`).
		WithArgs(id, start, end, false).
		WillReturnRows(sqlmock.NewRows([]string{"coalesce"}).AddRow("42000"))

	total, err := r.SumByAccountAndDateRange(context.Background(), id, ledger.SideCredit, start, end)
	require.NoError(t, err)
	assert.True(t, total.Equal(decimal.NewFromInt(42000)))
}

func TestRepo_SumByAccountTypeAndDateRange_JoinsAccounts(t *testing.T) {
	db, mock := newMockDB(t)
	r := New(db)
	start, end := "2026-08-01T00:00:00.000Z", "2026-08-31T23:59:59.999Z"

	mock.ExpectQuery(`SELECT COALESCE\(SUM\(transactions\.amount\), 0\) FROM "transactions" JOIN accounts ON accounts\.id = transactions\.debit_account_id WHERE accounts\.type = \$1 AND \(transactions\.transaction_date BETWEEN \$2 AND \$3\) AND transactions\.is_hidden = \$4`).
		WithArgs("EXPENSE", start, end, false).
		WillReturnRows(sqlmock.NewRows([]string{"coalesce"}).AddRow("60000"))

	total, err := r.SumByAccountTypeAndDateRange(
		context.Background(), ledger.AccountTypeExpense, ledger.SideDebit, start, end)
	require.NoError(t, err)
	assert.True(t, total.Equal(decimal.NewFromInt(60000)))
}

func TestRepo_Create(t *testing.T) {
	db, mock := newMockDB(t)
	r := New(db)

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO "transactions" (.+) VALUES (.+)`).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	err := r.Create(context.Background(), &ledger.Transaction{
		ID:              uuid.New(),
		Description:     "Portfolio balance adjustment for Brokerage",
		Amount:          decimal.NewFromInt(70000),
		DebitAccountID:  uuid.New(),
		CreditAccountID: uuid.New(),
		TransactionDate: "2026-08-31T10:00:00.000Z",
		IsHidden:        true,
		CreatedAt:       "2026-08-31T10:00:00.000Z",
	})
	require.NoError(t, err)
}

func TestRepo_Update_NoFieldsIsNoOp(t *testing.T) {
	db, mock := newMockDB(t)
	r := New(db)

	require.NoError(t, r.Update(context.Background(), uuid.New(), dto.TransactionUpdate{}))
	require.NoError(t, mock.ExpectationsWereMet())
}
