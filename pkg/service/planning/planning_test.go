package planning_test

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	infraprovider "github.com/pams-dev/pams/infra/provider"
	"github.com/pams-dev/pams/internal/fixtures"
	"github.com/pams-dev/pams/pkg/domain/ledger"
	"github.com/pams-dev/pams/pkg/dto"
	plansvc "github.com/pams-dev/pams/pkg/service/planning"
	"github.com/pams-dev/pams/pkg/timeutil"
)

func newService() (*plansvc.Service, *fixtures.MemoryUoW) {
	uow := fixtures.NewMemoryUoW()
	rates := &infraprovider.StubExchangeRate{Rate: decimal.NewFromInt(1300)}
	return plansvc.NewService(uow, rates, slog.Default()), uow
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestFixedExpense_CreateDefaultsToKRW(t *testing.T) {
	t.Parallel()
	svc, _ := newService()

	created, err := svc.CreateFixedExpense(context.Background(), dto.FixedExpenseCreate{
		Category:      "Housing",
		PaymentMethod: "Main Checking",
		Amount:        dec("500000"),
		PaymentDate:   "25",
		Cycle:         "MONTHLY",
	})
	require.NoError(t, err)
	assert.Equal(t, "KRW", created.Currency)
}

func TestFixedExpense_RejectsUnknownCycle(t *testing.T) {
	t.Parallel()
	svc, _ := newService()

	_, err := svc.CreateFixedExpense(context.Background(), dto.FixedExpenseCreate{
		Category:      "Housing",
		PaymentMethod: "Main Checking",
		Amount:        dec("500000"),
		PaymentDate:   "25",
		Cycle:         "WEEKLY",
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, ledger.ErrValidation)
}

func TestFixedExpenseSummary_ConvertsAndAmortizes(t *testing.T) {
	t.Parallel()
	svc, _ := newService()
	ctx := context.Background()

	_, err := svc.CreateFixedExpense(ctx, dto.FixedExpenseCreate{
		Category:      "Housing",
		PaymentMethod: "Main Checking",
		Amount:        dec("500000"),
		PaymentDate:   "25",
		Cycle:         "MONTHLY",
	})
	require.NoError(t, err)

	// 120 USD a year at the stubbed 1300 rate is 156000 KRW, 13000 monthly.
	_, err = svc.CreateFixedExpense(ctx, dto.FixedExpenseCreate{
		Category:      "Subscriptions",
		PaymentMethod: "Primary Card",
		Amount:        dec("120"),
		Currency:      "USD",
		PaymentDate:   "01",
		Cycle:         "YEARLY",
	})
	require.NoError(t, err)

	summary, err := svc.FixedExpenseSummary(ctx)
	require.NoError(t, err)
	assert.True(t, summary.MonthlyTotalKRW.Equal(dec("513000")))
	assert.True(t, summary.YearlyTotalKRW.Equal(dec("6156000")))
	assert.True(t, summary.ByCategory["Housing"].Equal(dec("500000")))
	assert.True(t, summary.ByCategory["Subscriptions"].Equal(dec("13000")))
}

func TestSpendingPlan_MonthLifecycle(t *testing.T) {
	t.Parallel()
	svc, _ := newService()
	ctx := context.Background()

	for _, category := range []string{"Food", "Leisure"} {
		_, err := svc.CreateSpendingPlan(ctx, dto.SpendingPlanCreate{
			Year:     2026,
			Month:    8,
			Category: category,
			Amount:   dec("300000"),
		})
		require.NoError(t, err)
	}
	_, err := svc.CreateSpendingPlan(ctx, dto.SpendingPlanCreate{
		Year:     2026,
		Month:    9,
		Category: "Food",
		Amount:   dec("250000"),
	})
	require.NoError(t, err)

	august, err := svc.ListSpendingPlans(ctx, 2026, 8)
	require.NoError(t, err)
	assert.Len(t, august, 2)

	require.NoError(t, svc.DeleteMonthlySpendingPlans(ctx, 2026, 8))

	august, err = svc.ListSpendingPlans(ctx, 2026, 8)
	require.NoError(t, err)
	assert.Empty(t, august)

	september, err := svc.ListSpendingPlans(ctx, 2026, 9)
	require.NoError(t, err)
	assert.Len(t, september, 1)
}

func TestCardPayment_UpsertComputesBill(t *testing.T) {
	t.Parallel()
	svc, uow := newService()
	card := uow.SeedAccount("2101", "Primary Card", ledger.AccountTypeLiability, nil, false)
	ctx := context.Background()

	row, err := svc.UpsertCardPayment(ctx, card.ID, 2026, 8, dto.CardPaymentUpsert{
		TotalPayment:  dec("820000"),
		TotalDiscount: dec("20000"),
	})
	require.NoError(t, err)
	assert.True(t, row.TotalBill.Equal(dec("800000")))

	// Second upsert for the same month updates in place.
	row, err = svc.UpsertCardPayment(ctx, card.ID, 2026, 8, dto.CardPaymentUpsert{
		TotalPayment:  dec("900000"),
		TotalDiscount: dec("50000"),
	})
	require.NoError(t, err)
	assert.True(t, row.TotalBill.Equal(dec("850000")))

	rows, err := svc.ListCardPayments(ctx, 2026, 8)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.True(t, rows[0].TotalPayment.Equal(dec("900000")))
}

func TestCardPayment_UpsertUnknownAccount(t *testing.T) {
	t.Parallel()
	svc, _ := newService()

	_, err := svc.UpsertCardPayment(context.Background(), uuid.New(), 2026, 8, dto.CardPaymentUpsert{
		TotalPayment: dec("10"),
	})
	assert.ErrorIs(t, err, ledger.ErrAccountNotFound)
}

func TestCardPayment_UpdateDiscountRecomputesBill(t *testing.T) {
	t.Parallel()
	svc, uow := newService()
	card := uow.SeedAccount("2101", "Primary Card", ledger.AccountTypeLiability, nil, false)
	ctx := context.Background()

	_, err := svc.UpsertCardPayment(ctx, card.ID, 2026, 8, dto.CardPaymentUpsert{
		TotalPayment:  dec("820000"),
		TotalDiscount: dec("20000"),
	})
	require.NoError(t, err)

	row, err := svc.UpdateCardDiscount(ctx, card.ID, 2026, 8, dec("70000"))
	require.NoError(t, err)
	assert.True(t, row.TotalDiscount.Equal(dec("70000")))
	assert.True(t, row.TotalBill.Equal(dec("750000")))
}

func TestCardPayment_UpdateDiscountSeedsRowFromLedger(t *testing.T) {
	t.Parallel()
	svc, uow := newService()
	card := uow.SeedAccount("2101", "Primary Card", ledger.AccountTypeLiability, nil, false)
	food := uow.SeedAccount("5201", "Food", ledger.AccountTypeExpense, nil, false)
	ctx := context.Background()

	// No billing row yet; the card has ledger activity for the month.
	date := timeutil.Format(time.Date(2026, 8, 10, 12, 0, 0, 0, timeutil.KST))
	require.NoError(t, uow.Transactions.Create(ctx, &ledger.Transaction{
		ID:              uuid.New(),
		Description:     "card purchase",
		Amount:          dec("30000"),
		DebitAccountID:  food.ID,
		CreditAccountID: card.ID,
		TransactionDate: date,
		CreatedAt:       date,
	}))

	row, err := svc.UpdateCardDiscount(ctx, card.ID, 2026, 8, dec("5000"))
	require.NoError(t, err)
	assert.True(t, row.TotalPayment.Equal(dec("30000")))
	assert.True(t, row.TotalDiscount.Equal(dec("5000")))
	assert.True(t, row.TotalBill.Equal(dec("25000")))

	rows, err := svc.ListCardPayments(ctx, 2026, 8)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.True(t, rows[0].TotalBill.Equal(dec("25000")))
}

func TestCardTransactionSummary_JoinsCurrentAndLastMonth(t *testing.T) {
	t.Parallel()
	svc, uow := newService()
	group := uow.SeedAccount("2100", "Credit Cards", ledger.AccountTypeLiability, nil, false)
	card := uow.SeedAccount("2101", "Primary Card", ledger.AccountTypeLiability, &group.ID, false)
	food := uow.SeedAccount("5201", "Food", ledger.AccountTypeExpense, nil, false)
	ctx := context.Background()

	// Two card purchases in August, one in July.
	august := timeutil.Format(time.Date(2026, 8, 15, 12, 0, 0, 0, timeutil.KST))
	july := timeutil.Format(time.Date(2026, 7, 31, 12, 0, 0, 0, timeutil.KST))
	for _, tx := range []struct {
		date   string
		amount string
	}{
		{august, "30000"},
		{august, "12000"},
		{july, "99999"},
	} {
		require.NoError(t, uow.Transactions.Create(ctx, &ledger.Transaction{
			ID:              uuid.New(),
			Description:     "card purchase",
			Amount:          dec(tx.amount),
			DebitAccountID:  food.ID,
			CreditAccountID: card.ID,
			TransactionDate: tx.date,
			CreatedAt:       tx.date,
		}))
	}

	// A tracked discount exists for August only.
	_, err := svc.UpdateCardDiscount(ctx, card.ID, 2026, 8, dec("2000"))
	require.NoError(t, err)

	summaries, err := svc.CardTransactionSummary(ctx, 2026, 8, 2026, 7)
	require.NoError(t, err)
	require.Len(t, summaries, 1)

	s := summaries[0]
	assert.Equal(t, card.ID, s.AccountID)
	assert.Equal(t, 8, s.CurrentMonth.Month)
	assert.True(t, s.CurrentMonth.TotalPayment.Equal(dec("42000")))
	assert.True(t, s.CurrentMonth.Discount.Equal(dec("2000")))
	assert.True(t, s.CurrentMonth.ActualBill.Equal(dec("40000")))
	assert.Equal(t, 7, s.LastMonth.Month)
	assert.True(t, s.LastMonth.TotalPayment.Equal(dec("99999")))
	assert.True(t, s.LastMonth.Discount.IsZero())
	assert.True(t, s.LastMonth.ActualBill.Equal(dec("99999")))
}

func TestCardTransactionSummary_NoCardGroup(t *testing.T) {
	t.Parallel()
	svc, _ := newService()

	summaries, err := svc.CardTransactionSummary(context.Background(), 2026, 8, 2026, 7)
	require.NoError(t, err)
	assert.Empty(t, summaries)
}

func TestSalaryDetail_UpsertComputesTotals(t *testing.T) {
	t.Parallel()
	svc, _ := newService()
	ctx := context.Background()

	base := dec("3000000")
	meal := dec("200000")
	pension := dec("135000")
	tax := dec("90000")

	detail, err := svc.UpsertSalaryDetail(ctx, 2026, 8, dto.SalaryDetailUpsert{
		BaseSalary:      &base,
		MealAllowance:   &meal,
		NationalPension: &pension,
		IncomeTax:       &tax,
	})
	require.NoError(t, err)
	assert.True(t, detail.TotalGross.Equal(dec("3200000")))
	assert.True(t, detail.TotalDeduction.Equal(dec("225000")))
	assert.True(t, detail.NetPay.Equal(dec("2975000")))

	// Re-upserting the same month replaces, not duplicates.
	newBase := dec("3100000")
	_, err = svc.UpsertSalaryDetail(ctx, 2026, 8, dto.SalaryDetailUpsert{BaseSalary: &newBase})
	require.NoError(t, err)

	all, err := svc.ListSalaryDetails(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.True(t, all[0].TotalGross.Equal(dec("3100000")))
	assert.True(t, all[0].NetPay.Equal(dec("3100000")))
}

func TestFixedExpense_UpdateAndDelete(t *testing.T) {
	t.Parallel()
	svc, _ := newService()
	ctx := context.Background()

	created, err := svc.CreateFixedExpense(ctx, dto.FixedExpenseCreate{
		Category:      "Insurance",
		PaymentMethod: "Main Checking",
		Amount:        dec("120000"),
		PaymentDate:   "10",
		Cycle:         "MONTHLY",
	})
	require.NoError(t, err)

	updated, err := svc.UpdateFixedExpense(ctx, created.ID, dto.FixedExpenseCreate{
		Category:      "Insurance",
		PaymentMethod: "CMA",
		Amount:        dec("130000"),
		PaymentDate:   "10",
		Cycle:         "MONTHLY",
	})
	require.NoError(t, err)
	assert.Equal(t, "CMA", updated.PaymentMethod)
	assert.True(t, updated.Amount.Equal(dec("130000")))

	require.NoError(t, svc.DeleteFixedExpense(ctx, created.ID))
	assert.ErrorIs(t, svc.DeleteFixedExpense(ctx, created.ID), ledger.ErrNotFound)

	all, err := svc.ListFixedExpenses(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}
