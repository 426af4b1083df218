package commands

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/pams-dev/pams/pkg/domain/ledger"
	"github.com/pams-dev/pams/pkg/dto"
	accountsvc "github.com/pams-dev/pams/pkg/service/account"
	"github.com/pams-dev/pams/pkg/service/balance"
)

type seedAccount struct {
	Code        string
	Name        string
	Type        ledger.AccountType
	ParentCode  string
	IsPortfolio bool
}

// defaultChart is the starter chart of accounts. Code 1100 is the cash
// pool portfolio purchases must be funded from, and 3100 is the equity
// account portfolio adjustments post against.
var defaultChart = []seedAccount{
	{Code: "1100", Name: "Cash Assets", Type: ledger.AccountTypeAsset},
	{Code: "1101", Name: "Cash", Type: ledger.AccountTypeAsset, ParentCode: "1100"},
	{Code: "1102", Name: "Main Checking", Type: ledger.AccountTypeAsset, ParentCode: "1100"},
	{Code: "1103", Name: "CMA", Type: ledger.AccountTypeAsset, ParentCode: "1100"},
	{Code: "1104", Name: "Reward Points", Type: ledger.AccountTypeAsset, ParentCode: "1100"},

	{Code: "1200", Name: "Savings", Type: ledger.AccountTypeAsset},
	{Code: "1201", Name: "Housing Subscription", Type: ledger.AccountTypeAsset, ParentCode: "1200"},
	{Code: "1202", Name: "Installment Savings", Type: ledger.AccountTypeAsset, ParentCode: "1200"},

	{Code: "1300", Name: "Investments", Type: ledger.AccountTypeAsset},
	{Code: "1301", Name: "Brokerage", Type: ledger.AccountTypeAsset, ParentCode: "1300", IsPortfolio: true},
	{Code: "1302", Name: "ISA", Type: ledger.AccountTypeAsset, ParentCode: "1300", IsPortfolio: true},
	{Code: "1303", Name: "Gold", Type: ledger.AccountTypeAsset, ParentCode: "1300", IsPortfolio: true},
	{Code: "1304", Name: "Crypto", Type: ledger.AccountTypeAsset, ParentCode: "1300", IsPortfolio: true},

	{Code: "1400", Name: "Pension Assets", Type: ledger.AccountTypeAsset},
	{Code: "1401", Name: "Pension Savings", Type: ledger.AccountTypeAsset, ParentCode: "1400"},
	{Code: "1402", Name: "Retirement DC", Type: ledger.AccountTypeAsset, ParentCode: "1400"},

	{Code: "2100", Name: "Credit Cards", Type: ledger.AccountTypeLiability},
	{Code: "2101", Name: "Primary Card", Type: ledger.AccountTypeLiability, ParentCode: "2100"},
	{Code: "2102", Name: "Secondary Card", Type: ledger.AccountTypeLiability, ParentCode: "2100"},

	{Code: "2200", Name: "Loans", Type: ledger.AccountTypeLiability},
	{Code: "2201", Name: "Installments", Type: ledger.AccountTypeLiability, ParentCode: "2200"},
	{Code: "2299", Name: "Other Loans", Type: ledger.AccountTypeLiability, ParentCode: "2200"},

	{Code: "3100", Name: "Balance Adjustment", Type: ledger.AccountTypeEquity},

	{Code: "4100", Name: "Earned Income", Type: ledger.AccountTypeRevenue},
	{Code: "4101", Name: "Salary", Type: ledger.AccountTypeRevenue, ParentCode: "4100"},
	{Code: "4102", Name: "Bonus", Type: ledger.AccountTypeRevenue, ParentCode: "4100"},

	{Code: "4900", Name: "Other Income", Type: ledger.AccountTypeRevenue},
	{Code: "4901", Name: "Misc Income", Type: ledger.AccountTypeRevenue, ParentCode: "4900"},

	{Code: "5100", Name: "Fixed Expenses", Type: ledger.AccountTypeExpense},
	{Code: "5101", Name: "Transportation", Type: ledger.AccountTypeExpense, ParentCode: "5100"},
	{Code: "5102", Name: "Housing", Type: ledger.AccountTypeExpense, ParentCode: "5100"},
	{Code: "5103", Name: "Insurance", Type: ledger.AccountTypeExpense, ParentCode: "5100"},
	{Code: "5104", Name: "Subscriptions", Type: ledger.AccountTypeExpense, ParentCode: "5100"},

	{Code: "5200", Name: "Variable Expenses", Type: ledger.AccountTypeExpense},
	{Code: "5201", Name: "Food", Type: ledger.AccountTypeExpense, ParentCode: "5200"},
	{Code: "5202", Name: "Cafe & Snacks", Type: ledger.AccountTypeExpense, ParentCode: "5200"},
	{Code: "5203", Name: "Phone", Type: ledger.AccountTypeExpense, ParentCode: "5200"},
	{Code: "5204", Name: "Medical", Type: ledger.AccountTypeExpense, ParentCode: "5200"},
	{Code: "5205", Name: "Leisure", Type: ledger.AccountTypeExpense, ParentCode: "5200"},
	{Code: "5209", Name: "Other Expenses", Type: ledger.AccountTypeExpense, ParentCode: "5200"},
}

func newSeedCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Create the default chart of accounts",
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := newRuntime()
			if err != nil {
				return err
			}

			engine := balance.New(rt.uow, rt.logger)
			svc := accountsvc.NewService(rt.uow, engine, rt.logger)

			ctx := cmd.Context()
			idByCode := make(map[string]uuid.UUID, len(defaultChart))
			created, skipped := 0, 0

			for _, entry := range defaultChart {
				input := dto.AccountCreate{
					Code:        entry.Code,
					Name:        entry.Name,
					Type:        string(entry.Type),
					IsPortfolio: entry.IsPortfolio,
				}
				if entry.ParentCode != "" {
					parentID, ok := idByCode[entry.ParentCode]
					if !ok {
						return fmt.Errorf("seed chart lists %s before its parent %s", entry.Code, entry.ParentCode)
					}
					input.ParentID = &parentID
				}

				acct, err := svc.Create(ctx, input)
				if errors.Is(err, ledger.ErrDuplicateCode) {
					existing, err := svc.GetByCode(ctx, entry.Code)
					if err != nil {
						return err
					}
					idByCode[entry.Code] = existing.ID
					skipped++
					continue
				}
				if err != nil {
					return fmt.Errorf("creating account %s: %w", entry.Code, err)
				}

				idByCode[entry.Code] = acct.ID
				created++
				fmt.Printf("Created %s %s\n", acct.Code, acct.Name)
			}

			fmt.Printf("Seed complete: %d created, %d already present.\n", created, skipped)
			return nil
		},
	}
}
