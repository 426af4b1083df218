package commands

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/pams-dev/pams/pkg/service/balance"
)

func newAuditCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "audit",
		Short: "Check stored balances against transaction history",
		Long: "Audit derives every account's correct balance from transaction " +
			"history and compares it to the stored value without changing " +
			"anything. Exits non-zero when any account disagrees.",
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := newRuntime()
			if err != nil {
				return err
			}

			engine := balance.New(rt.uow, rt.logger)
			report, err := engine.ValidateAccountBalances(cmd.Context())
			if err != nil {
				return fmt.Errorf("validating balances: %w", err)
			}

			if report.IsValid {
				color.Green("All %d account balances are consistent.", report.TotalAccountsChecked)
				return nil
			}

			table := tablewriter.NewWriter(os.Stdout)
			table.SetHeader([]string{"Code", "Account", "Expected", "Actual", "Difference"})
			for _, issue := range report.Issues {
				table.Append([]string{
					issue.Code,
					issue.Name,
					issue.Expected.String(),
					issue.Actual.String(),
					color.RedString(issue.Difference.String()),
				})
			}
			table.Render()

			color.Red("%d of %d accounts have inconsistent balances. Run `pams recalc` to repair.",
				report.AccountsWithIssues, report.TotalAccountsChecked)
			return fmt.Errorf("%d accounts inconsistent", report.AccountsWithIssues)
		},
	}
}
