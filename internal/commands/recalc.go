package commands

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/pams-dev/pams/pkg/service/balance"
)

func newRecalcCommand() *cobra.Command {
	var changedOnly bool

	cmd := &cobra.Command{
		Use:   "recalc",
		Short: "Rebuild every account balance from transaction history",
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := newRuntime()
			if err != nil {
				return err
			}

			engine := balance.New(rt.uow, rt.logger)
			results, err := engine.RecalculateAllAccountBalances(cmd.Context())
			if err != nil {
				return fmt.Errorf("recalculating balances: %w", err)
			}

			changed := 0
			table := tablewriter.NewWriter(os.Stdout)
			table.SetHeader([]string{"Code", "Account", "Previous", "New", "Changed"})
			for _, r := range results {
				if r.BalanceChanged {
					changed++
				} else if changedOnly {
					continue
				}
				mark := ""
				if r.BalanceChanged {
					mark = color.YellowString("yes")
				}
				table.Append([]string{
					r.Code,
					r.Name,
					r.PreviousBalance.String(),
					r.NewBalance.String(),
					mark,
				})
			}
			table.Render()

			if changed == 0 {
				color.Green("All %d account balances were already correct.", len(results))
			} else {
				color.Yellow("Corrected %d of %d account balances.", changed, len(results))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&changedOnly, "changed-only", false, "only list accounts whose balance changed")

	return cmd
}
