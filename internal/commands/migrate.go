package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pams-dev/pams/infra"
)

func newMigrateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply the database schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := newRuntime()
			if err != nil {
				return err
			}

			if err := infra.Migrate(rt.db); err != nil {
				return fmt.Errorf("migrating schema: %w", err)
			}

			fmt.Println("Schema is up to date.")
			return nil
		},
	}
}
