// Package commands wires the pams CLI: schema migration, chart-of-accounts
// seeding, and balance recalculation/audit against the ledger database.
package commands

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"github.com/pams-dev/pams/infra"
	infrarepo "github.com/pams-dev/pams/infra/repository"
	"github.com/pams-dev/pams/pkg/config"
)

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "pams",
		Short: "Personal asset management ledger",
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
	}

	rootCmd.AddCommand(newMigrateCommand())
	rootCmd.AddCommand(newSeedCommand())
	rootCmd.AddCommand(newRecalcCommand())
	rootCmd.AddCommand(newAuditCommand())

	return rootCmd
}

// runtime holds the shared dependencies a subcommand needs once it is
// past flag parsing.
type runtime struct {
	cfg    *config.AppConfig
	db     *gorm.DB
	uow    *infrarepo.UoW
	logger *slog.Logger
}

func newRuntime() (*runtime, error) {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	cfg, err := config.LoadAppConfig(logger)
	if err != nil {
		return nil, err
	}

	db, err := infra.NewDBConnection(cfg.DB, cfg.Env)
	if err != nil {
		return nil, err
	}

	return &runtime{
		cfg:    cfg,
		db:     db,
		uow:    infrarepo.NewUoW(db),
		logger: logger,
	}, nil
}
