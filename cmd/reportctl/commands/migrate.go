package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"gorm.io/gorm"

	database "schoolku_backend/internals/databases"
)

func newMigrateCommand(open Opener) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "AutoMigrate tabel report & tabel sumber",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withDB(cmd, open, func(ctx context.Context, db *gorm.DB, _ Settings) error {
				if err := database.Migrate(ctx, db); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "migrate ok")
				return nil
			})
		},
	}
}
