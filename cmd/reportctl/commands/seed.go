package commands

import (
	"context"
	"fmt"
	"sort"

	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"schoolku_backend/internals/seeds"
)

func newSeedCommand(open Opener) *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Isi tabel sumber dengan data demo dari file JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withDB(cmd, open, func(ctx context.Context, db *gorm.DB, _ Settings) error {
				res, err := seeds.RunAllSeeds(ctx, db, file)
				if err != nil {
					return err
				}
				tables := make([]string, 0, len(res))
				for t := range res {
					tables = append(tables, t)
				}
				sort.Strings(tables)
				for _, t := range tables {
					fmt.Fprintf(cmd.OutOrStdout(), "%s: %d\n", t, res[t])
				}
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", seeds.DefaultSourceFile, "file JSON data sumber")
	return cmd
}
