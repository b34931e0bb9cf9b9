package commands

import (
	"context"
	"time"

	"github.com/spf13/cobra"
	"gorm.io/gorm"

	database "schoolku_backend/internals/databases"
)

// Settings: bagian konfigurasi yang dipakai subcommand.
type Settings struct {
	FetchTimeout time.Duration
}

// Opener membuka koneksi DB; diganti di test.
type Opener func(ctx context.Context) (*gorm.DB, Settings, error)

func NewRootCommand(open Opener) *cobra.Command {
	root := &cobra.Command{
		Use:           "reportctl",
		Short:         "Operasi report engine schoolku",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(newMigrateCommand(open))
	root.AddCommand(newSeedCommand(open))
	root.AddCommand(newGenerateCommand(open))
	return root
}

// withDB membuka DB, menjalankan fn, lalu menutup koneksi.
func withDB(cmd *cobra.Command, open Opener, fn func(ctx context.Context, db *gorm.DB, s Settings) error) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	db, s, err := open(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = database.Close(db) }()
	return fn(ctx, db, s)
}
