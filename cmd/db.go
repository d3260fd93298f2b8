package cmd

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var dbCmd = &cobra.Command{
	Use:   "db",
	Short: "db commands",
}

func init() {
	dbCmd.AddCommand(migrateCmd())
}

func migrateCmd() *cobra.Command {
	command := &cobra.Command{
		Use:   "migrate",
		Short: "Migrate the database",
		Run: func(cmd *cobra.Command, args []string) {
			_, s, err := openStore()
			if err != nil {
				fail(err)
			}

			if err := s.Migrate(); err != nil {
				fail(err)
			}
			color.Green("database migrated")
		},
	}

	return command
}
