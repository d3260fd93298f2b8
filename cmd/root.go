package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "bookbrainz",
	Short: "BookBrainz entity service",
	Example: `bookbrainz serve
bookbrainz db migrate
bookbrainz entity get -t author -b <bbid>
bookbrainz entity get -t work -b <bbid> -r defaultAlias,relationshipSet
bookbrainz entity relationships -t work -b <bbid>
bookbrainz revision diff -i <revision-id>
bookbrainz redirect audit`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(dbCmd)
	rootCmd.AddCommand(entityCmd)
	rootCmd.AddCommand(revisionCmd)
	rootCmd.AddCommand(redirectCmd)
	rootCmd.SetHelpCommand(&cobra.Command{Use: "no-help", Hidden: true})

	rootCmd.CompletionOptions.HiddenDefaultCmd = true
	cobra.EnableCommandSorting = false
}
