package cmd

import (
	"context"
	"os"
	"strings"

	"github.com/emrgen/bookbrainz/internal/jobs"
	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

var redirectCmd = &cobra.Command{
	Use:   "redirect",
	Short: "redirect commands",
}

func init() {
	redirectCmd.SetHelpCommand(&cobra.Command{Use: "no-help", Hidden: true})
	redirectCmd.AddCommand(auditRedirectsCmd())
}

func auditRedirectsCmd() *cobra.Command {
	command := &cobra.Command{
		Use:   "audit",
		Short: "find redirect cycles, dangling redirects and overlong chains",
		Run: func(cmd *cobra.Command, args []string) {
			cfg, s, err := openStore()
			if err != nil {
				fail(err)
			}

			report, err := jobs.AuditRedirects(context.Background(), s, cfg.Resolver.MaxRedirectHops)
			if err != nil {
				fail(err)
			}

			table := tablewriter.NewWriter(os.Stdout)
			table.SetHeader([]string{"Problem", "BBIDs"})
			table.SetAutoWrapText(false)
			for _, cycle := range report.Cycles {
				table.Append([]string{"cycle", strings.Join(cycle, " -> ")})
			}
			for _, redirect := range report.Dangling {
				table.Append([]string{"dangling", redirect.SourceBBID + " -> " + redirect.TargetBBID})
			}
			for _, source := range report.LongChains {
				table.Append([]string{"too long", source})
			}

			if report.Broken() == 0 {
				color.Green("%d redirects checked, none broken", report.Redirects)
				return
			}

			table.Render()
			color.Red("%d redirects checked, %d broken", report.Redirects, report.Broken())
			os.Exit(1)
		},
	}

	return command
}
