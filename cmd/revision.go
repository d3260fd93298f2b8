package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/emrgen/bookbrainz/internal/diff"
	"github.com/emrgen/bookbrainz/internal/render"
	"github.com/emrgen/bookbrainz/internal/revision"
	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

var revisionCmd = &cobra.Command{
	Use:   "revision",
	Short: "revision commands",
}

func init() {
	revisionCmd.SetHelpCommand(&cobra.Command{Use: "no-help", Hidden: true})
	revisionCmd.AddCommand(diffRevisionCmd())
}

func diffRevisionCmd() *cobra.Command {
	var id uint
	var format string

	var required = []string{"id"}

	command := &cobra.Command{
		Use:     "diff",
		Short:   "show the changes made by a revision",
		Example: "bookbrainz revision diff -i <revision-id> [--format table|json|html]",
		Run: func(cmd *cobra.Command, args []string) {
			if checkMissingFlags(cmd, required) {
				return
			}

			cfg, s, err := openStore()
			if err != nil {
				fail(err)
			}

			svc := revision.NewService(s, newResolver(cfg, s), nil, revision.Options{FanOut: cfg.Resolver.FanOut})
			v, err := svc.GetRevision(context.Background(), id)
			if err != nil {
				fail(err)
			}

			switch format {
			case "json":
				printJSON(v)
				return
			case "html":
				fmt.Println(render.RevisionDiff(&v.RevisionDiff))
				return
			}

			printField("Revision", fmt.Sprintf("%d by editor %d at %s", v.RevisionID, v.EditorID, v.CreatedAt.Format("2006-01-02 15:04:05")))
			if v.Note != "" {
				printField("Note", v.Note)
			}

			for _, entity := range v.Regular {
				printEntityDiff(entity)
			}

			if v.IsMerge && (len(v.Merged) > 0 || v.Into != nil) {
				color.Yellow("Merges entities:")
				for _, entity := range v.Merged {
					printEntityDiff(entity)
				}
				if v.Into != nil {
					color.Yellow("Into:")
					printEntityDiff(v.Into)
				}
			}
		},
	}

	command.Flags().UintVarP(&id, "id", "i", 0, "revision id (required)")
	command.Flags().StringVarP(&format, "format", "f", "table", "output format: table, json or html")

	command.Flags().SortFlags = false

	return command
}

func printEntityDiff(entity *diff.EntityDiff) {
	fmt.Println()
	color.Cyan("%s %s (%s)", entity.Entity.Type, entity.Entity.Name(), entity.Entity.BBID)

	if len(entity.Changes) == 0 {
		fmt.Println("no changes")
		return
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Field", "Change", "Old", "New"})
	for _, change := range entity.Changes {
		table.Append([]string{change.Key, changeName(change.Kind), join(change.LHS), join(change.RHS)})
	}
	table.Render()
}

func changeName(kind diff.Kind) string {
	switch kind {
	case diff.KindNew:
		return "added"
	case diff.KindDeleted:
		return "removed"
	default:
		return "edited"
	}
}

func join(values []any) string {
	out := make([]string, len(values))
	for i, value := range values {
		out[i] = fmt.Sprint(value)
	}
	return strings.Join(out, "\n")
}
