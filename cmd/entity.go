package cmd

import (
	"context"
	"os"
	"strconv"
	"strings"

	"github.com/emrgen/bookbrainz/internal/render"
	"github.com/emrgen/bookbrainz/internal/resolver"
	"github.com/emrgen/bookbrainz/internal/view"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

var entityCmd = &cobra.Command{
	Use:   "entity",
	Short: "entity commands",
}

func init() {
	entityCmd.SetHelpCommand(&cobra.Command{Use: "no-help", Hidden: true})
	entityCmd.AddCommand(getEntityCmd())
	entityCmd.AddCommand(listRelationshipsCmd())
}

func getEntityCmd() *cobra.Command {
	var entityType string
	var bbid string
	var relations string
	var asJSON bool

	var required = []string{"type", "bbid"}

	command := &cobra.Command{
		Use:     "get",
		Short:   "resolve an entity",
		Long:    `resolve an entity by bbid, following redirects, and print its default view`,
		Example: "bookbrainz entity get -t author -b <bbid> -r defaultAlias,aliasSet.aliases",
		Run: func(cmd *cobra.Command, args []string) {
			if checkMissingFlags(cmd, required) {
				return
			}

			cfg, s, err := openStore()
			if err != nil {
				fail(err)
			}

			rels := resolver.DefaultRelations
			if cmd.Flag("relations").Changed {
				rels = strings.Split(relations, ",")
			}

			entity, err := newResolver(cfg, s).GetEntity(context.Background(), entityType, bbid, rels)
			if err != nil {
				fail(err)
			}

			if asJSON {
				printJSON(entity)
				return
			}

			table := tablewriter.NewWriter(os.Stdout)
			table.SetHeader([]string{"BBID", "Type", "Revision", "Name", "Deleted"})
			table.Append([]string{entity.BBID, entity.Type.String(), strconv.FormatUint(uint64(entity.RevisionID), 10), entity.Label(), strconv.FormatBool(entity.Deleted)})
			table.Render()

			if entity.RequestedBBID != "" {
				printField("Redirected from", entity.RequestedBBID)
			}
			if entity.Disambiguation != nil {
				printField("Disambiguation", entity.Disambiguation.Comment)
			}
			if entity.Annotation != nil {
				printField("Annotation", entity.Annotation.Content)
			}

			if entity.AliasSet != nil && len(entity.AliasSet.Aliases) > 0 {
				aliases := tablewriter.NewWriter(os.Stdout)
				aliases.SetHeader([]string{"Alias", "Sort Name", "Language", "Primary"})
				for _, alias := range entity.AliasSet.Aliases {
					language := ""
					if alias.Language != nil {
						language = alias.Language.Name
					}
					aliases.Append([]string{alias.Name, alias.SortName, language, strconv.FormatBool(alias.Primary)})
				}
				aliases.Render()
			}

			if entity.IdentifierSet != nil && len(entity.IdentifierSet.Identifiers) > 0 {
				identifiers := tablewriter.NewWriter(os.Stdout)
				identifiers.SetHeader([]string{"Identifier", "Value"})
				for _, identifier := range entity.IdentifierSet.Identifiers {
					label := strconv.FormatUint(uint64(identifier.TypeID), 10)
					if identifier.Type != nil {
						label = identifier.Type.Label
					}
					identifiers.Append([]string{label, identifier.Value})
				}
				identifiers.Render()
			}

			if len(entity.Relationships) > 0 {
				printRelationships(entity.Relationships)
			}
		},
	}

	command.Flags().StringVarP(&entityType, "type", "t", "", "entity type, e.g. author or edition-group (required)")
	command.Flags().StringVarP(&bbid, "bbid", "b", "", "entity bbid (required)")
	command.Flags().StringVarP(&relations, "relations", "r", "", "comma separated relations to load")
	command.Flags().BoolVar(&asJSON, "json", false, "print the entity as json")

	command.Flags().SortFlags = false

	return command
}

func listRelationshipsCmd() *cobra.Command {
	var entityType string
	var bbid string

	var required = []string{"type", "bbid"}

	command := &cobra.Command{
		Use:     "relationships",
		Short:   "list the relationships of an entity",
		Example: "bookbrainz entity relationships -t work -b <bbid>",
		Run: func(cmd *cobra.Command, args []string) {
			if checkMissingFlags(cmd, required) {
				return
			}

			cfg, s, err := openStore()
			if err != nil {
				fail(err)
			}

			entity, err := newResolver(cfg, s).GetEntity(context.Background(), entityType, bbid, []string{"relationshipSet"})
			if err != nil {
				fail(err)
			}

			printRelationships(entity.Relationships)
		},
	}

	command.Flags().StringVarP(&entityType, "type", "t", "", "entity type (required)")
	command.Flags().StringVarP(&bbid, "bbid", "b", "", "entity bbid (required)")

	command.Flags().SortFlags = false

	return command
}

func printRelationships(relationships []*view.Relationship) {
	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"ID", "Direction", "Phrase", "Other", "Relationship"})
	table.SetAutoWrapText(false)
	for _, rel := range relationships {
		text, err := render.RelationshipText(rel)
		if err != nil {
			fail(err)
		}
		other := ""
		if rel.Other != nil {
			other = rel.Other.Type.String() + " " + rel.Other.BBID
		}
		table.Append([]string{strconv.FormatUint(uint64(rel.ID), 10), string(rel.Direction), rel.LinkPhrase, other, text})
	}
	table.Render()
}
