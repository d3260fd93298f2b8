package resolver

import (
	"strings"

	"github.com/emrgen/bookbrainz/internal/errs"
	"github.com/emrgen/bookbrainz/internal/model"
)

// roots maps the first segment of a relation path onto its association path under
// EntityData. defaultAlias lives on the alias set.
var roots = map[string]string{
	"defaultAlias":    "AliasSet.DefaultAlias",
	"aliasSet":        "AliasSet",
	"identifierSet":   "IdentifierSet",
	"disambiguation":  "Disambiguation",
	"annotation":      "Annotation",
	"relationshipSet": "",
}

var segments = map[string]string{
	"aliases":     "Aliases",
	"language":    "Language",
	"identifiers": "Identifiers",
	"type":        "Type",
}

// DefaultRelations is what the entity page loads when the caller asks for nothing specific.
var DefaultRelations = []string{
	"defaultAlias.language",
	"aliasSet.aliases.language",
	"identifierSet.identifiers.type",
	"disambiguation",
	"annotation",
	"relationshipSet.relationships.type",
}

// Preloads translates dotted relation paths into gorm preload paths. Relationship
// paths are not preloaded; they are materialized separately and reported through
// withRelationships.
func Preloads(entityType model.EntityType, relations []string) (paths []string, withRelationships bool, err error) {
	paths = []string{"Data." + model.AttributesAssociation(entityType)}

	for _, relation := range relations {
		relation = strings.TrimSpace(relation)
		if relation == "" {
			continue
		}

		parts := strings.Split(relation, ".")
		root, ok := roots[parts[0]]
		if !ok {
			return nil, false, errs.BadRequest("unknown relation %q", relation).With("relation", relation)
		}

		if parts[0] == "relationshipSet" {
			withRelationships = true
			continue
		}

		path := "Data." + root
		for _, part := range parts[1:] {
			segment, ok := segments[part]
			if !ok {
				return nil, false, errs.BadRequest("unknown relation %q", relation).With("relation", relation)
			}
			path += "." + segment
		}

		paths = append(paths, path)
	}

	return paths, withRelationships, nil
}
