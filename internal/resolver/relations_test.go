package resolver

import (
	"testing"

	"github.com/emrgen/bookbrainz/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPreloads(t *testing.T) {
	paths, withRelationships, err := Preloads(model.EntityTypeEditionGroup, DefaultRelations)
	require.NoError(t, err)

	assert.True(t, withRelationships)
	assert.Equal(t, []string{
		"Data.EditionGroup",
		"Data.AliasSet.DefaultAlias.Language",
		"Data.AliasSet.Aliases.Language",
		"Data.IdentifierSet.Identifiers.Type",
		"Data.Disambiguation",
		"Data.Annotation",
	}, paths)
}

func TestPreloadsWithoutRelationships(t *testing.T) {
	paths, withRelationships, err := Preloads(model.EntityTypeAuthor, []string{"defaultAlias", " "})
	require.NoError(t, err)

	assert.False(t, withRelationships)
	assert.Equal(t, []string{"Data.Author", "Data.AliasSet.DefaultAlias"}, paths)
}
