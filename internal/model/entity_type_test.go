package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseEntityType(t *testing.T) {
	tests := []struct {
		input string
		want  EntityType
		err   bool
	}{
		{input: "Author", want: EntityTypeAuthor},
		{input: "author", want: EntityTypeAuthor},
		{input: "EditionGroup", want: EntityTypeEditionGroup},
		{input: "edition-group", want: EntityTypeEditionGroup},
		{input: "edition_group", want: EntityTypeEditionGroup},
		{input: "series", want: EntityTypeSeries},
		{input: "magazine", err: true},
		{input: "", err: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseEntityType(tt.input)
			if tt.err {
				assert.ErrorIs(t, err, ErrUnknownEntityType)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestKebab(t *testing.T) {
	assert.Equal(t, "edition-group", Kebab("EditionGroup"))
	assert.Equal(t, "author", Kebab("Author"))
	assert.Equal(t, "test-type", Kebab("test-type"))
	assert.Equal(t, "edition-group", Kebab("edition_group"))
	assert.Equal(t, "/edition-group/abc", EntityTypeEditionGroup.URL("abc"))
}
