package model

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"strings"
)

// EntityType tags the concrete kind of an entity.
type EntityType string

const (
	EntityTypeAuthor       EntityType = "Author"
	EntityTypeEdition      EntityType = "Edition"
	EntityTypeEditionGroup EntityType = "EditionGroup"
	EntityTypePublisher    EntityType = "Publisher"
	EntityTypeSeries       EntityType = "Series"
	EntityTypeWork         EntityType = "Work"
)

var ErrUnknownEntityType = errors.New("unknown entity type")

// EntityTypes lists every concrete entity type in display order.
var EntityTypes = []EntityType{
	EntityTypeAuthor,
	EntityTypeEdition,
	EntityTypeEditionGroup,
	EntityTypePublisher,
	EntityTypeSeries,
	EntityTypeWork,
}

// ParseEntityType accepts the canonical name ("EditionGroup"), its lower case form
// ("editiongroup") or the url form ("edition-group").
func ParseEntityType(name string) (EntityType, error) {
	folded := strings.ToLower(strings.ReplaceAll(strings.ReplaceAll(name, "-", ""), "_", ""))
	for _, t := range EntityTypes {
		if strings.ToLower(string(t)) == folded {
			return t, nil
		}
	}

	return "", fmt.Errorf("%w: %q", ErrUnknownEntityType, name)
}

func (t EntityType) Valid() bool {
	_, err := ParseEntityType(string(t))
	return err == nil && string(t) != ""
}

// Kebab returns the url segment for the type, e.g. "edition-group".
func (t EntityType) Kebab() string {
	return Kebab(string(t))
}

// URL returns the entity page path.
func (t EntityType) URL(bbid string) string {
	return "/" + t.Kebab() + "/" + bbid
}

func (t EntityType) String() string {
	return string(t)
}

func (t EntityType) Value() (driver.Value, error) {
	return string(t), nil
}

func (t *EntityType) Scan(value any) error {
	switch v := value.(type) {
	case string:
		*t = EntityType(v)
	case []byte:
		*t = EntityType(v)
	case nil:
		*t = ""
	default:
		return fmt.Errorf("cannot scan %T into EntityType", value)
	}
	return nil
}

// Kebab converts CamelCase and snake_case names into kebab-case.
// Strings that are already kebab-case are returned unchanged.
func Kebab(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 4)
	for i, r := range s {
		switch {
		case r == '_' || r == ' ':
			b.WriteByte('-')
		case r >= 'A' && r <= 'Z':
			if i > 0 && s[i-1] != '-' && s[i-1] != '_' && s[i-1] != ' ' {
				b.WriteByte('-')
			}
			b.WriteRune(r + ('a' - 'A'))
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
