// Package render turns resolved relationships and revision diffs into HTML fragments.
package render

import (
	"fmt"
	"html"
	"strings"

	"github.com/emrgen/bookbrainz/internal/model"
	"github.com/emrgen/bookbrainz/internal/view"
)

// TypeError reports a relationship that is missing data the renderer needs.
// It means the relationship was assembled incorrectly and must not be ignored.
type TypeError struct {
	Field string
}

func (e *TypeError) Error() string {
	return fmt.Sprintf("render: relationship %s is missing", e.Field)
}

var icons = map[model.EntityType]string{
	model.EntityTypeAuthor:       "fa-user-circle",
	model.EntityTypeEdition:      "fa-book",
	model.EntityTypeEditionGroup: "fa-window-restore",
	model.EntityTypePublisher:    "fa-university",
	model.EntityTypeSeries:       "fa-layer-group",
	model.EntityTypeWork:         "fa-pen-nib",
}

const genericIcon = "fa-question-circle"

// Icon returns the icon markup for an entity type.
func Icon(t model.EntityType) string {
	class, ok := icons[t]
	if !ok {
		if parsed, err := model.ParseEntityType(string(t)); err == nil {
			class = icons[parsed]
		} else {
			class = genericIcon
		}
	}
	return `<i class="fa ` + class + ` margin-right-0-5" aria-hidden="true"></i>`
}

// Link returns the icon and anchor for an entity.
func Link(label *view.EntityLabel) string {
	return Icon(label.Type) +
		`<a href="` + html.EscapeString(label.Type.URL(label.BBID)) + `">` +
		html.EscapeString(label.Name()) + `</a>`
}

// Relationship renders "{source} {link phrase} {target}". The phrase is always the
// forward phrase of the relationship type, whichever entity is being viewed.
func Relationship(rel *view.Relationship) (string, error) {
	if err := check(rel); err != nil {
		return "", err
	}

	return strings.Join([]string{Link(rel.Source), *rel.Type.LinkPhrase, Link(rel.Target)}, " "), nil
}

// RelationshipText is Relationship without markup, used where HTML has no place
// such as revision snapshots.
func RelationshipText(rel *view.Relationship) (string, error) {
	if err := check(rel); err != nil {
		return "", err
	}

	return strings.Join([]string{rel.Source.Name(), *rel.Type.LinkPhrase, rel.Target.Name()}, " "), nil
}

func check(rel *view.Relationship) error {
	switch {
	case rel == nil:
		return &TypeError{Field: "value"}
	case rel.Source == nil:
		return &TypeError{Field: "source"}
	case rel.Target == nil:
		return &TypeError{Field: "target"}
	case rel.Type == nil:
		return &TypeError{Field: "type"}
	case rel.Type.LinkPhrase == nil:
		return &TypeError{Field: "type.linkPhrase"}
	}
	return nil
}
