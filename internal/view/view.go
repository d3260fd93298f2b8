// Package view holds the denormalized, JSON-serializable shapes returned by the
// resolver and consumed by the renderers.
package view

import "github.com/emrgen/bookbrainz/internal/model"

// Unnamed is shown for entities without a usable alias.
const Unnamed = "(unnamed)"

type Direction string

const (
	Forward  Direction = "forward"
	Backward Direction = "backward"
)

// Entity is the resolved view of one entity at its master revision.
type Entity struct {
	BBID string           `json:"bbid"`
	Type model.EntityType `json:"type"`
	// RequestedBBID is set when the request was redirected from another BBID.
	RequestedBBID     string                `json:"requestedBbid,omitempty"`
	RevisionID        uint                  `json:"revisionId"`
	DataID            *uint                 `json:"dataId"`
	Deleted           bool                  `json:"deleted"`
	DefaultAlias      *model.Alias          `json:"defaultAlias,omitempty"`
	ParentAlias       *model.Alias          `json:"parentAlias,omitempty"`
	Disambiguation    *model.Disambiguation `json:"disambiguation,omitempty"`
	Annotation        *model.Annotation     `json:"annotation,omitempty"`
	AliasSet          *model.AliasSet       `json:"aliasSet,omitempty"`
	IdentifierSet     *model.IdentifierSet  `json:"identifierSet,omitempty"`
	RelationshipSetID *uint                 `json:"relationshipSetId,omitempty"`
	Attributes        any                   `json:"attributes,omitempty"`
	Relationships     []*Relationship       `json:"relationships,omitempty"`
}

// Label returns the display name, falling back to the alias the entity had
// before deletion and finally to "(unnamed)".
func (e *Entity) Label() string {
	if e.DefaultAlias != nil && e.DefaultAlias.Name != "" {
		return e.DefaultAlias.Name
	}
	if e.ParentAlias != nil && e.ParentAlias.Name != "" {
		return e.ParentAlias.Name
	}
	return Unnamed
}

// Ref returns the minimal label view of the entity.
func (e *Entity) Ref() *EntityLabel {
	alias := e.DefaultAlias
	if alias == nil {
		alias = e.ParentAlias
	}
	label := &EntityLabel{BBID: e.BBID, Type: e.Type, DefaultAlias: alias, Deleted: e.Deleted}
	if e.Disambiguation != nil {
		label.Disambiguation = e.Disambiguation.Comment
	}
	return label
}

// EntityLabel is the bounded view of a related entity: enough to link to it.
type EntityLabel struct {
	BBID           string           `json:"bbid"`
	Type           model.EntityType `json:"type"`
	DefaultAlias   *model.Alias     `json:"defaultAlias,omitempty"`
	Disambiguation string           `json:"disambiguation,omitempty"`
	Deleted        bool             `json:"deleted,omitempty"`
}

func (l *EntityLabel) Name() string {
	if l == nil || l.DefaultAlias == nil || l.DefaultAlias.Name == "" {
		return Unnamed
	}
	return l.DefaultAlias.Name
}

// RelationshipType mirrors model.RelationshipType. LinkPhrase is a pointer so that a
// missing phrase can be told apart from an empty one.
type RelationshipType struct {
	ID                uint             `json:"id"`
	Label             string           `json:"label"`
	LinkPhrase        *string          `json:"linkPhrase"`
	ReverseLinkPhrase string           `json:"reverseLinkPhrase"`
	SourceEntityType  model.EntityType `json:"sourceEntityType"`
	TargetEntityType  model.EntityType `json:"targetEntityType"`
}

func NewRelationshipType(t *model.RelationshipType) *RelationshipType {
	if t == nil {
		return nil
	}
	phrase := t.LinkPhrase
	return &RelationshipType{
		ID:                t.ID,
		Label:             t.Label,
		LinkPhrase:        &phrase,
		ReverseLinkPhrase: t.ReverseLinkPhrase,
		SourceEntityType:  t.SourceEntityType,
		TargetEntityType:  t.TargetEntityType,
	}
}

// Relationship is a stored relationship seen from one of its two entities.
type Relationship struct {
	ID     uint              `json:"id"`
	Type   *RelationshipType `json:"type"`
	Source *EntityLabel      `json:"source"`
	Target *EntityLabel      `json:"target"`
	// Direction is forward when the viewed entity is the source.
	Direction Direction `json:"direction,omitempty"`
	// LinkPhrase is the phrase matching Direction.
	LinkPhrase string       `json:"linkPhrase,omitempty"`
	Other      *EntityLabel `json:"other,omitempty"`
	Rendered   string       `json:"rendered,omitempty"`
}

// Orient sets Direction, LinkPhrase and Other relative to the entity self.
func (r *Relationship) Orient(self string) {
	if r.Source != nil && r.Source.BBID == self {
		r.Direction = Forward
		r.Other = r.Target
		if r.Type != nil && r.Type.LinkPhrase != nil {
			r.LinkPhrase = *r.Type.LinkPhrase
		}
		return
	}

	r.Direction = Backward
	r.Other = r.Source
	if r.Type != nil {
		r.LinkPhrase = r.Type.ReverseLinkPhrase
	}
}
