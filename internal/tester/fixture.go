package tester

import (
	"context"
	"testing"

	"github.com/emrgen/bookbrainz/internal/model"
	"github.com/emrgen/bookbrainz/internal/store"
)

// Fixture seeds entities, revisions and relationships the way the editor would.
type Fixture struct {
	t     testing.TB
	ctx   context.Context
	Store *store.GormStore
}

func NewFixture(t testing.TB) *Fixture {
	t.Helper()
	return &Fixture{
		t:     t,
		ctx:   context.Background(),
		Store: store.NewGormStore(TestDB(t)),
	}
}

// DataOption customizes the data row created for an entity.
type DataOption func(data *model.EntityData)

// WithAliases adds extra aliases next to the default one.
func WithAliases(aliases ...*model.Alias) DataOption {
	return func(data *model.EntityData) {
		data.AliasSet.Aliases = append(data.AliasSet.Aliases, aliases...)
	}
}

func WithDisambiguation(comment string) DataOption {
	return func(data *model.EntityData) {
		data.Disambiguation = &model.Disambiguation{Comment: comment}
	}
}

func WithAnnotation(content string) DataOption {
	return func(data *model.EntityData) {
		data.Annotation = &model.Annotation{Content: content}
	}
}

func WithIdentifiers(identifiers ...*model.Identifier) DataOption {
	return func(data *model.EntityData) {
		data.IdentifierSet = &model.IdentifierSet{Identifiers: identifiers}
	}
}

// WithAttributes replaces the kind-specific row, e.g. &model.AuthorData{Gender: "Female"}.
func WithAttributes(attrs any) DataOption {
	return func(data *model.EntityData) {
		switch a := attrs.(type) {
		case *model.AuthorData:
			data.Author = a
		case *model.EditionData:
			data.Edition = a
		case *model.EditionGroupData:
			data.EditionGroup = a
		case *model.PublisherData:
			data.Publisher = a
		case *model.SeriesData:
			data.Series = a
		case *model.WorkData:
			data.Work = a
		}
	}
}

// Data builds an unsaved data row with a default alias called name.
func Data(entityType model.EntityType, name string, opts ...DataOption) *model.EntityData {
	alias := &model.Alias{Name: name, SortName: name, Primary: true}
	data := &model.EntityData{
		Type: entityType,
		AliasSet: &model.AliasSet{
			DefaultAlias: alias,
			Aliases:      []*model.Alias{alias},
		},
	}

	switch entityType {
	case model.EntityTypeAuthor:
		data.Author = &model.AuthorData{}
	case model.EntityTypeEdition:
		data.Edition = &model.EditionData{}
	case model.EntityTypeEditionGroup:
		data.EditionGroup = &model.EditionGroupData{}
	case model.EntityTypePublisher:
		data.Publisher = &model.PublisherData{}
	case model.EntityTypeSeries:
		data.Series = &model.SeriesData{}
	case model.EntityTypeWork:
		data.Work = &model.WorkData{}
	}

	for _, opt := range opts {
		opt(data)
	}

	return data
}

// Entity creates a new entity in its own revision and returns its BBID.
func (f *Fixture) Entity(entityType model.EntityType, name string, opts ...DataOption) string {
	f.t.Helper()

	bbid := model.NewBBID()
	f.must(f.Store.CreateEntity(f.ctx, &model.Entity{BBID: bbid, Type: entityType}))
	f.Update(bbid, Data(entityType, name, opts...))

	return bbid
}

// Update records a new revision pointing bbid at data and returns the revision id.
func (f *Fixture) Update(bbid string, data *model.EntityData) uint {
	f.t.Helper()

	f.must(f.Store.CreateEntityData(f.ctx, data))
	return f.revision(false, &model.EntityRevision{BBID: bbid, Type: data.Type, DataID: &data.ID})
}

// Delete records a revision that tombstones bbid.
func (f *Fixture) Delete(bbid string) uint {
	f.t.Helper()

	entity, err := f.Store.GetEntity(f.ctx, bbid)
	f.must(err)
	return f.revision(false, &model.EntityRevision{BBID: bbid, Type: entity.Type})
}

// Merge records a merge revision folding sources into target and leaves redirects behind.
func (f *Fixture) Merge(target string, sources ...string) uint {
	f.t.Helper()

	current := f.Current(target)
	revs := []*model.EntityRevision{}
	for _, source := range sources {
		entity, err := f.Store.GetEntity(f.ctx, source)
		f.must(err)
		revs = append(revs, &model.EntityRevision{BBID: source, Type: entity.Type, IsMerge: true})
	}
	revs = append(revs, &model.EntityRevision{BBID: target, Type: current.Type, DataID: &current.ID, IsMerge: true})

	id := f.revision(true, revs...)
	for _, source := range sources {
		f.must(f.Store.CreateRedirect(f.ctx, &model.EntityRedirect{SourceBBID: source, TargetBBID: target}))
	}

	return id
}

// Redirect inserts a raw redirect edge, bypassing merge bookkeeping.
func (f *Fixture) Redirect(source, target string) {
	f.t.Helper()
	f.must(f.Store.CreateRedirect(f.ctx, &model.EntityRedirect{SourceBBID: source, TargetBBID: target}))
}

// RelationshipType creates a relationship type between two entity types.
func (f *Fixture) RelationshipType(label, linkPhrase, reversePhrase string, source, target model.EntityType) *model.RelationshipType {
	f.t.Helper()

	relType := &model.RelationshipType{
		Label:             label,
		LinkPhrase:        linkPhrase,
		ReverseLinkPhrase: reversePhrase,
		SourceEntityType:  source,
		TargetEntityType:  target,
	}
	f.must(f.Store.CreateRelationshipType(f.ctx, relType))
	return relType
}

// Relate links source to target and records one revision updating both
// relationship sets. It returns the revision id.
func (f *Fixture) Relate(relType *model.RelationshipType, source, target string) uint {
	f.t.Helper()

	rel := &model.Relationship{TypeID: relType.ID, SourceBBID: source, TargetBBID: target}
	f.must(f.Store.CreateRelationship(f.ctx, rel))

	var revs []*model.EntityRevision
	for _, bbid := range []string{source, target} {
		relationships := []*model.Relationship{rel}
		if current := f.Current(bbid); current.RelationshipSet != nil {
			relationships = append(current.RelationshipSet.Relationships, rel)
		}

		data := f.Clone(bbid)
		data.RelationshipSetID = nil
		data.RelationshipSet = &model.RelationshipSet{Relationships: relationships}
		f.must(f.Store.CreateEntityData(f.ctx, data))
		revs = append(revs, &model.EntityRevision{BBID: bbid, Type: data.Type, DataID: &data.ID})
	}

	return f.revision(false, revs...)
}

// Current loads the data row of bbid's master revision with every association.
func (f *Fixture) Current(bbid string) *model.EntityData {
	f.t.Helper()

	entity, err := f.Store.GetEntity(f.ctx, bbid)
	f.must(err)
	rev, err := f.Store.LoadEntityRevision(f.ctx, *entity.MasterRevisionID, bbid, []string{
		"Data.AliasSet.DefaultAlias",
		"Data.AliasSet.Aliases",
		"Data.IdentifierSet.Identifiers",
		"Data.RelationshipSet.Relationships",
		"Data.Disambiguation",
		"Data.Annotation",
		"Data." + model.AttributesAssociation(entity.Type),
	})
	f.must(err)
	if rev.Data == nil {
		f.t.Fatalf("entity %s is deleted", bbid)
	}
	return rev.Data
}

// Clone returns an unsaved copy of bbid's current data that shares its immutable sets.
func (f *Fixture) Clone(bbid string) *model.EntityData {
	f.t.Helper()

	current := f.Current(bbid)
	clone := &model.EntityData{
		Type:              current.Type,
		AliasSetID:        current.AliasSetID,
		IdentifierSetID:   current.IdentifierSetID,
		RelationshipSetID: current.RelationshipSetID,
		DisambiguationID:  current.DisambiguationID,
		AnnotationID:      current.AnnotationID,
	}

	switch a := current.Attributes().(type) {
	case *model.AuthorData:
		c := *a
		c.ID = 0
		clone.Author = &c
	case *model.EditionData:
		c := *a
		c.ID = 0
		clone.Edition = &c
	case *model.EditionGroupData:
		c := *a
		c.ID = 0
		clone.EditionGroup = &c
	case *model.PublisherData:
		c := *a
		c.ID = 0
		clone.Publisher = &c
	case *model.SeriesData:
		c := *a
		c.ID = 0
		clone.Series = &c
	case *model.WorkData:
		c := *a
		c.ID = 0
		clone.Work = &c
	}

	return clone
}

func (f *Fixture) revision(isMerge bool, revs ...*model.EntityRevision) uint {
	f.t.Helper()

	revision := &model.Revision{EditorID: 1, IsMerge: isMerge}
	f.must(f.Store.CreateRevision(f.ctx, revision, revs))
	return revision.ID
}

func (f *Fixture) must(err error) {
	f.t.Helper()
	if err != nil {
		f.t.Fatalf("fixture: %v", err)
	}
}
