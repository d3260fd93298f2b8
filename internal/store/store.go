package store

import (
	"context"
	"errors"

	"github.com/emrgen/bookbrainz/internal/model"
)

var (
	// ErrNotFound is returned when a lookup matches no row.
	ErrNotFound = errors.New("record not found")
)

type Store interface {
	EntityStore
	RevisionStore
	RelationshipStore
	Transaction(ctx context.Context, f func(tx Store) error) error
	Migrate() error
}

type EntityStore interface {
	// GetEntity retrieves the generic entity header by BBID.
	GetEntity(ctx context.Context, bbid string) (*model.Entity, error)
	// GetRedirect returns the target BBID of a redirect, or ErrNotFound when bbid is not redirected.
	GetRedirect(ctx context.Context, bbid string) (string, error)
	// ListRedirects returns every redirect edge.
	ListRedirects(ctx context.Context) ([]*model.EntityRedirect, error)
	// ListEntitiesFromBBIDs retrieves the headers of the given BBIDs that exist.
	ListEntitiesFromBBIDs(ctx context.Context, bbids []string) ([]*model.Entity, error)
	// LoadEntityRevision loads an entity revision with its data and the given preload paths.
	LoadEntityRevision(ctx context.Context, revisionID uint, bbid string, preloads []string) (*model.EntityRevision, error)
	// GetParentAlias returns the default alias of the latest revision before revisionID that has data.
	GetParentAlias(ctx context.Context, bbid string, revisionID uint) (*model.Alias, error)
	// CreateEntity creates the header of a new entity.
	CreateEntity(ctx context.Context, entity *model.Entity) error
	// CreateRedirect records that source now redirects to target.
	CreateRedirect(ctx context.Context, redirect *model.EntityRedirect) error
	// CreateEntityData creates a data row together with its sets and kind-specific row.
	CreateEntityData(ctx context.Context, data *model.EntityData) error
}

type RevisionStore interface {
	// CreateRevision creates a revision and points every touched entity at its new snapshot.
	CreateRevision(ctx context.Context, revision *model.Revision, entities []*model.EntityRevision) error
	// GetRevision retrieves a revision by ID.
	GetRevision(ctx context.Context, id uint) (*model.Revision, error)
	// ListEntityRevisions lists the entity snapshots recorded by a revision.
	ListEntityRevisions(ctx context.Context, revisionID uint) ([]*model.EntityRevision, error)
	// GetPreviousEntityRevision returns the snapshot of bbid immediately before revisionID.
	GetPreviousEntityRevision(ctx context.Context, bbid string, revisionID uint) (*model.EntityRevision, error)
}

type RelationshipStore interface {
	// ListRelationships retrieves every relationship of a set with its type.
	ListRelationships(ctx context.Context, relationshipSetID uint) ([]*model.Relationship, error)
	// CreateRelationship creates a relationship row. Rows are never updated afterwards.
	CreateRelationship(ctx context.Context, relationship *model.Relationship) error
	// CreateRelationshipType creates a relationship type.
	CreateRelationshipType(ctx context.Context, relType *model.RelationshipType) error
}
