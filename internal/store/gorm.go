package store

import (
	"context"
	"errors"

	"github.com/emrgen/bookbrainz/internal/model"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{
		db: db,
	}
}

var _ Store = (*GormStore)(nil)

type GormStore struct {
	db *gorm.DB
}

func (g *GormStore) GetEntity(ctx context.Context, bbid string) (*model.Entity, error) {
	var entity model.Entity
	err := g.db.WithContext(ctx).Where("bbid = ?", bbid).First(&entity).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &entity, nil
}

func (g *GormStore) GetRedirect(ctx context.Context, bbid string) (string, error) {
	var redirect model.EntityRedirect
	err := g.db.WithContext(ctx).Where("source_bbid = ?", bbid).Limit(1).Find(&redirect).Error
	if err != nil {
		return "", err
	}
	if redirect.TargetBBID == "" {
		return "", ErrNotFound
	}
	return redirect.TargetBBID, nil
}

func (g *GormStore) ListRedirects(ctx context.Context) ([]*model.EntityRedirect, error) {
	var redirects []*model.EntityRedirect
	err := g.db.WithContext(ctx).Order("source_bbid").Find(&redirects).Error
	return redirects, err
}

func (g *GormStore) ListEntitiesFromBBIDs(ctx context.Context, bbids []string) ([]*model.Entity, error) {
	var entities []*model.Entity
	if len(bbids) == 0 {
		return entities, nil
	}
	err := g.db.WithContext(ctx).Where("bbid in (?)", bbids).Find(&entities).Error
	return entities, err
}

func (g *GormStore) LoadEntityRevision(ctx context.Context, revisionID uint, bbid string, preloads []string) (*model.EntityRevision, error) {
	query := g.db.WithContext(ctx).Preload("Data")
	for _, preload := range preloads {
		query = query.Preload(preload)
	}

	var rev model.EntityRevision
	err := query.Where("revision_id = ? AND bbid = ?", revisionID, bbid).First(&rev).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &rev, nil
}

func (g *GormStore) GetParentAlias(ctx context.Context, bbid string, revisionID uint) (*model.Alias, error) {
	var rev model.EntityRevision
	err := g.db.WithContext(ctx).
		Preload("Data.AliasSet.DefaultAlias").
		Where("bbid = ? AND revision_id < ? AND data_id IS NOT NULL", bbid, revisionID).
		Order("revision_id desc").
		First(&rev).Error
	if err != nil {
		return nil, notFound(err)
	}

	alias := rev.Data.DefaultAlias()
	if alias == nil {
		return nil, ErrNotFound
	}
	return alias, nil
}

func (g *GormStore) CreateEntity(ctx context.Context, entity *model.Entity) error {
	return g.db.WithContext(ctx).Create(entity).Error
}

func (g *GormStore) CreateRedirect(ctx context.Context, redirect *model.EntityRedirect) error {
	return g.db.WithContext(ctx).Create(redirect).Error
}

// CreateEntityData creates the data row. Sets are created first so that the
// alias set can point at its default alias once the aliases have ids.
func (g *GormStore) CreateEntityData(ctx context.Context, data *model.EntityData) error {
	db := g.db.WithContext(ctx)

	if set := data.AliasSet; set != nil {
		defaultAlias := set.DefaultAlias
		set.DefaultAlias = nil
		if err := db.Create(set).Error; err != nil {
			return err
		}
		if defaultAlias != nil {
			if defaultAlias.ID == 0 {
				if err := db.Create(defaultAlias).Error; err != nil {
					return err
				}
			}
			set.DefaultAliasID = &defaultAlias.ID
			set.DefaultAlias = defaultAlias
			if err := db.Model(set).Update("default_alias_id", defaultAlias.ID).Error; err != nil {
				return err
			}
		}
		data.AliasSetID = &set.ID
	}

	if set := data.IdentifierSet; set != nil {
		if err := createSet(db, set, "Identifiers", &set.Identifiers); err != nil {
			return err
		}
		data.IdentifierSetID = &set.ID
	}

	if set := data.RelationshipSet; set != nil {
		if err := createSet(db, set, "Relationships", &set.Relationships); err != nil {
			return err
		}
		data.RelationshipSetID = &set.ID
	}

	logrus.Debugf("creating %s data", data.Type)

	return db.Omit("AliasSet", "IdentifierSet", "RelationshipSet").Create(data).Error
}

// createSet inserts an id-only set row on its own and then links its members.
// Letting gorm upsert such a row as an association emits
// "DEFAULT VALUES ON CONFLICT", which sqlite rejects.
func createSet[T any](db *gorm.DB, set any, association string, field *[]T) error {
	members := *field
	*field = nil
	if err := db.Omit(association).Create(set).Error; err != nil {
		return err
	}
	if len(members) == 0 {
		return nil
	}
	return db.Model(set).Association(association).Append(members)
}

func (g *GormStore) CreateRevision(ctx context.Context, revision *model.Revision, entities []*model.EntityRevision) error {
	return g.Transaction(ctx, func(tx Store) error {
		db := tx.(*GormStore).db.WithContext(ctx)
		if err := db.Create(revision).Error; err != nil {
			return err
		}

		for _, entity := range entities {
			entity.RevisionID = revision.ID
			if err := db.Omit("Data", "Revision").Create(entity).Error; err != nil {
				return err
			}

			err := db.Model(&model.Entity{}).
				Where("bbid = ?", entity.BBID).
				Update("master_revision_id", revision.ID).Error
			if err != nil {
				return err
			}
		}

		return nil
	})
}

func (g *GormStore) GetRevision(ctx context.Context, id uint) (*model.Revision, error) {
	var revision model.Revision
	err := g.db.WithContext(ctx).Where("id = ?", id).First(&revision).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &revision, nil
}

func (g *GormStore) ListEntityRevisions(ctx context.Context, revisionID uint) ([]*model.EntityRevision, error) {
	var revs []*model.EntityRevision
	err := g.db.WithContext(ctx).Where("revision_id = ?", revisionID).Order("bbid").Find(&revs).Error
	return revs, err
}

func (g *GormStore) GetPreviousEntityRevision(ctx context.Context, bbid string, revisionID uint) (*model.EntityRevision, error) {
	var rev model.EntityRevision
	err := g.db.WithContext(ctx).
		Where("bbid = ? AND revision_id < ?", bbid, revisionID).
		Order("revision_id desc").
		First(&rev).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &rev, nil
}

func (g *GormStore) ListRelationships(ctx context.Context, relationshipSetID uint) ([]*model.Relationship, error) {
	var set model.RelationshipSet
	err := g.db.WithContext(ctx).
		Preload("Relationships", func(db *gorm.DB) *gorm.DB {
			return db.Order("relationships.id")
		}).
		Preload("Relationships.Type").
		Where("id = ?", relationshipSetID).
		First(&set).Error
	if err != nil {
		return nil, notFound(err)
	}
	return set.Relationships, nil
}

func (g *GormStore) CreateRelationship(ctx context.Context, relationship *model.Relationship) error {
	return g.db.WithContext(ctx).Omit("Type").Create(relationship).Error
}

func (g *GormStore) CreateRelationshipType(ctx context.Context, relType *model.RelationshipType) error {
	return g.db.WithContext(ctx).Create(relType).Error
}

func (g *GormStore) Migrate() error {
	return model.Migrate(g.db)
}

func (g *GormStore) Transaction(ctx context.Context, f func(tx Store) error) error {
	return g.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return f(&GormStore{db: tx})
	})
}

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}
