// Package revision assembles the displayed diff of a stored revision.
package revision

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/emrgen/bookbrainz/internal/cache"
	"github.com/emrgen/bookbrainz/internal/diff"
	"github.com/emrgen/bookbrainz/internal/errs"
	"github.com/emrgen/bookbrainz/internal/metrics"
	"github.com/emrgen/bookbrainz/internal/model"
	"github.com/emrgen/bookbrainz/internal/render"
	"github.com/emrgen/bookbrainz/internal/resolver"
	"github.com/emrgen/bookbrainz/internal/store"
	"github.com/emrgen/bookbrainz/internal/view"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// View is the diff of one revision together with its metadata.
type View struct {
	diff.RevisionDiff
	EditorID  uint      `json:"editorId"`
	ParentID  *uint     `json:"parentId,omitempty"`
	Note      string    `json:"note,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// snapshotRelations is what a snapshot displays. Relationships are materialized
// through the resolver instead.
var snapshotRelations = []string{
	"defaultAlias.language",
	"aliasSet.aliases.language",
	"identifierSet.identifiers.type",
	"disambiguation",
	"annotation",
}

type Options struct {
	// CacheTTL is how long a view stays cached. Views never change once built.
	CacheTTL time.Duration
	// FanOut bounds the entities diffed concurrently.
	FanOut int
}

type Service struct {
	store    store.Store
	resolver *resolver.Resolver
	cache    cache.Cache
	ttl      time.Duration
	fanOut   int
}

func NewService(store store.Store, resolver *resolver.Resolver, c cache.Cache, opts Options) *Service {
	if c == nil {
		c = cache.Nop{}
	}
	if opts.FanOut <= 0 {
		opts.FanOut = 4
	}

	return &Service{
		store:    store,
		resolver: resolver,
		cache:    c,
		ttl:      opts.CacheTTL,
		fanOut:   opts.FanOut,
	}
}

func cacheKey(id uint) string {
	return fmt.Sprintf("revision:%d", id)
}

// GetRevision diffs every entity touched by revision id against its previous
// revision. Any failed lookup fails the whole view.
func (s *Service) GetRevision(ctx context.Context, id uint) (*View, error) {
	var cached View
	ok, err := s.cache.Get(ctx, cacheKey(id), &cached)
	if err != nil {
		logrus.Warnf("revision cache read failed for %d: %v", id, err)
	}
	if ok {
		return &cached, nil
	}

	rev, err := s.store.GetRevision(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, errs.NotFound("revision %d not found", id)
		}
		return nil, errs.Site(err, "could not load revision")
	}

	entityRevs, err := s.store.ListEntityRevisions(ctx, id)
	if err != nil {
		return nil, errs.Site(err, "could not load revision entities")
	}

	entities := make([]*diff.EntityDiff, len(entityRevs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.fanOut)
	for i, entityRev := range entityRevs {
		g.Go(func() error {
			entity, err := s.entityDiff(gctx, entityRev)
			if err != nil {
				return err
			}
			entities[i] = entity
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	regular, merged, into := diff.PartitionMerge(rev.IsMerge, entities)
	v := &View{
		RevisionDiff: diff.RevisionDiff{
			RevisionID: rev.ID,
			IsMerge:    rev.IsMerge,
			Regular:    regular,
			Merged:     merged,
			Into:       into,
		},
		EditorID:  rev.EditorID,
		ParentID:  rev.ParentID,
		Note:      rev.Note,
		CreatedAt: rev.CreatedAt,
	}

	if err := s.cache.Set(ctx, cacheKey(id), v, s.ttl); err != nil {
		logrus.Warnf("revision cache write failed for %d: %v", id, err)
	}

	return v, nil
}

func (s *Service) entityDiff(ctx context.Context, entityRev *model.EntityRevision) (*diff.EntityDiff, error) {
	current, err := s.load(ctx, entityRev.RevisionID, entityRev.BBID, entityRev.Type)
	if err != nil {
		return nil, err
	}

	var previous *model.EntityRevision
	prev, err := s.store.GetPreviousEntityRevision(ctx, entityRev.BBID, entityRev.RevisionID)
	switch {
	case errors.Is(err, store.ErrNotFound):
	case err != nil:
		return nil, errs.Site(err, "could not load previous revision")
	default:
		previous, err = s.load(ctx, prev.RevisionID, prev.BBID, prev.Type)
		if err != nil {
			return nil, err
		}
	}

	before, err := s.snapshot(ctx, previous)
	if err != nil {
		return nil, err
	}
	after, err := s.snapshot(ctx, current)
	if err != nil {
		return nil, err
	}

	changes := diff.Format(diff.Diff(before, after))
	for _, change := range changes {
		metrics.DiffEntriesTotal.WithLabelValues(string(change.Kind)).Inc()
	}

	label, err := s.label(ctx, current)
	if err != nil {
		return nil, err
	}

	return &diff.EntityDiff{
		Entity:  label,
		IsMerge: current.IsMerge,
		DataID:  current.DataID,
		Changes: changes,
	}, nil
}

func (s *Service) load(ctx context.Context, revisionID uint, bbid string, entityType model.EntityType) (*model.EntityRevision, error) {
	paths, _, err := resolver.Preloads(entityType, snapshotRelations)
	if err != nil {
		return nil, err
	}

	rev, err := s.store.LoadEntityRevision(ctx, revisionID, bbid, paths)
	if err != nil {
		return nil, errs.Site(err, "could not load entity revision").With("bbid", bbid)
	}
	return rev, nil
}

func (s *Service) snapshot(ctx context.Context, rev *model.EntityRevision) (diff.Snapshot, error) {
	if rev == nil || rev.Deleted() {
		return nil, nil
	}

	var relationships []string
	if rev.Data.RelationshipSetID != nil {
		rels, err := s.resolver.Relationships(ctx, rev.BBID, *rev.Data.RelationshipSetID)
		if err != nil {
			return nil, err
		}
		for _, rel := range rels {
			text, err := render.RelationshipText(rel)
			if err != nil {
				return nil, errs.Site(err, "could not render relationship")
			}
			relationships = append(relationships, text)
		}
	}

	return NewSnapshot(rev.Data, relationships), nil
}

// label names the entity as it was at this revision. Redirects are not followed,
// so entities merged away keep their own name.
func (s *Service) label(ctx context.Context, rev *model.EntityRevision) (*view.EntityLabel, error) {
	label := &view.EntityLabel{BBID: rev.BBID, Type: rev.Type, Deleted: rev.Deleted()}
	if !rev.Deleted() {
		label.DefaultAlias = rev.Data.DefaultAlias()
		if rev.Data.Disambiguation != nil {
			label.Disambiguation = rev.Data.Disambiguation.Comment
		}
		return label, nil
	}

	alias, err := s.store.GetParentAlias(ctx, rev.BBID, rev.RevisionID)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		return nil, errs.Site(err, "could not load parent alias")
	}
	label.DefaultAlias = alias
	return label, nil
}
