package resolver

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/emrgen/bookbrainz/internal/errs"
	"github.com/emrgen/bookbrainz/internal/metrics"
	"github.com/emrgen/bookbrainz/internal/model"
	"github.com/emrgen/bookbrainz/internal/store"
	"github.com/emrgen/bookbrainz/internal/view"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

const (
	DefaultMaxRedirectHops = 32
	DefaultFanOut          = 8
)

// ErrBrokenRedirect is returned when a redirect chain cycles or exceeds the hop limit.
var ErrBrokenRedirect = errors.New("broken redirect chain")

type Options struct {
	// MaxRedirectHops bounds the length of a redirect chain.
	MaxRedirectHops int
	// FanOut bounds the concurrent lookups issued while materializing relationships.
	FanOut int
}

// Resolver loads entities by BBID and assembles their denormalized view.
// It holds no mutable state; concurrent calls do not coordinate.
type Resolver struct {
	store   store.Store
	maxHops int
	fanOut  int
}

// NewResolver creates a new Resolver.
func NewResolver(store store.Store, opts Options) *Resolver {
	if opts.MaxRedirectHops <= 0 {
		opts.MaxRedirectHops = DefaultMaxRedirectHops
	}
	if opts.FanOut <= 0 {
		opts.FanOut = DefaultFanOut
	}

	return &Resolver{
		store:   store,
		maxHops: opts.MaxRedirectHops,
		fanOut:  opts.FanOut,
	}
}

// GetEntity resolves bbid (following redirects) to an entity of the given type and
// loads the requested relation paths.
func (r *Resolver) GetEntity(ctx context.Context, typeName, bbid string, relations []string) (*view.Entity, error) {
	entity, err := r.getEntity(ctx, typeName, bbid, relations)

	status := "ok"
	if err != nil {
		status = errs.As(err).Kind.String()
	}
	label := "unknown"
	if t, perr := model.ParseEntityType(typeName); perr == nil {
		label = t.String()
	}
	metrics.ResolverResolutionsTotal.WithLabelValues(label, status).Inc()

	return entity, err
}

func (r *Resolver) getEntity(ctx context.Context, typeName, bbid string, relations []string) (*view.Entity, error) {
	entityType, err := model.ParseEntityType(typeName)
	if err != nil {
		return nil, errs.BadRequest("invalid entity type %q", typeName)
	}

	requested, ok := model.NormalizeBBID(bbid)
	if !ok {
		return nil, errs.BadRequest("invalid bbid %q", bbid).With("bbid", bbid)
	}

	paths, withRelationships, err := Preloads(entityType, relations)
	if err != nil {
		return nil, err
	}

	canonical, err := r.ResolveBBID(ctx, requested)
	if err != nil {
		return nil, err
	}

	header, err := r.header(ctx, canonical)
	if err != nil {
		return nil, err
	}
	if header.Type != entityType {
		return nil, errs.NotFound("%s %s not found", entityType, requested)
	}

	rev, err := r.store.LoadEntityRevision(ctx, *header.MasterRevisionID, canonical, paths)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, errs.NotFound("%s %s not found", entityType, requested)
		}
		return nil, errs.Site(err, "could not load entity")
	}

	entity := &view.Entity{
		BBID:       canonical,
		Type:       header.Type,
		RevisionID: rev.RevisionID,
		DataID:     rev.DataID,
		Deleted:    rev.Deleted(),
	}
	if canonical != requested {
		entity.RequestedBBID = requested
	}

	if rev.Deleted() {
		parent, err := r.parentAlias(ctx, canonical, rev.RevisionID)
		if err != nil {
			return nil, err
		}
		entity.ParentAlias = parent
		return entity, nil
	}

	data := rev.Data
	entity.DefaultAlias = data.DefaultAlias()
	entity.Disambiguation = data.Disambiguation
	entity.Annotation = data.Annotation
	entity.AliasSet = data.AliasSet
	entity.IdentifierSet = data.IdentifierSet
	entity.RelationshipSetID = data.RelationshipSetID
	entity.Attributes = data.Attributes()

	if withRelationships {
		entity.Relationships = make([]*view.Relationship, 0)
		if data.RelationshipSetID != nil {
			relationships, err := r.Relationships(ctx, canonical, *data.RelationshipSetID)
			if err != nil {
				return nil, err
			}
			entity.Relationships = relationships
		}
	}

	return entity, nil
}

// ResolveBBID follows redirects from bbid until it reaches a BBID that is not
// redirected. Cycles and chains longer than the hop limit fail with ErrBrokenRedirect.
func (r *Resolver) ResolveBBID(ctx context.Context, bbid string) (string, error) {
	visited := mapset.NewThreadUnsafeSet[string](bbid)
	current := bbid

	for hops := 0; ; hops++ {
		target, err := r.store.GetRedirect(ctx, current)
		if errors.Is(err, store.ErrNotFound) {
			metrics.ResolverRedirectHops.Observe(float64(hops))
			return current, nil
		}
		if err != nil {
			return "", errs.Site(err, "could not resolve redirect")
		}

		if visited.Contains(target) {
			logrus.Warnf("redirect cycle detected at %s -> %s", current, target)
			return "", errs.Site(fmt.Errorf("%w: cycle at %s", ErrBrokenRedirect, target), "broken redirect").With("bbid", bbid)
		}
		if hops+1 > r.maxHops {
			logrus.Warnf("redirect chain from %s exceeds %d hops", bbid, r.maxHops)
			return "", errs.Site(fmt.Errorf("%w: more than %d hops", ErrBrokenRedirect, r.maxHops), "broken redirect").With("bbid", bbid)
		}

		visited.Add(target)
		current = target
	}
}

// Label resolves bbid and loads only its default alias and disambiguation.
func (r *Resolver) Label(ctx context.Context, bbid string) (*view.EntityLabel, error) {
	canonical, err := r.ResolveBBID(ctx, bbid)
	if err != nil {
		return nil, err
	}

	header, err := r.header(ctx, canonical)
	if err != nil {
		return nil, err
	}

	rev, err := r.store.LoadEntityRevision(ctx, *header.MasterRevisionID, canonical, []string{
		"Data.AliasSet.DefaultAlias",
		"Data.Disambiguation",
	})
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, errs.NotFound("entity %s not found", canonical)
		}
		return nil, errs.Site(err, "could not load entity label")
	}

	label := &view.EntityLabel{BBID: canonical, Type: header.Type}
	if rev.Deleted() {
		label.Deleted = true
		label.DefaultAlias, err = r.parentAlias(ctx, canonical, rev.RevisionID)
		if err != nil {
			return nil, err
		}
		return label, nil
	}

	label.DefaultAlias = rev.Data.DefaultAlias()
	if rev.Data.Disambiguation != nil {
		label.Disambiguation = rev.Data.Disambiguation.Comment
	}

	return label, nil
}

func (r *Resolver) header(ctx context.Context, bbid string) (*model.Entity, error) {
	header, err := r.store.GetEntity(ctx, bbid)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, errs.NotFound("entity %s not found", bbid)
		}
		return nil, errs.Site(err, "could not load entity")
	}
	if header.MasterRevisionID == nil {
		return nil, errs.NotFound("entity %s has no revisions", bbid)
	}
	return header, nil
}

// parentAlias returns nil without error when the entity never had a default alias.
func (r *Resolver) parentAlias(ctx context.Context, bbid string, revisionID uint) (*model.Alias, error) {
	alias, err := r.store.GetParentAlias(ctx, bbid, revisionID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, errs.Site(err, "could not load parent alias")
	}
	return alias, nil
}

// Relationships materializes every relationship of the set, resolving both ends
// concurrently. The first failed lookup cancels the rest and is returned.
func (r *Resolver) Relationships(ctx context.Context, self string, relationshipSetID uint) ([]*view.Relationship, error) {
	rows, err := r.store.ListRelationships(ctx, relationshipSetID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, errs.NotFound("relationship set %s not found", strconv.FormatUint(uint64(relationshipSetID), 10))
		}
		return nil, errs.Site(err, "could not load relationships")
	}

	relationships := make([]*view.Relationship, len(rows))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.fanOut)

	for i, row := range rows {
		relationships[i] = &view.Relationship{
			ID:   row.ID,
			Type: view.NewRelationshipType(row.Type),
		}

		rel := relationships[i]
		g.Go(func() error {
			source, err := r.Label(gctx, row.SourceBBID)
			if err != nil {
				return danglingRelationship(err, row.ID)
			}
			rel.Source = source
			return nil
		})
		g.Go(func() error {
			target, err := r.Label(gctx, row.TargetBBID)
			if err != nil {
				return danglingRelationship(err, row.ID)
			}
			rel.Target = target
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	for _, rel := range relationships {
		rel.Orient(self)
	}

	return relationships, nil
}

// danglingRelationship keeps a missing relationship end from being reported as
// the viewed entity itself being missing.
func danglingRelationship(err error, relationshipID uint) error {
	if errs.IsNotFound(err) {
		return errs.Site(err, "relationship references a missing entity").With("relationship", relationshipID)
	}
	return err
}
