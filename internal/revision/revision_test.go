package revision

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/emrgen/bookbrainz/internal/diff"
	"github.com/emrgen/bookbrainz/internal/errs"
	"github.com/emrgen/bookbrainz/internal/model"
	"github.com/emrgen/bookbrainz/internal/resolver"
	"github.com/emrgen/bookbrainz/internal/tester"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newService(fx *tester.Fixture) *Service {
	return NewService(fx.Store, resolver.NewResolver(fx.Store, resolver.Options{}), nil, Options{})
}

func TestService_Creation(t *testing.T) {
	fx := tester.NewFixture(t)
	svc := newService(fx)

	bbid := fx.Entity(model.EntityTypeWork, "The Left Hand of Darkness")
	entity, err := fx.Store.GetEntity(context.TODO(), bbid)
	require.NoError(t, err)

	v, err := svc.GetRevision(context.TODO(), *entity.MasterRevisionID)
	require.NoError(t, err)

	assert.False(t, v.IsMerge)
	require.Len(t, v.Regular, 1)
	assert.Nil(t, v.Into)
	assert.Equal(t, bbid, v.Regular[0].Entity.BBID)
	assert.Equal(t, "The Left Hand of Darkness", v.Regular[0].Entity.Name())
	assert.Equal(t, []diff.Entry{
		{Key: "Default Alias", Kind: diff.KindNew, RHS: []any{"The Left Hand of Darkness"}},
		{Key: "Aliases", Kind: diff.KindNew, RHS: []any{"The Left Hand of Darkness"}},
	}, v.Regular[0].Changes)
}

func TestService_Update(t *testing.T) {
	fx := tester.NewFixture(t)
	svc := newService(fx)

	bbid := fx.Entity(model.EntityTypeAuthor, "Ursula K. Le Guin",
		tester.WithAttributes(&model.AuthorData{BeginDate: "1929-10-21"}),
	)

	data := fx.Clone(bbid)
	data.DisambiguationID = nil
	data.Disambiguation = &model.Disambiguation{Comment: "American author"}
	data.Author.BeginDate = "+001929-10-21"
	data.Author.EndDate = "2018-01-22"
	data.Author.Ended = true
	revID := fx.Update(bbid, data)

	v, err := svc.GetRevision(context.TODO(), revID)
	require.NoError(t, err)

	require.Len(t, v.Regular, 1)
	assert.Equal(t, []diff.Entry{
		{Key: "Begin Date", Kind: diff.KindEdited, LHS: []any{"1929-10-21"}, RHS: []any{"1929-10-21"}},
		{Key: "Disambiguation", Kind: diff.KindNew, RHS: []any{"American author"}},
		{Key: "End Date", Kind: diff.KindNew, RHS: []any{"2018-01-22"}},
		{Key: "Ended", Kind: diff.KindNew, RHS: []any{true}},
	}, v.Regular[0].Changes)
}

func TestService_UnchangedEntity(t *testing.T) {
	fx := tester.NewFixture(t)
	svc := newService(fx)

	bbid := fx.Entity(model.EntityTypePublisher, "Ace Books")
	revID := fx.Update(bbid, fx.Clone(bbid))

	v, err := svc.GetRevision(context.TODO(), revID)
	require.NoError(t, err)
	require.Len(t, v.Regular, 1)
	assert.Empty(t, v.Regular[0].Changes)
}

func TestService_Deletion(t *testing.T) {
	fx := tester.NewFixture(t)
	svc := newService(fx)

	bbid := fx.Entity(model.EntityTypeSeries, "Earthsea", tester.WithDisambiguation("fantasy"))
	revID := fx.Delete(bbid)

	v, err := svc.GetRevision(context.TODO(), revID)
	require.NoError(t, err)

	require.Len(t, v.Regular, 1)
	entity := v.Regular[0]
	assert.True(t, entity.Entity.Deleted)
	assert.Equal(t, "Earthsea", entity.Entity.Name())
	assert.Nil(t, entity.DataID)
	for _, change := range entity.Changes {
		assert.Equal(t, diff.KindDeleted, change.Kind, change.Key)
	}
	assert.Len(t, entity.Changes, 3)
}

func TestService_Relationships(t *testing.T) {
	fx := tester.NewFixture(t)
	svc := newService(fx)

	author := fx.Entity(model.EntityTypeAuthor, "Ursula K. Le Guin")
	work := fx.Entity(model.EntityTypeWork, "The Dispossessed")
	revID := fx.Relate(fx.RelationshipType("Author", "wrote", "was written by", model.EntityTypeAuthor, model.EntityTypeWork), author, work)

	v, err := svc.GetRevision(context.TODO(), revID)
	require.NoError(t, err)

	require.Len(t, v.Regular, 2)
	for _, entity := range v.Regular {
		assert.Equal(t, []diff.Entry{
			{Key: "Relationships", Kind: diff.KindNew, RHS: []any{"Ursula K. Le Guin wrote The Dispossessed"}},
		}, entity.Changes, entity.Entity.Name())
	}
}

func TestService_Merge(t *testing.T) {
	fx := tester.NewFixture(t)
	svc := newService(fx)

	target := fx.Entity(model.EntityTypeAuthor, "Ursula K. Le Guin")
	first := fx.Entity(model.EntityTypeAuthor, "Ursula Le Guin")
	second := fx.Entity(model.EntityTypeAuthor, "U. K. Le Guin")
	revID := fx.Merge(target, first, second)

	v, err := svc.GetRevision(context.TODO(), revID)
	require.NoError(t, err)

	assert.True(t, v.IsMerge)
	assert.Empty(t, v.Regular)
	require.Len(t, v.Merged, 2)
	require.NotNil(t, v.Into)

	assert.Equal(t, target, v.Into.Entity.BBID)
	assert.Equal(t, "Ursula K. Le Guin", v.Into.Entity.Name())
	assert.NotNil(t, v.Into.DataID)
	assert.Empty(t, v.Into.Changes)

	names := []string{v.Merged[0].Entity.Name(), v.Merged[1].Entity.Name()}
	assert.ElementsMatch(t, []string{"Ursula Le Guin", "U. K. Le Guin"}, names, "absorbed entities keep their own names")
	for _, merged := range v.Merged {
		assert.Nil(t, merged.DataID)
		assert.True(t, merged.IsMerge)
		assert.NotEmpty(t, merged.Changes)
	}
}

func TestService_NotFound(t *testing.T) {
	fx := tester.NewFixture(t)

	_, err := newService(fx).GetRevision(context.TODO(), 404)
	assert.True(t, errs.IsNotFound(err))
}

type memoryCache struct {
	mu   sync.Mutex
	sets int
	hits int
	data map[string]*View
}

func (m *memoryCache) Get(ctx context.Context, key string, dst any) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	v, ok := m.data[key]
	if !ok {
		return false, nil
	}
	m.hits++
	*dst.(*View) = *v
	return true, nil
}

func (m *memoryCache) Set(ctx context.Context, key string, v any, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.data == nil {
		m.data = make(map[string]*View)
	}
	m.sets++
	m.data[key] = v.(*View)
	return nil
}

func TestService_Cache(t *testing.T) {
	fx := tester.NewFixture(t)
	c := &memoryCache{}
	svc := NewService(fx.Store, resolver.NewResolver(fx.Store, resolver.Options{}), c, Options{CacheTTL: time.Hour})

	bbid := fx.Entity(model.EntityTypeEditionGroup, "A Wizard of Earthsea")
	entity, err := fx.Store.GetEntity(context.TODO(), bbid)
	require.NoError(t, err)

	first, err := svc.GetRevision(context.TODO(), *entity.MasterRevisionID)
	require.NoError(t, err)
	second, err := svc.GetRevision(context.TODO(), *entity.MasterRevisionID)
	require.NoError(t, err)

	assert.Equal(t, 1, c.sets)
	assert.Equal(t, 1, c.hits)
	assert.Equal(t, first.Regular, second.Regular)
	assert.Contains(t, c.data, cacheKey(*entity.MasterRevisionID))
}
