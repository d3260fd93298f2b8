package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/emrgen/bookbrainz/internal/model"
	"github.com/emrgen/bookbrainz/internal/resolver"
	"github.com/emrgen/bookbrainz/internal/revision"
	"github.com/emrgen/bookbrainz/internal/tester"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T, development bool) (*tester.Fixture, *echo.Echo) {
	fx := tester.NewFixture(t)
	res := resolver.NewResolver(fx.Store, resolver.Options{})
	handler := NewHandler(res, revision.NewService(fx.Store, res, nil, revision.Options{}), 0)
	return fx, NewEcho(handler, development)
}

func get(e *echo.Echo, target string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body), rec.Body.String())
	return body
}

func TestGetEntity(t *testing.T) {
	fx, e := newTestServer(t, false)
	bbid := fx.Entity(model.EntityTypeEditionGroup, "A Wizard of Earthsea", tester.WithDisambiguation("novel"))

	rec := get(e, "/edition-group/"+bbid)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	body := decode(t, rec)
	assert.Equal(t, bbid, body["bbid"])
	assert.Equal(t, "EditionGroup", body["type"])
	assert.Equal(t, "A Wizard of Earthsea", body["defaultAlias"].(map[string]any)["name"])
	assert.Equal(t, "novel", body["disambiguation"].(map[string]any)["comment"])
}

func TestGetEntity_Errors(t *testing.T) {
	fx, e := newTestServer(t, false)
	bbid := fx.Entity(model.EntityTypeAuthor, "Ursula K. Le Guin")

	tests := []struct {
		name   string
		target string
		code   int
	}{
		{"malformed bbid", "/author/not-a-bbid", http.StatusBadRequest},
		{"unknown relation", "/author/" + bbid + "?relations=favouriteColour", http.StatusBadRequest},
		{"unknown entity type", "/wizard/" + bbid, http.StatusNotFound},
		{"wrong entity type", "/work/" + bbid, http.StatusNotFound},
		{"missing entity", "/author/" + model.NewBBID(), http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := get(e, tt.target)
			assert.Equal(t, tt.code, rec.Code)

			body := decode(t, rec)
			assert.NotEmpty(t, body["message"])
			assert.NotContains(t, body, "stack")
		})
	}
}

func TestGetRelationships(t *testing.T) {
	fx, e := newTestServer(t, false)
	author := fx.Entity(model.EntityTypeAuthor, "Ursula K. Le Guin")
	work := fx.Entity(model.EntityTypeWork, "The Dispossessed")
	fx.Relate(fx.RelationshipType("Author", "wrote", "was written by", model.EntityTypeAuthor, model.EntityTypeWork), author, work)

	rec := get(e, "/work/"+work+"/relationships")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var body RelationshipsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, work, body.BBID)
	require.Len(t, body.Relationships, 1)

	rel := body.Relationships[0]
	assert.Equal(t, "backward", string(rel.Direction))
	assert.Equal(t, "was written by", rel.LinkPhrase)
	assert.Equal(t, author, rel.Other.BBID)
	assert.Contains(t, rel.Rendered, `<a href="/author/`+author+`">Ursula K. Le Guin</a> wrote `)
	assert.Contains(t, rel.Rendered, `<a href="/work/`+work+`">The Dispossessed</a>`)
}

func TestGetRevision(t *testing.T) {
	fx, e := newTestServer(t, false)
	target := fx.Entity(model.EntityTypeAuthor, "Ursula K. Le Guin")
	source := fx.Entity(model.EntityTypeAuthor, "Ursula Le Guin")
	revID := fx.Merge(target, source)
	path := "/revision/" + strconv.FormatUint(uint64(revID), 10)

	rec := get(e, path)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	body := decode(t, rec)
	assert.Equal(t, true, body["isMerge"])
	assert.Equal(t, target, body["into"].(map[string]any)["entity"].(map[string]any)["bbid"])

	rec = get(e, path+"?format=html")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get(echo.HeaderContentType), echo.MIMETextHTML)
	assert.Contains(t, rec.Body.String(), "Merges entities:")
	assert.Contains(t, rec.Body.String(), "Into:")

	assert.Equal(t, http.StatusBadRequest, get(e, "/revision/abc").Code)
	assert.Equal(t, http.StatusNotFound, get(e, "/revision/9999").Code)
}

func TestSiteErrorStackInDevelopment(t *testing.T) {
	fx, e := newTestServer(t, true)
	a := fx.Entity(model.EntityTypeWork, "A")
	b := fx.Entity(model.EntityTypeWork, "B")
	fx.Redirect(a, b)
	fx.Redirect(b, a)

	rec := get(e, "/work/"+a)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	body := decode(t, rec)
	assert.Equal(t, "broken redirect", body["message"])
	assert.NotEmpty(t, body["stack"])
}

func TestHealthAndMetrics(t *testing.T) {
	_, e := newTestServer(t, false)

	assert.Equal(t, http.StatusOK, get(e, "/healthz").Code)

	get(e, "/author/not-a-bbid")
	rec := get(e, "/metrics")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "bookbrainz_http_requests_total")
	assert.Contains(t, rec.Body.String(), "bookbrainz_resolver_resolutions_total")
}
