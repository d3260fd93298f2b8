package server

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/emrgen/bookbrainz/internal/errs"
	"github.com/emrgen/bookbrainz/internal/model"
	"github.com/emrgen/bookbrainz/internal/render"
	"github.com/emrgen/bookbrainz/internal/resolver"
	"github.com/emrgen/bookbrainz/internal/revision"
	"github.com/emrgen/bookbrainz/internal/view"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Handler serves entity, relationship and revision views.
type Handler struct {
	resolver  *resolver.Resolver
	revisions *revision.Service
	// timeout bounds a single resolution; zero means no bound.
	timeout time.Duration
}

func NewHandler(resolver *resolver.Resolver, revisions *revision.Service, timeout time.Duration) *Handler {
	return &Handler{resolver: resolver, revisions: revisions, timeout: timeout}
}

// RelationshipsResponse is the body of the relationships route.
type RelationshipsResponse struct {
	BBID          string               `json:"bbid"`
	Relationships []*view.Relationship `json:"relationships"`
}

func (h *Handler) Register(e *echo.Echo) {
	e.GET("/healthz", h.Health)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	e.GET("/revision/:id", h.GetRevision)
	e.GET("/:entityType/:bbid", h.GetEntity)
	e.GET("/:entityType/:bbid/relationships", h.GetRelationships)
}

func (h *Handler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) GetEntity(c echo.Context) error {
	relations := resolver.DefaultRelations
	if c.QueryParams().Has("relations") {
		relations = strings.Split(c.QueryParam("relations"), ",")
	}

	entity, err := h.entity(c, relations)
	if err != nil {
		return err
	}

	if err := renderRelationships(entity.Relationships); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, entity)
}

func (h *Handler) GetRelationships(c echo.Context) error {
	entity, err := h.entity(c, []string{"relationshipSet"})
	if err != nil {
		return err
	}

	if err := renderRelationships(entity.Relationships); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, RelationshipsResponse{
		BBID:          entity.BBID,
		Relationships: entity.Relationships,
	})
}

func (h *Handler) GetRevision(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return errs.BadRequest("invalid revision id %q", c.Param("id")).With("id", c.Param("id"))
	}

	ctx, cancel := h.context(c)
	defer cancel()

	v, err := h.revisions.GetRevision(ctx, uint(id))
	if err != nil {
		return err
	}

	if c.QueryParam("format") == "html" {
		return c.HTML(http.StatusOK, render.RevisionDiff(&v.RevisionDiff))
	}

	return c.JSON(http.StatusOK, v)
}

// entity resolves the entity named by the route. Unknown entity types are not
// routes at all and are reported as not found.
func (h *Handler) entity(c echo.Context, relations []string) (*view.Entity, error) {
	entityType, err := model.ParseEntityType(c.Param("entityType"))
	if err != nil {
		return nil, errs.NotFound("unknown entity type %q", c.Param("entityType"))
	}

	ctx, cancel := h.context(c)
	defer cancel()

	return h.resolver.GetEntity(ctx, entityType.String(), c.Param("bbid"), relations)
}

func (h *Handler) context(c echo.Context) (context.Context, context.CancelFunc) {
	if h.timeout <= 0 {
		return context.WithCancel(c.Request().Context())
	}
	return context.WithTimeout(c.Request().Context(), h.timeout)
}

func renderRelationships(relationships []*view.Relationship) error {
	for _, rel := range relationships {
		rendered, err := render.Relationship(rel)
		if err != nil {
			return errs.Site(err, "")
		}
		rel.Rendered = rendered
	}
	return nil
}
