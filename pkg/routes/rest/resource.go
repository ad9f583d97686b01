// Package rest implements the CRUD resource shared by every /api/<entities>
// route group: id checks, alert headers and change events.
package rest

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/Gobusters/ectoerror/httperror"
	"github.com/Gobusters/ectologger"
	"github.com/labstack/echo/v4"

	"github.com/Ramsey-B/babyshop/pkg/errors"
	"github.com/Ramsey-B/babyshop/pkg/events"
	"github.com/Ramsey-B/babyshop/pkg/metrics"
	"github.com/Ramsey-B/babyshop/pkg/reconcile"
	"github.com/Ramsey-B/babyshop/pkg/tracing"
	"github.com/Ramsey-B/babyshop/pkg/utils"
)

// Repository is the persistence a Resource needs. FindOne, Update and
// PartialUpdate return nil when the entity does not exist.
type Repository[T any] interface {
	Create(ctx context.Context, entity *T) (*T, error)
	Update(ctx context.Context, entity *T) (*T, error)
	PartialUpdate(ctx context.Context, patch *T) (*T, error)
	FindAll(ctx context.Context) ([]*T, error)
	FindOne(ctx context.Context, id int64) (*T, error)
	ExistsByID(ctx context.Context, id int64) (bool, error)
	Delete(ctx context.Context, id int64) error
}

// Resource handles the CRUD endpoints of one entity
type Resource[T any] struct {
	entityName string
	basePath   string
	repo       Repository[T]
	identify   reconcile.Identify[T, int64]
	publisher  events.Publisher
	logger     ectologger.Logger
}

// NewResource creates the handlers of entityName served under basePath
// (e.g. "/api/produits").
func NewResource[T any](entityName, basePath string, repo Repository[T], identify reconcile.Identify[T, int64], publisher events.Publisher, logger ectologger.Logger) *Resource[T] {
	if publisher == nil {
		publisher = events.NoopPublisher{}
	}
	return &Resource[T]{
		entityName: entityName,
		basePath:   basePath,
		repo:       repo,
		identify:   identify,
		publisher:  publisher,
		logger:     logger,
	}
}

// EntityName is the name used in alerts and error keys
func (r *Resource[T]) EntityName() string {
	return r.entityName
}

// Register registers the CRUD routes on g
func (r *Resource[T]) Register(g *echo.Group) {
	g.POST("", r.Create)
	g.GET("", r.List)
	g.GET("/:id", r.Get)
	g.PUT("/:id", r.Update)
	g.PATCH("/:id", r.PartialUpdate)
	g.DELETE("/:id", r.Delete)
}

// Create creates a new entity. A body carrying an id is rejected.
func (r *Resource[T]) Create(c echo.Context) error {
	ctx, span := tracing.StartSpan(c.Request().Context(), r.entityName+"_handler.Create")
	defer span.End()

	req, err := utils.BindRequest[T](c)
	if err != nil {
		return err
	}

	if _, ok := r.identify(&req); ok {
		return errors.NewBadRequestAlert(fmt.Sprintf("A new %s cannot already have an ID", r.entityName), r.entityName, errors.KeyIDExists)
	}

	result, err := r.repo.Create(ctx, &req)
	if err != nil {
		return httperror.NewHTTPErrorf(http.StatusInternalServerError, "failed to create %s", r.entityName)
	}

	id, _ := r.identify(result)
	r.publish(ctx, events.EventCreated, id)

	SetAlert(c, r.entityName, "created", id)
	c.Response().Header().Set(echo.HeaderLocation, r.basePath+"/"+strconv.FormatInt(id, 10))
	return c.JSON(http.StatusCreated, result)
}

// Update replaces an existing entity
func (r *Resource[T]) Update(c echo.Context) error {
	ctx, span := tracing.StartSpan(c.Request().Context(), r.entityName+"_handler.Update")
	defer span.End()

	id, err := ParseID(c)
	if err != nil {
		return err
	}

	req, err := utils.BindRequest[T](c)
	if err != nil {
		return err
	}

	if err := r.checkExisting(ctx, id, &req); err != nil {
		return err
	}

	result, err := r.repo.Update(ctx, &req)
	if err != nil {
		return httperror.NewHTTPErrorf(http.StatusInternalServerError, "failed to update %s", r.entityName)
	}
	if result == nil {
		return httperror.NewHTTPErrorf(http.StatusNotFound, "%s not found", r.entityName)
	}

	r.publish(ctx, events.EventUpdated, id)

	SetAlert(c, r.entityName, "updated", id)
	return c.JSON(http.StatusOK, result)
}

// PartialUpdate applies the non-null fields of a (merge) patch body
func (r *Resource[T]) PartialUpdate(c echo.Context) error {
	ctx, span := tracing.StartSpan(c.Request().Context(), r.entityName+"_handler.PartialUpdate")
	defer span.End()

	id, err := ParseID(c)
	if err != nil {
		return err
	}

	req, err := utils.BindPatch[T](c)
	if err != nil {
		return err
	}

	if err := r.checkExisting(ctx, id, &req); err != nil {
		return err
	}

	result, err := r.repo.PartialUpdate(ctx, &req)
	if err != nil {
		return httperror.NewHTTPErrorf(http.StatusInternalServerError, "failed to update %s", r.entityName)
	}
	if result == nil {
		// removed between the existence check and the update
		return httperror.NewHTTPErrorf(http.StatusNotFound, "%s not found", r.entityName)
	}

	r.publish(ctx, events.EventUpdated, id)

	SetAlert(c, r.entityName, "updated", id)
	return c.JSON(http.StatusOK, result)
}

// checkExisting enforces the body id rules of PUT and PATCH
func (r *Resource[T]) checkExisting(ctx context.Context, pathID int64, body *T) error {
	bodyID, ok := r.identify(body)
	if !ok {
		return errors.NewBadRequestAlert("Invalid id", r.entityName, errors.KeyIDNull)
	}
	if bodyID != pathID {
		return errors.NewBadRequestAlert("Invalid ID", r.entityName, errors.KeyIDInvalid)
	}

	exists, err := r.repo.ExistsByID(ctx, pathID)
	if err != nil {
		return httperror.NewHTTPErrorf(http.StatusInternalServerError, "failed to check %s", r.entityName)
	}
	if !exists {
		return errors.NewBadRequestAlert("Entity not found", r.entityName, errors.KeyIDNotFound)
	}
	return nil
}

// List returns every entity ordered by id
func (r *Resource[T]) List(c echo.Context) error {
	ctx, span := tracing.StartSpan(c.Request().Context(), r.entityName+"_handler.List")
	defer span.End()

	items, err := r.repo.FindAll(ctx)
	if err != nil {
		return httperror.NewHTTPErrorf(http.StatusInternalServerError, "failed to list %s", r.entityName)
	}

	return c.JSON(http.StatusOK, NonNil(items))
}

// Get returns a single entity by id
func (r *Resource[T]) Get(c echo.Context) error {
	ctx, span := tracing.StartSpan(c.Request().Context(), r.entityName+"_handler.Get")
	defer span.End()

	id, err := ParseID(c)
	if err != nil {
		return err
	}

	result, err := r.repo.FindOne(ctx, id)
	if err != nil {
		return httperror.NewHTTPErrorf(http.StatusInternalServerError, "failed to get %s", r.entityName)
	}
	if result == nil {
		return httperror.NewHTTPErrorf(http.StatusNotFound, "%s not found", r.entityName)
	}

	return c.JSON(http.StatusOK, result)
}

// Delete removes an entity
func (r *Resource[T]) Delete(c echo.Context) error {
	ctx, span := tracing.StartSpan(c.Request().Context(), r.entityName+"_handler.Delete")
	defer span.End()

	id, err := ParseID(c)
	if err != nil {
		return err
	}

	if err := r.repo.Delete(ctx, id); err != nil {
		return httperror.NewHTTPErrorf(http.StatusInternalServerError, "failed to delete %s", r.entityName)
	}

	r.publish(ctx, events.EventDeleted, id)

	SetAlert(c, r.entityName, "deleted", id)
	return c.NoContent(http.StatusNoContent)
}

// publish emits a change event. A broker failure does not fail the request.
func (r *Resource[T]) publish(ctx context.Context, eventType events.EventType, id int64) {
	metrics.RecordEntityChange(r.entityName, string(eventType))

	if err := r.publisher.Publish(ctx, eventType, r.entityName, id); err != nil {
		r.logger.WithContext(ctx).WithError(err).WithFields(map[string]any{
			"entity":    r.entityName,
			"entity_id": id,
		}).Warn("failed to publish entity event")
		metrics.RecordPublishFailure(r.entityName)
	}
}

// ParseID reads the :id path parameter
func ParseID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return 0, httperror.NewHTTPErrorf(http.StatusBadRequest, "invalid id '%s'", c.Param("id"))
	}
	return id, nil
}

// NonNil turns a nil list into an empty one so it renders as [].
func NonNil[T any](items []*T) []*T {
	if items == nil {
		return []*T{}
	}
	return items
}
