package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/semka95/repositories/backend/domain"
	"github.com/semka95/repositories/backend/web"
)

// RepositoryHandler represent the http handler for repository
type RepositoryHandler struct {
	repoUsecase domain.RepositoryUsecase
	validator   *web.AppValidator
	logger      *zap.Logger
	tracer      trace.Tracer
}

// NewRepositoryHandler will initialize the repositories/ resources endpoint
func NewRepositoryHandler(us domain.RepositoryUsecase, v *web.AppValidator, logger *zap.Logger, tracer trace.Tracer) (*RepositoryHandler, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	handler := &RepositoryHandler{
		repoUsecase: us,
		validator:   v,
		logger:      logger,
		tracer:      tracer,
	}

	err := handler.RegisterValidation()
	if err != nil {
		return nil, err
	}

	return handler, nil
}

// RegisterRoutes registers routes for a path with matching handler
func (rh *RepositoryHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/repositories", rh.Fetch)
	e.GET("/repositories/:id", rh.GetByID)
	e.POST("/repositories", rh.Store)
	e.PUT("/repositories/:id", rh.Update)
	e.DELETE("/repositories/:id", rh.Delete)
	e.POST("/repositories/:id/like", rh.Like)
}

// RegisterValidation will initialize validation for repository handler
func (rh *RepositoryHandler) RegisterValidation() error {
	return rh.validator.RegisterTag("repoid", "{0} must be a valid UUID", checkID)
}

func checkID(fl validator.FieldLevel) bool {
	return domain.ValidID(fl.Field().String())
}

func requestContext(c echo.Context) context.Context {
	ctx := c.Request().Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return ctx
}

// validID checks id path param, on failure the error response is already written
func (rh *RepositoryHandler) validID(c echo.Context, span trace.Span, id string) (bool, error) {
	err := rh.validator.V.Var(id, "repoid")
	if err == nil {
		return true, nil
	}

	span.RecordError(err)
	if verr, ok := err.(validator.ValidationErrors); ok {
		rh.logger.Debug("repository id validation error", zap.String("id", id), zap.Any("fields", verr.Translate(rh.validator.Translator)))
	}
	return false, c.JSON(http.StatusBadRequest, domain.ResponseError{Error: domain.MsgInvalidID})
}

// bindBody decodes the request body into i. A body that is not JSON is
// ignored and i keeps its zero value.
func bindBody(c echo.Context, i interface{}) error {
	err := c.Bind(i)
	if errors.Is(err, echo.ErrUnsupportedMediaType) {
		return nil
	}
	return err
}

func (rh *RepositoryHandler) errorResponse(c echo.Context, span trace.Span, err error, notFound string) error {
	span.RecordError(err)
	return c.JSON(domain.GetStatusCode(err, rh.logger), domain.ResponseError{Error: domain.GetMessage(err, notFound)})
}

// Fetch will list all repositories
func (rh *RepositoryHandler) Fetch(c echo.Context) error {
	ctx, span := rh.tracer.Start(
		requestContext(c),
		"http Fetch",
		trace.WithSpanKind(trace.SpanKindServer),
	)
	defer span.End()

	list, err := rh.repoUsecase.Fetch(ctx)
	if err != nil {
		return rh.errorResponse(c, span, err, domain.MsgNotFound)
	}

	span.SetStatus(codes.Ok, "success")
	return c.JSON(http.StatusOK, list)
}

// GetByID will get repository by given id
func (rh *RepositoryHandler) GetByID(c echo.Context) error {
	id := c.Param("id")

	ctx, span := rh.tracer.Start(
		requestContext(c),
		"http GetByID",
		trace.WithSpanKind(trace.SpanKindServer),
		trace.WithAttributes(
			attribute.String("repoid", id)),
	)
	defer span.End()

	r, err := rh.repoUsecase.GetByID(ctx, id)
	if err != nil {
		return rh.errorResponse(c, span, err, domain.MsgGetNotFound)
	}

	span.SetStatus(codes.Ok, "success")
	return c.JSON(http.StatusOK, r)
}

// Store will store the repository by given request body
func (rh *RepositoryHandler) Store(c echo.Context) error {
	ctx, span := rh.tracer.Start(
		requestContext(c),
		"http Store",
		trace.WithSpanKind(trace.SpanKindServer),
	)
	defer span.End()

	r := new(domain.CreateRepository)
	if err := bindBody(c, r); err != nil {
		span.RecordError(err)
		return c.JSON(http.StatusBadRequest, domain.ResponseError{Error: err.Error()})
	}

	result, err := rh.repoUsecase.Store(ctx, *r)
	if err != nil {
		return rh.errorResponse(c, span, err, domain.MsgNotFound)
	}

	span.SetAttributes(
		attribute.String("repoid", result.ID),
	)

	return c.JSON(http.StatusOK, result)
}

// Update will update the repository by given id and request body
func (rh *RepositoryHandler) Update(c echo.Context) error {
	id := c.Param("id")

	ctx, span := rh.tracer.Start(
		requestContext(c),
		"http Update",
		trace.WithSpanKind(trace.SpanKindServer),
		trace.WithAttributes(
			attribute.String("repoid", id)),
	)
	defer span.End()

	if ok, err := rh.validID(c, span, id); !ok {
		return err
	}

	r := new(domain.UpdateRepository)
	if err := bindBody(c, r); err != nil {
		span.RecordError(err)
		return c.JSON(http.StatusBadRequest, domain.ResponseError{Error: err.Error()})
	}
	r.ID = id

	result, err := rh.repoUsecase.Update(ctx, *r)
	if err != nil {
		return rh.errorResponse(c, span, err, domain.MsgNotFound)
	}

	span.SetStatus(codes.Ok, "success")
	return c.JSON(http.StatusOK, result)
}

// Delete will delete repository by given id
func (rh *RepositoryHandler) Delete(c echo.Context) error {
	id := c.Param("id")

	ctx, span := rh.tracer.Start(
		requestContext(c),
		"http Delete",
		trace.WithSpanKind(trace.SpanKindServer),
		trace.WithAttributes(
			attribute.String("repoid", id)),
	)
	defer span.End()

	if ok, err := rh.validID(c, span, id); !ok {
		return err
	}

	if err := rh.repoUsecase.Delete(ctx, id); err != nil {
		return rh.errorResponse(c, span, err, domain.MsgNotFound)
	}

	span.SetStatus(codes.Ok, "success")
	return c.NoContent(http.StatusNoContent)
}

// Like will increment likes of repository by given id
func (rh *RepositoryHandler) Like(c echo.Context) error {
	id := c.Param("id")

	ctx, span := rh.tracer.Start(
		requestContext(c),
		"http Like",
		trace.WithSpanKind(trace.SpanKindServer),
		trace.WithAttributes(
			attribute.String("repoid", id)),
	)
	defer span.End()

	if ok, err := rh.validID(c, span, id); !ok {
		return err
	}

	result, err := rh.repoUsecase.Like(ctx, id)
	if err != nil {
		return rh.errorResponse(c, span, err, domain.MsgNotFound)
	}

	span.SetAttributes(
		attribute.Int("likes", result.Likes),
	)

	return c.JSON(http.StatusOK, result)
}
