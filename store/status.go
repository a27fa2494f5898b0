package store

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/semka95/repositories/backend/domain"
)

// StatusHandler represent the http handler for status check
type StatusHandler struct {
	Store domain.RepositoryStore
}

// NewStatusHandler will initialize the /status endpoint
func NewStatusHandler(e *echo.Echo, s domain.RepositoryStore) {
	handler := &StatusHandler{
		Store: s,
	}

	e.GET("/v1/status", handler.StatusCheckHandler)
}

// StatusCheckHandler will get status of the store
func (h *StatusHandler) StatusCheckHandler(c echo.Context) error {
	ctx := c.Request().Context()
	if ctx == nil {
		ctx = context.Background()
	}

	res, err := h.Store.Stats(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, domain.ResponseError{Error: err.Error()})
	}

	return c.JSON(http.StatusOK, res)
}
