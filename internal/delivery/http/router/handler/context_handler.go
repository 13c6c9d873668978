package handler

import (
	"net/http"

	"authsvc/internal/delivery/http/response"
	"authsvc/internal/errors"
	"authsvc/internal/usecase"

	"github.com/labstack/echo/v4"
)

type ContextHandler struct {
	uc usecase.ContextUsecase
}

func NewContextHandler(uc usecase.ContextUsecase) *ContextHandler {
	return &ContextHandler{uc: uc}
}

// ContextRow is the raw row shape returned by GET /context.
type ContextRow struct {
	ID   int64  `json:"id"`
	Data string `json:"data"`
}

// GetLatest handles GET /context with the newest row, unwrapped.
func (h *ContextHandler) GetLatest(c echo.Context) error {
	record, err := h.uc.GetLatest(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	return c.JSON(http.StatusOK, ContextRow{ID: record.ID, Data: record.Data})
}

// HealthCheck is a simple handler to check if the service is up.
func HealthCheck(c echo.Context) error {
	return response.Success(c, http.StatusOK, map[string]string{"status": "ok"}, "Service is healthy")
}
