package handlers

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/bytedance/sonic"
	"github.com/labstack/echo/v4"
	log "github.com/sirupsen/logrus"

	"donelist/models"
	"donelist/store"
	"donelist/utils"
)

const maxBodySize = 1 << 20

// Storage is the store surface the HTTP layer depends on.
type Storage interface {
	ListTasks(ctx context.Context, f store.TaskFilter, key store.SortKey, order store.SortOrder) ([]models.Task, error)
	GetTask(ctx context.Context, userID, id string) (models.Task, error)
	CreateTask(ctx context.Context, userID string, p store.CreateTaskParams) (models.Task, error)
	UpdateTask(ctx context.Context, userID, id string, p store.UpdateTaskParams) (models.Task, error)
	ToggleTask(ctx context.Context, userID, id string) (models.Task, error)
	DeleteTask(ctx context.Context, userID, id string) error
	ListTags(ctx context.Context, userID string) ([]models.Tag, error)
	CreateTag(ctx context.Context, userID, name, color string) (models.Tag, error)
	DeleteTag(ctx context.Context, userID, id string) error
	GetStats(ctx context.Context, userID string) (models.Stats, error)
}

// Register wires up all routes on the provided Echo instance. Everything
// under /api requires a resolvable session.
func Register(e *echo.Echo, st Storage, sessions *utils.SessionStore, logger *log.Logger) {
	e.GET("/healthz", healthz())

	api := e.Group("/api", SessionAuth(sessions))
	api.GET("/todos", getTodos(st, logger))
	api.GET("/todos/:id", getTodo(st, logger))
	api.POST("/todos", createTodo(st, logger))
	api.PATCH("/todos/:id", updateTodo(st, logger))
	api.POST("/todos/:id/toggle", toggleTodo(st, logger))
	api.DELETE("/todos/:id", deleteTodo(st, logger))
	api.GET("/tags", getTags(st, logger))
	api.POST("/tags", createTag(st, logger))
	api.DELETE("/tags/:id", deleteTag(st, logger))
	api.GET("/stats", getStats(st, logger))
}

func healthz() echo.HandlerFunc {
	return func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	}
}

type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type errorResponse struct {
	Error apiError `json:"error"`
}

func errJSON(c echo.Context, status int, code, message string) error {
	return c.JSON(status, errorResponse{Error: apiError{Code: code, Message: message}})
}

func invalid(c echo.Context, message string) error {
	return errJSON(c, http.StatusBadRequest, "VALIDATION", message)
}

// fail maps a store error onto the wire: missing-or-foreign rows become
// 404, anything else is an internal failure that gets logged.
func fail(c echo.Context, logger *log.Logger, op string, err error) error {
	if errors.Is(err, store.ErrNotFound) {
		return errJSON(c, http.StatusNotFound, "NOT_FOUND", err.Error())
	}
	logger.WithFields(log.Fields{
		"op":    op,
		"path":  c.Request().URL.Path,
		"error": err.Error(),
	}).Error("request failed")
	return errJSON(c, http.StatusInternalServerError, "INTERNAL", "internal error")
}

// decodeBody strictly decodes a size-limited JSON request body.
func decodeBody(c echo.Context, v any) error {
	dec := sonic.ConfigStd.NewDecoder(io.LimitReader(c.Request().Body, maxBodySize))
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}
