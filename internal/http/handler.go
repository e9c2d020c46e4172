package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	dto "taskboard.com/taskboard/internal/data_models"
	apperrors "taskboard.com/taskboard/internal/errors"
	"taskboard.com/taskboard/internal/http/validators"
	repository "taskboard.com/taskboard/internal/repositories"
	"taskboard.com/taskboard/internal/services"
)

type Handler struct {
	taskService *services.TaskService
}

func NewHandler(taskService *services.TaskService) *Handler {
	return &Handler{
		taskService: taskService,
	}
}

func (h *Handler) CreateTask(c echo.Context) error {
	var req dto.CreateTaskRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid JSON payload")
	}
	if err := validators.ValidateCreateTaskRequest(&req); err != nil {
		return err
	}

	ctx := c.Request().Context()

	task, err := h.taskService.CreateTask(ctx, req.Title, req.UserID, req.BuildingID, req.Status, req.DueDate)
	if err != nil {
		return httpError(err, "failed to create task")
	}

	return c.JSON(http.StatusCreated, task)
}

func (h *Handler) GetTask(c echo.Context) error {
	task, err := h.taskService.GetTask(c.Request().Context(), c.Param("id"))
	if err != nil {
		return httpError(err, "failed to get task")
	}

	return c.JSON(http.StatusOK, task)
}

func (h *Handler) ListTasks(c echo.Context) error {
	filter := repository.TaskFilter{
		UserID:     c.QueryParam("user_id"),
		BuildingID: c.QueryParam("building_id"),
	}

	tasks, err := h.taskService.ListTasks(c.Request().Context(), filter)
	if err != nil {
		return httpError(err, "failed to list tasks")
	}

	return c.JSON(http.StatusOK, echo.Map{
		"count": len(tasks),
		"tasks": tasks,
	})
}

func (h *Handler) UpdateTaskStatus(c echo.Context) error {
	var req dto.UpdateTaskStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid JSON payload")
	}

	task, err := h.taskService.UpdateTaskStatus(c.Request().Context(), c.Param("id"), req.Status)
	if err != nil {
		return httpError(err, "failed to update task status")
	}

	return c.JSON(http.StatusOK, task)
}

func (h *Handler) DeleteTask(c echo.Context) error {
	if err := h.taskService.DeleteTask(c.Request().Context(), c.Param("id")); err != nil {
		return httpError(err, "failed to delete task")
	}

	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) ListUsers(c echo.Context) error {
	users, err := h.taskService.ListUsers(c.Request().Context())
	if err != nil {
		return httpError(err, "failed to list users")
	}

	return c.JSON(http.StatusOK, users)
}

func (h *Handler) ListBuildings(c echo.Context) error {
	buildings, err := h.taskService.ListBuildings(c.Request().Context())
	if err != nil {
		return httpError(err, "failed to list buildings")
	}

	return c.JSON(http.StatusOK, buildings)
}

// httpError maps service errors onto HTTP responses. Known exceptions carry
// their own status code and message; anything else is a 500 with a generic
// description of the failed action.
func httpError(err error, fallback string) error {
	if ex, ok := apperrors.AsException(err); ok {
		return echo.NewHTTPError(ex.StatusCode, ex.Message)
	}
	return echo.NewHTTPError(http.StatusInternalServerError, fallback)
}
