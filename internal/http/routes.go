package http

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	middleware "taskboard.com/taskboard/internal/http/middlewares"
	"taskboard.com/taskboard/internal/notify"
)

func Register(e *echo.Echo, h *Handler, hub *notify.Hub, rateLimitPerMinute int) {
	e.Use(middleware.RateLimiter(rateLimitPerMinute, time.Minute))

	e.GET("/tasks", h.ListTasks)
	e.POST("/tasks", h.CreateTask)
	e.GET("/tasks/:id", h.GetTask)
	e.PATCH("/tasks/:id/status", h.UpdateTaskStatus)
	e.DELETE("/tasks/:id", h.DeleteTask)

	e.GET("/users", h.ListUsers)
	e.GET("/buildings", h.ListBuildings)

	e.GET("/ws", echo.WrapHandler(http.HandlerFunc(hub.Handle)))
}
