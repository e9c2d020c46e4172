package validators

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	dto "taskboard.com/taskboard/internal/data_models"
)

func ValidateCreateTaskRequest(r *dto.CreateTaskRequest) error {
	if strings.TrimSpace(r.Title) == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "title is required")
	}
	if r.UserID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "user_id is required")
	}
	if r.BuildingID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "building_id is required")
	}
	if r.DueDate.IsZero() {
		return echo.NewHTTPError(http.StatusBadRequest, "due_date is required")
	}
	return nil
}
