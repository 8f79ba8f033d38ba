package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

// Health reports process liveness and database reachability.
func Health(db *gorm.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		sqlDB, err := db.DB()
		if err == nil {
			err = sqlDB.PingContext(c.Request().Context())
		}
		if err != nil {
			return c.JSON(http.StatusServiceUnavailable, echo.Map{
				"status":   "degraded",
				"database": "unreachable",
			})
		}
		return c.JSON(http.StatusOK, echo.Map{
			"status":   "ok",
			"database": "ok",
		})
	}
}
