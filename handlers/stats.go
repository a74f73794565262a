package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	log "github.com/sirupsen/logrus"
)

func getStats(st Storage, logger *log.Logger) echo.HandlerFunc {
	return func(c echo.Context) error {
		stats, err := st.GetStats(c.Request().Context(), currentUserID(c))
		if err != nil {
			return fail(c, logger, "getStats", err)
		}
		return c.JSON(http.StatusOK, stats)
	}
}
