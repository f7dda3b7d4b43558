package crawlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
)

// Handler serves crawler statistics.
type Handler struct {
	store *Store
}

// NewHandler creates a new crawler stats handler.
func NewHandler(store *Store) *Handler {
	return &Handler{store: store}
}

// StatsResponse is the JSON response of the stats endpoint.
type StatsResponse struct {
	Stats *Stats `json:"stats"`
	Days  int    `json:"days"`
}

// parseDays reads the ?days= window, defaulting to 30 and capped at a year.
func parseDays(c echo.Context) int {
	days, err := strconv.Atoi(c.QueryParam("days"))
	if err != nil || days < 1 {
		return 30
	}
	if days > 365 {
		return 365
	}
	return days
}

// Stats returns crawler activity for the last ?days= days as JSON.
func (h *Handler) Stats(c echo.Context) error {
	days := parseDays(c)
	to := time.Now().UTC()
	from := to.AddDate(0, 0, -days)
	stats, err := h.store.Stats(from, to)
	if err != nil {
		c.Logger().Errorf("crawlers: stats: %v", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to load crawler stats")
	}
	return c.JSON(http.StatusOK, StatsResponse{Stats: stats, Days: days})
}
