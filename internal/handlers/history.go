package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"aquarium_controller/internal/models"
	"aquarium_controller/internal/service"

	"github.com/gin-gonic/gin"
)

const (
	errFromInvalid  = "invalid 'from' time; use RFC3339 or YYYY-MM-DD"
	errToInvalid    = "invalid 'to' time; use RFC3339 or YYYY-MM-DD"
	errLimitInvalid = "invalid 'limit'; use a non-negative integer"

	layoutDateTime = "2006-01-02 15:04:05"
	layoutDate     = "2006-01-02"
)

// isDateOnly reports whether the query string represents a date without time component.
func isDateOnly(s string) bool {
	return !strings.ContainsAny(s, "T ")
}

// parseWindow reads the optional from/to query pair. A date-only 'to' is
// inclusive of the whole day. On failure the 400 is already written.
func (h *Handler) parseWindow(c *gin.Context) (from, to time.Time, ok bool) {
	var err error
	if qs := c.Query("from"); qs != "" {
		from, err = parseQueryTime(qs)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": errFromInvalid})
			return time.Time{}, time.Time{}, false
		}
	}
	if qs := c.Query("to"); qs != "" {
		to, err = parseQueryTime(qs)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": errToInvalid})
			return time.Time{}, time.Time{}, false
		}
		if isDateOnly(qs) {
			to = to.Add(24*time.Hour - time.Nanosecond).UTC()
		}
	}
	return from, to, true
}

func (h *Handler) parseLimit(c *gin.Context) (int, bool) {
	qs := c.Query("limit")
	if qs == "" {
		return 0, true
	}
	n, err := strconv.Atoi(qs)
	if err != nil || n < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": errLimitInvalid})
		return 0, false
	}
	return n, true
}

func isHistoryQueryError(err error) bool {
	return errors.Is(err, service.ErrInvalidTimeRange) ||
		errors.Is(err, service.ErrInvalidLimit) ||
		errors.Is(err, service.ErrInvalidKind) ||
		errors.Is(err, service.ErrInvalidLevel)
}

func (h *Handler) historyError(c *gin.Context, userMsg, logKey string, err error, kv ...interface{}) {
	if isHistoryQueryError(err) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	h.logAndJSONError(c, http.StatusInternalServerError, userMsg, logKey, err, kv...)
}

// @Summary      List sensor readings
// @Description  Newest first. Dates accept RFC3339, 'YYYY-MM-DD HH:MM:SS', or 'YYYY-MM-DD'; a date-only 'to' covers the whole day.
// @Tags         history
// @Produce      json
// @Param        from   query   string  false  "Start of range"  example(2025-08-01)
// @Param        to     query   string  false  "End of range"    example(2025-08-31)
// @Param        kind   query   string  false  "Reading kind"    Enums(TEMPERATURE,WATER_LEVEL)
// @Param        limit  query   int     false  "Max rows (default 100, max 1000)"
// @Success      200    {object}  map[string]interface{}  "count, readings"
// @Failure      400    {object}  map[string]string
// @Failure      500    {object}  map[string]string
// @Router       /api/v1/readings [get]
func (h *Handler) getReadings(c *gin.Context) {
	from, to, ok := h.parseWindow(c)
	if !ok {
		return
	}
	limit, ok := h.parseLimit(c)
	if !ok {
		return
	}
	kind := c.Query("kind")

	readings, err := h.services.History.ListReadings(c.Request.Context(), service.ReadingQuery{
		From:  from,
		To:    to,
		Kind:  kind,
		Limit: limit,
	})
	if err != nil {
		h.historyError(c, "failed to load readings", "readings_list_failed", err, "from", from, "to", to, "kind", kind)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"count":    len(readings),
		"readings": readings,
	})
}

// @Summary      Reading statistics
// @Description  Count, min, max and average per reading kind over the window.
// @Tags         history
// @Produce      json
// @Param        from  query   string  false  "Start of range"
// @Param        to    query   string  false  "End of range"
// @Success      200   {object}  map[string]interface{}  "stats"
// @Failure      400   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /api/v1/readings/stats [get]
func (h *Handler) getReadingStats(c *gin.Context) {
	from, to, ok := h.parseWindow(c)
	if !ok {
		return
	}
	stats, err := h.services.History.Stats(c.Request.Context(), from, to)
	if err != nil {
		h.historyError(c, "failed to load stats", "readings_stats_failed", err, "from", from, "to", to)
		return
	}
	c.JSON(http.StatusOK, gin.H{"stats": stats})
}

// @Summary      List alerts
// @Description  Newest first, optionally filtered by level.
// @Tags         history
// @Produce      json
// @Param        from   query   string  false  "Start of range"
// @Param        to     query   string  false  "End of range"
// @Param        level  query   string  false  "Alert level"  Enums(INFO,WARNING,CRITICAL)
// @Param        limit  query   int     false  "Max rows (default 100, max 1000)"
// @Success      200    {object}  map[string]interface{}  "count, alerts"
// @Failure      400    {object}  map[string]string
// @Failure      500    {object}  map[string]string
// @Router       /api/v1/alerts [get]
func (h *Handler) getAlerts(c *gin.Context) {
	from, to, ok := h.parseWindow(c)
	if !ok {
		return
	}
	limit, ok := h.parseLimit(c)
	if !ok {
		return
	}
	level := models.AlertLevel(c.Query("level"))

	alerts, err := h.services.History.ListAlerts(c.Request.Context(), service.AlertQuery{
		From:  from,
		To:    to,
		Level: level,
		Limit: limit,
	})
	if err != nil {
		h.historyError(c, "failed to load alerts", "alerts_list_failed", err, "from", from, "to", to, "level", level)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"count":  len(alerts),
		"alerts": alerts,
	})
}

func parseQueryTime(s string) (time.Time, error) {
	for _, layout := range []string{time.RFC3339, layoutDateTime, layoutDate} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf(
		"invalid time format %q, expected one of: "+
			"RFC3339 (e.g. 2025-08-27T15:04:05Z), "+
			"'YYYY-MM-DD HH:MM:SS', "+
			"'YYYY-MM-DD'",
		s,
	)
}
