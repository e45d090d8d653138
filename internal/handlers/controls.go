package handlers

import (
	"errors"
	"io"
	"net/http"

	"aquarium_controller/internal/service"

	"github.com/gin-gonic/gin"
)

const (
	statusOK       = "ok"
	statusAccepted = "accepted"

	errGetStatus       = "failed to load status"
	errPublishCommand  = "failed to publish command"
	errInvalidBodyPref = "invalid body: "
)

// Centralized error logging and response.
func (h *Handler) logAndJSONError(c *gin.Context, httpCode int, userMsg, logKey string, err error, kv ...interface{}) {
	if h.log != nil && err != nil {
		fields := append([]interface{}{"err", err}, kv...)
		h.log.Errorw(logKey, fields...)
	}
	c.JSON(httpCode, gin.H{"error": userMsg})
}

// SetTargetRequest is the body of POST /api/v1/controls/target.
type SetTargetRequest struct {
	// Thermal set-point in Celsius, 15..35
	Target *float64 `json:"target" binding:"required" example:"25"`
}

// FeedRequest is the optional body of POST /api/v1/controls/feed.
type FeedRequest struct {
	// Feeder run time; capped by the controller
	Seconds *int `json:"seconds,omitempty" example:"3"`
}

// RefillRequest is the optional body of POST /api/v1/controls/refill.
type RefillRequest struct {
	// Water level to refill to, in percent
	Target *float64 `json:"target,omitempty" example:"100"`
}

// bindOptionalJSON binds a body only if one was sent. An empty chunked body
// counts as no body.
func (h *Handler) bindOptionalJSON(c *gin.Context, dst any) bool {
	if c.Request.ContentLength == 0 {
		return true
	}
	if err := c.ShouldBindJSON(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return true
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidBodyPref + err.Error()})
		return false
	}
	return true
}

func isValidationError(err error) bool {
	return errors.Is(err, service.ErrInvalidTarget) ||
		errors.Is(err, service.ErrInvalidFeedSeconds) ||
		errors.Is(err, service.ErrInvalidRefillTarget)
}

func (h *Handler) respondCommand(c *gin.Context, command string, err error) {
	switch {
	case err == nil:
		c.JSON(http.StatusAccepted, gin.H{"status": statusAccepted, "command": command})
	case isValidationError(err):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		h.logAndJSONError(c, http.StatusServiceUnavailable, errPublishCommand, "control_publish_failed", err, "command", command)
	}
}

// @Summary      Health check
// @Tags         system
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /health [get]
func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": statusOK,
	})
}

// @Summary      Get controller status
// @Tags         status
// @Produce      json
// @Success      200  {object}  models.Status
// @Failure      500  {object}  map[string]string
// @Router       /api/v1/status [get]
func (h *Handler) getStatus(c *gin.Context) {
	st, err := h.services.Monitoring.GetStatus(c.Request.Context())
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, errGetStatus, "get_status_failed", err)
		return
	}
	c.JSON(http.StatusOK, st)
}

// @Summary      Set target temperature
// @Tags         controls
// @Accept       json
// @Produce      json
// @Param        body  body      SetTargetRequest  true  "Set-point"
// @Success      202   {object}  map[string]string
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      503   {object}  map[string]string
// @Router       /api/v1/controls/target [post]
// @Security     BearerAuth
func (h *Handler) setTarget(c *gin.Context) {
	var req SetTargetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidBodyPref + err.Error()})
		return
	}
	h.respondCommand(c, "target", h.services.Controls.SetTarget(c.Request.Context(), *req.Target))
}

// @Summary      Run the feeder
// @Tags         controls
// @Accept       json
// @Produce      json
// @Param        body  body      FeedRequest  false  "Feeder duration"
// @Success      202   {object}  map[string]string
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      503   {object}  map[string]string
// @Router       /api/v1/controls/feed [post]
// @Security     BearerAuth
func (h *Handler) feed(c *gin.Context) {
	var req FeedRequest
	if !h.bindOptionalJSON(c, &req) {
		return
	}
	h.respondCommand(c, "feed", h.services.Controls.Feed(c.Request.Context(), req.Seconds))
}

// @Summary      Start a manual refill
// @Tags         controls
// @Accept       json
// @Produce      json
// @Param        body  body      RefillRequest  false  "Refill target"
// @Success      202   {object}  map[string]string
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      503   {object}  map[string]string
// @Router       /api/v1/controls/refill [post]
// @Security     BearerAuth
func (h *Handler) refill(c *gin.Context) {
	var req RefillRequest
	if !h.bindOptionalJSON(c, &req) {
		return
	}
	h.respondCommand(c, "refill", h.services.Controls.Refill(c.Request.Context(), req.Target))
}
