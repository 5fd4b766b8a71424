package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/KasumiMercury/primind-push-dispatch/internal/domain"
	"github.com/KasumiMercury/primind-push-dispatch/internal/infra/fcm"
	"github.com/KasumiMercury/primind-push-dispatch/internal/infra/googleauth"
	"github.com/KasumiMercury/primind-push-dispatch/internal/service/dispatch"
)

type PushHandler struct {
	dispatchService *dispatch.Service
}

func NewPushHandler(dispatchService *dispatch.Service) *PushHandler {
	return &PushHandler{
		dispatchService: dispatchService,
	}
}

type pushRequest struct {
	FCMToken string            `json:"fcm_token" binding:"required"`
	Title    string            `json:"title" binding:"required"`
	Body     string            `json:"body" binding:"required"`
	Data     map[string]string `json:"data"`
}

// HandlePush validates the inbound request and runs the dispatch pipeline.
// Every failure mode maps to one uniform envelope carrying the measured
// duration; key and token material never appear in responses or logs.
func (h *PushHandler) HandlePush(c *gin.Context) {
	ctx := c.Request.Context()
	start := time.Now()

	var req pushRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.WarnContext(ctx, "push request validation failed",
			slog.String("error", err.Error()),
		)
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "missing required fields: fcm_token, title, body",
		})
		return
	}

	result, err := h.dispatchService.Dispatch(ctx, domain.PushRequest{
		Token: req.FCMToken,
		Title: req.Title,
		Body:  req.Body,
		Data:  req.Data,
	})
	if err != nil {
		respondDispatchError(c, err, time.Since(start))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":      true,
		"message":      "push notification sent successfully",
		"fcm_response": result.GatewayResponse,
		"duration_ms":  result.Duration.Milliseconds(),
	})
}

func respondDispatchError(c *gin.Context, err error, duration time.Duration) {
	durationMs := duration.Milliseconds()

	var exchangeErr *googleauth.TokenExchangeError
	if errors.As(err, &exchangeErr) {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   "failed to obtain access token",
			"oauth_error": gin.H{
				"status": exchangeErr.StatusCode,
				"body":   exchangeErr.Body,
			},
			"duration_ms": durationMs,
		})
		return
	}

	var dispatchErr *fcm.DispatchError
	if errors.As(err, &dispatchErr) {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   "failed to send push notification",
			"fcm_error": gin.H{
				"status":    dispatchErr.StatusCode,
				"body":      dispatchErr.Body,
				"permanent": dispatchErr.Permanent(),
			},
			"duration_ms": durationMs,
		})
		return
	}

	if errors.Is(err, domain.ErrOutboundTimeout) {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success":     false,
			"error":       "internal server error",
			"details":     domain.ErrOutboundTimeout.Error(),
			"duration_ms": durationMs,
		})
		return
	}

	c.JSON(http.StatusInternalServerError, gin.H{
		"success":     false,
		"error":       "internal server error",
		"details":     err.Error(),
		"duration_ms": durationMs,
	})
}
