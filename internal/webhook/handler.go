package webhook

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/kingmrb/post-call-webhook/internal/hours"
	"github.com/kingmrb/post-call-webhook/internal/order"
)

// Handler exposes the webhook HTTP surface. Webhook senders retry on non-2xx,
// so every understood-but-unactionable event is acknowledged with 200.
type Handler struct {
	service         *Service
	schedule        hours.Schedule
	mainAgentID     string
	fallbackAgentID string
	log             *zap.Logger
}

func NewHandler(service *Service, schedule hours.Schedule, mainAgentID, fallbackAgentID string, log *zap.Logger) *Handler {
	return &Handler{
		service:         service,
		schedule:        schedule,
		mainAgentID:     mainAgentID,
		fallbackAgentID: fallbackAgentID,
		log:             log,
	}
}

// PostCall handles the call-completion webhook.
func (h *Handler) PostCall(c *gin.Context) {
	var payload PostCallPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}

	o, err := h.service.ProcessPostCall(c.Request.Context(), payload)
	switch {
	case errors.Is(err, ErrDuplicateCall):
		c.JSON(http.StatusOK, gin.H{"status": "duplicate", "call_id": payload.Data.ConversationID})
	case errors.Is(err, order.ErrNoOrder):
		c.JSON(http.StatusOK, gin.H{"status": "no_order", "call_id": payload.Data.ConversationID})
	case err != nil:
		h.log.Error("post-call processing failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "processing failed"})
	default:
		c.JSON(http.StatusOK, gin.H{"status": "order_parsed", "order": o})
	}
}

// LiveCart handles mid-call running-cart updates.
func (h *Handler) LiveCart(c *gin.Context) {
	var payload LiveCartPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}

	snap, err := h.service.ProcessLiveCart(c.Request.Context(), payload)
	if errors.Is(err, ErrEmptyCart) {
		c.JSON(http.StatusOK, gin.H{"status": "no_items", "call_id": payload.CallID})
		return
	}
	if err != nil {
		h.log.Error("live cart update failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "cart update failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":     "cart_stored",
		"call_id":    snap.CallID,
		"item_count": len(snap.Items),
	})
}

// Voice answers the telephony provider's call-routing request with TwiML,
// redirecting to the fallback agent outside ordering hours.
func (h *Handler) Voice(c *gin.Context) {
	agentID := h.mainAgentID
	if h.schedule.PastCutoff(time.Now()) {
		agentID = h.fallbackAgentID
	}

	twiml := fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<Response>
  <Redirect>https://api.elevenlabs.io/twilio/inbound_call?agent_id=%s</Redirect>
</Response>`, agentID)

	c.Data(http.StatusOK, "text/xml", []byte(twiml))
}

// Health is the liveness probe.
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
