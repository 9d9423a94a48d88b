package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/blacks1k-sc/ParcelVision/internal/domain"
	"github.com/blacks1k-sc/ParcelVision/internal/port"
)

// ValetHandler serves the valet polling routes. The response shapes here are
// a wire contract with the browser polling script and must stay stable, so
// these routes bypass the APIResponse envelope.
type ValetHandler struct {
	queue port.PendingQueue
}

// NewValetHandler creates a new ValetHandler.
func NewValetHandler(queue port.PendingQueue) *ValetHandler {
	return &ValetHandler{queue: queue}
}

// Pending handles GET /valet/pending
// The browser script polls this for units to register downstream.
func (h *ValetHandler) Pending(c *gin.Context) {
	units := h.queue.ListPending()
	if len(units) == 0 {
		c.JSON(http.StatusOK, gin.H{
			"status": "empty",
			"units":  []domain.PendingUnit{},
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status": "pending",
		"count":  len(units),
		"units":  units,
	})
}

// completeRequest is the acknowledgment payload from the browser script.
type completeRequest struct {
	Unit    string `json:"unit" binding:"required"`
	Success bool   `json:"success"`
}

// Complete handles POST /valet/complete
// Called by the browser script after registering a unit. Success removes
// every queued entry for that unit; failure leaves the queue untouched so the
// script can retry.
func (h *ValetHandler) Complete(c *gin.Context) {
	var req completeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "invalid request body",
		})
		return
	}

	if !req.Success {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Failed to add unit",
		})
		return
	}

	h.queue.Acknowledge(req.Unit)
	c.JSON(http.StatusOK, gin.H{
		"status":    "success",
		"message":   fmt.Sprintf("Unit %s removed from queue", req.Unit),
		"remaining": h.queue.Size(),
	})
}

// QueueStatus handles GET /valet/queue-status
func (h *ValetHandler) QueueStatus(c *gin.Context) {
	pending := h.queue.ListPending()
	units := make([]string, 0, len(pending))
	for _, p := range pending {
		units = append(units, p.Unit)
	}
	c.JSON(http.StatusOK, gin.H{
		"queue_size":    len(pending),
		"pending_units": units,
	})
}

// ClearQueue handles POST /valet/clear-queue
// Emergency reset for a wedged queue.
func (h *ValetHandler) ClearQueue(c *gin.Context) {
	count := h.queue.Clear()
	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": fmt.Sprintf("Cleared %d units from queue", count),
	})
}
