package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"collections-assign-backend/internal/eligibility"
	"collections-assign-backend/internal/engine"
)

type assignRequest struct {
	TicketID   string `json:"ticket_id" binding:"required"`
	ResourceID string `json:"resource_id" binding:"required"`
	Date       string `json:"date" binding:"required"`
	Time       string `json:"time" binding:"required"`
}

// PostAssignment handles POST /api/assignments.
func (h *Handler) PostAssignment(c *gin.Context) {
	var req assignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	ctx, cancel := h.opContext(c.Request.Context())
	defer cancel()
	if err := h.engine.Assign(ctx, req.TicketID, req.ResourceID, req.Date, req.Time); err != nil {
		writeEngineError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

type reassignRequest struct {
	ResourceID string `json:"resource_id" binding:"required"`
	Date       string `json:"date" binding:"required"`
	Time       string `json:"time" binding:"required"`
}

// PutAssignment handles PUT /api/assignments/:ticket_id.
func (h *Handler) PutAssignment(c *gin.Context) {
	var req reassignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	ctx, cancel := h.opContext(c.Request.Context())
	defer cancel()
	ticketID := c.Param("ticket_id")
	if err := h.engine.Reassign(ctx, ticketID, req.ResourceID, req.Date, req.Time); err != nil {
		writeEngineError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

type transferRequest struct {
	FromResourceID string `json:"from_resource_id" binding:"required"`
	ToResourceID   string `json:"to_resource_id" binding:"required"`
}

// PostTransfer handles POST /api/transfers: bulk reassignment of one agent's
// open tickets to another.
func (h *Handler) PostTransfer(c *gin.Context) {
	var req transferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	ctx, cancel := h.opContext(c.Request.Context())
	defer cancel()
	moved, err := h.engine.BulkTransfer(ctx, req.FromResourceID, req.ToResourceID)
	if err != nil {
		// A source with zero load is routine, not a failure.
		if errors.Is(err, engine.ErrNothingToTransfer) {
			c.JSON(http.StatusOK, gin.H{"moved_count": 0, "note": "source resource has no open tickets"})
			return
		}
		writeEngineError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"moved_count": moved})
}

// writeEngineError maps the engine's error taxonomy to HTTP responses. An
// ineligible resource gets a message that names the exact rule it failed so
// the dashboard can explain rest day versus tier mismatch.
func writeEngineError(c *gin.Context, err error) {
	var inel *engine.IneligibleError
	if errors.As(err, &inel) {
		msg := "resource is not eligible for this ticket"
		switch inel.Reason {
		case eligibility.ReasonRestDay:
			msg = "resource is on a rest day for the requested date"
		case eligibility.ReasonTierRequired:
			msg = "late-portfolio tickets require an expert-tier resource"
		case eligibility.ReasonOutsideWindow:
			msg = "requested time is outside the resource's shift window"
		}
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": msg, "reason": inel.Reason})
		return
	}

	switch {
	case errors.Is(err, engine.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "ticket or resource not found"})
	case errors.Is(err, engine.ErrTerminal):
		c.JSON(http.StatusConflict, gin.H{"error": "ticket is finalized and cannot be reassigned"})
	case errors.Is(err, engine.ErrInvalidArgument):
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
	case errors.Is(err, engine.ErrTimeout):
		c.JSON(http.StatusGatewayTimeout, gin.H{"error": "operation timed out, safe to retry"})
	case errors.Is(err, engine.ErrStoreUnavailable):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "data store unavailable"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "assignment failed"})
	}
}
