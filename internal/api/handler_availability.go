package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"collections-assign-backend/internal/availability"
	"collections-assign-backend/internal/model"
	"collections-assign-backend/internal/schedule"
)

// resourceAvailabilityResponse is one row of the availability snapshot as
// presented to the dashboard.
type resourceAvailabilityResponse struct {
	ResourceID  string            `json:"resource_id"`
	DisplayName string            `json:"display_name"`
	Tier        model.Tier        `json:"tier"`
	Team        string            `json:"team"`
	OnDuty      bool              `json:"on_duty"`
	ShiftWindow string            `json:"shift_window,omitempty"`
	OpenTickets int64             `json:"open_tickets"`
	Band        availability.Band `json:"band"`
}

// GetAvailability handles GET /api/availability?date=YYYY-MM-DD.
func (h *Handler) GetAvailability(c *gin.Context) {
	date := c.Query("date")
	if _, err := schedule.ParseDate(date); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "date must be YYYY-MM-DD"})
		return
	}

	snapshot, err := h.calc.GetAvailability(c.Request.Context(), date)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{"error": "failed to compute availability"})
		return
	}

	response := make([]resourceAvailabilityResponse, 0, len(snapshot))
	for _, ra := range snapshot {
		row := resourceAvailabilityResponse{
			ResourceID:  ra.Resource.ID,
			DisplayName: ra.Resource.DisplayName,
			Tier:        ra.Resource.Tier,
			Team:        ra.Resource.Team,
			OnDuty:      ra.OnDuty,
			OpenTickets: ra.OpenTickets,
			Band:        ra.Band,
		}
		if ra.OnDuty {
			row.ShiftWindow = ra.Window.String()
		}
		response = append(response, row)
	}
	c.JSON(http.StatusOK, response)
}

// GetAttention handles GET /api/attention: late-portfolio tickets with no
// assigned agent, for the operator "needs attention" list.
func (h *Handler) GetAttention(c *gin.Context) {
	tickets, err := h.store.ListUnassignedBySegment(c.Request.Context(), model.SegmentLate)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{"error": "failed to list tickets"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"tickets": availability.NeedsAttention(tickets)})
}
