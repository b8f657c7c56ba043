package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"collections-assign-backend/internal/model"
)

type shiftResponse struct {
	Weekday time.Weekday `json:"weekday"`
	Rest    bool         `json:"rest"`
	Start   string       `json:"start,omitempty"`
	End     string       `json:"end,omitempty"`
}

type resourceResponse struct {
	ID          string          `json:"id"`
	DisplayName string          `json:"display_name"`
	Tier        model.Tier      `json:"tier"`
	Team        string          `json:"team"`
	Shifts      []shiftResponse `json:"shifts"`
}

// GetResources handles GET /api/resources: the roster with shift calendars.
// Read-mostly reference data, served through the response cache.
func (h *Handler) GetResources(c *gin.Context) {
	resources, err := h.store.ListResources(c.Request.Context())
	if err != nil {
		c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{"error": "failed to list resources"})
		return
	}

	response := make([]resourceResponse, 0, len(resources))
	for _, res := range resources {
		rr := resourceResponse{
			ID:          res.ID,
			DisplayName: res.DisplayName,
			Tier:        res.Tier,
			Team:        res.Team,
			Shifts:      make([]shiftResponse, 0, len(res.Shifts)),
		}
		for _, s := range res.Shifts {
			rr.Shifts = append(rr.Shifts, shiftResponse{
				Weekday: s.Weekday,
				Rest:    s.Rest,
				Start:   s.StartTime,
				End:     s.EndTime,
			})
		}
		response = append(response, rr)
	}
	c.JSON(http.StatusOK, response)
}
