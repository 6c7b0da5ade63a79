package ginserver

import (
	"net/http"
	"time"

	gin "github.com/gin-gonic/gin"

	"rentwear/internal/app/dto"
	availabilityapp "rentwear/internal/app/handlers/availability"
	"rentwear/internal/app/queries"
)

const monthLayout = "2006-01"

type AvailabilityHandler struct {
	Queries queries.Bus
	Now     func() time.Time
}

// Calendar answers GET /items/:id/calendar?month=YYYY-MM, defaulting to the current month.
func (h AvailabilityHandler) Calendar(c *gin.Context) {
	month := h.now()
	if raw := c.Query("month"); raw != "" {
		parsed, err := time.Parse(monthLayout, raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "month must be YYYY-MM"})
			return
		}
		month = parsed
	}
	query := availabilityapp.ItemCalendarQuery{ItemID: c.Param("id"), Month: month}
	result, err := queries.Ask[availabilityapp.ItemCalendarQuery, dto.ItemCalendar](c.Request.Context(), h.Queries, query)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h AvailabilityHandler) now() time.Time {
	if h.Now != nil {
		return h.Now()
	}
	return time.Now().UTC()
}

var _ AvailabilityHTTP = AvailabilityHandler{}
