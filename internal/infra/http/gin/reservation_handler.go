package ginserver

import (
	"net/http"

	gin "github.com/gin-gonic/gin"

	"rentwear/internal/app/commands"
	"rentwear/internal/app/dto"
	reservationsapp "rentwear/internal/app/handlers/reservations"
)

const idempotencyHeader = "Idempotency-Key"

type ReservationHandler struct {
	Commands commands.Bus
}

type confirmReservationRequest struct {
	ItemID   string `json:"item_id" binding:"required"`
	RenterID string `json:"renter_id" binding:"required"`
	Start    string `json:"start" binding:"required"`
	End      string `json:"end" binding:"required"`
}

type cancelReservationRequest struct {
	Reason string `json:"reason"`
}

func (h ReservationHandler) Confirm(c *gin.Context) {
	var req confirmReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	start, err := parseDate(req.Start)
	if err != nil {
		writeError(c, err)
		return
	}
	end, err := parseDate(req.End)
	if err != nil {
		writeError(c, err)
		return
	}
	cmd := reservationsapp.ConfirmReservationCommand{
		RequestKey: c.GetHeader(idempotencyHeader),
		ItemID:     req.ItemID,
		RenterID:   req.RenterID,
		Start:      start,
		End:        end,
	}
	result, err := commands.Dispatch[reservationsapp.ConfirmReservationCommand, *dto.ReservationResult](c.Request.Context(), h.Commands, cmd)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, result)
}

func (h ReservationHandler) Cancel(c *gin.Context) {
	var req cancelReservationRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}
	cmd := reservationsapp.CancelReservationCommand{ReservationID: c.Param("id"), Reason: req.Reason}
	result, err := commands.Dispatch[reservationsapp.CancelReservationCommand, *dto.ReservationResult](c.Request.Context(), h.Commands, cmd)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

var _ ReservationHTTP = ReservationHandler{}
