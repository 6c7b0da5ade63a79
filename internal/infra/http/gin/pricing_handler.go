package ginserver

import (
	"net/http"

	gin "github.com/gin-gonic/gin"

	"rentwear/internal/app/dto"
	pricingapp "rentwear/internal/app/handlers/pricing"
	"rentwear/internal/app/queries"
)

type PricingHandler struct {
	Queries queries.Bus
}

// Quote answers GET /items/:id/quote?start=&end=&renter_id=.
func (h PricingHandler) Quote(c *gin.Context) {
	start, err := parseDate(c.Query("start"))
	if err != nil {
		writeError(c, err)
		return
	}
	end, err := parseDate(c.Query("end"))
	if err != nil {
		writeError(c, err)
		return
	}
	query := pricingapp.QuoteRentalQuery{
		ItemID:   c.Param("id"),
		RenterID: c.Query("renter_id"),
		Start:    start,
		End:      end,
	}
	result, err := queries.Ask[pricingapp.QuoteRentalQuery, dto.RentalQuote](c.Request.Context(), h.Queries, query)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// Advice answers GET /items/:id/advice?usage=.
func (h PricingHandler) Advice(c *gin.Context) {
	query := pricingapp.RentOrBuyQuery{ItemID: c.Param("id"), Usage: c.Query("usage")}
	result, err := queries.Ask[pricingapp.RentOrBuyQuery, dto.RentOrBuyAdvice](c.Request.Context(), h.Queries, query)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

var _ PricingHTTP = PricingHandler{}
