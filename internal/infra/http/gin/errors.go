package ginserver

import (
	"errors"
	"net/http"
	"time"

	gin "github.com/gin-gonic/gin"

	"rentwear/internal/app/commands"
	availabilityapp "rentwear/internal/app/handlers/availability"
	pricingapp "rentwear/internal/app/handlers/pricing"
	reservationsapp "rentwear/internal/app/handlers/reservations"
	"rentwear/internal/app/middleware"
	"rentwear/internal/app/queries"
	domainavailability "rentwear/internal/domain/availability"
	domaincatalog "rentwear/internal/domain/catalog"
	domainpricing "rentwear/internal/domain/pricing"
	domainrenters "rentwear/internal/domain/renters"
	"rentwear/internal/domain/shared/daterange"
	mongostore "rentwear/internal/infra/db/mongo"
)

var errInvalidDate = errors.New("http: dates must be YYYY-MM-DD or RFC3339")

// statusFor maps application errors onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, domaincatalog.ErrItemNotFound),
		errors.Is(err, domainavailability.ErrReservationNotFound),
		errors.Is(err, domainrenters.ErrRenterNotFound):
		return http.StatusNotFound
	case errors.Is(err, domainavailability.ErrReservationOverlap),
		errors.Is(err, domainavailability.ErrInvalidState),
		errors.Is(err, middleware.ErrIdempotencyKeyReused),
		errors.Is(err, mongostore.ErrConcurrentUpdate):
		return http.StatusConflict
	case errors.Is(err, domainpricing.ErrInvalidPeriod),
		errors.Is(err, domainpricing.ErrInvalidProfile),
		errors.Is(err, domainavailability.ErrInvalidPeriod),
		errors.Is(err, domainavailability.ErrInvalidWindow),
		errors.Is(err, daterange.ErrInvalidRange),
		errors.Is(err, pricingapp.ErrItemIDRequired),
		errors.Is(err, availabilityapp.ErrItemIDRequired),
		errors.Is(err, availabilityapp.ErrMonthRequired),
		errors.Is(err, reservationsapp.ErrItemIDRequired),
		errors.Is(err, reservationsapp.ErrRenterIDRequired),
		errors.Is(err, reservationsapp.ErrReservationIDRequired),
		errors.Is(err, errInvalidDate):
		return http.StatusBadRequest
	case errors.Is(err, domainavailability.ErrInvalidReservation):
		return http.StatusUnprocessableEntity
	case errors.Is(err, commands.ErrHandlerNotFound), errors.Is(err, queries.ErrHandlerNotFound):
		return http.StatusNotImplemented
	default:
		return http.StatusInternalServerError
	}
}

func writeError(c *gin.Context, err error) {
	status := statusFor(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		msg = http.StatusText(status)
	}
	c.JSON(status, gin.H{"error": msg, "request_id": c.GetString("request_id")})
}

var dateLayouts = []string{time.DateOnly, time.RFC3339}

func parseDate(raw string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, nil
		}
	}
	return time.Time{}, errInvalidDate
}
