package availability

import (
	"context"
	"errors"
	"strings"
	"time"

	"rentwear/internal/app/dto"
	handlersupport "rentwear/internal/app/handlers/support"
	"rentwear/internal/app/queries"
	"rentwear/internal/app/uow"
	domainavailability "rentwear/internal/domain/availability"
	domaincatalog "rentwear/internal/domain/catalog"
)

const (
	itemCalendarKey = "availability.calendar"
	dayLayout       = "2006-01-02"
	monthLayout     = "2006-01"
)

var (
	ErrItemIDRequired = errors.New("availability: item id is required")
	ErrMonthRequired  = errors.New("availability: month is required")
)

type ItemCalendarQuery struct {
	ItemID string
	Month  time.Time
}

func (q ItemCalendarQuery) Key() string { return itemCalendarKey }

func (q ItemCalendarQuery) Validate() error {
	if strings.TrimSpace(q.ItemID) == "" {
		return ErrItemIDRequired
	}
	if q.Month.IsZero() {
		return ErrMonthRequired
	}
	return nil
}

type ItemCalendarHandler struct {
	UoWFactory uow.UoWFactory
}

func (h *ItemCalendarHandler) Handle(ctx context.Context, q ItemCalendarQuery) (dto.ItemCalendar, error) {
	unit, execCtx, cleanup, err := handlersupport.BeginReadOnlyUnit(ctx, h.UoWFactory)
	if err != nil {
		return dto.ItemCalendar{}, err
	}
	if cleanup != nil {
		defer cleanup()
	}

	itemID := domaincatalog.ItemID(strings.TrimSpace(q.ItemID))
	if _, err := unit.Items().ByID(execCtx, itemID); err != nil {
		return dto.ItemCalendar{}, err
	}
	all, err := unit.Reservations().ListByItem(execCtx, itemID)
	if err != nil {
		return dto.ItemCalendar{}, err
	}
	blocking := domainavailability.Blocking(all)

	var manager domainavailability.Manager
	window := domainavailability.MonthWindow(q.Month)
	free, err := manager.FreeDaysInMonth(q.Month, blocking)
	if err != nil {
		return dto.ItemCalendar{}, err
	}
	occupancy, err := manager.OccupancyRate(blocking, window)
	if err != nil {
		return dto.ItemCalendar{}, err
	}

	calendar := dto.ItemCalendar{
		ItemID:           string(itemID),
		Month:            window.Start.Format(monthLayout),
		FreeDays:         make([]string, 0, window.SpanDays()),
		OccupancyPercent: occupancy,
		Reservations:     make([]dto.CalendarReservation, 0),
	}
	for day := range free {
		calendar.FreeDays = append(calendar.FreeDays, day.Format(dayLayout))
	}
	for _, r := range blocking {
		if !r.Range.Overlaps(window) {
			continue
		}
		calendar.Reservations = append(calendar.Reservations, dto.CalendarReservation{
			ReservationID: string(r.ID),
			Start:         r.Range.Start,
			End:           r.Range.End,
			Status:        string(r.Status),
		})
	}
	return calendar, nil
}

var _ queries.Handler[ItemCalendarQuery, dto.ItemCalendar] = (*ItemCalendarHandler)(nil)
