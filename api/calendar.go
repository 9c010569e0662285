package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/safarpk/safarpk/internal/domain"
	"github.com/safarpk/safarpk/internal/service/calendar"
)

const dateLayout = "2006-01-02"

type CalendarHandler struct {
	service calendar.CalendarUseCase
	now     func() time.Time
}

type statusRequest struct {
	Status domain.BookingStatus `json:"status" binding:"required"`
}

type eventsResponse struct {
	Events []calendar.Event `json:"events"`
	Stats  calendar.Stats   `json:"stats"`
}

// statusResponse is the changed booking plus the calendar re-read with the
// filter from the query string.
type statusResponse struct {
	Booking *domain.Booking `json:"booking"`
	eventsResponse
}

func NewCalendarHandler(service calendar.CalendarUseCase) *CalendarHandler {
	return &CalendarHandler{service: service, now: time.Now}
}

func (h *CalendarHandler) Register(router *gin.RouterGroup) {
	router.GET("/events", h.events)
	router.GET("/stats", h.stats)
	router.GET("/report", h.report)
	router.PATCH("/bookings/:id/status", h.updateStatus)
}

// events returns the visible bookings together with their stats cards.
func (h *CalendarHandler) events(c *gin.Context) {
	filter, err := h.filter(c)
	if err != nil {
		respondBadRequest(c, err)
		return
	}

	resp, err := h.load(c, filter)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *CalendarHandler) load(c *gin.Context, filter calendar.Filter) (eventsResponse, error) {
	events, err := h.service.Events(c.Request.Context(), actorFrom(c), filter)
	if err != nil {
		return eventsResponse{}, err
	}
	st, err := h.service.Stats(c.Request.Context(), actorFrom(c), filter)
	if err != nil {
		return eventsResponse{}, err
	}
	return eventsResponse{Events: events, Stats: st}, nil
}

func (h *CalendarHandler) stats(c *gin.Context) {
	filter, err := h.filter(c)
	if err != nil {
		respondBadRequest(c, err)
		return
	}

	st, err := h.service.Stats(c.Request.Context(), actorFrom(c), filter)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, st)
}

func (h *CalendarHandler) report(c *gin.Context) {
	filter, err := h.filter(c)
	if err != nil {
		respondBadRequest(c, err)
		return
	}

	pdf, err := h.service.Report(c.Request.Context(), actorFrom(c), filter)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	name := fmt.Sprintf("bookings_%s_%s.pdf", filter.From.Format(dateLayout), filter.To.Format(dateLayout))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	c.Data(http.StatusOK, "application/pdf", pdf)
}

func (h *CalendarHandler) updateStatus(c *gin.Context) {
	var req statusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}
	filter, err := h.filter(c)
	if err != nil {
		respondBadRequest(c, err)
		return
	}

	booking, err := h.service.UpdateStatus(c.Request.Context(), actorFrom(c), c.Param("id"), req.Status)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	resp, err := h.load(c, filter)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, statusResponse{Booking: booking, eventsResponse: resp})
}

// filter reads from/to (defaulting to the current month), search and status.
func (h *CalendarHandler) filter(c *gin.Context) (calendar.Filter, error) {
	from, to, err := dateRangeAt(c, h.now())
	if err != nil {
		return calendar.Filter{}, err
	}
	return calendar.Filter{
		From:   from,
		To:     to,
		Search: c.Query("search"),
		Status: domain.BookingStatus(c.Query("status")),
	}, nil
}

func dateRange(c *gin.Context) (time.Time, time.Time, error) {
	return dateRangeAt(c, time.Now())
}

func dateRangeAt(c *gin.Context, now time.Time) (time.Time, time.Time, error) {
	from := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, -1)

	if v := c.Query("from"); v != "" {
		t, err := time.Parse(dateLayout, v)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("from: expected YYYY-MM-DD")
		}
		from = t
	}
	if v := c.Query("to"); v != "" {
		t, err := time.Parse(dateLayout, v)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("to: expected YYYY-MM-DD")
		}
		to = t
	}
	return from, to, nil
}
