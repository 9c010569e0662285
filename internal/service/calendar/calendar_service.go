package calendar

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/safarpk/safarpk/internal/domain"
	"github.com/safarpk/safarpk/internal/kafka"
	"github.com/safarpk/safarpk/internal/repository"
	"github.com/safarpk/safarpk/internal/search"
)

type CalendarUseCase interface {
	Events(ctx context.Context, actor domain.Actor, filter Filter) ([]Event, error)
	Stats(ctx context.Context, actor domain.Actor, filter Filter) (Stats, error)
	UpdateStatus(ctx context.Context, actor domain.Actor, id string, status domain.BookingStatus) (*domain.Booking, error)
	Report(ctx context.Context, actor domain.Actor, filter Filter) ([]byte, error)
	CompleteEnded(ctx context.Context) ([]domain.Booking, error)
}

type Producer interface {
	Publish(ctx context.Context, topic, key string, value interface{}) error
}

// Filter selects the visible range. From and To are inclusive.
type Filter struct {
	From   time.Time
	To     time.Time
	Search string
	Status domain.BookingStatus
}

type Event struct {
	ID          string               `json:"id"`
	Title       string               `json:"title"`
	Start       time.Time            `json:"start"`
	End         time.Time            `json:"end"`
	Status      domain.BookingStatus `json:"status"`
	StatusLabel string               `json:"status_label"`
	Color       string               `json:"color"`
	TotalPrice  float64              `json:"total_price"`
}

type Stats struct {
	Total     int     `json:"total"`
	Pending   int     `json:"pending"`
	Confirmed int     `json:"confirmed"`
	Cancelled int     `json:"cancelled"`
	Completed int     `json:"completed"`
	Revenue   float64 `json:"revenue"`
}

var statusColors = map[domain.BookingStatus]string{
	domain.BookingStatusPending:   "#f59e0b",
	domain.BookingStatusConfirmed: "#10b981",
	domain.BookingStatusCancelled: "#ef4444",
	domain.BookingStatusRejected:  "#ef4444",
	domain.BookingStatusCompleted: "#3b82f6",
}

const unknownColor = "#6b7280"

// transitions lists the statuses reachable from each status.
var transitions = map[domain.BookingStatus][]domain.BookingStatus{
	domain.BookingStatusPending:   {domain.BookingStatusConfirmed, domain.BookingStatusRejected, domain.BookingStatusCancelled},
	domain.BookingStatusConfirmed: {domain.BookingStatusCompleted, domain.BookingStatusCancelled},
}

type CalendarService struct {
	bookings           repository.BookingRepository
	users              repository.UserRepository
	producer           Producer
	bookingTopic       string
	notificationsTopic string
	now                func() time.Time
}

type CalendarServiceOption func(*CalendarService)

func WithNotificationsTopic(topic string) CalendarServiceOption {
	return func(s *CalendarService) {
		s.notificationsTopic = topic
	}
}

func NewCalendarService(
	bookings repository.BookingRepository,
	users repository.UserRepository,
	producer Producer,
	bookingTopic string,
	opts ...CalendarServiceOption,
) *CalendarService {
	s := &CalendarService{
		bookings:     bookings,
		users:        users,
		producer:     producer,
		bookingTopic: bookingTopic,
		now:          time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *CalendarService) Events(ctx context.Context, actor domain.Actor, filter Filter) ([]Event, error) {
	visible, err := s.visible(ctx, actor, filter)
	if err != nil {
		return nil, err
	}

	events := make([]Event, 0, len(visible))
	for _, b := range visible {
		events = append(events, toEvent(b))
	}
	return events, nil
}

// Stats summarises the visible range. Cancelled counts rejected bookings too;
// revenue sums confirmed and completed bookings.
func (s *CalendarService) Stats(ctx context.Context, actor domain.Actor, filter Filter) (Stats, error) {
	visible, err := s.visible(ctx, actor, filter)
	if err != nil {
		return Stats{}, err
	}
	return summarize(visible), nil
}

func (s *CalendarService) UpdateStatus(ctx context.Context, actor domain.Actor, id string, status domain.BookingStatus) (*domain.Booking, error) {
	if !status.Valid() {
		return nil, domain.NewValidationError("status", fmt.Sprintf("unknown status %q", string(status)))
	}

	current, err := s.bookings.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !canChange(actor, *current, status) {
		return nil, domain.ErrForbidden
	}
	if current.Status == status {
		return current, nil
	}
	if !allowed(current.Status, status) {
		return nil, domain.NewValidationError("status",
			fmt.Sprintf("cannot change a %s booking to %s", current.Status.Label(), status.Label()))
	}

	updated, err := s.bookings.UpdateStatus(ctx, id, status)
	if err != nil {
		return nil, err
	}
	s.announce(ctx, kafka.EventBookingStatusChanged, *updated)
	return updated, nil
}

// CompleteEnded marks confirmed bookings whose stay is over as completed.
func (s *CalendarService) CompleteEnded(ctx context.Context) ([]domain.Booking, error) {
	today := truncateDay(s.now())
	completed, err := s.bookings.CompleteEndedBefore(ctx, today)
	if err != nil {
		return nil, err
	}
	for _, b := range completed {
		s.announce(ctx, kafka.EventBookingCompleted, b)
	}
	return completed, nil
}

func (s *CalendarService) visible(ctx context.Context, actor domain.Actor, filter Filter) ([]domain.BookingDetails, error) {
	from, to := truncateDay(filter.From), endOfDay(filter.To)
	if to.Before(from) {
		return nil, domain.NewValidationError("to", "must not be before from")
	}
	if filter.Status != "" && !filter.Status.Valid() {
		return nil, domain.NewValidationError("status", fmt.Sprintf("unknown status %q", string(filter.Status)))
	}

	all, err := s.bookings.ListDetails(ctx, from, to)
	if err != nil {
		return nil, err
	}
	return search.Filter(all, func(b domain.BookingDetails) bool {
		if !sees(actor, b.Booking) || !b.Overlaps(from, to) {
			return false
		}
		if filter.Status != "" && !statusMatches(filter.Status, b.Status) {
			return false
		}
		return search.Match(filter.Search, b.CustomerName, b.VehicleName, b.ID)
	}), nil
}

func (s *CalendarService) announce(ctx context.Context, eventType string, b domain.Booking) {
	if s.producer == nil {
		return
	}

	event := kafka.BookingEvent{
		Type:       eventType,
		BookingID:  b.ID,
		CustomerID: b.CustomerID,
		Status:     string(b.Status),
		StartDate:  b.StartDate,
		EndDate:    b.EndDate,
		TotalPrice: b.TotalPrice,
	}
	if s.bookingTopic != "" {
		if err := s.producer.Publish(ctx, s.bookingTopic, b.ID, event); err != nil {
			log.Printf("WARNING: failed to publish %s event for booking %s: %v", eventType, b.ID, err)
		}
	}

	if s.notificationsTopic == "" || s.users == nil {
		return
	}
	customer, err := s.users.GetByID(ctx, b.CustomerID)
	if err != nil {
		log.Printf("WARNING: no customer %s for booking %s notification: %v", b.CustomerID, b.ID, err)
		return
	}
	if customer.Email == "" {
		return
	}
	n := kafka.Notification{
		Type:    eventType,
		Email:   customer.Email,
		Subject: fmt.Sprintf("Your booking is %s", b.Status.Label()),
		Body: fmt.Sprintf("Booking %s (%s to %s) is now %s.", shortID(b.ID),
			b.StartDate.Format(dateLayout), b.EndDate.Format(dateLayout), b.Status.Label()),
	}
	if err := s.producer.Publish(ctx, s.notificationsTopic, b.ID, n); err != nil {
		log.Printf("WARNING: failed to publish notification for booking %s: %v", b.ID, err)
	}
}

func toEvent(b domain.BookingDetails) Event {
	return Event{
		ID:          b.ID,
		Title:       title(b),
		Start:       b.StartDate,
		End:         b.EndDate,
		Status:      b.Status,
		StatusLabel: b.Status.Label(),
		Color:       Color(b.Status),
		TotalPrice:  b.TotalPrice,
	}
}

// Color is the calendar colour of a status.
func Color(status domain.BookingStatus) string {
	if c, ok := statusColors[status]; ok {
		return c
	}
	return unknownColor
}

func title(b domain.BookingDetails) string {
	who := b.CustomerName
	if who == "" {
		who = b.CustomerEmail
	}
	if who == "" {
		who = "Booking " + shortID(b.ID)
	}
	if b.VehicleName != "" {
		return who + " - " + b.VehicleName
	}
	return who
}

func summarize(bookings []domain.BookingDetails) Stats {
	var st Stats
	for _, b := range bookings {
		st.Total++
		switch {
		case b.Status == domain.BookingStatusPending:
			st.Pending++
		case b.Status == domain.BookingStatusConfirmed:
			st.Confirmed++
		case b.Status == domain.BookingStatusCompleted:
			st.Completed++
		case b.Status.Cancelled():
			st.Cancelled++
		}
		if b.Status.Earning() {
			st.Revenue += b.TotalPrice
		}
	}
	return st
}

func statusMatches(filter, status domain.BookingStatus) bool {
	if filter == domain.BookingStatusCancelled {
		return status.Cancelled()
	}
	return filter == status
}

func sees(actor domain.Actor, b domain.Booking) bool {
	if actor.IsAdmin() {
		return true
	}
	if actor.UserID == "" {
		return false
	}
	return b.CustomerID == actor.UserID || (b.ProviderID != nil && *b.ProviderID == actor.UserID)
}

// canChange lets admins and the booking's provider move a booking through its
// lifecycle. Customers may only cancel their own bookings.
func canChange(actor domain.Actor, b domain.Booking, status domain.BookingStatus) bool {
	if actor.IsAdmin() {
		return true
	}
	if b.ProviderID != nil && *b.ProviderID == actor.UserID && actor.UserID != "" {
		return true
	}
	return status == domain.BookingStatusCancelled && b.CustomerID == actor.UserID && actor.UserID != ""
}

func allowed(from, to domain.BookingStatus) bool {
	for _, s := range transitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

const dateLayout = "2006-01-02"

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func truncateDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func endOfDay(t time.Time) time.Time {
	return truncateDay(t).Add(24*time.Hour - time.Nanosecond)
}

var _ CalendarUseCase = (*CalendarService)(nil)
