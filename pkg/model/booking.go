package model

import (
	"time"
)

type BookingStatus string

const (
	StatusPending   BookingStatus = "pending"
	StatusApproved  BookingStatus = "approved"
	StatusRejected  BookingStatus = "rejected"
	StatusCancelled BookingStatus = "cancelled"
)

// transitions is the legal state-transition table. Rejected and cancelled are
// terminal. Repeating a transition into the current state is not legal either;
// illegal transitions surface as precondition failures so client bugs show up
// early instead of being absorbed as no-ops.
var transitions = map[BookingStatus][]BookingStatus{
	StatusPending:   {StatusApproved, StatusRejected, StatusCancelled},
	StatusApproved:  {StatusCancelled},
	StatusRejected:  {},
	StatusCancelled: {},
}

func (s BookingStatus) Valid() bool {
	_, ok := transitions[s]
	return ok
}

// Terminal reports whether a booking in this status no longer consumes
// room availability.
func (s BookingStatus) Terminal() bool {
	return s == StatusRejected || s == StatusCancelled
}

func (s BookingStatus) CanTransitionTo(next BookingStatus) bool {
	for _, allowed := range transitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// TransitionSources returns every status from which next is reachable.
// Used to build atomic "update where status in (...)" filters.
func TransitionSources(next BookingStatus) []BookingStatus {
	var sources []BookingStatus
	for from, targets := range transitions {
		for _, to := range targets {
			if to == next {
				sources = append(sources, from)
			}
		}
	}
	return sources
}

// Booking is one reservation request against a meeting room. Room name,
// room location and requester name are denormalized onto the document so
// substring filters work without joins; requester credentials never appear
// here.
type Booking struct {
	ID            string        `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	RoomID        string        `json:"room_id" bson:"room_id" validate:"required,mongodb"`
	RoomName      string        `json:"room_name" bson:"room_name"`
	RoomLocation  string        `json:"room_location" bson:"room_location"`
	RequesterID   string        `json:"requester_id" bson:"requester_id" validate:"required,mongodb"`
	RequesterName string        `json:"requester_name" bson:"requester_name"`
	StartTime     time.Time     `json:"start_time" bson:"start_time" validate:"required"`
	EndTime       time.Time     `json:"end_time" bson:"end_time" validate:"required,gtfield=StartTime"`
	Status        BookingStatus `json:"status" bson:"status" validate:"required,oneof=pending approved rejected cancelled"`
	Note          string        `json:"note,omitempty" bson:"note,omitempty" validate:"omitempty,max=500"`
	CreatedAt     time.Time     `json:"created_at" bson:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at" bson:"updated_at"`
}

// Overlaps reports whether the booking's half-open interval [start, end)
// intersects the given one.
func (b *Booking) Overlaps(start, end time.Time) bool {
	return b.StartTime.Before(end) && b.EndTime.After(start)
}

// BookingRequest is the creation payload accepted by the scheduler. The
// requester id comes from the identity headers, never from the body.
type BookingRequest struct {
	RoomID      string    `json:"room_id" validate:"required,mongodb"`
	RequesterID string    `json:"-" validate:"required,mongodb"`
	StartTime   time.Time `json:"start_time" validate:"required"`
	EndTime     time.Time `json:"end_time" validate:"required"`
	Note        string    `json:"note,omitempty" validate:"omitempty,max=500"`
}

// BookingQuery carries the paged filter arguments for Find. PageNo is
// 1-indexed. If StartAt is set and EndAt is not, the window defaults to
// one hour after StartAt; the window is matched inclusive-exclusive
// against Booking.StartTime.
type BookingQuery struct {
	PageNo       int
	PageSize     int
	Username     string
	RoomName     string
	RoomLocation string
	StartAt      *time.Time
	EndAt        *time.Time
}

// DefaultTimeWindow is applied when a time-range filter has a start but no end.
const DefaultTimeWindow = time.Hour

// Actor identifies the authenticated caller of a transition. The identity
// layer in front of this service has already verified it; the core only
// checks the role on administrative transitions.
type Actor struct {
	ID   string
	Role string
}

const RoleAdmin = "admin"

func (a Actor) IsAdmin() bool {
	return a.Role == RoleAdmin
}

// UrgeResult is the outcome of an urge call. Throttled is a normal outcome,
// not an error: a reminder already went out within the cooling window.
type UrgeResult struct {
	BookingID string `json:"booking_id"`
	Throttled bool   `json:"throttled"`
	Message   string `json:"message"`
}
