package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	bookingserrors "roomhub/internal/bookings/errors"
	"roomhub/internal/bookings/repository"
	"roomhub/internal/bookings/validator"
	roomserrors "roomhub/internal/rooms/errors"
	roomsrepo "roomhub/internal/rooms/repository"
	"roomhub/pkg/cache"
	"roomhub/pkg/config"
	apperrors "roomhub/pkg/errors"
	"roomhub/pkg/mailer"
	"roomhub/pkg/model"
	"roomhub/pkg/sanitizer"

	"go.mongodb.org/mongo-driver/mongo"
)

type BookingService interface {
	// Propose runs the conflict check and creates a pending booking.
	Propose(ctx context.Context, req *model.BookingRequest) (*model.Booking, error)
	GetByID(ctx context.Context, id string) (*model.Booking, error)
	Find(ctx context.Context, query *model.BookingQuery) ([]*model.Booking, int64, error)
	Approve(ctx context.Context, id string, actor model.Actor) error
	Reject(ctx context.Context, id string, actor model.Actor) error
	Unbind(ctx context.Context, id string, actor model.Actor) error
	// Cancel is the requester's self-cancel; only the owner of a pending
	// booking may cancel it.
	Cancel(ctx context.Context, id string, requesterID string) error
	Urge(ctx context.Context, id string) (*model.UrgeResult, error)
}

type bookingService struct {
	repo      repository.BookingRepository
	lockRepo  repository.RoomLockRepository
	users     repository.UserRepository
	rooms     roomsrepo.RoomRepository
	validator *validator.BookingValidator
	cache     cache.Cache
	mail      mailer.Mailer
	events    *EventPublisher
	cfg       *config.Config
}

func NewBookingService(
	repo repository.BookingRepository,
	lockRepo repository.RoomLockRepository,
	users repository.UserRepository,
	rooms roomsrepo.RoomRepository,
	validator *validator.BookingValidator,
	bookingCache cache.Cache,
	mail mailer.Mailer,
	events *EventPublisher,
	cfg *config.Config,
) BookingService {
	return &bookingService{
		repo:      repo,
		lockRepo:  lockRepo,
		users:     users,
		rooms:     rooms,
		validator: validator,
		cache:     bookingCache,
		mail:      mail,
		events:    events,
		cfg:       cfg,
	}
}

func (s *bookingService) Propose(ctx context.Context, req *model.BookingRequest) (*model.Booking, error) {
	req.Note = sanitizer.Text(req.Note)
	if err := s.validator.ValidateRequest(req); err != nil {
		s.cfg.Log.Warn("Booking request validation failed", "error", err)
		return nil, apperrors.Validation("Booking validation failed", map[string]any{"error": err.Error()})
	}

	room, err := s.rooms.FindByID(ctx, req.RoomID)
	if err != nil {
		if errors.Is(err, roomserrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Meeting room", req.RoomID)
		}
		if errors.Is(err, roomserrors.ErrInvalidID) {
			return nil, apperrors.InvalidInput("Invalid meeting room ID format")
		}
		return nil, apperrors.Internal("Failed to look up meeting room", err)
	}

	requester, err := s.users.FindByID(ctx, req.RequesterID)
	if err != nil {
		if errors.Is(err, bookingserrors.ErrUserNotFound) {
			return nil, apperrors.NotFoundWithID("User", req.RequesterID)
		}
		if errors.Is(err, bookingserrors.ErrInvalidID) {
			return nil, apperrors.InvalidInput("Invalid requester ID format")
		}
		return nil, apperrors.Internal("Failed to look up requester", err)
	}

	booking := &model.Booking{
		RoomID:        room.ID,
		RoomName:      room.Name,
		RoomLocation:  room.Location,
		RequesterID:   requester.ID,
		RequesterName: requester.Username,
		StartTime:     req.StartTime,
		EndTime:       req.EndTime,
		Status:        model.StatusPending,
		Note:          req.Note,
	}

	// Acquire the per-room advisory lock so concurrent proposals for this
	// room serialize around the overlap check.
	lockID, err := s.acquireRoomLock(ctx, room.ID)
	if err != nil {
		return nil, err
	}
	defer func() {
		if releaseErr := s.releaseRoomLock(ctx, lockID); releaseErr != nil {
			s.cfg.Log.Warn("Failed to release room lock", "lock_id", lockID, "error", releaseErr)
		}
	}()

	err = s.repo.ExecuteTransaction(ctx, func(sessCtx mongo.SessionContext) error {
		if err := s.verifyAvailability(sessCtx, booking); err != nil {
			return err
		}
		if err := s.repo.Create(sessCtx, booking); err != nil {
			return apperrors.Internal("Failed to create booking", err)
		}
		return nil
	})
	if err != nil {
		s.cfg.Log.Error("Failed to create booking", "error", err)
		return nil, err
	}

	s.events.BookingCreated(ctx, booking)

	s.cfg.Log.Info("Booking created successfully",
		"id", booking.ID,
		"room_id", booking.RoomID,
		"requester_id", booking.RequesterID,
		"start_time", booking.StartTime,
		"end_time", booking.EndTime,
	)
	return booking, nil
}

func (s *bookingService) GetByID(ctx context.Context, id string) (*model.Booking, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Booking ID cannot be empty")
	}

	booking, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, translateBookingLookup(err, id)
	}

	return booking, nil
}

func (s *bookingService) Find(ctx context.Context, query *model.BookingQuery) ([]*model.Booking, int64, error) {
	if query.PageNo < 1 {
		return nil, 0, apperrors.InvalidInput("pageNo must be at least 1")
	}
	query.PageSize = config.NormalizePageSize(query.PageSize)

	var count int64
	var bookings []*model.Booking
	var errCount, errFind error
	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		count, errCount = s.repo.CountSearch(ctx, query)
		if errCount != nil {
			s.cfg.Log.Error("Failed to count bookings", "error", errCount)
			errCount = apperrors.Internal("Failed to count bookings", errCount)
		}
	}()

	go func() {
		defer wg.Done()
		bookings, errFind = s.repo.Search(ctx, query)
		if errFind != nil {
			s.cfg.Log.Error("Failed to search bookings", "error", errFind)
			errFind = apperrors.Internal("Failed to search bookings", errFind)
		}
	}()

	wg.Wait()
	if errCount != nil {
		return nil, 0, errCount
	}
	if errFind != nil {
		return nil, 0, errFind
	}

	return bookings, count, nil
}

func (s *bookingService) Approve(ctx context.Context, id string, actor model.Actor) error {
	return s.adminTransition(ctx, id, actor, model.StatusApproved)
}

func (s *bookingService) Reject(ctx context.Context, id string, actor model.Actor) error {
	return s.adminTransition(ctx, id, actor, model.StatusRejected)
}

// Unbind is the administrative termination of a booking; unlike the
// requester's Cancel it may also take down an approved booking.
func (s *bookingService) Unbind(ctx context.Context, id string, actor model.Actor) error {
	return s.adminTransition(ctx, id, actor, model.StatusCancelled)
}

func (s *bookingService) adminTransition(ctx context.Context, id string, actor model.Actor, to model.BookingStatus) error {
	if id == "" {
		return apperrors.InvalidInput("Booking ID cannot be empty")
	}
	if !actor.IsAdmin() {
		return apperrors.Forbidden("only an administrator may change booking approval state")
	}

	matched, err := s.repo.UpdateStatus(ctx, id, model.TransitionSources(to), to)
	if err != nil {
		if errors.Is(err, bookingserrors.ErrInvalidID) {
			return apperrors.InvalidInput("Invalid booking ID format")
		}
		return apperrors.Internal("Failed to update booking status", err)
	}
	if !matched {
		return s.explainUnmatchedTransition(ctx, id, to)
	}

	s.events.BookingStatusChanged(ctx, id, to, actor.ID)

	s.cfg.Log.Info("Booking status updated",
		"id", id,
		"status", to,
		"actor_id", actor.ID,
	)
	return nil
}

func (s *bookingService) Cancel(ctx context.Context, id string, requesterID string) error {
	if id == "" {
		return apperrors.InvalidInput("Booking ID cannot be empty")
	}
	if requesterID == "" {
		return apperrors.InvalidInput("Requester ID cannot be empty")
	}

	booking, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return translateBookingLookup(err, id)
	}

	// Ownership is checked before status, so a foreign caller learns
	// nothing about the booking's state.
	if booking.RequesterID != requesterID {
		return apperrors.Forbidden("only the requester may cancel their own booking")
	}

	if booking.Status != model.StatusPending {
		return apperrors.Precondition(fmt.Sprintf("only a pending booking can be cancelled by its requester, current status is %s", booking.Status))
	}

	matched, err := s.repo.UpdateStatus(ctx, id, []model.BookingStatus{model.StatusPending}, model.StatusCancelled)
	if err != nil {
		return apperrors.Internal("Failed to cancel booking", err)
	}
	if !matched {
		// Lost a race with another transition between the read and the
		// guarded update; the guard kept the record consistent.
		return s.explainUnmatchedTransition(ctx, id, model.StatusCancelled)
	}

	s.events.BookingStatusChanged(ctx, id, model.StatusCancelled, requesterID)

	s.cfg.Log.Info("Booking cancelled by requester", "id", id, "requester_id", requesterID)
	return nil
}

// explainUnmatchedTransition turns a zero-match guarded update into the
// precise error: the booking is either missing or in a status that does not
// permit the transition.
func (s *bookingService) explainUnmatchedTransition(ctx context.Context, id string, to model.BookingStatus) error {
	booking, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingserrors.ErrNotFound) {
			return apperrors.NotFoundWithID("Booking", id)
		}
		if errors.Is(err, bookingserrors.ErrInvalidID) {
			return apperrors.InvalidInput("Invalid booking ID format")
		}
		return apperrors.Internal("Failed to check booking status", err)
	}
	return apperrors.Precondition(fmt.Sprintf("booking cannot move from %s to %s", booking.Status, to))
}

// verifyAvailability enforces the no-double-booking invariant inside the
// creation transaction: any pending or approved booking intersecting the
// proposed half-open interval blocks it. The earliest-created conflict is
// the one reported; first writer wins for the life of its non-terminal
// status.
func (s *bookingService) verifyAvailability(ctx context.Context, booking *model.Booking) error {
	existing, err := s.repo.FindCommittedOverlapping(ctx, booking.RoomID, booking.StartTime, booking.EndTime)
	if err != nil {
		return apperrors.Internal("Failed to check existing bookings", err)
	}

	if len(existing) > 0 {
		first := existing[0]
		return apperrors.Conflict(fmt.Sprintf(
			"room is already booked for an overlapping interval (%s - %s)",
			first.StartTime.Format(time.RFC3339),
			first.EndTime.Format(time.RFC3339),
		))
	}
	return nil
}

// acquireRoomLock creates the advisory lock covering all intervals of one
// room. Returns the lock ID, or a conflict error when another proposal for
// the room is in flight.
func (s *bookingService) acquireRoomLock(ctx context.Context, roomID string) (string, error) {
	lockID := fmt.Sprintf("room_lock_%s", roomID)

	lock := &model.RoomLock{
		ID:        lockID,
		ExpiresAt: time.Now().Add(s.cfg.RoomLockTTL),
	}

	_, err := s.lockRepo.Create(ctx, lock)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return "", apperrors.Conflict("this room is currently being booked by another request, please try again")
		}
		return "", apperrors.Internal("Failed to acquire room lock", err)
	}

	return lockID, nil
}

func (s *bookingService) releaseRoomLock(ctx context.Context, lockID string) error {
	return s.lockRepo.Delete(ctx, lockID)
}

func translateBookingLookup(err error, id string) error {
	if errors.Is(err, bookingserrors.ErrNotFound) {
		return apperrors.NotFoundWithID("Booking", id)
	}
	if errors.Is(err, bookingserrors.ErrInvalidID) {
		return apperrors.InvalidInput("Invalid booking ID format")
	}
	return apperrors.Internal("Failed to retrieve booking", err)
}
