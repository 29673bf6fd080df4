package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	bookingserrors "roomhub/internal/bookings/errors"
	"roomhub/pkg/cache"
	apperrors "roomhub/pkg/errors"
	"roomhub/pkg/model"
)

const adminEmailCacheKey = "admin_email"

func urgeMarkerKey(bookingID string) string {
	return fmt.Sprintf("urge_%s", bookingID)
}

// Urge sends a reminder email to the administrator asking them to review a
// pending booking, throttled to one reminder per booking per cooldown
// window. The marker is only written after the mail goes out, so a failed
// send does not consume the caller's window.
//
// The check and the write are not atomic: two urges racing inside the same
// window can both pass the marker check and both send mail. The cost is a
// duplicate email, which is not worth a lock here.
func (s *bookingService) Urge(ctx context.Context, id string) (*model.UrgeResult, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Booking ID cannot be empty")
	}

	booking, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, translateBookingLookup(err, id)
	}

	marker := urgeMarkerKey(booking.ID)
	_, err = s.cache.Get(ctx, marker)
	if err == nil {
		return &model.UrgeResult{
			BookingID: booking.ID,
			Throttled: true,
			Message:   "a reminder was already sent recently, please wait before urging again",
		}, nil
	}
	if !errors.Is(err, cache.ErrCacheMiss) {
		return nil, apperrors.Unavailable("cache", err)
	}

	adminEmail, err := s.adminEmail(ctx)
	if err != nil {
		return nil, err
	}

	subject := fmt.Sprintf("Booking reminder: %s awaits review", booking.RoomName)
	body := fmt.Sprintf(
		"Booking %s for room %s (%s) by %s is awaiting review.\nRequested slot: %s - %s\nCurrent status: %s\n",
		booking.ID,
		booking.RoomName,
		booking.RoomLocation,
		booking.RequesterName,
		booking.StartTime.Format(time.RFC3339),
		booking.EndTime.Format(time.RFC3339),
		booking.Status,
	)

	if err := s.mail.Send(ctx, adminEmail, subject, body); err != nil {
		s.cfg.Log.Error("Failed to send urge reminder", "booking_id", booking.ID, "error", err)
		return nil, apperrors.Unavailable("email sender", err)
	}

	if err := s.cache.Set(ctx, marker, time.Now().UTC().Format(time.RFC3339), s.cfg.UrgeCooldown); err != nil {
		// Mail already went out; a lost marker only allows an early repeat.
		s.cfg.Log.Warn("Failed to set urge throttle marker", "booking_id", booking.ID, "error", err)
	}

	s.cfg.Log.Info("Urge reminder sent", "booking_id", booking.ID, "admin_email", adminEmail)
	return &model.UrgeResult{
		BookingID: booking.ID,
		Throttled: false,
		Message:   "reminder sent to the administrator",
	}, nil
}

// adminEmail resolves the administrator's address, cache-aside with no
// expiry. The admin changes rarely enough that a stale entry is flushed by
// hand rather than by TTL.
func (s *bookingService) adminEmail(ctx context.Context) (string, error) {
	email, err := s.cache.Get(ctx, adminEmailCacheKey)
	if err == nil {
		return email, nil
	}
	if !errors.Is(err, cache.ErrCacheMiss) {
		return "", apperrors.Unavailable("cache", err)
	}

	email, err = s.users.FindAdminEmail(ctx)
	if err != nil {
		if errors.Is(err, bookingserrors.ErrNoAdmin) {
			return "", apperrors.Internal("No administrator account is configured", err)
		}
		return "", apperrors.Internal("Failed to resolve administrator email", err)
	}

	if err := s.cache.Set(ctx, adminEmailCacheKey, email, 0); err != nil {
		s.cfg.Log.Warn("Failed to cache administrator email", "error", err)
	}

	return email, nil
}
