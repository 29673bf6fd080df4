package service

import (
	"context"
	"errors"
	"sync"

	roomserrors "roomhub/internal/rooms/errors"
	"roomhub/internal/rooms/repository"
	"roomhub/internal/rooms/validator"
	"roomhub/pkg/config"
	apperrors "roomhub/pkg/errors"
	"roomhub/pkg/model"
	"roomhub/pkg/sanitizer"
)

type RoomService interface {
	Create(ctx context.Context, room *model.MeetingRoom) error
	GetByID(ctx context.Context, id string) (*model.MeetingRoom, error)
	Find(ctx context.Context, query *model.RoomQuery) ([]*model.MeetingRoom, int64, error)
	Update(ctx context.Context, id string, updates *model.MeetingRoomUpdate) error
	Delete(ctx context.Context, id string) error
	InitData(ctx context.Context) error
}

type roomService struct {
	repo      repository.RoomRepository
	validator *validator.RoomValidator
	cfg       *config.Config
}

func NewRoomService(
	repo repository.RoomRepository,
	validator *validator.RoomValidator,
	cfg *config.Config,
) RoomService {
	return &roomService{
		repo:      repo,
		validator: validator,
		cfg:       cfg,
	}
}

func (s *roomService) Create(ctx context.Context, room *model.MeetingRoom) error {
	s.sanitize(room)
	if err := s.validator.Validate(room); err != nil {
		s.cfg.Log.Warn("Meeting room validation failed", "error", err)
		return apperrors.Validation("Meeting room validation failed", map[string]any{"error": err.Error()})
	}

	if err := s.repo.Create(ctx, room); err != nil {
		if errors.Is(err, roomserrors.ErrDuplicateName) {
			return apperrors.Conflict("meeting room name already exists")
		}
		return apperrors.Internal("Failed to create meeting room", err)
	}

	s.cfg.Log.Info("Meeting room created successfully", "id", room.ID, "name", room.Name)
	return nil
}

func (s *roomService) GetByID(ctx context.Context, id string) (*model.MeetingRoom, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Meeting room ID cannot be empty")
	}

	room, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, translateLookupError(err, id)
	}

	return room, nil
}

func (s *roomService) Find(ctx context.Context, query *model.RoomQuery) ([]*model.MeetingRoom, int64, error) {
	if query.PageNo < 1 {
		return nil, 0, apperrors.InvalidInput("pageNo must be at least 1")
	}
	query.PageSize = config.NormalizePageSize(query.PageSize)

	var count int64
	var rooms []*model.MeetingRoom
	var errCount, errFind error
	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		count, errCount = s.repo.Count(ctx, query)
		if errCount != nil {
			s.cfg.Log.Error("Failed to count meeting rooms", "error", errCount)
			errCount = apperrors.Internal("Failed to count meeting rooms", errCount)
		}
	}()

	go func() {
		defer wg.Done()
		rooms, errFind = s.repo.Find(ctx, query)
		if errFind != nil {
			s.cfg.Log.Error("Failed to list meeting rooms", "error", errFind)
			errFind = apperrors.Internal("Failed to retrieve meeting rooms", errFind)
		}
	}()

	wg.Wait()
	if errCount != nil {
		return nil, 0, errCount
	}
	if errFind != nil {
		return nil, 0, errFind
	}

	return rooms, count, nil
}

func (s *roomService) Update(ctx context.Context, id string, updates *model.MeetingRoomUpdate) error {
	if id == "" {
		return apperrors.InvalidInput("Meeting room ID cannot be empty")
	}

	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return translateLookupError(err, id)
	}

	if err := s.validator.ValidateUpdate(updates); err != nil {
		s.cfg.Log.Warn("Meeting room update validation failed", "id", id, "error", err)
		return apperrors.Validation("Invalid update input", map[string]any{"error": err.Error()})
	}

	merged := s.mergeUpdates(existing, updates)
	s.sanitize(merged)
	if err := s.validator.Validate(merged); err != nil {
		return apperrors.Validation("Meeting room validation failed", map[string]any{"error": err.Error()})
	}

	if err := s.repo.Update(ctx, id, merged); err != nil {
		if errors.Is(err, roomserrors.ErrDuplicateName) {
			return apperrors.Conflict("meeting room name already exists")
		}
		if errors.Is(err, roomserrors.ErrNotFound) {
			return apperrors.NotFoundWithID("Meeting room", id)
		}
		return apperrors.Internal("Failed to update meeting room", err)
	}

	s.cfg.Log.Info("Meeting room updated successfully", "id", id)
	return nil
}

func (s *roomService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return apperrors.InvalidInput("Meeting room ID cannot be empty")
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return translateLookupError(err, id)
	}

	s.cfg.Log.Info("Meeting room deleted successfully", "id", id)
	return nil
}

// InitData seeds the three demo rooms. Duplicate names are skipped so the
// seed is safe to run repeatedly.
func (s *roomService) InitData(ctx context.Context) error {
	seed := []*model.MeetingRoom{
		{Name: "Jupiter", Capacity: 10, Location: "west wing, floor 1", Equipment: []string{"whiteboard"}},
		{Name: "Venus", Capacity: 5, Location: "east wing, floor 2"},
		{Name: "Uranus", Capacity: 30, Location: "east wing, floor 3", Equipment: []string{"whiteboard", "tv"}},
	}

	for _, room := range seed {
		if err := s.Create(ctx, room); err != nil {
			if apperrors.HasCode(err, apperrors.CodeConflict) {
				s.cfg.Log.Info("Seed room already exists, skipping", "name", room.Name)
				continue
			}
			return err
		}
	}
	return nil
}

func (s *roomService) sanitize(room *model.MeetingRoom) {
	room.Name = sanitizer.Text(room.Name)
	room.Location = sanitizer.Text(room.Location)
	room.Description = sanitizer.Text(room.Description)
	room.Equipment = sanitizer.TextSlice(room.Equipment)
}

func (s *roomService) mergeUpdates(existing *model.MeetingRoom, updates *model.MeetingRoomUpdate) *model.MeetingRoom {
	merged := *existing

	if updates.Name != "" {
		merged.Name = updates.Name
	}
	if updates.Capacity != nil {
		merged.Capacity = *updates.Capacity
	}
	if updates.Location != "" {
		merged.Location = updates.Location
	}
	if updates.Equipment != nil {
		merged.Equipment = *updates.Equipment
	}
	if updates.Description != nil {
		merged.Description = *updates.Description
	}

	return &merged
}

func translateLookupError(err error, id string) error {
	if errors.Is(err, roomserrors.ErrNotFound) {
		return apperrors.NotFoundWithID("Meeting room", id)
	}
	if errors.Is(err, roomserrors.ErrInvalidID) {
		return apperrors.InvalidInput("Invalid meeting room ID format")
	}
	return apperrors.Internal("Failed to retrieve meeting room", err)
}
