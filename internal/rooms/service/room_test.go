package service

import (
	"context"
	"testing"
	"time"

	roomserrors "roomhub/internal/rooms/errors"
	"roomhub/internal/rooms/validator"
	"roomhub/pkg/config"
	apperrors "roomhub/pkg/errors"
	"roomhub/pkg/logger"
	"roomhub/pkg/model"
)

type mockRoomRepository struct {
	createFunc   func(ctx context.Context, room *model.MeetingRoom) error
	findByIDFunc func(ctx context.Context, id string) (*model.MeetingRoom, error)
	findFunc     func(ctx context.Context, query *model.RoomQuery) ([]*model.MeetingRoom, error)
	countFunc    func(ctx context.Context, query *model.RoomQuery) (int64, error)
	updateFunc   func(ctx context.Context, id string, room *model.MeetingRoom) error
	deleteFunc   func(ctx context.Context, id string) error
	created      []string
}

func (m *mockRoomRepository) Create(ctx context.Context, room *model.MeetingRoom) error {
	if m.createFunc != nil {
		if err := m.createFunc(ctx, room); err != nil {
			return err
		}
	}
	m.created = append(m.created, room.Name)
	return nil
}

func (m *mockRoomRepository) FindByID(ctx context.Context, id string) (*model.MeetingRoom, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	return nil, roomserrors.ErrNotFound
}

func (m *mockRoomRepository) Find(ctx context.Context, query *model.RoomQuery) ([]*model.MeetingRoom, error) {
	if m.findFunc != nil {
		return m.findFunc(ctx, query)
	}
	return []*model.MeetingRoom{}, nil
}

func (m *mockRoomRepository) Count(ctx context.Context, query *model.RoomQuery) (int64, error) {
	if m.countFunc != nil {
		return m.countFunc(ctx, query)
	}
	return 0, nil
}

func (m *mockRoomRepository) Update(ctx context.Context, id string, room *model.MeetingRoom) error {
	if m.updateFunc != nil {
		return m.updateFunc(ctx, id, room)
	}
	return nil
}

func (m *mockRoomRepository) Delete(ctx context.Context, id string) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, id)
	}
	return nil
}

func newTestService(repo *mockRoomRepository) *roomService {
	cfg := &config.Config{
		Log: logger.New(logger.Config{
			Level:     "error",
			Format:    logger.JSON,
			AddSource: false,
			Service:   "test",
		}),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 5 * time.Second,
	}
	return &roomService{
		repo:      repo,
		validator: validator.NewRoomValidator(cfg.Log),
		cfg:       cfg,
	}
}

func validRoom() *model.MeetingRoom {
	return &model.MeetingRoom{
		Name:     "Jupiter",
		Capacity: 10,
		Location: "west wing, floor 1",
	}
}

func TestCreate_Success(t *testing.T) {
	repo := &mockRoomRepository{}
	svc := newTestService(repo)

	if err := svc.Create(context.Background(), validRoom()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(repo.created) != 1 {
		t.Errorf("expected one room created, got %v", repo.created)
	}
}

func TestCreate_DuplicateNameConflict(t *testing.T) {
	repo := &mockRoomRepository{
		createFunc: func(ctx context.Context, room *model.MeetingRoom) error {
			return roomserrors.ErrDuplicateName
		},
	}
	svc := newTestService(repo)

	err := svc.Create(context.Background(), validRoom())
	if !apperrors.HasCode(err, apperrors.CodeConflict) {
		t.Fatalf("expected conflict error for duplicate name, got %v", err)
	}
}

func TestCreate_SanitizesFields(t *testing.T) {
	var created *model.MeetingRoom
	repo := &mockRoomRepository{
		createFunc: func(ctx context.Context, room *model.MeetingRoom) error {
			created = room
			return nil
		},
	}
	svc := newTestService(repo)

	room := validRoom()
	room.Name = "  Jupiter   Room \t"
	room.Location = " west  wing "

	if err := svc.Create(context.Background(), room); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created.Name != "Jupiter Room" {
		t.Errorf("expected collapsed name, got %q", created.Name)
	}
	if created.Location != "west wing" {
		t.Errorf("expected trimmed location, got %q", created.Location)
	}
}

func TestCreate_Invalid(t *testing.T) {
	svc := newTestService(&mockRoomRepository{})

	tests := []struct {
		name   string
		mutate func(room *model.MeetingRoom)
	}{
		{"missing name", func(room *model.MeetingRoom) { room.Name = "" }},
		{"zero capacity", func(room *model.MeetingRoom) { room.Capacity = 0 }},
		{"negative capacity", func(room *model.MeetingRoom) { room.Capacity = -5 }},
		{"missing location", func(room *model.MeetingRoom) { room.Location = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			room := validRoom()
			tt.mutate(room)

			err := svc.Create(context.Background(), room)
			if !apperrors.HasCode(err, apperrors.CodeValidation) {
				t.Errorf("expected validation error, got %v", err)
			}
		})
	}
}

func TestFind_PageValidation(t *testing.T) {
	svc := newTestService(&mockRoomRepository{})

	for _, pageNo := range []int{0, -3} {
		_, _, err := svc.Find(context.Background(), &model.RoomQuery{PageNo: pageNo})
		if !apperrors.HasCode(err, apperrors.CodeInvalidInput) {
			t.Errorf("pageNo %d: expected invalid input error, got %v", pageNo, err)
		}
	}
}

func TestFind_ReturnsCountAndRooms(t *testing.T) {
	repo := &mockRoomRepository{
		countFunc: func(ctx context.Context, query *model.RoomQuery) (int64, error) {
			return 3, nil
		},
		findFunc: func(ctx context.Context, query *model.RoomQuery) ([]*model.MeetingRoom, error) {
			return []*model.MeetingRoom{
				{Name: "Jupiter"}, {Name: "Venus"}, {Name: "Uranus"},
			}, nil
		},
	}
	svc := newTestService(repo)

	rooms, count, err := svc.Find(context.Background(), &model.RoomQuery{PageNo: 1, PageSize: 10})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if count != 3 || len(rooms) != 3 {
		t.Errorf("expected 3 rooms and count 3, got %d rooms and count %d", len(rooms), count)
	}
}

func TestUpdate_MergesPartialFields(t *testing.T) {
	existing := &model.MeetingRoom{
		ID:        "507f1f77bcf86cd799439011",
		Name:      "Jupiter",
		Capacity:  10,
		Location:  "west wing, floor 1",
		Equipment: []string{"whiteboard"},
	}

	var updated *model.MeetingRoom
	repo := &mockRoomRepository{
		findByIDFunc: func(ctx context.Context, id string) (*model.MeetingRoom, error) {
			return existing, nil
		},
		updateFunc: func(ctx context.Context, id string, room *model.MeetingRoom) error {
			updated = room
			return nil
		},
	}
	svc := newTestService(repo)

	capacity := 12
	err := svc.Update(context.Background(), existing.ID, &model.MeetingRoomUpdate{Capacity: &capacity})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if updated.Capacity != 12 {
		t.Errorf("expected capacity 12, got %d", updated.Capacity)
	}
	if updated.Name != "Jupiter" || updated.Location != "west wing, floor 1" {
		t.Errorf("expected untouched fields preserved, got %+v", updated)
	}
}

func TestUpdate_NotFound(t *testing.T) {
	svc := newTestService(&mockRoomRepository{})

	err := svc.Update(context.Background(), "507f1f77bcf86cd799439011", &model.MeetingRoomUpdate{})
	if !apperrors.HasCode(err, apperrors.CodeNotFound) {
		t.Fatalf("expected not found error, got %v", err)
	}
}

func TestDelete_NotFound(t *testing.T) {
	repo := &mockRoomRepository{
		deleteFunc: func(ctx context.Context, id string) error {
			return roomserrors.ErrNotFound
		},
	}
	svc := newTestService(repo)

	err := svc.Delete(context.Background(), "507f1f77bcf86cd799439011")
	if !apperrors.HasCode(err, apperrors.CodeNotFound) {
		t.Fatalf("expected not found error, got %v", err)
	}
}

func TestInitData_SkipsExistingRooms(t *testing.T) {
	repo := &mockRoomRepository{
		createFunc: func(ctx context.Context, room *model.MeetingRoom) error {
			if room.Name == "Jupiter" {
				return roomserrors.ErrDuplicateName
			}
			return nil
		},
	}
	svc := newTestService(repo)

	if err := svc.InitData(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(repo.created) != 2 {
		t.Errorf("expected Venus and Uranus created, got %v", repo.created)
	}
}
