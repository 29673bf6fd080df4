package service

import (
	"context"
	"testing"
	"time"

	bookingserrors "roomhub/internal/bookings/errors"
	"roomhub/internal/bookings/validator"
	roomserrors "roomhub/internal/rooms/errors"
	"roomhub/pkg/cache"
	"roomhub/pkg/config"
	mongotx "roomhub/pkg/db/mongo"
	apperrors "roomhub/pkg/errors"
	"roomhub/pkg/logger"
	"roomhub/pkg/model"

	"go.mongodb.org/mongo-driver/mongo"
)

const (
	testRoomID    = "507f1f77bcf86cd799439011"
	testUserID    = "507f191e810c19729de860ea"
	testAdminID   = "507f191e810c19729de860eb"
	testBookingID = "64f1b2a3c4d5e6f708192a3b"
)

// Mock repositories for testing

type mockBookingRepository struct {
	createFunc       func(ctx context.Context, booking *model.Booking) error
	findByIDFunc     func(ctx context.Context, id string) (*model.Booking, error)
	findOverlapFunc  func(ctx context.Context, roomID string, start, end time.Time) ([]*model.Booking, error)
	updateStatusFunc func(ctx context.Context, id string, from []model.BookingStatus, to model.BookingStatus) (bool, error)
	searchFunc       func(ctx context.Context, query *model.BookingQuery) ([]*model.Booking, error)
	countSearchFunc  func(ctx context.Context, query *model.BookingQuery) (int64, error)
}

func (m *mockBookingRepository) Create(ctx context.Context, booking *model.Booking) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, booking)
	}
	booking.ID = testBookingID
	return nil
}

func (m *mockBookingRepository) FindByID(ctx context.Context, id string) (*model.Booking, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	return nil, bookingserrors.ErrNotFound
}

func (m *mockBookingRepository) FindCommittedOverlapping(ctx context.Context, roomID string, start, end time.Time) ([]*model.Booking, error) {
	if m.findOverlapFunc != nil {
		return m.findOverlapFunc(ctx, roomID, start, end)
	}
	return nil, nil
}

func (m *mockBookingRepository) UpdateStatus(ctx context.Context, id string, from []model.BookingStatus, to model.BookingStatus) (bool, error) {
	if m.updateStatusFunc != nil {
		return m.updateStatusFunc(ctx, id, from, to)
	}
	return true, nil
}

func (m *mockBookingRepository) Search(ctx context.Context, query *model.BookingQuery) ([]*model.Booking, error) {
	if m.searchFunc != nil {
		return m.searchFunc(ctx, query)
	}
	return []*model.Booking{}, nil
}

func (m *mockBookingRepository) CountSearch(ctx context.Context, query *model.BookingQuery) (int64, error) {
	if m.countSearchFunc != nil {
		return m.countSearchFunc(ctx, query)
	}
	return 0, nil
}

func (m *mockBookingRepository) ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error {
	return fn(nil)
}

type mockRoomLockRepository struct {
	createFunc func(ctx context.Context, lock *model.RoomLock) (*model.RoomLock, error)
	deleteFunc func(ctx context.Context, lockID string) error
	deleted    []string
}

func (m *mockRoomLockRepository) Create(ctx context.Context, lock *model.RoomLock) (*model.RoomLock, error) {
	if m.createFunc != nil {
		return m.createFunc(ctx, lock)
	}
	return lock, nil
}

func (m *mockRoomLockRepository) Delete(ctx context.Context, lockID string) error {
	m.deleted = append(m.deleted, lockID)
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, lockID)
	}
	return nil
}

type mockUserRepository struct {
	findByIDFunc       func(ctx context.Context, id string) (*model.User, error)
	findAdminEmailFunc func(ctx context.Context) (string, error)
	adminLookups       int
}

func (m *mockUserRepository) FindByID(ctx context.Context, id string) (*model.User, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	return &model.User{ID: id, Username: "alice", Email: "alice@example.com"}, nil
}

func (m *mockUserRepository) FindAdminEmail(ctx context.Context) (string, error) {
	m.adminLookups++
	if m.findAdminEmailFunc != nil {
		return m.findAdminEmailFunc(ctx)
	}
	return "admin@example.com", nil
}

type mockRoomRepository struct {
	findByIDFunc func(ctx context.Context, id string) (*model.MeetingRoom, error)
}

func (m *mockRoomRepository) Create(ctx context.Context, room *model.MeetingRoom) error {
	return nil
}

func (m *mockRoomRepository) FindByID(ctx context.Context, id string) (*model.MeetingRoom, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	return &model.MeetingRoom{
		ID:       id,
		Name:     "Jupiter",
		Capacity: 10,
		Location: "west wing, floor 1",
	}, nil
}

func (m *mockRoomRepository) Find(ctx context.Context, query *model.RoomQuery) ([]*model.MeetingRoom, error) {
	return []*model.MeetingRoom{}, nil
}

func (m *mockRoomRepository) Count(ctx context.Context, query *model.RoomQuery) (int64, error) {
	return 0, nil
}

func (m *mockRoomRepository) Update(ctx context.Context, id string, room *model.MeetingRoom) error {
	return nil
}

func (m *mockRoomRepository) Delete(ctx context.Context, id string) error {
	return nil
}

type mockCache struct {
	data     map[string]string
	getErr   error
	setErr   error
	setCalls map[string]time.Duration
}

func newMockCache() *mockCache {
	return &mockCache{
		data:     make(map[string]string),
		setCalls: make(map[string]time.Duration),
	}
}

func (m *mockCache) Get(ctx context.Context, key string) (string, error) {
	if m.getErr != nil {
		return "", m.getErr
	}
	value, ok := m.data[key]
	if !ok {
		return "", cache.ErrCacheMiss
	}
	return value, nil
}

func (m *mockCache) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	if m.setErr != nil {
		return m.setErr
	}
	m.data[key] = value
	m.setCalls[key] = ttl
	return nil
}

type mockMailer struct {
	sendFunc func(ctx context.Context, to, subject, body string) error
	sent     []string
}

func (m *mockMailer) Send(ctx context.Context, to, subject, body string) error {
	if m.sendFunc != nil {
		if err := m.sendFunc(ctx, to, subject, body); err != nil {
			return err
		}
	}
	m.sent = append(m.sent, to)
	return nil
}

func newTestConfig() *config.Config {
	return &config.Config{
		Log: logger.New(logger.Config{
			Level:     "error",
			Format:    logger.JSON,
			AddSource: false,
			Service:   "test",
		}),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 5 * time.Second,
		UrgeCooldown: 30 * time.Minute,
		RoomLockTTL:  10 * time.Second,
	}
}

func newTestService(
	repo *mockBookingRepository,
	lockRepo *mockRoomLockRepository,
	users *mockUserRepository,
	rooms *mockRoomRepository,
	bookingCache *mockCache,
	mail *mockMailer,
) *bookingService {
	cfg := newTestConfig()
	return &bookingService{
		repo:      repo,
		lockRepo:  lockRepo,
		users:     users,
		rooms:     rooms,
		validator: validator.NewBookingValidator(cfg.Log),
		cache:     bookingCache,
		mail:      mail,
		events:    NewEventPublisher(nil, cfg.Log),
		cfg:       cfg,
	}
}

func validRequest(start, end time.Time) *model.BookingRequest {
	return &model.BookingRequest{
		RoomID:      testRoomID,
		RequesterID: testUserID,
		StartTime:   start,
		EndTime:     end,
	}
}

func duplicateKeyError() error {
	return mongo.WriteException{
		WriteErrors: mongo.WriteErrors{
			{Code: 11000, Message: "E11000 duplicate key error"},
		},
	}
}

func TestPropose_Success(t *testing.T) {
	repo := &mockBookingRepository{}
	lockRepo := &mockRoomLockRepository{}
	svc := newTestService(repo, lockRepo, &mockUserRepository{}, &mockRoomRepository{}, newMockCache(), &mockMailer{})

	start := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)
	booking, err := svc.Propose(context.Background(), validRequest(start, start.Add(time.Hour)))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if booking.Status != model.StatusPending {
		t.Errorf("expected status pending, got %s", booking.Status)
	}
	if booking.RoomName != "Jupiter" {
		t.Errorf("expected denormalized room name Jupiter, got %q", booking.RoomName)
	}
	if booking.RequesterName != "alice" {
		t.Errorf("expected denormalized requester name alice, got %q", booking.RequesterName)
	}
	if len(lockRepo.deleted) != 1 || lockRepo.deleted[0] != "room_lock_"+testRoomID {
		t.Errorf("expected room lock to be released, got %v", lockRepo.deleted)
	}
}

func TestPropose_RejectsOverlap(t *testing.T) {
	start := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)
	existing := &model.Booking{
		ID:        "64f1b2a3c4d5e6f708192a01",
		RoomID:    testRoomID,
		StartTime: start,
		EndTime:   start.Add(time.Hour),
		Status:    model.StatusPending,
	}

	repo := &mockBookingRepository{
		findOverlapFunc: func(ctx context.Context, roomID string, qStart, qEnd time.Time) ([]*model.Booking, error) {
			if existing.Overlaps(qStart, qEnd) {
				return []*model.Booking{existing}, nil
			}
			return nil, nil
		},
	}
	lockRepo := &mockRoomLockRepository{}
	svc := newTestService(repo, lockRepo, &mockUserRepository{}, &mockRoomRepository{}, newMockCache(), &mockMailer{})

	// 10:30-11:30 intersects the existing 10:00-11:00 slot
	_, err := svc.Propose(context.Background(), validRequest(start.Add(30*time.Minute), start.Add(90*time.Minute)))
	if !apperrors.HasCode(err, apperrors.CodeConflict) {
		t.Fatalf("expected conflict error, got %v", err)
	}

	if len(lockRepo.deleted) != 1 {
		t.Errorf("expected room lock released even on conflict, got %v", lockRepo.deleted)
	}
}

func TestPropose_AcceptsBackToBackIntervals(t *testing.T) {
	start := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)
	existing := &model.Booking{
		ID:        "64f1b2a3c4d5e6f708192a01",
		RoomID:    testRoomID,
		StartTime: start,
		EndTime:   start.Add(time.Hour),
		Status:    model.StatusApproved,
	}

	repo := &mockBookingRepository{
		findOverlapFunc: func(ctx context.Context, roomID string, qStart, qEnd time.Time) ([]*model.Booking, error) {
			if existing.Overlaps(qStart, qEnd) {
				return []*model.Booking{existing}, nil
			}
			return nil, nil
		},
	}
	svc := newTestService(repo, &mockRoomLockRepository{}, &mockUserRepository{}, &mockRoomRepository{}, newMockCache(), &mockMailer{})

	// Intervals are half-open: a booking starting exactly at the previous
	// end is not a collision.
	booking, err := svc.Propose(context.Background(), validRequest(start.Add(time.Hour), start.Add(2*time.Hour)))
	if err != nil {
		t.Fatalf("unexpected error for back-to-back booking: %v", err)
	}
	if booking.Status != model.StatusPending {
		t.Errorf("expected status pending, got %s", booking.Status)
	}
}

func TestPropose_IgnoresTerminalBookings(t *testing.T) {
	start := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)
	// A rejected booking occupies the same slot; the repository filter
	// excludes terminal statuses, so the mock returns nothing.
	repo := &mockBookingRepository{}
	svc := newTestService(repo, &mockRoomLockRepository{}, &mockUserRepository{}, &mockRoomRepository{}, newMockCache(), &mockMailer{})

	_, err := svc.Propose(context.Background(), validRequest(start, start.Add(time.Hour)))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestPropose_RoomLockContention(t *testing.T) {
	lockRepo := &mockRoomLockRepository{
		createFunc: func(ctx context.Context, lock *model.RoomLock) (*model.RoomLock, error) {
			return nil, duplicateKeyError()
		},
	}
	svc := newTestService(&mockBookingRepository{}, lockRepo, &mockUserRepository{}, &mockRoomRepository{}, newMockCache(), &mockMailer{})

	start := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)
	_, err := svc.Propose(context.Background(), validRequest(start, start.Add(time.Hour)))
	if !apperrors.HasCode(err, apperrors.CodeConflict) {
		t.Fatalf("expected conflict when room lock is held, got %v", err)
	}
}

func TestPropose_InvalidInterval(t *testing.T) {
	svc := newTestService(&mockBookingRepository{}, &mockRoomLockRepository{}, &mockUserRepository{}, &mockRoomRepository{}, newMockCache(), &mockMailer{})

	start := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		req  *model.BookingRequest
	}{
		{"end before start", validRequest(start, start.Add(-time.Hour))},
		{"zero-length interval", validRequest(start, start)},
		{"missing room", &model.BookingRequest{RequesterID: testUserID, StartTime: start, EndTime: start.Add(time.Hour)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Propose(context.Background(), tt.req)
			if !apperrors.HasCode(err, apperrors.CodeValidation) {
				t.Errorf("expected validation error, got %v", err)
			}
		})
	}
}

func TestPropose_RoomNotFound(t *testing.T) {
	rooms := &mockRoomRepository{
		findByIDFunc: func(ctx context.Context, id string) (*model.MeetingRoom, error) {
			return nil, roomserrors.ErrNotFound
		},
	}
	svc := newTestService(&mockBookingRepository{}, &mockRoomLockRepository{}, &mockUserRepository{}, rooms, newMockCache(), &mockMailer{})

	start := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)
	_, err := svc.Propose(context.Background(), validRequest(start, start.Add(time.Hour)))
	if !apperrors.HasCode(err, apperrors.CodeNotFound) {
		t.Fatalf("expected not found error, got %v", err)
	}
}

func TestAdminTransitions(t *testing.T) {
	admin := model.Actor{ID: testAdminID, Role: model.RoleAdmin}

	tests := []struct {
		name          string
		op            func(svc *bookingService, ctx context.Context) error
		wantTarget    model.BookingStatus
		wantFromCount int
	}{
		{
			name: "approve from pending only",
			op: func(svc *bookingService, ctx context.Context) error {
				return svc.Approve(ctx, testBookingID, admin)
			},
			wantTarget:    model.StatusApproved,
			wantFromCount: 1,
		},
		{
			name: "reject from pending only",
			op: func(svc *bookingService, ctx context.Context) error {
				return svc.Reject(ctx, testBookingID, admin)
			},
			wantTarget:    model.StatusRejected,
			wantFromCount: 1,
		},
		{
			name: "unbind from pending or approved",
			op: func(svc *bookingService, ctx context.Context) error {
				return svc.Unbind(ctx, testBookingID, admin)
			},
			wantTarget:    model.StatusCancelled,
			wantFromCount: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotFrom []model.BookingStatus
			var gotTo model.BookingStatus
			repo := &mockBookingRepository{
				updateStatusFunc: func(ctx context.Context, id string, from []model.BookingStatus, to model.BookingStatus) (bool, error) {
					gotFrom = from
					gotTo = to
					return true, nil
				},
			}
			svc := newTestService(repo, &mockRoomLockRepository{}, &mockUserRepository{}, &mockRoomRepository{}, newMockCache(), &mockMailer{})

			if err := tt.op(svc, context.Background()); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if gotTo != tt.wantTarget {
				t.Errorf("expected target status %s, got %s", tt.wantTarget, gotTo)
			}
			if len(gotFrom) != tt.wantFromCount {
				t.Errorf("expected %d source statuses, got %v", tt.wantFromCount, gotFrom)
			}
		})
	}
}

func TestAdminTransitions_RequireAdminRole(t *testing.T) {
	svc := newTestService(&mockBookingRepository{}, &mockRoomLockRepository{}, &mockUserRepository{}, &mockRoomRepository{}, newMockCache(), &mockMailer{})
	member := model.Actor{ID: testUserID, Role: "member"}

	ops := map[string]func() error{
		"approve": func() error { return svc.Approve(context.Background(), testBookingID, member) },
		"reject":  func() error { return svc.Reject(context.Background(), testBookingID, member) },
		"unbind":  func() error { return svc.Unbind(context.Background(), testBookingID, member) },
	}

	for name, op := range ops {
		t.Run(name, func(t *testing.T) {
			if err := op(); !apperrors.HasCode(err, apperrors.CodeForbidden) {
				t.Errorf("expected forbidden error, got %v", err)
			}
		})
	}
}

func TestAdminTransition_RepeatAndTerminal(t *testing.T) {
	admin := model.Actor{ID: testAdminID, Role: model.RoleAdmin}

	tests := []struct {
		name    string
		current model.BookingStatus
		op      func(svc *bookingService) error
	}{
		{
			name:    "approve an already approved booking",
			current: model.StatusApproved,
			op: func(svc *bookingService) error {
				return svc.Approve(context.Background(), testBookingID, admin)
			},
		},
		{
			name:    "reject a rejected booking",
			current: model.StatusRejected,
			op: func(svc *bookingService) error {
				return svc.Reject(context.Background(), testBookingID, admin)
			},
		},
		{
			name:    "approve a cancelled booking",
			current: model.StatusCancelled,
			op: func(svc *bookingService) error {
				return svc.Approve(context.Background(), testBookingID, admin)
			},
		},
		{
			name:    "unbind a rejected booking",
			current: model.StatusRejected,
			op: func(svc *bookingService) error {
				return svc.Unbind(context.Background(), testBookingID, admin)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &mockBookingRepository{
				updateStatusFunc: func(ctx context.Context, id string, from []model.BookingStatus, to model.BookingStatus) (bool, error) {
					return false, nil
				},
				findByIDFunc: func(ctx context.Context, id string) (*model.Booking, error) {
					return &model.Booking{ID: id, Status: tt.current}, nil
				},
			}
			svc := newTestService(repo, &mockRoomLockRepository{}, &mockUserRepository{}, &mockRoomRepository{}, newMockCache(), &mockMailer{})

			if err := tt.op(svc); !apperrors.HasCode(err, apperrors.CodePrecondition) {
				t.Errorf("expected precondition error, got %v", err)
			}
		})
	}
}

func TestAdminTransition_NotFound(t *testing.T) {
	repo := &mockBookingRepository{
		updateStatusFunc: func(ctx context.Context, id string, from []model.BookingStatus, to model.BookingStatus) (bool, error) {
			return false, nil
		},
	}
	svc := newTestService(repo, &mockRoomLockRepository{}, &mockUserRepository{}, &mockRoomRepository{}, newMockCache(), &mockMailer{})

	err := svc.Approve(context.Background(), testBookingID, model.Actor{ID: testAdminID, Role: model.RoleAdmin})
	if !apperrors.HasCode(err, apperrors.CodeNotFound) {
		t.Fatalf("expected not found error, got %v", err)
	}
}

func TestCancel_OwnerCancelsPending(t *testing.T) {
	repo := &mockBookingRepository{
		findByIDFunc: func(ctx context.Context, id string) (*model.Booking, error) {
			return &model.Booking{ID: id, RequesterID: testUserID, Status: model.StatusPending}, nil
		},
	}
	svc := newTestService(repo, &mockRoomLockRepository{}, &mockUserRepository{}, &mockRoomRepository{}, newMockCache(), &mockMailer{})

	if err := svc.Cancel(context.Background(), testBookingID, testUserID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestCancel_ForeignRequesterForbidden(t *testing.T) {
	// Ownership beats status: a foreign caller gets forbidden even for a
	// booking no longer pending.
	for _, status := range []model.BookingStatus{model.StatusPending, model.StatusApproved, model.StatusRejected} {
		t.Run(string(status), func(t *testing.T) {
			repo := &mockBookingRepository{
				findByIDFunc: func(ctx context.Context, id string) (*model.Booking, error) {
					return &model.Booking{ID: id, RequesterID: testUserID, Status: status}, nil
				},
			}
			svc := newTestService(repo, &mockRoomLockRepository{}, &mockUserRepository{}, &mockRoomRepository{}, newMockCache(), &mockMailer{})

			err := svc.Cancel(context.Background(), testBookingID, testAdminID)
			if !apperrors.HasCode(err, apperrors.CodeForbidden) {
				t.Errorf("expected forbidden error, got %v", err)
			}
		})
	}
}

func TestCancel_NonPendingPrecondition(t *testing.T) {
	for _, status := range []model.BookingStatus{model.StatusApproved, model.StatusRejected, model.StatusCancelled} {
		t.Run(string(status), func(t *testing.T) {
			repo := &mockBookingRepository{
				findByIDFunc: func(ctx context.Context, id string) (*model.Booking, error) {
					return &model.Booking{ID: id, RequesterID: testUserID, Status: status}, nil
				},
			}
			svc := newTestService(repo, &mockRoomLockRepository{}, &mockUserRepository{}, &mockRoomRepository{}, newMockCache(), &mockMailer{})

			err := svc.Cancel(context.Background(), testBookingID, testUserID)
			if !apperrors.HasCode(err, apperrors.CodePrecondition) {
				t.Errorf("expected precondition error, got %v", err)
			}
		})
	}
}

func TestCancel_NotFound(t *testing.T) {
	svc := newTestService(&mockBookingRepository{}, &mockRoomLockRepository{}, &mockUserRepository{}, &mockRoomRepository{}, newMockCache(), &mockMailer{})

	err := svc.Cancel(context.Background(), testBookingID, testUserID)
	if !apperrors.HasCode(err, apperrors.CodeNotFound) {
		t.Fatalf("expected not found error, got %v", err)
	}
}

func TestFind_PageValidation(t *testing.T) {
	svc := newTestService(&mockBookingRepository{}, &mockRoomLockRepository{}, &mockUserRepository{}, &mockRoomRepository{}, newMockCache(), &mockMailer{})

	for _, pageNo := range []int{0, -1} {
		_, _, err := svc.Find(context.Background(), &model.BookingQuery{PageNo: pageNo})
		if !apperrors.HasCode(err, apperrors.CodeInvalidInput) {
			t.Errorf("pageNo %d: expected invalid input error, got %v", pageNo, err)
		}
	}
}

func TestFind_ConcurrentCountAndSearch(t *testing.T) {
	repo := &mockBookingRepository{
		countSearchFunc: func(ctx context.Context, query *model.BookingQuery) (int64, error) {
			time.Sleep(10 * time.Millisecond)
			return 42, nil
		},
		searchFunc: func(ctx context.Context, query *model.BookingQuery) ([]*model.Booking, error) {
			time.Sleep(10 * time.Millisecond)
			return []*model.Booking{{ID: testBookingID}}, nil
		},
	}
	svc := newTestService(repo, &mockRoomLockRepository{}, &mockUserRepository{}, &mockRoomRepository{}, newMockCache(), &mockMailer{})

	// Run with -race flag to detect write races between the goroutines
	for i := 0; i < 20; i++ {
		bookings, count, err := svc.Find(context.Background(), &model.BookingQuery{PageNo: 1, PageSize: 10})
		if err != nil {
			t.Fatalf("iteration %d: unexpected error: %v", i, err)
		}
		if count != 42 {
			t.Errorf("iteration %d: expected count 42, got %d", i, count)
		}
		if len(bookings) != 1 {
			t.Errorf("iteration %d: expected 1 booking, got %d", i, len(bookings))
		}
	}
}

func TestFind_ClampsPageSize(t *testing.T) {
	var gotPageSize int
	repo := &mockBookingRepository{
		searchFunc: func(ctx context.Context, query *model.BookingQuery) ([]*model.Booking, error) {
			gotPageSize = query.PageSize
			return nil, nil
		},
	}
	svc := newTestService(repo, &mockRoomLockRepository{}, &mockUserRepository{}, &mockRoomRepository{}, newMockCache(), &mockMailer{})

	_, _, err := svc.Find(context.Background(), &model.BookingQuery{PageNo: 1, PageSize: 100000})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotPageSize > config.DefaultPaginationLimit {
		t.Errorf("expected page size clamped to %d, got %d", config.DefaultPaginationLimit, gotPageSize)
	}
}
