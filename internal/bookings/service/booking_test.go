package service

import (
	"context"
	"testing"
	"time"

	bookingserrors "gigbook/internal/bookings/errors"
	"gigbook/internal/bookings/validator"
	"gigbook/pkg/config"
	apperrors "gigbook/pkg/errors"
	"gigbook/pkg/events"
	"gigbook/pkg/logger"
	"gigbook/pkg/model"
)

// ────────────────────────────────────────────────
// Mock repository for testing
// ────────────────────────────────────────────────

type mockBookingRepository struct {
	createFunc          func(ctx context.Context, booking *model.Booking) error
	findByIDFunc        func(ctx context.Context, id string) (*model.Booking, error)
	findByVenueFunc     func(ctx context.Context, venueName string) (*model.Booking, error)
	appendByIDFunc      func(ctx context.Context, id, username string) (*model.Booking, error)
	appendByVenueFunc   func(ctx context.Context, venueName, username string) (*model.Booking, error)
	updateByVenueFunc   func(ctx context.Context, venueName string, update *model.BookingUpdate) (*model.Booking, error)
	deleteByVenueFunc   func(ctx context.Context, venueName string) (*model.Booking, error)
}

func (m *mockBookingRepository) EnsureIndexes(ctx context.Context) error { return nil }

func (m *mockBookingRepository) Create(ctx context.Context, booking *model.Booking) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, booking)
	}
	booking.ID = "650a1f2b3c4d5e6f70819203"
	return nil
}

func (m *mockBookingRepository) FindByID(ctx context.Context, id string) (*model.Booking, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	return nil, bookingserrors.ErrNotFound
}

func (m *mockBookingRepository) FindByVenueName(ctx context.Context, venueName string) (*model.Booking, error) {
	if m.findByVenueFunc != nil {
		return m.findByVenueFunc(ctx, venueName)
	}
	return nil, bookingserrors.ErrNotFound
}

func (m *mockBookingRepository) FindAll(ctx context.Context) ([]*model.Booking, error) {
	return []*model.Booking{}, nil
}

func (m *mockBookingRepository) AppendApplicationByID(ctx context.Context, id, username string) (*model.Booking, error) {
	if m.appendByIDFunc != nil {
		return m.appendByIDFunc(ctx, id, username)
	}
	return nil, bookingserrors.ErrNotFound
}

func (m *mockBookingRepository) AppendApplicationByVenue(ctx context.Context, venueName, username string) (*model.Booking, error) {
	if m.appendByVenueFunc != nil {
		return m.appendByVenueFunc(ctx, venueName, username)
	}
	return nil, bookingserrors.ErrNotFound
}

func (m *mockBookingRepository) UpdateByVenueName(ctx context.Context, venueName string, update *model.BookingUpdate) (*model.Booking, error) {
	if m.updateByVenueFunc != nil {
		return m.updateByVenueFunc(ctx, venueName, update)
	}
	return nil, bookingserrors.ErrNotFound
}

func (m *mockBookingRepository) DeleteByVenueName(ctx context.Context, venueName string) (*model.Booking, error) {
	if m.deleteByVenueFunc != nil {
		return m.deleteByVenueFunc(ctx, venueName)
	}
	return nil, bookingserrors.ErrNotFound
}

func (m *mockBookingRepository) Count(ctx context.Context) (int64, error) { return 0, nil }

func newTestService(repo *mockBookingRepository) BookingService {
	log := logger.New(logger.Config{Level: logger.ERROR, Service: "test"})
	cfg := &config.Config{Log: log}
	return NewBookingService(repo, validator.NewBookingValidator(log), events.NoopPublisher{}, cfg)
}

func validBooking() *model.Booking {
	return &model.Booking{
		VenueName:   "The Blue Note",
		Location:    "131 W 3rd St, New York",
		BookingDate: "2026-09-12",
		Phone:       "(650) 253-0000",
		Description: "Jazz trio for Friday night",
	}
}

// ────────────────────────────────────────────────
// Create
// ────────────────────────────────────────────────

func TestCreate_NormalizesAndResetsApplications(t *testing.T) {
	var created *model.Booking
	repo := &mockBookingRepository{
		createFunc: func(ctx context.Context, booking *model.Booking) error {
			booking.ID = "650a1f2b3c4d5e6f70819203"
			created = booking
			return nil
		},
	}
	svc := newTestService(repo)

	booking := validBooking()
	booking.VenueName = "  The Blue Note "
	booking.Applications = []string{"smuggled"}

	if err := svc.Create(context.Background(), booking); err != nil {
		t.Fatalf("Create() failed: %v", err)
	}
	if created == nil {
		t.Fatalf("repository Create was never called")
	}
	if created.VenueName != "The Blue Note" {
		t.Errorf("venuename should be trimmed, got %q", created.VenueName)
	}
	if created.Applications == nil || len(created.Applications) != 0 {
		t.Errorf("applications should start empty, got %v", created.Applications)
	}
	if created.Phone != "+16502530000" {
		t.Errorf("phone should be normalized to E.164, got %q", created.Phone)
	}
}

func TestCreate_MissingVenueNameRejected(t *testing.T) {
	svc := newTestService(&mockBookingRepository{})

	booking := validBooking()
	booking.VenueName = "   "

	err := svc.Create(context.Background(), booking)
	if err == nil {
		t.Fatalf("expected validation error for empty venuename")
	}
	if appErr := apperrors.AsAppError(err); appErr.Code != apperrors.CodeInvalidInput {
		t.Errorf("expected INVALID_INPUT, got %s", appErr.Code)
	}
}

func TestCreate_DuplicateVenueNameConflicts(t *testing.T) {
	repo := &mockBookingRepository{
		createFunc: func(ctx context.Context, booking *model.Booking) error {
			return bookingserrors.ErrDuplicateVenueName
		},
	}
	svc := newTestService(repo)

	err := svc.Create(context.Background(), validBooking())
	if err == nil {
		t.Fatalf("expected conflict error")
	}
	if appErr := apperrors.AsAppError(err); appErr.Code != apperrors.CodeConflict {
		t.Errorf("expected CONFLICT for duplicate venuename, got %s", appErr.Code)
	}
}

// ────────────────────────────────────────────────
// Apply
// ────────────────────────────────────────────────

func TestApply_AppendsApplicant(t *testing.T) {
	repo := &mockBookingRepository{
		appendByIDFunc: func(ctx context.Context, id, username string) (*model.Booking, error) {
			booking := validBooking()
			booking.ID = id
			booking.Applications = []string{username}
			booking.CreatedAt = time.Now()
			return booking, nil
		},
	}
	svc := newTestService(repo)

	booking, err := svc.Apply(context.Background(), "650a1f2b3c4d5e6f70819203", "alice")
	if err != nil {
		t.Fatalf("Apply() failed: %v", err)
	}
	if len(booking.Applications) != 1 || booking.Applications[0] != "alice" {
		t.Errorf("expected applications [alice], got %v", booking.Applications)
	}
}

func TestApply_InvalidIDIsNotFound(t *testing.T) {
	repo := &mockBookingRepository{
		appendByIDFunc: func(ctx context.Context, id, username string) (*model.Booking, error) {
			return nil, bookingserrors.ErrInvalidID
		},
	}
	svc := newTestService(repo)

	_, err := svc.Apply(context.Background(), "not-an-object-id", "alice")
	if err == nil {
		t.Fatalf("expected error for malformed id")
	}
	if appErr := apperrors.AsAppError(err); appErr.StatusCode() != 404 {
		t.Errorf("malformed id should surface as 404, got %d", appErr.StatusCode())
	}
}

func TestApply_MissingUsernameUnauthorized(t *testing.T) {
	svc := newTestService(&mockBookingRepository{})

	_, err := svc.Apply(context.Background(), "650a1f2b3c4d5e6f70819203", "")
	if err == nil {
		t.Fatalf("expected error without a username")
	}
	if appErr := apperrors.AsAppError(err); appErr.Code != apperrors.CodeUnauthorized {
		t.Errorf("expected UNAUTHORIZED without a username, got %s", appErr.Code)
	}
}

func TestApplyByVenue_UnknownVenueNotFound(t *testing.T) {
	svc := newTestService(&mockBookingRepository{})

	_, err := svc.ApplyByVenue(context.Background(), "Nowhere Hall", "alice")
	if err == nil {
		t.Fatalf("expected error for unknown venue")
	}
	if appErr := apperrors.AsAppError(err); appErr.Code != apperrors.CodeNotFound {
		t.Errorf("expected NOT_FOUND for unknown venue, got %s", appErr.Code)
	}
}

// ────────────────────────────────────────────────
// Update / Delete
// ────────────────────────────────────────────────

func TestUpdate_PassesThroughFields(t *testing.T) {
	var gotVenue string
	var gotUpdate *model.BookingUpdate
	repo := &mockBookingRepository{
		updateByVenueFunc: func(ctx context.Context, venueName string, update *model.BookingUpdate) (*model.Booking, error) {
			gotVenue = venueName
			gotUpdate = update
			booking := validBooking()
			booking.ID = "650a1f2b3c4d5e6f70819203"
			booking.BookingDate = update.BookingDate
			booking.Description = update.Description
			return booking, nil
		},
	}
	svc := newTestService(repo)

	booking, err := svc.Update(context.Background(), " The Blue Note ", &model.BookingUpdate{
		BookingDate: "2026-10-01",
		Description: "Moved to October",
	})
	if err != nil {
		t.Fatalf("Update() failed: %v", err)
	}
	if gotVenue != "The Blue Note" {
		t.Errorf("venuename should be normalized before lookup, got %q", gotVenue)
	}
	if gotUpdate.BookingDate != "2026-10-01" {
		t.Errorf("unexpected update payload: %+v", gotUpdate)
	}
	if booking.Description != "Moved to October" {
		t.Errorf("updated booking should carry the new description, got %q", booking.Description)
	}
}

func TestDeleteByVenue_UnknownVenueNotFound(t *testing.T) {
	svc := newTestService(&mockBookingRepository{})

	_, err := svc.DeleteByVenue(context.Background(), "Nowhere Hall")
	if err == nil {
		t.Fatalf("expected error deleting unknown venue")
	}
	if appErr := apperrors.AsAppError(err); appErr.Code != apperrors.CodeNotFound {
		t.Errorf("expected NOT_FOUND deleting unknown venue, got %s", appErr.Code)
	}
}
