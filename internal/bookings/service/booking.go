package service

import (
	"context"
	"errors"

	bookingserrors "gigbook/internal/bookings/errors"
	"gigbook/internal/bookings/repository"
	"gigbook/internal/bookings/validator"
	"gigbook/pkg/config"
	apperrors "gigbook/pkg/errors"
	"gigbook/pkg/events"
	"gigbook/pkg/model"
	"gigbook/pkg/sanitizer"
)

type BookingService interface {
	Create(ctx context.Context, booking *model.Booking) error
	GetByID(ctx context.Context, id string) (*model.Booking, error)
	GetByVenueName(ctx context.Context, venueName string) (*model.Booking, error)
	GetAll(ctx context.Context) ([]*model.Booking, error)
	Apply(ctx context.Context, id, username string) (*model.Booking, error)
	ApplyByVenue(ctx context.Context, venueName, username string) (*model.Booking, error)
	Update(ctx context.Context, venueName string, update *model.BookingUpdate) (*model.Booking, error)
	DeleteByVenue(ctx context.Context, venueName string) (*model.Booking, error)
}

type bookingService struct {
	repo      repository.BookingRepository
	validator *validator.BookingValidator
	publisher events.Publisher
	cfg       *config.Config
}

func NewBookingService(
	repo repository.BookingRepository,
	bookingValidator *validator.BookingValidator,
	publisher events.Publisher,
	cfg *config.Config,
) BookingService {
	return &bookingService{
		repo:      repo,
		validator: bookingValidator,
		publisher: publisher,
		cfg:       cfg,
	}
}

func (s *bookingService) Create(ctx context.Context, booking *model.Booking) error {
	booking.ID = ""
	booking.VenueName = sanitizer.NormalizeVenueName(booking.VenueName)
	booking.Location = sanitizer.TrimAndNormalize(booking.Location)
	booking.Phone = sanitizer.NormalizePhone(booking.Phone)
	// Bookings always start with no applicants, whatever the client sent.
	booking.Applications = []string{}

	if err := s.validator.ValidateCreate(booking); err != nil {
		return apperrors.InvalidInput(err.Error())
	}

	if err := s.repo.Create(ctx, booking); err != nil {
		if errors.Is(err, bookingserrors.ErrDuplicateVenueName) {
			return apperrors.Conflict("A booking for this venue name already exists")
		}
		s.cfg.Log.Error("Failed to create booking", "venuename", booking.VenueName, "error", err)
		return apperrors.Internal("Failed to create booking", err)
	}

	s.publisher.Publish(ctx, events.Event{
		Type:      events.TypeBookingCreated,
		Key:       booking.ID,
		BookingID: booking.ID,
		VenueName: booking.VenueName,
	})

	s.cfg.Log.Info("Booking created", "id", booking.ID, "venuename", booking.VenueName)
	return nil
}

func (s *bookingService) GetByID(ctx context.Context, id string) (*model.Booking, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Booking ID cannot be empty")
	}

	booking, err := s.repo.FindByID(ctx, id)
	if err != nil {
		// A malformed id can't name an existing booking: 404, not 400.
		if errors.Is(err, bookingserrors.ErrNotFound) || errors.Is(err, bookingserrors.ErrInvalidID) {
			return nil, apperrors.NotFoundWithID("Booking", id)
		}
		return nil, apperrors.Internal("Failed to retrieve booking", err)
	}

	return booking, nil
}

func (s *bookingService) GetByVenueName(ctx context.Context, venueName string) (*model.Booking, error) {
	booking, err := s.repo.FindByVenueName(ctx, sanitizer.NormalizeVenueName(venueName))
	if err != nil {
		if errors.Is(err, bookingserrors.ErrNotFound) {
			return nil, apperrors.NotFound("Booking")
		}
		return nil, apperrors.Internal("Failed to retrieve booking", err)
	}

	return booking, nil
}

func (s *bookingService) GetAll(ctx context.Context) ([]*model.Booking, error) {
	bookings, err := s.repo.FindAll(ctx)
	if err != nil {
		s.cfg.Log.Error("Failed to list bookings", "error", err)
		return nil, apperrors.Internal("Failed to retrieve bookings", err)
	}
	return bookings, nil
}

func (s *bookingService) Apply(ctx context.Context, id, username string) (*model.Booking, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Booking ID cannot be empty")
	}
	if username == "" {
		return nil, apperrors.Unauthorized("No session username")
	}

	booking, err := s.repo.AppendApplicationByID(ctx, id, username)
	if err != nil {
		if errors.Is(err, bookingserrors.ErrNotFound) || errors.Is(err, bookingserrors.ErrInvalidID) {
			return nil, apperrors.NotFoundWithID("Booking", id)
		}
		return nil, apperrors.Internal("Failed to apply to booking", err)
	}

	s.publishApplication(ctx, booking, username)
	return booking, nil
}

func (s *bookingService) ApplyByVenue(ctx context.Context, venueName, username string) (*model.Booking, error) {
	if username == "" {
		return nil, apperrors.Unauthorized("No session username")
	}

	booking, err := s.repo.AppendApplicationByVenue(ctx, sanitizer.NormalizeVenueName(venueName), username)
	if err != nil {
		if errors.Is(err, bookingserrors.ErrNotFound) {
			return nil, apperrors.NotFound("Booking")
		}
		return nil, apperrors.Internal("Failed to apply to booking", err)
	}

	s.publishApplication(ctx, booking, username)
	return booking, nil
}

func (s *bookingService) Update(ctx context.Context, venueName string, update *model.BookingUpdate) (*model.Booking, error) {
	if err := s.validator.ValidateUpdate(update); err != nil {
		return nil, apperrors.InvalidInput(err.Error())
	}

	booking, err := s.repo.UpdateByVenueName(ctx, sanitizer.NormalizeVenueName(venueName), update)
	if err != nil {
		if errors.Is(err, bookingserrors.ErrNotFound) {
			return nil, apperrors.NotFound("Booking")
		}
		return nil, apperrors.Internal("Failed to update booking", err)
	}

	s.cfg.Log.Info("Booking updated", "id", booking.ID, "venuename", booking.VenueName)
	return booking, nil
}

func (s *bookingService) DeleteByVenue(ctx context.Context, venueName string) (*model.Booking, error) {
	booking, err := s.repo.DeleteByVenueName(ctx, sanitizer.NormalizeVenueName(venueName))
	if err != nil {
		if errors.Is(err, bookingserrors.ErrNotFound) {
			return nil, apperrors.NotFound("Booking")
		}
		return nil, apperrors.Internal("Failed to delete booking", err)
	}

	s.cfg.Log.Info("Booking deleted", "id", booking.ID, "venuename", booking.VenueName)
	return booking, nil
}

func (s *bookingService) publishApplication(ctx context.Context, booking *model.Booking, username string) {
	s.publisher.Publish(ctx, events.Event{
		Type:      events.TypeApplicationReceived,
		Key:       booking.ID,
		BookingID: booking.ID,
		VenueName: booking.VenueName,
		Username:  username,
	})

	s.cfg.Log.Info("Application recorded",
		"booking_id", booking.ID,
		"venuename", booking.VenueName,
		"username", username,
		"applications", len(booking.Applications),
	)
}
