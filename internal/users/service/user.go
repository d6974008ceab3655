package service

import (
	"context"
	"errors"
	"time"

	"golang.org/x/crypto/bcrypt"

	userserrors "gigbook/internal/users/errors"
	"gigbook/internal/users/repository"
	"gigbook/internal/users/validator"
	"gigbook/pkg/config"
	apperrors "gigbook/pkg/errors"
	"gigbook/pkg/events"
	"gigbook/pkg/model"
	"gigbook/pkg/sanitizer"
)

type UserService interface {
	Signup(ctx context.Context, req *model.SignupRequest) (*model.User, error)
	Authenticate(ctx context.Context, username, password string) (*model.User, error)
	GetByID(ctx context.Context, id string) (*model.User, error)
	GetByUsername(ctx context.Context, username string) (*model.User, error)
	GetAll(ctx context.Context) ([]*model.User, error)
	UpdatePerformerProfile(ctx context.Context, id string, update *model.ProfileUpdate) (*model.User, error)
	UpdateVenueProfile(ctx context.Context, username string, update *model.VenueProfileUpdate) (*model.User, error)
	ChoosePerformer(ctx context.Context, performerName string, selection model.Selection) (*model.User, error)
	DeleteByUsername(ctx context.Context, username string) (*model.User, error)
}

type userService struct {
	repo      repository.UserRepository
	validator *validator.UserValidator
	publisher events.Publisher
	cfg       *config.Config
}

func NewUserService(
	repo repository.UserRepository,
	userValidator *validator.UserValidator,
	publisher events.Publisher,
	cfg *config.Config,
) UserService {
	return &userService{
		repo:      repo,
		validator: userValidator,
		publisher: publisher,
		cfg:       cfg,
	}
}

// Signup creates a user with empty profile defaults and a hashed password.
// Usertype is fixed here and never updatable afterwards.
func (s *userService) Signup(ctx context.Context, req *model.SignupRequest) (*model.User, error) {
	req.Username = sanitizer.NormalizeUsername(req.Username)

	if err := s.validator.ValidateSignup(req); err != nil {
		return nil, apperrors.InvalidInput(err.Error())
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.cfg.BcryptCost)
	if err != nil {
		return nil, apperrors.Internal("Failed to hash password", err)
	}

	user := &model.User{
		Username:     req.Username,
		PasswordHash: string(hash),
		Usertype:     req.Usertype,
		SelectedFor:  []model.Selection{},
	}

	if err := s.repo.Create(ctx, user); err != nil {
		if errors.Is(err, userserrors.ErrDuplicateUsername) {
			return nil, apperrors.Conflict("Username already taken")
		}
		s.cfg.Log.Error("Failed to create user", "username", req.Username, "error", err)
		return nil, apperrors.Internal("Failed to create user", err)
	}

	s.publisher.Publish(ctx, events.Event{
		Type:     events.TypeUserSignedUp,
		Key:      user.Username,
		Username: user.Username,
		Usertype: user.Usertype,
	})

	s.cfg.Log.Info("User created", "id", user.ID, "username", user.Username, "usertype", user.Usertype)
	return user, nil
}

// Authenticate verifies credentials. Both an unknown username and a wrong
// password surface as the same 400 so the response doesn't leak which
// usernames exist.
func (s *userService) Authenticate(ctx context.Context, username, password string) (*model.User, error) {
	username = sanitizer.NormalizeUsername(username)

	user, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, userserrors.ErrNotFound) {
			return nil, apperrors.InvalidInput("Invalid username or password")
		}
		return nil, apperrors.Internal("Failed to look up user", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, apperrors.InvalidInput("Invalid username or password")
	}

	return user, nil
}

func (s *userService) GetByID(ctx context.Context, id string) (*model.User, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("User ID cannot be empty")
	}

	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, userserrors.ErrNotFound) || errors.Is(err, userserrors.ErrInvalidID) {
			return nil, apperrors.NotFoundWithID("User", id)
		}
		return nil, apperrors.Internal("Failed to retrieve user", err)
	}

	return user, nil
}

func (s *userService) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	user, err := s.repo.FindByUsername(ctx, sanitizer.NormalizeUsername(username))
	if err != nil {
		if errors.Is(err, userserrors.ErrNotFound) {
			return nil, apperrors.NotFound("User")
		}
		return nil, apperrors.Internal("Failed to retrieve user", err)
	}

	return user, nil
}

func (s *userService) GetAll(ctx context.Context) ([]*model.User, error) {
	users, err := s.repo.FindAll(ctx)
	if err != nil {
		s.cfg.Log.Error("Failed to list users", "error", err)
		return nil, apperrors.Internal("Failed to retrieve users", err)
	}
	return users, nil
}

func (s *userService) UpdatePerformerProfile(ctx context.Context, id string, update *model.ProfileUpdate) (*model.User, error) {
	s.sanitizeProfile(update)
	if err := s.validator.ValidateProfileUpdate(update); err != nil {
		return nil, apperrors.InvalidInput(err.Error())
	}

	user, err := s.repo.UpdatePerformerProfile(ctx, id, update)
	if err != nil {
		// An unparseable id cannot name an existing user.
		if errors.Is(err, userserrors.ErrNotFound) || errors.Is(err, userserrors.ErrInvalidID) {
			return nil, apperrors.NotFoundWithID("User", id)
		}
		return nil, apperrors.Internal("Failed to update profile", err)
	}

	s.cfg.Log.Info("Profile updated", "id", user.ID, "username", user.Username)
	return user, nil
}

func (s *userService) UpdateVenueProfile(ctx context.Context, username string, update *model.VenueProfileUpdate) (*model.User, error) {
	update.Name = sanitizer.NormalizeName(update.Name)
	update.Location = sanitizer.TrimAndNormalize(update.Location)
	update.Phone = sanitizer.NormalizePhone(update.Phone)

	if err := s.validator.ValidateVenueProfileUpdate(update); err != nil {
		return nil, apperrors.InvalidInput(err.Error())
	}

	user, err := s.repo.UpdateVenueProfile(ctx, sanitizer.NormalizeUsername(username), update)
	if err != nil {
		if errors.Is(err, userserrors.ErrNotFound) {
			return nil, apperrors.NotFound("User")
		}
		return nil, apperrors.Internal("Failed to update profile", err)
	}

	s.cfg.Log.Info("Venue profile updated", "id", user.ID, "username", user.Username)
	return user, nil
}

func (s *userService) ChoosePerformer(ctx context.Context, performerName string, selection model.Selection) (*model.User, error) {
	performerName = sanitizer.NormalizeUsername(performerName)
	selection.SelectedAt = time.Now().UTC().Truncate(time.Millisecond)

	user, err := s.repo.AppendSelection(ctx, performerName, selection)
	if err != nil {
		if errors.Is(err, userserrors.ErrNotFound) {
			return nil, apperrors.NotFound("User")
		}
		return nil, apperrors.Internal("Failed to record selection", err)
	}

	s.publisher.Publish(ctx, events.Event{
		Type:      events.TypePerformerSelected,
		Key:       performerName,
		Username:  performerName,
		VenueName: selection.VenueName,
		BookingID: selection.BookingID,
	})

	s.cfg.Log.Info("Performer selected",
		"performer", performerName,
		"venuename", selection.VenueName,
	)
	return user, nil
}

func (s *userService) DeleteByUsername(ctx context.Context, username string) (*model.User, error) {
	user, err := s.repo.DeleteByUsername(ctx, sanitizer.NormalizeUsername(username))
	if err != nil {
		if errors.Is(err, userserrors.ErrNotFound) {
			return nil, apperrors.NotFound("User")
		}
		return nil, apperrors.Internal("Failed to delete user", err)
	}

	s.cfg.Log.Info("User deleted", "id", user.ID, "username", user.Username)
	return user, nil
}

func (s *userService) sanitizeProfile(update *model.ProfileUpdate) {
	update.Name = sanitizer.NormalizeName(update.Name)
	update.Location = sanitizer.TrimAndNormalize(update.Location)
	update.Genre = sanitizer.TrimAndNormalize(update.Genre)
	update.Phone = sanitizer.NormalizePhone(update.Phone)
}
