package service

import (
	"context"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	userserrors "gigbook/internal/users/errors"
	"gigbook/internal/users/validator"
	"gigbook/pkg/config"
	apperrors "gigbook/pkg/errors"
	"gigbook/pkg/events"
	"gigbook/pkg/logger"
	"gigbook/pkg/model"
)

// ────────────────────────────────────────────────
// Mock repository for testing
// ────────────────────────────────────────────────

type mockUserRepository struct {
	createFunc                 func(ctx context.Context, user *model.User) error
	findByUsernameFunc         func(ctx context.Context, username string) (*model.User, error)
	findByIDFunc               func(ctx context.Context, id string) (*model.User, error)
	updatePerformerProfileFunc func(ctx context.Context, id string, update *model.ProfileUpdate) (*model.User, error)
	appendSelectionFunc        func(ctx context.Context, username string, sel model.Selection) (*model.User, error)
}

func (m *mockUserRepository) EnsureIndexes(ctx context.Context) error { return nil }

func (m *mockUserRepository) Create(ctx context.Context, user *model.User) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, user)
	}
	user.ID = "650a1f2b3c4d5e6f70819202"
	return nil
}

func (m *mockUserRepository) FindByID(ctx context.Context, id string) (*model.User, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	return nil, userserrors.ErrNotFound
}

func (m *mockUserRepository) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	if m.findByUsernameFunc != nil {
		return m.findByUsernameFunc(ctx, username)
	}
	return nil, userserrors.ErrNotFound
}

func (m *mockUserRepository) FindAll(ctx context.Context) ([]*model.User, error) {
	return []*model.User{}, nil
}

func (m *mockUserRepository) UpdatePerformerProfile(ctx context.Context, id string, update *model.ProfileUpdate) (*model.User, error) {
	if m.updatePerformerProfileFunc != nil {
		return m.updatePerformerProfileFunc(ctx, id, update)
	}
	return nil, userserrors.ErrNotFound
}

func (m *mockUserRepository) UpdateVenueProfile(ctx context.Context, username string, update *model.VenueProfileUpdate) (*model.User, error) {
	return nil, userserrors.ErrNotFound
}

func (m *mockUserRepository) AppendSelection(ctx context.Context, username string, sel model.Selection) (*model.User, error) {
	if m.appendSelectionFunc != nil {
		return m.appendSelectionFunc(ctx, username, sel)
	}
	return nil, userserrors.ErrNotFound
}

func (m *mockUserRepository) DeleteByUsername(ctx context.Context, username string) (*model.User, error) {
	return nil, userserrors.ErrNotFound
}

func (m *mockUserRepository) Count(ctx context.Context) (int64, error) { return 0, nil }

func newTestService(repo *mockUserRepository) UserService {
	log := logger.New(logger.Config{Level: logger.ERROR, Service: "test"})
	cfg := &config.Config{
		Log:        log,
		BcryptCost: bcrypt.MinCost,
	}
	return NewUserService(repo, validator.NewUserValidator(log), events.NoopPublisher{}, cfg)
}

// ────────────────────────────────────────────────
// Signup
// ────────────────────────────────────────────────

func TestSignup_CreatesUserWithDefaults(t *testing.T) {
	var created *model.User
	repo := &mockUserRepository{
		createFunc: func(ctx context.Context, user *model.User) error {
			user.ID = "650a1f2b3c4d5e6f70819202"
			created = user
			return nil
		},
	}
	svc := newTestService(repo)

	user, err := svc.Signup(context.Background(), &model.SignupRequest{
		Username: "  Alice ",
		Password: "hunter2",
		Usertype: model.UserTypePerformer,
	})
	if err != nil {
		t.Fatalf("Signup() failed: %v", err)
	}

	if created == nil {
		t.Fatalf("repository Create was never called")
	}
	if user.Username != "alice" {
		t.Errorf("username should be normalized, got %q", user.Username)
	}
	if user.Usertype != model.UserTypePerformer {
		t.Errorf("usertype = %q, want performer", user.Usertype)
	}
	if user.Name != "" || user.Phone != "" || user.Location != "" || user.Genre != "" || user.Description != "" {
		t.Errorf("profile fields should default to empty, got %+v", user)
	}
	if user.SelectedFor == nil || len(user.SelectedFor) != 0 {
		t.Errorf("selectedFor should be an empty sequence, got %v", user.SelectedFor)
	}
	if user.PasswordHash == "hunter2" || user.PasswordHash == "" {
		t.Errorf("password must be stored hashed")
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("hunter2")) != nil {
		t.Errorf("stored hash does not verify the original password")
	}
}

func TestSignup_RejectsInvalidUsertype(t *testing.T) {
	svc := newTestService(&mockUserRepository{})

	_, err := svc.Signup(context.Background(), &model.SignupRequest{
		Username: "alice",
		Password: "hunter2",
		Usertype: "promoter",
	})
	if err == nil {
		t.Fatalf("expected validation error")
	}
	if appErr := apperrors.AsAppError(err); appErr.Code != apperrors.CodeInvalidInput {
		t.Errorf("expected INVALID_INPUT, got %s", appErr.Code)
	}
}

func TestSignup_DuplicateUsernameConflicts(t *testing.T) {
	repo := &mockUserRepository{
		createFunc: func(ctx context.Context, user *model.User) error {
			return userserrors.ErrDuplicateUsername
		},
	}
	svc := newTestService(repo)

	_, err := svc.Signup(context.Background(), &model.SignupRequest{
		Username: "alice",
		Password: "hunter2",
		Usertype: model.UserTypeVenue,
	})
	if err == nil {
		t.Fatalf("expected conflict error")
	}
	if appErr := apperrors.AsAppError(err); appErr.Code != apperrors.CodeConflict {
		t.Errorf("expected CONFLICT, got %s", appErr.Code)
	}
}

// ────────────────────────────────────────────────
// Authenticate
// ────────────────────────────────────────────────

func TestAuthenticate(t *testing.T) {
	hash, _ := bcrypt.GenerateFromPassword([]byte("hunter2"), bcrypt.MinCost)
	repo := &mockUserRepository{
		findByUsernameFunc: func(ctx context.Context, username string) (*model.User, error) {
			if username == "alice" {
				return &model.User{
					ID:           "650a1f2b3c4d5e6f70819202",
					Username:     "alice",
					PasswordHash: string(hash),
					Usertype:     model.UserTypePerformer,
				}, nil
			}
			return nil, userserrors.ErrNotFound
		},
	}
	svc := newTestService(repo)
	ctx := context.Background()

	user, err := svc.Authenticate(ctx, "Alice", "hunter2")
	if err != nil {
		t.Fatalf("Authenticate() with correct credentials failed: %v", err)
	}
	if user.Username != "alice" {
		t.Errorf("unexpected user: %+v", user)
	}

	if _, err := svc.Authenticate(ctx, "alice", "wrong"); err == nil {
		t.Errorf("wrong password must not authenticate")
	} else if appErr := apperrors.AsAppError(err); appErr.StatusCode() != 400 {
		t.Errorf("login failure should be a 400, got %d", appErr.StatusCode())
	}

	if _, err := svc.Authenticate(ctx, "nobody", "hunter2"); err == nil {
		t.Errorf("unknown username must not authenticate")
	} else if appErr := apperrors.AsAppError(err); appErr.Message != "Invalid username or password" {
		t.Errorf("unknown-user error must match wrong-password error, got %q", appErr.Message)
	}
}

// ────────────────────────────────────────────────
// Profile updates
// ────────────────────────────────────────────────

func TestUpdatePerformerProfile_RoundTrip(t *testing.T) {
	stored := &model.User{
		ID:       "650a1f2b3c4d5e6f70819202",
		Username: "alice",
		Usertype: model.UserTypePerformer,
	}
	repo := &mockUserRepository{
		updatePerformerProfileFunc: func(ctx context.Context, id string, update *model.ProfileUpdate) (*model.User, error) {
			if id != stored.ID {
				return nil, userserrors.ErrNotFound
			}
			stored.Name = update.Name
			stored.Phone = update.Phone
			stored.Location = update.Location
			stored.Genre = update.Genre
			stored.Description = update.Description
			copied := *stored
			return &copied, nil
		},
	}
	svc := newTestService(repo)

	updated, err := svc.UpdatePerformerProfile(context.Background(), stored.ID, &model.ProfileUpdate{
		Name:        "  Alice   Songbird ",
		Location:    "Toronto",
		Genre:       "jazz",
		Description: "smoky vocals",
	})
	if err != nil {
		t.Fatalf("UpdatePerformerProfile() failed: %v", err)
	}

	if updated.Name != "Alice Songbird" {
		t.Errorf("name should be whitespace-normalized, got %q", updated.Name)
	}
	if updated.Genre != "jazz" || updated.Location != "Toronto" || updated.Description != "smoky vocals" {
		t.Errorf("updated fields not reflected: %+v", updated)
	}
	if updated.Username != "alice" || updated.Usertype != model.UserTypePerformer {
		t.Errorf("identity fields must be untouched: %+v", updated)
	}
}

func TestUpdatePerformerProfile_InvalidID(t *testing.T) {
	repo := &mockUserRepository{
		updatePerformerProfileFunc: func(ctx context.Context, id string, update *model.ProfileUpdate) (*model.User, error) {
			return nil, userserrors.ErrInvalidID
		},
	}
	svc := newTestService(repo)

	_, err := svc.UpdatePerformerProfile(context.Background(), "not-an-id", &model.ProfileUpdate{})
	if err == nil {
		t.Fatalf("expected error for malformed id")
	}
	if appErr := apperrors.AsAppError(err); appErr.StatusCode() != 404 {
		t.Errorf("malformed id should surface as 404, got %d", appErr.StatusCode())
	}
}

// ────────────────────────────────────────────────
// ChoosePerformer
// ────────────────────────────────────────────────

func TestChoosePerformer(t *testing.T) {
	var appended model.Selection
	repo := &mockUserRepository{
		appendSelectionFunc: func(ctx context.Context, username string, sel model.Selection) (*model.User, error) {
			if username != "bob" {
				return nil, userserrors.ErrNotFound
			}
			appended = sel
			return &model.User{Username: "bob", SelectedFor: []model.Selection{sel}}, nil
		},
	}
	svc := newTestService(repo)

	user, err := svc.ChoosePerformer(context.Background(), "Bob", model.Selection{
		VenueName:   "Hall A",
		BookingDate: "2024-01-01",
	})
	if err != nil {
		t.Fatalf("ChoosePerformer() failed: %v", err)
	}
	if len(user.SelectedFor) != 1 {
		t.Fatalf("expected one selection, got %d", len(user.SelectedFor))
	}
	if appended.VenueName != "Hall A" {
		t.Errorf("selection payload not forwarded: %+v", appended)
	}
	if appended.SelectedAt.IsZero() || time.Since(appended.SelectedAt) > time.Minute {
		t.Errorf("selection timestamp not stamped: %v", appended.SelectedAt)
	}

	if _, err := svc.ChoosePerformer(context.Background(), "nobody", model.Selection{}); err == nil {
		t.Errorf("selecting an unknown performer should fail")
	} else if appErr := apperrors.AsAppError(err); appErr.StatusCode() != 404 {
		t.Errorf("unknown performer should be 404, got %d", appErr.StatusCode())
	}
}
