package model

import "time"

const (
	UserTypePerformer = "performer"
	UserTypeVenue     = "venue"
	UserTypeAdmin     = "admin"
)

type User struct {
	ID           string      `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	Username     string      `json:"username" bson:"username" validate:"required,min=2,max=60"`
	PasswordHash string      `json:"-" bson:"password_hash"`
	Usertype     string      `json:"usertype" bson:"usertype" validate:"required,oneof=performer venue admin"`
	Name         string      `json:"name" bson:"name"`
	Phone        string      `json:"phone" bson:"phone"`
	Location     string      `json:"location" bson:"location"`
	Genre        string      `json:"genre" bson:"genre"`
	Description  string      `json:"description" bson:"description"`
	SelectedFor  []Selection `json:"selectedFor" bson:"selected_for"`
	CreatedAt    time.Time   `json:"created_at,omitempty" bson:"created_at"`
}

// Selection is the booking snapshot appended to a performer when a venue
// or admin chooses them for a booking.
type Selection struct {
	VenueName   string    `json:"venuename" bson:"venuename"`
	BookingID   string    `json:"booking_id,omitempty" bson:"booking_id,omitempty"`
	BookingDate string    `json:"bookingDate,omitempty" bson:"booking_date,omitempty"`
	Location    string    `json:"location,omitempty" bson:"location,omitempty"`
	Description string    `json:"description,omitempty" bson:"description,omitempty"`
	SelectedAt  time.Time `json:"selected_at,omitempty" bson:"selected_at"`
}

// SignupRequest is the payload for POST /users/signup. Usertype is fixed at
// creation and never updatable afterwards.
type SignupRequest struct {
	Username string `json:"username" validate:"required,min=2,max=60"`
	Password string `json:"password" validate:"required,min=4,max=128"`
	Usertype string `json:"usertype" validate:"required,oneof=performer venue admin"`
}

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// ProfileUpdate carries the free-text profile fields. All fields are
// overwritten on update; usertype, username and password are untouchable here.
type ProfileUpdate struct {
	Name        string `json:"name" validate:"max=100"`
	Phone       string `json:"phone" validate:"max=30"`
	Location    string `json:"location" validate:"max=100"`
	Genre       string `json:"genre" validate:"max=60"`
	Description string `json:"description" validate:"max=2000"`
}

// VenueProfileUpdate is the venue flavor of a profile update. Venues have
// no genre, so the field is absent and never overwritten.
type VenueProfileUpdate struct {
	Name        string `json:"name" validate:"max=100"`
	Phone       string `json:"phone" validate:"max=30"`
	Location    string `json:"location" validate:"max=100"`
	Description string `json:"description" validate:"max=2000"`
}

// DashboardPath returns the landing page for an authenticated user.
func DashboardPath(usertype string) string {
	switch usertype {
	case UserTypePerformer:
		return "/dashboard-performer"
	case UserTypeVenue:
		return "/dashboard-venue"
	case UserTypeAdmin:
		return "/admin"
	default:
		return "/index.html"
	}
}

// ProfileSetupPath returns the page a fresh signup is sent to.
func ProfileSetupPath(usertype string) string {
	switch usertype {
	case UserTypePerformer:
		return "/makeprofileperformer"
	case UserTypeVenue:
		return "/makeprofilevenue"
	case UserTypeAdmin:
		return "/admin"
	default:
		return "/login"
	}
}
