package model

import "time"

type Booking struct {
	ID           string    `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	VenueName    string    `json:"venuename" bson:"venuename" validate:"required,min=1,max=100"`
	Location     string    `json:"location" bson:"location" validate:"max=100"`
	BookingDate  string    `json:"bookingDate" bson:"booking_date" validate:"required,max=40"`
	Phone        string    `json:"phone" bson:"phone" validate:"max=30"`
	Description  string    `json:"description" bson:"description" validate:"max=2000"`
	Applications []string  `json:"applications" bson:"applications"`
	CreatedAt    time.Time `json:"created_at,omitempty" bson:"created_at"`
}

// BookingUpdate carries the mutable booking fields for PATCH /bookings.
type BookingUpdate struct {
	BookingDate string `json:"bookingDate,omitempty" validate:"omitempty,max=40"`
	Description string `json:"description,omitempty" validate:"omitempty,max=2000"`
}
