package client

import (
	"encoding/json"
	"fmt"
	"net/url"

	"gigbook/pkg/model"
)

type BookingClient struct {
	httpClient *HttpClient
}

func NewBookingClient(httpClient *HttpClient) *BookingClient {
	return &BookingClient{httpClient: httpClient}
}

func (c *BookingClient) Create(booking model.Booking) (*Response, error) {
	return c.httpClient.POST("/bookings", booking)
}

func (c *BookingClient) GetAll() (*Response, error) {
	return c.httpClient.GET("/bookings")
}

func (c *BookingClient) Apply(id string) (*Response, error) {
	return c.httpClient.POST("/bookings/apply/"+url.PathEscape(id), struct{}{})
}

func (c *BookingClient) ApplyByVenue(venueName string) (*Response, error) {
	return c.httpClient.POST("/bookings/applyByVenue/"+url.PathEscape(venueName), struct{}{})
}

func (c *BookingClient) Update(venueName string, update model.BookingUpdate) (*Response, error) {
	return c.httpClient.PATCH("/bookings?venuename="+url.QueryEscape(venueName), update)
}

func (c *BookingClient) DeleteByVenue(venueName string) (*Response, error) {
	return c.httpClient.DELETE("/bookings?venuename=" + url.QueryEscape(venueName))
}

func (c *BookingClient) DecodeBooking(resp *Response) (*model.Booking, error) {
	var wrapper struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(resp.Body, &wrapper); err != nil {
		return nil, fmt.Errorf("could not decode booking wrapper: %w", err)
	}

	var booking model.Booking
	if err := json.Unmarshal(wrapper.Data, &booking); err != nil {
		return nil, fmt.Errorf("could not decode booking json: %w", err)
	}
	return &booking, nil
}

func (c *BookingClient) DecodeBookings(resp *Response) ([]*model.Booking, error) {
	var wrapper struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(resp.Body, &wrapper); err != nil {
		return nil, fmt.Errorf("could not decode bookings wrapper: %w", err)
	}

	var bookings []*model.Booking
	if err := json.Unmarshal(wrapper.Data, &bookings); err != nil {
		return nil, fmt.Errorf("could not decode booking list: %w", err)
	}
	return bookings, nil
}
