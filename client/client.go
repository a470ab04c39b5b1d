// Package client is the booking repository used by front ends: a thin
// adapter that translates domain-level calls into REST requests and maps
// responses and errors back. Each call is a direct passthrough; there are no
// retries, no caching and no offline queue.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// APIError is a non-2xx response from the server
type APIError struct {
	StatusCode int
	Kind       string // server-side error kind, e.g. "Not found"
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.StatusCode, e.Message)
}

// Client calls the Tradesman Handy REST API
type Client struct {
	baseURL string
	token   string
	http    *http.Client
}

// Option configures a Client
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

// WithToken sets the bearer token attached to every request
func WithToken(token string) Option {
	return func(c *Client) { c.token = token }
}

// New creates a client for the API at baseURL (e.g. "http://localhost:8080")
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 15 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SetToken updates the bearer token after login or refresh
func (c *Client) SetToken(token string) {
	c.token = token
}

// CreateBookingInput carries the fields for CreateBooking
type CreateBookingInput struct {
	Title                 string  `json:"title"`
	Description           string  `json:"description"`
	Source                string  `json:"source"`
	TradesmanID           string  `json:"tradesmanId"`
	Location              string  `json:"location,omitempty"`
	ServiceType           *string `json:"serviceType,omitempty"`
	HousingAssociationRef *string `json:"housingAssociationRef,omitempty"`
	PreferredDate         *string `json:"preferredDate,omitempty"` // ISO8601
}

// CreateBooking creates a new booking for the authenticated client
func (c *Client) CreateBooking(ctx context.Context, input CreateBookingInput) (*Booking, error) {
	var booking Booking
	err := c.do(ctx, http.MethodPost, "/api/v1/bookings", input, &booking)
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

// SubmitQuote submits a price and proposed date against a booking
func (c *Client) SubmitQuote(ctx context.Context, bookingID string, price float64, scheduledDate string) (*Booking, error) {
	body := map[string]interface{}{
		"quotedPrice":   price,
		"scheduledDate": scheduledDate,
	}
	var booking Booking
	err := c.do(ctx, http.MethodPut, "/api/v1/bookings/"+bookingID+"/quote", body, &booking)
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

// AcceptBooking moves a quoted booking to accepted
func (c *Client) AcceptBooking(ctx context.Context, bookingID string) (*Booking, error) {
	return c.statusVerb(ctx, bookingID, "accept")
}

// RejectBooking moves a booking to rejected
func (c *Client) RejectBooking(ctx context.Context, bookingID string) (*Booking, error) {
	return c.statusVerb(ctx, bookingID, "reject")
}

// StartBooking moves an accepted booking to in_progress
func (c *Client) StartBooking(ctx context.Context, bookingID string) (*Booking, error) {
	return c.statusVerb(ctx, bookingID, "start")
}

// CompleteBooking moves an in-progress booking to completed
func (c *Client) CompleteBooking(ctx context.Context, bookingID string) (*Booking, error) {
	return c.statusVerb(ctx, bookingID, "complete")
}

// CancelBooking cancels the authenticated client's own booking
func (c *Client) CancelBooking(ctx context.Context, bookingID string) (*Booking, error) {
	return c.statusVerb(ctx, bookingID, "cancel")
}

// ScheduleBooking overwrites the scheduled visit date. scheduledDate is an
// ISO8601 timestamp string.
func (c *Client) ScheduleBooking(ctx context.Context, bookingID string, scheduledDate string) (*Booking, error) {
	body := map[string]string{"scheduledDate": scheduledDate}
	var booking Booking
	err := c.do(ctx, http.MethodPut, "/api/v1/bookings/"+bookingID+"/schedule", body, &booking)
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

// UpdateBookingStatus applies an arbitrary status change, optionally with a
// price
func (c *Client) UpdateBookingStatus(ctx context.Context, bookingID string, status string, quotedPrice *float64) (*Booking, error) {
	body := map[string]interface{}{"status": status}
	if quotedPrice != nil {
		body["quotedPrice"] = *quotedPrice
	}
	var booking Booking
	err := c.do(ctx, http.MethodPut, "/api/v1/bookings/"+bookingID+"/status", body, &booking)
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

// GetBooking fetches one booking with client and tradesman summaries
func (c *Client) GetBooking(ctx context.Context, bookingID string) (*Booking, error) {
	var booking Booking
	err := c.do(ctx, http.MethodGet, "/api/v1/bookings/"+bookingID, nil, &booking)
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

// GetTradesmanBookings lists bookings assigned to a tradesman
func (c *Client) GetTradesmanBookings(ctx context.Context, tradesmanID string) ([]Booking, error) {
	var bookings []Booking
	err := c.do(ctx, http.MethodGet, "/api/v1/bookings/tradesman/"+tradesmanID, nil, &bookings)
	if err != nil {
		return nil, err
	}
	return bookings, nil
}

// GetClientBookings lists bookings created by a client
func (c *Client) GetClientBookings(ctx context.Context, clientID string) ([]Booking, error) {
	var bookings []Booking
	err := c.do(ctx, http.MethodGet, "/api/v1/bookings/client/"+clientID, nil, &bookings)
	if err != nil {
		return nil, err
	}
	return bookings, nil
}

func (c *Client) statusVerb(ctx context.Context, bookingID, verb string) (*Booking, error) {
	var booking Booking
	err := c.do(ctx, http.MethodPut, "/api/v1/bookings/"+bookingID+"/"+verb, nil, &booking)
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

// do issues one request and decodes the response into out. Non-2xx responses
// become *APIError with the server's error kind and message.
func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		var wire struct {
			Error   string `json:"error"`
			Message string `json:"message"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&wire); err == nil {
			apiErr.Kind = wire.Error
			apiErr.Message = wire.Message
		}
		if apiErr.Message == "" {
			apiErr.Message = http.StatusText(resp.StatusCode)
		}
		return apiErr
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
