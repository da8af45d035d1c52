package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
)

// The resource groups below mirror the remote service's authenticated endpoints.
// Their payloads are returned undecoded; the dashboards own those shapes.

// Services covers roadside service requests and mechanic matching.
type Services struct{ c *Client }

func (c *Client) Services() Services { return Services{c: c} }

func (s Services) Request(ctx context.Context, request any) (json.RawMessage, error) {
	return s.c.raw(ctx, http.MethodPost, "/services/request", nil, request)
}

func (s Services) AvailableMechanics(ctx context.Context, params url.Values) (json.RawMessage, error) {
	return s.c.raw(ctx, http.MethodGet, "/services/available-mechanics", params, nil)
}

func (s Services) Assign(ctx context.Context, serviceID string, assignment any) (json.RawMessage, error) {
	return s.c.raw(ctx, http.MethodPost, "/services/"+pathID(serviceID)+"/assign", nil, assignment)
}

func (s Services) UpdateStatus(ctx context.Context, serviceID string, status any) (json.RawMessage, error) {
	return s.c.raw(ctx, http.MethodPut, "/services/"+pathID(serviceID)+"/status", nil, status)
}

func (s Services) History(ctx context.Context, params url.Values) (json.RawMessage, error) {
	return s.c.raw(ctx, http.MethodGet, "/services/history", params, nil)
}

// Bookings covers scheduled appointments with a mechanic.
type Bookings struct{ c *Client }

func (c *Client) Bookings() Bookings { return Bookings{c: c} }

func (b Bookings) Create(ctx context.Context, booking any) (json.RawMessage, error) {
	return b.c.raw(ctx, http.MethodPost, "/bookings/create", nil, booking)
}

func (b Bookings) Get(ctx context.Context, bookingID string) (json.RawMessage, error) {
	return b.c.raw(ctx, http.MethodGet, "/bookings/"+pathID(bookingID), nil, nil)
}

// Cancel cancels a booking; reason may be nil.
func (b Bookings) Cancel(ctx context.Context, bookingID string, reason any) (json.RawMessage, error) {
	return b.c.raw(ctx, http.MethodPost, "/bookings/"+pathID(bookingID)+"/cancel", nil, reason)
}

func (b Bookings) Mine(ctx context.Context, params url.Values) (json.RawMessage, error) {
	return b.c.raw(ctx, http.MethodGet, "/bookings/my-bookings", params, nil)
}

type Notifications struct{ c *Client }

func (c *Client) Notifications() Notifications { return Notifications{c: c} }

func (n Notifications) Send(ctx context.Context, notification any) (json.RawMessage, error) {
	return n.c.raw(ctx, http.MethodPost, "/notifications/send", nil, notification)
}

func (n Notifications) Mine(ctx context.Context, params url.Values) (json.RawMessage, error) {
	return n.c.raw(ctx, http.MethodGet, "/notifications/my-notifications", params, nil)
}

func (n Notifications) MarkRead(ctx context.Context, notificationID string) (json.RawMessage, error) {
	return n.c.raw(ctx, http.MethodPost, "/notifications/mark-read/"+pathID(notificationID), nil, nil)
}

func (n Notifications) MarkAllRead(ctx context.Context) (json.RawMessage, error) {
	return n.c.raw(ctx, http.MethodPost, "/notifications/mark-all-read", nil, nil)
}

type Payments struct{ c *Client }

func (c *Client) Payments() Payments { return Payments{c: c} }

func (p Payments) Create(ctx context.Context, payment any) (json.RawMessage, error) {
	return p.c.raw(ctx, http.MethodPost, "/payments/create", nil, payment)
}

func (p Payments) Get(ctx context.Context, paymentID string) (json.RawMessage, error) {
	return p.c.raw(ctx, http.MethodGet, "/payments/"+pathID(paymentID), nil, nil)
}

func (p Payments) UpdateStatus(ctx context.Context, paymentID string, status any) (json.RawMessage, error) {
	return p.c.raw(ctx, http.MethodPut, "/payments/"+pathID(paymentID)+"/status", nil, status)
}

func (p Payments) ByService(ctx context.Context, serviceID string) (json.RawMessage, error) {
	return p.c.raw(ctx, http.MethodGet, "/payments/service/"+pathID(serviceID), nil, nil)
}

// Admin covers the operator dashboard. The remote service rejects non-admin tokens.
type Admin struct{ c *Client }

func (c *Client) Admin() Admin { return Admin{c: c} }

func (a Admin) Dashboard(ctx context.Context) (json.RawMessage, error) {
	return a.c.raw(ctx, http.MethodGet, "/admin/dashboard", nil, nil)
}

func (a Admin) Users(ctx context.Context, params url.Values) (json.RawMessage, error) {
	return a.c.raw(ctx, http.MethodGet, "/admin/users", params, nil)
}

func (a Admin) ToggleUserActive(ctx context.Context, userID string) (json.RawMessage, error) {
	return a.c.raw(ctx, http.MethodPost, "/admin/users/"+pathID(userID)+"/toggle-active", nil, nil)
}

func (a Admin) Services(ctx context.Context, params url.Values) (json.RawMessage, error) {
	return a.c.raw(ctx, http.MethodGet, "/admin/services", params, nil)
}
