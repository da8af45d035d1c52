package auth

import (
	"encoding/json"

	"github.com/fixoncall/fixoncall-client/users"
)

// Location is a point on the map as the remote service stores it.
type Location struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Address   string  `json:"address,omitempty"`
}

// VehicleInfo describes a driver's vehicle.
type VehicleInfo struct {
	Make         string `json:"make,omitempty"`
	Model        string `json:"model,omitempty"`
	Year         int    `json:"year,omitempty"`
	Registration string `json:"registration,omitempty"`
	Color        string `json:"color,omitempty"`
}

type EmergencyContact struct {
	Name         string `json:"name"`
	Phone        string `json:"phone"`
	Relationship string `json:"relationship,omitempty"`
}

// RegisterRequest is the body of POST /auth/register. Required fields are Name,
// Email, Password, Phone and Role; checking them is the caller's job. The remaining
// fields only apply to the matching role and are dropped when empty.
type RegisterRequest struct {
	Name     string         `json:"name"`
	Email    string         `json:"email"`
	Password string         `json:"password"`
	Phone    string         `json:"phone"`
	Role     users.RoleType `json:"user_type"`

	// Driver
	VehicleInfo       *VehicleInfo       `json:"vehicle_info,omitempty"`
	EmergencyContacts []EmergencyContact `json:"emergency_contacts,omitempty"`
	InsuranceDetails  map[string]any     `json:"insurance_details,omitempty"`

	// Mechanic
	Specialization  []string  `json:"specialization,omitempty"`
	ExperienceYears int       `json:"experience_years,omitempty"`
	Certifications  []string  `json:"certifications,omitempty"`
	ServiceRadiusKm int       `json:"service_radius_km,omitempty"`
	Location        *Location `json:"location,omitempty"`
	ToolsAvailable  []string  `json:"tools_available,omitempty"`
	HourlyRate      float64   `json:"hourly_rate,omitempty"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// ProfileUpdate is the body of PUT /auth/profile. Nil fields are left unchanged.
type ProfileUpdate struct {
	Name            *string      `json:"name,omitempty"`
	Phone           *string      `json:"phone,omitempty"`
	VehicleInfo     *VehicleInfo `json:"vehicle_info,omitempty"`
	Location        *Location    `json:"location,omitempty"`
	Specialization  []string     `json:"specialization,omitempty"`
	ExperienceYears *int         `json:"experience_years,omitempty"`
	ServiceRadiusKm *int         `json:"service_radius_km,omitempty"`
}

// AuthResponse is what register and login return.
type AuthResponse struct {
	Success bool       `json:"success"`
	Message string     `json:"message"`
	User    users.User `json:"user"`
	Token   string     `json:"token"`
}

// Profile is the current user as reported by the remote service. Raw keeps the full
// user object, including role-specific fields the session does not track.
type Profile struct {
	users.User
	Raw json.RawMessage
}

type profileResponse struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	User    json.RawMessage `json:"user"`
}
