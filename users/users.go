package users

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// RoleType represents the marketplace role a user signed up with
type RoleType string

const (
	RoleDriver   RoleType = "driver"   // Requests roadside assistance
	RoleMechanic RoleType = "mechanic" // Accepts and fulfils service requests
	RoleAdmin    RoleType = "admin"    // Operates the platform
)

// Roles lists every role the client knows how to route.
var Roles = []RoleType{RoleDriver, RoleMechanic, RoleAdmin}

// Valid reports whether r is one of the known roles.
func (r RoleType) Valid() bool {
	for _, known := range Roles {
		if r == known {
			return true
		}
	}
	return false
}

func (r RoleType) String() string {
	return string(r)
}

// ParseRole converts a raw role string, as found on the wire or in storage, into a RoleType.
func ParseRole(raw string) (RoleType, error) {
	role := RoleType(strings.ToLower(strings.TrimSpace(raw)))
	if !role.Valid() {
		return "", fmt.Errorf("unrecognised role %q", raw)
	}
	return role, nil
}

// User is the identity held by a session. It does not change while the session lives;
// a role change needs a new session.
type User struct {
	ID    string   `json:"id"`    // Opaque identifier issued by the remote service
	Name  string   `json:"name"`  // Display name
	Email string   `json:"email"` // Login email
	Role  RoleType `json:"role"`  // Marketplace role
	Phone string   `json:"phone"` // Contact number
}

// Validate checks the fields a session cannot work without.
func (u User) Validate() error {
	if u.ID == "" {
		return fmt.Errorf("user id is required")
	}
	if !u.Role.Valid() {
		return fmt.Errorf("unrecognised role %q", u.Role)
	}
	return nil
}

// wireUser mirrors the user object returned by the remote service. The service sends
// the identifier as a number and the role as user_type; older payloads use role.
type wireUser struct {
	ID       json.RawMessage `json:"id"`
	Name     string          `json:"name"`
	Email    string          `json:"email"`
	Phone    string          `json:"phone"`
	UserType string          `json:"user_type"`
	Role     string          `json:"role"`
}

// UnmarshalJSON accepts both the persisted form and the remote service form.
func (u *User) UnmarshalJSON(data []byte) error {
	var w wireUser
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}

	id, err := parseID(w.ID)
	if err != nil {
		return err
	}

	rawRole := w.Role
	if rawRole == "" {
		rawRole = w.UserType
	}

	*u = User{
		ID:    id,
		Name:  w.Name,
		Email: w.Email,
		Role:  RoleType(strings.ToLower(strings.TrimSpace(rawRole))),
		Phone: w.Phone,
	}
	return nil
}

func parseID(raw json.RawMessage) (string, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return "", nil
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s, nil
	}

	var n json.Number
	if err := json.Unmarshal(raw, &n); err != nil {
		return "", fmt.Errorf("user id: %w", err)
	}
	if _, err := strconv.ParseInt(n.String(), 10, 64); err != nil {
		return "", fmt.Errorf("user id %s is not an integer", n)
	}
	return n.String(), nil
}
