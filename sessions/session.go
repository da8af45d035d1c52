package sessions

import (
	"time"

	"github.com/fixoncall/fixoncall-client/users"
)

// Session is a point-in-time view of the client's authenticated identity.
// Authenticated is true exactly when both User and Token are set.
type Session struct {
	User          *users.User // Nil when signed out
	Token         string      // Bearer credential, empty when signed out
	Authenticated bool

	// ExpiresAt is read from the token's exp claim when the token is a JWT. It is
	// informational; the remote service decides when a token stops working.
	ExpiresAt time.Time
}

func (s Session) clone() Session {
	if s.User != nil {
		u := *s.User
		s.User = &u
	}
	return s
}
