package sessions

// Keys under which the session record is persisted. Each is read and written on its own.
const (
	TokenKey = "token"
	UserKey  = "user"
)

// Storage is the durable key/value port the Store persists through.
type Storage interface {
	// Get returns the value stored under key; found is false when nothing is stored.
	Get(key string) (value string, found bool, err error)

	// Set stores value under key, replacing any previous value.
	Set(key, value string) error

	// Clear removes key. Clearing a missing key is not an error.
	Clear(key string) error
}
