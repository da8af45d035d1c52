package auth

import "errors"

var (
	MissingTokenErr = errors.New("auth response has no token")
	MissingUserErr  = errors.New("auth response has no user")
)
