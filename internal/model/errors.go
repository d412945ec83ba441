package model

import "errors"

var (
	// ErrNotFound means the requested id, name or token has no owner.
	ErrNotFound = errors.New("not found")
	// ErrNameConflict means the forestry name is already taken.
	ErrNameConflict = errors.New("forestry name already exists")
	// ErrMalformedGeometry means a GeoJSON payload is structurally invalid or a
	// ring is under-specified.
	ErrMalformedGeometry = errors.New("malformed geometry")
	// ErrUserExists means the admin username or email is already taken.
	ErrUserExists = errors.New("user already exists")
	// ErrInvalidCredentials means the sign-in username or password is wrong.
	ErrInvalidCredentials = errors.New("invalid credentials")
)
