// Package repository implements the persistence adapter over the MongoDB
// credential store. Sentinel errors defined here let higher layers map
// failure scenarios to HTTP responses without inspecting driver errors.
package repository

import "errors"

// ErrEmailExists is returned when an insert collides with the unique email
// index. Handlers translate this into an HTTP 400 response.
var ErrEmailExists = errors.New("email already exists")

// ErrBadID is returned when a caller-supplied user id is not a valid
// object id. It maps to the same response as an unknown user so malformed
// ids cannot be used to probe the id space.
var ErrBadID = errors.New("malformed user id")
