package auth

import "errors"

var (
	// ErrInvalidInput reports malformed input to the hashing primitives,
	// such as an empty password or salt.
	ErrInvalidInput = errors.New("auth: invalid input")

	// ErrInvalidCredentials reports a failed credential check where the
	// caller supplied an explicit old password (password change). Plain
	// login failures are signalled by a nil user instead, so unknown
	// usernames and wrong passwords are indistinguishable.
	ErrInvalidCredentials = errors.New("auth: invalid credentials")

	// ErrSessionCreation reports a failure to persist a new session. The
	// request that hit it must fail; it is not silently retryable.
	ErrSessionCreation = errors.New("auth: session creation failed")
)
