package domain

import "errors"

// Validation failures (HTTP 400).
var (
	ErrMissingFields = errors.New("missing required fields")
	ErrImageRequired = errors.New("profile image is required")
)

// Uniqueness conflicts (HTTP 400). The three checks run sequentially and
// short-circuit, so a request colliding on several fields reports only the
// first one.
var (
	ErrEmailTaken   = errors.New("email already exists")
	ErrAadhaarTaken = errors.New("adhar number already exists")
	ErrPANTaken     = errors.New("pan number already exists")
)

// ErrInvalidRole rejects a role outside the two supported values.
var ErrInvalidRole = errors.New("role must be job-seeker or recruiter")

// ErrInvalidCredentials covers both unknown email and wrong password.
// The message is deliberately the same for both cases to prevent user
// enumeration.
var ErrInvalidCredentials = errors.New("incorrect email or password")

// ErrRoleMismatch means the credentials checked out but the account does not
// hold the requested role (HTTP 403).
var ErrRoleMismatch = errors.New("you don't have the necessary role")

var ErrUserNotFound = errors.New("user not found")

// ErrUserExists surfaces a storage-level duplicate key. It is the safety net
// behind the application-level uniqueness checks, which are not race-free on
// their own.
var ErrUserExists = errors.New("user already exists")

// ErrUploadFailed wraps object storage failures. Uploads are never retried;
// the enclosing operation aborts without persisting anything.
var ErrUploadFailed = errors.New("asset upload failed")
