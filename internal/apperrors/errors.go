package apperrors

import "errors"

// ErrNotFound indicates that a requested resource (order, token, approver) could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrAlreadyUsed indicates that a single-use token has already been consumed.
var ErrAlreadyUsed = errors.New("token already used")

// ErrExpired indicates that a token is past its expiry. Kept distinct from
// ErrAlreadyUsed because the caller-facing message differs ("link is stale"
// vs "already actioned by someone else").
var ErrExpired = errors.New("token expired")

// ErrInvalidTransition indicates a state change the lifecycle does not permit,
// e.g. approving an order that is already fully approved.
var ErrInvalidTransition = errors.New("invalid state transition")

// ErrIntegrityViolation indicates persisted data that breaks an invariant
// (approval counter above the required level). Surfaced, never silently corrected.
var ErrIntegrityViolation = errors.New("data integrity violation")

// ErrTransientStorage indicates a timeout or connection loss; the transaction
// was rolled back fully and the operation is safe to retry.
var ErrTransientStorage = errors.New("transient storage failure")
