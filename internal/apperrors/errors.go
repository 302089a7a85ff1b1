package apperrors

import "errors"

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrForbidden indicates that the actor is not allowed to perform the action.
var ErrForbidden = errors.New("forbidden")

// ErrInvalidTransition indicates a request status change not present in the transition table.
var ErrInvalidTransition = errors.New("invalid status transition")

// ErrAlreadyAssigned indicates that a transporter is already assigned to the request.
var ErrAlreadyAssigned = errors.New("transporter already assigned")

// ErrAlreadyTerminal indicates that the request is in a terminal status (DELIVERED or CANCELLED).
var ErrAlreadyTerminal = errors.New("request already terminal")

// ErrCannotCancelInProgress indicates an attempt to cancel a request that is IN_PROGRESS.
var ErrCannotCancelInProgress = errors.New("cannot cancel a request in progress")

// ErrInsufficientFunds indicates that a wallet balance is lower than the requested debit.
var ErrInsufficientFunds = errors.New("insufficient funds")

// ErrStoreUnavailable indicates a transient storage failure; the operation may be retried by the caller.
var ErrStoreUnavailable = errors.New("store unavailable")
