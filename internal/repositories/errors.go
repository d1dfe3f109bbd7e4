package repositories

import "errors"

// Sentinel errors shared by the repositories. Handlers translate these into
// stable HTTP failure signals; anything else is treated as a storage fault.
var (
	ErrNotFound         = errors.New("record not found")
	ErrInvalidTarget    = errors.New("cannot target yourself")
	ErrDuplicatePending = errors.New("a pending connection request already exists between these users")
	ErrAlreadyConnected = errors.New("users are already connected")
	ErrAlreadyProcessed = errors.New("connection request has already been processed")
	ErrAlreadyAssociate = errors.New("user is already an associate")
	ErrNotConnected     = errors.New("users are not connected")
	ErrEmptyContent     = errors.New("message content must not be empty")
)
