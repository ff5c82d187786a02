package service

import "errors"

// Error kinds surfaced by the services. Adapters return raw transport
// errors; the service layer wraps them into one of these so the boundary
// can map them to a status without knowing about AWS.
var (
	// ErrTodoNotFound: the referenced todo does not exist for that user.
	// Client-visible.
	ErrTodoNotFound = errors.New("todo not found")

	// ErrStoreUnavailable: a record-store call failed. Not retried here.
	ErrStoreUnavailable = errors.New("record store unavailable")

	// ErrBrokerUnavailable: a subscribe/unsubscribe/publish call failed.
	// Fatal for profile operations; swallowed for the creation
	// notification (see Todos.notifyCreated).
	ErrBrokerUnavailable = errors.New("notification broker unavailable")
)
