package domain

import "errors"

// Sentinel errors shared by the store bindings, services and controllers.
var (
	ErrNotFound             = errors.New("not found")
	ErrDuplicate            = errors.New("duplicate document")
	ErrUnsupportedFilter    = errors.New("unsupported filter operator")
	ErrMalformedDocument    = errors.New("malformed document")
	ErrStore                = errors.New("store error")
	ErrNoActiveEvent        = errors.New("no active event")
	ErrAmbiguousActiveEvent = errors.New("more than one active event")
	ErrInvalidTicket        = errors.New("invalid ticket")
)
