package models

import "errors"

var (
	ErrUserNotFound  = errors.New("models: user not found")
	ErrNoIdentifier  = errors.New("models: user has no phone identifier")
	ErrInvalidPIN    = errors.New("models: invalid safety pin")
	ErrNoRecord      = errors.New("models: no matching record found")
	ErrCycleInFlight = errors.New("models: alert cycle already in flight")
	ErrNotArming     = errors.New("models: no arming countdown in progress")
	ErrNoContacts    = errors.New("models: no valid emergency contacts")
)
