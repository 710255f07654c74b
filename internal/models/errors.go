package models

import "errors"

// Domain error sentinels. The postgres layer translates driver faults into
// these; the RPC layer maps them onto envelope codes with errors.Is.
var (
	ErrNotFound           = errors.New("not found")
	ErrConflict           = errors.New("conflict")
	ErrInvalidCredentials = errors.New("invalid email or password")
)
