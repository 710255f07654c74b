package rpc

import (
	"errors"
	"log/slog"

	"github.com/kanhadewangan/trpc-blog/internal/api/validate"
	"github.com/kanhadewangan/trpc-blog/internal/models"
)

type Code string

const (
	CodeBadRequest         Code = "BAD_REQUEST"
	CodeNotFound           Code = "NOT_FOUND"
	CodeConflict           Code = "CONFLICT"
	CodeInvalidCredentials Code = "INVALID_CREDENTIALS"
	CodeInternal           Code = "INTERNAL"
)

// Error is the failure half of the dispatch envelope. Handlers may return
// one directly, or return a domain sentinel and let fromErr map it.
type Error struct {
	Code    Code          `json:"code"`
	Message string        `json:"message"`
	Fields  validate.Errs `json:"fields,omitempty"`
}

func (e *Error) Error() string { return string(e.Code) + ": " + e.Message }

// fromErr translates a handler error into an envelope error. Domain
// sentinels keep their message; anything unrecognized is an unexpected
// storage fault, logged here and reported as a generic INTERNAL.
func fromErr(procedure string, err error) *Error {
	var rpcErr *Error
	if errors.As(err, &rpcErr) {
		return rpcErr
	}
	switch {
	case errors.Is(err, models.ErrNotFound):
		return &Error{Code: CodeNotFound, Message: err.Error()}
	case errors.Is(err, models.ErrConflict):
		return &Error{Code: CodeConflict, Message: err.Error()}
	case errors.Is(err, models.ErrInvalidCredentials):
		return &Error{Code: CodeInvalidCredentials, Message: err.Error()}
	}
	slog.Error("handler fault", "procedure", procedure, "err", err)
	return &Error{Code: CodeInternal, Message: "internal error"}
}
