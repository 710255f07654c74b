// Package rpc implements the procedure dispatcher: a registry of named
// queries and mutations, each with a declared input schema and a typed
// handler, returning a uniform ok/error envelope. Dispatch is synchronous
// and at-most-once; there are no retries.
package rpc

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/kanhadewangan/trpc-blog/internal/api/validate"
	"github.com/kanhadewangan/trpc-blog/internal/metrics"
)

type Kind string

const (
	KindQuery    Kind = "query"    // side-effect-free read
	KindMutation Kind = "mutation" // state-changing write
)

type handlerFunc func(ctx context.Context, input json.RawMessage) (any, error)

type Procedure struct {
	Name    string
	Kind    Kind
	handler handlerFunc
}

// Result is the uniform dispatch envelope. Domain failures ride here with
// OK=false; the transport still answers 200 for anything that reached a
// handler.
type Result struct {
	OK   bool   `json:"ok"`
	Data any    `json:"data,omitempty"`
	Err  *Error `json:"error,omitempty"`
}

func ok(data any) Result { return Result{OK: true, Data: data} }

func Fail(err *Error) Result { return Result{OK: false, Err: err} }

// ErrUnknownProcedure is what Dispatch reports for an unregistered name.
func ErrUnknownProcedure(name string) *Error {
	return &Error{Code: CodeNotFound, Message: "unknown procedure: " + name}
}

type Registry struct {
	procs map[string]Procedure
}

func NewRegistry() *Registry {
	return &Registry{procs: map[string]Procedure{}}
}

// Register panics on a duplicate name; that is a wiring bug, not a runtime
// condition.
func (r *Registry) Register(p Procedure) {
	if _, dup := r.procs[p.Name]; dup {
		panic("rpc: duplicate procedure " + p.Name)
	}
	r.procs[p.Name] = p
}

func (r *Registry) Lookup(name string) (Procedure, bool) {
	p, found := r.procs[name]
	return p, found
}

// Dispatch resolves the named procedure, runs its handler against the raw
// payload, and folds the outcome into an envelope. A panicking handler is
// recovered and reported as INTERNAL.
func (r *Registry) Dispatch(ctx context.Context, name string, input json.RawMessage) Result {
	p, found := r.procs[name]
	if !found {
		return Fail(ErrUnknownProcedure(name))
	}

	start := time.Now()
	out, err := r.invoke(ctx, p, input)
	metrics.RPCLatency.WithLabelValues(name).Observe(time.Since(start).Seconds())

	if err != nil {
		envErr := fromErr(name, err)
		metrics.RPCCalls.WithLabelValues(name, string(p.Kind), string(envErr.Code)).Inc()
		return Fail(envErr)
	}
	metrics.RPCCalls.WithLabelValues(name, string(p.Kind), "ok").Inc()
	return ok(out)
}

func (r *Registry) invoke(ctx context.Context, p Procedure, input json.RawMessage) (out any, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			slog.Error("handler panic", "procedure", p.Name, "err", rec)
			err = &Error{Code: CodeInternal, Message: "internal error"}
		}
	}()
	return p.handler(ctx, input)
}

// Query builds a side-effect-free procedure with a typed handler. The input
// type's struct tags are its validation schema.
func Query[I, O any](name string, fn func(ctx context.Context, in I) (O, error)) Procedure {
	return Procedure{Name: name, Kind: KindQuery, handler: typedHandler(fn)}
}

// Mutation builds a state-changing procedure with a typed handler.
func Mutation[I, O any](name string, fn func(ctx context.Context, in I) (O, error)) Procedure {
	return Procedure{Name: name, Kind: KindMutation, handler: typedHandler(fn)}
}

var jsonNull = []byte("null")

func typedHandler[I, O any](fn func(ctx context.Context, in I) (O, error)) handlerFunc {
	return func(ctx context.Context, input json.RawMessage) (any, error) {
		var in I
		if len(input) > 0 && !bytes.Equal(input, jsonNull) {
			if err := json.Unmarshal(input, &in); err != nil {
				return nil, &Error{Code: CodeBadRequest, Message: fmt.Sprintf("malformed input: %v", err)}
			}
		}
		if errs := validate.Struct(&in); errs != nil {
			return nil, &Error{Code: CodeBadRequest, Message: "invalid input", Fields: errs}
		}
		return fn(ctx, in)
	}
}
