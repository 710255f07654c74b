package api

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/kanhadewangan/trpc-blog/internal/api/httpx"
	"github.com/kanhadewangan/trpc-blog/internal/rpc"
)

// rpcServer is the HTTP transport for the procedure registry. Queries travel
// as GET with the input JSON in the ?input= parameter; mutations as POST
// with the input as the body; batches as POST /rpc with an array of calls.
type rpcServer struct {
	reg *rpc.Registry
}

type batchCall struct {
	Procedure string          `json:"procedure"`
	Input     json.RawMessage `json:"input"`
}

func (s *rpcServer) handleQuery(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "procedure")
	p, found := s.reg.Lookup(name)
	if !found {
		httpx.WriteJSON(w, http.StatusNotFound, rpc.Fail(rpc.ErrUnknownProcedure(name)))
		return
	}
	if p.Kind != rpc.KindQuery {
		httpx.WriteError(w, http.StatusMethodNotAllowed, "wrong_method", "mutations must be POSTed", nil)
		return
	}
	s.respond(w, r, name, json.RawMessage(r.URL.Query().Get("input")))
}

func (s *rpcServer) handleMutation(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "procedure")
	p, found := s.reg.Lookup(name)
	if !found {
		httpx.WriteJSON(w, http.StatusNotFound, rpc.Fail(rpc.ErrUnknownProcedure(name)))
		return
	}
	if p.Kind != rpc.KindMutation {
		httpx.WriteError(w, http.StatusMethodNotAllowed, "wrong_method", "queries travel as GET", nil)
		return
	}
	body, err := io.ReadAll(r.Body)
	if err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "bad_request", "unreadable body", nil)
		return
	}
	s.respond(w, r, name, body)
}

// handleBatch dispatches each call independently; one failing item never
// affects its siblings, and the response preserves call order.
func (s *rpcServer) handleBatch(w http.ResponseWriter, r *http.Request) {
	var calls []batchCall
	if err := json.NewDecoder(r.Body).Decode(&calls); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "bad_request", "malformed batch envelope", nil)
		return
	}
	results := make([]rpc.Result, len(calls))
	for i, c := range calls {
		results[i] = s.reg.Dispatch(r.Context(), c.Procedure, c.Input)
	}
	httpx.WriteJSON(w, http.StatusOK, results)
}

func (s *rpcServer) respond(w http.ResponseWriter, r *http.Request, name string, input json.RawMessage) {
	res := s.reg.Dispatch(r.Context(), name, input)
	status := http.StatusOK
	// validation and malformed-input failures never reached a handler
	if !res.OK && res.Err.Code == rpc.CodeBadRequest {
		status = http.StatusBadRequest
	}
	httpx.WriteJSON(w, status, res)
}
