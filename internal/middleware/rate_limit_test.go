package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	qt "github.com/frankban/quicktest"

	"github.com/kanhadewangan/trpc-blog/internal/middleware"
)

func TestRateLimitAllowsBurstThenRejects(t *testing.T) {
	c := qt.New(t)
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) })
	h := middleware.RateLimit(2)(next)

	statuses := []int{}
	for i := 0; i < 3; i++ {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		statuses = append(statuses, rec.Code)
	}
	c.Assert(statuses[0], qt.Equals, http.StatusOK)
	c.Assert(statuses[1], qt.Equals, http.StatusOK)
	c.Assert(statuses[2], qt.Equals, http.StatusTooManyRequests)
}

func TestRateLimitDisabled(t *testing.T) {
	c := qt.New(t)
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) })
	h := middleware.RateLimit(0)(next)

	for i := 0; i < 10; i++ {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		c.Assert(rec.Code, qt.Equals, http.StatusOK)
	}
}

func TestRequestIDHeaderAndContext(t *testing.T) {
	c := qt.New(t)
	var fromCtx string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fromCtx = middleware.RequestIDFrom(r.Context())
	})
	rec := httptest.NewRecorder()
	middleware.RequestID(next).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	c.Assert(fromCtx, qt.Not(qt.Equals), "")
	c.Assert(rec.Header().Get("X-Request-Id"), qt.Equals, fromCtx)
}

func TestRecoverTurnsPanicInto500(t *testing.T) {
	c := qt.New(t)
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { panic("boom") })
	rec := httptest.NewRecorder()
	middleware.Recover(next).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	c.Assert(rec.Code, qt.Equals, http.StatusInternalServerError)
}
