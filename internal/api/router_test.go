package api_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	qt "github.com/frankban/quicktest"

	"github.com/kanhadewangan/trpc-blog/internal/api"
	"github.com/kanhadewangan/trpc-blog/internal/config"
	"github.com/kanhadewangan/trpc-blog/internal/models"
	"github.com/kanhadewangan/trpc-blog/internal/repository/memory"
	"github.com/kanhadewangan/trpc-blog/internal/services"
)

type envError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Fields  []struct {
		Field      string `json:"field"`
		Constraint string `json:"constraint"`
	} `json:"fields"`
}

type envelope struct {
	OK   bool            `json:"ok"`
	Data json.RawMessage `json:"data"`
	Err  *envError       `json:"error"`
}

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	repos := memory.NewStore().Repositories()
	us := services.NewUserService(repos.Users, nil, nil)
	ps := services.NewPostService(repos.Posts, repos.Users, repos.Categories, nil, nil)
	cs := services.NewCategoryService(repos.Categories, nil, nil)
	reg := api.NewRegistry(us, ps, cs)
	ts := httptest.NewServer(api.NewRouter(config.Config{Env: "test"}, reg))
	t.Cleanup(ts.Close)
	return ts
}

func mutate(t *testing.T, ts *httptest.Server, procedure string, input any) (int, envelope) {
	t.Helper()
	body, err := json.Marshal(input)
	if err != nil {
		t.Fatal(err)
	}
	resp, err := http.Post(ts.URL+"/rpc/"+procedure, "application/json", bytes.NewReader(body))
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		t.Fatal(err)
	}
	return resp.StatusCode, env
}

func query(t *testing.T, ts *httptest.Server, procedure string, input any) (int, envelope) {
	t.Helper()
	u := ts.URL + "/rpc/" + procedure
	if input != nil {
		raw, err := json.Marshal(input)
		if err != nil {
			t.Fatal(err)
		}
		u += "?input=" + url.QueryEscape(string(raw))
	}
	resp, err := http.Get(u)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		t.Fatal(err)
	}
	return resp.StatusCode, env
}

func decodeData[T any](t *testing.T, env envelope) T {
	t.Helper()
	var out T
	if err := json.Unmarshal(env.Data, &out); err != nil {
		t.Fatal(err)
	}
	return out
}

func TestAccountPostScenario(t *testing.T) {
	c := qt.New(t)
	ts := newTestServer(t)

	status, env := mutate(t, ts, "createAccount", map[string]any{
		"name": "Ann", "email": "ann@x.com", "password": "secret1",
	})
	c.Assert(status, qt.Equals, http.StatusOK)
	c.Assert(env.OK, qt.IsTrue)
	created := decodeData[struct {
		ID int64 `json:"id"`
	}](t, env)
	c.Assert(created.ID > 0, qt.IsTrue)

	status, env = mutate(t, ts, "createPost", map[string]any{
		"title": "My First Post", "content": strings.Repeat("x", 20), "authorId": created.ID,
	})
	c.Assert(status, qt.Equals, http.StatusOK)
	c.Assert(env.OK, qt.IsTrue)
	post := decodeData[models.Post](t, env)
	c.Assert(post.Slug, qt.Equals, "my-first-post")
	c.Assert(post.IsPublished, qt.IsFalse)

	status, env = query(t, ts, "listPostsByAuthor", map[string]any{"authorId": created.ID})
	c.Assert(status, qt.Equals, http.StatusOK)
	posts := decodeData[[]models.Post](t, env)
	c.Assert(posts, qt.HasLen, 1)
	c.Assert(posts[0].ID, qt.Equals, post.ID)
}

func TestDuplicateEmailConflictRidesTheEnvelope(t *testing.T) {
	c := qt.New(t)
	ts := newTestServer(t)

	input := map[string]any{"name": "Ann", "email": "ann@x.com", "password": "secret1"}
	_, env := mutate(t, ts, "createAccount", input)
	c.Assert(env.OK, qt.IsTrue)

	// domain failure, transport success
	status, env := mutate(t, ts, "createAccount", input)
	c.Assert(status, qt.Equals, http.StatusOK)
	c.Assert(env.OK, qt.IsFalse)
	c.Assert(env.Err.Code, qt.Equals, "CONFLICT")
}

func TestAuthenticateOverTransport(t *testing.T) {
	c := qt.New(t)
	ts := newTestServer(t)

	_, env := mutate(t, ts, "createAccount", map[string]any{
		"name": "Ann", "email": "ann@x.com", "password": "secret1",
	})
	c.Assert(env.OK, qt.IsTrue)

	status, env := mutate(t, ts, "authenticate", map[string]any{"email": "ann@x.com", "password": "secret1"})
	c.Assert(status, qt.Equals, http.StatusOK)
	c.Assert(env.OK, qt.IsTrue)
	res := decodeData[models.AuthResult](t, env)
	c.Assert(res, qt.Equals, models.AuthResult{Success: true, Email: "ann@x.com"})

	_, env = mutate(t, ts, "authenticate", map[string]any{"email": "ann@x.com", "password": "wrongpass"})
	c.Assert(env.OK, qt.IsTrue)
	res = decodeData[models.AuthResult](t, env)
	c.Assert(res, qt.Equals, models.AuthResult{Success: false, Error: "Invalid email or password"})
}

func TestValidationFailureIs400WithFieldDetail(t *testing.T) {
	c := qt.New(t)
	ts := newTestServer(t)

	status, env := mutate(t, ts, "createPost", map[string]any{
		"title": "Hey", "content": "too short", "authorId": 1,
	})
	c.Assert(status, qt.Equals, http.StatusBadRequest)
	c.Assert(env.OK, qt.IsFalse)
	c.Assert(env.Err.Code, qt.Equals, "BAD_REQUEST")
	c.Assert(env.Err.Fields, qt.HasLen, 2)
	c.Assert(env.Err.Fields[0].Field, qt.Equals, "title")
	c.Assert(env.Err.Fields[1].Field, qt.Equals, "content")
}

func TestUnknownProcedureIs404(t *testing.T) {
	c := qt.New(t)
	ts := newTestServer(t)

	status, env := mutate(t, ts, "nope", map[string]any{})
	c.Assert(status, qt.Equals, http.StatusNotFound)
	c.Assert(env.OK, qt.IsFalse)
	c.Assert(env.Err.Code, qt.Equals, "NOT_FOUND")
}

func TestQueryViaPostIs405(t *testing.T) {
	c := qt.New(t)
	ts := newTestServer(t)

	resp, err := http.Post(ts.URL+"/rpc/listPosts", "application/json", bytes.NewReader([]byte(`{}`)))
	c.Assert(err, qt.IsNil)
	defer resp.Body.Close()
	c.Assert(resp.StatusCode, qt.Equals, http.StatusMethodNotAllowed)

	resp, err = http.Get(ts.URL + "/rpc/createPost")
	c.Assert(err, qt.IsNil)
	defer resp.Body.Close()
	c.Assert(resp.StatusCode, qt.Equals, http.StatusMethodNotAllowed)
}

func TestDeleteMissingPostIsDomainNotFound(t *testing.T) {
	c := qt.New(t)
	ts := newTestServer(t)

	status, env := mutate(t, ts, "deletePost", map[string]any{"id": 123})
	c.Assert(status, qt.Equals, http.StatusOK)
	c.Assert(env.OK, qt.IsFalse)
	c.Assert(env.Err.Code, qt.Equals, "NOT_FOUND")
}

func TestBatchDispatchesIndependently(t *testing.T) {
	c := qt.New(t)
	ts := newTestServer(t)

	batch := []map[string]any{
		{"procedure": "createAccount", "input": map[string]any{"name": "Ann", "email": "ann@x.com", "password": "secret1"}},
		{"procedure": "nope", "input": map[string]any{}},
		{"procedure": "listCategories"},
	}
	body, err := json.Marshal(batch)
	c.Assert(err, qt.IsNil)

	resp, err := http.Post(ts.URL+"/rpc", "application/json", bytes.NewReader(body))
	c.Assert(err, qt.IsNil)
	defer resp.Body.Close()
	c.Assert(resp.StatusCode, qt.Equals, http.StatusOK)

	var results []envelope
	c.Assert(json.NewDecoder(resp.Body).Decode(&results), qt.IsNil)
	c.Assert(results, qt.HasLen, 3)
	c.Assert(results[0].OK, qt.IsTrue)
	c.Assert(results[1].OK, qt.IsFalse)
	c.Assert(results[1].Err.Code, qt.Equals, "NOT_FOUND")
	c.Assert(results[2].OK, qt.IsTrue)
}

func TestMalformedBatchEnvelopeIs400(t *testing.T) {
	c := qt.New(t)
	ts := newTestServer(t)

	resp, err := http.Post(ts.URL+"/rpc", "application/json", bytes.NewReader([]byte(`{"not":"an array"`)))
	c.Assert(err, qt.IsNil)
	defer resp.Body.Close()
	c.Assert(resp.StatusCode, qt.Equals, http.StatusBadRequest)
}

func TestCategoriesAndTaggingOverTransport(t *testing.T) {
	c := qt.New(t)
	ts := newTestServer(t)

	_, env := mutate(t, ts, "createAccount", map[string]any{"name": "Ann", "email": "ann@x.com", "password": "secret1"})
	author := decodeData[struct {
		ID int64 `json:"id"`
	}](t, env)
	_, env = mutate(t, ts, "createPost", map[string]any{"title": "Tagged Post", "content": strings.Repeat("x", 20), "authorId": author.ID})
	post := decodeData[models.Post](t, env)

	status, env := mutate(t, ts, "createCategory", map[string]any{"name": "Go", "slug": "go"})
	c.Assert(status, qt.Equals, http.StatusOK)
	c.Assert(env.OK, qt.IsTrue)
	cat := decodeData[models.Category](t, env)
	c.Assert(cat.CreatedAt.IsZero(), qt.IsFalse)

	_, env = mutate(t, ts, "tagPost", map[string]any{"postId": post.ID, "categoryId": cat.ID})
	c.Assert(env.OK, qt.IsTrue)

	_, env = query(t, ts, "listPostsByCategory", map[string]any{"categoryId": cat.ID})
	posts := decodeData[[]models.Post](t, env)
	c.Assert(posts, qt.HasLen, 1)
	c.Assert(posts[0].ID, qt.Equals, post.ID)

	_, env = query(t, ts, "listCategories", nil)
	cats := decodeData[[]models.Category](t, env)
	c.Assert(cats, qt.HasLen, 1)
}

func TestHealth(t *testing.T) {
	c := qt.New(t)
	ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/health")
	c.Assert(err, qt.IsNil)
	defer resp.Body.Close()
	c.Assert(resp.StatusCode, qt.Equals, http.StatusOK)
}
