package gateway

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hay-kot/roster/internal/core/feed"
)

type fakeStore struct {
	hits   atomic.Int32
	routes map[string]func(w http.ResponseWriter, r *http.Request)
}

func newFakeStore(t *testing.T, routes map[string]func(w http.ResponseWriter, r *http.Request)) (*fakeStore, *Client) {
	t.Helper()
	fs := &fakeStore{routes: routes}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fs.hits.Add(1)
		key := r.URL.Path
		if r.URL.RawQuery != "" {
			key += "?" + r.URL.RawQuery
		}
		h, ok := fs.routes[key]
		if !ok {
			http.NotFound(w, r)
			return
		}
		h(w, r)
	}))
	t.Cleanup(srv.Close)

	client := New(Config{BaseURL: srv.URL + "/", RequestsPerSecond: 0}, zerolog.Nop())
	return fs, client
}

func jsonBody(body string) func(w http.ResponseWriter, r *http.Request) {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(body))
	}
}

func status(code int) func(w http.ResponseWriter, r *http.Request) {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(code)
	}
}

func TestNew_Defaults(t *testing.T) {
	c := New(Config{BaseURL: "http://example.test///"}, zerolog.Nop())
	assert.Equal(t, "http://example.test", c.BaseURL())
	assert.Equal(t, DefaultConfig().Timeout, c.http.Timeout)
	assert.Equal(t, "roster", c.cfg.UserAgent)

	c = New(Config{}, zerolog.Nop())
	assert.Equal(t, DefaultBaseURL, c.BaseURL())
}

func TestClient_ListEmployees(t *testing.T) {
	t.Run("decodes employees", func(t *testing.T) {
		_, c := newFakeStore(t, map[string]func(http.ResponseWriter, *http.Request){
			"/users": jsonBody(`[{"id":1,"name":"Ann","company":{"name":"Co","catchPhrase":"CP"}}]`),
		})

		got, err := c.ListEmployees(context.Background())
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "Ann", got[0].Name)
		assert.Equal(t, "CP", got[0].Company.CatchPhrase)
	})

	t.Run("bad json is a fetch error", func(t *testing.T) {
		_, c := newFakeStore(t, map[string]func(http.ResponseWriter, *http.Request){
			"/users": jsonBody(`{not json`),
		})

		got, err := c.ListEmployees(context.Background())
		assert.Nil(t, got)
		assert.True(t, IsKind(err, KindEmployees))
	})

	t.Run("server error is a fetch error", func(t *testing.T) {
		_, c := newFakeStore(t, map[string]func(http.ResponseWriter, *http.Request){
			"/users": status(http.StatusInternalServerError),
		})

		_, err := c.ListEmployees(context.Background())
		var fe *FetchError
		require.ErrorAs(t, err, &fe)
		assert.Equal(t, KindEmployees, fe.Kind)

		var se *StatusError
		require.ErrorAs(t, err, &se)
		assert.Equal(t, http.StatusInternalServerError, se.Code)
	})
}

func TestClient_ListPosts(t *testing.T) {
	t.Run("decodes posts for the employee", func(t *testing.T) {
		_, c := newFakeStore(t, map[string]func(http.ResponseWriter, *http.Request){
			"/posts?userId=1": jsonBody(`[{"id":10,"userId":1,"title":"T","body":"B"}]`),
		})

		res, err := c.ListPosts(context.Background(), 1)
		require.NoError(t, err)
		assert.False(t, res.Degraded)
		assert.Equal(t, []feed.Post{{ID: 10, UserID: 1, Title: "T", Body: "B"}}, res.Posts)
	})

	t.Run("empty list is loaded, not degraded", func(t *testing.T) {
		_, c := newFakeStore(t, map[string]func(http.ResponseWriter, *http.Request){
			"/posts?userId=2": jsonBody(`[]`),
		})

		res, err := c.ListPosts(context.Background(), 2)
		require.NoError(t, err)
		assert.False(t, res.Degraded)
		assert.NotNil(t, res.Posts)
		assert.Empty(t, res.Posts)
	})

	t.Run("missing id degrades without a request", func(t *testing.T) {
		fs, c := newFakeStore(t, nil)

		res, err := c.ListPosts(context.Background(), 0)
		require.NoError(t, err)
		assert.True(t, res.Degraded)
		assert.ErrorIs(t, res.Reason, ErrNoEmployeeID)
		assert.Equal(t, int32(0), fs.hits.Load())
	})

	t.Run("non-success status degrades", func(t *testing.T) {
		_, c := newFakeStore(t, map[string]func(http.ResponseWriter, *http.Request){
			"/posts?userId=3": status(http.StatusServiceUnavailable),
		})

		res, err := c.ListPosts(context.Background(), 3)
		require.NoError(t, err)
		assert.True(t, res.Degraded)

		var se *StatusError
		require.ErrorAs(t, res.Reason, &se)
		assert.Equal(t, http.StatusServiceUnavailable, se.Code)
	})

	t.Run("decode failure is a fetch error", func(t *testing.T) {
		_, c := newFakeStore(t, map[string]func(http.ResponseWriter, *http.Request){
			"/posts?userId=4": jsonBody(`{"oops":true}`),
		})

		_, err := c.ListPosts(context.Background(), 4)
		var fe *FetchError
		require.ErrorAs(t, err, &fe)
		assert.Equal(t, KindPosts, fe.Kind)
		assert.Equal(t, 4, fe.ID)
	})
}

func TestClient_GetEmployee(t *testing.T) {
	_, c := newFakeStore(t, map[string]func(http.ResponseWriter, *http.Request){
		"/users/1": jsonBody(`{"id":1,"name":"Ann","company":{"name":"Co","catchPhrase":"CP"}}`),
		"/users/2": status(http.StatusNotFound),
	})

	got, err := c.GetEmployee(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "Author: Ann with Co", got.Byline())

	_, err = c.GetEmployee(context.Background(), 2)
	assert.True(t, IsKind(err, KindEmployee))
	assert.Contains(t, err.Error(), "fetch employee 2")
}

func TestClient_ListComments(t *testing.T) {
	_, c := newFakeStore(t, map[string]func(http.ResponseWriter, *http.Request){
		"/posts/10/comments": jsonBody(`[{"postId":10,"id":1,"name":"n","email":"e@x","body":"b"}]`),
		"/posts/11/comments": jsonBody(`nope`),
	})

	got, err := c.ListComments(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "From: e@x", got[0].Signature())

	_, err = c.ListComments(context.Background(), 11)
	assert.True(t, IsKind(err, KindComments))
}

func TestClient_TransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()

	c := New(Config{BaseURL: srv.URL}, zerolog.Nop())

	_, err := c.ListEmployees(context.Background())
	assert.True(t, IsKind(err, KindEmployees))

	_, err = c.ListPosts(context.Background(), 1)
	assert.True(t, IsKind(err, KindPosts), "transport failure is not a degraded result")
}

func TestClient_SendsHeaders(t *testing.T) {
	var ua, accept string
	_, c := newFakeStore(t, map[string]func(http.ResponseWriter, *http.Request){
		"/users": func(w http.ResponseWriter, r *http.Request) {
			ua = r.Header.Get("User-Agent")
			accept = r.Header.Get("Accept")
			_, _ = w.Write([]byte(`[]`))
		},
	})

	_, err := c.ListEmployees(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "roster", ua)
	assert.Equal(t, "application/json", accept)
}

func TestClient_CanceledContext(t *testing.T) {
	_, c := newFakeStore(t, map[string]func(http.ResponseWriter, *http.Request){
		"/users/1": func(w http.ResponseWriter, r *http.Request) {
			<-r.Context().Done()
		},
	})

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := c.GetEmployee(ctx, 1)
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.DeadlineExceeded))
}
