package roster

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hay-kot/roster/internal/core/dom"
	"github.com/hay-kot/roster/internal/core/feed"
	"github.com/hay-kot/roster/internal/core/render"
	"github.com/hay-kot/roster/internal/core/toggle"
	"github.com/hay-kot/roster/internal/data/gateway"
)

// fakeGateway serves fixed data. A gate registered for a user id blocks
// ListPosts for that user until it is closed or the context ends.
type fakeGateway struct {
	employees []feed.Employee
	posts     map[int][]feed.Post
	comments  map[int][]feed.Comment
	errs      map[string]error

	mu      sync.Mutex
	gates   map[int]chan struct{}
	entered map[int]chan struct{}
	calls   []string
}

func newFakeGateway() *fakeGateway {
	return &fakeGateway{
		employees: []feed.Employee{
			{ID: 1, Name: "Ann", Company: feed.Company{Name: "Co", CatchPhrase: "CP"}},
			{ID: 2, Name: "Bob", Company: feed.Company{Name: "Inc", CatchPhrase: "Go"}},
		},
		posts: map[int][]feed.Post{
			1: {{ID: 10, UserID: 1, Title: "T", Body: "B"}},
			2: {
				{ID: 20, UserID: 2, Title: "U", Body: "C"},
				{ID: 21, UserID: 2, Title: "V", Body: "D"},
			},
		},
		comments: map[int][]feed.Comment{},
		errs:     map[string]error{},
		gates:    map[int]chan struct{}{},
		entered:  map[int]chan struct{}{},
	}
}

func (f *fakeGateway) record(call string) {
	f.mu.Lock()
	f.calls = append(f.calls, call)
	f.mu.Unlock()
}

func (f *fakeGateway) gate(userID int) (release func(), entered <-chan struct{}) {
	f.mu.Lock()
	defer f.mu.Unlock()

	g := make(chan struct{})
	e := make(chan struct{})
	f.gates[userID] = g
	f.entered[userID] = e
	return func() { close(g) }, e
}

func (f *fakeGateway) ListEmployees(context.Context) ([]feed.Employee, error) {
	f.record("employees")
	if err := f.errs["employees"]; err != nil {
		return nil, err
	}
	return f.employees, nil
}

func (f *fakeGateway) ListPosts(ctx context.Context, userID int) (gateway.PostsResult, error) {
	key := fmt.Sprintf("posts:%d", userID)
	f.record(key)

	if userID == 0 {
		return gateway.Degraded(gateway.ErrNoEmployeeID), nil
	}

	f.mu.Lock()
	g, e := f.gates[userID], f.entered[userID]
	f.mu.Unlock()
	if e != nil {
		close(e)
	}
	if g != nil {
		select {
		case <-g:
		case <-ctx.Done():
			return gateway.PostsResult{}, &gateway.FetchError{Kind: gateway.KindPosts, ID: userID, Err: ctx.Err()}
		}
	}

	if err := f.errs[key]; err != nil {
		return gateway.PostsResult{}, err
	}
	return gateway.Loaded(f.posts[userID]), nil
}

func (f *fakeGateway) GetEmployee(_ context.Context, id int) (feed.Employee, error) {
	key := fmt.Sprintf("employee:%d", id)
	f.record(key)
	if err := f.errs[key]; err != nil {
		return feed.Employee{}, err
	}
	for _, e := range f.employees {
		if e.ID == id {
			return e, nil
		}
	}
	return feed.Employee{}, &gateway.FetchError{Kind: gateway.KindEmployee, ID: id, Err: errors.New("not found")}
}

func (f *fakeGateway) ListComments(_ context.Context, postID int) ([]feed.Comment, error) {
	key := fmt.Sprintf("comments:%d", postID)
	f.record(key)
	if err := f.errs[key]; err != nil {
		return nil, err
	}
	c := f.comments[postID]
	if c == nil {
		c = []feed.Comment{}
	}
	return c, nil
}

func newApp(t *testing.T, gw *fakeGateway) *App {
	t.Helper()
	return New(gw, zerolog.Nop())
}

func surfaceArticles(a *App) []*dom.Node {
	var out []*dom.Node
	a.Page.Doc.Read(func() {
		out = a.Page.Surface.QuerySelectorAll("article")
	})
	return out
}

func TestNewPage(t *testing.T) {
	p := NewPage()
	assert.Equal(t, "select", p.Selector.Tag)
	assert.Equal(t, SelectorID, p.Selector.ID())
	assert.Equal(t, "main", p.Surface.Tag)
	assert.Zero(t, p.Selected())
	assert.False(t, p.Disabled())
	assert.Empty(t, p.Options())
}

func TestInit(t *testing.T) {
	a := newApp(t, newFakeGateway())

	n, err := a.Init(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, []Option{{ID: 1, Label: "Ann"}, {ID: 2, Label: "Bob"}}, a.Page.Options())

	// running again replaces rather than appends
	_, err = a.Init(context.Background())
	require.NoError(t, err)
	assert.Len(t, a.Page.Options(), 2)
}

func TestInit_Empty(t *testing.T) {
	gw := newFakeGateway()
	gw.employees = []feed.Employee{}
	a := newApp(t, gw)

	n, err := a.Init(context.Background())
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.Empty(t, a.Page.Options())
}

func TestInit_Failure(t *testing.T) {
	gw := newFakeGateway()
	gw.errs["employees"] = &gateway.FetchError{Kind: gateway.KindEmployees, Err: errors.New("boom")}
	a := newApp(t, gw)

	_, err := a.Init(context.Background())

	var initErr *PageInitError
	require.ErrorAs(t, err, &initErr)
	assert.True(t, gateway.IsKind(err, gateway.KindEmployees))
}

func TestSelect_Scenario(t *testing.T) {
	gw := newFakeGateway()
	a := newApp(t, gw)
	_, err := a.Init(context.Background())
	require.NoError(t, err)

	res, err := a.Select(context.Background(), 1)
	require.NoError(t, err)
	assert.False(t, res.Stale)
	assert.NotEmpty(t, res.RefreshID)
	assert.Equal(t, 1, res.Refresh.Mounted)
	assert.Equal(t, 1, res.Refresh.Attached)
	assert.Equal(t, 1, a.Page.Selected())
	assert.False(t, a.Page.Disabled())

	articles := surfaceArticles(a)
	require.Len(t, articles, 1)

	var byline, label string
	var panel *dom.Node
	a.Page.Doc.Read(func() {
		byline = articles[0].Children()[3].Text()
		ctrl := articles[0].QuerySelector(`button[data-post-id="10"]`)
		label = ctrl.Text()
		panel = articles[0].QuerySelector(`section[data-post-id="10"]`)
	})
	assert.Equal(t, "Author: Ann with Co", byline)
	assert.Equal(t, render.ShowLabel, label)
	require.NotNil(t, panel)
	assert.True(t, panel.Hidden())
	assert.Zero(t, panel.ChildCount())

	// activating flips both halves, activating again restores them
	fired, err := a.Activate("10")
	require.NoError(t, err)
	assert.Equal(t, 1, fired)
	state, err := a.Toggle.State("10")
	require.NoError(t, err)
	assert.Equal(t, toggle.Visible, state)

	_, err = a.Activate("10")
	require.NoError(t, err)
	state, err = a.Toggle.State("10")
	require.NoError(t, err)
	assert.Equal(t, toggle.Hidden, state)
}

func TestSelect_DefaultsToFirstOption(t *testing.T) {
	a := newApp(t, newFakeGateway())
	_, err := a.Init(context.Background())
	require.NoError(t, err)

	res, err := a.Select(context.Background(), 0)
	require.NoError(t, err)
	assert.Equal(t, 1, res.UserID)
	assert.Len(t, surfaceArticles(a), 1)
}

func TestSelect_NoOptionsIsDegradedNoop(t *testing.T) {
	a := newApp(t, newFakeGateway())

	var marker *dom.Node
	a.Page.Doc.Write(func() {
		marker = a.Page.Surface.AppendChild(render.Placeholder())
	})

	res, err := a.Select(context.Background(), 0)
	require.NoError(t, err)
	assert.True(t, res.Refresh.Skipped)

	var children []*dom.Node
	a.Page.Doc.Read(func() { children = a.Page.Surface.Children() })
	assert.Equal(t, []*dom.Node{marker}, children)
}

func TestSelect_EmptyPostsShowsPlaceholder(t *testing.T) {
	gw := newFakeGateway()
	gw.posts[1] = []feed.Post{}
	a := newApp(t, gw)
	_, _ = a.Init(context.Background())

	_, err := a.Select(context.Background(), 1)
	require.NoError(t, err)

	var text string
	a.Page.Doc.Read(func() {
		text = a.Page.Surface.QuerySelector("p." + render.PlaceholderClass).Text()
	})
	assert.Equal(t, render.PlaceholderText, text)
	assert.Empty(t, surfaceArticles(a))
}

func TestSelect_PostsFailureReenablesSelector(t *testing.T) {
	gw := newFakeGateway()
	gw.errs["posts:1"] = &gateway.FetchError{Kind: gateway.KindPosts, ID: 1, Err: errors.New("boom")}
	a := newApp(t, gw)
	_, _ = a.Init(context.Background())

	_, err := a.Select(context.Background(), 1)

	var selErr *SelectionRefreshError
	require.ErrorAs(t, err, &selErr)
	assert.Equal(t, 1, selErr.UserID)
	assert.False(t, a.Page.Disabled())
}

func TestSelect_PartialFailureLeavesSurfaceCleared(t *testing.T) {
	gw := newFakeGateway()
	a := newApp(t, gw)
	_, _ = a.Init(context.Background())

	_, err := a.Select(context.Background(), 2)
	require.NoError(t, err)
	require.Len(t, surfaceArticles(a), 2)

	gw.errs["comments:10"] = &gateway.FetchError{Kind: gateway.KindComments, ID: 10, Err: errors.New("boom")}
	_, err = a.Select(context.Background(), 1)

	var panelErr *render.PanelRenderError
	require.ErrorAs(t, err, &panelErr)
	assert.Equal(t, 10, panelErr.PostID)

	var count int
	a.Page.Doc.Read(func() { count = a.Page.Surface.ChildCount() })
	assert.Zero(t, count, "surface is cleared, not rolled back")
	assert.Zero(t, a.Listeners.Len())
	assert.False(t, a.Page.Disabled())
}

func TestSelect_ListenerLifecycleAcrossRefreshes(t *testing.T) {
	a := newApp(t, newFakeGateway())
	_, _ = a.Init(context.Background())

	_, err := a.Select(context.Background(), 1)
	require.NoError(t, err)
	_, err = a.Select(context.Background(), 1)
	require.NoError(t, err)

	assert.Equal(t, 1, a.Listeners.Len())

	fired, err := a.Activate("10")
	require.NoError(t, err)
	assert.Equal(t, 1, fired)

	state, err := a.Toggle.State("10")
	require.NoError(t, err)
	assert.Equal(t, toggle.Visible, state)
}

func TestSelect_StaleRefreshDiscarded(t *testing.T) {
	gw := newFakeGateway()
	a := newApp(t, gw)
	_, _ = a.Init(context.Background())

	release, entered := gw.gate(2)
	defer release()

	type outcome struct {
		res SelectionResult
		err error
	}
	slow := make(chan outcome, 1)
	go func() {
		res, err := a.Select(context.Background(), 2)
		slow <- outcome{res, err}
	}()

	<-entered
	assert.True(t, a.Page.Disabled(), "selector disabled while a selection is in flight")

	res, err := a.Select(context.Background(), 1)
	require.NoError(t, err)
	assert.False(t, res.Stale)

	var got outcome
	select {
	case got = <-slow:
	case <-time.After(2 * time.Second):
		t.Fatal("stale selection never returned")
	}
	require.NoError(t, got.err)
	assert.True(t, got.res.Stale)

	articles := surfaceArticles(a)
	require.Len(t, articles, 1)
	assert.Equal(t, []string{"10"}, a.Controls())
	assert.False(t, a.Page.Disabled())
}

func TestOrchestrator_DegradedIsNoop(t *testing.T) {
	a := newApp(t, newFakeGateway())
	a.Page.Doc.Write(func() {
		a.Page.Surface.AppendChild(render.Placeholder())
	})

	res, err := a.Refresh.Refresh(context.Background(), gateway.Degraded(gateway.ErrNoEmployeeID))
	require.NoError(t, err)
	assert.True(t, res.Skipped)
	assert.Zero(t, res.Cleared)

	var count int
	a.Page.Doc.Read(func() { count = a.Page.Surface.ChildCount() })
	assert.Equal(t, 1, count)
}

func TestOrchestrator_StaleBeforeClear(t *testing.T) {
	a := newApp(t, newFakeGateway())
	a.Page.Doc.Write(func() {
		a.Page.Surface.AppendChild(render.Placeholder())
	})

	old := a.Refresh.Next()
	a.Refresh.Next()

	_, err := a.Refresh.RefreshAt(context.Background(), old, gateway.Loaded(nil))
	require.ErrorIs(t, err, ErrStaleRefresh)

	var count int
	a.Page.Doc.Read(func() { count = a.Page.Surface.ChildCount() })
	assert.Equal(t, 1, count)
}

func TestOrchestrator_Order(t *testing.T) {
	gw := newFakeGateway()
	a := newApp(t, gw)

	res, err := a.Refresh.Refresh(context.Background(), gateway.Loaded(gw.posts[2]))
	require.NoError(t, err)
	assert.Equal(t, 2, res.Mounted)
	assert.Equal(t, []string{"20", "21"}, a.Controls())

	res, err = a.Refresh.Refresh(context.Background(), gateway.Loaded(gw.posts[1]))
	require.NoError(t, err)
	assert.Equal(t, 2, res.Detached)
	assert.Equal(t, 2, res.Cleared)
	assert.Equal(t, []string{"10"}, a.Controls())
}

func TestWatch_ChangeEventRunsSelection(t *testing.T) {
	a := newApp(t, newFakeGateway())
	_, _ = a.Init(context.Background())

	done := make(chan SelectionResult, 1)
	unwatch := a.Watch(context.Background(), func(res SelectionResult, err error) {
		assert.NoError(t, err)
		done <- res
	})
	defer unwatch()

	assert.Equal(t, 1, a.Page.Choose(2))

	select {
	case res := <-done:
		assert.Equal(t, 2, res.UserID)
	case <-time.After(2 * time.Second):
		t.Fatal("change listener never completed")
	}
	assert.Equal(t, []string{"20", "21"}, a.Controls())

	unwatch()
	assert.Zero(t, a.Page.Choose(1))
}

func TestExpandAll(t *testing.T) {
	a := newApp(t, newFakeGateway())
	_, _ = a.Init(context.Background())
	_, err := a.Select(context.Background(), 2)
	require.NoError(t, err)

	_, err = a.Activate("20")
	require.NoError(t, err)
	require.NoError(t, a.ExpandAll())

	for _, id := range a.Controls() {
		state, err := a.Toggle.State(id)
		require.NoError(t, err)
		assert.Equal(t, toggle.Visible, state, id)
	}
}

func TestActivate_UnknownPost(t *testing.T) {
	a := newApp(t, newFakeGateway())
	_, err := a.Activate("404")
	require.ErrorIs(t, err, toggle.ErrNoControl)
}
