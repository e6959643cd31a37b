package gateway

import "github.com/hay-kot/roster/internal/core/feed"

// PostsResult is the outcome of ListPosts. A degraded result means "nothing
// to show": the caller asked without an id or the store answered with a
// non-success status. Degraded results are not errors.
type PostsResult struct {
	Posts    []feed.Post
	Degraded bool
	Reason   error
}

// Loaded wraps a successful post list.
func Loaded(posts []feed.Post) PostsResult {
	if posts == nil {
		posts = []feed.Post{}
	}
	return PostsResult{Posts: posts}
}

// Degraded builds a degraded result with the given reason.
func Degraded(reason error) PostsResult {
	return PostsResult{Degraded: true, Reason: reason}
}
