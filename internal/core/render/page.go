package render

import (
	"context"

	"github.com/hay-kot/roster/internal/core/dom"
	"github.com/hay-kot/roster/internal/core/feed"
)

// Placeholder builds the paragraph shown when no posts are selected.
func Placeholder() *dom.Node {
	return Text("p", PlaceholderText, PlaceholderClass)
}

// Collection builds every post block into one fragment. Posts render one at
// a time in input order: a post's fetches finish before the next post
// starts. Nil or empty input yields the placeholder paragraph.
func (r *Renderer) Collection(ctx context.Context, posts []feed.Post) (*dom.Node, error) {
	if len(posts) == 0 {
		return Placeholder(), nil
	}

	frag := dom.NewFragment()
	for _, p := range posts {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		block, err := r.PostBlock(ctx, p)
		if err != nil {
			return nil, err
		}
		frag.AppendChild(block)
	}

	r.logger.Debug().Ctx(ctx).Int("posts", len(posts)).Msg("collection rendered")
	return frag, nil
}

// Mount appends a rendered collection to surface and returns the top-level
// nodes it added. The caller must hold the document's write transaction.
func Mount(surface, rendered *dom.Node) []*dom.Node {
	if rendered == nil {
		return nil
	}
	if !rendered.IsFragment() {
		surface.AppendChild(rendered)
		return []*dom.Node{rendered}
	}

	mounted := rendered.Children()
	surface.AppendChild(rendered)
	return mounted
}

// Display renders posts and appends the result to surface in one write
// transaction. It returns the appended nodes.
func (r *Renderer) Display(ctx context.Context, doc *dom.Document, surface *dom.Node, posts []feed.Post) ([]*dom.Node, error) {
	rendered, err := r.Collection(ctx, posts)
	if err != nil {
		return nil, err
	}

	var mounted []*dom.Node
	doc.Write(func() {
		mounted = Mount(surface, rendered)
	})
	return mounted, nil
}
