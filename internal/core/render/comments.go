package render

import (
	"context"
	"fmt"
	"strconv"

	"github.com/hay-kot/roster/internal/core/dom"
	"github.com/hay-kot/roster/internal/core/feed"
)

// PanelRenderError is returned when a post's comment panel cannot be built.
type PanelRenderError struct {
	PostID int
	Err    error
}

func (e *PanelRenderError) Error() string {
	return fmt.Sprintf("render comments for post %d: %v", e.PostID, e.Err)
}

func (e *PanelRenderError) Unwrap() error {
	return e.Err
}

// CommentList builds a fragment with one <article> per comment: the name as
// a heading, the body, and the "From:" line. It returns nil for a nil slice.
func CommentList(comments []feed.Comment) *dom.Node {
	if comments == nil {
		return nil
	}

	frag := dom.NewFragment()
	for _, c := range comments {
		article := dom.NewElement("article")
		article.AppendChild(Text("h3", c.Name))
		article.AppendChild(Text("p", c.Body))
		article.AppendChild(Text("p", c.Signature(), MetaClass))
		frag.AppendChild(article)
	}
	return frag
}

// DetailPanel builds the hidden comment <section> for a post and fills it
// with the post's comments.
func (r *Renderer) DetailPanel(ctx context.Context, postID int) (*dom.Node, error) {
	section := dom.NewElement("section")
	section.SetData(PostIDKey, strconv.Itoa(postID))
	section.AddClass(CommentsClass, dom.HiddenClass)

	comments, err := r.src.ListComments(ctx, postID)
	if err != nil {
		r.logger.Error().Ctx(ctx).Err(err).Int("post_id", postID).Msg("display comments")
		return nil, &PanelRenderError{PostID: postID, Err: err}
	}

	if list := CommentList(comments); list != nil {
		section.AppendChild(list)
	}
	return section, nil
}
