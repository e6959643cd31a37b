package render

import (
	"context"
	"fmt"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/hay-kot/roster/internal/core/dom"
	"github.com/hay-kot/roster/internal/core/feed"
	"github.com/hay-kot/roster/internal/core/logging"
)

// Source is what the renderer needs from the gateway.
type Source interface {
	GetEmployee(ctx context.Context, id int) (feed.Employee, error)
	ListComments(ctx context.Context, postID int) ([]feed.Comment, error)
}

// Renderer builds post blocks and pages.
type Renderer struct {
	src    Source
	logger zerolog.Logger
}

// New creates a renderer reading from src.
func New(src Source, logger zerolog.Logger) *Renderer {
	return &Renderer{src: src, logger: logging.Sub(logger, "render")}
}

// PostBlock builds one post's <article>: title, body, id line, author byline
// and catch phrase, the toggle control, and the comment panel. The author is
// fetched before the comments.
func (r *Renderer) PostBlock(ctx context.Context, post feed.Post) (*dom.Node, error) {
	postID := strconv.Itoa(post.ID)

	article := dom.NewElement("article")
	article.AppendChild(Text("h2", post.Title))
	article.AppendChild(Text("p", post.Body))
	article.AppendChild(Text("p", "Post ID: "+postID, MetaClass))

	author, err := r.src.GetEmployee(ctx, post.UserID)
	if err != nil {
		return nil, fmt.Errorf("render post %d author: %w", post.ID, err)
	}
	article.AppendChild(Text("p", author.Byline(), MetaClass))
	article.AppendChild(Text("p", author.Company.CatchPhrase, CatchPhraseClass))

	article.AppendChild(ToggleControl(postID))

	panel, err := r.DetailPanel(ctx, post.ID)
	if err != nil {
		return nil, err
	}
	article.AppendChild(panel)

	return article, nil
}
