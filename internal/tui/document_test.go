package tui

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hay-kot/roster/internal/core/dom"
	"github.com/hay-kot/roster/internal/core/render"
	"github.com/hay-kot/roster/pkg/tuitest"
)

func TestRenderDocument_Placeholder(t *testing.T) {
	surface := dom.NewElement("main")
	surface.AppendChild(render.Placeholder())

	out := tuitest.StripANSI(renderDocument(surface, "", 60))
	assert.Equal(t, render.PlaceholderText, out)
}

func TestRenderDocument_HiddenPanelSkipped(t *testing.T) {
	surface := dom.NewElement("main")
	article := surface.AppendChild(dom.NewElement("article"))
	article.AppendChild(render.Text("h2", "Title"))
	article.AppendChild(render.ToggleControl("7"))
	panel := article.AppendChild(dom.NewElement("section"))
	panel.AddClass(render.CommentsClass, dom.HiddenClass)
	panel.AppendChild(render.Text("p", "secret"))

	out := tuitest.StripANSI(renderDocument(surface, "7", 60))
	assert.Contains(t, out, "Title")
	assert.Contains(t, out, render.ShowLabel)
	assert.NotContains(t, out, "secret")

	panel.RemoveClass(dom.HiddenClass)
	out = tuitest.StripANSI(renderDocument(surface, "", 60))
	assert.Contains(t, out, "secret")
}

func TestRenderDocument_EmptyVisiblePanel(t *testing.T) {
	surface := dom.NewElement("main")
	surface.AppendChild(dom.NewElement("section"))

	out := tuitest.StripANSI(renderDocument(surface, "", 60))
	assert.Contains(t, out, "No comments.")
}
