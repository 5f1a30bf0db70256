package ui_test

import (
	"bytes"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"

	"github.com/84adam/jenkins-test-app/ui"
	"github.com/84adam/jenkins-test-app/ui/uitest"
)

func TestRender_MarkupHasNoInlineHandlers(t *testing.T) {
	app, _ := newTestApp("test")

	var buf bytes.Buffer
	require.NoError(t, ui.Render(&buf, app.Render()))

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, `<div class="App">`))
	assert.NotContains(t, out, "onclick")
	assert.Contains(t, out, `data-testid="test-button"`)
	assert.Contains(t, out, "<li>✅ 자동 배포</li>")
}

func TestRender_NilTree(t *testing.T) {
	var buf bytes.Buffer
	assert.Error(t, ui.Render(&buf, nil))
	assert.Error(t, ui.RenderDocument(&buf, &ui.Tree{}, ui.DocumentOptions{}))
}

func TestRenderDocument(t *testing.T) {
	app, _ := newTestApp("test")
	tree := app.Render()

	var buf bytes.Buffer
	err := ui.RenderDocument(&buf, tree, ui.DocumentOptions{
		Stylesheets: []string{"/static/app.css"},
		Scripts:     []string{"/static/app.js"},
	})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(buf.String(), "<!DOCTYPE html>"))

	doc, err := html.Parse(&buf)
	require.NoError(t, err)
	screen := uitest.NewScreen(doc)

	titles, err := screen.GetAllByText(regexp.MustCompile("^" + regexp.QuoteMeta(ui.Title) + "$"))
	require.NoError(t, err)
	require.Len(t, titles, 2)
	assert.Equal(t, "title", titles[0].Data)
	assert.Equal(t, "h1", titles[1].Data)

	mount, err := screen.GetByRole("heading", ui.Title)
	require.NoError(t, err)
	container := uitest.Closest(mount, "App")
	require.NotNil(t, container)
	assert.Equal(t, "root", uitest.Attr(container.Parent, "id"))

	// The original tree is copied, not moved into the document.
	assert.Nil(t, tree.Root.Parent)
}

func TestRenderDocument_AssetLinks(t *testing.T) {
	app, _ := newTestApp("test")

	var buf bytes.Buffer
	require.NoError(t, ui.RenderDocument(&buf, app.Render(), ui.DocumentOptions{
		Lang:        "en",
		Stylesheets: []string{"/static/app.css"},
		Scripts:     []string{"/static/app.js"},
	}))

	out := buf.String()
	assert.Contains(t, out, `<html lang="en">`)
	assert.Contains(t, out, `<link rel="stylesheet" href="/static/app.css"/>`)
	assert.Contains(t, out, `<script src="/static/app.js" defer=""></script>`)
}
