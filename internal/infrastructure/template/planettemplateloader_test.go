package template

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rollerweb/roller/internal/application/planet/dto"
	"github.com/rollerweb/roller/internal/domain/planet"
	"github.com/rollerweb/roller/internal/shared/logger"
	"github.com/rollerweb/roller/internal/shared/services/content"
)

func writeTemplate(t *testing.T, dir, name, body string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644))
}

func samplePage() dto.PageData {
	group := dto.GroupPage{
		Handle: "java",
		Title:  "Java Blogs",
		Entries: []planet.GroupEntry{{
			SubscriptionEntry: planet.SubscriptionEntry{
				Title:     "Hello <World>",
				Permalink: "http://example.com/hello",
				Content:   "<p>body <b>bold</b></p>",
				PubTime:   time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC),
			},
			SourceTitle: "Example",
		}},
	}
	return dto.PageData{
		Date:      time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC),
		Title:     "Planet",
		Groups:    []dto.GroupPage{group},
		Utilities: dto.NewUtilities(content.NewService()),
	}
}

func TestLoadAndRender(t *testing.T) {
	dir := t.TempDir()
	writeTemplate(t, dir, "planet.html",
		`{{.Title}}|{{range .Groups}}{{.Title}}:{{range .Entries}}{{.Title}}={{$.Utilities.StripHTML .Content}}{{end}}{{end}}`)
	writeTemplate(t, dir, "notes.txt", "ignored")

	loader := NewPlanetTemplateLoader(dir, logger.NewNopLogger())
	require.NoError(t, loader.Load())

	assert.True(t, loader.Has("planet.html"))
	assert.False(t, loader.Has("group.html"))
	assert.False(t, loader.Has("notes.txt"))
	assert.Equal(t, []string{"planet.html"}, loader.GetLoadedTemplates())

	var buf bytes.Buffer
	require.NoError(t, loader.Render(&buf, "planet.html", samplePage()))
	assert.Equal(t, "Planet|Java Blogs:Hello &lt;World&gt;=body bold", buf.String())
}

func TestRenderWithPartialsAndSafeHTML(t *testing.T) {
	dir := t.TempDir()
	writeTemplate(t, dir, "_entry.html", `{{define "entry"}}[{{safeHTML .Content}}]{{end}}`)
	writeTemplate(t, dir, "group.html", `{{.Group.Title}}{{range .Group.Entries}}{{template "entry" .}}{{end}}`)

	loader := NewPlanetTemplateLoader(dir, logger.NewNopLogger())
	require.NoError(t, loader.Load())
	assert.False(t, loader.Has("_entry.html"))

	data := samplePage()
	data.Group = &data.Groups[0]

	var buf bytes.Buffer
	require.NoError(t, loader.Render(&buf, "group.html", data))
	assert.Equal(t, "Java Blogs[<p>body <b>bold</b></p>]", buf.String())
}

func TestRenderUnknownTemplate(t *testing.T) {
	loader := NewPlanetTemplateLoader(t.TempDir(), logger.NewNopLogger())
	require.NoError(t, loader.Load())

	err := loader.Render(&bytes.Buffer{}, "planet.html", samplePage())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestLoadMissingDirectory(t *testing.T) {
	loader := NewPlanetTemplateLoader(filepath.Join(t.TempDir(), "missing"), logger.NewNopLogger())
	require.NoError(t, loader.Load())
	assert.Empty(t, loader.GetLoadedTemplates())
}

func TestLoadInvalidTemplate(t *testing.T) {
	dir := t.TempDir()
	writeTemplate(t, dir, "planet.html", `{{.Title`)

	loader := NewPlanetTemplateLoader(dir, logger.NewNopLogger())
	assert.Error(t, loader.Load())
}

func TestBundledTemplatesRender(t *testing.T) {
	loader := NewPlanetTemplateLoader(filepath.Join("..", "..", "..", "templates", "planet"), logger.NewNopLogger())
	require.NoError(t, loader.Load())
	require.True(t, loader.Has("planet.html"))
	require.True(t, loader.Has("group.html"))

	data := samplePage()
	var buf bytes.Buffer
	require.NoError(t, loader.Render(&buf, "planet.html", data))
	assert.Contains(t, buf.String(), "Java Blogs")

	data.Group = &data.Groups[0]
	buf.Reset()
	require.NoError(t, loader.Render(&buf, "group.html", data))
	assert.Contains(t, buf.String(), "<b>bold</b>")
}
