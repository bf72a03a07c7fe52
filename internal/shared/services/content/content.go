// Package content holds the HTML transforms applied to weblog content:
// sanitising, stripping, markdown rendering and email scrambling.
package content

import (
	"bytes"
	"fmt"
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	goldhtml "github.com/yuin/goldmark/renderer/html"
)

// Service renders and cleans entry content.
type Service interface {
	// MarkdownToHTML converts markdown to unsanitised HTML.
	MarkdownToHTML(markdown string) (string, error)
	// Sanitize applies the user-generated-content policy.
	Sanitize(htmlContent string) string
	// StripHTML removes every tag and unescapes entities.
	StripHTML(htmlContent string) string
}

type service struct {
	md     goldmark.Markdown
	ugc    *bluemonday.Policy
	strict *bluemonday.Policy
}

func NewService() Service {
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			extension.Linkify,
			extension.Footnote,
		),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
		goldmark.WithRendererOptions(
			goldhtml.WithXHTML(),
			// Entry text may embed raw HTML; Sanitize decides what survives.
			goldhtml.WithUnsafe(),
		),
	)

	ugc := bluemonday.UGCPolicy()
	ugc.AllowAttrs("class").Matching(bluemonday.SpaceSeparatedTokens).OnElements("code", "span", "div", "pre")
	ugc.AllowAttrs("id").Matching(bluemonday.SpaceSeparatedTokens).OnElements("h1", "h2", "h3", "h4", "h5", "h6")

	return &service{
		md:     md,
		ugc:    ugc,
		strict: bluemonday.StrictPolicy(),
	}
}

func (s *service) MarkdownToHTML(markdown string) (string, error) {
	var buf bytes.Buffer
	if err := s.md.Convert([]byte(markdown), &buf); err != nil {
		return "", fmt.Errorf("failed to convert markdown to HTML: %w", err)
	}
	return buf.String(), nil
}

func (s *service) Sanitize(htmlContent string) string {
	return s.ugc.Sanitize(htmlContent)
}

func (s *service) StripHTML(htmlContent string) string {
	return strings.TrimSpace(html.UnescapeString(s.strict.Sanitize(htmlContent)))
}

// Truncate shortens plain text to at most max runes on a word boundary and
// appends "..." when anything was cut.
func Truncate(text string, max int) string {
	runes := []rune(text)
	if max <= 0 || len(runes) <= max {
		return text
	}
	cut := string(runes[:max])
	if i := strings.LastIndexAny(cut, " \t\n"); i > 0 {
		cut = cut[:i]
	}
	return strings.TrimSpace(cut) + "..."
}
