// Package entry presents weblog entries to templates and API clients.
package entry

import (
	"time"

	domain "github.com/rollerweb/roller/internal/domain/entry"
	"github.com/rollerweb/roller/internal/domain/weblog"
	"github.com/rollerweb/roller/internal/shared/constants"
	"github.com/rollerweb/roller/internal/shared/logger"
	"github.com/rollerweb/roller/internal/shared/services/content"
	"golang.org/x/text/language"
)

// URLBuilder is the part of the URL strategy entry views link with.
type URLBuilder interface {
	EntryURL(w weblog.Ref, locale, anchor string, absolute bool) string
	CommentsURL(w weblog.Ref, locale, anchor string, absolute bool) string
	WeblogCategoryURL(w weblog.Ref, locale, category string, absolute bool) string
}

// MessageCatalog supplies localized snippets such as the read-more label.
type MessageCatalog interface {
	Lookup(tag language.Tag, key string) string
}

// Renderer wraps domain entries into views sharing one rendering setup.
type Renderer struct {
	urls         URLBuilder
	content      content.Service
	plugins      *PluginRegistry
	catalog      MessageCatalog
	sanitizeHTML bool
	logger       logger.Interface
	now          func() time.Time
}

// NewRenderer builds a renderer. sanitizeHTML turns on the user content policy
// for every HTML field; it is set when weblog authors are not trusted.
func NewRenderer(
	urls URLBuilder,
	contentService content.Service,
	plugins *PluginRegistry,
	catalog MessageCatalog,
	sanitizeHTML bool,
	logger logger.Interface,
) *Renderer {
	if plugins == nil {
		plugins = NewPluginRegistry()
	}
	return &Renderer{
		urls:         urls,
		content:      contentService,
		plugins:      plugins,
		catalog:      catalog,
		sanitizeHTML: sanitizeHTML,
		logger:       logger,
		now:          time.Now,
	}
}

// Wrap builds a view. category and comments may be nil.
func (r *Renderer) Wrap(e *domain.Entry, w *weblog.Weblog, category *weblog.Category, comments []*domain.Comment) *EntryView {
	return &EntryView{
		r:        r,
		e:        e,
		weblog:   w,
		category: category,
		comments: comments,
	}
}

func (r *Renderer) conditionallySanitize(html string) string {
	if !r.sanitizeHTML || html == "" {
		return html
	}
	return r.content.Sanitize(html)
}

// render turns raw entry text into display HTML: markdown conversion when the
// content type asks for it, then sanitising, then the entry's plugins.
func (r *Renderer) render(e *domain.Entry, text string) string {
	if text == "" {
		return ""
	}
	if e.ContentType() == constants.ContentTypeMarkdown {
		html, err := r.content.MarkdownToHTML(text)
		if err != nil {
			r.logger.Warnw("markdown conversion failed, rendering source", "entry", e.ID(), "error", err)
		} else {
			text = html
		}
	}
	text = r.conditionallySanitize(text)

	for _, name := range e.Plugins() {
		p, ok := r.plugins.Get(name)
		if !ok {
			r.logger.Debugw("entry references unknown plugin", "entry", e.ID(), "plugin", name)
			continue
		}
		out, err := p.Render(e, text)
		if err != nil {
			r.logger.Warnw("entry plugin failed", "entry", e.ID(), "plugin", name, "error", err)
			continue
		}
		text = out
	}
	return text
}
