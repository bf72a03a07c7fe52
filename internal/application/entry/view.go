package entry

import (
	"fmt"
	"html"
	"strings"
	"time"

	domain "github.com/rollerweb/roller/internal/domain/entry"
	vo "github.com/rollerweb/roller/internal/domain/entry/valueobjects"
	"github.com/rollerweb/roller/internal/domain/weblog"
	"github.com/rollerweb/roller/internal/shared/services/content"
)

const (
	msgReadMore           = "entry.readMore"
	defaultRSSDescription = 255
)

// EntryView is the read-only face of an entry used while rendering. HTML
// fields pass through the renderer's sanitising policy.
type EntryView struct {
	r        *Renderer
	e        *domain.Entry
	weblog   *weblog.Weblog
	category *weblog.Category
	comments []*domain.Comment
}

func (v *EntryView) ID() string                { return v.e.ID() }
func (v *EntryView) Weblog() *weblog.Weblog    { return v.weblog }
func (v *EntryView) ContentType() string       { return v.e.ContentType() }
func (v *EntryView) ContentSrc() string        { return v.e.ContentSrc() }
func (v *EntryView) Anchor() string            { return v.e.Anchor() }
func (v *EntryView) Link() string              { return v.e.Link() }
func (v *EntryView) Status() vo.PubStatus      { return v.e.Status() }
func (v *EntryView) UpdateTime() time.Time     { return v.e.UpdateTime() }
func (v *EntryView) AllowComments() bool       { return v.e.AllowComments() }
func (v *EntryView) CommentDays() int          { return v.e.CommentDays() }
func (v *EntryView) RightToLeft() bool         { return v.e.RightToLeft() }
func (v *EntryView) PinnedToMain() bool        { return v.e.PinnedToMain() }
func (v *EntryView) Locale() string            { return v.e.Locale() }
func (v *EntryView) Tags() []string            { return v.e.Tags() }
func (v *EntryView) TagsAsString() string      { return v.e.TagsAsString() }
func (v *EntryView) PluginsList() []string     { return v.e.Plugins() }
func (v *EntryView) Attribute(n string) string { return v.e.Attribute(n) }

func (v *EntryView) Title() string   { return v.r.conditionallySanitize(v.e.Title()) }
func (v *EntryView) Summary() string { return v.r.conditionallySanitize(v.e.Summary()) }
func (v *EntryView) Text() string    { return v.r.conditionallySanitize(v.e.Text()) }

func (v *EntryView) SearchDescription() string {
	return v.r.conditionallySanitize(v.e.SearchDescription())
}

// PubTime is the publish time in the weblog's timezone, zero when unpublished.
func (v *EntryView) PubTime() time.Time {
	if v.e.PubTime() == nil {
		return time.Time{}
	}
	return v.e.PubTime().In(v.weblog.Location())
}

// CategoryName is empty for uncategorised entries.
func (v *EntryView) CategoryName() string {
	if v.category == nil {
		return ""
	}
	return v.category.Name()
}

func (v *EntryView) CategoryURL() string {
	if v.category == nil {
		return ""
	}
	return v.r.urls.WeblogCategoryURL(v.weblog, "", v.category.Name(), false)
}

func (v *EntryView) CommentsStillAllowed() bool {
	return v.e.CommentsStillAllowed(v.r.now())
}

// FormatPubTime formats the publish time with a Go layout in the weblog's timezone.
func (v *EntryView) FormatPubTime(layout string) string {
	if v.e.PubTime() == nil {
		return ""
	}
	return v.PubTime().Format(layout)
}

func (v *EntryView) FormatUpdateTime(layout string) string {
	return v.e.UpdateTime().In(v.weblog.Location()).Format(layout)
}

// Comments filters the entry's comments; see domain Comment.Visible.
func (v *EntryView) Comments(ignoreSpam, approvedOnly bool) []CommentView {
	out := make([]CommentView, 0, len(v.comments))
	for _, c := range v.comments {
		if !c.Visible(ignoreSpam, approvedOnly) {
			continue
		}
		out = append(out, CommentView{
			ID:       c.ID(),
			Name:     c.Name(),
			URL:      c.URL(),
			Content:  v.r.conditionallySanitize(c.Content()),
			Status:   c.Status().String(),
			PostTime: c.PostTime().In(v.weblog.Location()),
		})
	}
	return out
}

// CommentCount counts approved comments only.
func (v *EntryView) CommentCount() int {
	return len(v.Comments(true, true))
}

func (v *EntryView) Permalink() string {
	return v.r.urls.EntryURL(v.weblog, v.e.Locale(), v.e.Anchor(), true)
}

func (v *EntryView) CommentsLink() string {
	return v.r.urls.CommentsURL(v.weblog, v.e.Locale(), v.e.Anchor(), true)
}

func (v *EntryView) DisplayTitle() string {
	return v.r.conditionallySanitize(v.e.DisplayTitle(v.r.content.StripHTML))
}

// RSSDescription is the summary, or the text when there is no summary, as
// plain text cut to maxLength runes. A maxLength of zero uses 255.
func (v *EntryView) RSSDescription(maxLength int) string {
	if maxLength <= 0 {
		maxLength = defaultRSSDescription
	}
	source := v.e.Summary()
	if strings.TrimSpace(source) == "" {
		source = v.e.Text()
	}
	return content.Truncate(v.r.content.StripHTML(v.r.render(v.e, source)), maxLength)
}

func (v *EntryView) TransformedText() string {
	return v.r.render(v.e, v.e.Text())
}

func (v *EntryView) TransformedSummary() string {
	return v.r.render(v.e, v.e.Summary())
}

// DisplayContent picks what a listing shows. Without a read-more link (the
// permalink page) the full text wins; with one, the summary wins and is
// followed by the link when there is more text to read.
func (v *EntryView) DisplayContent(readMoreLink string) string {
	if readMoreLink == "" {
		if v.e.Text() != "" {
			return v.TransformedText()
		}
		return v.TransformedSummary()
	}

	if v.e.Summary() == "" {
		return v.TransformedText()
	}
	out := v.TransformedSummary()
	if v.e.Text() != "" {
		label := v.r.catalog.Lookup(v.weblog.LocaleTag(), msgReadMore)
		out += fmt.Sprintf(`<a class="readmore" href="%s">%s</a>`, html.EscapeString(readMoreLink), html.EscapeString(label))
	}
	return out
}

// CommentView is a comment ready for display. Email addresses are never exposed.
type CommentView struct {
	ID       string    `json:"id"`
	Name     string    `json:"name"`
	URL      string    `json:"url,omitempty"`
	Content  string    `json:"content"`
	Status   string    `json:"status"`
	PostTime time.Time `json:"post_time"`
}
