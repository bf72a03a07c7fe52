package entry

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
	"time"

	vo "github.com/rollerweb/roller/internal/domain/entry/valueobjects"
)

// Entry is a weblog post.
type Entry struct {
	id                string
	weblogID          string
	categoryID        string
	creatorID         string
	title             string
	summary           string
	text              string
	contentType       string
	contentSrc        string
	searchDescription string
	anchor            string
	link              string
	plugins           []string
	status            vo.PubStatus
	pubTime           *time.Time
	updateTime        time.Time
	allowComments     bool
	commentDays       int
	rightToLeft       bool
	pinnedToMain      bool
	locale            string
	tags              []string
	attributes        map[string]string
}

// Content groups the author-written parts of an entry.
type Content struct {
	Title             string
	Summary           string
	Text              string
	ContentType       string
	ContentSrc        string
	SearchDescription string
	Link              string
}

// Settings groups the per-entry switches.
type Settings struct {
	Plugins       []string
	AllowComments bool
	CommentDays   int
	RightToLeft   bool
	PinnedToMain  bool
	Locale        string
}

// NewEntry creates a draft entry.
func NewEntry(id, weblogID, categoryID, creatorID, anchor string, content Content, settings Settings) (*Entry, error) {
	if id == "" {
		return nil, fmt.Errorf("entry ID is required")
	}
	if weblogID == "" {
		return nil, fmt.Errorf("weblog ID is required")
	}
	if creatorID == "" {
		return nil, fmt.Errorf("creator ID is required")
	}
	if len(content.Title) > 255 {
		return nil, fmt.Errorf("title exceeds maximum length of 255 characters")
	}
	if strings.TrimSpace(content.Title) == "" && strings.TrimSpace(content.Text) == "" {
		return nil, fmt.Errorf("entry needs a title or text")
	}
	if settings.CommentDays < 0 {
		return nil, fmt.Errorf("comment days cannot be negative")
	}
	if anchor == "" {
		anchor = AnchorBase(content.Title, content.Text)
	}

	e := &Entry{
		id:         id,
		weblogID:   weblogID,
		categoryID: categoryID,
		creatorID:  creatorID,
		anchor:     anchor,
		status:     vo.PubStatusDraft,
		updateTime: time.Now().UTC(),
		attributes: map[string]string{},
	}
	e.applyContent(content)
	e.applySettings(settings)
	return e, nil
}

// ReconstructEntry rebuilds an entry from storage.
func ReconstructEntry(
	id, weblogID, categoryID, creatorID, anchor string,
	content Content,
	settings Settings,
	status vo.PubStatus,
	pubTime *time.Time,
	updateTime time.Time,
	tags []string,
	attributes map[string]string,
) (*Entry, error) {
	if id == "" {
		return nil, fmt.Errorf("entry ID cannot be empty")
	}
	if !status.IsValid() {
		return nil, fmt.Errorf("invalid publication status %q", status)
	}
	if attributes == nil {
		attributes = map[string]string{}
	}

	e := &Entry{
		id:         id,
		weblogID:   weblogID,
		categoryID: categoryID,
		creatorID:  creatorID,
		anchor:     anchor,
		status:     status,
		pubTime:    pubTime,
		updateTime: updateTime,
		tags:       tags,
		attributes: attributes,
	}
	e.applyContent(content)
	e.applySettings(settings)
	return e, nil
}

func (e *Entry) applyContent(c Content) {
	e.title = c.Title
	e.summary = c.Summary
	e.text = c.Text
	e.contentType = c.ContentType
	e.contentSrc = c.ContentSrc
	e.searchDescription = c.SearchDescription
	e.link = c.Link
}

func (e *Entry) applySettings(s Settings) {
	e.plugins = s.Plugins
	e.allowComments = s.AllowComments
	e.commentDays = s.CommentDays
	e.rightToLeft = s.RightToLeft
	e.pinnedToMain = s.PinnedToMain
	e.locale = s.Locale
}

func (e *Entry) ID() string                    { return e.id }
func (e *Entry) WeblogID() string              { return e.weblogID }
func (e *Entry) CategoryID() string            { return e.categoryID }
func (e *Entry) CreatorID() string             { return e.creatorID }
func (e *Entry) Title() string                 { return e.title }
func (e *Entry) Summary() string               { return e.summary }
func (e *Entry) Text() string                  { return e.text }
func (e *Entry) ContentType() string           { return e.contentType }
func (e *Entry) ContentSrc() string            { return e.contentSrc }
func (e *Entry) SearchDescription() string     { return e.searchDescription }
func (e *Entry) Anchor() string                { return e.anchor }
func (e *Entry) Link() string                  { return e.link }
func (e *Entry) Plugins() []string             { return append([]string(nil), e.plugins...) }
func (e *Entry) Status() vo.PubStatus          { return e.status }
func (e *Entry) PubTime() *time.Time           { return e.pubTime }
func (e *Entry) UpdateTime() time.Time         { return e.updateTime }
func (e *Entry) AllowComments() bool           { return e.allowComments }
func (e *Entry) CommentDays() int              { return e.commentDays }
func (e *Entry) RightToLeft() bool             { return e.rightToLeft }
func (e *Entry) PinnedToMain() bool            { return e.pinnedToMain }
func (e *Entry) Locale() string                { return e.locale }
func (e *Entry) Attribute(name string) string  { return e.attributes[name] }
func (e *Entry) Attributes() map[string]string { return copyMap(e.attributes) }

// Tags returns the tag names sorted alphabetically.
func (e *Entry) Tags() []string {
	tags := append([]string(nil), e.tags...)
	sort.Strings(tags)
	return tags
}

// TagsAsString joins the sorted tags with single spaces.
func (e *Entry) TagsAsString() string {
	return strings.Join(e.Tags(), " ")
}

// SetTags replaces the tags, lowercasing and dropping duplicates and blanks.
func (e *Entry) SetTags(tags []string) {
	seen := make(map[string]bool, len(tags))
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		t = strings.ToLower(strings.TrimSpace(t))
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	e.tags = out
	e.touch()
}

func (e *Entry) SetAttribute(name, value string) {
	e.attributes[name] = value
	e.touch()
}

// Publish moves the entry to PUBLISHED, or SCHEDULED when at is in the future.
func (e *Entry) Publish(at time.Time, now time.Time) error {
	next := vo.PubStatusPublished
	if at.After(now) {
		next = vo.PubStatusScheduled
	}
	if !e.status.CanTransitionTo(next) {
		return fmt.Errorf("cannot move entry from %s to %s", e.status, next)
	}
	at = at.UTC()
	e.status = next
	e.pubTime = &at
	e.touch()
	return nil
}

// IsPublished is true for a published entry whose publish time has passed.
func (e *Entry) IsPublished(now time.Time) bool {
	return e.status == vo.PubStatusPublished && e.pubTime != nil && !e.pubTime.After(now)
}

// CommentsStillAllowed is true when comments are on and, if a comment window
// is set, now falls inside it.
func (e *Entry) CommentsStillAllowed(now time.Time) bool {
	if !e.allowComments {
		return false
	}
	if e.commentDays == 0 {
		return true
	}
	if e.pubTime == nil {
		return true
	}
	return now.Before(e.pubTime.AddDate(0, 0, e.commentDays))
}

// DisplayTitle is the title, or the first words of the text when the title is
// blank. stripHTML must turn markup into plain text.
func (e *Entry) DisplayTitle(stripHTML func(string) string) string {
	if strings.TrimSpace(e.title) != "" {
		return e.title
	}
	words := strings.Fields(stripHTML(e.text))
	if len(words) > displayTitleWords {
		return strings.Join(words[:displayTitleWords], " ") + "..."
	}
	return strings.Join(words, " ")
}

func (e *Entry) touch() {
	e.updateTime = time.Now().UTC()
}

const (
	displayTitleWords = 5
	anchorWords       = 5
)

var nonAlphanumeric = regexp.MustCompile(`[^a-zA-Z0-9]+`)

// AnchorBase derives a URL anchor from the first words of the title, or of
// the text when the title is blank. Both are expected to be plain text.
func AnchorBase(title, text string) string {
	source := title
	if strings.TrimSpace(source) == "" {
		source = text
	}
	words := strings.Fields(strings.ToLower(nonAlphanumeric.ReplaceAllString(source, " ")))
	if len(words) > anchorWords {
		words = words[:anchorWords]
	}
	if len(words) == 0 {
		return "entry"
	}
	return strings.Join(words, "_")
}

func copyMap(m map[string]string) map[string]string {
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
