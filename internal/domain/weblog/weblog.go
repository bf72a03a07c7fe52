package weblog

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"golang.org/x/text/language"

	"github.com/rollerweb/roller/internal/shared/locale"
)

var handlePattern = regexp.MustCompile(`^[a-z0-9\-]{1,48}$`)

// Weblog is a single blog hosted by the server. Handle is its URL segment.
type Weblog struct {
	id              string
	handle          string
	name            string
	tagline         string
	locale          string
	timezone        string
	enableMultiLang bool
	creatorID       string
	active          bool
	createdAt       time.Time
	updatedAt       time.Time
}

func NewWeblog(id, handle, name, localeStr, timezone, creatorID string) (*Weblog, error) {
	if id == "" {
		return nil, fmt.Errorf("weblog ID is required")
	}
	if !handlePattern.MatchString(handle) {
		return nil, fmt.Errorf("invalid weblog handle %q", handle)
	}
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("weblog name is required")
	}
	if _, err := locale.Resolve(localeStr, language.English); err != nil {
		return nil, err
	}
	if _, err := time.LoadLocation(timezone); err != nil {
		return nil, fmt.Errorf("invalid weblog timezone %q: %w", timezone, err)
	}

	now := time.Now().UTC()
	return &Weblog{
		id:        id,
		handle:    handle,
		name:      name,
		locale:    localeStr,
		timezone:  timezone,
		creatorID: creatorID,
		active:    true,
		createdAt: now,
		updatedAt: now,
	}, nil
}

// ReconstructWeblog rebuilds a weblog from storage without re-validating
// locale and timezone, which may predate current validation rules.
func ReconstructWeblog(
	id, handle, name, tagline, localeStr, timezone string,
	enableMultiLang bool,
	creatorID string,
	active bool,
	createdAt, updatedAt time.Time,
) (*Weblog, error) {
	if id == "" {
		return nil, fmt.Errorf("weblog ID cannot be empty")
	}
	if handle == "" {
		return nil, fmt.Errorf("weblog handle cannot be empty")
	}

	return &Weblog{
		id:              id,
		handle:          handle,
		name:            name,
		tagline:         tagline,
		locale:          localeStr,
		timezone:        timezone,
		enableMultiLang: enableMultiLang,
		creatorID:       creatorID,
		active:          active,
		createdAt:       createdAt,
		updatedAt:       updatedAt,
	}, nil
}

func (w *Weblog) ID() string            { return w.id }
func (w *Weblog) Handle() string        { return w.handle }
func (w *Weblog) Name() string          { return w.name }
func (w *Weblog) Tagline() string       { return w.tagline }
func (w *Weblog) Locale() string        { return w.locale }
func (w *Weblog) Timezone() string      { return w.timezone }
func (w *Weblog) EnableMultiLang() bool { return w.enableMultiLang }
func (w *Weblog) CreatorID() string     { return w.creatorID }
func (w *Weblog) IsActive() bool        { return w.active }
func (w *Weblog) CreatedAt() time.Time  { return w.createdAt }
func (w *Weblog) UpdatedAt() time.Time  { return w.updatedAt }

// LocaleTag is the weblog's configured locale, English when unset or unparsable.
func (w *Weblog) LocaleTag() language.Tag {
	tag, _ := locale.Resolve(w.locale, language.English)
	return tag
}

// Location is the weblog's timezone, UTC when unset or unknown.
func (w *Weblog) Location() *time.Location {
	if w.timezone == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(w.timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func (w *Weblog) SetTagline(tagline string) {
	w.tagline = tagline
	w.updatedAt = time.Now().UTC()
}

func (w *Weblog) SetMultiLang(enabled bool) {
	w.enableMultiLang = enabled
	w.updatedAt = time.Now().UTC()
}

func (w *Weblog) Deactivate() {
	w.active = false
	w.updatedAt = time.Now().UTC()
}

// Ref is the view of a weblog needed to build links and pick a default locale.
type Ref interface {
	Handle() string
	LocaleTag() language.Tag
}

var _ Ref = (*Weblog)(nil)
