package dto

import (
	"time"

	"github.com/rollerweb/roller/internal/shared/services/content"
)

// Utilities exposes text helpers to planet templates, e.g.
// {{.Utilities.Truncate (.Utilities.StripHTML .Content) 200}}.
type Utilities struct {
	content content.Service
}

func NewUtilities(c content.Service) Utilities {
	return Utilities{content: c}
}

func (u Utilities) StripHTML(s string) string {
	if u.content == nil {
		return s
	}
	return u.content.StripHTML(s)
}

func (u Utilities) Sanitize(s string) string {
	if u.content == nil {
		return s
	}
	return u.content.Sanitize(s)
}

func (u Utilities) Truncate(s string, max int) string {
	return content.Truncate(s, max)
}

func (u Utilities) FormatDate(t time.Time, layout string) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(layout)
}
