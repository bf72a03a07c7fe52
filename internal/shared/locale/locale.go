// Package locale converts weblog locale strings ("en", "en_US") into language tags.
package locale

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"

	"github.com/rollerweb/roller/internal/shared/logger"
)

// InvalidLocaleError reports a locale string that could not be parsed. The
// caller still receives a usable fallback tag alongside it.
type InvalidLocaleError struct {
	Raw    string
	Reason string
}

func (e *InvalidLocaleError) Error() string {
	return fmt.Sprintf("invalid locale %q: %s", e.Raw, e.Reason)
}

// Resolve parses raw in lang or lang_REGION form. An empty raw yields fallback
// with no error. A malformed raw, including one with more than two segments,
// yields fallback and an *InvalidLocaleError.
func Resolve(raw string, fallback language.Tag) (language.Tag, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return fallback, nil
	}

	parts := strings.Split(raw, "_")
	if len(parts) > 2 {
		return fallback, &InvalidLocaleError{Raw: raw, Reason: "expected lang or lang_REGION"}
	}

	base, err := language.ParseBase(parts[0])
	if err != nil || parts[0] == "" {
		return fallback, &InvalidLocaleError{Raw: raw, Reason: "unknown language"}
	}
	tagParts := []interface{}{base}

	if len(parts) == 2 {
		region, err := language.ParseRegion(parts[1])
		if err != nil || parts[1] == "" {
			return fallback, &InvalidLocaleError{Raw: raw, Reason: "unknown region"}
		}
		tagParts = append(tagParts, region)
	}

	tag, err := language.Compose(tagParts...)
	if err != nil {
		return fallback, &InvalidLocaleError{Raw: raw, Reason: err.Error()}
	}
	if tag == language.Und {
		return fallback, &InvalidLocaleError{Raw: raw, Reason: "undetermined language"}
	}
	return tag, nil
}

// ResolveOrDefault is Resolve with the input error logged at WARN.
func ResolveOrDefault(raw string, fallback language.Tag, log logger.Interface) language.Tag {
	tag, err := Resolve(raw, fallback)
	if err != nil {
		log.Warnw("falling back to default locale", "locale", raw, "fallback", fallback.String(), "error", err)
		return fallback
	}
	return tag
}

// Format renders tag in the lang_REGION form used by weblog settings and URLs.
// The undetermined tag formats as "".
func Format(tag language.Tag) string {
	if tag == language.Und {
		return ""
	}
	base, _, region := tag.Raw()
	if region == (language.Region{}) {
		return base.String()
	}
	return base.String() + "_" + region.String()
}
