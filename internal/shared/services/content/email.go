package content

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	mailtoPattern = regexp.MustCompile(`mailto:([a-zA-Z0-9_.+\-]+@[a-zA-Z0-9\-.]+\.[a-zA-Z0-9]+)`)
	emailPattern  = regexp.MustCompile(`\b([a-zA-Z0-9_.+\-]+)@([a-zA-Z0-9\-.]+)\.([a-zA-Z0-9]+)\b`)
)

// ObfuscateEmail percent-encodes every byte of mailto: targets, which browsers
// still follow, then rewrites remaining addresses as me-AT-mail-DOT-com.
func ObfuscateEmail(s string) string {
	s = mailtoPattern.ReplaceAllStringFunc(s, func(m string) string {
		return "mailto:" + percentEncodeAll(strings.TrimPrefix(m, "mailto:"))
	})
	return emailPattern.ReplaceAllString(s, "${1}-AT-${2}-DOT-${3}")
}

func percentEncodeAll(s string) string {
	var b strings.Builder
	b.Grow(len(s) * 3)
	for i := 0; i < len(s); i++ {
		fmt.Fprintf(&b, "%%%02x", s[i])
	}
	return b.String()
}
