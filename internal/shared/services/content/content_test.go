package content

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarkdownToHTML(t *testing.T) {
	svc := NewService()

	out, err := svc.MarkdownToHTML("# Release\n\nRoller **6.1** is out.")
	require.NoError(t, err)
	assert.Contains(t, out, `<h1 id="release">Release</h1>`)
	assert.Contains(t, out, "<strong>6.1</strong>")
}

func TestSanitize(t *testing.T) {
	svc := NewService()

	out := svc.Sanitize(`<p onclick="steal()">hi<script>alert(1)</script></p><pre class="go">x</pre>`)
	assert.NotContains(t, out, "onclick")
	assert.NotContains(t, out, "<script>")
	assert.Contains(t, out, `<pre class="go">x</pre>`)
}

func TestStripHTML(t *testing.T) {
	svc := NewService()

	assert.Equal(t, "Dave's Weblog & Co", svc.StripHTML("<b>Dave&#39;s</b> <i>Weblog</i> &amp; Co"))
	assert.Equal(t, "", svc.StripHTML("<br/>"))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", Truncate("short", 10))
	assert.Equal(t, "the quick...", Truncate("the quick brown fox", 12))
	assert.Equal(t, "anything", Truncate("anything", 0))
}

func TestObfuscateEmail(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "plain address",
			in:   "write to me@mail.com today",
			want: "write to me-AT-mail-DOT-com today",
		},
		{
			name: "subdomain keeps inner dots",
			in:   "dev@lists.apache.org",
			want: "dev-AT-lists.apache-DOT-org",
		},
		{
			name: "no address untouched",
			in:   "nothing @ here.",
			want: "nothing @ here.",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ObfuscateEmail(tt.in))
		})
	}
}

func TestObfuscateEmailScramblesMailto(t *testing.T) {
	out := ObfuscateEmail(`<a href="mailto:me@mail.com">mail me</a>`)

	assert.Contains(t, out, "mailto:%6d%65%40")
	assert.False(t, strings.Contains(out, "me@mail.com"))
}
