package testutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/rollerweb/roller/internal/domain/entry"
	vo "github.com/rollerweb/roller/internal/domain/entry/valueobjects"
	"github.com/rollerweb/roller/internal/domain/weblog"
)

// Weblog builds an active weblog with the given handle.
func Weblog(t testing.TB, id, handle, localeStr, timezone string) *weblog.Weblog {
	t.Helper()
	w, err := weblog.NewWeblog(id, handle, "Weblog "+handle, localeStr, timezone, "usr_owner")
	require.NoError(t, err)
	return w
}

// PublishedEntry builds an entry published at pubTime.
func PublishedEntry(t testing.TB, id, weblogID, anchor, title, text string, pubTime time.Time) *entry.Entry {
	t.Helper()
	at := pubTime.UTC()
	e, err := entry.ReconstructEntry(
		id, weblogID, "", "usr_owner", anchor,
		entry.Content{Title: title, Text: text},
		entry.Settings{AllowComments: true},
		vo.PubStatusPublished, &at, at, nil, nil,
	)
	require.NoError(t, err)
	return e
}

// DraftEntry builds an unpublished entry.
func DraftEntry(t testing.TB, id, weblogID, anchor, title string) *entry.Entry {
	t.Helper()
	e, err := entry.NewEntry(id, weblogID, "", "usr_owner", anchor, entry.Content{Title: title}, entry.Settings{})
	require.NoError(t, err)
	return e
}
