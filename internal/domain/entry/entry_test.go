package entry

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	vo "github.com/rollerweb/roller/internal/domain/entry/valueobjects"
)

func newTestEntry(t *testing.T, title, text string, settings Settings) *Entry {
	t.Helper()
	e, err := NewEntry("ent_1", "wb_1", "cat_1", "usr_1", "", Content{Title: title, Text: text}, settings)
	require.NoError(t, err)
	return e
}

func TestNewEntryValidation(t *testing.T) {
	_, err := NewEntry("", "wb_1", "", "usr_1", "", Content{Title: "x"}, Settings{})
	assert.Error(t, err)

	_, err = NewEntry("ent_1", "wb_1", "", "usr_1", "", Content{}, Settings{})
	assert.Error(t, err)

	_, err = NewEntry("ent_1", "wb_1", "", "usr_1", "", Content{Title: strings.Repeat("a", 256)}, Settings{})
	assert.Error(t, err)

	_, err = NewEntry("ent_1", "wb_1", "", "usr_1", "", Content{Title: "x"}, Settings{CommentDays: -1})
	assert.Error(t, err)
}

func TestNewEntryIsDraftWithAnchor(t *testing.T) {
	e := newTestEntry(t, "Roller 6.1 Released!", "", Settings{})

	assert.Equal(t, vo.PubStatusDraft, e.Status())
	assert.Equal(t, "roller_6_1_released", e.Anchor())
	assert.Nil(t, e.PubTime())
}

func TestAnchorBase(t *testing.T) {
	assert.Equal(t, "one_two_three_four_five", AnchorBase("One two, three; four five six", ""))
	assert.Equal(t, "from_the_text", AnchorBase("  ", "From the text"))
	assert.Equal(t, "entry", AnchorBase("", "!!!"))
}

func TestPublish(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	e := newTestEntry(t, "Now", "", Settings{})
	require.NoError(t, e.Publish(now.Add(-time.Hour), now))
	assert.Equal(t, vo.PubStatusPublished, e.Status())
	assert.True(t, e.IsPublished(now))

	future := newTestEntry(t, "Later", "", Settings{})
	require.NoError(t, future.Publish(now.Add(24*time.Hour), now))
	assert.Equal(t, vo.PubStatusScheduled, future.Status())
	assert.False(t, future.IsPublished(now))

	assert.Error(t, e.Publish(now, now), "published entries cannot be published again")
}

func TestCommentsStillAllowed(t *testing.T) {
	pub := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		settings Settings
		now      time.Time
		want     bool
	}{
		{name: "comments off", settings: Settings{AllowComments: false}, now: pub, want: false},
		{name: "no window", settings: Settings{AllowComments: true}, now: pub.AddDate(5, 0, 0), want: true},
		{name: "inside window", settings: Settings{AllowComments: true, CommentDays: 7}, now: pub.AddDate(0, 0, 6), want: true},
		{name: "window closed", settings: Settings{AllowComments: true, CommentDays: 7}, now: pub.AddDate(0, 0, 7), want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, err := ReconstructEntry("ent_1", "wb_1", "", "usr_1", "a", Content{Title: "t"}, tt.settings,
				vo.PubStatusPublished, &pub, pub, nil, nil)
			require.NoError(t, err)
			assert.Equal(t, tt.want, e.CommentsStillAllowed(tt.now))
		})
	}
}

func TestTags(t *testing.T) {
	e := newTestEntry(t, "Tags", "", Settings{})
	e.SetTags([]string{"Go", "roller", " go ", "", "apache"})

	assert.Equal(t, []string{"apache", "go", "roller"}, e.Tags())
	assert.Equal(t, "apache go roller", e.TagsAsString())
}

func TestDisplayTitle(t *testing.T) {
	strip := func(s string) string { return strings.NewReplacer("<p>", "", "</p>", "").Replace(s) }

	titled := newTestEntry(t, "Has a title", "body", Settings{})
	assert.Equal(t, "Has a title", titled.DisplayTitle(strip))

	untitled := newTestEntry(t, "", "<p>one two three four five six seven</p>", Settings{})
	assert.Equal(t, "one two three four five...", untitled.DisplayTitle(strip))
}

func TestAttributesAreCopied(t *testing.T) {
	e := newTestEntry(t, "Attrs", "", Settings{})
	e.SetAttribute("mediafile", "cover.png")

	attrs := e.Attributes()
	attrs["mediafile"] = "changed"
	assert.Equal(t, "cover.png", e.Attribute("mediafile"))
}
