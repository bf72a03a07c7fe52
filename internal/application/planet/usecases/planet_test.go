package usecases

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rollerweb/roller/internal/application/planet/dto"
	"github.com/rollerweb/roller/internal/application/testutil"
	"github.com/rollerweb/roller/internal/domain/planet"
	"github.com/rollerweb/roller/internal/shared/logger"
	"github.com/rollerweb/roller/internal/shared/services/content"
)

var planetNow = time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)

type fakeFetcher struct {
	feeds map[string]*FetchedFeed
	calls atomic.Int32
}

func (f *fakeFetcher) Fetch(_ context.Context, feedURL string) (*FetchedFeed, error) {
	f.calls.Add(1)
	feed, ok := f.feeds[feedURL]
	if !ok {
		return nil, fmt.Errorf("404")
	}
	return feed, nil
}

// fakeRenderer writes the template name, group and entry titles.
type fakeRenderer struct {
	templates map[string]bool
	fail      bool
}

func (r fakeRenderer) Has(name string) bool { return r.templates[name] }

func (r fakeRenderer) Render(w io.Writer, name string, data dto.PageData) error {
	if r.fail {
		return fmt.Errorf("template error")
	}
	fmt.Fprintf(w, "%s|%s|", name, data.Title)
	if data.Group != nil {
		fmt.Fprintf(w, "group=%s|", data.Group.Handle)
		for _, e := range data.Group.Entries {
			fmt.Fprintf(w, "%s;", e.Title)
		}
		return nil
	}
	for _, g := range data.Groups {
		fmt.Fprintf(w, "%s:%d;", g.Handle, len(g.Entries))
	}
	return nil
}

func TestRefreshSubscriptionsUseCase(t *testing.T) {
	repo := testutil.NewMockPlanetRepository()
	fetcher := &fakeFetcher{feeds: map[string]*FetchedFeed{
		"https://a.example.com/feed": {
			Title:   "Blog A",
			SiteURL: "https://a.example.com",
			Entries: []planet.SubscriptionEntry{
				{GUID: "a1", Title: "A one", PubTime: planetNow},
				{Permalink: "https://a.example.com/2", Title: "A two", PubTime: planetNow},
				{Title: "no identity"},
			},
		},
	}}
	groups := []GroupSettings{{
		Group:    planet.Group{Handle: "java", Title: "Java"},
		FeedURLs: []string{"https://a.example.com/feed", "https://broken.example.com/feed"},
	}}
	uc := NewRefreshSubscriptionsUseCase(repo, fetcher, nil, groups, 2, logger.NewNopLogger())
	uc.now = func() time.Time { return planetNow }

	result, err := uc.Execute(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, result.Subscriptions)
	assert.Equal(t, 1, result.Failed)
	assert.Equal(t, 2, result.NewEntries)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "broken.example.com")

	subs, err := repo.ListSubscriptions(context.Background(), "java")
	require.NoError(t, err)
	require.Len(t, subs, 2)
	for _, s := range subs {
		if s.FeedURL() == "https://a.example.com/feed" {
			assert.Equal(t, "Blog A", s.Title())
			require.NotNil(t, s.LastUpdated())
			assert.Len(t, repo.EntriesOf(s.ID()), 2)
		} else {
			assert.Nil(t, s.LastUpdated())
		}
	}

	again, err := uc.Execute(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, again.Subscriptions)
	assert.Zero(t, again.NewEntries)
	assert.Equal(t, int32(4), fetcher.calls.Load())
}

func newGenerateUseCase(t *testing.T, renderer PageRenderer) (*GeneratePlanetUseCase, string) {
	t.Helper()
	repo := testutil.NewMockPlanetRepository(planet.ReconstructSubscription("sub_1", "java", "https://a.example.com/feed", "Blog A", "https://a.example.com", nil))
	_, err := repo.SaveEntries(context.Background(), "sub_1", []planet.SubscriptionEntry{
		{ID: "fe_1", GUID: "a1", Title: "Old", PubTime: planetNow.Add(-48 * time.Hour)},
		{ID: "fe_2", GUID: "a2", Title: "New", PubTime: planetNow.Add(-time.Hour)},
	})
	require.NoError(t, err)

	out := filepath.Join(t.TempDir(), "planet")
	uc := NewGeneratePlanetUseCase(repo, renderer, content.NewService(),
		[]planet.Group{{Handle: "java", Title: "Java"}, {Handle: "go", Title: "Go"}},
		GenerateSettings{Title: "Planet", MainPage: "planet.html", OutputDir: out, EntriesPerGroup: 10},
		logger.NewNopLogger(),
	)
	uc.now = func() time.Time { return planetNow }
	return uc, out
}

func TestGeneratePlanetUseCase(t *testing.T) {
	uc, out := newGenerateUseCase(t, fakeRenderer{templates: map[string]bool{"planet.html": true, GroupTemplate: true}})

	result, err := uc.Execute(context.Background())
	require.NoError(t, err)
	assert.Len(t, result.Files, 3)

	main, err := os.ReadFile(filepath.Join(out, "planet.html"))
	require.NoError(t, err)
	assert.Equal(t, "planet.html|Planet|java:2;go:0;", string(main))

	group, err := os.ReadFile(filepath.Join(out, "java", "index.html"))
	require.NoError(t, err)
	assert.Equal(t, "group.html|Planet|group=java|New;Old;", string(group))

	assert.DirExists(t, filepath.Join(out, "go"))
}

func TestGeneratePlanetUseCase_MaxAgeAndNoGroupTemplate(t *testing.T) {
	uc, out := newGenerateUseCase(t, fakeRenderer{templates: map[string]bool{"planet.html": true}})
	uc.settings.MaxAge = 24 * time.Hour

	result, err := uc.Execute(context.Background())
	require.NoError(t, err)
	assert.Len(t, result.Files, 1)

	main, err := os.ReadFile(filepath.Join(out, "planet.html"))
	require.NoError(t, err)
	assert.Equal(t, "planet.html|Planet|java:1;go:0;", string(main))
	assert.NoFileExists(t, filepath.Join(out, "java", "index.html"))
	assert.DirExists(t, filepath.Join(out, "java"))
}

func TestGeneratePlanetUseCase_RenderFailureLeavesNoFile(t *testing.T) {
	uc, out := newGenerateUseCase(t, fakeRenderer{fail: true})

	_, err := uc.Execute(context.Background())
	require.Error(t, err)
	assert.NoFileExists(t, filepath.Join(out, "planet.html"))

	entries, err := os.ReadDir(out)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestUtilities(t *testing.T) {
	u := dto.NewUtilities(content.NewService())
	assert.Equal(t, "bold", u.StripHTML("<b>bold</b>"))
	assert.Equal(t, "one two...", u.Truncate("one two three", 8))
	assert.Equal(t, "2024-05-01", u.FormatDate(planetNow, "2006-01-02"))
	assert.Empty(t, u.FormatDate(time.Time{}, "2006-01-02"))
}
