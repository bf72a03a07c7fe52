package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/rollerweb/roller/internal/domain/entry"
	vo "github.com/rollerweb/roller/internal/domain/entry/valueobjects"
	"github.com/rollerweb/roller/internal/domain/media"
	"github.com/rollerweb/roller/internal/domain/planet"
	"github.com/rollerweb/roller/internal/domain/user"
	"github.com/rollerweb/roller/internal/domain/weblog"
	"github.com/rollerweb/roller/internal/infrastructure/database"
	"github.com/rollerweb/roller/internal/infrastructure/persistence/models"
	"github.com/rollerweb/roller/internal/shared/config"
	"github.com/rollerweb/roller/internal/shared/db"
	apperrors "github.com/rollerweb/roller/internal/shared/errors"
	"github.com/rollerweb/roller/internal/shared/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	conn, err := database.Open(&config.DatabaseConfig{Driver: database.DriverSQLite, Path: ":memory:"})
	require.NoError(t, err)
	require.NoError(t, conn.AutoMigrate(models.All()...))
	t.Cleanup(func() {
		if sqlDB, err := conn.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return conn
}

func createWeblog(t *testing.T, conn *gorm.DB, id, handle string) *weblog.Weblog {
	t.Helper()
	w, err := weblog.NewWeblog(id, handle, "Weblog "+handle, "en_US", "UTC", "usr_1")
	require.NoError(t, err)
	require.NoError(t, NewWeblogRepository(conn, logger.NewNopLogger()).Create(context.Background(), w))
	return w
}

func publishedEntry(t *testing.T, id, weblogID, categoryID, title, text string, at time.Time) *entry.Entry {
	t.Helper()
	e, err := entry.NewEntry(id, weblogID, categoryID, "usr_1", "",
		entry.Content{Title: title, Text: text, ContentType: "text/html"},
		entry.Settings{AllowComments: true, Locale: "en_US"})
	require.NoError(t, err)
	require.NoError(t, e.Publish(at, at))
	return e
}

func TestWeblogRepository(t *testing.T) {
	conn := setupTestDB(t)
	repo := NewWeblogRepository(conn, logger.NewNopLogger())
	ctx := context.Background()

	w := createWeblog(t, conn, "wb_1", "news")

	t.Run("get by handle", func(t *testing.T) {
		found, err := repo.GetByHandle(ctx, "news")
		require.NoError(t, err)
		assert.Equal(t, w.ID(), found.ID())
		assert.Equal(t, "en_US", found.Locale())
		assert.True(t, found.IsActive())
	})

	t.Run("unknown handle is not found", func(t *testing.T) {
		_, err := repo.GetByHandle(ctx, "missing")
		assert.True(t, apperrors.IsNotFoundError(err))
	})

	t.Run("duplicate handle conflicts", func(t *testing.T) {
		dup, err := weblog.NewWeblog("wb_2", "news", "Other", "en", "UTC", "usr_1")
		require.NoError(t, err)
		assert.True(t, apperrors.IsConflictError(repo.Create(ctx, dup)))
	})

	t.Run("update persists false booleans", func(t *testing.T) {
		w.SetMultiLang(true)
		require.NoError(t, repo.Update(ctx, w))
		w.Deactivate()
		require.NoError(t, repo.Update(ctx, w))

		found, err := repo.GetByID(ctx, "wb_1")
		require.NoError(t, err)
		assert.True(t, found.EnableMultiLang())
		assert.False(t, found.IsActive())

		active, err := repo.List(ctx, true)
		require.NoError(t, err)
		assert.Empty(t, active)
		all, err := repo.List(ctx, false)
		require.NoError(t, err)
		assert.Len(t, all, 1)
	})

	t.Run("update of unknown weblog is not found", func(t *testing.T) {
		ghost, err := weblog.NewWeblog("wb_ghost", "ghost", "Ghost", "en", "UTC", "usr_1")
		require.NoError(t, err)
		assert.True(t, apperrors.IsNotFoundError(repo.Update(ctx, ghost)))
	})
}

func TestCategoryAndPermissionRepositories(t *testing.T) {
	conn := setupTestDB(t)
	ctx := context.Background()
	createWeblog(t, conn, "wb_1", "news")

	cats := NewCategoryRepository(conn)
	for i, name := range []string{"Tech", "General"} {
		c, err := weblog.NewCategory("cat_"+name, "wb_1", name, "", 1-i)
		require.NoError(t, err)
		require.NoError(t, cats.Create(ctx, c))
	}

	list, err := cats.ListByWeblog(ctx, "wb_1")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "General", list[0].Name())
	assert.Equal(t, "Tech", list[1].Name())

	c, err := cats.GetByName(ctx, "wb_1", "Tech")
	require.NoError(t, err)
	assert.Equal(t, "cat_Tech", c.ID())
	_, err = cats.GetByName(ctx, "wb_1", "Nope")
	assert.True(t, apperrors.IsNotFoundError(err))

	perms := NewPermissionRepository(conn)
	p, err := weblog.NewPermission("usr_1", "wb_1", weblog.ActionPost)
	require.NoError(t, err)
	require.NoError(t, perms.Grant(ctx, p))
	p, err = weblog.NewPermission("usr_1", "wb_1", weblog.ActionAdmin)
	require.NoError(t, err)
	require.NoError(t, perms.Grant(ctx, p))

	granted, err := perms.ListByUser(ctx, "usr_1")
	require.NoError(t, err)
	require.Len(t, granted, 1)
	assert.True(t, granted[0].Has(weblog.ActionEditDraft))
	assert.Equal(t, "admin", granted[0].ActionsString())
}

func TestEntryRepository(t *testing.T) {
	conn := setupTestDB(t)
	ctx := context.Background()
	createWeblog(t, conn, "wb_1", "news")
	createWeblog(t, conn, "wb_2", "other")

	cat, err := weblog.NewCategory("cat_1", "wb_1", "Tech", "", 0)
	require.NoError(t, err)
	require.NoError(t, NewCategoryRepository(conn).Create(ctx, cat))

	repo := NewEntryRepository(conn, logger.NewNopLogger())
	base := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

	e1 := publishedEntry(t, "ent_1", "wb_1", "cat_1", "Go generics", "Type parameters in Go", base)
	e1.SetTags([]string{"Go", "generics", "go"})
	e1.SetAttribute("mood", "happy")
	require.NoError(t, repo.Create(ctx, e1))
	require.NoError(t, repo.Create(ctx, publishedEntry(t, "ent_2", "wb_1", "", "Rust", "Borrowing and GO", base.Add(time.Hour))))
	require.NoError(t, repo.Create(ctx, publishedEntry(t, "ent_3", "wb_1", "", "100% coverage", "Testing", base.Add(2*time.Hour))))
	require.NoError(t, repo.Create(ctx, publishedEntry(t, "ent_4", "wb_2", "", "Go elsewhere", "Other weblog", base)))
	future := publishedEntry(t, "ent_5", "wb_1", "", "Go future", "Not yet", base.Add(48*time.Hour))
	require.NoError(t, repo.Create(ctx, future))

	draft, err := entry.NewEntry("ent_6", "wb_1", "", "usr_1", "", entry.Content{Title: "Go draft"}, entry.Settings{})
	require.NoError(t, err)
	require.NoError(t, repo.Create(ctx, draft))

	now := base.Add(24 * time.Hour)

	t.Run("round trip keeps tags and attributes", func(t *testing.T) {
		found, err := repo.GetByAnchor(ctx, "wb_1", e1.Anchor())
		require.NoError(t, err)
		assert.Equal(t, []string{"generics", "go"}, found.Tags())
		assert.Equal(t, "happy", found.Attribute("mood"))
		assert.True(t, found.AllowComments())
		require.NotNil(t, found.PubTime())
		assert.True(t, base.Equal(*found.PubTime()))
		assert.Equal(t, vo.PubStatusPublished, found.Status())
	})

	t.Run("duplicate anchor conflicts", func(t *testing.T) {
		dup := publishedEntry(t, "ent_dup", "wb_1", "", "Go generics", "again", base)
		assert.True(t, apperrors.IsConflictError(repo.Create(ctx, dup)))
	})

	t.Run("search matches all terms case-insensitively newest first", func(t *testing.T) {
		got, err := repo.Search(ctx, entry.SearchCriteria{WeblogID: "wb_1", Terms: []string{"go"}}, now)
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, "ent_2", got[0].ID())
		assert.Equal(t, "ent_1", got[1].ID())

		got, err = repo.Search(ctx, entry.SearchCriteria{WeblogID: "wb_1", Terms: []string{"go", "type"}}, now)
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "ent_1", got[0].ID())
	})

	t.Run("search treats wildcard characters literally", func(t *testing.T) {
		got, err := repo.Search(ctx, entry.SearchCriteria{WeblogID: "wb_1", Terms: []string{"100%"}}, now)
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "ent_3", got[0].ID())

		got, err = repo.Search(ctx, entry.SearchCriteria{WeblogID: "wb_1", Terms: []string{"%"}}, now)
		require.NoError(t, err)
		assert.Len(t, got, 1)
	})

	t.Run("search filters by category and pages", func(t *testing.T) {
		got, err := repo.Search(ctx, entry.SearchCriteria{WeblogID: "wb_1", Terms: []string{"go"}, CategoryName: "Tech"}, now)
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "ent_1", got[0].ID())

		got, err = repo.Search(ctx, entry.SearchCriteria{WeblogID: "wb_1", Terms: []string{"go"}, CategoryName: "Missing"}, now)
		require.NoError(t, err)
		assert.Empty(t, got)

		got, err = repo.Search(ctx, entry.SearchCriteria{WeblogID: "wb_1", Terms: []string{"go"}, Offset: 1, Limit: 1}, now)
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "ent_1", got[0].ID())
	})

	t.Run("search filters by locale", func(t *testing.T) {
		got, err := repo.Search(ctx, entry.SearchCriteria{WeblogID: "wb_1", Terms: []string{"go"}, Locale: "de_DE"}, now)
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("update replaces tags", func(t *testing.T) {
		e1.SetTags([]string{"golang"})
		require.NoError(t, repo.Update(ctx, e1))
		found, err := repo.GetByID(ctx, "ent_1")
		require.NoError(t, err)
		assert.Equal(t, "golang", found.TagsAsString())
	})

	t.Run("list recent by status", func(t *testing.T) {
		got, err := repo.ListRecent(ctx, entry.ListCriteria{WeblogID: "wb_1", Status: vo.PubStatusDraft})
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "ent_6", got[0].ID())
	})

	t.Run("repositories join a context transaction", func(t *testing.T) {
		tm := db.NewTransactionManager(conn)
		err := tm.RunInTransaction(ctx, func(txCtx context.Context) error {
			e := publishedEntry(t, "ent_tx", "wb_1", "", "Rolled back", "gone", base)
			require.NoError(t, repo.Create(txCtx, e))
			return assert.AnError
		})
		require.ErrorIs(t, err, assert.AnError)
		_, err = repo.GetByID(ctx, "ent_tx")
		assert.True(t, apperrors.IsNotFoundError(err))
	})
}

func TestCommentRepository(t *testing.T) {
	conn := setupTestDB(t)
	ctx := context.Background()
	repo := NewCommentRepository(conn)

	first, err := entry.NewComment("cmt_1", "ent_1", "Ann", "ann@example.com", "", "first", "127.0.0.1")
	require.NoError(t, err)
	require.NoError(t, repo.Create(ctx, first))
	second, err := entry.NewComment("cmt_2", "ent_1", "Bob", "", "", "second", "")
	require.NoError(t, err)
	require.NoError(t, repo.Create(ctx, second))

	first.Approve()
	require.NoError(t, repo.Update(ctx, first))
	require.NoError(t, repo.Update(ctx, first))

	list, err := repo.ListByEntry(ctx, "ent_1")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "cmt_1", list[0].ID())
	assert.Equal(t, vo.CommentStatusApproved, list[0].Status())
	assert.Equal(t, vo.CommentStatusPending, list[1].Status())

	got, err := repo.GetByID(ctx, "cmt_1")
	require.NoError(t, err)
	assert.Equal(t, vo.CommentStatusApproved, got.Status())
	assert.Equal(t, "ent_1", got.EntryID())

	_, err = repo.GetByID(ctx, "cmt_missing")
	assert.True(t, apperrors.IsNotFoundError(err))
}

func TestUserRepository(t *testing.T) {
	conn := setupTestDB(t)
	ctx := context.Background()
	repo := NewUserRepository(conn, logger.NewNopLogger())

	u, err := user.NewUser("usr_1", "alice", "hash", "", "Alice A", "alice@example.com", "en_US", "UTC")
	require.NoError(t, err)
	require.NoError(t, repo.Create(ctx, u))

	found, err := repo.GetByUserName(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, "usr_1", found.ID())
	assert.Equal(t, "alice", found.ScreenName())
	assert.True(t, found.IsEnabled())

	dup, err := user.NewUser("usr_2", "alice", "hash", "", "", "", "", "")
	require.NoError(t, err)
	assert.True(t, apperrors.IsConflictError(repo.Create(ctx, dup)))

	_, err = repo.GetByID(ctx, "usr_missing")
	assert.True(t, apperrors.IsNotFoundError(err))
}

func TestMediaDirectoryRepository(t *testing.T) {
	conn := setupTestDB(t)
	ctx := context.Background()
	repo := NewMediaDirectoryRepository(conn)

	for _, name := range []string{"photos", "default"} {
		d, err := media.NewDirectory("dir_"+name, "wb_1", name, "")
		require.NoError(t, err)
		require.NoError(t, repo.Create(ctx, d))
	}

	list, err := repo.ListByWeblog(ctx, "wb_1")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "default", list[0].Name())

	d, err := media.NewDirectory("dir_x", "wb_1", "photos", "")
	require.NoError(t, err)
	assert.True(t, apperrors.IsConflictError(repo.Create(ctx, d)))
}

func TestPlanetRepository(t *testing.T) {
	conn := setupTestDB(t)
	ctx := context.Background()
	repo := NewPlanetRepository(conn, logger.NewNopLogger())

	sub, err := planet.NewSubscription("sub_1", "apache", "https://example.org/feed")
	require.NoError(t, err)
	require.NoError(t, repo.UpsertSubscription(ctx, sub))

	fetched := time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC)
	sub.MarkFetched("Example", "https://example.org", fetched)
	require.NoError(t, repo.UpsertSubscription(ctx, sub))

	subs, err := repo.ListSubscriptions(ctx, "apache")
	require.NoError(t, err)
	require.Len(t, subs, 1)
	assert.Equal(t, "Example", subs[0].Title())
	require.NotNil(t, subs[0].LastUpdated())
	assert.True(t, fetched.Equal(*subs[0].LastUpdated()))

	entries := []planet.SubscriptionEntry{
		{ID: "fe_1", GUID: "a", Title: "A", PubTime: fetched.Add(-2 * time.Hour)},
		{ID: "fe_2", GUID: "b", Title: "B", PubTime: fetched.Add(-time.Hour)},
		{ID: "fe_3", GUID: "c", Title: "C", PubTime: fetched.Add(-72 * time.Hour)},
	}
	saved, err := repo.SaveEntries(ctx, "sub_1", entries)
	require.NoError(t, err)
	assert.Equal(t, 3, saved)

	saved, err = repo.SaveEntries(ctx, "sub_1", []planet.SubscriptionEntry{
		{ID: "fe_4", GUID: "a", Title: "A again", PubTime: fetched},
		{ID: "fe_5", GUID: "d", Title: "D", PubTime: fetched},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, saved)

	recent, err := repo.RecentEntries(ctx, "apache", fetched.Add(-24*time.Hour), 2)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, "D", recent[0].Title)
	assert.Equal(t, "B", recent[1].Title)
	assert.Equal(t, "Example", recent[0].SourceTitle)
	assert.Equal(t, "https://example.org", recent[0].SourceURL)

	all, err := repo.ListAllSubscriptions(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)

	other, err := repo.RecentEntries(ctx, "other", time.Time{}, 10)
	require.NoError(t, err)
	assert.Empty(t, other)
}
