// Package testutil provides in-memory repositories for application layer tests.
package testutil

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/rollerweb/roller/internal/domain/entry"
	"github.com/rollerweb/roller/internal/domain/media"
	"github.com/rollerweb/roller/internal/domain/planet"
	"github.com/rollerweb/roller/internal/domain/user"
	"github.com/rollerweb/roller/internal/domain/weblog"
	"github.com/rollerweb/roller/internal/shared/errors"
)

// MockWeblogRepository is an in-memory weblog.Repository.
type MockWeblogRepository struct {
	mu      sync.RWMutex
	weblogs map[string]*weblog.Weblog

	// Error injection for testing
	GetError error
}

func NewMockWeblogRepository(weblogs ...*weblog.Weblog) *MockWeblogRepository {
	m := &MockWeblogRepository{weblogs: make(map[string]*weblog.Weblog)}
	for _, w := range weblogs {
		m.weblogs[w.ID()] = w
	}
	return m
}

func (m *MockWeblogRepository) Create(ctx context.Context, w *weblog.Weblog) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.weblogs {
		if existing.Handle() == w.Handle() {
			return errors.NewConflictError("weblog handle already exists", w.Handle())
		}
	}
	m.weblogs[w.ID()] = w
	return nil
}

func (m *MockWeblogRepository) Update(ctx context.Context, w *weblog.Weblog) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.weblogs[w.ID()]; !ok {
		return errors.NewNotFoundError("weblog not found", w.ID())
	}
	m.weblogs[w.ID()] = w
	return nil
}

func (m *MockWeblogRepository) GetByID(ctx context.Context, id string) (*weblog.Weblog, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.GetError != nil {
		return nil, m.GetError
	}
	w, ok := m.weblogs[id]
	if !ok {
		return nil, errors.NewNotFoundError("weblog not found", id)
	}
	return w, nil
}

func (m *MockWeblogRepository) GetByHandle(ctx context.Context, handle string) (*weblog.Weblog, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.GetError != nil {
		return nil, m.GetError
	}
	for _, w := range m.weblogs {
		if w.Handle() == handle {
			return w, nil
		}
	}
	return nil, errors.NewNotFoundError("weblog not found", handle)
}

func (m *MockWeblogRepository) List(ctx context.Context, activeOnly bool) ([]*weblog.Weblog, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*weblog.Weblog, 0, len(m.weblogs))
	for _, w := range m.weblogs {
		if activeOnly && !w.IsActive() {
			continue
		}
		out = append(out, w)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Handle() < out[j].Handle() })
	return out, nil
}

// MockCategoryRepository is an in-memory weblog.CategoryRepository.
type MockCategoryRepository struct {
	mu         sync.RWMutex
	categories []*weblog.Category

	ListError error
}

func NewMockCategoryRepository(categories ...*weblog.Category) *MockCategoryRepository {
	return &MockCategoryRepository{categories: categories}
}

func (m *MockCategoryRepository) Create(ctx context.Context, c *weblog.Category) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.categories = append(m.categories, c)
	return nil
}

func (m *MockCategoryRepository) ListByWeblog(ctx context.Context, weblogID string) ([]*weblog.Category, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.ListError != nil {
		return nil, m.ListError
	}
	var out []*weblog.Category
	for _, c := range m.categories {
		if c.WeblogID() == weblogID {
			out = append(out, c)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Position() < out[j].Position() })
	return out, nil
}

func (m *MockCategoryRepository) GetByName(ctx context.Context, weblogID, name string) (*weblog.Category, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, c := range m.categories {
		if c.WeblogID() == weblogID && c.Name() == name {
			return c, nil
		}
	}
	return nil, errors.NewNotFoundError("category not found", name)
}

// MockPermissionRepository is an in-memory weblog.PermissionRepository.
type MockPermissionRepository struct {
	mu          sync.RWMutex
	permissions []*weblog.Permission
}

func NewMockPermissionRepository(perms ...*weblog.Permission) *MockPermissionRepository {
	return &MockPermissionRepository{permissions: perms}
}

func (m *MockPermissionRepository) Grant(ctx context.Context, p *weblog.Permission) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.permissions = append(m.permissions, p)
	return nil
}

func (m *MockPermissionRepository) ListByUser(ctx context.Context, userID string) ([]*weblog.Permission, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*weblog.Permission
	for _, p := range m.permissions {
		if p.UserID() == userID {
			out = append(out, p)
		}
	}
	return out, nil
}

// MockEntryRepository is an in-memory entry.Repository. Search matches terms
// against title and text, case-insensitively.
type MockEntryRepository struct {
	mu         sync.RWMutex
	entries    map[string]*entry.Entry
	categories *MockCategoryRepository

	// LastSearch records the criteria of the most recent Search call.
	LastSearch  entry.SearchCriteria
	SearchError error
}

// NewMockEntryRepository creates the repository. categories resolves
// SearchCriteria.CategoryName and may be nil.
func NewMockEntryRepository(categories *MockCategoryRepository, entries ...*entry.Entry) *MockEntryRepository {
	m := &MockEntryRepository{entries: make(map[string]*entry.Entry), categories: categories}
	for _, e := range entries {
		m.entries[e.ID()] = e
	}
	return m
}

func (m *MockEntryRepository) Create(ctx context.Context, e *entry.Entry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[e.ID()] = e
	return nil
}

func (m *MockEntryRepository) Update(ctx context.Context, e *entry.Entry) error {
	return m.Create(ctx, e)
}

func (m *MockEntryRepository) GetByID(ctx context.Context, id string) (*entry.Entry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	e, ok := m.entries[id]
	if !ok {
		return nil, errors.NewNotFoundError("entry not found", id)
	}
	return e, nil
}

func (m *MockEntryRepository) GetByAnchor(ctx context.Context, weblogID, anchor string) (*entry.Entry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, e := range m.entries {
		if e.WeblogID() == weblogID && e.Anchor() == anchor {
			return e, nil
		}
	}
	return nil, errors.NewNotFoundError("entry not found", anchor)
}

func (m *MockEntryRepository) Search(ctx context.Context, c entry.SearchCriteria, now time.Time) ([]*entry.Entry, error) {
	m.mu.Lock()
	m.LastSearch = c
	m.mu.Unlock()

	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.SearchError != nil {
		return nil, m.SearchError
	}

	categoryID := ""
	if c.CategoryName != "" && m.categories != nil {
		cat, err := m.categories.GetByName(ctx, c.WeblogID, c.CategoryName)
		if err != nil {
			return nil, nil
		}
		categoryID = cat.ID()
	}

	var out []*entry.Entry
	for _, e := range m.entries {
		if e.WeblogID() != c.WeblogID || !e.IsPublished(now) {
			continue
		}
		if categoryID != "" && e.CategoryID() != categoryID {
			continue
		}
		if c.Locale != "" && e.Locale() != c.Locale {
			continue
		}
		if !matchesAll(e, c.Terms) {
			continue
		}
		out = append(out, e)
	}
	sortNewestFirst(out)
	return page(out, c.Offset, c.Limit), nil
}

func (m *MockEntryRepository) ListRecent(ctx context.Context, c entry.ListCriteria) ([]*entry.Entry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*entry.Entry
	for _, e := range m.entries {
		if e.WeblogID() != c.WeblogID {
			continue
		}
		if c.Status != "" && e.Status() != c.Status {
			continue
		}
		out = append(out, e)
	}
	sortNewestFirst(out)
	return page(out, 0, c.Limit), nil
}

func matchesAll(e *entry.Entry, terms []string) bool {
	haystack := strings.ToLower(e.Title() + " " + e.Text())
	for _, t := range terms {
		if !strings.Contains(haystack, strings.ToLower(t)) {
			return false
		}
	}
	return true
}

func sortNewestFirst(entries []*entry.Entry) {
	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i].PubTime(), entries[j].PubTime()
		if a == nil || b == nil {
			return b == nil && a != nil
		}
		if a.Equal(*b) {
			return entries[i].ID() < entries[j].ID()
		}
		return a.After(*b)
	})
}

func page[T any](items []T, offset, limit int) []T {
	if offset >= len(items) {
		return nil
	}
	items = items[offset:]
	if limit > 0 && len(items) > limit {
		items = items[:limit]
	}
	return items
}

// MockCommentRepository is an in-memory entry.CommentRepository.
type MockCommentRepository struct {
	mu       sync.RWMutex
	comments []*entry.Comment
}

func NewMockCommentRepository(comments ...*entry.Comment) *MockCommentRepository {
	return &MockCommentRepository{comments: comments}
}

func (m *MockCommentRepository) Create(ctx context.Context, c *entry.Comment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.comments = append(m.comments, c)
	return nil
}

func (m *MockCommentRepository) Update(ctx context.Context, c *entry.Comment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, existing := range m.comments {
		if existing.ID() == c.ID() {
			m.comments[i] = c
			return nil
		}
	}
	return errors.NewNotFoundError("comment not found", c.ID())
}

func (m *MockCommentRepository) GetByID(ctx context.Context, id string) (*entry.Comment, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, c := range m.comments {
		if c.ID() == id {
			return c, nil
		}
	}
	return nil, errors.NewNotFoundError("comment not found", id)
}

func (m *MockCommentRepository) ListByEntry(ctx context.Context, entryID string) ([]*entry.Comment, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*entry.Comment
	for _, c := range m.comments {
		if c.EntryID() == entryID {
			out = append(out, c)
		}
	}
	return out, nil
}

// MockUserRepository is an in-memory user.Repository.
type MockUserRepository struct {
	mu    sync.RWMutex
	users map[string]*user.User

	CreateError error
}

func NewMockUserRepository(users ...*user.User) *MockUserRepository {
	m := &MockUserRepository{users: make(map[string]*user.User)}
	for _, u := range users {
		m.users[u.ID()] = u
	}
	return m
}

func (m *MockUserRepository) Create(ctx context.Context, u *user.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.CreateError != nil {
		return m.CreateError
	}
	for _, existing := range m.users {
		if existing.UserName() == u.UserName() {
			return errors.NewConflictError("user name already exists", u.UserName())
		}
	}
	m.users[u.ID()] = u
	return nil
}

func (m *MockUserRepository) GetByID(ctx context.Context, id string) (*user.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	u, ok := m.users[id]
	if !ok {
		return nil, errors.NewNotFoundError("user not found", id)
	}
	return u, nil
}

func (m *MockUserRepository) GetByUserName(ctx context.Context, userName string) (*user.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, u := range m.users {
		if u.UserName() == userName {
			return u, nil
		}
	}
	return nil, errors.NewNotFoundError("user not found", userName)
}

// Count returns the number of stored users.
func (m *MockUserRepository) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.users)
}

// MockDirectoryRepository is an in-memory media.Repository.
type MockDirectoryRepository struct {
	mu   sync.RWMutex
	dirs []*media.Directory
}

func NewMockDirectoryRepository(dirs ...*media.Directory) *MockDirectoryRepository {
	return &MockDirectoryRepository{dirs: dirs}
}

func (m *MockDirectoryRepository) Create(ctx context.Context, d *media.Directory) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.dirs = append(m.dirs, d)
	return nil
}

func (m *MockDirectoryRepository) ListByWeblog(ctx context.Context, weblogID string) ([]*media.Directory, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*media.Directory
	for _, d := range m.dirs {
		if d.WeblogID() == weblogID {
			out = append(out, d)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name() < out[j].Name() })
	return out, nil
}

// MockPlanetRepository is an in-memory planet.Repository.
type MockPlanetRepository struct {
	mu      sync.RWMutex
	subs    []*planet.Subscription
	entries map[string][]planet.SubscriptionEntry
}

func NewMockPlanetRepository(subs ...*planet.Subscription) *MockPlanetRepository {
	return &MockPlanetRepository{subs: subs, entries: make(map[string][]planet.SubscriptionEntry)}
}

func (m *MockPlanetRepository) ListSubscriptions(ctx context.Context, groupHandle string) ([]*planet.Subscription, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*planet.Subscription
	for _, s := range m.subs {
		if s.GroupHandle() == groupHandle {
			out = append(out, s)
		}
	}
	return out, nil
}

func (m *MockPlanetRepository) ListAllSubscriptions(ctx context.Context) ([]*planet.Subscription, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]*planet.Subscription(nil), m.subs...), nil
}

func (m *MockPlanetRepository) UpsertSubscription(ctx context.Context, s *planet.Subscription) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, existing := range m.subs {
		if existing.GroupHandle() == s.GroupHandle() && existing.FeedURL() == s.FeedURL() {
			m.subs[i] = s
			return nil
		}
	}
	m.subs = append(m.subs, s)
	return nil
}

func (m *MockPlanetRepository) SaveEntries(ctx context.Context, subscriptionID string, entries []planet.SubscriptionEntry) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	seen := make(map[string]bool)
	for _, e := range m.entries[subscriptionID] {
		seen[e.GUID] = true
	}
	saved := 0
	for _, e := range entries {
		if seen[e.GUID] {
			continue
		}
		seen[e.GUID] = true
		e.SubscriptionID = subscriptionID
		m.entries[subscriptionID] = append(m.entries[subscriptionID], e)
		saved++
	}
	return saved, nil
}

func (m *MockPlanetRepository) RecentEntries(ctx context.Context, groupHandle string, since time.Time, limit int) ([]planet.GroupEntry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []planet.GroupEntry
	for _, s := range m.subs {
		if s.GroupHandle() != groupHandle {
			continue
		}
		for _, e := range m.entries[s.ID()] {
			if e.PubTime.Before(since) {
				continue
			}
			out = append(out, planet.GroupEntry{SubscriptionEntry: e, SourceTitle: s.DisplayTitle(), SourceURL: s.SiteURL()})
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].PubTime.After(out[j].PubTime) })
	return page(out, 0, limit), nil
}

// EntriesOf returns the stored entries of one subscription.
func (m *MockPlanetRepository) EntriesOf(subscriptionID string) []planet.SubscriptionEntry {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]planet.SubscriptionEntry(nil), m.entries[subscriptionID]...)
}
