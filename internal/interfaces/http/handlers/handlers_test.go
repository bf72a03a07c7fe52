package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	atomdto "github.com/rollerweb/roller/internal/application/atompub/dto"
	entrydto "github.com/rollerweb/roller/internal/application/entry/dto"
	searchdto "github.com/rollerweb/roller/internal/application/search/dto"
	userdto "github.com/rollerweb/roller/internal/application/user/dto"
	"github.com/rollerweb/roller/internal/application/user/usecases"
	"github.com/rollerweb/roller/internal/interfaces/http/handlers/testutil"
	"github.com/rollerweb/roller/internal/shared/constants"
	"github.com/rollerweb/roller/internal/shared/errors"
	"github.com/rollerweb/roller/internal/shared/logger"
)

// =====================================================================
// Mock use cases
// =====================================================================

type mockSearchUC struct {
	got    *searchdto.SearchEntriesRequest
	result *searchdto.SearchEntriesResponse
	err    error
}

func (m *mockSearchUC) Execute(ctx context.Context, req searchdto.SearchEntriesRequest) (*searchdto.SearchEntriesResponse, error) {
	m.got = &req
	return m.result, m.err
}

type mockGetEntryUC struct {
	got    *entrydto.GetEntryRequest
	result *entrydto.EntryResponse
	err    error
}

func (m *mockGetEntryUC) Execute(ctx context.Context, req entrydto.GetEntryRequest) (*entrydto.EntryResponse, error) {
	m.got = &req
	return m.result, m.err
}

type mockModerateUC struct {
	got    *entrydto.ModerateCommentRequest
	result *entrydto.CommentStatusResponse
	err    error
}

func (m *mockModerateUC) Execute(ctx context.Context, req entrydto.ModerateCommentRequest) (*entrydto.CommentStatusResponse, error) {
	m.got = &req
	return m.result, m.err
}

type mockLoginUC struct {
	result *userdto.LoginResponse
	err    error
}

func (m *mockLoginUC) Execute(ctx context.Context, req userdto.LoginRequest) (*userdto.LoginResponse, error) {
	return m.result, m.err
}

type mockRefresher struct {
	pair *usecases.TokenPair
	err  error
}

func (m *mockRefresher) Refresh(refreshToken string) (*usecases.TokenPair, error) {
	return m.pair, m.err
}

type mockServiceDocUC struct {
	got    *atomdto.ServiceDocumentRequest
	result *atomdto.ServiceDocument
	err    error
}

func (m *mockServiceDocUC) Execute(ctx context.Context, req atomdto.ServiceDocumentRequest) (*atomdto.ServiceDocument, error) {
	m.got = &req
	return m.result, m.err
}

func parseError(t *testing.T, body []byte) *testutil.ErrorInfo {
	t.Helper()
	var resp testutil.APIResponse
	require.NoError(t, json.Unmarshal(body, &resp))
	assert.False(t, resp.Success)
	require.NotNil(t, resp.Error)
	return resp.Error
}

// =====================================================================
// SearchHandler
// =====================================================================

func TestSearchHandler_Search_Success(t *testing.T) {
	uc := &mockSearchUC{result: &searchdto.SearchEntriesResponse{Weblog: "myblog", Query: "go lang", Page: 1, HasMore: true}}
	handler := NewSearchHandler(uc, logger.NewNopLogger())

	c, w := testutil.NewTestContext(http.MethodGet, "/myblog/search", nil)
	testutil.SetURLParam(c, "handle", "myblog")
	testutil.SetQueryParams(c, map[string]string{"q": "go lang", "cat": "Tech", "page": "1", "locale": "de"})

	handler.Search(c)

	assert.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, uc.got)
	assert.Equal(t, searchdto.SearchEntriesRequest{
		Weblog: "myblog", Query: "go lang", Category: "Tech", Locale: "de", Page: 1,
	}, *uc.got)

	var resp testutil.APIResponse
	require.NoError(t, testutil.ParseResponse(w, &resp))
	assert.True(t, resp.Success)

	var data searchdto.SearchEntriesResponse
	require.NoError(t, json.Unmarshal(resp.Data, &data))
	assert.True(t, data.HasMore)
	assert.Equal(t, "go lang", data.Query)
}

func TestSearchHandler_Search_PathLocale(t *testing.T) {
	uc := &mockSearchUC{result: &searchdto.SearchEntriesResponse{Weblog: "myblog"}}
	handler := NewSearchHandler(uc, logger.NewNopLogger())

	c, w := testutil.NewTestContext(http.MethodGet, "/myblog/fr/search", nil)
	testutil.SetURLParam(c, "handle", "myblog")
	testutil.SetURLParam(c, "locale", "fr")
	testutil.SetQueryParams(c, map[string]string{"q": "go", "locale": "de"})

	handler.Search(c)

	assert.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, uc.got)
	assert.Equal(t, "fr", uc.got.Locale)
}

func TestSearchHandler_Search_BadRequests(t *testing.T) {
	tests := []struct {
		name   string
		handle string
		query  map[string]string
	}{
		{"missing query", "myblog", map[string]string{}},
		{"negative page", "myblog", map[string]string{"q": "go", "page": "-1"}},
		{"non numeric page", "myblog", map[string]string{"q": "go", "page": "two"}},
		{"page past the last", "myblog", map[string]string{"q": "go", "page": "1000001"}},
		{"page at max int", "myblog", map[string]string{"q": "go", "page": "9223372036854775807"}},
		{"page overflowing int", "myblog", map[string]string{"q": "go", "page": "99999999999999999999"}},
		{"invalid handle", "My Blog!", map[string]string{"q": "go"}},
		{"query too long", "myblog", map[string]string{"q": strings.Repeat("x", 256)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := &mockSearchUC{}
			handler := NewSearchHandler(uc, logger.NewNopLogger())

			c, w := testutil.NewTestContext(http.MethodGet, "/x/search", nil)
			testutil.SetURLParam(c, "handle", tt.handle)
			testutil.SetQueryParams(c, tt.query)

			handler.Search(c)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Nil(t, uc.got, "use case must not run")
			parseError(t, w.Body.Bytes())
		})
	}
}

func TestSearchHandler_Search_UseCaseErrors(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"unknown weblog", errors.NewNotFoundError("weblog not found", "nope"), http.StatusNotFound},
		{"validation", errors.NewValidationError("page number must not be negative"), http.StatusBadRequest},
		{"opaque failure", fmt.Errorf("db down"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := NewSearchHandler(&mockSearchUC{err: tt.err}, logger.NewNopLogger())

			c, w := testutil.NewTestContext(http.MethodGet, "/myblog/search", nil)
			testutil.SetURLParam(c, "handle", "myblog")
			testutil.SetQueryParams(c, map[string]string{"q": "go"})

			handler.Search(c)

			assert.Equal(t, tt.want, w.Code)
			info := parseError(t, w.Body.Bytes())
			if tt.want == http.StatusInternalServerError {
				assert.Equal(t, constants.ErrMsgInternalServerError, info.Message)
			}
		})
	}
}

// =====================================================================
// EntryHandler
// =====================================================================

func TestEntryHandler_GetEntry(t *testing.T) {
	uc := &mockGetEntryUC{result: &entrydto.EntryResponse{ID: "ent_1", Anchor: "hello-world", Title: "Hello"}}
	handler := NewEntryHandler(uc, logger.NewNopLogger())

	c, w := testutil.NewTestContext(http.MethodGet, "/myblog/entry/hello-world", nil)
	testutil.SetURLParam(c, "handle", "myblog")
	testutil.SetURLParam(c, "anchor", "hello-world")

	handler.GetEntry(c)

	assert.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, uc.got)
	assert.Equal(t, "myblog", uc.got.Weblog)
	assert.Equal(t, "hello-world", uc.got.Anchor)
}

func TestEntryHandler_GetEntry_NotFound(t *testing.T) {
	uc := &mockGetEntryUC{err: errors.NewNotFoundError("entry not found", "draft")}
	handler := NewEntryHandler(uc, logger.NewNopLogger())

	c, w := testutil.NewTestContext(http.MethodGet, "/myblog/entry/draft", nil)
	testutil.SetURLParam(c, "handle", "myblog")
	testutil.SetURLParam(c, "anchor", "draft")

	handler.GetEntry(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, string(errors.ErrorTypeNotFound), parseError(t, w.Body.Bytes()).Type)
}

// =====================================================================
// AuthHandler
// =====================================================================

func TestAuthHandler_Login(t *testing.T) {
	uc := &mockLoginUC{result: &userdto.LoginResponse{AccessToken: "access", RefreshToken: "refresh", TokenType: "Bearer", ExpiresIn: 1800}}
	handler := NewAuthHandler(uc, nil, logger.NewNopLogger())

	c, w := testutil.NewTestContext(http.MethodPost, "/api/auth/login", userdto.LoginRequest{UserName: "alice", Password: "s3cret"})
	handler.Login(c)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp testutil.APIResponse
	require.NoError(t, testutil.ParseResponse(w, &resp))
	assert.True(t, resp.Success)

	var data userdto.LoginResponse
	require.NoError(t, json.Unmarshal(resp.Data, &data))
	assert.Equal(t, "access", data.AccessToken)
}

func TestAuthHandler_Login_MissingFields(t *testing.T) {
	uc := &mockLoginUC{}
	handler := NewAuthHandler(uc, nil, logger.NewNopLogger())

	c, w := testutil.NewTestContext(http.MethodPost, "/api/auth/login", map[string]string{"username": "alice"})
	handler.Login(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, string(errors.ErrorTypeValidation), parseError(t, w.Body.Bytes()).Type)
}

func TestAuthHandler_Login_InvalidCredentials(t *testing.T) {
	uc := &mockLoginUC{err: errors.NewUnauthorizedError("invalid username or password")}
	handler := NewAuthHandler(uc, nil, logger.NewNopLogger())

	c, w := testutil.NewTestContext(http.MethodPost, "/api/auth/login", userdto.LoginRequest{UserName: "alice", Password: "wrong"})
	handler.Login(c)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthHandler_RefreshToken(t *testing.T) {
	refresher := &mockRefresher{pair: &usecases.TokenPair{AccessToken: "a2", RefreshToken: "r2", ExpiresIn: 60}}
	handler := NewAuthHandler(nil, refresher, logger.NewNopLogger())

	c, w := testutil.NewTestContext(http.MethodPost, "/api/auth/refresh", RefreshTokenRequest{RefreshToken: "r1"})
	handler.RefreshToken(c)
	assert.Equal(t, http.StatusOK, w.Code)

	refresher.err = fmt.Errorf("expired")
	c, w = testutil.NewTestContext(http.MethodPost, "/api/auth/refresh", RefreshTokenRequest{RefreshToken: "r1"})
	handler.RefreshToken(c)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	c, w = testutil.NewTestContext(http.MethodPost, "/api/auth/refresh", map[string]string{})
	handler.RefreshToken(c)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAuthHandler_Me(t *testing.T) {
	handler := NewAuthHandler(nil, nil, logger.NewNopLogger())

	c, w := testutil.NewTestContext(http.MethodGet, "/api/auth/me", nil)
	handler.Me(c)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	c, w = testutil.NewTestContext(http.MethodGet, "/api/auth/me", nil)
	testutil.SetAuthContext(c, "usr_1", "alice")
	handler.Me(c)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"username":"alice"`)
}

// =====================================================================
// AtomPubHandler
// =====================================================================

func sampleServiceDocument() *atomdto.ServiceDocument {
	return &atomdto.ServiceDocument{Workspaces: []atomdto.Workspace{{
		Title: "My Blog",
		Collections: []atomdto.Collection{
			{
				Title:   "Weblog Entries",
				Href:    "http://example.com/roller-services/app/myblog/entries",
				Accepts: []string{constants.ContentTypeAtomEntry},
				Categories: []atomdto.Categories{
					{Fixed: true, Scheme: "http://example.com/myblog/", Categories: []atomdto.Category{{Term: "Tech", Label: "Tech"}}},
					{Fixed: false},
				},
			},
			{
				Title:   "Media Files: images",
				Href:    "http://example.com/roller-services/app/myblog/resources/images",
				Accepts: []string{"image/*"},
			},
		},
	}}}
}

func TestAtomPubHandler_ServiceDocument(t *testing.T) {
	uc := &mockServiceDocUC{result: sampleServiceDocument()}
	handler := NewAtomPubHandler(uc, logger.NewNopLogger())

	c, w := testutil.NewTestContext(http.MethodGet, constants.AtomServicePath, nil)
	testutil.SetAuthContext(c, "usr_1", "alice")

	handler.ServiceDocument(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, constants.ContentTypeAtomSvc, w.Header().Get("Content-Type"))
	require.NotNil(t, uc.got)
	assert.Equal(t, "alice", uc.got.UserName)

	body := w.Body.String()
	assert.True(t, strings.HasPrefix(body, "<?xml"))
	assert.Contains(t, body, `<service xmlns="`+nsAtomPub+`">`)
	assert.Contains(t, body, `<title xmlns="`+nsAtom+`" type="text">My Blog</title>`)
	assert.Contains(t, body, `<collection href="http://example.com/roller-services/app/myblog/entries">`)
	assert.Contains(t, body, `<accept>application/atom+xml;type=entry</accept>`)
	assert.Contains(t, body, `<categories fixed="yes" scheme="http://example.com/myblog/">`)
	assert.Contains(t, body, `term="Tech"`)
	assert.Contains(t, body, `<categories fixed="no"></categories>`)
	assert.Contains(t, body, `<accept>image/*</accept>`)
}

func TestAtomPubHandler_ServiceDocument_Errors(t *testing.T) {
	handler := NewAtomPubHandler(&mockServiceDocUC{}, logger.NewNopLogger())
	c, w := testutil.NewTestContext(http.MethodGet, constants.AtomServicePath, nil)
	handler.ServiceDocument(c)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	disabled := &mockServiceDocUC{err: errors.NewUnavailableError("AtomPub is not enabled on this server")}
	handler = NewAtomPubHandler(disabled, logger.NewNopLogger())
	c, w = testutil.NewTestContext(http.MethodGet, constants.AtomServicePath, nil)
	testutil.SetAuthContext(c, "usr_1", "alice")
	handler.ServiceDocument(c)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Equal(t, string(errors.ErrorTypeUnavailable), parseError(t, w.Body.Bytes()).Type)
}

func TestMarshalServiceDocument_Empty(t *testing.T) {
	body, err := MarshalServiceDocument(&atomdto.ServiceDocument{})
	require.NoError(t, err)
	assert.Contains(t, string(body), `<service xmlns="`+nsAtomPub+`"></service>`)
}

// =====================================================================
// SystemHandler
// =====================================================================

func TestSystemHandler_Health(t *testing.T) {
	ok := func(ctx context.Context) error { return nil }
	down := func(ctx context.Context) error { return fmt.Errorf("refused") }

	handler := NewSystemHandler("1.0.0", map[string]HealthCheck{"database": ok}, logger.NewNopLogger())
	c, w := testutil.NewTestContext(http.MethodGet, "/health", nil)
	handler.Health(c)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"database":"up"`)

	handler = NewSystemHandler("1.0.0", map[string]HealthCheck{"database": ok, "redis": down}, logger.NewNopLogger())
	c, w = testutil.NewTestContext(http.MethodGet, "/health", nil)
	handler.Health(c)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), `"redis":"down"`)
	assert.Contains(t, w.Body.String(), `"status":"degraded"`)
}

// =====================================================================
// CommentHandler
// =====================================================================

func newModerateContext(handle, id string, body any) (*gin.Context, *httptest.ResponseRecorder) {
	c, w := testutil.NewTestContext(http.MethodPut, "/api/weblogs/"+handle+"/comments/"+id+"/status", body)
	testutil.SetURLParam(c, "handle", handle)
	testutil.SetURLParam(c, "id", id)
	return c, w
}

func TestCommentHandler_Moderate_Success(t *testing.T) {
	uc := &mockModerateUC{result: &entrydto.CommentStatusResponse{ID: "cmt_1", EntryID: "ent_1", Status: "SPAM"}}
	handler := NewCommentHandler(uc, logger.NewNopLogger())

	c, w := newModerateContext("myblog", "cmt_1", map[string]string{"status": "spam", "user_id": "usr_mallory", "Weblog": "other", "CommentID": "cmt_9"})
	testutil.SetAuthContext(c, "usr_alice", "alice")

	handler.Moderate(c)

	assert.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, uc.got)
	assert.Equal(t, entrydto.ModerateCommentRequest{
		Weblog: "myblog", CommentID: "cmt_1", Status: "spam", UserID: "usr_alice",
	}, *uc.got)

	var resp testutil.APIResponse
	require.NoError(t, testutil.ParseResponse(w, &resp))
	var data entrydto.CommentStatusResponse
	require.NoError(t, json.Unmarshal(resp.Data, &data))
	assert.Equal(t, "SPAM", data.Status)
}

func TestCommentHandler_Moderate_Rejects(t *testing.T) {
	tests := []struct {
		name   string
		handle string
		body   any
		auth   bool
		want   int
	}{
		{"unauthenticated", "myblog", map[string]string{"status": "approved"}, false, http.StatusUnauthorized},
		{"missing body", "myblog", nil, true, http.StatusBadRequest},
		{"unknown status", "myblog", map[string]string{"status": "pending"}, true, http.StatusBadRequest},
		{"invalid handle", "My Blog!", map[string]string{"status": "approved"}, true, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := &mockModerateUC{}
			handler := NewCommentHandler(uc, logger.NewNopLogger())

			c, w := newModerateContext(tt.handle, "cmt_1", tt.body)
			if tt.auth {
				testutil.SetAuthContext(c, "usr_alice", "alice")
			}

			handler.Moderate(c)

			assert.Equal(t, tt.want, w.Code)
			assert.Nil(t, uc.got, "use case must not run")
			parseError(t, w.Body.Bytes())
		})
	}
}

func TestCommentHandler_Moderate_Forbidden(t *testing.T) {
	handler := NewCommentHandler(&mockModerateUC{err: errors.NewForbiddenError("post permission on the weblog is required")}, logger.NewNopLogger())

	c, w := newModerateContext("myblog", "cmt_1", map[string]string{"status": "approved"})
	testutil.SetAuthContext(c, "usr_bob", "bob")

	handler.Moderate(c)

	assert.Equal(t, http.StatusForbidden, w.Code)
}
