package utils

import (
	"math"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rollerweb/roller/internal/shared/constants"
	"github.com/rollerweb/roller/internal/shared/errors"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newQueryContext(rawQuery string) *gin.Context {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/main/search?"+rawQuery, nil)
	return c
}

func TestParseSearchPage(t *testing.T) {
	tests := []struct {
		name     string
		query    string
		wantPage int
		wantErr  bool
	}{
		{name: "missing defaults to first page", query: "q=roller", wantPage: constants.FirstSearchPage},
		{name: "zero", query: "page=0", wantPage: 0},
		{name: "positive", query: "page=3", wantPage: 3},
		{name: "whitespace trimmed", query: "page=%202", wantPage: 2},
		{name: "negative rejected", query: "page=-1", wantErr: true},
		{name: "non numeric rejected", query: "page=two", wantErr: true},
		{name: "last page accepted", query: "page=1000000", wantPage: constants.MaxSearchPage},
		{name: "past last page rejected", query: "page=1000001", wantErr: true},
		{name: "max int rejected", query: "page=9223372036854775807", wantErr: true},
		{name: "overflow rejected", query: "page=99999999999999999999", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page, err := ParseSearchPage(newQueryContext(tt.query))
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.IsValidationError(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantPage, page)
		})
	}
}

func TestClampPageSize(t *testing.T) {
	assert.Equal(t, constants.DefaultSearchPageSize, ClampPageSize(0))
	assert.Equal(t, constants.DefaultSearchPageSize, ClampPageSize(-5))
	assert.Equal(t, 25, ClampPageSize(25))
	assert.Equal(t, constants.MaxSearchPageSize, ClampPageSize(1000))
}

func TestSearchOffset(t *testing.T) {
	assert.Equal(t, 0, SearchOffset(0, 10))
	assert.Equal(t, 30, SearchOffset(3, 10))
	assert.Equal(t, 0, SearchOffset(-2, 10))
	assert.Equal(t, 0, SearchOffset(3, 0))

	for _, page := range []int{math.MaxInt/10 + 1, math.MaxInt} {
		offset := SearchOffset(page, 10)
		assert.Equal(t, constants.MaxSearchPage*10, offset, page)
	}
	assert.Equal(t, constants.MaxSearchPage*constants.MaxSearchPageSize, SearchOffset(math.MaxInt, math.MaxInt))
}
