package handling

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseArticleListOptions(t *testing.T) {
	r := httptest.NewRequest("GET", "/articles?page_index=2&page_size=10&category=tools&name=hammer", nil)

	opts, err := ParseArticleListOptions(r)
	require.NoError(t, err)

	require.Equal(t, 2, opts.PageIndex)
	require.Equal(t, 10, opts.PageSize)
	require.Equal(t, "tools", opts.CategoryID)
	require.Equal(t, "hammer", opts.Name)
}

func TestParseArticleListOptionsDefaults(t *testing.T) {
	r := httptest.NewRequest("GET", "/articles", nil)

	opts, err := ParseArticleListOptions(r)
	require.NoError(t, err)

	require.Zero(t, opts.PageIndex)
	require.Equal(t, defaultListPageSize, opts.PageSize)
	require.Empty(t, opts.CategoryID)
	require.Empty(t, opts.Name)
}

// An explicit non-positive page_size must survive parsing untouched so the
// pagination layer can reject it, instead of being silently coerced to the
// default.
func TestParseArticleListOptionsKeepsExplicitZeroPageSize(t *testing.T) {
	r := httptest.NewRequest("GET", "/articles?page_size=0", nil)

	opts, err := ParseArticleListOptions(r)
	require.NoError(t, err)
	require.Zero(t, opts.PageSize)
}

func TestParseArticleListOptionsRejectsMalformed(t *testing.T) {
	r := httptest.NewRequest("GET", "/articles?page_index=two", nil)

	_, err := ParseArticleListOptions(r)
	require.Error(t, err)
}

func TestParsePageParams(t *testing.T) {
	r := httptest.NewRequest("GET", "/groups/home?page_index=1&page_size=5", nil)

	pageIndex, pageSize, err := ParsePageParams(r, 20)
	require.NoError(t, err)
	require.Equal(t, 1, pageIndex)
	require.Equal(t, 5, pageSize)
}

func TestParsePageParamsFallsBackToDefault(t *testing.T) {
	r := httptest.NewRequest("GET", "/groups/home", nil)

	pageIndex, pageSize, err := ParsePageParams(r, 20)
	require.NoError(t, err)
	require.Zero(t, pageIndex)
	require.Equal(t, 20, pageSize)
}
