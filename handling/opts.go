package handling

import (
	"net/http"
	"strconv"
	"tehnika_server/services"
)

// defaultListPageSize applies when a listing request omits page_size.
const defaultListPageSize = 20

// ParseArticleListOptions parses HTTP query parameters into ArticleListOptions.
// The category filter takes precedence over the name filter; precedence itself
// is applied in the service, this only carries the raw values over. A missing
// page_size falls back to the default; an explicit non-positive value is kept
// so the pagination layer can reject it.
func ParseArticleListOptions(r *http.Request) (*services.ArticleListOptions, error) {
	query := r.URL.Query()

	opts := &services.ArticleListOptions{PageSize: defaultListPageSize}
	var err error

	if pageIndex := query.Get("page_index"); pageIndex != "" {
		if opts.PageIndex, err = strconv.Atoi(pageIndex); err != nil {
			return nil, err
		}
	}

	if pageSize := query.Get("page_size"); pageSize != "" {
		if opts.PageSize, err = strconv.Atoi(pageSize); err != nil {
			return nil, err
		}
	}

	if category := query.Get("category"); category != "" {
		opts.CategoryID = category
	}

	if name := query.Get("name"); name != "" {
		opts.Name = name
	}

	return opts, nil
}

// ParsePageParams reads the standard page_index/page_size pair used by every
// paginated listing. Missing values fall back to the given defaults.
func ParsePageParams(r *http.Request, defaultSize int) (pageIndex, pageSize int, err error) {
	query := r.URL.Query()
	pageSize = defaultSize

	if raw := query.Get("page_index"); raw != "" {
		if pageIndex, err = strconv.Atoi(raw); err != nil {
			return 0, 0, err
		}
	}

	if raw := query.Get("page_size"); raw != "" {
		if pageSize, err = strconv.Atoi(raw); err != nil {
			return 0, 0, err
		}
	}

	return pageIndex, pageSize, nil
}
