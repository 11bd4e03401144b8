// Package client provides typed bindings for the listing endpoints plus the
// two consumption modes built on top of them: an infinite-scroll accumulator
// and a page-based table pager.
package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"tehnika_server/structs/tables"
	"time"

	"github.com/google/uuid"
)

// Page mirrors the listing envelope every paginated endpoint returns.
// PageIndex is 0-based; PageIndex == PageCount signals no further pages.
type Page[T any] struct {
	Items     []T `json:"items"`
	PageIndex int `json:"page_index"`
	PageSize  int `json:"page_size"`
	PageCount int `json:"page_count"`
}

// FetchFunc retrieves one page. Both consumers are built against this shape
// so they stay independent of the transport.
type FetchFunc[T any] func(ctx context.Context, pageIndex, pageSize int) (*Page[T], error)

// ErrUnexpectedStatus is returned when the server answers with a non-2xx code.
var ErrUnexpectedStatus = errors.New("unexpected response status")

type Client struct {
	baseURL string
	http    *http.Client
}

func New(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		http: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// envelope is the standard response wrapper around every payload.
type envelope[T any] struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    T      `json:"data"`
}

func fetchPage[T any](ctx context.Context, c *Client, path string, params url.Values) (*Page[T], error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("fetch %s: %w (%d)", path, ErrUnexpectedStatus, resp.StatusCode)
	}

	var body envelope[Page[T]]
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}

	return &body.Data, nil
}

func pageParams(pageIndex, pageSize int) url.Values {
	params := url.Values{}
	params.Set("page_index", strconv.Itoa(pageIndex))
	params.Set("page_size", strconv.Itoa(pageSize))
	return params
}

// ArticleFilter narrows the general article listing. When CategoryID is set
// the Name filter is ignored by the server.
type ArticleFilter struct {
	CategoryID string
	Name       string
}

// Articles returns a fetcher over the general article listing with the given
// filter fixed. The scroller reuses it so every page carries the filters of
// the initial request.
func (c *Client) Articles(filter ArticleFilter) FetchFunc[tables.Article] {
	return func(ctx context.Context, pageIndex, pageSize int) (*Page[tables.Article], error) {
		params := pageParams(pageIndex, pageSize)
		if filter.CategoryID != "" {
			params.Set("category", filter.CategoryID)
		}
		if filter.Name != "" {
			params.Set("name", filter.Name)
		}
		return fetchPage[tables.Article](ctx, c, "/articles", params)
	}
}

// ArticlesOnAction returns a fetcher over articles currently tied to any action.
func (c *Client) ArticlesOnAction() FetchFunc[tables.Article] {
	return func(ctx context.Context, pageIndex, pageSize int) (*Page[tables.Article], error) {
		return fetchPage[tables.Article](ctx, c, "/articles/on-action", pageParams(pageIndex, pageSize))
	}
}

// CategoryArticles returns a fetcher over one category's articles.
func (c *Client) CategoryArticles(categoryID uuid.UUID) FetchFunc[tables.Article] {
	return func(ctx context.Context, pageIndex, pageSize int) (*Page[tables.Article], error) {
		path := "/categories/" + categoryID.String() + "/articles"
		return fetchPage[tables.Article](ctx, c, path, pageParams(pageIndex, pageSize))
	}
}

// GroupArticles returns a fetcher over one group's articles.
func (c *Client) GroupArticles(groupID uuid.UUID) FetchFunc[tables.Article] {
	return func(ctx context.Context, pageIndex, pageSize int) (*Page[tables.Article], error) {
		path := "/groups/" + groupID.String() + "/articles"
		return fetchPage[tables.Article](ctx, c, path, pageParams(pageIndex, pageSize))
	}
}
