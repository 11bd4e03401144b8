package articles

import (
	"net/http"
	"testing"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"
)

func TestRegisterRoutes(t *testing.T) {
	arm := NewArticleRoutesManager(gecho.NewDefaultLogger(), nil)

	r := chi.NewRouter()
	arm.RegisterRoutes(r)

	paths := []string{
		"/articles",
		"/articles/search",
		"/articles/on-action",
		"/articles/featured",
		"/articles/6ba7b810-9dad-11d1-80b4-00c04fd430c8",
		"/brands/6ba7b810-9dad-11d1-80b4-00c04fd430c8/articles",
	}
	for _, path := range paths {
		rctx := chi.NewRouteContext()
		require.True(t, r.Match(rctx, http.MethodGet, path), path)
	}
}

// The featured listing must resolve to its own handler, not be captured by
// the {id} detail route.
func TestFeaturedRouteBeatsDetailRoute(t *testing.T) {
	arm := NewArticleRoutesManager(gecho.NewDefaultLogger(), nil)

	r := chi.NewRouter()
	arm.RegisterRoutes(r)

	rctx := chi.NewRouteContext()
	require.True(t, r.Match(rctx, http.MethodGet, "/articles/featured"))
	require.Equal(t, "/articles/featured", rctx.RoutePattern())
}
