package groups

import (
	"net/http"
	"testing"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"
)

// The full group list is a public navigation read, alongside the homepage
// feed and the group-scoped article listing.
func TestRegisterRoutes(t *testing.T) {
	grm := NewGroupRoutesManager(gecho.NewDefaultLogger(), nil)

	r := chi.NewRouter()
	grm.RegisterRoutes(r)

	paths := []string{
		"/groups",
		"/groups/home",
		"/groups/6ba7b810-9dad-11d1-80b4-00c04fd430c8/articles",
	}
	for _, path := range paths {
		rctx := chi.NewRouteContext()
		require.True(t, r.Match(rctx, http.MethodGet, path), path)
	}
}
