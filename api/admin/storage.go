package admin

import (
	"net/http"

	"github.com/MonkyMars/gecho"
)

// ListStorageDeletions handles GET /admin/storage/deletions: the retry queue
// of object deletions that failed against the storage backend.
func (ar *AdminRoutesManager) ListStorageDeletions(w http.ResponseWriter, r *http.Request) {
	deletions, err := ar.reconcileService.GetQueuedDeletions(r.Context())
	if err != nil {
		ar.logger.Error("Failed to list storage deletions", gecho.Field("error", err))
		gecho.InternalServerError(w, gecho.WithMessage("error.storage.failedToFetch"), gecho.Send())
		return
	}

	gecho.Success(w,
		gecho.WithData(map[string]any{
			"deletions": deletions,
		}),
		gecho.Send(),
	)
}
