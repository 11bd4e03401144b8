package admin

import (
	"errors"
	"net/http"
	"tehnika_server/lib"
	"tehnika_server/services"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// PresignImageUpload handles POST /admin/images/presign. The image budget is
// checked here, before any upload happens, so the client never uploads an
// object that cannot be attached.
func (ar *AdminRoutesManager) PresignImageUpload(w http.ResponseWriter, r *http.Request) {
	body, err := lib.ExtractAndValidateBody[services.PresignUploadRequest](r)
	if err != nil {
		gecho.BadRequest(w, gecho.WithMessage("Please check the upload information and try again"), gecho.Send())
		return
	}

	result, err := ar.imageService.PresignUpload(r.Context(), body)
	if err != nil {
		if errors.Is(err, services.ErrImageLimitReached) {
			gecho.Conflict(w, gecho.WithMessage("error.images.limitReached"), gecho.Send())
			return
		}
		if errors.Is(err, services.ErrImageOwner) {
			gecho.BadRequest(w, gecho.WithMessage("error.images.invalidOwner"), gecho.Send())
			return
		}
		ar.logger.Error("Failed to presign image upload", gecho.Field("error", err))
		gecho.InternalServerError(w, gecho.WithMessage("Unable to prepare upload. Please try again"), gecho.Send())
		return
	}

	gecho.Success(w, gecho.WithData(result), gecho.Send())
}

// ConfirmImageUpload handles POST /admin/images/{id}/confirm, flipping a
// pending row to committed once the client finished uploading.
func (ar *AdminRoutesManager) ConfirmImageUpload(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		gecho.BadRequest(w, gecho.WithMessage("error.images.invalidImageId"), gecho.Send())
		return
	}

	image, err := ar.imageService.ConfirmUpload(r.Context(), id)
	if err != nil {
		ar.logger.Error("Failed to confirm image upload", gecho.Field("error", err), gecho.Field("id", id))
		gecho.InternalServerError(w, gecho.WithMessage("Unable to confirm upload. Please try again"), gecho.Send())
		return
	}

	if image == nil {
		gecho.NotFound(w, gecho.WithMessage("error.images.noPendingUpload"), gecho.Send())
		return
	}

	gecho.Success(w,
		gecho.WithData(map[string]any{
			"image": image,
		}),
		gecho.WithMessage("Upload confirmed"),
		gecho.Send(),
	)
}

// ListOwnerImages handles GET /admin/images?article_id= or ?action_id=.
func (ar *AdminRoutesManager) ListOwnerImages(w http.ResponseWriter, r *http.Request) {
	var articleID, actionID *uuid.UUID

	if raw := r.URL.Query().Get("article_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			gecho.BadRequest(w, gecho.WithMessage("error.articles.invalidArticleId"), gecho.Send())
			return
		}
		articleID = &id
	}
	if raw := r.URL.Query().Get("action_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			gecho.BadRequest(w, gecho.WithMessage("error.actions.invalidActionId"), gecho.Send())
			return
		}
		actionID = &id
	}

	images, err := ar.imageService.GetOwnerImages(r.Context(), articleID, actionID)
	if err != nil {
		if errors.Is(err, services.ErrImageOwner) {
			gecho.BadRequest(w, gecho.WithMessage("error.images.invalidOwner"), gecho.Send())
			return
		}
		ar.logger.Error("Failed to list images", gecho.Field("error", err))
		gecho.InternalServerError(w, gecho.WithMessage("error.images.failedToFetch"), gecho.Send())
		return
	}

	gecho.Success(w,
		gecho.WithData(map[string]any{
			"images": images,
		}),
		gecho.Send(),
	)
}

func (ar *AdminRoutesManager) DeleteImage(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		gecho.BadRequest(w, gecho.WithMessage("error.images.invalidImageId"), gecho.Send())
		return
	}

	deleted, err := ar.imageService.DeleteImage(r.Context(), id)
	if err != nil {
		ar.logger.Error("Failed to delete image", gecho.Field("error", err), gecho.Field("id", id))
		gecho.InternalServerError(w, gecho.WithMessage("Unable to delete image. Please try again"), gecho.Send())
		return
	}

	if !deleted {
		gecho.NotFound(w, gecho.WithMessage("error.images.notFound"), gecho.Send())
		return
	}

	gecho.Success(w, gecho.WithMessage("Image deleted successfully"), gecho.Send())
}
