package admin

import (
	"net/http"
	"tehnika_server/lib"
	"tehnika_server/services"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

func (ar *AdminRoutesManager) CreateAction(w http.ResponseWriter, r *http.Request) {
	body, err := lib.ExtractAndValidateBody[services.ActionRequest](r)
	if err != nil {
		gecho.BadRequest(w, gecho.WithMessage("Please check the action information and try again"), gecho.Send())
		return
	}

	action, err := ar.actionService.CreateAction(r.Context(), body)
	if err != nil {
		ar.logger.Error("Failed to create action", gecho.Field("error", err))
		gecho.InternalServerError(w, gecho.WithMessage("Unable to create action. Please try again"), gecho.Send())
		return
	}

	gecho.Success(w,
		gecho.WithData(action),
		gecho.WithMessage("Action created successfully"),
		gecho.Send(),
	)
}

func (ar *AdminRoutesManager) UpdateAction(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		gecho.BadRequest(w, gecho.WithMessage("error.actions.invalidActionId"), gecho.Send())
		return
	}

	body, err := lib.ExtractAndValidateBody[services.ActionRequest](r)
	if err != nil {
		gecho.BadRequest(w, gecho.WithMessage("Please check the action information and try again"), gecho.Send())
		return
	}

	updated, err := ar.actionService.UpdateAction(r.Context(), id, body)
	if err != nil {
		ar.logger.Error("Failed to update action", gecho.Field("error", err), gecho.Field("id", id))
		gecho.InternalServerError(w, gecho.WithMessage("Unable to update action. Please try again"), gecho.Send())
		return
	}

	if updated == 0 {
		gecho.NotFound(w, gecho.WithMessage("error.actions.notFound"), gecho.Send())
		return
	}

	gecho.Success(w, gecho.WithMessage("Action updated successfully"), gecho.Send())
}

func (ar *AdminRoutesManager) DeleteAction(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		gecho.BadRequest(w, gecho.WithMessage("error.actions.invalidActionId"), gecho.Send())
		return
	}

	deleted, err := ar.actionService.DeleteAction(r.Context(), id)
	if err != nil {
		ar.logger.Error("Failed to delete action", gecho.Field("error", err), gecho.Field("id", id))
		gecho.InternalServerError(w, gecho.WithMessage("Unable to delete action. Please try again"), gecho.Send())
		return
	}

	if deleted == 0 {
		gecho.NotFound(w, gecho.WithMessage("error.actions.notFound"), gecho.Send())
		return
	}

	gecho.Success(w, gecho.WithMessage("Action deleted successfully"), gecho.Send())
}
