package admin

import (
	"net/http"
	"tehnika_server/lib"
	"tehnika_server/services"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

func (ar *AdminRoutesManager) ListGroups(w http.ResponseWriter, r *http.Request) {
	groups, err := ar.groupService.GetAllGroups(r.Context())
	if err != nil {
		ar.logger.Error("Failed to list groups", gecho.Field("error", err))
		gecho.InternalServerError(w, gecho.WithMessage("error.groups.failedToFetch"), gecho.Send())
		return
	}

	gecho.Success(w,
		gecho.WithData(map[string]any{
			"groups": groups,
		}),
		gecho.Send(),
	)
}

func (ar *AdminRoutesManager) CreateGroup(w http.ResponseWriter, r *http.Request) {
	body, err := lib.ExtractAndValidateBody[services.GroupRequest](r)
	if err != nil {
		gecho.BadRequest(w, gecho.WithMessage("Please check the group information and try again"), gecho.Send())
		return
	}

	group, err := ar.groupService.CreateGroup(r.Context(), body)
	if err != nil {
		if lib.IsUniqueViolation(err) {
			gecho.Conflict(w, gecho.WithMessage("A group with this name already exists"), gecho.Send())
			return
		}
		ar.logger.Error("Failed to create group", gecho.Field("error", err))
		gecho.InternalServerError(w, gecho.WithMessage("Unable to create group. Please try again"), gecho.Send())
		return
	}

	gecho.Success(w,
		gecho.WithData(group),
		gecho.WithMessage("Group created successfully"),
		gecho.Send(),
	)
}

func (ar *AdminRoutesManager) UpdateGroup(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		gecho.BadRequest(w, gecho.WithMessage("error.groups.invalidGroupId"), gecho.Send())
		return
	}

	body, err := lib.ExtractAndValidateBody[services.GroupRequest](r)
	if err != nil {
		gecho.BadRequest(w, gecho.WithMessage("Please check the group information and try again"), gecho.Send())
		return
	}

	updated, err := ar.groupService.UpdateGroup(r.Context(), id, body)
	if err != nil {
		ar.logger.Error("Failed to update group", gecho.Field("error", err), gecho.Field("id", id))
		gecho.InternalServerError(w, gecho.WithMessage("Unable to update group. Please try again"), gecho.Send())
		return
	}

	if updated == 0 {
		gecho.NotFound(w, gecho.WithMessage("error.groups.notFound"), gecho.Send())
		return
	}

	gecho.Success(w, gecho.WithMessage("Group updated successfully"), gecho.Send())
}

func (ar *AdminRoutesManager) DeleteGroup(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		gecho.BadRequest(w, gecho.WithMessage("error.groups.invalidGroupId"), gecho.Send())
		return
	}

	deleted, err := ar.groupService.DeleteGroup(r.Context(), id)
	if err != nil {
		ar.logger.Error("Failed to delete group", gecho.Field("error", err), gecho.Field("id", id))
		gecho.InternalServerError(w, gecho.WithMessage("Unable to delete group. Please try again"), gecho.Send())
		return
	}

	if deleted == 0 {
		gecho.NotFound(w, gecho.WithMessage("error.groups.notFound"), gecho.Send())
		return
	}

	gecho.Success(w, gecho.WithMessage("Group deleted successfully"), gecho.Send())
}
