package web

import (
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"
	"github.com/tunnelsnakes/sandlot/db"
	"github.com/tunnelsnakes/sandlot/model"
	"github.com/unrolled/render"
)

func errorBody(msg string) map[string]string {
	return map[string]string{"error": msg}
}

func statusForError(err error) int {
	var validation *model.ValidationError
	var quota *model.QuotaExceededError
	switch {
	case errors.As(err, &validation):
		return http.StatusBadRequest
	case errors.As(err, &quota):
		return http.StatusConflict
	case errors.Is(err, model.ErrNotOwner),
		errors.Is(err, model.ErrNotCommissioner),
		errors.Is(err, model.ErrUnknownManager):
		return http.StatusForbidden
	case errors.Is(err, db.ErrRosterPlayerNotFound),
		errors.Is(err, db.ErrPlayerNotFound),
		errors.Is(err, db.ErrDraftBoardNotFound):
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}

func writeError(render *render.Render, w http.ResponseWriter, err error) {
	status := statusForError(err)
	if status == http.StatusInternalServerError {
		log.Error().Err(err).Msg("request failed")
	}
	render.JSON(w, status, errorBody(err.Error()))
}
