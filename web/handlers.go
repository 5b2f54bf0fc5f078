package web

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/tunnelsnakes/sandlot/controller"
	"github.com/tunnelsnakes/sandlot/model"
	"github.com/unrolled/render"
)

func rootHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		data := map[string]any{
			"managers": ctrl.GetManagers(),
		}
		render.HTML(w, http.StatusOK, "index", data)
	}
}

func managersHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		render.JSON(w, http.StatusOK, ctrl.GetManagers())
	}
}

func teamKeepersHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tk, err := ctrl.GetTeamKeepers(r.Context(), chi.URLParam(r, "slug"))
		if err != nil {
			if errors.Is(err, model.ErrUnknownManager) {
				render.JSON(w, http.StatusNotFound, errorBody(err.Error()))
				return
			}
			writeError(render, w, err)
			return
		}
		render.JSON(w, http.StatusOK, tk)
	}
}

func teamKeepersPageHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tk, err := ctrl.GetTeamKeepers(r.Context(), chi.URLParam(r, "slug"))
		if err != nil {
			if errors.Is(err, model.ErrUnknownManager) {
				render.HTML(w, http.StatusNotFound, "404", "team not found")
			} else {
				render.HTML(w, http.StatusInternalServerError, "500", err.Error())
			}
			return
		}

		data := map[string]any{
			"team":         tk,
			"maxKeepers":   model.MaxKeepers,
			"maxNAKeepers": model.MaxNAKeepers,
		}
		render.HTML(w, http.StatusOK, "keepers", data)
	}
}

func draftBoardHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		b, err := ctrl.GetDraftBoard(r.Context())
		if err != nil {
			writeError(render, w, err)
			return
		}
		render.JSON(w, http.StatusOK, b)
	}
}

type boardRound struct {
	Round int
	NA    bool
	Picks []model.DraftPick
}

func draftBoardPageHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		b, err := ctrl.GetDraftBoard(r.Context())
		if err != nil {
			render.HTML(w, http.StatusInternalServerError, "500", err.Error())
			return
		}

		rounds := make([]boardRound, 0, model.NumRounds)
		for i := 1; i <= model.NumRounds; i++ {
			rounds = append(rounds, boardRound{
				Round: i,
				NA:    model.IsNARound(i),
				Picks: b.RoundInPickOrder(i),
			})
		}

		colors := make(map[string]string)
		for _, m := range ctrl.GetManagers() {
			colors[m.DisplayName] = m.ColorKey
		}

		data := map[string]any{
			"rounds": rounds,
			"colors": colors,
			"counts": b.OwnerCounts(),
			"order":  b.Order,
		}
		render.HTML(w, http.StatusOK, "draftBoard", data)
	}
}

func playerSearchHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		results, err := ctrl.Search(r.Context(), r.URL.Query().Get("q"))
		if err != nil {
			writeError(render, w, err)
			return
		}
		render.JSON(w, http.StatusOK, results)
	}
}

func getPlayerHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.ParseInt(chi.URLParam(r, "playerID"), 10, 32)
		if err != nil {
			render.JSON(w, http.StatusBadRequest, errorBody(fmt.Sprintf("error parsing player id: %v", err)))
			return
		}

		p, err := ctrl.GetPlayer(r.Context(), int32(id))
		if err != nil {
			writeError(render, w, err)
			return
		}
		render.JSON(w, http.StatusOK, p)
	}
}

func keeperRecordsHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		season, err := strconv.Atoi(r.URL.Query().Get("season"))
		if err != nil {
			render.JSON(w, http.StatusBadRequest, errorBody("season is required"))
			return
		}

		records, err := ctrl.ListKeeperRecords(r.Context(), season)
		if err != nil {
			writeError(render, w, err)
			return
		}
		render.JSON(w, http.StatusOK, records)
	}
}

func rosterIDParam(r *http.Request) (int32, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "rosterID"), 10, 32)
	if err != nil {
		return 0, model.NewValidationError("id", "error parsing roster player id: %v", err)
	}
	return int32(id), nil
}

func updateKeeperStatusHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		email, _ := callerEmail(r.Context())
		id, err := rosterIDParam(r)
		if err != nil {
			writeError(render, w, err)
			return
		}

		var body struct {
			Status string `json:"status"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			render.JSON(w, http.StatusBadRequest, errorBody(fmt.Sprintf("error parsing request: %v", err)))
			return
		}
		status, err := model.ParseKeeperStatus(body.Status)
		if err != nil {
			writeError(render, w, err)
			return
		}

		res, err := ctrl.UpdateKeeperStatus(r.Context(), email, id, status)
		if err != nil {
			writeError(render, w, err)
			return
		}
		render.JSON(w, http.StatusOK, res)
	}
}

func cycleKeeperStatusHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		email, _ := callerEmail(r.Context())
		id, err := rosterIDParam(r)
		if err != nil {
			writeError(render, w, err)
			return
		}

		res, err := ctrl.CycleKeeperStatus(r.Context(), email, id)
		if err != nil {
			writeError(render, w, err)
			return
		}
		render.JSON(w, http.StatusOK, res)
	}
}

func recordTradeHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		email, _ := callerEmail(r.Context())

		var trade model.Trade
		if err := json.NewDecoder(r.Body).Decode(&trade); err != nil {
			render.JSON(w, http.StatusBadRequest, errorBody(fmt.Sprintf("error parsing trade: %v", err)))
			return
		}

		b, err := ctrl.RecordTrade(r.Context(), email, &trade)
		if err != nil {
			writeError(render, w, err)
			return
		}
		render.JSON(w, http.StatusOK, b)
	}
}
