package web

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/tvannaman2000/PyNFL/controller"
	"github.com/tvannaman2000/PyNFL/model"
	"github.com/unrolled/render"
)

func rootHandler(_ controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		render.Text(w, http.StatusOK, "PyNFL league manager")
	}
}

func standingsHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		leagueID, season, err := leagueSeason(r)
		if err != nil {
			renderError(render, w, http.StatusBadRequest, err)
			return
		}

		records, err := ctrl.DivisionStandings(r.Context(), leagueID, season)
		if err != nil {
			renderError(render, w, http.StatusInternalServerError, err)
			return
		}
		render.JSON(w, http.StatusOK, records)
	}
}

func playoffPictureHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		leagueID, season, err := leagueSeason(r)
		if err != nil {
			renderError(render, w, http.StatusBadRequest, err)
			return
		}

		seeds, err := ctrl.PlayoffPicture(r.Context(), leagueID, season)
		if err != nil {
			renderError(render, w, http.StatusInternalServerError, err)
			return
		}
		render.JSON(w, http.StatusOK, seeds)
	}
}

// generateRoundHandler wraps the schedule generating controller operations,
// which all share a signature. Precondition failures map to 409 so callers
// can tell "not yet" apart from "broken".
func generateRoundHandler(generate func(ctx context.Context, leagueID int32, season int) ([]model.Game, error), render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		leagueID, season, err := leagueSeason(r)
		if err != nil {
			renderError(render, w, http.StatusBadRequest, err)
			return
		}

		games, err := generate(r.Context(), leagueID, season)
		if err != nil {
			renderError(render, w, statusForError(err), err)
			return
		}
		render.JSON(w, http.StatusCreated, games)
	}
}

func clearHandler(clear func(ctx context.Context, leagueID int32, season int) error, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		leagueID, season, err := leagueSeason(r)
		if err != nil {
			renderError(render, w, http.StatusBadRequest, err)
			return
		}

		if err := clear(r.Context(), leagueID, season); err != nil {
			renderError(render, w, http.StatusInternalServerError, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func leagueSeason(r *http.Request) (int32, int, error) {
	leagueID, err := strconv.Atoi(chi.URLParam(r, "leagueID"))
	if err != nil {
		return 0, 0, errors.New("invalid league id")
	}
	season, err := strconv.Atoi(chi.URLParam(r, "season"))
	if err != nil {
		return 0, 0, errors.New("invalid season")
	}
	return int32(leagueID), season, nil
}

func statusForError(err error) int {
	switch {
	case errors.Is(err, controller.ErrSeasonIncomplete),
		errors.Is(err, controller.ErrSeedsNotFound),
		errors.Is(err, controller.ErrNotEnoughTeams),
		errors.Is(err, controller.ErrImpossibleSchedule),
		errors.Is(err, controller.ErrNoValidPairings):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func renderError(render *render.Render, w http.ResponseWriter, status int, err error) {
	render.JSON(w, status, map[string]string{"error": err.Error()})
}
