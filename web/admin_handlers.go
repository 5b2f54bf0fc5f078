package web

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/tunnelsnakes/sandlot/controller"
	"github.com/tunnelsnakes/sandlot/model"
	"github.com/unrolled/render"
)

const maxUploadSize = 5 << 20

type batchFunc func(ctx context.Context) (*model.BatchReport, error)

// batchHandler runs a batch job and returns its report. A job that fails part
// way still returns a report when it has one, so the caller can see what got
// done before the error.
func batchHandler(job batchFunc, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		report, err := job(r.Context())
		if err != nil {
			if report != nil {
				render.JSON(w, statusForError(err), map[string]any{
					"error":  err.Error(),
					"report": report,
				})
				return
			}
			writeError(render, w, err)
			return
		}
		render.JSON(w, http.StatusOK, report)
	}
}

func recomputeKeeperCostsHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return batchHandler(ctrl.RecomputeKeeperCosts, render)
}

func classifyNAHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return batchHandler(ctrl.ClassifyNAEligibility, render)
}

func seedDraftCostsHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return batchHandler(ctrl.SeedDraftCosts, render)
}

func syncRostersHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return batchHandler(ctrl.SyncRosters, render)
}

// csvUpload returns the CSV file uploaded in the named form field.
func csvUpload(r *http.Request, field string) (multipart.File, error) {
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		return nil, model.NewValidationError(field, "error parsing upload: %v", err)
	}

	file, handler, err := r.FormFile(field)
	if err != nil {
		return nil, model.NewValidationError(field, "%v", err)
	}

	if ct := handler.Header.Get("Content-Type"); ct != "text/csv" {
		file.Close()
		return nil, model.NewValidationError(field, "only CSV files are supported, got %s", ct)
	}
	return file, nil
}

func rankingsUploadHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		file, err := csvUpload(r, "rankings-file")
		if err != nil {
			writeError(render, w, err)
			return
		}
		defer file.Close()

		batchHandler(func(ctx context.Context) (*model.BatchReport, error) {
			return ctrl.ImportECR(ctx, file)
		}, render)(w, r)
	}
}

func keeperRecordsUploadHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		file, err := csvUpload(r, "keeper-records-file")
		if err != nil {
			writeError(render, w, err)
			return
		}
		defer file.Close()

		season, err := strconv.Atoi(r.FormValue("season"))
		if err != nil {
			writeError(render, w, model.NewValidationError("season", "season must be a year: %v", err))
			return
		}

		count, err := importRecords(r.Context(), ctrl, file, season)
		if err != nil {
			writeError(render, w, err)
			return
		}
		render.JSON(w, http.StatusOK, map[string]any{
			"season": season,
			"saved":  count,
		})
	}
}

func importRecords(ctx context.Context, ctrl controller.C, file io.Reader, season int) (int, error) {
	count, err := ctrl.ImportKeeperRecords(ctx, file, season)
	if err != nil {
		return 0, fmt.Errorf("error importing keeper records for %d: %w", season, err)
	}
	return count, nil
}
