package handlers

import (
	"net/http"

	"github.com/MrSnakeDoc/langdocs/internal/httpserver/deps"
	"github.com/MrSnakeDoc/langdocs/internal/validate"
)

type diagnosticsResponse struct {
	Errors   int               `json:"errors"`
	Warnings int               `json:"warnings"`
	Reports  []validate.Report `json:"reports"`
}

// Diagnostics returns the validation reports of the snapshot, or of ?lang= only
func Diagnostics(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var reports []validate.Report

		if lang := r.URL.Query().Get("lang"); lang != "" {
			report, ok := d.Index.Report(lang)
			if !ok {
				writeError(w, http.StatusNotFound, "unknown language: "+lang)
				return
			}
			reports = []validate.Report{report}
		} else {
			reports = d.Index.Reports()
		}

		resp := diagnosticsResponse{Reports: reports}
		for _, rep := range reports {
			resp.Errors += len(rep.Errors())
			resp.Warnings += len(rep.Warnings())
		}
		writeJSON(w, http.StatusOK, resp)
	}
}
