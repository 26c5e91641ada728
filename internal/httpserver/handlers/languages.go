package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/langdocs/internal/httpserver/deps"
	"github.com/MrSnakeDoc/langdocs/internal/index"
)

type languagesResponse struct {
	Count     int                     `json:"count"`
	Languages []index.LanguageSummary `json:"languages"`
}

// Languages lists every language of the snapshot in catalog order
func Languages(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		langs := d.Index.Languages()
		writeJSON(w, http.StatusOK, languagesResponse{Count: len(langs), Languages: langs})
	}
}

// Language returns the full assembled configuration of one language,
// the document the front end renders
func Language(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "lang")
		cfg, ok := d.Index.Language(id)
		if !ok {
			writeError(w, http.StatusNotFound, "unknown language: "+id)
			return
		}
		writeJSON(w, http.StatusOK, cfg)
	}
}

// Category returns one category of a language
func Category(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		lang := chi.URLParam(r, "lang")
		id := chi.URLParam(r, "category")

		c, ok := d.Index.Category(lang, id)
		if !ok {
			writeError(w, http.StatusNotFound, "unknown category: "+lang+"/"+id)
			return
		}
		writeJSON(w, http.StatusOK, c)
	}
}

// Entry returns one entry and the category it belongs to
func Entry(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		lang := chi.URLParam(r, "lang")
		id := chi.URLParam(r, "entry")

		ref, ok := d.Index.Entry(lang, id)
		if !ok {
			writeError(w, http.StatusNotFound, "unknown entry: "+lang+"/"+id)
			return
		}
		writeJSON(w, http.StatusOK, ref)
	}
}
