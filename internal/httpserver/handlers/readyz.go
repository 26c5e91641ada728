package handlers

import (
	"net/http"

	"github.com/MrSnakeDoc/langdocs/internal/httpserver/deps"
)

type readyzResponse struct {
	Ready     bool   `json:"ready"`
	Source    string `json:"source,omitempty"`
	Languages int    `json:"languages"`
}

// Readyz answers 503 until a content snapshot is installed
func Readyz(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resp := readyzResponse{
			Ready:     d.Index.Loaded(),
			Source:    string(d.Index.Source()),
			Languages: d.Index.Count(),
		}

		status := http.StatusOK
		if !resp.Ready {
			status = http.StatusServiceUnavailable
		}
		writeJSON(w, status, resp)
	}
}
