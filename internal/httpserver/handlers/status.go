package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/MrSnakeDoc/langdocs/internal/httpserver/deps"
)

type componentStatus struct {
	OK         bool   `json:"ok"`
	Languages  *int   `json:"languages,omitempty"`
	Entries    *int   `json:"entries,omitempty"`
	Source     string `json:"source,omitempty"`
	LastReload string `json:"last_reload,omitempty"`
	Mode       string `json:"mode,omitempty"`
	Impact     string `json:"impact,omitempty"`
	Error      string `json:"error,omitempty"`
}

type statusResponse struct {
	Mode       string                     `json:"mode"`
	Components map[string]componentStatus `json:"components"`
}

// Status reports the state of the content snapshot, Redis and the watcher
func Status(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		languages := d.Index.Count()
		entries := d.Index.EntryCount()
		lastReload := d.Index.GetLastReload()
		lastReloadStr := "never"
		if !lastReload.IsZero() {
			lastReloadStr = lastReload.Format(time.RFC3339)
		}

		components := map[string]componentStatus{
			"content": {
				OK:         d.Index.Loaded() && languages > 0,
				Languages:  &languages,
				Entries:    &entries,
				Source:     string(d.Index.Source()),
				LastReload: lastReloadStr,
				Mode:       d.ContentSource,
			},
			"redis":   checkRedis(r.Context(), d),
			"watcher": {OK: true, Mode: watcherMode(d.Watching)},
		}

		writeJSON(w, http.StatusOK, statusResponse{
			Mode:       determineMode(components),
			Components: components,
		})
	}
}

func determineMode(components map[string]componentStatus) string {
	if content, ok := components["content"]; ok && !content.OK {
		return "critical" // Nothing to serve
	}
	if redis, ok := components["redis"]; ok && !redis.OK {
		return "degraded" // Serving, but not publishing
	}
	return "operational"
}

func watcherMode(enabled bool) string {
	if enabled {
		return "watching"
	}
	return "disabled"
}

func checkRedis(parent context.Context, d deps.Deps) componentStatus {
	if d.Store == nil {
		return componentStatus{
			OK:     true,
			Mode:   "disabled",
			Impact: "publication-disabled",
		}
	}

	ctx, cancel := context.WithTimeout(parent, 2*time.Second)
	defer cancel()

	if err := d.Store.Ping(ctx); err != nil {
		return componentStatus{
			OK:     false,
			Mode:   "degraded",
			Impact: "publication-and-search-cache-unavailable",
			Error:  err.Error(),
		}
	}

	return componentStatus{
		OK:     true,
		Mode:   "optimal",
		Impact: "publication-enabled",
	}
}
