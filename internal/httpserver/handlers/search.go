package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/MrSnakeDoc/langdocs/internal/domain"
	"github.com/MrSnakeDoc/langdocs/internal/httpserver/deps"
	"github.com/MrSnakeDoc/langdocs/internal/index"
	"github.com/MrSnakeDoc/langdocs/internal/logger"
	redisstore "github.com/MrSnakeDoc/langdocs/internal/store/redis"
)

// MaxSearchLimit caps the limit query parameter
const MaxSearchLimit = 100

type searchResponse struct {
	Query    string               `json:"query"`
	Language string               `json:"language,omitempty"`
	Count    int                  `json:"count"`
	Results  []index.SearchResult `json:"results"`
}

// Search ranks entries against ?q=, optionally restricted to ?lang= and capped by ?limit=
func Search(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		raw := strings.TrimSpace(r.URL.Query().Get("q"))
		lang := strings.TrimSpace(r.URL.Query().Get("lang"))

		query := domain.ParseQuery(raw)
		if query.IsEmpty() {
			writeError(w, http.StatusBadRequest, "missing query parameter q")
			return
		}

		limit, err := parseLimit(r.URL.Query().Get("limit"), d.SearchLimit)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		if lang != "" {
			if _, ok := d.Index.Language(lang); !ok {
				writeError(w, http.StatusNotFound, "unknown language: "+lang)
				return
			}
		}

		cacheKey := redisstore.SearchCacheKey(lang, limit, strings.ToLower(raw))

		// Try cache first
		if d.Store != nil {
			var cached searchResponse
			hit, err := d.Store.GetCachedSearch(ctx, cacheKey, &cached)
			if err != nil {
				d.Logger.Debug("search cache unavailable", logger.Error(err))
			}
			if hit {
				d.Logger.Debug("search cache hit", logger.String("query", raw))
				// The key is case-insensitive, echo this request's query
				cached.Query = raw
				writeJSON(w, http.StatusOK, cached)
				return
			}
		}

		results := d.Index.Search(query, lang, limit)
		resp := searchResponse{Query: raw, Language: lang, Count: len(results), Results: results}

		d.Logger.Info("search request",
			logger.String("query", raw),
			logger.String("language", lang),
			logger.Int("results", len(results)))

		// Cache the response (best effort)
		if d.Store != nil {
			if err := d.Store.CacheSearch(ctx, cacheKey, resp, redisstore.DefaultSearchCacheTTL); err != nil {
				d.Logger.Debug("failed to cache search", logger.Error(err))
			}
		}

		writeJSON(w, http.StatusOK, resp)
	}
}

func parseLimit(s string, def int) (int, error) {
	if s == "" {
		return def, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return 0, fmt.Errorf("invalid limit: %q", s)
	}
	return min(n, MaxSearchLimit), nil
}
