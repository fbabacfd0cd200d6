package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/cloudeye/orient/internal/briefing"
	"github.com/cloudeye/orient/internal/claims"
)

// RegisterRoutes mounts the orientation endpoints on the router.
func RegisterRoutes(r chi.Router, engine *briefing.Engine) {
	r.Route("/orient", func(r chi.Router) {
		r.Get("/briefing", handleBriefingText(engine))
		r.Get("/briefing.json", handleBriefingJSON(engine))
		r.Get("/scan", handleScan(engine))
		r.Get("/illusions", handleIllusions(engine))
		r.Get("/health", handleHealth)
	})
}

// refreshParam reports whether ?refresh= asks for a cache bypass.
func refreshParam(r *http.Request, def bool) bool {
	switch r.URL.Query().Get("refresh") {
	case "true", "1", "yes":
		return true
	case "false", "0", "no":
		return false
	default:
		return def
	}
}

func handleBriefingText(engine *briefing.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		b := engine.Briefing(r.Context(), refreshParam(r, false))
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.Write([]byte(b.TextReport + "\n"))
	}
}

func handleBriefingJSON(engine *briefing.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		b := engine.Briefing(r.Context(), refreshParam(r, false))
		writeJSON(w, http.StatusOK, b.JSON())
	}
}

// handleScan always rescans unless the caller explicitly opts into the
// cache; it returns the raw reality subset without claim analysis.
func handleScan(engine *briefing.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		b := engine.Briefing(r.Context(), refreshParam(r, true))
		writeJSON(w, http.StatusOK, map[string]any{
			"scanned_at":  b.GeneratedAt.UTC().Format(time.RFC3339),
			"duration_ms": b.ScanDurationMS,
			"git":         b.GitSummary,
			"services":    b.ServiceSummary,
			"librarian":   b.LibrarianSummary,
			"sapphire":    b.SapphireSummary,
			"filesystem":  b.Filesystem,
		})
	}
}

func handleIllusions(engine *briefing.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		b := engine.Briefing(r.Context(), refreshParam(r, false))

		unverifiable := b.Unverifiable
		if len(unverifiable) > 10 {
			unverifiable = unverifiable[:10]
		}
		if unverifiable == nil {
			unverifiable = []claims.Claim{}
		}
		illusions := b.Illusions
		if illusions == nil {
			illusions = []claims.Claim{}
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"warning_level":  b.WarningLevel,
			"illusion_count": b.IllusionCount,
			"illusions":      illusions,
			"unverifiable":   unverifiable,
		})
	}
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "ok",
		"service": "orient",
		"version": Version,
	})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
