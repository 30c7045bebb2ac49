package handlers

import (
	"html/template"
	"net/http"
	"net/url"
	"strconv"

	"nfl-rankings-go/logging"
	"nfl-rankings-go/services"
)

// queryInt parses an integer query parameter, returning 0 when absent or
// malformed.
func queryInt(r *http.Request, key string) int {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return 0
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0
	}
	return value
}

// queryFilter builds a RankingFilter from the dashboard's query parameters.
// Filter widgets submit repeated "division" and "team" parameters.
func queryFilter(r *http.Request) services.RankingFilter {
	q := r.URL.Query()
	return services.RankingFilter{
		Divisions:   dropEmpty(q["division"]),
		Teams:       dropEmpty(q["team"]),
		ThroughYear: queryInt(r, "through"),
	}
}

func dropEmpty(values []string) []string {
	var out []string
	for _, v := range values {
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}

// redirectWithMessage sends the browser back to path with a flash message in
// the query string (POST-redirect-GET).
func redirectWithMessage(w http.ResponseWriter, r *http.Request, path, key, message string) {
	target := path
	if message != "" {
		target += "?" + key + "=" + url.QueryEscape(message)
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

// renderTemplate executes a page template, reporting a 500 on failure.
func renderTemplate(templates *template.Template, logger *logging.Logger, w http.ResponseWriter, name string, data interface{}) {
	if err := templates.ExecuteTemplate(w, name, data); err != nil {
		logger.Errorf("Template error for %s: %v", name, err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}
