package httpmetrics

import (
	"net/http"
	"regexp"
	"strings"

	"github.com/gorilla/mux"
)

var (
	uuidRegex  = regexp.MustCompile(`[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}`)
	emailRegex = regexp.MustCompile(`^[^/@\s]+@[^/@\s]+$`)
)

// RouteLabel names r for metric labels: the matched route template when the
// router has run, the normalized path otherwise.
func RouteLabel(r *http.Request) string {
	if tpl, ok := routeTemplate(r); ok {
		return tpl
	}
	return NormalizePath(r.URL.Path)
}

func routeTemplate(r *http.Request) (string, bool) {
	route := mux.CurrentRoute(r)
	if route == nil {
		return "", false
	}
	tpl, err := route.GetPathTemplate()
	if err != nil || tpl == "" {
		return "", false
	}
	return tpl, true
}

// NormalizePath collapses identifiers so label cardinality stays bounded:
// uuids become {id}, email segments {email}, numbers {param}.
func NormalizePath(path string) string {
	if path == "" {
		return "/"
	}

	normalized := uuidRegex.ReplaceAllString(path, "{id}")

	parts := strings.Split(normalized, "/")
	for i, part := range parts {
		switch {
		case part == "" || part == "{id}":
		case emailRegex.MatchString(part):
			parts[i] = "{email}"
		case isNumeric(part):
			parts[i] = "{param}"
		}
	}

	if result := strings.Join(parts, "/"); result != "" {
		return result
	}
	return "/"
}

func isNumeric(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
