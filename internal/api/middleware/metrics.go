package middleware

import (
	"net/http"
	"time"

	"github.com/formbricks/insight/internal/observability"
)

// otherRoute labels requests to paths outside the registered route set.
const otherRoute = "other"

// knownRoutes are the paths recorded under their own route label.
var knownRoutes = map[string]struct{}{
	"/":                 {},
	"/health":           {},
	"/feedback":         {},
	"/analyze_feedback": {},
	"/summary":          {},
	"/metrics":          {},
}

// Metrics returns middleware that records HTTP request count and duration.
// When metrics is nil, recording is skipped. Put Metrics outermost so duration is full request time.
func Metrics(metrics observability.Metrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if metrics == nil {
				next.ServeHTTP(w, r)
				return
			}

			start := time.Now()
			rw := newResponseWriter(w)
			next.ServeHTTP(rw, r)

			metrics.RecordRequest(r.Context(), r.Method, normalizeRoute(r.URL.Path),
				statusToClass(rw.statusCode), time.Since(start))
		})
	}
}

// normalizeRoute maps unknown paths to a single label to bound cardinality.
func normalizeRoute(path string) string {
	if _, ok := knownRoutes[path]; ok {
		return path
	}

	return otherRoute
}

// statusToClass maps HTTP status code to 1xx, 2xx, 4xx, 5xx.
func statusToClass(status int) string {
	switch {
	case status >= 500:
		return "5xx"
	case status >= 400:
		return "4xx"
	case status >= 300:
		return "3xx"
	case status >= 200:
		return "2xx"
	case status >= 100:
		return "1xx"
	default:
		return "unknown"
	}
}
