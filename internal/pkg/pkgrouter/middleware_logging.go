package pkgrouter

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/julienschmidt/httprouter"
)

// maxLoggedErrorBytes caps the error body kept for the response log line.
const maxLoggedErrorBytes = 4 * 1024

//nolint:gochecknoglobals // global for fast reuse
var sensitiveKeys = map[string]struct{}{
	"authorization": {},
	"cookie":        {},
	"customer_name": {},
}

func isSensitive(key string) bool {
	_, found := sensitiveKeys[strings.ToLower(key)]
	return found
}

func maskHeaders(headers http.Header) http.Header {
	result := headers.Clone()
	for key := range result {
		if isSensitive(key) {
			result.Set(key, "***")
		}
	}
	return result
}

// maskQuery flattens query values for logging, hiding customer PII.
func maskQuery(values url.Values) map[string]any {
	if len(values) == 0 {
		return nil
	}

	masked := make(map[string]any, len(values))
	for k, v := range values {
		switch {
		case isSensitive(k):
			masked[k] = "***"
		case len(v) == 1:
			masked[k] = v[0]
		default:
			masked[k] = v
		}
	}
	return masked
}

// statusRecorder keeps the status and, for error responses, the body.
type statusRecorder struct {
	http.ResponseWriter
	status int
	bytes  int
	errBuf bytes.Buffer
}

func (w *statusRecorder) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

func (w *statusRecorder) Write(p []byte) (int, error) {
	if w.status == 0 {
		w.status = http.StatusOK
	}

	if w.status >= http.StatusBadRequest {
		if remaining := maxLoggedErrorBytes - w.errBuf.Len(); remaining > 0 {
			w.errBuf.Write(p[:min(len(p), remaining)])
		}
	}

	n, err := w.ResponseWriter.Write(p)
	w.bytes += n
	return n, err
}

func (w *statusRecorder) Flush() {
	if f, ok := w.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

func (w *statusRecorder) errorBody() any {
	if w.errBuf.Len() == 0 {
		return nil
	}

	var body any
	if err := json.Unmarshal(w.errBuf.Bytes(), &body); err == nil {
		return body
	}
	if utf8.Valid(w.errBuf.Bytes()) {
		return w.errBuf.String()
	}
	return "<binary body omitted>"
}

func matchedRoutePath(r *http.Request) string {
	pattern := httprouter.ParamsFromContext(r.Context()).MatchedRoutePath()
	if pattern != "" {
		return pattern
	}
	return r.URL.Path
}

func levelForStatus(status int) slog.Level {
	switch {
	case status >= http.StatusInternalServerError:
		return slog.LevelError
	case status >= http.StatusBadRequest:
		return slog.LevelWarn
	default:
		return slog.LevelInfo
	}
}

func middlewareLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		route := matchedRoutePath(r)
		start := time.Now()

		slog.DebugContext(
			r.Context(),
			"request received",
			"method", r.Method,
			"route", route,
			"headers", maskHeaders(r.Header),
		)

		rec := &statusRecorder{ResponseWriter: w}
		next.ServeHTTP(rec, r)

		status := rec.status
		if status == 0 {
			status = http.StatusOK
		}

		attrs := []any{
			"method", r.Method,
			"route", route,
			"path", r.URL.Path,
			"query", maskQuery(r.URL.Query()),
			"status", status,
			"bytes", rec.bytes,
			"latency_ms", time.Since(start).Milliseconds(),
		}
		if body := rec.errorBody(); body != nil {
			attrs = append(attrs, "error_body", body)
		}

		slog.Log(r.Context(), levelForStatus(status), "response sent", attrs...)
	})
}
