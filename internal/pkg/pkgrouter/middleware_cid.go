package pkgrouter

import (
	"net/http"
	"strings"
	"unicode"

	"github.com/diasna/tng/internal/pkg/pkglog"
)

// Generator generates a unique string (used for correlation/request IDs).
type Generator interface {
	Generate() string
}

const (
	// HeaderCorrelationID is the canonical header used to track requests end-to-end.
	HeaderCorrelationID = "X-Correlation-ID"
	// HeaderRequestID is an accepted alternative header name used by some proxies.
	HeaderRequestID = "X-Request-ID"

	maxCIDLength = 128
)

//nolint:gochecknoglobals // lookup order
var cidHeaders = []string{HeaderCorrelationID, HeaderRequestID}

// normalizeCID trims v and rejects values carrying control characters.
func normalizeCID(v string) string {
	v = strings.TrimSpace(v)
	if v == "" || strings.IndexFunc(v, unicode.IsControl) >= 0 {
		return ""
	}
	if len(v) > maxCIDLength {
		v = v[:maxCIDLength]
	}
	return v
}

func incomingCID(r *http.Request) string {
	for _, h := range cidHeaders {
		if cid := normalizeCID(r.Header.Get(h)); cid != "" {
			return cid
		}
	}
	return ""
}

func middlewareCorrelationID(uid Generator) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cid := incomingCID(r)
			if cid == "" && uid != nil {
				cid = uid.Generate()
			}

			if cid != "" {
				w.Header().Set(HeaderCorrelationID, cid)
				r = r.WithContext(pkglog.SetCorrelationID(r.Context(), cid))
			}

			next.ServeHTTP(w, r)
		})
	}
}
