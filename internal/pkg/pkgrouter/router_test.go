package pkgrouter

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/diasna/tng/internal/pkg/pkgerror"
)

type staticID string

func (s staticID) Generate() string { return string(s) }

type payload struct {
	Value string `json:"value"`
}

func (payload) Message() string { return "done" }

func serve(t *testing.T, h Handler, path string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()

	r := NewRouter(staticID("cid-1"))
	r.GET("/items/:id", h)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))

	var body map[string]any
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	return rec, body
}

func TestRouterSuccessEnvelope(t *testing.T) {
	rec, body := serve(t, func(ctx context.Context, r *http.Request) (any, error) {
		return payload{Value: GetParam(ctx, "id")}, nil
	}, "/items/42")

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if body["message"] != "done" {
		t.Fatalf("expected message from payload, got %v", body["message"])
	}
	data, _ := body["data"].(map[string]any)
	if data["value"] != "42" {
		t.Fatalf("expected path param in data, got %v", body["data"])
	}
}

func TestRouterErrorCodec(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		status     int
		code       string
		wantDetail bool
	}{
		{
			name:       "validation",
			err:        pkgerror.NewInvalidInput(errors.New("weight is required; customer_id is required")),
			status:     http.StatusUnprocessableEntity,
			code:       "ERROR_CODE_INVALID_INPUT",
			wantDetail: true,
		},
		{
			name:   "unavailable",
			err:    pkgerror.NewUnavailable(errors.New("pebble: closed"), "storage is unavailable"),
			status: http.StatusServiceUnavailable,
			code:   "ERROR_CODE_UNAVAILABLE",
		},
		{
			name:   "not found",
			err:    pkgerror.NewBusiness("tracking number not found", pkgerror.CodeNotFound),
			status: http.StatusNotFound,
			code:   "ERROR_CODE_NOT_FOUND",
		},
		{
			name:   "plain error",
			err:    errors.New("boom"),
			status: http.StatusInternalServerError,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rec, body := serve(t, func(ctx context.Context, r *http.Request) (any, error) {
				return nil, tc.err
			}, "/items/1")

			if rec.Code != tc.status {
				t.Fatalf("expected %d, got %d", tc.status, rec.Code)
			}
			if tc.code == "" {
				if _, ok := body["error"]; ok {
					t.Fatalf("expected no error object, got %v", body["error"])
				}
				return
			}

			errObj, _ := body["error"].(map[string]any)
			if errObj["code"] != tc.code {
				t.Fatalf("expected code %s, got %v", tc.code, errObj["code"])
			}
			_, hasDetail := errObj["detail"]
			if hasDetail != tc.wantDetail {
				t.Fatalf("detail presence = %v, want %v (%v)", hasDetail, tc.wantDetail, errObj)
			}
		})
	}
}

func TestRouterProbesAndNotFound(t *testing.T) {
	r := NewRouter(staticID("cid-1"))

	for path, want := range map[string]int{
		"/":        http.StatusOK,
		"/health":  http.StatusOK,
		"/missing": http.StatusNotFound,
	} {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		if rec.Code != want {
			t.Fatalf("%s: expected %d, got %d", path, want, rec.Code)
		}
	}

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/health", nil))
	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405, got %d", rec.Code)
	}
	if got := rec.Header().Get(HeaderCorrelationID); got != "" {
		t.Fatalf("expected no correlation id outside middleware chain, got %q", got)
	}
}
