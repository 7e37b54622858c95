package pkgrouter

import (
	"context"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"
)

func TestChainAndUseOrder(t *testing.T) {
	var order []string
	mw := func(name string) Middleware {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name)
				next.ServeHTTP(w, r)
			})
		}
	}

	r := NewRouter(staticID("cid"))
	r.Use(mw("global"))
	r.GET("/tracking-numbers/:tracking_number", func(ctx context.Context, _ *http.Request) (any, error) {
		order = append(order, "handler:"+GetParam(ctx, "tracking_number"))
		return payload{}, nil
	}, mw("route"))

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/tracking-numbers/AAAAAAAABBBBBBBB", nil))

	want := []string{"global", "route", "handler:AAAAAAAABBBBBBBB"}
	if !reflect.DeepEqual(order, want) {
		t.Fatalf("expected %v, got %v", want, order)
	}
	if got := rec.Header().Get(HeaderCorrelationID); got != "cid" {
		t.Fatalf("expected correlation id from built-in middleware, got %q", got)
	}
}
