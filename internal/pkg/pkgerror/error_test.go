package pkgerror

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"testing"
)

func TestTypeString(t *testing.T) {
	tests := map[Type]string{
		TypeValidation: "ERROR_TYPE_VALIDATION",
		TypeBusiness:   "ERROR_TYPE_BUSINESS",
		TypeServer:     "ERROR_TYPE_SERVER",
		Type(99):       "ERROR_TYPE_UNKNOWN",
	}
	for typ, want := range tests {
		if got := typ.String(); got != want {
			t.Fatalf("expected %q, got %q", want, got)
		}
	}
}

func TestCodeStringAndStatus(t *testing.T) {
	tests := []struct {
		code   Code
		name   string
		status int
	}{
		{CodeInternal, "ERROR_CODE_INTERNAL", http.StatusInternalServerError},
		{CodeInvalidInput, "ERROR_CODE_INVALID_INPUT", http.StatusUnprocessableEntity},
		{CodeInvalidFormat, "ERROR_CODE_INVALID_FORMAT", http.StatusBadRequest},
		{CodeNotFound, "ERROR_CODE_NOT_FOUND", http.StatusNotFound},
		{CodeConflict, "ERROR_CODE_CONFLICT", http.StatusConflict},
		{CodeUnavailable, "ERROR_CODE_UNAVAILABLE", http.StatusServiceUnavailable},
		{Code(99), "ERROR_CODE_INTERNAL", http.StatusInternalServerError},
	}
	for _, tc := range tests {
		if got := tc.code.String(); got != tc.name {
			t.Fatalf("code %d: expected %q, got %q", tc.code, tc.name, got)
		}
		if got := tc.code.StatusCode(); got != tc.status {
			t.Fatalf("code %d: expected status %d, got %d", tc.code, tc.status, got)
		}
	}
}

func TestNewServerHidesCause(t *testing.T) {
	root := errors.New("pebble: closed")
	err := NewServer(root)

	var gerr *Error
	if !errors.As(err, &gerr) {
		t.Fatalf("expected *Error, got %T", err)
	}
	if !errors.Is(err, root) {
		t.Fatal("expected wrapped error")
	}
	if gerr.Msg() != "Internal server error" || gerr.Type() != TypeServer || gerr.Code() != CodeInternal {
		t.Fatalf("unexpected error %s", gerr.String())
	}
	if gerr.Error() != "pebble: closed" {
		t.Fatalf("expected cause text, got %q", gerr.Error())
	}
}

func TestBusinessAndValidationErrors(t *testing.T) {
	conflict := NewBusiness("tracking number already exists", CodeConflict).(*Error)
	if conflict.Type() != TypeBusiness || conflict.StatusCode() != http.StatusConflict {
		t.Fatalf("unexpected conflict %s", conflict.String())
	}
	if conflict.Error() != "tracking number already exists" {
		t.Fatalf("expected message as error text, got %q", conflict.Error())
	}

	invalid := NewInvalidInput(errors.New("weight is required; customer_id is required")).(*Error)
	if invalid.Type() != TypeValidation || invalid.StatusCode() != http.StatusUnprocessableEntity {
		t.Fatalf("unexpected validation error %s", invalid.String())
	}
	if invalid.Msg() != "validation error" {
		t.Fatalf("unexpected msg %q", invalid.Msg())
	}

	malformed := NewInvalidFormat(errors.New("weight must be a number")).(*Error)
	if malformed.Type() != TypeValidation || malformed.StatusCode() != http.StatusBadRequest {
		t.Fatalf("unexpected format error %s", malformed.String())
	}
	if malformed.Error() != "weight must be a number" || !IsCode(malformed, CodeInvalidFormat) {
		t.Fatalf("unexpected format error %s", malformed.String())
	}
}

func TestErrorFallbackMessages(t *testing.T) {
	tests := map[Type]string{
		TypeValidation: "validation failed",
		TypeBusiness:   "business rule violated",
		TypeServer:     "internal error",
	}
	for typ, want := range tests {
		if got := (&Error{errType: typ}).Error(); got != want {
			t.Fatalf("type %s: expected %q, got %q", typ, want, got)
		}
	}
}

func TestErrorString(t *testing.T) {
	s := NewUnavailable(errors.New("disk"), "storage is unavailable").(*Error).String()
	for _, want := range []string{"ERROR_TYPE_SERVER", "ERROR_CODE_UNAVAILABLE", "storage is unavailable", "disk"} {
		if !strings.Contains(s, want) {
			t.Fatalf("expected %q in %q", want, s)
		}
	}
}

func TestUnavailableAndGenerationErrors(t *testing.T) {
	cause := errors.New("connection refused")

	unavailable := NewUnavailable(cause, "storage is unavailable").(*Error)
	if unavailable.StatusCode() != http.StatusServiceUnavailable || !errors.Is(unavailable, cause) {
		t.Fatalf("unexpected unavailable error %s", unavailable.String())
	}

	exhausted := NewGeneration(cause, "please retry").(*Error)
	if exhausted.StatusCode() != http.StatusInternalServerError || exhausted.Msg() != "please retry" {
		t.Fatalf("unexpected generation error %s", exhausted.String())
	}
}

func TestIsCode(t *testing.T) {
	conflict := NewBusiness("duplicate", CodeConflict)
	wrapped := fmt.Errorf("insert: %w", conflict)

	if !IsCode(wrapped, CodeConflict) {
		t.Fatal("expected wrapped conflict to match")
	}
	if IsCode(wrapped, CodeNotFound) {
		t.Fatal("expected code mismatch")
	}
	if IsCode(errors.New("plain"), CodeConflict) {
		t.Fatal("expected plain error not to match")
	}
	if IsCode(nil, CodeInternal) {
		t.Fatal("expected nil not to match")
	}
}
