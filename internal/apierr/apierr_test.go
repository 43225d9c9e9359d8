package apierr

import (
	"errors"
	"net/http"
	"testing"
)

func TestInvalid_HTTPStatus(t *testing.T) {
	err := Invalid("bad input")
	if err.HTTPStatus() != http.StatusBadRequest {
		t.Errorf("HTTPStatus() = %d, want 400", err.HTTPStatus())
	}
}

func TestDetection_HTTPStatusAndCause(t *testing.T) {
	cause := errors.New("boom")
	err := Detection("detector failed", cause)
	if err.HTTPStatus() != http.StatusInternalServerError {
		t.Errorf("HTTPStatus() = %d, want 500", err.HTTPStatus())
	}
	if !errors.Is(err, cause) {
		t.Error("expected Unwrap to expose the cause")
	}
}

func TestEmitter_HTTPStatus(t *testing.T) {
	err := Emitter("gp5 write failed", nil)
	if err.HTTPStatus() != http.StatusInternalServerError {
		t.Errorf("HTTPStatus() = %d, want 500", err.HTTPStatus())
	}
}
