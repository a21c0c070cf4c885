package failure_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"veranda/shared/failure"
)

func TestFailure_Error(t *testing.T) {
	f := &failure.Failure{
		Code:    http.StatusBadRequest,
		Message: "test error message",
	}

	if f.Error() != "test error message" {
		t.Errorf("expected error message to be 'test error message', got %s", f.Error())
	}
}

func TestConstructors(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		code    int
		message string
	}{
		{
			name:    "BadRequestFromString",
			err:     failure.BadRequestFromString("room does not exist"),
			code:    http.StatusBadRequest,
			message: "room does not exist",
		},
		{
			name:    "NotFound",
			err:     failure.NotFound("booking not found"),
			code:    http.StatusNotFound,
			message: "booking not found",
		},
		{
			name:    "Unauthorized",
			err:     failure.Unauthorized("missing token"),
			code:    http.StatusUnauthorized,
			message: "missing token",
		},
		{
			name:    "Conflict",
			err:     failure.Conflict("room already booked for the selected dates"),
			code:    http.StatusConflict,
			message: "room already booked for the selected dates",
		},
		{
			name:    "InternalError",
			err:     failure.InternalError(errors.New("boom")),
			code:    http.StatusInternalServerError,
			message: "boom",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var fail *failure.Failure
			if !errors.As(tt.err, &fail) {
				t.Fatalf("expected *failure.Failure, got %T", tt.err)
			}

			if fail.Code != tt.code {
				t.Errorf("expected code %d, got %d", tt.code, fail.Code)
			}

			if fail.Message != tt.message {
				t.Errorf("expected message %q, got %q", tt.message, fail.Message)
			}
		})
	}
}

func TestGetCode(t *testing.T) {
	if got := failure.GetCode(failure.NotFound("room not found")); got != http.StatusNotFound {
		t.Errorf("expected %d, got %d", http.StatusNotFound, got)
	}

	if got := failure.GetCode(errors.New("plain error")); got != http.StatusInternalServerError {
		t.Errorf("expected %d, got %d", http.StatusInternalServerError, got)
	}

	wrapped := fmt.Errorf("cancel booking: %w", failure.NotFound("booking not found"))
	if got := failure.GetCode(wrapped); got != http.StatusNotFound {
		t.Errorf("expected wrapped failure code %d, got %d", http.StatusNotFound, got)
	}
}

func TestBadRequest_NilError(t *testing.T) {
	if err := failure.BadRequest(nil); err != nil {
		t.Errorf("expected nil, got %v", err)
	}
}
