package errors

import (
	"fmt"
	"testing"
)

func TestError_Error(t *testing.T) {
	err := &Error{
		Code:    ErrNotFound,
		Status:  404,
		Message: "conversation not found",
	}

	expected := "NOT_FOUND: conversation not found"
	if err.Error() != expected {
		t.Errorf("Error() = %q, want %q", err.Error(), expected)
	}
}

func TestNewInvalidRequest(t *testing.T) {
	err := NewInvalidRequest("subject is required")

	if err.Code != ErrInvalidRequest {
		t.Errorf("Code = %q, want %q", err.Code, ErrInvalidRequest)
	}
	if err.Status != 400 {
		t.Errorf("Status = %d, want 400", err.Status)
	}
	if err.Message != "subject is required" {
		t.Errorf("Message = %q, want %q", err.Message, "subject is required")
	}
}

func TestNewInsufficientCredits(t *testing.T) {
	err := NewInsufficientCredits("alice", 2, 1)

	if err.Code != ErrInsufficientCredits {
		t.Errorf("Code = %q, want %q", err.Code, ErrInsufficientCredits)
	}
	if err.Status != 402 {
		t.Errorf("Status = %d, want 402", err.Status)
	}
	if err.Details["username"] != "alice" {
		t.Errorf("Details[username] = %v, want %q", err.Details["username"], "alice")
	}
	if err.Details["need"] != 2 || err.Details["have"] != 1 {
		t.Errorf("Details = %v, want need=2 have=1", err.Details)
	}
}

func TestNewNotFound(t *testing.T) {
	err := NewNotFound("user bob")

	if err.Code != ErrNotFound {
		t.Errorf("Code = %q, want %q", err.Code, ErrNotFound)
	}
	if err.Status != 404 {
		t.Errorf("Status = %d, want 404", err.Status)
	}
	if err.Details["identifier"] != "user bob" {
		t.Errorf("Details[identifier] = %v, want %q", err.Details["identifier"], "user bob")
	}
}

func TestNewUserExists(t *testing.T) {
	err := NewUserExists("bob")

	if err.Code != ErrUserExists {
		t.Errorf("Code = %q, want %q", err.Code, ErrUserExists)
	}
	if err.Status != 409 {
		t.Errorf("Status = %d, want 409", err.Status)
	}
	if err.Details["username"] != "bob" {
		t.Errorf("Details[username] = %v, want %q", err.Details["username"], "bob")
	}
}

func TestNewPersistenceFailure(t *testing.T) {
	err := NewPersistenceFailure(fmt.Errorf("disk full"))

	if err.Code != ErrPersistenceFailure {
		t.Errorf("Code = %q, want %q", err.Code, ErrPersistenceFailure)
	}
	if err.Message != "persistence failure: disk full" {
		t.Errorf("Message = %q", err.Message)
	}

	nilErr := NewPersistenceFailure(nil)
	if nilErr.Message != "persistence failure" {
		t.Errorf("Message = %q, want %q", nilErr.Message, "persistence failure")
	}
}

func TestNewGatewayFailure(t *testing.T) {
	err := NewGatewayFailure("upstream returned status 500")

	if err.Code != ErrGatewayFailure {
		t.Errorf("Code = %q, want %q", err.Code, ErrGatewayFailure)
	}
	if err.Status != 502 {
		t.Errorf("Status = %d, want 502", err.Status)
	}
}

func TestNewInternal(t *testing.T) {
	err := NewInternal(fmt.Errorf("something broke"))

	if err.Code != ErrInternal {
		t.Errorf("Code = %q, want %q", err.Code, ErrInternal)
	}
	if err.Message != "something broke" {
		t.Errorf("Message = %q, want %q", err.Message, "something broke")
	}

	nilErr := NewInternal(nil)
	if nilErr.Message != "internal error" {
		t.Errorf("Message = %q, want %q", nilErr.Message, "internal error")
	}
}

func TestIs(t *testing.T) {
	err := NewNotFound("x")

	if !Is(err, ErrNotFound) {
		t.Error("Is(NewNotFound, ErrNotFound) = false, want true")
	}
	if Is(err, ErrInvalidRequest) {
		t.Error("Is(NewNotFound, ErrInvalidRequest) = true, want false")
	}
	if Is(fmt.Errorf("plain"), ErrNotFound) {
		t.Error("Is(plain error, ErrNotFound) = true, want false")
	}
	if Is(nil, ErrNotFound) {
		t.Error("Is(nil, ErrNotFound) = true, want false")
	}
}
