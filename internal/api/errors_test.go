package api

import (
	"errors"
	"fmt"
	"testing"
)

func TestMissingDependencyError(t *testing.T) {
	err := NewMissingDependencyError("backend", "database")
	expected := "service backend depends on database, which is not registered"
	if err.Error() != expected {
		t.Errorf("Error() = %q, expected %q", err.Error(), expected)
	}
	if !IsMissingDependency(err) {
		t.Error("IsMissingDependency should recognize MissingDependencyError")
	}

	wrapped := fmt.Errorf("resolve failed: %w", err)
	if !IsMissingDependency(wrapped) {
		t.Error("IsMissingDependency should recognize a wrapped error")
	}
	if IsMissingDependency(errors.New("other")) {
		t.Error("IsMissingDependency should reject unrelated errors")
	}
}

func TestUnregisteredServiceError(t *testing.T) {
	err := NewUnregisteredServiceError("cache")
	expected := "service cache is not registered"
	if err.Error() != expected {
		t.Errorf("Error() = %q, expected %q", err.Error(), expected)
	}
	if err.Service != "" {
		t.Errorf("direct request should leave Service empty, got %q", err.Service)
	}
	if !IsMissingDependency(err) {
		t.Error("IsMissingDependency should recognize a direct request error")
	}
}

func TestDuplicateServiceError(t *testing.T) {
	err := NewDuplicateServiceError("logger")
	expected := "service logger is already registered"
	if err.Error() != expected {
		t.Errorf("Error() = %q, expected %q", err.Error(), expected)
	}
	if !IsDuplicateService(err) {
		t.Error("IsDuplicateService should recognize DuplicateServiceError")
	}
	if IsDuplicateService(NewUnregisteredServiceError("logger")) {
		t.Error("IsDuplicateService should reject other error types")
	}
}

func TestCircularDependencyError(t *testing.T) {
	err := NewCircularDependencyError([]string{"a", "b", "c", "a"})
	expected := "circular dependency detected: a -> b -> c -> a"
	if err.Error() != expected {
		t.Errorf("Error() = %q, expected %q", err.Error(), expected)
	}
	if !IsCircularDependency(err) {
		t.Error("IsCircularDependency should recognize CircularDependencyError")
	}
	if !IsCircularDependency(fmt.Errorf("order: %w", err)) {
		t.Error("IsCircularDependency should recognize a wrapped error")
	}
}

func TestFactoryExecutionError(t *testing.T) {
	cause := errors.New("connection refused")
	err := NewFactoryExecutionError("database", cause)

	expected := "factory for service database failed: connection refused"
	if err.Error() != expected {
		t.Errorf("Error() = %q, expected %q", err.Error(), expected)
	}
	if !IsFactoryExecution(err) {
		t.Error("IsFactoryExecution should recognize FactoryExecutionError")
	}
	if !errors.Is(err, cause) {
		t.Error("errors.Is should reach the original cause through Unwrap")
	}
}

func TestValidationError(t *testing.T) {
	err := NewValidationError([]MissingRef{
		{Service: "p", Missing: "q"},
		{Service: "r", Missing: "s"},
	})

	expected := "missing dependency references: p -> q (missing), r -> s (missing)"
	if err.Error() != expected {
		t.Errorf("Error() = %q, expected %q", err.Error(), expected)
	}
	if !IsValidation(err) {
		t.Error("IsValidation should recognize ValidationError")
	}
	if len(err.Missing) != 2 {
		t.Errorf("expected 2 missing refs, got %d", len(err.Missing))
	}
}

func TestMissingRefString(t *testing.T) {
	ref := MissingRef{Service: "p", Missing: "q"}
	if ref.String() != "p -> q (missing)" {
		t.Errorf("String() = %q, expected %q", ref.String(), "p -> q (missing)")
	}
}

func TestIsHelpersOnNil(t *testing.T) {
	if IsMissingDependency(nil) || IsDuplicateService(nil) ||
		IsCircularDependency(nil) || IsFactoryExecution(nil) || IsValidation(nil) {
		t.Error("Is* helpers must return false for nil errors")
	}
}
