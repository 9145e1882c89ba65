package api

import (
	"errors"
	"testing"
)

func TestLifecycleIsValid(t *testing.T) {
	tests := []struct {
		lifecycle Lifecycle
		valid     bool
	}{
		{LifecycleSingleton, true},
		{LifecycleTransient, true},
		{Lifecycle(""), true},
		{Lifecycle("scoped"), false},
		{Lifecycle("Singleton"), false},
	}

	for _, test := range tests {
		if got := test.lifecycle.IsValid(); got != test.valid {
			t.Errorf("Lifecycle(%q).IsValid() = %v, expected %v", test.lifecycle, got, test.valid)
		}
	}
}

func TestEffectiveLifecycle(t *testing.T) {
	def := &ServiceDefinition{Name: "a"}
	if def.EffectiveLifecycle() != LifecycleSingleton {
		t.Errorf("empty lifecycle should default to singleton, got %q", def.EffectiveLifecycle())
	}

	def.Lifecycle = LifecycleTransient
	if def.EffectiveLifecycle() != LifecycleTransient {
		t.Errorf("explicit lifecycle should be preserved, got %q", def.EffectiveLifecycle())
	}
}

func TestServiceDefinitionValidate(t *testing.T) {
	tests := []struct {
		name    string
		def     *ServiceDefinition
		wantErr bool
	}{
		{
			name: "valid minimal",
			def:  &ServiceDefinition{Name: "a"},
		},
		{
			name: "valid with everything",
			def: &ServiceDefinition{
				Name:         "backend",
				Category:     "domain",
				Dependencies: []string{"database", "logger"},
				Lifecycle:    LifecycleTransient,
			},
		},
		{
			name:    "empty name",
			def:     &ServiceDefinition{Name: ""},
			wantErr: true,
		},
		{
			name:    "whitespace name",
			def:     &ServiceDefinition{Name: "   "},
			wantErr: true,
		},
		{
			name:    "invalid lifecycle",
			def:     &ServiceDefinition{Name: "a", Lifecycle: "scoped"},
			wantErr: true,
		},
		{
			name:    "self dependency",
			def:     &ServiceDefinition{Name: "a", Dependencies: []string{"a"}},
			wantErr: true,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			err := test.def.Validate()
			if test.wantErr && err == nil {
				t.Error("expected validation error, got nil")
			}
			if !test.wantErr && err != nil {
				t.Errorf("unexpected validation error: %v", err)
			}
		})
	}
}

func TestServiceDefinitionValidateNil(t *testing.T) {
	var def *ServiceDefinition
	if err := def.Validate(); !errors.Is(err, ErrNilDefinition) {
		t.Errorf("nil definition should return ErrNilDefinition, got %v", err)
	}
}

func TestErrorMessages(t *testing.T) {
	result := &ResolutionResult{Success: true}
	if msgs := result.ErrorMessages(); msgs != nil {
		t.Errorf("success result should have nil error messages, got %v", msgs)
	}

	result = &ResolutionResult{
		Success: false,
		Errors: []error{
			NewUnregisteredServiceError("a"),
			NewCircularDependencyError([]string{"b", "c", "b"}),
		},
	}
	msgs := result.ErrorMessages()
	if len(msgs) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(msgs))
	}
	if msgs[0] != "service a is not registered" {
		t.Errorf("unexpected first message: %q", msgs[0])
	}
}

func TestCategoryOf(t *testing.T) {
	tests := []struct {
		name     string
		def      *ServiceDefinition
		expected string
	}{
		{"nil definition", nil, Uncategorized},
		{"empty category", &ServiceDefinition{Name: "a"}, Uncategorized},
		{"whitespace category", &ServiceDefinition{Name: "a", Category: "  "}, Uncategorized},
		{"explicit category", &ServiceDefinition{Name: "a", Category: "infrastructure"}, "infrastructure"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if got := CategoryOf(test.def); got != test.expected {
				t.Errorf("CategoryOf() = %q, expected %q", got, test.expected)
			}
		})
	}
}
