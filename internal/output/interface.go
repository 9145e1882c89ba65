// Package output renders resolver results, service listings and statistics
// for the CLI, with support for multiple output formats (table, JSON,
// YAML).
package output

import (
	"fmt"
	"strings"

	"rollcall/internal/api"
)

// Format represents the desired output format
type Format string

const (
	FormatTable Format = "table" // Rich table output
	FormatJSON  Format = "json"  // JSON output
	FormatYAML  Format = "yaml"  // YAML output
)

// ParseFormat converts a CLI flag value into a Format.
func ParseFormat(name string) (Format, error) {
	switch f := Format(strings.ToLower(name)); f {
	case FormatTable, FormatJSON, FormatYAML:
		return f, nil
	}
	return "", fmt.Errorf("unknown output format %q (must be table, json or yaml)", name)
}

// Options configures the formatter behavior
type Options struct {
	Format Format
	Quiet  bool // Suppress decorative elements
	Color  bool // Enable colored output
}

// Formatter renders the core result types for one output format.
type Formatter interface {
	// FormatResult renders a resolution result, success or failure.
	FormatResult(result *api.ResolutionResult, defs []*api.ServiceDefinition) string

	// FormatServices renders a service definition listing.
	FormatServices(defs []*api.ServiceDefinition) string

	// FormatStatistics renders resolution statistics.
	FormatStatistics(stats api.ResolutionStatistics) string

	// Configuration
	SetOptions(options Options)
	GetOptions() Options
}

// NewFormatter creates the appropriate formatter based on options.
func NewFormatter(options Options) Formatter {
	switch options.Format {
	case FormatJSON:
		return NewJSONFormatter(options)
	case FormatYAML:
		return NewYAMLFormatter(options)
	case FormatTable:
		fallthrough
	default:
		return NewTableFormatter(options)
	}
}

// report is the serializable projection of a resolution result shared by
// the JSON and YAML formatters. Errors travel as rendered strings.
type report struct {
	Success         bool                      `json:"success" yaml:"success"`
	OrderedServices []string                  `json:"orderedServices,omitempty" yaml:"orderedServices,omitempty"`
	Statistics      *api.ResolutionStatistics `json:"statistics,omitempty" yaml:"statistics,omitempty"`
	Errors          []string                  `json:"errors,omitempty" yaml:"errors,omitempty"`
}

func buildReport(result *api.ResolutionResult) report {
	r := report{
		Success:         result.Success,
		OrderedServices: result.OrderedServices,
		Errors:          result.ErrorMessages(),
	}
	if result.Success {
		stats := result.Statistics
		r.Statistics = &stats
	}
	return r
}
