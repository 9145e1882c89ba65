package output

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"rollcall/internal/api"
)

// YAMLFormatter provides structured YAML output formatting
type YAMLFormatter struct {
	options Options
}

// NewYAMLFormatter creates a new YAML formatter
func NewYAMLFormatter(options Options) Formatter {
	return &YAMLFormatter{
		options: options,
	}
}

// FormatResult formats a resolution result as YAML.
func (f *YAMLFormatter) FormatResult(result *api.ResolutionResult, defs []*api.ServiceDefinition) string {
	return marshalYAML(buildReport(result))
}

// FormatServices formats a definition listing as YAML.
func (f *YAMLFormatter) FormatServices(defs []*api.ServiceDefinition) string {
	return marshalYAML(defs)
}

// FormatStatistics formats statistics as YAML.
func (f *YAMLFormatter) FormatStatistics(stats api.ResolutionStatistics) string {
	return marshalYAML(stats)
}

// SetOptions updates the formatter options
func (f *YAMLFormatter) SetOptions(options Options) {
	f.options = options
}

// GetOptions returns the current formatter options
func (f *YAMLFormatter) GetOptions() Options {
	return f.options
}

// marshalYAML renders v as YAML, falling back to the Go representation on
// marshal errors.
func marshalYAML(v any) string {
	b, err := yaml.Marshal(v)
	if err != nil {
		return fmt.Sprintf("%v\n", v)
	}
	return string(b)
}
