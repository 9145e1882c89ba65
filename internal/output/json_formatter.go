package output

import (
	"rollcall/internal/api"
)

// JSONFormatter provides structured JSON output formatting
type JSONFormatter struct {
	options Options
}

// NewJSONFormatter creates a new JSON formatter
func NewJSONFormatter(options Options) Formatter {
	return &JSONFormatter{
		options: options,
	}
}

// FormatResult formats a resolution result as JSON.
func (f *JSONFormatter) FormatResult(result *api.ResolutionResult, defs []*api.ServiceDefinition) string {
	return PrettyJSON(buildReport(result)) + "\n"
}

// FormatServices formats a definition listing as JSON.
func (f *JSONFormatter) FormatServices(defs []*api.ServiceDefinition) string {
	if defs == nil {
		defs = []*api.ServiceDefinition{}
	}
	return PrettyJSON(defs) + "\n"
}

// FormatStatistics formats statistics as JSON.
func (f *JSONFormatter) FormatStatistics(stats api.ResolutionStatistics) string {
	return PrettyJSON(stats) + "\n"
}

// SetOptions updates the formatter options
func (f *JSONFormatter) SetOptions(options Options) {
	f.options = options
}

// GetOptions returns the current formatter options
func (f *JSONFormatter) GetOptions() Options {
	return f.options
}
