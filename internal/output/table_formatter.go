package output

import (
	"fmt"
	"sort"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"rollcall/internal/api"
)

// TableFormatter provides rich table output formatting
type TableFormatter struct {
	options Options
}

// NewTableFormatter creates a new table formatter
func NewTableFormatter(options Options) Formatter {
	return &TableFormatter{
		options: options,
	}
}

// FormatResult renders the ordered services as a table, or the error report
// when the resolution failed.
func (f *TableFormatter) FormatResult(result *api.ResolutionResult, defs []*api.ServiceDefinition) string {
	if !result.Success {
		return f.formatFailure(result)
	}
	if len(result.OrderedServices) == 0 {
		return f.formatEmptyMessage("📋", "No services to order")
	}

	byName := definitionIndex(defs)

	t := f.createTable()
	t.AppendHeader(table.Row{
		f.header("#"),
		f.header("SERVICE"),
		f.header("CATEGORY"),
		f.header("LIFECYCLE"),
		f.header("DEPENDENCIES"),
	})
	for i, name := range result.OrderedServices {
		var category, lifecycle, deps string
		if def, ok := byName[name]; ok {
			category = api.CategoryOf(def)
			lifecycle = string(def.EffectiveLifecycle())
			deps = strings.Join(def.Dependencies, ", ")
		}
		t.AppendRow(table.Row{i + 1, name, category, lifecycle, deps})
	}

	if f.options.Quiet {
		return t.Render() + "\n"
	}
	return fmt.Sprintf("%s\n%d services, max dependency depth %d\n",
		t.Render(), result.Statistics.TotalServices, result.Statistics.MaxDependencyDepth)
}

// FormatServices renders a definition listing as a table.
func (f *TableFormatter) FormatServices(defs []*api.ServiceDefinition) string {
	if len(defs) == 0 {
		return f.formatEmptyMessage("📋", "No services defined")
	}

	t := f.createTable()
	t.AppendHeader(table.Row{
		f.header("SERVICE"),
		f.header("CATEGORY"),
		f.header("LIFECYCLE"),
		f.header("DEPENDENCIES"),
	})
	for _, def := range defs {
		t.AppendRow(table.Row{
			def.Name,
			api.CategoryOf(def),
			string(def.EffectiveLifecycle()),
			strings.Join(def.Dependencies, ", "),
		})
	}
	return t.Render() + "\n"
}

// FormatStatistics renders statistics as key-value rows, categories sorted
// for stable output.
func (f *TableFormatter) FormatStatistics(stats api.ResolutionStatistics) string {
	t := f.createTable()
	t.AppendHeader(table.Row{f.header("KEY"), f.header("VALUE")})
	t.AppendRow(table.Row{"services", stats.TotalServices})
	t.AppendRow(table.Row{"max dependency depth", stats.MaxDependencyDepth})

	categories := make([]string, 0, len(stats.CategoryBreakdown))
	for category := range stats.CategoryBreakdown {
		categories = append(categories, category)
	}
	sort.Strings(categories)
	for _, category := range categories {
		t.AppendRow(table.Row{"category " + category, stats.CategoryBreakdown[category]})
	}
	return t.Render() + "\n"
}

// SetOptions updates the formatter options
func (f *TableFormatter) SetOptions(options Options) {
	f.options = options
}

// GetOptions returns the current formatter options
func (f *TableFormatter) GetOptions() Options {
	return f.options
}

// Helper methods

// createTable creates a new table with standard styling
func (f *TableFormatter) createTable() table.Writer {
	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	return t
}

// header colors a header cell when colored output is enabled.
func (f *TableFormatter) header(s string) string {
	if f.options.Color {
		return text.FgHiCyan.Sprint(s)
	}
	return s
}

// formatFailure renders the collected errors of a failed resolution.
func (f *TableFormatter) formatFailure(result *api.ResolutionResult) string {
	word := "errors"
	if len(result.Errors) == 1 {
		word = "error"
	}
	headline := fmt.Sprintf("resolution failed: %d %s", len(result.Errors), word)
	if f.options.Color {
		headline = text.FgRed.Sprint(headline)
	}

	var b strings.Builder
	b.WriteString(headline + "\n")
	for i, msg := range result.ErrorMessages() {
		fmt.Fprintf(&b, "  %d. %s\n", i+1, msg)
	}
	return b.String()
}

// formatEmptyMessage formats empty result messages
func (f *TableFormatter) formatEmptyMessage(icon, message string) string {
	if f.options.Color {
		return fmt.Sprintf("%s %s\n", text.FgYellow.Sprint(icon), text.FgYellow.Sprint(message))
	}
	return fmt.Sprintf("%s %s\n", icon, message)
}

// definitionIndex maps definitions by name for row lookups.
func definitionIndex(defs []*api.ServiceDefinition) map[string]*api.ServiceDefinition {
	byName := make(map[string]*api.ServiceDefinition, len(defs))
	for _, def := range defs {
		if def != nil {
			byName[def.Name] = def
		}
	}
	return byName
}
