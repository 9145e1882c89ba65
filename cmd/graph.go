package cmd

import (
	"fmt"
	"sort"
	"strings"

	"github.com/jedib0t/go-pretty/v6/list"
	"github.com/spf13/cobra"

	"rollcall/internal/api"
	"rollcall/internal/resolver"
)

var graphFormat string

// graphCmd represents the graph command
var graphCmd = &cobra.Command{
	Use:   "graph <manifest-or-dir>",
	Short: "Render the dependency graph",
	Long: `Graph renders the manifest's dependency graph for inspection.
An edge always points from a service to the service it depends on.

Formats:
  dot   Graphviz digraph with deterministic node order, ready to pipe
        into the dot tool
  tree  one dependency tree per root service (a root is a service no
        other service depends on)

Examples:
  rollcall graph services.yaml --format dot | dot -Tsvg -o services.svg
  rollcall graph ./manifests --format tree`,
	Args: cobra.ExactArgs(1),
	RunE: runGraph,
}

func init() {
	rootCmd.AddCommand(graphCmd)

	graphCmd.Flags().StringVarP(&graphFormat, "format", "f", "dot", "Graph format (dot, tree)")
}

func runGraph(cmd *cobra.Command, args []string) error {
	man, err := loadManifestArg(args[0])
	if err != nil {
		return err
	}

	// Rendering needs a validated set. A cycle would make the tree walk
	// endless and a missing reference would draw an edge to nothing.
	result := resolver.New().Validate(man.Services)
	if !result.Success {
		for _, msg := range result.ErrorMessages() {
			fmt.Fprintln(cmd.ErrOrStderr(), msg)
		}
		return &validationFailedError{Count: len(result.Errors)}
	}

	switch graphFormat {
	case "dot":
		fmt.Fprint(cmd.OutOrStdout(), renderDot(man.Services))
	case "tree":
		fmt.Fprint(cmd.OutOrStdout(), renderTree(man.Services))
	default:
		return fmt.Errorf("unknown graph format %q (must be dot or tree)", graphFormat)
	}
	return nil
}

// renderDot emits a Graphviz digraph. Nodes are sorted by name so the same
// manifest always produces the same bytes.
func renderDot(defs []*api.ServiceDefinition) string {
	sorted := make([]*api.ServiceDefinition, len(defs))
	copy(sorted, defs)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Name < sorted[j].Name })

	var b strings.Builder
	b.WriteString("digraph services {\n")
	b.WriteString("  rankdir=LR;\n")
	for _, def := range sorted {
		fmt.Fprintf(&b, "  %q;\n", def.Name)
	}
	for _, def := range sorted {
		for _, dep := range def.Dependencies {
			fmt.Fprintf(&b, "  %q -> %q;\n", def.Name, dep)
		}
	}
	b.WriteString("}\n")
	return b.String()
}

// renderTree prints one dependency tree per root service. A dependency
// shared by several paths appears once under each of them.
func renderTree(defs []*api.ServiceDefinition) string {
	byName := make(map[string]*api.ServiceDefinition, len(defs))
	dependedOn := make(map[string]bool)
	for _, def := range defs {
		byName[def.Name] = def
	}
	for _, def := range defs {
		for _, dep := range def.Dependencies {
			dependedOn[dep] = true
		}
	}

	var roots []string
	for _, def := range defs {
		if !dependedOn[def.Name] {
			roots = append(roots, def.Name)
		}
	}
	sort.Strings(roots)
	if len(roots) == 0 {
		return ""
	}

	w := list.NewWriter()
	w.SetStyle(list.StyleConnectedRounded)

	var walk func(name string)
	walk = func(name string) {
		w.AppendItem(name)
		def := byName[name]
		if len(def.Dependencies) == 0 {
			return
		}
		w.Indent()
		for _, dep := range def.Dependencies {
			walk(dep)
		}
		w.UnIndent()
	}
	for _, root := range roots {
		walk(root)
	}
	return w.Render() + "\n"
}
