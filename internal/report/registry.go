package report

import (
	"sort"
	"strings"
)

// Type identifies a report output format.
type Type string

// Supported report types.
const (
	// TypeCSV selects CSVFormatter.
	TypeCSV Type = "CSV"

	// TypeHTML selects HTMLFormatter.
	TypeHTML Type = "HTML"

	// TypeMarkdown selects MarkdownFormatter. It is not part of the
	// default registry and must be registered explicitly.
	TypeMarkdown Type = "MARKDOWN"
)

// Extension returns the conventional file extension for the type,
// without the leading dot. Unknown types use their lower-cased name.
func (t Type) Extension() string {
	switch t {
	case TypeCSV:
		return "csv"
	case TypeHTML:
		return "html"
	case TypeMarkdown:
		return "md"
	default:
		return strings.ToLower(string(t))
	}
}

// Registry maps report types to formatters.
// A Registry is not safe for concurrent modification; populate it before
// handing it to a pipeline and treat it as read-only afterwards.
type Registry struct {
	formatters map[Type]Formatter
}

// NewRegistry creates a Registry holding the CSV and HTML formatters.
func NewRegistry() *Registry {
	r := NewEmptyRegistry()
	r.Register(TypeCSV, NewCSVFormatter())
	r.Register(TypeHTML, NewHTMLFormatter())
	return r
}

// NewEmptyRegistry creates a Registry without any formatter.
func NewEmptyRegistry() *Registry {
	return &Registry{formatters: make(map[Type]Formatter)}
}

// Register adds or replaces the formatter for t.
func (r *Registry) Register(t Type, f Formatter) {
	r.formatters[t] = f
}

// Lookup returns the formatter registered for t.
// The boolean is false when no formatter is registered.
func (r *Registry) Lookup(t Type) (Formatter, bool) {
	f, ok := r.formatters[t]
	if !ok || f == nil {
		return nil, false
	}
	return f, true
}

// Types returns the registered types in sorted order.
func (r *Registry) Types() []Type {
	types := make([]Type, 0, len(r.formatters))
	for t := range r.formatters {
		types = append(types, t)
	}
	sort.Slice(types, func(i, j int) bool { return types[i] < types[j] })
	return types
}

// Len returns the number of registered formatters.
func (r *Registry) Len() int {
	return len(r.formatters)
}
