package pipeline

import (
	"fmt"
	"log/slog"

	"github.com/nao1215/itemreport/internal/model"
	"github.com/nao1215/itemreport/internal/report"
)

const (
	// DefaultPermissionThreshold is the highest item value visible to
	// restricted users. Items at exactly this value remain visible.
	DefaultPermissionThreshold = 500

	// DefaultPriorityLimit is the value an item must exceed to be flagged
	// as priority for administrators. Items at exactly this value are not.
	DefaultPriorityLimit = 1000
)

// Pipeline generates reports from items.
// Its configuration is fixed at construction, so a single Pipeline may be
// shared by concurrent callers.
type Pipeline struct {
	// registry resolves report types to formatters.
	registry *report.Registry

	// filter, process and total are the ordered steps of every report.
	filter  *FilterStep
	process *ProcessStep
	total   *TotalStep

	// logger is used for structured logging during generation.
	logger *slog.Logger

	permissionThreshold float64
	priorityLimit       float64
}

// Option is a function that configures a Pipeline.
type Option func(*Pipeline)

// WithLogger sets a custom logger for the pipeline.
// If not set, slog.Default() is used.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) {
		p.logger = logger
	}
}

// WithPermissionThreshold overrides DefaultPermissionThreshold.
func WithPermissionThreshold(threshold float64) Option {
	return func(p *Pipeline) {
		p.permissionThreshold = threshold
	}
}

// WithPriorityLimit overrides DefaultPriorityLimit.
func WithPriorityLimit(limit float64) Option {
	return func(p *Pipeline) {
		p.priorityLimit = limit
	}
}

// WithRegistry replaces the default CSV/HTML registry.
// The registry must not be modified after the pipeline is created.
func WithRegistry(registry *report.Registry) Option {
	return func(p *Pipeline) {
		if registry != nil {
			p.registry = registry
		}
	}
}

// WithFormatter registers an additional formatter on the pipeline's registry.
// Options apply in order, so WithFormatter after WithRegistry extends the
// supplied registry.
func WithFormatter(t report.Type, f report.Formatter) Option {
	return func(p *Pipeline) {
		p.registry.Register(t, f)
	}
}

// New creates a Pipeline with the CSV and HTML formatters registered and the
// default threshold and priority limit.
func New(opts ...Option) *Pipeline {
	p := &Pipeline{
		registry:            report.NewRegistry(),
		permissionThreshold: DefaultPermissionThreshold,
		priorityLimit:       DefaultPriorityLimit,
	}

	for _, opt := range opts {
		opt(p)
	}

	if p.logger == nil {
		p.logger = slog.Default()
	}

	p.filter = NewFilterStep(p.permissionThreshold)
	p.process = NewProcessStep(p.priorityLimit)
	p.total = NewTotalStep()

	return p
}

// Result is a generated report together with the data it was rendered from.
type Result struct {
	// Type is the report type that was rendered.
	Type report.Type

	// User is the user the report was generated for.
	User model.User

	// Output is the rendered, trimmed report.
	Output string

	// Items are the processed items that appear in the report.
	Items []model.Item

	// InputCount is the number of items before filtering.
	InputCount int

	// Total is the sum of values over Items.
	Total float64
}

// VisibleCount returns the number of items that appear in the report.
func (r *Result) VisibleCount() int {
	return len(r.Items)
}

// GenerateReport renders a report of the given type for user.
// It returns a *ConfigurationError when no formatter is registered for
// reportType; in that case no report is produced.
func (p *Pipeline) GenerateReport(reportType report.Type, user model.User, items []model.Item) (string, error) {
	result, err := p.Generate(reportType, user, items)
	if err != nil {
		return "", err
	}
	return result.Output, nil
}

// Generate is like GenerateReport but also returns the processed items and total.
func (p *Pipeline) Generate(reportType report.Type, user model.User, items []model.Item) (*Result, error) {
	formatter, ok := p.registry.Lookup(reportType)
	if !ok {
		err := &ConfigurationError{ReportType: reportType, Available: p.registry.Types()}
		p.logger.Warn("report type not registered",
			"type", reportType,
			"error", err,
		)
		return nil, err
	}

	state := &State{User: user, Items: items}
	for _, step := range p.Steps() {
		if err := step.Do(state); err != nil {
			return nil, fmt.Errorf("%s step failed: %w", step.Name(), err)
		}
		p.logger.Debug("step completed",
			"step", step.Name(),
			"type", reportType,
			"items", len(state.Items),
		)
	}

	output, err := report.Render(formatter, state.Items, user, state.Total)
	if err != nil {
		p.logger.Error("report rendering failed",
			"type", reportType,
			"error", err,
		)
		return nil, fmt.Errorf("failed to render %s report: %w", reportType, err)
	}

	p.logger.Debug("report generated",
		"type", reportType,
		"role", user.Role,
		"user_name", user.Name,
		"input_items", len(items),
		"visible_items", len(state.Items),
		"total", state.Total,
	)

	return &Result{
		Type:       reportType,
		User:       user,
		Output:     output,
		Items:      state.Items,
		InputCount: len(items),
		Total:      state.Total,
	}, nil
}

// FilterItemsByUserRole returns the items visible to user.
func (p *Pipeline) FilterItemsByUserRole(items []model.Item, user model.User) []model.Item {
	return p.filter.Filter(items, user)
}

// ProcessItems returns the items annotated for user.
func (p *Pipeline) ProcessItems(items []model.Item, user model.User) []model.Item {
	return p.process.Process(items, user)
}

// CalculateTotal sums the values of items.
func (p *Pipeline) CalculateTotal(items []model.Item) float64 {
	return CalculateTotal(items)
}

// Steps returns the steps in execution order.
func (p *Pipeline) Steps() []Step {
	return []Step{p.filter, p.process, p.total}
}

// StepNames returns the names of all steps in execution order.
func (p *Pipeline) StepNames() []string {
	steps := p.Steps()
	names := make([]string, len(steps))
	for i, step := range steps {
		names[i] = step.Name()
	}
	return names
}

// ReportTypes returns the report types this pipeline can render.
func (p *Pipeline) ReportTypes() []report.Type {
	return p.registry.Types()
}

// PermissionThreshold returns the configured visibility cutoff.
func (p *Pipeline) PermissionThreshold() float64 {
	return p.permissionThreshold
}

// PriorityLimit returns the configured priority cutoff.
func (p *Pipeline) PriorityLimit() float64 {
	return p.priorityLimit
}
