package pipeline

import (
	"github.com/samber/lo"

	"github.com/nao1215/itemreport/internal/model"
)

// State carries the data flowing through the steps of one report.
// Each step replaces Items with a new slice rather than editing it, so the
// caller's input is never modified.
type State struct {
	// User is the requesting user.
	User model.User

	// Items starts as the caller's input and ends as the processed items.
	Items []model.Item

	// Total is set by TotalStep.
	Total float64
}

// Step is one stage of report generation.
type Step interface {
	// Do applies the step to the state.
	Do(state *State) error

	// Name returns the step's name for logging purposes.
	Name() string
}

// FilterStep hides items above the permission threshold from restricted users.
type FilterStep struct {
	// threshold is the highest value a restricted user may see (inclusive).
	threshold float64
}

// NewFilterStep creates a FilterStep with the given permission threshold.
func NewFilterStep(threshold float64) *FilterStep {
	return &FilterStep{threshold: threshold}
}

// Name returns the step name.
func (s *FilterStep) Name() string {
	return "filter"
}

// Do executes the filter step.
func (s *FilterStep) Do(state *State) error {
	state.Items = s.Filter(state.Items, state.User)
	return nil
}

// Filter returns the items visible to user.
// Administrators receive the input slice itself; everyone else receives a
// new slice holding only items whose value is at most the threshold.
func (s *FilterStep) Filter(items []model.Item, user model.User) []model.Item {
	if user.IsAdmin() {
		return items
	}
	return lo.Filter(items, func(item model.Item, _ int) bool {
		return item.Value <= s.threshold
	})
}

// ProcessStep annotates items with the priority flag for administrators.
type ProcessStep struct {
	// priorityLimit is the value an item must exceed to be priority.
	priorityLimit float64
}

// NewProcessStep creates a ProcessStep with the given priority limit.
func NewProcessStep(priorityLimit float64) *ProcessStep {
	return &ProcessStep{priorityLimit: priorityLimit}
}

// Name returns the step name.
func (s *ProcessStep) Name() string {
	return "process"
}

// Do executes the process step.
func (s *ProcessStep) Do(state *State) error {
	state.Items = s.Process(state.Items, state.User)
	return nil
}

// Process returns the items as they should be rendered for user.
// Administrators receive new copies with Priority set to value > limit.
// Other users receive the input unchanged, without any annotation.
func (s *ProcessStep) Process(items []model.Item, user model.User) []model.Item {
	if !user.IsAdmin() {
		return items
	}
	return lo.Map(items, func(item model.Item, _ int) model.Item {
		return item.WithPriority(item.Value > s.priorityLimit)
	})
}

// TotalStep sums the values of the current items.
type TotalStep struct{}

// NewTotalStep creates a TotalStep.
func NewTotalStep() *TotalStep {
	return &TotalStep{}
}

// Name returns the step name.
func (s *TotalStep) Name() string {
	return "total"
}

// Do executes the total step.
func (s *TotalStep) Do(state *State) error {
	state.Total = CalculateTotal(state.Items)
	return nil
}

// CalculateTotal sums item values in input order.
// An empty or nil slice totals zero.
func CalculateTotal(items []model.Item) float64 {
	return lo.SumBy(items, func(item model.Item) float64 {
		return item.Value
	})
}
