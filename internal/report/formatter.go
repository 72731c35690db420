package report

import (
	"strings"

	"github.com/nao1215/itemreport/internal/model"
)

// Formatter renders the three fragments of a report.
// Render calls them in order and joins the results.
type Formatter interface {
	// Header renders the report heading for the given user.
	Header(user model.User) (string, error)

	// Body renders one entry per item, preserving item order.
	Body(items []model.Item, user model.User) (string, error)

	// Footer renders the closing section with the report total.
	Footer(total float64) (string, error)
}

// Render produces the complete report: header, body and footer joined and
// trimmed of leading and trailing whitespace.
// If any fragment fails, no partial report is returned.
func Render(f Formatter, items []model.Item, user model.User, total float64) (string, error) {
	if f == nil {
		return "", ErrNilFormatter
	}

	header, err := f.Header(user)
	if err != nil {
		return "", err
	}
	body, err := f.Body(items, user)
	if err != nil {
		return "", err
	}
	footer, err := f.Footer(total)
	if err != nil {
		return "", err
	}

	return strings.TrimSpace(header + body + footer), nil
}

// UnimplementedFormatter can be embedded by new formatters.
// Every fragment it provides fails with a NotImplementedError, so a
// formatter that forgets to override one fails fast instead of producing
// a partial report.
type UnimplementedFormatter struct{}

// Header always fails.
func (UnimplementedFormatter) Header(model.User) (string, error) {
	return "", &NotImplementedError{Fragment: "Header"}
}

// Body always fails.
func (UnimplementedFormatter) Body([]model.Item, model.User) (string, error) {
	return "", &NotImplementedError{Fragment: "Body"}
}

// Footer always fails.
func (UnimplementedFormatter) Footer(float64) (string, error) {
	return "", &NotImplementedError{Fragment: "Footer"}
}
