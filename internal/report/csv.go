package report

import (
	"strings"

	"github.com/nao1215/itemreport/internal/model"
)

// csvHeader is the fixed column line of CSV reports.
const csvHeader = "ID,NOME,VALOR,USUARIO\n"

// CSVFormatter renders reports as comma-separated values.
// Rows repeat the user name in the last column so each line stands alone
// when the file is sliced or filtered in a spreadsheet.
//
// Fields are written verbatim without quoting. Names containing commas
// therefore produce extra columns; callers that need RFC 4180 output
// must sanitize names first.
type CSVFormatter struct{}

// NewCSVFormatter creates a CSVFormatter.
func NewCSVFormatter() *CSVFormatter {
	return &CSVFormatter{}
}

// Header returns the column line.
func (f *CSVFormatter) Header(_ model.User) (string, error) {
	return csvHeader, nil
}

// Body returns one "id,name,value,user" line per item.
func (f *CSVFormatter) Body(items []model.Item, user model.User) (string, error) {
	var sb strings.Builder
	for _, item := range items {
		sb.WriteString(item.ID.String())
		sb.WriteString(",")
		sb.WriteString(item.Name)
		sb.WriteString(",")
		sb.WriteString(model.FormatNumber(item.Value))
		sb.WriteString(",")
		sb.WriteString(user.Name)
		sb.WriteString("\n")
	}
	return sb.String(), nil
}

// Footer returns a blank line followed by the two total rows.
func (f *CSVFormatter) Footer(total float64) (string, error) {
	return "\nTotal,,\n" + model.FormatNumber(total) + ",,\n", nil
}
