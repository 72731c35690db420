package report

import (
	"fmt"
	"strings"

	"github.com/nao1215/itemreport/internal/model"
)

// priorityStyle is the inline style applied to rows of priority items.
const priorityStyle = `style="font-weight:bold;"`

// HTMLFormatter renders reports as a minimal HTML document with one table.
//
// Values are written without HTML escaping; the output is meant for
// trusted item names.
type HTMLFormatter struct{}

// NewHTMLFormatter creates an HTMLFormatter.
func NewHTMLFormatter() *HTMLFormatter {
	return &HTMLFormatter{}
}

// Header opens the document, names the user and writes the table heading.
func (f *HTMLFormatter) Header(user model.User) (string, error) {
	var sb strings.Builder
	sb.WriteString("<html><body>\n")
	sb.WriteString("<h1>Relatório</h1>\n")
	fmt.Fprintf(&sb, "<h2>Usuário: %s</h2>\n", user.Name)
	sb.WriteString("<table>\n")
	sb.WriteString("<tr><th>ID</th><th>Nome</th><th>Valor</th></tr>\n")
	return sb.String(), nil
}

// Body writes one table row per item. Priority rows are bold; other rows
// carry no style attribute at all. The user is not part of the HTML body.
func (f *HTMLFormatter) Body(items []model.Item, _ model.User) (string, error) {
	var sb strings.Builder
	for _, item := range items {
		sb.WriteString("<tr")
		if item.IsPriority() {
			sb.WriteString(" ")
			sb.WriteString(priorityStyle)
		}
		sb.WriteString(">")
		fmt.Fprintf(&sb, "<td>%s</td><td>%s</td><td>%s</td>",
			item.ID, item.Name, model.FormatNumber(item.Value))
		sb.WriteString("</tr>\n")
	}
	return sb.String(), nil
}

// Footer closes the table, prints the total and closes the document.
func (f *HTMLFormatter) Footer(total float64) (string, error) {
	var sb strings.Builder
	sb.WriteString("</table>\n")
	fmt.Fprintf(&sb, "<h3>Total: %s</h3>\n", model.FormatNumber(total))
	sb.WriteString("</body></html>\n")
	return sb.String(), nil
}
