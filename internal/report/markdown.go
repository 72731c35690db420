package report

import (
	"io"
	"strings"

	"github.com/nao1215/itemreport/internal/model"
	"github.com/nao1215/markdown"
)

// MarkdownFormatter renders reports as GitHub Flavored Markdown.
// Priority items are written in bold, mirroring the HTML row style.
// Pipes in cell text are escaped so a name never adds a column.
type MarkdownFormatter struct{}

// cellEscaper escapes table cell text.
var cellEscaper = strings.NewReplacer("|", `\|`)

// NewMarkdownFormatter creates a MarkdownFormatter.
func NewMarkdownFormatter() *MarkdownFormatter {
	return &MarkdownFormatter{}
}

// Header writes the report title and the user line.
func (f *MarkdownFormatter) Header(user model.User) (string, error) {
	md := markdown.NewMarkdown(io.Discard)
	md.H1("Relatório")
	md.PlainText("")
	md.PlainTextf("Usuário: %s", user.Name)
	md.PlainText("")
	return md.String() + "\n", nil
}

// Body writes a table with one row per item.
func (f *MarkdownFormatter) Body(items []model.Item, _ model.User) (string, error) {
	rows := make([][]string, len(items))
	for i, item := range items {
		row := []string{
			cellEscaper.Replace(item.ID.String()),
			cellEscaper.Replace(item.Name),
			model.FormatNumber(item.Value),
		}
		if item.IsPriority() {
			for j := range row {
				row[j] = markdown.Bold(row[j])
			}
		}
		rows[i] = row
	}

	md := markdown.NewMarkdown(io.Discard)
	md.Table(markdown.TableSet{
		Header: []string{"ID", "Nome", "Valor"},
		Rows:   rows,
	})
	// One blank line separates the table from the footer.
	return strings.TrimRight(md.String(), "\n") + "\n\n", nil
}

// Footer writes the total in bold.
func (f *MarkdownFormatter) Footer(total float64) (string, error) {
	return markdown.Bold("Total: "+model.FormatNumber(total)) + "\n", nil
}
