// Package report renders processed items into report strings.
//
// This package contains the formatters for the supported output formats:
//   - CSVFormatter: Comma-separated rows for spreadsheets
//   - HTMLFormatter: A minimal HTML table for browsers
//   - MarkdownFormatter: GitHub Flavored Markdown for sharing
//
// Every formatter implements the Formatter interface, which splits a report
// into three fragments: header, body and footer. Render joins the fragments
// and trims surrounding whitespace, so adding a new output format never
// requires touching the pipeline that feeds it.
//
// Formatters are selected by report Type through a Registry.
package report
