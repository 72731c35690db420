// Package main provides the entry point for the itemreport CLI.
//
// itemreport renders CSV, HTML or Markdown reports from a list of items.
// Users with the ADMIN role see every item with priority markers; other
// users only see items up to the permission threshold.
//
// Usage:
//
//	itemreport generate items.json --user Ana --role ADMIN
//	itemreport generate items.yaml -t CSV -t HTML --output-dir out/
//	itemreport history
//
// See --help for all available options.
package main

func main() {
	Execute()
}
