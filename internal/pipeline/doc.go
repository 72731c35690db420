// Package pipeline turns raw items into rendered reports.
//
// A report is produced in four stages, always in this order:
//  1. filter: restricted users only see items at or below the permission
//     threshold; administrators see everything
//  2. process: administrators get every item annotated with a priority flag
//  3. total: the values of the processed items are summed
//  4. format: the formatter registered for the requested report type renders
//     the header, body and footer
//
// The first three stages are Steps executed over a shared State, the same
// way for every report type. The formatter is resolved before any step runs,
// so an unknown report type fails with a ConfigurationError and produces no
// output.
//
// A Pipeline holds only read-only configuration after construction and is
// safe for concurrent use. BatchGenerator builds on that to render several
// reports at once with errgroup.
package pipeline
