// Package database provides SQLite-based storage for report history.
//
// HistoryDB keeps one record per generated report: who it was generated
// for, which format, how many items were visible, the total and the
// rendered body. The CLI uses it to list and re-print earlier reports.
//
// The report pipeline itself never reads or writes this store; history is
// recorded by the caller after a report has been generated.
//
// We use modernc.org/sqlite so the binary stays CGO-free and the history
// is a single file under the XDG data directory.
package database
