// Package log builds the slog loggers used by itemreport.
//
// Reports are generated for named people, and the pipeline logs who a
// report was rendered for. RedactHandler wraps any slog.Handler and masks
// those personal attributes (and credential-like keys) before they reach
// the output, so log files can be shared without exposing report subjects.
//
// # Usage
//
//	logger := log.NewLogger(os.Stderr, verbose)
//	slog.SetDefault(logger)
//
//	logger.Debug("report generated",
//	    "user_name", "Ana", // written as user_name=***REDACTED***
//	    "role", "ADMIN",
//	)
package log
