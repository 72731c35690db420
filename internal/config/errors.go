package config

import "errors"

// Configuration validation errors.
// These errors are returned by Config.Validate() and can be checked with
// errors.Is() for programmatic handling.
var (
	// ErrNoReportType is returned when no report type was requested.
	ErrNoReportType = errors.New("no report type specified: use --type")

	// ErrNoUser is returned when neither a user name nor a profile is given.
	ErrNoUser = errors.New("no user specified: use --user or --profile")

	// ErrInvalidThreshold is returned when the permission threshold is negative.
	ErrInvalidThreshold = errors.New("invalid permission threshold: must be non-negative")

	// ErrInvalidPriorityLimit is returned when the priority limit is negative.
	ErrInvalidPriorityLimit = errors.New("invalid priority limit: must be non-negative")

	// ErrInvalidConcurrency is returned when the batch concurrency is not positive.
	ErrInvalidConcurrency = errors.New("invalid concurrency: must be positive")

	// ErrConflictingOutputs is returned when both --output and --output-dir are set.
	ErrConflictingOutputs = errors.New("conflicting outputs: --output and --output-dir cannot be used together")

	// ErrOutputDirRequired is returned when several report types are requested
	// without an output directory to hold one file per type.
	ErrOutputDirRequired = errors.New("several report types require --output-dir")

	// ErrUnknownProfile is returned when --profile names a profile missing from the config file.
	ErrUnknownProfile = errors.New("unknown user profile")
)
