// Package config provides configuration structures and utilities for itemreport.
// It defines the report generation options, the optional .itemreport YAML file
// with named user profiles, and the XDG locations used for report history.
package config
