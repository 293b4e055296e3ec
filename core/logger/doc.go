// Package logger is a standardized event logging framework for the
// interpreter. Every dispatched command produces one newline delimited JSON
// record that can later be aggregated into a Report.
package logger
