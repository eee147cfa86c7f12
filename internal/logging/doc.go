// Package logging builds the slog loggers used across culler.
//
// Two output formats are supported: a compact console format
// ("TIMESTAMP LEVEL component: message key=value ...") and standard JSON.
// Loggers fan out to stdout and the daemon log file. CleanupOldFiles prunes
// aged log and report files according to the configured retention windows.
package logging
