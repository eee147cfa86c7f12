// Package report renders the timestamped per-run deletion reports.
//
// Each scan cycle produces one culler-YYYYMMDDHHMMSS.log file in the report
// directory with a header, one line per deleted duplicate, and summary
// counters. These files are what the notifier emails and what the retention
// pruner ages out.
package report
