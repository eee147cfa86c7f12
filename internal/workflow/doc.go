// Package workflow schedules and executes scan/cull cycles.
//
// The Manager owns the loop: one cycle at startup, then one per interval
// tick, plus early cycles from the filesystem watcher in watch mode. A cycle
// scans the roots, removes later duplicates, writes the report, prunes aged
// reports and logs, records the run in history, and notifies. Cycle errors
// are logged and reported through the notifier; the loop itself only exits on
// context cancellation.
package workflow
