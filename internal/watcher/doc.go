// Package watcher debounces filesystem change events under the scan roots
// into single scan triggers. It exists for watch mode only; the interval
// timer in the workflow package remains the primary scheduler.
package watcher
