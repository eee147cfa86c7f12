// Package notifications delivers run results via pluggable notifiers.
//
// Two transports are supported: ntfy push messages and SMTP email with the
// run report attached. Both can be active at once; with neither configured a
// no-op implementation is returned so workflow code never branches on
// notification settings. The Prober answers "are we online" before the
// workflow attempts delivery, because the daemon is expected to keep running
// unattended through network outages.
package notifications
