// Package daemon wires the workflow manager into a single lifecycle with
// flock-based locking to prevent multiple culler daemons from culling the
// same roots concurrently.
package daemon
