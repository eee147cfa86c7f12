// Package main hosts the culler CLI entrypoint and command graph.
//
// The Cobra-based command tree covers one-shot scans, the foreground daemon
// loop, run history inspection, configuration scaffolding, and notification
// testing. It centralizes configuration resolution and history store access
// so subcommands can focus on user experience instead of wiring.
//
// Keep this package lean: add new functionality by extending the internal
// packages first, then surface it through dedicated commands or flags here.
package main
