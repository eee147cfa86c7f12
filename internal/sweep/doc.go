// Package sweep removes duplicate files identified by the scanner.
//
// For each digest group the first occurrence in traversal order survives and
// every later path is deleted. Failed deletes are non-fatal and counted, and
// dry-run mode produces the same deletion records without touching the
// filesystem so reports and notifications stay identical in shape.
package sweep
