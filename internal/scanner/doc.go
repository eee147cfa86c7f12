// Package scanner walks directory trees and groups files by content digest.
//
// A scan visits each configured root with filepath.WalkDir, hashes every
// eligible regular file in fixed-size chunks, and collects the paths sharing
// a digest in traversal order. Lexical walk order makes the first occurrence
// for each digest stable across runs, which is what the sweep package relies
// on when it decides which copy survives.
//
// Unreadable or vanished files are logged and skipped; a scan only fails on
// an unusable root or a cancelled context.
package scanner
