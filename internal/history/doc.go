// Package history persists scan runs and their deletions in SQLite.
//
// The Store manages the database connection, schema initialization, and the
// queries behind `culler runs list/show` and `culler daemon status`. Each run
// is identified by a UUID; deletions cascade with their run. Schema changes
// bump the version in schema.go; users clear the database to adopt the new
// schema.
package history
