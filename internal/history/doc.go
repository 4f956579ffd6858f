// Package history records pipeline runs in a SQLite ledger inside the work
// directory.
//
// The schema is embedded and versioned. A database created by a different
// schema version is rejected with ErrSchemaMismatch; delete the file to
// start over.
package history
