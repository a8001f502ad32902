// Package container defines the container data model shared across the
// engine, lifecycle, and dependency packages, along with the parser that
// normalizes raw runtime listing output into typed records.
//
// Records are replaced wholesale on each refresh cycle. Code outside the
// lifecycle manager must treat them as read-only snapshots.
package container
