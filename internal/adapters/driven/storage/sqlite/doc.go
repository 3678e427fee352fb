// Package sqlite stores the library in a single SQLite database.
//
// The adapter uses modernc.org/sqlite, a pure Go driver, so folio builds
// without CGO. One Store serves both driven.NovelStore and
// driven.BookmarkStore through wrapper types sharing the connection.
//
// # Schema
//
// Tables are created by the versioned migrations in migrations/. Applied
// versions are recorded in schema_migrations.
//
// # Data Location
//
// By default the database is ~/.folio/data/library.db.
package sqlite
