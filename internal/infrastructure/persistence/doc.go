// Package persistence provides the GORM-backed key metadata store and the
// database connection factory supporting SQLite and PostgreSQL.
package persistence
