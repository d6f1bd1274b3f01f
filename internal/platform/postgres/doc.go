// Package postgres implements the store interfaces on PostgreSQL via
// database/sql and the pgx stdlib driver. All implementations translate
// driver-level errors into the store error taxonomy so callers never
// branch on PostgreSQL error codes directly.
package postgres
