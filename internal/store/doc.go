// Package store defines the persistence interfaces of the application and
// the error taxonomy shared by their implementations. Concrete
// implementations live in internal/platform/postgres.
package store
