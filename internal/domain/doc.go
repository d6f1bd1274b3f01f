// Package domain defines the core business entities of the user-account
// service and the validation rules they carry. Entities here are free of
// persistence and transport concerns; stores and handlers depend on this
// package, never the other way around.
package domain
