// Package mocks provides centralized mock implementations for testing.
//
// Each mock exposes Fn fields to override individual methods and a small
// map-backed default implementation, so tests only wire the behavior they
// actually exercise instead of redefining inline mocks per test file.
package mocks
