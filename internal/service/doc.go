// Package service contains the application's business logic, coordinating
// domain entities, stores, token handling and mail delivery. Services own
// transaction boundaries; stores execute within them.
package service
