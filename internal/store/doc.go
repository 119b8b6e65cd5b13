// Package store defines the persistence contracts for the application's
// entities along with the errors implementations report. Implementations
// live under internal/platform.
package store
