// Package service provides the application services enforcing validation,
// uniqueness, ownership, and existence rules on top of the stores.
package service
