// Package api implements the HTTP adapter: it translates transport calls
// into service calls and service results and errors into responses. No
// business rule lives here.
package api
