// Package config defines the application configuration and loads it from
// the environment.
package config
