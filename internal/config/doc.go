// Package config loads application configuration from environment variables.
//
// Every setting has a development default; production deployments must set
// SECRET_KEY and should set DATABASE_URL. Load never fails on malformed
// values, it falls back to the default instead; Validate reports everything
// that is still wrong in one errors.Join'd error.
package config
