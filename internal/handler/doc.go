// Package handler implements the HTTP endpoints of the Cloud Notes API.
//
// Handlers decode and validate request bodies, call the service layer, and
// render responses. Successful responses are plain JSON; failures are
// RFC 9457 Problem Details rendered through WriteError.
//
// Service errors are mapped to HTTP statuses in one place, MapServiceError,
// so every endpoint reports the same status for the same failure.
package handler
