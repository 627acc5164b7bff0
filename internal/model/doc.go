// Package model defines domain entities and data structures for the Cloud
// Notes API.
//
// The model package contains struct definitions for domain objects,
// request/response types, and error definitions. Models are used across all
// layers of the application.
//
// # Domain Entities
//
//   - User: Application user with authentication credentials
//   - Note: User-owned note with soft-delete support
//
// # JSON Serialization
//
// All models use json struct tags for API serialization:
//
//	type Note struct {
//	    ID      int64  `json:"id"`
//	    Title   string `json:"title"`
//	    Content string `json:"content"`
//	}
//
// Sensitive fields such as User.PasswordHash are excluded from serialization
// with a `json:"-"` tag.
//
// # Error Types
//
// RFC 9457 Problem Details errors are defined in errors.go:
//
//	type ProblemDetails struct {
//	    Type    string    `json:"type"`
//	    Title   string    `json:"title"`
//	    Status  int       `json:"status"`
//	    Detail  string    `json:"detail"`
//	}
package model
