// Package service implements the business logic of the Cloud Notes API.
//
// Services sit between HTTP handlers and repositories. They validate input,
// enforce ownership rules, and translate storage errors into the sentinel
// errors defined in errors.go, so handlers can map outcomes to HTTP statuses
// with errors.Is alone.
//
// Each service declares the repository interface it needs and accepts any
// implementation, which keeps the services testable with hand-written mocks.
package service
