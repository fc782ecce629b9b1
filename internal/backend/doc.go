// Package backend is the HTTP client for the number-lookup service.
//
// It covers the five endpoints the controller consumes:
//
//   - GET  /api/session-status
//   - POST /api/initialize
//   - POST /api/check-single
//   - POST /api/check-batch
//   - GET  /api/status
//
// All requests are JSON over HTTP, take a context for cancellation, and carry
// an X-Request-ID header so client and server logs can be correlated. The
// service reports application failures as an "error" field in an otherwise
// normal body; those surface as *AppError. Anything else that goes wrong on the
// wire is returned wrapped, so callers can tell the two apart with errors.As.
package backend
