// Package errs defines the error taxonomy returned at the HTTP boundary.
//
// Every failure that reaches a client is an *HTTPError: validation errors,
// not-found errors and sanitized persistence errors. Internal error text
// stays in the logs.
package errs
