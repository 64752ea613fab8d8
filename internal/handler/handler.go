// Package handler is the HTTP layer of the catalog API.
//
// Every endpoint binds its path parameters and JSON body into a payload from
// the model packages, validates it, calls the matching service and writes the
// result as JSON. Errors are returned to the global error handler.
package handler
