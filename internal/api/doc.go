// Package api exposes decks and cards over HTTP. Handlers decode and
// validate requests, call the services in internal/service and map service
// errors to status codes and client-safe messages in errors.go.
//
// Every route under /api requires a bearer token; the owner and
// entitlements it carries are read from the request context.
package api
