// Package http implements the HTTP transport layer of the application.
//
// It exposes route wiring, request handlers, server-rendered views and the
// middleware used by the REST API. Session handling, the authentication
// gates, request tracing, access logging, metrics and rate limiting live in
// this package; business rules are delegated to the service layer.
package http
