// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import "errors"

// Sentinel errors produced by the transport layer itself. Callers can match
// against them with [errors.Is].
var (
	// ErrInvalidJSON is returned when a request body cannot be decoded.
	ErrInvalidJSON = errors.New("invalid JSON was passed")

	// ErrInvalidID is returned when a numeric path parameter is malformed.
	ErrInvalidID = errors.New("invalid id in request path")

	// ErrRouteNotFound is answered for every path the router does not know.
	ErrRouteNotFound = errors.New("can't find this route on this server")

	// ErrTooManyRequests is answered once a client exhausts its rate limit
	// window.
	ErrTooManyRequests = errors.New("too many requests from this IP, please try again in an hour")

	// errNoIdentity signals that an authorization gate ran without an
	// authentication gate before it. It is a wiring fault, never a client
	// error.
	errNoIdentity = errors.New("no authenticated user in request context")

	// errEmptyRoleSet is the panic value of restrictTo called without roles.
	errEmptyRoleSet = errors.New("restrictTo requires at least one role")
)
